package handler

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ma-nadeau/FRED/internal/core/domain"
	"github.com/ma-nadeau/FRED/internal/core/service"
)

// TradeHandler exposes the trade ledger.
type TradeHandler struct {
	Ledger *service.Trades
}

type createTradeRequest struct {
	TradingAccountID uuid.UUID           `json:"tradingAccountId"`
	Symbol           string              `json:"symbol"`
	Quantity         decimal.Decimal     `json:"quantity"`
	PurchasePrice    decimal.NullDecimal `json:"purchasePrice"`
	SellPrice        decimal.NullDecimal `json:"sellPrice"`
	TransactionAt    *time.Time          `json:"transactionAt"`
}

type updateTradeRequest struct {
	Symbol        *string              `json:"symbol"`
	Quantity      *decimal.Decimal     `json:"quantity"`
	PurchasePrice *decimal.NullDecimal `json:"purchasePrice"`
	SellPrice     *decimal.NullDecimal `json:"sellPrice"`
	TransactionAt *time.Time           `json:"transactionAt"`
}

func (h *TradeHandler) Create(c *fiber.Ctx) error {
	var req createTradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	p := service.CreateTradeParams{
		TradingAccountID: req.TradingAccountID,
		Symbol:           req.Symbol,
		Quantity:         req.Quantity,
		PurchasePrice:    req.PurchasePrice,
		SellPrice:        req.SellPrice,
	}
	if req.TransactionAt != nil {
		p.TransactionAt = *req.TransactionAt
	}
	t, err := h.Ledger.Create(c.Context(), userID(c), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(t)
}

func (h *TradeHandler) ListForAccount(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	trades, err := h.Ledger.ListForAccount(c.Context(), id, userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(trades)
}

func (h *TradeHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	t, err := h.Ledger.Get(c.Context(), id, userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

func (h *TradeHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var req updateTradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	t, err := h.Ledger.Update(c.Context(), id, userID(c), domain.TradePatch{
		Symbol:        req.Symbol,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		SellPrice:     req.SellPrice,
		TransactionAt: req.TransactionAt,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

func (h *TradeHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.Ledger.Delete(c.Context(), id, userID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
