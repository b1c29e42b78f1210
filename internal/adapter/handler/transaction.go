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

// TransactionHandler exposes the bank transaction ledger.
type TransactionHandler struct {
	Ledger *service.Transactions
}

type createTransactionRequest struct {
	AccountID     uuid.UUID              `json:"accountId"`
	Description   string                 `json:"description"`
	Type          domain.TransactionType `json:"type"`
	Category      domain.Category        `json:"category"`
	Amount        decimal.Decimal        `json:"amount"`
	TransactionAt time.Time              `json:"transactionAt"`
}

type updateTransactionRequest struct {
	Description   *string                 `json:"description"`
	Type          *domain.TransactionType `json:"type"`
	Category      *domain.Category        `json:"category"`
	Amount        *decimal.Decimal        `json:"amount"`
	TransactionAt *time.Time              `json:"transactionAt"`
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	t, err := h.Ledger.Create(c.Context(), userID(c), service.CreateTransactionParams{
		AccountID:     req.AccountID,
		Description:   req.Description,
		Type:          req.Type,
		Category:      req.Category,
		Amount:        req.Amount,
		TransactionAt: req.TransactionAt,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(t)
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	txs, err := h.Ledger.ListForUser(c.Context(), userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(txs)
}

func (h *TransactionHandler) Get(c *fiber.Ctx) error {
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

func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var req updateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	t, err := h.Ledger.Update(c.Context(), id, userID(c), domain.TransactionPatch{
		Description:   req.Description,
		Type:          req.Type,
		Category:      req.Category,
		Amount:        req.Amount,
		TransactionAt: req.TransactionAt,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.Ledger.Delete(c.Context(), id, userID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
