package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ma-nadeau/FRED/internal/core/domain"
	"github.com/ma-nadeau/FRED/internal/core/service"
)

// TradingAccountHandler exposes trading account CRUD.
type TradingAccountHandler struct {
	Accounts *service.Accounts
}

type createTradingAccountRequest struct {
	Name        string                    `json:"name"`
	Type        domain.TradingAccountType `json:"type"`
	Institution string                    `json:"institution"`
	Balance     decimal.NullDecimal       `json:"balance"`
}

type updateTradingAccountRequest struct {
	Name    *string                    `json:"name"`
	Type    *domain.TradingAccountType `json:"type"`
	Balance *decimal.Decimal           `json:"balance"`
}

func (h *TradingAccountHandler) Create(c *fiber.Ctx) error {
	var req createTradingAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	acct, err := h.Accounts.CreateTradingAccount(c.Context(), userID(c), service.CreateTradingAccountParams{
		Name:        req.Name,
		Type:        req.Type,
		Institution: req.Institution,
		Balance:     req.Balance.Decimal,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(acct)
}

func (h *TradingAccountHandler) List(c *fiber.Ctx) error {
	accts, err := h.Accounts.TradingAccountsForUser(c.Context(), userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(accts)
}

func (h *TradingAccountHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	acct, err := h.Accounts.TradingAccount(c.Context(), id, userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(acct)
}

func (h *TradingAccountHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var req updateTradingAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	acct, err := h.Accounts.UpdateTradingAccount(c.Context(), id, userID(c), domain.TradingAccountPatch{
		Name:    req.Name,
		Type:    req.Type,
		Balance: req.Balance,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(acct)
}

func (h *TradingAccountHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.Accounts.DeleteTradingAccount(c.Context(), id, userID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *TradingAccountHandler) SetBalance(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var req setBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.Accounts.SetBalance(c.Context(), id, domain.KindTrading, userID(c), req.Balance); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
