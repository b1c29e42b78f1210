package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ma-nadeau/FRED/internal/core/domain"
	"github.com/ma-nadeau/FRED/internal/core/service"
)

// BankAccountHandler exposes bank account CRUD and the direct
// balance/interest-rate overwrites.
type BankAccountHandler struct {
	Accounts *service.Accounts
}

type createBankAccountRequest struct {
	Name         string              `json:"name"`
	Type         domain.AccountType  `json:"type"`
	Institution  string              `json:"institution"`
	Balance      decimal.NullDecimal `json:"balance"`
	InterestRate decimal.NullDecimal `json:"interestRate"`
}

type updateBankAccountRequest struct {
	Name         *string             `json:"name"`
	Type         *domain.AccountType `json:"type"`
	Balance      *decimal.Decimal    `json:"balance"`
	InterestRate *decimal.Decimal    `json:"interestRate"`
}

type setBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
}

type setInterestRateRequest struct {
	InterestRate decimal.Decimal `json:"interestRate"`
}

func (h *BankAccountHandler) Create(c *fiber.Ctx) error {
	var req createBankAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	acct, err := h.Accounts.CreateBankAccount(c.Context(), userID(c), service.CreateBankAccountParams{
		Name:         req.Name,
		Type:         req.Type,
		Institution:  req.Institution,
		Balance:      req.Balance.Decimal,
		InterestRate: req.InterestRate.Decimal,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(acct)
}

func (h *BankAccountHandler) List(c *fiber.Ctx) error {
	accts, err := h.Accounts.BankAccountsForUser(c.Context(), userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(accts)
}

func (h *BankAccountHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	acct, err := h.Accounts.BankAccount(c.Context(), id, userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(acct)
}

func (h *BankAccountHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var req updateBankAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	acct, err := h.Accounts.UpdateBankAccount(c.Context(), id, userID(c), domain.BankAccountPatch{
		Name:         req.Name,
		Type:         req.Type,
		Balance:      req.Balance,
		InterestRate: req.InterestRate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(acct)
}

func (h *BankAccountHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.Accounts.DeleteBankAccount(c.Context(), id, userID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *BankAccountHandler) SetBalance(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var req setBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.Accounts.SetBalance(c.Context(), id, domain.KindBank, userID(c), req.Balance); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *BankAccountHandler) SetInterestRate(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var req setInterestRateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.Accounts.SetInterestRate(c.Context(), id, userID(c), req.InterestRate); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
