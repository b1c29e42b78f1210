package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ma-nadeau/FRED/internal/core/domain"
)

// Transactions is the ledger over bank transactions: ownership-checked CRUD
// with duplicate suppression.
type Transactions struct {
	store TransactionStore
	guard *Guard
}

// NewTransactions creates the transaction ledger service.
func NewTransactions(store TransactionStore, guard *Guard) *Transactions {
	return &Transactions{store: store, guard: guard}
}

// CreateTransactionParams holds the fields of a new transaction.
type CreateTransactionParams struct {
	AccountID     uuid.UUID
	Description   string
	Type          domain.TransactionType
	Category      domain.Category
	Amount        decimal.Decimal
	TransactionAt time.Time
}

func (p CreateTransactionParams) validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("invalid transaction type %q: %w", p.Type, domain.ErrBadRequest)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("invalid category %q: %w", p.Category, domain.ErrBadRequest)
	}
	if p.TransactionAt.IsZero() {
		return fmt.Errorf("transactionAt is required: %w", domain.ErrBadRequest)
	}
	return domain.CheckAmount(p.Amount)
}

// Create posts a transaction to a bank account the user owns. A row whose
// (description, type, category, amount, transactionAt) tuple already exists
// under the account fails with domain.ErrConflict.
func (s *Transactions) Create(ctx context.Context, userID uuid.UUID, p CreateTransactionParams) (domain.Transaction, error) {
	if err := p.validate(); err != nil {
		return domain.Transaction{}, err
	}
	if err := s.guard.AssertOwnership(ctx, p.AccountID, domain.KindBank, userID); err != nil {
		return domain.Transaction{}, err
	}

	t, err := s.store.InsertTransaction(ctx, domain.Transaction{
		AccountID:     p.AccountID,
		Description:   p.Description,
		Type:          p.Type,
		Category:      p.Category,
		Amount:        p.Amount,
		TransactionAt: p.TransactionAt,
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	slog.Info("transaction created", "transaction_id", t.ID, "account_id", t.AccountID)
	return t, nil
}

// Get returns a transaction the user owns through its account.
func (s *Transactions) Get(ctx context.Context, transactionID, userID uuid.UUID) (domain.Transaction, error) {
	t, err := s.store.TransactionByID(ctx, transactionID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := s.guard.AssertOwnership(ctx, t.AccountID, domain.KindBank, userID); err != nil {
		return domain.Transaction{}, err
	}
	return t, nil
}

// Update applies a patch to a transaction after re-validating ownership.
// Unset patch fields are left unchanged.
func (s *Transactions) Update(ctx context.Context, transactionID, userID uuid.UUID, patch domain.TransactionPatch) (domain.Transaction, error) {
	if _, err := s.Get(ctx, transactionID, userID); err != nil {
		return domain.Transaction{}, err
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return domain.Transaction{}, fmt.Errorf("invalid transaction type %q: %w", *patch.Type, domain.ErrBadRequest)
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return domain.Transaction{}, fmt.Errorf("invalid category %q: %w", *patch.Category, domain.ErrBadRequest)
	}
	if patch.Amount != nil {
		if err := domain.CheckAmount(*patch.Amount); err != nil {
			return domain.Transaction{}, err
		}
	}
	return s.store.UpdateTransaction(ctx, transactionID, patch)
}

// Delete removes a transaction. Deleting the same id again fails with
// domain.ErrNotFound, not a no-op success.
func (s *Transactions) Delete(ctx context.Context, transactionID, userID uuid.UUID) error {
	if _, err := s.Get(ctx, transactionID, userID); err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}
	slog.Info("transaction deleted", "transaction_id", transactionID)
	return nil
}

// ListForUser returns every transaction across every bank account whose
// MainAccount belongs to the user.
func (s *Transactions) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	return s.store.TransactionsForUser(ctx, userID)
}
