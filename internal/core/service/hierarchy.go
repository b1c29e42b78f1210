package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ma-nadeau/FRED/internal/core/domain"
)

// Hierarchy resolves the ownership chain
// BankAccount|TradingAccount -> MainAccount -> User. It is the single
// indirection point for ownership; nothing else re-derives it.
type Hierarchy struct {
	accounts AccountStore
}

// NewHierarchy creates a Hierarchy over an account store.
func NewHierarchy(accounts AccountStore) *Hierarchy {
	return &Hierarchy{accounts: accounts}
}

// ResolveOwner returns the user id owning the given account, or
// domain.ErrNotFound when no such account exists. Read-only.
func (h *Hierarchy) ResolveOwner(ctx context.Context, accountID uuid.UUID, kind domain.AccountKind) (uuid.UUID, error) {
	switch kind {
	case domain.KindBank:
		return h.accounts.OwnerOfBankAccount(ctx, accountID)
	case domain.KindTrading:
		return h.accounts.OwnerOfTradingAccount(ctx, accountID)
	default:
		return uuid.Nil, fmt.Errorf("unknown account kind %q: %w", kind, domain.ErrBadRequest)
	}
}
