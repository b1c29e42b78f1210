package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ma-nadeau/FRED/internal/core/domain"
)

// Guard authorizes operations against an account. Every mutating or
// single-record read in the ledgers and the account service goes through
// AssertOwnership; the check always compares the MainAccount's userId to the
// requester, never the account's own id.
type Guard struct {
	hierarchy *Hierarchy
}

// NewGuard creates a Guard over a Hierarchy.
func NewGuard(hierarchy *Hierarchy) *Guard {
	return &Guard{hierarchy: hierarchy}
}

// AssertOwnership returns nil when requestingUserID owns the account,
// domain.ErrNotFound when the account does not exist, and domain.ErrForbidden
// when it exists under another user.
func (g *Guard) AssertOwnership(ctx context.Context, accountID uuid.UUID, kind domain.AccountKind, requestingUserID uuid.UUID) error {
	owner, err := g.hierarchy.ResolveOwner(ctx, accountID, kind)
	if err != nil {
		return err
	}
	if owner != requestingUserID {
		return fmt.Errorf("account %s does not belong to the user: %w", accountID, domain.ErrForbidden)
	}
	return nil
}
