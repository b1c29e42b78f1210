package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ma-nadeau/FRED/internal/core/domain"
)

func TestInsertTransactionConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	user, err := store.CreateUser(ctx, domain.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	acct, err := store.CreateBankAccount(ctx, user.ID, "RBC", domain.BankAccount{
		Name: "Chequing",
		Type: domain.AccountChecking,
	})
	require.NoError(t, err)

	row := domain.Transaction{
		AccountID:     acct.ID,
		Description:   "weekly groceries",
		Type:          domain.Withdrawal,
		Category:      domain.CategoryGroceries,
		Amount:        decimal.RequireFromString("82.50"),
		TransactionAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	const writers = 16
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.InsertTransaction(ctx, row)
		}(i)
	}
	wg.Wait()

	// Exactly one write wins; the rest collide.
	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrConflict):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, writers-1, conflict)

	list, err := store.TransactionsForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
