package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ma-nadeau/FRED/internal/adapter/storage/memory"
	"github.com/ma-nadeau/FRED/internal/core/domain"
	"github.com/ma-nadeau/FRED/internal/core/security"
)

// env wires every service over a fresh in-memory store with two seeded users.
type env struct {
	store        *memory.Store
	accounts     *Accounts
	transactions *Transactions
	trades       *Trades
	auth         *Auth
	alice        domain.User
	bob          domain.User
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	guard := NewGuard(NewHierarchy(store))
	e := &env{
		store:        store,
		accounts:     NewAccounts(store, guard),
		transactions: NewTransactions(store, guard),
		trades:       NewTrades(store, guard),
		auth:         NewAuth(store, security.NewTokens("test-secret", time.Hour)),
	}
	var err error
	e.alice, err = store.CreateUser(context.Background(), domain.User{Name: "Alice", Email: "alice@example.com", Age: 30})
	require.NoError(t, err)
	e.bob, err = store.CreateUser(context.Background(), domain.User{Name: "Bob", Email: "bob@example.com", Age: 41})
	require.NoError(t, err)
	return e
}

func (e *env) bankAccount(t *testing.T, userID uuid.UUID) domain.BankAccount {
	t.Helper()
	acct, err := e.accounts.CreateBankAccount(context.Background(), userID, CreateBankAccountParams{
		Name:         "Everyday Chequing",
		Type:         domain.AccountChecking,
		Institution:  "RBC",
		Balance:      dec(t, "150.00"),
		InterestRate: dec(t, "0.0150"),
	})
	require.NoError(t, err)
	return acct
}

func (e *env) tradingAccount(t *testing.T, userID uuid.UUID) domain.TradingAccount {
	t.Helper()
	acct, err := e.accounts.CreateTradingAccount(context.Background(), userID, CreateTradingAccountParams{
		Name:        "Direct Investing",
		Type:        domain.TradingStock,
		Institution: "Questrade",
		Balance:     dec(t, "1000.00"),
	})
	require.NoError(t, err)
	return acct
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func price(t *testing.T, s string) decimal.NullDecimal {
	t.Helper()
	return decimal.NullDecimal{Decimal: dec(t, s), Valid: true}
}
