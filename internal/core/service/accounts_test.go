package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ma-nadeau/FRED/internal/core/domain"
)

func TestCreateBankAccountRoundTrip(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created := e.bankAccount(t, e.alice.ID)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, created.Balance.Equal(dec(t, "150.00")))

	got, err := e.accounts.BankAccount(ctx, created.ID, e.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Everyday Chequing", got.Name)
	assert.Equal(t, domain.AccountChecking, got.Type)
	assert.True(t, got.Balance.Equal(dec(t, "150.00")))
	assert.True(t, got.InterestRate.Equal(dec(t, "0.0150")))
	assert.Empty(t, got.Transactions)
}

func TestCreateBankAccountValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.accounts.CreateBankAccount(ctx, e.alice.ID, CreateBankAccountParams{
		Type:    domain.AccountChecking,
		Balance: dec(t, "0"),
	})
	require.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = e.accounts.CreateBankAccount(ctx, e.alice.ID, CreateBankAccountParams{
		Name:    "Chequing",
		Type:    domain.AccountType("MATTRESS"),
		Balance: dec(t, "0"),
	})
	require.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = e.accounts.CreateBankAccount(ctx, e.alice.ID, CreateBankAccountParams{
		Name:    "Chequing",
		Type:    domain.AccountChecking,
		Balance: dec(t, "10.123"),
	})
	require.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreateTradingAccountValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.accounts.CreateTradingAccount(ctx, e.alice.ID, CreateTradingAccountParams{
		Name:    "Investing",
		Type:    domain.TradingAccountType("FOREX"),
		Balance: dec(t, "0"),
	})
	require.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestAccountsForUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.accounts.BankAccountsForUser(ctx, e.alice.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.accounts.TradingAccountsForUser(ctx, e.alice.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	e.bankAccount(t, e.alice.ID)
	e.bankAccount(t, e.alice.ID)
	e.tradingAccount(t, e.alice.ID)
	e.bankAccount(t, e.bob.ID)

	banks, err := e.accounts.BankAccountsForUser(ctx, e.alice.ID)
	require.NoError(t, err)
	assert.Len(t, banks, 2)

	tradings, err := e.accounts.TradingAccountsForUser(ctx, e.alice.ID)
	require.NoError(t, err)
	assert.Len(t, tradings, 1)
}

func TestAccountCrossUserForbidden(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	bank := e.bankAccount(t, e.alice.ID)
	trading := e.tradingAccount(t, e.alice.ID)

	_, err := e.accounts.BankAccount(ctx, bank.ID, e.bob.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.accounts.TradingAccount(ctx, trading.ID, e.bob.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	err = e.accounts.DeleteBankAccount(ctx, bank.ID, e.bob.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	name := "hijacked"
	_, err = e.accounts.UpdateTradingAccount(ctx, trading.ID, e.bob.ID, domain.TradingAccountPatch{Name: &name})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateBankAccount(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.bankAccount(t, e.alice.ID)

	name := "Joint Chequing"
	typ := domain.AccountSavingsTFSA
	updated, err := e.accounts.UpdateBankAccount(ctx, acct.ID, e.alice.ID, domain.BankAccountPatch{
		Name: &name,
		Type: &typ,
	})
	require.NoError(t, err)
	assert.Equal(t, "Joint Chequing", updated.Name)
	assert.Equal(t, domain.AccountSavingsTFSA, updated.Type)
	// Balance untouched by a patch that does not carry it.
	assert.True(t, updated.Balance.Equal(dec(t, "150.00")))
}

func TestSetBalanceOverwrites(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.bankAccount(t, e.alice.ID)

	require.NoError(t, e.accounts.SetBalance(ctx, acct.ID, domain.KindBank, e.alice.ID, dec(t, "999.99")))

	got, err := e.accounts.BankAccount(ctx, acct.ID, e.alice.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(dec(t, "999.99")))

	err = e.accounts.SetBalance(ctx, acct.ID, domain.KindBank, e.alice.ID, dec(t, "1.999"))
	require.ErrorIs(t, err, domain.ErrBadRequest)

	err = e.accounts.SetBalance(ctx, acct.ID, domain.KindBank, e.bob.ID, dec(t, "0.00"))
	require.ErrorIs(t, err, domain.ErrForbidden)

	trading := e.tradingAccount(t, e.alice.ID)
	require.NoError(t, e.accounts.SetBalance(ctx, trading.ID, domain.KindTrading, e.alice.ID, dec(t, "2500.00")))
	gotTrading, err := e.accounts.TradingAccount(ctx, trading.ID, e.alice.ID)
	require.NoError(t, err)
	assert.True(t, gotTrading.Balance.Equal(dec(t, "2500.00")))
}

func TestBalanceNeverDerivedFromLedger(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.bankAccount(t, e.alice.ID)

	_, err := e.transactions.Create(ctx, e.alice.ID, CreateTransactionParams{
		AccountID:     acct.ID,
		Description:   "pay day",
		Type:          domain.Deposit,
		Category:      domain.CategorySalary,
		Amount:        dec(t, "100.00"),
		TransactionAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Posting a deposit moves nothing: the stored balance is an
	// independently set value.
	got, err := e.accounts.BankAccount(ctx, acct.ID, e.alice.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(dec(t, "150.00")))
	require.Len(t, got.Transactions, 1)
}

func TestSetInterestRate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.bankAccount(t, e.alice.ID)

	require.NoError(t, e.accounts.SetInterestRate(ctx, acct.ID, e.alice.ID, dec(t, "0.0425")))

	got, err := e.accounts.BankAccount(ctx, acct.ID, e.alice.ID)
	require.NoError(t, err)
	assert.True(t, got.InterestRate.Equal(dec(t, "0.0425")))

	err = e.accounts.SetInterestRate(ctx, acct.ID, e.alice.ID, dec(t, "0.04255"))
	require.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestDeleteBankAccountCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.bankAccount(t, e.alice.ID)

	created, err := e.transactions.Create(ctx, e.alice.ID, CreateTransactionParams{
		AccountID:     acct.ID,
		Description:   "rent",
		Type:          domain.Withdrawal,
		Category:      domain.CategoryRent,
		Amount:        dec(t, "1800.00"),
		TransactionAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, e.accounts.DeleteBankAccount(ctx, acct.ID, e.alice.ID))

	_, err = e.accounts.BankAccount(ctx, acct.ID, e.alice.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// The ledger went with the account.
	_, err = e.transactions.Get(ctx, created.ID, e.alice.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	list, err := e.transactions.ListForUser(ctx, e.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteTradingAccountCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.tradingAccount(t, e.alice.ID)

	created, err := e.trades.Create(ctx, e.alice.ID, buyOrder(t, acct.ID))
	require.NoError(t, err)

	require.NoError(t, e.accounts.DeleteTradingAccount(ctx, acct.ID, e.alice.ID))

	_, err = e.accounts.TradingAccount(ctx, acct.ID, e.alice.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.trades.Get(ctx, created.ID, e.alice.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
