package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ma-nadeau/FRED/internal/core/domain"
)

func buyOrder(t *testing.T, accountID uuid.UUID) CreateTradeParams {
	t.Helper()
	return CreateTradeParams{
		TradingAccountID: accountID,
		Symbol:           "AAPL",
		Quantity:         dec(t, "2.5"),
		PurchasePrice:    price(t, "187.23"),
		TransactionAt:    time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC),
	}
}

func TestCreateTradeBuyAndSell(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.tradingAccount(t, e.alice.ID)

	buy, err := e.trades.Create(ctx, e.alice.ID, buyOrder(t, acct.ID))
	require.NoError(t, err)
	assert.True(t, buy.IsBuy())
	assert.True(t, buy.PurchasePrice.Valid)
	assert.False(t, buy.SellPrice.Valid)

	sell := buyOrder(t, acct.ID)
	sell.PurchasePrice = decimal.NullDecimal{}
	sell.SellPrice = price(t, "191.00")
	got, err := e.trades.Create(ctx, e.alice.ID, sell)
	require.NoError(t, err)
	assert.False(t, got.IsBuy())
	assert.True(t, got.SellPrice.Valid)
}

func TestCreateTradeSideExclusivity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.tradingAccount(t, e.alice.ID)

	both := buyOrder(t, acct.ID)
	both.SellPrice = price(t, "191.00")
	_, err := e.trades.Create(ctx, e.alice.ID, both)
	require.ErrorIs(t, err, domain.ErrBadRequest)

	neither := buyOrder(t, acct.ID)
	neither.PurchasePrice = decimal.NullDecimal{}
	_, err = e.trades.Create(ctx, e.alice.ID, neither)
	require.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreateTradeQuantityPositive(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.tradingAccount(t, e.alice.ID)

	p := buyOrder(t, acct.ID)
	p.Quantity = decimal.Zero
	_, err := e.trades.Create(ctx, e.alice.ID, p)
	require.ErrorIs(t, err, domain.ErrBadRequest)

	p = buyOrder(t, acct.ID)
	p.Quantity = dec(t, "-1")
	_, err = e.trades.Create(ctx, e.alice.ID, p)
	require.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreateTradeSymbol(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.tradingAccount(t, e.alice.ID)

	p := buyOrder(t, acct.ID)
	p.Symbol = " brk.b "
	got, err := e.trades.Create(ctx, e.alice.ID, p)
	require.NoError(t, err)
	assert.Equal(t, "BRK.B", got.Symbol)

	p = buyOrder(t, acct.ID)
	p.Symbol = "not a ticker"
	_, err = e.trades.Create(ctx, e.alice.ID, p)
	require.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreateTradeNoDuplicateSuppression(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.tradingAccount(t, e.alice.ID)

	// Dollar-cost averaging: the identical order twice is two rows.
	first, err := e.trades.Create(ctx, e.alice.ID, buyOrder(t, acct.ID))
	require.NoError(t, err)
	second, err := e.trades.Create(ctx, e.alice.ID, buyOrder(t, acct.ID))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	list, err := e.trades.ListForAccount(ctx, acct.ID, e.alice.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCreateTradeDefaultsTransactionAt(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.tradingAccount(t, e.alice.ID)

	p := buyOrder(t, acct.ID)
	p.TransactionAt = time.Time{}
	before := time.Now().UTC()
	got, err := e.trades.Create(ctx, e.alice.ID, p)
	require.NoError(t, err)
	assert.False(t, got.TransactionAt.Before(before))
}

func TestTradeCrossUserForbidden(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.tradingAccount(t, e.alice.ID)

	_, err := e.trades.Create(ctx, e.bob.ID, buyOrder(t, acct.ID))
	require.ErrorIs(t, err, domain.ErrForbidden)

	created, err := e.trades.Create(ctx, e.alice.ID, buyOrder(t, acct.ID))
	require.NoError(t, err)

	_, err = e.trades.Get(ctx, created.ID, e.bob.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.trades.ListForAccount(ctx, acct.ID, e.bob.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateTradeMergesPriceSides(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.tradingAccount(t, e.alice.ID)

	created, err := e.trades.Create(ctx, e.alice.ID, buyOrder(t, acct.ID))
	require.NoError(t, err)

	// Setting a sell price without clearing the purchase price would leave
	// both sides set.
	sell := price(t, "191.00")
	_, err = e.trades.Update(ctx, created.ID, e.alice.ID, domain.TradePatch{SellPrice: &sell})
	require.ErrorIs(t, err, domain.ErrBadRequest)

	// Flipping both sides in one patch is fine.
	cleared := decimal.NullDecimal{}
	got, err := e.trades.Update(ctx, created.ID, e.alice.ID, domain.TradePatch{
		PurchasePrice: &cleared,
		SellPrice:     &sell,
	})
	require.NoError(t, err)
	assert.False(t, got.IsBuy())
	assert.True(t, got.SellPrice.Decimal.Equal(dec(t, "191.00")))

	qty := dec(t, "0.00000001")
	got, err = e.trades.Update(ctx, created.ID, e.alice.ID, domain.TradePatch{Quantity: &qty})
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(qty))

	zero := decimal.Zero
	_, err = e.trades.Update(ctx, created.ID, e.alice.ID, domain.TradePatch{Quantity: &zero})
	require.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestDeleteTradeTwice(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.tradingAccount(t, e.alice.ID)

	created, err := e.trades.Create(ctx, e.alice.ID, buyOrder(t, acct.ID))
	require.NoError(t, err)

	require.NoError(t, e.trades.Delete(ctx, created.ID, e.alice.ID))

	err = e.trades.Delete(ctx, created.ID, e.alice.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListTradesInPostingOrder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	acct := e.tradingAccount(t, e.alice.ID)

	symbols := []string{"MSFT", "AAPL", "SHOP"}
	var ids []uuid.UUID
	for _, sym := range symbols {
		p := buyOrder(t, acct.ID)
		p.Symbol = sym
		created, err := e.trades.Create(ctx, e.alice.ID, p)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	list, err := e.trades.ListForAccount(ctx, acct.ID, e.alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, tr := range list {
		assert.Equal(t, ids[i], tr.ID)
		assert.Equal(t, symbols[i], tr.Symbol)
	}
}
