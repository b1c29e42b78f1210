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

// Trades is the ledger over trade transactions. It mirrors Transactions but
// is keyed by trading account and enforces buy/sell field validity instead of
// duplicate suppression: repeated identical trades (dollar-cost averaging the
// same symbol and price) are legitimate.
type Trades struct {
	store TradeStore
	guard *Guard
}

// NewTrades creates the trade ledger service.
func NewTrades(store TradeStore, guard *Guard) *Trades {
	return &Trades{store: store, guard: guard}
}

// CreateTradeParams holds the fields of a new trade.
type CreateTradeParams struct {
	TradingAccountID uuid.UUID
	Symbol           string
	Quantity         decimal.Decimal
	PurchasePrice    decimal.NullDecimal
	SellPrice        decimal.NullDecimal
	TransactionAt    time.Time
}

// checkTradeSides enforces the exclusivity rule: exactly one of
// purchasePrice/sellPrice set.
func checkTradeSides(purchase, sell decimal.NullDecimal) error {
	if purchase.Valid == sell.Valid {
		return fmt.Errorf("exactly one of purchasePrice and sellPrice must be set: %w", domain.ErrBadRequest)
	}
	if err := domain.CheckPrice(purchase); err != nil {
		return err
	}
	return domain.CheckPrice(sell)
}

// Create posts a trade to a trading account the user owns.
func (s *Trades) Create(ctx context.Context, userID uuid.UUID, p CreateTradeParams) (domain.TradeStockTransaction, error) {
	if !domain.ValidSymbol(p.Symbol) {
		return domain.TradeStockTransaction{}, fmt.Errorf("invalid symbol %q: %w", p.Symbol, domain.ErrBadRequest)
	}
	if err := domain.CheckQuantity(p.Quantity); err != nil {
		return domain.TradeStockTransaction{}, err
	}
	if err := checkTradeSides(p.PurchasePrice, p.SellPrice); err != nil {
		return domain.TradeStockTransaction{}, err
	}
	if err := s.guard.AssertOwnership(ctx, p.TradingAccountID, domain.KindTrading, userID); err != nil {
		return domain.TradeStockTransaction{}, err
	}

	at := p.TransactionAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	t, err := s.store.InsertTrade(ctx, domain.TradeStockTransaction{
		TradingAccountID: p.TradingAccountID,
		Symbol:           domain.NormalizeSymbol(p.Symbol),
		Quantity:         p.Quantity,
		PurchasePrice:    p.PurchasePrice,
		SellPrice:        p.SellPrice,
		TransactionAt:    at,
	})
	if err != nil {
		return domain.TradeStockTransaction{}, err
	}
	slog.Info("trade created", "trade_id", t.ID, "trading_account_id", t.TradingAccountID, "symbol", t.Symbol)
	return t, nil
}

// Get returns a trade the user owns through its trading account.
func (s *Trades) Get(ctx context.Context, tradeID, userID uuid.UUID) (domain.TradeStockTransaction, error) {
	t, err := s.store.TradeByID(ctx, tradeID)
	if err != nil {
		return domain.TradeStockTransaction{}, err
	}
	if err := s.guard.AssertOwnership(ctx, t.TradingAccountID, domain.KindTrading, userID); err != nil {
		return domain.TradeStockTransaction{}, err
	}
	return t, nil
}

// Update applies a patch after re-validating ownership. When either price
// field or the quantity is part of the patch, the merged row is re-checked
// against the exclusivity and positivity rules before anything is written.
func (s *Trades) Update(ctx context.Context, tradeID, userID uuid.UUID, patch domain.TradePatch) (domain.TradeStockTransaction, error) {
	current, err := s.Get(ctx, tradeID, userID)
	if err != nil {
		return domain.TradeStockTransaction{}, err
	}

	if patch.Symbol != nil {
		if !domain.ValidSymbol(*patch.Symbol) {
			return domain.TradeStockTransaction{}, fmt.Errorf("invalid symbol %q: %w", *patch.Symbol, domain.ErrBadRequest)
		}
		norm := domain.NormalizeSymbol(*patch.Symbol)
		patch.Symbol = &norm
	}
	if patch.Quantity != nil {
		if err := domain.CheckQuantity(*patch.Quantity); err != nil {
			return domain.TradeStockTransaction{}, err
		}
	}
	if patch.PurchasePrice != nil || patch.SellPrice != nil {
		purchase, sell := current.PurchasePrice, current.SellPrice
		if patch.PurchasePrice != nil {
			purchase = *patch.PurchasePrice
		}
		if patch.SellPrice != nil {
			sell = *patch.SellPrice
		}
		if err := checkTradeSides(purchase, sell); err != nil {
			return domain.TradeStockTransaction{}, err
		}
	}
	return s.store.UpdateTrade(ctx, tradeID, patch)
}

// Delete removes a trade. A second call on the same id fails with
// domain.ErrNotFound.
func (s *Trades) Delete(ctx context.Context, tradeID, userID uuid.UUID) error {
	if _, err := s.Get(ctx, tradeID, userID); err != nil {
		return err
	}
	if err := s.store.DeleteTrade(ctx, tradeID); err != nil {
		return err
	}
	slog.Info("trade deleted", "trade_id", tradeID)
	return nil
}

// ListForAccount returns the trades of one trading account the user owns.
func (s *Trades) ListForAccount(ctx context.Context, tradingAccountID, userID uuid.UUID) ([]domain.TradeStockTransaction, error) {
	if err := s.guard.AssertOwnership(ctx, tradingAccountID, domain.KindTrading, userID); err != nil {
		return nil, err
	}
	return s.store.TradesForAccount(ctx, tradingAccountID)
}
