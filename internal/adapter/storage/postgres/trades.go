package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ma-nadeau/FRED/internal/core/domain"
)

// TradeRepository persists trade transactions. No dedup index here: repeated
// identical trades are allowed.
type TradeRepository struct {
	db *pgxpool.Pool
}

// NewTradeRepository creates a TradeRepository over the shared pool.
func NewTradeRepository(db *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{db: db}
}

func (r *TradeRepository) InsertTrade(ctx context.Context, t domain.TradeStockTransaction) (domain.TradeStockTransaction, error) {
	query := `
		INSERT INTO trade_stock_transactions
			(trading_account_id, symbol, quantity, purchase_price, sell_price, transaction_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		t.TradingAccountID, t.Symbol, t.Quantity, t.PurchasePrice, t.SellPrice, t.TransactionAt).
		Scan(&t.ID)
	if err != nil {
		return domain.TradeStockTransaction{}, mapError(err, "creating trade")
	}
	return t, nil
}

func (r *TradeRepository) TradeByID(ctx context.Context, id uuid.UUID) (domain.TradeStockTransaction, error) {
	query := `
		SELECT id, trading_account_id, symbol, quantity, purchase_price, sell_price, transaction_at
		FROM trade_stock_transactions WHERE id = $1
	`
	var t domain.TradeStockTransaction
	err := r.db.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.TradingAccountID, &t.Symbol, &t.Quantity, &t.PurchasePrice, &t.SellPrice, &t.TransactionAt)
	if err != nil {
		return domain.TradeStockTransaction{}, mapError(err, "trade by id")
	}
	return t, nil
}

// UpdateTrade rewrites the full row from the merged patch inside one
// transaction so the buy/sell CHECK constraint sees the final state.
func (r *TradeRepository) UpdateTrade(ctx context.Context, id uuid.UUID, patch domain.TradePatch) (domain.TradeStockTransaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.TradeStockTransaction{}, err
	}
	defer tx.Rollback(ctx)

	var t domain.TradeStockTransaction
	err = tx.QueryRow(ctx, `
		SELECT id, trading_account_id, symbol, quantity, purchase_price, sell_price, transaction_at
		FROM trade_stock_transactions WHERE id = $1 FOR UPDATE`, id).
		Scan(&t.ID, &t.TradingAccountID, &t.Symbol, &t.Quantity, &t.PurchasePrice, &t.SellPrice, &t.TransactionAt)
	if err != nil {
		return domain.TradeStockTransaction{}, mapError(err, "updating trade")
	}

	if patch.Symbol != nil {
		t.Symbol = *patch.Symbol
	}
	if patch.Quantity != nil {
		t.Quantity = *patch.Quantity
	}
	if patch.PurchasePrice != nil {
		t.PurchasePrice = *patch.PurchasePrice
	}
	if patch.SellPrice != nil {
		t.SellPrice = *patch.SellPrice
	}
	if patch.TransactionAt != nil {
		t.TransactionAt = *patch.TransactionAt
	}

	_, err = tx.Exec(ctx, `
		UPDATE trade_stock_transactions
		SET symbol = $2, quantity = $3, purchase_price = $4, sell_price = $5, transaction_at = $6
		WHERE id = $1`,
		id, t.Symbol, t.Quantity, t.PurchasePrice, t.SellPrice, t.TransactionAt)
	if err != nil {
		return domain.TradeStockTransaction{}, mapError(err, "updating trade")
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.TradeStockTransaction{}, err
	}
	return t, nil
}

func (r *TradeRepository) DeleteTrade(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trade_stock_transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *TradeRepository) TradesForAccount(ctx context.Context, accountID uuid.UUID) ([]domain.TradeStockTransaction, error) {
	query := `
		SELECT id, trading_account_id, symbol, quantity, purchase_price, sell_price, transaction_at
		FROM trade_stock_transactions WHERE trading_account_id = $1 ORDER BY seq
	`
	return scanTrades(r.db.Query(ctx, query, accountID))
}

func scanTrades(rows pgx.Rows, err error) ([]domain.TradeStockTransaction, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.TradeStockTransaction{}
	for rows.Next() {
		var t domain.TradeStockTransaction
		if err := rows.Scan(&t.ID, &t.TradingAccountID, &t.Symbol, &t.Quantity, &t.PurchasePrice, &t.SellPrice, &t.TransactionAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
