package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ma-nadeau/FRED/internal/core/domain"
)

// TransactionRepository persists bank transactions. The unique index over
// (account_id, description, type, category, amount, transaction_at) makes the
// duplicate check atomic with the insert; a violation surfaces as
// domain.ErrConflict.
type TransactionRepository struct {
	db *pgxpool.Pool
}

// NewTransactionRepository creates a TransactionRepository over the shared pool.
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) InsertTransaction(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	query := `
		INSERT INTO transactions (account_id, description, type, category, amount, transaction_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		t.AccountID, t.Description, string(t.Type), string(t.Category), t.Amount, t.TransactionAt).
		Scan(&t.ID)
	if err != nil {
		return domain.Transaction{}, mapError(err, "transaction already saved")
	}
	return t, nil
}

func (r *TransactionRepository) TransactionByID(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	query := `
		SELECT id, account_id, description, type, category, amount, transaction_at
		FROM transactions WHERE id = $1
	`
	var t domain.Transaction
	err := r.db.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.AccountID, &t.Description, &t.Type, &t.Category, &t.Amount, &t.TransactionAt)
	if err != nil {
		return domain.Transaction{}, mapError(err, "transaction by id")
	}
	return t, nil
}

func (r *TransactionRepository) UpdateTransaction(ctx context.Context, id uuid.UUID, patch domain.TransactionPatch) (domain.Transaction, error) {
	query := `
		UPDATE transactions SET
			description = COALESCE($2, description),
			type = COALESCE($3, type),
			category = COALESCE($4, category),
			amount = COALESCE($5, amount),
			transaction_at = COALESCE($6, transaction_at)
		WHERE id = $1
		RETURNING id, account_id, description, type, category, amount, transaction_at
	`
	var t domain.Transaction
	err := r.db.QueryRow(ctx, query, id,
		patch.Description, typeArg(patch.Type), typeArg(patch.Category), patch.Amount, patch.TransactionAt).
		Scan(&t.ID, &t.AccountID, &t.Description, &t.Type, &t.Category, &t.Amount, &t.TransactionAt)
	if err != nil {
		return domain.Transaction{}, mapError(err, "updating transaction")
	}
	return t, nil
}

func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *TransactionRepository) TransactionsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	query := `
		SELECT t.id, t.account_id, t.description, t.type, t.category, t.amount, t.transaction_at
		FROM transactions t
		JOIN bank_accounts b ON b.id = t.account_id
		JOIN main_accounts m ON m.id = b.main_account_id
		WHERE m.user_id = $1
		ORDER BY t.seq
	`
	return scanTransactions(r.db.Query(ctx, query, userID))
}

func scanTransactions(rows pgx.Rows, err error) ([]domain.Transaction, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Description, &t.Type, &t.Category, &t.Amount, &t.TransactionAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
