package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ma-nadeau/FRED/internal/core/domain"
)

// AccountRepository persists MainAccount anchors and their bank/trading
// children. The MainAccount and its child are created in one transaction and
// deleted together; deleting the anchor cascades to the ledgers.
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates an AccountRepository over the shared pool.
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) CreateBankAccount(ctx context.Context, userID uuid.UUID, institution string, acct domain.BankAccount) (domain.BankAccount, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.BankAccount{}, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO main_accounts (user_id, institution, type)
		VALUES ($1, $2, $3) RETURNING id`,
		userID, institution, string(domain.MainAccountBank)).Scan(&acct.MainAccountID)
	if err != nil {
		return domain.BankAccount{}, mapError(err, "creating main account")
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO bank_accounts (main_account_id, name, type, balance, interest_rate)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		acct.MainAccountID, acct.Name, string(acct.Type), acct.Balance, acct.InterestRate).Scan(&acct.ID)
	if err != nil {
		return domain.BankAccount{}, mapError(err, "creating bank account")
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.BankAccount{}, err
	}
	acct.Transactions = []domain.Transaction{}
	return acct, nil
}

func (r *AccountRepository) CreateTradingAccount(ctx context.Context, userID uuid.UUID, institution string, acct domain.TradingAccount) (domain.TradingAccount, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.TradingAccount{}, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO main_accounts (user_id, institution, type)
		VALUES ($1, $2, $3) RETURNING id`,
		userID, institution, string(domain.MainAccountBank)).Scan(&acct.MainAccountID)
	if err != nil {
		return domain.TradingAccount{}, mapError(err, "creating main account")
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO trading_accounts (main_account_id, name, type, balance)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		acct.MainAccountID, acct.Name, string(acct.Type), acct.Balance).Scan(&acct.ID)
	if err != nil {
		return domain.TradingAccount{}, mapError(err, "creating trading account")
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.TradingAccount{}, err
	}
	acct.TradesStock = []domain.TradeStockTransaction{}
	return acct, nil
}

func (r *AccountRepository) BankAccountByID(ctx context.Context, id uuid.UUID) (domain.BankAccount, error) {
	query := `
		SELECT id, main_account_id, name, type, balance, interest_rate
		FROM bank_accounts WHERE id = $1
	`
	var acct domain.BankAccount
	err := r.db.QueryRow(ctx, query, id).
		Scan(&acct.ID, &acct.MainAccountID, &acct.Name, &acct.Type, &acct.Balance, &acct.InterestRate)
	if err != nil {
		return domain.BankAccount{}, mapError(err, "bank account by id")
	}
	acct.Transactions, err = r.transactionsOf(ctx, id)
	if err != nil {
		return domain.BankAccount{}, err
	}
	return acct, nil
}

func (r *AccountRepository) TradingAccountByID(ctx context.Context, id uuid.UUID) (domain.TradingAccount, error) {
	query := `
		SELECT id, main_account_id, name, type, balance
		FROM trading_accounts WHERE id = $1
	`
	var acct domain.TradingAccount
	err := r.db.QueryRow(ctx, query, id).
		Scan(&acct.ID, &acct.MainAccountID, &acct.Name, &acct.Type, &acct.Balance)
	if err != nil {
		return domain.TradingAccount{}, mapError(err, "trading account by id")
	}
	acct.TradesStock, err = r.tradesOf(ctx, id)
	if err != nil {
		return domain.TradingAccount{}, err
	}
	return acct, nil
}

func (r *AccountRepository) BankAccountsForUser(ctx context.Context, userID uuid.UUID) ([]domain.BankAccount, error) {
	query := `
		SELECT b.id, b.main_account_id, b.name, b.type, b.balance, b.interest_rate
		FROM bank_accounts b
		JOIN main_accounts m ON m.id = b.main_account_id
		WHERE m.user_id = $1
		ORDER BY b.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accts []domain.BankAccount
	for rows.Next() {
		var acct domain.BankAccount
		if err := rows.Scan(&acct.ID, &acct.MainAccountID, &acct.Name, &acct.Type, &acct.Balance, &acct.InterestRate); err != nil {
			return nil, err
		}
		accts = append(accts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range accts {
		accts[i].Transactions, err = r.transactionsOf(ctx, accts[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return accts, nil
}

func (r *AccountRepository) TradingAccountsForUser(ctx context.Context, userID uuid.UUID) ([]domain.TradingAccount, error) {
	query := `
		SELECT t.id, t.main_account_id, t.name, t.type, t.balance
		FROM trading_accounts t
		JOIN main_accounts m ON m.id = t.main_account_id
		WHERE m.user_id = $1
		ORDER BY t.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accts []domain.TradingAccount
	for rows.Next() {
		var acct domain.TradingAccount
		if err := rows.Scan(&acct.ID, &acct.MainAccountID, &acct.Name, &acct.Type, &acct.Balance); err != nil {
			return nil, err
		}
		accts = append(accts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range accts {
		accts[i].TradesStock, err = r.tradesOf(ctx, accts[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return accts, nil
}

func (r *AccountRepository) UpdateBankAccount(ctx context.Context, id uuid.UUID, patch domain.BankAccountPatch) (domain.BankAccount, error) {
	query := `
		UPDATE bank_accounts SET
			name = COALESCE($2, name),
			type = COALESCE($3, type),
			balance = COALESCE($4, balance),
			interest_rate = COALESCE($5, interest_rate)
		WHERE id = $1
		RETURNING id, main_account_id, name, type, balance, interest_rate
	`
	var acct domain.BankAccount
	err := r.db.QueryRow(ctx, query, id,
		patch.Name, typeArg(patch.Type), patch.Balance, patch.InterestRate).
		Scan(&acct.ID, &acct.MainAccountID, &acct.Name, &acct.Type, &acct.Balance, &acct.InterestRate)
	if err != nil {
		return domain.BankAccount{}, mapError(err, "updating bank account")
	}
	acct.Transactions, err = r.transactionsOf(ctx, id)
	if err != nil {
		return domain.BankAccount{}, err
	}
	return acct, nil
}

func (r *AccountRepository) UpdateTradingAccount(ctx context.Context, id uuid.UUID, patch domain.TradingAccountPatch) (domain.TradingAccount, error) {
	query := `
		UPDATE trading_accounts SET
			name = COALESCE($2, name),
			type = COALESCE($3, type),
			balance = COALESCE($4, balance)
		WHERE id = $1
		RETURNING id, main_account_id, name, type, balance
	`
	var acct domain.TradingAccount
	err := r.db.QueryRow(ctx, query, id,
		patch.Name, typeArg(patch.Type), patch.Balance).
		Scan(&acct.ID, &acct.MainAccountID, &acct.Name, &acct.Type, &acct.Balance)
	if err != nil {
		return domain.TradingAccount{}, mapError(err, "updating trading account")
	}
	acct.TradesStock, err = r.tradesOf(ctx, id)
	if err != nil {
		return domain.TradingAccount{}, err
	}
	return acct, nil
}

func (r *AccountRepository) DeleteBankAccount(ctx context.Context, id uuid.UUID) error {
	// Deleting the anchor cascades to the child account and its transactions.
	tag, err := r.db.Exec(ctx, `
		DELETE FROM main_accounts
		WHERE id = (SELECT main_account_id FROM bank_accounts WHERE id = $1)`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bank account %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *AccountRepository) DeleteTradingAccount(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM main_accounts
		WHERE id = (SELECT main_account_id FROM trading_accounts WHERE id = $1)`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trading account %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *AccountRepository) OwnerOfBankAccount(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	query := `
		SELECT m.user_id
		FROM bank_accounts b
		JOIN main_accounts m ON m.id = b.main_account_id
		WHERE b.id = $1
	`
	var owner uuid.UUID
	if err := r.db.QueryRow(ctx, query, id).Scan(&owner); err != nil {
		return uuid.Nil, mapError(err, "owner of bank account")
	}
	return owner, nil
}

func (r *AccountRepository) OwnerOfTradingAccount(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	query := `
		SELECT m.user_id
		FROM trading_accounts t
		JOIN main_accounts m ON m.id = t.main_account_id
		WHERE t.id = $1
	`
	var owner uuid.UUID
	if err := r.db.QueryRow(ctx, query, id).Scan(&owner); err != nil {
		return uuid.Nil, mapError(err, "owner of trading account")
	}
	return owner, nil
}

func (r *AccountRepository) transactionsOf(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	return scanTransactions(r.db.Query(ctx, `
		SELECT id, account_id, description, type, category, amount, transaction_at
		FROM transactions WHERE account_id = $1 ORDER BY seq`, accountID))
}

func (r *AccountRepository) tradesOf(ctx context.Context, accountID uuid.UUID) ([]domain.TradeStockTransaction, error) {
	return scanTrades(r.db.Query(ctx, `
		SELECT id, trading_account_id, symbol, quantity, purchase_price, sell_price, transaction_at
		FROM trade_stock_transactions WHERE trading_account_id = $1 ORDER BY seq`, accountID))
}

// typeArg turns a possibly-nil pointer to a string-kinded enum into a
// nullable text argument.
func typeArg[T ~string](p *T) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}
