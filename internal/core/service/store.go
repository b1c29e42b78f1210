package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ma-nadeau/FRED/internal/core/domain"
)

// Storage interfaces consumed by the services. Both the Postgres repositories
// and the in-memory store implement them. Absent rows come back wrapped in
// domain.ErrNotFound; duplicate inserts come back wrapped in
// domain.ErrConflict.

// UserStore persists users.
type UserStore interface {
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// AccountStore persists the MainAccount anchors and their bank/trading
// children. Creation attaches the child to a fresh MainAccount in one call;
// accounts are never re-parented. Deletes cascade to the ledgers.
type AccountStore interface {
	CreateBankAccount(ctx context.Context, userID uuid.UUID, institution string, acct domain.BankAccount) (domain.BankAccount, error)
	CreateTradingAccount(ctx context.Context, userID uuid.UUID, institution string, acct domain.TradingAccount) (domain.TradingAccount, error)

	BankAccountByID(ctx context.Context, id uuid.UUID) (domain.BankAccount, error)
	TradingAccountByID(ctx context.Context, id uuid.UUID) (domain.TradingAccount, error)
	BankAccountsForUser(ctx context.Context, userID uuid.UUID) ([]domain.BankAccount, error)
	TradingAccountsForUser(ctx context.Context, userID uuid.UUID) ([]domain.TradingAccount, error)

	UpdateBankAccount(ctx context.Context, id uuid.UUID, patch domain.BankAccountPatch) (domain.BankAccount, error)
	UpdateTradingAccount(ctx context.Context, id uuid.UUID, patch domain.TradingAccountPatch) (domain.TradingAccount, error)
	DeleteBankAccount(ctx context.Context, id uuid.UUID) error
	DeleteTradingAccount(ctx context.Context, id uuid.UUID) error

	// Owner resolution walks child -> MainAccount -> userId.
	OwnerOfBankAccount(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	OwnerOfTradingAccount(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// TransactionStore persists bank transactions. InsertTransaction is an atomic
// conditional insert: a row whose dedup tuple already exists under the same
// account fails with domain.ErrConflict.
type TransactionStore interface {
	InsertTransaction(ctx context.Context, t domain.Transaction) (domain.Transaction, error)
	TransactionByID(ctx context.Context, id uuid.UUID) (domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, patch domain.TransactionPatch) (domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	TransactionsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
}

// TradeStore persists trade transactions. No duplicate suppression: repeated
// identical trades are legitimate.
type TradeStore interface {
	InsertTrade(ctx context.Context, t domain.TradeStockTransaction) (domain.TradeStockTransaction, error)
	TradeByID(ctx context.Context, id uuid.UUID) (domain.TradeStockTransaction, error)
	UpdateTrade(ctx context.Context, id uuid.UUID, patch domain.TradePatch) (domain.TradeStockTransaction, error)
	DeleteTrade(ctx context.Context, id uuid.UUID) error
	TradesForAccount(ctx context.Context, accountID uuid.UUID) ([]domain.TradeStockTransaction, error)
}
