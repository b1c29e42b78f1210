package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the full DDL, idempotent so Migrate can run on every startup.
// The unique index over the transaction dedup tuple makes duplicate
// suppression an atomic conditional insert rather than a check-then-act.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	age INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS main_accounts (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	institution TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL DEFAULT 'BANK'
);

CREATE TABLE IF NOT EXISTS bank_accounts (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	main_account_id UUID NOT NULL UNIQUE REFERENCES main_accounts(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	balance NUMERIC(18,2) NOT NULL DEFAULT 0,
	interest_rate NUMERIC(8,4) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS trading_accounts (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	main_account_id UUID NOT NULL UNIQUE REFERENCES main_accounts(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	balance NUMERIC(18,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS transactions (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	seq BIGSERIAL,
	account_id UUID NOT NULL REFERENCES bank_accounts(id) ON DELETE CASCADE,
	description TEXT NOT NULL,
	type TEXT NOT NULL,
	category TEXT NOT NULL,
	amount NUMERIC(18,2) NOT NULL CHECK (amount >= 0),
	transaction_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS transactions_dedup_idx
	ON transactions (account_id, description, type, category, amount, transaction_at);

CREATE TABLE IF NOT EXISTS trade_stock_transactions (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	seq BIGSERIAL,
	trading_account_id UUID NOT NULL REFERENCES trading_accounts(id) ON DELETE CASCADE,
	symbol TEXT NOT NULL,
	quantity NUMERIC(18,8) NOT NULL CHECK (quantity > 0),
	purchase_price NUMERIC(18,2),
	sell_price NUMERIC(18,2),
	transaction_at TIMESTAMPTZ NOT NULL,
	CHECK ((purchase_price IS NULL) <> (sell_price IS NULL))
);

CREATE TABLE IF NOT EXISTS idempotency_keys (
	key_id TEXT NOT NULL,
	user_id UUID NOT NULL,
	response_status INT NOT NULL,
	response_body BYTEA NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (key_id, user_id)
);
`

// Migrate applies the schema.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}
