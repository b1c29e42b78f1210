package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ma-nadeau/FRED/internal/core/domain"
)

// Accounts manages bank and trading accounts: creation (together with their
// MainAccount anchor), listing, ownership-checked reads, updates, deletes,
// and the direct balance/interest-rate overwrites. Stored balances are
// independently set values; nothing here reads the ledgers.
type Accounts struct {
	store AccountStore
	guard *Guard
}

// NewAccounts creates the account service.
func NewAccounts(store AccountStore, guard *Guard) *Accounts {
	return &Accounts{store: store, guard: guard}
}

// CreateBankAccountParams holds the fields of a new bank account.
type CreateBankAccountParams struct {
	Name         string
	Type         domain.AccountType
	Institution  string
	Balance      decimal.Decimal
	InterestRate decimal.Decimal
}

// CreateBankAccount opens a bank account under a fresh MainAccount owned by
// the user.
func (s *Accounts) CreateBankAccount(ctx context.Context, userID uuid.UUID, p CreateBankAccountParams) (domain.BankAccount, error) {
	if p.Name == "" {
		return domain.BankAccount{}, fmt.Errorf("account name is required: %w", domain.ErrBadRequest)
	}
	if !p.Type.Valid() {
		return domain.BankAccount{}, fmt.Errorf("invalid account type %q: %w", p.Type, domain.ErrBadRequest)
	}
	if err := domain.CheckAmount(p.Balance); err != nil {
		return domain.BankAccount{}, err
	}
	if err := domain.CheckScale(p.InterestRate, 4); err != nil {
		return domain.BankAccount{}, err
	}

	acct, err := s.store.CreateBankAccount(ctx, userID, p.Institution, domain.BankAccount{
		Name:         p.Name,
		Type:         p.Type,
		Balance:      p.Balance,
		InterestRate: p.InterestRate,
	})
	if err != nil {
		return domain.BankAccount{}, err
	}
	slog.Info("bank account created", "account_id", acct.ID, "user_id", userID)
	return acct, nil
}

// CreateTradingAccountParams holds the fields of a new trading account.
type CreateTradingAccountParams struct {
	Name        string
	Type        domain.TradingAccountType
	Institution string
	Balance     decimal.Decimal
}

// CreateTradingAccount opens a trading account under a fresh MainAccount
// owned by the user.
func (s *Accounts) CreateTradingAccount(ctx context.Context, userID uuid.UUID, p CreateTradingAccountParams) (domain.TradingAccount, error) {
	if p.Name == "" {
		return domain.TradingAccount{}, fmt.Errorf("account name is required: %w", domain.ErrBadRequest)
	}
	if !p.Type.Valid() {
		return domain.TradingAccount{}, fmt.Errorf("invalid trading account type %q: %w", p.Type, domain.ErrBadRequest)
	}
	if err := domain.CheckAmount(p.Balance); err != nil {
		return domain.TradingAccount{}, err
	}

	acct, err := s.store.CreateTradingAccount(ctx, userID, p.Institution, domain.TradingAccount{
		Name:    p.Name,
		Type:    p.Type,
		Balance: p.Balance,
	})
	if err != nil {
		return domain.TradingAccount{}, err
	}
	slog.Info("trading account created", "account_id", acct.ID, "user_id", userID)
	return acct, nil
}

// BankAccountsForUser returns the user's bank accounts with their
// transactions embedded, or domain.ErrNotFound when there are none.
func (s *Accounts) BankAccountsForUser(ctx context.Context, userID uuid.UUID) ([]domain.BankAccount, error) {
	accts, err := s.store.BankAccountsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accts) == 0 {
		return nil, fmt.Errorf("no bank accounts found for this user: %w", domain.ErrNotFound)
	}
	return accts, nil
}

// TradingAccountsForUser returns the user's trading accounts with their
// trades embedded, or domain.ErrNotFound when there are none.
func (s *Accounts) TradingAccountsForUser(ctx context.Context, userID uuid.UUID) ([]domain.TradingAccount, error) {
	accts, err := s.store.TradingAccountsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accts) == 0 {
		return nil, fmt.Errorf("no trading accounts found for this user: %w", domain.ErrNotFound)
	}
	return accts, nil
}

// BankAccount returns one bank account the user owns.
func (s *Accounts) BankAccount(ctx context.Context, accountID, userID uuid.UUID) (domain.BankAccount, error) {
	if err := s.guard.AssertOwnership(ctx, accountID, domain.KindBank, userID); err != nil {
		return domain.BankAccount{}, err
	}
	return s.store.BankAccountByID(ctx, accountID)
}

// TradingAccount returns one trading account the user owns.
func (s *Accounts) TradingAccount(ctx context.Context, accountID, userID uuid.UUID) (domain.TradingAccount, error) {
	if err := s.guard.AssertOwnership(ctx, accountID, domain.KindTrading, userID); err != nil {
		return domain.TradingAccount{}, err
	}
	return s.store.TradingAccountByID(ctx, accountID)
}

// UpdateBankAccount applies a patch to a bank account the user owns.
func (s *Accounts) UpdateBankAccount(ctx context.Context, accountID, userID uuid.UUID, patch domain.BankAccountPatch) (domain.BankAccount, error) {
	if err := s.guard.AssertOwnership(ctx, accountID, domain.KindBank, userID); err != nil {
		return domain.BankAccount{}, err
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return domain.BankAccount{}, fmt.Errorf("invalid account type %q: %w", *patch.Type, domain.ErrBadRequest)
	}
	if patch.Balance != nil {
		if err := domain.CheckScale(*patch.Balance, domain.MoneyPlaces); err != nil {
			return domain.BankAccount{}, err
		}
	}
	if patch.InterestRate != nil {
		if err := domain.CheckScale(*patch.InterestRate, 4); err != nil {
			return domain.BankAccount{}, err
		}
	}
	return s.store.UpdateBankAccount(ctx, accountID, patch)
}

// UpdateTradingAccount applies a patch to a trading account the user owns.
func (s *Accounts) UpdateTradingAccount(ctx context.Context, accountID, userID uuid.UUID, patch domain.TradingAccountPatch) (domain.TradingAccount, error) {
	if err := s.guard.AssertOwnership(ctx, accountID, domain.KindTrading, userID); err != nil {
		return domain.TradingAccount{}, err
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return domain.TradingAccount{}, fmt.Errorf("invalid trading account type %q: %w", *patch.Type, domain.ErrBadRequest)
	}
	if patch.Balance != nil {
		if err := domain.CheckScale(*patch.Balance, domain.MoneyPlaces); err != nil {
			return domain.TradingAccount{}, err
		}
	}
	return s.store.UpdateTradingAccount(ctx, accountID, patch)
}

// DeleteBankAccount removes a bank account the user owns, cascading to its
// MainAccount and every transaction under it.
func (s *Accounts) DeleteBankAccount(ctx context.Context, accountID, userID uuid.UUID) error {
	if err := s.guard.AssertOwnership(ctx, accountID, domain.KindBank, userID); err != nil {
		return err
	}
	if err := s.store.DeleteBankAccount(ctx, accountID); err != nil {
		return err
	}
	slog.Info("bank account deleted", "account_id", accountID, "user_id", userID)
	return nil
}

// DeleteTradingAccount removes a trading account the user owns, cascading to
// its MainAccount and every trade under it.
func (s *Accounts) DeleteTradingAccount(ctx context.Context, accountID, userID uuid.UUID) error {
	if err := s.guard.AssertOwnership(ctx, accountID, domain.KindTrading, userID); err != nil {
		return err
	}
	if err := s.store.DeleteTradingAccount(ctx, accountID); err != nil {
		return err
	}
	slog.Info("trading account deleted", "account_id", accountID, "user_id", userID)
	return nil
}

// SetBalance overwrites the stored balance of an account the user owns.
// The value is taken as given: it is never reconciled against the ledgers.
func (s *Accounts) SetBalance(ctx context.Context, accountID uuid.UUID, kind domain.AccountKind, userID uuid.UUID, balance decimal.Decimal) error {
	if err := domain.CheckScale(balance, domain.MoneyPlaces); err != nil {
		return err
	}
	switch kind {
	case domain.KindBank:
		_, err := s.UpdateBankAccount(ctx, accountID, userID, domain.BankAccountPatch{Balance: &balance})
		return err
	case domain.KindTrading:
		_, err := s.UpdateTradingAccount(ctx, accountID, userID, domain.TradingAccountPatch{Balance: &balance})
		return err
	default:
		return fmt.Errorf("unknown account kind %q: %w", kind, domain.ErrBadRequest)
	}
}

// SetInterestRate overwrites the stored interest rate of a bank account the
// user owns. Trading accounts carry no rate.
func (s *Accounts) SetInterestRate(ctx context.Context, accountID, userID uuid.UUID, rate decimal.Decimal) error {
	_, err := s.UpdateBankAccount(ctx, accountID, userID, domain.BankAccountPatch{InterestRate: &rate})
	return err
}
