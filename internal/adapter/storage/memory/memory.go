// Package memory is a mutex-guarded in-memory store. It backs the service
// tests and the server's development mode when DATABASE_URL is unset, and
// implements the same contracts as the Postgres repositories: ErrNotFound for
// absent rows, ErrConflict for duplicate transaction tuples and taken emails,
// cascade deletes through the main account.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ma-nadeau/FRED/internal/core/domain"
)

// Ledger rows carry an insertion sequence so listings come back in the order
// they were posted, which is not necessarily chronological.
type txRecord struct {
	domain.Transaction
	seq uint64
}

type tradeRecord struct {
	domain.TradeStockTransaction
	seq uint64
}

// Store holds all state behind a single mutex; every operation is atomic with
// respect to every other, including the transaction check-then-insert.
// Returned records are copies so callers cannot reach internal state.
type Store struct {
	mu      sync.Mutex
	nextSeq uint64

	users        map[uuid.UUID]domain.User
	usersByEmail map[string]uuid.UUID
	mains        map[uuid.UUID]domain.MainAccount
	banks        map[uuid.UUID]domain.BankAccount
	tradings     map[uuid.UUID]domain.TradingAccount
	transactions map[uuid.UUID]txRecord
	trades       map[uuid.UUID]tradeRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]domain.User),
		usersByEmail: make(map[string]uuid.UUID),
		mains:        make(map[uuid.UUID]domain.MainAccount),
		banks:        make(map[uuid.UUID]domain.BankAccount),
		tradings:     make(map[uuid.UUID]domain.TradingAccount),
		transactions: make(map[uuid.UUID]txRecord),
		trades:       make(map[uuid.UUID]tradeRecord),
	}
}

// --- users ---

func (s *Store) CreateUser(_ context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.usersByEmail[u.Email]; taken {
		return domain.User{}, fmt.Errorf("email %s already registered: %w", u.Email, domain.ErrConflict)
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	s.users[u.ID] = u
	s.usersByEmail[u.Email] = u.ID
	return u, nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.usersByEmail[email]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return s.users[id], nil
}

func (s *Store) UserByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return u, nil
}

// --- accounts ---

func (s *Store) CreateBankAccount(_ context.Context, userID uuid.UUID, institution string, acct domain.BankAccount) (domain.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return domain.BankAccount{}, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	main := domain.MainAccount{
		ID:          uuid.New(),
		UserID:      userID,
		Institution: institution,
		Type:        domain.MainAccountBank,
	}
	s.mains[main.ID] = main

	acct.ID = uuid.New()
	acct.MainAccountID = main.ID
	acct.Transactions = nil
	s.banks[acct.ID] = acct

	out := acct
	out.Transactions = []domain.Transaction{}
	return out, nil
}

func (s *Store) CreateTradingAccount(_ context.Context, userID uuid.UUID, institution string, acct domain.TradingAccount) (domain.TradingAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return domain.TradingAccount{}, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	main := domain.MainAccount{
		ID:          uuid.New(),
		UserID:      userID,
		Institution: institution,
		Type:        domain.MainAccountBank,
	}
	s.mains[main.ID] = main

	acct.ID = uuid.New()
	acct.MainAccountID = main.ID
	acct.TradesStock = nil
	s.tradings[acct.ID] = acct

	out := acct
	out.TradesStock = []domain.TradeStockTransaction{}
	return out, nil
}

func (s *Store) BankAccountByID(_ context.Context, id uuid.UUID) (domain.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.banks[id]
	if !ok {
		return domain.BankAccount{}, fmt.Errorf("bank account %s: %w", id, domain.ErrNotFound)
	}
	acct.Transactions = s.transactionsOf(id)
	return acct, nil
}

func (s *Store) TradingAccountByID(_ context.Context, id uuid.UUID) (domain.TradingAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.tradings[id]
	if !ok {
		return domain.TradingAccount{}, fmt.Errorf("trading account %s: %w", id, domain.ErrNotFound)
	}
	acct.TradesStock = s.tradesOf(id)
	return acct, nil
}

func (s *Store) BankAccountsForUser(_ context.Context, userID uuid.UUID) ([]domain.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.BankAccount
	for _, acct := range s.banks {
		if main, ok := s.mains[acct.MainAccountID]; ok && main.UserID == userID {
			acct.Transactions = s.transactionsOf(acct.ID)
			out = append(out, acct)
		}
	}
	return out, nil
}

func (s *Store) TradingAccountsForUser(_ context.Context, userID uuid.UUID) ([]domain.TradingAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.TradingAccount
	for _, acct := range s.tradings {
		if main, ok := s.mains[acct.MainAccountID]; ok && main.UserID == userID {
			acct.TradesStock = s.tradesOf(acct.ID)
			out = append(out, acct)
		}
	}
	return out, nil
}

func (s *Store) UpdateBankAccount(_ context.Context, id uuid.UUID, patch domain.BankAccountPatch) (domain.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.banks[id]
	if !ok {
		return domain.BankAccount{}, fmt.Errorf("bank account %s: %w", id, domain.ErrNotFound)
	}
	if patch.Name != nil {
		acct.Name = *patch.Name
	}
	if patch.Type != nil {
		acct.Type = *patch.Type
	}
	if patch.Balance != nil {
		acct.Balance = *patch.Balance
	}
	if patch.InterestRate != nil {
		acct.InterestRate = *patch.InterestRate
	}
	s.banks[id] = acct
	acct.Transactions = s.transactionsOf(id)
	return acct, nil
}

func (s *Store) UpdateTradingAccount(_ context.Context, id uuid.UUID, patch domain.TradingAccountPatch) (domain.TradingAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.tradings[id]
	if !ok {
		return domain.TradingAccount{}, fmt.Errorf("trading account %s: %w", id, domain.ErrNotFound)
	}
	if patch.Name != nil {
		acct.Name = *patch.Name
	}
	if patch.Type != nil {
		acct.Type = *patch.Type
	}
	if patch.Balance != nil {
		acct.Balance = *patch.Balance
	}
	s.tradings[id] = acct
	acct.TradesStock = s.tradesOf(id)
	return acct, nil
}

func (s *Store) DeleteBankAccount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.banks[id]
	if !ok {
		return fmt.Errorf("bank account %s: %w", id, domain.ErrNotFound)
	}
	for txID, tx := range s.transactions {
		if tx.AccountID == id {
			delete(s.transactions, txID)
		}
	}
	delete(s.mains, acct.MainAccountID)
	delete(s.banks, id)
	return nil
}

func (s *Store) DeleteTradingAccount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.tradings[id]
	if !ok {
		return fmt.Errorf("trading account %s: %w", id, domain.ErrNotFound)
	}
	for tradeID, trade := range s.trades {
		if trade.TradingAccountID == id {
			delete(s.trades, tradeID)
		}
	}
	delete(s.mains, acct.MainAccountID)
	delete(s.tradings, id)
	return nil
}

func (s *Store) OwnerOfBankAccount(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.banks[id]
	if !ok {
		return uuid.Nil, fmt.Errorf("bank account %s: %w", id, domain.ErrNotFound)
	}
	main, ok := s.mains[acct.MainAccountID]
	if !ok {
		return uuid.Nil, fmt.Errorf("main account %s: %w", acct.MainAccountID, domain.ErrNotFound)
	}
	return main.UserID, nil
}

func (s *Store) OwnerOfTradingAccount(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.tradings[id]
	if !ok {
		return uuid.Nil, fmt.Errorf("trading account %s: %w", id, domain.ErrNotFound)
	}
	main, ok := s.mains[acct.MainAccountID]
	if !ok {
		return uuid.Nil, fmt.Errorf("main account %s: %w", acct.MainAccountID, domain.ErrNotFound)
	}
	return main.UserID, nil
}

// --- transactions ---

func (s *Store) InsertTransaction(_ context.Context, t domain.Transaction) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.banks[t.AccountID]; !ok {
		return domain.Transaction{}, fmt.Errorf("bank account %s: %w", t.AccountID, domain.ErrNotFound)
	}
	for _, existing := range s.transactions {
		if existing.SameDedupTuple(t) {
			return domain.Transaction{}, fmt.Errorf("transaction already saved: %w", domain.ErrConflict)
		}
	}
	t.ID = uuid.New()
	s.nextSeq++
	s.transactions[t.ID] = txRecord{Transaction: t, seq: s.nextSeq}
	return t, nil
}

func (s *Store) TransactionByID(_ context.Context, id uuid.UUID) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.transactions[id]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}
	return rec.Transaction, nil
}

func (s *Store) UpdateTransaction(_ context.Context, id uuid.UUID, patch domain.TransactionPatch) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.transactions[id]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}
	t := rec.Transaction
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.TransactionAt != nil {
		t.TransactionAt = *patch.TransactionAt
	}
	for otherID, other := range s.transactions {
		if otherID != id && other.SameDedupTuple(t) {
			return domain.Transaction{}, fmt.Errorf("transaction already saved: %w", domain.ErrConflict)
		}
	}
	rec.Transaction = t
	s.transactions[id] = rec
	return t, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[id]; !ok {
		return fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) TransactionsForUser(_ context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owned := make(map[uuid.UUID]bool)
	for _, acct := range s.banks {
		if main, ok := s.mains[acct.MainAccountID]; ok && main.UserID == userID {
			owned[acct.ID] = true
		}
	}
	var recs []txRecord
	for _, rec := range s.transactions {
		if owned[rec.AccountID] {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]domain.Transaction, len(recs))
	for i, rec := range recs {
		out[i] = rec.Transaction
	}
	return out, nil
}

// --- trades ---

func (s *Store) InsertTrade(_ context.Context, t domain.TradeStockTransaction) (domain.TradeStockTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tradings[t.TradingAccountID]; !ok {
		return domain.TradeStockTransaction{}, fmt.Errorf("trading account %s: %w", t.TradingAccountID, domain.ErrNotFound)
	}
	t.ID = uuid.New()
	s.nextSeq++
	s.trades[t.ID] = tradeRecord{TradeStockTransaction: t, seq: s.nextSeq}
	return t, nil
}

func (s *Store) TradeByID(_ context.Context, id uuid.UUID) (domain.TradeStockTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.trades[id]
	if !ok {
		return domain.TradeStockTransaction{}, fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
	}
	return rec.TradeStockTransaction, nil
}

func (s *Store) UpdateTrade(_ context.Context, id uuid.UUID, patch domain.TradePatch) (domain.TradeStockTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.trades[id]
	if !ok {
		return domain.TradeStockTransaction{}, fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
	}
	t := rec.TradeStockTransaction
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
	rec.TradeStockTransaction = t
	s.trades[id] = rec
	return t, nil
}

func (s *Store) DeleteTrade(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trades[id]; !ok {
		return fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
	}
	delete(s.trades, id)
	return nil
}

func (s *Store) TradesForAccount(_ context.Context, accountID uuid.UUID) ([]domain.TradeStockTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tradings[accountID]; !ok {
		return nil, fmt.Errorf("trading account %s: %w", accountID, domain.ErrNotFound)
	}
	return s.tradesOf(accountID), nil
}

// callers must hold s.mu
func (s *Store) transactionsOf(accountID uuid.UUID) []domain.Transaction {
	var recs []txRecord
	for _, rec := range s.transactions {
		if rec.AccountID == accountID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]domain.Transaction, len(recs))
	for i, rec := range recs {
		out[i] = rec.Transaction
	}
	return out
}

// callers must hold s.mu
func (s *Store) tradesOf(accountID uuid.UUID) []domain.TradeStockTransaction {
	var recs []tradeRecord
	for _, rec := range s.trades {
		if rec.TradingAccountID == accountID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]domain.TradeStockTransaction, len(recs))
	for i, rec := range recs {
		out[i] = rec.TradeStockTransaction
	}
	return out
}
