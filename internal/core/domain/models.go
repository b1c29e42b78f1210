package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is a registered account holder.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Age          int       `json:"age"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MainAccountType classifies a MainAccount. The persisted schema only ever
// carries BANK, for both bank and trading children; the child kind is
// determined by which child row exists.
type MainAccountType string

const MainAccountBank MainAccountType = "BANK"

// MainAccount is the per-user ownership anchor. Its UserID is the sole source
// of truth for who owns the bank or trading account attached to it.
type MainAccount struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Institution string          `json:"institution"`
	Type        MainAccountType `json:"type"`
}

// AccountKind tells the ownership guard which account table an id refers to.
type AccountKind string

const (
	KindBank    AccountKind = "BANK"
	KindTrading AccountKind = "TRADING"
)

// AccountType classifies a bank account.
type AccountType string

const (
	AccountChecking    AccountType = "CHECKING"
	AccountSavingsTFSA AccountType = "SAVINGS_TFSA"
	AccountSavingsRRSP AccountType = "SAVINGS_RRSP"
	AccountSavingsTFSH AccountType = "SAVINGS_TFSH"
	AccountCredit      AccountType = "CREDIT"
)

// Valid reports whether t is a known bank account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavingsTFSA, AccountSavingsRRSP, AccountSavingsTFSH, AccountCredit:
		return true
	}
	return false
}

// TradingAccountType classifies a trading account.
type TradingAccountType string

const (
	TradingStock  TradingAccountType = "STOCK"
	TradingCrypto TradingAccountType = "CRYPTO"
)

// Valid reports whether t is a known trading account type.
func (t TradingAccountType) Valid() bool {
	return t == TradingStock || t == TradingCrypto
}

// BankAccount holds a stored running balance and its transaction log. The
// balance is an independently set value: posting transactions never moves it,
// and it is never recomputed from the log.
type BankAccount struct {
	ID            uuid.UUID       `json:"id"`
	MainAccountID uuid.UUID       `json:"-"`
	Name          string          `json:"name"`
	Type          AccountType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	InterestRate  decimal.Decimal `json:"interestRate"`
	Transactions  []Transaction   `json:"transactions"`
}

// TradingAccount holds a stored balance and its trade log.
type TradingAccount struct {
	ID            uuid.UUID               `json:"id"`
	MainAccountID uuid.UUID               `json:"-"`
	Name          string                  `json:"name"`
	Type          TradingAccountType      `json:"type"`
	Balance       decimal.Decimal         `json:"balance"`
	TradesStock   []TradeStockTransaction `json:"tradesStock"`
}

// TransactionType gives the sign of a transaction; Amount itself is always a
// non-negative magnitude.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == Deposit || t == Withdrawal
}

// Category buckets a transaction for reporting.
type Category string

const (
	CategoryGroceries      Category = "GROCERIES"
	CategoryCar            Category = "CAR"
	CategoryRent           Category = "RENT"
	CategoryTuition        Category = "TUITION"
	CategoryBills          Category = "BILLS"
	CategoryHealth         Category = "HEALTH"
	CategoryMiscellaneous  Category = "MISCELLANEOUS"
	CategoryOutings        Category = "OUTINGS"
	CategorySalary         Category = "SALARY"
	CategoryEntertainment  Category = "ENTERTAINMENT"
	CategoryTransportation Category = "TRANSPORTATION"
	CategoryUtilities      Category = "UTILITIES"
	CategoryEducation      Category = "EDUCATION"
	CategoryOther          Category = "OTHER"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryGroceries, CategoryCar, CategoryRent, CategoryTuition, CategoryBills,
		CategoryHealth, CategoryMiscellaneous, CategoryOutings, CategorySalary,
		CategoryEntertainment, CategoryTransportation, CategoryUtilities,
		CategoryEducation, CategoryOther:
		return true
	}
	return false
}

// Transaction is one row in a bank account's ledger. Rows are identified for
// duplicate suppression by the tuple (description, type, category, amount,
// transactionAt) within their account.
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	AccountID     uuid.UUID       `json:"accountId"`
	Description   string          `json:"description"`
	Type          TransactionType `json:"type"`
	Category      Category        `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionAt time.Time       `json:"transactionAt"`
}

// SameDedupTuple reports whether two transactions collide under the
// duplicate-suppression key.
func (t Transaction) SameDedupTuple(o Transaction) bool {
	return t.AccountID == o.AccountID &&
		t.Description == o.Description &&
		t.Type == o.Type &&
		t.Category == o.Category &&
		t.Amount.Equal(o.Amount) &&
		t.TransactionAt.Equal(o.TransactionAt)
}

// TradeStockTransaction is one buy or sell in a trading account's log.
// Exactly one of PurchasePrice and SellPrice is set.
type TradeStockTransaction struct {
	ID               uuid.UUID           `json:"id"`
	TradingAccountID uuid.UUID           `json:"tradingAccountId"`
	Symbol           string              `json:"symbol"`
	Quantity         decimal.Decimal     `json:"quantity"`
	PurchasePrice    decimal.NullDecimal `json:"purchasePrice"`
	SellPrice        decimal.NullDecimal `json:"sellPrice"`
	TransactionAt    time.Time           `json:"transactionAt"`
}

// IsBuy reports whether the trade is a purchase.
func (t TradeStockTransaction) IsBuy() bool {
	return t.PurchasePrice.Valid
}
