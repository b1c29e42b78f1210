package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Patch structs name exactly the fields an update is permitted to change.
// A nil field means "leave unchanged"; trade price fields use NullDecimal
// pointers so a patch can also clear one side while setting the other.

// TransactionPatch updates a bank transaction.
type TransactionPatch struct {
	Description   *string
	Type          *TransactionType
	Category      *Category
	Amount        *decimal.Decimal
	TransactionAt *time.Time
}

// TradePatch updates a trade.
type TradePatch struct {
	Symbol        *string
	Quantity      *decimal.Decimal
	PurchasePrice *decimal.NullDecimal
	SellPrice     *decimal.NullDecimal
	TransactionAt *time.Time
}

// BankAccountPatch updates a bank account's own fields. Balance and
// InterestRate here are direct overwrites of the stored values, never derived
// from the transaction log.
type BankAccountPatch struct {
	Name         *string
	Type         *AccountType
	Balance      *decimal.Decimal
	InterestRate *decimal.Decimal
}

// TradingAccountPatch updates a trading account's own fields.
type TradingAccountPatch struct {
	Name    *string
	Type    *TradingAccountType
	Balance *decimal.Decimal
}
