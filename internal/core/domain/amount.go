package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Fixed-point scales for persisted decimal fields. NUMERIC columns in the
// schema use the same widths.
const (
	MoneyPlaces    int32 = 2
	QuantityPlaces int32 = 8
)

// CheckScale fails when d carries more than places fraction digits.
func CheckScale(d decimal.Decimal, places int32) error {
	if !d.Equal(d.Round(places)) {
		return fmt.Errorf("%s has more than %d decimal places: %w", d, places, ErrBadRequest)
	}
	return nil
}

// CheckAmount verifies a monetary magnitude: non-negative, at most two
// fraction digits.
func CheckAmount(d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("amount %s is negative: %w", d, ErrBadRequest)
	}
	return CheckScale(d, MoneyPlaces)
}

// CheckQuantity verifies a trade quantity: strictly positive, at most eight
// fraction digits.
func CheckQuantity(d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("quantity %s must be greater than zero: %w", d, ErrBadRequest)
	}
	return CheckScale(d, QuantityPlaces)
}

// CheckPrice verifies an optional trade price when present.
func CheckPrice(d decimal.NullDecimal) error {
	if !d.Valid {
		return nil
	}
	if d.Decimal.IsNegative() {
		return fmt.Errorf("price %s is negative: %w", d.Decimal, ErrBadRequest)
	}
	return CheckScale(d.Decimal, MoneyPlaces)
}
