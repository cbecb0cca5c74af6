// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Quantity represents a stock quantity with full precision.
// Uses decimal.Decimal to avoid floating-point errors; maps to NUMERIC(18,4).
type Quantity = decimal.Decimal

// NewQuantity creates a Quantity from a float.
// WARNING: Use NewQuantityFromString for precise values.
func NewQuantity(f float64) Quantity {
	return decimal.NewFromFloat(f)
}

// NewQuantityFromString creates a Quantity from a string.
// This is the preferred method for quantities arriving over the wire.
func NewQuantityFromString(s string) (Quantity, error) {
	return decimal.NewFromString(s)
}

// MustQuantity creates a Quantity from a string, panics on error.
// Use only for constants.
func MustQuantity(s string) Quantity {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Money represents a monetary value with full precision.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// Zero returns a zero decimal value.
func Zero() decimal.Decimal {
	return decimal.Zero
}
