package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Currency string          `json:"currency" yaml:"currency"`
}

// NewMoney creates a new Money instance with the given amount and currency.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// NewMoneyFromString creates a new Money instance from a string amount.
func NewMoneyFromString(amount, currency string) (Money, error) {
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string '%s': %w", amount, err)
	}
	return Money{
		Amount:   dec,
		Currency: currency,
	}, nil
}

// ZeroMoney returns a Money instance with zero amount in the given currency.
func ZeroMoney(currency string) Money {
	return Money{
		Amount:   decimal.Zero,
		Currency: currency,
	}
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Abs returns the absolute value of the money amount.
func (m Money) Abs() Money {
	return Money{
		Amount:   m.Amount.Abs(),
		Currency: m.Currency,
	}
}

// Equal reports whether two Money values have the same amount and currency.
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// String returns a human-readable representation like "19.99 ILS".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.String(), m.Currency)
}
