package shared

import "errors"

// Money value object - an amount in the smallest currency unit (e.g. cents)
// plus a currency code. Immutable; arithmetic returns new values.
type Money struct {
	amount   int64
	currency string
}

// NewMoney creates a Money value object.
func NewMoney(amount int64, currency string) *Money {
	return &Money{
		amount:   amount,
		currency: currency,
	}
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum of two amounts of the same currency.
func (m Money) Add(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot add money with different currencies")
	}
	if other.amount > 0 && m.amount > maxInt64-other.amount {
		return nil, errors.New("money amount overflow")
	}

	return &Money{
		amount:   m.amount + other.amount,
		currency: m.currency,
	}, nil
}

// Multiply scales the amount by a non-negative factor, guarding overflow.
func (m Money) Multiply(factor int) (*Money, error) {
	if factor < 0 {
		return nil, errors.New("cannot multiply money by a negative factor")
	}
	if factor != 0 && m.amount > maxInt64/int64(factor) {
		return nil, errors.New("money amount overflow")
	}

	return &Money{
		amount:   m.amount * int64(factor),
		currency: m.currency,
	}, nil
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// Equals compares two Money values by amount and currency.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

const maxInt64 = int64(^uint64(0) >> 1)
