// Package money provides currency-safe presentation of monetary values using
// integer cents. Intermediate arithmetic stays in shopspring/decimal; this
// package is the single place where values are rounded to whole cents and
// formatted for display.
package money

import (
	"errors"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD is the only currency US carrier bills are issued in.
const USD = "USD"

// Money is a whole-cent USD amount. Construct via FromDecimal or Parse so
// rounding happens exactly once.
type Money struct {
	m *money.Money
}

// New creates a Money value from integer cents.
func New(cents int64) Money {
	return Money{m: money.New(cents, USD)}
}

// FromDecimal rounds a decimal dollar amount to the nearest cent.
func FromDecimal(d decimal.Decimal) Money {
	cents := d.Mul(decimal.New(1, 2)).Round(0).IntPart()
	return New(cents)
}

// Parse converts a string like "240.07", "$240.07" or "1,234.56" to Money.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return Money{}, errors.New("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return FromDecimal(d), nil
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	if m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	if m.m == nil {
		return other
	}
	if other.m == nil {
		return m
	}
	sum, err := m.m.Add(other.m)
	if err != nil {
		// Both sides are USD by construction.
		panic(err)
	}
	return Money{m: sum}
}

// ToDecimal converts back to a decimal dollar amount.
func (m Money) ToDecimal() decimal.Decimal {
	return decimal.New(m.Cents(), -2)
}

// Display formats the amount as "$1,234.56".
func (m Money) Display() string {
	if m.m == nil {
		return money.New(0, USD).Display()
	}
	return m.m.Display()
}

// String formats the amount as a plain "1234.56" decimal string.
func (m Money) String() string {
	return m.ToDecimal().StringFixed(2)
}

// Split divides the amount into n equal parts, pushing leftover cents onto
// the first parts so no cent is lost.
func (m Money) Split(n int) ([]Money, error) {
	if m.m == nil {
		return nil, errors.New("cannot split zero-value money")
	}
	parts, err := m.m.Split(n)
	if err != nil {
		return nil, err
	}
	out := make([]Money, len(parts))
	for i, p := range parts {
		out[i] = Money{m: p}
	}
	return out, nil
}
