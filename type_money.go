package rentbook

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Money represents an exact monetary amount in the book's single currency.
//
// The zero value is zero.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M returns Money for value, expressed in major units (e.g. 10.5 for ten and a half dollars).
func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// ParseMoney parses a decimal amount like "1250.50".
func ParseMoney(s string) (Money, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: v}, nil
}

func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) MulInt(n int) Money              { return Money{value: m.value.Mul(decimal.NewFromInt(int64(n)))} }
func (m Money) DivInt(n int) Money              { return Money{value: m.value.Div(decimal.NewFromInt(int64(n)))} }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) Cmp(n Money) int                 { return m.value.Cmp(n.value) }
func (m Money) InexactFloat64() float64         { return m.value.InexactFloat64() }
func (m Money) RoundCents() Money               { return Money{value: m.value.Round(2)} }
func (m Money) StringFixed(places int32) string { return m.value.StringFixed(places) }

// MinMoney returns the smallest of a and b.
func MinMoney(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// MaxMoney returns the largest of a and b.
func MaxMoney(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Ratio returns n/d as a percentage, or 0 when d is zero.
func Ratio(n, d Money) Percent {
	if d.IsZero() {
		return 0
	}
	return Percent(n.value.Div(d.value).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

// String returns the amount with two decimals and no currency.
func (m Money) String() string { return m.value.StringFixed(2) }

// Format returns the amount formatted for the given ISO currency code, e.g. "$1,250.50".
//
// Unknown currency codes fall back to [Money.String] followed by the code.
func (m Money) Format(currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		if currency == "" {
			return m.String()
		}
		return m.String() + " " + currency
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON writes the amount as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) { return json.Marshal(m.value) }

// UnmarshalJSON reads the amount from a JSON number or a quoted number.
func (m *Money) UnmarshalJSON(b []byte) error {
	var v decimal.Decimal
	if err := v.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("invalid amount %s: %w", string(b), err)
	}
	m.value = v
	return nil
}

// Sum adds all the amounts.
func Sum(amounts ...Money) (total Money) {
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
