package sberreport

import (
	"encoding/json"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// The registry's stock RUB entry formats with dot decimals and comma
// thousands. Statements, and everything this package prints, use the Russian
// form. Overridden once at package load, before any formatting happens.
func init() {
	money.AddCurrency("RUB", "₽", "1 $", ",", " ", 2)
}

// Money represents an exact monetary value in a single currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency from the registry.
func (m Money) currency() money.Currency {
	// the Money constructor is the only way to get a never-nil currency
	return *money.New(0, m.cur).Currency()
}

// String formats the value with the currency's own formatter, so "1 234,56 ₽"
// for rubles and "$1,234.56" for dollars. DecodeAmount accepts this form
// back. A value carrying more digits than the currency's fraction (unit
// prices come with four) keeps all of them, rounding money would render a
// different value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	if !dec.IsInteger() {
		num := strings.Replace(m.value.String(), ".", cur.Decimal, 1)
		s := strings.Replace(cur.Template, "1", num, 1)
		return strings.Replace(s, "$", cur.Grapheme, 1)
	}
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money               { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money     { return Money{value: m.value.Mul(n.value), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString is like String but with an explicit leading sign, and "-" for zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	// the exact decimal as a bare JSON number, not the quoted form
	w.Append("amount", json.RawMessage(m.value.String()))
	return w.MarshalJSON()
}

// Amount is a Money that may be absent. A statement cell can legitimately
// hold "" or a dash, and that is not a zero: summing absences must not
// fabricate values. The zero Amount is absent.
type Amount struct {
	money   Money
	present bool
}

// A builds a present Amount.
func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Amount {
	return Amount{money: M(value, currency), present: true}
}

// AmountOf wraps an existing Money into a present Amount.
func AmountOf(m Money) Amount { return Amount{money: m, present: true} }

// IsAbsent reports whether the cell carried no value at all.
func (a Amount) IsAbsent() bool { return !a.present }

// Money returns the underlying value. ok is false for an absent Amount, and
// the returned Money is then zero.
func (a Amount) Money() (m Money, ok bool) { return a.money, a.present }

// Currency returns the currency of a present Amount, "" otherwise.
func (a Amount) Currency() string {
	if !a.present {
		return ""
	}
	return a.money.Currency()
}

// Add sums two Amounts. An absent side acts as identity, two absents stay
// absent.
func (a Amount) Add(b Amount) Amount {
	switch {
	case !a.present:
		return b
	case !b.present:
		return a
	default:
		return Amount{money: a.money.Add(b.money), present: true}
	}
}

// Neg negates a present Amount and leaves an absent one untouched.
func (a Amount) Neg() Amount {
	if !a.present {
		return a
	}
	return Amount{money: a.money.Neg(), present: true}
}

// Equal treats two absent Amounts as equal regardless of any stale content.
func (a Amount) Equal(b Amount) bool {
	if a.present != b.present {
		return false
	}
	return !a.present || a.money.Equal(b.money)
}

// String renders a present Amount like Money.String and an absent one as the
// statement's own dash marker.
func (a Amount) String() string {
	if !a.present {
		return "—"
	}
	return a.money.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.present {
		return []byte("null"), nil
	}
	return a.money.MarshalJSON()
}
