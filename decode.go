package sberreport

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/Rhymond/go-money"
	"github.com/etnz/sberreport/date"
	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order. Statements normally carry dd.mm.yyyy,
// operation logs sometimes append a time of day, and machine exports use ISO.
var dateLayouts = []string{
	"02.01.2006",
	"02.01.2006 15:04:05",
	"2006-01-02",
}

// DecodeDate parses a statement date cell.
func DecodeDate(s string) (date.Date, error) {
	t := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if on, err := time.Parse(layout, t); err == nil {
			return date.New(on.Date()), nil
		}
	}
	return date.Date{}, &InvalidDateError{Value: t}
}

// absenceMarkers are the cell contents that mean "no value". They are not
// zeros: a dash in a limit column means the limit does not apply, not that it
// is zero rubles.
var absenceMarkers = map[string]bool{
	"":  true,
	"-": true,
	"—": true,
	"–": true,
}

// currencySymbols lists the attached symbols in match order.
var currencySymbols = []struct {
	sym  string
	code string
}{
	{"₽", "RUB"},
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
}

// trailing currency words like "руб." or "RUB" attached to the number.
var currencyWordRe = regexp.MustCompile(`[A-Za-zА-Яа-яЁё][A-Za-zА-Яа-яЁё.]*$`)

// DecodeAmount parses a statement money cell into an Amount.
//
// The accepted shapes follow the brokerage's own formatting: spaces
// (including non-breaking and narrow non-breaking ones) group thousands, the
// comma is the decimal separator, parentheses negate, and a currency symbol
// or word may be attached on either side. Dot-decimal machine exports are
// accepted too: when both separators appear the last one is the decimal
// point. An empty cell or a lone dash decodes to an absent Amount, never to
// zero.
func DecodeAmount(s string) (Amount, error) {
	raw := normalizeSpace(s)
	if absenceMarkers[raw] {
		return Amount{}, nil
	}

	t := raw
	negative := false
	if strings.HasPrefix(t, "(") && strings.HasSuffix(t, ")") {
		t = t[1 : len(t)-1]
		negative = true
	}

	// Drop grouping spaces and explicit plus signs, unify the minus sign.
	t = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '+' {
			return -1
		}
		if r == '−' {
			return '-'
		}
		return r
	}, t)

	for strings.HasPrefix(t, "-") {
		t = t[1:]
		negative = true
	}

	currency := ""
	for _, c := range currencySymbols {
		if strings.HasPrefix(t, c.sym) {
			currency, t = c.code, strings.TrimPrefix(t, c.sym)
			break
		}
		if strings.HasSuffix(t, c.sym) {
			currency, t = c.code, strings.TrimSuffix(t, c.sym)
			break
		}
	}
	if currency == "" {
		if word := currencyWordRe.FindString(t); word != "" && word != t {
			currency = CanonicalCurrency(word)
			t = strings.TrimSuffix(t, word)
		}
	}

	num, ok := normalizeSeparators(t)
	if !ok {
		return Amount{}, &InvalidAmountError{Value: raw}
	}
	value, err := decimal.NewFromString(num)
	if err != nil {
		return Amount{}, &InvalidAmountError{Value: raw}
	}
	if negative {
		value = value.Neg()
	}
	return Amount{money: Money{value: value, cur: currency}, present: true}, nil
}

// normalizeSeparators rewrites a bare digit string with locale separators
// into the canonical dot-decimal form. A single comma or dot is a decimal
// separator, a repeated one is a thousands separator, and when both appear
// the later one is the decimal separator.
func normalizeSeparators(t string) (string, bool) {
	dots := strings.Count(t, ".")
	commas := strings.Count(t, ",")
	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndex(t, ".") > strings.LastIndex(t, ",") {
			t = strings.ReplaceAll(t, ",", "")
			dots, commas = strings.Count(t, "."), 0
		} else {
			t = strings.ReplaceAll(t, ".", "")
			dots, commas = 0, strings.Count(t, ",")
		}
		if dots > 1 || commas > 1 {
			return "", false
		}
		fallthrough
	default:
		if commas > 1 {
			t = strings.ReplaceAll(t, ",", "")
		} else {
			t = strings.ReplaceAll(t, ",", ".")
		}
		if strings.Count(t, ".") > 1 {
			// repeated dots are thousands groups, "1.234.567"
			t = strings.ReplaceAll(t, ".", "")
		}
	}
	if t == "" {
		return "", false
	}
	for _, r := range t {
		if r != '.' && (r < '0' || r > '9') {
			return "", false
		}
	}
	return t, true
}

// CanonicalCurrency maps the attached currency spellings found in statements
// to ISO codes, consulting the currency registry for everything else. An
// unknown token is returned uppercased rather than rejected, decoding stays
// lenient.
func CanonicalCurrency(s string) string {
	t := strings.TrimSpace(s)
	for _, c := range currencySymbols {
		if t == c.sym {
			return c.code
		}
	}
	upper := strings.ToUpper(strings.TrimRight(t, "."))
	switch upper {
	case "РУБ", "Р", "РУБЛ", "РУБЛИ", "РУБЛЕЙ":
		return "RUB"
	}
	if cur := money.GetCurrency(upper); cur != nil {
		return cur.Code
	}
	return upper
}
