package sberreport

import (
	"errors"
	"testing"

	"github.com/etnz/sberreport/date"
)

func TestDecodeAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Amount
	}{
		{name: "plain", in: "1 234,56", want: A(1234.56, "")},
		{name: "nbsp thousands", in: "1 234,56", want: A(1234.56, "")},
		{name: "narrow nbsp thousands", in: "1 234,56", want: A(1234.56, "")},
		{name: "rouble sign", in: "1 234,56 ₽", want: A(1234.56, "RUB")},
		{name: "dollar prefix", in: "$1,234.56", want: A(1234.56, "USD")},
		{name: "currency word", in: "100 руб.", want: A(100, "RUB")},
		{name: "euro sign", in: "€15,25", want: A(15.25, "EUR")},
		{name: "iso word", in: "15,25 USD", want: A(15.25, "USD")},
		{name: "parenthesized negative", in: "(1 234,56)", want: A(-1234.56, "")},
		{name: "minus sign", in: "-15,25", want: A(-15.25, "")},
		{name: "unicode minus", in: "−15,25", want: A(-15.25, "")},
		{name: "explicit plus", in: "+500,00", want: A(500, "")},
		{name: "dot decimal", in: "1,234.56", want: A(1234.56, "")},
		{name: "comma decimal with dot thousands", in: "1.234,56", want: A(1234.56, "")},
		{name: "dot thousands only", in: "1.234.567", want: A(1234567, "")},
		{name: "comma thousands only", in: "1,234,567", want: A(1234567, "")},
		{name: "bare integer", in: "1 234", want: A(1234, "")},
		{name: "empty is absent", in: "", want: Amount{}},
		{name: "spaces are absent", in: "   ", want: Amount{}},
		{name: "dash is absent", in: "-", want: Amount{}},
		{name: "em dash is absent", in: "—", want: Amount{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAmount(tt.in)
			if err != nil {
				t.Fatalf("DecodeAmount(%q) error = %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("DecodeAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Currency() != tt.want.Currency() {
				t.Errorf("DecodeAmount(%q) currency = %q, want %q", tt.in, got.Currency(), tt.want.Currency())
			}
		})
	}
}

func TestDecodeAmountNeverZeroForAbsent(t *testing.T) {
	// An empty cell and a dash mean "no value". They must not decode to a
	// zero, a zero is a statement about money.
	for _, in := range []string{"", "-", "—", "–"} {
		a, err := DecodeAmount(in)
		if err != nil {
			t.Fatalf("DecodeAmount(%q) error = %v", in, err)
		}
		if !a.IsAbsent() {
			t.Errorf("DecodeAmount(%q) = %v, want absent", in, a)
		}
		if a.Equal(A(0, "RUB")) {
			t.Errorf("DecodeAmount(%q) compares equal to an explicit zero", in)
		}
	}
}

func TestDecodeAmountInvalid(t *testing.T) {
	for _, in := range []string{"abc", "12,34.56,78", "..", "12a34"} {
		_, err := DecodeAmount(in)
		if err == nil {
			t.Errorf("DecodeAmount(%q): want error, got none", in)
			continue
		}
		var amountErr *InvalidAmountError
		if !errors.As(err, &amountErr) {
			t.Errorf("DecodeAmount(%q) error = %T, want *InvalidAmountError", in, err)
		}
	}
}

func TestDecodeDate(t *testing.T) {
	tests := []struct {
		in      string
		want    date.Date
		wantErr bool
	}{
		{in: "15.05.2023", want: date.New(2023, 5, 15)},
		{in: " 15.05.2023 ", want: date.New(2023, 5, 15)},
		{in: "15.05.2023 10:30:00", want: date.New(2023, 5, 15)},
		{in: "2023-05-15", want: date.New(2023, 5, 15)},
		{in: "15/05/2023", wantErr: true},
		{in: "31.02.2023", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := DecodeDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("DecodeDate(%q): want error, got %v", tt.in, got)
				continue
			}
			var dateErr *InvalidDateError
			if !errors.As(err, &dateErr) {
				t.Errorf("DecodeDate(%q) error = %T, want *InvalidDateError", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("DecodeDate(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DecodeDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"₽", "RUB"},
		{"руб.", "RUB"},
		{"РУБ", "RUB"},
		{"рублей", "RUB"},
		{"RUB", "RUB"},
		{"usd", "USD"},
		{"$", "USD"},
		{"eur", "EUR"},
		{"БОНУС", "БОНУС"}, // unknown tokens pass through uppercased
	}
	for _, tt := range tests {
		if got := CanonicalCurrency(tt.in); got != tt.want {
			t.Errorf("CanonicalCurrency(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
