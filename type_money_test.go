package sberreport

import (
	"encoding/json"
	"testing"
)

func TestMoneyString(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{RUB(1234.56), "1 234,56 ₽"},
		{RUB(-10), "-10,00 ₽"},
		{USD(1234.56), "$1,234.56"},
		{USD(0.5), "$0.50"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMoneyStringKeepsUnitPricePrecision(t *testing.T) {
	// Unit prices carry four decimals. They must survive rendering, a
	// currency fraction is a display default, not a licence to round.
	if got := RUB(305.4567).String(); got != "305,4567 ₽" {
		t.Errorf("String() = %q, want %q", got, "305,4567 ₽")
	}
	if got := USD(305.4567).String(); got != "$305.4567" {
		t.Errorf("String() = %q, want %q", got, "$305.4567")
	}
	if got := RUB(-305.4567).String(); got != "-305,4567 ₽" {
		t.Errorf("String() = %q, want %q", got, "-305,4567 ₽")
	}
}

func TestMoneyStringRoundTrips(t *testing.T) {
	// The display form must decode back to the same value, statements use
	// the same formatting conventions.
	for _, m := range []Money{RUB(1234.56), RUB(-10), USD(1234.56), RUB(305.4567), USD(305.4567)} {
		a, err := DecodeAmount(m.String())
		if err != nil {
			t.Fatalf("DecodeAmount(%q) error = %v", m.String(), err)
		}
		got, ok := a.Money()
		if !ok {
			t.Fatalf("DecodeAmount(%q) is absent", m.String())
		}
		if !got.Equal(m) {
			t.Errorf("round trip of %q = %v, want %v", m.String(), got, m)
		}
	}
}

func TestMoneySignedString(t *testing.T) {
	if got := RUB(10).SignedString(); got != "+10,00 ₽" {
		t.Errorf("SignedString() = %q, want %q", got, "+10,00 ₽")
	}
	if got := RUB(-10).SignedString(); got != "-10,00 ₽" {
		t.Errorf("SignedString() = %q, want %q", got, "-10,00 ₽")
	}
	if got := RUB(0).SignedString(); got != "-" {
		t.Errorf("SignedString() = %q, want %q", got, "-")
	}
}

func TestMoneyArithmetic(t *testing.T) {
	if got := RUB(10).Add(RUB(5)); !got.Equal(RUB(15)) {
		t.Errorf("Add = %v, want %v", got, RUB(15))
	}
	if got := RUB(10).Sub(RUB(15)); !got.Equal(RUB(-5)) {
		t.Errorf("Sub = %v, want %v", got, RUB(-5))
	}
	if got := RUB(305.50).Mul(Q(100)); !got.Equal(RUB(30550)) {
		t.Errorf("Mul = %v, want %v", got, RUB(30550))
	}
	// the "" currency is weak: it adopts the other side
	if got := M(5, "").Add(RUB(5)); !got.Equal(RUB(10)) {
		t.Errorf("weak currency Add = %v, want %v", got, RUB(10))
	}
}

func TestAmountAbsent(t *testing.T) {
	var absent Amount
	if !absent.IsAbsent() {
		t.Fatal("zero Amount must be absent")
	}
	if absent.String() != "—" {
		t.Errorf("absent String() = %q, want %q", absent.String(), "—")
	}
	if absent.Currency() != "" {
		t.Errorf("absent Currency() = %q, want empty", absent.Currency())
	}
	if _, ok := absent.Money(); ok {
		t.Error("absent Money() reports ok")
	}
	if A(0, "RUB").IsAbsent() {
		t.Error("an explicit zero is not absent")
	}
}

func TestAmountAdd(t *testing.T) {
	var absent Amount
	tests := []struct {
		name string
		a, b Amount
		want Amount
	}{
		{name: "both present", a: aRUB(10), b: aRUB(5), want: aRUB(15)},
		{name: "absent left identity", a: absent, b: aRUB(5), want: aRUB(5)},
		{name: "absent right identity", a: aRUB(5), b: absent, want: aRUB(5)},
		{name: "both absent stay absent", a: absent, b: absent, want: absent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Add(tt.b)
			if !got.Equal(tt.want) {
				t.Errorf("Add = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAmountEqual(t *testing.T) {
	var absent Amount
	if absent.Equal(A(0, "RUB")) {
		t.Error("absent must not equal an explicit zero")
	}
	if !absent.Equal(Amount{}) {
		t.Error("two absents are equal")
	}
	if !aRUB(10).Equal(aRUB(10)) {
		t.Error("equal present amounts differ")
	}
}

func TestAmountJSON(t *testing.T) {
	got, err := json.Marshal(aRUB(1234.56))
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if want := `{"currency":"RUB","amount":1234.56}`; string(got) != want {
		t.Errorf("present amount = %s, want %s", got, want)
	}

	got, err = json.Marshal(Amount{})
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if want := "null"; string(got) != want {
		t.Errorf("absent amount = %s, want %s", got, want)
	}
}

func TestQuantityJSON(t *testing.T) {
	got, err := json.Marshal(Q(100.5))
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if want := "100.5"; string(got) != want {
		t.Errorf("quantity = %s, want %s", got, want)
	}

	var q Quantity
	if err := json.Unmarshal([]byte("100.5"), &q); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if !q.Equal(Q(100.5)) {
		t.Errorf("round trip = %v, want %v", q, Q(100.5))
	}
}
