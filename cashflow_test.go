package sberreport

import "testing"

func TestClassifyCashFlow(t *testing.T) {
	tests := []struct {
		desc string
		want CashFlowKind
	}{
		{"Входящий остаток денежных средств", OpeningBalance},
		{"Исходящий остаток денежных средств", ClosingBalance},
		{"Сальдо расчетов по сделкам купли-продажи", TradesNet},
		{"Зачисление д/с", Deposit},
		{"Пополнение счета клиента", Deposit},
		{"Списание д/с", Withdrawal},
		{"Вывод д/с по поручению", Withdrawal},
		{"Дивиденды Сбербанк ПАО", Dividend},
		{"Купонный доход ОФЗ 26238", Coupon},
		{"Погашение облигации", Coupon},
		{"Комиссия Брокера", BrokerFee},
		{"Комиссия Биржи", ExchangeFee},
		{"Комиссия торговой системы", ExchangeFee},
		{"Удержан НДФЛ", Tax},
		{"Зачисление налога к возврату", Tax},
		{"Корпоративные действия", CorporateAction},
		{"Прочие операции", UnknownFlow},
		{"", UnknownFlow},
	}
	for _, tt := range tests {
		if got := ClassifyCashFlow(tt.desc); got != tt.want {
			t.Errorf("ClassifyCashFlow(%q) = %v, want %v", tt.desc, got, tt.want)
		}
	}
}

func TestCashFlowKindString(t *testing.T) {
	tests := []struct {
		kind CashFlowKind
		want string
	}{
		{OpeningBalance, "opening-balance"},
		{ClosingBalance, "closing-balance"},
		{TradesNet, "trades-net"},
		{Deposit, "deposit"},
		{Withdrawal, "withdrawal"},
		{Dividend, "dividend"},
		{Coupon, "coupon"},
		{BrokerFee, "broker-fee"},
		{ExchangeFee, "exchange-fee"},
		{Tax, "tax"},
		{CorporateAction, "corporate-action"},
		{UnknownFlow, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestCashFlowTotals(t *testing.T) {
	s := &CashFlowSummary{Rows: []CashFlowRow{
		{Description: "Зачисление д/с", Amount: aRUB(1000), Currency: "RUB"},
		{Description: "Комиссия Брокера", Amount: aRUB(-10), Currency: "RUB"},
		{Description: "Дивиденды", Amount: A(5, "USD"), Currency: "USD"},
		{Description: "Плановая операция", Currency: "RUB"}, // absent amount
	}}

	totals := s.Totals()
	if len(totals) != 2 {
		t.Fatalf("Totals() has %d entries, want 2", len(totals))
	}
	// per currency, in currency order
	if !totals[0].Equal(RUB(990)) {
		t.Errorf("RUB total = %v, want %v", totals[0], RUB(990))
	}
	if !totals[1].Equal(USD(5)) {
		t.Errorf("USD total = %v, want %v", totals[1], USD(5))
	}
}

func TestCashFlowTotalsEmpty(t *testing.T) {
	s := &CashFlowSummary{}
	if totals := s.Totals(); len(totals) != 0 {
		t.Errorf("Totals() of an empty summary = %v, want none", totals)
	}
}
