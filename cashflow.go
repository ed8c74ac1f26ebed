package sberreport

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/etnz/sberreport/date"
)

// CashFlowKind classifies a cash movement row by its description.
type CashFlowKind int

const (
	UnknownFlow CashFlowKind = iota
	OpeningBalance
	ClosingBalance
	TradesNet
	Deposit
	Withdrawal
	Dividend
	Coupon
	BrokerFee
	ExchangeFee
	Tax
	CorporateAction
)

func (k CashFlowKind) String() string {
	switch k {
	case OpeningBalance:
		return "opening-balance"
	case ClosingBalance:
		return "closing-balance"
	case TradesNet:
		return "trades-net"
	case Deposit:
		return "deposit"
	case Withdrawal:
		return "withdrawal"
	case Dividend:
		return "dividend"
	case Coupon:
		return "coupon"
	case BrokerFee:
		return "broker-fee"
	case ExchangeFee:
		return "exchange-fee"
	case Tax:
		return "tax"
	case CorporateAction:
		return "corporate-action"
	default:
		return "unknown"
	}
}

func (k CashFlowKind) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", k.String())), nil
}

// cashFlowClasses is the classification table, applied in order against the
// lowercased description: the first matching needle decides the kind.
// The balance rows come first, "остаток" also appears in other wordings.
var cashFlowClasses = []struct {
	needle string
	kind   CashFlowKind
}{
	{"входящий остаток", OpeningBalance},
	{"исходящий остаток", ClosingBalance},
	{"сальдо расчетов по сделкам", TradesNet},
	{"корпоративные действия", CorporateAction},
	{"комиссия брокера", BrokerFee},
	{"комиссия биржи", ExchangeFee},
	{"комиссия торговой системы", ExchangeFee},
	{"зачисление д/с", Deposit},
	{"пополнение счета", Deposit},
	{"списание д/с", Withdrawal},
	{"вывод д/с", Withdrawal},
	{"дивиденд", Dividend},
	{"купон", Coupon},
	{"погашение", Coupon},
	{"ндфл", Tax},
	{"налог", Tax},
}

// ClassifyCashFlow maps a raw row description to its kind.
func ClassifyCashFlow(description string) CashFlowKind {
	lower := strings.ToLower(description)
	for _, c := range cashFlowClasses {
		if strings.Contains(lower, c.needle) {
			return c.kind
		}
	}
	return UnknownFlow
}

// CashFlowRow is one line of the cash movements table. Amount keeps the
// statement's sign: fees and withdrawals are negative, inflows positive.
// Date stays zero for statements whose summary table carries no date column.
type CashFlowRow struct {
	Date        date.Date    `json:"date"`
	Kind        CashFlowKind `json:"kind"`
	Description string       `json:"description"`
	Amount      Amount       `json:"amount"`
	Currency    string       `json:"currency"`
}

// CashFlowSummary is the cash movements table of one statement, or the
// merged movements of a whole set.
type CashFlowSummary struct {
	Rows    []CashFlowRow `json:"rows"`
	Skipped []RowError    `json:"-"`
}

// Totals sums the rows per currency, in currency order. Absent amounts do
// not contribute.
func (s *CashFlowSummary) Totals() []Money {
	byCur := map[string]Money{}
	for _, r := range s.Rows {
		m, ok := r.Amount.Money()
		if !ok {
			continue
		}
		byCur[r.Currency] = byCur[r.Currency].Add(Money{value: m.value, cur: r.Currency})
	}
	curs := make([]string, 0, len(byCur))
	for c := range byCur {
		curs = append(curs, c)
	}
	sort.Strings(curs)
	totals := make([]Money, 0, len(curs))
	for _, c := range curs {
		totals = append(totals, byCur[c])
	}
	return totals
}

const cashFlowTable = "cash flow"

var cashFlowHeaders = []string{"Описание", "Сумма", "Валюта"}

var cashFlowLabels = []label{
	{field: "date", synonyms: []string{"Дата операции", "Дата"}},
	{field: "description", synonyms: []string{"Описание операции", "Описание"}, required: true},
	{field: "amount", synonyms: []string{"Сумма зачисления", "Сумма"}, required: true},
	{field: "currency", synonyms: []string{"Валюта"}, required: true},
}

const cashFlowDepth = 1

func extractCashFlow(table *goquery.Selection, o Options) (*CashFlowSummary, error) {
	cols, missing := resolveColumns(headerRows(table, cashFlowDepth), cashFlowLabels)
	if missing != nil {
		return nil, fmt.Errorf("%s table: required column %q not found", cashFlowTable, missing.synonyms[0])
	}

	summary := &CashFlowSummary{}
	keywords := o.footerKeywords()

	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i < cashFlowDepth {
			return
		}
		cells := rowCells(tr)
		if len(cells) == 0 || isBlankRow(cells) || isRulerRow(cells) {
			return
		}
		if isFooterRow(cells, keywords) {
			return
		}

		row, err := decodeCashFlowRow(cells, cols)
		if err != nil {
			summary.Skipped = append(summary.Skipped, RowError{Row: i, Err: err})
			return
		}
		summary.Rows = append(summary.Rows, row)
	})
	return summary, nil
}

func decodeCashFlowRow(cells []string, cols columns) (CashFlowRow, error) {
	var row CashFlowRow

	idx := cols["description"]
	if idx >= len(cells) {
		return row, fmt.Errorf("row has no description cell")
	}
	row.Description = cells[idx]
	row.Kind = ClassifyCashFlow(row.Description)
	row.Currency = currencyCell(cells, cols, "currency", "RUB")

	if t := textCell(cells, cols, "date"); t != "" {
		d, err := DecodeDate(t)
		if err != nil {
			return row, err
		}
		row.Date = d
	}

	var err error
	if row.Amount, err = amountCell(cells, cols, "amount", "Сумма", row.Currency); err != nil {
		return row, err
	}
	return row, nil
}
