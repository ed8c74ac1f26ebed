package sberreport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/etnz/sberreport/date"
)

// IisContribution is one deposit line of the IIS contributions table.
//
// Year and Limit repeat the last non-empty value above them: the statement
// prints them once per year group and leaves the cells blank on the
// following lines.
type IisContribution struct {
	Year           int       `json:"year"`
	Limit          Amount    `json:"limit"`
	Date           date.Date `json:"date"`
	Amount         Amount    `json:"amount"`
	Reason         string    `json:"reason"`
	RemainingLimit Amount    `json:"remainingLimit"`
}

// IisContributions is the IIS deposits table of one statement.
type IisContributions struct {
	Rows    []IisContribution `json:"rows"`
	Skipped []RowError        `json:"-"`
}

const iisTable = "iis contributions"

var iisHeaders = []string{"Год", "Дата операции", "Остаток лимита"}

var iisLabels = []label{
	{field: "year", synonyms: []string{"Год"}, required: true},
	{field: "limit", synonyms: []string{"Лимит, руб.", "Лимит"}},
	{field: "date", synonyms: []string{"Дата операции", "Дата"}, required: true},
	{field: "amount", synonyms: []string{"Сумма, руб.", "Сумма"}, required: true},
	{field: "reason", synonyms: []string{"Основание операции", "Основание"}},
	{field: "remaining", synonyms: []string{"Остаток лимита"}},
}

const iisDepth = 1

// noLimitMarker marks a year without a deposit ceiling. It decodes as an
// explicit zero, not an absent amount.
const noLimitMarker = "ограничений нет"

func extractIisContributions(table *goquery.Selection, o Options) (*IisContributions, error) {
	cols, missing := resolveColumns(headerRows(table, iisDepth), iisLabels)
	if missing != nil {
		return nil, fmt.Errorf("%s table: required column %q not found", iisTable, missing.synonyms[0])
	}

	t := &IisContributions{}
	keywords := o.footerKeywords()

	// Year and limit carry forward across the rows of one year group.
	year := 0
	limit := Amount{}

	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i < iisDepth {
			return
		}
		cells := rowCells(tr)
		if len(cells) == 0 || isBlankRow(cells) || isRulerRow(cells) || isFooterRow(cells, keywords) {
			return
		}

		if idx := cols["year"]; idx < len(cells) && cells[idx] != "" {
			y, err := strconv.Atoi(cells[idx])
			if err != nil {
				t.Skipped = append(t.Skipped, RowError{Row: i, Err: fmt.Errorf("bad year %q: %w", cells[idx], err)})
				return
			}
			year = y
		}
		if idx, ok := cols["limit"]; ok && idx < len(cells) && cells[idx] != "" {
			a, err := decodeLimit(cells[idx], "Лимит")
			if err != nil {
				t.Skipped = append(t.Skipped, RowError{Row: i, Err: err})
				return
			}
			limit = a
		}

		// A blank date cell means the row only restates the year group.
		if idx := cols["date"]; idx >= len(cells) || cells[idx] == "" {
			return
		}

		row, err := decodeIisRow(cells, cols, year, limit)
		if err != nil {
			t.Skipped = append(t.Skipped, RowError{Row: i, Err: err})
			return
		}
		t.Rows = append(t.Rows, row)
	})
	return t, nil
}

func decodeIisRow(cells []string, cols columns, year int, limit Amount) (IisContribution, error) {
	var row IisContribution
	if year == 0 {
		return row, fmt.Errorf("contribution row before any year value")
	}
	row.Year = year
	row.Limit = limit

	d, err := DecodeDate(cells[cols["date"]])
	if err != nil {
		return row, err
	}
	row.Date = d

	// Deposits are printed in roubles without a currency cell. A dash
	// stays absent, it is not a zero-rouble deposit.
	if row.Amount, err = amountCell(cells, cols, "amount", "Сумма", "RUB"); err != nil {
		return row, err
	}

	if idx, ok := cols["reason"]; ok && idx < len(cells) {
		row.Reason = cells[idx]
	}

	if idx, ok := cols["remaining"]; ok && idx < len(cells) {
		if row.RemainingLimit, err = decodeLimit(cells[idx], "Остаток лимита"); err != nil {
			return row, err
		}
	}
	return row, nil
}

// decodeLimit reads a rouble limit cell. The marker phrase and blank cells
// both mean an unconstrained year and decode to zero.
func decodeLimit(s, column string) (Amount, error) {
	if strings.Contains(strings.ToLower(s), noLimitMarker) {
		return A(0, "RUB"), nil
	}
	a, err := DecodeAmount(s)
	if err != nil {
		if ae, ok := err.(*InvalidAmountError); ok {
			ae.Column = column
		}
		return Amount{}, err
	}
	if a.IsAbsent() {
		return A(0, "RUB"), nil
	}
	return withCurrency(a, "RUB"), nil
}
