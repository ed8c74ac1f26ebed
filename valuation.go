package sberreport

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// AssetValuation is the «Оценка активов» table: one row per trading venue
// with the portfolio valuation at both period boundaries.
type AssetValuation struct {
	Rows []AssetValuationRow `json:"rows"`
	// TotalChange comes from the «Итого» footer. When a statement omits the
	// footer it is recomputed as the sum of the row changes.
	TotalChange Amount     `json:"totalChange"`
	Skipped     []RowError `json:"-"`
}

// AssetValuationRow values one venue or asset class over the period. End is
// the end-of-period valuation, the figure most consumers want.
type AssetValuationRow struct {
	Category string `json:"category"`
	Start    Amount `json:"start"`
	End      Amount `json:"end"`
	Change   Amount `json:"change"`
	Currency string `json:"currency"`
}

const assetValuationTable = "asset valuation"

// assetValuationHeaders is the location signature of the table.
var assetValuationHeaders = []string{"Торговая площадка", "на начало периода", "на конец периода"}

var assetValuationLabels = []label{
	{field: "category", synonyms: []string{"Торговая площадка", "Вид актива", "Площадка"}, required: true},
	{field: "start", synonyms: []string{"Оценка на начало периода", "на начало периода"}},
	{field: "end", synonyms: []string{"Оценка на конец периода", "на конец периода"}, required: true},
	{field: "change", synonyms: []string{"Изменение за период", "Изменение"}},
	{field: "currency", synonyms: []string{"Валюта"}},
}

const assetValuationDepth = 1

func extractAssetValuation(table *goquery.Selection, o Options) (*AssetValuation, error) {
	cols, missing := resolveColumns(headerRows(table, assetValuationDepth), assetValuationLabels)
	if missing != nil {
		return nil, fmt.Errorf("%s table: required column %q not found", assetValuationTable, missing.synonyms[0])
	}

	av := &AssetValuation{}
	keywords := o.footerKeywords()
	footerSeen := false

	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i < assetValuationDepth {
			return
		}
		cells := rowCells(tr)
		if len(cells) == 0 || isBlankRow(cells) || isRulerRow(cells) {
			return
		}
		if isFooterRow(cells, keywords) {
			// the footer repeats the change column as the grand total
			idx, ok := cols["change"]
			if !ok || idx >= len(cells) {
				idx = len(cells) - 1
			}
			if idx > 0 {
				if a, err := DecodeAmount(cells[idx]); err == nil && !a.IsAbsent() {
					av.TotalChange = withCurrency(a, "RUB")
					footerSeen = true
				}
			}
			return
		}

		row, err := decodeAssetValuationRow(cells, cols)
		if err != nil {
			av.Skipped = append(av.Skipped, RowError{Row: i, Err: err})
			return
		}
		av.Rows = append(av.Rows, row)
	})

	if !footerSeen {
		total := Amount{}
		for _, r := range av.Rows {
			m, ok := r.Change.Money()
			if !ok {
				continue
			}
			if t, ok := total.Money(); ok && t.Currency() != m.Currency() {
				// rows valued in different currencies have no single total
				total = Amount{}
				break
			}
			total = total.Add(r.Change)
		}
		av.TotalChange = total
	}
	return av, nil
}

func decodeAssetValuationRow(cells []string, cols columns) (AssetValuationRow, error) {
	var row AssetValuationRow
	idx := cols["category"]
	if idx >= len(cells) || cells[idx] == "" {
		return row, fmt.Errorf("row has no category cell")
	}
	row.Category = cells[idx]
	row.Currency = currencyCell(cells, cols, "currency", "RUB")

	var err error
	if row.Start, err = amountCell(cells, cols, "start", "Оценка на начало периода", row.Currency); err != nil {
		return row, err
	}
	if row.End, err = amountCell(cells, cols, "end", "Оценка на конец периода", row.Currency); err != nil {
		return row, err
	}
	if row.Change, err = amountCell(cells, cols, "change", "Изменение за период", row.Currency); err != nil {
		return row, err
	}
	return row, nil
}
