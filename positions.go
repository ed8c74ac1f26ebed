package sberreport

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Position is one security line of the portfolio table.
type Position struct {
	Name     string   `json:"name"`
	ISIN     string   `json:"isin"`
	Venue    string   `json:"venue"`
	Currency string   `json:"currency"`
	Quantity Quantity `json:"quantity"`
	Price    Amount   `json:"price"`
	Value    Amount   `json:"value"`
}

// Portfolio is the securities table of one statement. Positions keep their
// statement order; Venue records the «Площадка» section a position was
// listed under, "" when the table has no venue rows.
type Portfolio struct {
	Positions []Position `json:"positions"`
	Skipped   []RowError `json:"-"`
}

// Venues lists the distinct venues in first-seen order.
func (p *Portfolio) Venues() []string {
	var venues []string
	seen := map[string]bool{}
	for _, pos := range p.Positions {
		if pos.Venue == "" || seen[pos.Venue] {
			continue
		}
		seen[pos.Venue] = true
		venues = append(venues, pos.Venue)
	}
	return venues
}

const portfolioTable = "portfolio"

// The portfolio table uses a two-level header: a grouping banner row over a
// leaf caption row. The signature phrases all live in the leaf row.
var portfolioHeaders = []string{"ISIN", "Рыночная цена", "Рыночная стоимость"}

var portfolioLabels = []label{
	{field: "name", synonyms: []string{"Наименование"}, required: true},
	{field: "isin", synonyms: []string{"ISIN"}, required: true},
	{field: "currency", synonyms: []string{"Валюта цены", "Валюта"}},
	{field: "quantity", synonyms: []string{"Количество, шт.", "Количество"}, required: true},
	{field: "price", synonyms: []string{"Рыночная цена", "Цена"}},
	{field: "value", synonyms: []string{"Рыночная стоимость, без НКД", "Рыночная стоимость", "Стоимость"}},
}

const portfolioDepth = 2

// venue section rows start with this marker in the first cell.
const venueMarker = "Площадка"

func extractPortfolio(table *goquery.Selection, o Options) (*Portfolio, error) {
	cols, missing := resolveColumns(headerRows(table, portfolioDepth), portfolioLabels)
	if missing != nil {
		return nil, fmt.Errorf("%s table: required column %q not found", portfolioTable, missing.synonyms[0])
	}

	p := &Portfolio{}
	keywords := o.footerKeywords()
	venue := ""

	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i < portfolioDepth {
			return
		}
		cells := rowCells(tr)
		if len(cells) == 0 || isBlankRow(cells) || isRulerRow(cells) {
			return
		}
		if strings.HasPrefix(cells[0], venueMarker) {
			venue = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(cells[0], venueMarker), ":"))
			return
		}
		if isFooterRow(cells, keywords) {
			return
		}

		pos, err := decodePosition(cells, cols, venue, o.StrictISIN)
		if err != nil {
			p.Skipped = append(p.Skipped, RowError{Row: i, Err: err})
			return
		}
		p.Positions = append(p.Positions, pos)
	})
	return p, nil
}

func decodePosition(cells []string, cols columns, venue string, strictISIN bool) (Position, error) {
	var pos Position
	pos.Venue = venue

	idx := cols["name"]
	if idx >= len(cells) || cells[idx] == "" {
		return pos, fmt.Errorf("row has no security name")
	}
	pos.Name = cells[idx]

	isinIdx := cols["isin"]
	if isinIdx >= len(cells) {
		return pos, fmt.Errorf("row has no ISIN cell")
	}
	isin, err := DecodeISIN(cells[isinIdx], strictISIN)
	if err != nil {
		return pos, err
	}
	pos.ISIN = isin

	pos.Currency = currencyCell(cells, cols, "currency", "RUB")

	if pos.Quantity, err = quantityCell(cells, cols, "quantity", "Количество"); err != nil {
		return pos, err
	}
	if pos.Price, err = amountCell(cells, cols, "price", "Рыночная цена", pos.Currency); err != nil {
		return pos, err
	}
	if pos.Value, err = amountCell(cells, cols, "value", "Рыночная стоимость", pos.Currency); err != nil {
		return pos, err
	}
	return pos, nil
}
