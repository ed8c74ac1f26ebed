package sberreport

import (
	"testing"
)

func TestMatchIndex(t *testing.T) {
	tests := []struct {
		name     string
		cells    []string
		synonyms []string
		want     int
	}{
		{
			name:     "exact match",
			cells:    []string{"Дата", "Сумма", "Валюта"},
			synonyms: []string{"Сумма"},
			want:     1,
		},
		{
			name: "exact beats earlier substring",
			// cell 0 contains the word, cell 2 is the word: exact wins.
			cells:    []string{"Итого по площадке", "прочее", "Итого"},
			synonyms: []string{"Итого"},
			want:     2,
		},
		{
			name:     "case insensitive",
			cells:    []string{"СУММА"},
			synonyms: []string{"Сумма"},
			want:     0,
		},
		{
			name:     "substring",
			cells:    []string{"Сумма, руб."},
			synonyms: []string{"Сумма"},
			want:     0,
		},
		{
			name: "first synonym wins over cell order",
			// the more specific synonym is listed first and hits a later
			// cell, it still wins.
			cells:    []string{"Сумма", "Сумма зачисления"},
			synonyms: []string{"Сумма зачисления", "Сумма"},
			want:     1,
		},
		{
			name:     "no match",
			cells:    []string{"Дата", "Сумма"},
			synonyms: []string{"Валюта"},
			want:     -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchIndex(tt.cells, tt.synonyms); got != tt.want {
				t.Errorf("matchIndex(%v, %v) = %d, want %d", tt.cells, tt.synonyms, got, tt.want)
			}
		})
	}
}

func TestResolveColumns(t *testing.T) {
	headers := [][]string{
		{"Портфель ценных бумаг"},
		{"Наименование", "ISIN", "Количество, шт."},
	}
	labels := []label{
		{field: "name", synonyms: []string{"Наименование"}, required: true},
		{field: "isin", synonyms: []string{"ISIN"}, required: true},
		{field: "quantity", synonyms: []string{"Количество, шт.", "Количество"}, required: true},
		{field: "price", synonyms: []string{"Цена"}},
	}

	cols, missing := resolveColumns(headers, labels)
	if missing != nil {
		t.Fatalf("resolveColumns missing %q", missing.field)
	}
	want := columns{"name": 0, "isin": 1, "quantity": 2}
	for field, idx := range want {
		if cols[field] != idx {
			t.Errorf("cols[%q] = %d, want %d", field, cols[field], idx)
		}
	}
	if _, ok := cols["price"]; ok {
		t.Error("optional unmatched label must stay unbound")
	}

	// a required label that matches nothing is reported
	labels = append(labels, label{field: "venue", synonyms: []string{"Площадка"}, required: true})
	if _, missing = resolveColumns(headers, labels); missing == nil || missing.field != "venue" {
		t.Errorf("missing = %v, want the venue label", missing)
	}
}

func TestResolveColumnsPrefersDeepestRow(t *testing.T) {
	// both rows carry the caption: the leaf row (the deepest) must win,
	// its indexes are the ones aligned with the data rows.
	headers := [][]string{
		{"Сумма", "прочее"},
		{"прочее", "Сумма"},
	}
	labels := []label{{field: "amount", synonyms: []string{"Сумма"}, required: true}}
	cols, missing := resolveColumns(headers, labels)
	if missing != nil {
		t.Fatalf("resolveColumns missing %q", missing.field)
	}
	if cols["amount"] != 1 {
		t.Errorf("cols[amount] = %d, want 1 (the leaf row index)", cols["amount"])
	}
}

func TestTableScannerForwardOnly(t *testing.T) {
	html := statementHTML("01.02.2024", "29.02.2024", "05.03.2024",
		"ИВАНОВ ИВАН ИВАНОВИЧ", "100ABC", "от 15.01.2020",
		cashTable(cashRow("15.02.2024", "Зачисление д/с", "1 000,00", "RUB")),
		positionsTable(positionRow("Сбербанк ПАО ао", "RU0009029540", "RUB", "100", "305,50", "30 550,00")),
	)
	raw, err := LoadString(html, "scan")
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	scan := newTableScanner(raw)

	// the portfolio table is second; claiming it consumes the cash table's
	// region as well
	if _, ok := scan.next(portfolioHeaders, portfolioDepth); !ok {
		t.Fatal("portfolio table not found")
	}
	if _, ok := scan.next(cashFlowHeaders, cashFlowDepth); ok {
		t.Error("scanner went backwards to the cash table")
	}

	// a fresh scan in statement order claims both
	scan = newTableScanner(raw)
	if _, ok := scan.next(cashFlowHeaders, cashFlowDepth); !ok {
		t.Fatal("cash table not found")
	}
	if _, ok := scan.next(portfolioHeaders, portfolioDepth); !ok {
		t.Fatal("portfolio table not found after the cash table")
	}

	// a miss leaves the cursor alone: the iis table is absent, and asking
	// for it must not consume anything
	scan = newTableScanner(raw)
	if _, ok := scan.next(iisHeaders, iisDepth); ok {
		t.Error("found an iis table in a statement without one")
	}
	if _, ok := scan.next(cashFlowHeaders, cashFlowDepth); !ok {
		t.Error("the miss moved the cursor past the cash table")
	}
}

func TestBannerRowHidesLeafCaptions(t *testing.T) {
	// depth-1 sections only look at the first row. The securities table
	// starts with its banner row, so its leaf captions can never be claimed
	// by a depth-1 signature.
	html := statementHTML("01.02.2024", "29.02.2024", "05.03.2024",
		"ИВАНОВ ИВАН ИВАНОВИЧ", "100ABC", "от 15.01.2020",
		positionsTable(positionRow("Сбербанк ПАО ао", "RU0009029540", "RUB", "100", "305,50", "30 550,00")),
	)
	raw, err := LoadString(html, "banner")
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	scan := newTableScanner(raw)
	if _, ok := scan.next(cashFlowHeaders, cashFlowDepth); ok {
		t.Error("cash signature claimed the securities table")
	}
	if _, ok := scan.next(portfolioHeaders, portfolioDepth); !ok {
		t.Error("portfolio signature missed its own table")
	}
}

func TestNormalizeSpace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  a  b  ", "a b"},
		{"1 234,56", "1 234,56"},
		{"1 234", "1 234"},
		{"a\n\tb", "a b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeSpace(tt.in); got != tt.want {
			t.Errorf("normalizeSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRowPredicates(t *testing.T) {
	if !isRulerRow([]string{"1", "2", "3", "14"}) {
		t.Error("numbering row not detected")
	}
	if isRulerRow([]string{"1"}) {
		t.Error("a single cell is not a numbering row")
	}
	if isRulerRow([]string{"1", "2024"}) {
		t.Error("a four digit cell is not a column number")
	}
	if !isBlankRow([]string{"", "", ""}) {
		t.Error("blank row not detected")
	}
	if isBlankRow([]string{"", "x"}) {
		t.Error("non-blank row detected as blank")
	}
	if !isFooterRow([]string{"Итого:", ""}, DefaultFooterKeywords) {
		t.Error("footer row not detected")
	}
	if !isFooterRow([]string{"Всего по счету", ""}, DefaultFooterKeywords) {
		t.Error("grand total row not detected")
	}
	if isFooterRow([]string{"Сбербанк ПАО ао", "Итого"}, DefaultFooterKeywords) {
		t.Error("keyword outside the first cell must not mark a footer")
	}
}
