package sberreport

import "fmt"

// Helpers shared by the four table extractors. A data row is decoded against
// the table's resolved column map; any failure is reported as an error for
// the caller to record as a RowError. Decoding a row never aborts the table.

// textCell returns the text of an optional column, "" when the column is
// unbound or the row is too short.
func textCell(cells []string, cols columns, field string) string {
	idx, ok := cols[field]
	if !ok || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// amountCell decodes a money cell. caption names the column in errors. An
// unbound optional column yields an absent Amount. A decoded value without
// an attached currency inherits fallbackCur.
func amountCell(cells []string, cols columns, field, caption, fallbackCur string) (Amount, error) {
	idx, ok := cols[field]
	if !ok {
		return Amount{}, nil
	}
	if idx >= len(cells) {
		return Amount{}, fmt.Errorf("row has %d cells, column %q needs %d", len(cells), caption, idx+1)
	}
	a, err := DecodeAmount(cells[idx])
	if err != nil {
		if ae, ok := err.(*InvalidAmountError); ok {
			ae.Column = caption
		}
		return Amount{}, err
	}
	return withCurrency(a, fallbackCur), nil
}

// quantityCell decodes a unit-count cell. Unlike money cells a quantity is
// never absent: a position row without a count is malformed.
func quantityCell(cells []string, cols columns, field, caption string) (Quantity, error) {
	idx, ok := cols[field]
	if !ok || idx >= len(cells) {
		return Quantity{}, fmt.Errorf("column %q missing from row", caption)
	}
	a, err := DecodeAmount(cells[idx])
	if err != nil {
		if ae, ok := err.(*InvalidAmountError); ok {
			ae.Column = caption
		}
		return Quantity{}, err
	}
	m, ok := a.Money()
	if !ok {
		return Quantity{}, fmt.Errorf("column %q holds no count", caption)
	}
	return Quantity{value: m.value}, nil
}

// withCurrency fills in the currency of a present Amount that decoded
// without one.
func withCurrency(a Amount, cur string) Amount {
	if a.present && a.money.cur == "" && cur != "" {
		a.money.cur = cur
	}
	return a
}

// currencyCell canonicalizes the row's currency column, falling back to def.
func currencyCell(cells []string, cols columns, field, def string) string {
	if t := textCell(cells, cols, field); t != "" {
		return CanonicalCurrency(t)
	}
	return def
}
