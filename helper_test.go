package sberreport

import (
	"fmt"
	"strings"
	"testing"
)

// RUB is a helper for test to create rouble money from const
func RUB(v float64) Money { return M(v, "RUB") }

// USD is a helper for test to create dollar money from const
func USD(v float64) Money { return M(v, "USD") }

// aRUB is a helper for test to create a present rouble amount from const
func aRUB(v float64) Amount { return A(v, "RUB") }

// statementHTML assembles a full statement page around the given table
// markup: the period heading, the investor block, then the tables in
// document order. note is appended after the contract number, it is where a
// statement mentions the account type.
func statementHTML(start, end, created, investor, contract, note string, tables ...string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><body>\n")
	fmt.Fprintf(&b, "<h3>Отчет брокера за период с %s по %s, дата создания %s</h3>\n", start, end, created)
	fmt.Fprintf(&b, "<p>\nИнвестор: %s<br>\nДоговор № %s %s\n</p>\n", investor, contract, note)
	for _, t := range tables {
		b.WriteString(t)
		b.WriteString("\n")
	}
	b.WriteString("</body></html>\n")
	return b.String()
}

// cashTable builds a cash movements table with a date column.
func cashTable(rows ...string) string {
	return "<table>\n<tr><th>Дата операции</th><th>Описание операции</th><th>Сумма</th><th>Валюта</th></tr>\n" +
		strings.Join(rows, "\n") + "\n</table>"
}

func cashRow(day, desc, amount, cur string) string {
	return fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>", day, desc, amount, cur)
}

// positionsTable builds a securities table with the two-level header: a
// grouping banner row over the leaf caption row.
func positionsTable(rows ...string) string {
	return "<table>\n<tr><th colspan=\"8\">Портфель ценных бумаг</th></tr>\n" +
		"<tr><th>Наименование</th><th>ISIN</th><th>Валюта цены</th><th>Количество, шт.</th><th>Номинал</th><th>Рыночная цена</th><th>Рыночная стоимость, без НКД</th><th>НКД</th></tr>\n" +
		strings.Join(rows, "\n") + "\n</table>"
}

func positionRow(name, isin, cur, qty, price, value string) string {
	return fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>1</td><td>%s</td><td>%s</td><td>0,00</td></tr>",
		name, isin, cur, qty, price, value)
}

// mustParse loads and parses an in-memory statement, failing the test on any
// error.
func mustParse(t *testing.T, html, name string) *Report {
	t.Helper()
	raw, err := LoadString(html, name)
	if err != nil {
		t.Fatalf("LoadString(%s) error = %v", name, err)
	}
	r, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse(%s) error = %v", name, err)
	}
	return r
}
