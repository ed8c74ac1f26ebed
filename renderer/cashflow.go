package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/sberreport"
	"github.com/etnz/sberreport/date"
	md "github.com/nao1215/markdown"
)

func CashFlowMarkdown(c *sberreport.CashFlowSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Cash Flows")
	doc.Table(cashFlowTable(c))
	if totals := c.Totals(); len(totals) > 0 {
		doc.PlainText(fmt.Sprintf("Net movement: %s", moneyList(totals)))
	}

	return doc.String()
}

func cashFlowTable(c *sberreport.CashFlowSummary) md.TableSet {
	table := md.TableSet{
		Header: []string{"Date", "Kind", "Description", "Amount"},
		Rows:   [][]string{},
	}
	for _, row := range c.Rows {
		table.Rows = append(table.Rows, []string{
			dateCell(row.Date),
			row.Kind.String(),
			row.Description,
			row.Amount.String(),
		})
	}
	return table
}

// dateCell renders an undated row the way the statement prints it.
func dateCell(d date.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func moneyList(totals []sberreport.Money) string {
	parts := make([]string, 0, len(totals))
	for _, t := range totals {
		parts = append(parts, t.SignedString())
	}
	return strings.Join(parts, ", ")
}
