// Package renderer turns parsed statements and merged views into markdown,
// ready for a terminal renderer or a plain pager.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/sberreport"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders one statement: the header facts, then one section
// per table the statement carries. Absent sections are simply not rendered.
func ReportMarkdown(r *sberreport.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Statement %s, %s", r.Meta.AccountID, r.Meta.Period()))
	doc.Table(md.TableSet{
		Header: []string{md.Bold("Investor"), md.Bold(r.Meta.InvestorName)},
		Rows: [][]string{
			{"Contract", r.Meta.ContractNumber},
			{"Account type", r.Meta.Kind.String()},
			{"Generated", r.Meta.GeneratedAt.String()},
		},
	})

	if v := r.AssetValuation; v != nil {
		doc.H2("Asset Valuation")
		table := md.TableSet{
			Header: []string{"Category", "Start", "End", "Change"},
			Rows:   [][]string{},
		}
		for _, row := range v.Rows {
			table.Rows = append(table.Rows, []string{
				row.Category,
				row.Start.String(),
				row.End.String(),
				row.Change.String(),
			})
		}
		doc.Table(table)
		doc.PlainText(fmt.Sprintf("Total change over the period: %s", v.TotalChange))
		noteSkipped(doc, v.Skipped)
	}

	if c := r.CashFlow; c != nil {
		doc.H2("Cash Flows")
		doc.Table(cashFlowTable(c))
		if totals := c.Totals(); len(totals) > 0 {
			doc.PlainText(fmt.Sprintf("Net movement: %s", moneyList(totals)))
		}
		noteSkipped(doc, c.Skipped)
	}

	if p := r.Portfolio; p != nil {
		doc.H2("Portfolio")
		doc.Table(positionsTable(p))
		noteSkipped(doc, p.Skipped)
	}

	if iis := r.IisContributions; iis != nil {
		doc.H2("IIS Contributions")
		table := md.TableSet{
			Header: []string{"Year", "Limit", "Date", "Amount", "Reason", "Remaining"},
			Rows:   [][]string{},
		}
		for _, row := range iis.Rows {
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(row.Year),
				row.Limit.String(),
				dateCell(row.Date),
				row.Amount.String(),
				row.Reason,
				row.RemainingLimit.String(),
			})
		}
		doc.Table(table)
		noteSkipped(doc, iis.Skipped)
	}

	return doc.String()
}

// SetMarkdown renders the inventory of a loaded batch, one line per
// statement, in period order.
func SetMarkdown(s *sberreport.ReportSet) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if s.Len() == 0 {
		doc.H1("Statements")
		doc.PlainText("No statements loaded.")
		return doc.String()
	}

	doc.H1(fmt.Sprintf("Statements, %s", s.Span()))
	table := md.TableSet{
		Header: []string{"Name", "Account", "Type", "Period", "Generated"},
		Rows:   [][]string{},
	}
	for r := range s.All() {
		table.Rows = append(table.Rows, []string{
			r.Name,
			r.Meta.AccountID,
			r.Meta.Kind.String(),
			r.Meta.Period().String(),
			r.Meta.GeneratedAt.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

func noteSkipped(doc *md.Markdown, skipped []sberreport.RowError) {
	if len(skipped) == 0 {
		return
	}
	doc.PlainText(fmt.Sprintf("%d row(s) of the source table could not be decoded.", len(skipped)))
}
