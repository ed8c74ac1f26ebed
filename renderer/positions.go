package renderer

import (
	"bytes"

	"github.com/etnz/sberreport"
	md "github.com/nao1215/markdown"
)

func PositionsMarkdown(p sberreport.MergedPositions) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Merged Positions")
	table := md.TableSet{
		Header: []string{"ISIN", "Name", "Quantity", "Value"},
		Rows:   [][]string{},
	}
	for _, pos := range p {
		table.Rows = append(table.Rows, []string{
			pos.ISIN,
			pos.Name,
			pos.Quantity.String(),
			pos.Value.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}

func positionsTable(p *sberreport.Portfolio) md.TableSet {
	table := md.TableSet{
		Header: []string{"Name", "ISIN", "Venue", "Quantity", "Price", "Value"},
		Rows:   [][]string{},
	}
	for _, pos := range p.Positions {
		table.Rows = append(table.Rows, []string{
			pos.Name,
			pos.ISIN,
			pos.Venue,
			pos.Quantity.String(),
			pos.Price.String(),
			pos.Value.String(),
		})
	}
	return table
}
