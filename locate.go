package sberreport

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// The statement layout moves between brokerage software releases: tables gain
// columns, headings change wording, venues appear and disappear. Everything
// here therefore locates content by label, never by position, and labels
// carry ordered synonym lists so that an exact match from one release and a
// rewording from another both resolve to the same logical column.

// label names one logical field and the header spellings that may carry it.
type label struct {
	field    string
	synonyms []string
	required bool
}

// matchIndex finds the header cell for a synonym list. Strategies apply in
// order over the whole row: exact match, then case-insensitive match, then
// case-insensitive substring. The first synonym to hit wins, at its first
// matching cell.
func matchIndex(cells []string, synonyms []string) int {
	for _, syn := range synonyms {
		for i, c := range cells {
			if c == syn {
				return i
			}
		}
	}
	for _, syn := range synonyms {
		folded := strings.ToLower(syn)
		for i, c := range cells {
			if strings.ToLower(c) == folded {
				return i
			}
		}
	}
	for _, syn := range synonyms {
		folded := strings.ToLower(syn)
		for i, c := range cells {
			if strings.Contains(strings.ToLower(c), folded) {
				return i
			}
		}
	}
	return -1
}

// columns maps a logical field name to its cell index in data rows.
type columns map[string]int

// resolveColumns binds labels to cell indexes using the table's header rows.
// The deepest header row is tried first: in two-level headers the leaf row
// carries the per-column captions while the top row holds grouping banners.
func resolveColumns(headerRows [][]string, labels []label) (columns, *label) {
	cols := make(columns, len(labels))
	for i := range labels {
		l := &labels[i]
		idx := -1
		for r := len(headerRows) - 1; r >= 0 && idx < 0; r-- {
			idx = matchIndex(headerRows[r], l.synonyms)
		}
		if idx < 0 {
			if l.required {
				return nil, l
			}
			continue
		}
		cols[l.field] = idx
	}
	return cols, nil
}

// tableScanner walks the statement's tables in document order exactly once.
type tableScanner struct {
	tables []*goquery.Selection
	cursor int
}

func newTableScanner(r *RawReport) *tableScanner {
	var tables []*goquery.Selection
	r.doc.Find("table").Each(func(_ int, t *goquery.Selection) {
		tables = append(tables, t)
	})
	return &tableScanner{tables: tables}
}

// next returns the first table at or after the cursor whose header region
// matches every required phrase, and consumes it. On a miss the cursor stays
// put, so a statement missing one table cannot shift later lookups, and two
// table kinds can never claim the same region.
func (s *tableScanner) next(required []string, headerDepth int) (*goquery.Selection, bool) {
	for i := s.cursor; i < len(s.tables); i++ {
		if tableHasHeaders(s.tables[i], required, headerDepth) {
			s.cursor = i + 1
			return s.tables[i], true
		}
	}
	return nil, false
}

// tableHasHeaders checks whether one of the first headerDepth rows of the
// table contains a match for every required phrase.
func tableHasHeaders(table *goquery.Selection, required []string, headerDepth int) bool {
	matched := false
	table.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		if i >= headerDepth {
			return false
		}
		cells := rowCells(tr)
		if len(cells) == 0 {
			return true
		}
		for _, phrase := range required {
			if matchIndex(cells, []string{phrase}) < 0 {
				return true
			}
		}
		matched = true
		return false
	})
	return matched
}

// headerRows collects the text of the first depth rows, for column binding.
func headerRows(table *goquery.Selection, depth int) [][]string {
	var rows [][]string
	table.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		if i >= depth {
			return false
		}
		rows = append(rows, rowCells(tr))
		return true
	})
	return rows
}

// rowCells returns the normalized text of every td/th cell of a row.
func rowCells(tr *goquery.Selection) []string {
	var cells []string
	tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, normalizeSpace(cell.Text()))
	})
	return cells
}

// normalizeSpace collapses every run of whitespace, including non-breaking
// and narrow non-breaking spaces, into a single blank and trims the ends.
func normalizeSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !prevSpace {
				b.WriteByte(' ')
			}
			prevSpace = true
			continue
		}
		b.WriteRune(r)
		prevSpace = false
	}
	return strings.TrimSpace(b.String())
}

var rulerCellRe = regexp.MustCompile(`^\d{1,3}$`)

// isRulerRow detects the column-numbering row some tables insert between the
// captions and the data ("1", "2", "3", ...).
func isRulerRow(cells []string) bool {
	if len(cells) < 2 {
		return false
	}
	for _, c := range cells {
		if !rulerCellRe.MatchString(c) {
			return false
		}
	}
	return true
}

// isBlankRow reports a row made only of empty cells.
func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// DefaultFooterKeywords mark the subtotal and grand-total rows that close
// statement tables. Matching is the same ordered matcher used for headers.
var DefaultFooterKeywords = []string{"итого", "всего"}

// isFooterRow reports whether a data row is a subtotal or total footer.
func isFooterRow(cells []string, keywords []string) bool {
	if len(cells) == 0 || cells[0] == "" {
		return false
	}
	return matchIndex(cells[:1], keywords) >= 0
}
