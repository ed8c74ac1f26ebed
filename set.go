package sberreport

import (
	"iter"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/etnz/sberreport/date"
)

// BatchPolicy decides what a directory load does with a statement that fails
// to load or parse.
type BatchPolicy int

const (
	// FailFast aborts the whole batch on the first bad statement.
	FailFast BatchPolicy = iota
	// SkipMalformed logs a warning for each bad statement and keeps going.
	SkipMalformed
)

// ReportSet is a batch of parsed statements, sorted by period start. The set
// is sealed once built: every merge recomputes its view from the same
// reports, and two merges over one set always agree.
//
// Statements are never deduplicated: loading the same period twice yields two
// entries, and the merged views count both. Deduplication would have to guess
// which copy is authoritative, and the set refuses to guess.
type ReportSet struct {
	reports []*Report
}

// NewReportSet builds a set from already parsed reports. Reports are sorted
// by period start; reports with equal starts keep their argument order.
func NewReportSet(reports ...*Report) *ReportSet {
	s := &ReportSet{reports: make([]*Report, len(reports))}
	copy(s.reports, reports)
	sort.SliceStable(s.reports, func(i, j int) bool {
		return s.reports[i].Meta.PeriodStart.Before(s.reports[j].Meta.PeriodStart)
	})
	return s
}

// FromDir loads every statement of a directory with every section enabled,
// aborting on the first bad file. See FromDirWith.
func FromDir(dir string) (*ReportSet, error) {
	return FromDirWith(dir, DefaultOptions(), FailFast)
}

// FromDirWith loads every *.html / *.htm file of dir (not its
// subdirectories), parses each with o, and returns the reports as a set
// sorted by period start. Files are visited in name order, so a load is
// reproducible. policy decides whether one bad statement aborts the batch or
// is skipped with a warning.
func FromDirWith(dir string, o Options, policy BatchPolicy) (*ReportSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &BatchError{Path: dir, Err: err}
	}

	var reports []*Report
	for _, entry := range entries {
		if entry.IsDir() || !isReportFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		report, err := loadReportFile(path, o)
		if err != nil {
			if policy == SkipMalformed {
				log.Printf("warning: skipping statement %q: %v", path, err)
				continue
			}
			return nil, &BatchError{Path: path, Err: err}
		}
		reports = append(reports, report)
	}
	return NewReportSet(reports...), nil
}

// loadReportFile loads and parses one statement file.
func loadReportFile(path string, o Options) (*Report, error) {
	raw, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWith(raw, o)
}

// isReportFile reports whether the file name carries a statement extension.
func isReportFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// Len returns the number of statements in the set.
func (s *ReportSet) Len() int { return len(s.reports) }

// At returns the i-th statement in period order.
func (s *ReportSet) At(i int) *Report { return s.reports[i] }

// All iterates the statements in period order.
func (s *ReportSet) All() iter.Seq[*Report] {
	return func(yield func(*Report) bool) {
		for _, r := range s.reports {
			if !yield(r) {
				return
			}
		}
	}
}

// ByAccount iterates the statements of one contract, in period order.
func (s *ReportSet) ByAccount(id string) iter.Seq[*Report] {
	return func(yield func(*Report) bool) {
		for _, r := range s.reports {
			if r.Meta.AccountID != id {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Accounts returns the distinct contract identifiers of the set, sorted.
func (s *ReportSet) Accounts() []string {
	seen := map[string]bool{}
	var ids []string
	for _, r := range s.reports {
		if seen[r.Meta.AccountID] {
			continue
		}
		seen[r.Meta.AccountID] = true
		ids = append(ids, r.Meta.AccountID)
	}
	sort.Strings(ids)
	return ids
}

// Span returns the range from the earliest period start to the latest period
// end over the whole set. The zero range is returned for an empty set.
func (s *ReportSet) Span() date.Range {
	if len(s.reports) == 0 {
		return date.Range{}
	}
	span := s.reports[0].Meta.Period()
	for _, r := range s.reports[1:] {
		if end := r.Meta.PeriodEnd; span.To.Before(end) {
			span.To = end
		}
	}
	return span
}

// MergeOptions tunes the merged cash-flow view.
type MergeOptions struct {
	// SuppressDuplicates drops a dated row when an identical row was already
	// contributed by an earlier statement whose period covers that date.
	// Adjacent statements sometimes both print the movements of their shared
	// boundary day; nothing else is ever considered a duplicate, and the
	// option is off by default because dropping rows loses data.
	SuppressDuplicates bool
}

// MergeCashFlows concatenates the cash-flow rows of every statement in
// period order and stable-sorts them by date, so rows of one day keep their
// statement order. Undated rows sort first and are never suppressed. The
// result is recomputed on every call.
func (s *ReportSet) MergeCashFlows(o MergeOptions) *CashFlowSummary {
	type rowKey struct {
		day         date.Date
		kind        CashFlowKind
		description string
		amount      string
		currency    string
	}
	seen := map[rowKey][]date.Range{}

	merged := &CashFlowSummary{}
	for _, r := range s.reports {
		if r.CashFlow == nil {
			continue
		}
		period := r.Meta.Period()
		var keys []rowKey
		for _, row := range r.CashFlow.Rows {
			key := rowKey{
				day:         row.Date,
				kind:        row.Kind,
				description: row.Description,
				amount:      amountKey(row.Amount),
				currency:    row.Currency,
			}
			if o.SuppressDuplicates && !row.Date.IsZero() && coveredBy(seen[key], row.Date) {
				continue
			}
			merged.Rows = append(merged.Rows, row)
			keys = append(keys, key)
		}
		// Rows of one statement never suppress each other, so the keys are
		// recorded only once the whole statement is merged.
		for _, key := range keys {
			seen[key] = append(seen[key], period)
		}
	}

	sort.SliceStable(merged.Rows, func(i, j int) bool {
		return merged.Rows[i].Date.Before(merged.Rows[j].Date)
	})
	return merged
}

func coveredBy(periods []date.Range, day date.Date) bool {
	for _, p := range periods {
		if p.Contains(day) {
			return true
		}
	}
	return false
}

// amountKey is a collision-free rendering of an Amount for duplicate
// detection. The display form depends on the currency's formatter and may
// drop digits, the raw decimal never does.
func amountKey(a Amount) string {
	m, ok := a.Money()
	if !ok {
		return ""
	}
	return m.value.String()
}

// MergedPosition is the security position summed over a whole set.
type MergedPosition struct {
	ISIN     string   `json:"isin"`
	Name     string   `json:"name"`
	Currency string   `json:"currency"`
	Quantity Quantity `json:"quantity"`
	Value    Amount   `json:"value"`
}

// MergedPositions holds one merged position per security, sorted by ISIN.
type MergedPositions []MergedPosition

// Get returns the merged position of one security.
func (m MergedPositions) Get(isin string) (MergedPosition, bool) {
	i := sort.Search(len(m), func(i int) bool { return m[i].ISIN >= isin })
	if i < len(m) && m[i].ISIN == isin {
		return m[i], true
	}
	return MergedPosition{}, false
}

// MergePositions folds the portfolio rows of every statement by ISIN,
// summing quantity and value. The name is taken from the first statement
// that mentions the security. Absent values stay absent instead of becoming
// zeros: a security valued in no statement has no merged value.
//
// Every contribution to one ISIN must agree on the currency; two statements
// pricing the same security in different currencies make the merge fail with
// a CurrencyMismatchError, summing across currencies is never implied.
func (s *ReportSet) MergePositions() (MergedPositions, error) {
	byISIN := map[string]*MergedPosition{}
	for _, r := range s.reports {
		if r.Portfolio == nil {
			continue
		}
		for _, pos := range r.Portfolio.Positions {
			entry, ok := byISIN[pos.ISIN]
			if !ok {
				entry = &MergedPosition{ISIN: pos.ISIN, Name: pos.Name, Currency: pos.Currency}
				byISIN[pos.ISIN] = entry
			}
			if pos.Currency != entry.Currency {
				return nil, &CurrencyMismatchError{ISIN: pos.ISIN, Have: pos.Currency, Want: entry.Currency}
			}
			// A value cell can carry its own attached symbol, disagreeing
			// with the row's currency column.
			if cur := pos.Value.Currency(); cur != "" && cur != entry.Currency {
				return nil, &CurrencyMismatchError{ISIN: pos.ISIN, Have: cur, Want: entry.Currency}
			}
			entry.Quantity = entry.Quantity.Add(pos.Quantity)
			entry.Value = entry.Value.Add(pos.Value)
		}
	}

	merged := make(MergedPositions, 0, len(byISIN))
	for _, entry := range byISIN {
		merged = append(merged, *entry)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ISIN < merged[j].ISIN })
	return merged, nil
}
