package sberreport

import "fmt"

// MalformedMarkupError reports an input from which no element tree could be
// built at all: an empty document or a failing reader. Broken but non-empty
// HTML never triggers it, the DOM parser recovers from that.
type MalformedMarkupError struct {
	Name string // source name as passed to Load
	Err  error  // underlying cause, may be nil for empty input
}

func (e *MalformedMarkupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed markup in %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("malformed markup in %q: empty document", e.Name)
}

func (e *MalformedMarkupError) Unwrap() error { return e.Err }

// MetaNotFoundError reports a statement whose header region could not be
// located or matched. Without the header there is no period identity, so the
// whole statement is rejected.
type MetaNotFoundError struct {
	Field string // which header field failed, e.g. "period" or "investor"
	Text  string // the text that did not match, empty if nothing was found
}

func (e *MetaNotFoundError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("statement header: field %q not found", e.Field)
	}
	return fmt.Sprintf("statement header: field %q did not match %q", e.Field, e.Text)
}

// EmptyTableError reports a table that was located and requested but yielded
// zero valid rows.
type EmptyTableError struct {
	Table string
}

func (e *EmptyTableError) Error() string {
	return fmt.Sprintf("table %q is present but empty", e.Table)
}

// InvalidDateError reports a cell that matched none of the accepted date
// layouts.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q", e.Value)
}

// InvalidAmountError reports a cell that is neither a readable amount nor an
// absence marker.
type InvalidAmountError struct {
	Value  string
	Column string
}

func (e *InvalidAmountError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("invalid amount %q", e.Value)
	}
	return fmt.Sprintf("invalid amount %q in column %q", e.Value, e.Column)
}

// InvalidIdentifierError reports a malformed security identifier.
type InvalidIdentifierError struct {
	Value  string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Value, e.Reason)
}

// CurrencyMismatchError reports two contributions to the same merged position
// that disagree on currency. Summing across currencies is never implied.
type CurrencyMismatchError struct {
	ISIN string
	Have string
	Want string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("position %s: currency mismatch %s != %s", e.ISIN, e.Have, e.Want)
}

// RowError records a single data row that could not be decoded. Extractors
// collect these and keep going, a bad row never aborts the table.
type RowError struct {
	Row int // row index within the table, 0-based over all tr elements
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// BatchError reports a failure while loading a directory of statements.
type BatchError struct {
	Path string // offending file, or the directory itself for listing failures
	Err  error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch load %q: %v", e.Path, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
