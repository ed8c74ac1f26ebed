package sberreport

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// this file contains the export format. It should remain human readable, one
// statement per line, and easy to feed to external tools.
//
// There is deliberately no import: a report only ever comes from parsing a
// statement, re-reading derived data would make the export a second source
// of truth.

// ExportReport writes one report to 'w' in the export format, as a single
// JSON line. Absent amounts are exported as null, never as 0.
func ExportReport(w io.Writer, r *Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("cannot marshal statement %q: %w", r.Name, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write export format: %w", err)
	}
	return nil
}

// ExportReports writes the whole set to 'w' in the export format.
//
// The format is a JSONL file, where each line is a JSON object representing
// one statement, in period order.
func ExportReports(w io.Writer, s *ReportSet) error {
	for _, r := range s.reports {
		if err := ExportReport(w, r); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON renders the set as a JSON array of reports in period order.
func (s *ReportSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.reports)
}

// Query evaluates a JSONPath expression against the JSON rendering of the
// set, an array with one object per statement in period order. For example
// "$[0].meta.accountId" is the first statement's contract, and
// "$..positions[*].isin" every held security of the batch.
func (s *ReportSet) Query(path string) (any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("cannot render set for query: %w", err)
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("cannot render set for query: %w", err)
	}
	value, err := jsonpath.Get(path, tree)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return value, nil
}
