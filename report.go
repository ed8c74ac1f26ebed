package sberreport

import "fmt"

// Options selects which statement sections ParseWith decodes.
type Options struct {
	// Section toggles. The metadata block is decoded regardless of Meta
	// because the collection sort and the merge views need the statement
	// period; the toggle exists for symmetry with the table sections.
	Meta             bool
	AssetValuation   bool
	CashFlow         bool
	Positions        bool
	IisContributions bool

	// Strict escalates a malformed row of a located table to a fatal error
	// instead of recording it in the table's Skipped list.
	Strict bool

	// StrictISIN verifies the ISIN check digit on top of the shape check.
	StrictISIN bool

	// FooterKeywords overrides DefaultFooterKeywords for subtotal rows.
	FooterKeywords []string
}

// DefaultOptions decodes every section a statement may carry.
func DefaultOptions() Options {
	return Options{
		Meta:             true,
		AssetValuation:   true,
		CashFlow:         true,
		Positions:        true,
		IisContributions: true,
	}
}

func (o Options) footerKeywords() []string {
	if len(o.FooterKeywords) > 0 {
		return o.FooterKeywords
	}
	return DefaultFooterKeywords
}

// Report is the typed model of one statement. A table field is nil when the
// section was disabled or absent from the source; that is not an error.
type Report struct {
	Name             string            `json:"name"`
	Meta             ReportMeta        `json:"meta"`
	AssetValuation   *AssetValuation   `json:"assetValuation,omitempty"`
	CashFlow         *CashFlowSummary  `json:"cashFlow,omitempty"`
	Portfolio        *Portfolio        `json:"portfolio,omitempty"`
	IisContributions *IisContributions `json:"iisContributions,omitempty"`
}

// Parse decodes every section of raw. See ParseWith.
func Parse(raw *RawReport) (*Report, error) {
	return ParseWith(raw, DefaultOptions())
}

// ParseWith decodes the sections o enables.
//
// The metadata block is decoded first; when it cannot be located the parse
// fails with MetaNotFoundError and no table is attempted. Tables are then
// claimed in statement order by a single forward scan, so two section kinds
// can never match the same table. A located table that yields no valid row
// fails with EmptyTableError.
func ParseWith(raw *RawReport, o Options) (*Report, error) {
	meta, err := parseMeta(raw)
	if err != nil {
		return nil, err
	}
	r := &Report{Name: raw.Name(), Meta: meta}

	scan := newTableScanner(raw)

	if o.AssetValuation {
		if table, ok := scan.next(assetValuationHeaders, assetValuationDepth); ok {
			v, err := extractAssetValuation(table, o)
			if err != nil {
				return nil, err
			}
			if err := tableError(assetValuationTable, len(v.Rows), v.Skipped, o.Strict); err != nil {
				return nil, err
			}
			r.AssetValuation = v
		}
	}
	if o.CashFlow {
		if table, ok := scan.next(cashFlowHeaders, cashFlowDepth); ok {
			c, err := extractCashFlow(table, o)
			if err != nil {
				return nil, err
			}
			if err := tableError(cashFlowTable, len(c.Rows), c.Skipped, o.Strict); err != nil {
				return nil, err
			}
			r.CashFlow = c
		}
	}
	if o.Positions {
		if table, ok := scan.next(portfolioHeaders, portfolioDepth); ok {
			p, err := extractPortfolio(table, o)
			if err != nil {
				return nil, err
			}
			if err := tableError(portfolioTable, len(p.Positions), p.Skipped, o.Strict); err != nil {
				return nil, err
			}
			r.Portfolio = p
		}
	}
	if o.IisContributions {
		if table, ok := scan.next(iisHeaders, iisDepth); ok {
			t, err := extractIisContributions(table, o)
			if err != nil {
				return nil, err
			}
			if err := tableError(iisTable, len(t.Rows), t.Skipped, o.Strict); err != nil {
				return nil, err
			}
			r.IisContributions = t
		}
	}
	return r, nil
}

// tableError reduces a located table's extraction outcome to its fatal
// error, if any.
func tableError(name string, rows int, skipped []RowError, strict bool) error {
	if strict && len(skipped) > 0 {
		return fmt.Errorf("%s table: %w", name, skipped[0])
	}
	if rows == 0 {
		return &EmptyTableError{Table: name}
	}
	return nil
}
