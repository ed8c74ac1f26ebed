// Package cmd implements the CLI application to inspect brokerage statements.
package cmd

import (
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/sberreport"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() to install the subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&parseCmd{}, "statements")
	c.Register(&listCmd{}, "statements")

	c.Register(&cashflowCmd{}, "merged views")
	c.Register(&positionsCmd{}, "merged views")
	c.Register(&queryCmd{}, "merged views")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var reportsDir = flag.String("reports", ".", "Directory holding the statement files (*.html, *.htm)")
var skipMalformed = flag.Bool("skip-malformed", false, "Skip statements that fail to parse instead of aborting the whole load")
var strict = flag.Bool("strict", false, "Escalate malformed table rows to errors instead of recording and skipping them")

// LoadReports loads every statement of the app reports directory, honoring
// the global flags.
func LoadReports() (*sberreport.ReportSet, error) {
	o := sberreport.DefaultOptions()
	o.Strict = *strict
	policy := sberreport.FailFast
	if *skipMalformed {
		policy = sberreport.SkipMalformed
	}
	return sberreport.FromDirWith(*reportsDir, o, policy)
}

// parseOptions returns the section options for a single-file parse, honoring
// the global flags.
func parseOptions() sberreport.Options {
	o := sberreport.DefaultOptions()
	o.Strict = *strict
	return o
}

// filterAccount narrows set to the statements of one account. An empty id
// keeps the whole set.
func filterAccount(set *sberreport.ReportSet, id string) (*sberreport.ReportSet, error) {
	if id == "" {
		return set, nil
	}
	reports := slices.Collect(set.ByAccount(id))
	if len(reports) == 0 {
		return nil, fmt.Errorf("no statement for account %q (known accounts: %s)", id, strings.Join(set.Accounts(), ", "))
	}
	return sberreport.NewReportSet(reports...), nil
}
