package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/sberreport"
	"github.com/etnz/sberreport/renderer"
	"github.com/google/subcommands"
)

// cashflowCmd holds the flags for the 'cashflow' subcommand.
type cashflowCmd struct {
	account            string
	suppressDuplicates bool
}

func (*cashflowCmd) Name() string { return "cashflow" }
func (*cashflowCmd) Synopsis() string {
	return "display the merged cash-flow history of the loaded statements"
}
func (*cashflowCmd) Usage() string {
	return `sbr [-reports <dir>] cashflow [-account <id>] [-suppress-duplicates]

  Concatenates the cash-flow rows of every loaded statement in period order
  and sorts them by date. Statements of different accounts are merged
  together unless -account narrows the view to one account.

  Adjacent statements sometimes both print the movements of their shared
  boundary day; -suppress-duplicates drops a dated row when an identical row
  was already contributed by an earlier statement covering that date.
`
}

func (c *cashflowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Restrict the view to one account id. Merges all accounts by default.")
	f.BoolVar(&c.suppressDuplicates, "suppress-duplicates", false, "Drop rows repeated by overlapping statement periods.")
}

func (c *cashflowCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set, err := LoadReports()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading statements: %v\n", err)
		return subcommands.ExitFailure
	}
	set, err = filterAccount(set, c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	merged := set.MergeCashFlows(sberreport.MergeOptions{SuppressDuplicates: c.suppressDuplicates})
	printMarkdown(renderer.CashFlowMarkdown(merged))
	return subcommands.ExitSuccess
}
