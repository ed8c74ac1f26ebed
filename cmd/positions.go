package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/sberreport/renderer"
	"github.com/google/subcommands"
)

// positionsCmd holds the flags for the 'positions' subcommand.
type positionsCmd struct {
	account string
}

func (*positionsCmd) Name() string { return "positions" }
func (*positionsCmd) Synopsis() string {
	return "display the portfolio positions merged across statements"
}
func (*positionsCmd) Usage() string {
	return `sbr [-reports <dir>] positions [-account <id>]

  Folds the portfolio rows of every loaded statement by ISIN, summing
  quantities and values. A security valued in two different currencies
  across statements cannot be summed and fails the merge.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Restrict the view to one account id. Merges all accounts by default.")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	merged, err := set.MergePositions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error merging positions: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.PositionsMarkdown(merged))
	return subcommands.ExitSuccess
}
