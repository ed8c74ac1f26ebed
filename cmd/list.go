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

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	json bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the loaded statements and their periods" }
func (*listCmd) Usage() string {
	return `sbr [-reports <dir>] list [-json]

  Loads every statement of the reports directory and lists them with their
  account, period and generation date. With -json, the whole batch is
  printed as JSON lines instead, one statement per line.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the statements as JSON lines instead of a table.")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set, err := LoadReports()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading statements: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		if err := sberreport.ExportReports(os.Stdout, set); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting statements: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.SetMarkdown(set))
	return subcommands.ExitSuccess
}
