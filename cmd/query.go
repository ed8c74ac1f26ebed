package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// queryCmd holds the flags for the 'query' subcommand.
type queryCmd struct{}

func (*queryCmd) Name() string { return "query" }
func (*queryCmd) Synopsis() string {
	return "evaluate a JSONPath expression over the loaded statements"
}
func (*queryCmd) Usage() string {
	return `sbr [-reports <dir>] query <jsonpath>

  Evaluates a JSONPath expression against the JSON form of the loaded
  statements (an array, one element per statement, sorted by period start)
  and prints the result as JSON.

Usage Examples:
# Account of the first statement.
$ sbr query '$[0].meta.accountId'

# Closing balance descriptions across the whole batch.
$ sbr query '$[*].cashFlow.rows[?(@.kind=="closing-balance")].description'

`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: query takes exactly one JSONPath expression.")
		return subcommands.ExitUsageError
	}

	set, err := LoadReports()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading statements: %v\n", err)
		return subcommands.ExitFailure
	}

	result, err := set.Query(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating query: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error printing result: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
