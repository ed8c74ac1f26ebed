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

// parseCmd holds the flags for the 'parse' subcommand.
type parseCmd struct {
	json bool
}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "parse statement files and display their content" }
func (*parseCmd) Usage() string {
	return `sbr parse [-json] <file.html> [<file.html>...]

  Parses each statement file and displays its metadata, asset valuation,
  cash flows, portfolio positions and IIS contributions. With -json, each
  statement is printed as one JSON document per line instead.

Usage Examples:
# Render one statement for reading.
$ sbr parse statements/2024-01.html

# Export two statements as JSON lines.
$ sbr parse -json statements/2024-01.html statements/2024-02.html

`
}

func (c *parseCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print each statement as a JSON line instead of markdown.")
}

func (c *parseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no statement file given.")
		return subcommands.ExitUsageError
	}

	for _, path := range f.Args() {
		raw, err := sberreport.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading statement %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		report, err := sberreport.ParseWith(raw, parseOptions())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing statement %q: %v\n", path, err)
			return subcommands.ExitFailure
		}

		if c.json {
			if err := sberreport.ExportReport(os.Stdout, report); err != nil {
				fmt.Fprintf(os.Stderr, "Error exporting statement %q: %v\n", path, err)
				return subcommands.ExitFailure
			}
			continue
		}
		printMarkdown(renderer.ReportMarkdown(report))
	}

	return subcommands.ExitSuccess
}
