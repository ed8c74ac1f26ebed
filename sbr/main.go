// Command sbr inspects Sberbank brokerage statements: it parses the HTML
// files, lists and merges them, and answers questions about them.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/etnz/sberreport/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// The assist command reads its Gemini key from the environment; a local
	// .env file is the usual place to keep it.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: reading .env: %v", err)
	}

	// No-op unless the shell is asking for completions.
	completer().Complete("sbr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completer describes the command line for shell completion.
func completer() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"reports":        predict.Dirs("*"),
			"skip-malformed": predict.Nothing,
			"strict":         predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"parse": {
				Flags: map[string]complete.Predictor{"json": predict.Nothing},
				Args:  predict.Files("*.html"),
			},
			"list": {
				Flags: map[string]complete.Predictor{"json": predict.Nothing},
			},
			"cashflow": {
				Flags: map[string]complete.Predictor{
					"account":             predict.Something,
					"suppress-duplicates": predict.Nothing,
				},
			},
			"positions": {
				Flags: map[string]complete.Predictor{"account": predict.Something},
			},
			"query":  {Args: predict.Something},
			"topic":  {Args: predict.Set{"readme", "statement-format", "amounts", "merging", "iis", "*"}},
			"assist": {},
		},
	}
}
