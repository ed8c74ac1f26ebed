package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// printMarkdown renders markdown for the terminal. When stdout is not a
// terminal (pipes, redirects, tests) the raw markdown is printed unchanged,
// so the output stays grep-able.
func printMarkdown(markdown string) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println(markdown)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		if out, rerr := r.Render(markdown); rerr == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println(markdown)
}
