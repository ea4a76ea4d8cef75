package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mgirod/statement"
	"github.com/mgirod/statement/renderer"
)

// renderCmd holds the flags for the 'render' subcommand.
type renderCmd struct{}

func (*renderCmd) Name() string     { return "render" }
func (*renderCmd) Synopsis() string { return "display a reconciliation report" }
func (*renderCmd) Usage() string {
	return `pst render [backend=]<payload.json>...

  Reconciles the given extraction payloads and displays the result as a
  human readable report.
`
}

func (c *renderCmd) SetFlags(f *flag.FlagSet) {}

func (c *renderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one payload file is required")
		return subcommands.ExitUsageError
	}

	opts, err := LoadOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading options: %v\n", err)
		return subcommands.ExitFailure
	}
	doc, err := loadDocument(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading payloads: %v\n", err)
		return subcommands.ExitFailure
	}

	model := statement.Process(doc, opts)
	printMarkdown(renderer.ReportMarkdown(model))
	return subcommands.ExitSuccess
}
