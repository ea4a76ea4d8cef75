package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mgirod/statement"
)

// reconcileCmd holds the flags for the 'reconcile' subcommand.
type reconcileCmd struct {
	output string
}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "reconcile extraction output into one model" }
func (*reconcileCmd) Usage() string {
	return `pst reconcile [-o <file>] [backend=]<payload.json>...

  Reads the JSON payloads of one or more extraction backends, reconciles
  them into a single portfolio model, and writes the canonical JSON result.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Write the result to this file instead of stdout")
}

func (c *reconcileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	data, err := statement.EncodeModel(model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output == "" {
		fmt.Println(string(data))
	} else if err := os.WriteFile(c.output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}

	if !model.Validation.Overall.Valid {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
