package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mgirod/statement"
)

// isinCmd holds the flags for the 'isin' subcommand.
type isinCmd struct {
	quiet bool
}

func (*isinCmd) Name() string     { return "isin" }
func (*isinCmd) Synopsis() string { return "validate ISIN identifiers" }
func (*isinCmd) Usage() string {
	return `pst isin [-q] <isin>...

  Validates each identifier and reports why invalid ones fail. Exits with
  a failure status if any identifier is invalid.
`
}

func (c *isinCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quiet, "q", false, "Suppress output, only set the exit status")
}

func (c *isinCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one ISIN is required")
		return subcommands.ExitUsageError
	}

	status := subcommands.ExitSuccess
	for _, isin := range f.Args() {
		result := statement.CheckISIN(isin)
		if !result.Valid {
			status = subcommands.ExitFailure
		}
		if c.quiet {
			continue
		}
		if result.Valid {
			fmt.Printf("%s: valid\n", isin)
		} else {
			fmt.Printf("%s: %s\n", isin, result.Reason)
		}
	}
	return status
}
