package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/mgirod/statement/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// shell completion, a no-op outside of a completion request
	cmp := &complete.Command{
		Sub: map[string]*complete.Command{
			"reconcile": {
				Flags: map[string]complete.Predictor{"o": predict.Files("*.json")},
				Args:  predict.Files("*.json"),
			},
			"render": {Args: predict.Files("*.json")},
			"isin":   {},
			"topic":  {},
		},
		Flags: map[string]complete.Predictor{
			"options-file": predict.Files("*.yaml"),
		},
	}
	cmp.Complete("pst")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
