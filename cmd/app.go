// Package cmd implements the CLI application to reconcile portfolio
// statements.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/mgirod/statement"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reconcileCmd{}, "reconciliation")
	c.Register(&renderCmd{}, "reconciliation")

	c.Register(&isinCmd{}, "securities")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var optionsFile = flag.String("options-file", "", "Path to a YAML file overriding the reconciliation options")

// LoadOptions loads the app options, falling back to the defaults when no
// file is configured.
func LoadOptions() (statement.Options, error) {
	if *optionsFile == "" {
		return statement.DefaultOptions(), nil
	}
	opts, err := statement.LoadOptions(*optionsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, options file %q does not exist, using defaults instead", *optionsFile)
		return statement.DefaultOptions(), nil
	}
	return opts, err
}

// loadDocument reads every payload argument into one merged raw document.
// An argument is either a plain file path, read with the first default
// mapping, or a "backend=path" pair naming the mapping to use.
func loadDocument(args []string) (statement.RawDocument, error) {
	var docs []statement.RawDocument
	for _, arg := range args {
		backend, path := "", arg
		if i := strings.IndexByte(arg, '='); i >= 0 {
			backend, path = arg[:i], arg[i+1:]
		}
		mapping, err := mappingFor(backend)
		if err != nil {
			return statement.RawDocument{}, err
		}
		payload, err := os.ReadFile(path)
		if err != nil {
			return statement.RawDocument{}, err
		}
		doc, err := statement.LoadRawDocument(payload, mapping)
		if err != nil {
			return statement.RawDocument{}, err
		}
		docs = append(docs, doc)
	}
	return statement.MergeRawDocuments(docs...), nil
}

func mappingFor(backend string) (statement.BackendMapping, error) {
	mappings := statement.DefaultMappings()
	if backend == "" {
		return mappings[0], nil
	}
	for _, m := range mappings {
		if m.Method == backend {
			return m, nil
		}
	}
	return statement.BackendMapping{}, fmt.Errorf("unknown backend %q", backend)
}
