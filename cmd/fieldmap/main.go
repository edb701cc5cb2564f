// Package main provides the CLI entrypoint for fieldmap.
//
// fieldmap loads a YAML mapping catalog and:
//   - maps JSON or YAML documents with a named mapper (run)
//   - validates the catalog and reports diagnostics (check)
//   - shows the compiled routine and its field layout (render, inspect)
//   - writes the catalog back in normalised form (export)
//   - measures mapping throughput (bench)
package main

import (
	"fmt"
	"os"

	"field-mapper/cmd/fieldmap/commands"
)

func main() {
	err := commands.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
