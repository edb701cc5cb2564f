package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"field-mapper/internal/diagnostic"
	"field-mapper/mapper"
)

// ErrCheckFailed is returned when the catalog has error diagnostics.
var ErrCheckFailed = errors.New("catalog check failed")

func newCheckCommand(flags *globalFlags) *cobra.Command {
	var colorize, nocolor bool

	cmd := &cobra.Command{
		Use:   "check [catalog]",
		Short: "Validate a catalog",
		Long: `Validate a mapping catalog: schema, paths, transforms, mapper
references and cycles. Exits with an error when any error diagnostic is
reported; warnings and notes are printed but do not fail the check.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if nocolor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			} else if colorize {
				color.NoColor = false //nolint:reassign // intentional override of library global
			}

			e, err := flags.setup(cmd)
			if err != nil {
				return err
			}

			path := e.cfg.Catalog.Path
			if len(args) > 0 {
				path = args[0]
			}

			if path == "" {
				return ErrNoCatalog
			}

			return runCheck(cmd.OutOrStdout(), path)
		},
	}

	cmd.Flags().BoolVar(&colorize, "color", false, "force colored output")
	cmd.Flags().BoolVar(&nocolor, "no-color", false, "disable colored output")

	return cmd
}

func runCheck(w io.Writer, path string) error {
	c := mapper.NewCatalog()

	loadErr := c.LoadFile(path)

	diags := c.Diagnostics()
	if diags == nil {
		return fmt.Errorf("loading catalog %s: %w", path, loadErr)
	}

	all := diags.All()
	if len(all) > 0 {
		fmt.Fprintln(w, diagnosticsTable(all))
	}

	switch {
	case diags.HasErrors() || loadErr != nil:
		color.New(color.FgRed).Fprintf(w, "%s: %d error(s), %d warning(s)\n",
			path, len(diags.Errors), len(diags.Warnings))

		return ErrCheckFailed

	case len(diags.Warnings) > 0:
		color.New(color.FgYellow).Fprintf(w, "%s: ok with %d warning(s)\n", path, len(diags.Warnings))

	default:
		color.New(color.FgGreen).Fprintf(w, "%s: ok (%d mappers)\n", path, len(c.Names()))
	}

	return nil
}

func diagnosticsTable(diags []diagnostic.Diagnostic) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Severity", "Code", "Mapper", "Field", "Message"})

	for _, d := range diags {
		tbl.AppendRow(table.Row{
			severityColor(d.Severity).Sprint(d.Severity),
			d.Code,
			d.Mapper,
			d.FieldPath,
			message(d),
		})
	}

	return tbl.Render()
}

func message(d diagnostic.Diagnostic) string {
	if len(d.Suggestions) == 0 {
		return d.Message
	}

	return fmt.Sprintf("%s (did you mean %q?)", d.Message, d.Suggestions[0])
}

func severityColor(s diagnostic.DiagnosticSeverity) *color.Color {
	switch s {
	case diagnostic.DiagnosticError:
		return color.New(color.FgRed)
	case diagnostic.DiagnosticWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
