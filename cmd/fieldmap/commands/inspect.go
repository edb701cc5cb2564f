package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"field-mapper/internal/plan"
)

func newInspectCommand(flags *globalFlags) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "inspect <mapper>",
		Short: "Show the field layout of a mapper",
		Long: `Show every field record of a compiled mapper in layout order:
its rule kind, its source and its default. With --dump the raw plan is
printed as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.load(cmd)
			if err != nil {
				return err
			}

			m, err := e.catalog.Mapper(args[0])
			if err != nil {
				return err
			}

			p, err := m.Plan()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			writeReport(w, plan.Summarize(p, m.Name()))

			if dump {
				_, err = fmt.Fprint(w, plan.Dump(p))
			}

			return err
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "also print the raw plan")

	return cmd
}

func writeReport(w io.Writer, r *plan.Report) {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle("mapper " + r.Mapper)
	tbl.AppendHeader(table.Row{"Field", "Kind", "Source", "Default"})

	for _, f := range r.Fields {
		def := ""
		if f.HasDefault {
			def = fmt.Sprintf("%v", f.Default)
		}

		tbl.AppendRow(table.Row{
			strings.Repeat("  ", f.Depth) + f.TargetPath,
			kindName(f.Kind),
			f.Source,
			def,
		})
	}

	counts := lo.Map(r.Kinds(), func(k plan.RuleKind, _ int) string {
		return fmt.Sprintf("%d %s", r.Counts[k], kindName(k))
	})

	tbl.AppendFooter(table.Row{strings.Join(counts, ", ")})

	fmt.Fprintln(w, tbl.Render())
}

func kindName(k plan.RuleKind) string {
	return strings.ToLower(strings.TrimPrefix(k.String(), "Rule"))
}
