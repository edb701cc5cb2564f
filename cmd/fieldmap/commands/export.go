package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"field-mapper/internal/mapping"
	"field-mapper/internal/plan"
)

func newExportCommand(flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [mapper...]",
		Short: "Write the catalog in normalised form",
		Long: `Rebuild catalog definitions from compiled mappers. Fields come out
in layout order. Without arguments every mapper is exported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.load(cmd)
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				names = e.catalog.Names()
			}

			mf := &mapping.MappingFile{Version: mapping.CurrentVersion}

			for _, name := range names {
				def, err := exportMapper(e, name)
				if err != nil {
					return err
				}

				mf.Mappers = append(mf.Mappers, def)
			}

			if output != "" {
				return mapping.WriteFile(mf, output)
			}

			data, err := mapping.Marshal(mf)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func exportMapper(e *env, name string) (mapping.MapperDef, error) {
	m, err := e.catalog.Mapper(name)
	if err != nil {
		return mapping.MapperDef{}, err
	}

	p, err := m.Plan()
	if err != nil {
		return mapping.MapperDef{}, err
	}

	def, err := plan.Export(p, name)
	if err != nil {
		return mapping.MapperDef{}, fmt.Errorf("exporting %q: %w", name, err)
	}

	if orig := e.catalog.File().Lookup(name); orig != nil {
		def.Description = orig.Description
	}

	def.Unsafe = m.Unsafe()

	return def, nil
}
