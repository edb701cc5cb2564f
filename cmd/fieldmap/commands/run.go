package commands

import (
	"github.com/spf13/cobra"

	"field-mapper/mapper"
)

func newRunCommand(flags *globalFlags) *cobra.Command {
	var (
		asArgs bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "run <mapper> [input|-]",
		Short: "Map a JSON or YAML document with a catalog mapper",
		Long: `Map a document with a named mapper and print the result and
the collected field errors.

Examples:
  fieldmap run -c catalog.yaml user customer.json
  fieldmap run -c catalog.yaml user - < customer.json
  fieldmap run -c catalog.yaml --args merge pair.json
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.load(cmd)
			if err != nil {
				return err
			}

			if format != "" {
				e.cfg.Output.Format = format
				if err := e.cfg.Validate(); err != nil {
					return err
				}
			}

			m, err := e.catalog.Mapper(args[0])
			if err != nil {
				return err
			}

			input := ""
			if len(args) > 1 {
				input = args[1]
			}

			src, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			res, err := execute(m, src, asArgs)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), res, e.cfg.Output)
		},
	}

	cmd.Flags().BoolVar(&asArgs, "args", false, "treat a list input as positional arguments ($0, $1...)")
	cmd.Flags().StringVarP(&format, "output", "o", "", "output format: json or yaml")

	return cmd
}

func execute(m *mapper.Mapper, src any, asArgs bool) (mapper.MappingResult, error) {
	if !asArgs {
		return m.Execute(src)
	}

	args, ok := src.([]any)
	if !ok {
		return mapper.MappingResult{}, ErrNotTuple
	}

	return m.ExecuteArgs(args...)
}
