package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"field-mapper/internal/gen"
)

func newRenderCommand(flags *globalFlags) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "render <mapper>...",
		Short: "Show the compiled routine of a mapper",
		Long: `Print the routine a mapper compiles to. With --output every
routine is written to its own file in that directory instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.load(cmd)
			if err != nil {
				return err
			}

			files := make([]gen.RenderedFile, 0, len(args))

			for _, name := range args {
				m, err := e.catalog.Mapper(name)
				if err != nil {
					return err
				}

				src, err := m.Render()
				if err != nil {
					return fmt.Errorf("rendering %q: %w", name, err)
				}

				files = append(files, gen.RenderedFile{Filename: gen.FileName(name), Content: []byte(src)})
			}

			if outputDir != "" {
				return gen.WriteFiles(files, outputDir)
			}

			for _, f := range files {
				if _, err := cmd.OutOrStdout().Write(f.Content); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "write routines to this directory")

	return cmd
}
