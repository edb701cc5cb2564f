// Package commands implements the fieldmap subcommands.
package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"field-mapper/internal/config"
	"field-mapper/mapper"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// ErrNoCatalog is returned when neither --catalog nor catalog.path is set.
var ErrNoCatalog = errors.New("no catalog file (use --catalog or catalog.path)")

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath  string
	catalogPath string
	unsafe      bool
	verbose     bool
}

// env is what a subcommand needs after flags and configuration are resolved.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog *mapper.Catalog
}

// NewRootCommand creates the fieldmap command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "fieldmap",
		Short: "Compile and run declarative field mappings",
		Long: `fieldmap compiles per-field mapping catalogs into mapping routines.

Commands:
  run       Map a JSON or YAML document with a catalog mapper
  check     Validate a catalog
  render    Show the compiled routine of a mapper
  inspect   Show the field layout of a mapper
  export    Write the catalog in normalised form
  bench     Measure mapping throughput`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default fieldmap.yaml in . or ./config)")
	pf.StringVarP(&flags.catalogPath, "catalog", "c", "", "mapping catalog file")
	pf.BoolVar(&flags.unsafe, "unsafe", false, "run every mapper in unsafe mode")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newRunCommand(flags),
		newCheckCommand(flags),
		newRenderCommand(flags),
		newInspectCommand(flags),
		newExportCommand(flags),
		newBenchCommand(flags),
		newVersionCommand(),
	)

	return rootCmd
}

// setup loads the configuration and builds the logger.
func (f *globalFlags) setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	if f.verbose {
		cfg.Logging.Level = "debug"
	}

	if f.unsafe {
		cfg.Mapper.Unsafe = true
	}

	if f.catalogPath != "" {
		cfg.Catalog.Path = f.catalogPath
	}

	logger, err := cfg.Logging.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger}, nil
}

// load sets up the environment and loads the catalog. extra options are
// applied to every mapper.
func (f *globalFlags) load(cmd *cobra.Command, extra ...mapper.Option) (*env, error) {
	e, err := f.setup(cmd)
	if err != nil {
		return nil, err
	}

	if e.cfg.Catalog.Path == "" {
		return nil, ErrNoCatalog
	}

	opts := append([]mapper.Option{mapper.WithLogger(e.logger)}, extra...)
	if e.cfg.Mapper.Unsafe {
		opts = append(opts, mapper.WithUnsafe())
	}

	e.catalog = mapper.NewCatalog(opts...)

	if err := e.catalog.LoadFile(e.cfg.Catalog.Path); err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", e.cfg.Catalog.Path, err)
	}

	e.logger.Debug("catalog loaded",
		slog.String("path", e.cfg.Catalog.Path),
		slog.Int("mappers", len(e.catalog.Names())),
	)

	return e, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fieldmap %s\n", Version)
		},
	}
}
