// Package config loads fieldmap CLI settings from a YAML file and FIELDMAP_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidLogFormat    = errors.New("invalid log format")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidIndent       = errors.New("output indent must not be negative")
	ErrInvalidIterations   = errors.New("bench iterations must be positive")
)

// Output and log formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Default configuration values.
const (
	defaultIndent     = 2
	defaultIterations = 100000
	maxIndent         = 8
)

// Config holds all configuration for the fieldmap CLI.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Mapper  MapperConfig  `mapstructure:"mapper"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Bench   BenchConfig   `mapstructure:"bench"`
}

// CatalogConfig locates the mapping catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// MapperConfig holds settings applied to every mapper of the catalog.
type MapperConfig struct {
	// Unsafe forces unsafe mode on all mappers.
	Unsafe bool `mapstructure:"unsafe"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig controls how results are written.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Indent int    `mapstructure:"indent"`
}

// BenchConfig holds settings of the bench command.
type BenchConfig struct {
	Iterations int `mapstructure:"iterations"`
}

// LoadConfig loads configuration from file and environment variables. With
// an empty configPath, fieldmap.yaml is looked up in "." and "./config"; a
// missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("fieldmap")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
	}

	viperCfg.SetEnvPrefix("FIELDMAP")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("catalog.path", "")
	viperCfg.SetDefault("mapper.unsafe", false)

	viperCfg.SetDefault("logging.level", "warn")
	viperCfg.SetDefault("logging.format", FormatText)

	viperCfg.SetDefault("output.format", FormatJSON)
	viperCfg.SetDefault("output.indent", defaultIndent)

	viperCfg.SetDefault("bench.iterations", defaultIterations)
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}

	if c.Logging.Format != FormatText && c.Logging.Format != FormatJSON {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.Output.Format != FormatJSON && c.Output.Format != FormatYAML {
		return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, c.Output.Format)
	}

	if c.Output.Indent < 0 || c.Output.Indent > maxIndent {
		return fmt.Errorf("%w: %d", ErrInvalidIndent, c.Output.Indent)
	}

	if c.Bench.Iterations <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIterations, c.Bench.Iterations)
	}

	return nil
}

// NewLogger builds the CLI logger writing to w.
func (c LoggingConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	if c.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}

	return level, nil
}
