package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"field-mapper/internal/config"
)

// ErrNotTuple is returned by --args when the input is not a list.
var ErrNotTuple = errors.New("input must be a list of arguments")

// readInput decodes a JSON or YAML document from path, or from stdin when
// path is "-" or empty. Files ending in .yaml or .yml are read as YAML.
func readInput(path string, stdin io.Reader) (any, error) {
	var (
		data []byte
		err  error
	)

	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var doc any

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding YAML input: %w", err)
		}
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, nil
		}

		if err := sonic.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding JSON input: %w", err)
		}
	}

	return doc, nil
}

// writeOutput encodes v in the configured output format.
func writeOutput(w io.Writer, v any, out config.OutputConfig) error {
	switch out.Format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(max(out.Indent, 2))

		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding YAML output: %w", err)
		}

		return enc.Close()

	default:
		var (
			data []byte
			err  error
		)

		if out.Indent > 0 {
			data, err = sonic.ConfigStd.MarshalIndent(v, "", strings.Repeat(" ", out.Indent))
		} else {
			data, err = sonic.ConfigStd.Marshal(v)
		}

		if err != nil {
			return fmt.Errorf("encoding JSON output: %w", err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err
	}
}
