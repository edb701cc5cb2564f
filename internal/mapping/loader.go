package mapping

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the catalog schema version written by Marshal.
const CurrentVersion = "1"

//go:embed catalog.schema.json
var catalogSchema []byte

// ErrSchemaViolation is returned when a catalog does not match catalog.schema.json.
var ErrSchemaViolation = errors.New("catalog does not match schema")

// LoadFile loads and parses a YAML mapping catalog from the given path.
func LoadFile(path string) (*MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse checks YAML data against the catalog schema and decodes it into a
// MappingFile.
func Parse(data []byte) (*MappingFile, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}

	var mf MappingFile

	err := yaml.Unmarshal(data, &mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	applyDefaults(&mf)

	return &mf, nil
}

// ValidateSchema checks the structural shape of a YAML catalog against the
// embedded JSON schema. Semantic checks live in Validate.
func ValidateSchema(data []byte) error {
	var doc any

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrSchemaViolation)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(catalogSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(msgs, "; "))
}

func applyDefaults(mf *MappingFile) {
	if mf.Version == "" {
		mf.Version = CurrentVersion
	}
}

// Marshal serializes a MappingFile to YAML.
func Marshal(mf *MappingFile) ([]byte, error) {
	return yaml.Marshal(mf)
}

// WriteFile writes a MappingFile to the given path.
func WriteFile(mf *MappingFile, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
