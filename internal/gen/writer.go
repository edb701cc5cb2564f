package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"field-mapper/internal/match"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// RenderedFile is a rendered routine ready to be written.
type RenderedFile struct {
	Filename string
	Content  []byte
}

// FileName returns the file a mapper's routine is written to:
// "order-line" -> "order_line_routine.go".
func FileName(mapper string) string {
	tokens := match.TokenizeIdent(mapper)
	if len(tokens) == 0 {
		return "routine.go"
	}

	return strings.ToLower(strings.Join(tokens, "_")) + "_routine.go"
}

// WriteFiles writes all rendered files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []RenderedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
