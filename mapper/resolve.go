package mapper

import (
	"field-mapper/internal/gen"
)

// Resolve evaluates a field path once against src without building a
// mapper. The boolean reports whether anything was found. An error is
// returned only when a wildcard expands a value that is not a collection.
func Resolve(src any, path string) (any, bool, error) {
	return gen.Resolve(src, path)
}
