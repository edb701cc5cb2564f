package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "order_line_routine.go", FileName("order-line"))
	assert.Equal(t, "user_profile_routine.go", FileName("UserProfile"))
	assert.Equal(t, "routine.go", FileName(""))
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "routines")

	files := []RenderedFile{
		{Filename: "a_routine.go", Content: []byte("package routines\n")},
		{Filename: "b_routine.go", Content: []byte("package routines\n\n// b\n")},
	}

	require.NoError(t, WriteFiles(files, dir))

	for _, f := range files {
		got, err := os.ReadFile(filepath.Join(dir, f.Filename))
		require.NoError(t, err)
		assert.Equal(t, f.Content, got)
	}
}
