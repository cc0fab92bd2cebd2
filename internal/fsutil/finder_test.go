package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"svm.json", "nested/mlp.YAML", "nested/knn.hcl", "notes.txt"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	}

	files, err := FindFilesByExtension(root, ".json", ".yaml", ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "nested", "knn.hcl"),
		filepath.Join(root, "nested", "mlp.YAML"),
		filepath.Join(root, "svm.json"),
	}, files)

	files, err = FindFilesByExtension(filepath.Join(root, "svm.json"), ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "svm.json")}, files)

	files, err = FindFilesByExtension(filepath.Join(root, "notes.txt"), ".json")
	require.NoError(t, err)
	assert.Empty(t, files)

	files, err = FindFilesByExtension(filepath.Join(root, "missing"), ".json")
	require.NoError(t, err)
	assert.Empty(t, files)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root) })
}
