// Package testutils holds shared test fixtures for exercising dotkeep
// against an in-memory filesystem.
package testutils

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

// NewMemFS returns an empty in-memory filesystem.
func NewMemFS(t *testing.T) billy.Filesystem {
	t.Helper()
	return memfs.New()
}

// WriteTree populates fs with the given files, creating parent directories
// as needed. Keys are paths, values file content.
func WriteTree(t *testing.T, fs billy.Filesystem, files map[string]string) {
	t.Helper()
	for path, content := range files {
		if dir := filepath.Dir(path); dir != "." && dir != "/" {
			require.NoError(t, fs.MkdirAll(dir, 0o755), "creating %s", dir)
		}
		require.NoError(t, util.WriteFile(fs, path, []byte(content), 0o644), "writing %s", path)
	}
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, fs billy.Basic, path string) string {
	t.Helper()
	data, err := util.ReadFile(fs, path)
	require.NoError(t, err, "reading %s", path)
	return string(data)
}
