package archive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dotkeep/internal/archive"
	"github.com/aretw0/dotkeep/internal/testutils"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	fs := testutils.NewMemFS(t)
	testutils.WriteTree(t, fs, map[string]string{
		"/stage/conf.yaml":          "save:\n",
		"/stage/save/configs/a.ini": "[General]\na=1\n",
		"/stage/export/wall.png":    "pixels",
	})

	require.NoError(t, archive.Pack(fs, "/stage", "/out/work.dkp"))
	require.True(t, archive.IsArchive(fs, "/out/work.dkp"))

	require.NoError(t, archive.Unpack(fs, "/out/work.dkp", "/restored"))
	assert.Equal(t, "save:\n", testutils.ReadFile(t, fs, "/restored/conf.yaml"))
	assert.Equal(t, "[General]\na=1\n", testutils.ReadFile(t, fs, "/restored/save/configs/a.ini"))
	assert.Equal(t, "pixels", testutils.ReadFile(t, fs, "/restored/export/wall.png"))
}

func TestPackEmptyTree(t *testing.T) {
	fs := testutils.NewMemFS(t)
	require.NoError(t, fs.MkdirAll("/empty", 0o755))

	require.NoError(t, archive.Pack(fs, "/empty", "/out.dkp"))

	// A zip with no members opens fine but lacks the local-file-header
	// signature IsArchive looks for. Real exports always carry conf.yaml.
	require.NoError(t, archive.Unpack(fs, "/out.dkp", "/dst"))
	assert.False(t, archive.IsArchive(fs, "/out.dkp"))
}

func TestIsArchiveRejectsPlainFile(t *testing.T) {
	fs := testutils.NewMemFS(t)
	testutils.WriteTree(t, fs, map[string]string{
		"/note.txt":  "not a zip",
		"/tiny.dkp":  "PK",
		"/empty.dkp": "",
	})

	assert.False(t, archive.IsArchive(fs, "/note.txt"))
	assert.False(t, archive.IsArchive(fs, "/tiny.dkp"))
	assert.False(t, archive.IsArchive(fs, "/empty.dkp"))
	assert.False(t, archive.IsArchive(fs, "/missing.dkp"))
}

func TestUnpackRejectsGarbage(t *testing.T) {
	fs := testutils.NewMemFS(t)
	testutils.WriteTree(t, fs, map[string]string{"/bad.dkp": "this is not a zip archive"})

	err := archive.Unpack(fs, "/bad.dkp", "/dst")
	require.Error(t, err)
}
