package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dotkeep/internal/testutils"
	"github.com/aretw0/dotkeep/pkg/manifest"
)

const sampleManifest = `save:
  configs:
    location: "$CONFIG_DIR"
    entries:
      - kdeglobals
      - kwinrc
    strip:
      kdeglobals:
        groups:
          - "KFileDialog Settings"
        keys:
          - ColorSchemeHash
  icons:
    location: "$SHARE_DIR/icons"
    entries:
      - hicolor
export:
  wallpapers:
    location: "$HOME/Pictures"
    entries:
      - wall.png
`

func parseManifest(t *testing.T, data string) *manifest.Manifest {
	t.Helper()
	exp := newExpander(testutils.NewMemFS(t))
	m, err := manifest.Parse([]byte(data), "conf.yaml", exp)
	require.NoError(t, err)
	return m
}

func TestParseSampleManifest(t *testing.T) {
	m := parseManifest(t, sampleManifest)

	assert.Equal(t, "conf.yaml", m.Path)
	assert.Equal(t, []string{"configs", "icons"}, m.Save.Names())
	assert.Equal(t, []string{"wallpapers"}, m.Export.Names())

	configs, ok := m.Save.Get("configs")
	require.True(t, ok)
	assert.Equal(t, "$CONFIG_DIR", configs.RawLocation)
	assert.Equal(t, "/home/user/.config", configs.Location)
	assert.Equal(t, []string{"kdeglobals", "kwinrc"}, configs.Entries)

	spec, ok := configs.Strip("kdeglobals")
	require.True(t, ok)
	assert.Equal(t, []string{"KFileDialog Settings"}, spec.Groups)
	assert.Equal(t, []string{"ColorSchemeHash"}, spec.Keys)

	icons, ok := m.Save.Get("icons")
	require.True(t, ok)
	assert.Empty(t, icons.StripNames())
	_, ok = icons.Strip("hicolor")
	assert.False(t, ok)
}

func TestParseEmptyDocument(t *testing.T) {
	for name, data := range map[string]string{
		"empty":         "",
		"null document": "null\n",
		"null sections": "save:\nexport:\n",
	} {
		t.Run(name, func(t *testing.T) {
			m := parseManifest(t, data)
			assert.Empty(t, m.Save.Names())
			assert.Empty(t, m.Export.Names())
		})
	}
}

// Null leaves anywhere in the tree collapse to empty collections: an entry
// with no entries list copies nothing, a null strip block strips nothing.
func TestParseNullNormalization(t *testing.T) {
	m := parseManifest(t, `save:
  sparse:
    location: "$HOME"
    entries:
    strip:
`)

	entry, ok := m.Save.Get("sparse")
	require.True(t, ok)
	assert.Equal(t, []string{}, entry.Entries)
	assert.Empty(t, entry.StripNames())
}

func TestParseAbsentEntriesKey(t *testing.T) {
	m := parseManifest(t, `save:
  bare:
    location: "$HOME"
`)

	entry, ok := m.Save.Get("bare")
	require.True(t, ok)
	assert.Equal(t, []string{}, entry.Entries)
}

func TestParseNullStripLeaves(t *testing.T) {
	m := parseManifest(t, `save:
  configs:
    location: "$CONFIG_DIR"
    entries:
      - kdeglobals
    strip:
      kdeglobals:
        groups:
        keys:
`)

	entry, ok := m.Save.Get("configs")
	require.True(t, ok)
	spec, ok := entry.Strip("kdeglobals")
	require.True(t, ok)
	assert.Equal(t, []string{}, spec.Groups)
	assert.Equal(t, []string{}, spec.Keys)
}

// A strip block may name a file that is not among the entry's copy list. It
// parses, stays reachable on the model, and survives serialization; nothing
// ever applies it.
func TestParseStripForUnlistedFile(t *testing.T) {
	m := parseManifest(t, `save:
  configs:
    location: "$CONFIG_DIR"
    entries:
      - kwinrc
    strip:
      ghost.ini:
        keys:
          - Theme
`)

	entry, ok := m.Save.Get("configs")
	require.True(t, ok)
	assert.Equal(t, []string{"kwinrc"}, entry.Entries)
	assert.Equal(t, []string{"ghost.ini"}, entry.StripNames())

	spec, ok := entry.Strip("ghost.ini")
	require.True(t, ok)
	assert.Equal(t, []string{"Theme"}, spec.Keys)

	out, err := m.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "ghost.ini")
}

func TestParseMissingLocation(t *testing.T) {
	exp := newExpander(testutils.NewMemFS(t))
	_, err := manifest.Parse([]byte(`save:
  broken:
    entries:
      - a
`), "conf.yaml", exp)
	require.ErrorIs(t, err, manifest.ErrMalformedManifest)
	assert.Contains(t, err.Error(), "broken")
}

func TestParseNonMappingSection(t *testing.T) {
	exp := newExpander(testutils.NewMemFS(t))
	_, err := manifest.Parse([]byte("save: just a string\n"), "conf.yaml", exp)
	require.ErrorIs(t, err, manifest.ErrMalformedManifest)
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	exp := newExpander(testutils.NewMemFS(t))
	_, err := manifest.Parse([]byte("save: [unclosed\n"), "conf.yaml", exp)
	require.ErrorIs(t, err, manifest.ErrMalformedManifest)
}

func TestMarshalPreservesRawLocation(t *testing.T) {
	m := parseManifest(t, sampleManifest)

	out, err := m.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "$CONFIG_DIR")
	assert.NotContains(t, string(out), "/home/user/.config")
}

func TestMarshalOmitsEmptyStrip(t *testing.T) {
	m := parseManifest(t, `save:
  icons:
    location: "$SHARE_DIR/icons"
    entries:
      - hicolor
export:
`)

	out, err := m.Marshal()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "strip")
}

// Serialization is a fixed point: parsing marshalled output and marshalling
// again yields identical bytes, with entry order intact.
func TestMarshalRoundTrip(t *testing.T) {
	first, err := parseManifest(t, sampleManifest).Marshal()
	require.NoError(t, err)

	second, err := parseManifest(t, string(first)).Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestMarshalEmptyManifest(t *testing.T) {
	out, err := parseManifest(t, "").Marshal()
	require.NoError(t, err)

	m := parseManifest(t, string(out))
	assert.Empty(t, m.Save.Names())
	assert.Empty(t, m.Export.Names())
}
