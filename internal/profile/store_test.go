package profile_test

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dotkeep/internal/fsutil"
	"github.com/aretw0/dotkeep/internal/paths"
	"github.com/aretw0/dotkeep/internal/profile"
	"github.com/aretw0/dotkeep/internal/testutils"
	"github.com/aretw0/dotkeep/pkg/manifest"
)

var testRoots = manifest.Roots{
	Home:      "/home/user",
	ConfigDir: "/home/user/.config",
	ShareDir:  "/home/user/.local/share",
	BinDir:    "/home/user/.local/bin",
}

const liveManifest = `save:
  configs:
    location: "$CONFIG_DIR"
    entries:
      - kdeglobals
      - kwinrc
    strip:
      kdeglobals:
        keys:
          - ColorSchemeHash
export:
  wallpapers:
    location: "$HOME/Pictures"
    entries:
      - wall.png
`

const (
	kdeglobalsContent = "[General]\nColorSchemeHash=abc123\nwidgetStyle=Breeze\n"
	kwinrcContent     = "[Windows]\nBorderlessMaximizedWindows=true\n"
)

// newStore builds a store over a populated in-memory home directory.
func newStore(t *testing.T) (*profile.Store, billy.Filesystem, paths.Dirs) {
	t.Helper()
	fs := testutils.NewMemFS(t)
	dirs := paths.For(testRoots)

	testutils.WriteTree(t, fs, map[string]string{
		dirs.ManifestFile:                liveManifest,
		"/home/user/.config/kdeglobals": kdeglobalsContent,
		"/home/user/.config/kwinrc":     kwinrcContent,
		"/home/user/Pictures/wall.png":  "pixels",
	})

	store := profile.NewStore(fs, dirs, nil)
	require.NoError(t, store.EnsureLayout())
	return store, fs, dirs
}

func TestListEmpty(t *testing.T) {
	fs := testutils.NewMemFS(t)
	store := profile.NewStore(fs, paths.For(testRoots), nil)

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names, "missing profiles directory reads as no profiles")
}

func TestSaveAndList(t *testing.T) {
	store, fs, dirs := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "work", false))
	require.NoError(t, store.Save(ctx, "gaming", false))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"gaming", "work"}, names, "sorted alphabetically")

	profileDir := fs.Join(dirs.ProfilesDir, "work")
	assert.Equal(t, kwinrcContent, testutils.ReadFile(t, fs, fs.Join(profileDir, "configs", "kwinrc")))
	assert.Equal(t, liveManifest, testutils.ReadFile(t, fs, fs.Join(profileDir, paths.ManifestName)))
}

func TestSaveStripsCopiedFile(t *testing.T) {
	store, fs, dirs := newStore(t)

	require.NoError(t, store.Save(context.Background(), "work", false))

	saved := testutils.ReadFile(t, fs, fs.Join(dirs.ProfilesDir, "work", "configs", "kdeglobals"))
	assert.NotContains(t, saved, "ColorSchemeHash")
	assert.Contains(t, saved, "widgetStyle=Breeze")

	live := testutils.ReadFile(t, fs, "/home/user/.config/kdeglobals")
	assert.Equal(t, kdeglobalsContent, live, "stripping touches only the saved copy")
}

// A strip spec naming a file the entry never copies is inert: the save
// succeeds and every copied file keeps its full content.
func TestSaveIgnoresStripForUnlistedFile(t *testing.T) {
	store, fs, dirs := newStore(t)
	testutils.WriteTree(t, fs, map[string]string{
		dirs.ManifestFile: `save:
  configs:
    location: "$CONFIG_DIR"
    entries:
      - kwinrc
    strip:
      ghost.ini:
        keys:
          - BorderlessMaximizedWindows
export:
`,
	})

	require.NoError(t, store.Save(context.Background(), "work", false))

	saved := testutils.ReadFile(t, fs, fs.Join(dirs.ProfilesDir, "work", "configs", "kwinrc"))
	assert.Equal(t, kwinrcContent, saved)
}

func TestSaveSkipsMissingEntries(t *testing.T) {
	store, fs, dirs := newStore(t)
	require.NoError(t, fs.Remove("/home/user/.config/kwinrc"))

	require.NoError(t, store.Save(context.Background(), "work", false))
	assert.False(t, fsutil.Exists(fs, fs.Join(dirs.ProfilesDir, "work", "configs", "kwinrc")))
	assert.True(t, fsutil.Exists(fs, fs.Join(dirs.ProfilesDir, "work", "configs", "kdeglobals")))
}

func TestSaveRefusesOverwrite(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "work", false))
	err := store.Save(ctx, "work", false)
	require.ErrorIs(t, err, profile.ErrProfileExists)
}

func TestSaveForceOverwrites(t *testing.T) {
	store, fs, dirs := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "work", false))

	testutils.WriteTree(t, fs, map[string]string{
		"/home/user/.config/kwinrc": "[Windows]\nBorderlessMaximizedWindows=false\n",
	})
	require.NoError(t, store.Save(ctx, "work", true))

	saved := testutils.ReadFile(t, fs, fs.Join(dirs.ProfilesDir, "work", "configs", "kwinrc"))
	assert.Contains(t, saved, "BorderlessMaximizedWindows=false")
}

func TestSaveCancelled(t *testing.T) {
	store, _, _ := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Save(ctx, "work", false)
	require.ErrorIs(t, err, context.Canceled)
}

func TestApplyRestoresSavedState(t *testing.T) {
	store, fs, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "work", false))

	testutils.WriteTree(t, fs, map[string]string{
		"/home/user/.config/kwinrc": "corrupted",
	})
	require.NoError(t, store.Apply(ctx, "work"))

	assert.Equal(t, kwinrcContent, testutils.ReadFile(t, fs, "/home/user/.config/kwinrc"))
}

// The profile's own manifest copy drives apply, so entries restore to the
// locations recorded at save time even when the live manifest has changed.
func TestApplyUsesProfileManifest(t *testing.T) {
	store, fs, dirs := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "work", false))

	testutils.WriteTree(t, fs, map[string]string{
		dirs.ManifestFile:           "save:\nexport:\n",
		"/home/user/.config/kwinrc": "corrupted",
	})
	require.NoError(t, store.Apply(ctx, "work"))

	assert.Equal(t, kwinrcContent, testutils.ReadFile(t, fs, "/home/user/.config/kwinrc"))
}

func TestApplyUnknownProfile(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "work", false))

	err := store.Apply(ctx, "wor")
	require.ErrorIs(t, err, profile.ErrProfileNotFound)
	assert.Contains(t, err.Error(), `did you mean "work"`)
}

func TestApplyNoProfiles(t *testing.T) {
	store, _, _ := newStore(t)
	err := store.Apply(context.Background(), "anything")
	require.ErrorIs(t, err, profile.ErrNoProfiles)
}

func TestRemove(t *testing.T) {
	store, fs, dirs := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "work", false))
	require.NoError(t, store.Save(ctx, "gaming", false))

	require.NoError(t, store.Remove(ctx, "work"))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"gaming"}, names)
	assert.False(t, fsutil.Exists(fs, fs.Join(dirs.ProfilesDir, "work")))
}

func TestRemoveUnknownProfile(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "work", false))

	err := store.Remove(ctx, "wor")
	require.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestWipe(t *testing.T) {
	store, fs, dirs := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "work", false))
	require.NoError(t, store.Save(ctx, "gaming", false))

	require.NoError(t, store.Wipe(ctx))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.True(t, fsutil.IsDir(fs, dirs.ProfilesDir), "layout recreated after wipe")
}

func TestClosest(t *testing.T) {
	got, ok := profile.Closest("wor", []string{"gaming", "work"})
	require.True(t, ok)
	assert.Equal(t, "work", got)

	_, ok = profile.Closest("zzz", []string{"gaming", "work"})
	assert.False(t, ok)
}
