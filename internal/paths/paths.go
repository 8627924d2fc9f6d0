// Package paths resolves the directories dotkeep works with: the
// environment-derived roots that keyword tokens expand to, and the tool's own
// config layout. Everything downstream receives these as explicit values, so
// tests can run against synthetic roots on an in-memory filesystem.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/dotkeep/pkg/manifest"
)

// AppName is the directory name used under the user's config directory.
const AppName = "dotkeep"

// ManifestName is the file name of the manifest inside the app directory and
// inside every saved profile.
const ManifestName = "conf.yaml"

// Dirs bundles the token roots with dotkeep's own layout.
type Dirs struct {
	Roots manifest.Roots

	// AppDir is <config>/dotkeep.
	AppDir string
	// ProfilesDir is <config>/dotkeep/profiles; each child directory is one
	// saved profile.
	ProfilesDir string
	// ManifestFile is <config>/dotkeep/conf.yaml, the live manifest.
	ManifestFile string
	// TempDir is <config>/dotkeep/temp, scratch space for import staging.
	TempDir string
}

// Default resolves Dirs from the running user's environment.
func Default() (Dirs, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Dirs{}, fmt.Errorf("resolving home directory: %w", err)
	}

	config, err := os.UserConfigDir()
	if err != nil {
		config = filepath.Join(home, ".config")
	}

	return For(manifest.Roots{
		Home:      home,
		ConfigDir: config,
		ShareDir:  filepath.Join(home, ".local", "share"),
		BinDir:    filepath.Join(home, ".local", "bin"),
	}), nil
}

// For derives the dotkeep layout from explicit roots.
func For(roots manifest.Roots) Dirs {
	app := filepath.Join(roots.ConfigDir, AppName)
	return Dirs{
		Roots:        roots,
		AppDir:       app,
		ProfilesDir:  filepath.Join(app, "profiles"),
		ManifestFile: filepath.Join(app, ManifestName),
		TempDir:      filepath.Join(app, "temp"),
	}
}
