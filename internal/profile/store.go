package profile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/aretw0/dotkeep/internal/fsutil"
	"github.com/aretw0/dotkeep/internal/logging"
	"github.com/aretw0/dotkeep/internal/paths"
	"github.com/aretw0/dotkeep/pkg/manifest"
)

// Store manages the saved profiles under dirs.ProfilesDir.
type Store struct {
	fs   billy.Filesystem
	dirs paths.Dirs
	log  *slog.Logger
}

// NewStore creates a Store over fs. A nil logger disables logging.
func NewStore(fs billy.Filesystem, dirs paths.Dirs, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{fs: fs, dirs: dirs, log: logger}
}

// EnsureLayout creates the profiles directory if it does not exist.
func (s *Store) EnsureLayout() error {
	if err := s.fs.MkdirAll(s.dirs.ProfilesDir, 0o755); err != nil {
		return fmt.Errorf("creating profiles directory: %w", err)
	}
	return nil
}

// List returns the saved profile names in alphabetical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := s.fs.ReadDir(s.dirs.ProfilesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Save copies every entry of the manifest's save section into a profile
// named name, runs the content stripper on copied files with strip specs,
// and finishes by copying the manifest itself into the profile. An existing
// profile is only overwritten when force is set.
func (s *Store) Save(ctx context.Context, name string, force bool) error {
	names, err := s.List(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(names, name) && !force {
		return fmt.Errorf("%w: %q", ErrProfileExists, name)
	}

	man, err := s.loadManifest(s.dirs.ManifestFile)
	if err != nil {
		return err
	}

	profileDir := s.profileDir(name)
	if err := s.fs.MkdirAll(profileDir, 0o755); err != nil {
		return fmt.Errorf("creating profile %q: %w", name, err)
	}

	for _, entry := range man.Save.All() {
		if err := ctx.Err(); err != nil {
			return err
		}

		folder := s.fs.Join(profileDir, entry.Name)
		if err := s.fs.MkdirAll(folder, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", folder, err)
		}

		for _, item := range entry.Entries {
			src := s.fs.Join(entry.Location, item)
			if !fsutil.Exists(s.fs, src) {
				s.log.Debug("skipping missing entry", "entry", item, "location", entry.Location)
				continue
			}

			dst := s.fs.Join(folder, item)
			if err := fsutil.CopyAny(s.fs, src, dst); err != nil {
				return err
			}

			// Stripping only runs for files that were actually copied; a
			// strip spec naming anything else is inert.
			if spec, ok := entry.Strip(item); ok && !fsutil.IsDir(s.fs, dst) {
				if err := manifest.StripFile(s.fs, dst, spec); err != nil {
					return err
				}
			}
		}
	}

	return fsutil.CopyFile(s.fs, s.dirs.ManifestFile, s.fs.Join(profileDir, paths.ManifestName))
}

// Apply copies every saved entry of the named profile back to the location
// its manifest declares. The profile's own manifest copy drives the apply, so
// a profile restores to the locations it was saved from even if the live
// manifest has changed since.
func (s *Store) Apply(ctx context.Context, name string) error {
	if err := s.lookup(ctx, name); err != nil {
		return err
	}

	profileDir := s.profileDir(name)
	man, err := s.loadManifest(s.fs.Join(profileDir, paths.ManifestName))
	if err != nil {
		return err
	}

	for _, entry := range man.Save.All() {
		if err := ctx.Err(); err != nil {
			return err
		}

		src := s.fs.Join(profileDir, entry.Name)
		if !fsutil.Exists(s.fs, src) {
			continue
		}
		s.log.Debug("applying entry", "entry", entry.Name, "location", entry.Location)
		if err := fsutil.CopyDir(s.fs, src, entry.Location); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes the named profile.
func (s *Store) Remove(ctx context.Context, name string) error {
	if err := s.lookup(ctx, name); err != nil {
		return err
	}
	if err := util.RemoveAll(s.fs, s.profileDir(name)); err != nil {
		return fmt.Errorf("removing profile %q: %w", name, err)
	}
	return nil
}

// Wipe deletes all saved profiles. Confirmation is the caller's job.
func (s *Store) Wipe(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := util.RemoveAll(s.fs, s.dirs.ProfilesDir); err != nil {
		return fmt.Errorf("wiping profiles: %w", err)
	}
	return s.EnsureLayout()
}

func (s *Store) profileDir(name string) string {
	return s.fs.Join(s.dirs.ProfilesDir, name)
}

// lookup verifies that name is a saved profile. When it is not, the error
// carries the closest existing name as a suggestion.
func (s *Store) lookup(ctx context.Context, name string) error {
	names, err := s.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return ErrNoProfiles
	}
	if slices.Contains(names, name) {
		return nil
	}
	if suggestion, ok := Closest(name, names); ok {
		return fmt.Errorf("%w: %q (did you mean %q?)", ErrProfileNotFound, name, suggestion)
	}
	return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
}

// loadManifest builds the token table and expander for this store's roots and
// parses the manifest at path.
func (s *Store) loadManifest(path string) (*manifest.Manifest, error) {
	table := manifest.NewTokenTable(s.dirs.Roots, s.fs)
	return manifest.Load(s.fs, path, manifest.NewExpander(table))
}
