package profile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/util"

	"github.com/aretw0/dotkeep/internal/archive"
	"github.com/aretw0/dotkeep/internal/fsutil"
	"github.com/aretw0/dotkeep/internal/paths"
)

// timestampLayout suffixes export names when the target already exists.
const timestampLayout = "02-01-2006:15-04-05"

// Export packs the named profile into a portable archive under dir and
// returns the archive path. The archive holds the profile's saved entries
// under save/, a fresh copy of every export-section entry under export/, and
// the manifest. The caller resolves dir; archiveName defaults to the profile
// name. Without force, an existing target gets a timestamp-suffixed unique
// name.
func (s *Store) Export(ctx context.Context, name, dir, archiveName string, force bool) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("exporting %q: no output directory given", name)
	}
	if err := s.lookup(ctx, name); err != nil {
		return "", err
	}
	profileDir := s.profileDir(name)

	base := archiveName
	if base == "" {
		base = name
	}

	stage := s.fs.Join(dir, base)
	if !force {
		for fsutil.Exists(s.fs, stage) || fsutil.Exists(s.fs, stage+archive.Extension) {
			stage = stage + "_" + time.Now().Format(timestampLayout)
		}
	}

	man, err := s.loadManifest(s.fs.Join(profileDir, paths.ManifestName))
	if err != nil {
		return "", err
	}

	for _, entry := range man.Save.All() {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		src := s.fs.Join(profileDir, entry.Name)
		if !fsutil.Exists(s.fs, src) {
			continue
		}
		s.log.Info("exporting saved entry", "entry", entry.Name)
		if err := fsutil.CopyDir(s.fs, src, s.fs.Join(stage, "save", entry.Name)); err != nil {
			return "", err
		}
	}

	for _, entry := range man.Export.All() {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		folder := s.fs.Join(stage, "export", entry.Name)
		if err := s.fs.MkdirAll(folder, 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", folder, err)
		}
		for _, item := range entry.Entries {
			src := s.fs.Join(entry.Location, item)
			if !fsutil.Exists(s.fs, src) {
				s.log.Debug("skipping missing entry", "entry", item, "location", entry.Location)
				continue
			}
			s.log.Info("exporting entry", "entry", item)
			if err := fsutil.CopyAny(s.fs, src, s.fs.Join(folder, item)); err != nil {
				return "", err
			}
		}
	}

	if err := fsutil.CopyFile(s.fs, s.fs.Join(profileDir, paths.ManifestName), s.fs.Join(stage, paths.ManifestName)); err != nil {
		return "", err
	}

	target := stage + archive.Extension
	if err := archive.Pack(s.fs, stage, target); err != nil {
		return "", err
	}
	if err := util.RemoveAll(s.fs, stage); err != nil {
		return "", fmt.Errorf("cleaning export staging %s: %w", stage, err)
	}
	return target, nil
}

// Import installs the archive at path as a new profile named after the
// archive file, then distributes the export-section entries to the locations
// the archived manifest declares. Importing over an existing profile name is
// refused.
func (s *Store) Import(ctx context.Context, path string) (string, error) {
	if !strings.HasSuffix(path, archive.Extension) || !archive.IsArchive(s.fs, path) {
		return "", fmt.Errorf("%w: %s", ErrInvalidArchive, path)
	}

	name := strings.TrimSuffix(filepath.Base(path), archive.Extension)
	profileDir := s.profileDir(name)
	if fsutil.Exists(s.fs, profileDir) {
		return "", fmt.Errorf("%w: %q", ErrProfileExists, name)
	}

	tmp := s.fs.Join(s.dirs.TempDir, name)
	if err := archive.Unpack(s.fs, path, tmp); err != nil {
		return "", err
	}

	man, err := s.loadManifest(s.fs.Join(tmp, paths.ManifestName))
	if err != nil {
		return "", err
	}

	saved := s.fs.Join(tmp, "save")
	if fsutil.Exists(s.fs, saved) {
		if err := fsutil.CopyDir(s.fs, saved, profileDir); err != nil {
			return "", err
		}
	} else if err := s.fs.MkdirAll(profileDir, 0o755); err != nil {
		return "", fmt.Errorf("creating profile %q: %w", name, err)
	}
	if err := fsutil.CopyFile(s.fs, s.fs.Join(tmp, paths.ManifestName), s.fs.Join(profileDir, paths.ManifestName)); err != nil {
		return "", err
	}

	for _, entry := range man.Export.All() {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		folder := s.fs.Join(tmp, "export", entry.Name)
		for _, item := range entry.Entries {
			src := s.fs.Join(folder, item)
			if !fsutil.Exists(s.fs, src) {
				continue
			}
			s.log.Info("importing entry", "entry", item)
			if err := fsutil.CopyAny(s.fs, src, s.fs.Join(entry.Location, item)); err != nil {
				return "", err
			}
		}
	}

	if err := util.RemoveAll(s.fs, tmp); err != nil {
		return "", fmt.Errorf("cleaning import staging %s: %w", tmp, err)
	}
	return name, nil
}
