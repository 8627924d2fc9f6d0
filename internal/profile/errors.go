package profile

import "errors"

// ErrProfileExists is returned when saving or importing would overwrite an
// existing profile without force.
var ErrProfileExists = errors.New("a profile with this name already exists")

// ErrProfileNotFound is returned when the named profile does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// ErrNoProfiles is returned by operations that need at least one saved
// profile.
var ErrNoProfiles = errors.New("no profiles saved yet")

// ErrInvalidArchive is returned when an import source is not a dotkeep
// archive.
var ErrInvalidArchive = errors.New("not a valid dotkeep archive")
