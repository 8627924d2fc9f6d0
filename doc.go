/*
Package dotkeep backs up and restores a user's desktop configuration files.

A declarative YAML manifest (conf.yaml) lists, per logical section, a
filesystem location and the entries (files or folders) under it to copy.
Locations may contain symbolic tokens, fixed keywords like $HOME and small
functions like ${ENDS_WITH='.desktop'}, that are resolved against the real
filesystem before any copy happens. Selected files can have whole
configuration groups or individual keys stripped from their INI-like text
after the copy, keeping volatile or machine-specific state out of a profile.

Profiles are plain directory trees under the user's config directory. A
profile can be exported as a single portable archive and imported back on
another machine.

# Layout

  - pkg/manifest: token table, path expander, manifest model, content stripper
  - internal/profile: the profile store (save, apply, remove, export, import)
  - internal/archive: the portable archive container
  - cmd/dotkeep: the command-line interface

The core packages operate on a billy.Filesystem, which keeps every operation
testable against an in-memory filesystem.
*/
package dotkeep

// Version is the current dotkeep release.
var Version = "0.3.0"
