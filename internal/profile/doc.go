// Package profile implements the dotkeep profile store: saving the manifest's
// entries into a named profile, applying a profile back, and moving profiles
// in and out of portable archives.
//
// Operations are fully synchronous and run against a billy.Filesystem. Each
// operation loads one manifest, performs its copies in order, and aborts on
// the first failure; there is no partial-completion checkpoint or resume, and
// concurrent invocations racing on the same profile directory are not guarded
// against.
package profile
