package manifest

import "errors"

// ErrMalformedManifest is returned when the manifest tree is structurally
// invalid (a missing location, a section that is not a mapping, and so on).
var ErrMalformedManifest = errors.New("malformed manifest")

// ErrParentNotFound is returned when a function token's implied parent
// directory cannot be listed. A function token whose argument simply matches
// no directory entry is not an error; the occurrence is left as literal text.
var ErrParentNotFound = errors.New("parent directory not found")

// ErrMalformedToken is returned when text that starts like a function token
// (${IDENT=) does not complete the grammar: an unbalanced quote or a missing
// closing brace. Silently copying to a path containing such text would hide
// the typo, so expansion aborts instead.
var ErrMalformedToken = errors.New("malformed function token")
