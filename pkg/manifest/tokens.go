package manifest

import (
	"os"
	"strings"
)

// TokenSigil prefixes every token occurrence in a manifest location.
const TokenSigil = "$"

// Roots holds the environment-derived directories that keyword tokens resolve
// to. Callers inject it explicitly so tests can supply synthetic roots.
type Roots struct {
	Home      string
	ConfigDir string
	ShareDir  string
	BinDir    string
}

// Lister lists the entries of a directory. billy.Filesystem satisfies it,
// which lets the expander run against an in-memory filesystem in tests.
type Lister interface {
	ReadDir(path string) ([]os.FileInfo, error)
}

// TokenTable is the fixed mapping from keyword name to literal path, plus the
// named path functions. It is built once and read-only afterwards.
type TokenTable struct {
	keywords  []keyword
	functions map[string]resolver
	fs        Lister
}

type keyword struct {
	name  string
	value string
}

// resolver picks the name of the first directory entry satisfying the
// function's predicate, or reports that none matches.
type resolver func(entries []os.FileInfo, arg string) (string, bool)

// NewTokenTable builds the token table for the given roots. The listing
// capability backs the function tokens.
func NewTokenTable(roots Roots, fs Lister) *TokenTable {
	return &TokenTable{
		// Keyword order is fixed; the expander substitutes in this order.
		keywords: []keyword{
			{"HOME", roots.Home},
			{"CONFIG_DIR", roots.ConfigDir},
			{"SHARE_DIR", roots.ShareDir},
			{"BIN_DIR", roots.BinDir},
		},
		functions: map[string]resolver{
			"ENDS_WITH":   matchWith(strings.HasSuffix),
			"BEGINS_WITH": matchWith(strings.HasPrefix),
		},
		fs: fs,
	}
}

func matchWith(match func(name, arg string) bool) resolver {
	return func(entries []os.FileInfo, arg string) (string, bool) {
		for _, entry := range entries {
			if match(entry.Name(), arg) {
				return entry.Name(), true
			}
		}
		return "", false
	}
}
