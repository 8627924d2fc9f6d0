package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// stripPlaceholder marks lines scheduled for removal. It only has to be
// distinct from any line a real config file contains.
const stripPlaceholder = "# stripped by dotkeep"

// groupHeaderRe matches any line that looks like a group header: starts with
// "[" and contains "]" somewhere. The forward scan after a removed header
// stops at the first such line, whatever group it opens.
var groupHeaderRe = regexp.MustCompile(`^\[.*\]`)

// Strip removes the groups and keys named by spec from a file's lines and
// returns the surviving lines. Group removals run before key removals; within
// each, processing follows the order the spec lists them.
//
// Matching is deliberately substring-based, mirroring the plasma config
// conventions the manifest targets: a group named "General" matches any line
// containing "[General]", and a key named "Theme" matches any line containing
// "Theme=", including "IconTheme=". Callers picking strip names need to
// account for that.
func Strip(lines []string, spec StripSpec) []string {
	work := make([]string, len(lines))
	copy(work, lines)

	stripGroups(work, spec.Groups)
	stripKeys(work, spec.Keys)

	kept := make([]string, 0, len(work))
	for _, line := range work {
		if line != stripPlaceholder {
			kept = append(kept, line)
		}
	}
	return kept
}

// stripGroups blanks every header line containing "[group]" and every line
// following it up to, but not including, the next group header or the end of
// the file.
func stripGroups(lines []string, groups []string) {
	for _, group := range groups {
		header := "[" + group + "]"
		for i := 0; i < len(lines); i++ {
			if !strings.Contains(lines[i], header) {
				continue
			}
			lines[i] = stripPlaceholder
			for j := i + 1; j < len(lines); j++ {
				if groupHeaderRe.MatchString(lines[j]) {
					break
				}
				lines[j] = stripPlaceholder
			}
		}
	}
}

// stripKeys blanks every line containing "key=" anywhere in the line.
func stripKeys(lines []string, keys []string) {
	for _, key := range keys {
		marker := key + "="
		for i := 0; i < len(lines); i++ {
			if strings.Contains(lines[i], marker) {
				lines[i] = stripPlaceholder
			}
		}
	}
}

// StripFile rewrites the file at path with spec applied. The surviving lines
// are joined with single newlines; no trailing newline is added beyond what
// the join produces.
func StripFile(fs billy.Basic, path string, spec StripSpec) error {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("stripping %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	// Splitting "a\nb\n" yields a trailing empty element; drop it so the
	// final newline does not survive as a phantom line.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	kept := Strip(lines, spec)
	out := strings.Join(kept, "\n")
	if err := util.WriteFile(fs, path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("stripping %s: %w", path, err)
	}
	return nil
}
