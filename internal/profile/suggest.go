package profile

import "github.com/sahilm/fuzzy"

// Closest returns the best fuzzy match for name among candidates, for
// "did you mean" hints on misspelled profile names.
func Closest(name string, candidates []string) (string, bool) {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}
