package manifest

import (
	"fmt"
	"regexp"
	"strings"
)

// functionTokenRe matches one function-token occurrence: ${IDENT='ARG'} or
// ${IDENT="ARG"}. The argument is any run of characters without whitespace or
// quotes.
var functionTokenRe = regexp.MustCompile(`\$\{(\w+)=['"]([^'"\s]+)['"]\}`)

// functionTokenPrefixRe matches the start of a function-token attempt. Every
// prefix must complete the full grammar (checked with the anchored variant);
// anything else is a malformed token.
var (
	functionTokenPrefixRe = regexp.MustCompile(`\$\{\w+=`)
	functionTokenFullRe   = regexp.MustCompile(`^\$\{\w+=['"][^'"\s]+['"]\}`)
)

// Expander resolves token occurrences in a raw manifest location. Keyword
// substitution is pure; function tokens consult the filesystem behind the
// token table's Lister at expansion time.
type Expander struct {
	table *TokenTable
}

// NewExpander returns an Expander over the given token table.
func NewExpander(table *TokenTable) *Expander {
	return &Expander{table: table}
}

// Expand resolves raw in two passes: keywords first, then function tokens.
// A function token whose argument matches no directory entry is left in the
// result as literal text; it surfaces later as an ordinary missing path when
// the copy runs. Text that starts a function token but breaks off the grammar
// is an ErrMalformedToken.
func (e *Expander) Expand(raw string) (string, error) {
	return e.expandFunctions(e.expandKeywords(raw))
}

// expandKeywords substitutes each keyword marker ($HOME, $CONFIG_DIR, ...)
// with its literal value, in table order. The pass runs exactly once: it does
// not re-scan its own output, so a keyword value containing another keyword's
// marker is never recursively expanded. Each keyword replaces only the first
// textual occurrence of its marker.
func (e *Expander) expandKeywords(s string) string {
	for _, kw := range e.table.keywords {
		marker := TokenSigil + kw.name
		if strings.Contains(s, marker) {
			s = strings.Replace(s, marker, kw.value, 1)
		}
	}
	return s
}

// expandFunctions resolves every function-token occurrence in left-to-right
// order of first appearance. The directory to list is implied by the text
// preceding the occurrence in the current string.
func (e *Expander) expandFunctions(s string) (string, error) {
	for _, loc := range functionTokenPrefixRe.FindAllStringIndex(s, -1) {
		if !functionTokenFullRe.MatchString(s[loc[0]:]) {
			return "", fmt.Errorf("%w: %q", ErrMalformedToken, tokenSnippet(s[loc[0]:]))
		}
	}

	for _, m := range functionTokenRe.FindAllStringSubmatch(s, -1) {
		occurrence, name, arg := m[0], m[1], m[2]

		fn, known := e.table.functions[name]
		if !known {
			continue
		}

		// Earlier substitutions shift offsets, so locate the occurrence in
		// the current string instead of trusting the original match position.
		// When a location contains two identical occurrences, this always
		// finds the first one; they cannot be addressed individually.
		idx := strings.Index(s, occurrence)
		if idx < 0 {
			continue
		}

		parent := s[:idx]
		entries, err := e.table.fs.ReadDir(parent)
		if err != nil {
			return "", fmt.Errorf("%w: listing %q for %s: %v",
				ErrParentNotFound, parent, occurrence, err)
		}

		if entry, ok := fn(entries, arg); ok {
			s = strings.Replace(s, occurrence, entry, 1)
		}
	}
	return s, nil
}

// tokenSnippet trims the offending text to the end of the token attempt for
// error messages: through the closing brace when one exists, at the next path
// separator otherwise.
func tokenSnippet(s string) string {
	if i := strings.Index(s, "}"); i >= 0 {
		return s[:i+1]
	}
	if i := strings.Index(s, "/"); i >= 0 {
		return s[:i]
	}
	return s
}
