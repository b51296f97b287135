package matching

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases, trims and strips diacritics so "Limón" and "limon"
// compare equal.
func Normalize(s string) string {
	s = strings.ToLower(s)
	if isASCII(s) {
		return strings.TrimSpace(s)
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	// Trim after stripping: a stray mark can hide surrounding whitespace.
	return strings.TrimSpace(out)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// normalizeSet builds a membership set of normalized names
func normalizeSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[Normalize(name)] = struct{}{}
	}
	return set
}
