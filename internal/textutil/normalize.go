// Package textutil holds the small pure string helpers shared by the
// reconciler and the suggestion synthesizer: normalization, tokenization
// and query splitting. Each rule lives in its own named function so it can
// be tested and extended in isolation.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, strips diacritics (NFD decomposition followed by
// removal of combining marks) and trims surrounding space. "Jardín" and
// "jardin" normalize to the same string.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	// Transformers are stateful; build a fresh chain per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// CollapseSpaces trims s and squeezes internal whitespace runs into single
// spaces.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
