package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minWordLen is the shortest word kept by Tokenize; anything shorter is
// considered noise for frequency counting.
const minWordLen = 4

// connectors is the closed set of short Spanish linking words that are
// treated as already-complete tokens during suggestion matching.
var connectors = map[string]struct{}{
	"en":  {},
	"con": {},
	"de":  {},
	"del": {},
}

// IsConnector reports whether tok (already normalized) is a connector word.
func IsConnector(tok string) bool {
	_, ok := connectors[tok]
	return ok
}

// isWordRune reports whether r belongs to the word-character class used for
// tokenization: ASCII alphanumerics plus lowercase Spanish accented letters.
// Input is lowercased before tokenizing, so uppercase variants never occur.
func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("áéíóúñü", r)
}

// Tokenize splits free text into lowercase words, discarding words shorter
// than four characters. Any non word-character separates tokens.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !isWordRune(r)
	})
	out := fields[:0]
	for _, w := range fields {
		if utf8.RuneCountInString(w) >= minWordLen {
			out = append(out, w)
		}
	}
	return out
}

// SplitTail splits a query into its stable prefix and the trailing partial
// token: the tail is the maximal whitespace-free suffix, the prefix is
// everything before it including the separator. SplitTail("casa en pu")
// returns ("casa en ", "pu").
func SplitTail(q string) (prefix, tail string) {
	i := strings.LastIndexFunc(q, unicode.IsSpace)
	if i < 0 {
		return "", q
	}
	return q[:i+1], q[i+1:]
}
