// Package suggest synthesizes "did-you-mean" phrase completions from a
// snapshot of search results, without a dedicated suggestion endpoint.
package suggest

import (
	"strings"
	"unicode/utf8"

	"github.com/casafind/casafind/internal/domain/property"
	"github.com/casafind/casafind/internal/textutil"
)

const (
	// MinQueryLength is the shortest input that produces suggestions.
	// Anything shorter yields completions too broad to be useful.
	MinQueryLength = 2
	// MaxSuggestions caps the returned candidate phrases.
	MaxSuggestions = 8
)

// Suggest derives phrase completions for the trailing (possibly partial)
// token of partialQuery from the given corpus. Pure and synchronous: the
// caller pre-fetches a bulk listing snapshot as the corpus and re-invokes
// on every refresh.
//
// Candidates are grouped by category (neighborhoods, then cities, then
// states, then tags, then frequent title/description words) because place
// names dominate search intent in this domain. Within a category, higher
// corpus frequency wins. When the trailing token is a connector word
// ("en", "con", "de", "del") it is treated as complete: candidates are not
// prefix-filtered and the connector is kept verbatim in the phrase.
func Suggest(partialQuery string, corpus []property.Property) []string {
	term := strings.TrimSpace(partialQuery)
	if utf8.RuneCountInString(term) < MinQueryLength {
		return nil
	}

	prefix, tail := textutil.SplitTail(term)
	tailNorm := textutil.Normalize(tail)
	connector := textutil.IsConnector(tailNorm)

	base := prefix
	if connector {
		base = prefix + tail + " "
	}

	idx := indexCorpus(corpus)
	categories := [][]string{
		idx.neighborhoods.topKeys(),
		idx.cities.topKeys(),
		idx.states.topKeys(),
		idx.tags.topKeys(),
		idx.words.topKeys(),
	}

	out := make([]string, 0, MaxSuggestions)
	seen := make(map[string]struct{})
	for _, keys := range categories {
		for _, k := range keys {
			if !connector && !strings.HasPrefix(textutil.Normalize(k), tailNorm) {
				continue
			}
			phrase := textutil.CollapseSpaces(base + k)
			if phrase == "" {
				continue
			}
			// Dedup on the exact composed phrase: the user-visible casing of
			// the stable prefix must be preserved.
			if _, ok := seen[phrase]; ok {
				continue
			}
			seen[phrase] = struct{}{}
			out = append(out, phrase)
		}
	}

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}
