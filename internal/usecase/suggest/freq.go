package suggest

import (
	"sort"
	"strings"

	"github.com/casafind/casafind/internal/domain/property"
	"github.com/casafind/casafind/internal/textutil"
)

// table counts occurrences of distinct values. Counting is by record
// occurrence only; price or any other signal never weighs in.
type table map[string]int

func (t table) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	t[v]++
}

// topKeys returns the table's keys ordered by descending frequency.
// Ties break lexicographically so the output is deterministic.
func (t table) topKeys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if t[keys[i]] != t[keys[j]] {
			return t[keys[i]] > t[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// corpusIndex holds the per-category frequency tables built from one
// snapshot of matching properties.
type corpusIndex struct {
	tags          table
	cities        table
	neighborhoods table
	states        table
	words         table
}

func indexCorpus(corpus []property.Property) *corpusIndex {
	idx := &corpusIndex{
		tags:          make(table),
		cities:        make(table),
		neighborhoods: make(table),
		states:        make(table),
		words:         make(table),
	}
	for i := range corpus {
		p := &corpus[i]
		for _, t := range p.Tags {
			idx.tags.add(t)
		}
		idx.cities.add(p.Location.City)
		idx.neighborhoods.add(p.Location.Neighborhood)
		idx.states.add(p.Location.State)
		for _, w := range textutil.Tokenize(p.Title) {
			idx.words.add(w)
		}
		for _, w := range textutil.Tokenize(p.Description) {
			idx.words.add(w)
		}
	}
	return idx
}
