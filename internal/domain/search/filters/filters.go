package filters

import (
	"strings"

	"github.com/casafind/casafind/internal/domain/property"
)

// Filters is the query the search core is asked to satisfy. Zero-valued
// fields are inactive; pointer fields distinguish "unset" from zero.
//
// An empty filter set yields an empty result list; the core never falls
// back to "show everything" on its own.
type Filters struct {
	// Query is the free-text search term. May be empty.
	Query string
	// Tags are required amenity tags, ANDed together. A record must carry
	// every tag as a case-insensitive substring of one of its own tags.
	Tags []string

	Transaction property.Transaction
	Type        property.Type

	MinPrice    *float64
	MaxPrice    *float64
	MinBedrooms *int
	MaxBedrooms *int

	// City and State are case-insensitive substring filters.
	City  string
	State string
}

// HasQuery reports whether a non-blank free-text query is present.
func (f *Filters) HasQuery() bool {
	return strings.TrimSpace(f.Query) != ""
}

// HasTags reports whether at least one non-blank required tag is present.
func (f *Filters) HasTags() bool {
	for _, t := range f.Tags {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}

// HasAttributes reports whether any scalar attribute clause is active.
func (f *Filters) HasAttributes() bool {
	return f.Transaction != "" || f.Type != "" ||
		f.MinPrice != nil || f.MaxPrice != nil ||
		f.MinBedrooms != nil || f.MaxBedrooms != nil ||
		strings.TrimSpace(f.City) != "" || strings.TrimSpace(f.State) != ""
}

// IsEmpty reports whether no clause of any kind is active.
func (f *Filters) IsEmpty() bool {
	return !f.HasQuery() && !f.HasTags() && !f.HasAttributes()
}

// Matches applies every active scalar clause to p: transaction and type
// equality, price and bedroom ranges, city/state substring containment.
// Required tags are tested separately by MatchesTags, because the tag
// source enforces them server-side in some modes.
//
// An inverted range (min > max) matches nothing, which is correct
// behavior rather than an error.
func (f *Filters) Matches(p *property.Property) bool {
	if f.Transaction != "" && p.Transaction != f.Transaction {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinBedrooms != nil && p.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.MaxBedrooms != nil && p.Bedrooms > *f.MaxBedrooms {
		return false
	}
	if city := strings.TrimSpace(f.City); city != "" {
		if !strings.Contains(strings.ToLower(p.Location.City), strings.ToLower(city)) {
			return false
		}
	}
	if state := strings.TrimSpace(f.State); state != "" {
		if !strings.Contains(strings.ToLower(p.Location.State), strings.ToLower(state)) {
			return false
		}
	}
	return true
}

// MatchesTags reports whether p carries every required tag.
// Returns true when no tags are required.
func (f *Filters) MatchesTags(p *property.Property) bool {
	for _, t := range f.Tags {
		if strings.TrimSpace(t) == "" {
			continue
		}
		if !p.HasTag(t) {
			return false
		}
	}
	return true
}

// CleanTags returns the required tags with blanks removed and surrounding
// space trimmed, preserving order.
func (f *Filters) CleanTags() []string {
	out := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
