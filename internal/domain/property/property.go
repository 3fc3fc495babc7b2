package property

import "strings"

// Type is the property category.
type Type string

const (
	// House is a standalone house.
	House Type = "house"
	// Apartment is a unit inside a larger building.
	Apartment Type = "apartment"
)

// IsValid reports whether t is a known property type.
func (t Type) IsValid() bool {
	return t == House || t == Apartment
}

// Transaction is the offered transaction kind.
type Transaction string

const (
	// Sale offers the property for purchase.
	Sale Transaction = "sale"
	// Rent offers the property for lease.
	Rent Transaction = "rent"
)

// IsValid reports whether tx is a known transaction kind.
func (tx Transaction) IsValid() bool {
	return tx == Sale || tx == Rent
}

// Location holds the free-text address fields of a listing.
type Location struct {
	City          string `json:"city"`
	State         string `json:"state"`
	Neighborhood  string `json:"neighborhood"`
	Zip           string `json:"zip"`
	Street        string `json:"street"`
	Address       string `json:"address"`
	AddressNumber string `json:"addressNumber"`
}

// Property is a single listing as returned by the upstream API.
// The search core treats it as read-only data and never mutates it.
type Property struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Bedrooms    int         `json:"bedrooms"`
	Bathrooms   int         `json:"bathrooms"`
	Parking     int         `json:"parking"`
	Type        Type        `json:"type"`
	Transaction Transaction `json:"transaction"`
	Location    Location    `json:"location"`
	Tags        []string    `json:"tags"`
	Images      []string    `json:"images"`
}

// HasTag reports whether any of the property's tags contains tag as a
// case-insensitive substring. Tag matching is deliberately loose: a
// required tag "jardin" matches a listing tagged "Jardin grande".
func (p *Property) HasTag(tag string) bool {
	needle := strings.ToLower(strings.TrimSpace(tag))
	if needle == "" {
		return false
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}
