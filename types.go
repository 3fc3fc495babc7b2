package casafind

// PropertyType classifies a listing.
type PropertyType string

// Property types.
const (
	TypeHouse     PropertyType = "house"
	TypeApartment PropertyType = "apartment"
)

// TransactionType classifies the offered transaction.
type TransactionType string

// Transaction types.
const (
	TransactionSale TransactionType = "sale"
	TransactionRent TransactionType = "rent"
)

// Location describes where a property sits.
type Location struct {
	City          string
	State         string
	Neighborhood  string
	Zip           string
	Street        string
	Address       string
	AddressNumber string
}

// Property is a real-estate listing.
type Property struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Bedrooms    int
	Bathrooms   int
	Parking     int
	Type        PropertyType
	Transaction TransactionType
	Location    Location
	Tags        []string
	Images      []string
}

// Filters narrows a search. Zero-valued fields are inactive; pointer
// fields distinguish "unset" from zero.
type Filters struct {
	// Query is the free-text search term.
	Query string
	// Tags are required amenity tags, ANDed together.
	Tags []string

	Transaction TransactionType
	Type        PropertyType

	MinPrice    *float64
	MaxPrice    *float64
	MinBedrooms *int
	MaxBedrooms *int

	City  string
	State string
}

// Lead is a buyer contact request for a listing.
type Lead struct {
	PropertyID string
	Name       string
	Email      string
	Phone      string
	Message    string
}
