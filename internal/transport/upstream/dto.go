package upstream

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/casafind/casafind/internal/domain/property"
)

// envelope is the upstream API's response wrapper.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// propertyRow is the upstream wire shape of a listing. The API is backed by
// Postgres and leaks some of its representations: numerics may arrive as
// strings and text arrays as `{a,"b c"}` literals.
type propertyRow struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       looseFloat        `json:"price"`
	Bedrooms    looseInt          `json:"bedrooms"`
	Bathrooms   looseInt          `json:"bathrooms"`
	Parking     looseInt          `json:"parking"`
	Type        string            `json:"type"`
	Transaction string            `json:"transaction"`
	Location    property.Location `json:"location"`
	Tags        textArray         `json:"tags"`
	Images      textArray         `json:"images"`
}

func (r *propertyRow) toDomain() property.Property {
	return property.Property{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       float64(r.Price),
		Bedrooms:    int(r.Bedrooms),
		Bathrooms:   int(r.Bathrooms),
		Parking:     int(r.Parking),
		Type:        property.Type(r.Type),
		Transaction: property.Transaction(r.Transaction),
		Location:    r.Location,
		Tags:        r.Tags,
		Images:      r.Images,
	}
}

func rowsToDomain(rows []propertyRow) []property.Property {
	out := make([]property.Property, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out
}

// looseFloat decodes a JSON number or a numeric string. Unparseable values
// decode as zero, matching the upstream consumers' tolerance.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = looseFloat(v)
	return nil
}

// looseInt decodes a JSON number or a numeric string as an int.
type looseInt int

func (n *looseInt) UnmarshalJSON(b []byte) error {
	var f looseFloat
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	*n = looseInt(f)
	return nil
}

// textArray decodes either a JSON string array or a Postgres text-array
// literal such as `{piscina,"jardin grande"}`.
type textArray []string

func (a *textArray) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*a = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = parsePGTextArray(s)
		return nil
	}
	*a = nil
	return nil
}

// parsePGTextArray splits a Postgres array literal into its elements,
// honoring double quotes and backslash escapes.
func parsePGTextArray(s string) []string {
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil
	}
	inner := s[1 : len(s)-1]
	if inner == "" {
		return nil
	}

	var out []string
	var cur strings.Builder
	inQuotes := false
	escaped := false

	flush := func() {
		if v := strings.TrimSpace(cur.String()); v != "" {
			out = append(out, v)
		}
		cur.Reset()
	}

	for _, ch := range inner {
		switch {
		case escaped:
			cur.WriteRune(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			flush()
		default:
			cur.WriteRune(ch)
		}
	}
	flush()
	return out
}
