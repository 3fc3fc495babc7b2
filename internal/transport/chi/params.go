package chi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/casafind/casafind/internal/domain/property"
	"github.com/casafind/casafind/internal/domain/search/filters"
)

// filtersFromQuery parses the search query parameters. Absent parameters
// leave their clause inactive; malformed numerics are a client error.
func filtersFromQuery(q url.Values) (filters.Filters, error) {
	var f filters.Filters

	f.Query = q.Get("query")
	if raw := q.Get("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Tags = append(f.Tags, t)
			}
		}
	}

	if v := q.Get("transaction"); v != "" {
		tr := property.Transaction(v)
		if !tr.IsValid() {
			return f, fmt.Errorf("invalid transaction %q", v)
		}
		f.Transaction = tr
	}
	if v := q.Get("type"); v != "" {
		pt := property.Type(v)
		if !pt.IsValid() {
			return f, fmt.Errorf("invalid type %q", v)
		}
		f.Type = pt
	}

	var err error
	if f.MinPrice, err = floatParam(q, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = floatParam(q, "max_price"); err != nil {
		return f, err
	}
	if f.MinBedrooms, err = intParam(q, "min_bedrooms"); err != nil {
		return f, err
	}
	if f.MaxBedrooms, err = intParam(q, "max_bedrooms"); err != nil {
		return f, err
	}

	f.City = q.Get("city")
	f.State = q.Get("state")
	return f, nil
}

func floatParam(q url.Values, name string) (*float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}

func intParam(q url.Values, name string) (*int, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}
