package casafind

import (
	"github.com/casafind/casafind/internal/domain/property"
	"github.com/casafind/casafind/internal/domain/search/filters"
	"github.com/casafind/casafind/internal/transport/upstream"
)

func toInternalFilters(f Filters) filters.Filters {
	return filters.Filters{
		Query:       f.Query,
		Tags:        f.Tags,
		Transaction: property.Transaction(f.Transaction),
		Type:        property.Type(f.Type),
		MinPrice:    f.MinPrice,
		MaxPrice:    f.MaxPrice,
		MinBedrooms: f.MinBedrooms,
		MaxBedrooms: f.MaxBedrooms,
		City:        f.City,
		State:       f.State,
	}
}

func fromInternalProperty(p *property.Property) Property {
	return Property{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Parking:     p.Parking,
		Type:        PropertyType(p.Type),
		Transaction: TransactionType(p.Transaction),
		Location: Location{
			City:          p.Location.City,
			State:         p.Location.State,
			Neighborhood:  p.Location.Neighborhood,
			Zip:           p.Location.Zip,
			Street:        p.Location.Street,
			Address:       p.Location.Address,
			AddressNumber: p.Location.AddressNumber,
		},
		Tags:   p.Tags,
		Images: p.Images,
	}
}

func fromInternalProperties(recs []property.Property) []Property {
	out := make([]Property, len(recs))
	for i := range recs {
		out[i] = fromInternalProperty(&recs[i])
	}
	return out
}

func toInternalLead(l Lead) upstream.Lead {
	return upstream.Lead{
		PropertyID: l.PropertyID,
		Name:       l.Name,
		Email:      l.Email,
		Phone:      l.Phone,
		Message:    l.Message,
	}
}
