package reconcile

import (
	"context"

	"github.com/casafind/casafind/internal/domain/property"
	"github.com/casafind/casafind/internal/domain/search/filters"
)

// Sources exposes the independent upstream search operations the reconciler
// fans out to. Implementations must return an empty slice, not an error,
// when a query simply has no matches.
type Sources interface {
	// ByAttributes runs full-text search with the structured filters applied
	// server-side. Results arrive in server relevance order.
	ByAttributes(ctx context.Context, f filters.Filters) ([]property.Property, error)

	// ByTags returns records carrying ALL given tags (server-side AND).
	// Result order is arbitrary.
	ByTags(ctx context.Context, tags []string) ([]property.Property, error)

	// ByDescription matches the free text against descriptions only,
	// independent of structured filters. "Not found" is an empty list.
	ByDescription(ctx context.Context, query string) ([]property.Property, error)

	// List returns a bounded bulk listing, used as the fallback corpus when
	// neither query nor tags are present.
	List(ctx context.Context, limit int) ([]property.Property, error)
}
