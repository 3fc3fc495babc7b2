// Package reconcile merges results from the independent search sources into
// one deduplicated, precedence-ordered list.
package reconcile

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/casafind/casafind/internal/domain/property"
	"github.com/casafind/casafind/internal/domain/search/filters"
)

// DefaultListLimit caps the bulk listing fetched when only scalar attribute
// filters are present.
const DefaultListLimit = 200

// Mode labels which reconciliation policy a filter set selects.
// Used for metrics and logging, never for control flow outside this package.
type Mode string

const (
	ModeEmpty     Mode = "empty"
	ModeQueryTags Mode = "query_tags"
	ModeQuery     Mode = "query"
	ModeTags      Mode = "tags"
	ModeFilters   Mode = "filters"
)

// ModeFor returns the reconciliation mode the given filters select.
func ModeFor(f filters.Filters) Mode {
	switch {
	case f.IsEmpty():
		return ModeEmpty
	case f.HasQuery() && f.HasTags():
		return ModeQueryTags
	case f.HasQuery():
		return ModeQuery
	case f.HasTags():
		return ModeTags
	default:
		return ModeFilters
	}
}

// Service reconciles multi-source search results. It holds no mutable
// state; every call is a pure function of the filters and the sources'
// replies at call time.
type Service struct {
	sources   Sources
	listLimit int
}

// New creates a reconciler over the given sources.
func New(sources Sources) *Service {
	return &Service{sources: sources, listLimit: DefaultListLimit}
}

// WithListLimit overrides the bulk-listing cap for filters-only mode.
func (s *Service) WithListLimit(limit int) *Service {
	if limit > 0 {
		s.listLimit = limit
	}
	return s
}

// ListLimit returns the bulk-listing cap in effect.
func (s *Service) ListLimit() int {
	return s.listLimit
}

// Reconcile queries the sources selected by the filter set and merges their
// results. Source calls are issued concurrently; output order is fully
// determined by the merge policy, never by completion order.
//
// Failure policy: fail-fast. If any selected source fails, the whole call
// fails and partial results are discarded. The errgroup cancels the sibling
// calls through the shared context, so one slow failure never blocks the
// others from winding down.
func (s *Service) Reconcile(ctx context.Context, f filters.Filters) ([]property.Property, error) {
	switch ModeFor(f) {
	case ModeEmpty:
		// No clauses, no network calls. Falling back to "show everything"
		// is a decision the caller has to make explicitly.
		return []property.Property{}, nil
	case ModeQueryTags:
		return s.queryWithTags(ctx, f)
	case ModeQuery:
		return s.queryOnly(ctx, f)
	case ModeTags:
		return s.tagsOnly(ctx, f)
	default:
		return s.attributesOnly(ctx, f)
	}
}

// queryWithTags intersects attribute and description matches with the tag
// result set: attribute hits first (server relevance order), then
// description hits that pass the scalar predicate, both restricted to ids
// the tag source returned.
func (s *Service) queryWithTags(ctx context.Context, f filters.Filters) ([]property.Property, error) {
	var attr, tagged, desc []property.Property

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		attr, err = s.sources.ByAttributes(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		tagged, err = s.sources.ByTags(gctx, f.CleanTags())
		return err
	})
	g.Go(func() error {
		var err error
		desc, err = s.sources.ByDescription(gctx, f.Query)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reconcile query+tags: %w", err)
	}

	tagIDs := idSet(tagged)
	out := make([]property.Property, 0, len(attr))
	seen := make(map[string]struct{}, len(attr))

	for _, p := range attr {
		if _, ok := tagIDs[p.ID]; !ok {
			continue
		}
		out = appendUnique(out, seen, p)
	}
	for _, p := range desc {
		if _, ok := tagIDs[p.ID]; !ok {
			continue
		}
		if !f.Matches(&p) {
			continue
		}
		out = appendUnique(out, seen, p)
	}
	return out, nil
}

// queryOnly emits attribute matches in server order, then description
// matches that pass the scalar predicate and are not already present.
func (s *Service) queryOnly(ctx context.Context, f filters.Filters) ([]property.Property, error) {
	var attr, desc []property.Property

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		attr, err = s.sources.ByAttributes(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		desc, err = s.sources.ByDescription(gctx, f.Query)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reconcile query: %w", err)
	}

	out := make([]property.Property, 0, len(attr)+len(desc))
	seen := make(map[string]struct{}, len(attr)+len(desc))

	for _, p := range attr {
		out = appendUnique(out, seen, p)
	}
	for _, p := range desc {
		if !f.Matches(&p) {
			continue
		}
		out = appendUnique(out, seen, p)
	}
	return out, nil
}

// tagsOnly fetches the tag source and applies the full predicate
// client-side, since the tag endpoint accepts no structured filters.
func (s *Service) tagsOnly(ctx context.Context, f filters.Filters) ([]property.Property, error) {
	tagged, err := s.sources.ByTags(ctx, f.CleanTags())
	if err != nil {
		return nil, fmt.Errorf("reconcile tags: %w", err)
	}
	return filterRecords(tagged, f), nil
}

// attributesOnly pulls a capped bulk listing and filters it client-side.
func (s *Service) attributesOnly(ctx context.Context, f filters.Filters) ([]property.Property, error) {
	listed, err := s.sources.List(ctx, s.listLimit)
	if err != nil {
		return nil, fmt.Errorf("reconcile filters: %w", err)
	}
	return filterRecords(listed, f), nil
}

func filterRecords(in []property.Property, f filters.Filters) []property.Property {
	out := make([]property.Property, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, p := range in {
		if !f.Matches(&p) || !f.MatchesTags(&p) {
			continue
		}
		out = appendUnique(out, seen, p)
	}
	return out
}

func appendUnique(
	out []property.Property, seen map[string]struct{}, p property.Property,
) []property.Property {
	if _, ok := seen[p.ID]; ok {
		return out
	}
	seen[p.ID] = struct{}{}
	return append(out, p)
}

func idSet(in []property.Property) map[string]struct{} {
	ids := make(map[string]struct{}, len(in))
	for _, p := range in {
		ids[p.ID] = struct{}{}
	}
	return ids
}
