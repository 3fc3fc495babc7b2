// Package sourcecache is a caching decorator over the upstream search
// sources. Only the expensive, high-reuse calls are cached: attribute
// searches and the bulk listing. Tag and description searches pass through
// because their result sets churn with the query text.
package sourcecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/casafind/casafind/internal/db"
	"github.com/casafind/casafind/internal/domain/property"
	"github.com/casafind/casafind/internal/domain/search/filters"
	"github.com/casafind/casafind/internal/usecase/reconcile"
)

const cacheKeyPrefix = "casafind:search:"

// DefaultTTL bounds staleness of cached result pages.
const DefaultTTL = 5 * time.Minute

// Compile-time check: the decorator stays a drop-in source set.
var _ reconcile.Sources = (*CachedSources)(nil)

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSources caches attribute-search and listing results in a
// key-value store. Cache failures degrade to the inner sources; they are
// never surfaced to the caller.
type CachedSources struct {
	inner      reconcile.Sources
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner reconcile.Sources,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSources {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedSources{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// ByAttributes returns a cached result page or calls the inner source.
func (c *CachedSources) ByAttributes(ctx context.Context, f filters.Filters) ([]property.Property, error) {
	key := attributesKey(f)

	if recs, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return recs, nil
	}
	c.incCache("miss")

	recs, err := c.inner.ByAttributes(ctx, f)
	if err != nil {
		return nil, err
	}
	c.putToCache(ctx, key, recs)
	return recs, nil
}

// ByTags passes through to the inner source.
func (c *CachedSources) ByTags(ctx context.Context, tags []string) ([]property.Property, error) {
	return c.inner.ByTags(ctx, tags)
}

// ByDescription passes through to the inner source.
func (c *CachedSources) ByDescription(ctx context.Context, query string) ([]property.Property, error) {
	return c.inner.ByDescription(ctx, query)
}

// List returns a cached listing page or calls the inner source.
func (c *CachedSources) List(ctx context.Context, limit int) ([]property.Property, error) {
	key := cacheKeyPrefix + "list:" + strconv.Itoa(limit)

	if recs, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return recs, nil
	}
	c.incCache("miss")

	recs, err := c.inner.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	c.putToCache(ctx, key, recs)
	return recs, nil
}

func (c *CachedSources) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedSources) getFromCache(ctx context.Context, key string) ([]property.Property, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached results", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var recs []property.Property
	if err := json.Unmarshal(data, &recs); err != nil {
		c.logger.Warn("Failed to parse cached results", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return recs, true
}

func (c *CachedSources) putToCache(ctx context.Context, key string, recs []property.Property) {
	data, err := json.Marshal(recs)
	if err != nil {
		c.logger.Warn("Failed to encode results for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache results", zap.String("key", key), zap.Error(err))
	}
}

// attributesKey derives a stable key from the active filter clauses.
// Tags are excluded: they never reach the attribute endpoint.
func attributesKey(f filters.Filters) string {
	var b strings.Builder
	b.WriteString("q=" + strings.ToLower(strings.TrimSpace(f.Query)))
	b.WriteString("|tr=" + string(f.Transaction))
	b.WriteString("|ty=" + string(f.Type))
	if f.MinPrice != nil {
		b.WriteString("|minp=" + strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		b.WriteString("|maxp=" + strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.MinBedrooms != nil {
		b.WriteString("|minb=" + strconv.Itoa(*f.MinBedrooms))
	}
	if f.MaxBedrooms != nil {
		b.WriteString("|maxb=" + strconv.Itoa(*f.MaxBedrooms))
	}
	b.WriteString("|c=" + strings.ToLower(strings.TrimSpace(f.City)))
	b.WriteString("|s=" + strings.ToLower(strings.TrimSpace(f.State)))

	h := sha256.Sum256([]byte(b.String()))
	return cacheKeyPrefix + "attrs:" + hex.EncodeToString(h[:])
}
