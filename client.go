// Package casafind is the client SDK for the casafind property search
// core: reconciled multi-source search, typed suggestions, and lead
// submission against a remote property API.
package casafind

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/casafind/casafind/internal/db"
	dbRedis "github.com/casafind/casafind/internal/db/redis"
	"github.com/casafind/casafind/internal/repository/sourcecache"
	"github.com/casafind/casafind/internal/transport/upstream"
	"github.com/casafind/casafind/internal/usecase/reconcile"
	"github.com/casafind/casafind/internal/usecase/suggest"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the casafind SDK entry point.
type Client struct {
	store    db.Store
	upstream *upstream.Client
	sources  reconcile.Sources
	recon    *reconcile.Service
}

// New creates a casafind Client. A base URL for the property API is
// required; the Redis result cache is optional.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.baseURL == "" {
		return nil, errors.New("casafind: upstream base URL required (use WithBaseURL)")
	}
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client := upstream.NewClient(&upstream.Config{
		BaseURL:  cfg.baseURL,
		APIKey:   cfg.apiKey,
		Timeout:  cfg.timeout,
		RetryMax: cfg.retryMax,
		Logger:   logger,
	})

	var store db.Store
	var sources reconcile.Sources = client
	if len(cfg.redisAddrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.redisAddrs,
			Username: cfg.redisUsername,
			Password: cfg.redisPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("casafind: create redis store: %w", err)
		}
		if err := s.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("casafind: cache not ready: %w", err)
		}
		store = s
		sources = sourcecache.New(client, s, cfg.cacheTTL, nil, logger)
	}

	recon := reconcile.New(sources)
	if cfg.listLimit > 0 {
		recon = recon.WithListLimit(cfg.listLimit)
	}

	return &Client{
		store:    store,
		upstream: client,
		sources:  sources,
		recon:    recon,
	}, nil
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Search runs a reconciled search across the upstream sources.
func (c *Client) Search(ctx context.Context, f Filters) ([]Property, error) {
	recs, err := c.recon.Reconcile(ctx, toInternalFilters(f))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromInternalProperties(recs), nil
}

// Suggest derives phrase completions for a partial query from the
// current listing corpus.
func (c *Client) Suggest(ctx context.Context, partialQuery string) ([]string, error) {
	corpus, err := c.sources.List(ctx, c.recon.ListLimit())
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return suggest.Suggest(partialQuery, corpus), nil
}

// GetProperty fetches a single listing by ID.
func (c *Client) GetProperty(ctx context.Context, id string) (Property, error) {
	p, err := c.upstream.GetProperty(ctx, id)
	if err != nil {
		return Property{}, fmt.Errorf("get property: %w", err)
	}
	return fromInternalProperty(&p), nil
}

// CreateLead submits a buyer contact request. The returned string is the
// upstream's acknowledgment message.
func (c *Client) CreateLead(ctx context.Context, lead Lead) (string, error) {
	msg, err := c.upstream.CreateLead(ctx, toInternalLead(lead))
	if err != nil {
		return "", fmt.Errorf("create lead: %w", err)
	}
	return msg, nil
}
