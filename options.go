package casafind

import (
	"time"

	"go.uber.org/zap"
)

type clientConfig struct {
	baseURL  string
	apiKey   string
	timeout  time.Duration
	retryMax int

	redisAddrs    []string
	redisUsername string
	redisPassword string
	cacheTTL      time.Duration

	listLimit int
	logger    *zap.Logger
}

// Option configures a Client.
type Option func(*clientConfig)

// WithBaseURL sets the property API base URL. Required.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) { c.baseURL = url }
}

// WithAPIKey sets the bearer token sent to the property API.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) { c.apiKey = key }
}

// WithTimeout sets the per-request upstream timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.timeout = d }
}

// WithRetryMax sets the upstream retry budget.
func WithRetryMax(n int) Option {
	return func(c *clientConfig) { c.retryMax = n }
}

// WithRedisCache enables the Redis result cache. A zero ttl uses the
// cache's default.
func WithRedisCache(addrs []string, ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.redisAddrs = addrs
		c.cacheTTL = ttl
	}
}

// WithRedisAuth sets credentials for the Redis result cache.
func WithRedisAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.redisUsername = username
		c.redisPassword = password
	}
}

// WithListLimit caps the bulk listing used for filter-only searches and
// the suggestion corpus.
func WithListLimit(n int) Option {
	return func(c *clientConfig) { c.listLimit = n }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}
