package health

import "context"

// UpstreamPinger checks the property API's availability.
type UpstreamPinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks the result cache's availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
