package domain

import "errors"

var (
	// ErrSearchUnavailable signals that an upstream search source failed at
	// the transport or server level. No matches is never this error.
	ErrSearchUnavailable = errors.New("search unavailable")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrBadUpstreamResponse signals a malformed or rejected upstream reply.
	ErrBadUpstreamResponse = errors.New("bad upstream response")
)
