package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/casafind/casafind/internal/domain"
	"github.com/casafind/casafind/internal/domain/property"
)

// GetProperty fetches a single listing by ID.
func (c *Client) GetProperty(ctx context.Context, id string) (property.Property, error) {
	var zero property.Property
	if id == "" {
		return zero, fmt.Errorf("get property: %w: empty id", domain.ErrNotFound)
	}

	resp, err := c.get(ctx, "/properties/"+url.PathEscape(id))
	if err != nil {
		return zero, fmt.Errorf("get property: %w: %w", domain.ErrSearchUnavailable, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return zero, fmt.Errorf("get property %q: %w", id, domain.ErrNotFound)
	}

	body, err := readBody(resp)
	if err != nil {
		return zero, fmt.Errorf("get property: %w: %w", domain.ErrSearchUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, fmt.Errorf("get property: %w: status %d",
			domain.ErrSearchUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, fmt.Errorf("get property: %w: %w", domain.ErrBadUpstreamResponse, err)
	}
	var row propertyRow
	if err := json.Unmarshal(env.Data, &row); err != nil {
		return zero, fmt.Errorf("get property: %w: %w", domain.ErrBadUpstreamResponse, err)
	}
	return row.toDomain(), nil
}

// Ping verifies the upstream is reachable with a minimal listing request.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.List(ctx, 1); err != nil {
		return fmt.Errorf("upstream ping: %w", err)
	}
	return nil
}
