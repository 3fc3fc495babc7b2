package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/casafind/casafind/internal/domain"
	"github.com/casafind/casafind/internal/domain/property"
	"github.com/casafind/casafind/internal/domain/search/filters"
)

// ByAttributes runs the attribute search endpoint. Every active scalar
// clause and the free-text query travel as query parameters; inactive
// clauses are omitted entirely.
func (c *Client) ByAttributes(ctx context.Context, f filters.Filters) ([]property.Property, error) {
	q := url.Values{}
	if f.HasQuery() {
		q.Set("query", f.Query)
	}
	if f.Transaction != "" {
		q.Set("transaction", string(f.Transaction))
	}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.MinPrice != nil {
		q.Set("min_price", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("max_price", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.MinBedrooms != nil {
		q.Set("min_bedrooms", strconv.Itoa(*f.MinBedrooms))
	}
	if f.MaxBedrooms != nil {
		q.Set("max_bedrooms", strconv.Itoa(*f.MaxBedrooms))
	}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.State != "" {
		q.Set("state", f.State)
	}

	path := "/search"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("attribute search: %w: %w", domain.ErrSearchUnavailable, err)
	}
	return c.decodeProperties(resp, "attribute search")
}

// ByTags runs the tag search endpoint. The server ANDs the given tags.
func (c *Client) ByTags(ctx context.Context, tags []string) ([]property.Property, error) {
	resp, err := c.post(ctx, "/search/tags", map[string][]string{"query": tags})
	if err != nil {
		return nil, fmt.Errorf("tag search: %w: %w", domain.ErrSearchUnavailable, err)
	}
	return c.decodeProperties(resp, "tag search")
}

// ByDescription runs the description full-text endpoint. The server answers
// 404 when nothing matches, which is an empty result rather than a failure.
func (c *Client) ByDescription(ctx context.Context, query string) ([]property.Property, error) {
	resp, err := c.post(ctx, "/search/description", map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("description search: %w: %w", domain.ErrSearchUnavailable, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return []property.Property{}, nil
	}
	return c.decodeProperties(resp, "description search")
}

// List fetches up to limit listings from the bulk endpoint.
func (c *Client) List(ctx context.Context, limit int) ([]property.Property, error) {
	resp, err := c.get(ctx, "/properties/all?limit="+strconv.Itoa(limit))
	if err != nil {
		return nil, fmt.Errorf("list properties: %w: %w", domain.ErrSearchUnavailable, err)
	}
	return c.decodeProperties(resp, "list properties")
}

// decodeProperties unwraps the response envelope into domain records.
// Non-2xx statuses surface as ErrSearchUnavailable with the server's own
// message when it sent one.
func (c *Client) decodeProperties(resp *http.Response, op string) ([]property.Property, error) {
	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrSearchUnavailable, err)
	}

	var env envelope
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(body, &env) == nil && env.Message != "" {
			msg = env.Message
		}
		c.logger.Warn("upstream request failed",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return nil, fmt.Errorf("%s: %w: status %d: %s",
			op, domain.ErrSearchUnavailable, resp.StatusCode, msg)
	}

	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrBadUpstreamResponse, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return []property.Property{}, nil
	}
	var rows []propertyRow
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrBadUpstreamResponse, err)
	}
	return rowsToDomain(rows), nil
}
