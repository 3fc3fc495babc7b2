package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/casafind/casafind/internal/domain"
)

// Lead is a buyer contact request for a specific listing.
type Lead struct {
	PropertyID string `json:"property_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Validate checks the fields the upstream rejects when absent.
func (l *Lead) Validate() error {
	if strings.TrimSpace(l.PropertyID) == "" {
		return fmt.Errorf("lead: property_id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("lead: name is required")
	}
	if strings.TrimSpace(l.Email) == "" {
		return fmt.Errorf("lead: email is required")
	}
	return nil
}

// CreateLead submits a contact request to the upstream. The returned string
// is the upstream's acknowledgment message, useful for surfacing to the
// site verbatim.
func (c *Client) CreateLead(ctx context.Context, lead Lead) (string, error) {
	if err := lead.Validate(); err != nil {
		return "", err
	}

	resp, err := c.post(ctx, "/leads", lead)
	if err != nil {
		return "", fmt.Errorf("create lead: %w: %w", domain.ErrBadUpstreamResponse, err)
	}
	body, err := readBody(resp)
	if err != nil {
		return "", fmt.Errorf("create lead: %w: %w", domain.ErrBadUpstreamResponse, err)
	}

	var env envelope
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("status %d", resp.StatusCode)
		if json.Unmarshal(body, &env) == nil && env.Message != "" {
			msg = env.Message
		}
		return "", fmt.Errorf("create lead: %w: %s", domain.ErrBadUpstreamResponse, msg)
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Errorf("create lead: %w: %w", domain.ErrBadUpstreamResponse, err)
	}
	return env.Message, nil
}
