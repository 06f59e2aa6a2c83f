package bookapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// CreateReview publishes a review for a book. Requires authentication.
// Reviews are immutable once created; there is no update or delete.
func (c *Client) CreateReview(ctx context.Context, req ReviewRequest, token string) error {
	return c.postJSON(ctx, "/reviews", token, req, nil)
}

// PublicProfile fetches another user's public profile. No authentication
// required.
func (c *Client) PublicProfile(ctx context.Context, userID string) (PublicProfile, error) {
	body, err := c.get(ctx, "/profile/"+url.PathEscape(userID), nil, "")
	if err != nil {
		return PublicProfile{}, err
	}

	var out PublicProfile
	if err := json.Unmarshal(body, &out); err != nil {
		return PublicProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	return out, nil
}
