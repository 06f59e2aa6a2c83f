// Package bookapi is the typed HTTP client for the remote BookBrust service.
//
// Every method is a single round trip: no retries, no caching. Non-2xx
// responses and transport failures are normalized into *RequestError so
// pages have one failure shape to render. Payload quirks of the remote
// (authors/genres arriving either as a list or as a JSON-encoded string)
// are decoded here, at the boundary, so they never leak into rendering code.
package bookapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second

	// Outbound rate limit toward the remote service.
	defaultRPS   = 5.0
	defaultBurst = 10

	userAgent = "bookbrust-client/1.0"
)

// Client is a rate-limited BookBrust API client.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a client for the service rooted at baseURL (including the /api
// prefix, e.g. "https://bookbrust-server.onrender.com/api").
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		logger:  logger,
	}
}

// doRequest executes a single HTTP round trip against the remote service.
// A non-empty token is attached as a bearer Authorization header. The body,
// when non-nil, is sent as JSON. The response body is returned for any 2xx
// status; everything else becomes a *RequestError.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, token string, body any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("bookbrust api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Message: "could not reach the BookBrust service", cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: "could not read response", cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newRequestError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// get is doRequest specialized for GET.
func (c *Client) get(ctx context.Context, path string, query url.Values, token string) ([]byte, error) {
	return c.doRequest(ctx, http.MethodGet, path, query, token, nil)
}

// postJSON executes a POST and decodes the JSON response into dest when dest
// is non-nil.
func (c *Client) postJSON(ctx context.Context, path, token string, body, dest any) error {
	respBody, err := c.doRequest(ctx, http.MethodPost, path, nil, token, body)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
