package bookapi

import "context"

// Signup registers a new account and returns the token and user on success.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (AuthResult, error) {
	var out AuthResult
	if err := c.postJSON(ctx, "/auth/signup", "", req, &out); err != nil {
		return AuthResult{}, err
	}
	return out, nil
}

// Login authenticates an existing account and returns the token and user on
// success.
func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResult, error) {
	var out AuthResult
	if err := c.postJSON(ctx, "/auth/login", "", req, &out); err != nil {
		return AuthResult{}, err
	}
	return out, nil
}
