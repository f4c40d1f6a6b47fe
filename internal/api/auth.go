package api

import (
	"context"
	"net/http"

	"docuflow/internal/domain"
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, payload domain.LoginPayload) (string, error) {
	var resp domain.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/auth/login", payload, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register creates a new account. Validation failures carry the backend
// message (or joined messages) in the returned error.
func (c *Client) Register(ctx context.Context, payload domain.RegisterPayload) error {
	return c.doJSON(ctx, http.MethodPost, apiPrefix+"/user/register", payload, nil)
}
