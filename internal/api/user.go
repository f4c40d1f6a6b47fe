package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"docuflow/internal/domain"
)

// CurrentUser fetches the profile of the authenticated principal.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.doJSON(ctx, http.MethodGet, apiPrefix+"/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers fetches one page of users. Page is 1-based.
func (c *Client) ListUsers(ctx context.Context, page, size int) ([]domain.User, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	req, err := c.newRequest(ctx, http.MethodGet, apiPrefix+"/user/users", query, nil, "")
	if err != nil {
		return nil, err
	}
	var resp domain.UserListResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
