// Package api wraps the document-management REST backend. All operations are
// single-attempt: failures propagate to the caller, which decides how to
// report them. No request is ever retried client-side.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"docuflow/internal/domain"
	apperrors "docuflow/pkg/errors"
)

const apiPrefix = "/api/v1"

// TokenProvider supplies the current bearer token, or "" when anonymous.
type TokenProvider func() string

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenProvider
	logger  domain.Logger
}

// NewClient creates a new API client instance. token may be nil for a client
// that only performs anonymous calls.
func NewClient(baseURL string, timeout time.Duration, token TokenProvider, logger domain.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
		logger:  logger,
	}
}

// newRequest builds a request for the given API path. The bearer token is
// attached only to requests targeting the API path prefix.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build request", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	if c.token != nil && strings.HasPrefix(path, "/api/") {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// do executes the request and decodes a JSON response into out when out is
// non-nil. Non-2xx responses are decoded into an AppError.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("Request failed", "method", req.Method, "url", req.URL.String())
		return apperrors.NewNetworkError("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return decodeAPIError(resp.StatusCode, body)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewInternalError("failed to decode response", err)
	}
	return nil
}

// doJSON marshals body as JSON and executes the request.
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError("failed to encode request body", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := c.newRequest(ctx, method, path, nil, reader, "application/json")
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// errorPayload matches the backend error body. message may be a single
// string or a list of strings; some endpoints use "error" instead.
type errorPayload struct {
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
}

// decodeAPIError turns a non-2xx response into an AppError, preserving the
// backend message. String arrays are joined with ", " for display.
func decodeAPIError(statusCode int, body []byte) error {
	message := extractMessage(body)
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", statusCode)
	}

	var appErr *apperrors.AppError
	switch statusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		appErr = apperrors.NewValidationError(message)
	case http.StatusUnauthorized, http.StatusForbidden:
		appErr = apperrors.NewAuthError(message)
	case http.StatusNotFound:
		appErr = apperrors.NewNotFoundError(message)
	default:
		appErr = apperrors.NewInternalError(message, nil)
	}
	appErr.StatusCode = statusCode
	return appErr
}

func extractMessage(body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, raw := range []json.RawMessage{payload.Message, payload.Error} {
		if len(raw) == 0 {
			continue
		}
		var single string
		if err := json.Unmarshal(raw, &single); err == nil {
			return single
		}
		var many []string
		if err := json.Unmarshal(raw, &many); err == nil {
			return strings.Join(many, ", ")
		}
	}
	return ""
}
