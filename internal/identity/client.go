// Package identity resolves user ids against the external user service.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eventworks/backend/internal/apperr"
)

// DefaultTimeout bounds a single lookup request.
const DefaultTimeout = 5 * time.Second

// ErrUserNotFound is returned when the user service reports the id unknown.
// Only this outcome is authorization-relevant; transport and 5xx failures
// surface as apperr.ErrUpstream.
var ErrUserNotFound = errors.New("user not found")

// User is the profile returned by the user service.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	AboutMe string `json:"about_me"`
}

// Client calls the user service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a user-service client for the given base URL
// (e.g. "http://user-service:8080").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches the profile for userID. A 404 from the user service maps to
// ErrUserNotFound; any other failure maps to apperr.ErrUpstream.
func (c *Client) Lookup(ctx context.Context, userID int64) (*User, error) {
	url := fmt.Sprintf("%s/users/%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Upstream("user service request failed: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("user id=%d: %w", userID, ErrUserNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, apperr.Upstream("user service returned status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, apperr.Upstream("decode user response: %v", err)
	}
	return &user, nil
}
