// Package promaster provides the HTTP client for the ProMaster backend.
package promaster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/j-veylop/promaster-tui/internal/logger"
)

// Backend endpoint paths, relative to the base URL.
const (
	loginPath     = "promasterauthentication/login"
	dashboardPath = "promasterauthentication/dashboard"
	showcasePath  = "promastershowcase/getallprojectwithfilters"

	// AccessTokenHeader carries the session token on authenticated requests.
	AccessTokenHeader = "AccessToken"
)

// ErrUnauthorized is returned when the backend rejects the access token.
var ErrUnauthorized = errors.New("unauthorized: session expired")

// APIError is a non-200 response from the backend.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Message)
}

// envelope is the response wrapper used by every endpoint.
type envelope[T any] struct {
	Result  T      `json:"result"`
	Message string `json:"message"`
}

// Client talks to the ProMaster REST API.
type Client struct {
	httpClient  *http.Client
	validate    *validator.Validate
	baseURL     string
	ipLookupURL string
	platformID  int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithIPLookupURL sets the public IP lookup endpoint. Empty disables the lookup.
func WithIPLookupURL(u string) Option {
	return func(c *Client) { c.ipLookupURL = u }
}

// WithPlatformID sets the platform id sent on login.
func WithPlatformID(id int) Option {
	return func(c *Client) { c.platformID = id }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		validate:   validator.New(),
		platformID: 2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL, always ending in "/".
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// do sends a request and returns the response body and headers of a 200 reply.
func (c *Client) do(ctx context.Context, method, path, token string, body any) ([]byte, http.Header, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(AccessTokenHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, nil, ErrUnauthorized
	}

	if resp.StatusCode != http.StatusOK {
		return nil, nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	return data, resp.Header, nil
}

// errorMessage extracts the backend "message" field, falling back to the raw body.
func errorMessage(body []byte) string {
	var env envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return env.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// decodeResult decodes the "result" field of an envelope. Bodies without an
// envelope are decoded directly; a null result leaves out untouched.
func decodeResult[T any](body []byte, out *T) error {
	raw := body
	var env envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err == nil && len(env.Result) > 0 {
		if bytes.Equal(env.Result, []byte("null")) {
			return nil
		}
		raw = env.Result
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
