// Package fetch retrieves JSON documents over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/slayercode1/Convert-Json-To-Typescript/internal/errors"
)

// Defaults for the fetch client.
const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxBodyBytes = 10 << 20
	DefaultUserAgent    = "json2ts"
)

// StatusError is returned when the server answers with a 4xx or 5xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %s", e.Status)
}

// Unwrap lets errors.Is match errors.ErrHTTPStatus.
func (e *StatusError) Unwrap() error {
	return errors.ErrHTTPStatus
}

// Client fetches JSON documents.
type Client struct {
	httpClient   *http.Client
	userAgent    string
	maxBodyBytes int64
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the overall request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			hc := *c.httpClient
			hc.Timeout = timeout
			c.httpClient = &hc
		}
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithMaxBodyBytes caps the size of a response body.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// New creates a fetch client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		userAgent:    DefaultUserAgent,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsURL reports whether ref looks like an http or https URL rather than a
// file path.
func IsURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch performs a GET request and returns the response body.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	start := time.Now()

	u, err := url.ParseRequestURI(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.NewInputError(fmt.Sprintf("'%s' is not an absolute http(s) URL", rawURL), errors.ErrInvalidURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.NewFetchError("creating request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("url", u.Redacted()),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, errors.NewFetchError(fmt.Sprintf("request to %s failed", u.Redacted()), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		slog.Debug("HTTP request returned error",
			slog.String("url", u.Redacted()),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		statusErr := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
		return nil, errors.NewFetchError(fmt.Sprintf("%s: %s", u.Redacted(), statusErr.Error()), statusErr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, errors.NewFetchError("reading response body", err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, errors.NewFetchError(fmt.Sprintf("response body exceeds %d bytes", c.maxBodyBytes), nil)
	}

	slog.Debug("HTTP request completed",
		slog.String("url", u.Redacted()),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return body, nil
}
