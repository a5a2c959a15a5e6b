// Package httpx provides the shared HTTP client used by the content and
// video upstreams, with retry, per-domain rate limiting, and typed errors.
package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"podigest/retry"
)

// Client wraps an http.Client with retry logic and rate limiting.
type Client struct {
	base        *http.Client
	config      *Config
	rateLimiter *RateLimiter
}

// Config holds HTTP client configuration.
type Config struct {
	// Timeout for individual HTTP requests.
	Timeout time.Duration
	// UserAgent is sent when a request sets no User-Agent of its own.
	UserAgent string
	// Retry configures the backoff policy for transient failures.
	Retry retry.Config
	// RateLimiter configures per-domain request budgets.
	RateLimiter RateLimiterConfig
	// Transport configures the connection pool.
	Transport TransportConfig
}

// TransportConfig configures the HTTP transport.
type TransportConfig struct {
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	ForceAttemptHTTP2   bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeout:     30 * time.Second,
		UserAgent:   "podigest/1.0",
		Retry:       retry.DefaultConfig(),
		RateLimiter: DefaultRateLimiterConfig(),
		Transport: TransportConfig{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}
}

// New creates a client with the given configuration.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.Transport.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Transport.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Transport.IdleConnTimeout,
		ForceAttemptHTTP2:   cfg.Transport.ForceAttemptHTTP2,
	}

	return &Client{
		base: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config:      cfg,
		rateLimiter: NewRateLimiter(cfg.RateLimiter),
	}
}

// Response is an HTTP response with the body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Get performs a GET request with retry and rate limiting.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil, headers)
}

// Post performs a POST request with the given body.
func (c *Client) Post(ctx context.Context, url string, body []byte, headers map[string]string) (*Response, error) {
	return c.Do(ctx, http.MethodPost, url, body, headers)
}

// Do performs an HTTP request. Transient failures (network errors, 5xx,
// 429/503) are retried per the configured backoff; other non-2xx responses
// return a *StatusError on the first attempt.
func (c *Client) Do(ctx context.Context, method, urlStr string, body []byte, headers map[string]string) (*Response, error) {
	if err := c.rateLimiter.Wait(ctx, urlStr); err != nil {
		return nil, err
	}

	var out *Response

	err := retry.Do(ctx, c.config.Retry, isRetryable, func(ctx context.Context) error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, urlStr, reader)
		if err != nil {
			return err
		}
		if req.Header.Get("User-Agent") == "" {
			req.Header.Set("User-Agent", c.config.UserAgent)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.base.Do(req)
		if err != nil {
			return fmt.Errorf("http request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests ||
			resp.StatusCode == http.StatusServiceUnavailable {
			return &RateLimitError{
				StatusCode: resp.StatusCode,
				RetryAfter: parseRetryAfter(resp.Header),
			}
		}

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response body: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &StatusError{StatusCode: resp.StatusCode, Body: respBody}
		}

		out = &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       respBody,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// isRetryable classifies errors for the retry loop.
func isRetryable(err error) bool {
	if !retry.IsRetryable(err) {
		return false
	}
	if _, ok := err.(*RateLimitError); ok {
		return true
	}
	if statusErr, ok := err.(*StatusError); ok {
		return statusErr.StatusCode >= 500
	}
	return true
}

// parseRetryAfter extracts the Retry-After header value, or 0 if absent.
func parseRetryAfter(header http.Header) time.Duration {
	retryAfter := header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(retryAfter); err == nil {
		return time.Until(t)
	}
	return 0
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.base.CloseIdleConnections()
	return nil
}
