package httpx

import (
	"fmt"
	"time"
)

// StatusError indicates a non-2xx HTTP response.
type StatusError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Body is the response body, kept for diagnostics.
	Body []byte
}

// Error returns a string representation of the status error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

// RateLimitError indicates the server rate limited the request.
type RateLimitError struct {
	// StatusCode is the HTTP status code (429 or 503).
	StatusCode int
	// RetryAfter indicates how long to wait before retrying.
	RetryAfter time.Duration
}

// Error returns a string representation of the rate limit error.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (status %d): retry after %v", e.StatusCode, e.RetryAfter)
	}
	return fmt.Sprintf("rate limited (status %d)", e.StatusCode)
}
