package client

import (
	"errors"
	"fmt"
)

// HTTPError represents a failed API call: a non-2xx response, or a 2xx
// whose envelope carried ok:false. Message holds the server-provided
// error text, falling back to the raw body or status text.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// Message returns the server-provided error text from err, or "" when err
// carries none.
func Message(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return ""
}
