package gemini

import (
	"errors"
	"fmt"
)

// Common client error types
var (
	ErrMissingAPIKey   = errors.New("missing API key")
	ErrInvalidResponse = errors.New("invalid upstream response")
)

// UpstreamError is returned when the provider answers with a non-success status.
// Body holds the raw response text.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// NewUpstreamError creates a new UpstreamError
func NewUpstreamError(statusCode int, body string) *UpstreamError {
	return &UpstreamError{
		StatusCode: statusCode,
		Body:       body,
	}
}

// AsUpstreamError unwraps err into an UpstreamError if it is one
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr, true
	}
	return nil, false
}
