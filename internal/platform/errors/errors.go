package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrTransport            = errors.New("transport failure")
	ErrUnsupported          = errors.New("capability unsupported")
	ErrAlreadyOwned         = errors.New("item already owned")
	ErrInsufficientXP       = errors.New("not enough xp")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// HTTPError is returned for every non-2xx response. The body is kept verbatim;
// the backend does not expose structured error codes.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("request failed: %d", e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}
