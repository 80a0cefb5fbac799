package scrape

import (
	"errors"
	"fmt"
)

// Errors surfaced by the fetch client. Handlers map these onto HTTP status
// codes; anything not listed here is an unknown (non-HTTP) failure and is
// passed through unwrapped.
var (
	// ErrNotFound means the source site responded 404.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the source site responded 403, which usually
	// indicates rate limiting or scraper blocking.
	ErrForbidden = errors.New("access forbidden - possible rate limiting")
)

// RequestError covers network and HTTP failures outside the 404/403 cases.
// The original failure message is preserved. Body carries the response HTML
// when the source returned one, so error pages can be captured for offline
// inspection.
type RequestError struct {
	StatusCode int
	Message    string
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("request failed: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
