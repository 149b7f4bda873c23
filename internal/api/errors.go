package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is any non-2xx response from the backend, carrying the raw
// status and body so callers can classify it without string matching.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

// IsNotFound reports whether err is a 404 response. The backend signals
// "no cart exists yet" this way on cart lookups.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
