// ABOUTME: Error types for backend API failures
// ABOUTME: Distinguishes backend-reported errors from transport failures and missing endpoints

package aira

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response reported by the backend. Message carries the
// backend's detail string when one was decodable.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a backend 400, the class surfaced to the
// operator verbatim rather than retried or masked.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest
}

// isEndpointMissing reports whether err looks like an endpoint the backend
// does not serve yet (404 or 501), as opposed to a transient transport error.
// Only this class is eligible for the dev-mode mock fallback.
func isEndpointMissing(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound || apiErr.StatusCode == http.StatusNotImplemented
}
