package odk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents an error response from a Central server. Central error
// bodies carry a dotted numeric code (e.g. 409.15) alongside the message.
type APIError struct {
	StatusCode int            `json:"-"`
	Code       float64        `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s (status %d, code %g)", e.Message, e.StatusCode, e.Code)
	}

	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// ParseAPIError builds an APIError from an error response body. A body that
// is not Central's error shape still yields an APIError carrying the status.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}

	return apiErr
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrEndpointRequired    = errors.New("endpoint is required")
	ErrCredentialsRequired = errors.New("email and password (or an access token) are required")
	ErrGeometryRequired    = errors.New("'geometry' data field is mandatory")
	ErrNoUpdateFields      = errors.New("one of either the 'label' or 'data' fields must be passed")
	ErrSessionClosed       = errors.New("client session already closed")
	ErrNoToken             = errors.New("no token available")
)

// IsNotFound reports whether err is a Central 404.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a Central 401.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is a Central 403.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsConflict reports whether err is a Central 409, the status an
// optimistic-concurrency entity update fails with when the base version no
// longer matches.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}

	return false
}
