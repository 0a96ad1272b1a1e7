package anchor

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when a collaborator is missing its credentials.
	ErrNotConfigured = errors.New("not configured")
	// ErrPinFailed is returned when the pinning service rejected the upload.
	ErrPinFailed = errors.New("pin failed")
	// ErrConnection is returned when a remote service could not be reached.
	ErrConnection = errors.New("connection error")
)

// Placeholders recorded in the sync report in place of a CID.
const (
	StatusConfigurationError = "CONFIGURATION_ERROR"
	StatusHashFailed         = "HASH_GENERATION_FAILED"
	StatusConnectionError    = "CONNECTION_ERROR"
)

// PinStatus maps a pinning error to the placeholder shown in the sync report.
func PinStatus(err error) string {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return StatusConfigurationError
	case errors.Is(err, ErrConnection):
		return StatusConnectionError
	default:
		return StatusHashFailed
	}
}

// StatusError is returned when a remote service answers with an unexpected status.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

// NewStatusError creates a new StatusError.
func NewStatusError(service string, statusCode int, body string) *StatusError {
	return &StatusError{Service: service, StatusCode: statusCode, Body: body}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}
