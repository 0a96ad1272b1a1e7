package safeprop

import (
	"fmt"
)

// ManifestNotFoundError is returned when the manifest file does not exist.
type ManifestNotFoundError struct {
	Path string
}

// NewManifestNotFoundError creates a new ManifestNotFoundError.
func NewManifestNotFoundError(path string) *ManifestNotFoundError {
	return &ManifestNotFoundError{Path: path}
}

func (e *ManifestNotFoundError) Error() string {
	return "manifest not found: " + e.Path
}

// ManifestInvalidError is returned when the manifest cannot be decoded or fails validation.
type ManifestInvalidError struct {
	Path string
	Err  error
}

// NewManifestInvalidError creates a new ManifestInvalidError.
func NewManifestInvalidError(path string, err error) *ManifestInvalidError {
	return &ManifestInvalidError{Path: path, Err: err}
}

func (e *ManifestInvalidError) Error() string {
	return fmt.Sprintf("invalid manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestInvalidError) Unwrap() error {
	return e.Err
}

// PayloadNotFoundError is returned when the proposal batch to submit does not exist.
type PayloadNotFoundError struct {
	Path string
}

// NewPayloadNotFoundError creates a new PayloadNotFoundError.
func NewPayloadNotFoundError(path string) *PayloadNotFoundError {
	return &PayloadNotFoundError{Path: path}
}

func (e *PayloadNotFoundError) Error() string {
	return "payload file not found: " + e.Path
}

// MissingServiceURLError is returned when no transaction service URL was configured.
type MissingServiceURLError struct{}

func (e *MissingServiceURLError) Error() string {
	return "safe transaction service URL not provided"
}

// MissingSafeAddressError is returned when no Safe address was configured.
type MissingSafeAddressError struct{}

func (e *MissingSafeAddressError) Error() string {
	return "gnosis safe address not provided"
}
