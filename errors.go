package sigcache

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	// ErrUnsupportedAlgorithm is returned when a signature algorithm
	// identifier is not in the registry.
	ErrUnsupportedAlgorithm = errors.New("unsupported signature algorithm")

	// ErrNotFound is returned when an artifact path does not exist.
	ErrNotFound = errors.New("artifact not found")

	// ErrStorageUnavailable is returned when the cache directory cannot be
	// created or an artifact cannot be persisted.
	ErrStorageUnavailable = errors.New("cache storage unavailable")

	// ErrMissingLogFile is returned by Open when file logging was requested
	// without a destination path.
	ErrMissingLogFile = errors.New("log file path required")
)

// ValidationError represents one or more configuration errors collected
// while applying options during Open.
type ValidationError struct {
	Errors []error
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "invalid cache configuration"
	}
	if len(ve.Errors) == 1 {
		return fmt.Sprintf("invalid cache configuration: %v", ve.Errors[0])
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("invalid cache configuration with %d errors:\n", len(ve.Errors)))
	for i, err := range ve.Errors {
		fmt.Fprintf(&buf, "  %d. %v\n", i+1, err)
	}
	return buf.String()
}

// Unwrap returns the underlying errors for use with errors.Is and errors.As.
func (ve *ValidationError) Unwrap() []error {
	return ve.Errors
}

// newValidationError creates a ValidationError from a slice of errors.
// Returns nil if the slice is empty.
func newValidationError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
