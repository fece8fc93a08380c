package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every service. Callers classify with
// errors.Is and map to HTTP status codes at the edge.
var (
	// ErrValidation - malformed input; no mutation has occurred
	ErrValidation = errors.New("validation failed")

	// ErrNotFound - unknown transaction/account/card id
	ErrNotFound = errors.New("not found")

	// ErrConflict - optimistic-concurrency failure after bounded retries,
	// or an operation blocked by existing references
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable - the persistence layer is unreachable
	ErrStoreUnavailable = errors.New("store unavailable")
)

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflictErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// StatusCodeFor maps a service error to its HTTP status code
func StatusCodeFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return 400
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrConflict):
		return 409
	case errors.Is(err, ErrStoreUnavailable):
		return 503
	default:
		return 500
	}
}
