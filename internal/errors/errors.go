package errors

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the error taxonomy. Validation failures fail fast
// before any mutation; storage failures are retryable from the caller's
// perspective. Realtime-path failures never become caller errors and are
// handled (logged) at the realtime boundary instead.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
)

// Validation creates a caller-visible input error.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound creates a caller-visible missing-entity error.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Storage wraps a repository/infra failure as retryable.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
