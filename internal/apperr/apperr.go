// Package apperr defines the error kinds the service layer reports and the
// transport layer translates into responses. Stores and services return the
// most specific kind and never swallow an error.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced task or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the actor lacks permission for an existing resource.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated means no valid actor could be resolved.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrConflict means a uniqueness constraint would be violated.
	ErrConflict = errors.New("conflict")
)

// ValidationError reports malformed input: an unknown enum value, an empty
// required field, and so on. The message is safe to show to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
