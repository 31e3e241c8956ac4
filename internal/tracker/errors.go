package tracker

import (
	"errors"
	"fmt"
)

// Sentinel errors for mutation failures. Callers match with errors.Is.
var (
	// ErrNotFound is returned when an operation targets an unknown id or name.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned on a case-insensitive exercise name collision.
	ErrDuplicate = errors.New("duplicate exercise name")
)

// ValidationError describes malformed input to a mutation. The in-memory
// state is untouched when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
