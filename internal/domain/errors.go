package domain

import "errors"

// ErrDuplicateEmail is returned by the repository when the unique-email
// constraint is violated at save time. The pre-check in the usecase is only
// a latency optimization; this sentinel is the authoritative signal.
var ErrDuplicateEmail = errors.New("a candidate with this email already exists")

// ValidationError indicates that input failed a format, length or presence
// rule during entity or value-object construction.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}
