package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// requestError pairs a stable error class (one of the sentinels above) with a
// human-readable message. errors.Is against the sentinel still works via Unwrap.
type requestError struct {
	kind error
	msg  string
}

func (e *requestError) Error() string { return e.msg }
func (e *requestError) Unwrap() error { return e.kind }

// NewNotFoundError returns an error that matches ErrNotFound with the given message.
func NewNotFoundError(msg string) error {
	return &requestError{kind: ErrNotFound, msg: msg}
}

// NewValidationError returns an error that matches ErrInvalidInput with the given message.
func NewValidationError(msg string) error {
	return &requestError{kind: ErrInvalidInput, msg: msg}
}
