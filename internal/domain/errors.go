package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrAlreadyCompleted = errors.New("already completed")
	ErrUnavailable      = errors.New("unavailable")
)

// Stable machine-readable error codes carried by domain errors.
// Callers branch on these (or on the sentinels via errors.Is); the
// human-readable message is for logs and API responses only.
const (
	CodeInvalidTitle     = "INVALID_TITLE"
	CodeTitleTooShort    = "TITLE_TOO_SHORT"
	CodeTitleTooLong     = "TITLE_TOO_LONG"
	CodeInvalidPriority  = "INVALID_PRIORITY"
	CodeAlreadyCompleted = "ALREADY_COMPLETED"
	CodeTodoNotFound     = "TODO_NOT_FOUND"
)

// Error is a domain error with a stable code and a human message.
// Unwrap yields the matching sentinel so errors.Is(err, ErrValidation)
// and friends keep working across layers.
type Error struct {
	Code    string
	Message string
	kind    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.kind
}

// NewValidationError creates an Error wrapping ErrValidation.
func NewValidationError(code, message string) *Error {
	return &Error{Code: code, Message: message, kind: ErrValidation}
}

// NewNotFoundError creates an Error wrapping ErrNotFound.
func NewNotFoundError(message string) *Error {
	return &Error{Code: CodeTodoNotFound, Message: message, kind: ErrNotFound}
}

// NewAlreadyCompletedError creates an Error wrapping ErrAlreadyCompleted.
// This signals an illegal state transition, not malformed input, so it is
// deliberately distinct from validation errors.
func NewAlreadyCompletedError(message string) *Error {
	return &Error{Code: CodeAlreadyCompleted, Message: message, kind: ErrAlreadyCompleted}
}
