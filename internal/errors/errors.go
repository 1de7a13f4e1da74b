// Package errors provides coded domain errors for the combat core.
package errors

import stderrors "errors"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an error that carries no domain code.
	CodeUnknown Code = "UNKNOWN"
	// CodeInvalidArgument marks validation failures: bad amounts, unknown slots or effect types.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeNotFound marks lookups that found nothing: empty slots, absent items or enemies.
	CodeNotFound Code = "NOT_FOUND"
	// CodeInvalidState marks actions the current state forbids, such as acting while defeated.
	CodeInvalidState Code = "INVALID_STATE"
	// CodeInterrupted marks an encounter aborted while waiting for player input.
	CodeInterrupted Code = "INTERRUPTED"
)

// Sentinels for errors.Is checks. Matching is by code only.
var (
	ErrInvalidArgument = New(CodeInvalidArgument, "invalid argument")
	ErrNotFound        = New(CodeNotFound, "not found")
	ErrInvalidState    = New(CodeInvalidState, "invalid state")
	ErrInterrupted     = New(CodeInterrupted, "interrupted")
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human-readable message
	Metadata map[string]string // Additional context (field names, item names)
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error carrying extra context.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first domain error in err's chain.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsActionRejection reports whether err is a local, non-fatal action failure
// that leaves state untouched and does not consume a turn.
func IsActionRejection(err error) bool {
	switch CodeOf(err) {
	case CodeInvalidArgument, CodeNotFound, CodeInvalidState:
		return true
	default:
		return false
	}
}
