package errors

import (
	"errors"
	"fmt"
)

// Error codes as constants
const (
	// ErrCodeLoad marks malformed or unreadable template documents:
	// parse failures, unrecognized keys, duplicate keys, out-of-order
	// features, and empty attribute definitions.
	ErrCodeLoad = "LOAD_ERROR"

	// ErrCodeNotFound marks a lookup for a feature or attribute that
	// does not exist in the catalog.
	ErrCodeNotFound = "NOT_FOUND"

	// ErrCodeFieldUndefined marks access to a field that is not defined
	// on a resolved reference entry.
	ErrCodeFieldUndefined = "FIELD_UNDEFINED"

	// ErrCodeBadArguments marks an accessor invocation with the wrong
	// argument count or argument shape.
	ErrCodeBadArguments = "BAD_ARGUMENTS"

	// ErrCodeConstruction marks a constructor called with malformed
	// input, such as a non-mapping attribute spec.
	ErrCodeConstruction = "CONSTRUCTION_ERROR"

	// ErrCodeInternal marks invariant violations that should not occur.
	ErrCodeInternal = "INTERNAL_ERROR"
)

// StructuredError is an error carrying a machine-readable code alongside
// the human-readable message. Callers branch on the code with IsCode or
// errors.As rather than matching message text.
type StructuredError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *StructuredError) Unwrap() error {
	return e.Err
}

// New creates a StructuredError with the given code and message.
func New(code, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// Newf creates a StructuredError with a formatted message.
func Newf(code, format string, args ...any) *StructuredError {
	return &StructuredError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a StructuredError that wraps an underlying cause.
func Wrap(code string, err error, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message, Err: err}
}

// Wrapf creates a StructuredError wrapping a cause with a formatted message.
func Wrapf(code string, err error, format string, args ...any) *StructuredError {
	return &StructuredError{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the code from an error chain. Returns an empty string
// when no StructuredError is present in the chain.
func CodeOf(err error) string {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsCode reports whether the error chain contains a StructuredError with
// the given code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
