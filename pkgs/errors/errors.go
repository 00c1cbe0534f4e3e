package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
)

// Error types for the categories of failure outside the scanning core.
// The scanner itself never fails; these cover everything around it.
const (
	// Input errors
	ErrInputRead    = "INPUT_READ_ERROR"
	ErrFileNotFound = "FILE_NOT_FOUND"

	// Configuration errors
	ErrConfig = "CONFIG_ERROR"

	// Output errors
	ErrOutput = "OUTPUT_ERROR"

	// Lookup errors
	ErrNotFound = "NOT_FOUND"
)

// Error is a structured error with a type, a message and optional context.
type Error struct {
	Type    string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows error unwrapping
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error
func New(errorType, message string) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Wrap creates a new Error wrapping an existing error
func Wrap(errorType, message string, cause error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	e.Context[key] = value
	return e
}

// GetContext returns context value by key
func (e *Error) GetContext(key string) (interface{}, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// NewInputError classifies a failure to open or read an input. A missing
// file gets its own type so the CLI can suggest a fix.
func NewInputError(path string, cause error) *Error {
	errorType := ErrInputRead
	message := fmt.Sprintf("cannot read input '%s'", path)
	if stderrors.Is(cause, fs.ErrNotExist) {
		errorType = ErrFileNotFound
		message = fmt.Sprintf("input file '%s' does not exist", path)
	}
	return Wrap(errorType, message, cause).WithContext("path", path)
}

// NewConfigError creates a configuration error
func NewConfigError(path string, cause error) *Error {
	return Wrap(ErrConfig, fmt.Sprintf("invalid configuration '%s'", path), cause).
		WithContext("path", path)
}

// NewOutputError creates an output encoding or write error
func NewOutputError(format string, cause error) *Error {
	return Wrap(ErrOutput, fmt.Sprintf("failed to write %s output", format), cause).
		WithContext("format", format)
}

// NewNotFoundError creates an identifier lookup miss
func NewNotFoundError(name string) *Error {
	return New(ErrNotFound, fmt.Sprintf("identifier '%s' not found", name)).
		WithContext("identifier", name)
}

// IsErrorType checks whether err, or any error it wraps, is an *Error of the
// given type.
func IsErrorType(err error, errorType string) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == errorType
	}
	return false
}

// TypeOf returns the type of the outermost *Error in err's chain, or "".
func TypeOf(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}
