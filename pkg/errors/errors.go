// Package errors provides structured error types for the sketchpad application.
//
// The editor core itself never fails: undo and redo on empty history are
// no-ops and odd tool symbols simply render as nothing. Errors only arise at
// the boundary, when a host asks for something the core cannot do (an export
// with a zero-sized target, an unknown tool name, a malformed config file or
// replay script). Those failures carry a machine-readable [Code] so the CLI
// and HTTP hosts can react to them without parsing messages.
//
// # Error Codes
//
//   - INVALID_*: input validation failures (sizes, formats, config, scripts)
//   - *_NOT_FOUND: unknown tools or sessions
//   - LIMIT_EXCEEDED: a host refused to allocate more sessions
//   - EXPORT_FAILED: surface creation or encoding failures
//   - INTERNAL_ERROR / UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeToolNotFound, "no tool named %q", name)
//	if errors.Is(err, errors.ErrCodeToolNotFound) {
//	    // offer the tool list instead
//	}
//
//	err := errors.Wrap(errors.ErrCodeExportFailed, encErr, "encode png")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidSize   Code = "INVALID_SIZE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidScript Code = "INVALID_SCRIPT"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeToolNotFound    Code = "TOOL_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// Capacity errors
	ErrCodeLimitExceeded Code = "LIMIT_EXCEEDED"

	// Output errors
	ErrCodeExportFailed Code = "EXPORT_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
