// Package errors provides structured error types for the hostgraph engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine and CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes mirror the engine's error taxonomy:
//   - PRECONDITION_VIOLATION: operation refused, graph left unchanged (recoverable)
//   - OUT_OF_RANGE: an identity that was never issued (caller error)
//   - INVALID_*: input validation failures (labels, config, fixtures)
//   - RESOURCE_EXHAUSTED / EMPTY_RESTORE: fatal, routed through Fatalf
//
// # Usage
//
//	err := errors.New(errors.ErrCodePrecondition, "node %d has incident edges", id)
//	if errors.Is(err, errors.ErrCodePrecondition) {
//	    // Refused; the graph is unchanged.
//	}
package errors

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Recoverable engine conditions
	ErrCodePrecondition Code = "PRECONDITION_VIOLATION"
	ErrCodeOutOfRange   Code = "OUT_OF_RANGE"
	ErrCodeInvariant    Code = "INVARIANT_VIOLATION"

	// Input validation errors
	ErrCodeInvalidLabel  Code = "INVALID_LABEL"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeParse         Code = "PARSE_ERROR"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Fatal engine conditions (reported through Fatalf, never returned)
	ErrCodeResourceExhausted Code = "RESOURCE_EXHAUSTED"
	ErrCodeEmptyRestore      Code = "EMPTY_RESTORE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// FatalHandler receives formatted fatal diagnostics. The default logs the
// message and terminates the process. Tests may swap it to intercept fatal
// paths; production code must never rely on Fatalf returning.
var FatalHandler = func(msg string) {
	log.Fatal(msg)
}

// Fatalf reports an unrecoverable engine condition (exhausted arena, restore
// with an empty snapshot stack). The engine offers no dynamic-growth fallback
// and no partial-state continuation, so under the default handler Fatalf does
// not return.
func Fatalf(code Code, format string, args ...any) {
	FatalHandler(fmt.Sprintf("%s: %s", code, fmt.Sprintf(format, args...)))
}
