// Package errors provides structured error types for bwcolor.
//
// Every error that crosses a package boundary toward the CLI or the HTTP API
// carries a machine-readable [Code], so callers can decide between "fix your
// input" and "something broke" without string matching:
//
//   - INVALID_*: the request or its input tree is malformed
//   - DEGENERATE_TREE: the tree has no nodes
//   - INFEASIBLE_REQUEST: no legal coloring has the requested counts
//   - NOT_FOUND / FILE_NOT_FOUND: a referenced resource is missing
//   - CACHE_UNAVAILABLE: a cache backend could not be reached
//   - INTERNAL_ERROR: unexpected failure
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInfeasibleRequest, "MaxWhite(%d) = %d < %d", b, mw, w)
//	if errors.Is(err, errors.ErrCodeInfeasibleRequest) {
//	    // ask the user for fewer white nodes
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidTree, cause, "read %s", path)
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidTree      Code = "INVALID_TREE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidAlgorithm Code = "INVALID_ALGORITHM"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Problem errors
	ErrCodeDegenerateTree    Code = "DEGENERATE_TREE"
	ErrCodeInfeasibleRequest Code = "INFEASIBLE_REQUEST"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Infrastructure errors
	ErrCodeCacheUnavailable Code = "CACHE_UNAVAILABLE"
	ErrCodeTimeout          Code = "TIMEOUT"

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

// IsInputError reports whether err was caused by the caller's input rather
// than by the program or its environment.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidTree, ErrCodeInvalidFormat,
		ErrCodeInvalidAlgorithm, ErrCodeInvalidConfig,
		ErrCodeDegenerateTree, ErrCodeInfeasibleRequest:
		return true
	}
	return false
}
