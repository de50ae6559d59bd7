// Package errors provides structured error types for GeoQuick.
//
// Every recoverable condition the style engine reports to a user carries a
// machine-readable [Code] and a human-readable message. Callers use the code
// to decide whether to show a warning and keep the previous state (input
// validation) or to abort the command (I/O, network).
//
// # Error Codes
//
//   - INVALID_*: input validation failures (bin edges, style documents, filters)
//   - *_NOT_FOUND: missing files or columns
//   - NETWORK_ERROR: remote dataset fetch failures
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidBinEdges, "need at least two edges, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidBinEdges) {
//	    // warn and skip binning
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidStyleDocument, jsonErr, "decode style")
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
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidBinEdges      Code = "INVALID_BIN_EDGES"
	ErrCodeInvalidBinCount      Code = "INVALID_BIN_COUNT"
	ErrCodeNotNumeric           Code = "NOT_NUMERIC"
	ErrCodeInvalidStyleDocument Code = "INVALID_STYLE_DOCUMENT"
	ErrCodeInvalidStyle         Code = "INVALID_STYLE"
	ErrCodeInvalidFilter        Code = "INVALID_FILTER"
	ErrCodeInvalidFormat        Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig        Code = "INVALID_CONFIG"
	ErrCodeInvalidColumn        Code = "INVALID_COLUMN"

	// Resource not found errors
	ErrCodeColumnNotFound Code = "COLUMN_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

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

// IsValidation reports whether err is an input validation failure.
// Validation failures are shown to the user as warnings; the operation that
// produced them is abandoned and previously built state stays in place.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidBinEdges, ErrCodeInvalidBinCount,
		ErrCodeNotNumeric, ErrCodeInvalidStyleDocument, ErrCodeInvalidStyle,
		ErrCodeInvalidFilter, ErrCodeInvalidColumn:
		return true
	}
	return false
}
