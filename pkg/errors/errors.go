// Package errors provides structured error types for cardsheet.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Pre-flight failures carry the code of the check that raised them:
// DOES_NOT_FIT from the layout validator, EMPTY_FRONT_SET,
// INVALID_BACK_PATH and INSUFFICIENT_BACK_IMAGES from image resolution.
// Failures during a run are DECODE_ERROR (an image could not be read) or
// RENDER_ERROR (the output document could not be produced). Every one of
// them is terminal for the run.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDoesNotFit, "grid is %.1fmm wide", w)
//	if errors.Is(err, errors.ErrCodeDoesNotFit) {
//	    // Suggest smaller cards or fewer columns
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRender, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Geometry errors
	ErrCodeDoesNotFit      Code = "DOES_NOT_FIT"
	ErrCodeInvalidSettings Code = "INVALID_SETTINGS"

	// Image set errors
	ErrCodeEmptyFrontSet          Code = "EMPTY_FRONT_SET"
	ErrCodeInvalidBackPath        Code = "INVALID_BACK_PATH"
	ErrCodeInsufficientBackImages Code = "INSUFFICIENT_BACK_IMAGES"

	// Run errors
	ErrCodeDecode Code = "DECODE_ERROR"
	ErrCodeRender Code = "RENDER_ERROR"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeCanceled Code = "CANCELED"
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
// Only the outermost *Error in the chain is consulted.
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

// Coded reports whether err carries a code anywhere in its chain.
func Coded(err error) bool {
	return GetCode(err) != ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed
// by the cause when there is one.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
