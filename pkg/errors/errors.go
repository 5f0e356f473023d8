// Package errors provides structured error types for the bulletins service.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, API and client
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - NETWORK_*, STORAGE_*: Infrastructure failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidStyle, "unknown style property %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidStyle) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "failed to load %s", id)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidStyle     Code = "INVALID_STYLE"
	ErrCodeInvalidFieldType Code = "INVALID_FIELD_TYPE"
	ErrCodeInvalidDocument  Code = "INVALID_DOCUMENT"
	ErrCodeInvalidKind      Code = "INVALID_KIND"
	ErrCodeInvalidStep      Code = "INVALID_STEP"

	// Resource not found errors
	ErrCodeNotFound          Code = "NOT_FOUND"
	ErrCodeDocumentNotFound  Code = "DOCUMENT_NOT_FOUND"
	ErrCodeVersionNotFound   Code = "VERSION_NOT_FOUND"
	ErrCodeDraftNotFound     Code = "DRAFT_NOT_FOUND"
	ErrCodeFieldNotFound     Code = "FIELD_NOT_FOUND"
	ErrCodeContainerNotFound Code = "CONTAINER_NOT_FOUND"

	// State errors
	ErrCodeConflict Code = "CONFLICT"

	// Infrastructure errors
	ErrCodeStorage Code = "STORAGE_ERROR"
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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

// IsNotFound reports whether err carries any of the *_NOT_FOUND codes.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeDocumentNotFound, ErrCodeVersionNotFound,
		ErrCodeDraftNotFound, ErrCodeFieldNotFound, ErrCodeContainerNotFound:
		return true
	}
	return false
}

// HTTPStatus maps an error code to the HTTP status the API responds with.
// Unknown or empty codes map to 500.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidStyle, ErrCodeInvalidFieldType,
		ErrCodeInvalidDocument, ErrCodeInvalidKind:
		return http.StatusBadRequest
	case ErrCodeInvalidStep:
		return http.StatusUnprocessableEntity
	case ErrCodeNotFound, ErrCodeDocumentNotFound, ErrCodeVersionNotFound,
		ErrCodeDraftNotFound, ErrCodeFieldNotFound, ErrCodeContainerNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeNetwork:
		return http.StatusBadGateway
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
