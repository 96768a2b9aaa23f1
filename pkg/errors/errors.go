package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Selection errors
	ErrPattern       ErrorCode = "PATTERN"
	ErrPathEscape    ErrorCode = "PATH_ESCAPE"
	ErrStashNotFound ErrorCode = "STASH_NOT_FOUND"
	ErrAliasNotFound ErrorCode = "ALIAS_NOT_FOUND"
	ErrNoDirectory   ErrorCode = "NO_DIRECTORY"

	// Reconciliation errors
	ErrFilesystem ErrorCode = "FILESYSTEM"

	// State errors
	ErrStateLoad   ErrorCode = "STATE_LOAD"
	ErrStateSave   ErrorCode = "STATE_SAVE"
	ErrStateLocked ErrorCode = "STATE_LOCKED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// DasError represents a structured error with code and details
type DasError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DasError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DasError) Unwrap() error {
	return e.Wrapped
}

// Is matches any DasError carrying the same code
func (e *DasError) Is(target error) bool {
	var targetErr *DasError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DasError with the given code and message
func New(code ErrorCode, message string) *DasError {
	return &DasError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DasError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DasError {
	return &DasError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DasError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *DasError {
	if err == nil {
		return nil
	}
	return &DasError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DasError {
	if err == nil {
		return nil
	}
	return &DasError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DasError) WithDetail(key string, value interface{}) *DasError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dasErr *DasError
	if errors.As(err, &dasErr) {
		return dasErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DasError
func GetErrorCode(err error) ErrorCode {
	var dasErr *DasError
	if errors.As(err, &dasErr) {
		return dasErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DasError
func GetErrorDetails(err error) map[string]interface{} {
	var dasErr *DasError
	if errors.As(err, &dasErr) {
		return dasErr.Details
	}
	return nil
}
