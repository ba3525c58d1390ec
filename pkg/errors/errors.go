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
	ErrIO           ErrorCode = "IO"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrEnvironment ErrorCode = "ENVIRONMENT"

	// Path and pairing errors
	ErrInvalidPath     ErrorCode = "INVALID_PATH"
	ErrDanglingSymlink ErrorCode = "DANGLING_SYMLINK"

	// Registry errors
	ErrAlreadyTracked ErrorCode = "ALREADY_TRACKED"
	ErrDuplicateEntry ErrorCode = "DUPLICATE_ENTRY"
	ErrNotTracked     ErrorCode = "NOT_TRACKED"
	ErrEntryNotFound  ErrorCode = "ENTRY_NOT_FOUND"
	ErrUnrelatedLink  ErrorCode = "UNRELATED_LINK"

	// Version control errors
	ErrVCS ErrorCode = "VCS"
)

// StashError represents a structured error with code and details
type StashError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *StashError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StashError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a StashError carrying the same code.
func (e *StashError) Is(target error) bool {
	var targetErr *StashError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new StashError with the given code and message
func New(code ErrorCode, message string) *StashError {
	return &StashError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new StashError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *StashError {
	return &StashError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a StashError
func Wrap(err error, code ErrorCode, message string) *StashError {
	if err == nil {
		return nil
	}
	return &StashError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *StashError {
	if err == nil {
		return nil
	}
	return &StashError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *StashError) WithDetail(key string, value interface{}) *StashError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *StashError) WithDetails(details map[string]interface{}) *StashError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code.
// The outermost StashError in the chain decides.
func IsErrorCode(err error, code ErrorCode) bool {
	var stashErr *StashError
	if errors.As(err, &stashErr) {
		return stashErr.Code == code
	}
	return false
}

// HasErrorCode checks every StashError in the chain, not just the outermost.
func HasErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var stashErr *StashError
		if !errors.As(err, &stashErr) {
			return false
		}
		if stashErr.Code == code {
			return true
		}
		err = stashErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a StashError
func GetErrorCode(err error) ErrorCode {
	var stashErr *StashError
	if errors.As(err, &stashErr) {
		return stashErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a StashError
func GetErrorDetails(err error) map[string]interface{} {
	var stashErr *StashError
	if errors.As(err, &stashErr) {
		return stashErr.Details
	}
	return nil
}
