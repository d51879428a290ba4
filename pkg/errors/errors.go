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

	// Grid construction errors
	ErrShape             ErrorCode = "SHAPE"
	ErrMissingValue      ErrorCode = "MISSING_VALUE"
	ErrBelowMinimumSize  ErrorCode = "BELOW_MINIMUM_SIZE"
	ErrUncomparableValue ErrorCode = "UNCOMPARABLE_VALUE"

	// Rule errors
	ErrMissingPredicate ErrorCode = "MISSING_PREDICATE"
	ErrDuplicateRule    ErrorCode = "DUPLICATE_RULE"

	// Pattern errors
	ErrPatternSyntax ErrorCode = "PATTERN_SYNTAX"

	// Generation errors
	ErrGenerationFailed ErrorCode = "GENERATION_FAILED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrFileWrite ErrorCode = "FILE_WRITE"
	ErrDirCreate ErrorCode = "DIR_CREATE"
)

// BongardError represents a structured error with code and details
type BongardError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BongardError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BongardError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BongardError) Is(target error) bool {
	var targetErr *BongardError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BongardError with the given code and message
func New(code ErrorCode, message string) *BongardError {
	return &BongardError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BongardError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BongardError {
	return &BongardError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BongardError
func Wrap(err error, code ErrorCode, message string) *BongardError {
	if err == nil {
		return nil
	}
	return &BongardError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BongardError {
	if err == nil {
		return nil
	}
	return &BongardError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BongardError) WithDetail(key string, value interface{}) *BongardError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *BongardError) WithDetails(details map[string]interface{}) *BongardError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var bErr *BongardError
	if errors.As(err, &bErr) {
		return bErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BongardError
func GetErrorCode(err error) ErrorCode {
	var bErr *BongardError
	if errors.As(err, &bErr) {
		return bErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BongardError
func GetErrorDetails(err error) map[string]interface{} {
	var bErr *BongardError
	if errors.As(err, &bErr) {
		return bErr.Details
	}
	return nil
}
