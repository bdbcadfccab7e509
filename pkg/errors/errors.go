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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Classification errors
	ErrUnknownIntermediate ErrorCode = "UNKNOWN_INTERMEDIATE"
	ErrArgTooLong          ErrorCode = "ARG_TOO_LONG"
	ErrRspLineTooLong      ErrorCode = "RSP_LINE_TOO_LONG"

	// Alias farm errors
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrAliasConflict ErrorCode = "ALIAS_CONFLICT"

	// FileSystem errors
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrFileWrite ErrorCode = "FILE_WRITE"

	// Process errors
	ErrLaunch ErrorCode = "LAUNCH"
)

// JackmanError represents a structured error with code and details
type JackmanError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *JackmanError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *JackmanError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *JackmanError) Is(target error) bool {
	var targetErr *JackmanError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new JackmanError with the given code and message
func New(code ErrorCode, message string) *JackmanError {
	return &JackmanError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new JackmanError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *JackmanError {
	return &JackmanError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a JackmanError
func Wrap(err error, code ErrorCode, message string) *JackmanError {
	if err == nil {
		return nil
	}
	return &JackmanError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *JackmanError {
	if err == nil {
		return nil
	}
	return &JackmanError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *JackmanError) WithDetail(key string, value interface{}) *JackmanError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var jerr *JackmanError
	if errors.As(err, &jerr) {
		return jerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a JackmanError
func GetErrorCode(err error) ErrorCode {
	var jerr *JackmanError
	if errors.As(err, &jerr) {
		return jerr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a JackmanError
func GetErrorDetails(err error) map[string]interface{} {
	var jerr *JackmanError
	if errors.As(err, &jerr) {
		return jerr.Details
	}
	return nil
}
