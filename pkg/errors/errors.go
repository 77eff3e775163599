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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Settings errors
	ErrSettingsLoad ErrorCode = "SETTINGS_LOAD"

	// Macro substitution errors
	ErrTemplate ErrorCode = "TEMPLATE"

	// Changed file list errors
	ErrChangesLoad ErrorCode = "CHANGES_LOAD"

	// Action errors
	ErrActionInvalid ErrorCode = "ACTION_INVALID"
	ErrActionExecute ErrorCode = "ACTION_EXECUTE"

	// Report errors
	ErrReportWrite ErrorCode = "REPORT_WRITE"
)

// MoopadError represents a structured error with code and details
type MoopadError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MoopadError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MoopadError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MoopadError) Is(target error) bool {
	var targetErr *MoopadError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MoopadError with the given code and message
func New(code ErrorCode, message string) *MoopadError {
	return &MoopadError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MoopadError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MoopadError {
	return &MoopadError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MoopadError
func Wrap(err error, code ErrorCode, message string) *MoopadError {
	if err == nil {
		return nil
	}
	return &MoopadError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MoopadError {
	if err == nil {
		return nil
	}
	return &MoopadError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MoopadError) WithDetail(key string, value interface{}) *MoopadError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *MoopadError) WithDetails(details map[string]interface{}) *MoopadError {
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
	var moopadErr *MoopadError
	if errors.As(err, &moopadErr) {
		return moopadErr.Code == code
	}
	return false
}

// IsConfigError reports whether err belongs to the configuration error family.
func IsConfigError(err error) bool {
	switch GetErrorCode(err) {
	case ErrConfigLoad, ErrConfigParse, ErrConfigValid:
		return true
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MoopadError
func GetErrorCode(err error) ErrorCode {
	var moopadErr *MoopadError
	if errors.As(err, &moopadErr) {
		return moopadErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MoopadError
func GetErrorDetails(err error) map[string]interface{} {
	var moopadErr *MoopadError
	if errors.As(err, &moopadErr) {
		return moopadErr.Details
	}
	return nil
}
