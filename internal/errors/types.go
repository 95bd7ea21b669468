// Package errors provides coded, structured errors for the boundaries of the
// overlay (settings, platform backends, command dispatch).
package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Settings errors
	ErrCodeSettingsNotFound ErrorCode = "SETTINGS_NOT_FOUND"
	ErrCodeSettingsInvalid  ErrorCode = "SETTINGS_INVALID"

	// Platform errors
	ErrCodePlatformUnsupported ErrorCode = "PLATFORM_UNSUPPORTED"
	ErrCodeWindowQueryFailed   ErrorCode = "WINDOW_QUERY_FAILED"

	// Command dispatch errors
	ErrCodeCommandFailed ErrorCode = "COMMAND_FAILED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// OverlayError represents a structured error with context
type OverlayError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *OverlayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *OverlayError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *OverlayError) WithDetail(key string, value interface{}) *OverlayError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *OverlayError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new OverlayError
func New(code ErrorCode, message string) *OverlayError {
	return &OverlayError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an OverlayError
func Wrap(err error, code ErrorCode, message string) *OverlayError {
	return &OverlayError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error, or anything it wraps, is an OverlayError with the given code
func Is(err error, code ErrorCode) bool {
	for err != nil {
		if oe, ok := err.(*OverlayError); ok && oe.Code == code {
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if oe, ok := err.(*OverlayError); ok {
		return oe.Code
	}
	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		return GetCode(unwrapper.Unwrap())
	}
	return ErrCodeInternal
}
