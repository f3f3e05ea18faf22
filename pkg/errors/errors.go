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
	ErrPermission   ErrorCode = "PERMISSION"

	// Project configuration errors
	ErrConfigMissing ErrorCode = "CONFIG_MISSING"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigValid   ErrorCode = "CONFIG_INVALID"

	// Cache errors
	ErrCacheCorrupt ErrorCode = "CACHE_CORRUPT"
	ErrCacheWrite   ErrorCode = "CACHE_WRITE"

	// Template errors
	ErrTemplateSource ErrorCode = "TEMPLATE_SOURCE"
	ErrTemplateRender ErrorCode = "TEMPLATE_RENDER"

	// Link errors
	ErrOrphanedLink ErrorCode = "ORPHANED_LINK"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileCreate    ErrorCode = "FILE_CREATE"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// CcaspError represents a structured error with code and details
type CcaspError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CcaspError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CcaspError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CcaspError) Is(target error) bool {
	var targetErr *CcaspError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CcaspError with the given code and message
func New(code ErrorCode, message string) *CcaspError {
	return &CcaspError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CcaspError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CcaspError {
	return &CcaspError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CcaspError
func Wrap(err error, code ErrorCode, message string) *CcaspError {
	if err == nil {
		return nil
	}
	return &CcaspError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CcaspError {
	if err == nil {
		return nil
	}
	return &CcaspError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CcaspError) WithDetail(key string, value interface{}) *CcaspError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var ccaspErr *CcaspError
	if errors.As(err, &ccaspErr) {
		return ccaspErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CcaspError
func GetErrorCode(err error) ErrorCode {
	var ccaspErr *CcaspError
	if errors.As(err, &ccaspErr) {
		return ccaspErr.Code
	}
	return ErrUnknown
}
