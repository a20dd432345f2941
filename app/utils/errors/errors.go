package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents specific error types
type ErrorCode string

const (
	// Authentication outcomes
	ErrCodeNoCredential      ErrorCode = "NO_CREDENTIAL"
	ErrCodeInvalidCredential ErrorCode = "INVALID_CREDENTIAL"
	ErrCodeProviderDegraded  ErrorCode = "PROVIDER_DEGRADED"

	// Persistence and resolution outcomes
	ErrCodePersistenceUnavailable ErrorCode = "PERSISTENCE_UNAVAILABLE"
	ErrCodeResolutionFailed       ErrorCode = "RESOLUTION_FAILED"

	// Validation errors
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingField     ErrorCode = "MISSING_FIELD"

	// Generic errors
	ErrCodeBadRequest        ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error with additional context
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
	Cause      error                  `json:"-"`
	Context    map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy of the error with a cause attached
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// WithDetails returns a copy of the error with details attached
func (e *AppError) WithDetails(details string) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithContext returns a copy of the error with a context value attached
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	clone := *e
	clone.Context = make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		clone.Context[k] = v
	}
	clone.Context[key] = value
	return &clone
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: httpStatusFor(code),
	}
}

// Newf creates a new AppError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with AppError
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: httpStatusFor(code),
		Cause:      cause,
	}
}

// AsAppError converts an error to AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// GetHTTPStatusCode gets the HTTP status code for an error
func GetHTTPStatusCode(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsAuthFailure reports whether an error is a routine authentication
// failure. Auth failures never escalate to server errors.
func IsAuthFailure(err error) bool {
	switch GetErrorCode(err) {
	case ErrCodeNoCredential, ErrCodeInvalidCredential:
		return true
	}
	return false
}

// httpStatusFor maps error codes to HTTP status codes
func httpStatusFor(code ErrorCode) int {
	switch code {
	case ErrCodeNoCredential, ErrCodeInvalidCredential, ErrCodeProviderDegraded:
		return http.StatusUnauthorized
	case ErrCodePersistenceUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeValidationFailed, ErrCodeMissingField, ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrCodeResolutionFailed, ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Predefined common errors

var (
	ErrNoCredential           = New(ErrCodeNoCredential, "no authentication token provided")
	ErrInvalidCredential      = New(ErrCodeInvalidCredential, "invalid or expired authentication token")
	ErrProviderDegraded       = New(ErrCodeProviderDegraded, "identity provider unavailable")
	ErrPersistenceUnavailable = New(ErrCodePersistenceUnavailable, "user store unavailable")
	ErrResolutionFailed       = New(ErrCodeResolutionFailed, "failed to resolve user record")
	ErrValidationFailed       = New(ErrCodeValidationFailed, "validation failed")
	ErrBadRequest             = New(ErrCodeBadRequest, "bad request")
	ErrNotFound               = New(ErrCodeNotFound, "resource not found")
	ErrInternalError          = New(ErrCodeInternalError, "internal server error")
)

// NewResolutionError wraps an unexpected lookup/create/update failure
func NewResolutionError(cause error) *AppError {
	return Wrap(ErrCodeResolutionFailed, "failed to resolve user record", cause)
}

// NewValidationError creates a validation error with details
func NewValidationError(details string) *AppError {
	return New(ErrCodeValidationFailed, "validation failed").WithDetails(details)
}
