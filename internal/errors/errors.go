package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeConfiguration indicates the service is misconfigured (missing
	// provider URL/key, bad claim path). Fatal and loud; never a per-user error.
	ErrCodeConfiguration ErrorCode = "configuration"
	// ErrCodeUnauthenticated indicates no usable session (absent, invalid,
	// expired, or refresh failed).
	ErrCodeUnauthenticated ErrorCode = "unauthenticated"
	// ErrCodeMissingTenant indicates a verified identity with no derivable
	// tenant. Points at a provisioning bug upstream of this service.
	ErrCodeMissingTenant ErrorCode = "missing_tenant"
	// ErrCodeProviderTransient indicates a network/timeout failure talking to
	// the identity provider. Treated as unauthenticated by callers but logged
	// distinctly for incident triage.
	ErrCodeProviderTransient ErrorCode = "provider_transient"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message,
// and optional cause. It supports error wrapping and unwrapping for use with
// errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Step names the pipeline step that produced the error (optional,
	// e.g. "validate", "refresh")
	Step string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Configuration creates a new Configuration error.
func Configuration(message string) *AppError {
	return &AppError{Code: ErrCodeConfiguration, Message: message}
}

// Configurationf creates a new Configuration error with formatted message.
func Configurationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeConfiguration, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticated creates a new Unauthenticated error wrapping cause.
func Unauthenticated(step string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthenticated,
		Message: "not authenticated",
		Cause:   cause,
		Step:    step,
	}
}

// MissingTenant creates a new MissingTenant error.
func MissingTenant(message string) *AppError {
	return &AppError{Code: ErrCodeMissingTenant, Message: message}
}

// ProviderTransient creates a new ProviderTransient error wrapping cause.
func ProviderTransient(step string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeProviderTransient,
		Message: "identity provider unavailable",
		Cause:   cause,
		Step:    step,
	}
}

// Internal creates a new Internal error wrapping cause.
func Internal(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message, Cause: cause}
}

// CodeOf extracts the ErrorCode from err, walking the wrap chain.
// Unrecognized errors map to ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err (or anything it wraps) carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// StepOf extracts the pipeline step from err, or "" when absent.
func StepOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Step
	}
	return ""
}
