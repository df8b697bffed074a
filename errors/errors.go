package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the HTTP status that produced this error, if any.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// Unauthorized creates an AppError for a rejected credential.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Your session is no longer valid. Please sign in again."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// Forbidden creates an AppError for a missing capability.
func Forbidden(capability string) *AppError {
	return &AppError{
		Code: ErrCodeForbidden, Message: "You do not have permission to perform this action.",
		HTTPStatus: http.StatusForbidden, Retryable: false,
		Details: map[string]any{"capability": capability},
	}
}

// InvalidPayload creates an AppError for an identity record missing required fields.
func InvalidPayload(field string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidPayload, Message: "The server returned an incomplete identity record.",
		Retryable: false,
		Details:   map[string]any{"field": field},
	}
}

// CorruptState creates an AppError for undecodable persisted state.
func CorruptState(key string) *AppError {
	return &AppError{
		Code: ErrCodeCorruptState, Message: fmt.Sprintf("Stored %s data is corrupt and has been discarded.", key),
		Retryable: false,
		Details:   map[string]any{"key": key},
	}
}

// InvalidInput creates an AppError for invalid caller-supplied input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates an AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// ConnectionFailed creates an AppError for an unreachable API.
func ConnectionFailed() *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: "Unable to reach the server. Check your connection and try again.",
		Retryable: true,
	}
}

// Timeout creates an AppError for a request that took too long.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request took too long. Please try again.",
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"operation": operation},
	}
}

// ServerError creates an AppError for a 5xx response.
func ServerError(status int) *AppError {
	return &AppError{
		Code: ErrCodeServerError, Message: "The server encountered an error. Please try again later.",
		HTTPStatus: status, Retryable: true,
	}
}

// NotFound creates an AppError for a missing resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false,
		Details: map[string]any{"resource": resource},
	}
}

// Internal creates an AppError for an unexpected client-side failure.
func Internal(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred."
	}
	return &AppError{
		Code: ErrCodeInternal, Message: message,
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
	}
}

// --- Inspection helpers ---

// AsAppError extracts an *AppError from err, or nil.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsCode reports whether err is an *AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	appErr := AsAppError(err)
	return appErr != nil && appErr.Code == code
}

// IsRetryable reports whether err describes a transient failure.
func IsRetryable(err error) bool {
	appErr := AsAppError(err)
	return appErr != nil && appErr.Retryable
}

// IsAuthError reports whether err indicates the credential was rejected.
func IsAuthError(err error) bool {
	appErr := AsAppError(err)
	if appErr == nil {
		return false
	}
	switch appErr.Code {
	case ErrCodeUnauthorized, ErrCodeForbidden, ErrCodeTokenExpired, ErrCodeInvalidToken:
		return true
	}
	return false
}
