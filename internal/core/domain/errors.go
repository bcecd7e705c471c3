package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced in the API error envelope.
const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeBadRequest      = "BAD_REQUEST"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError is the tagged error variant used across the core: a wire code,
// an HTTP status, and a caller-safe message. Handlers and services classify
// failures into AppErrors; anything that reaches the error handler
// unclassified is rendered as a generic 500.
type AppError struct {
	Code    string
	Status  int
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As. The cause is for
// operational logs only and never reaches the client.
func (e *AppError) Unwrap() error { return e.cause }

// WithCause attaches an internal cause without changing the caller-visible
// code or message.
func (e *AppError) WithCause(err error) *AppError {
	clone := *e
	clone.cause = err
	return &clone
}

// Unauthorized builds a 401 error. The message must not reveal why the
// credential was rejected beyond what the caller already knows.
func Unauthorized(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return &AppError{Code: CodeUnauthorized, Status: http.StatusUnauthorized, Message: message}
}

// Forbidden builds a 403 error for a valid credential with insufficient
// privilege or verification state.
func Forbidden(message string) *AppError {
	if message == "" {
		message = "Insufficient permissions"
	}
	return &AppError{Code: CodeForbidden, Status: http.StatusForbidden, Message: message}
}

// BadRequest builds a 400 error for malformed input.
func BadRequest(message string) *AppError {
	if message == "" {
		message = "Bad request"
	}
	return &AppError{Code: CodeBadRequest, Status: http.StatusBadRequest, Message: message}
}

// Validation builds a 400 error carrying field-level validation detail.
func Validation(message string) *AppError {
	return &AppError{Code: CodeValidationError, Status: http.StatusBadRequest, Message: message}
}

// NotFound builds a 404 error.
func NotFound(message string) *AppError {
	if message == "" {
		message = "Resource not found"
	}
	return &AppError{Code: CodeNotFound, Status: http.StatusNotFound, Message: message}
}

// Conflict builds a 409 error.
func Conflict(message string) *AppError {
	if message == "" {
		message = "Conflict"
	}
	return &AppError{Code: CodeConflict, Status: http.StatusConflict, Message: message}
}

// Internal builds a 500 error with a generic message; the real cause is
// kept for logs via WithCause.
func Internal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		cause:   err,
	}
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var app *AppError
	if errors.As(err, &app) {
		return app, true
	}
	return nil, false
}

// Sentinel errors returned by repositories; services classify them into
// AppErrors before they reach the transport boundary.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrOrgNotFound     = errors.New("organization not found")
	ErrOrgExists       = errors.New("organization already exists")
)
