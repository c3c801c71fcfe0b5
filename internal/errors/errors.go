// Package errors provides the structured error types used across the
// FinLedger API. Service-layer code returns *AppError values so handlers
// can map outcomes to HTTP responses without leaking internal details.
package errors

import "net/http"

// AppError is an application error carrying a stable machine-readable
// code, a client-safe message, the HTTP status it maps to, and an
// optional internal cause that is logged but never serialized.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal cause for errors.Is/As chains.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap returns a copy of sentinel carrying internal as its cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage returns a copy of sentinel with a custom client message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Incorrect username or password", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Code: "INVALID_TOKEN", Message: "Invalid or expired token", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors. Duplicate registration maps to 400 rather than 409 to keep
// the wire behavior of the surface this API replaces.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "Username already registered", StatusCode: http.StatusBadRequest}
)

// Ledger entry errors.
var (
	ErrEntryNotFound = &AppError{Code: "ENTRY_NOT_FOUND", Message: "Record not found", StatusCode: http.StatusNotFound}
)

// Budget errors.
var (
	ErrDuplicateBudget = &AppError{Code: "BUDGET_EXISTS", Message: "A budget for this month already exists", StatusCode: http.StatusBadRequest}
)

// Admin errors.
var (
	ErrAdminDisabled   = &AppError{Code: "ADMIN_NOT_CONFIGURED", Message: "Administrative endpoints are not configured", StatusCode: http.StatusServiceUnavailable}
	ErrInvalidAdminKey = &AppError{Code: "INVALID_ADMIN_KEY", Message: "Invalid or missing admin key", StatusCode: http.StatusForbidden}
)
