// Package errors provides custom error types for the captable API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Project errors.
var (
	ErrProjectNotFound = &AppError{Code: "PROJECT_NOT_FOUND", Message: "Project not found", StatusCode: http.StatusNotFound}
)

// Investor errors.
var (
	ErrInvestorNotFound = &AppError{Code: "INVESTOR_NOT_FOUND", Message: "Investor not found", StatusCode: http.StatusNotFound}
)

// Subscription errors.
var (
	ErrSubscriptionNotFound = &AppError{Code: "SUBSCRIPTION_NOT_FOUND", Message: "Subscription not found", StatusCode: http.StatusNotFound}
)

// Token errors.
var (
	ErrTokenNotFound    = &AppError{Code: "TOKEN_NOT_FOUND", Message: "Token not found", StatusCode: http.StatusNotFound}
	ErrInvalidTokenType = &AppError{Code: "INVALID_TOKEN_TYPE", Message: "Token type label is malformed", StatusCode: http.StatusBadRequest}
)

// Allocation lifecycle errors. The allocation state machine is
// unconfirmed -> confirmed -> minted -> distributed; transitions that
// skip a state or move backwards past an issued token are rejected.
var (
	ErrAllocationNotFound           = &AppError{Code: "ALLOCATION_NOT_FOUND", Message: "Allocation not found", StatusCode: http.StatusNotFound}
	ErrAllocationNotConfirmed       = &AppError{Code: "ALLOCATION_NOT_CONFIRMED", Message: "Allocation has not been confirmed", StatusCode: http.StatusConflict}
	ErrAllocationAlreadyMinted      = &AppError{Code: "ALLOCATION_ALREADY_MINTED", Message: "Allocation has already been minted", StatusCode: http.StatusConflict}
	ErrAllocationNotMinted          = &AppError{Code: "ALLOCATION_NOT_MINTED", Message: "Allocation has not been minted", StatusCode: http.StatusConflict}
	ErrAllocationAlreadyDistributed = &AppError{Code: "ALLOCATION_ALREADY_DISTRIBUTED", Message: "Allocation has already been distributed", StatusCode: http.StatusConflict}
	ErrInvalidStatus                = &AppError{Code: "INVALID_STATUS", Message: "Unsupported status value", StatusCode: http.StatusBadRequest}
	ErrStaleVersion                 = &AppError{Code: "STALE_VERSION", Message: "Allocation was modified by another session", StatusCode: http.StatusConflict}
)
