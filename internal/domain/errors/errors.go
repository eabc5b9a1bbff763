// Package errors defines the application error taxonomy: validation (400),
// authentication (401), authorization (403), not-found (404), conflict (409)
// and infrastructure (500) failures, each carrying its HTTP mapping.
package errors

import (
	"net/http"

	"lamsa/internal/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying detailed information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User and auth errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"This username is already registered",
		"",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"This email is already registered",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect username or password",
		"",
	)

	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Authentication required",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Invalid or expired refresh token",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	// Marketplace errors
	ErrSalonNotFound = NewBaseError(
		http.StatusNotFound,
		"SALON_NOT_FOUND",
		"Salon not found",
		"",
	)

	ErrServiceNotFound = NewBaseError(
		http.StatusNotFound,
		"SERVICE_NOT_FOUND",
		"Service not found",
		"",
	)

	ErrBookingNotFound = NewBaseError(
		http.StatusNotFound,
		"BOOKING_NOT_FOUND",
		"Booking not found",
		"",
	)

	ErrPromotionNotFound = NewBaseError(
		http.StatusNotFound,
		"PROMOTION_NOT_FOUND",
		"Promotion not found",
		"",
	)

	ErrInvalidTransition = NewBaseError(
		http.StatusForbidden,
		"INVALID_TRANSITION",
		"This booking status change is not allowed",
		"",
	)

	ErrNotSalonOwner = NewBaseError(
		http.StatusForbidden,
		"NOT_SALON_OWNER",
		"Only the salon owner may perform this action",
		"",
	)

	ErrOwnershipViolation = NewBaseError(
		http.StatusForbidden,
		"OWNERSHIP_VIOLATION",
		"You do not have permission to access this resource",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a storage execution error, implementing
// the AppError interface.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a storage-related error.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface.
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "storage execution failed").Error()
}

// HTTPCode returns the HTTP status code.
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code.
func (e *DatabaseExecuteError) ErrorCode() string {
	return "STORAGE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message.
func (e *DatabaseExecuteError) Message() string {
	return "Storage execution failed"
}

// Details returns detailed error information.
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Unwrap exposes the wrapped infrastructure error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}
