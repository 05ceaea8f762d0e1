package errors

import (
	"net/http"

	"rentease/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches by business identity so detail-carrying copies from
// WithDetails still compare equal to their sentinel.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode && e.httpCode == t.httpCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
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
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	// ErrLoginUserNotFound mirrors ErrUserNotFound for the login flow, where
	// an unknown email is a bad request rather than a missing resource.
	ErrLoginUserNotFound = NewBaseError(
		http.StatusBadRequest,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrEmailAlreadyRegistered = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_ALREADY_REGISTERED",
		"Email already exists",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		"",
	)

	ErrMissingToken = NewBaseError(
		http.StatusUnauthorized,
		"MISSING_TOKEN",
		"No token provided",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired token",
		"",
	)

	// ErrUnknownSubject covers tokens whose signature verifies but whose
	// subject no longer exists in the store. Re-checking existence at
	// resolution time is the only revocation mechanism available without a
	// server-side token registry.
	ErrUnknownSubject = NewBaseError(
		http.StatusUnauthorized,
		"UNKNOWN_SUBJECT",
		"Account no longer exists",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	// Authorization-related errors
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You do not have permission to modify this listing",
		"",
	)

	ErrAdminRequired = NewBaseError(
		http.StatusForbidden,
		"ADMIN_REQUIRED",
		"Administrator role required",
		"",
	)

	// Listing-related errors
	ErrListingNotFound = NewBaseError(
		http.StatusNotFound,
		"LISTING_NOT_FOUND",
		"Post not found",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Media-related errors
	ErrNoImages = NewBaseError(
		http.StatusBadRequest,
		"NO_IMAGES",
		"At least one image is required",
		"",
	)

	ErrUnsupportedImageType = NewBaseError(
		http.StatusBadRequest,
		"UNSUPPORTED_IMAGE_TYPE",
		"Only images are allowed (jpeg, jpg, png)",
		"",
	)

	ErrImageTooLarge = NewBaseError(
		http.StatusBadRequest,
		"IMAGE_TOO_LARGE",
		"Image exceeds the maximum allowed size",
		"",
	)

	ErrTooManyImages = NewBaseError(
		http.StatusBadRequest,
		"TOO_MANY_IMAGES",
		"Too many images in one request",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
