// Package apperror defines the application's error taxonomy. Every domain
// failure is raised as a single typed error value carrying a status code and
// a caller-facing message; the handler layer is the only place that turns
// these values into HTTP responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// BadRequestError represents invalid or conflicting caller input.
	BadRequestError
	// AuthError represents an authentication failure (missing/invalid token,
	// bad credentials).
	AuthError
	// ForbiddenError represents an authenticated but unpermitted action.
	ForbiddenError
	// NotFoundError represents a referenced entity that does not exist.
	NotFoundError
	// ConflictError represents a resource that already exists.
	ConflictError
	// DatabaseError represents an error originating from the database.
	DatabaseError
	// ConfigError represents an error in application configuration.
	ConfigError
	// MigrationError represents an error during database migrations.
	MigrationError
	// InternalError represents an unexpected server-side error.
	InternalError
)

// AppError is the application's error value. Message is safe to show to the
// caller; Err holds the underlying cause for server-side logs only.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error type to an HTTP status code.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case BadRequestError:
		return http.StatusBadRequest
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ConflictError:
		return http.StatusConflict
	case DatabaseError, ConfigError, MigrationError, InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates an AppError of an arbitrary type.
func NewAppError(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{Type: errType, Message: message, Err: underlying}
}

// NewBadRequestError creates a BadRequestError.
func NewBadRequestError(message string, underlying error) *AppError {
	return NewAppError(BadRequestError, message, underlying)
}

// NewAuthError creates an AuthError.
func NewAuthError(message string, underlying error) *AppError {
	return NewAppError(AuthError, message, underlying)
}

// NewForbiddenError creates a ForbiddenError.
func NewForbiddenError(message string, underlying error) *AppError {
	return NewAppError(ForbiddenError, message, underlying)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(message string, underlying error) *AppError {
	return NewAppError(NotFoundError, message, underlying)
}

// NewConflictError creates a ConflictError.
func NewConflictError(message string, underlying error) *AppError {
	return NewAppError(ConflictError, message, underlying)
}

// NewDatabaseError creates a DatabaseError.
func NewDatabaseError(message string, underlying error) *AppError {
	return NewAppError(DatabaseError, message, underlying)
}

// NewConfigError creates a ConfigError.
func NewConfigError(message string, underlying error) *AppError {
	return NewAppError(ConfigError, message, underlying)
}

// NewMigrationError creates a MigrationError.
func NewMigrationError(message string, underlying error) *AppError {
	return NewAppError(MigrationError, message, underlying)
}

// NewInternalError creates an InternalError.
func NewInternalError(message string, underlying error) *AppError {
	return NewAppError(InternalError, message, underlying)
}

// ErrorResponse is the uniform JSON error envelope.
type ErrorResponse struct {
	Message string `json:"message" example:"a description of the error"`
}

// ToResponse converts the error to its caller-facing envelope. Only Message
// is exposed; the underlying error never leaves the server.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Message: e.Message}
}

// FromError attempts to interpret err as an *AppError anywhere in its chain.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError reports whether err is an AuthError.
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsForbidden reports whether err is a ForbiddenError.
func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ForbiddenError
}

// IsBadRequest reports whether err is a BadRequestError.
func IsBadRequest(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == BadRequestError
}
