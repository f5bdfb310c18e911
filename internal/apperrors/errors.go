package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
// A resource outside the caller's access scope also surfaces as ErrNotFound,
// never as ErrForbidden, so that callers cannot infer existence.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is authenticated but lacks the role or
// ownership required for the attempted operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrUnauthorized indicates a missing, malformed or rejected credential.
var ErrUnauthorized = errors.New("unauthorized")

// AppError carries an HTTP-ish status code and a human readable message
// alongside the underlying error. errors.Is matching against the sentinel
// errors above works through Unwrap.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps an arbitrary error with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationFailedError creates an AppError that matches ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewConflictError creates an AppError that matches ErrDuplicate.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrDuplicate}
}

// NewForbiddenError creates an AppError that matches ErrForbidden.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: 403, Message: message, Err: ErrForbidden}
}

// NewUnauthorizedError creates an AppError that matches ErrUnauthorized.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: 401, Message: message, Err: ErrUnauthorized}
}
