package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing or invalid session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the request collides with the current state of a resource
// (slot already booked, capture already running, ...).
var ErrConflict = errors.New("conflict")

// ErrInsufficientBalance is returned when a guide asks for more than the available balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrInternal is a generic error for unexpected failures.
var ErrInternal = errors.New("internal error")

// ErrUpstream indicates a failure in an external collaborator such as the payment provider.
var ErrUpstream = errors.New("upstream failure")

// AppError carries an HTTP-ish code alongside the wrapped cause.
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

// NewAppError creates an AppError. Used mostly by the repository layer for database failures.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
