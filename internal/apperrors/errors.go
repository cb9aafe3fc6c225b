// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// ErrorType classifies application errors for the HTTP layer.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeStore        ErrorType = "store_error"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
)

// AppError carries an error type, an operator-facing message and the wrapped
// cause. Code is the machine-readable form used in API responses.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Code    string
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

// New creates an AppError of the given type.
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     cause,
		Code:    codeFor(errType),
	}
}

// NewValidationError reports rejected input. Never logged, per policy:
// validation failures are reported inline to the caller only.
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message, nil)
}

// NewNotFoundError reports a missing record or draft.
func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message, nil)
}

// NewStoreError wraps a failure from the record store.
func NewStoreError(message string, cause error) *AppError {
	return New(ErrorTypeStore, message, cause)
}

// NewUnauthorizedError reports a failed or missing authentication. The
// message is deliberately generic; empty input and mismatch read the same.
func NewUnauthorizedError(message string) *AppError {
	return New(ErrorTypeUnauthorized, message, nil)
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeValidation
	}
	return false
}

// IsNotFoundError reports whether err is a not-found error.
func IsNotFoundError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeNotFound
	}
	return false
}

// IsUnauthorizedError reports whether err is an authentication error.
func IsUnauthorizedError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeUnauthorized
	}
	return false
}

// IsStoreError reports whether err came from the record store.
func IsStoreError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeStore
	}
	return false
}

func codeFor(errType ErrorType) string {
	switch errType {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND"
	case ErrorTypeStore:
		return "STORE_ERROR"
	case ErrorTypeUnauthorized:
		return "UNAUTHORIZED"
	default:
		return "INTERNAL_ERROR"
	}
}
