// Package utils provides shared helpers for the sipcircle application.
package utils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorKind classifies a CustomError beyond its HTTP status code so callers
// can branch on the failure condition instead of matching message strings.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindSelfAction ErrorKind = "self_action"
	KindConflict   ErrorKind = "conflict"
	KindInternal   ErrorKind = "internal"
)

// Common error types for reuse.
var (
	ErrBadRequest          = NewError(fiber.StatusBadRequest, "Invalid request")
	ErrUnauthorized        = NewError(fiber.StatusUnauthorized, "Unauthorized")
	ErrForbidden           = NewError(fiber.StatusForbidden, "Forbidden")
	ErrNotFound            = NewError(fiber.StatusNotFound, "Resource not found")
	ErrConflict            = NewError(fiber.StatusConflict, "Conflict")
	ErrInternalServerError = NewError(fiber.StatusInternalServerError, "Internal server error")
)

// CustomError represents a structured error for the web app.
type CustomError struct {
	Code    int       `json:"code"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// NewError creates a new error with a status code, message, and optional details.
func NewError(code int, message string, details ...string) *CustomError {
	e := &CustomError{
		Code:    code,
		Kind:    KindInternal,
		Message: message,
	}
	switch code {
	case fiber.StatusBadRequest:
		e.Kind = KindValidation
	case fiber.StatusNotFound:
		e.Kind = KindNotFound
	case fiber.StatusConflict:
		e.Kind = KindConflict
	}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

// NewValidationError reports malformed or missing input.
func NewValidationError(message string) *CustomError {
	return &CustomError{Code: fiber.StatusBadRequest, Kind: KindValidation, Message: message}
}

// NewNotFoundError reports a referenced entity that does not exist.
func NewNotFoundError(message string) *CustomError {
	return &CustomError{Code: fiber.StatusNotFound, Kind: KindNotFound, Message: message}
}

// NewSelfActionError reports an actor targeting itself where disallowed.
func NewSelfActionError(message string) *CustomError {
	return &CustomError{Code: fiber.StatusBadRequest, Kind: KindSelfAction, Message: message}
}

// NewConflictError reports an operation that contradicts current state or
// would violate a uniqueness invariant.
func NewConflictError(message string) *CustomError {
	return &CustomError{Code: fiber.StatusConflict, Kind: KindConflict, Message: message}
}

// NewInternalError reports an unexpected persistence or system failure.
func NewInternalError(message string, details ...string) *CustomError {
	e := &CustomError{Code: fiber.StatusInternalServerError, Kind: KindInternal, Message: message}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

// WithCause attaches underlying details to the error.
func (e *CustomError) WithCause(err error) *CustomError {
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// IsKind reports whether err is a CustomError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *CustomError
	if !As(err, &appErr) {
		return false
	}
	return appErr.Kind == kind
}

// HandleError sends a standardized error response using GoFiber.
func HandleError(c *fiber.Ctx, err error) error {
	var appErr *CustomError

	if As(err, &appErr) {
		if appErr.Code >= 500 {
			appErr.Details = ""
		}
		return c.Status(appErr.Code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    appErr.Code,
				"kind":    appErr.Kind,
				"message": appErr.Message,
				"details": appErr.Details,
			},
		})
	}

	// Fallback for unhandled errors
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    fiber.StatusInternalServerError,
			"message": "Something went wrong",
		},
	})
}

// WrapError wraps an existing error with a custom status and message.
func WrapError(err error, code int, message string) *CustomError {
	return NewError(code, message, err.Error())
}

// As is a helper to unwrap errors (replacing errors.As for clarity in this package).
func As(err error, target interface{}) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(*CustomError); ok {
		if t, ok := target.(**CustomError); ok {
			*t = e
			return true
		}
	}
	return false
}
