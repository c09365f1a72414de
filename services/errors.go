package services

import (
	"errors"
	"net/http"
)

// Error kinds returned by the complaint services. Handlers map them to HTTP codes.
var (
	ErrUnauthenticated  = errors.New("user not logged in")
	ErrForbidden        = errors.New("user not admin")
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError carries the first rule a payload broke
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is(err, ErrValidationFailed) match
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// notFound wraps ErrNotFound with the name of the missing resource
func notFound(resource string) error {
	return &notFoundError{resource: resource}
}

type notFoundError struct {
	resource string
}

func (e *notFoundError) Error() string {
	return e.resource + " doesn't exist"
}

func (e *notFoundError) Unwrap() error {
	return ErrNotFound
}

// HTTPStatusFromError maps service errors to HTTP status codes
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidationFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
