package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a concurrent modification or an isolation-level abort.
// Callers may retry the whole operation.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrUnauthorized indicates that no valid actor identity was supplied.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal is a generic failure of the persistence layer or another dependency.
var ErrInternal = errors.New("internal error")

// ErrConfiguration indicates the ledger was not set up correctly (e.g. a required
// account code is missing from the chart of accounts). Not retryable.
var ErrConfiguration = errors.New("ledger configuration error")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
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

// Is lets errors.Is match an AppError against the sentinel implied by its code
// when the wrapped cause does not already match.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrValidation:
		return e.Code == http.StatusBadRequest
	case ErrConflict:
		return e.Code == http.StatusConflict
	case ErrInternal:
		return e.Code == http.StatusInternalServerError
	}
	return false
}

// NewNotFoundError creates a 404 AppError.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}
