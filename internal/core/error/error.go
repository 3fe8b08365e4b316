package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage is used when a Redis key does not exist.
	RedisNotFoundMessage = "redis key not found"
	// RedisTimeoutMessage is used when a Redis call runs past its deadline.
	RedisTimeoutMessage = "redis operation timed out"
	// InvalidInputMessage is returned when the request is rejected before the pipeline runs.
	InvalidInputMessage = "invalid input"
	// FixtureErrorMessage describes unreadable or malformed catalog/order fixtures.
	FixtureErrorMessage = "fixture data is invalid"
)

// ErrEmptyInput marks an empty or whitespace-only utterance.
var ErrEmptyInput = errors.New("empty message")

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Validation wraps a caller-visible input error (400).
func Validation(err error) *AppError {
	return New(err, http.StatusBadRequest, InvalidInputMessage)
}

// Internal wraps an unexpected failure (500). The message never carries
// details of err.
func Internal(err error) *AppError {
	return New(err, http.StatusInternalServerError, SystemErrorMessage)
}

// Fixture wraps a fixture loading failure.
func Fixture(err error) *AppError {
	return New(err, http.StatusInternalServerError, FixtureErrorMessage)
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not an AppError.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}
