package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
// Authorization denials on a specific resource are also reported as this
// error so that callers cannot probe for resource existence.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrTokenExpired indicates an access token that verified correctly but is past
// its expiry. It is kept distinct from ErrUnauthorized so callers can decide
// whether a refresh attempt is worthwhile.
var ErrTokenExpired = errors.New("token expired")

// ErrRefreshTokenExpired indicates the refresh token itself is past its expiry,
// which means the caller must re-authenticate.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrForbidden indicates a valid identity with insufficient rights.
var ErrForbidden = errors.New("forbidden")

// AppError carries an HTTP-mappable code alongside a message and an optional
// wrapped cause. Repositories use it for infrastructure failures.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
