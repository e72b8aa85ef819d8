package common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation             = errors.New("validation failed")
	ErrUserExists             = errors.New("User already exists")
	ErrInvalidCredentials     = errors.New("Invalid credentials")
	ErrAuthenticationRequired = errors.New("Authentication required. Please login.")
	ErrInvalidToken           = errors.New("Invalid or expired token. Please login again.")
	ErrInsufficientPrivilege  = errors.New("Access denied. Administrator privileges required.")
	ErrNotFound               = errors.New("requested resource not found")
	ErrStorage                = errors.New("storage failure")
	ErrRateLimited            = errors.New("Too many requests. Please try again later.")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrUserExists),
		errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthenticationRequired), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInsufficientPrivilege):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the text safe to show a client for err. Storage
// and other unexpected failures collapse to a generic message.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserExists):
		return ErrUserExists.Error()
	case errors.Is(err, ErrInvalidCredentials):
		return ErrInvalidCredentials.Error()
	case errors.Is(err, ErrAuthenticationRequired):
		return ErrAuthenticationRequired.Error()
	case errors.Is(err, ErrInvalidToken):
		return ErrInvalidToken.Error()
	case errors.Is(err, ErrInsufficientPrivilege):
		return ErrInsufficientPrivilege.Error()
	case errors.Is(err, ErrRateLimited):
		return ErrRateLimited.Error()
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return err.Error()
	}
	return "Something went wrong"
}

// ValidationError wraps ErrValidation with a client-facing reason.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
