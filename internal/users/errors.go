package users

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/pledge/pkg/decode"
)

var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicate indicates a user with the same phone number already exists.
	ErrDuplicate = errors.New("phone number already registered")

	// ErrForbidden indicates the caller may not modify the target user.
	ErrForbidden = errors.New("operation not permitted")

	// ErrUnauthenticated indicates the request carries no principal.
	ErrUnauthenticated = errors.New("authentication required")
)

// MapHTTPStatus maps users domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, decode.ErrInvalidBody):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
