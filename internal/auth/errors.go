package auth

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/pledge/pkg/decode"
)

var (
	// ErrInvalidPhone indicates the phone number is not in E.164 form.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidCode indicates no pending code matches the submitted one.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrCodeExpired indicates the pending code outlived its TTL.
	ErrCodeExpired = errors.New("verification code expired")

	// ErrTooManyAttempts indicates the pending code is locked after repeated failures.
	ErrTooManyAttempts = errors.New("too many verification attempts")

	// ErrInvalidToken indicates an access or refresh token was rejected.
	ErrInvalidToken = errors.New("invalid token")

	// ErrSessionNotFound indicates the refresh token names no open session.
	ErrSessionNotFound = errors.New("session not found")

	errCodeNotFound = errors.New("verification code not found")
)

// MapHTTPStatus maps auth domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidPhone), errors.Is(err, decode.ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCode),
		errors.Is(err, ErrCodeExpired),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
