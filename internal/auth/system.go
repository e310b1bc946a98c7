// Package auth implements phone number sign-in. A verification code is
// sent to the phone, exchanged for a session, and the session's refresh
// token is rotated to mint short-lived access tokens.
package auth

import (
	"context"
	"time"

	"github.com/JaimeStill/pledge/internal/users"
	"github.com/JaimeStill/pledge/pkg/identity"
	"github.com/google/uuid"
)

// CodeCommand requests a verification code.
type CodeCommand struct {
	Phone string `json:"phone" validate:"required,e164"`
}

// VerifyCommand exchanges a verification code for a session. Name is
// used only when the phone number has no account yet.
type VerifyCommand struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
	Name  string `json:"name" validate:"max=100"`
}

// RefreshCommand carries a refresh token for rotation or revocation.
type RefreshCommand struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CodeIssued reports a pending verification. DevCode is only populated
// when a fixed development code is configured.
type CodeIssued struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
	DevCode   string    `json:"dev_code,omitempty"`
}

// TokenResponse is returned by successful verification and refresh.
type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresAt    time.Time   `json:"expires_at"`
	User         *users.User `json:"user"`
}

// System defines the interface for authentication.
type System interface {
	// RequestCode issues a verification code for the phone number,
	// replacing any pending one.
	RequestCode(ctx context.Context, cmd CodeCommand) (*CodeIssued, error)

	// Verify checks a pending code, creates the user on first sign-in,
	// and opens a session.
	Verify(ctx context.Context, cmd VerifyCommand) (*TokenResponse, error)

	// Refresh rotates the refresh token and mints a new access token.
	Refresh(ctx context.Context, cmd RefreshCommand) (*TokenResponse, error)

	// Logout revokes the session owning the refresh token.
	Logout(ctx context.Context, cmd RefreshCommand) error

	// Authenticate verifies an access token.
	Authenticate(token string) (identity.Principal, error)
}

// Store persists verification codes and sessions.
type Store interface {
	SaveCode(ctx context.Context, phone, hash string, expiresAt time.Time) error
	FindCode(ctx context.Context, phone string) (*Code, error)
	ClaimAttempt(ctx context.Context, phone string, maxAttempts int) (*Code, error)
	ConsumeCode(ctx context.Context, phone, hash string) error
	DeleteCode(ctx context.Context, phone string) error

	CreateSession(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*Session, error)
	FindSession(ctx context.Context, tokenHash string) (*Session, error)
	RotateSession(ctx context.Context, id uuid.UUID, oldHash, newHash string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
