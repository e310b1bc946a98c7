package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/pledge/internal/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var secret = strings.Repeat("x", 32)

func TestTokens_IssueParse(t *testing.T) {
	tokens := auth.NewTokens(secret, "pledge", 15*time.Minute)
	userID, sessionID := uuid.New(), uuid.New()
	now := time.Now()

	token, expiresAt, err := tokens.Issue(userID, sessionID, now)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if !expiresAt.Equal(now.Add(15 * time.Minute)) {
		t.Errorf("expiresAt = %v", expiresAt)
	}

	p, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.UserID != userID || p.SessionID != sessionID {
		t.Errorf("Parse() = %+v", p)
	}
}

func TestTokens_ParseRejects(t *testing.T) {
	tokens := auth.NewTokens(secret, "pledge", 15*time.Minute)
	userID, sessionID := uuid.New(), uuid.New()

	issue := func(tk *auth.Tokens, at time.Time) string {
		t.Helper()
		token, _, err := tk.Issue(userID, sessionID, at)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		return token
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    "pledge",
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "pledge", Subject: userID.String()},
		SessionID:        sessionID.String(),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pledge",
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		SessionID: sessionID.String(),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"expired", issue(tokens, time.Now().Add(-time.Hour))},
		{"wrong secret", issue(auth.NewTokens(strings.Repeat("y", 32), "pledge", time.Minute), time.Now())},
		{"wrong issuer", issue(auth.NewTokens(secret, "other", time.Minute), time.Now())},
		{"alg none", unsigned},
		{"missing expiry", noExpiry},
		{"non uuid subject", badSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Parse(tt.token)
			if !errors.Is(err, auth.ErrInvalidToken) {
				t.Errorf("Parse() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
