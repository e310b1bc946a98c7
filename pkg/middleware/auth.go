package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/pledge/pkg/handlers"
	"github.com/JaimeStill/pledge/pkg/identity"
)

// ErrMissingBearer indicates the request has no bearer Authorization header.
var ErrMissingBearer = errors.New("missing bearer token")

// Authenticate requires a bearer token accepted by parse and stores the
// resulting principal in the request context. Rejected requests receive 401.
func Authenticate(parse func(token string) (identity.Principal, error), logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearer(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer`)
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrMissingBearer)
				return
			}

			p, err := parse(token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				handlers.RespondError(w, logger, http.StatusUnauthorized, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.With(r.Context(), p)))
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
