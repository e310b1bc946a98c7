package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// Logger returns middleware that logs each request with method, path,
// status, and duration. The path is the original request target, so
// modules that see a stripped URL still log the full path.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := NewRecorder(w)

			next.ServeHTTP(rec, r)

			path := r.RequestURI
			if path == "" {
				path = r.URL.Path
			}

			logger.Info(
				"request",
				"method", r.Method,
				"path", path,
				"status", rec.Status,
				"bytes", rec.Bytes,
				"duration", time.Since(start),
			)
		})
	}
}
