package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
)

// DefaultMaxRequestSize is the body limit used when a non-positive size is given.
const DefaultMaxRequestSize int64 = 1 << 20

// MaxRequestSize returns a middleware that limits request bodies to bytes.
// Requests announcing a larger Content-Length are rejected with 413 before the
// handler runs. Other bodies are wrapped in http.MaxBytesReader, so handlers see
// an *http.MaxBytesError once they read past the limit.
//
// If bytes is zero or negative, it defaults to DefaultMaxRequestSize and logs a
// warning via slog.
func MaxRequestSize(bytes int64) func(http.Handler) http.Handler {
	if bytes <= 0 {
		slog.Warn("middleware: bytes must be positive, using default",
			"provided", bytes, "default", DefaultMaxRequestSize)

		bytes = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > bytes {
				WriteError(w, r, http.StatusRequestEntityTooLarge, ErrorBody{
					Kind:    KindRequestTooLarge,
					Message: fmt.Sprintf("request body must not exceed %d bytes", bytes),
				})

				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, bytes)
			next.ServeHTTP(w, r)
		})
	}
}
