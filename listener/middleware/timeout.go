package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout is the request deadline used when a non-positive duration is given.
const DefaultTimeout = 30 * time.Second

// timeoutBody is the ErrorBody written by http.TimeoutHandler, encoded once.
const timeoutBody = `{"valid":false,"kind":"` + KindTimeout + `","message":"request timed out"}`

// Timeout returns a middleware that enforces a request processing deadline.
// If the handler does not finish in time, the client receives 503 with a Timeout
// ErrorBody and the handler's context is cancelled.
// If duration is not positive, it defaults to DefaultTimeout with a warning log.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	if duration <= 0 {
		slog.Warn("middleware: duration must be positive, using default",
			"provided", duration, "default", DefaultTimeout)

		duration = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		timeout := http.TimeoutHandler(next, duration, timeoutBody)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			timeout.ServeHTTP(w, r)
		})
	}
}
