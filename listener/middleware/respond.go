package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error kinds reported by the middleware chain. Validation failures use the
// conf error kinds instead.
const (
	KindInternal        = "InternalError"
	KindRequestTooLarge = "RequestTooLarge"
	KindTimeout         = "Timeout"
)

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Valid     bool   `json:"valid"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Setting   string `json:"setting,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON writes body as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("middleware: failed to encode response", "status", status, "error", err)
	}
}

// WriteError writes an ErrorBody tagged with the request id of r.
func WriteError(w http.ResponseWriter, r *http.Request, status int, body ErrorBody) {
	body.Valid = false
	body.RequestID = GetRequestID(r.Context())

	WriteJSON(w, status, body)
}

// Chain wraps handler so that the first middleware is the outermost.
func Chain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}
