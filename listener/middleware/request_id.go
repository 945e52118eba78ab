package middleware

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	// RequestIDHeader is the HTTP header used for request IDs.
	RequestIDHeader = "X-Request-ID"

	// maxRequestIDLength is the maximum allowed length for an externally-provided request ID.
	maxRequestIDLength = 256
)

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{} //nolint:gochecknoglobals

// idGenerator hands out ULIDs that sort by creation time, strictly increasing
// within one process.
type idGenerator struct {
	mu      sync.Mutex
	entropy io.Reader
	timeNow func() time.Time
}

func newIDGenerator() *idGenerator {
	return &idGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		timeNow: time.Now,
	}
}

// generate returns a 26-character Crockford base32 ULID.
func (g *idGenerator) generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.timeNow()), g.entropy)
	if err != nil {
		// Monotonic entropy overflowed within one millisecond or time went out of range.
		slog.Warn("middleware: monotonic request id unavailable, using fresh entropy", "error", err)

		return ulid.Make().String()
	}

	return id.String()
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	val, ok := ctx.Value(requestIDKey).(string)
	if !ok {
		return ""
	}

	return val
}

// isPrintableASCII reports whether s contains only printable ASCII characters (0x20-0x7E).
func isPrintableASCII(s string) bool {
	for i := range len(s) {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}

	return true
}

// RequestID is a middleware that assigns a ULID request ID to each request.
// A client supplied X-Request-ID is reused when it is printable ASCII of at most
// 256 bytes. The ID is stored in the request context and echoed in the
// X-Request-ID response header.
func RequestID() func(http.Handler) http.Handler {
	gen := newIDGenerator()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLength || !isPrintableASCII(id) {
				id = gen.generate()
			}

			r.Header.Set(RequestIDHeader, id)
			w.Header().Set(RequestIDHeader, id)

			ctx := context.WithValue(r.Context(), requestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
