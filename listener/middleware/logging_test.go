package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type captureHandler struct {
	records []logRecord
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

//nolint:varnamelen // r is conventional for slog.Record.
func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	rec := logRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   make(map[string]any),
	}

	r.Attrs(func(a slog.Attr) bool {
		rec.Attrs[a.Key] = a.Value.Any()

		return true
	})

	h.records = append(h.records, rec)

	return nil
}

func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(_ string) slog.Handler      { return h }

func setupTestLogger(t *testing.T) *captureHandler {
	t.Helper()

	oldDefault := slog.Default()

	h := &captureHandler{}
	slog.SetDefault(slog.New(h))

	t.Cleanup(func() { slog.SetDefault(oldDefault) })

	return h
}

func TestLogging_LogFields(t *testing.T) { //nolint:paralleltest // modifies global slog default
	h := setupTestLogger(t) //nolint:varnamelen // h is conventional for handler

	handler := Logging()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"valid":true}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/validate?format=toml", strings.NewReader("exhale_args = 1"))
	req = req.WithContext(context.WithValue(req.Context(), requestIDKey, "build-7"))

	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, h.records, 1)

	record := h.records[0]
	assert.Equal(t, "http request", record.Message)
	assert.Equal(t, slog.LevelInfo, record.Level)
	assert.Equal(t, "POST", record.Attrs["method"])
	assert.Equal(t, "/v1/validate", record.Attrs["path"])
	assert.Equal(t, "toml", record.Attrs["format"])
	assert.Equal(t, int64(http.StatusOK), record.Attrs["status"])
	assert.Equal(t, int64(len(`{"valid":true}`)), record.Attrs["bytes"])
	assert.Equal(t, "build-7", record.Attrs["request_id"])

	dur, ok := record.Attrs["duration"].(time.Duration)
	require.True(t, ok)
	assert.GreaterOrEqual(t, dur, time.Duration(0))
}

func TestLogging_Levels(t *testing.T) { //nolint:paralleltest // modifies global slog default
	tests := []struct {
		name      string
		status    int
		wantLevel slog.Level
	}{
		{name: "valid settings", status: http.StatusOK, wantLevel: slog.LevelInfo},
		{name: "undecodable document", status: http.StatusBadRequest, wantLevel: slog.LevelWarn},
		{name: "invalid settings", status: http.StatusUnprocessableEntity, wantLevel: slog.LevelWarn},
		{name: "panic", status: http.StatusInternalServerError, wantLevel: slog.LevelError},
		{name: "timeout", status: http.StatusServiceUnavailable, wantLevel: slog.LevelError},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			h := setupTestLogger(t) //nolint:varnamelen // h is conventional for handler

			handler := Logging()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(testInfo.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/validate", nil))

			require.Len(t, h.records, 1)
			assert.Equal(t, testInfo.wantLevel, h.records[0].Level)
			assert.Equal(t, int64(testInfo.status), h.records[0].Attrs["status"])
		})
	}
}

func TestLogging_OmitsMissingAttributes(t *testing.T) { //nolint:paralleltest // modifies global slog default
	h := setupTestLogger(t) //nolint:varnamelen // h is conventional for handler

	handler := Logging()(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Len(t, h.records, 1)
	assert.Equal(t, int64(http.StatusOK), h.records[0].Attrs["status"], "no write means implicit 200")
	assert.NotContains(t, h.records[0].Attrs, "request_id")
	assert.NotContains(t, h.records[0].Attrs, "format")
}

func TestStatusWriter_FirstStatusWins(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}

	sw.WriteHeader(http.StatusUnprocessableEntity)
	sw.WriteHeader(http.StatusOK)

	n, err := io.WriteString(sw, "invalid")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, sw.status)
	assert.Equal(t, n, sw.bytes)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Same(t, rec, sw.Unwrap())
}
