package listener

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/0xalexb/hjarta-exhale/conf"
	"github.com/0xalexb/hjarta-exhale/config"
	"github.com/0xalexb/hjarta-exhale/config/parser"
	"github.com/0xalexb/hjarta-exhale/listener/middleware"
)

// Routes served by the validation handler.
const (
	ValidatePath = "/v1/validate"
	HealthPath   = "/healthz"
)

// Error kinds for requests that never reach the validator.
const (
	KindUnsupportedFormat = "UnsupportedFormat"
	KindDecode            = "DecodeError"
)

// ValidResponse is the body of a successful validation.
type ValidResponse struct {
	Valid     bool            `json:"valid"`
	Config    *conf.Validated `json:"config"`
	RequestID string          `json:"request_id,omitempty"`
}

// contentTypeFormats maps request media types to parser formats.
var contentTypeFormats = map[string]string{ //nolint:gochecknoglobals
	"application/yaml":   "yaml",
	"application/x-yaml": "yaml",
	"text/yaml":          "yaml",
	"text/x-yaml":        "yaml",
	"application/toml":   "toml",
	"text/toml":          "toml",
}

// requestBody fetches the settings document from a request body.
type requestBody struct {
	r *http.Request
}

func (b requestBody) Fetch() ([]byte, error) {
	data, err := io.ReadAll(b.r.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}

	return data, nil
}

func (b requestBody) Source() string {
	return "request " + middleware.GetRequestID(b.r.Context())
}

// NewHandler returns the validation service wrapped in the middleware chain:
// request id, logging, recovery, body size limit and timeout, outermost first.
func NewHandler(cfg Config) http.Handler {
	cfg.SetDefaults()

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+ValidatePath, handleValidate)
	mux.HandleFunc("GET "+HealthPath, handleHealth)

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.MaxRequestSize(cfg.MaxRequestBytes),
		middleware.Timeout(cfg.RequestTimeout),
	)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

// handleValidate decodes the body with the parser for the requested format and
// validates it. The "path" query parameter selects an embedded settings section.
func handleValidate(w http.ResponseWriter, r *http.Request) {
	settingsParser, err := parser.ForFormat(requestFormat(r))
	if err != nil {
		middleware.WriteError(w, r, http.StatusBadRequest, middleware.ErrorBody{
			Kind:    KindUnsupportedFormat,
			Message: err.Error(),
		})

		return
	}

	document, err := config.Provider(&conf.Document{}, r.URL.Query().Get("path"))(settingsParser, requestBody{r: r})
	if err != nil {
		writeLoadError(w, r, err)

		return
	}

	middleware.WriteJSON(w, http.StatusOK, ValidResponse{
		Valid:     true,
		Config:    document.Validated,
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

func writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		middleware.WriteError(w, r, http.StatusRequestEntityTooLarge, middleware.ErrorBody{
			Kind:    middleware.KindRequestTooLarge,
			Message: fmt.Sprintf("request body must not exceed %d bytes", maxErr.Limit),
		})

		return
	}

	if confErr, ok := conf.AsError(err); ok {
		slog.Debug("settings rejected",
			slog.String("kind", string(confErr.Kind)),
			slog.String("setting", confErr.Setting),
			slog.String("request_id", middleware.GetRequestID(r.Context())))

		middleware.WriteError(w, r, http.StatusUnprocessableEntity, middleware.ErrorBody{
			Kind:    string(confErr.Kind),
			Setting: confErr.Setting,
			Message: confErr.Message,
		})

		return
	}

	var loadErr *config.LoadError
	if errors.As(err, &loadErr) && loadErr.Stage != config.StageValidate {
		middleware.WriteError(w, r, http.StatusBadRequest, middleware.ErrorBody{
			Kind:    KindDecode,
			Message: loadErr.Err.Error(),
		})

		return
	}

	slog.Error("validation failed unexpectedly", "error", err, "request_id", middleware.GetRequestID(r.Context()))

	middleware.WriteError(w, r, http.StatusInternalServerError, middleware.ErrorBody{
		Kind:    middleware.KindInternal,
		Message: "internal server error",
	})
}

// requestFormat prefers the "format" query parameter, then the Content-Type,
// and falls back to YAML.
func requestFormat(r *http.Request) string {
	if format := r.URL.Query().Get("format"); format != "" {
		return format
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil {
		if format, ok := contentTypeFormats[mediaType]; ok {
			return format
		}
	}

	return "yaml"
}
