package exhale

import (
	"io"

	"github.com/0xalexb/hjarta-exhale/listener"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
	LogWriter io.Writer
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithSettingsFile loads and validates a settings file when the application starts.
// The format follows the file extension. A non-empty section selects a nested
// table with a colon path such as "tool:exhale".
// The loaded *conf.Document and *conf.Validated are available for injection.
func WithSettingsFile(path, section string) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, NewSettingsModule(path, section))
	}
}

// WithValidationListener adds a named listener serving the validation API.
// Call multiple times with different names to serve on several addresses.
func WithValidationListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, listener.NewValidationModule(name, opts...))
	}
}

// WithHTTPListener adds a named listener for an externally provided http.Handler.
// The name is used as both the Fx module name and the DI named tag for http.Handler and Config.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, listener.NewModule(name, opts...))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogWriter sends logs to w instead of stderr.
func WithLogWriter(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogWriter = w
	}
}
