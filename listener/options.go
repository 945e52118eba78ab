package listener

import "time"

// Option defines a function type for configuring an HTTP listener.
type Option func(*Config)

// WithAddress sets the address for the HTTP listener.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithMaxRequestBytes sets the request body limit.
func WithMaxRequestBytes(size int64) Option {
	return func(cfg *Config) {
		cfg.MaxRequestBytes = size
	}
}

// WithRequestTimeout sets the request handling deadline.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.RequestTimeout = timeout
	}
}
