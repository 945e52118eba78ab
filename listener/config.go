// Package listener hosts the settings validation service as an HTTP listener module for Fx.
package listener

import (
	"errors"
	"time"

	"github.com/0xalexb/hjarta-exhale/listener/middleware"
)

// DefaultAddress is the default address for the HTTP listener.
const DefaultAddress = ":8080"

// DefaultMaxRequestBytes bounds request bodies unless configured otherwise.
const DefaultMaxRequestBytes = middleware.DefaultMaxRequestSize

// DefaultRequestTimeout bounds request handling unless configured otherwise.
const DefaultRequestTimeout = middleware.DefaultTimeout

// ErrEmptyAddress is returned when the address is empty.
var ErrEmptyAddress = errors.New("address must not be empty")

// ErrInvalidLimit is returned when a size or time limit is negative.
var ErrInvalidLimit = errors.New("limit must not be negative")

// ErrListenFailed is returned when the server fails to listen on the configured address.
var ErrListenFailed = errors.New("failed to listen")

// ErrShutdownFailed is returned when the server fails to shut down gracefully.
var ErrShutdownFailed = errors.New("shutdown failed")

// ErrEmptyName is returned when the listener name is empty.
var ErrEmptyName = errors.New("listener name must not be empty")

// ErrNilHandler is returned when a nil http.Handler is provided.
var ErrNilHandler = errors.New("handler must not be nil")

// Config holds the configuration for an HTTP listener.
// It can be loaded with config.Provider, which applies SetDefaults and Validate.
type Config struct {
	Address         string        `toml:"address"         yaml:"address"`
	MaxRequestBytes int64         `toml:"maxRequestBytes" yaml:"maxRequestBytes"`
	RequestTimeout  time.Duration `toml:"requestTimeout"  yaml:"requestTimeout"`
}

// SetDefaults fills unset fields and reports whether anything changed.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.MaxRequestBytes == 0 {
		c.MaxRequestBytes = DefaultMaxRequestBytes
		changed = true
	}

	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if c.MaxRequestBytes < 0 || c.RequestTimeout < 0 {
		return ErrInvalidLimit
	}

	return nil
}
