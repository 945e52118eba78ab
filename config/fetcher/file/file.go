package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultMaxSize is the largest settings file read unless WithMaxSize says otherwise.
const DefaultMaxSize int64 = 1 << 20

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// ErrFileTooLarge is returned when the file exceeds the configured maximum size.
var ErrFileTooLarge = errors.New("file too large")

// Option configures a Fetcher.
type Option func(*options)

type options struct {
	maxSize int64
}

// WithMaxSize sets the maximum file size in bytes. Non-positive values disable the limit.
func WithMaxSize(size int64) Option {
	return func(o *options) {
		o.maxSize = size
	}
}

// Fetcher implements config.DataFetcher interface for settings files.
// It reads the file at construction time and caches the contents.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor function that creates a new file-based Fetcher
// with the specified filepath. The file is read at construction time and cached.
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
// Returns an error if the file cannot be read, is a directory or is larger than the maximum size.
func NewFetcher(fpath string, opts ...Option) func() (*Fetcher, error) {
	cfg := options{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		stat, err := os.Stat(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
		}

		if stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
		}

		if cfg.maxSize > 0 && stat.Size() > cfg.maxSize {
			return nil, fmt.Errorf("path %q is %d bytes, limit %d: %w", cleanPath, stat.Size(), cfg.maxSize, ErrFileTooLarge)
		}

		data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
		}

		return &Fetcher{
			filepath: cleanPath,
			data:     data,
		}, nil
	}
}

// Fetch returns a copy of the cached settings data that was read at construction time.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}

// Source returns the cleaned file path.
func (f *Fetcher) Source() string {
	return f.filepath
}
