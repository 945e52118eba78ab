// Package parser selects a config.Parser by format name or file extension.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/0xalexb/hjarta-exhale/config"
	"github.com/0xalexb/hjarta-exhale/config/parser/toml"
	"github.com/0xalexb/hjarta-exhale/config/parser/yaml"
)

// ErrUnknownFormat is returned for formats without a parser.
var ErrUnknownFormat = errors.New("unknown format")

// Formats lists the accepted format names.
var Formats = []string{yaml.Format, toml.Format}

// ForFormat returns the parser for a format name such as "yaml", "yml" or "toml".
func ForFormat(format string) (config.Parser, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case yaml.Format, "yml":
		return yaml.NewParser(), nil
	case toml.Format:
		return toml.NewParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ForFile returns the parser matching the file extension of path.
func ForFile(path string) (config.Parser, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}

	return ForFormat(ext)
}
