package toml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-exhale/config"

	"github.com/pelletier/go-toml/v2"
)

// Format is the name of the format handled by Parser.
const Format = "toml"

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the TOML document.
var ErrPathNotFound = errors.New("path not found")

// ErrNotTable is returned when a path segment selects a value that is not a table.
var ErrNotTable = errors.New("not a table")

// Parser implements config.Parser interface for TOML data.
type Parser struct{}

// NewParser creates a new TOML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Format returns "toml".
func (p *Parser) Format() string {
	return Format
}

// Parse parses TOML data and unmarshals the table at path into the target.
// Targets implementing config.MapDecoder (such as conf.Document) receive the
// decoded table directly.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyData
	}

	var document map[string]any

	err := toml.Unmarshal(data, &document)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	table, err := lookup(document, path)
	if err != nil {
		return err
	}

	if decoder, ok := target.(config.MapDecoder); ok {
		return decoder.DecodeMap(table)
	}

	if path == "" {
		err = toml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	selected, err := toml.Marshal(table)
	if err != nil {
		return fmt.Errorf("reading path %q: %w", path, err)
	}

	err = toml.Unmarshal(selected, target)
	if err != nil {
		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}

// lookup walks a colon-separated path through nested tables.
func lookup(document map[string]any, path string) (map[string]any, error) {
	if path == "" {
		return document, nil
	}

	current := document

	for _, segment := range strings.Split(path, ":") {
		value, ok := current[segment]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		table, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s at %q", ErrNotTable, path, segment)
		}

		current = table
	}

	return current, nil
}
