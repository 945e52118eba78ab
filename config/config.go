package config

import (
	"fmt"
	"log/slog"
)

// Parser defines an interface for parsing settings data into a target structure.
//
// The path parameter specifies a navigation path within the document using
// colon (:) as the separator for nested keys. For example:
//   - "docs:exhale" navigates to settings["docs"]["exhale"]
//   - "" (empty path) means parse the entire document
//
// Parser implementations are responsible for path navigation internally.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher defines an interface for reading settings data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Sourcer is implemented by fetchers that can name where their data comes from.
type Sourcer interface {
	Source() string
}

// Validator defines an interface for validating settings structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in settings structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that reads, parses, sets defaults, and validates settings data.
// Failures are returned as *LoadError.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, fetcher DataFetcher) (*T, error) {
		source := sourceOf(fetcher)

		data, err := fetcher.Fetch()
		if err != nil {
			return nil, &LoadError{Stage: StageFetch, Source: source, Err: err}
		}

		err = parser.Parse(data, target, path)
		if err != nil {
			return nil, &LoadError{Stage: StageParse, Source: source, Err: err}
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("source", source), slog.String("path", path))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, &LoadError{Stage: StageValidate, Source: source, Err: err}
			}
		}

		slog.Debug("settings loaded", slog.String("source", source), slog.String("path", path))

		return target, nil
	}
}

func sourceOf(fetcher DataFetcher) string {
	if sourcer, ok := fetcher.(Sourcer); ok {
		return sourcer.Source()
	}

	return fmt.Sprintf("%T", fetcher)
}

// MapDecoder is implemented by targets that accept a decoded document as a
// generic mapping. Parsers whose format has only string keys use it instead of
// decoding into the target directly.
type MapDecoder interface {
	DecodeMap(document map[string]any) error
}
