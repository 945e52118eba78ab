// Package yaml provides the YAML parser for settings documents.
//
// It uses github.com/goccy/go-yaml. Colon-separated paths (e.g. "docs:exhale")
// are converted to YAML path format (e.g. "$.docs.exhale") and read with
// PathString, so a settings document can be embedded in a larger file.
//
// Usage:
//
//	parser := yaml.NewParser()
//	var raw conf.Raw
//	err := parser.Parse(data, &raw, "docs:exhale")
package yaml
