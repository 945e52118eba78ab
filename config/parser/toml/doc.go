// Package toml provides the TOML parser for settings documents.
//
// It uses github.com/pelletier/go-toml/v2. A colon-separated path selects a
// nested table, so [tool.exhale] in a pyproject-style file is read with the
// path "tool:exhale". Only tables can be selected.
//
// Usage:
//
//	parser := toml.NewParser()
//	var document conf.Document
//	err := parser.Parse(data, &document, "tool:exhale")
package toml
