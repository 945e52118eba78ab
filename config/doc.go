// Package config loads settings documents.
//
// The package uses an interface-based design with four extension points:
//   - Parser: deserializes raw data into a target, with path navigation support
//   - DataFetcher: retrieves raw data (file, request body, etc.)
//   - Validator: validates the target after parsing
//   - Defaulter: applies default values before validation
//
// Provider chains them and reports failures as *LoadError, tagged with the
// stage that failed and the fetcher's source. Validation messages are passed
// through verbatim because they are written for the end user.
//
// # Path Navigation
//
// Provider accepts a path that targets a section of the document. Paths use
// colon (:) as the separator:
//
//	"docs:exhale"   -> settings["docs"]["exhale"]
//	""              -> entire document
//
// # Example
//
// Loading and validating the exhale settings of a documentation build:
//
//	provider := config.Provider(&conf.Document{}, "")
//	doc, err := provider(yamlparser.NewParser(), fetcher)
//	if err != nil {
//	    // err.Error() is the message to show the user
//	}
//	projects := doc.Validated.ProjectNames()
package config
