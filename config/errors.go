package config

import "fmt"

// Stage names the step of Provider that failed.
type Stage string

// Provider stages.
const (
	StageFetch    Stage = "fetch"
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
)

// LoadError reports a failure to load settings from Source.
type LoadError struct {
	Stage  Stage
	Source string
	Err    error
}

// Error keeps validation messages verbatim, since they are addressed to the
// user, and prefixes the other stages with the source.
func (e *LoadError) Error() string {
	if e.Stage == StageValidate {
		return e.Err.Error()
	}

	return fmt.Sprintf("%s %s: %v", e.Stage, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
