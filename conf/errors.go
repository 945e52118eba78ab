package conf

import (
	"errors"
	"fmt"
)

// Kind tags the rule a setting violated.
type Kind string

// Validation failure kinds.
const (
	KindType           Kind = "ConfigTypeError"
	KindKeyType        Kind = "ConfigKeyTypeError"
	KindExclusivity    Kind = "ConfigExclusivityError"
	KindReference      Kind = "ConfigReferenceError"
	KindExtensionOrder Kind = "ExtensionOrderError"
	KindValue          Kind = "ConfigValueError"
)

// Sentinel errors matched by errors.Is against an *Error of the same kind.
var (
	// ErrConfigType is matched by ConfigTypeError failures.
	ErrConfigType = errors.New("setting has the wrong type")
	// ErrConfigKeyType is matched by ConfigKeyTypeError failures.
	ErrConfigKeyType = errors.New("setting has a non-string key")
	// ErrConfigExclusivity is matched by ConfigExclusivityError failures.
	ErrConfigExclusivity = errors.New("settings are mutually exclusive")
	// ErrConfigReference is matched by ConfigReferenceError failures.
	ErrConfigReference = errors.New("settings reference each other inconsistently")
	// ErrExtensionOrder is matched by ExtensionOrderError failures.
	ErrExtensionOrder = errors.New("extensions are loaded in the wrong order")
	// ErrConfigValue is matched by ConfigValueError failures.
	ErrConfigValue = errors.New("project option is invalid")
)

// Error is a validation failure. Message is user-facing and stable.
type Error struct {
	Kind    Kind
	Setting string
	Message string
}

func newError(kind Kind, setting, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Setting: setting,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error returns the message unchanged.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the sentinel error of the failure kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindType:
		return ErrConfigType
	case KindKeyType:
		return ErrConfigKeyType
	case KindExclusivity:
		return ErrConfigExclusivity
	case KindReference:
		return ErrConfigReference
	case KindExtensionOrder:
		return ErrExtensionOrder
	case KindValue:
		return ErrConfigValue
	default:
		return nil
	}
}

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var confErr *Error
	if errors.As(err, &confErr) {
		return confErr, true
	}

	return nil, false
}
