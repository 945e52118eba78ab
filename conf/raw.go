package conf

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Setting names read by the validator.
const (
	SettingArgs                  = "exhale_args"
	SettingProjects              = "exhale_projects"
	SettingGlobalArgs            = "exhale_global_args"
	SettingBreatheProjects       = "breathe_projects"
	SettingBreatheDefaultProject = "breathe_default_project"
	SettingExtensions            = "extensions"
)

// ErrNotMapping is returned when a settings document is not a mapping at the top level.
var ErrNotMapping = errors.New("settings document must be a mapping")

// ErrSettingName is returned when a top-level setting name is not a string.
var ErrSettingName = errors.New("setting names must be strings")

// Raw holds the build settings as loaded, before validation.
type Raw map[string]any

// UnmarshalYAML decodes a YAML settings document. Nested mappings are kept as
// yaml.MapSlice so that keys keep their native type (`{11: x}` has an int key).
func (r *Raw) UnmarshalYAML(data []byte) error {
	var doc any

	err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap())
	if err != nil {
		return fmt.Errorf("decoding settings: %w", err)
	}

	if doc == nil {
		*r = Raw{}

		return nil
	}

	mapSlice, ok := doc.(yaml.MapSlice)
	if !ok {
		return fmt.Errorf("%w, got %s", ErrNotMapping, TypeName(doc))
	}

	settings := make(Raw, len(mapSlice))

	for _, item := range mapSlice {
		name, isString := item.Key.(string)
		if !isString {
			return fmt.Errorf("%w: `%s` is of type `%s`", ErrSettingName, KeyRepr(item.Key), TypeName(item.Key))
		}

		settings[name] = item.Value
	}

	*r = settings

	return nil
}

// Extensions returns the `extensions` setting. A missing setting is an empty list.
func (r Raw) Extensions() ([]string, error) {
	value, ok := r[SettingExtensions]
	if !ok || value == nil {
		return nil, nil
	}

	items, ok := asList(value)
	if !ok {
		return nil, newError(KindType, SettingExtensions,
			"`extensions` in `conf.py` must be a list, but was `%s`.", TypeName(value))
	}

	names := make([]string, 0, len(items))

	for _, item := range items {
		name, isString := item.(string)
		if !isString {
			return nil, newError(KindType, SettingExtensions,
				"`extensions` had item `%s` of type `%s`, but only strings are allowed.", KeyRepr(item), TypeName(item))
		}

		names = append(names, name)
	}

	return names, nil
}
