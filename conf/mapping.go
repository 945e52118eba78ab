package conf

import (
	"cmp"
	"reflect"
	"slices"

	"github.com/goccy/go-yaml"
)

type entry struct {
	key   any
	value any
}

// asMapping reports whether value is a mapping and returns its entries.
// yaml.MapSlice keeps document order; Go maps are sorted by rendered key.
func asMapping(value any) ([]entry, bool) {
	if mapSlice, ok := value.(yaml.MapSlice); ok {
		entries := make([]entry, 0, len(mapSlice))
		for _, item := range mapSlice {
			entries = append(entries, entry{key: item.Key, value: item.Value})
		}

		return entries, true
	}

	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil, false
	}

	entries := make([]entry, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: iter.Key().Interface(), value: iter.Value().Interface()})
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		return cmp.Or(
			cmp.Compare(KeyRepr(a.key), KeyRepr(b.key)),
			cmp.Compare(TypeName(a.key), TypeName(b.key)),
		)
	})

	return entries, true
}

// isSet reports whether value counts as configured: present and neither
// false, zero, nor empty.
func isSet(value any) bool {
	if value == nil {
		return false
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// asList returns the items of a list value. Mappings are not lists.
func asList(value any) ([]any, bool) {
	if _, ok := value.(yaml.MapSlice); ok {
		return nil, false
	}

	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}

	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}

	items := make([]any, 0, rv.Len())
	for i := range rv.Len() {
		items = append(items, rv.Index(i).Interface())
	}

	return items, true
}

func hasKey(entries []entry, key string) bool {
	return slices.ContainsFunc(entries, func(e entry) bool {
		name, ok := e.key.(string)

		return ok && name == key
	})
}
