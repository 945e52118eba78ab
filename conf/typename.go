package conf

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// TypeName returns the name used in messages for the dynamic type of value.
// All integer kinds are "int" and all floating point kinds are "float", so the
// name does not depend on the decoder that produced the value.
func TypeName(value any) string {
	if value == nil {
		return "null"
	}

	if _, ok := value.(yaml.MapSlice); ok {
		return "dict"
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.String:
		return "string"
	case reflect.Map:
		return "dict"
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return "bytes"
		}

		return "list"
	default:
		return rv.Type().String()
	}
}

// KeyRepr renders a mapping key the way the host build prints it, so keys
// decoded from YAML or TOML read like their conf.py literals: None, True,
// False, and floats that always carry a fraction or exponent (3.0, 1e+16).
func KeyRepr(key any) string {
	switch typed := key.(type) {
	case nil:
		return "None"
	case string:
		return typed
	case bool:
		if typed {
			return "True"
		}

		return "False"
	case float64:
		return floatRepr(typed, 64)
	case float32:
		return floatRepr(float64(typed), 32)
	default:
		return fmt.Sprint(typed)
	}
}

func floatRepr(value float64, bitSize int) string {
	switch {
	case math.IsNaN(value):
		return "nan"
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	}

	if abs := math.Abs(value); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(value, 'g', -1, bitSize)
	}

	text := strconv.FormatFloat(value, 'f', -1, bitSize)
	if !strings.Contains(text, ".") {
		text += ".0"
	}

	return text
}
