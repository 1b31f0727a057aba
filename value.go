package skema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"
)

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks an absent value. Object fields missing from the input are
// validated as Undefined, and a field whose result is Undefined is left out of
// the output.
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// KindOf names the kind of a runtime value using the schema vocabulary
// ("string", "number", "object", "array", ...).
func KindOf(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case string:
		return "string"
	case bool:
		return "boolean"
	case time.Time:
		return "date"
	case json.Number:
		return "number"
	case float64:
		if math.IsNaN(t) {
			return "nan"
		}
		return "number"
	case float32:
		if math.IsNaN(float64(t)) {
			return "nan"
		}
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Func:
		return "function"
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
		return KindOf(rv.Elem().Interface())
	}
	return fmt.Sprintf("%T", v)
}

// toFloat converts any Go numeric value or json.Number to float64.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t)
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil && !math.IsNaN(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f)
	}
	return 0, false
}

// keyed is a textual-key view over a keyed input structure.
type keyed struct {
	keys   []string // sorted
	values map[string]any
}

// asKeyed views map inputs as string-keyed structures. Non-string keys are
// rendered to their textual form.
func asKeyed(v any) (keyed, bool) {
	if m, ok := v.(map[string]any); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keyed{keys: keys, values: m}, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return keyed{}, false
	}
	values := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		values[fmt.Sprint(it.Key().Interface())] = it.Value().Interface()
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keyed{keys: keys, values: values}, true
}

// asSeq views slice and array inputs as []any. Byte slices are not sequences.
func asSeq(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		if rv.IsNil() {
			return nil, false
		}
	case reflect.Array:
	default:
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// ident identifies a map or slice header. Slices sharing a backing array with
// different lengths are distinct values.
type ident struct {
	ptr uintptr
	len int
}

// identity returns a stable identity for maps and slices, used to spot inputs
// that contain themselves.
func identity(v any) (ident, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return ident{}, false
		}
		return ident{ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.IsNil() {
			return ident{}, false
		}
		return ident{ptr: rv.Pointer(), len: rv.Len()}, true
	}
	return ident{}, false
}
