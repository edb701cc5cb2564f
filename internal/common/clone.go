package common

import (
	"reflect"
)

var mapType = reflect.TypeFor[map[string]any]()

// CloneValue deep-copies map and slice trees of the kind found in decoded
// documents and default values. Named string-keyed map types are copied as
// map[string]any. Any other value is returned as is.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMap(t)
	case []any:
		if t == nil {
			return t
		}

		out := make([]any, len(t))
		for i, e := range t {
			out[i] = CloneValue(e)
		}

		return out
	}

	if m, ok := asMap(v); ok {
		return CloneMap(m)
	}

	return v
}

// CloneMap deep-copies a map tree. A nil map stays nil.
func CloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}

	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = CloneValue(v)
	}

	return out
}

func asMap(v any) (map[string]any, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map || !rv.Type().ConvertibleTo(mapType) {
		return nil, false
	}

	m, ok := rv.Convert(mapType).Interface().(map[string]any)

	return m, ok
}
