package access

import (
	"errors"
	"fmt"
	"reflect"

	"field-mapper/internal/mapping"
)

// ErrNotCollection is returned when a wildcard expands a present value that
// is neither a slice nor an array.
var ErrNotCollection = errors.New("value is not a collection")

// Step applies one Key, Index or Arg token to v. The second result reports
// whether a value is present; nil values count as absent.
func Step(v any, tok mapping.Token) (any, bool) {
	var out any

	switch tok.Kind {
	case mapping.TokenKey:
		out = key(v, tok.Name)
	case mapping.TokenIndex, mapping.TokenArg:
		out = index(v, tok.Index)
	default:
		return nil, false
	}

	if IsAbsent(out) {
		return nil, false
	}

	return out, true
}

// Walk applies every step in order, stopping at the first absent value.
func Walk(v any, steps []mapping.Token) (any, bool) {
	if IsAbsent(v) {
		return nil, false
	}

	for _, tok := range steps {
		var ok bool
		if v, ok = Step(v, tok); !ok {
			return nil, false
		}
	}

	return v, true
}

// Elements returns the elements of a slice or array. Absent values have no
// elements.
func Elements(v any) ([]any, error) {
	if IsAbsent(v) {
		return nil, nil
	}

	if list, ok := v.([]any); ok {
		return list, nil
	}

	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotCollection, v)
	}
}

// IsAbsent reports whether v carries no value: nil itself, or a nil pointer,
// map, slice, interface, func or channel.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func key(v any, name string) any {
	if m, ok := v.(map[string]any); ok {
		return m[name]
	}

	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return nil
		}

		val := rv.MapIndex(reflect.ValueOf(name).Convert(kt))
		if !val.IsValid() {
			return nil
		}

		return val.Interface()

	case reflect.Struct:
		idx, ok := structs.info(rv.Type()).lookup(name)
		if !ok {
			return nil
		}

		field, err := rv.FieldByIndexErr(idx)
		if err != nil {
			return nil
		}

		return field.Interface()

	default:
		return nil
	}
}

func index(v any, i int) any {
	if list, ok := v.([]any); ok {
		if i < 0 || i >= len(list) {
			return nil
		}

		return list[i]
	}

	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if i < 0 || i >= rv.Len() {
			return nil
		}

		return rv.Index(i).Interface()
	default:
		return nil
	}
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}

		rv = rv.Elem()
	}

	return rv
}
