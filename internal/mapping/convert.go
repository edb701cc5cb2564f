package mapping

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ErrConversion is returned by the conversion builtins when a value of a
// supported type does not represent the requested one.
var ErrConversion = errors.New("conversion failed")

// toInt converts numbers, numeric strings and booleans to int64. Floats must
// be integral.
func toInt(src any) (any, error) {
	if src == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(src)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows int64", ErrConversion, u)
		}

		return int64(u), nil

	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrConversion, f)
		}

		return int64(f), nil

	case reflect.String:
		n, err := strconv.ParseInt(strings.TrimSpace(rv.String()), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConversion, err)
		}

		return n, nil

	case reflect.Bool:
		if rv.Bool() {
			return int64(1), nil
		}

		return int64(0), nil

	default:
		return nil, fmt.Errorf("%w: int of %T", ErrUnsupportedValue, src)
	}
}

// toFloat converts numbers and numeric strings to float64.
func toFloat(src any) (any, error) {
	if src == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(src)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil

	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil

	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConversion, err)
		}

		return f, nil

	default:
		return nil, fmt.Errorf("%w: float of %T", ErrUnsupportedValue, src)
	}
}

// toBool accepts booleans, the numbers 0 and 1, and the strings
// true/false, yes/no and on/off in any case.
func toBool(src any) (any, error) {
	if src == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(src)

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		n, err := toFloat(src)
		if err != nil {
			return nil, err
		}

		switch n {
		case 0.0:
			return false, nil
		case 1.0:
			return true, nil
		default:
			return nil, fmt.Errorf("%w: only numbers 0 and 1 are allowed for bool, got %v", ErrConversion, src)
		}

	case reflect.String:
		switch strings.ToLower(strings.TrimSpace(rv.String())) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		default:
			return nil, fmt.Errorf("%w: only true/false, yes/no, on/off are allowed for bool, got %q",
				ErrConversion, rv.String())
		}

	default:
		return nil, fmt.Errorf("%w: bool of %T", ErrUnsupportedValue, src)
	}
}

// toTime parses RFC 3339 strings and reads numbers as Unix seconds.
func toTime(src any) (any, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConversion, err)
		}

		return t, nil
	}

	secs, err := toInt(src)
	if err != nil {
		return nil, err
	}

	return time.Unix(secs.(int64), 0).UTC(), nil
}

// toUnix converts a time, or an RFC 3339 string, to Unix seconds.
func toUnix(src any) (any, error) {
	t, err := toTime(src)
	if err != nil || t == nil {
		return nil, err
	}

	return t.(time.Time).Unix(), nil
}

// toDuration parses duration strings such as "2h45m". Integers are
// nanoseconds and floats are seconds.
func toDuration(src any) (any, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case time.Duration:
		return v, nil
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConversion, err)
		}

		return d, nil
	case float32:
		return time.Duration(float64(v) * float64(time.Second)), nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	}

	n, err := toInt(src)
	if err != nil {
		return nil, err
	}

	return time.Duration(n.(int64)), nil
}
