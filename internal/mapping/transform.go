package mapping

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// TransformFunc turns a resolved source value into a target value.
// A nil result with a nil error means "no value".
type TransformFunc func(src any) (any, error)

var (
	// ErrDuplicateTransform is returned when a transform name is registered twice.
	ErrDuplicateTransform = errors.New("transform already registered")
	// ErrInvalidTransform is returned for an empty name or a nil function.
	ErrInvalidTransform = errors.New("invalid transform")
	// ErrUnsupportedValue is returned by builtins for values they cannot handle.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// TransformRegistry holds named transforms referenced by "$transform"
// directives. It is safe for concurrent use.
type TransformRegistry struct {
	mu         sync.RWMutex
	transforms map[string]TransformFunc
}

// NewTransformRegistry creates a new empty transform registry.
func NewTransformRegistry() *TransformRegistry {
	return &TransformRegistry{
		transforms: make(map[string]TransformFunc),
	}
}

// NewBuiltinRegistry creates a registry pre-populated with the builtin transforms.
func NewBuiltinRegistry() *TransformRegistry {
	r := NewTransformRegistry()
	for name, fn := range builtins {
		r.transforms[name] = fn
	}

	return r
}

// Register adds a transform under the given name.
func (r *TransformRegistry) Register(name string, fn TransformFunc) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTransform)
	}

	if fn == nil {
		return fmt.Errorf("%w %q: nil function", ErrInvalidTransform, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transforms[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTransform, name)
	}

	r.transforms[name] = fn

	return nil
}

// Get returns a transform by name.
func (r *TransformRegistry) Get(name string) (TransformFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.transforms[name]

	return fn, ok
}

// Has returns true if a transform with the given name exists.
func (r *TransformRegistry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns all transform names in sorted order.
func (r *TransformRegistry) Names() []string {
	r.mu.RLock()
	names := lo.Keys(r.transforms)
	r.mu.RUnlock()

	slices.Sort(names)

	return names
}

var builtins = map[string]TransformFunc{
	"upper":  stringTransform(strings.ToUpper),
	"lower":  stringTransform(strings.ToLower),
	"trim":   stringTransform(strings.TrimSpace),
	"string": toString,
	"len":    length,
	"first":  first,
	"last":   last,

	"int":      toInt,
	"float":    toFloat,
	"bool":     toBool,
	"time":     toTime,
	"unix":     toUnix,
	"duration": toDuration,
}

// BuiltinNames returns the names of the builtin transforms in sorted order.
func BuiltinNames() []string {
	names := lo.Keys(builtins)
	slices.Sort(names)

	return names
}

func stringTransform(fn func(string) string) TransformFunc {
	return func(src any) (any, error) {
		switch v := src.(type) {
		case nil:
			return nil, nil
		case string:
			return fn(v), nil
		case fmt.Stringer:
			return fn(v.String()), nil
		default:
			return nil, fmt.Errorf("%w: expected string, got %T", ErrUnsupportedValue, src)
		}
	}
}

func toString(src any) (any, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func length(src any) (any, error) {
	if src == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), nil
	default:
		return nil, fmt.Errorf("%w: len of %T", ErrUnsupportedValue, src)
	}
}

func first(src any) (any, error) {
	return element(src, func(n int) int { return 0 })
}

func last(src any) (any, error) {
	return element(src, func(n int) int { return n - 1 })
}

func element(src any, pick func(n int) int) (any, error) {
	if src == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(src)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: expected a list, got %T", ErrUnsupportedValue, src)
	}

	if rv.Len() == 0 {
		return nil, nil
	}

	return rv.Index(pick(rv.Len())).Interface(), nil
}
