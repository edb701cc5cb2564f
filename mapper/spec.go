package mapper

import (
	"field-mapper/internal/common"
	"field-mapper/internal/mapping"
)

// Rule is the rule for one target field: a Path, a Func, a nested *Mapper or
// a nested Spec.
type Rule interface {
	isRule()
}

// Spec maps target-field names to rules.
type Spec map[string]Rule

// Path is a source field path such as "items.[].sku" or "$1.name".
type Path string

// Func computes a target field from the scope source. A nil result falls
// back to the field default.
type Func func(src any) (any, error)

// Defaults is a partial mirror of the target shape used when a field
// resolves to nothing. Nested maps are subtrees.
type Defaults map[string]any

// namedFunc is a Func built from a catalog transform.
type namedFunc struct {
	name string
	from Path
	fn   Func
}

func (Path) isRule() {}
func (Func) isRule() {}
func (*Mapper) isRule() {}
func (Spec) isRule() {}
func (namedFunc) isRule() {}

// transform wraps a registered transform as a rule. When from is set the
// transform receives the value at that path instead of the scope source.
func transform(name string, from Path, fn mapping.TransformFunc) Rule {
	call := Func(fn)

	if from != "" {
		call = func(src any) (any, error) {
			v, ok, err := Resolve(src, string(from))
			if err != nil || !ok {
				return nil, err
			}

			return fn(v)
		}
	}

	return namedFunc{name: name, from: from, fn: call}
}

func cloneSpec(in Spec) Spec {
	if in == nil {
		return nil
	}

	out := make(Spec, len(in))
	for k, r := range in {
		if nested, ok := r.(Spec); ok {
			out[k] = cloneSpec(nested)
			continue
		}

		out[k] = r
	}

	return out
}

func cloneDefaults(in Defaults) Defaults {
	return common.CloneMap(in)
}
