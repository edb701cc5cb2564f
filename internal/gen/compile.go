package gen

import (
	"github.com/samber/mo"

	"field-mapper/internal/access"
	"field-mapper/internal/common"
	"field-mapper/internal/mapping"
	"field-mapper/internal/plan"
)

// Options control how a plan is compiled.
type Options struct {
	// Unsafe disables per-field guards: the first error aborts Run and
	// panics propagate.
	Unsafe bool
	// OnFieldError is called for every collected field error in safe mode.
	OnFieldError func(*FieldError)
}

// fieldFunc produces one target field from the scope source.
type fieldFunc func(scope any, dst map[string]any, errs *[]string) error

// resolver evaluates a parsed path against a scope source.
type resolver func(scope any) (mo.Option[any], error)

// Routine is a compiled plan. It holds no per-call state and is safe for
// concurrent use.
type Routine struct {
	fields []fieldFunc
	nodes  int
	unsafe bool
}

// Compile composes the plan into a routine.
func Compile(p *plan.Plan, opts Options) *Routine {
	c := &compiler{plan: p, opts: opts}

	return &Routine{
		fields: c.level(p.Roots),
		nodes:  len(p.Nodes),
		unsafe: opts.Unsafe,
	}
}

// Run writes the mapped fields of src into dst. Field errors are appended to
// errs in safe mode; in unsafe mode the first one is returned.
func (r *Routine) Run(src any, dst map[string]any, errs *[]string) error {
	for _, f := range r.fields {
		if err := f(src, dst, errs); err != nil {
			return err
		}
	}

	return nil
}

// Nodes returns the number of field records compiled into the routine.
func (r *Routine) Nodes() int {
	return r.nodes
}

// Unsafe reports whether the routine was compiled without field guards.
func (r *Routine) Unsafe() bool {
	return r.unsafe
}

type compiler struct {
	plan *plan.Plan
	opts Options
}

func (c *compiler) level(ids []int) []fieldFunc {
	out := make([]fieldFunc, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.node(id))
	}

	return out
}

func (c *compiler) node(id int) fieldFunc {
	// Copy: the closure must not observe later changes to the arena.
	n := *c.plan.Node(id)

	var f fieldFunc

	switch n.Kind {
	case plan.RulePath:
		f = pathField(n.Target, compilePath(n.Path.Objects), n.Default)
	case plan.RuleFunc:
		f = funcField(n.Target, n.Func, n.Default)
	case plan.RuleMapper:
		f = mapperField(n.Target, c.level(n.Children))
	case plan.RuleObject:
		f = objectField(n.Target, c.level(n.Children))
	default:
		f = func(any, map[string]any, *[]string) error { return nil }
	}

	if c.opts.Unsafe {
		return f
	}

	return c.guard(&n, f)
}

// guard converts errors and panics of one field into collected messages.
func (c *compiler) guard(n *plan.Node, f fieldFunc) fieldFunc {
	return func(scope any, dst map[string]any, errs *[]string) error {
		defer func() {
			if rec := recover(); rec != nil {
				c.collect(errs, newFieldError(n, &PanicError{Value: rec}))
			}
		}()

		if err := f(scope, dst, errs); err != nil {
			c.collect(errs, newFieldError(n, err))
		}

		return nil
	}
}

func (c *compiler) collect(errs *[]string, fe *FieldError) {
	*errs = append(*errs, fe.Error())

	if c.opts.OnFieldError != nil {
		c.opts.OnFieldError(fe)
	}
}

// fold writes the resolved value, or a copy of the default when nothing
// resolved.
func fold(dst map[string]any, target string, v, def mo.Option[any]) {
	if v.IsPresent() {
		dst[target] = v.MustGet()
		return
	}

	if def.IsPresent() {
		dst[target] = common.CloneValue(def.MustGet())
	}
}

func pathField(target string, resolve resolver, def mo.Option[any]) fieldFunc {
	return func(scope any, dst map[string]any, _ *[]string) error {
		v, err := resolve(scope)
		if err != nil {
			return err
		}

		fold(dst, target, v, def)

		return nil
	}
}

func funcField(target string, fn plan.Func, def mo.Option[any]) fieldFunc {
	return func(scope any, dst map[string]any, _ *[]string) error {
		if access.IsAbsent(scope) {
			fold(dst, target, mo.None[any](), def)
			return nil
		}

		out, err := fn(scope)
		if err != nil {
			return err
		}

		fold(dst, target, present(out), def)

		return nil
	}
}

func mapperField(target string, children []fieldFunc) fieldFunc {
	key := mapping.Token{Kind: mapping.TokenKey, Name: target}

	return func(scope any, dst map[string]any, errs *[]string) error {
		narrowed, _ := access.Step(scope, key)

		sub := make(map[string]any, len(children))
		dst[target] = sub

		for _, f := range children {
			if err := f(narrowed, sub, errs); err != nil {
				return err
			}
		}

		return nil
	}
}

func objectField(target string, children []fieldFunc) fieldFunc {
	return func(scope any, dst map[string]any, errs *[]string) error {
		sub := make(map[string]any, len(children))
		dst[target] = sub

		for _, f := range children {
			if err := f(scope, sub, errs); err != nil {
				return err
			}
		}

		return nil
	}
}

// compilePath builds a resolver for a segmented path. The first object is
// resolved directly; every further object is resolved per element of the
// collection the previous one produced.
func compilePath(objects []mapping.PathObject) resolver {
	steps := objects[0].Steps

	if len(objects) == 1 {
		return func(scope any) (mo.Option[any], error) {
			return present(walk(scope, steps)), nil
		}
	}

	rest := compilePath(objects[1:])

	return func(scope any) (mo.Option[any], error) {
		base, ok := access.Walk(scope, steps)
		if !ok {
			return mo.None[any](), nil
		}

		elems, err := access.Elements(base)
		if err != nil {
			return mo.None[any](), err
		}

		out := make([]any, len(elems))
		for i, e := range elems {
			v, err := rest(e)
			if err != nil {
				return mo.None[any](), err
			}

			out[i] = v.OrEmpty()
		}

		return mo.Some[any](out), nil
	}
}

func walk(scope any, steps []mapping.Token) any {
	v, _ := access.Walk(scope, steps)
	return v
}

func present(v any) mo.Option[any] {
	return mo.TupleToOption(v, !access.IsAbsent(v))
}

// Resolve evaluates a field path once against src.
func Resolve(src any, path string) (any, bool, error) {
	v, err := compilePath(mapping.ParsePath(path).Objects)(src)
	if err != nil {
		return nil, false, err
	}

	return v.OrEmpty(), v.IsPresent(), nil
}
