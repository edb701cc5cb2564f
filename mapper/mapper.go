package mapper

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"field-mapper/internal/common"
	"field-mapper/internal/gen"
	"field-mapper/internal/plan"
)

var (
	// ErrNilRule is returned when a Spec holds a nil rule or a nil *Mapper.
	ErrNilRule = errors.New("nil mapping rule")
	// ErrNilFunc is returned when a Spec holds a nil Func.
	ErrNilFunc = errors.New("nil mapping function")
	// ErrCyclicMapper is returned when a mapper contains itself.
	ErrCyclicMapper = errors.New("cyclic nested mapper")
	// ErrUnknownMapper is returned when a catalog has no mapper of that name.
	ErrUnknownMapper = errors.New("unknown mapper")
)

// MappingResult is the outcome of one Execute call.
type MappingResult struct {
	// Result is the produced target. Fields that failed in safe mode are absent.
	Result map[string]any `json:"result"`
	// Errors holds one message per failed field; empty when every field resolved.
	Errors []string `json:"errors"`
}

// Mapper is a compiled-on-demand mapping routine.
type Mapper struct {
	spec     Spec
	defaults Defaults
	opts     options

	mu       sync.Mutex
	compiled atomic.Pointer[compiled]
}

type compiled struct {
	plan    *plan.Plan
	routine *gen.Routine
}

// Create builds a mapper from a spec and optional defaults. Both are copied;
// later changes by the caller have no effect.
func Create(spec Spec, defaults Defaults, opts ...Option) *Mapper {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Mapper{
		spec:     cloneSpec(spec),
		defaults: cloneDefaults(defaults),
		opts:     o,
	}
}

// Name returns the name set with WithName.
func (m *Mapper) Name() string {
	return m.opts.name
}

// Unsafe reports whether the mapper runs in unsafe mode.
func (m *Mapper) Unsafe() bool {
	return m.opts.unsafe
}

// Compile builds the routine, replacing any previous one. Compiling is
// idempotent; Execute compiles on first use, so calling Compile is only
// needed to surface configuration errors early.
func (m *Mapper) Compile() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.compileLocked()
}

func (m *Mapper) compileLocked() error {
	start := time.Now()

	entries, err := toEntries(m.spec, map[*Mapper]bool{m: true}, "")
	if err != nil {
		return err
	}

	p, err := plan.Build(entries, m.defaults)
	if err != nil {
		return fmt.Errorf("building plan: %w", err)
	}

	routine := gen.Compile(p, gen.Options{
		Unsafe:       m.opts.unsafe,
		OnFieldError: m.onFieldError,
	})

	m.compiled.Store(&compiled{plan: p, routine: routine})

	elapsed := time.Since(start)

	m.opts.logger.Debug("mapper compiled",
		slog.String("mapper", m.opts.name),
		slog.Int("fields", p.Leaves()),
		slog.Int("nodes", len(p.Nodes)),
		slog.Duration("duration", elapsed),
	)

	if m.opts.observer != nil {
		m.opts.observer.Compiled(m.opts.name, p.Leaves(), elapsed)
	}

	return nil
}

func (m *Mapper) onFieldError(fe *gen.FieldError) {
	m.opts.logger.Debug("field mapping failed",
		slog.String("mapper", m.opts.name),
		slog.String("field", fe.Target),
		slog.Any("error", fe.Err),
	)
}

// load returns the compiled routine, compiling it on first use.
func (m *Mapper) load() (*compiled, error) {
	if c := m.compiled.Load(); c != nil {
		return c, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if c := m.compiled.Load(); c != nil {
		return c, nil
	}

	if err := m.compileLocked(); err != nil {
		return nil, err
	}

	return m.compiled.Load(), nil
}

// Execute maps src into a new target.
//
// In safe mode the error is non-nil only when compiling fails; field
// failures are reported in MappingResult.Errors. In unsafe mode the first
// field error is returned as is, with a zero MappingResult.
func (m *Mapper) Execute(src any) (MappingResult, error) {
	c, err := m.load()
	if err != nil {
		return MappingResult{}, err
	}

	start := time.Now()
	res := MappingResult{
		Result: make(map[string]any, len(c.plan.Roots)),
		Errors: []string{},
	}

	if err := c.routine.Run(src, res.Result, &res.Errors); err != nil {
		m.opts.logger.Debug("mapping aborted",
			slog.String("mapper", m.opts.name),
			slog.Any("error", err),
		)

		return MappingResult{}, err
	}

	if m.opts.observer != nil {
		m.opts.observer.Executed(m.opts.name, time.Since(start), len(res.Errors))
	}

	return res, nil
}

// ExecuteArgs maps a tuple of arguments; paths select them with "$0", "$1"...
func (m *Mapper) ExecuteArgs(args ...any) (MappingResult, error) {
	return m.Execute(args)
}

// Render returns the compiled routine as formatted Go-like source.
func (m *Mapper) Render() (string, error) {
	c, err := m.load()
	if err != nil {
		return "", err
	}

	return gen.Render(c.plan, m.opts.name, m.opts.unsafe)
}

// Plan returns the compiled field layout.
func (m *Mapper) Plan() (*plan.Plan, error) {
	c, err := m.load()
	if err != nil {
		return nil, err
	}

	return c.plan, nil
}

// toEntries converts a spec into plan entries. visiting holds the mappers on
// the current nesting chain.
func toEntries(spec Spec, visiting map[*Mapper]bool, prefix string) ([]plan.Entry, error) {
	out := make([]plan.Entry, 0, len(spec))

	for target, rule := range spec {
		at := common.JoinPath(prefix, target)
		e := plan.Entry{Target: target}

		switch r := rule.(type) {
		case nil:
			return nil, fmt.Errorf("%w at field %q", ErrNilRule, at)

		case Path:
			e.Kind = plan.RulePath
			e.Path = string(r)

		case Func:
			if r == nil {
				return nil, fmt.Errorf("%w at field %q", ErrNilFunc, at)
			}

			e.Kind = plan.RuleFunc
			e.Func = plan.Func(r)

		case namedFunc:
			e.Kind = plan.RuleFunc
			e.Func = plan.Func(r.fn)
			e.Transform = r.name
			e.Path = string(r.from)

		case *Mapper:
			if r == nil {
				return nil, fmt.Errorf("%w at field %q", ErrNilRule, at)
			}

			if visiting[r] {
				return nil, fmt.Errorf("%w at field %q", ErrCyclicMapper, at)
			}

			visiting[r] = true
			fields, err := toEntries(r.spec, visiting, at)
			delete(visiting, r)

			if err != nil {
				return nil, err
			}

			e.Kind = plan.RuleMapper
			e.Mapper = r.opts.name
			e.Fields = fields
			e.Defaults = r.defaults

		case Spec:
			fields, err := toEntries(r, visiting, at)
			if err != nil {
				return nil, err
			}

			e.Kind = plan.RuleObject
			e.Fields = fields
		}

		out = append(out, e)
	}

	return out, nil
}
