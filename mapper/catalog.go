package mapper

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"field-mapper/internal/diagnostic"
	"field-mapper/internal/mapping"
)

var (
	// ErrInvalidCatalog is returned when a catalog fails validation.
	ErrInvalidCatalog = errors.New("invalid mapping catalog")
	// ErrCatalogLoaded is returned when a second catalog file is loaded.
	ErrCatalogLoaded = errors.New("catalog already loaded")
)

// Catalog builds named mappers from a YAML catalog file.
//
// Transforms referenced by "$transform" must be registered before the file
// is loaded. The builtin transforms are always available: upper, lower,
// trim, string, len, first and last, plus the conversions int, float, bool,
// time, unix and duration.
type Catalog struct {
	transforms *mapping.TransformRegistry
	opts       []Option

	file    *mapping.MappingFile
	mappers map[string]*Mapper
	diags   *diagnostic.Diagnostics
}

// NewCatalog creates an empty catalog. The options are applied to every
// mapper it builds, before the catalog's own name and mode settings.
func NewCatalog(opts ...Option) *Catalog {
	return &Catalog{
		transforms: mapping.NewBuiltinRegistry(),
		opts:       opts,
		mappers:    make(map[string]*Mapper),
	}
}

// Register adds a named transform.
func (c *Catalog) Register(name string, fn Func) error {
	return c.transforms.Register(name, mapping.TransformFunc(fn))
}

// LoadFile loads a catalog file.
func (c *Catalog) LoadFile(path string) error {
	if c.file != nil {
		return ErrCatalogLoaded
	}

	mf, err := mapping.LoadFile(path)
	if err != nil {
		return err
	}

	return c.Load(mf)
}

// Parse loads a catalog from YAML data.
func (c *Catalog) Parse(data []byte) error {
	if c.file != nil {
		return ErrCatalogLoaded
	}

	mf, err := mapping.Parse(data)
	if err != nil {
		return err
	}

	return c.Load(mf)
}

// Load validates a parsed catalog and builds its mappers in dependency order.
func (c *Catalog) Load(mf *mapping.MappingFile) error {
	if c.file != nil {
		return ErrCatalogLoaded
	}

	diags := mapping.Validate(mf, c.transforms)
	c.diags = diags

	if diags.HasErrors() {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, diags.Error())
	}

	order, err := mapping.BuildOrder(mf)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	built := make(map[string]*Mapper, len(mf.Mappers))

	for _, idx := range order {
		def := &mf.Mappers[idx]

		spec, err := c.spec(def.Fields, built)
		if err != nil {
			return fmt.Errorf("mapper %q: %w", def.Name, err)
		}

		opts := append(slices.Clone(c.opts), WithName(def.Name))
		if def.Unsafe {
			opts = append(opts, WithUnsafe())
		}

		built[def.Name] = Create(spec, def.Defaults, opts...)
	}

	c.mappers = built
	c.file = mf

	return nil
}

func (c *Catalog) spec(fields mapping.FieldSet, built map[string]*Mapper) (Spec, error) {
	spec := make(Spec, len(fields))

	for _, f := range fields {
		switch f.Kind {
		case mapping.FieldPathKind:
			spec[f.Target] = Path(f.Path)

		case mapping.FieldTransformKind:
			fn, ok := c.transforms.Get(f.Transform)
			if !ok {
				return nil, fmt.Errorf("field %q: unknown transform %q", f.Target, f.Transform)
			}

			spec[f.Target] = transform(f.Transform, Path(f.Path), fn)

		case mapping.FieldMapperKind:
			nested, ok := built[f.Mapper]
			if !ok {
				return nil, fmt.Errorf("field %q: %w %q", f.Target, ErrUnknownMapper, f.Mapper)
			}

			spec[f.Target] = nested

		case mapping.FieldObjectKind:
			nested, err := c.spec(f.Fields, built)
			if err != nil {
				return nil, err
			}

			spec[f.Target] = nested
		}
	}

	return spec, nil
}

// Mapper returns the named mapper.
func (c *Catalog) Mapper(name string) (*Mapper, error) {
	m, ok := c.mappers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMapper, name)
	}

	return m, nil
}

// Names returns the mapper names in declaration order.
func (c *Catalog) Names() []string {
	if c.file == nil {
		return nil
	}

	return lo.Map(c.file.Mappers, func(def mapping.MapperDef, _ int) string {
		return def.Name
	})
}

// Compile compiles every mapper, stopping at the first failure.
func (c *Catalog) Compile() error {
	for _, name := range c.Names() {
		if err := c.mappers[name].Compile(); err != nil {
			return fmt.Errorf("mapper %q: %w", name, err)
		}
	}

	return nil
}

// Diagnostics returns the validation report of the loaded file, including
// warnings and notes. It is nil before a file is loaded.
func (c *Catalog) Diagnostics() *diagnostic.Diagnostics {
	return c.diags
}

// File returns the loaded catalog definition.
func (c *Catalog) File() *mapping.MappingFile {
	return c.file
}

// Transforms returns the names of all available transforms.
func (c *Catalog) Transforms() []string {
	return c.transforms.Names()
}
