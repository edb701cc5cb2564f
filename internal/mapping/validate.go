package mapping

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"field-mapper/internal/common"
	"field-mapper/internal/diagnostic"
	"field-mapper/internal/match"
)

const maxSuggestions = 3

// Validate checks a mapping catalog for problems that would make its mappers
// fail to build or behave surprisingly. The transform registry is used to
// resolve "$transform" names; a nil registry means only builtins are known.
func Validate(mf *MappingFile, transforms *TransformRegistry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("mapping_is_nil", "mapping file is nil", "", "")
		return res
	}

	if transforms == nil {
		transforms = NewBuiltinRegistry()
	}

	if mf.Version != "" && mf.Version != CurrentVersion {
		res.AddWarning("unknown_version",
			fmt.Sprintf("catalog version %q is not %q", mf.Version, CurrentVersion), "", "")
	}

	names := make([]string, 0, len(mf.Mappers))
	seen := map[string]struct{}{}

	for _, m := range mf.Mappers {
		if m.Name == "" {
			res.AddError("empty_mapper_name", "mapper without a name", "", "")
			continue
		}

		if _, ok := seen[m.Name]; ok {
			res.AddError("duplicate_mapper", fmt.Sprintf("duplicate mapper %q", m.Name), m.Name, "")
			continue
		}

		seen[m.Name] = struct{}{}
		names = append(names, m.Name)
	}

	v := &validator{res: res, transforms: transforms, mappers: names}

	for i := range mf.Mappers {
		res.Merge(v.mapper(&mf.Mappers[i]))
	}

	if _, err := BuildOrder(mf); err != nil {
		if errors.Is(err, ErrMapperCycle) {
			res.AddError("mapper_cycle", err.Error(), "", "")
		}
	}

	return res
}

type validator struct {
	res        *diagnostic.Diagnostics
	transforms *TransformRegistry
	mappers    []string
}

// mapper checks one mapper definition into a report of its own.
func (v *validator) mapper(m *MapperDef) diagnostic.Diagnostics {
	mv := &validator{res: &diagnostic.Diagnostics{}, transforms: v.transforms, mappers: v.mappers}

	if len(m.Fields) == 0 {
		mv.res.AddWarning("empty_mapper", "mapper has no fields", m.Name, "")
	}

	if m.Unsafe {
		mv.res.AddInfo("unsafe_mode", "field errors abort the whole mapping call", m.Name, "")
	}

	mv.fields(m.Name, "", m.Fields)
	mv.defaults(m.Name, "", m.Fields, m.Defaults)

	return *mv.res
}

func (v *validator) fields(mapper, parent string, fs FieldSet) {
	var targets []string

	for _, f := range fs {
		at := common.JoinPath(parent, f.Target)

		if f.Target == "" {
			v.res.AddError("empty_target", "empty target field name", mapper, at)
		}

		if slices.Contains(targets, f.Target) {
			v.res.AddError("duplicate_target", fmt.Sprintf("duplicate target field %q", f.Target), mapper, at)
		} else if prev, ok := lo.Find(targets, func(t string) bool { return match.EqualIdent(t, f.Target) }); ok {
			v.res.AddWarning("similar_target",
				fmt.Sprintf("target field %q differs from %q only in case or separators", f.Target, prev), mapper, at)
		}

		targets = append(targets, f.Target)

		for _, key := range f.Unknown {
			v.res.AddError("unknown_directive", fmt.Sprintf("unknown directive %q", key), mapper, at)
			v.res.WithSuggestions(diagnostic.DiagnosticError,
				match.Suggest(key, []string{DirectiveTransform, DirectiveFrom, DirectiveMapper}, 1))
		}

		switch f.Kind {
		case FieldPathKind:
			v.path(mapper, at, f.Path)

		case FieldTransformKind:
			if f.Path != "" {
				v.path(mapper, at, f.Path)
			}

			if !v.transforms.Has(f.Transform) {
				v.res.AddError("unknown_transform", fmt.Sprintf("unknown transform %q", f.Transform), mapper, at)
				v.res.WithSuggestions(diagnostic.DiagnosticError,
					match.Suggest(f.Transform, v.transforms.Names(), maxSuggestions))
			}

		case FieldMapperKind:
			if !slices.Contains(v.mappers, f.Mapper) {
				v.res.AddError("unknown_mapper", fmt.Sprintf("unknown mapper %q", f.Mapper), mapper, at)
				v.res.WithSuggestions(diagnostic.DiagnosticError,
					match.Suggest(f.Mapper, v.mappers, maxSuggestions))
			}

		case FieldObjectKind:
			if len(f.Fields) == 0 {
				v.res.AddWarning("empty_object", "nested object has no fields", mapper, at)
			}

			v.fields(mapper, at, f.Fields)
		}
	}
}

func (v *validator) path(mapper, at, path string) {
	if err := CheckPath(path); err != nil {
		v.res.AddError("invalid_path", err.Error(), mapper, at)
	}
}

// defaults warns about default keys that no field at the same level can use.
func (v *validator) defaults(mapper, parent string, fs FieldSet, defaults map[string]any) {
	keys := lo.Keys(defaults)
	slices.Sort(keys)

	for _, key := range keys {
		at := common.JoinPath(parent, key)

		f, ok := fs.Lookup(key)
		if !ok {
			v.res.AddWarning("unused_default", fmt.Sprintf("default %q has no matching field", key), mapper, at)
			v.res.WithSuggestions(diagnostic.DiagnosticWarning, match.Suggest(key, fs.Targets(), maxSuggestions))

			continue
		}

		nested, isMap := defaults[key].(map[string]any)
		if isMap && f.Kind == FieldObjectKind {
			v.defaults(mapper, at, f.Fields, nested)
		}
	}
}
