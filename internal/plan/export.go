package plan

import (
	"errors"
	"fmt"

	"field-mapper/internal/common"
	"field-mapper/internal/mapping"
)

// ErrNotExportable is returned by Export for fields that have no catalog
// representation: anonymous functions and unnamed nested mappers.
var ErrNotExportable = errors.New("field cannot be exported")

// Export turns a plan back into a catalog mapper definition.
func Export(p *Plan, name string) (mapping.MapperDef, error) {
	fields, err := exportFields(p, p.Roots)
	if err != nil {
		return mapping.MapperDef{}, fmt.Errorf("mapper %q: %w", name, err)
	}

	return mapping.MapperDef{
		Name:     name,
		Defaults: common.CloneMap(p.Defaults),
		Fields:   fields,
	}, nil
}

func exportFields(p *Plan, ids []int) (mapping.FieldSet, error) {
	fs := make(mapping.FieldSet, 0, len(ids))

	for _, id := range ids {
		n := p.Node(id)
		def := mapping.FieldDef{Target: n.Target}

		switch n.Kind {
		case RulePath:
			def.Kind = mapping.FieldPathKind
			def.Path = n.Path.Raw

		case RuleFunc:
			if n.Transform == "" {
				return nil, fmt.Errorf("%w: %q uses an anonymous function", ErrNotExportable, n.TargetPath)
			}

			def.Kind = mapping.FieldTransformKind
			def.Transform = n.Transform
			def.Path = n.From

		case RuleMapper:
			if n.Mapper == "" {
				return nil, fmt.Errorf("%w: %q uses an unnamed mapper", ErrNotExportable, n.TargetPath)
			}

			def.Kind = mapping.FieldMapperKind
			def.Mapper = n.Mapper

		case RuleObject:
			nested, err := exportFields(p, n.Children)
			if err != nil {
				return nil, err
			}

			def.Kind = mapping.FieldObjectKind
			def.Fields = nested
		}

		fs = append(fs, def)
	}

	return fs, nil
}

// Report is a human-readable summary of a plan.
type Report struct {
	Mapper string
	Fields []FieldReport
	Counts map[RuleKind]int
}

// FieldReport describes one field record.
type FieldReport struct {
	TargetPath string
	Kind       RuleKind
	Source     string
	HasDefault bool
	Default    any
	Depth      int
}

// Summarize creates a report of every field record in arena order.
func Summarize(p *Plan, name string) *Report {
	report := &Report{
		Mapper: name,
		Fields: make([]FieldReport, 0, len(p.Nodes)),
		Counts: make(map[RuleKind]int),
	}

	p.Walk(func(n *Node) {
		report.Counts[n.Kind]++
		report.Fields = append(report.Fields, FieldReport{
			TargetPath: n.TargetPath,
			Kind:       n.Kind,
			Source:     describeSource(n),
			HasDefault: n.Default.IsPresent(),
			Default:    n.Default.OrEmpty(),
			Depth:      depth(p, n),
		})
	})

	return report
}

// Kinds returns the rule kinds present in the report, in kind order.
func (r *Report) Kinds() []RuleKind {
	out := make([]RuleKind, 0, len(r.Counts))
	for _, k := range []RuleKind{RulePath, RuleFunc, RuleMapper, RuleObject} {
		if r.Counts[k] > 0 {
			out = append(out, k)
		}
	}

	return out
}

func describeSource(n *Node) string {
	switch n.Kind {
	case RulePath:
		return n.Path.Raw
	case RuleFunc:
		switch {
		case n.Transform == "":
			return "func"
		case n.From == "":
			return n.Transform + "()"
		default:
			return n.Transform + "(" + n.From + ")"
		}
	case RuleMapper:
		if n.Mapper == "" {
			return "mapper"
		}

		return "mapper " + n.Mapper
	default:
		return ""
	}
}

func depth(p *Plan, n *Node) int {
	d := 0
	for parent := n.Parent; parent >= 0; parent = p.Nodes[parent].Parent {
		d++
	}

	return d
}
