package mapping

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"field-mapper/internal/common"
)

// Directive keys recognised inside a field definition object.
const (
	DirectiveTransform = "$transform"
	DirectiveFrom      = "$from"
	DirectiveMapper    = "$mapper"
)

// MappingFile represents the root of a YAML mapping catalog.
// Mapping catalogs are developer-authored configuration: the mappers built
// from them run as compiled code and must never come from untrusted input.
type MappingFile struct {
	// Version of the catalog schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Mappers is the list of named mapper definitions.
	Mappers []MapperDef `yaml:"mappers"`
}

// Lookup returns the mapper definition with the given name, or nil.
func (mf *MappingFile) Lookup(name string) *MapperDef {
	for i := range mf.Mappers {
		if mf.Mappers[i].Name == name {
			return &mf.Mappers[i]
		}
	}

	return nil
}

// MapperDef defines one named mapper.
type MapperDef struct {
	// Name identifies the mapper inside the catalog and in "$mapper" references.
	Name string `yaml:"name"`

	// Description is an optional human-readable description.
	Description string `yaml:"description,omitempty"`

	// Unsafe disables per-field error collection: the first failing field
	// aborts the whole mapping call.
	Unsafe bool `yaml:"unsafe,omitempty"`

	// Defaults is a partial mirror of the target shape used when a field
	// resolves to nothing.
	Defaults map[string]any `yaml:"defaults,omitempty"`

	// Fields maps target-field names to their rules.
	Fields FieldSet `yaml:"fields"`
}

// FieldKind is the structural kind of a field definition.
type FieldKind int

const (
	// FieldPathKind reads a source field path: `name: profile.name`.
	FieldPathKind FieldKind = iota
	// FieldTransformKind applies a registered transform: `{$transform: upper, $from: name}`.
	FieldTransformKind
	// FieldMapperKind delegates to another catalog mapper: `{$mapper: address}`.
	FieldMapperKind
	// FieldObjectKind builds an inline sub-object from nested field definitions.
	FieldObjectKind
)

// String returns a human-readable representation of the field kind.
func (k FieldKind) String() string {
	switch k {
	case FieldPathKind:
		return "path"
	case FieldTransformKind:
		return "transform"
	case FieldMapperKind:
		return "mapper"
	case FieldObjectKind:
		return "object"
	default:
		return common.UnknownStr
	}
}

// FieldDef is one target-field definition.
type FieldDef struct {
	// Target is the target-field name.
	Target string
	// Kind selects which of the remaining fields is meaningful.
	Kind FieldKind
	// Path is the source path (FieldPathKind) or the optional "$from" path
	// (FieldTransformKind).
	Path string
	// Transform is the registered transform name.
	Transform string
	// Mapper is the referenced mapper name.
	Mapper string
	// Fields holds the nested definitions of an inline object.
	Fields FieldSet
	// Unknown lists keys of a directive object that are not recognised.
	Unknown []string
}

// FieldSet is an ordered list of field definitions. In YAML it is a mapping
// from target-field name to a path string, a directive object, or a nested
// mapping.
type FieldSet []FieldDef

// Targets returns the target-field names in declaration order.
func (s FieldSet) Targets() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.Target
	}

	return out
}

// Lookup returns the definition for a target field.
func (s FieldSet) Lookup(target string) (FieldDef, bool) {
	for _, f := range s {
		if f.Target == target {
			return f, true
		}
	}

	return FieldDef{}, false
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *FieldSet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping of target field to rule", value.Line)
	}

	result := make(FieldSet, 0, len(value.Content)/2)

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]

		def, err := decodeField(keyNode.Value, valNode)
		if err != nil {
			return err
		}

		result = append(result, def)
	}

	*s = result

	return nil
}

func decodeField(target string, node *yaml.Node) (FieldDef, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return FieldDef{Target: target, Kind: FieldPathKind, Path: node.Value}, nil

	case yaml.MappingNode:
		if isDirective(node) {
			return decodeDirective(target, node)
		}

		var nested FieldSet
		if err := nested.UnmarshalYAML(node); err != nil {
			return FieldDef{}, err
		}

		return FieldDef{Target: target, Kind: FieldObjectKind, Fields: nested}, nil

	default:
		return FieldDef{}, fmt.Errorf(
			"line %d: field %q must be a path string, a directive object or a nested mapping",
			node.Line, target)
	}
}

func isDirective(node *yaml.Node) bool {
	for i := 0; i < len(node.Content); i += 2 {
		if strings.HasPrefix(node.Content[i].Value, "$") {
			return true
		}
	}

	return false
}

func decodeDirective(target string, node *yaml.Node) (FieldDef, error) {
	def := FieldDef{Target: target}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			def.Unknown = append(def.Unknown, key)
			continue
		}

		switch key {
		case DirectiveTransform:
			def.Transform = val.Value
		case DirectiveFrom:
			def.Path = val.Value
		case DirectiveMapper:
			def.Mapper = val.Value
		default:
			def.Unknown = append(def.Unknown, key)
		}
	}

	switch {
	case def.Transform != "" && def.Mapper != "":
		return FieldDef{}, fmt.Errorf("line %d: field %q cannot use both %s and %s",
			node.Line, target, DirectiveTransform, DirectiveMapper)
	case def.Transform != "":
		def.Kind = FieldTransformKind
	case def.Mapper != "":
		if def.Path != "" {
			return FieldDef{}, fmt.Errorf("line %d: field %q: %s is only valid with %s",
				node.Line, target, DirectiveFrom, DirectiveTransform)
		}

		def.Kind = FieldMapperKind
	default:
		return FieldDef{}, fmt.Errorf("line %d: field %q: directive object needs %s or %s",
			node.Line, target, DirectiveTransform, DirectiveMapper)
	}

	return def, nil
}

// MarshalYAML implements yaml.Marshaler, preserving declaration order.
func (s FieldSet) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, def := range s {
		val, err := encodeField(def)
		if err != nil {
			return nil, err
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: def.Target},
			val,
		)
	}

	return node, nil
}

func encodeField(def FieldDef) (*yaml.Node, error) {
	scalar := func(v string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	}

	switch def.Kind {
	case FieldPathKind:
		return scalar(def.Path), nil

	case FieldTransformKind:
		node := &yaml.Node{Kind: yaml.MappingNode}
		node.Content = append(node.Content, scalar(DirectiveTransform), scalar(def.Transform))

		if def.Path != "" {
			node.Content = append(node.Content, scalar(DirectiveFrom), scalar(def.Path))
		}

		return node, nil

	case FieldMapperKind:
		return &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: []*yaml.Node{scalar(DirectiveMapper), scalar(def.Mapper)},
		}, nil

	case FieldObjectKind:
		nested, err := def.Fields.MarshalYAML()
		if err != nil {
			return nil, err
		}

		node, ok := nested.(*yaml.Node)
		if !ok {
			return nil, errors.New("nested field set did not marshal to a node")
		}

		return node, nil

	default:
		return nil, fmt.Errorf("field %q: unknown kind %d", def.Target, def.Kind)
	}
}
