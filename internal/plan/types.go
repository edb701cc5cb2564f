package plan

import (
	"github.com/samber/mo"

	"field-mapper/internal/mapping"
)

//go:generate go tool stringer -type=RuleKind -output=rulekind_string.go

// RuleKind is the closed set of field rule kinds.
type RuleKind int

const (
	_ RuleKind = iota // zero value is an invalid rule

	// RulePath resolves a field path against the scope source.
	RulePath
	// RuleFunc calls a captured transformer with the scope source.
	RuleFunc
	// RuleMapper runs a nested mapper against the scope narrowed to the field key.
	RuleMapper
	// RuleObject builds an inline sub-object against the same scope.
	RuleObject
)

// Func is a captured transformer.
type Func func(src any) (any, error)

// Entry is one target field of a specification tree.
type Entry struct {
	// Target is the target-field name.
	Target string
	// Kind selects which of the remaining fields is meaningful.
	Kind RuleKind
	// Path is the source field path (RulePath), or the path a named
	// transform reads from (RuleFunc, informational).
	Path string
	// Func is the transformer (RuleFunc).
	Func Func
	// Transform names a catalog transform (RuleFunc, informational).
	Transform string
	// Mapper names the nested mapper (RuleMapper, informational).
	Mapper string
	// Fields holds the nested entries (RuleMapper, RuleObject).
	Fields []Entry
	// Defaults are the nested mapper's own defaults (RuleMapper).
	Defaults map[string]any
}

// Node is one field record of the arena.
type Node struct {
	ID     int
	Parent int // -1 for top-level fields

	Target     string
	TargetPath string
	Kind       RuleKind

	// Path is the parsed source path (RulePath).
	Path mapping.FieldPath
	// Func is the captured transformer (RuleFunc).
	Func      Func
	Transform string
	From      string
	Mapper    string

	// Default is the fallback for RulePath and RuleFunc fields.
	// A present nil default writes nil.
	Default mo.Option[any]

	Children []int
}

// Plan is the arena of field records for one mapper.
type Plan struct {
	// Nodes in depth-first pre-order; Node.ID is the index.
	Nodes []Node
	// Roots are the top-level field IDs in target order.
	Roots []int
	// Defaults are the mapper's own top-level defaults.
	Defaults map[string]any
}

// Node returns the record with the given ID.
func (p *Plan) Node(id int) *Node {
	return &p.Nodes[id]
}

// Leaves returns the number of value-producing fields (paths and functions).
func (p *Plan) Leaves() int {
	n := 0

	for i := range p.Nodes {
		if k := p.Nodes[i].Kind; k == RulePath || k == RuleFunc {
			n++
		}
	}

	return n
}

// Walk calls fn for every node in arena order.
func (p *Plan) Walk(fn func(n *Node)) {
	for i := range p.Nodes {
		fn(&p.Nodes[i])
	}
}
