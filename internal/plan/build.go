package plan

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/samber/mo"

	"field-mapper/internal/common"
	"field-mapper/internal/mapping"
)

// ErrInvalidEntry is returned by Build for entries that cannot be laid out.
var ErrInvalidEntry = errors.New("invalid plan entry")

// Build lays out entries as an arena. Every level is ordered by target name.
//
// Defaults mirror the target shape. For a nested mapper the outer subtree is
// merged over the mapper's own defaults: a key the outer side sets, even to
// nil, wins; a key it leaves out falls through.
func Build(entries []Entry, defaults map[string]any) (*Plan, error) {
	p := &Plan{Defaults: defaults}

	roots, err := p.level(-1, "", entries, defaults)
	if err != nil {
		return nil, err
	}

	p.Roots = roots

	return p, nil
}

func (p *Plan) level(parent int, prefix string, entries []Entry, defaults map[string]any) ([]int, error) {
	sorted := slices.SortedFunc(slices.Values(entries), func(a, b Entry) int {
		return strings.Compare(a.Target, b.Target)
	})

	ids := make([]int, 0, len(sorted))

	for i := range sorted {
		e := &sorted[i]

		if i > 0 && sorted[i-1].Target == e.Target {
			return nil, fmt.Errorf("%w: duplicate target %q", ErrInvalidEntry, common.JoinPath(prefix, e.Target))
		}

		id, err := p.add(parent, prefix, e, defaults)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func (p *Plan) add(parent int, prefix string, e *Entry, defaults map[string]any) (int, error) {
	id := len(p.Nodes)
	path := common.JoinPath(prefix, e.Target)

	p.Nodes = append(p.Nodes, Node{
		ID:         id,
		Parent:     parent,
		Target:     e.Target,
		TargetPath: path,
		Kind:       e.Kind,
		Transform:  e.Transform,
		Mapper:     e.Mapper,
	})

	outer, hasOuter := defaults[e.Target]

	var (
		children []int
		err      error
	)

	switch e.Kind {
	case RulePath:
		p.Nodes[id].Path = mapping.ParsePath(e.Path)
		p.Nodes[id].Default = mo.TupleToOption(outer, hasOuter)

	case RuleFunc:
		if e.Func == nil {
			return 0, fmt.Errorf("%w: nil function at %q", ErrInvalidEntry, path)
		}

		p.Nodes[id].Func = e.Func
		p.Nodes[id].From = e.Path
		p.Nodes[id].Default = mo.TupleToOption(outer, hasOuter)

	case RuleMapper:
		children, err = p.level(id, path, e.Fields, MergeDefaults(e.Defaults, outer, hasOuter))

	case RuleObject:
		sub, _ := outer.(map[string]any)
		children, err = p.level(id, path, e.Fields, sub)

	default:
		return 0, fmt.Errorf("%w: unknown rule kind %d at %q", ErrInvalidEntry, e.Kind, path)
	}

	if err != nil {
		return 0, err
	}

	p.Nodes[id].Children = children

	return id, nil
}

// MergeDefaults returns the defaults a nested mapper runs with when the
// outer mapper supplies outer (present when hasOuter) for its field.
//
// An outer map is merged key by key over the nested defaults, recursively.
// An outer nil, or any other non-map value, suppresses the nested defaults.
// An absent outer value keeps them as they are.
func MergeDefaults(nested map[string]any, outer any, hasOuter bool) map[string]any {
	if !hasOuter {
		return nested
	}

	over, ok := outer.(map[string]any)
	if !ok {
		return nil
	}

	return mergeMaps(nested, over)
}

func mergeMaps(base, over map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(over))
	maps.Copy(out, base)

	for k, v := range over {
		sub, isMap := v.(map[string]any)
		prev, prevIsMap := out[k].(map[string]any)

		if isMap && prevIsMap {
			out[k] = mergeMaps(prev, sub)
			continue
		}

		out[k] = v
	}

	return out
}
