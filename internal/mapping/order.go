package mapping

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// ErrMapperCycle is returned when catalog mappers reference each other in a loop.
var ErrMapperCycle = errors.New("mapper reference cycle")

// References returns the distinct mapper names referenced by "$mapper"
// directives anywhere in the field set, in first-seen order.
func (s FieldSet) References() []string {
	var out []string

	var walk func(FieldSet)
	walk = func(fs FieldSet) {
		for _, f := range fs {
			switch f.Kind {
			case FieldMapperKind:
				if !slices.Contains(out, f.Mapper) {
					out = append(out, f.Mapper)
				}
			case FieldObjectKind:
				walk(f.Fields)
			}
		}
	}
	walk(s)

	return out
}

// BuildOrder returns mapper indices so that every mapper comes after the
// mappers it references. References to unknown mappers are ignored.
func BuildOrder(mf *MappingFile) ([]int, error) {
	index := make(map[string]int, len(mf.Mappers))
	for i, m := range mf.Mappers {
		if _, dup := index[m.Name]; !dup {
			index[m.Name] = i
		}
	}

	order, remaining := topoSort(len(mf.Mappers), func(i int) []int {
		var deps []int

		for _, ref := range mf.Mappers[i].Fields.References() {
			if j, ok := index[ref]; ok {
				deps = append(deps, j)
			}
		}

		return deps
	})

	if len(remaining) > 0 {
		names := make([]string, len(remaining))
		for k, i := range remaining {
			names[k] = mf.Mappers[i].Name
		}

		return nil, fmt.Errorf("%w between %s", ErrMapperCycle, strings.Join(names, ", "))
	}

	return order, nil
}

// topoSort returns indices in dependency order and, on a cycle, the indices
// that could not be ordered.
//
// depsFn(i) yields indices that must come before i. When several nodes are
// available the smallest index is picked, so the result is deterministic.
func topoSort(n int, depsFn func(i int) []int) ([]int, []int) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = slices.Insert(ready, k, j)
			}
		}
	}

	if len(order) == n {
		return order, nil
	}

	var remaining []int

	for i := range n {
		if indeg[i] > 0 {
			remaining = append(remaining, i)
		}
	}

	return nil, remaining
}
