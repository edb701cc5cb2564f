package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-mapper/internal/mapping"
)

func identity(src any) (any, error) { return src, nil }

func addressEntry() Entry {
	return Entry{
		Target: "addr",
		Kind:   RuleMapper,
		Mapper: "address",
		Fields: []Entry{
			{Target: "zip", Kind: RulePath, Path: "zip"},
			{Target: "city", Kind: RulePath, Path: "city"},
		},
		Defaults: map[string]any{"city": "Inner", "zip": "00000"},
	}
}

func TestBuild_LayoutAndOrder(t *testing.T) {
	entries := []Entry{
		{Target: "name", Kind: RulePath, Path: "profile.name"},
		addressEntry(),
		{Target: "contact", Kind: RuleObject, Fields: []Entry{
			{Target: "email", Kind: RulePath, Path: "emails.[0]"},
		}},
		{Target: "id", Kind: RuleFunc, Func: identity, Transform: "string", Path: "id"},
	}

	p, err := Build(entries, nil)
	require.NoError(t, err)

	targets := make([]string, 0, len(p.Roots))
	for _, id := range p.Roots {
		targets = append(targets, p.Node(id).Target)
	}

	assert.Equal(t, []string{"addr", "contact", "id", "name"}, targets)

	var paths []string

	p.Walk(func(n *Node) { paths = append(paths, n.TargetPath) })
	assert.Equal(t, []string{"addr", "addr.city", "addr.zip", "contact", "contact.email", "id", "name"}, paths)

	for i, n := range p.Nodes {
		assert.Equal(t, i, n.ID)
	}

	addr := p.Node(p.Roots[0])
	require.Len(t, addr.Children, 2)
	assert.Equal(t, addr.ID, p.Node(addr.Children[0]).Parent)
	assert.Equal(t, -1, addr.Parent)

	name := p.Node(p.Roots[3])
	assert.Equal(t, RulePath, name.Kind)
	assert.Equal(t, "profile?.name", name.Path.Objects[0].Path)

	id := p.Node(p.Roots[2])
	assert.NotNil(t, id.Func)
	assert.Equal(t, "id", id.From)
	assert.Equal(t, "string", id.Transform)

	assert.Equal(t, 5, p.Leaves())
}

func TestBuild_Defaults(t *testing.T) {
	entries := []Entry{
		{Target: "role", Kind: RulePath, Path: "role"},
		{Target: "note", Kind: RulePath, Path: "note"},
		{Target: "missing", Kind: RulePath, Path: "missing"},
		{Target: "meta", Kind: RuleObject, Fields: []Entry{
			{Target: "source", Kind: RulePath, Path: "src"},
		}},
	}

	p, err := Build(entries, map[string]any{
		"role": "guest",
		"note": nil,
		"meta": map[string]any{"source": "api"},
	})
	require.NoError(t, err)

	byPath := map[string]*Node{}
	p.Walk(func(n *Node) { byPath[n.TargetPath] = n })

	assert.Equal(t, "guest", byPath["role"].Default.MustGet())
	assert.True(t, byPath["note"].Default.IsPresent())
	assert.Nil(t, byPath["note"].Default.MustGet())
	assert.True(t, byPath["missing"].Default.IsAbsent())
	assert.Equal(t, "api", byPath["meta.source"].Default.MustGet())
}

func TestBuild_NestedMapperDefaultPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		defaults map[string]any
		wantCity any
		citySet  bool
		wantZip  any
		zipSet   bool
	}{
		{
			name:     "nested defaults when outer absent",
			defaults: nil,
			wantCity: "Inner", citySet: true,
			wantZip: "00000", zipSet: true,
		},
		{
			name:     "outer key wins",
			defaults: map[string]any{"addr": map[string]any{"city": "Outer"}},
			wantCity: "Outer", citySet: true,
			wantZip: "00000", zipSet: true,
		},
		{
			name:     "explicit outer nil key suppresses nested key",
			defaults: map[string]any{"addr": map[string]any{"city": nil}},
			wantCity: nil, citySet: true,
			wantZip: "00000", zipSet: true,
		},
		{
			name:     "explicit outer nil subtree suppresses all",
			defaults: map[string]any{"addr": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Build([]Entry{addressEntry()}, tt.defaults)
			require.NoError(t, err)

			byPath := map[string]*Node{}
			p.Walk(func(n *Node) { byPath[n.TargetPath] = n })

			city, zip := byPath["addr.city"].Default, byPath["addr.zip"].Default
			assert.Equal(t, tt.citySet, city.IsPresent())
			assert.Equal(t, tt.wantCity, city.OrEmpty())
			assert.Equal(t, tt.zipSet, zip.IsPresent())
			assert.Equal(t, tt.wantZip, zip.OrEmpty())
		})
	}
}

func TestMergeDefaults(t *testing.T) {
	nested := map[string]any{
		"a":   1,
		"geo": map[string]any{"lat": 1.0, "lng": 2.0},
	}

	got := MergeDefaults(nested, map[string]any{"geo": map[string]any{"lat": 9.0}, "b": 2}, true)
	assert.Equal(t, map[string]any{
		"a":   1,
		"b":   2,
		"geo": map[string]any{"lat": 9.0, "lng": 2.0},
	}, got)

	assert.Equal(t, 1.0, nested["geo"].(map[string]any)["lat"], "input must not be mutated")
	assert.Equal(t, nested, MergeDefaults(nested, nil, false))
	assert.Nil(t, MergeDefaults(nested, nil, true))
	assert.Nil(t, MergeDefaults(nested, "scalar", true))
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{name: "nil func", entries: []Entry{{Target: "x", Kind: RuleFunc}}},
		{name: "unknown kind", entries: []Entry{{Target: "x"}}},
		{name: "duplicate target", entries: []Entry{
			{Target: "x", Kind: RulePath, Path: "a"},
			{Target: "x", Kind: RulePath, Path: "b"},
		}},
		{name: "nested nil func", entries: []Entry{
			{Target: "o", Kind: RuleObject, Fields: []Entry{{Target: "f", Kind: RuleFunc}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.entries, nil)
			require.ErrorIs(t, err, ErrInvalidEntry)
		})
	}
}

func TestBuild_Empty(t *testing.T) {
	p, err := Build(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, p.Nodes)
	assert.Empty(t, p.Roots)
	assert.Equal(t, 0, p.Leaves())
}

func TestRuleKind_String(t *testing.T) {
	assert.Equal(t, "RulePath", RulePath.String())
	assert.Equal(t, "RuleObject", RuleObject.String())
	assert.Equal(t, "RuleKind(9)", RuleKind(9).String())
}

func TestBuild_WildcardPath(t *testing.T) {
	p, err := Build([]Entry{{Target: "cs", Kind: RulePath, Path: "a.[].b.[].c"}}, nil)
	require.NoError(t, err)

	path := p.Node(p.Roots[0]).Path
	assert.Equal(t, 2, path.Wildcards())
	assert.Equal(t, mapping.ParsePath("a.[].b.[].c"), path)
}
