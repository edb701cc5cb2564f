package access

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-mapper/internal/mapping"
)

type Audit struct {
	CreatedBy string
}

type customer struct {
	Audit

	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Secret   string `json:"-"`
	Address  *address
	Tags     []string
	hidden   string
}

type address struct {
	City string
}

type labels map[string]string

func keyTok(name string) mapping.Token { return mapping.Token{Kind: mapping.TokenKey, Name: name} }
func idxTok(i int) mapping.Token { return mapping.Token{Kind: mapping.TokenIndex, Index: i} }

func TestStep_Key(t *testing.T) {
	c := &customer{
		Audit:    Audit{CreatedBy: "system"},
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Secret:   "s3cr3t",
		Tags:     []string{"vip"},
		hidden:   "no",
	}

	tests := []struct {
		name   string
		src    any
		key    string
		want   any
		exists bool
	}{
		{name: "generic map", src: map[string]any{"a": 1}, key: "a", want: 1, exists: true},
		{name: "generic map missing", src: map[string]any{"a": 1}, key: "b"},
		{name: "generic map nil value", src: map[string]any{"a": nil}, key: "a"},
		{name: "typed map", src: map[string]int{"n": 3}, key: "n", want: 3, exists: true},
		{name: "named string map", src: labels{"env": "prod"}, key: "env", want: "prod", exists: true},
		{name: "int keyed map", src: map[int]string{1: "x"}, key: "1"},
		{name: "struct exact name", src: c, key: "FullName", want: "Ada Lovelace", exists: true},
		{name: "struct json tag", src: c, key: "full_name", want: "Ada Lovelace", exists: true},
		{name: "struct json tag with options", src: c, key: "email", want: "ada@example.com", exists: true},
		{name: "struct normalized", src: c, key: "fullName", want: "Ada Lovelace", exists: true},
		{name: "struct ignored tag still by name", src: c, key: "Secret", want: "s3cr3t", exists: true},
		{name: "struct promoted field", src: c, key: "created_by", want: "system", exists: true},
		{name: "struct unexported", src: c, key: "hidden"},
		{name: "struct nil pointer field", src: c, key: "Address"},
		{name: "struct by value", src: *c, key: "Tags", want: []string{"vip"}, exists: true},
		{name: "scalar", src: 42, key: "x"},
		{name: "nil pointer", src: (*customer)(nil), key: "FullName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Step(tt.src, keyTok(tt.key))
			assert.Equal(t, tt.exists, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStep_Index(t *testing.T) {
	tests := []struct {
		name   string
		src    any
		index  int
		want   any
		exists bool
	}{
		{name: "generic slice", src: []any{"a", "b"}, index: 1, want: "b", exists: true},
		{name: "out of range", src: []any{"a"}, index: 3},
		{name: "typed slice", src: []int{7, 8}, index: 0, want: 7, exists: true},
		{name: "array", src: [2]string{"x", "y"}, index: 1, want: "y", exists: true},
		{name: "pointer to slice", src: &[]string{"p"}, index: 0, want: "p", exists: true},
		{name: "nil element", src: []any{nil}, index: 0},
		{name: "not a list", src: map[string]any{"0": 1}, index: 0},
		{name: "string is not a list", src: "abc", index: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Step(tt.src, idxTok(tt.index))
			assert.Equal(t, tt.exists, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStep_Arg(t *testing.T) {
	args := []any{"first", map[string]any{"id": 7}}

	got, ok := Step(args, mapping.Token{Kind: mapping.TokenArg, Index: 1})
	require.True(t, ok)
	assert.Equal(t, map[string]any{"id": 7}, got)

	_, ok = Step("not args", mapping.Token{Kind: mapping.TokenArg, Index: 0})
	assert.False(t, ok)

	_, ok = Step(args, mapping.Token{Kind: mapping.TokenWildcard})
	assert.False(t, ok)
}

func TestWalk(t *testing.T) {
	src := map[string]any{
		"profile": map[string]any{
			"emails": []any{"a@x", "b@x"},
		},
		"customer": &customer{Address: &address{City: "Paris"}},
	}

	got, ok := Walk(src, mapping.Lex("profile.emails.[1]"))
	require.True(t, ok)
	assert.Equal(t, "b@x", got)

	got, ok = Walk(src, mapping.Lex("customer.address.city"))
	require.True(t, ok)
	assert.Equal(t, "Paris", got)

	_, ok = Walk(src, mapping.Lex("profile.missing.deep"))
	assert.False(t, ok)

	got, ok = Walk(src, nil)
	require.True(t, ok)
	assert.Equal(t, src, got)

	_, ok = Walk(nil, nil)
	assert.False(t, ok)
}

func TestElements(t *testing.T) {
	list := []any{1, "two"}

	got, err := Elements(list)
	require.NoError(t, err)
	assert.Equal(t, list, got)

	got, err = Elements([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, got)

	got, err = Elements(&[1]int{5})
	require.NoError(t, err)
	assert.Equal(t, []any{5}, got)

	got, err = Elements(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = Elements([]int(nil))
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = Elements(map[string]any{"a": 1})
	require.ErrorIs(t, err, ErrNotCollection)

	_, err = Elements("abc")
	require.ErrorIs(t, err, ErrNotCollection)
}

func TestIsAbsent(t *testing.T) {
	var nilMap map[string]any

	assert.True(t, IsAbsent(nil))
	assert.True(t, IsAbsent((*int)(nil)))
	assert.True(t, IsAbsent(nilMap))
	assert.True(t, IsAbsent([]any(nil)))
	assert.False(t, IsAbsent(0))
	assert.False(t, IsAbsent(""))
	assert.False(t, IsAbsent(false))
	assert.False(t, IsAbsent([]any{}))
}

func TestTypeCache_Concurrent(t *testing.T) {
	c := customer{FullName: "x"}

	var wg sync.WaitGroup

	for range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			got, ok := Step(c, keyTok("full_name"))
			assert.True(t, ok)
			assert.Equal(t, "x", got)
		}()
	}

	wg.Wait()
}
