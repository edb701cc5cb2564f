package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []Token
	}{
		{name: "empty", path: "", want: nil},
		{name: "single key", path: "name", want: []Token{{Kind: TokenKey, Name: "name"}}},
		{
			name: "keys and index",
			path: "items.[2].sku",
			want: []Token{
				{Kind: TokenKey, Name: "items"},
				{Kind: TokenIndex, Index: 2},
				{Kind: TokenKey, Name: "sku"},
			},
		},
		{
			name: "wildcard",
			path: "tags.[]",
			want: []Token{{Kind: TokenKey, Name: "tags"}, {Kind: TokenWildcard}},
		},
		{
			name: "leading argument",
			path: "$1.id",
			want: []Token{{Kind: TokenArg, Index: 1}, {Kind: TokenKey, Name: "id"}},
		},
		{
			name: "argument only first",
			path: "a.$1",
			want: []Token{{Kind: TokenKey, Name: "a"}, {Kind: TokenKey, Name: "$1"}},
		},
		{
			name: "malformed bracket is a key",
			path: "[x]",
			want: []Token{{Kind: TokenKey, Name: "[x]"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lex(tt.path))
		})
	}
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "name", Token{Kind: TokenKey, Name: "name"}.String())
	assert.Equal(t, "[4]", Token{Kind: TokenIndex, Index: 4}.String())
	assert.Equal(t, "[]", Token{Kind: TokenWildcard}.String())
	assert.Equal(t, "$0", Token{Kind: TokenArg}.String())
	assert.Equal(t, "?", Token{}.String())
}

func TestTokenKind_String(t *testing.T) {
	assert.Equal(t, "TokenKey", TokenKey.String())
	assert.Equal(t, "TokenArg", TokenArg.String())
	assert.Equal(t, "TokenKind(0)", TokenKind(0).String())
}

func TestParsePath(t *testing.T) {
	t.Run("direct path", func(t *testing.T) {
		p := ParsePath("foo.[0].bar")

		require.Len(t, p.Objects, 1)
		assert.True(t, p.IsDirect())
		assert.Equal(t, 0, p.Wildcards())
		assert.Equal(t, "foo?.[0]?.bar", p.Objects[0].Path)
		assert.Equal(t, "foo.[0].bar", p.String())
	})

	t.Run("wildcard splits objects", func(t *testing.T) {
		p := ParsePath("orders.[].items.[].sku")

		require.Len(t, p.Objects, 3)
		assert.Equal(t, 2, p.Wildcards())
		assert.Equal(t, "orders", p.Objects[0].Path)
		assert.Equal(t, "items", p.Objects[1].Path)
		assert.Equal(t, "sku", p.Objects[2].Path)
	})

	t.Run("trailing wildcard yields empty object", func(t *testing.T) {
		p := ParsePath("tags.[]")

		require.Len(t, p.Objects, 2)
		assert.False(t, p.Objects[0].IsEmpty())
		assert.True(t, p.Objects[1].IsEmpty())
	})

	t.Run("empty path resolves to the value itself", func(t *testing.T) {
		p := ParsePath("")

		require.Len(t, p.Objects, 1)
		assert.True(t, p.Objects[0].IsEmpty())
	})
}

func TestCheckPath(t *testing.T) {
	valid := []string{
		"name",
		"profile.full_name",
		"kebab-case.x",
		"items.[0].sku",
		"items.[].tags.[]",
		"$0",
		"$1.address.city",
		"_private",
	}
	for _, p := range valid {
		t.Run("valid "+p, func(t *testing.T) {
			assert.NoError(t, CheckPath(p))
		})
	}

	invalid := []string{
		"",
		"a..b",
		".a",
		"a.",
		"a.$1",
		"$x",
		"$",
		"a[0]",
		"items.[x]",
		"1abc",
		"has space",
	}
	for _, p := range invalid {
		t.Run("invalid "+p, func(t *testing.T) {
			err := CheckPath(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}
