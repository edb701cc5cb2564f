package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"upper", "upper", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"a", "ab", 1},
		{"ab", "a", 1},
		{"kitten", "sitting", 3},
		{"uper", "upper", 1},
		{"adress", "address", 1},
		{"Hello", "hello", 1},
		{"straße", "strasse", 2}, // runes, not bytes
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

func TestLevenshteinNormalized(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected float64
	}{
		{"", "", 1.0},
		{"hello", "hello", 1.0},
		{"abc", "xyz", 0.0},
		{"kitten", "sitting", 1.0 - 3.0/7.0},
		{"abc", "ab", 1.0 - 1.0/3.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.expected, LevenshteinNormalized(tt.a, tt.b), 0.001)
		})
	}
}

func TestNormalizedLevenshteinScore(t *testing.T) {
	assert.InDelta(t, 1.0, NormalizedLevenshteinScore("OrderID", "order_id"), 0.001)
	assert.InDelta(t, 1.0, NormalizedLevenshteinScore("CustomerName", "customer-name"), 0.001)
	assert.Less(t, NormalizedLevenshteinScore("Email", "Password"), 0.5)
}

func BenchmarkLevenshtein(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Levenshtein("algorithm", "altruistic")
	}
}
