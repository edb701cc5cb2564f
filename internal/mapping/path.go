package mapping

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

//go:generate go tool stringer -type=TokenKind -output=tokenkind_string.go

// TokenKind classifies a single access step of a field path.
type TokenKind int

const (
	_ TokenKind = iota // zero value is an invalid token

	// TokenKey is a plain property access: "name".
	TokenKey
	// TokenIndex is a fixed element access: "[3]".
	TokenIndex
	// TokenWildcard maps over every element from here: "[]".
	TokenWildcard
	// TokenArg selects a positional argument of a tuple source: "$1".
	// Only produced for the first chunk of a path.
	TokenArg
)

// ErrInvalidPath is returned by CheckPath for malformed field paths.
var ErrInvalidPath = errors.New("invalid field path")

// Token is one lexed access step.
type Token struct {
	Kind  TokenKind
	Name  string // TokenKey only
	Index int    // TokenIndex and TokenArg only
}

// String renders the token the way it appears in a field path.
func (t Token) String() string {
	switch t.Kind {
	case TokenKey:
		return t.Name
	case TokenIndex:
		return "[" + strconv.Itoa(t.Index) + "]"
	case TokenWildcard:
		return "[]"
	case TokenArg:
		return "$" + strconv.Itoa(t.Index)
	default:
		return "?"
	}
}

// PathObject is one contiguous, wildcard-free run of steps.
type PathObject struct {
	// Path is the rendered optional-chained access expression, e.g. "foo?.[0]?.bar".
	// Empty means "the value itself".
	Path string
	// Steps are the Key, Index and Arg tokens folded into Path.
	Steps []Token
}

// IsEmpty reports whether the object resolves to the value it is applied to.
func (o PathObject) IsEmpty() bool {
	return len(o.Steps) == 0
}

// FieldPath is a parsed field path: the original text and its path objects.
// A path with more than one object maps over a collection between objects.
type FieldPath struct {
	Raw     string
	Objects []PathObject
}

// Wildcards returns the number of collection expansions in the path.
func (p FieldPath) Wildcards() int {
	return len(p.Objects) - 1
}

// IsDirect reports whether the path resolves without any collection expansion.
func (p FieldPath) IsDirect() bool {
	return len(p.Objects) == 1
}

// String returns the original path text.
func (p FieldPath) String() string {
	return p.Raw
}

// Lex splits a field path into access tokens.
//
// Chunks are separated by "."; "[]" is a wildcard, "[digits]" an index and a
// leading "$digits" an argument index. Everything else is a key. Lex never
// fails: malformed paths are configuration errors reported by CheckPath.
func Lex(path string) []Token {
	if path == "" {
		return nil
	}

	chunks := strings.Split(path, ".")
	tokens := make([]Token, 0, len(chunks))

	for i, chunk := range chunks {
		tokens = append(tokens, lexChunk(chunk, i == 0))
	}

	return tokens
}

func lexChunk(chunk string, first bool) Token {
	if strings.HasPrefix(chunk, "[") && strings.HasSuffix(chunk, "]") && len(chunk) >= 2 {
		inner := chunk[1 : len(chunk)-1]
		if inner == "" {
			return Token{Kind: TokenWildcard}
		}

		if n, ok := parseDigits(inner); ok {
			return Token{Kind: TokenIndex, Index: n}
		}
	}

	if first && strings.HasPrefix(chunk, "$") {
		if n, ok := parseDigits(chunk[1:]); ok {
			return Token{Kind: TokenArg, Index: n}
		}
	}

	return Token{Kind: TokenKey, Name: chunk}
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	for _, r := range s {
		if !isDigit(r) {
			return 0, false
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}

// Segment groups tokens into path objects, closing the current object at
// every wildcard. The result always has at least one element; a trailing
// wildcard yields a final empty object.
func Segment(tokens []Token) []PathObject {
	objects := make([]PathObject, 0, 1)
	current := PathObject{}

	for _, tok := range tokens {
		if tok.Kind == TokenWildcard {
			objects = append(objects, current)
			current = PathObject{}

			continue
		}

		current.Steps = append(current.Steps, tok)
		current.Path = chain(current.Path, tok)
	}

	return append(objects, current)
}

func chain(expr string, tok Token) string {
	if expr == "" {
		return tok.String()
	}

	return expr + "?." + tok.String()
}

// ParsePath lexes and segments a field path.
func ParsePath(path string) FieldPath {
	return FieldPath{
		Raw:     path,
		Objects: Segment(Lex(path)),
	}
}

// CheckPath validates a field path against the grammar
//
//	segment ("." segment)*
//	segment = identifier | "[" digits "]" | "[]" | "$" digits (first only)
//
// It is meant for configuration files; the compiler never calls it.
func CheckPath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	for i, chunk := range strings.Split(path, ".") {
		if chunk == "" {
			return fmt.Errorf("%w %q: empty segment at position %d", ErrInvalidPath, path, i)
		}

		if strings.HasPrefix(chunk, "$") {
			if i > 0 {
				return fmt.Errorf("%w %q: argument index %q must be the first segment", ErrInvalidPath, path, chunk)
			}

			if _, ok := parseDigits(chunk[1:]); !ok {
				return fmt.Errorf("%w %q: argument index %q must be \"$\" followed by digits", ErrInvalidPath, path, chunk)
			}

			continue
		}

		if strings.ContainsAny(chunk, "[]") {
			tok := lexChunk(chunk, false)
			if tok.Kind == TokenKey {
				return fmt.Errorf("%w %q: malformed bracket segment %q", ErrInvalidPath, path, chunk)
			}

			continue
		}

		if !isValidIdent(chunk) {
			return fmt.Errorf("%w %q: invalid identifier %q", ErrInvalidPath, path, chunk)
		}
	}

	return nil
}

// isValidIdent checks if a string is a valid field identifier.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			// First character must be letter or underscore
			if !isLetter(r) && r != '_' {
				return false
			}
		} else {
			// Subsequent characters can be letter, digit, underscore or dash
			if !isLetter(r) && !isDigit(r) && r != '_' && r != '-' {
				return false
			}
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
