// Package mason provides MASON parsing, AST generation and decoding.
//
// MASON is a superset of JSON meant for hand-written configuration and data:
// it adds comments, bare keys, newline separators, trailing separators, raw
// strings (r#"..."#), byte strings (b"..."), hexadecimal, octal and binary
// integers, "'" digit grouping, and an implicit top-level object when a
// document starts with key: value pairs instead of braces.
//
// This parser uses recursive descent parsing (see Shape ADR 0004).
// Each production rule in the grammar corresponds to a parse function in
// internal/parser.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each function call creates its own parser instance with no shared mutable state.
//
//	go func() { mason.Parse(input1) }()
//	go func() { mason.Parse(input2) }()
//	go func() { mason.Unmarshal(data, &v) }()
//
// # Parsing APIs
//
// The package provides multiple parsing functions:
//
//   - Parse(string) - Parses MASON into a Value tree
//   - ParseBytes([]byte), ParseReader(io.Reader) - The same for other sources
//   - ParseAST(string) - Parses MASON into Shape's AST, with positions
//   - Validate(string) - Validates MASON syntax
//   - Tokenize(string) - Splits MASON into a flat token stream
//   - Unmarshal([]byte, any) - Decodes MASON into Go values
//
// # Example usage with Parse:
//
//	v, err := mason.Parse(`
//	name: "server"
//	port: 0x1F90
//	`)
//	if err != nil {
//	    // handle error
//	}
//	m, _ := v.AsMap()
//	port, _ := m.Get("port") // Number 8080
package mason

import (
	"fmt"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-mason/internal/parser"
	"github.com/shapestone/shape-mason/internal/value"
)

// DefaultMaxDepth is the default limit on nested objects and arrays.
const DefaultMaxDepth = parser.DefaultMaxDepth

// Option configures a parse.
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth limits how deeply objects and arrays may nest. Documents that
// nest deeper fail with ErrDepthLimit. n <= 0 selects DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

func buildOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func run[T any](input string, b parser.Builder[T], opts []Option) (T, error) {
	o := buildOptions(opts)
	return parser.NewParser(input, b).SetMaxDepth(o.maxDepth).Parse()
}

// Parse parses a MASON document into a Value tree.
//
// The input is a complete document: an object, array or scalar, or a list
// of key: value pairs forming an implicit top-level object.
//
// On failure the error is a *ParseError; use errors.Is with the Err*
// variables to tell failures apart.
//
// Example:
//
//	v, err := mason.Parse("a: 1, b: [true, null]")
//	// v is the map {a: 1, b: [true, null]}
func Parse(input string, opts ...Option) (Value, error) {
	return run[Value](input, valueBuilder{}, opts)
}

// ParseBytes parses a MASON document held in a byte slice.
func ParseBytes(data []byte, opts ...Option) (Value, error) {
	return Parse(string(data), opts...)
}

// ParseReader reads r to EOF and parses the result as one MASON document.
// MASON is not parsed incrementally; the whole document is held in memory.
func ParseReader(r io.Reader, opts ...Option) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, fmt.Errorf("mason: reading input: %w", err)
	}
	return ParseBytes(data, opts...)
}

// ParseAST parses a MASON document into Shape's AST.
//
// Returns an ast.SchemaNode representing the parsed document:
//   - *ast.ObjectNode for objects and arrays
//     (arrays use numeric string keys "0", "1", "2", ...)
//   - *ast.LiteralNode for scalars (nil, bool, float64, string, []byte)
//
// Every node carries the position of its first character. Call ReleaseTree
// when done with the tree.
//
// Example:
//
//	node, err := mason.ParseAST("name: \"Alice\"")
//	obj := node.(*ast.ObjectNode)
//	nameNode, _ := obj.GetProperty("name")
//	name := nameNode.(*ast.LiteralNode).Value().(string) // "Alice"
func ParseAST(input string, opts ...Option) (ast.SchemaNode, error) {
	return run[ast.SchemaNode](input, astBuilder{}, opts)
}

// Validate checks if a MASON string is syntactically valid.
//
// Returns nil if the document is valid, or a *ParseError describing the
// first syntax problem with its line and column.
//
// Example:
//
//	if err := mason.Validate(input); err != nil {
//	    fmt.Printf("Invalid MASON: %v\n", err)
//	}
func Validate(input string, opts ...Option) error {
	_, err := run[struct{}](input, discardBuilder{}, opts)
	return err
}

// Value is a parsed MASON value. The zero Value is null.
type Value = value.Value

// Map is the insertion-ordered map held by object values.
type Map = value.Map

// MapBuilder assembles an object value.
type MapBuilder = value.MapBuilder

// Pair is one key/value entry for MapOf.
type Pair = value.Pair

// Kind identifies the type of a Value.
type Kind = value.Kind

// Value kinds.
const (
	KindNull   = value.KindNull
	KindBool   = value.KindBool
	KindNumber = value.KindNumber
	KindText   = value.KindText
	KindBytes  = value.KindBytes
	KindList   = value.KindList
	KindMap    = value.KindMap
)

// Null returns the null value.
func Null() Value { return value.Null() }

// Bool returns a boolean value.
func Bool(b bool) Value { return value.Bool(b) }

// Number returns a numeric value.
func Number(f float64) Value { return value.Number(f) }

// Text returns a string value.
func Text(s string) Value { return value.Text(s) }

// Bytes returns a byte string value holding a copy of b.
func Bytes(b []byte) Value { return value.Bytes(b) }

// List returns a list value.
func List(items ...Value) Value { return value.List(items...) }

// MapOf returns an object value with pairs in order. Later pairs overwrite
// earlier ones with the same key.
func MapOf(pairs ...Pair) Value { return value.MapOf(pairs...) }

// NewMapBuilder returns a builder for an object value.
func NewMapBuilder(capacity int) *MapBuilder { return value.NewMapBuilder(capacity) }

// ParseError describes where and why a document failed to parse.
type ParseError = parser.ParseError

// Position locates a character in a document.
type Position = parser.Position

// Parse error kinds, matched with errors.Is.
var (
	ErrUnexpectedEOF          = parser.ErrUnexpectedEOF
	ErrUnexpectedCharacter    = parser.ErrUnexpectedCharacter
	ErrInvalidDigit           = parser.ErrInvalidDigit
	ErrNonASCIIEscape         = parser.ErrNonASCIIEscape
	ErrUnpairedSurrogate      = parser.ErrUnpairedSurrogate
	ErrUnexpectedLowSurrogate = parser.ErrUnexpectedLowSurrogate
	ErrSurrogateCodepoint     = parser.ErrSurrogateCodepoint
	ErrInvalidCodepoint       = parser.ErrInvalidCodepoint
	ErrUnknownEscape          = parser.ErrUnknownEscape
	ErrUnterminatedComment    = parser.ErrUnterminatedComment
	ErrNonASCIIByte           = parser.ErrNonASCIIByte
	ErrControlCharacter       = parser.ErrControlCharacter
	ErrExpectedColon          = parser.ErrExpectedColon
	ErrExpectedSeparator      = parser.ErrExpectedSeparator
	ErrUnknownKeyword         = parser.ErrUnknownKeyword
	ErrTrailingGarbage        = parser.ErrTrailingGarbage
	ErrDepthLimit             = parser.ErrDepthLimit
)
