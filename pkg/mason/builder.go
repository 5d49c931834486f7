package mason

import (
	"strconv"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-mason/internal/parser"
	"github.com/shapestone/shape-mason/internal/value"
)

// valueBuilder builds the Value tree returned by Parse.
type valueBuilder struct{}

func (valueBuilder) Null(parser.Position) Value                { return value.Null() }
func (valueBuilder) Bool(_ parser.Position, b bool) Value      { return value.Bool(b) }
func (valueBuilder) Number(_ parser.Position, f float64) Value { return value.Number(f) }
func (valueBuilder) Text(_ parser.Position, s string) Value    { return value.Text(s) }
func (valueBuilder) Bytes(_ parser.Position, b []byte) Value   { return value.Bytes(b) }

func (valueBuilder) List(_ parser.Position, items []Value) Value {
	return value.List(items...)
}

func (valueBuilder) Map(_ parser.Position, keys []string, values []Value) Value {
	b := value.NewMapBuilder(len(keys))
	for i, k := range keys {
		b.Set(k, values[i])
	}
	return b.Build()
}

// astBuilder builds Shape AST nodes carrying source positions.
// Arrays become ObjectNodes keyed "0", "1", ... as elsewhere in Shape.
type astBuilder struct{}

func astPosition(p parser.Position) ast.Position {
	return ast.NewPosition(p.Offset, p.Line, p.Column)
}

func (astBuilder) Null(pos parser.Position) ast.SchemaNode {
	return ast.NewLiteralNode(nil, astPosition(pos))
}

func (astBuilder) Bool(pos parser.Position, b bool) ast.SchemaNode {
	return ast.NewLiteralNode(b, astPosition(pos))
}

func (astBuilder) Number(pos parser.Position, f float64) ast.SchemaNode {
	return ast.NewLiteralNode(f, astPosition(pos))
}

func (astBuilder) Text(pos parser.Position, s string) ast.SchemaNode {
	return ast.NewLiteralNode(s, astPosition(pos))
}

func (astBuilder) Bytes(pos parser.Position, b []byte) ast.SchemaNode {
	return ast.NewLiteralNode(b, astPosition(pos))
}

func (astBuilder) List(pos parser.Position, items []ast.SchemaNode) ast.SchemaNode {
	props := make(map[string]ast.SchemaNode, len(items))
	for i, item := range items {
		props[strconv.Itoa(i)] = item
	}
	return ast.NewObjectNode(props, astPosition(pos))
}

func (astBuilder) Map(pos parser.Position, keys []string, values []ast.SchemaNode) ast.SchemaNode {
	props := make(map[string]ast.SchemaNode, len(keys))
	for i, k := range keys {
		props[k] = values[i]
	}
	return ast.NewObjectNode(props, astPosition(pos))
}

// discardBuilder builds nothing; Validate uses it to check syntax only.
type discardBuilder struct{}

func (discardBuilder) Null(parser.Position) struct{}                      { return struct{}{} }
func (discardBuilder) Bool(parser.Position, bool) struct{}                { return struct{}{} }
func (discardBuilder) Number(parser.Position, float64) struct{}           { return struct{}{} }
func (discardBuilder) Text(parser.Position, string) struct{}              { return struct{}{} }
func (discardBuilder) Bytes(parser.Position, []byte) struct{}             { return struct{}{} }
func (discardBuilder) List(parser.Position, []struct{}) struct{}          { return struct{}{} }
func (discardBuilder) Map(parser.Position, []string, []struct{}) struct{} { return struct{}{} }
