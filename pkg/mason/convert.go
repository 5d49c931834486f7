package mason

import (
	"strconv"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-mason/internal/value"
)

// NodeToInterface converts an AST node to native Go types.
//
// Converts:
//   - *ast.LiteralNode → its value (nil, bool, float64, string, []byte)
//   - *ast.ObjectNode with keys "0".."n-1" → []interface{}
//   - any other *ast.ObjectNode → map[string]interface{}
//
// Empty arrays and empty objects share one AST shape and both come back as an
// empty map.
//
// Example:
//
//	node, _ := mason.ParseAST("name: \"Alice\"\ntags: [\"go\", \"mason\"]")
//	data := mason.NodeToInterface(node)
//	// data is map[string]interface{}{"name":"Alice", "tags":[]interface{}{"go","mason"}}
func NodeToInterface(node ast.SchemaNode) interface{} {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return n.Value()

	case *ast.ObjectNode:
		props := n.Properties()

		if isSequence(props) {
			arr := make([]interface{}, len(props))
			for i := range arr {
				arr[i] = NodeToInterface(props[strconv.Itoa(i)])
			}
			return arr
		}

		m := make(map[string]interface{}, len(props))
		for key, propNode := range props {
			m[key] = NodeToInterface(propNode)
		}
		return m

	default:
		return nil
	}
}

// isSequence checks if the object node represents an array (numeric string keys)
func isSequence(props map[string]ast.SchemaNode) bool {
	if len(props) == 0 {
		return false
	}

	for i := 0; i < len(props); i++ {
		if _, ok := props[strconv.Itoa(i)]; !ok {
			return false
		}
	}
	return true
}

// ToNode converts a Value tree to Shape AST nodes. The nodes carry zero
// positions; use ParseAST to keep source positions.
func ToNode(v Value) ast.SchemaNode {
	pos := ast.Position{}

	switch v.Kind() {
	case value.KindList:
		items, _ := v.AsList()
		props := make(map[string]ast.SchemaNode, len(items))
		for i, item := range items {
			props[strconv.Itoa(i)] = ToNode(item)
		}
		return ast.NewObjectNode(props, pos)

	case value.KindMap:
		m, _ := v.AsMap()
		props := make(map[string]ast.SchemaNode, m.Len())
		m.Range(func(key string, item Value) bool {
			props[key] = ToNode(item)
			return true
		})
		return ast.NewObjectNode(props, pos)
	}

	// Scalars convert to the same Go values Interface returns.
	return ast.NewLiteralNode(v.Interface(), pos)
}

// ReleaseTree hands every node of a tree built by ParseAST or ToNode back to
// Shape's node pools. The tree must not be used afterwards.
//
//	node, _ := mason.ParseAST("name: \"Alice\"")
//	data := mason.NodeToInterface(node)
//	mason.ReleaseTree(node)
func ReleaseTree(node ast.SchemaNode) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *ast.LiteralNode:
		ast.ReleaseLiteralNode(n)

	case *ast.ObjectNode:
		for _, child := range n.Properties() {
			ReleaseTree(child)
		}
		ast.ReleaseObjectNode(n)
	}
}
