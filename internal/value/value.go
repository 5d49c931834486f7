// Package value defines the MASON value tree.
//
// A Value is an immutable tagged union. The zero Value is null.
package value

import (
	"bytes"
	"fmt"
)

// Kind identifies which member of the union a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindText
	KindBytes
	KindList
	KindMap
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindText:   "text",
	KindBytes:  "bytes",
	KindList:   "list",
	KindMap:    "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is a parsed MASON value.
type Value struct {
	kind  Kind
	b     bool
	n     float64
	s     string
	raw   []byte
	items []Value
	m     *Map
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value. MASON has no integer type.
func Number(f float64) Value { return Value{kind: KindNumber, n: f} }

// Text returns a string value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Bytes returns a byte string value. The slice is copied.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, raw: bytes.Clone(nonNil(b))}
}

// List returns a list value holding a copy of items.
func List(items ...Value) Value {
	return Value{kind: KindList, items: append(make([]Value, 0, len(items)), items...)}
}

// Object wraps a Map as a Value. A nil map yields an empty map value.
func Object(m *Map) Value {
	if m == nil {
		m = newMap(0)
	}
	return Value{kind: KindMap, m: m}
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsText returns the string held by v.
func (v Value) AsText() (string, bool) { return v.s, v.kind == KindText }

// AsBytes returns a copy of the byte string held by v.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return bytes.Clone(v.raw), true
}

// AsList returns a copy of the items held by v.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]Value(nil), v.items...), true
}

// AsMap returns the map held by v. Maps are read-only.
func (v Value) AsMap() (*Map, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// Len returns the number of elements of a list, entries of a map, or bytes
// of a byte string. It returns 0 for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.items)
	case KindMap:
		return v.m.Len()
	case KindBytes:
		return len(v.raw)
	}
	return 0
}

// Index returns the i-th element of a list. It panics if v is not a list or
// i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindList {
		panic("value: Index of " + v.kind.String())
	}
	return v.items[i]
}

// Interface converts v into plain Go values: nil, bool, float64, string,
// []byte, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindText:
		return v.s
	case KindBytes:
		return bytes.Clone(v.raw)
	case KindList:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, v.m.Len())
		v.m.Range(func(k string, item Value) bool {
			out[k] = item.Interface()
			return true
		})
		return out
	}
	return nil
}

// Equal reports whether v and o are structurally equal. Map entry order is
// not significant; NaN is never equal to anything.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindText:
		return v.s == o.s
	case KindBytes:
		return bytes.Equal(v.raw, o.raw)
	case KindList:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.m.equal(o.m)
	}
	return false
}

// String renders v for debugging. It is not MASON syntax.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindText:
		return fmt.Sprintf("%q", v.s)
	case KindBytes:
		return fmt.Sprintf("b%q", v.raw)
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(item.String())
		}
		buf.WriteByte(']')
		return buf.String()
	case KindMap:
		var buf bytes.Buffer
		buf.WriteByte('{')
		i := 0
		v.m.Range(func(k string, item Value) bool {
			if i > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(&buf, "%q: %s", k, item.String())
			i++
			return true
		})
		buf.WriteByte('}')
		return buf.String()
	}
	return fmt.Sprint(v.Interface())
}
