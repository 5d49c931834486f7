package main

import (
	"io"
	"math"

	jsoniter "github.com/json-iterator/go"

	"github.com/shapestone/shape-mason/pkg/mason"
)

// jsonAPI writes map members in document order with four space indents.
var jsonAPI = jsoniter.Config{
	EscapeHTML:    false,
	SortMapKeys:   false,
	IndentionStep: 4,
}.Froze()

// writeJSON renders v as indented JSON. Byte strings become base64 text and
// numbers JSON cannot represent (infinities) become null.
func writeJSON(w io.Writer, v mason.Value) error {
	stream := jsonAPI.BorrowStream(w)
	defer jsonAPI.ReturnStream(stream)

	writeJSONValue(stream, v)
	stream.WriteRaw("\n")
	if nil != stream.Error {
		return stream.Error
	}
	return stream.Flush()
}

func writeJSONValue(stream *jsoniter.Stream, v mason.Value) {
	switch v.Kind() {
	case mason.KindBool:
		b, _ := v.AsBool()
		stream.WriteBool(b)

	case mason.KindNumber:
		f, _ := v.AsNumber()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			stream.WriteNil()
			return
		}
		stream.WriteFloat64(f)

	case mason.KindText:
		s, _ := v.AsText()
		stream.WriteString(s)

	case mason.KindBytes:
		b, _ := v.AsBytes()
		stream.WriteVal(b)

	case mason.KindList:
		items, _ := v.AsList()
		if len(items) == 0 {
			stream.WriteEmptyArray()
			return
		}
		stream.WriteArrayStart()
		for i, item := range items {
			if i > 0 {
				stream.WriteMore()
			}
			writeJSONValue(stream, item)
		}
		stream.WriteArrayEnd()

	case mason.KindMap:
		m, _ := v.AsMap()
		if m.Len() == 0 {
			stream.WriteEmptyObject()
			return
		}
		stream.WriteObjectStart()
		first := true
		m.Range(func(key string, item mason.Value) bool {
			if !first {
				stream.WriteMore()
			}
			first = false
			stream.WriteObjectField(key)
			writeJSONValue(stream, item)
			return true
		})
		stream.WriteObjectEnd()

	default:
		stream.WriteNil()
	}
}
