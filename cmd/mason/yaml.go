package main

import (
	"encoding/base64"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/shapestone/shape-mason/pkg/mason"
)

// maxExactInt is the largest integer every float64 below it can hold exactly.
const maxExactInt = 1 << 53

// writeYAML renders v as a YAML document. Map members keep document order
// and byte strings become !!binary scalars.
func writeYAML(w io.Writer, v mason.Value) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(4)
	if err := enc.Encode(toYAMLNode(v)); nil != err {
		return err
	}
	return enc.Close()
}

func toYAMLNode(v mason.Value) *yaml.Node {
	switch v.Kind() {
	case mason.KindBool:
		b, _ := v.AsBool()
		return scalarNode("!!bool", strconv.FormatBool(b))

	case mason.KindNumber:
		f, _ := v.AsNumber()
		return numberNode(f)

	case mason.KindText:
		s, _ := v.AsText()
		return scalarNode("!!str", s)

	case mason.KindBytes:
		b, _ := v.AsBytes()
		return scalarNode("!!binary", base64.StdEncoding.EncodeToString(b))

	case mason.KindList:
		items, _ := v.AsList()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range items {
			node.Content = append(node.Content, toYAMLNode(item))
		}
		return node

	case mason.KindMap:
		m, _ := v.AsMap()
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		m.Range(func(key string, item mason.Value) bool {
			node.Content = append(node.Content, scalarNode("!!str", key), toYAMLNode(item))
			return true
		})
		return node
	}

	return scalarNode("!!null", "null")
}

func numberNode(f float64) *yaml.Node {
	switch {
	case math.IsInf(f, 1):
		return scalarNode("!!float", ".inf")
	case math.IsInf(f, -1):
		return scalarNode("!!float", "-.inf")
	case math.IsNaN(f):
		return scalarNode("!!float", ".nan")
	case f == math.Trunc(f) && math.Abs(f) < maxExactInt:
		return scalarNode("!!int", strconv.FormatFloat(f, 'f', -1, 64))
	}
	return scalarNode("!!float", strconv.FormatFloat(f, 'g', -1, 64))
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
