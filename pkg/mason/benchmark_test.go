package mason

import (
	"strings"
	"testing"
)

var testMASON = "name: \"BenchmarkTest\"\nversion: \"1.0\"\nenabled: true\ncount: 42"

type BenchConfig struct {
	Name    string
	Version string
	Enabled bool
	Count   int
}

// benchDocument builds a larger document mixing every literal kind.
func benchDocument(n int) string {
	var sb strings.Builder
	sb.WriteString("// generated\nitems: [\n")
	for i := 0; i < n; i++ {
		sb.WriteString(`  {id: 0x2A, name: "item", ratio: 1'000.25e-3, key: b"\x00\x01", note: r#"say "hi""#, ok: true, none: null}`)
		sb.WriteByte('\n')
	}
	sb.WriteString("]\n")
	return sb.String()
}

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := Parse(testMASON)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseLarge(b *testing.B) {
	doc := benchDocument(1000)
	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(doc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseReader(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		reader := strings.NewReader(testMASON)
		_, err := ParseReader(reader)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseAST(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		node, err := ParseAST(testMASON)
		if err != nil {
			b.Fatal(err)
		}
		ReleaseTree(node)
	}
}

func BenchmarkValidate(b *testing.B) {
	doc := benchDocument(1000)
	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Validate(doc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTokenize(b *testing.B) {
	doc := benchDocument(100)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(doc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	data := []byte(testMASON)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var cfg BenchConfig
		err := Unmarshal(data, &cfg)
		if err != nil {
			b.Fatal(err)
		}
	}
}
