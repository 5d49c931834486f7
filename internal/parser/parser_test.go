package parser

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

// Test helpers

type pair struct {
	key string
	val any
}

// treeBuilder builds plain Go values. Maps become []pair so member order is
// part of the comparison.
type treeBuilder struct{}

func (treeBuilder) Null(Position) any                { return nil }
func (treeBuilder) Bool(_ Position, b bool) any      { return b }
func (treeBuilder) Number(_ Position, f float64) any { return f }
func (treeBuilder) Text(_ Position, s string) any    { return s }
func (treeBuilder) Bytes(_ Position, b []byte) any   { return b }

func (treeBuilder) List(_ Position, items []any) any {
	out := make([]any, len(items))
	copy(out, items)
	return out
}

func (treeBuilder) Map(_ Position, keys []string, values []any) any {
	out := make([]pair, len(keys))
	for i := range keys {
		out[i] = pair{keys[i], values[i]}
	}
	return out
}

func parse(input string) (any, error) {
	return NewParser[any](input, treeBuilder{}).Parse()
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertParseError(t *testing.T, err error) *ParseError {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	return pe
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		// Containers
		{"empty object", "{}", []pair{}},
		{"empty array", "[]", []any{}},
		{"empty object with comment", "{ /* nothing */ }", []pair{}},
		{"implicit object with commas", "a: 1, b: 2", []pair{{"a", 1.0}, {"b", 2.0}}},
		{"newline separator", "{\"a\": 1\nb: 2}", []pair{{"a", 1.0}, {"b", 2.0}}},
		{"duplicate key last wins", "{a:1,a:2}", []pair{{"a", 2.0}}},
		{"duplicate key keeps first slot", "{a:1,b:2,a:3}", []pair{{"a", 3.0}, {"b", 2.0}}},
		{"trailing comma in array", "[1, 2, 3,]", []any{1.0, 2.0, 3.0}},
		{"trailing comma in object", "{a: 1,}", []pair{{"a", 1.0}}},
		{"mixed array separators", "[\n  1\n  2\r\n  3 // three\n]", []any{1.0, 2.0, 3.0}},
		{"blank lines between members", "{\n\n  a: 1\n\n\n  b: 2\n\n}", []pair{{"a", 1.0}, {"b", 2.0}}},
		{"identifier keys", "{foo-bar_1: 2, _x: 3}", []pair{{"foo-bar_1", 2.0}, {"_x", 3.0}}},
		{"key with space before colon", "{a : 1}", []pair{{"a", 1.0}}},
		{"nested", `{a: [1, {b: null}], "c d": r"x"}`, []pair{
			{"a", []any{1.0, []pair{{"b", nil}}}},
			{"c d", "x"},
		}},

		// Implicit top-level object
		{"implicit object with comments", "// header\nname: \"mason\"\nversion: 1 /* c */\n\ntags: [\"x\", \"y\"]\n", []pair{
			{"name", "mason"},
			{"version", 1.0},
			{"tags", []any{"x", "y"}},
		}},
		{"implicit object trailing separator", "a: 1,\n", []pair{{"a", 1.0}}},
		{"implicit quoted key", `"k" : 1`, []pair{{"k", 1.0}}},
		{"implicit keyword as key", "true: 1", []pair{{"true", 1.0}}},
		{"top-level string", `"hello"`, "hello"},
		{"top-level string then newline", "\"hello\"\n", "hello"},
		{"top-level keyword", "null", nil},

		// Keywords
		{"true", "true", true},
		{"false", "false", false},
		{"keyword in array", "[null, true, false]", []any{nil, true, false}},

		// Strings
		{"simple escapes", `"\x41\t\/\"\\\b\f\n\r"`, "A\t/\"\\\b\f\n\r"},
		{"surrogate pair", `"\uD83D\uDE00"`, "\U0001F600"},
		{"bmp escape", `"\u00e9"`, "\u00e9"},
		{"six digit escape", `"\U01F600"`, "\U0001F600"},
		{"non-ascii literal", `"héllo 世界"`, "héllo 世界"},

		// Raw strings
		{"raw string with quote", `r#"a\"b"#`, `a\"b`},
		{"empty raw string", `r""`, ""},
		{"raw string needs all hashes", `r##"a"#b"##`, `a"#b`},
		{"raw string keeps newlines", "r\"a\nb\"", "a\nb"},

		// Binary strings
		{"binary hex escapes", `b"\x41\x42"`, []byte{0x41, 0x42}},
		{"binary full byte range", `b"a\xff\n"`, []byte{'a', 0xff, '\n'}},
		{"empty binary string", `b""`, []byte{}},

		// Numbers
		{"hex", "0x1F", 31.0},
		{"octal", "0o17", 15.0},
		{"binary", "0b1010", 10.0},
		{"negative hex", "-0x10", -16.0},
		{"grouped hex", "0x1F'FF", 8191.0},
		{"grouping", "1'000", 1000.0},
		{"permissive grouping", "1'''2", 12.0},
		{"grouped fraction", "1.2'5", 1.25},
		{"plus sign", "+5", 5.0},
		{"leading dot", ".5", 0.5},
		{"negative leading dot", "-.25", -0.25},
		{"exponent", "1e3", 1000.0},
		{"signed exponent", "1E+2", 100.0},
		{"negative exponent", "-12.5e-1", -1.25},
		{"zero", "0", 0.0},
		{"wide hex rounds once", "0xFFFFFFFFFFFFFFFF", 18446744073709551616.0},
		{"overflow", "1e400", math.Inf(1)},
		{"numbers in array", "[1, -2, 0b11]", []any{1.0, -2.0, 3.0}},

		// Whitespace
		{"surrounding comments", "  \n/* c */ 42 // end", 42.0},
		{"crlf document", "a: 1\r\nb: 2\r\n", []pair{{"a", 1.0}, {"b", 2.0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse(tt.input)
			assertNoError(t, err)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parse(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   error
		offset int
		line   int
		column int
	}{
		{"empty document", "", ErrUnexpectedEOF, 0, 1, 1},
		{"whitespace only", "  \n ", ErrUnexpectedEOF, 4, 2, 2},
		{"unclosed array", "[1,2", ErrUnexpectedEOF, 4, 1, 5},
		{"unclosed object", "{a: 1", ErrUnexpectedEOF, 5, 1, 6},
		{"unterminated comment", "/* unterminated", ErrUnterminatedComment, 15, 1, 16},
		{"unterminated comment after value", "1 /* c", ErrUnterminatedComment, 6, 1, 7},
		{"trailing garbage", "1 2", ErrTrailingGarbage, 2, 1, 3},
		{"stray brace after implicit object", "a: 1 }", ErrTrailingGarbage, 5, 1, 6},

		// Strings
		{"unpaired high surrogate", `"\uD83D"`, ErrUnpairedSurrogate, 7, 1, 8},
		{"high surrogate then non-surrogate", `"\uD83D\u0041"`, ErrUnpairedSurrogate, 13, 1, 14},
		{"lone low surrogate", `"\uDE00"`, ErrUnexpectedLowSurrogate, 7, 1, 8},
		{"non-ascii hex escape", `"\x80"`, ErrNonASCIIEscape, 5, 1, 6},
		{"surrogate code point", `"\U00D800"`, ErrSurrogateCodepoint, 9, 1, 10},
		{"code point out of range", `"\U110000"`, ErrInvalidCodepoint, 9, 1, 10},
		{"unknown escape", `"\q"`, ErrUnknownEscape, 2, 1, 3},
		{"bad hex digit", `"\xZZ"`, ErrInvalidDigit, 3, 1, 4},
		{"control character", "\"a\tb\"", ErrControlCharacter, 2, 1, 3},
		{"unterminated string", `"abc`, ErrUnexpectedEOF, 4, 1, 5},
		{"unterminated raw string", `r#"abc"`, ErrUnexpectedEOF, 7, 1, 8},
		{"non-ascii byte", `b"é"`, ErrNonASCIIByte, 2, 1, 3},
		{"unicode escape in binary string", `b"\u0041"`, ErrUnknownEscape, 3, 1, 4},
		{"control character in binary string", "b\"\n\"", ErrControlCharacter, 2, 1, 3},

		// Numbers
		{"digit outside radix", "0b2", ErrInvalidDigit, 2, 1, 3},
		{"empty hex", "0x", ErrUnexpectedEOF, 2, 1, 3},
		{"sign only", "-", ErrUnexpectedEOF, 1, 1, 2},
		{"dot without digits", "1.", ErrUnexpectedEOF, 2, 1, 3},
		{"dot then exponent", "1.e5", ErrInvalidDigit, 2, 1, 3},
		{"empty exponent", "1e", ErrUnexpectedEOF, 2, 1, 3},
		{"bad exponent", "1ex", ErrInvalidDigit, 2, 1, 3},

		// Grammar
		{"missing colon", "{a 1}", ErrExpectedColon, 3, 1, 4},
		{"missing object separator", "{a: 1 b: 2}", ErrExpectedSeparator, 6, 1, 7},
		{"missing array separator", "[1 2]", ErrExpectedSeparator, 3, 1, 4},
		{"missing implicit separator", "a: 1 b: 2", ErrExpectedSeparator, 5, 1, 6},
		{"unknown keyword", "nil", ErrUnknownKeyword, 3, 1, 4},
		{"unknown keyword in array", "[nope]", ErrUnknownKeyword, 5, 1, 6},
		{"unexpected character", "@", ErrUnexpectedCharacter, 0, 1, 1},
		{"unexpected character in array", "[1, @]", ErrUnexpectedCharacter, 4, 1, 5},
		{"numeric key", "{1: 2}", ErrUnexpectedCharacter, 1, 1, 2},
		{"error on later line", "{\n  a: 1\n  b 2\n}", ErrExpectedColon, 13, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(tt.input)
			pe := assertParseError(t, err)
			if !errors.Is(err, tt.kind) {
				t.Errorf("parse(%q) error kind = %v, want %v (%v)", tt.input, pe.Kind, tt.kind, err)
			}
			if pe.Offset != tt.offset || pe.Line != tt.line || pe.Column != tt.column {
				t.Errorf("parse(%q) error at offset %d (line %d, column %d), want offset %d (line %d, column %d)",
					tt.input, pe.Offset, pe.Line, pe.Column, tt.offset, tt.line, tt.column)
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := parse("[1,2")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	want := "mason: parse error at line 1, column 5 (offset 4): unexpected end of input, expected ']'"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	_, err := parse("{a:1 b:2}")
	pe := assertParseError(t, err)
	if !errors.Is(err, ErrExpectedSeparator) {
		t.Errorf("errors.Is(err, ErrExpectedSeparator) = false for %v", err)
	}
	if errors.Is(err, ErrExpectedColon) {
		t.Errorf("errors.Is(err, ErrExpectedColon) = true for %v", err)
	}
	if got := pe.Position(); got != (Position{Offset: 5, Line: 1, Column: 6}) {
		t.Errorf("Position() = %+v", got)
	}
}

func TestParseDepthLimit(t *testing.T) {
	t.Run("default limit accepted", func(t *testing.T) {
		input := strings.Repeat("[", DefaultMaxDepth) + strings.Repeat("]", DefaultMaxDepth)
		_, err := parse(input)
		assertNoError(t, err)
	})

	t.Run("one past default limit", func(t *testing.T) {
		input := strings.Repeat("[", DefaultMaxDepth+1) + strings.Repeat("]", DefaultMaxDepth+1)
		_, err := parse(input)
		pe := assertParseError(t, err)
		if !errors.Is(err, ErrDepthLimit) {
			t.Fatalf("error = %v, want ErrDepthLimit", err)
		}
		if pe.Offset != DefaultMaxDepth {
			t.Errorf("error offset = %d, want %d", pe.Offset, DefaultMaxDepth)
		}
	})

	tests := []struct {
		name    string
		input   string
		max     int
		wantErr bool
	}{
		{"within custom limit", "[[1]]", 2, false},
		{"past custom limit", "[[[1]]]", 2, true},
		{"objects count", "{a: {b: {}}}", 2, true},
		{"implicit object counts", "a: [1]", 1, true},
		{"zero restores default", "[[[1]]]", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser[any](tt.input, treeBuilder{}).SetMaxDepth(tt.max).Parse()
			if tt.wantErr {
				if !errors.Is(err, ErrDepthLimit) {
					t.Errorf("error = %v, want ErrDepthLimit", err)
				}
				return
			}
			assertNoError(t, err)
		})
	}
}

// posBuilder records the position each node was built at.
type posBuilder struct {
	seen map[string]Position
}

func (b *posBuilder) Null(pos Position) any {
	b.seen["null"] = pos
	return nil
}
func (b *posBuilder) Bool(pos Position, v bool) any {
	b.seen["bool"] = pos
	return v
}
func (b *posBuilder) Number(pos Position, f float64) any {
	b.seen["number"] = pos
	return f
}
func (b *posBuilder) Text(pos Position, s string) any {
	b.seen["text"] = pos
	return s
}
func (b *posBuilder) Bytes(pos Position, v []byte) any {
	b.seen["bytes"] = pos
	return v
}
func (b *posBuilder) List(pos Position, items []any) any {
	b.seen["list"] = pos
	return items
}
func (b *posBuilder) Map(pos Position, keys []string, values []any) any {
	b.seen["map"] = pos
	return keys
}

func TestParseBuilderPositions(t *testing.T) {
	input := "{\n  k: \"v\"\n  n: [null, 7]\n}"
	b := &posBuilder{seen: make(map[string]Position)}
	_, err := NewParser[any](input, b).Parse()
	assertNoError(t, err)

	want := map[string]Position{
		"map":    {Offset: 0, Line: 1, Column: 1},
		"text":   {Offset: 7, Line: 2, Column: 6},
		"list":   {Offset: 16, Line: 3, Column: 6},
		"null":   {Offset: 17, Line: 3, Column: 7},
		"number": {Offset: 23, Line: 3, Column: 13},
	}
	for kind, pos := range want {
		if got := b.seen[kind]; got != pos {
			t.Errorf("%s built at %+v, want %+v", kind, got, pos)
		}
	}
}

func TestParseImplicitObjectPosition(t *testing.T) {
	b := &posBuilder{seen: make(map[string]Position)}
	_, err := NewParser[any]("\n  a: 1", b).Parse()
	assertNoError(t, err)

	want := Position{Offset: 3, Line: 2, Column: 3}
	if got := b.seen["map"]; got != want {
		t.Errorf("implicit object built at %+v, want %+v", got, want)
	}
}
