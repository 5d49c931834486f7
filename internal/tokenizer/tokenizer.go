package tokenizer

import (
	"fmt"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewTokenizer creates a tokenizer for MASON.
// The tokenizer matches MASON tokens in order of specificity.
//
// Ordering is critical:
// 1. Whitespace and newlines
// 2. Comments (before anything starting with '/')
// 3. Structural tokens
// 4. Raw and binary strings (before identifiers, as they start with r and b)
// 5. Quoted strings
// 6. Numbers
// 7. Identifiers and keywords (last)
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		// Whitespace that doesn't consume newlines
		WhitespaceMatcher(),
		NewlineMatcher(),

		// Comments
		LineCommentMatcher(),
		BlockCommentMatcher(),

		// Structural tokens
		tokenizer.CharMatcherFunc(TokenLBrace, '{'),
		tokenizer.CharMatcherFunc(TokenRBrace, '}'),
		tokenizer.CharMatcherFunc(TokenLBracket, '['),
		tokenizer.CharMatcherFunc(TokenRBracket, ']'),
		tokenizer.CharMatcherFunc(TokenColon, ':'),
		tokenizer.CharMatcherFunc(TokenComma, ','),

		// Prefixed strings
		RawStringMatcher(),
		BinaryStringMatcher(),

		// Quoted strings
		StringMatcher(),

		// Numbers
		NumberMatcher(),

		// Identifiers and keywords (last)
		IdentifierMatcher(),
	)
}

// NewTokenizerWithStream creates a MASON tokenizer using a pre-configured stream.
func NewTokenizerWithStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	tok := NewTokenizer()
	tok.InitializeFromStream(stream)
	return tok
}

// Collect tokenizes input completely. It fails if some lexeme is not
// accepted by any matcher, naming the offset (in characters) where
// tokenization stopped.
func Collect(input string) ([]*tokenizer.Token, error) {
	tok := NewTokenizerWithStream(tokenizer.NewStream(input))

	var tokens []*tokenizer.Token
	consumed := 0
	for {
		token, ok := tok.NextToken()
		if !ok {
			break
		}
		tokens = append(tokens, token)
		consumed += len(token.Value())
	}

	if total := utf8.RuneCountInString(input); consumed < total {
		return tokens, fmt.Errorf("unrecognized input at offset %d", consumed)
	}
	return tokens, nil
}

// WhitespaceMatcher matches runs of spaces and tabs, but not newlines.
func WhitespaceMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || (r != ' ' && r != '\t') {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}

		if len(value) == 0 {
			return nil
		}
		return tokenizer.NewToken(TokenWhitespace, value)
	}
}

// NewlineMatcher matches \n and \r\n. A lone \r is not a line break in
// MASON, only insignificant whitespace, so it is returned as TokenWhitespace.
func NewlineMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.NextChar()
		if !ok {
			return nil
		}

		switch r {
		case '\n':
			return tokenizer.NewToken(TokenNewline, []rune{'\n'})
		case '\r':
			if next, ok := stream.PeekChar(); ok && next == '\n' {
				stream.NextChar()
				return tokenizer.NewToken(TokenNewline, []rune{'\r', '\n'})
			}
			return tokenizer.NewToken(TokenWhitespace, []rune{'\r'})
		}
		return nil
	}
}

// LineCommentMatcher matches // through the end of the line. The line break
// itself is left for NewlineMatcher.
func LineCommentMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if !consumePrefix(stream, "//") {
			return nil
		}

		value := []rune("//")
		for {
			r, ok := stream.PeekChar()
			if !ok || r == '\n' {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		return tokenizer.NewToken(TokenLineComment, value)
	}
}

// BlockCommentMatcher matches /* ... */. Block comments do not nest.
func BlockCommentMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if !consumePrefix(stream, "/*") {
			return nil
		}

		value := []rune("/*")
		for {
			r, ok := stream.NextChar()
			if !ok {
				return nil
			}
			value = append(value, r)

			if r == '*' {
				next, ok := stream.PeekChar()
				if ok && next == '/' {
					stream.NextChar()
					return tokenizer.NewToken(TokenBlockComment, append(value, '/'))
				}
			}
		}
	}
}

// StringMatcher matches a double-quoted string.
//
// Grammar:
//
//	String = '"' { Character | "\\" Character } '"' ;
func StringMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || r != '"' {
			return nil
		}

		value, ok := quotedBody(stream, nil)
		if !ok {
			return nil
		}
		return tokenizer.NewToken(TokenString, value)
	}
}

// BinaryStringMatcher matches b"...".
func BinaryStringMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if !consumePrefix(stream, `b"`) {
			return nil
		}

		value, ok := quotedBody(stream, []rune{'b', '"'})
		if !ok {
			return nil
		}
		return tokenizer.NewToken(TokenBinaryString, value)
	}
}

// quotedBody consumes a quoted body up to and including the closing quote.
// If prefix is nil the opening quote is still in the stream.
func quotedBody(stream tokenizer.Stream, prefix []rune) ([]rune, bool) {
	value := prefix
	if value == nil {
		r, ok := stream.NextChar()
		if !ok || r != '"' {
			return nil, false
		}
		value = []rune{r}
	}

	for {
		r, ok := stream.NextChar()
		if !ok {
			return nil, false
		}
		value = append(value, r)

		switch r {
		case '"':
			return value, true
		case '\\':
			r, ok := stream.NextChar()
			if !ok {
				return nil, false
			}
			value = append(value, r)
		}
	}
}

// RawStringMatcher matches r"..." and the hash-guarded forms r#"..."#,
// r##"..."## and so on.
//
// Grammar:
//
//	RawString = "r" { "#" } '"' { Character } '"' { "#" } ;
func RawStringMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.NextChar()
		if !ok || r != 'r' {
			return nil
		}
		value := []rune{'r'}

		hashes := 0
		for {
			r, ok := stream.NextChar()
			if !ok {
				return nil
			}
			value = append(value, r)
			if r == '"' {
				break
			}
			if r != '#' {
				return nil
			}
			hashes++
		}

		trailing := -1
		for {
			r, ok := stream.NextChar()
			if !ok {
				return nil
			}
			value = append(value, r)

			switch {
			case r == '"':
				trailing = 0
			case r == '#' && trailing >= 0:
				trailing++
			default:
				trailing = -1
			}
			if trailing == hashes {
				return tokenizer.NewToken(TokenRawString, value)
			}
		}
	}
}

// NumberMatcher matches numeric literals in every radix.
//
// Grammar:
//
//	Number  = [ "+" | "-" ] ( "0" ( "x" | "o" | "b" ) Digits | Decimal ) ;
//	Decimal = ( Digits [ "." Digits ] | "." Digits ) [ ( "e" | "E" ) [ "+" | "-" ] Digits ] ;
//
// Digits of a prefixed literal are scanned as hex digits; the parser checks
// them against the radix.
func NumberMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune

		r, ok := stream.PeekChar()
		if !ok {
			return nil
		}
		if r == '+' || r == '-' {
			stream.NextChar()
			value = append(value, r)
		}

		// Radix prefix
		leadingZero := false
		if r, ok := stream.PeekChar(); ok && r == '0' {
			stream.NextChar()
			value = append(value, r)
			leadingZero = true
			if p, ok := stream.PeekChar(); ok && (p == 'x' || p == 'o' || p == 'b') {
				stream.NextChar()
				value = append(value, p)
				digits := scanDigits(stream, isHexDigit, false)
				if len(digits) == 0 {
					return nil
				}
				return tokenizer.NewToken(TokenNumber, append(value, digits...))
			}
		}

		mantissa := scanDigits(stream, isDigit, leadingZero)
		value = append(value, mantissa...)
		hasDigits := leadingZero || len(mantissa) > 0

		if r, ok := stream.PeekChar(); ok && r == '.' {
			stream.NextChar()
			value = append(value, r)
			fraction := scanDigits(stream, isDigit, false)
			if len(fraction) == 0 {
				return nil
			}
			value = append(value, fraction...)
			hasDigits = true
		}
		if !hasDigits {
			return nil
		}

		if r, ok := stream.PeekChar(); ok && (r == 'e' || r == 'E') {
			stream.NextChar()
			value = append(value, r)
			if s, ok := stream.PeekChar(); ok && (s == '+' || s == '-') {
				stream.NextChar()
				value = append(value, s)
			}
			exponent := scanDigits(stream, isDigit, false)
			if len(exponent) == 0 {
				return nil
			}
			value = append(value, exponent...)
		}

		return tokenizer.NewToken(TokenNumber, value)
	}
}

// scanDigits consumes a digit run accepted by isDigit, with "'" grouping
// separators once a digit has been seen. started reports whether the caller
// already consumed the first digit of the run.
func scanDigits(stream tokenizer.Stream, isDigit func(rune) bool, started bool) []rune {
	var digits []rune
	for {
		r, ok := stream.PeekChar()
		if !ok || !(isDigit(r) || (r == '\'' && (started || len(digits) > 0))) {
			return digits
		}
		stream.NextChar()
		digits = append(digits, r)
	}
}

// IdentifierMatcher matches bare identifiers. The keywords null, true and
// false get their own token kinds.
//
// Grammar:
//
//	Identifier = [A-Za-z_] { [A-Za-z0-9_-] } ;
func IdentifierMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || !isIdentStart(r) {
			return nil
		}

		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || !isIdentPart(r) {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}

		switch string(value) {
		case "null":
			return tokenizer.NewToken(TokenNull, value)
		case "true":
			return tokenizer.NewToken(TokenTrue, value)
		case "false":
			return tokenizer.NewToken(TokenFalse, value)
		}
		return tokenizer.NewToken(TokenIdentifier, value)
	}
}

// consumePrefix consumes lit if the stream starts with it. On a mismatch the
// matcher returns nil and the tokenizer rewinds the stream.
func consumePrefix(stream tokenizer.Stream, lit string) bool {
	for _, want := range lit {
		r, ok := stream.NextChar()
		if !ok || r != want {
			return false
		}
	}
	return true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '-'
}
