package parser

import (
	"strings"
	"unicode/utf8"
)

// parseIdentifier parses a bare identifier.
//
// Grammar:
//
//	Identifier = [A-Za-z_] { [A-Za-z0-9_-] } ;
func (c *cursor) parseIdentifier() (string, error) {
	if err := c.expectClass(identStart); err != nil {
		return "", err
	}

	start := c.pos
	for c.matches(isIdentPart) {
		c.consume()
	}
	return string(c.src[start:c.pos]), nil
}

// parseKey parses an object key.
//
// Grammar:
//
//	Key = String | Identifier ;
func (c *cursor) parseKey() (string, error) {
	if c.at('"') {
		return c.parseString()
	}
	return c.parseIdentifier()
}

// simpleEscape resolves the single-letter escapes shared by text and binary
// strings.
func simpleEscape(ch rune) (rune, bool) {
	switch ch {
	case '"', '\\', '/':
		return ch, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// parseHex reads exactly n hex digits.
func (c *cursor) parseHex(n int) (rune, error) {
	var v rune
	for ; n > 0; n-- {
		ch, ok := c.peek()
		if !ok {
			return 0, c.fail(ErrUnexpectedEOF, "unexpected end of input in hex escape")
		}
		d := digitValue(ch)
		if d < 0 || d >= 16 {
			return 0, c.fail(ErrInvalidDigit, "invalid hex digit %s", quoteRune(ch))
		}
		v = v*16 + rune(d)
		c.consume()
	}
	return v, nil
}

// parseString parses a double-quoted text string.
//
// Grammar:
//
//	String = '"' { Char | Escape } '"' ;
//	Escape = "\\" ( '"' | "\\" | "/" | "b" | "f" | "n" | "r" | "t"
//	       | "x" Hex Hex | "u" Hex Hex Hex Hex | "U" Hex Hex Hex Hex Hex Hex ) ;
func (c *cursor) parseString() (string, error) {
	if err := c.skipRune('"'); err != nil {
		return "", err
	}

	var sb strings.Builder
	for {
		ch, ok := c.peek()
		if !ok {
			return "", c.fail(ErrUnexpectedEOF, "unexpected end of input in string")
		}
		switch {
		case ch == '"':
			c.consume()
			return sb.String(), nil
		case ch == '\\':
			c.consume()
			r, err := c.parseStringEscape()
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
		case ch < 0x20:
			return "", c.fail(ErrControlCharacter, "unexpected control character %s in string", quoteRune(ch))
		default:
			c.consume()
			sb.WriteRune(ch)
		}
	}
}

// parseStringEscape decodes the escape after a backslash in a text string.
func (c *cursor) parseStringEscape() (rune, error) {
	ch, ok := c.peek()
	if !ok {
		return 0, c.fail(ErrUnexpectedEOF, "unexpected end of input in escape sequence")
	}
	if r, ok := simpleEscape(ch); ok {
		c.consume()
		return r, nil
	}

	switch ch {
	case 'x':
		c.consume()
		v, err := c.parseHex(2)
		if err != nil {
			return 0, err
		}
		if v > 0x7f {
			return 0, c.fail(ErrNonASCIIEscape, "'\\x' escapes can only be used for 7-bit ASCII characters")
		}
		return v, nil

	case 'u':
		c.consume()
		return c.parseUTF16Escape()

	case 'U':
		c.consume()
		v, err := c.parseHex(6)
		if err != nil {
			return 0, err
		}
		if isSurrogate(v) {
			return 0, c.fail(ErrSurrogateCodepoint, "UTF-16 surrogate code point U+%04X is not allowed in '\\U' escapes", v)
		}
		if v > utf8.MaxRune {
			return 0, c.fail(ErrInvalidCodepoint, "code point U+%X is out of range", v)
		}
		return v, nil
	}

	return 0, c.fail(ErrUnknownEscape, "unknown escape character %s", quoteRune(ch))
}

// parseUTF16Escape decodes the digits of a \u escape, pairing a high
// surrogate with the \u escape that must follow it.
func (c *cursor) parseUTF16Escape() (rune, error) {
	hi, err := c.parseHex(4)
	if err != nil {
		return 0, err
	}

	switch {
	case isLowSurrogate(hi):
		return 0, c.fail(ErrUnexpectedLowSurrogate, "unexpected low UTF-16 surrogate U+%04X", hi)
	case !isHighSurrogate(hi):
		return hi, nil
	}

	if !c.atPair('\\', 'u') {
		return 0, c.fail(ErrUnpairedSurrogate, "unpaired UTF-16 surrogate U+%04X", hi)
	}
	c.consume()
	c.consume()

	lo, err := c.parseHex(4)
	if err != nil {
		return 0, err
	}
	if !isLowSurrogate(lo) {
		return 0, c.fail(ErrUnpairedSurrogate, "unpaired UTF-16 surrogate U+%04X", hi)
	}

	return 0x10000 + (hi-0xd800)*0x400 + (lo - 0xdc00), nil
}

func isSurrogate(r rune) bool     { return r >= 0xd800 && r <= 0xdfff }
func isHighSurrogate(r rune) bool { return r >= 0xd800 && r <= 0xdbff }
func isLowSurrogate(r rune) bool  { return r >= 0xdc00 && r <= 0xdfff }

// parseRawString parses a raw string. The content is taken verbatim and ends
// at the first '"' followed by as many '#' as opened the literal.
//
// Grammar:
//
//	RawString = "r" { "#" } '"' { Char } '"' { "#" } ;
func (c *cursor) parseRawString() (string, error) {
	if err := c.skipRune('r'); err != nil {
		return "", err
	}

	hashes := 0
	for c.at('#') {
		hashes++
		c.consume()
	}
	if err := c.skipRune('"'); err != nil {
		return "", err
	}

	start := c.pos
	// trailing counts the '#' seen since the last '"', or -1 when the run
	// was broken by any other character.
	trailing := -1
	for {
		ch, ok := c.take()
		if !ok {
			return "", c.fail(ErrUnexpectedEOF, "unexpected end of input in raw string")
		}

		switch {
		case ch == '"':
			trailing = 0
		case ch == '#' && trailing >= 0:
			trailing++
		default:
			trailing = -1
		}

		if trailing == hashes {
			return string(c.src[start : c.pos-hashes-1]), nil
		}
	}
}

// parseBinaryString parses a byte string.
//
// Grammar:
//
//	BinaryString = "b" '"' { AsciiChar | Escape } '"' ;
//	Escape = "\\" ( '"' | "\\" | "/" | "b" | "f" | "n" | "r" | "t" | "x" Hex Hex ) ;
func (c *cursor) parseBinaryString() ([]byte, error) {
	if err := c.skipRune('b'); err != nil {
		return nil, err
	}
	if err := c.skipRune('"'); err != nil {
		return nil, err
	}

	out := []byte{}
	for {
		ch, ok := c.peek()
		if !ok {
			return nil, c.fail(ErrUnexpectedEOF, "unexpected end of input in binary string")
		}

		switch {
		case ch == '"':
			c.consume()
			return out, nil

		case ch == '\\':
			c.consume()
			esc, ok := c.peek()
			if !ok {
				return nil, c.fail(ErrUnexpectedEOF, "unexpected end of input in escape sequence")
			}
			if r, ok := simpleEscape(esc); ok {
				c.consume()
				out = append(out, byte(r))
				continue
			}
			if esc != 'x' {
				return nil, c.fail(ErrUnknownEscape, "unknown escape character %s", quoteRune(esc))
			}
			c.consume()
			v, err := c.parseHex(2)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(v))

		case ch > 0x7f:
			return nil, c.fail(ErrNonASCIIByte, "binary strings can only contain ASCII literals, got %s", quoteRune(ch))

		case ch < 0x20:
			return nil, c.fail(ErrControlCharacter, "unexpected control character %s in binary string", quoteRune(ch))

		default:
			c.consume()
			out = append(out, byte(ch))
		}
	}
}
