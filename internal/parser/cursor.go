package parser

import (
	"fmt"
	"strconv"
)

// Position locates a character in the source.
type Position struct {
	Offset int // in Unicode scalars
	Line   int // 1-based
	Column int // 1-based
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// charClass is a named character predicate, used by expect for messages.
type charClass struct {
	name  string
	match func(rune) bool
}

var identStart = charClass{"identifier start [A-Za-z_]", isIdentStart}

// cursor is a forward-only view over the source text.
type cursor struct {
	src    []rune
	pos    int
	line   int
	column int
}

func newCursor(input string) *cursor {
	return &cursor{src: []rune(input), line: 1, column: 1}
}

func (c *cursor) position() Position {
	return Position{Offset: c.pos, Line: c.line, Column: c.column}
}

// peek returns the current character.
func (c *cursor) peek() (rune, bool) {
	if c.pos >= len(c.src) {
		return 0, false
	}
	return c.src[c.pos], true
}

// peekNext returns the character after the current one.
func (c *cursor) peekNext() (rune, bool) {
	if c.pos+1 >= len(c.src) {
		return 0, false
	}
	return c.src[c.pos+1], true
}

// at reports whether the current character is r.
func (c *cursor) at(r rune) bool {
	ch, ok := c.peek()
	return ok && ch == r
}

// atPair reports whether the next two characters are a and b.
func (c *cursor) atPair(a, b rune) bool {
	if c.pos+1 >= len(c.src) {
		return false
	}
	return c.src[c.pos] == a && c.src[c.pos+1] == b
}

func (c *cursor) matches(pred func(rune) bool) bool {
	ch, ok := c.peek()
	return ok && pred(ch)
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.src)
}

func (c *cursor) consume() {
	if c.pos >= len(c.src) {
		return
	}
	if c.src[c.pos] == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	c.pos++
}

// take consumes and returns the current character.
func (c *cursor) take() (rune, bool) {
	ch, ok := c.peek()
	if ok {
		c.consume()
	}
	return ch, ok
}

func (c *cursor) expectRune(want rune) error {
	ch, ok := c.peek()
	if !ok {
		return c.fail(ErrUnexpectedEOF, "unexpected end of input, expected %s", quoteRune(want))
	}
	if ch != want {
		return c.fail(ErrUnexpectedCharacter, "unexpected %s, expected %s", quoteRune(ch), quoteRune(want))
	}
	return nil
}

func (c *cursor) expectClass(class charClass) error {
	ch, ok := c.peek()
	if !ok {
		return c.fail(ErrUnexpectedEOF, "unexpected end of input, expected %s", class.name)
	}
	if !class.match(ch) {
		return c.fail(ErrUnexpectedCharacter, "unexpected %s, expected %s", quoteRune(ch), class.name)
	}
	return nil
}

func (c *cursor) skipRune(want rune) error {
	if err := c.expectRune(want); err != nil {
		return err
	}
	c.consume()
	return nil
}

func (c *cursor) fail(kind error, format string, args ...any) *ParseError {
	return failAt(c.position(), kind, format, args...)
}

// quoteRune renders a character for error messages.
func quoteRune(r rune) string {
	return strconv.QuoteRune(r)
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDecDigit(r) || r == '-'
}

func isDecDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
