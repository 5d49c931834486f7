// Package parser implements LL(2) recursive descent parsing for the MASON format.
// Each production rule in the grammar corresponds to a parse function; the
// grammar is generic over a Builder so the same productions can produce plain
// values or positioned AST nodes.
package parser

// DefaultMaxDepth is the number of nested objects and arrays a document may
// contain before parsing fails with ErrDepthLimit.
const DefaultMaxDepth = 1024

// Builder constructs result nodes. pos is the position of the first character
// of the literal or container being built.
type Builder[T any] interface {
	Null(pos Position) T
	Bool(pos Position, b bool) T
	Number(pos Position, f float64) T
	Text(pos Position, s string) T
	Bytes(pos Position, b []byte) T
	List(pos Position, items []T) T
	// Map receives unique keys in insertion order.
	Map(pos Position, keys []string, values []T) T
}

// Parser implements recursive descent parsing for MASON documents.
// A Parser is single use: create one per document.
type Parser[T any] struct {
	c        *cursor
	b        Builder[T]
	maxDepth int
	depth    int
}

// NewParser creates a parser for input that builds its result with b.
func NewParser[T any](input string, b Builder[T]) *Parser[T] {
	return &Parser[T]{
		c:        newCursor(input),
		b:        b,
		maxDepth: DefaultMaxDepth,
	}
}

// SetMaxDepth overrides the nesting limit. n <= 0 restores DefaultMaxDepth.
func (p *Parser[T]) SetMaxDepth(n int) *Parser[T] {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
	return p
}

// Parse parses the whole input as one document.
//
// Grammar:
//
//	Document = [ WS ] ( ImplicitObject | Value ) [ WS ] EOF ;
//	ImplicitObject = Key ":" Value { Separator Key ":" Value } [ Separator ] ;
//
// Returns a *ParseError describing the first problem found.
func (p *Parser[T]) Parse() (T, error) {
	var zero T

	if err := p.c.skipWhitespace(); err != nil {
		return zero, err
	}

	v, err := p.parseValue(true)
	if err != nil {
		return zero, err
	}

	if err := p.c.skipWhitespace(); err != nil {
		return zero, err
	}
	if ch, ok := p.c.peek(); ok {
		return zero, p.c.fail(ErrTrailingGarbage, "trailing garbage after document: %s", quoteRune(ch))
	}

	return v, nil
}

// parseValue dispatches on the next one or two characters.
//
// Grammar:
//
//	Value = Object | Array | String | RawString | Number | BinaryString
//	      | "null" | "true" | "false" ;
func (p *Parser[T]) parseValue(topLevel bool) (T, error) {
	var zero T
	c := p.c
	pos := c.position()

	ch, ok := c.peek()
	if !ok {
		return zero, c.fail(ErrUnexpectedEOF, "unexpected end of input, expected a value")
	}
	next, _ := c.peekNext()

	switch {
	case ch == '[':
		return p.parseArray()

	case ch == '{':
		return p.parseObject()

	case ch == '"':
		s, err := c.parseString()
		if err != nil {
			return zero, err
		}
		if topLevel {
			implicit, err := p.atImplicitColon()
			if err != nil {
				return zero, err
			}
			if implicit {
				return p.parseImplicitObject(pos, s)
			}
		}
		return p.b.Text(pos, s), nil

	case ch == 'r' && (next == '"' || next == '#'):
		s, err := c.parseRawString()
		if err != nil {
			return zero, err
		}
		return p.b.Text(pos, s), nil

	case ch == '+' || ch == '-' || ch == '.' || isDecDigit(ch):
		f, err := c.parseNumber()
		if err != nil {
			return zero, err
		}
		return p.b.Number(pos, f), nil

	case ch == 'b' && next == '"':
		bs, err := c.parseBinaryString()
		if err != nil {
			return zero, err
		}
		return p.b.Bytes(pos, bs), nil
	}

	ident, err := c.parseIdentifier()
	if err != nil {
		return zero, err
	}
	end := c.position()

	if topLevel {
		implicit, err := p.atImplicitColon()
		if err != nil {
			return zero, err
		}
		if implicit {
			return p.parseImplicitObject(pos, ident)
		}
	}

	switch ident {
	case "null":
		return p.b.Null(pos), nil
	case "true":
		return p.b.Bool(pos, true), nil
	case "false":
		return p.b.Bool(pos, false), nil
	}
	return zero, failAt(end, ErrUnknownKeyword, "unknown keyword %q", ident)
}

// atImplicitColon skips same-line whitespace and reports whether a ':'
// follows, which turns a leading top-level token into the first key of an
// implicit object.
func (p *Parser[T]) atImplicitColon() (bool, error) {
	if err := p.c.skipSpace(); err != nil {
		return false, err
	}
	return p.c.at(':'), nil
}

// parseObject parses a braced object.
//
// Grammar:
//
//	Object = "{" [ WS ] ( "}" | Key ":" Value { Separator Key ":" Value } [ Separator ] "}" ) ;
func (p *Parser[T]) parseObject() (T, error) {
	var zero T
	c := p.c
	pos := c.position()

	if err := p.enter(); err != nil {
		return zero, err
	}
	defer p.leave()

	c.consume() // '{'
	if err := c.skipWhitespace(); err != nil {
		return zero, err
	}
	if c.at('}') {
		c.consume()
		return p.b.Map(pos, nil, nil), nil
	}

	key, err := c.parseKey()
	if err != nil {
		return zero, err
	}
	if err := c.skipWhitespace(); err != nil {
		return zero, err
	}
	return p.parsePairsAfterKey(pos, key, false)
}

// parseImplicitObject parses a brace-less top-level object whose first key
// has already been read; the cursor is on the ':'.
func (p *Parser[T]) parseImplicitObject(pos Position, key string) (T, error) {
	var zero T
	if err := p.enter(); err != nil {
		return zero, err
	}
	defer p.leave()
	return p.parsePairsAfterKey(pos, key, true)
}

// parsePairsAfterKey parses the remainder of an object once its first key is
// known. A braced object ends at '}'; an implicit one ends at EOF, or at a
// stray '}' which is then left for the document to reject.
func (p *Parser[T]) parsePairsAfterKey(pos Position, key string, implicit bool) (T, error) {
	var zero T
	c := p.c
	var pairs orderedPairs[T]

	for {
		if !c.at(':') {
			if c.eof() {
				return zero, c.fail(ErrUnexpectedEOF, "unexpected end of input, expected ':' after key %q", key)
			}
			ch, _ := c.peek()
			return zero, c.fail(ErrExpectedColon, "expected ':' after key %q, got %s", key, quoteRune(ch))
		}
		c.consume()
		if err := c.skipWhitespace(); err != nil {
			return zero, err
		}

		v, err := p.parseValue(false)
		if err != nil {
			return zero, err
		}
		pairs.set(key, v)

		sep, err := c.skipSeparator()
		if err != nil {
			return zero, err
		}
		if err := c.skipWhitespace(); err != nil {
			return zero, err
		}

		ch, ok := c.peek()
		switch {
		case !ok && implicit:
			return p.b.Map(pos, pairs.keys, pairs.values), nil
		case !ok:
			return zero, c.fail(ErrUnexpectedEOF, "unexpected end of input, expected '}'")
		case ch == '}' && implicit:
			return p.b.Map(pos, pairs.keys, pairs.values), nil
		case ch == '}':
			c.consume()
			return p.b.Map(pos, pairs.keys, pairs.values), nil
		case !sep:
			if implicit {
				return zero, c.fail(ErrExpectedSeparator, "expected separator or end of input, got %s", quoteRune(ch))
			}
			return zero, c.fail(ErrExpectedSeparator, "expected separator or '}', got %s", quoteRune(ch))
		}

		key, err = c.parseKey()
		if err != nil {
			return zero, err
		}
		if err := c.skipWhitespace(); err != nil {
			return zero, err
		}
	}
}

// parseArray parses an array.
//
// Grammar:
//
//	Array = "[" [ WS ] ( "]" | Value { Separator Value } [ Separator ] "]" ) ;
func (p *Parser[T]) parseArray() (T, error) {
	var zero T
	c := p.c
	pos := c.position()

	if err := p.enter(); err != nil {
		return zero, err
	}
	defer p.leave()

	c.consume() // '['
	if err := c.skipWhitespace(); err != nil {
		return zero, err
	}
	if c.at(']') {
		c.consume()
		return p.b.List(pos, nil), nil
	}

	var items []T
	for {
		v, err := p.parseValue(false)
		if err != nil {
			return zero, err
		}
		items = append(items, v)

		sep, err := c.skipSeparator()
		if err != nil {
			return zero, err
		}

		ch, ok := c.peek()
		switch {
		case !ok:
			return zero, c.fail(ErrUnexpectedEOF, "unexpected end of input, expected ']'")
		case ch == ']':
			c.consume()
			return p.b.List(pos, items), nil
		case !sep:
			return zero, c.fail(ErrExpectedSeparator, "expected separator or ']', got %s", quoteRune(ch))
		}
	}
}

// enter records one more level of nesting. The cursor is still on the
// opening bracket, so a depth error points at it.
func (p *Parser[T]) enter() error {
	if p.depth >= p.maxDepth {
		return p.c.fail(ErrDepthLimit, "nesting depth exceeds the limit of %d", p.maxDepth)
	}
	p.depth++
	return nil
}

func (p *Parser[T]) leave() {
	p.depth--
}

// orderedPairs collects object members, keeping the first position of a key
// when a later member overwrites it.
type orderedPairs[T any] struct {
	keys   []string
	values []T
	index  map[string]int
}

func (o *orderedPairs[T]) set(key string, v T) {
	if i, ok := o.index[key]; ok {
		o.values[i] = v
		return
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, v)
}
