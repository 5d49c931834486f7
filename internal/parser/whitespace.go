package parser

// skipWhitespace skips spaces, tabs, line breaks and both comment forms.
func (c *cursor) skipWhitespace() error {
	for {
		ch, ok := c.peek()
		if !ok {
			return nil
		}
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			c.consume()
		case c.atPair('/', '/'):
			c.skipLineComment()
		case c.atPair('/', '*'):
			if err := c.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// skipSpace skips spaces, tabs and block comments, but never a line break,
// so that a following newline can still act as a separator.
func (c *cursor) skipSpace() error {
	for {
		ch, ok := c.peek()
		if !ok {
			return nil
		}
		switch {
		case ch == ' ' || ch == '\t':
			c.consume()
		case c.atPair('/', '*'):
			if err := c.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// skipLineComment consumes "//" through the next LF or EOF.
func (c *cursor) skipLineComment() {
	c.consume()
	c.consume()
	for {
		ch, ok := c.take()
		if !ok || ch == '\n' {
			return
		}
	}
}

func (c *cursor) skipBlockComment() error {
	start := c.position()
	c.consume()
	c.consume()
	for {
		ch, ok := c.take()
		if !ok {
			return c.fail(ErrUnterminatedComment,
				"unexpected end of input in block comment opened at %s", start)
		}
		if ch == '*' && c.at('/') {
			c.consume()
			return nil
		}
	}
}

// skipSeparator consumes one element separator: ',', LF, CR LF or a line
// comment. It reports whether one was present. Blank lines and comments after
// a separator are skipped too.
func (c *cursor) skipSeparator() (bool, error) {
	if err := c.skipSpace(); err != nil {
		return false, err
	}

	switch {
	case c.at(','), c.at('\n'):
		c.consume()
	case c.atPair('\r', '\n'):
		c.consume()
		c.consume()
	case c.atPair('/', '/'):
		c.skipLineComment()
	default:
		return false, nil
	}

	return true, c.skipWhitespace()
}
