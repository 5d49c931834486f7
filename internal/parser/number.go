package parser

import (
	"math/big"
	"strconv"
	"strings"
)

// digitValue returns the value of a digit in any radix up to 16, or -1.
func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}

// parseInteger scans a run of digits in the given radix. The first digit is
// required; after it, "'" grouping separators are skipped and the run ends at
// the first character that is not a digit of the radix.
func (c *cursor) parseInteger(radix int) (*big.Int, error) {
	ch, ok := c.peek()
	if !ok {
		return nil, c.fail(ErrUnexpectedEOF, "unexpected end of input, expected a base-%d digit", radix)
	}
	// An empty run is an error here, not an early stop: 0o9 reports the bad
	// digit rather than trailing garbage after a zero-length integer.
	if d := digitValue(ch); d < 0 || d >= radix {
		return nil, c.fail(ErrInvalidDigit, "invalid base-%d digit %s", radix, quoteRune(ch))
	}

	n := new(big.Int)
	r := big.NewInt(int64(radix))
	d := new(big.Int)
	for {
		ch, ok := c.peek()
		if !ok {
			return n, nil
		}
		if ch == '\'' {
			c.consume()
			continue
		}
		v := digitValue(ch)
		if v < 0 || v >= radix {
			return n, nil
		}
		n.Mul(n, r)
		n.Add(n, d.SetInt64(int64(v)))
		c.consume()
	}
}

// parseNumber parses a numeric literal into a float64.
//
// Grammar:
//
//	Number   = [ "+" | "-" ] ( Radix | Decimal ) ;
//	Radix    = "0" ( "x" | "o" | "b" ) Digits ;
//	Decimal  = ( Digits [ "." Digits ] | "." Digits ) [ ( "e" | "E" ) [ "+" | "-" ] Digits ] ;
//	Digits   = Digit { Digit | "'" } ;
//
// The scanned parts are reassembled into a canonical decimal string and
// converted with strconv.ParseFloat; this code never does its own
// decimal-to-binary rounding.
func (c *cursor) parseNumber() (float64, error) {
	sign := ""
	switch {
	case c.at('-'):
		sign = "-"
		c.consume()
	case c.at('+'):
		c.consume()
	}

	radix := 10
	if c.at('0') {
		if next, ok := c.peekNext(); ok {
			switch next {
			case 'x':
				radix = 16
			case 'o':
				radix = 8
			case 'b':
				radix = 2
			}
		}
		if radix != 10 {
			c.consume()
			c.consume()
		}
	}

	integral := "0"
	if radix != 10 || !c.at('.') {
		n, err := c.parseInteger(radix)
		if err != nil {
			return 0, err
		}
		integral = n.String()
	}

	var fraction string
	exponent := "0"
	if radix == 10 {
		if c.at('.') {
			c.consume()
			ch, ok := c.peek()
			if !ok {
				return 0, c.fail(ErrUnexpectedEOF, "unexpected end of input, expected a digit after '.'")
			}
			if !isDecDigit(ch) {
				return 0, c.fail(ErrInvalidDigit, "invalid digit %s after '.'", quoteRune(ch))
			}
			var sb strings.Builder
			for {
				if c.at('\'') {
					c.consume()
					continue
				}
				ch, ok := c.peek()
				if !ok || !isDecDigit(ch) {
					break
				}
				sb.WriteRune(ch)
				c.consume()
			}
			fraction = sb.String()
		}

		if c.at('e') || c.at('E') {
			c.consume()
			expSign := ""
			switch {
			case c.at('-'):
				expSign = "-"
				c.consume()
			case c.at('+'):
				c.consume()
			}
			n, err := c.parseInteger(10)
			if err != nil {
				return 0, err
			}
			exponent = expSign + n.String()
		}
	}

	var sb strings.Builder
	sb.WriteString(sign)
	sb.WriteString(integral)
	if fraction != "" {
		sb.WriteByte('.')
		sb.WriteString(fraction)
	}
	sb.WriteByte('e')
	sb.WriteString(exponent)

	f, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil && !isRangeError(err) {
		return 0, c.fail(ErrInvalidDigit, "invalid number %q: %v", sb.String(), err)
	}
	return f, nil
}

// isRangeError reports whether err is ParseFloat's out-of-range error, in
// which case the returned value (±Inf or 0) is still meaningful.
func isRangeError(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}
