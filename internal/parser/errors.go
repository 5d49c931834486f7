package parser

import (
	"errors"
	"fmt"
)

// Error kinds. A *ParseError matches exactly one of these with errors.Is.
var (
	ErrUnexpectedEOF          = errors.New("unexpected end of input")
	ErrUnexpectedCharacter    = errors.New("unexpected character")
	ErrInvalidDigit           = errors.New("invalid digit")
	ErrNonASCIIEscape         = errors.New("non-ASCII \\x escape")
	ErrUnpairedSurrogate      = errors.New("unpaired UTF-16 surrogate")
	ErrUnexpectedLowSurrogate = errors.New("unexpected low UTF-16 surrogate")
	ErrSurrogateCodepoint     = errors.New("surrogate code point not allowed")
	ErrInvalidCodepoint       = errors.New("invalid code point")
	ErrUnknownEscape          = errors.New("unknown escape")
	ErrUnterminatedComment    = errors.New("unterminated block comment")
	ErrNonASCIIByte           = errors.New("non-ASCII byte in binary string")
	ErrControlCharacter       = errors.New("unexpected control character")
	ErrExpectedColon          = errors.New("expected ':'")
	ErrExpectedSeparator      = errors.New("expected separator")
	ErrUnknownKeyword         = errors.New("unknown keyword")
	ErrTrailingGarbage        = errors.New("trailing garbage")
	ErrDepthLimit             = errors.New("nesting depth limit exceeded")
)

// ParseError describes the first problem found in a document.
type ParseError struct {
	Offset  int   // index of the offending character, in Unicode scalars
	Line    int   // 1-based
	Column  int   // 1-based, in Unicode scalars
	Kind    error // one of the Err* sentinels
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mason: parse error at line %d, column %d (offset %d): %s",
		e.Line, e.Column, e.Offset, e.Message)
}

// Unwrap returns the error kind.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Position returns where the error occurred.
func (e *ParseError) Position() Position {
	return Position{Offset: e.Offset, Line: e.Line, Column: e.Column}
}

func failAt(pos Position, kind error, format string, args ...any) *ParseError {
	return &ParseError{
		Offset:  pos.Offset,
		Line:    pos.Line,
		Column:  pos.Column,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
