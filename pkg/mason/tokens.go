package mason

import (
	"fmt"

	"github.com/shapestone/shape-mason/internal/tokenizer"
)

// Token kinds reported by Tokenize.
const (
	TokenLBrace       = tokenizer.TokenLBrace
	TokenRBrace       = tokenizer.TokenRBrace
	TokenLBracket     = tokenizer.TokenLBracket
	TokenRBracket     = tokenizer.TokenRBracket
	TokenColon        = tokenizer.TokenColon
	TokenComma        = tokenizer.TokenComma
	TokenString       = tokenizer.TokenString
	TokenRawString    = tokenizer.TokenRawString
	TokenBinaryString = tokenizer.TokenBinaryString
	TokenNumber       = tokenizer.TokenNumber
	TokenIdentifier   = tokenizer.TokenIdentifier
	TokenTrue         = tokenizer.TokenTrue
	TokenFalse        = tokenizer.TokenFalse
	TokenNull         = tokenizer.TokenNull
	TokenWhitespace   = tokenizer.TokenWhitespace
	TokenNewline      = tokenizer.TokenNewline
	TokenLineComment  = tokenizer.TokenLineComment
	TokenBlockComment = tokenizer.TokenBlockComment
)

// Token is one lexeme of a MASON document.
type Token struct {
	Kind   string
	Text   string // the lexeme exactly as written
	Offset int
	Line   int
	Column int
}

// Trivia reports whether the token is whitespace or a comment.
func (t Token) Trivia() bool {
	return tokenizer.IsTrivia(t.Kind)
}

// Tokenize splits input into tokens, including whitespace and comments, so
// that concatenating every Text reproduces the input. It finds lexeme
// boundaries only: a document that tokenizes cleanly may still fail Parse.
//
// Example:
//
//	tokens, err := mason.Tokenize("port: 0x1F90 // http")
//	for _, tok := range tokens {
//	    if !tok.Trivia() {
//	        fmt.Println(tok.Kind, tok.Text)
//	    }
//	}
func Tokenize(input string) ([]Token, error) {
	raw, err := tokenizer.Collect(input)

	tokens := make([]Token, len(raw))
	for i, t := range raw {
		tokens[i] = Token{
			Kind:   t.Kind(),
			Text:   t.ValueString(),
			Offset: t.Offset(),
			Line:   t.Row(),
			Column: t.Column(),
		}
	}

	if err != nil {
		return tokens, fmt.Errorf("mason: %w", err)
	}
	return tokens, nil
}
