// Package tokenizer provides MASON tokenization using Shape's tokenizer framework.
package tokenizer

// Token type constants for MASON.
// Matchers only find lexeme boundaries; escapes, digits and keywords are
// validated by the parser.
const (
	// Structural tokens
	TokenLBrace   = "LBrace"   // {
	TokenRBrace   = "RBrace"   // }
	TokenLBracket = "LBracket" // [
	TokenRBracket = "RBracket" // ]
	TokenColon    = "Colon"    // :
	TokenComma    = "Comma"    // ,

	// Value tokens
	TokenString       = "String"       // "..."
	TokenRawString    = "RawString"    // r"...", r#"..."#
	TokenBinaryString = "BinaryString" // b"..."
	TokenNumber       = "Number"       // 12, -0x1F, 1'000.5e-3
	TokenIdentifier   = "Identifier"   // bare key
	TokenTrue         = "True"         // true
	TokenFalse        = "False"        // false
	TokenNull         = "Null"         // null

	// Trivia
	TokenWhitespace   = "Whitespace"   // spaces, tabs, lone \r
	TokenNewline      = "Newline"      // \n or \r\n
	TokenLineComment  = "LineComment"  // // ...
	TokenBlockComment = "BlockComment" // /* ... */
)

// IsTrivia reports whether tokens of kind carry no value: whitespace and
// comments. Newlines are not trivia because they separate members.
func IsTrivia(kind string) bool {
	switch kind {
	case TokenWhitespace, TokenLineComment, TokenBlockComment:
		return true
	}
	return false
}
