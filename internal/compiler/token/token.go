package token

type TokenType string

const (
	// Operators
	TokenColon    TokenType = "COLON"    // :
	TokenEqual    TokenType = "EQUAL"    // =
	TokenLParen   TokenType = "LPAREN"   // (
	TokenRParen   TokenType = "RPAREN"   // )
	TokenLBracket TokenType = "LBRACKET" // [
	TokenRBracket TokenType = "RBRACKET" // ]
	TokenPipe     TokenType = "PIPE"     // |
	TokenComma    TokenType = "COMMA"    // ,
	TokenArrow    TokenType = "ARROW"    // ->

	// Literals & identifiers
	TokenName   TokenType = "NAME"   // identifiers and keywords (struct, enum, ...)
	TokenNumber TokenType = "NUMBER" // 42

	// Layout. The lexer mirrors Python's tokenize here: one NEWLINE per
	// logical line, INDENT/DEDENT when the leading whitespace of a line
	// changes. Blank lines and whole-line comments produce nothing.
	TokenNewline TokenType = "NEWLINE"
	TokenIndent  TokenType = "INDENT"
	TokenDedent  TokenType = "DEDENT"

	// Special
	TokenComment TokenType = "COMMENT" // trailing # comment, filtered by the driver
	TokenEOF     TokenType = "EOF"
	TokenIllegal TokenType = "ILLEGAL"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int    // 1-indexed line number
	Column  int    // 1-indexed column number
	Source  string // full text of the originating source line, for diagnostics
}
