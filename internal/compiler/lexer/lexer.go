package lexer

import "github.com/vixos/vixrpc/internal/compiler/token"

// Lexer scans an IDL schema into tokens. It is line- and
// indentation-sensitive: each logical line ends in a NEWLINE token, and a
// change in leading whitespace emits INDENT/DEDENT tokens, the way Python's
// tokenize module frames its output. Blank lines and whole-line comments
// produce no tokens at all; trailing comments come out as COMMENT tokens for
// the driver to discard.
type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           byte // current char

	line      int // current line number (1-indexed)
	lineStart int // offset of the first char of the current line

	atLineStart bool
	indents     []int
	pending     []token.Token
}

func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:       input,
		line:        1,
		atLineStart: true,
		indents:     []int{0},
	}
	l.readChar()
	return l
}

// readChar advances the lexer's position and updates the current character.
// It handles EOF and tracks line numbers and line starts.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.lineStart = l.readPosition
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NULL (EOF)
	} else {
		l.ch = l.input[l.readPosition]
	}

	l.position = l.readPosition
	l.readPosition++
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// currentLine returns the full text of the line containing the current
// position, without its trailing newline. Tokens carry it for diagnostics.
func (l *Lexer) currentLine() string {
	end := l.lineStart
	for end < len(l.input) && l.input[end] != '\n' {
		end++
	}
	return l.input[l.lineStart:end]
}

func (l *Lexer) column() int {
	return l.position - l.lineStart + 1
}

func (l *Lexer) newToken(tokenType token.TokenType, literal string, col int) token.Token {
	return token.Token{
		Type:    tokenType,
		Literal: literal,
		Line:    l.line,
		Column:  col,
		Source:  l.currentLine(),
	}
}

func (l *Lexer) NextToken() token.Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	if l.atLineStart {
		if tok, ok := l.scanIndentation(); ok {
			return tok
		}
	}

	l.skipInlineWhitespace()

	col := l.column()

	switch l.ch {
	case '\n':
		tok := l.newToken(token.TokenNewline, "\n", col)
		l.readChar()
		l.atLineStart = true
		return tok
	case 0:
		// No trailing newline: close the logical line, then unwind the
		// indent stack before EOF.
		l.queueNewline(col)
		return l.queueEOF()
	case '#':
		return l.readComment(col)
	case ':':
		l.readChar()
		return l.newToken(token.TokenColon, ":", col)
	case '=':
		l.readChar()
		return l.newToken(token.TokenEqual, "=", col)
	case '(':
		l.readChar()
		return l.newToken(token.TokenLParen, "(", col)
	case ')':
		l.readChar()
		return l.newToken(token.TokenRParen, ")", col)
	case '[':
		l.readChar()
		return l.newToken(token.TokenLBracket, "[", col)
	case ']':
		l.readChar()
		return l.newToken(token.TokenRBracket, "]", col)
	case '|':
		l.readChar()
		return l.newToken(token.TokenPipe, "|", col)
	case ',':
		l.readChar()
		return l.newToken(token.TokenComma, ",", col)
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return l.newToken(token.TokenArrow, "->", col)
		}
		tok := l.newToken(token.TokenIllegal, string(l.ch), col)
		l.readChar()
		return tok
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			return l.newToken(token.TokenName, ident, col)
		} else if isDigit(l.ch) {
			num := l.readNumber()
			return l.newToken(token.TokenNumber, num, col)
		}
		tok := l.newToken(token.TokenIllegal, string(l.ch), col)
		l.readChar()
		return tok
	}
}

// scanIndentation runs at the start of each line. It skips blank and
// comment-only lines entirely, measures the leading whitespace of the first
// content line, and queues INDENT/DEDENT tokens against the indent stack.
// Returns the first queued token if any were produced.
func (l *Lexer) scanIndentation() (token.Token, bool) {
	var indent int
	for {
		indent = 0
		for l.ch == ' ' || l.ch == '\t' {
			if l.ch == '\t' {
				indent = indent/8*8 + 8 // tab stops every 8 columns
			} else {
				indent++
			}
			l.readChar()
		}
		if l.ch == '\r' {
			l.readChar()
			continue
		}
		if l.ch == '\n' {
			l.readChar()
			continue
		}
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
	l.atLineStart = false

	if l.ch == 0 {
		tok := l.queueEOF()
		return tok, true
	}

	col := l.column()
	top := l.indents[len(l.indents)-1]
	switch {
	case indent > top:
		l.indents = append(l.indents, indent)
		return l.newToken(token.TokenIndent, "", col), true
	case indent < top:
		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > indent {
			l.indents = l.indents[:len(l.indents)-1]
			l.pending = append(l.pending, l.newToken(token.TokenDedent, "", col))
		}
		if l.indents[len(l.indents)-1] != indent {
			// Dedent to a level never seen on the way in.
			l.pending = append(l.pending, l.newToken(token.TokenIllegal, "", col))
		}
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok, true
	}
	return token.Token{}, false
}

// queueNewline emits a synthetic NEWLINE for a final line with no '\n'.
func (l *Lexer) queueNewline(col int) {
	if l.position > l.lineStart {
		l.pending = append(l.pending, l.newToken(token.TokenNewline, "", col))
	}
}

// queueEOF unwinds the indent stack and returns the first token of the
// DEDENT* EOF tail.
func (l *Lexer) queueEOF() token.Token {
	col := l.column()
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.pending = append(l.pending, l.newToken(token.TokenDedent, "", col))
	}
	l.pending = append(l.pending, l.newToken(token.TokenEOF, "", col))
	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok
}

func (l *Lexer) skipInlineWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readComment(col int) token.Token {
	start := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	return l.newToken(token.TokenComment, l.input[start:l.position], col)
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
