package parser

import (
	"fmt"

	"github.com/vixos/vixrpc/internal/compiler/token"
)

// Diagnostics are fatal: the first one aborts the whole parse run. Each
// carries the offending token so the message can show the source line it
// came from. Duplicate-name collisions are reported with defs.DuplicateError.

// UnknownTokenError reports a token that has no place at the current
// position, such as an illegal character at the top level.
type UnknownTokenError struct {
	Tok token.Token
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("%d:%d: unknown token %q (%s) in %q",
		e.Tok.Line, e.Tok.Column, e.Tok.Literal, e.Tok.Type, e.Tok.Source)
}

// UnknownKeywordError reports a top-level name that is not one of the six
// declaration keywords.
type UnknownKeywordError struct {
	Tok token.Token
}

func (e *UnknownKeywordError) Error() string {
	return fmt.Sprintf(`%d:%d: unknown keyword %q in %q: expected one of "struct", "enum", "const", "union", "fn", or "signal"`,
		e.Tok.Line, e.Tok.Column, e.Tok.Literal, e.Tok.Source)
}

// ExpectedError reports a token that does not match the expected class at
// the current transition.
type ExpectedError struct {
	Expected string
	Tok      token.Token
}

func (e *ExpectedError) Error() string {
	return fmt.Sprintf("%d:%d: expected %s, got %q (%s) in %q",
		e.Tok.Line, e.Tok.Column, e.Expected, e.Tok.Literal, e.Tok.Type, e.Tok.Source)
}

// InvalidTypeError reports a type annotation rejected by the resolver.
type InvalidTypeError struct {
	Text string
	Tok  token.Token
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("%d:%d: invalid type %q in %q",
		e.Tok.Line, e.Tok.Column, e.Text, e.Tok.Source)
}

// DuplicateEnumValueError reports two members of one enum sharing a value.
type DuplicateEnumValueError struct {
	Enum   string
	Member string
}

func (e *DuplicateEnumValueError) Error() string {
	return fmt.Sprintf("duplicate enum value at %s.%s", e.Enum, e.Member)
}
