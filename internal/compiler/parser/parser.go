// Package parser recognizes the IDL grammar with an explicitly stacked state
// machine. Each grammar production is a state pushed onto a run-time stack;
// nested productions (list and tuple types) are child states that hand their
// synthesized value back to the parent through a one-slot return channel
// instead of a function-call return. The state set is closed, so dispatch is
// a switch over a stateKind enum rather than dynamic dispatch.
package parser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vixos/vixrpc/internal/compiler/defs"
	"github.com/vixos/vixrpc/internal/compiler/lexer"
	"github.com/vixos/vixrpc/internal/compiler/token"
	"github.com/vixos/vixrpc/internal/compiler/types"
)

type stateKind int

const (
	stateRoot stateKind = iota
	stateStruct
	stateEnum
	stateConst
	stateUnion
	stateFunction
	stateSignal
	stateList
	stateTuple
)

// blockEntry is one accumulated `name DELIM value` line of a struct or enum
// body, in source order.
type blockEntry struct {
	name  string
	value defs.Literal
}

// state is one stack frame of the parser. Which fields are live depends on
// kind; step is the position within that production's automaton.
type state struct {
	kind stateKind
	step int
	name string

	// Return channel: a popping child attaches its synthesized value here,
	// and the parent consumes it on its very next handle step.
	lastReturn string

	// struct / enum
	curName string
	value   defs.Literal
	entries []blockEntry
	seen    map[string]bool

	// fn / signal
	params   []defs.Param
	curParam string
	ret      string

	// union
	typeSet map[string]bool

	// tuple / list children
	elems []string
	elem  string
}

type Parser struct {
	l     *lexer.Lexer
	table *defs.Table
	stack []*state
}

func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{
		l:     l,
		table: defs.NewTable(),
		stack: []*state{{kind: stateRoot}},
	}
}

// ParseSchema drives the token stream through the state stack until EOF and
// returns the completed definition table. The first diagnostic aborts the
// run; there is no recovery and no partial table.
func (p *Parser) ParseSchema() (*defs.Table, error) {
	for {
		tok := p.l.NextToken()
		if tok.Type == token.TokenComment {
			continue
		}
		if err := p.handle(tok); err != nil {
			return nil, err
		}
		if tok.Type == token.TokenEOF {
			if len(p.stack) != 1 {
				return nil, &ExpectedError{Expected: "complete definition", Tok: tok}
			}
			return p.table, nil
		}
	}
}

func (p *Parser) top() *state {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) push(kind stateKind) {
	st := &state{kind: kind}
	switch kind {
	case stateStruct, stateEnum:
		st.seen = make(map[string]bool)
	case stateUnion:
		st.typeSet = make(map[string]bool)
	}
	p.stack = append(p.stack, st)
}

// pop removes the top state. A non-empty arg is the popped state's
// synthesized value, delivered to the new top's return channel.
func (p *Parser) pop(arg string) {
	p.stack = p.stack[:len(p.stack)-1]
	if arg != "" {
		p.top().lastReturn = arg
	}
}

// handle dispatches the token to the state on top of the stack.
func (p *Parser) handle(tok token.Token) error {
	st := p.top()
	switch st.kind {
	case stateRoot:
		return p.handleRoot(st, tok)
	case stateStruct, stateEnum:
		return p.handleBlock(st, tok)
	case stateConst:
		return p.handleConst(st, tok)
	case stateUnion:
		return p.handleUnion(st, tok)
	case stateFunction, stateSignal:
		return p.handleFunction(st, tok)
	case stateTuple:
		return p.handleTuple(st, tok)
	case stateList:
		return p.handleList(st, tok)
	}
	return &UnknownTokenError{Tok: tok}
}

// handleRoot accepts the six declaration keywords and pushes the matching
// child state. EOF is an accepting terminal transition.
func (p *Parser) handleRoot(st *state, tok token.Token) error {
	switch tok.Type {
	case token.TokenComment:
		return nil
	case token.TokenEOF:
		return nil
	case token.TokenName:
		switch tok.Literal {
		case "enum":
			p.push(stateEnum)
		case "struct":
			p.push(stateStruct)
		case "fn":
			p.push(stateFunction)
		case "signal":
			p.push(stateSignal)
		case "const":
			p.push(stateConst)
		case "union":
			p.push(stateUnion)
		default:
			return &UnknownKeywordError{Tok: tok}
		}
		return nil
	default:
		return &UnknownTokenError{Tok: tok}
	}
}

// handleBlock is the shared struct/enum automaton:
//
//	NAME ':' NEWLINE INDENT (field DELIM value NEWLINE)* DEDENT
//
// parameterized by the field delimiter (':' for struct, '=' for enum). A
// field value may be a bare name, an integer, or a bracketed/parenthesized
// type delegated to the List/Tuple child whose synthesized string arrives
// through the return channel.
func (p *Parser) handleBlock(st *state, tok token.Token) error {
	delim := token.TokenColon
	delimDesc := `":"`
	if st.kind == stateEnum {
		delim = token.TokenEqual
		delimDesc = `"="`
	}

	switch st.step {
	case 0:
		if tok.Type != token.TokenName {
			return &UnknownTokenError{Tok: tok}
		}
		st.name = tok.Literal
		st.step = 1
	case 1:
		if tok.Type != token.TokenColon {
			return &ExpectedError{Expected: `":"`, Tok: tok}
		}
		st.step = 2
	case 2:
		if tok.Type != token.TokenNewline {
			return &ExpectedError{Expected: "newline", Tok: tok}
		}
		st.step = 3
	case 3:
		if tok.Type != token.TokenIndent {
			return &ExpectedError{Expected: "indent", Tok: tok}
		}
		st.step = 4
	case 4:
		switch tok.Type {
		case token.TokenName:
			st.curName = tok.Literal
			st.step = 5
		case token.TokenDedent:
			p.pop("")
			return p.registerBlock(st)
		default:
			return &ExpectedError{Expected: "name", Tok: tok}
		}
	case 5:
		if tok.Type != delim {
			return &ExpectedError{Expected: delimDesc, Tok: tok}
		}
		st.step = 6
	case 6:
		switch {
		case tok.Type == token.TokenName:
			st.value = defs.NameLiteral(tok.Literal)
		case tok.Type == token.TokenLBracket:
			st.step = 7
			p.push(stateList)
			return nil
		case tok.Type == token.TokenLParen:
			st.step = 7
			p.push(stateTuple)
			return nil
		case tok.Type == token.TokenNumber:
			n, err := strconv.ParseInt(tok.Literal, 10, 64)
			if err != nil {
				return &ExpectedError{Expected: "name, number, or type", Tok: tok}
			}
			st.value = defs.IntLiteral(n)
		case st.lastReturn != "":
			st.value = defs.NameLiteral(st.lastReturn)
			st.lastReturn = ""
		default:
			return &ExpectedError{Expected: "name, number, or type", Tok: tok}
		}
		st.step = 7
	case 7:
		if st.seen[st.curName] {
			return &defs.DuplicateError{Name: st.curName}
		}
		if st.lastReturn != "" {
			st.value = defs.NameLiteral(st.lastReturn)
			st.lastReturn = ""
		}
		if st.kind == stateStruct {
			if _, err := types.Resolve(st.value.String()); err != nil {
				return &InvalidTypeError{Text: st.value.String(), Tok: tok}
			}
		}
		st.seen[st.curName] = true
		st.entries = append(st.entries, blockEntry{name: st.curName, value: st.value})
		st.value = defs.Literal{}
		st.step = 8
		if tok.Type == token.TokenNewline {
			st.step = 4
		}
	case 8:
		if tok.Type != token.TokenNewline {
			return &ExpectedError{Expected: "newline", Tok: tok}
		}
		st.step = 4
	}
	return nil
}

// registerBlock converts the accumulated entries into the block's definition
// and registers it. Enum registration additionally rejects a value shared by
// two members of the same enum.
func (p *Parser) registerBlock(st *state) error {
	if st.kind == stateEnum {
		seen := make(map[defs.Literal]bool, len(st.entries))
		for _, e := range st.entries {
			if seen[e.value] {
				return &DuplicateEnumValueError{Enum: st.name, Member: e.name}
			}
			seen[e.value] = true
		}
		members := make([]defs.Member, len(st.entries))
		for i, e := range st.entries {
			members[i] = defs.Member{Name: e.name, Value: e.value}
		}
		return p.table.Register(st.name, &defs.Enum{Members: members})
	}

	fields := make([]defs.Field, len(st.entries))
	for i, e := range st.entries {
		fields[i] = defs.Field{Name: e.name, Type: e.value.String()}
	}
	return p.table.Register(st.name, &defs.Struct{Fields: fields})
}

// handleConst recognizes `const NAME = (NAME | NUMBER) NEWLINE`. The value
// registers as soon as it is seen; the trailing newline just closes the
// production.
func (p *Parser) handleConst(st *state, tok token.Token) error {
	switch st.step {
	case 0:
		if tok.Type != token.TokenName {
			return &UnknownTokenError{Tok: tok}
		}
		st.name = tok.Literal
		st.step = 1
	case 1:
		if tok.Type != token.TokenEqual {
			return &ExpectedError{Expected: `"="`, Tok: tok}
		}
		st.step = 2
	case 2:
		var value defs.Literal
		switch tok.Type {
		case token.TokenName:
			value = defs.NameLiteral(tok.Literal)
		case token.TokenNumber:
			n, err := strconv.ParseInt(tok.Literal, 10, 64)
			if err != nil {
				return &ExpectedError{Expected: "name", Tok: tok}
			}
			value = defs.IntLiteral(n)
		default:
			return &ExpectedError{Expected: "name", Tok: tok}
		}
		if err := p.table.Register(st.name, &defs.Const{Value: value}); err != nil {
			return err
		}
		st.step = 3
	case 3:
		if tok.Type != token.TokenNewline {
			return &ExpectedError{Expected: "newline", Tok: tok}
		}
		p.pop("")
	}
	return nil
}

// handleUnion recognizes `union NAME = NAME ('|' NAME)* NEWLINE`. Members
// accumulate in a set, so repeats coalesce silently; the registered list is
// sorted for deterministic downstream output.
func (p *Parser) handleUnion(st *state, tok token.Token) error {
	switch st.step {
	case 0:
		if tok.Type != token.TokenName {
			return &UnknownTokenError{Tok: tok}
		}
		st.name = tok.Literal
		st.step = 1
	case 1:
		if tok.Type != token.TokenEqual {
			return &ExpectedError{Expected: `"="`, Tok: tok}
		}
		st.step = 2
	case 2:
		if tok.Type != token.TokenName {
			return &ExpectedError{Expected: "name", Tok: tok}
		}
		st.typeSet[tok.Literal] = true
		st.step = 3
	case 3:
		switch tok.Type {
		case token.TokenPipe:
			st.step = 2
		case token.TokenNewline:
			p.pop("")
			names := make([]string, 0, len(st.typeSet))
			for name := range st.typeSet {
				names = append(names, name)
			}
			sort.Strings(names)
			return p.table.Register(st.name, &defs.Union{Types: names})
		default:
			return &ExpectedError{Expected: `"|" or newline`, Tok: tok}
		}
	}
	return nil
}

// handleFunction recognizes both fn and signal declarations:
//
//	NAME '(' [NAME ':' NAME (',' NAME ':' NAME)*] ')' '->' (NAME | '[' ... ']')
//
// A bracketed return type delegates to the List child; its synthesized
// string arrives through the return channel at step 7 and finalizes the
// production. Parameter names are not checked for uniqueness.
func (p *Parser) handleFunction(st *state, tok token.Token) error {
	switch st.step {
	case 0:
		if tok.Type != token.TokenName || tok.Literal == "" {
			return &ExpectedError{Expected: "function name", Tok: tok}
		}
		st.name = tok.Literal
		st.step = 1
	case 1:
		if tok.Type != token.TokenLParen {
			return &ExpectedError{Expected: `"("`, Tok: tok}
		}
		st.step = 2
	case 2:
		switch tok.Type {
		case token.TokenName:
			st.curParam = tok.Literal
			st.step = 3
		case token.TokenRParen:
			st.step = 10
		default:
			return &ExpectedError{Expected: "name", Tok: tok}
		}
	case 3:
		if tok.Type != token.TokenColon {
			return &ExpectedError{Expected: `":"`, Tok: tok}
		}
		st.step = 4
	case 4:
		if tok.Type != token.TokenName {
			return &ExpectedError{Expected: "name", Tok: tok}
		}
		st.params = append(st.params, defs.Param{Name: st.curParam, Type: tok.Literal})
		st.step = 5
	case 5:
		switch tok.Type {
		case token.TokenRParen:
			st.step = 10
		case token.TokenComma:
			st.step = 2
		default:
			return &ExpectedError{Expected: `"," or ")"`, Tok: tok}
		}
	case 7:
		// Return list delivered by the List child.
		if st.lastReturn == "" {
			return &ExpectedError{Expected: "type", Tok: tok}
		}
		st.ret = st.lastReturn
		st.lastReturn = ""
		return p.finishFunction(st, tok)
	case 10:
		if tok.Type != token.TokenArrow {
			return &ExpectedError{Expected: `"->"`, Tok: tok}
		}
		st.step = 11
	case 11:
		switch tok.Type {
		case token.TokenName:
			st.ret = tok.Literal
			st.step = 12
		case token.TokenLBracket:
			st.step = 7
			p.push(stateList)
		default:
			return &ExpectedError{Expected: "type", Tok: tok}
		}
	case 12:
		return p.finishFunction(st, tok)
	}
	return nil
}

// finishFunction resolves the completed return type, pops the state, and
// registers the prototype. The triggering token (normally the newline after
// the arrow target) is consumed by the finalizing step.
func (p *Parser) finishFunction(st *state, tok token.Token) error {
	if _, err := types.Resolve(st.ret); err != nil {
		return &InvalidTypeError{Text: st.ret, Tok: tok}
	}
	p.pop("")
	if st.kind == stateSignal {
		return p.table.Register(st.name, &defs.Signal{Params: st.params, Return: st.ret})
	}
	return p.table.Register(st.name, &defs.Function{Params: st.params, Return: st.ret})
}

// handleTuple accumulates comma-separated names between '(' and ')'. On ')'
// it pops, returning the synthesized "(A, B)" string to the parent.
func (p *Parser) handleTuple(st *state, tok token.Token) error {
	switch {
	case tok.Type == token.TokenComma:
	case tok.Type == token.TokenRParen:
		p.pop("(" + strings.Join(st.elems, ", ") + ")")
	case tok.Type == token.TokenName:
		st.elems = append(st.elems, tok.Literal)
	}
	return nil
}

// handleList accumulates a single name between '[' and ']'. On ']' it pops,
// returning the synthesized "[A]" string to the parent.
func (p *Parser) handleList(st *state, tok token.Token) error {
	switch {
	case tok.Type == token.TokenComma:
	case tok.Type == token.TokenRBracket && st.elem != "":
		p.pop(st.elem)
	case tok.Type == token.TokenName && st.elem == "":
		st.elem = "[" + tok.Literal + "]"
	}
	return nil
}
