// Package defs holds the definition model produced by a parse run: one tagged
// variant per top-level declaration, collected into an order-preserving,
// globally-unique Table.
package defs

import (
	"fmt"
	"strconv"
)

// Literal is a scalar value appearing on the right-hand side of an enum
// member or const: either an integer or a bare name.
type Literal struct {
	Text  string
	Int   int64
	IsInt bool
}

func IntLiteral(v int64) Literal {
	return Literal{Int: v, IsInt: true}
}

func NameLiteral(s string) Literal {
	return Literal{Text: s}
}

func (l Literal) String() string {
	if l.IsInt {
		return strconv.FormatInt(l.Int, 10)
	}
	return l.Text
}

// Field is one struct field: its name and the type annotation as written in
// the source (already validated by the type resolver).
type Field struct {
	Name string
	Type string
}

// Member is one enum member.
type Member struct {
	Name  string
	Value Literal
}

// Param is one function or signal parameter.
type Param struct {
	Name string
	Type string
}

// Definition is the closed set of top-level declarations. The concrete types
// are Struct, Enum, Const, Union, Function, and Signal.
type Definition interface {
	definition()
}

// Struct is an ordered field list. Field names are unique within the struct.
type Struct struct {
	Fields []Field
}

// Enum is an ordered member list. Values are pairwise distinct within the
// enum (not globally).
type Enum struct {
	Members []Member
}

// Const is a single scalar value.
type Const struct {
	Value Literal
}

// Union is a set of member type names. Duplicate members in the source
// coalesce silently; Types is stored sorted for deterministic output.
type Union struct {
	Types []string
}

// Function is an ordered parameter list plus a return type annotation.
type Function struct {
	Params []Param
	Return string
}

// Signal is structurally a Function but marks a one-way call: the generator
// emits no reply path for it.
type Signal struct {
	Params []Param
	Return string
}

func (*Struct) definition()   {}
func (*Enum) definition()     {}
func (*Const) definition()    {}
func (*Union) definition()    {}
func (*Function) definition() {}
func (*Signal) definition()   {}

// DuplicateError reports a name collision: a top-level definition name used
// twice (in any kind), or a field name repeated within one block.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate definition %q", e.Name)
}

// Table is the ordered registry of definitions from one parse run. Iteration
// order is declaration order; downstream numbering (method ids) depends on
// it, so it is never re-sorted.
type Table struct {
	names  []string
	byName map[string]Definition
}

func NewTable() *Table {
	return &Table{byName: make(map[string]Definition)}
}

// Register adds a definition under name. Names are unique across all
// definition kinds: a struct and a function cannot share one.
func (t *Table) Register(name string, def Definition) error {
	if _, exists := t.byName[name]; exists {
		return &DuplicateError{Name: name}
	}
	t.names = append(t.names, name)
	t.byName[name] = def
	return nil
}

// Names returns the definition names in declaration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Lookup returns the definition registered under name.
func (t *Table) Lookup(name string) (Definition, bool) {
	def, ok := t.byName[name]
	return def, ok
}

// Len returns the number of registered definitions.
func (t *Table) Len() int {
	return len(t.names)
}
