// Package types resolves IDL type annotations into structured type trees.
package types

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindNumber Kind = iota
	KindList
	KindTuple
	KindNil
	KindFireAndForget
)

// Expr is a resolved type expression. Which fields are meaningful depends on
// Kind: Number uses Name/Width/Signed/Float, List uses Elem, Tuple uses
// Elems. Nil and FireAndForget are bare sentinels.
type Expr struct {
	Kind   Kind
	Name   string // numeric type name as written, e.g. "i32"
	Width  int    // bit width for numbers
	Signed bool
	Float  bool
	Elem   *Expr   // list element
	Elems  []*Expr // tuple elements, always >= 1
}

// InvalidTypeError reports a type annotation that matches none of the
// recognized forms.
type InvalidTypeError struct {
	Text string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type %q", e.Text)
}

type numericInfo struct {
	width  int
	signed bool
	float  bool
}

// numerics is the closed set of fixed-width numeric type names. Note that
// bool, str, bin, and references to user-defined types are not part of the
// type grammar; annotations using them are rejected.
var numerics = map[string]numericInfo{
	"i8":  {8, true, false},
	"i16": {16, true, false},
	"i32": {32, true, false},
	"i64": {64, true, false},
	"u8":  {8, false, false},
	"u16": {16, false, false},
	"u32": {32, false, false},
	"u64": {64, false, false},
	"f32": {32, true, true},
	"f64": {64, true, true},
}

// Resolve parses a type annotation into an Expr. List and tuple forms
// recurse; everything else must match exactly.
func Resolve(text string) (*Expr, error) {
	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		elem, err := Resolve(text[1 : len(text)-1])
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: KindList, Elem: elem}, nil
	}

	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		inner := text[1 : len(text)-1]
		// Elements are flat names at this grammar level, so a top-level
		// comma split is sufficient. An empty tuple has no element to
		// resolve and is rejected below.
		parts := strings.Split(inner, ",")
		elems := make([]*Expr, 0, len(parts))
		for _, part := range parts {
			elem, err := Resolve(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return &Expr{Kind: KindTuple, Elems: elems}, nil
	}

	if info, ok := numerics[text]; ok {
		return &Expr{
			Kind:   KindNumber,
			Name:   text,
			Width:  info.width,
			Signed: info.signed,
			Float:  info.float,
		}, nil
	}

	if text == "nil" {
		return &Expr{Kind: KindNil}, nil
	}

	if text == "fireandforget" {
		return &Expr{Kind: KindFireAndForget}, nil
	}

	return nil, &InvalidTypeError{Text: text}
}

// String renders the expression back in annotation form.
func (e *Expr) String() string {
	switch e.Kind {
	case KindNumber:
		return e.Name
	case KindList:
		return "[" + e.Elem.String() + "]"
	case KindTuple:
		parts := make([]string, len(e.Elems))
		for i, elem := range e.Elems {
			parts[i] = elem.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindNil:
		return "nil"
	case KindFireAndForget:
		return "fireandforget"
	}
	return "<invalid>"
}
