package parser

import (
	"errors"
	"testing"

	"github.com/vixos/vixrpc/internal/compiler/defs"
	"github.com/vixos/vixrpc/internal/compiler/lexer"
)

// parse is a test helper running a full parse over src.
func parse(t *testing.T, src string) *defs.Table {
	t.Helper()
	table, err := NewParser(lexer.NewLexer(src)).ParseSchema()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return table
}

// parseErr asserts the parse fails and returns the error.
func parseErr(t *testing.T, src string) error {
	t.Helper()
	_, err := NewParser(lexer.NewLexer(src)).ParseSchema()
	if err == nil {
		t.Fatal("expected parse error, got none")
	}
	return err
}

func TestParseFullSchema(t *testing.T) {
	src := `# service definitions
const version = 3
const product = vix

enum color:
    red = 0
    blue = 1

struct point:
    x: i32
    y: i32
    tags: [u8]
    pair: (i32, u8)

union handle = point | color

fn move(dx: i32, dy: i32) -> nil

signal moved(x: i32) -> fireandforget
`
	table := parse(t, src)

	wantOrder := []string{"version", "product", "color", "point", "handle", "move", "moved"}
	got := table.Names()
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d definitions, got %d: %v", len(wantOrder), len(got), got)
	}
	for i := range wantOrder {
		if got[i] != wantOrder[i] {
			t.Errorf("position %d: expected %q, got %q", i, wantOrder[i], got[i])
		}
	}

	def, _ := table.Lookup("version")
	c, ok := def.(*defs.Const)
	if !ok {
		t.Fatalf("version is not *defs.Const, got %T", def)
	}
	if !c.Value.IsInt || c.Value.Int != 3 {
		t.Errorf("version = %v, want 3", c.Value)
	}

	def, _ = table.Lookup("product")
	c = def.(*defs.Const)
	if c.Value.IsInt || c.Value.Text != "vix" {
		t.Errorf("product = %v, want name literal vix", c.Value)
	}

	def, _ = table.Lookup("point")
	s, ok := def.(*defs.Struct)
	if !ok {
		t.Fatalf("point is not *defs.Struct, got %T", def)
	}
	wantFields := []defs.Field{
		{Name: "x", Type: "i32"},
		{Name: "y", Type: "i32"},
		{Name: "tags", Type: "[u8]"},
		{Name: "pair", Type: "(i32, u8)"},
	}
	if len(s.Fields) != len(wantFields) {
		t.Fatalf("point has %d fields, want %d", len(s.Fields), len(wantFields))
	}
	for i, want := range wantFields {
		if s.Fields[i] != want {
			t.Errorf("field %d = %+v, want %+v", i, s.Fields[i], want)
		}
	}

	def, _ = table.Lookup("move")
	fn, ok := def.(*defs.Function)
	if !ok {
		t.Fatalf("move is not *defs.Function, got %T", def)
	}
	if len(fn.Params) != 2 || fn.Params[0] != (defs.Param{Name: "dx", Type: "i32"}) ||
		fn.Params[1] != (defs.Param{Name: "dy", Type: "i32"}) {
		t.Errorf("move params = %+v", fn.Params)
	}
	if fn.Return != "nil" {
		t.Errorf("move return = %q, want nil", fn.Return)
	}

	def, _ = table.Lookup("moved")
	sig, ok := def.(*defs.Signal)
	if !ok {
		t.Fatalf("moved is not *defs.Signal, got %T", def)
	}
	if sig.Return != "fireandforget" {
		t.Errorf("moved return = %q", sig.Return)
	}
}

func TestEnumPreservesMemberOrder(t *testing.T) {
	table := parse(t, "enum color:\n    red = 0\n    blue = 1\n")

	def, _ := table.Lookup("color")
	e := def.(*defs.Enum)
	if len(e.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(e.Members))
	}
	if e.Members[0].Name != "red" || e.Members[1].Name != "blue" {
		t.Errorf("member order = [%s, %s], want [red, blue]",
			e.Members[0].Name, e.Members[1].Name)
	}
}

func TestEnumDuplicateValue(t *testing.T) {
	err := parseErr(t, "enum color:\n    red = 0\n    blue = 0\n")

	var dup *DuplicateEnumValueError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateEnumValueError, got %T: %v", err, err)
	}
	if dup.Enum != "color" || dup.Member != "blue" {
		t.Errorf("got %s.%s, want color.blue", dup.Enum, dup.Member)
	}
}

func TestEnumNameValues(t *testing.T) {
	// Name and integer values may mix; distinctness is within the enum.
	table := parse(t, "enum mode:\n    off = disabled\n    on = 1\n")
	e, _ := table.Lookup("mode")
	members := e.(*defs.Enum).Members
	if members[0].Value.String() != "disabled" || members[1].Value.String() != "1" {
		t.Errorf("member values = %v, %v", members[0].Value, members[1].Value)
	}
}

func TestStructDuplicateField(t *testing.T) {
	err := parseErr(t, "struct s:\n    x: i32\n    x: u8\n")

	var dup *defs.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateError, got %T: %v", err, err)
	}
	if dup.Name != "x" {
		t.Errorf("duplicate name = %q, want x", dup.Name)
	}
}

func TestStructInvalidFieldType(t *testing.T) {
	err := parseErr(t, "struct s:\n    name: str\n")

	var invalid *InvalidTypeError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTypeError, got %T: %v", err, err)
	}
	if invalid.Text != "str" {
		t.Errorf("invalid type text = %q, want str", invalid.Text)
	}
}

func TestDuplicateDefinitionAcrossKinds(t *testing.T) {
	err := parseErr(t, "const a = 1\nstruct a:\n    x: i32\n")

	var dup *defs.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateError, got %T: %v", err, err)
	}
	if dup.Name != "a" {
		t.Errorf("duplicate name = %q, want a", dup.Name)
	}
}

func TestUnionDuplicateMembersCoalesce(t *testing.T) {
	table := parse(t, "union u = a | a\n")

	def, _ := table.Lookup("u")
	u := def.(*defs.Union)
	if len(u.Types) != 1 || u.Types[0] != "a" {
		t.Errorf("union members = %v, want exactly [a]", u.Types)
	}
}

func TestUnionMembers(t *testing.T) {
	table := parse(t, "union u = b | a | c\n")

	u, _ := table.Lookup("u")
	got := u.(*defs.Union).Types
	want := []string{"a", "b", "c"} // stored sorted
	if len(got) != len(want) {
		t.Fatalf("union members = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("member %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// The type grammar has no rule for bool, so a bool return must be rejected,
// not passed through to the generator.
func TestFunctionBoolReturnRejected(t *testing.T) {
	err := parseErr(t, "fn foo(x: i32) -> bool\n")

	var invalid *InvalidTypeError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTypeError, got %T: %v", err, err)
	}
	if invalid.Text != "bool" {
		t.Errorf("invalid type text = %q, want bool", invalid.Text)
	}
}

func TestFunctionListReturn(t *testing.T) {
	table := parse(t, "fn batch() -> [i32]\n")

	def, _ := table.Lookup("batch")
	fn := def.(*defs.Function)
	if fn.Return != "[i32]" {
		t.Errorf("return = %q, want [i32]", fn.Return)
	}
	if len(fn.Params) != 0 {
		t.Errorf("params = %v, want none", fn.Params)
	}
}

// Parameter names are not checked for uniqueness, unlike struct fields.
func TestFunctionDuplicateParamsAccepted(t *testing.T) {
	table := parse(t, "fn f(x: i32, x: i32) -> nil\n")

	fn, _ := table.Lookup("f")
	params := fn.(*defs.Function).Params
	if len(params) != 2 {
		t.Fatalf("expected both params kept, got %v", params)
	}
}

func TestUnknownKeyword(t *testing.T) {
	err := parseErr(t, "service foo:\n    x: i32\n")

	var unknown *UnknownKeywordError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownKeywordError, got %T: %v", err, err)
	}
}

func TestExpectedTokenCarriesSourceLine(t *testing.T) {
	err := parseErr(t, "struct s\n    x: i32\n")

	var expected *ExpectedError
	if !errors.As(err, &expected) {
		t.Fatalf("expected ExpectedError, got %T: %v", err, err)
	}
	if expected.Expected != `":"` {
		t.Errorf("expected description = %q", expected.Expected)
	}
	if expected.Tok.Source != "struct s" {
		t.Errorf("source line = %q, want %q", expected.Tok.Source, "struct s")
	}
}

// A block header with no indented body must fail, not register an empty
// struct.
func TestStructWithoutBodyFails(t *testing.T) {
	err := parseErr(t, "struct s:\n")

	var expected *ExpectedError
	if !errors.As(err, &expected) {
		t.Fatalf("expected ExpectedError, got %T: %v", err, err)
	}
	if expected.Expected != "indent" {
		t.Errorf("expected description = %q, want indent", expected.Expected)
	}
}

func TestStructFieldCutOffAtEOF(t *testing.T) {
	_ = parseErr(t, "struct s:\n    x")
}

func TestEmptyTupleFieldRejected(t *testing.T) {
	err := parseErr(t, "struct s:\n    p: ()\n")

	var invalid *InvalidTypeError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTypeError, got %T: %v", err, err)
	}
}

func TestEmptySchema(t *testing.T) {
	table := parse(t, "# nothing but comments\n\n")
	if table.Len() != 0 {
		t.Errorf("expected empty table, got %d definitions", table.Len())
	}
}

func TestConstMissingValue(t *testing.T) {
	err := parseErr(t, "const x =\n")

	var expected *ExpectedError
	if !errors.As(err, &expected) {
		t.Fatalf("expected ExpectedError, got %T: %v", err, err)
	}
}

func TestSignalSharesFunctionGrammar(t *testing.T) {
	table := parse(t, "signal tick(count: u64) -> fireandforget\n")

	def, _ := table.Lookup("tick")
	sig, ok := def.(*defs.Signal)
	if !ok {
		t.Fatalf("tick is not *defs.Signal, got %T", def)
	}
	if len(sig.Params) != 1 || sig.Params[0] != (defs.Param{Name: "count", Type: "u64"}) {
		t.Errorf("params = %v", sig.Params)
	}
}
