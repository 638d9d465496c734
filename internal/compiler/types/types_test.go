package types

import (
	"errors"
	"testing"
)

func TestResolveNumbers(t *testing.T) {
	tests := []struct {
		text   string
		width  int
		signed bool
		float  bool
	}{
		{"i8", 8, true, false},
		{"i16", 16, true, false},
		{"i32", 32, true, false},
		{"i64", 64, true, false},
		{"u8", 8, false, false},
		{"u16", 16, false, false},
		{"u32", 32, false, false},
		{"u64", 64, false, false},
		{"f32", 32, true, true},
		{"f64", 64, true, true},
	}

	for _, tt := range tests {
		expr, err := Resolve(tt.text)
		if err != nil {
			t.Fatalf("Resolve(%q): unexpected error: %v", tt.text, err)
		}
		if expr.Kind != KindNumber {
			t.Fatalf("Resolve(%q): expected KindNumber, got %v", tt.text, expr.Kind)
		}
		if expr.Name != tt.text || expr.Width != tt.width || expr.Signed != tt.signed || expr.Float != tt.float {
			t.Errorf("Resolve(%q) = %+v, want width=%d signed=%v float=%v",
				tt.text, expr, tt.width, tt.signed, tt.float)
		}
	}
}

func TestResolveList(t *testing.T) {
	expr, err := Resolve("[i32]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr.Kind != KindList {
		t.Fatalf("expected KindList, got %v", expr.Kind)
	}
	if expr.Elem.Kind != KindNumber || expr.Elem.Name != "i32" || !expr.Elem.Signed {
		t.Errorf("expected element Number(i32, signed), got %+v", expr.Elem)
	}
}

func TestResolveTuple(t *testing.T) {
	expr, err := Resolve("([i32], u8)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr.Kind != KindTuple {
		t.Fatalf("expected KindTuple, got %v", expr.Kind)
	}
	if len(expr.Elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(expr.Elems))
	}

	first := expr.Elems[0]
	if first.Kind != KindList || first.Elem.Kind != KindNumber || first.Elem.Name != "i32" {
		t.Errorf("expected first element List(Number(i32)), got %+v", first)
	}

	second := expr.Elems[1]
	if second.Kind != KindNumber || second.Name != "u8" || second.Signed {
		t.Errorf("expected second element Number(u8, unsigned), got %+v", second)
	}
}

func TestResolveSentinels(t *testing.T) {
	expr, err := Resolve("nil")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr.Kind != KindNil {
		t.Errorf("expected KindNil, got %v", expr.Kind)
	}

	expr, err = Resolve("fireandforget")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr.Kind != KindFireAndForget {
		t.Errorf("expected KindFireAndForget, got %v", expr.Kind)
	}
}

// The type grammar deliberately has no rule for bool, str, bin, or
// references to user-defined types.
func TestResolveRejectsUnknownForms(t *testing.T) {
	for _, text := range []string{"bool", "str", "bin", "point", "i128", "", "I32"} {
		_, err := Resolve(text)
		if err == nil {
			t.Errorf("Resolve(%q): expected error, got none", text)
		}
		var invalid *InvalidTypeError
		if !errors.As(err, &invalid) {
			t.Errorf("Resolve(%q): expected InvalidTypeError, got %T", text, err)
		}
	}
}

// An empty tuple has no element to resolve and must be rejected, not
// accepted as one empty-string element.
func TestResolveRejectsEmptyTuple(t *testing.T) {
	if _, err := Resolve("()"); err == nil {
		t.Fatal("Resolve(\"()\"): expected error, got none")
	}
}

func TestResolveNestedList(t *testing.T) {
	expr, err := Resolve("[[u16]]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr.Kind != KindList || expr.Elem.Kind != KindList || expr.Elem.Elem.Name != "u16" {
		t.Errorf("expected List(List(Number(u16))), got %+v", expr)
	}
}

func TestExprString(t *testing.T) {
	for _, text := range []string{"i32", "[i32]", "(i32, u8)", "nil", "fireandforget"} {
		expr, err := Resolve(text)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", text, err)
		}
		if got := expr.String(); got != text {
			t.Errorf("String() = %q, want %q", got, text)
		}
	}
}
