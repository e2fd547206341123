package solrdex

import (
	"errors"
	"testing"
)

func TestCompile_And(t *testing.T) {
	got, err := Compile(And(Match("name", "Some"), Match("age", 19)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "(name:Some AND age:19)"; got != want {
		t.Errorf("Compile = %q, want %q", got, want)
	}
}

func TestCompile_NestedOr(t *testing.T) {
	got, err := Compile(Or(
		And(Match("name", "Some"), Match("age", 19)),
		Match("age", 21),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "((name:Some AND age:19) OR age:21)"; got != want {
		t.Errorf("Compile = %q, want %q", got, want)
	}
}

func TestCompile_Not(t *testing.T) {
	got, err := Compile(Not(Match("x", 1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "!x:1"; got != want {
		t.Errorf("Compile = %q, want %q", got, want)
	}
}

func TestCompile_ValueForms(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{"Some", "f:Some"},     // strings stay unquoted
		{19, "f:19"},
		{19.5, "f:19.5"},
		{true, "f:true"},
		{"[18 TO 30]", "f:[18 TO 30]"},
	}
	for _, tt := range tests {
		got, err := Compile(Match("f", tt.value))
		if err != nil {
			t.Fatalf("Compile(%v): unexpected error: %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("Compile(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestCompile_MissingValue(t *testing.T) {
	_, err := Compile(Match("x", nil))
	if !errors.Is(err, ErrMissingValue) {
		t.Fatalf("expected ErrMissingValue, got %v", err)
	}
}

func TestCompile_NilNode(t *testing.T) {
	if _, err := Compile(nil); !errors.Is(err, ErrInvalidSyntax) {
		t.Fatalf("expected ErrInvalidSyntax, got %v", err)
	}
	if _, err := Compile(And(Match("a", 1), nil)); !errors.Is(err, ErrInvalidSyntax) {
		t.Fatalf("expected ErrInvalidSyntax for nil child, got %v", err)
	}
	if _, err := Compile(Not(nil)); !errors.Is(err, ErrInvalidSyntax) {
		t.Fatalf("expected ErrInvalidSyntax for nil operand, got %v", err)
	}
}

func TestNodeFromJSON_And(t *testing.T) {
	node, err := NodeFromJSON(map[string]any{
		"and": []any{
			map[string]any{"field": "name", "value": "Some"},
			map[string]any{"field": "age", "value": float64(19)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Compile(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "(name:Some AND age:19)"; got != want {
		t.Errorf("Compile = %q, want %q", got, want)
	}
}

func TestNodeFromJSON_NestedOr(t *testing.T) {
	node, err := NodeFromJSON(map[string]any{
		"or": []any{
			map[string]any{"and": []any{
				map[string]any{"field": "name", "value": "Some"},
				map[string]any{"field": "age", "value": float64(19)},
			}},
			map[string]any{"field": "age", "value": float64(21)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Compile(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "((name:Some AND age:19) OR age:21)"; got != want {
		t.Errorf("Compile = %q, want %q", got, want)
	}
}

func TestNodeFromJSON_Neg(t *testing.T) {
	node, err := NodeFromJSON(map[string]any{
		"neg": map[string]any{"field": "x", "value": float64(1)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Compile(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "!x:1"; got != want {
		t.Errorf("Compile = %q, want %q", got, want)
	}
}

func TestNodeFromJSON_UnknownShape(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"none of the keys", map[string]any{"foo": "bar"}},
		{"not an object", "name:Some"},
		{"array", []any{}},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NodeFromJSON(tt.in); !errors.Is(err, ErrInvalidSyntax) {
				t.Fatalf("expected ErrInvalidSyntax, got %v", err)
			}
		})
	}
}

func TestNodeFromJSON_FieldWithoutValue(t *testing.T) {
	_, err := NodeFromJSON(map[string]any{"field": "x"})
	if !errors.Is(err, ErrMissingValue) {
		t.Fatalf("expected ErrMissingValue, got %v", err)
	}
}

func TestNodeFromJSON_OperatorNotArray(t *testing.T) {
	_, err := NodeFromJSON(map[string]any{"and": "not an array"})
	if !errors.Is(err, ErrInvalidSyntax) {
		t.Fatalf("expected ErrInvalidSyntax, got %v", err)
	}
}
