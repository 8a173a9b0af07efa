package gohint_test

import (
	"bytes"
	"testing"

	gohint "github.com/reoring/gohint"
)

func TestHandlers_SatisfiedPithsHaveNoCause(t *testing.T) {
	three := 3
	cases := []struct {
		name string
		pith any
		hint gohint.Hint
	}{
		{"int", 1, gohint.Int},
		{"string", "a", gohint.String},
		{"none", nil, gohint.None},
		{"optional nil", nil, gohint.Optional(gohint.Int)},
		{"optional value", 4, gohint.Optional(gohint.Int)},
		{"plain literal", 3, 3},
		{"list of any", []any{1, 2}, gohint.ListOf(gohint.Int)},
		{"typed slice", []int{1, 2}, gohint.ListOf(gohint.Int)},
		{"empty list", []any{}, gohint.ListOf(gohint.String)},
		{"array", [2]int{1, 2}, gohint.TupleOf(gohint.Int, gohint.Int)},
		{"tuple", []any{1, "a"}, gohint.TupleOf(gohint.Int, gohint.String)},
		{"mapping", map[string]int{"a": 1}, gohint.MapOf(gohint.String, gohint.Int)},
		{"set", map[string]struct{}{"a": {}}, gohint.SetOf(gohint.String)},
		{"literal", "b", gohint.Literal("a", "b")},
		{"pointer", &three, gohint.PointerTo(gohint.Int)},
		{"protocol", &bytes.Buffer{}, gohint.Protocol("StringWriter", "Write", "String")},
		{"bare list", []any{"x"}, gohint.SignList},
		{"bare dict", map[int]int{}, gohint.SignMapping},
		{"annotated", 5, gohint.Annotated(gohint.Int, "gt=0")},
		{"nested union", []any{[]any{1}, "x"}, gohint.ListOf(gohint.Union(gohint.ListOf(gohint.Int), gohint.String))},
		{"interface type", &bytes.Buffer{}, gohint.TypeOf[interface{ Len() int }]()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !gohint.Is(tc.pith, tc.hint) {
				t.Fatalf("Is(%#v, %s) = false", tc.pith, gohint.HintString(tc.hint))
			}
			cause, err := gohint.Diagnose(tc.pith, tc.hint, "v")
			if err != nil || cause != "" {
				t.Fatalf("Diagnose = (%q, %v), want empty", cause, err)
			}
		})
	}
}

func TestHandlers_Causes(t *testing.T) {
	var nilInt *int
	x := "x"
	cases := []struct {
		name string
		pith any
		hint gohint.Hint
		want string
	}{
		{"nil for class", nil, gohint.Int, "nil not int"},
		{"value for none", 1, gohint.None, "int 1 not none"},
		{"plain literal", "a", 3, `string "a" != 3`},
		{"bare sign", 3, gohint.SignList, "int 3 not slice or array"},
		{"bare dict nil", nil, gohint.SignMapping, "nil not map"},
		{"list origin", "abc", gohint.ListOf(gohint.Int), `string "abc" not slice or array`},
		{
			"mapping value", map[string]any{"a": 1, "b": "x"}, gohint.MapOf(gohint.String, gohint.Int),
			`map[string]interface {} value at key "b" string "x" not int`,
		},
		{
			"mapping key", map[any]int{1: 1}, gohint.MapOf(gohint.String, gohint.Int),
			"map[interface {}]int key int 1 not string",
		},
		{
			"mapping keys sorted", map[string]string{"b": "2", "a": "1"}, gohint.MapOf(gohint.String, gohint.Int),
			`map[string]string value at key "a" string "1" not int`,
		},
		{"set member", map[string]bool{"a": true}, gohint.SetOf(gohint.Int), `map[string]bool member string "a" not int`},
		{"literal", "c", gohint.Literal("a", "b"), `string "c" not any of "a", "b"`},
		{"nil pointer", nilInt, gohint.PointerTo(gohint.Int), "*int nil not non-nil ptr[int]"},
		{"pointee", &x, gohint.PointerTo(gohint.Int), `*string pointee string "x" not int`},
		{"protocol", 3, gohint.Protocol("Stringer", "String"), "int 3 lacks method String of protocol Stringer"},
		{
			"nested list", []any{[]any{1, "y"}}, gohint.ListOf(gohint.ListOf(gohint.Int)),
			`[]interface {} index 0 item []interface {} index 1 item string "y" not int`,
		},
		{"tuple item", []any{1, 2}, gohint.TupleOf(gohint.Int, gohint.String), "[]interface {} index 1 item int 2 not string"},
		{"optional", "s", gohint.Optional(gohint.Int), `string "s" not int or none`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if gohint.Is(tc.pith, tc.hint) {
				t.Fatalf("Is(%#v, %s) = true", tc.pith, gohint.HintString(tc.hint))
			}
			got, err := gohint.Diagnose(tc.pith, tc.hint, "v")
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tc.want {
				t.Fatalf("cause = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHandlers_ExtraListChildrenIgnored(t *testing.T) {
	h := gohint.Subscript(gohint.SignList, gohint.Int, gohint.String)
	if c, err := gohint.Diagnose([]any{1, 2}, h, "v"); err != nil || c != "" {
		t.Fatalf("expected only the first child to apply, got (%q, %v)", c, err)
	}
}
