package runtime

import (
	"testing"

	"github.com/nicvazquezdev/hispano-lang/internal/ast"
)

func TestStringifyEnglishTags(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null, "null"},
		{Undefined, "undefined"},
		{BoolValue{Value: true}, "true"},
		{BoolValue{Value: false}, "false"},
		{NumberValue{Value: 10}, "10"},
		{NumberValue{Value: 3.5}, "3.5"},
		{StringValue{Value: "hola"}, "hola"},
	}
	for _, c := range cases {
		if got := Stringify(c.v); got != c.want {
			t.Errorf("Stringify(%#v) = %q, want %q", c.v, got, c.want)
		}
	}
}

// TestStringifySpanishTags verifies the second, Spanish
// stringification mode used by template interpolation and texto().
func TestStringifySpanishTags(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null, "nulo"},
		{Undefined, "indefinido"},
		{BoolValue{Value: true}, "verdadero"},
		{BoolValue{Value: false}, "falso"},
	}
	for _, c := range cases {
		if got := StringifySpanish(c.v); got != c.want {
			t.Errorf("StringifySpanish(%#v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestStringifyArrayRecurses(t *testing.T) {
	arr := &ArrayValue{Elements: []Value{NumberValue{Value: 3}, NumberValue{Value: 1}, NumberValue{Value: 2}}}
	if got, want := Stringify(arr), "[3, 1, 2]"; got != want {
		t.Errorf("Stringify(array) = %q, want %q", got, want)
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Null, false},
		{Undefined, false},
		{BoolValue{Value: false}, false},
		{BoolValue{Value: true}, true},
		{NumberValue{Value: 0}, false},
		{NumberValue{Value: -1}, true},
		{StringValue{Value: ""}, true},
		{&ArrayValue{}, true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestTypeNames(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null, "nulo"},
		{Undefined, "indefinido"},
		{NumberValue{}, "numero"},
		{StringValue{}, "texto"},
		{BoolValue{}, "booleano"},
		{&ArrayValue{}, "arreglo"},
		{NewObject(), "objeto"},
		{&FunctionValue{}, "funcion"},
	}
	for _, c := range cases {
		if got := c.v.TypeName(); got != c.want {
			t.Errorf("TypeName() = %q, want %q", got, c.want)
		}
	}
}

func TestClassValueFindMethodWalksSuperChain(t *testing.T) {
	hablar := ast.NewMethodDecl(1, "hablar", nil, ast.NewBlock(1, nil))
	base := &ClassValue{Name: "Animal", Methods: map[string]*ast.MethodDecl{"hablar": hablar}}
	derived := &ClassValue{Name: "Perro", Super: base, Methods: map[string]*ast.MethodDecl{}}

	method, owner := derived.FindMethod("hablar")
	if method != hablar {
		t.Fatalf("expected FindMethod to walk the Super chain and find 'hablar'")
	}
	if owner != base {
		t.Fatalf("expected owner to be the base class that declared the method")
	}

	if method, _ := derived.FindMethod("nunca"); method != nil {
		t.Fatalf("expected FindMethod to return nil for an unknown method")
	}
}
