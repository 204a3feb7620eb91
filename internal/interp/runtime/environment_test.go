package runtime

import "testing"

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := New()
	env.Define("edad", NumberValue{Value: 10})

	v, ok := env.Get("edad")
	if !ok {
		t.Fatalf("expected 'edad' to be defined")
	}
	if n, ok := v.(NumberValue); !ok || n.Value != 10 {
		t.Fatalf("expected NumberValue{10}, got %#v", v)
	}
}

// TestEnvironmentLexicalScoping verifies that a name
// defined in an inner block is invisible once that block's environment
// is discarded, and assignment inside a nested scope reaches outward to
// the nearest enclosing definition rather than shadowing it.
func TestEnvironmentLexicalScoping(t *testing.T) {
	outer := New()
	outer.Define("x", NumberValue{Value: 1})

	inner := NewEnclosed(outer)
	if _, ok := inner.Get("x"); !ok {
		t.Fatalf("expected inner scope to see outer binding 'x'")
	}

	if result := inner.Assign("x", NumberValue{Value: 2}); result != AssignOK {
		t.Fatalf("expected AssignOK, got %v", result)
	}
	v, _ := outer.Get("x")
	if n := v.(NumberValue); n.Value != 2 {
		t.Fatalf("expected assignment through inner scope to mutate outer binding, got %v", n.Value)
	}

	inner.Define("y", NumberValue{Value: 3})
	if _, ok := outer.Get("y"); ok {
		t.Fatalf("expected 'y' defined in inner scope to stay invisible to outer scope")
	}
}

func TestEnvironmentConstantReassignment(t *testing.T) {
	env := New()
	env.DefineConstant("PI", NumberValue{Value: 3.14})

	if result := env.Assign("PI", NumberValue{Value: 4}); result != AssignConstant {
		t.Fatalf("expected AssignConstant, got %v", result)
	}
}

func TestEnvironmentAssignUndefined(t *testing.T) {
	env := New()
	if result := env.Assign("nunca", NumberValue{Value: 1}); result != AssignUndefined {
		t.Fatalf("expected AssignUndefined, got %v", result)
	}
}

func TestEnvironmentRedefineClearsConstant(t *testing.T) {
	env := New()
	env.DefineConstant("x", NumberValue{Value: 1})
	env.Define("x", NumberValue{Value: 2})

	if result := env.Assign("x", NumberValue{Value: 3}); result != AssignOK {
		t.Fatalf("expected redefining 'x' to clear its constant flag, got %v", result)
	}
}

func TestEnvironmentBindingsReturnsLatestValues(t *testing.T) {
	env := New()
	env.Define("b", NumberValue{Value: 2})
	env.Define("a", NumberValue{Value: 1})
	env.Define("b", NumberValue{Value: 20})

	bindings := env.Bindings()
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(bindings))
	}
	if bindings["a"].(NumberValue).Value != 1 || bindings["b"].(NumberValue).Value != 20 {
		t.Fatalf("unexpected bindings: %#v", bindings)
	}
}
