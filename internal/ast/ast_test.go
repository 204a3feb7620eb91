package ast

import "testing"

func TestVariableDeclString(t *testing.T) {
	decl := NewVariableDecl(1, "edad", &Literal{Value: float64(10)})
	if got, want := decl.String(), "variable edad = 10"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestConstantDeclString(t *testing.T) {
	decl := NewConstantDecl(1, "PI", &Literal{Value: float64(3.14)})
	if got, want := decl.String(), "constante PI = 3.14"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBreakAndContinueString(t *testing.T) {
	if got, want := NewBreak(1).String(), "romper"; got != want {
		t.Errorf("Break.String() = %q, want %q", got, want)
	}
	if got, want := NewContinue(1).String(), "continuar"; got != want {
		t.Errorf("Continue.String() = %q, want %q", got, want)
	}
}

func TestClassDeclCarriesConstructorAndMethods(t *testing.T) {
	ctor := NewMethodDecl(1, "constructor", []string{"x"}, NewBlock(1, nil))
	method := NewMethodDecl(2, "doble", nil, NewBlock(2, nil))
	decl := NewClassDecl(1, "A", "", ctor, []*MethodDecl{method})

	if decl.Constructor != ctor {
		t.Errorf("expected Constructor to be the passed-in *MethodDecl")
	}
	if len(decl.Methods) != 1 || decl.Methods[0] != method {
		t.Errorf("expected Methods to contain the passed-in method")
	}
	if decl.SuperclassName != "" {
		t.Errorf("expected no superclass, got %q", decl.SuperclassName)
	}
}

func TestBlockString(t *testing.T) {
	block := NewBlock(1, []Statement{NewBreak(1), NewContinue(2)})
	if len(block.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(block.Statements))
	}
	if got, want := block.String(), "{ romper; continuar; }"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
