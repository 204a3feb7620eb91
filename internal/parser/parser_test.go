package parser

import (
	"testing"

	"github.com/nicvazquezdev/hispano-lang/internal/ast"
)

func testParser(t *testing.T, input string) *Parser {
	t.Helper()
	p, err := New(input)
	if err != nil {
		t.Fatalf("unexpected lex error building parser: %v", err)
	}
	return p
}

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := testParser(t, input)
	program, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return program
}

func TestParseVariableDecl(t *testing.T) {
	program := parseProgram(t, `variable edad = 10`)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.VariableDecl)
	if !ok {
		t.Fatalf("statement is not *ast.VariableDecl, got %T", program.Statements[0])
	}
	if stmt.Name != "edad" {
		t.Fatalf("expected name 'edad', got %q", stmt.Name)
	}
}

func TestParseConstantDecl(t *testing.T) {
	program := parseProgram(t, `constante PI = 3.14`)
	stmt, ok := program.Statements[0].(*ast.ConstantDecl)
	if !ok {
		t.Fatalf("statement is not *ast.ConstantDecl, got %T", program.Statements[0])
	}
	if stmt.Name != "PI" {
		t.Fatalf("expected name 'PI', got %q", stmt.Name)
	}
}

func TestParseMissingTokenIsParseError(t *testing.T) {
	p := testParser(t, `si verdadero { mostrar 1`)
	if _, err := p.Parse(); err == nil {
		t.Fatalf("expected a parse error for a missing closing brace")
	}
}

func TestParseFunctionDecl(t *testing.T) {
	program := parseProgram(t, `funcion suma(a, b) { retornar a + b }`)
	stmt, ok := program.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("statement is not *ast.FunctionDecl, got %T", program.Statements[0])
	}
	if stmt.Name != "suma" {
		t.Fatalf("expected name 'suma', got %q", stmt.Name)
	}
	if len(stmt.Parameters) != 2 || stmt.Parameters[0] != "a" || stmt.Parameters[1] != "b" {
		t.Fatalf("unexpected parameters: %v", stmt.Parameters)
	}
}

// TestParseClassDeclWithInheritance exercises the extiende
// clause and the constructor/method split a ClassDecl carries.
func TestParseClassDeclWithInheritance(t *testing.T) {
	program := parseProgram(t, `
clase Animal {
  constructor(nombre) { este.nombre = nombre }
  metodo hablar() { retornar este.nombre }
}
clase Perro extiende Animal {
  metodo ladrar() { retornar "guau" }
}
`)
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
	perro, ok := program.Statements[1].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("statement is not *ast.ClassDecl, got %T", program.Statements[1])
	}
	if perro.Name != "Perro" {
		t.Fatalf("expected name 'Perro', got %q", perro.Name)
	}
	if perro.SuperclassName != "Animal" {
		t.Fatalf("expected superclass 'Animal', got %q", perro.SuperclassName)
	}
	if len(perro.Methods) != 1 || perro.Methods[0].Name != "ladrar" {
		t.Fatalf("expected a single 'ladrar' method, got %v", perro.Methods)
	}
}

func TestParseSwitchNoFallthrough(t *testing.T) {
	program := parseProgram(t, `
elegir 2 {
  caso 1: mostrar "a"
  caso 2: mostrar "b"
  pordefecto: mostrar "c"
}
`)
	stmt, ok := program.Statements[0].(*ast.Switch)
	if !ok {
		t.Fatalf("statement is not *ast.Switch, got %T", program.Statements[0])
	}
	if len(stmt.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(stmt.Cases))
	}
	if stmt.Default == nil {
		t.Fatalf("expected a pordefecto clause")
	}
}

func TestParseDoWhile(t *testing.T) {
	program := parseProgram(t, `hacer { mostrar 1 } mientras falso`)
	if _, ok := program.Statements[0].(*ast.DoWhile); !ok {
		t.Fatalf("statement is not *ast.DoWhile, got %T", program.Statements[0])
	}
}

func TestParseForEach(t *testing.T) {
	program := parseProgram(t, `para cada elemento en [1,2,3] { mostrar elemento }`)
	stmt, ok := program.Statements[0].(*ast.ForEach)
	if !ok {
		t.Fatalf("statement is not *ast.ForEach, got %T", program.Statements[0])
	}
	if stmt.Iterator != "elemento" {
		t.Fatalf("expected iterator 'elemento', got %q", stmt.Iterator)
	}
}

func TestParseTryCatch(t *testing.T) {
	program := parseProgram(t, `intentar { variable q = 1/0 } capturar (e) { mostrar e }`)
	if _, ok := program.Statements[0].(*ast.TryCatch); !ok {
		t.Fatalf("statement is not *ast.TryCatch, got %T", program.Statements[0])
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	p := testParser(t, `5 = 10`)
	if _, err := p.Parse(); err == nil {
		t.Fatalf("expected a parse error assigning to a literal")
	}
}

func TestParseTemplateString(t *testing.T) {
	program := parseProgram(t, "variable n = \"Ana\"\nmostrar `Hola ${n}`")
	stmt, ok := program.Statements[1].(*ast.Print)
	if !ok {
		t.Fatalf("statement is not *ast.Print, got %T", program.Statements[1])
	}
	if _, ok := stmt.Value.(*ast.TemplateString); !ok {
		t.Fatalf("expected *ast.TemplateString, got %T", stmt.Value)
	}
}
