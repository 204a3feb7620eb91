package interp

import (
	"strings"
	"testing"

	"github.com/nicvazquezdev/hispano-lang/internal/herrors"
	"github.com/nicvazquezdev/hispano-lang/internal/parser"
)

func run(t *testing.T, source string, opts ...Option) ([]string, *herrors.HispanoError) {
	t.Helper()
	p, err := parser.New(source)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	program, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	it := New(opts...)
	runErr := it.Run(program)
	return it.Outputs(), runErr
}

func runOK(t *testing.T, source string) []string {
	t.Helper()
	out, err := run(t, source)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out
}

func runErr(t *testing.T, source string) *herrors.HispanoError {
	t.Helper()
	_, err := run(t, source)
	if err == nil {
		t.Fatalf("expected a runtime error, got none")
	}
	return err
}

func TestArithmeticAndPrint(t *testing.T) {
	out := runOK(t, "variable a=10\nvariable b=5\nmostrar a+b\nmostrar a*b")
	want := []string{"15", "50"}
	if !equalSlices(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestForLoopAccumulation(t *testing.T) {
	out := runOK(t, `variable s=""
para (variable i=1;i<=3;i=i+1){ s = s + i }
mostrar s`)
	if len(out) != 1 || out[0] != "123" {
		t.Fatalf("got %v, want [\"123\"]", out)
	}
}

func TestArrayOrdenarNonMutating(t *testing.T) {
	out := runOK(t, `variable a=[3,1,2]
mostrar a.ordenar()
mostrar a`)
	want := []string{"[1, 2, 3]", "[3, 1, 2]"}
	if !equalSlices(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestRecursiveFunction(t *testing.T) {
	out := runOK(t, `funcion f(n){ si n<=1 { retornar n } retornar f(n-1)+f(n-2) }
mostrar f(10)`)
	if len(out) != 1 || out[0] != "55" {
		t.Fatalf("got %v, want [\"55\"]", out)
	}
}

func TestClassInstanceMethod(t *testing.T) {
	out := runOK(t, `clase A{ constructor(x){ este.x=x } metodo doble(){ retornar este.x*2 } }
mostrar nuevo A(7).doble()`)
	if len(out) != 1 || out[0] != "14" {
		t.Fatalf("got %v, want [\"14\"]", out)
	}
}

func TestTryCatchCapturesDivisionByZero(t *testing.T) {
	out := runOK(t, `intentar { variable q = 1/0 } capturar(e) { mostrar e }`)
	if len(out) != 1 {
		t.Fatalf("expected exactly one output line, got %v", out)
	}
}

func TestTemplateStringInterpolation(t *testing.T) {
	out := runOK(t, "variable n=\"Ana\"\nmostrar `Hola ${n}`")
	if len(out) != 1 || out[0] != "Hola Ana" {
		t.Fatalf("got %v, want [\"Hola Ana\"]", out)
	}
}

func TestSwitchNoFallthrough(t *testing.T) {
	out := runOK(t, `elegir 2 { caso 1: mostrar "a" caso 2: mostrar "b" pordefecto: mostrar "c" }`)
	if len(out) != 1 || out[0] != "b" {
		t.Fatalf("got %v, want [\"b\"]", out)
	}
}

// TestShortCircuitAnd verifies that the right operand
// of `y` is never evaluated once the left side is falsy.
func TestShortCircuitAnd(t *testing.T) {
	out := runOK(t, `funcion falla(){ mostrar "no debería ejecutarse" retornar verdadero }
mostrar falso y falla()`)
	if len(out) != 1 || out[0] != "false" {
		t.Fatalf("expected only the final mostrar to run, got %v", out)
	}
}

func TestShortCircuitOr(t *testing.T) {
	out := runOK(t, `funcion falla(){ mostrar "no debería ejecutarse" retornar falso }
mostrar verdadero o falla()`)
	if len(out) != 1 || out[0] != "true" {
		t.Fatalf("expected only the final mostrar to run, got %v", out)
	}
}

func TestDoWhileRunsOnce(t *testing.T) {
	out := runOK(t, `variable contador = 0
hacer { contador = contador + 1 } mientras falso
mostrar contador`)
	if len(out) != 1 || out[0] != "1" {
		t.Fatalf("got %v, want [\"1\"]", out)
	}
}

// TestForEachIteratorIsScoped verifies that the
// iterator variable introduced by `para cada` does not leak into the
// enclosing scope.
func TestForEachIteratorIsScoped(t *testing.T) {
	errValue := runErr(t, `para cada elemento en [1,2,3] { }
mostrar elemento`)
	if !strings.Contains(errValue.Error(), "elemento") {
		t.Fatalf("expected error referencing the undefined iterator, got %v", errValue)
	}
}

func TestConstantReassignmentFails(t *testing.T) {
	errValue := runErr(t, `constante PI = 3.14
PI = 4`)
	if errValue.Kind != herrors.ConstantReassignment {
		t.Fatalf("expected ConstantReassignment, got %v", errValue.Kind)
	}
}

func TestDivisionByZero(t *testing.T) {
	errValue := runErr(t, `mostrar 1/0`)
	if errValue.Kind != herrors.DivisionByZero {
		t.Fatalf("expected DivisionByZero, got %v", errValue.Kind)
	}
}

func TestArrayBoundsError(t *testing.T) {
	errValue := runErr(t, `variable a=[1,2,3]
mostrar a[10]`)
	if errValue.Kind != herrors.BoundsError {
		t.Fatalf("expected BoundsError, got %v", errValue.Kind)
	}
}

func TestEmptyCollectionError(t *testing.T) {
	errValue := runErr(t, `variable a=[]
mostrar a.primero()`)
	if errValue.Kind != herrors.EmptyCollection {
		t.Fatalf("expected EmptyCollection, got %v", errValue.Kind)
	}
}

func TestUnknownMethodError(t *testing.T) {
	errValue := runErr(t, `variable a=[1,2,3]
mostrar a.metodoQueNoExiste()`)
	if errValue.Kind != herrors.UnknownMethod {
		t.Fatalf("expected UnknownMethod, got %v", errValue.Kind)
	}
}

func TestInvalidThisOutsideMethod(t *testing.T) {
	errValue := runErr(t, `mostrar este.x`)
	if errValue.Kind != herrors.InvalidThis {
		t.Fatalf("expected InvalidThis, got %v", errValue.Kind)
	}
}

func TestBuiltinLookupPriorityFavorsEnvironment(t *testing.T) {
	out := runOK(t, `funcion raiz(x){ retornar x }
mostrar raiz(9)`)
	if len(out) != 1 || out[0] != "9" {
		t.Fatalf("expected the user-defined 'raiz' to shadow the built-in, got %v", out)
	}
}

func TestArrayMethodChaining(t *testing.T) {
	out := runOK(t, `variable a = [1,2,3,4,5]
mostrar a.filtrar(funcion(n){ retornar n % 2 == 0 }).mapear(funcion(n){ retornar n * 10 })`)
	if len(out) != 1 || out[0] != "[20, 40]" {
		t.Fatalf("got %v, want [\"[20, 40]\"]", out)
	}
}

func TestStringMethods(t *testing.T) {
	out := runOK(t, `variable s = "Hola Mundo"
mostrar s.mayusculas()
mostrar s.longitud()
mostrar s.incluye("Mundo")`)
	want := []string{"HOLA MUNDO", "10", "true"}
	if !equalSlices(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestInheritanceAndSuper(t *testing.T) {
	out := runOK(t, `
clase Animal {
  constructor(nombre) { este.nombre = nombre }
  metodo hablar() { retornar este.nombre + " hace un sonido" }
}
clase Perro extiende Animal {
  constructor(nombre) { super(nombre) }
  metodo hablar() { retornar este.nombre + " ladra" }
}
mostrar nuevo Perro("Rex").hablar()
`)
	if len(out) != 1 || out[0] != "Rex ladra" {
		t.Fatalf("got %v, want [\"Rex ladra\"]", out)
	}
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
