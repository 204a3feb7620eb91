package hispano

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestEndToEndSnapshots runs concrete end-to-end scenarios through the
// public Interpret API and snapshots their rendered output.
func TestEndToEndSnapshots(t *testing.T) {
	scenarios := []struct {
		name   string
		source string
	}{
		{
			name:   "arithmetic",
			source: "variable a=10\nvariable b=5\nmostrar a+b\nmostrar a*b",
		},
		{
			name:   "for_loop_concat",
			source: "variable s=\"\"\npara (variable i=1;i<=3;i=i+1){ s = s + i }\nmostrar s",
		},
		{
			name:   "ordenar_non_mutating",
			source: "variable a=[3,1,2]\nmostrar a.ordenar()\nmostrar a",
		},
		{
			name:   "fibonacci_recursion",
			source: "funcion f(n){ si n<=1 { retornar n } retornar f(n-1)+f(n-2) }\nmostrar f(10)",
		},
		{
			name:   "class_method",
			source: "clase A{ constructor(x){ este.x=x } metodo doble(){ retornar este.x*2 } }\nmostrar nuevo A(7).doble()",
		},
		{
			name:   "try_catch_division_by_zero",
			source: "intentar { variable q = 1/0 } capturar(e) { mostrar e }",
		},
		{
			name:   "template_interpolation",
			source: "variable n=\"Ana\" mostrar `Hola ${n}`",
		},
		{
			name:   "switch_no_fallthrough",
			source: "elegir 2 { caso 1: mostrar \"a\" caso 2: mostrar \"b\" pordefecto: mostrar \"c\" }",
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			result := Interpret(scenario.source)
			var rendered string
			if result.Success {
				rendered = strings.Join(result.Outputs, "\n")
			} else {
				rendered = fmt.Sprintf("outputs=%v error=%s", result.Outputs, result.Error)
			}
			snaps.MatchSnapshot(t, rendered)
		})
	}
}
