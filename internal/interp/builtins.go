package interp

import (
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/nicvazquezdev/hispano-lang/internal/herrors"
	"github.com/nicvazquezdev/hispano-lang/internal/interp/runtime"
)

// builtinFunc is a free function callable by bare name, consulted only
// when the current environment has no binding of that name: a
// user-defined function or variable always shadows a built-in.
type builtinFunc func(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError)

// builtins is the global function table: the math and
// conversion functions, none of which are methods on a receiver.
var builtins = map[string]builtinFunc{
	"raiz":          builtinRaiz,
	"potencia":      mathBinary(math.Pow),
	"seno":          mathUnary(math.Sin),
	"coseno":        mathUnary(math.Cos),
	"tangente":      mathUnary(math.Tan),
	"logaritmo":     builtinLogaritmo,
	"valorAbsoluto": mathUnary(math.Abs),
	"redondear":     mathUnary(math.Round),
	"techo":         mathUnary(math.Ceil),
	"piso":          mathUnary(math.Floor),
	"aleatorio":     builtinAleatorio,
	"maximo":        builtinMaximo,
	"minimo":        builtinMinimo,
	"suma":          builtinSuma,
	"promedio":      builtinPromedio,

	"entero":   builtinEntero,
	"decimal":  builtinDecimal,
	"texto":    builtinTexto,
	"booleano": builtinBooleano,
	"tipo":     builtinTipo,
}

func mathUnary(f func(float64) float64) builtinFunc {
	return func(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
		if len(args) != 1 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		n, err := requireNumber(args[0], line, "El argumento")
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Value: f(n)}, nil
	}
}

func mathBinary(f func(float64, float64) float64) builtinFunc {
	return func(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
		if len(args) != 2 {
			return nil, wrongArgCount(line, 2, len(args))
		}
		a, err := requireNumber(args[0], line, "El primer argumento")
		if err != nil {
			return nil, err
		}
		b, err := requireNumber(args[1], line, "El segundo argumento")
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Value: f(a, b)}, nil
	}
}

func builtinRaiz(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	if len(args) != 1 {
		return nil, wrongArgCount(line, 1, len(args))
	}
	n, err := requireNumber(args[0], line, "El argumento")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, herrors.New(herrors.TypeError, line, "'raiz' no acepta números negativos")
	}
	return runtime.NumberValue{Value: math.Sqrt(n)}, nil
}

func builtinLogaritmo(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	if len(args) != 1 {
		return nil, wrongArgCount(line, 1, len(args))
	}
	n, err := requireNumber(args[0], line, "El argumento")
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, herrors.New(herrors.TypeError, line, "'logaritmo' requiere un número positivo")
	}
	return runtime.NumberValue{Value: math.Log(n)}, nil
}

// builtinAleatorio returns a pseudo-random number: with no arguments, a
// float in [0, 1); with one argument n, an integer in [0, n); with two
// arguments a, b, an integer in [a, b].
func builtinAleatorio(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	switch len(args) {
	case 0:
		return runtime.NumberValue{Value: rand.Float64()}, nil
	case 1:
		n, err := requireNumber(args[0], line, "El argumento")
		if err != nil {
			return nil, err
		}
		max := int64(n)
		if max <= 0 {
			return nil, herrors.New(herrors.TypeError, line, "'aleatorio' requiere un límite positivo")
		}
		return runtime.NumberValue{Value: float64(rand.Int63n(max))}, nil
	case 2:
		a, err := requireNumber(args[0], line, "El primer argumento")
		if err != nil {
			return nil, err
		}
		b, err := requireNumber(args[1], line, "El segundo argumento")
		if err != nil {
			return nil, err
		}
		lo, hi := int64(a), int64(b)
		if hi < lo {
			return nil, herrors.New(herrors.TypeError, line, "'aleatorio' requiere que el primer argumento sea menor o igual al segundo")
		}
		return runtime.NumberValue{Value: float64(lo + rand.Int63n(hi-lo+1))}, nil
	default:
		return nil, herrors.New(herrors.Arity, line, "'aleatorio' espera 0, 1 o 2 argumentos pero se recibieron %d", len(args))
	}
}

func numberArgs(args []runtime.Value, line int) ([]float64, *herrors.HispanoError) {
	out := make([]float64, len(args))
	for i, a := range args {
		n, err := requireNumber(a, line, "Cada argumento")
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func builtinMaximo(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	if len(args) == 0 {
		return nil, herrors.New(herrors.Arity, line, "'maximo' requiere al menos un argumento")
	}
	nums, err := numberArgs(args, line)
	if err != nil {
		return nil, err
	}
	best := nums[0]
	for _, n := range nums[1:] {
		if n > best {
			best = n
		}
	}
	return runtime.NumberValue{Value: best}, nil
}

func builtinMinimo(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	if len(args) == 0 {
		return nil, herrors.New(herrors.Arity, line, "'minimo' requiere al menos un argumento")
	}
	nums, err := numberArgs(args, line)
	if err != nil {
		return nil, err
	}
	best := nums[0]
	for _, n := range nums[1:] {
		if n < best {
			best = n
		}
	}
	return runtime.NumberValue{Value: best}, nil
}

func builtinSuma(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	nums, err := numberArgs(args, line)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, n := range nums {
		total += n
	}
	return runtime.NumberValue{Value: total}, nil
}

func builtinPromedio(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	if len(args) == 0 {
		return nil, herrors.New(herrors.Arity, line, "'promedio' requiere al menos un argumento")
	}
	nums, err := numberArgs(args, line)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, n := range nums {
		total += n
	}
	return runtime.NumberValue{Value: total / float64(len(nums))}, nil
}

func builtinEntero(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	if len(args) != 1 {
		return nil, wrongArgCount(line, 1, len(args))
	}
	switch v := args[0].(type) {
	case runtime.NumberValue:
		return runtime.NumberValue{Value: math.Trunc(v.Value)}, nil
	case runtime.StringValue:
		n, err := parseNumericPrefix(v.Value)
		if err != nil {
			return nil, herrors.New(herrors.TypeError, line, "No se puede convertir '%s' a número", v.Value)
		}
		return runtime.NumberValue{Value: math.Trunc(n)}, nil
	case runtime.BoolValue:
		if v.Value {
			return runtime.NumberValue{Value: 1}, nil
		}
		return runtime.NumberValue{Value: 0}, nil
	default:
		return nil, herrors.New(herrors.TypeError, line, "No se puede convertir este valor a número")
	}
}

func builtinDecimal(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	if len(args) != 1 {
		return nil, wrongArgCount(line, 1, len(args))
	}
	switch v := args[0].(type) {
	case runtime.NumberValue:
		return v, nil
	case runtime.StringValue:
		n, err := parseNumericPrefix(v.Value)
		if err != nil {
			return nil, herrors.New(herrors.TypeError, line, "No se puede convertir '%s' a número", v.Value)
		}
		return runtime.NumberValue{Value: n}, nil
	case runtime.BoolValue:
		if v.Value {
			return runtime.NumberValue{Value: 1}, nil
		}
		return runtime.NumberValue{Value: 0}, nil
	default:
		return nil, herrors.New(herrors.TypeError, line, "No se puede convertir este valor a número")
	}
}

func parseNumericPrefix(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func builtinTexto(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	if len(args) != 1 {
		return nil, wrongArgCount(line, 1, len(args))
	}
	return runtime.StringValue{Value: runtime.StringifySpanish(args[0])}, nil
}

func builtinBooleano(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	if len(args) != 1 {
		return nil, wrongArgCount(line, 1, len(args))
	}
	return runtime.BoolValue{Value: runtime.Truthy(args[0])}, nil
}

func builtinTipo(it *Interpreter, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	if len(args) != 1 {
		return nil, wrongArgCount(line, 1, len(args))
	}
	return runtime.StringValue{Value: args[0].TypeName()}, nil
}
