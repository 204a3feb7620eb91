package interp

import (
	"sort"
	"strings"

	"github.com/nicvazquezdev/hispano-lang/internal/herrors"
	"github.com/nicvazquezdev/hispano-lang/internal/interp/runtime"
)

func wrongArgCount(line, want, got int) *herrors.HispanoError {
	return herrors.New(herrors.Arity, line, "Se esperaban %d argumentos pero se recibieron %d", want, got)
}

// arrayOnlyMethods names every entry of the array method table. When a
// string or number receiver is called with one of these names, the
// error should say the method is array-only rather than that it
// doesn't exist at all.
var arrayOnlyMethods = map[string]bool{
	"longitud": true, "primero": true, "ultimo": true, "agregar": true,
	"remover": true, "contiene": true, "invertir": true, "unir": true,
	"cortar": true, "insertar": true, "buscar": true, "algunos": true,
	"todos": true, "recorrer": true, "filtrar": true, "mapear": true,
	"reducir": true, "ordenar": true,
}

func unknownMethodError(line int, receiverNoun, name string) *herrors.HispanoError {
	if arrayOnlyMethods[name] {
		return herrors.New(herrors.UnknownMethod, line, "El método %s() solo se puede llamar en arreglos", name)
	}
	return herrors.New(herrors.UnknownMethod, line, "El %s no tiene el método '%s'", receiverNoun, name)
}

func requireNumber(v runtime.Value, line int, what string) (float64, *herrors.HispanoError) {
	n, ok := v.(runtime.NumberValue)
	if !ok {
		return 0, herrors.New(herrors.TypeError, line, "%s debe ser un número", what)
	}
	return n.Value, nil
}

func requireCallable(v runtime.Value, line int) *herrors.HispanoError {
	switch v.(type) {
	case *runtime.FunctionValue, *runtime.BoundMethodValue:
		return nil
	default:
		return herrors.New(herrors.TypeError, line, "Se esperaba una función")
	}
}

// callArrayMethod implements the array method table. Methods that
// accept a callback invoke it positionally with (elemento, indice), or
// (acc, elemento, indice) for reducir; a callback may declare fewer
// parameters than offered (recorrer's callback may declare none at
// all) and still bind correctly, via invokeCallback.
func (it *Interpreter) callArrayMethod(arr *runtime.ArrayValue, name string, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	switch name {
	case "longitud":
		if len(args) != 0 {
			return nil, wrongArgCount(line, 0, len(args))
		}
		return runtime.NumberValue{Value: float64(len(arr.Elements))}, nil

	case "primero":
		if len(arr.Elements) == 0 {
			return nil, herrors.New(herrors.EmptyCollection, line, "El arreglo está vacío")
		}
		return arr.Elements[0], nil

	case "ultimo":
		if len(arr.Elements) == 0 {
			return nil, herrors.New(herrors.EmptyCollection, line, "El arreglo está vacío")
		}
		return arr.Elements[len(arr.Elements)-1], nil

	case "agregar":
		arr.Elements = append(arr.Elements, args...)
		return runtime.NumberValue{Value: float64(len(arr.Elements))}, nil

	case "remover":
		if len(arr.Elements) == 0 {
			return nil, herrors.New(herrors.EmptyCollection, line, "El arreglo está vacío")
		}
		last := arr.Elements[len(arr.Elements)-1]
		arr.Elements = arr.Elements[:len(arr.Elements)-1]
		return last, nil

	case "contiene":
		if len(args) != 1 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		for _, el := range arr.Elements {
			if valuesEqual(el, args[0]) {
				return runtime.BoolValue{Value: true}, nil
			}
		}
		return runtime.BoolValue{Value: false}, nil

	case "invertir":
		reversed := make([]runtime.Value, len(arr.Elements))
		for i, el := range arr.Elements {
			reversed[len(arr.Elements)-1-i] = el
		}
		return &runtime.ArrayValue{Elements: reversed}, nil

	case "unir":
		sep := ","
		if len(args) == 1 {
			s, ok := args[0].(runtime.StringValue)
			if !ok {
				return nil, herrors.New(herrors.TypeError, line, "El separador debe ser un texto")
			}
			sep = s.Value
		} else if len(args) != 0 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		parts := make([]string, len(arr.Elements))
		for i, el := range arr.Elements {
			parts[i] = runtime.Stringify(el)
		}
		return runtime.StringValue{Value: strings.Join(parts, sep)}, nil

	case "cortar":
		if len(args) < 1 || len(args) > 2 {
			return nil, herrors.New(herrors.Arity, line, "'cortar' espera 1 o 2 argumentos pero se recibieron %d", len(args))
		}
		start, err := requireNumber(args[0], line, "El índice inicial")
		if err != nil {
			return nil, err
		}
		end := float64(len(arr.Elements))
		if len(args) == 2 {
			end, err = requireNumber(args[1], line, "El índice final")
			if err != nil {
				return nil, err
			}
		}
		s, e := clampSlice(int(start), int(end), len(arr.Elements))
		out := make([]runtime.Value, e-s)
		copy(out, arr.Elements[s:e])
		return &runtime.ArrayValue{Elements: out}, nil

	case "insertar":
		if len(args) != 2 {
			return nil, wrongArgCount(line, 2, len(args))
		}
		idxF, err := requireNumber(args[0], line, "El índice")
		if err != nil {
			return nil, err
		}
		idx := int(idxF)
		if idx < 0 || idx > len(arr.Elements) {
			return nil, herrors.New(herrors.BoundsError, line, "Índice fuera de rango: %d", idx)
		}
		arr.Elements = append(arr.Elements, nil)
		copy(arr.Elements[idx+1:], arr.Elements[idx:])
		arr.Elements[idx] = args[1]
		return arr, nil

	case "buscar":
		if len(args) != 1 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		if err := requireCallable(args[0], line); err != nil {
			return nil, err
		}
		for i, el := range arr.Elements {
			ok, err := it.callPredicate(args[0], el, i, line)
			if err != nil {
				return nil, err
			}
			if ok {
				return el, nil
			}
		}
		return runtime.Undefined, nil

	case "algunos":
		if len(args) != 1 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		if err := requireCallable(args[0], line); err != nil {
			return nil, err
		}
		for i, el := range arr.Elements {
			ok, err := it.callPredicate(args[0], el, i, line)
			if err != nil {
				return nil, err
			}
			if ok {
				return runtime.BoolValue{Value: true}, nil
			}
		}
		return runtime.BoolValue{Value: false}, nil

	case "todos":
		if len(args) != 1 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		if err := requireCallable(args[0], line); err != nil {
			return nil, err
		}
		for i, el := range arr.Elements {
			ok, err := it.callPredicate(args[0], el, i, line)
			if err != nil {
				return nil, err
			}
			if !ok {
				return runtime.BoolValue{Value: false}, nil
			}
		}
		return runtime.BoolValue{Value: true}, nil

	case "recorrer":
		if len(args) != 1 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		if err := requireCallable(args[0], line); err != nil {
			return nil, err
		}
		for i, el := range arr.Elements {
			if _, err := it.invokeCallback(args[0], []runtime.Value{el, runtime.NumberValue{Value: float64(i)}}, line); err != nil {
				return nil, err
			}
		}
		return runtime.Null, nil

	case "filtrar":
		if len(args) != 1 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		if err := requireCallable(args[0], line); err != nil {
			return nil, err
		}
		var out []runtime.Value
		for i, el := range arr.Elements {
			ok, err := it.callPredicate(args[0], el, i, line)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, el)
			}
		}
		return &runtime.ArrayValue{Elements: out}, nil

	case "mapear":
		if len(args) != 1 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		if err := requireCallable(args[0], line); err != nil {
			return nil, err
		}
		out := make([]runtime.Value, len(arr.Elements))
		for i, el := range arr.Elements {
			v, err := it.invokeCallback(args[0], []runtime.Value{el, runtime.NumberValue{Value: float64(i)}}, line)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return &runtime.ArrayValue{Elements: out}, nil

	case "reducir":
		if len(args) != 2 {
			return nil, wrongArgCount(line, 2, len(args))
		}
		if err := requireCallable(args[0], line); err != nil {
			return nil, err
		}
		acc := args[1]
		for i, el := range arr.Elements {
			v, err := it.invokeCallback(args[0], []runtime.Value{acc, el, runtime.NumberValue{Value: float64(i)}}, line)
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil

	case "ordenar":
		out := make([]runtime.Value, len(arr.Elements))
		copy(out, arr.Elements)
		var sortErr *herrors.HispanoError
		if len(args) == 1 {
			if err := requireCallable(args[0], line); err != nil {
				return nil, err
			}
			sort.SliceStable(out, func(i, j int) bool {
				if sortErr != nil {
					return false
				}
				v, err := it.invokeValue(args[0], []runtime.Value{out[i], out[j]}, line)
				if err != nil {
					sortErr = err
					return false
				}
				n, ok := v.(runtime.NumberValue)
				return ok && n.Value < 0
			})
		} else if len(args) == 0 {
			sort.SliceStable(out, func(i, j int) bool {
				return runtime.Stringify(out[i]) < runtime.Stringify(out[j])
			})
		} else {
			return nil, wrongArgCount(line, 1, len(args))
		}
		if sortErr != nil {
			return nil, sortErr
		}
		return &runtime.ArrayValue{Elements: out}, nil

	default:
		return nil, unknownMethodError(line, "arreglo", name)
	}
}

func (it *Interpreter) callPredicate(fn runtime.Value, el runtime.Value, idx int, line int) (bool, *herrors.HispanoError) {
	v, err := it.invokeCallback(fn, []runtime.Value{el, runtime.NumberValue{Value: float64(idx)}}, line)
	if err != nil {
		return false, err
	}
	return runtime.Truthy(v), nil
}

func clampSlice(start, end, length int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if start > length {
		start = length
	}
	if end < start {
		end = start
	}
	return start, end
}

// callStringMethod implements the string method table.
// Strings are immutable: every method returns a new value.
func callStringMethod(s runtime.StringValue, name string, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	switch name {
	case "longitud":
		return runtime.NumberValue{Value: float64(len([]rune(s.Value)))}, nil
	case "mayusculas":
		return runtime.StringValue{Value: strings.ToUpper(s.Value)}, nil
	case "minusculas":
		return runtime.StringValue{Value: strings.ToLower(s.Value)}, nil
	case "recortar":
		return runtime.StringValue{Value: strings.TrimSpace(s.Value)}, nil
	case "invertir":
		runes := []rune(s.Value)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return runtime.StringValue{Value: string(runes)}, nil
	case "dividir":
		if len(args) != 1 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		sep, ok := args[0].(runtime.StringValue)
		if !ok {
			return nil, herrors.New(herrors.TypeError, line, "El separador debe ser un texto")
		}
		parts := strings.Split(s.Value, sep.Value)
		out := make([]runtime.Value, len(parts))
		for i, p := range parts {
			out[i] = runtime.StringValue{Value: p}
		}
		return &runtime.ArrayValue{Elements: out}, nil
	case "reemplazar":
		if len(args) != 2 {
			return nil, wrongArgCount(line, 2, len(args))
		}
		from, ok1 := args[0].(runtime.StringValue)
		to, ok2 := args[1].(runtime.StringValue)
		if !ok1 || !ok2 {
			return nil, herrors.New(herrors.TypeError, line, "'reemplazar' requiere dos textos")
		}
		return runtime.StringValue{Value: strings.ReplaceAll(s.Value, from.Value, to.Value)}, nil
	case "incluye", "contiene":
		if len(args) != 1 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		sub, ok := args[0].(runtime.StringValue)
		if !ok {
			return nil, herrors.New(herrors.TypeError, line, "'%s' requiere un texto", name)
		}
		return runtime.BoolValue{Value: strings.Contains(s.Value, sub.Value)}, nil
	case "empiezaCon":
		if len(args) != 1 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		sub, ok := args[0].(runtime.StringValue)
		if !ok {
			return nil, herrors.New(herrors.TypeError, line, "'empiezaCon' requiere un texto")
		}
		return runtime.BoolValue{Value: strings.HasPrefix(s.Value, sub.Value)}, nil
	case "terminaCon":
		if len(args) != 1 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		sub, ok := args[0].(runtime.StringValue)
		if !ok {
			return nil, herrors.New(herrors.TypeError, line, "'terminaCon' requiere un texto")
		}
		return runtime.BoolValue{Value: strings.HasSuffix(s.Value, sub.Value)}, nil
	case "caracter":
		if len(args) != 1 {
			return nil, wrongArgCount(line, 1, len(args))
		}
		idxF, err := requireNumber(args[0], line, "El índice")
		if err != nil {
			return nil, err
		}
		runes := []rune(s.Value)
		idx := int(idxF)
		if idx < 0 || idx >= len(runes) {
			return nil, herrors.New(herrors.BoundsError, line, "Índice fuera de rango: %d", idx)
		}
		return runtime.StringValue{Value: string(runes[idx])}, nil
	case "subcadena":
		if len(args) < 1 || len(args) > 2 {
			return nil, herrors.New(herrors.Arity, line, "'subcadena' espera 1 o 2 argumentos pero se recibieron %d", len(args))
		}
		startF, err := requireNumber(args[0], line, "El índice inicial")
		if err != nil {
			return nil, err
		}
		runes := []rune(s.Value)
		endF := float64(len(runes))
		if len(args) == 2 {
			endF, err = requireNumber(args[1], line, "El índice final")
			if err != nil {
				return nil, err
			}
		}
		start, end := clampSlice(int(startF), int(endF), len(runes))
		return runtime.StringValue{Value: string(runes[start:end])}, nil
	default:
		return nil, unknownMethodError(line, "texto", name)
	}
}

// callNumberMethod implements the number method table.
func callNumberMethod(n runtime.NumberValue, name string, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	if len(args) != 0 {
		return nil, wrongArgCount(line, 0, len(args))
	}
	switch name {
	case "esPar":
		return runtime.BoolValue{Value: int64(n.Value)%2 == 0}, nil
	case "esImpar":
		return runtime.BoolValue{Value: int64(n.Value)%2 != 0}, nil
	case "esPositivo":
		return runtime.BoolValue{Value: n.Value > 0}, nil
	case "esNegativo":
		return runtime.BoolValue{Value: n.Value < 0}, nil
	case "aTexto":
		return runtime.StringValue{Value: runtime.Stringify(n)}, nil
	default:
		return nil, unknownMethodError(line, "número", name)
	}
}
