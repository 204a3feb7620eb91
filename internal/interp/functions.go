package interp

import (
	"github.com/nicvazquezdev/hispano-lang/internal/ast"
	"github.com/nicvazquezdev/hispano-lang/internal/herrors"
	"github.com/nicvazquezdev/hispano-lang/internal/interp/runtime"
)

// evalCall resolves and invokes `callee(args...)`. A bare-name callee
// checks the environment BEFORE the built-in table: a user binding
// named `maximo` shadows the built-in function of the same name,
// rather than the built-in winning outright.
func (it *Interpreter) evalCall(env *runtime.Environment, e *ast.Call) (runtime.Value, *herrors.HispanoError) {
	args, err := it.evalArguments(env, e.Arguments)
	if err != nil {
		return nil, err
	}

	if name, ok := calleeName(e.Callee); ok {
		if v, found := env.Get(name); found {
			return it.invokeValue(v, args, e.Line())
		}
		if fn, found := builtins[name]; found {
			return fn(it, args, e.Line())
		}
		return nil, herrors.New(herrors.UndefinedVariable, e.Line(), "Función no definida: %s", name)
	}

	callee, err := it.evalExpression(env, e.Callee)
	if err != nil {
		return nil, err
	}
	return it.invokeValue(callee, args, e.Line())
}

func calleeName(expr ast.Expression) (string, bool) {
	v, ok := expr.(*ast.Variable)
	if !ok {
		return "", false
	}
	return v.Name, true
}

func (it *Interpreter) evalArguments(env *runtime.Environment, exprs []ast.Expression) ([]runtime.Value, *herrors.HispanoError) {
	args := make([]runtime.Value, len(exprs))
	for i, a := range exprs {
		v, err := it.evalExpression(env, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// invokeValue calls any callable runtime value: a closure, a method
// bound via property read, or (rejected) anything else.
func (it *Interpreter) invokeValue(callee runtime.Value, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return it.callFunction(fn, args, line)
	case *runtime.BoundMethodValue:
		return it.callMethod(fn.Method, fn.Owner, fn.Instance, args, line)
	default:
		return nil, herrors.New(herrors.TypeError, line, "El valor no es invocable")
	}
}

// invokeCallback calls a higher-order array-method callback, binding
// only as many leading positional arguments as the callback actually
// declares (elemento/indice, acc/elem/idx, or none for a 0-parameter
// `recorrer` callback) instead of requiring an exact arity match. This
// lets `filtrar(funcion(n){...})`, `reducir(funcion(acc,el){...})`, and
// `recorrer(funcion(){...})` all bind correctly against the full
// positional argument list a given array method offers.
func (it *Interpreter) invokeCallback(callee runtime.Value, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return it.callFunction(fn, truncateArgs(args, len(fn.Parameters)), line)
	case *runtime.BoundMethodValue:
		return it.callMethod(fn.Method, fn.Owner, fn.Instance, truncateArgs(args, len(fn.Method.Parameters)), line)
	default:
		return nil, herrors.New(herrors.TypeError, line, "El valor no es invocable")
	}
}

func truncateArgs(args []runtime.Value, want int) []runtime.Value {
	if want < len(args) {
		return args[:want]
	}
	return args
}

// callFunction invokes a closure: arity is checked strictly (raising
// Arity on mismatch), a fresh environment child of the closure is
// created per call, and recursion depth is bounded so runaway recursion
// fails with a catchable error instead of overflowing the Go stack.
func (it *Interpreter) callFunction(fn *runtime.FunctionValue, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	if len(args) != len(fn.Parameters) {
		return nil, herrors.New(herrors.Arity, line, "Se esperaban %d argumentos pero se recibieron %d", len(fn.Parameters), len(args))
	}
	if it.callDepth >= it.maxDepth {
		return nil, herrors.New(herrors.Arity, line, "Profundidad máxima de recursión excedida")
	}

	callEnv := runtime.NewEnclosed(fn.Closure)
	for i, p := range fn.Parameters {
		callEnv.Define(p, args[i])
	}

	it.callDepth++
	defer func() { it.callDepth-- }()

	if fn.IsArrowExpression {
		return it.evalExpression(callEnv, fn.ExpressionBody)
	}

	prevSignal, prevReturn := it.signal, it.returnValue
	it.signal, it.returnValue = signalNone, nil
	if _, err := it.execBlock(callEnv, fn.Body); err != nil {
		it.signal, it.returnValue = prevSignal, prevReturn
		return nil, err
	}

	var result runtime.Value = runtime.Null
	if it.signal == signalReturn {
		result = it.returnValue
	} else if it.signal != signalNone {
		sigErr := it.straySignalError(line)
		it.signal, it.returnValue = prevSignal, prevReturn
		return nil, sigErr
	}
	it.signal, it.returnValue = prevSignal, prevReturn
	return result, nil
}
