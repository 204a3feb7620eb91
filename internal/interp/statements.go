package interp

import (
	"github.com/nicvazquezdev/hispano-lang/internal/ast"
	"github.com/nicvazquezdev/hispano-lang/internal/herrors"
	"github.com/nicvazquezdev/hispano-lang/internal/interp/runtime"
)

// execStatement dispatches a single statement against env. It returns a
// Go error for every entry in the taxonomy; non-local control
// transfer is instead recorded in it.signal/it.returnValue and must be
// checked by callers (execBlock, loop bodies, Run) after every call.
func (it *Interpreter) execStatement(env *runtime.Environment, stmt ast.Statement) *herrors.HispanoError {
	switch s := stmt.(type) {
	case *ast.VariableDecl:
		return it.execVariableDecl(env, s)
	case *ast.ConstantDecl:
		return it.execConstantDecl(env, s)
	case *ast.FunctionDecl:
		it.defineFunctionDecl(env, s)
		return nil
	case *ast.ClassDecl:
		return it.execClassDecl(env, s)
	case *ast.Print:
		return it.execPrint(env, s)
	case *ast.Read:
		return it.execRead(env, s)
	case *ast.If:
		return it.execIf(env, s)
	case *ast.While:
		return it.execWhile(env, s)
	case *ast.For:
		return it.execFor(env, s)
	case *ast.ForEach:
		return it.execForEach(env, s)
	case *ast.DoWhile:
		return it.execDoWhile(env, s)
	case *ast.Switch:
		return it.execSwitch(env, s)
	case *ast.TryCatch:
		return it.execTryCatch(env, s)
	case *ast.Return:
		return it.execReturn(env, s)
	case *ast.Break:
		it.signal = signalBreak
		return nil
	case *ast.Continue:
		it.signal = signalContinue
		return nil
	case *ast.Block:
		_, err := it.execBlock(env, s)
		return err
	case *ast.ExpressionStatement:
		_, err := it.evalExpression(env, s.Expr)
		return err
	default:
		return herrors.New(herrors.ParseError, stmt.Line(), "sentencia no soportada")
	}
}

// execBlock creates a fresh child environment and runs stmts in order,
// stopping as soon as an error occurs or a signal becomes pending.
func (it *Interpreter) execBlock(parent *runtime.Environment, block *ast.Block) (*runtime.Environment, *herrors.HispanoError) {
	env := runtime.NewEnclosed(parent)
	for _, stmt := range block.Statements {
		if err := it.execStatement(env, stmt); err != nil {
			return env, err
		}
		if it.signal != signalNone {
			return env, nil
		}
	}
	return env, nil
}

func (it *Interpreter) execVariableDecl(env *runtime.Environment, s *ast.VariableDecl) *herrors.HispanoError {
	var value runtime.Value = runtime.Null
	if s.Initializer != nil {
		v, err := it.evalExpression(env, s.Initializer)
		if err != nil {
			return err
		}
		value = v
	}
	env.Define(s.Name, value)
	return nil
}

func (it *Interpreter) execConstantDecl(env *runtime.Environment, s *ast.ConstantDecl) *herrors.HispanoError {
	value, err := it.evalExpression(env, s.Initializer)
	if err != nil {
		return err
	}
	env.DefineConstant(s.Name, value)
	return nil
}

func (it *Interpreter) defineFunctionDecl(env *runtime.Environment, s *ast.FunctionDecl) {
	fn := &runtime.FunctionValue{
		Name:       s.Name,
		Parameters: s.Parameters,
		Body:       s.Body,
		Closure:    env,
	}
	env.Define(s.Name, fn)
}

func (it *Interpreter) execPrint(env *runtime.Environment, s *ast.Print) *herrors.HispanoError {
	value, err := it.evalExpression(env, s.Value)
	if err != nil {
		return err
	}
	it.print(runtime.Stringify(value))
	return nil
}

func (it *Interpreter) execRead(env *runtime.Environment, s *ast.Read) *herrors.HispanoError {
	value, err := it.readLine()
	if err != nil {
		return err
	}
	env.Define(s.Target, value)
	return nil
}

func (it *Interpreter) execIf(env *runtime.Environment, s *ast.If) *herrors.HispanoError {
	cond, err := it.evalExpression(env, s.Condition)
	if err != nil {
		return err
	}
	if runtime.Truthy(cond) {
		_, err := it.execBlock(env, s.Consequence)
		return err
	}
	if s.Alternative != nil {
		return it.execStatement(env, s.Alternative)
	}
	return nil
}

func (it *Interpreter) execWhile(env *runtime.Environment, s *ast.While) *herrors.HispanoError {
	for {
		cond, err := it.evalExpression(env, s.Condition)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			return nil
		}
		if _, err := it.execBlock(env, s.Body); err != nil {
			return err
		}
		if done, err := it.consumeLoopSignal(); done {
			return err
		}
	}
}

func (it *Interpreter) execDoWhile(env *runtime.Environment, s *ast.DoWhile) *herrors.HispanoError {
	for {
		if _, err := it.execBlock(env, s.Body); err != nil {
			return err
		}
		if done, err := it.consumeLoopSignal(); done {
			return err
		}
		cond, err := it.evalExpression(env, s.Condition)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			return nil
		}
	}
}

func (it *Interpreter) execFor(env *runtime.Environment, s *ast.For) *herrors.HispanoError {
	loopEnv := runtime.NewEnclosed(env)
	if s.Init != nil {
		if err := it.execStatement(loopEnv, s.Init); err != nil {
			return err
		}
	}
	for {
		if s.Condition != nil {
			cond, err := it.evalExpression(loopEnv, s.Condition)
			if err != nil {
				return err
			}
			if !runtime.Truthy(cond) {
				return nil
			}
		}
		if _, err := it.execBlock(loopEnv, s.Body); err != nil {
			return err
		}
		stop, err := it.consumeLoopSignal()
		if err != nil {
			return err
		}
		// para's step runs after the body and also before continuar
		// re-checks the condition; it must NOT be
		// skipped by a `continuar` (only by `romper`, which sets stop).
		if stop && it.signal != signalContinue {
			return nil
		}
		if s.Step != nil {
			if err := it.execStatement(loopEnv, s.Step); err != nil {
				return err
			}
		}
	}
}

func (it *Interpreter) execForEach(env *runtime.Environment, s *ast.ForEach) *herrors.HispanoError {
	iterableVal, err := it.evalExpression(env, s.Iterable)
	if err != nil {
		return err
	}
	arr, ok := iterableVal.(*runtime.ArrayValue)
	if !ok {
		return herrors.New(herrors.TypeError, s.Line(), "'para cada' requiere un arreglo")
	}
	for _, el := range arr.Elements {
		// Fresh environment per iteration: the iterator name never
		// leaks to the enclosing scope.
		iterEnv := runtime.NewEnclosed(env)
		iterEnv.Define(s.Iterator, el)
		if _, err := it.execBlock(iterEnv, s.Body); err != nil {
			return err
		}
		if done, err := it.consumeLoopSignal(); done {
			return err
		}
	}
	return nil
}

// consumeLoopSignal interprets it.signal after a loop body executes:
// romper stops the loop (stop=true, no error); continuar resets to
// normal flow (stop=false); a return signal also stops iteration
// without consuming the signal, so it propagates to the enclosing
// function call; no signal at all continues the loop (stop=false).
func (it *Interpreter) consumeLoopSignal() (stop bool, err *herrors.HispanoError) {
	switch it.signal {
	case signalBreak:
		it.signal = signalNone
		return true, nil
	case signalContinue:
		it.signal = signalNone
		return false, nil
	case signalReturn:
		return true, nil
	default:
		return false, nil
	}
}

func (it *Interpreter) execSwitch(env *runtime.Environment, s *ast.Switch) *herrors.HispanoError {
	disc, err := it.evalExpression(env, s.Discriminant)
	if err != nil {
		return err
	}

	switchEnv := runtime.NewEnclosed(env)

	for _, c := range s.Cases {
		testVal, err := it.evalExpression(switchEnv, c.Test)
		if err != nil {
			return err
		}
		if valuesEqual(disc, testVal) {
			return it.execStatementList(switchEnv, c.Statements)
		}
	}
	if s.Default != nil {
		return it.execStatementList(switchEnv, s.Default.Statements)
	}
	return nil
}

func (it *Interpreter) execStatementList(env *runtime.Environment, stmts []ast.Statement) *herrors.HispanoError {
	for _, stmt := range stmts {
		if err := it.execStatement(env, stmt); err != nil {
			return err
		}
		if it.signal != signalNone {
			return nil
		}
	}
	return nil
}

func (it *Interpreter) execTryCatch(env *runtime.Environment, s *ast.TryCatch) *herrors.HispanoError {
	_, err := it.execBlock(env, s.Try)
	if err == nil {
		return nil
	}
	// Control-flow unwinds never reach here as *herrors.HispanoError;
	// romper/continuar/retornar are recorded via it.signal, which
	// execBlock leaves untouched on the way out, so they pass through
	// intentar/capturar transparently.
	catchEnv := runtime.NewEnclosed(env)
	catchEnv.Define(s.CatchName, runtime.StringValue{Value: err.Message})
	_, cerr := it.execBlock(catchEnv, s.CatchBody)
	return cerr
}

func (it *Interpreter) execReturn(env *runtime.Environment, s *ast.Return) *herrors.HispanoError {
	var value runtime.Value = runtime.Null
	if s.Value != nil {
		v, err := it.evalExpression(env, s.Value)
		if err != nil {
			return err
		}
		value = v
	}
	it.returnValue = value
	it.signal = signalReturn
	return nil
}
