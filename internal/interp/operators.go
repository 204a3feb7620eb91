package interp

import (
	"strings"

	"github.com/nicvazquezdev/hispano-lang/internal/ast"
	"github.com/nicvazquezdev/hispano-lang/internal/herrors"
	"github.com/nicvazquezdev/hispano-lang/internal/interp/runtime"
)

func (it *Interpreter) evalUnary(env *runtime.Environment, e *ast.Unary) (runtime.Value, *herrors.HispanoError) {
	operand, err := it.evalExpression(env, e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.UnaryNeg:
		n, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, herrors.New(herrors.TypeError, e.Line(), "El operador '-' requiere un número")
		}
		return runtime.NumberValue{Value: -n.Value}, nil
	case ast.UnaryNot:
		return runtime.BoolValue{Value: !runtime.Truthy(operand)}, nil
	default:
		return nil, herrors.New(herrors.TypeError, e.Line(), "operador unario no soportado")
	}
}

func (it *Interpreter) evalBinary(env *runtime.Environment, e *ast.Binary) (runtime.Value, *herrors.HispanoError) {
	left, err := it.evalExpression(env, e.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evalExpression(env, e.Right)
	if err != nil {
		return nil, err
	}
	return applyBinary(e.Op, left, right, e.Line())
}

// applyBinary implements the arithmetic/comparison/equality
// table. `+` is overloaded for string concatenation (using Stringify's
// English rendering, matching `mostrar`); the relational operators
// accept either two numbers or two strings (compared lexicographically
// via host ordering); every other arithmetic operator requires two
// numbers.
func applyBinary(op ast.BinaryOp, left, right runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	switch op {
	case ast.OpAdd:
		ln, lok := left.(runtime.NumberValue)
		rn, rok := right.(runtime.NumberValue)
		if lok && rok {
			return runtime.NumberValue{Value: ln.Value + rn.Value}, nil
		}
		_, lstr := left.(runtime.StringValue)
		_, rstr := right.(runtime.StringValue)
		if lstr || rstr {
			return runtime.StringValue{Value: runtime.Stringify(left) + runtime.Stringify(right)}, nil
		}
		return nil, herrors.New(herrors.TypeError, line, "El operador '+' requiere números o textos")
	case ast.OpEq:
		return runtime.BoolValue{Value: valuesEqual(left, right)}, nil
	case ast.OpNotEq:
		return runtime.BoolValue{Value: !valuesEqual(left, right)}, nil
	}

	switch op {
	case ast.OpLt, ast.OpLtEq, ast.OpGt, ast.OpGtEq:
		ls, lstr := left.(runtime.StringValue)
		rs, rstr := right.(runtime.StringValue)
		if lstr && rstr {
			return relationalBool(op, strings.Compare(ls.Value, rs.Value)), nil
		}
		ln, lok := left.(runtime.NumberValue)
		rn, rok := right.(runtime.NumberValue)
		if !lok || !rok {
			return nil, herrors.New(herrors.TypeError, line, "El operador '%s' requiere dos números o dos textos", binarySymbol(op))
		}
		return relationalBool(op, cmpFloat(ln.Value, rn.Value)), nil
	}

	ln, lok := left.(runtime.NumberValue)
	rn, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return nil, herrors.New(herrors.TypeError, line, "El operador '%s' requiere dos números", binarySymbol(op))
	}

	switch op {
	case ast.OpSub:
		return runtime.NumberValue{Value: ln.Value - rn.Value}, nil
	case ast.OpMul:
		return runtime.NumberValue{Value: ln.Value * rn.Value}, nil
	case ast.OpDiv:
		if rn.Value == 0 {
			return nil, herrors.New(herrors.DivisionByZero, line, "División por cero")
		}
		return runtime.NumberValue{Value: ln.Value / rn.Value}, nil
	case ast.OpMod:
		if rn.Value == 0 {
			return nil, herrors.New(herrors.ModuloByZero, line, "Módulo por cero")
		}
		return runtime.NumberValue{Value: float64(int64(ln.Value) % int64(rn.Value))}, nil
	default:
		return nil, herrors.New(herrors.TypeError, line, "operador no soportado")
	}
}

// relationalBool turns the sign of a comparison (negative, zero, positive)
// into the bool result for one of the four relational operators.
func relationalBool(op ast.BinaryOp, cmp int) runtime.Value {
	switch op {
	case ast.OpLt:
		return runtime.BoolValue{Value: cmp < 0}
	case ast.OpLtEq:
		return runtime.BoolValue{Value: cmp <= 0}
	case ast.OpGt:
		return runtime.BoolValue{Value: cmp > 0}
	default:
		return runtime.BoolValue{Value: cmp >= 0}
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func binarySymbol(op ast.BinaryOp) string {
	switch op {
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpMod:
		return "%"
	case ast.OpLt:
		return "<"
	case ast.OpLtEq:
		return "<="
	case ast.OpGt:
		return ">"
	case ast.OpGtEq:
		return ">="
	default:
		return "?"
	}
}

// valuesEqual implements strict equality: same variant and same value.
// Arrays, objects, and instances compare by identity (pointer equality),
// since they are reference types.
func valuesEqual(a, b runtime.Value) bool {
	switch av := a.(type) {
	case runtime.NullValue:
		_, ok := b.(runtime.NullValue)
		return ok
	case runtime.UndefinedValue:
		_, ok := b.(runtime.UndefinedValue)
		return ok
	case runtime.BoolValue:
		bv, ok := b.(runtime.BoolValue)
		return ok && av.Value == bv.Value
	case runtime.NumberValue:
		bv, ok := b.(runtime.NumberValue)
		return ok && av.Value == bv.Value
	case runtime.StringValue:
		bv, ok := b.(runtime.StringValue)
		return ok && av.Value == bv.Value
	case *runtime.ArrayValue:
		bv, ok := b.(*runtime.ArrayValue)
		return ok && av == bv
	case *runtime.ObjectValue:
		bv, ok := b.(*runtime.ObjectValue)
		return ok && av == bv
	case *runtime.InstanceValue:
		bv, ok := b.(*runtime.InstanceValue)
		return ok && av == bv
	case *runtime.ClassValue:
		bv, ok := b.(*runtime.ClassValue)
		return ok && av == bv
	case *runtime.FunctionValue:
		bv, ok := b.(*runtime.FunctionValue)
		return ok && av == bv
	default:
		return false
	}
}

func (it *Interpreter) evalCompoundAssign(env *runtime.Environment, e *ast.CompoundAssign) (runtime.Value, *herrors.HispanoError) {
	current, ok := env.Get(e.Name)
	if !ok {
		return nil, herrors.New(herrors.UndefinedVariable, e.Line(), "Variable no definida: %s", e.Name)
	}
	rhs, err := it.evalExpression(env, e.Value)
	if err != nil {
		return nil, err
	}
	result, err := applyBinary(compoundOpToBinary(e.Op), current, rhs, e.Line())
	if err != nil {
		return nil, err
	}
	switch env.Assign(e.Name, result) {
	case runtime.AssignConstant:
		return nil, herrors.New(herrors.ConstantReassignment, e.Line(), "No se puede reasignar la constante: %s", e.Name)
	case runtime.AssignUndefined:
		return nil, herrors.New(herrors.UndefinedVariable, e.Line(), "Variable no definida: %s", e.Name)
	default:
		return result, nil
	}
}

func (it *Interpreter) evalCompoundArrayAssign(env *runtime.Environment, e *ast.CompoundArrayAssign) (runtime.Value, *herrors.HispanoError) {
	arrVal, err := it.evalExpression(env, e.Array)
	if err != nil {
		return nil, err
	}
	idxVal, err := it.evalExpression(env, e.Index)
	if err != nil {
		return nil, err
	}
	current, err := indexArray(arrVal, idxVal, e.Line())
	if err != nil {
		return nil, err
	}
	rhs, err := it.evalExpression(env, e.Value)
	if err != nil {
		return nil, err
	}
	result, err := applyBinary(compoundOpToBinary(e.Op), current, rhs, e.Line())
	if err != nil {
		return nil, err
	}
	if err := storeArrayElement(arrVal, idxVal, result, e.Line()); err != nil {
		return nil, err
	}
	return result, nil
}

func (it *Interpreter) evalCompoundPropertyAssign(env *runtime.Environment, e *ast.CompoundPropertyAssign) (runtime.Value, *herrors.HispanoError) {
	obj, err := it.evalExpression(env, e.Object)
	if err != nil {
		return nil, err
	}
	current, err := it.readMember(obj, e.Name, e.Line())
	if err != nil {
		return nil, err
	}
	rhs, err := it.evalExpression(env, e.Value)
	if err != nil {
		return nil, err
	}
	result, err := applyBinary(compoundOpToBinary(e.Op), current, rhs, e.Line())
	if err != nil {
		return nil, err
	}
	if err := writeMember(obj, e.Name, result, e.Line()); err != nil {
		return nil, err
	}
	return result, nil
}

func compoundOpToBinary(op ast.CompoundOp) ast.BinaryOp {
	switch op {
	case ast.CompoundAdd:
		return ast.OpAdd
	case ast.CompoundSub:
		return ast.OpSub
	case ast.CompoundMul:
		return ast.OpMul
	case ast.CompoundDiv:
		return ast.OpDiv
	default:
		return ast.OpMod
	}
}

func (it *Interpreter) evalPrefix(env *runtime.Environment, e *ast.Prefix) (runtime.Value, *herrors.HispanoError) {
	current, err := it.loadIncDecTarget(env, e.Target, e.Variable, e.Array, e.Index, e.Object, e.Property, e.Line())
	if err != nil {
		return nil, err
	}
	next, err := stepNumber(current, e.Increment, e.Line())
	if err != nil {
		return nil, err
	}
	if err := it.storeIncDecTarget(env, e.Target, e.Variable, e.Array, e.Index, e.Object, e.Property, next, e.Line()); err != nil {
		return nil, err
	}
	return next, nil
}

func (it *Interpreter) evalPostfix(env *runtime.Environment, e *ast.Postfix) (runtime.Value, *herrors.HispanoError) {
	current, err := it.loadIncDecTarget(env, e.Target, e.Variable, e.Array, e.Index, e.Object, e.Property, e.Line())
	if err != nil {
		return nil, err
	}
	next, err := stepNumber(current, e.Increment, e.Line())
	if err != nil {
		return nil, err
	}
	if err := it.storeIncDecTarget(env, e.Target, e.Variable, e.Array, e.Index, e.Object, e.Property, next, e.Line()); err != nil {
		return nil, err
	}
	return current, nil
}

func stepNumber(v runtime.Value, increment bool, line int) (runtime.Value, *herrors.HispanoError) {
	n, ok := v.(runtime.NumberValue)
	if !ok {
		return nil, herrors.New(herrors.TypeError, line, "'++'/'--' requieren un número")
	}
	if increment {
		return runtime.NumberValue{Value: n.Value + 1}, nil
	}
	return runtime.NumberValue{Value: n.Value - 1}, nil
}

func (it *Interpreter) loadIncDecTarget(env *runtime.Environment, target ast.IncDecTarget, variable string, arrExpr, idxExpr, objExpr ast.Expression, prop string, line int) (runtime.Value, *herrors.HispanoError) {
	switch target {
	case ast.TargetVariable:
		v, ok := env.Get(variable)
		if !ok {
			return nil, herrors.New(herrors.UndefinedVariable, line, "Variable no definida: %s", variable)
		}
		return v, nil
	case ast.TargetArrayElement:
		arrVal, err := it.evalExpression(env, arrExpr)
		if err != nil {
			return nil, err
		}
		idxVal, err := it.evalExpression(env, idxExpr)
		if err != nil {
			return nil, err
		}
		return indexArray(arrVal, idxVal, line)
	case ast.TargetProperty:
		obj, err := it.evalExpression(env, objExpr)
		if err != nil {
			return nil, err
		}
		return it.readMember(obj, prop, line)
	default:
		return nil, herrors.New(herrors.TypeError, line, "destino no soportado")
	}
}

func (it *Interpreter) storeIncDecTarget(env *runtime.Environment, target ast.IncDecTarget, variable string, arrExpr, idxExpr, objExpr ast.Expression, prop string, value runtime.Value, line int) *herrors.HispanoError {
	switch target {
	case ast.TargetVariable:
		switch env.Assign(variable, value) {
		case runtime.AssignConstant:
			return herrors.New(herrors.ConstantReassignment, line, "No se puede reasignar la constante: %s", variable)
		case runtime.AssignUndefined:
			return herrors.New(herrors.UndefinedVariable, line, "Variable no definida: %s", variable)
		default:
			return nil
		}
	case ast.TargetArrayElement:
		arrVal, err := it.evalExpression(env, arrExpr)
		if err != nil {
			return err
		}
		idxVal, err := it.evalExpression(env, idxExpr)
		if err != nil {
			return err
		}
		return storeArrayElement(arrVal, idxVal, value, line)
	case ast.TargetProperty:
		obj, err := it.evalExpression(env, objExpr)
		if err != nil {
			return err
		}
		return writeMember(obj, prop, value, line)
	default:
		return herrors.New(herrors.TypeError, line, "destino no soportado")
	}
}
