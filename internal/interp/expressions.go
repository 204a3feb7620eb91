package interp

import (
	"github.com/nicvazquezdev/hispano-lang/internal/ast"
	"github.com/nicvazquezdev/hispano-lang/internal/herrors"
	"github.com/nicvazquezdev/hispano-lang/internal/interp/runtime"
)

func (it *Interpreter) evalExpression(env *runtime.Environment, expr ast.Expression) (runtime.Value, *herrors.HispanoError) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil
	case *ast.Undefined:
		return runtime.Undefined, nil
	case *ast.TemplateString:
		return it.evalTemplateString(env, e)
	case *ast.Variable:
		return it.evalVariable(env, e)
	case *ast.Assign:
		return it.evalAssign(env, e)
	case *ast.ArrayLiteral:
		return it.evalArrayLiteral(env, e)
	case *ast.ArrayAccess:
		return it.evalArrayAccess(env, e)
	case *ast.ArrayAssign:
		return it.evalArrayAssign(env, e)
	case *ast.ObjectLiteral:
		return it.evalObjectLiteral(env, e)
	case *ast.PropertyAccess:
		return it.evalPropertyAccess(env, e)
	case *ast.PropertyAssign:
		return it.evalPropertyAssign(env, e)
	case *ast.CompoundAssign:
		return it.evalCompoundAssign(env, e)
	case *ast.CompoundArrayAssign:
		return it.evalCompoundArrayAssign(env, e)
	case *ast.CompoundPropertyAssign:
		return it.evalCompoundPropertyAssign(env, e)
	case *ast.Logical:
		return it.evalLogical(env, e)
	case *ast.Unary:
		return it.evalUnary(env, e)
	case *ast.Binary:
		return it.evalBinary(env, e)
	case *ast.Prefix:
		return it.evalPrefix(env, e)
	case *ast.Postfix:
		return it.evalPostfix(env, e)
	case *ast.Call:
		return it.evalCall(env, e)
	case *ast.MethodCall:
		return it.evalMethodCall(env, e)
	case *ast.New:
		return it.evalNew(env, e)
	case *ast.This:
		return it.evalThis(e)
	case *ast.ThisPropertyAccess:
		return it.evalThisPropertyAccess(e)
	case *ast.ThisPropertyAssign:
		return it.evalThisPropertyAssign(env, e)
	case *ast.ThisMethodCall:
		return it.evalThisMethodCall(env, e)
	case *ast.SuperCall:
		return it.evalSuperCall(env, e)
	case *ast.AnonymousFunction:
		return &runtime.FunctionValue{Parameters: e.Parameters, Body: e.Body, Closure: env}, nil
	case *ast.ArrowFunction:
		return &runtime.FunctionValue{
			Parameters:        e.Parameters,
			Body:              e.BlockBody,
			ExpressionBody:    e.ExpressionBody,
			IsArrowExpression: e.IsArrowExpression,
			Closure:           env,
		}, nil
	default:
		return nil, herrors.New(herrors.ParseError, expr.Line(), "expresión no soportada")
	}
}

func literalValue(v any) runtime.Value {
	switch val := v.(type) {
	case nil:
		return runtime.Null
	case bool:
		return runtime.BoolValue{Value: val}
	case float64:
		return runtime.NumberValue{Value: val}
	case string:
		return runtime.StringValue{Value: val}
	default:
		return runtime.Null
	}
}

func (it *Interpreter) evalTemplateString(env *runtime.Environment, e *ast.TemplateString) (runtime.Value, *herrors.HispanoError) {
	var sb []byte
	for i, part := range e.Parts {
		sb = append(sb, part...)
		if i < len(e.Expressions) {
			v, err := it.evalExpression(env, e.Expressions[i])
			if err != nil {
				return nil, err
			}
			sb = append(sb, runtime.StringifySpanish(v)...)
		}
	}
	return runtime.StringValue{Value: string(sb)}, nil
}

func (it *Interpreter) evalVariable(env *runtime.Environment, e *ast.Variable) (runtime.Value, *herrors.HispanoError) {
	if v, ok := env.Get(e.Name); ok {
		return v, nil
	}
	return nil, herrors.New(herrors.UndefinedVariable, e.Line(), "Variable no definida: %s", e.Name)
}

func (it *Interpreter) evalAssign(env *runtime.Environment, e *ast.Assign) (runtime.Value, *herrors.HispanoError) {
	value, err := it.evalExpression(env, e.Value)
	if err != nil {
		return nil, err
	}
	switch env.Assign(e.Name, value) {
	case runtime.AssignConstant:
		return nil, herrors.New(herrors.ConstantReassignment, e.Line(), "No se puede reasignar la constante: %s", e.Name)
	case runtime.AssignUndefined:
		return nil, herrors.New(herrors.UndefinedVariable, e.Line(), "Variable no definida: %s", e.Name)
	default:
		return value, nil
	}
}

func (it *Interpreter) evalArrayLiteral(env *runtime.Environment, e *ast.ArrayLiteral) (runtime.Value, *herrors.HispanoError) {
	elements := make([]runtime.Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := it.evalExpression(env, el)
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}
	return &runtime.ArrayValue{Elements: elements}, nil
}

func (it *Interpreter) evalArrayAccess(env *runtime.Environment, e *ast.ArrayAccess) (runtime.Value, *herrors.HispanoError) {
	arrVal, err := it.evalExpression(env, e.Array)
	if err != nil {
		return nil, err
	}
	idxVal, err := it.evalExpression(env, e.Index)
	if err != nil {
		return nil, err
	}
	return indexArray(arrVal, idxVal, e.Line())
}

func indexArray(arrVal, idxVal runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	arr, ok := arrVal.(*runtime.ArrayValue)
	if !ok {
		return nil, herrors.New(herrors.TypeError, line, "Solo se pueden indexar arreglos")
	}
	idx, ok := idxVal.(runtime.NumberValue)
	if !ok {
		return nil, herrors.New(herrors.TypeError, line, "El índice debe ser un número")
	}
	i := int(idx.Value)
	if i < 0 || i >= len(arr.Elements) {
		return nil, herrors.New(herrors.BoundsError, line, "Índice fuera de rango: %d", i)
	}
	return arr.Elements[i], nil
}

func (it *Interpreter) evalArrayAssign(env *runtime.Environment, e *ast.ArrayAssign) (runtime.Value, *herrors.HispanoError) {
	arrVal, err := it.evalExpression(env, e.Array)
	if err != nil {
		return nil, err
	}
	idxVal, err := it.evalExpression(env, e.Index)
	if err != nil {
		return nil, err
	}
	value, err := it.evalExpression(env, e.Value)
	if err != nil {
		return nil, err
	}
	if err := storeArrayElement(arrVal, idxVal, value, e.Line()); err != nil {
		return nil, err
	}
	return value, nil
}

func storeArrayElement(arrVal, idxVal, value runtime.Value, line int) *herrors.HispanoError {
	arr, ok := arrVal.(*runtime.ArrayValue)
	if !ok {
		return herrors.New(herrors.TypeError, line, "Solo se pueden indexar arreglos")
	}
	idx, ok := idxVal.(runtime.NumberValue)
	if !ok {
		return herrors.New(herrors.TypeError, line, "El índice debe ser un número")
	}
	i := int(idx.Value)
	if i < 0 || i >= len(arr.Elements) {
		return herrors.New(herrors.BoundsError, line, "Índice fuera de rango: %d", i)
	}
	arr.Elements[i] = value
	return nil
}

func (it *Interpreter) evalObjectLiteral(env *runtime.Environment, e *ast.ObjectLiteral) (runtime.Value, *herrors.HispanoError) {
	obj := runtime.NewObject()
	for i, key := range e.Keys {
		v, err := it.evalExpression(env, e.Values[i])
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	return obj, nil
}

// evalPropertyAccess reads `object.name`. No hard-coded method name
// list is consulted here: a method read without a following call
// simply yields a BoundMethodValue.
func (it *Interpreter) evalPropertyAccess(env *runtime.Environment, e *ast.PropertyAccess) (runtime.Value, *herrors.HispanoError) {
	obj, err := it.evalExpression(env, e.Object)
	if err != nil {
		return nil, err
	}
	return it.readMember(obj, e.Name, e.Line())
}

func (it *Interpreter) readMember(obj runtime.Value, name string, line int) (runtime.Value, *herrors.HispanoError) {
	switch v := obj.(type) {
	case *runtime.InstanceValue:
		if prop, ok := v.Properties.Get(name); ok {
			return prop, nil
		}
		if method, owner := v.Class.FindMethod(name); method != nil {
			return &runtime.BoundMethodValue{Method: method, Owner: owner, Instance: v}, nil
		}
		return runtime.Undefined, nil
	case *runtime.ObjectValue:
		if prop, ok := v.Get(name); ok {
			return prop, nil
		}
		return runtime.Undefined, nil
	case *runtime.ClassValue:
		return nil, herrors.New(herrors.UnknownMethod, line, "No se puede acceder a la propiedad '%s' de una clase", name)
	default:
		return nil, herrors.New(herrors.TypeError, line, "No se puede acceder a la propiedad '%s' de este valor", name)
	}
}

func (it *Interpreter) evalPropertyAssign(env *runtime.Environment, e *ast.PropertyAssign) (runtime.Value, *herrors.HispanoError) {
	obj, err := it.evalExpression(env, e.Object)
	if err != nil {
		return nil, err
	}
	value, err := it.evalExpression(env, e.Value)
	if err != nil {
		return nil, err
	}
	if err := writeMember(obj, e.Name, value, e.Line()); err != nil {
		return nil, err
	}
	return value, nil
}

func writeMember(obj runtime.Value, name string, value runtime.Value, line int) *herrors.HispanoError {
	switch v := obj.(type) {
	case *runtime.InstanceValue:
		v.Properties.Set(name, value)
		return nil
	case *runtime.ObjectValue:
		v.Set(name, value)
		return nil
	default:
		return herrors.New(herrors.TypeError, line, "No se puede asignar la propiedad '%s' de este valor", name)
	}
}

func (it *Interpreter) evalLogical(env *runtime.Environment, e *ast.Logical) (runtime.Value, *herrors.HispanoError) {
	left, err := it.evalExpression(env, e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op == ast.LogicalAnd {
		if !runtime.Truthy(left) {
			return left, nil
		}
		return it.evalExpression(env, e.Right)
	}
	// LogicalOr
	if runtime.Truthy(left) {
		return left, nil
	}
	return it.evalExpression(env, e.Right)
}
