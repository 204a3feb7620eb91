package interp

import (
	"github.com/nicvazquezdev/hispano-lang/internal/ast"
	"github.com/nicvazquezdev/hispano-lang/internal/herrors"
	"github.com/nicvazquezdev/hispano-lang/internal/interp/runtime"
)

// execClassDecl registers a class's runtime metadata. The superclass, if
// any, must already be declared: `extiende` must name a class declared
// earlier in the program.
func (it *Interpreter) execClassDecl(env *runtime.Environment, s *ast.ClassDecl) *herrors.HispanoError {
	cls := &runtime.ClassValue{
		Name:           s.Name,
		SuperclassName: s.SuperclassName,
		Constructor:    s.Constructor,
		Methods:        make(map[string]*ast.MethodDecl, len(s.Methods)),
	}
	for _, m := range s.Methods {
		cls.Methods[m.Name] = m
	}
	if s.SuperclassName != "" {
		super, ok := it.classes[s.SuperclassName]
		if !ok {
			return herrors.New(herrors.UndefinedVariable, s.Line(), "Clase no definida: %s", s.SuperclassName)
		}
		cls.Super = super
	}
	it.classes[s.Name] = cls
	env.Define(s.Name, cls)
	return nil
}

// findConstructor searches cls and its ancestors for a constructor,
// mirroring ClassValue.FindMethod but over the dedicated Constructor
// field: constructors are not entries in the method table.
func findConstructor(cls *runtime.ClassValue) (*ast.MethodDecl, *runtime.ClassValue) {
	for c := cls; c != nil; c = c.Super {
		if c.Constructor != nil {
			return c.Constructor, c
		}
	}
	return nil, nil
}

func (it *Interpreter) evalNew(env *runtime.Environment, e *ast.New) (runtime.Value, *herrors.HispanoError) {
	cls, ok := it.classes[e.ClassName]
	if !ok {
		return nil, herrors.New(herrors.UndefinedVariable, e.Line(), "Clase no definida: %s", e.ClassName)
	}
	args, err := it.evalArguments(env, e.Arguments)
	if err != nil {
		return nil, err
	}

	instance := &runtime.InstanceValue{Class: cls, Properties: runtime.NewObject()}

	if ctor, owner := findConstructor(cls); ctor != nil {
		if _, err := it.callMethod(ctor, owner, instance, args, e.Line()); err != nil {
			return nil, err
		}
	} else if len(args) != 0 {
		return nil, herrors.New(herrors.Arity, e.Line(), "Se esperaban 0 argumentos pero se recibieron %d", len(args))
	}
	return instance, nil
}

// callMethod invokes a method or constructor body with este/super
// threaded via the interpreter's callFrame stack, rather than
// smuggling the receiver through the environment.
func (it *Interpreter) callMethod(method *ast.MethodDecl, owner *runtime.ClassValue, instance *runtime.InstanceValue, args []runtime.Value, line int) (runtime.Value, *herrors.HispanoError) {
	if len(args) != len(method.Parameters) {
		return nil, herrors.New(herrors.Arity, line, "Se esperaban %d argumentos pero se recibieron %d", len(method.Parameters), len(args))
	}
	if it.callDepth >= it.maxDepth {
		return nil, herrors.New(herrors.Arity, line, "Profundidad máxima de recursión excedida")
	}

	callEnv := runtime.NewEnclosed(it.global)
	for i, p := range method.Parameters {
		callEnv.Define(p, args[i])
	}

	it.pushFrame(callFrame{instance: instance, owner: owner})
	it.callDepth++
	defer func() {
		it.callDepth--
		it.popFrame()
	}()

	prevSignal, prevReturn := it.signal, it.returnValue
	it.signal, it.returnValue = signalNone, nil
	if _, err := it.execBlock(callEnv, method.Body); err != nil {
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

func (it *Interpreter) evalThis(e *ast.This) (runtime.Value, *herrors.HispanoError) {
	frame, ok := it.currentFrame()
	if !ok {
		return nil, herrors.New(herrors.InvalidThis, e.Line(), "'este' usado fuera de un método")
	}
	return frame.instance, nil
}

func (it *Interpreter) evalThisPropertyAccess(e *ast.ThisPropertyAccess) (runtime.Value, *herrors.HispanoError) {
	frame, ok := it.currentFrame()
	if !ok {
		return nil, herrors.New(herrors.InvalidThis, e.Line(), "'este' usado fuera de un método")
	}
	if prop, ok := frame.instance.Properties.Get(e.Name); ok {
		return prop, nil
	}
	if method, owner := frame.instance.Class.FindMethod(e.Name); method != nil {
		return &runtime.BoundMethodValue{Method: method, Owner: owner, Instance: frame.instance}, nil
	}
	return runtime.Undefined, nil
}

func (it *Interpreter) evalThisPropertyAssign(env *runtime.Environment, e *ast.ThisPropertyAssign) (runtime.Value, *herrors.HispanoError) {
	frame, ok := it.currentFrame()
	if !ok {
		return nil, herrors.New(herrors.InvalidThis, e.Line(), "'este' usado fuera de un método")
	}
	value, err := it.evalExpression(env, e.Value)
	if err != nil {
		return nil, err
	}
	frame.instance.Properties.Set(e.Name, value)
	return value, nil
}

func (it *Interpreter) evalThisMethodCall(env *runtime.Environment, e *ast.ThisMethodCall) (runtime.Value, *herrors.HispanoError) {
	frame, ok := it.currentFrame()
	if !ok {
		return nil, herrors.New(herrors.InvalidThis, e.Line(), "'este' usado fuera de un método")
	}
	args, err := it.evalArguments(env, e.Arguments)
	if err != nil {
		return nil, err
	}
	method, owner := frame.instance.Class.FindMethod(e.Name)
	if method == nil {
		return nil, herrors.New(herrors.UnknownMethod, e.Line(), "Método no definido: %s", e.Name)
	}
	return it.callMethod(method, owner, frame.instance, args, e.Line())
}

// evalSuperCall runs the parent class's constructor against the
// currently executing instance.
func (it *Interpreter) evalSuperCall(env *runtime.Environment, e *ast.SuperCall) (runtime.Value, *herrors.HispanoError) {
	frame, ok := it.currentFrame()
	if !ok {
		return nil, herrors.New(herrors.InvalidThis, e.Line(), "'super' usado fuera de un método")
	}
	if frame.owner.Super == nil {
		return nil, herrors.New(herrors.UnknownMethod, e.Line(), "La clase no tiene una superclase")
	}
	args, err := it.evalArguments(env, e.Arguments)
	if err != nil {
		return nil, err
	}
	ctor, owner := findConstructor(frame.owner.Super)
	if ctor == nil {
		if len(args) != 0 {
			return nil, herrors.New(herrors.Arity, e.Line(), "Se esperaban 0 argumentos pero se recibieron %d", len(args))
		}
		return runtime.Null, nil
	}
	return it.callMethod(ctor, owner, frame.instance, args, e.Line())
}

// evalMethodCall dispatches `receiver.name(args...)` across every
// receiver kind that carries methods: arrays, strings, numbers, class
// instances, and objects (whose `name` property, if callable, is
// invoked directly, matching readMember's property-read behavior).
func (it *Interpreter) evalMethodCall(env *runtime.Environment, e *ast.MethodCall) (runtime.Value, *herrors.HispanoError) {
	receiver, err := it.evalExpression(env, e.Receiver)
	if err != nil {
		return nil, err
	}
	args, err := it.evalArguments(env, e.Arguments)
	if err != nil {
		return nil, err
	}

	switch recv := receiver.(type) {
	case *runtime.ArrayValue:
		return it.callArrayMethod(recv, e.Name, args, e.Line())
	case runtime.StringValue:
		return callStringMethod(recv, e.Name, args, e.Line())
	case runtime.NumberValue:
		return callNumberMethod(recv, e.Name, args, e.Line())
	case *runtime.InstanceValue:
		method, owner := recv.Class.FindMethod(e.Name)
		if method == nil {
			return nil, herrors.New(herrors.UnknownMethod, e.Line(), "Método no definido: %s", e.Name)
		}
		return it.callMethod(method, owner, recv, args, e.Line())
	case *runtime.ObjectValue:
		prop, ok := recv.Get(e.Name)
		if !ok {
			return nil, herrors.New(herrors.UnknownMethod, e.Line(), "El objeto no tiene la propiedad '%s'", e.Name)
		}
		if err := requireCallable(prop, e.Line()); err != nil {
			return nil, err
		}
		return it.invokeValue(prop, args, e.Line())
	default:
		return nil, herrors.New(herrors.UnknownMethod, e.Line(), "El valor no tiene el método '%s'", e.Name)
	}
}
