// Package runtime holds the data structures shared by the evaluator:
// lexically-scoped environments and the runtime Value representation
//.
package runtime

// Environment is a name→Value mapping with a link to its lexically
// enclosing parent. It implements the four operations 
// requires: Get/Assign walk outward through parents; Define always
// writes the current frame; a name in constants rejects Assign.
type Environment struct {
	bindings  map[string]Value
	order     []string // insertion order, for TopLevelBindings() introspection
	constants map[string]bool
	parent    *Environment
}

// New creates a root environment with no parent.
func New() *Environment {
	return &Environment{
		bindings:  make(map[string]Value),
		constants: make(map[string]bool),
	}
}

// NewEnclosed creates a child environment whose lookups fall back to
// parent. Used on function/method invocation, block entry, each
// `para cada` iteration, and each higher-order array-method callback
// invocation.
func NewEnclosed(parent *Environment) *Environment {
	return &Environment{
		bindings:  make(map[string]Value),
		constants: make(map[string]bool),
		parent:    parent,
	}
}

// Get walks up the parent chain until a frame contains name.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.bindings[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define writes name into the current frame, shadowing any outer
// binding, and clears name from this frame's constant set.
func (e *Environment) Define(name string, v Value) {
	if _, exists := e.bindings[name]; !exists {
		e.order = append(e.order, name)
	}
	e.bindings[name] = v
	delete(e.constants, name)
}

// DefineConstant is Define plus marking name as constant in this frame.
func (e *Environment) DefineConstant(name string, v Value) {
	e.Define(name, v)
	e.constants[name] = true
}

// AssignResult reports the outcome of Assign, distinguishing the two
// failure kinds that share the Assign operation: UndefinedVariable and
// ConstantReassignment.
type AssignResult int

const (
	AssignOK AssignResult = iota
	AssignUndefined
	AssignConstant
)

// Assign mutates the innermost frame that already defines name,
// failing with AssignConstant if that frame marked the name constant,
// or AssignUndefined if no frame defines it at all.
func (e *Environment) Assign(name string, v Value) AssignResult {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.bindings[name]; ok {
			if env.constants[name] {
				return AssignConstant
			}
			env.bindings[name] = v
			return AssignOK
		}
	}
	return AssignUndefined
}

// Has reports whether name is bound in this frame or any ancestor.
func (e *Environment) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Bindings returns the current frame's own bindings, excluding parent
// scopes, as a map (so insertion order is not preserved in the result);
// used by the REPL's `variables` command via pkg/hispano.TopLevelBindings.
func (e *Environment) Bindings() map[string]Value {
	out := make(map[string]Value, len(e.order))
	for _, name := range e.order {
		out[name] = e.bindings[name]
	}
	return out
}
