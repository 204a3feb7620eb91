package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nicvazquezdev/hispano-lang/internal/ast"
)

// Value is the tagged-variant runtime representation of a HispanoLang
// value. Every HispanoLang value implements this interface; the
// concrete type IS the tag, matched via type switches throughout the
// evaluator.
type Value interface {
	// TypeName returns the Spanish type tag used by tipo().
	TypeName() string
}

// NullValue is `nulo`.
type NullValue struct{}

func (NullValue) TypeName() string { return "nulo" }

// Null is the shared nulo singleton; HispanoLang values carry no
// identity for null so every nulo literal can safely reuse it.
var Null = NullValue{}

// UndefinedValue is `indefinido`.
type UndefinedValue struct{}

func (UndefinedValue) TypeName() string { return "indefinido" }

// Undefined is the shared indefinido singleton.
var Undefined = UndefinedValue{}

// BoolValue is `verdadero`/`falso`.
type BoolValue struct{ Value bool }

func (BoolValue) TypeName() string { return "booleano" }

// NumberValue is HispanoLang's single numeric type: double-precision
// floating point, used for both integer and fractional literals.
type NumberValue struct{ Value float64 }

func (NumberValue) TypeName() string { return "numero" }

// StringValue is an immutable string.
type StringValue struct{ Value string }

func (StringValue) TypeName() string { return "texto" }

// ArrayValue is a mutable, resizeable, ordered sequence of values,
// boxed in a pointer so array methods that mutate in place (agregar,
// insertar, remover) are visible through every alias of the array.
type ArrayValue struct{ Elements []Value }

func (*ArrayValue) TypeName() string { return "arreglo" }

// ObjectValue is an insertion-ordered string→Value map, used both for
// object literals and (via Class/Instance below) as the storage for
// instance property bags.
type ObjectValue struct {
	keys   []string
	values map[string]Value
}

func (*ObjectValue) TypeName() string { return "objeto" }

// NewObject creates an empty, insertion-ordered object.
func NewObject() *ObjectValue {
	return &ObjectValue{values: make(map[string]Value)}
}

// Get returns the value bound to key, and whether it was present.
func (o *ObjectValue) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set inserts or updates key, tracking insertion order for the first
// write.
func (o *ObjectValue) Set(key string, v Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Keys returns the object's keys in insertion order.
func (o *ObjectValue) Keys() []string {
	return o.keys
}

// FunctionValue is a closure: named or anonymous/arrow, carrying its
// parameter list, body, and the environment captured at declaration
// time.
type FunctionValue struct {
	Name              string // "" for anonymous/arrow functions
	Parameters        []string
	Body              *ast.Block // nil when ExpressionBody is set
	ExpressionBody    ast.Expression
	IsArrowExpression bool
	Closure           *Environment
}

func (*FunctionValue) TypeName() string { return "funcion" }

// ClassValue is the runtime form of a class declaration: metadata
// captured once, at `clase` declaration time.
type ClassValue struct {
	Name           string
	SuperclassName string
	Super          *ClassValue // resolved when the class is declared
	Constructor    *ast.MethodDecl
	Methods        map[string]*ast.MethodDecl
}

func (*ClassValue) TypeName() string { return "clase" }

// FindMethod searches this class, then its parent chain, for name.
func (c *ClassValue) FindMethod(name string) (*ast.MethodDecl, *ClassValue) {
	for cls := c; cls != nil; cls = cls.Super {
		if m, ok := cls.Methods[name]; ok {
			return m, cls
		}
	}
	return nil, nil
}

// InstanceValue is a runtime object created by `nuevo`. TypeName
// returns the owning class's name rather than a generic tag, per
// the tipo() rule for instances.
type InstanceValue struct {
	Class      *ClassValue
	Properties *ObjectValue
}

func (i *InstanceValue) TypeName() string { return i.Class.Name }

// BoundMethodValue is the transient value produced when a method is
// read as a property without being called.
type BoundMethodValue struct {
	Method   *ast.MethodDecl
	Owner    *ClassValue // class that declared Method, for super() resolution
	Instance *InstanceValue
}

func (*BoundMethodValue) TypeName() string { return "funcion" }

// Stringify renders v the way `mostrar` and implicit string
// concatenation do: English tag words for null,
// undefined, and booleans.
func Stringify(v Value) string {
	return stringify(v, false)
}

// StringifySpanish renders v the way template-string interpolation and
// the texto() built-in do: Spanish tag words. Keeping two separate
// stringify modes (this one and Stringify) is a deliberate choice: unifying
// them would change the output of existing programs that rely on either.
func StringifySpanish(v Value) string {
	return stringify(v, true)
}

func stringify(v Value, spanish bool) string {
	switch val := v.(type) {
	case NullValue, nil:
		if spanish {
			return "nulo"
		}
		return "null"
	case UndefinedValue:
		if spanish {
			return "indefinido"
		}
		return "undefined"
	case BoolValue:
		if spanish {
			if val.Value {
				return "verdadero"
			}
			return "falso"
		}
		if val.Value {
			return "true"
		}
		return "false"
	case NumberValue:
		return formatNumber(val.Value)
	case StringValue:
		return val.Value
	case *ArrayValue:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = stringify(e, spanish)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ObjectValue:
		parts := make([]string, 0, len(val.keys))
		for _, k := range val.keys {
			v, _ := val.Get(k)
			parts = append(parts, fmt.Sprintf("%s: %s", k, stringify(v, spanish)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *FunctionValue:
		return "funcion"
	case *ClassValue:
		return "clase " + val.Name
	case *InstanceValue:
		return val.Class.Name
	case *BoundMethodValue:
		return "funcion"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatNumber renders a float64 the way the host's default numeric
// formatting would: integral values print without a fractional part.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Truthy implements HispanoLang's truthy/falsy rule: null, undefined,
// false, and 0 are falsy; everything else (including empty strings and
// empty arrays) is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case NullValue, nil:
		return false
	case UndefinedValue:
		return false
	case BoolValue:
		return val.Value
	case NumberValue:
		return val.Value != 0
	default:
		return true
	}
}
