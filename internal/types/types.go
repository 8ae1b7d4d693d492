package types

import (
	"strings"

	"lumen/internal/source"
)

// Type is the semantic representation of types in the Lumen language.
//
// Design principles:
// - Types are immutable after creation
// - Equality is structural and does not consider conversions
// - All types can be displayed as strings
type Type interface {
	// String returns the type as it would be written in source
	String() string

	// Equals checks structural equality with another type
	Equals(other Type) bool

	// isType is a marker method to prevent external implementation
	isType()
}

// Decl is the defining AST node of a class type. The types package cannot see
// the ast package, so the node is held behind this interface and asserted back
// by the semantic passes.
type Decl interface {
	Loc() *source.Location
}

// PRIM_NAME names one of the built-in scalar types.
type PRIM_NAME string

const (
	PRIM_BOOL   PRIM_NAME = "bool"
	PRIM_INT    PRIM_NAME = "int"
	PRIM_FLOAT  PRIM_NAME = "float"
	PRIM_STRING PRIM_NAME = "string"
)

// PrimitiveType represents the built-in scalar types (bool, int, float, string)
type PrimitiveType struct {
	name PRIM_NAME
}

func NewPrimitive(name PRIM_NAME) *PrimitiveType {
	return &PrimitiveType{name: name}
}

func (p *PrimitiveType) String() string { return string(p.name) }
func (p *PrimitiveType) isType()        {}
func (p *PrimitiveType) Equals(other Type) bool {
	if o, ok := other.(*PrimitiveType); ok {
		return p.name == o.name
	}
	return false
}

// Name returns the primitive type name
func (p *PrimitiveType) Name() PRIM_NAME { return p.name }

// VoidType is the type of an absent value. Only valid as a return type.
type VoidType struct{}

func (v *VoidType) String() string { return "void" }
func (v *VoidType) isType()        {}
func (v *VoidType) Equals(other Type) bool {
	_, ok := other.(*VoidType)
	return ok
}

// NullType is the type of the null literal before it is converted into a
// nullable type.
type NullType struct{}

func (n *NullType) String() string { return "null" }
func (n *NullType) isType()        {}
func (n *NullType) Equals(other Type) bool {
	_, ok := other.(*NullType)
	return ok
}

// ErrorType is the absorbing failure type. An expression typed as error has
// already produced a diagnostic; downstream checks stay silent about it.
// It never equals anything, including itself.
type ErrorType struct{}

func (e *ErrorType) String() string        { return "<error>" }
func (e *ErrorType) isType()               {}
func (e *ErrorType) Equals(other Type) bool { return false }

// ClassType represents a user-defined class. Identity is the defining node,
// so two classes with the same name in different scopes stay distinct.
type ClassType struct {
	Name string
	Def  Decl
}

func NewClass(name string, def Decl) *ClassType {
	return &ClassType{Name: name, Def: def}
}

func (c *ClassType) String() string { return c.Name }
func (c *ClassType) isType()        {}
func (c *ClassType) Equals(other Type) bool {
	if o, ok := other.(*ClassType); ok {
		return c.Def == o.Def
	}
	return false
}

// FuncType represents a function signature. A nil Return marks the partially
// applied built-in `function` before its type parameters are supplied.
type FuncType struct {
	Return Type
	Args   []Type
}

func NewFunc(ret Type, args []Type) *FuncType {
	return &FuncType{Return: ret, Args: args}
}

func (f *FuncType) String() string {
	if f.Return == nil {
		return "function"
	}
	parts := make([]string, 0, len(f.Args)+1)
	parts = append(parts, f.Return.String())
	for _, a := range f.Args {
		parts = append(parts, a.String())
	}
	return "function<" + strings.Join(parts, ", ") + ">"
}

func (f *FuncType) isType() {}
func (f *FuncType) Equals(other Type) bool {
	o, ok := other.(*FuncType)
	if !ok {
		return false
	}
	if f.Return == nil || o.Return == nil {
		return false
	}
	if !f.Return.Equals(o.Return) || len(f.Args) != len(o.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

// MetaType is the type of an expression that refers to a type. The identifier
// `int` in source has type meta(int); its instance is what a value of that
// type would have.
type MetaType struct {
	Instance Type
}

func NewMeta(instance Type) *MetaType {
	return &MetaType{Instance: instance}
}

func (m *MetaType) String() string { return "type " + m.Instance.String() }
func (m *MetaType) isType()        {}
func (m *MetaType) Equals(other Type) bool {
	if o, ok := other.(*MetaType); ok {
		return m.Instance.Equals(o.Instance)
	}
	return false
}

// OverloadedType marks an unresolved overload set. It is never the type of a
// value; the member list lives on the overloaded symbol. It never equals
// anything, including itself.
type OverloadedType struct{}

func (o *OverloadedType) String() string        { return "<overloaded>" }
func (o *OverloadedType) isType()               {}
func (o *OverloadedType) Equals(other Type) bool { return false }

// ListType represents list<T>. A nil Item marks the partially applied
// built-in `list` before its type parameter is supplied; a partial list is
// only valid as the operand of a type-parameter expression.
type ListType struct {
	Item Type
}

func NewList(item Type) *ListType {
	return &ListType{Item: item}
}

func (l *ListType) String() string {
	if l.Item == nil {
		return "list"
	}
	return "list<" + l.Item.String() + ">"
}

func (l *ListType) isType() {}
func (l *ListType) Equals(other Type) bool {
	o, ok := other.(*ListType)
	if !ok {
		return false
	}
	if l.Item == nil || o.Item == nil {
		return false
	}
	return l.Item.Equals(o.Item)
}

// NullableType represents T?. The constructor collapses double nullables,
// so nullable(nullable(T)) cannot be built.
type NullableType struct {
	Inner Type
}

func NewNullable(inner Type) *NullableType {
	if n, ok := inner.(*NullableType); ok {
		return n
	}
	return &NullableType{Inner: inner}
}

func (n *NullableType) String() string { return n.Inner.String() + "?" }
func (n *NullableType) isType()        {}
func (n *NullableType) Equals(other Type) bool {
	if o, ok := other.(*NullableType); ok {
		return n.Inner.Equals(o.Inner)
	}
	return false
}

// Commonly used types
var (
	TypeBool       Type = NewPrimitive(PRIM_BOOL)
	TypeInt        Type = NewPrimitive(PRIM_INT)
	TypeFloat      Type = NewPrimitive(PRIM_FLOAT)
	TypeString     Type = NewPrimitive(PRIM_STRING)
	TypeVoid       Type = &VoidType{}
	TypeNull       Type = &NullType{}
	TypeError      Type = &ErrorType{}
	TypeOverloaded Type = &OverloadedType{}
)

// IsError reports whether t is the absorbing error type.
func IsError(t Type) bool {
	_, ok := t.(*ErrorType)
	return ok
}

// IsVoid reports whether t is void.
func IsVoid(t Type) bool {
	_, ok := t.(*VoidType)
	return ok
}

// IsNull reports whether t is the type of the null literal.
func IsNull(t Type) bool {
	_, ok := t.(*NullType)
	return ok
}

// IsMeta reports whether t is the type of a type.
func IsMeta(t Type) bool {
	_, ok := t.(*MetaType)
	return ok
}

// IsOverloaded reports whether t marks a pending overload resolution.
func IsOverloaded(t Type) bool {
	_, ok := t.(*OverloadedType)
	return ok
}

// IsNumeric reports whether t is int or float.
func IsNumeric(t Type) bool {
	if p, ok := t.(*PrimitiveType); ok {
		return p.name == PRIM_INT || p.name == PRIM_FLOAT
	}
	return false
}

// IsComplete reports whether t has no free type parameters anywhere: no bare
// list and no bare function. Only complete types may describe values.
func IsComplete(t Type) bool {
	switch v := t.(type) {
	case *ListType:
		return v.Item != nil && IsComplete(v.Item)
	case *FuncType:
		if v.Return == nil {
			return false
		}
		if !IsComplete(v.Return) {
			return false
		}
		for _, a := range v.Args {
			if !IsComplete(a) {
				return false
			}
		}
		return true
	case *NullableType:
		return IsComplete(v.Inner)
	case *MetaType:
		return IsComplete(v.Instance)
	default:
		return true
	}
}
