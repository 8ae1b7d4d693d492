package ast

import (
	"lumen/internal/semantics/symbols"
	"lumen/internal/source"
	"lumen/internal/tokens"
	"lumen/internal/types"
)

// typeInfo carries the computed type decoration shared by every expression.
// The zero value reads as the error type so an unchecked expression never
// leaks a nil type.
type typeInfo struct {
	computed types.Type
}

func (t *typeInfo) ComputedType() types.Type {
	if t.computed == nil {
		return types.TypeError
	}
	return t.computed
}

func (t *typeInfo) SetComputedType(typ types.Type) { t.computed = typ }

// IntExpr is an integer literal.
type IntExpr struct {
	Value int
	typeInfo
	source.Location
}

func (e *IntExpr) INode()                {}
func (e *IntExpr) Expr()                 {}
func (e *IntExpr) Loc() *source.Location { return &e.Location }

// FloatExpr is a floating-point literal.
type FloatExpr struct {
	Value float64
	typeInfo
	source.Location
}

func (e *FloatExpr) INode()                {}
func (e *FloatExpr) Expr()                 {}
func (e *FloatExpr) Loc() *source.Location { return &e.Location }

// StringExpr is a string literal.
type StringExpr struct {
	Value string
	typeInfo
	source.Location
}

func (e *StringExpr) INode()                {}
func (e *StringExpr) Expr()                 {}
func (e *StringExpr) Loc() *source.Location { return &e.Location }

// CharExpr is a single-character literal. Its value is the character's code
// point and its type is int.
type CharExpr struct {
	Value rune
	typeInfo
	source.Location
}

func (e *CharExpr) INode()                {}
func (e *CharExpr) Expr()                 {}
func (e *CharExpr) Loc() *source.Location { return &e.Location }

// BoolExpr is true or false.
type BoolExpr struct {
	Value bool
	typeInfo
	source.Location
}

func (e *BoolExpr) INode()                {}
func (e *BoolExpr) Expr()                 {}
func (e *BoolExpr) Loc() *source.Location { return &e.Location }

// NullExpr is the null literal.
type NullExpr struct {
	typeInfo
	source.Location
}

func (e *NullExpr) INode()                {}
func (e *NullExpr) Expr()                 {}
func (e *NullExpr) Loc() *source.Location { return &e.Location }

// ThisExpr refers to the receiver inside a non-static member function.
type ThisExpr struct {
	typeInfo
	source.Location
}

func (e *ThisExpr) INode()                {}
func (e *ThisExpr) Expr()                 {}
func (e *ThisExpr) Loc() *source.Location { return &e.Location }

// IdentExpr is a name. Resolution fills in the symbol.
type IdentExpr struct {
	Name   string
	Symbol *symbols.Symbol
	typeInfo
	source.Location
}

func (e *IdentExpr) INode()                {}
func (e *IdentExpr) Expr()                 {}
func (e *IdentExpr) Loc() *source.Location { return &e.Location }

// MemberExpr is value.name or value?.name.
type MemberExpr struct {
	Value  Expression
	Name   string
	IsSafe bool // true for the ?. operator
	Symbol *symbols.Symbol
	typeInfo
	source.Location
}

func (e *MemberExpr) INode()                {}
func (e *MemberExpr) Expr()                 {}
func (e *MemberExpr) Loc() *source.Location { return &e.Location }

// IndexExpr is value[index].
type IndexExpr struct {
	Value Expression
	Index Expression
	typeInfo
	source.Location
}

func (e *IndexExpr) INode()                {}
func (e *IndexExpr) Expr()                 {}
func (e *IndexExpr) Loc() *source.Location { return &e.Location }

// UnaryExpr is a prefix operator expression.
type UnaryExpr struct {
	Op    tokens.TOKEN
	Value Expression
	typeInfo
	source.Location
}

func (e *UnaryExpr) INode()                {}
func (e *UnaryExpr) Expr()                 {}
func (e *UnaryExpr) Loc() *source.Location { return &e.Location }

// BinaryExpr is an infix operator expression, assignment included.
type BinaryExpr struct {
	Op    tokens.TOKEN
	Left  Expression
	Right Expression
	typeInfo
	source.Location
}

func (e *BinaryExpr) INode()                {}
func (e *BinaryExpr) Expr()                 {}
func (e *BinaryExpr) Loc() *source.Location { return &e.Location }

// CastExpr is `value as Target`. The compute-types pass also synthesises
// casts to materialise implicit conversions; those have a nil Target and are
// pre-typed with the conversion's result.
type CastExpr struct {
	Value  Expression
	Target Expression // nil for synthesised casts
	typeInfo
	source.Location
}

func (e *CastExpr) INode()                {}
func (e *CastExpr) Expr()                 {}
func (e *CastExpr) Loc() *source.Location { return &e.Location }

// NewCast wraps an expression in a synthesised cast carrying the given type.
func NewCast(value Expression, to types.Type) *CastExpr {
	cast := &CastExpr{Value: value, Location: *value.Loc()}
	cast.SetComputedType(to)
	return cast
}

// CallExpr is fn(args). A zero-argument call whose function is a class type
// constructs an instance; the compute-types pass sets IsCtor.
type CallExpr struct {
	Fn     Expression
	Args   []Expression
	IsCtor bool
	typeInfo
	source.Location
}

func (e *CallExpr) INode()                {}
func (e *CallExpr) Expr()                 {}
func (e *CallExpr) Loc() *source.Location { return &e.Location }

// ListExpr is a list literal [a, b, c]. It needs a list target type to check;
// there is no bottom-up item inference.
type ListExpr struct {
	Items []Expression
	typeInfo
	source.Location
}

func (e *ListExpr) INode()                {}
func (e *ListExpr) Expr()                 {}
func (e *ListExpr) Loc() *source.Location { return &e.Location }

// TypeExpr names one of the built-in types: void, bool, int, float, string,
// list, function. Its computed type is a meta type.
type TypeExpr struct {
	Name string
	typeInfo
	source.Location
}

func (e *TypeExpr) INode()                {}
func (e *TypeExpr) Expr()                 {}
func (e *TypeExpr) Loc() *source.Location { return &e.Location }

// TypeExprNames are the spellings the parser turns into TypeExpr nodes.
var TypeExprNames = map[string]bool{
	"void":     true,
	"bool":     true,
	"int":      true,
	"float":    true,
	"string":   true,
	"list":     true,
	"function": true,
}

// ParamExpr applies type parameters to a base type: list<int>,
// function<int, string>.
type ParamExpr struct {
	Base   *TypeExpr
	Params []Expression
	typeInfo
	source.Location
}

func (e *ParamExpr) INode()                {}
func (e *ParamExpr) Expr()                 {}
func (e *ParamExpr) Loc() *source.Location { return &e.Location }

// NullableExpr is the postfix ? type operator: A? is the nullable form of A.
type NullableExpr struct {
	Value Expression
	typeInfo
	source.Location
}

func (e *NullableExpr) INode()                {}
func (e *NullableExpr) Expr()                 {}
func (e *NullableExpr) Loc() *source.Location { return &e.Location }
