package typechecker

import (
	"lumen/internal/frontend/ast"
	"lumen/internal/semantics/symbols"
	"lumen/internal/types"
)

// Nullable narrowing: inside the then-branch of `if x != null { ... }` an
// identifier bound to x reads as the unwrapped type. Only simple identifier
// tests narrow, and only the then-branch; the else-branch and everything
// after the if see the nullable type again.

// narrowedBinding inspects a checked test expression for the x != null
// pattern (either operand order) and returns the narrowed symbol with its
// unwrapped type. Synthesised casts around the null literal are looked
// through.
func narrowedBinding(test ast.Expression) (*symbols.Symbol, types.Type) {
	cmp, ok := test.(*ast.BinaryExpr)
	if !ok || cmp.Op != "!=" {
		return nil, nil
	}
	left := unwrapSynthesisedCast(cmp.Left)
	right := unwrapSynthesisedCast(cmp.Right)

	var ident *ast.IdentExpr
	if _, ok := left.(*ast.NullExpr); ok {
		ident, _ = right.(*ast.IdentExpr)
	} else if _, ok := right.(*ast.NullExpr); ok {
		ident, _ = left.(*ast.IdentExpr)
	}
	if ident == nil || ident.Symbol == nil {
		return nil, nil
	}
	nullable, ok := ident.Symbol.Type.(*types.NullableType)
	if !ok {
		return nil, nil
	}
	return ident.Symbol, nullable.Inner
}

func unwrapSynthesisedCast(e ast.Expression) ast.Expression {
	if cast, ok := e.(*ast.CastExpr); ok && cast.Target == nil {
		return cast.Value
	}
	return e
}

func (c *Checker) pushNarrowing(sym *symbols.Symbol, to types.Type) {
	c.narrowed = append(c.narrowed, map[*symbols.Symbol]types.Type{sym: to})
}

func (c *Checker) popNarrowing() {
	c.narrowed = c.narrowed[:len(c.narrowed)-1]
}

func (c *Checker) narrowedType(sym *symbols.Symbol) (types.Type, bool) {
	for i := len(c.narrowed) - 1; i >= 0; i-- {
		if t, ok := c.narrowed[i][sym]; ok {
			return t, true
		}
	}
	return nil, false
}
