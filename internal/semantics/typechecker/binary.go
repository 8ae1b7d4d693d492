package typechecker

import (
	"lumen/internal/diagnostics"
	"lumen/internal/frontend/ast"
	"lumen/internal/tokens"
	"lumen/internal/types"
)

func (c *Checker) checkBinary(e *ast.BinaryExpr) types.Type {
	switch e.Op {
	case tokens.ASSIGN_TOKEN:
		return c.checkAssign(e)
	case tokens.NULL_DEFAULT_TOKEN:
		return c.checkNullDefault(e)
	case tokens.AND_TOKEN, tokens.OR_TOKEN:
		return c.checkLogical(e)
	case tokens.PLUS_TOKEN:
		return c.checkAdd(e)
	case tokens.MINUS_TOKEN, tokens.MUL_TOKEN, tokens.DIV_TOKEN:
		return c.checkArithmetic(e)
	case tokens.BIT_AND_TOKEN, tokens.BIT_OR_TOKEN, tokens.BIT_XOR_TOKEN,
		tokens.SHIFT_LEFT_TOKEN, tokens.SHIFT_RIGHT_TOKEN:
		return c.checkBitwise(e)
	case tokens.EQUAL_TOKEN, tokens.NOT_EQUAL_TOKEN:
		return c.checkEquality(e)
	case tokens.LESS_TOKEN, tokens.LESS_EQUAL_TOKEN,
		tokens.GREATER_TOKEN, tokens.GREATER_EQUAL_TOKEN:
		return c.checkOrdered(e)
	default:
		return types.TypeError
	}
}

// checkAssign types left = right. The left side must be an identifier,
// member or index expression; its type drives the right side, with an
// implicit conversion materialised when needed. Type names are not
// assignable.
func (c *Checker) checkAssign(e *ast.BinaryExpr) types.Type {
	left := c.checkExpr(e.Left, context{})
	switch e.Left.(type) {
	case *ast.IdentExpr, *ast.MemberExpr, *ast.IndexExpr:
		if types.IsMeta(left) {
			c.log.AddError(*e.Loc(), diagnostics.NotAssignable())
			left = types.TypeError
		}
	default:
		c.log.AddError(*e.Loc(), diagnostics.NotAssignable())
		left = types.TypeError
	}
	right := c.checkExpr(e.Right, context{target: left})
	if types.IsError(left) || bad(right) || right.Equals(left) {
		return left
	}
	if types.ConvertsTo(right, left) {
		e.Right = ast.NewCast(e.Right, left)
		return left
	}
	c.log.AddError(*e.Right.Loc(), diagnostics.CannotConvert(right.String(), left.String()))
	return left
}

// checkNullDefault types left ?? right: the left side must be nullable and
// the right side must convert to its inner type, which is the result.
func (c *Checker) checkNullDefault(e *ast.BinaryExpr) types.Type {
	left := c.checkExpr(e.Left, context{})
	if bad(left) {
		c.checkExpr(e.Right, context{})
		return types.TypeError
	}
	nullable, ok := left.(*types.NullableType)
	if !ok {
		c.checkExpr(e.Right, context{})
		c.log.AddError(*e.Loc(), diagnostics.NullDefaultNotNullable(left.String()))
		return types.TypeError
	}
	right := c.checkExpr(e.Right, context{target: nullable.Inner})
	if bad(right) || right.Equals(nullable.Inner) {
		return nullable.Inner
	}
	if types.ConvertsTo(right, nullable.Inner) {
		e.Right = ast.NewCast(e.Right, nullable.Inner)
		return nullable.Inner
	}
	c.log.AddError(*e.Right.Loc(), diagnostics.CannotConvert(right.String(), nullable.Inner.String()))
	return nullable.Inner
}

func (c *Checker) checkLogical(e *ast.BinaryExpr) types.Type {
	left := c.checkExpr(e.Left, context{})
	right := c.checkExpr(e.Right, context{})
	if bad(left) || bad(right) {
		return types.TypeError
	}
	if !left.Equals(types.TypeBool) || !right.Equals(types.TypeBool) {
		c.log.AddError(*e.Loc(), diagnostics.BinaryOpUndefined(string(e.Op), left.String(), right.String()))
		return types.TypeError
	}
	return types.TypeBool
}

func (c *Checker) checkAdd(e *ast.BinaryExpr) types.Type {
	left := c.checkExpr(e.Left, context{})
	right := c.checkExpr(e.Right, context{})
	if bad(left) || bad(right) {
		return types.TypeError
	}
	if left.Equals(types.TypeString) && right.Equals(types.TypeString) {
		return types.TypeString
	}
	if types.IsNumeric(left) && types.IsNumeric(right) {
		return c.widen(e, left, right)
	}
	c.log.AddError(*e.Loc(), diagnostics.BinaryOpUndefined(string(e.Op), left.String(), right.String()))
	return types.TypeError
}

func (c *Checker) checkArithmetic(e *ast.BinaryExpr) types.Type {
	left := c.checkExpr(e.Left, context{})
	right := c.checkExpr(e.Right, context{})
	if bad(left) || bad(right) {
		return types.TypeError
	}
	if types.IsNumeric(left) && types.IsNumeric(right) {
		return c.widen(e, left, right)
	}
	c.log.AddError(*e.Loc(), diagnostics.BinaryOpUndefined(string(e.Op), left.String(), right.String()))
	return types.TypeError
}

func (c *Checker) checkBitwise(e *ast.BinaryExpr) types.Type {
	left := c.checkExpr(e.Left, context{})
	right := c.checkExpr(e.Right, context{})
	if bad(left) || bad(right) {
		return types.TypeError
	}
	if !left.Equals(types.TypeInt) || !right.Equals(types.TypeInt) {
		c.log.AddError(*e.Loc(), diagnostics.BinaryOpUndefined(string(e.Op), left.String(), right.String()))
		return types.TypeError
	}
	return types.TypeInt
}

// checkEquality types == and !=: any pair sharing a common convertible type
// compares, with the converted side wrapped in a cast.
func (c *Checker) checkEquality(e *ast.BinaryExpr) types.Type {
	left := c.checkExpr(e.Left, context{})
	right := c.checkExpr(e.Right, context{})
	if bad(left) || bad(right) {
		return types.TypeError
	}
	switch {
	case left.Equals(right):
	case types.ImplicitlyConverts(left, right):
		e.Left = ast.NewCast(e.Left, right)
	case types.ImplicitlyConverts(right, left):
		e.Right = ast.NewCast(e.Right, left)
	default:
		c.log.AddError(*e.Loc(), diagnostics.BinaryOpUndefined(string(e.Op), left.String(), right.String()))
		return types.TypeError
	}
	return types.TypeBool
}

// checkOrdered types < <= > >=: numeric pairs widen like arithmetic, string
// pairs compare lexicographically; the result is bool either way.
func (c *Checker) checkOrdered(e *ast.BinaryExpr) types.Type {
	left := c.checkExpr(e.Left, context{})
	right := c.checkExpr(e.Right, context{})
	if bad(left) || bad(right) {
		return types.TypeError
	}
	if types.IsNumeric(left) && types.IsNumeric(right) {
		c.widen(e, left, right)
		return types.TypeBool
	}
	if left.Equals(types.TypeString) && right.Equals(types.TypeString) {
		return types.TypeBool
	}
	c.log.AddError(*e.Loc(), diagnostics.BinaryOpUndefined(string(e.Op), left.String(), right.String()))
	return types.TypeError
}

// widen reconciles two numeric operand types by casting the narrower side to
// float when they differ, returning the common type.
func (c *Checker) widen(e *ast.BinaryExpr, left, right types.Type) types.Type {
	if left.Equals(types.TypeInt) && right.Equals(types.TypeFloat) {
		e.Left = ast.NewCast(e.Left, types.TypeFloat)
		return types.TypeFloat
	}
	if left.Equals(types.TypeFloat) && right.Equals(types.TypeInt) {
		e.Right = ast.NewCast(e.Right, types.TypeFloat)
		return types.TypeFloat
	}
	return left
}
