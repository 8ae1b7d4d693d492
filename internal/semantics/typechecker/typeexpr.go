package typechecker

import (
	"lumen/internal/diagnostics"
	"lumen/internal/frontend/ast"
	"lumen/internal/semantics/table"
	"lumen/internal/types"
)

// Type expressions are ordinary expressions whose computed type is a meta
// type. The helpers below evaluate them and unwrap the instance.

func (c *Checker) checkTypeName(e *ast.TypeExpr) types.Type {
	switch e.Name {
	case "void":
		return types.NewMeta(types.TypeVoid)
	case "bool":
		return types.NewMeta(types.TypeBool)
	case "int":
		return types.NewMeta(types.TypeInt)
	case "float":
		return types.NewMeta(types.TypeFloat)
	case "string":
		return types.NewMeta(types.TypeString)
	case "list":
		// partially applied until a type parameter completes it
		return types.NewMeta(types.NewList(nil))
	case "function":
		return types.NewMeta(types.NewFunc(nil, nil))
	default:
		return types.TypeError
	}
}

func (c *Checker) checkParam(e *ast.ParamExpr) types.Type {
	params := make([]types.Type, len(e.Params))
	failed := false
	for i, p := range e.Params {
		// void is only meaningful as a function's return type, which is
		// the first parameter of function<R, A...>
		isReturn := e.Base.Name == "function" && i == 0
		params[i] = c.evalType(p, isReturn)
		if types.IsError(params[i]) {
			failed = true
		}
	}
	// decorate the base so the printer sees a type everywhere
	c.checkExpr(e.Base, context{})

	switch e.Base.Name {
	case "list":
		if len(params) != 1 {
			c.log.AddError(*e.Loc(), diagnostics.ListParamCount())
			return types.TypeError
		}
		if failed {
			return types.TypeError
		}
		return types.NewMeta(types.NewList(params[0]))
	case "function":
		if len(params) < 1 {
			c.log.AddError(*e.Loc(), diagnostics.FuncParamCount())
			return types.TypeError
		}
		if failed {
			return types.TypeError
		}
		return types.NewMeta(types.NewFunc(params[0], params[1:]))
	default:
		c.log.AddError(*e.Loc(), diagnostics.NotParameterisable(e.Base.Name))
		return types.TypeError
	}
}

func (c *Checker) checkNullable(e *ast.NullableExpr) types.Type {
	t := c.checkExpr(e.Value, context{})
	if types.IsError(t) {
		return types.TypeError
	}
	meta, ok := t.(*types.MetaType)
	if !ok {
		c.log.AddError(*e.Loc(), diagnostics.NotAType(t.String()))
		return types.TypeError
	}
	return types.NewMeta(types.NewNullable(meta.Instance))
}

// evalType evaluates a type expression and returns its instance type. The
// result is complete and, unless isReturnType is set, not void. Failures
// yield the error type with a diagnostic already reported.
func (c *Checker) evalType(e ast.Expression, isReturnType bool) types.Type {
	t := c.checkExpr(e, context{})
	if types.IsError(t) {
		return types.TypeError
	}
	meta, ok := t.(*types.MetaType)
	if !ok {
		c.log.AddError(*e.Loc(), diagnostics.NotAType(t.String()))
		return types.TypeError
	}
	instance := meta.Instance
	if !types.IsComplete(instance) {
		if list, ok := instance.(*types.ListType); ok && list.Item == nil {
			c.log.AddError(*e.Loc(), diagnostics.ListParamCount())
		} else {
			c.log.AddError(*e.Loc(), diagnostics.FuncParamCount())
		}
		return types.TypeError
	}
	if types.IsVoid(instance) && !isReturnType {
		c.log.AddError(*e.Loc(), diagnostics.VarOfTypeVoid())
		return types.TypeError
	}
	return instance
}

// EvalTypeExpr evaluates a type expression against a scope. The
// compute-symbol-types pass uses this to fill in signature types before
// function bodies are checked.
func EvalTypeExpr(log *diagnostics.Log, scope *table.Scope, e ast.Expression, isReturnType bool) types.Type {
	c := &Checker{log: log, scope: scope}
	return c.evalType(e, isReturnType)
}
