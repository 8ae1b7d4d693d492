package typechecker

import (
	"strings"

	"lumen/internal/diagnostics"
	"lumen/internal/frontend/ast"
	"lumen/internal/semantics/symbols"
	"lumen/internal/semantics/table"
	"lumen/internal/source"
	"lumen/internal/types"
)

// checkExpr computes and records the type of an expression. The context is
// consumed here; children are always visited with a fresh one unless the
// case says otherwise.
func (c *Checker) checkExpr(e ast.Expression, ctx context) types.Type {
	t := c.exprType(e, ctx)
	e.SetComputedType(t)
	return t
}

func (c *Checker) exprType(e ast.Expression, ctx context) types.Type {
	switch v := e.(type) {
	case *ast.IntExpr:
		return types.TypeInt
	case *ast.FloatExpr:
		return types.TypeFloat
	case *ast.StringExpr:
		return types.TypeString
	case *ast.CharExpr:
		// a character literal is its code point
		return types.TypeInt
	case *ast.BoolExpr:
		return types.TypeBool
	case *ast.NullExpr:
		return types.TypeNull
	case *ast.ThisExpr:
		return c.checkThis(v)
	case *ast.IdentExpr:
		return c.checkIdent(v, ctx)
	case *ast.MemberExpr:
		return c.checkMember(v, ctx)
	case *ast.IndexExpr:
		return c.checkIndex(v)
	case *ast.UnaryExpr:
		return c.checkUnary(v)
	case *ast.BinaryExpr:
		return c.checkBinary(v)
	case *ast.CastExpr:
		return c.checkCast(v)
	case *ast.CallExpr:
		return c.checkCall(v)
	case *ast.ListExpr:
		return c.checkList(v, ctx)
	case *ast.TypeExpr:
		return c.checkTypeName(v)
	case *ast.ParamExpr:
		return c.checkParam(v)
	case *ast.NullableExpr:
		return c.checkNullable(v)
	default:
		return types.TypeError
	}
}

func (c *Checker) checkThis(e *ast.ThisExpr) types.Type {
	if c.class == nil || c.fn == nil || c.fn.IsStatic {
		c.log.AddError(*e.Loc(), diagnostics.ThisOutsideMember())
		return types.TypeError
	}
	if meta, ok := c.class.Symbol.Type.(*types.MetaType); ok {
		return meta.Instance
	}
	return types.TypeError
}

func (c *Checker) checkIdent(e *ast.IdentExpr, ctx context) types.Type {
	sym := c.scope.Lookup(e.Name, table.LookupNormal)
	if sym == nil {
		c.log.AddError(*e.Loc(), diagnostics.NotDefined(e.Name))
		return types.TypeError
	}
	e.Symbol = sym
	t := sym.Type
	if narrowed, ok := c.narrowedType(sym); ok {
		t = narrowed
	}
	if types.IsOverloaded(t) {
		return c.resolveOverloadRef(e.Loc(), sym, ctx, func(member *symbols.Symbol) {
			e.Symbol = member
		})
	}
	return t
}

// resolveOverloadRef handles a reference to an overload set: with argument
// types in the context it picks the single matching member, otherwise it
// reports that resolution needs context and leaves the overloaded marker in
// place for the caller to observe.
func (c *Checker) resolveOverloadRef(loc *source.Location, sym *symbols.Symbol, ctx context, bind func(*symbols.Symbol)) types.Type {
	if ctx.argTypes == nil {
		c.log.AddError(*loc, diagnostics.OverloadNeedsContext())
		return types.TypeOverloaded
	}
	member := c.resolveOverload(loc, sym, ctx.argTypes)
	if member == nil {
		return types.TypeError
	}
	bind(member)
	return member.Type
}

// resolveOverload picks one member of an overload set for the given argument
// types. Exact matches beat implicit-conversion matches; each winning bucket
// must hold exactly one candidate.
func (c *Checker) resolveOverload(loc *source.Location, sym *symbols.Symbol, argTypes []types.Type) *symbols.Symbol {
	for _, t := range argTypes {
		if types.IsError(t) {
			return nil
		}
	}
	var exact, convertible []*symbols.Symbol
	for _, member := range sym.Overloads {
		ft, ok := member.Type.(*types.FuncType)
		if !ok || len(ft.Args) != len(argTypes) {
			continue
		}
		allEqual, allConvert := true, true
		for i := range argTypes {
			if !argTypes[i].Equals(ft.Args[i]) {
				allEqual = false
			}
			if !types.ConvertsTo(argTypes[i], ft.Args[i]) {
				allConvert = false
				break
			}
		}
		if allEqual {
			exact = append(exact, member)
		} else if allConvert {
			convertible = append(convertible, member)
		}
	}
	bucket := exact
	if len(bucket) == 0 {
		bucket = convertible
	}
	switch len(bucket) {
	case 1:
		return bucket[0]
	case 0:
		c.log.AddError(*loc, diagnostics.NoMatchingOverload(sym.Name, typeListString(argTypes)))
	default:
		c.log.AddError(*loc, diagnostics.AmbiguousOverload(sym.Name, typeListString(argTypes)))
	}
	return nil
}

func (c *Checker) checkMember(e *ast.MemberExpr, ctx context) types.Type {
	objType := c.checkExpr(e.Value, context{})
	if bad(objType) {
		return types.TypeError
	}

	if e.IsSafe {
		nullable, ok := objType.(*types.NullableType)
		if !ok {
			c.log.AddError(*e.Loc(), diagnostics.SafeDerefNotNullable(objType.String()))
			return types.TypeError
		}
		t := c.lookupMember(e, nullable.Inner, table.LookupInstanceMember, ctx)
		if types.IsError(t) || types.IsOverloaded(t) {
			return t
		}
		return types.NewNullable(t)
	}

	switch ot := objType.(type) {
	case *types.MetaType:
		return c.lookupMember(e, ot.Instance, table.LookupStaticMember, ctx)
	case *types.ClassType:
		return c.lookupMember(e, ot, table.LookupInstanceMember, ctx)
	case *types.NullableType:
		c.log.AddError(*e.Loc(), diagnostics.MemberOnNullable(e.Name, objType.String()))
		return types.TypeError
	default:
		c.log.AddError(*e.Loc(), diagnostics.MemberNotDefined(e.Name, objType.String()))
		return types.TypeError
	}
}

// lookupMember resolves a member name against a class type's scope with the
// given member lookup kind.
func (c *Checker) lookupMember(e *ast.MemberExpr, objType types.Type, kind table.LookupKind, ctx context) types.Type {
	class, ok := objType.(*types.ClassType)
	if !ok {
		c.log.AddError(*e.Loc(), diagnostics.MemberNotDefined(e.Name, objType.String()))
		return types.TypeError
	}
	def, ok := class.Def.(*ast.ClassDef)
	if !ok || def.Body.Scope == nil {
		return types.TypeError
	}
	sym := def.Body.Scope.Lookup(e.Name, kind)
	if sym == nil {
		c.log.AddError(*e.Loc(), diagnostics.MemberNotDefined(e.Name, class.String()))
		return types.TypeError
	}
	e.Symbol = sym
	if types.IsOverloaded(sym.Type) {
		return c.resolveOverloadRef(e.Loc(), sym, ctx, func(member *symbols.Symbol) {
			e.Symbol = member
		})
	}
	return sym.Type
}

func (c *Checker) checkIndex(e *ast.IndexExpr) types.Type {
	objType := c.checkExpr(e.Value, context{})
	indexType := c.checkExpr(e.Index, context{})
	if !bad(indexType) && !indexType.Equals(types.TypeInt) {
		c.log.AddError(*e.Index.Loc(), diagnostics.IndexNotInt(indexType.String()))
	}
	if bad(objType) {
		return types.TypeError
	}
	list, ok := objType.(*types.ListType)
	if !ok || list.Item == nil {
		c.log.AddError(*e.Loc(), diagnostics.CannotIndex(objType.String()))
		return types.TypeError
	}
	return list.Item
}

func (c *Checker) checkUnary(e *ast.UnaryExpr) types.Type {
	t := c.checkExpr(e.Value, context{})
	if bad(t) {
		return types.TypeError
	}
	switch e.Op {
	case "-":
		if types.IsNumeric(t) {
			return t
		}
	case "!":
		if t.Equals(types.TypeBool) {
			return types.TypeBool
		}
	}
	c.log.AddError(*e.Loc(), diagnostics.UnaryOpUndefined(string(e.Op), t.String()))
	return types.TypeError
}

func (c *Checker) checkCast(e *ast.CastExpr) types.Type {
	if e.Target == nil {
		// synthesised conversion, typed at creation
		return e.ComputedType()
	}
	target := c.evalType(e.Target, true)
	got := c.checkExpr(e.Value, context{target: target})
	if types.IsError(target) || bad(got) {
		return types.TypeError
	}
	if !types.CastConverts(got, target) {
		c.log.AddError(*e.Loc(), diagnostics.CannotCast(got.String(), target.String()))
		return types.TypeError
	}
	return target
}

// checkCall types a call. The argument types are needed to resolve an
// overloaded callee, but the callee's signature is needed to push expected
// types into the arguments, so the callee is first visited speculatively
// with logging suppressed to find out which way to go.
func (c *Checker) checkCall(e *ast.CallExpr) types.Type {
	saved := c.log.Disabled
	c.log.Disabled = true
	trial := c.checkExpr(e.Fn, context{})
	c.log.Disabled = saved

	argTypes := make([]types.Type, len(e.Args))
	var fnType types.Type
	if types.IsOverloaded(trial) {
		// arguments first, then the callee with their types as context
		for i, arg := range e.Args {
			argTypes[i] = c.checkExpr(arg, context{})
		}
		fnType = c.checkExpr(e.Fn, context{argTypes: argTypes})
	} else {
		fnType = c.checkExpr(e.Fn, context{})
		var declared []types.Type
		if ft, ok := fnType.(*types.FuncType); ok && ft.Return != nil {
			declared = ft.Args
		}
		for i, arg := range e.Args {
			var argCtx context
			if i < len(declared) {
				argCtx.target = declared[i]
			}
			argTypes[i] = c.checkExpr(arg, argCtx)
		}
	}
	return c.finishCall(e, fnType, argTypes)
}

// finishCall reconciles the callee type with the actual arguments: a class
// meta type with no arguments is a constructor call; anything else must be a
// function whose parameters the actuals match exactly or through implicit
// conversions, which are materialised as casts.
func (c *Checker) finishCall(e *ast.CallExpr, fnType types.Type, argTypes []types.Type) types.Type {
	switch ft := fnType.(type) {
	case *types.ErrorType:
		return types.TypeError
	case *types.OverloadedType:
		// resolution already failed and reported
		return types.TypeError
	case *types.MetaType:
		if class, ok := ft.Instance.(*types.ClassType); ok && len(e.Args) == 0 {
			e.IsCtor = true
			return class
		}
		c.log.AddError(*e.Loc(), diagnostics.CannotCall(fnType.String()))
		return types.TypeError
	case *types.FuncType:
		if ft.Return == nil {
			c.log.AddError(*e.Loc(), diagnostics.CannotCall(fnType.String()))
			return types.TypeError
		}
		if len(argTypes) != len(ft.Args) {
			c.log.AddError(*e.Loc(), diagnostics.WrongArgCount(len(ft.Args), len(argTypes)))
			return ft.Return
		}
		for i, got := range argTypes {
			want := ft.Args[i]
			if bad(got) || types.IsError(want) || got.Equals(want) {
				continue
			}
			if types.ConvertsTo(got, want) {
				e.Args[i] = ast.NewCast(e.Args[i], want)
				continue
			}
			c.log.AddError(*e.Args[i].Loc(), diagnostics.CannotConvert(got.String(), want.String()))
		}
		return ft.Return
	default:
		c.log.AddError(*e.Loc(), diagnostics.CannotCall(fnType.String()))
		return types.TypeError
	}
}

func (c *Checker) checkList(e *ast.ListExpr, ctx context) types.Type {
	list, ok := ctx.target.(*types.ListType)
	if !ok || list.Item == nil {
		for _, item := range e.Items {
			c.checkExpr(item, context{})
		}
		if ctx.target == nil || !types.IsError(ctx.target) {
			c.log.AddError(*e.Loc(), diagnostics.ListNeedsContext())
		}
		return types.TypeError
	}
	for i, item := range e.Items {
		got := c.checkExpr(item, context{target: list.Item})
		if bad(got) || got.Equals(list.Item) {
			continue
		}
		if types.ConvertsTo(got, list.Item) {
			e.Items[i] = ast.NewCast(e.Items[i], list.Item)
			continue
		}
		c.log.AddError(*item.Loc(), diagnostics.CannotConvert(got.String(), list.Item.String()))
	}
	return list
}

func typeListString(argTypes []types.Type) string {
	parts := make([]string, len(argTypes))
	for i, t := range argTypes {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
