package typechecker

import (
	"lumen/internal/diagnostics"
	"lumen/internal/frontend/ast"
	"lumen/internal/semantics/symbols"
	"lumen/internal/semantics/table"
	"lumen/internal/types"
)

// The compute-types pass runs the full type system in one bidirectional walk:
// every expression gets a computed type, identifiers and members get resolved
// symbols, overloads are picked, implicit conversions materialise as cast
// nodes, and constructor calls are flagged.

// Checker holds the walk state: the current scope, the enclosing class and
// function, and the active nullable narrowings.
type Checker struct {
	log      *diagnostics.Log
	scope    *table.Scope
	class    *ast.ClassDef
	fn       *ast.FuncDef
	narrowed []map[*symbols.Symbol]types.Type

	// inferred class fields already typed by the class pre-pass, so the
	// source-order walk does not check them a second time
	inferredFields map[*ast.VarDef]bool
}

// context threads the bidirectional information top-down: the expected type
// of an expression, and the argument types at a call site driving overload
// resolution. Each expression consumes the context once and recurses into
// children with a fresh one; it never leaks across siblings.
type context struct {
	target   types.Type
	argTypes []types.Type
}

// Check type-checks a module whose symbols already carry their signature
// types.
func Check(log *diagnostics.Log, module *ast.Module) {
	c := &Checker{log: log, scope: module.Body.Scope}
	c.checkBlock(module.Body)
}

func (c *Checker) checkBlock(block *ast.Block) {
	saved := c.scope
	if block.Scope != nil {
		c.scope = block.Scope
	}
	for _, stmt := range block.Stmts {
		c.checkStmt(stmt)
	}
	c.scope = saved
}

func (c *Checker) checkStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExternalStmt:
		c.checkBlock(s.Body)
	case *ast.ClassDef:
		savedClass := c.class
		c.class = s
		c.resolveInferredFields(s.Body)
		c.checkBlock(s.Body)
		c.class = savedClass
	case *ast.FuncDef:
		savedFn := c.fn
		c.fn = s
		if s.Body != nil {
			c.checkBlock(s.Body)
		}
		c.fn = savedFn
	case *ast.VarDef:
		if c.inferredFields[s] {
			return
		}
		c.checkVarDef(s)
	case *ast.IfStmt:
		c.checkTest(s.Test)
		if sym, narrowedTo := narrowedBinding(s.Test); sym != nil {
			c.pushNarrowing(sym, narrowedTo)
			c.checkBlock(s.Then)
			c.popNarrowing()
		} else {
			c.checkBlock(s.Then)
		}
		switch e := s.Else.(type) {
		case *ast.Block:
			c.checkBlock(e)
		case *ast.IfStmt:
			c.checkStmt(e)
		}
	case *ast.WhileStmt:
		c.checkTest(s.Test)
		c.checkBlock(s.Body)
	case *ast.ReturnStmt:
		c.checkReturn(s)
	case *ast.ExprStmt:
		t := c.checkExpr(s.Value, context{})
		if types.IsMeta(t) {
			c.log.AddError(*s.Loc(), diagnostics.FreeTypeExpr())
		}
	}
}

// bad reports whether a type already carries a reported failure: the error
// type, or the overloaded marker whose needs-context diagnostic was emitted
// where the reference was checked. Operations on bad operands stay silent to
// avoid cascades.
func bad(t types.Type) bool {
	return types.IsError(t) || types.IsOverloaded(t)
}

func (c *Checker) checkTest(test ast.Expression) {
	t := c.checkExpr(test, context{})
	if !bad(t) && !t.Equals(types.TypeBool) {
		c.log.AddError(*test.Loc(), diagnostics.TestNotBool(t.String()))
	}
}

// resolveInferredFields types the `var x = e` fields of a class body from
// their initialisers before any statement in the body is checked. Declared
// fields already got their types from the compute-symbol-types pass; without
// this, a method sitting above an inferred field would see its symbol still
// carrying the error type through this.x.
func (c *Checker) resolveInferredFields(body *ast.Block) {
	saved := c.scope
	if body.Scope != nil {
		c.scope = body.Scope
	}
	for _, stmt := range body.Stmts {
		if def, ok := stmt.(*ast.VarDef); ok && def.DeclaredType == nil {
			c.checkVarDef(def)
			if c.inferredFields == nil {
				c.inferredFields = make(map[*ast.VarDef]bool)
			}
			c.inferredFields[def] = true
		}
	}
	c.scope = saved
}

// checkVarDef types a variable definition. Signature types of variables
// outside function bodies were already computed by the previous pass; local
// variables get theirs here, either from the declared type or inferred from
// the initialiser.
func (c *Checker) checkVarDef(s *ast.VarDef) {
	if s.DeclaredType == nil {
		// var x = e infers the symbol type from the initialiser
		t := c.checkExpr(s.Value, context{})
		if types.IsNull(t) || types.IsVoid(t) || types.IsMeta(t) {
			c.log.AddError(*s.Loc(), diagnostics.CannotInferFrom(t.String()))
			t = types.TypeError
		} else if types.IsOverloaded(t) {
			t = types.TypeError
		}
		if s.Symbol != nil {
			s.Symbol.Type = t
		}
		return
	}

	declared := s.Symbol.Type
	if c.fn != nil {
		declared = c.evalType(s.DeclaredType, false)
		s.Symbol.Type = declared
	}
	if s.Value == nil {
		return
	}
	got := c.checkExpr(s.Value, context{target: declared})
	if bad(declared) || bad(got) || got.Equals(declared) {
		return
	}
	if types.ConvertsTo(got, declared) {
		s.Value = ast.NewCast(s.Value, declared)
		return
	}
	c.log.AddError(*s.Value.Loc(), diagnostics.CannotConvert(got.String(), declared.String()))
}

func (c *Checker) checkReturn(s *ast.ReturnStmt) {
	if c.fn == nil || c.fn.Symbol == nil {
		return
	}
	fnType, ok := c.fn.Symbol.Type.(*types.FuncType)
	if !ok {
		return
	}
	ret := fnType.Return
	if s.Value == nil {
		if !types.IsVoid(ret) && !types.IsError(ret) {
			c.log.AddError(*s.Loc(), diagnostics.ReturnNeedsValue())
		}
		return
	}
	if types.IsVoid(ret) {
		c.checkExpr(s.Value, context{})
		c.log.AddError(*s.Loc(), diagnostics.ReturnHasValueInVoid())
		return
	}
	got := c.checkExpr(s.Value, context{target: ret})
	if types.IsError(ret) || bad(got) || got.Equals(ret) {
		return
	}
	if types.ConvertsTo(got, ret) {
		s.Value = ast.NewCast(s.Value, ret)
		return
	}
	c.log.AddError(*s.Value.Loc(), diagnostics.CannotConvert(got.String(), ret.String()))
}
