package controlflow

import (
	"lumen/internal/diagnostics"
	"lumen/internal/frontend/ast"
	"lumen/internal/semantics/symbols"
	"lumen/internal/source"
	"lumen/internal/types"
)

// Flow validation runs over function bodies only. It finds statements that
// can never execute, control paths through non-void functions that fall off
// the end, and reads of a local before the statement that defines it.

// frame is the per-block flow state. Branches walk on a clone and merge
// their result back into the parent.
type frame struct {
	didReturn  bool
	warnedDead bool
}

type analyzer struct {
	log *diagnostics.Log

	// pendingUses collects identifier read locations per symbol until the
	// symbol's definition statement is reached; whatever accumulated by
	// then was a use before definition.
	pendingUses map[*symbols.Symbol][]source.Location
	defined     map[*symbols.Symbol]bool
}

// Validate checks every function body in the module.
func Validate(log *diagnostics.Log, module *ast.Module) {
	a := &analyzer{log: log}
	ast.Inspect(module, func(n ast.Node) bool {
		if fn, ok := n.(*ast.FuncDef); ok && fn.Body != nil {
			a.validateFunc(fn)
			return false
		}
		return true
	})
}

func (a *analyzer) validateFunc(fn *ast.FuncDef) {
	a.pendingUses = make(map[*symbols.Symbol][]source.Location)
	a.defined = make(map[*symbols.Symbol]bool)

	f := &frame{}
	a.walkBlock(fn.Body, f)

	if fnType, ok := fn.Symbol.Type.(*types.FuncType); ok {
		if fnType.Return != nil && !types.IsVoid(fnType.Return) && !types.IsError(fnType.Return) && !f.didReturn {
			a.log.AddError(*fn.Loc(), diagnostics.MissingReturn())
		}
	}
}

func (a *analyzer) walkBlock(block *ast.Block, f *frame) {
	for _, stmt := range block.Stmts {
		if f.didReturn && !f.warnedDead {
			a.log.AddWarning(*stmt.Loc(), diagnostics.DeadCode())
			f.warnedDead = true
		}
		a.walkStmt(stmt, f)
	}
}

func (a *analyzer) walkStmt(stmt ast.Statement, f *frame) {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		a.visitUses(s.Value)
		f.didReturn = true
	case *ast.VarDef:
		// the initialiser runs before the name is defined, so a
		// self-reference still counts as a use before definition
		a.visitUses(s.Value)
		if s.Symbol != nil {
			for _, loc := range a.pendingUses[s.Symbol] {
				a.log.AddError(loc, diagnostics.UseBeforeDefinition(s.Name))
			}
			delete(a.pendingUses, s.Symbol)
			a.defined[s.Symbol] = true
		}
	case *ast.IfStmt:
		a.visitUses(s.Test)
		thenFrame := *f
		a.walkBlock(s.Then, &thenFrame)
		elseFrame := *f
		switch e := s.Else.(type) {
		case *ast.Block:
			a.walkBlock(e, &elseFrame)
		case *ast.IfStmt:
			a.walkStmt(e, &elseFrame)
		}
		if s.Else != nil && thenFrame.didReturn && elseFrame.didReturn {
			f.didReturn = true
		}
	case *ast.WhileStmt:
		a.visitUses(s.Test)
		// the loop body may never run, so its returns do not count
		bodyFrame := *f
		a.walkBlock(s.Body, &bodyFrame)
	case *ast.ExprStmt:
		a.visitUses(s.Value)
	}
}

// visitUses records the read locations of variable identifiers that are not
// defined yet at this point of the walk.
func (a *analyzer) visitUses(e ast.Expression) {
	if e == nil {
		return
	}
	ast.Inspect(e, func(n ast.Node) bool {
		if ident, ok := n.(*ast.IdentExpr); ok {
			sym := ident.Symbol
			if sym != nil && sym.Kind == symbols.SymbolVariable && !a.defined[sym] {
				a.pendingUses[sym] = append(a.pendingUses[sym], *ident.Loc())
			}
		}
		return true
	})
}
