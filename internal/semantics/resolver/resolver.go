package resolver

import (
	"lumen/internal/diagnostics"
	"lumen/internal/frontend/ast"
	"lumen/internal/semantics/table"
	"lumen/internal/semantics/typechecker"
	"lumen/internal/types"
)

// The compute-symbol-types pass evaluates the type expressions in signatures
// so every symbol has a resolved type before bodies are checked: variable
// declared types, function return types and argument types.
//
// Variables inside function bodies are deliberately left alone; their types
// come from their declared types or initialisers during the compute-types
// pass, which lets local `var` inference work without a second resolution
// pass over the module.

type resolver struct {
	log *diagnostics.Log
}

// Resolve fills in the signature types of a module's symbols.
func Resolve(log *diagnostics.Log, module *ast.Module) {
	r := &resolver{log: log}
	r.resolveBlock(module.Body, module.Body.Scope)
}

func (r *resolver) resolveBlock(block *ast.Block, scope *table.Scope) {
	for _, stmt := range block.Stmts {
		r.resolveStmt(stmt, scope)
	}
}

func (r *resolver) resolveStmt(stmt ast.Statement, scope *table.Scope) {
	switch s := stmt.(type) {
	case *ast.ExternalStmt:
		r.resolveBlock(s.Body, scope)
	case *ast.ClassDef:
		// the class symbol's meta type was set when it was defined
		r.resolveBlock(s.Body, s.Body.Scope)
	case *ast.VarDef:
		if s.DeclaredType == nil {
			// inferred definitions wait for the compute-types pass
			return
		}
		if s.Symbol != nil {
			s.Symbol.Type = typechecker.EvalTypeExpr(r.log, scope, s.DeclaredType, false)
		}
	case *ast.FuncDef:
		ret := typechecker.EvalTypeExpr(r.log, scope, s.ReturnType, true)
		args := make([]types.Type, len(s.Args))
		for i, arg := range s.Args {
			args[i] = types.TypeError
			if arg.DeclaredType != nil {
				args[i] = typechecker.EvalTypeExpr(r.log, scope, arg.DeclaredType, false)
			}
			if arg.Symbol != nil {
				arg.Symbol.Type = args[i]
			}
		}
		if s.Symbol != nil {
			s.Symbol.Type = types.NewFunc(ret, args)
		}
	}
}
