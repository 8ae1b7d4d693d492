package collector

import (
	"lumen/internal/diagnostics"
	"lumen/internal/frontend/ast"
	"lumen/internal/semantics/symbols"
	"lumen/internal/semantics/table"
	"lumen/internal/types"
)

// The define-symbols pass builds the scope tree and the initial symbol table
// by traversing the module. Every definition gets a symbol; same-named
// function definitions fold into overload sets. No type checking happens
// here: symbols start with the error type except classes, whose meta type is
// known immediately.

type collector struct {
	log *diagnostics.Log
}

// Collect creates scopes and symbols for a module. The module's block gets
// the fresh root scope.
func Collect(log *diagnostics.Log, module *ast.Module) {
	c := &collector{log: log}
	root := table.NewScope(table.ScopeModule, nil)
	module.Body.Scope = root
	c.collectBlock(module.Body, root)
}

func (c *collector) collectBlock(block *ast.Block, scope *table.Scope) {
	for _, stmt := range block.Stmts {
		c.collectStmt(stmt, scope)
	}
}

func (c *collector) collectStmt(stmt ast.Statement, scope *table.Scope) {
	switch s := stmt.(type) {
	case *ast.ExternalStmt:
		// external blocks do not introduce a new scope
		s.Body.Scope = scope
		c.collectBlock(s.Body, scope)
	case *ast.ClassDef:
		sym := symbols.NewSymbol(s.Name, symbols.SymbolClass, s)
		sym.IsStatic = s.IsStatic
		sym.Type = types.NewMeta(types.NewClass(s.Name, s))
		s.Symbol = sym
		c.define(scope, sym, s)

		classScope := table.NewScope(table.ScopeClass, scope)
		s.Body.Scope = classScope
		c.collectBlock(s.Body, classScope)
	case *ast.FuncDef:
		sym := symbols.NewSymbol(s.Name, symbols.SymbolFunction, s)
		sym.IsStatic = s.IsStatic
		s.Symbol = sym
		c.define(scope, sym, s)

		funcScope := table.NewScope(table.ScopeFunc, scope)
		for _, arg := range s.Args {
			argSym := symbols.NewSymbol(arg.Name, symbols.SymbolVariable, arg)
			arg.Symbol = argSym
			c.define(funcScope, argSym, arg)
		}
		if s.Body != nil {
			s.Body.Scope = funcScope
			c.collectBlock(s.Body, funcScope)
		}
		// bodyless functions still define their arguments in funcScope, so
		// duplicate argument errors are reported; the scope is then dropped
	case *ast.VarDef:
		sym := symbols.NewSymbol(s.Name, symbols.SymbolVariable, s)
		s.Symbol = sym
		c.define(scope, sym, s)
	case *ast.IfStmt:
		c.collectLocalBlock(s.Then, scope)
		switch e := s.Else.(type) {
		case *ast.Block:
			c.collectLocalBlock(e, scope)
		case *ast.IfStmt:
			c.collectStmt(e, scope)
		}
	case *ast.WhileStmt:
		c.collectLocalBlock(s.Body, scope)
	}
}

// collectLocalBlock assigns a fresh local scope to a block that has no scope
// of its own yet.
func (c *collector) collectLocalBlock(block *ast.Block, parent *table.Scope) {
	if block.Scope == nil {
		block.Scope = table.NewScope(table.ScopeLocal, parent)
	}
	c.collectBlock(block, block.Scope)
}

func (c *collector) define(scope *table.Scope, sym *symbols.Symbol, def ast.Node) {
	if existing := scope.Define(sym); existing != nil {
		c.log.AddError(*def.Loc(), diagnostics.Redefinition(sym.Name))
	}
}
