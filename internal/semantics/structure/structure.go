package structure

import (
	"lumen/internal/diagnostics"
	"lumen/internal/frontend/ast"
)

// The structural check validates which statements may appear in which
// syntactic context before any symbols exist. All violations are collected;
// none is fatal on its own, so the user sees every structural error at once.

// context is one frame of the context stack. Entering a class, function body
// or external block derives a new frame by resetting inClass and inFunction,
// then setting the flag for the entered construct. inExternal, once set, is
// never cleared.
type context struct {
	inClass    bool
	inExternal bool
	inFunction bool
}

type checker struct {
	log *diagnostics.Log
}

// Check validates the statement structure of a module.
func Check(log *diagnostics.Log, module *ast.Module) {
	c := &checker{log: log}
	c.checkBlock(module.Body, context{})
}

func (c *checker) checkBlock(block *ast.Block, ctx context) {
	for _, stmt := range block.Stmts {
		c.checkStmt(stmt, ctx)
	}
}

func (c *checker) checkStmt(stmt ast.Statement, ctx context) {
	switch s := stmt.(type) {
	case *ast.ExternalStmt:
		if ctx.inClass || ctx.inFunction || ctx.inExternal {
			c.log.AddError(*s.Loc(), diagnostics.StmtNotAllowed("external block"))
		}
		c.checkBlock(s.Body, context{inExternal: true})
	case *ast.ClassDef:
		if ctx.inFunction {
			c.log.AddError(*s.Loc(), diagnostics.StmtNotAllowed("class definition"))
		}
		c.checkBlock(s.Body, context{inClass: true, inExternal: ctx.inExternal})
	case *ast.FuncDef:
		if ctx.inFunction {
			c.log.AddError(*s.Loc(), diagnostics.StmtNotAllowed("function definition"))
		}
		for _, arg := range s.Args {
			if arg.Value != nil {
				c.log.AddError(*arg.Loc(), diagnostics.ArgDefaultValue())
			}
		}
		if ctx.inExternal && s.Body != nil {
			c.log.AddError(*s.Loc(), diagnostics.ExternalFuncHasBody())
		}
		if !ctx.inExternal && s.Body == nil {
			c.log.AddError(*s.Loc(), diagnostics.FuncMissingBody())
		}
		if s.Body != nil {
			c.checkBlock(s.Body, context{inFunction: true, inExternal: ctx.inExternal})
		}
	case *ast.VarDef:
		atModuleLevel := !ctx.inClass && !ctx.inFunction && !ctx.inExternal
		if s.Value != nil && (atModuleLevel || ctx.inExternal) {
			c.log.AddError(*s.Loc(), diagnostics.VarInitNotAllowed())
		}
	case *ast.IfStmt:
		if !ctx.inFunction {
			c.log.AddError(*s.Loc(), diagnostics.StmtNotAllowed("if statement"))
		}
		c.checkBlock(s.Then, ctx)
		c.checkElse(s.Else, ctx)
	case *ast.WhileStmt:
		if !ctx.inFunction {
			c.log.AddError(*s.Loc(), diagnostics.StmtNotAllowed("while statement"))
		}
		c.checkBlock(s.Body, ctx)
	case *ast.ReturnStmt:
		if !ctx.inFunction {
			c.log.AddError(*s.Loc(), diagnostics.StmtNotAllowed("return statement"))
		}
	case *ast.ExprStmt:
		if !ctx.inFunction {
			c.log.AddError(*s.Loc(), diagnostics.StmtNotAllowed("expression statement"))
		}
	}
}

func (c *checker) checkElse(stmt ast.Statement, ctx context) {
	switch s := stmt.(type) {
	case nil:
	case *ast.Block:
		c.checkBlock(s, ctx)
	case *ast.IfStmt:
		c.checkStmt(s, ctx)
	}
}
