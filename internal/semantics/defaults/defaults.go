package defaults

import (
	"lumen/internal/frontend/ast"
	"lumen/internal/types"
)

// The default-initialise pass fills in an initialiser for every variable
// definition that has none, so the back-end never sees an undefined value:
// false, 0, 0.0 and "" for the primitives, null for everything else.
// External variables and function arguments are left alone. The pass never
// reports diagnostics.

// Run fills in default initialisers across a module.
func Run(module *ast.Module) {
	fillBlock(module.Body)
}

func fillBlock(block *ast.Block) {
	for _, stmt := range block.Stmts {
		fillStmt(stmt)
	}
}

func fillStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExternalStmt:
		// external variables have no value in source
	case *ast.ClassDef:
		fillBlock(s.Body)
	case *ast.FuncDef:
		if s.Body != nil {
			fillBlock(s.Body)
		}
	case *ast.VarDef:
		if s.Value == nil && !s.IsArg {
			s.Value = defaultValue(s)
		}
	case *ast.IfStmt:
		fillBlock(s.Then)
		switch e := s.Else.(type) {
		case *ast.Block:
			fillBlock(e)
		case *ast.IfStmt:
			fillStmt(e)
		}
	case *ast.WhileStmt:
		fillBlock(s.Body)
	}
}

// defaultValue synthesises the literal for an uninitialised definition. The
// literal inherits the definition's location and is pre-typed with the
// declared type.
func defaultValue(def *ast.VarDef) ast.Expression {
	t := types.TypeError
	if def.Symbol != nil {
		t = def.Symbol.Type
	}
	var value ast.Expression
	switch {
	case t.Equals(types.TypeBool):
		value = &ast.BoolExpr{Value: false, Location: def.Location}
	case t.Equals(types.TypeInt):
		value = &ast.IntExpr{Value: 0, Location: def.Location}
	case t.Equals(types.TypeFloat):
		value = &ast.FloatExpr{Value: 0.0, Location: def.Location}
	case t.Equals(types.TypeString):
		value = &ast.StringExpr{Value: "", Location: def.Location}
	default:
		value = &ast.NullExpr{Location: def.Location}
	}
	value.SetComputedType(t)
	return value
}
