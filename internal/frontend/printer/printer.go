package printer

import (
	"fmt"
	"io"
	"strings"

	"lumen/internal/frontend/ast"
	"lumen/internal/semantics/symbols"
	"lumen/internal/types"
)

// The printer renders an AST as an s-expression tree, one node per line,
// with the semantic decorations the passes wrote: computed types, resolved
// symbol names, constructor flags. The output is deterministic, which makes
// it usable both for debugging and for comparing two runs of the pipeline.

// Fprint writes the tree to w.
func Fprint(w io.Writer, module *ast.Module) {
	p := &printer{w: w}
	p.node(module, 0)
}

// Sprint renders the tree to a string.
func Sprint(module *ast.Module) string {
	var sb strings.Builder
	Fprint(&sb, module)
	return sb.String()
}

type printer struct {
	w io.Writer
}

func (p *printer) line(depth int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *printer) node(n ast.Node, depth int) {
	switch v := n.(type) {
	case *ast.Module:
		p.line(depth, "(module %s", v.Path)
		p.block(v.Body, depth+1)
		p.line(depth, ")")
	case *ast.ExternalStmt:
		p.line(depth, "(external")
		p.block(v.Body, depth+1)
		p.line(depth, ")")
	case *ast.ClassDef:
		p.line(depth, "(class %s%s", finalName(v.Symbol, v.Name), staticSuffix(v.IsStatic))
		p.block(v.Body, depth+1)
		p.line(depth, ")")
	case *ast.FuncDef:
		p.line(depth, "(func %s%s", finalName(v.Symbol, v.Name), staticSuffix(v.IsStatic))
		p.expr(v.ReturnType, depth+1)
		for _, arg := range v.Args {
			p.node(arg, depth+1)
		}
		if v.Body != nil {
			p.block(v.Body, depth+1)
		}
		p.line(depth, ")")
	case *ast.VarDef:
		kind := "var"
		if v.IsArg {
			kind = "arg"
		}
		p.line(depth, "(%s %s %s", kind, finalName(v.Symbol, v.Name), symbolType(v))
		if v.DeclaredType != nil {
			p.expr(v.DeclaredType, depth+1)
		}
		if v.Value != nil {
			p.expr(v.Value, depth+1)
		}
		p.line(depth, ")")
	case *ast.IfStmt:
		p.line(depth, "(if")
		p.expr(v.Test, depth+1)
		p.block(v.Then, depth+1)
		if v.Else != nil {
			p.node(v.Else, depth+1)
		}
		p.line(depth, ")")
	case *ast.WhileStmt:
		p.line(depth, "(while")
		p.expr(v.Test, depth+1)
		p.block(v.Body, depth+1)
		p.line(depth, ")")
	case *ast.ReturnStmt:
		if v.Value == nil {
			p.line(depth, "(return)")
			return
		}
		p.line(depth, "(return")
		p.expr(v.Value, depth+1)
		p.line(depth, ")")
	case *ast.ExprStmt:
		p.line(depth, "(stmt")
		p.expr(v.Value, depth+1)
		p.line(depth, ")")
	case *ast.Block:
		p.block(v, depth)
	}
}

func (p *printer) block(b *ast.Block, depth int) {
	p.line(depth, "(block")
	for _, stmt := range b.Stmts {
		p.node(stmt, depth+1)
	}
	p.line(depth, ")")
}

func (p *printer) expr(e ast.Expression, depth int) {
	t := ": " + e.ComputedType().String()
	switch v := e.(type) {
	case *ast.IntExpr:
		p.line(depth, "(int %d%s)", v.Value, t)
	case *ast.FloatExpr:
		p.line(depth, "(float %v%s)", v.Value, t)
	case *ast.StringExpr:
		p.line(depth, "(string %q%s)", v.Value, t)
	case *ast.CharExpr:
		p.line(depth, "(char %q%s)", v.Value, t)
	case *ast.BoolExpr:
		p.line(depth, "(bool %v%s)", v.Value, t)
	case *ast.NullExpr:
		p.line(depth, "(null%s)", t)
	case *ast.ThisExpr:
		p.line(depth, "(this%s)", t)
	case *ast.IdentExpr:
		p.line(depth, "(ident %s%s)", finalName(v.Symbol, v.Name), t)
	case *ast.MemberExpr:
		op := "member"
		if v.IsSafe {
			op = "safe-member"
		}
		p.line(depth, "(%s %s%s", op, finalName(v.Symbol, v.Name), t)
		p.expr(v.Value, depth+1)
		p.line(depth, ")")
	case *ast.IndexExpr:
		p.line(depth, "(index%s", t)
		p.expr(v.Value, depth+1)
		p.expr(v.Index, depth+1)
		p.line(depth, ")")
	case *ast.UnaryExpr:
		p.line(depth, "(unary %q%s", string(v.Op), t)
		p.expr(v.Value, depth+1)
		p.line(depth, ")")
	case *ast.BinaryExpr:
		p.line(depth, "(binary %q%s", string(v.Op), t)
		p.expr(v.Left, depth+1)
		p.expr(v.Right, depth+1)
		p.line(depth, ")")
	case *ast.CastExpr:
		kind := "cast"
		if v.Target == nil {
			kind = "implicit-cast"
		}
		p.line(depth, "(%s%s", kind, t)
		if v.Target != nil {
			p.expr(v.Target, depth+1)
		}
		p.expr(v.Value, depth+1)
		p.line(depth, ")")
	case *ast.CallExpr:
		kind := "call"
		if v.IsCtor {
			kind = "construct"
		}
		p.line(depth, "(%s%s", kind, t)
		p.expr(v.Fn, depth+1)
		for _, arg := range v.Args {
			p.expr(arg, depth+1)
		}
		p.line(depth, ")")
	case *ast.ListExpr:
		p.line(depth, "(list%s", t)
		for _, item := range v.Items {
			p.expr(item, depth+1)
		}
		p.line(depth, ")")
	case *ast.TypeExpr:
		p.line(depth, "(type %s%s)", v.Name, t)
	case *ast.ParamExpr:
		p.line(depth, "(param %s%s", v.Base.Name, t)
		for _, param := range v.Params {
			p.expr(param, depth+1)
		}
		p.line(depth, ")")
	case *ast.NullableExpr:
		p.line(depth, "(nullable%s", t)
		p.expr(v.Value, depth+1)
		p.line(depth, ")")
	}
}

func finalName(sym *symbols.Symbol, name string) string {
	if sym != nil && sym.FinalName != "" {
		return sym.FinalName
	}
	return name
}

func staticSuffix(isStatic bool) string {
	if isStatic {
		return " static"
	}
	return ""
}

func symbolType(v *ast.VarDef) string {
	if v.Symbol == nil {
		return types.TypeError.String()
	}
	return v.Symbol.Type.String()
}
