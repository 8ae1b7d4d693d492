package compiler

import (
	"strings"
	"testing"

	"lumen/internal/diagnostics"
	"lumen/internal/frontend/ast"
	"lumen/internal/frontend/printer"
	"lumen/internal/types"
)

func compile(t *testing.T, src string) (*ast.Module, *diagnostics.Log, bool) {
	t.Helper()
	log := diagnostics.NewLog()
	module, ok := CompileSource(log, "test.lum", src)
	return module, log, ok
}

func expectEntry(t *testing.T, entries []string, fragment string) {
	t.Helper()
	for _, entry := range entries {
		if strings.Contains(entry, fragment) {
			return
		}
	}
	t.Errorf("no entry containing %q, got %v", fragment, entries)
}

// Overload selection: the two call sites resolve to different overloads and
// neither argument is converted.
func TestScenarioOverloadSelection(t *testing.T) {
	module, log, ok := compile(t, "external { void print(int x) void print(float x) }\nvoid main() { print(1) print(1.0) }\n")
	if !ok {
		t.Fatalf("expected 0 errors, got %v", log.Errors())
	}
	main := module.Body.Stmts[1].(*ast.FuncDef)
	first := main.Body.Stmts[0].(*ast.ExprStmt).Value.(*ast.CallExpr)
	second := main.Body.Stmts[1].(*ast.ExprStmt).Value.(*ast.CallExpr)
	if first.Fn.(*ast.IdentExpr).Symbol == second.Fn.(*ast.IdentExpr).Symbol {
		t.Error("call sites should resolve to different overloads")
	}
	if _, ok := first.Args[0].(*ast.CastExpr); ok {
		t.Error("no cast at the int site")
	}
	if _, ok := second.Args[0].(*ast.CastExpr); ok {
		t.Error("no cast at the float site")
	}
}

// Implicit int to float conversion in an argument position.
func TestScenarioImplicitConversion(t *testing.T) {
	module, log, ok := compile(t, "external { void f(float x) }\nvoid main() { f(3) }\n")
	if !ok {
		t.Fatalf("expected 0 errors, got %v", log.Errors())
	}
	main := module.Body.Stmts[1].(*ast.FuncDef)
	call := main.Body.Stmts[0].(*ast.ExprStmt).Value.(*ast.CallExpr)
	cast, isCast := call.Args[0].(*ast.CastExpr)
	if !isCast || !cast.ComputedType().Equals(types.TypeFloat) {
		t.Error("the argument should be wrapped in a cast to float")
	}
}

// Nullable dereference: the null test narrows a from A? to A in the branch.
func TestScenarioNullableDereference(t *testing.T) {
	_, log, ok := compile(t, "class A { int x }\nvoid main() { A? a = null if a != null { int y = a.x } }\n")
	if !ok {
		t.Fatalf("expected 0 errors, got %v", log.Errors())
	}
}

// Redefinition halts the pipeline after the define-symbols pass.
func TestScenarioRedefinition(t *testing.T) {
	_, log, ok := compile(t, "void f() {} int f\n")
	if ok {
		t.Fatal("expected compilation to fail")
	}
	if log.ErrorCount() != 1 {
		t.Fatalf("expected exactly 1 error, got %v", log.Errors())
	}
	expectEntry(t, log.Errors(), "redefinition of f in the same scope")
}

// Dead code after a return warns; a non-void function with no return errors.
func TestScenarioDeadCodeAndMissingReturn(t *testing.T) {
	_, log, ok := compile(t, "int main() { return 1 int x = 2 }\nint f() {}\n")
	if ok {
		t.Fatal("expected compilation to fail")
	}
	if log.WarningCount() != 1 {
		t.Errorf("expected 1 warning, got %v", log.Warnings())
	}
	expectEntry(t, log.Warnings(), "dead code")
	if log.ErrorCount() != 1 {
		t.Errorf("expected 1 error, got %v", log.Errors())
	}
	expectEntry(t, log.Errors(), "not all control paths return a value")
}

// Constructor detection on a zero-argument class call.
func TestScenarioConstructorCall(t *testing.T) {
	module, log, ok := compile(t, "class V { int x }\nvoid main() { V v = V() }\n")
	if !ok {
		t.Fatalf("expected 0 errors, got %v", log.Errors())
	}
	main := module.Body.Stmts[1].(*ast.FuncDef)
	call := main.Body.Stmts[0].(*ast.VarDef).Value.(*ast.CallExpr)
	if !call.IsCtor {
		t.Error("V() should be flagged as a constructor call")
	}
	if class, ok := call.ComputedType().(*types.ClassType); !ok || class.Name != "V" {
		t.Errorf("V() type = %s, want class V", call.ComputedType())
	}
}

const cleanProgram = `external { void print(int x) void print(string s) }
class Point {
  int x
  int y
  int sum() { return this.x + this.y }
  static Point origin() { return Point() }
}
void main() {
  Point p = Point()
  p.x = 1
  p.y = 2
  print(p.sum())
  list<int> xs = [1, 2, 3]
  int total
  int i
  while i < 3 { total = total + xs[i] i = i + 1 }
  print(total)
  string? name = null
  print(name ?? "anonymous")
}
`

func TestCleanProgramCompiles(t *testing.T) {
	_, log, ok := compile(t, cleanProgram)
	if !ok {
		t.Fatalf("expected clean compile, got %v", log.Errors())
	}
}

// After the pipeline: every block has a scope, every definition a symbol.
func TestInvariantScopesAndSymbols(t *testing.T) {
	module, _, ok := compile(t, cleanProgram)
	if !ok {
		t.Fatal("compile failed")
	}
	ast.Inspect(module, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.Block:
			if v.Scope == nil {
				t.Errorf("block at %s has no scope", v.Loc())
			}
		case *ast.ClassDef:
			if v.Symbol == nil {
				t.Errorf("class %s has no symbol", v.Name)
			}
		case *ast.FuncDef:
			if v.Symbol == nil {
				t.Errorf("func %s has no symbol", v.Name)
			}
		case *ast.VarDef:
			if v.Symbol == nil {
				t.Errorf("var %s has no symbol", v.Name)
			}
		}
		return true
	})
}

// After the pipeline: no computed type is the overloaded marker, and every
// identifier or member carries a resolved symbol.
func TestInvariantNoOverloadedTypesRemain(t *testing.T) {
	module, _, ok := compile(t, cleanProgram)
	if !ok {
		t.Fatal("compile failed")
	}
	ast.Inspect(module, func(n ast.Node) bool {
		if e, ok := n.(ast.Expression); ok {
			if types.IsOverloaded(e.ComputedType()) {
				t.Errorf("expression at %s still has the overloaded marker", e.Loc())
			}
		}
		switch v := n.(type) {
		case *ast.IdentExpr:
			if v.Symbol == nil {
				t.Errorf("identifier %s at %s is unresolved", v.Name, v.Loc())
			}
			if v.Symbol != nil && v.Symbol.IsOverloaded() {
				t.Errorf("identifier %s still points at the overload set", v.Name)
			}
		case *ast.MemberExpr:
			if v.Symbol == nil {
				t.Errorf("member %s at %s is unresolved", v.Name, v.Loc())
			}
		}
		return true
	})
}

// After the pipeline: every non-argument, non-external variable has a value.
func TestInvariantDefaultsFilled(t *testing.T) {
	module, _, ok := compile(t, cleanProgram)
	if !ok {
		t.Fatal("compile failed")
	}
	var walk func(n ast.Node, inExternal bool)
	walk = func(n ast.Node, inExternal bool) {
		if ext, ok := n.(*ast.ExternalStmt); ok {
			walk(ext.Body, true)
			return
		}
		if def, ok := n.(*ast.VarDef); ok {
			if def.Value == nil && !def.IsArg && !inExternal {
				t.Errorf("variable %s at %s has no initialiser", def.Name, def.Loc())
			}
		}
		for _, child := range ast.Children(n) {
			walk(child, inExternal)
		}
	}
	walk(module, false)
}

// Compiling the same input twice produces an identical decoration set.
func TestInvariantDeterministic(t *testing.T) {
	first, _, ok := compile(t, cleanProgram)
	if !ok {
		t.Fatal("first compile failed")
	}
	second, _, ok := compile(t, cleanProgram)
	if !ok {
		t.Fatal("second compile failed")
	}
	a := printer.Sprint(first)
	b := printer.Sprint(second)
	if a != b {
		t.Error("two runs over the same input should produce identical trees")
	}
}

// Structural errors stop the pipeline before symbols are defined.
func TestStructuralErrorsHaltPipeline(t *testing.T) {
	module, log, ok := compile(t, "int x = 1")
	if ok {
		t.Fatal("expected failure")
	}
	expectEntry(t, log.Errors(), "variables at this level cannot be initialised")
	if module.Body.Scope != nil {
		t.Error("the define-symbols pass must not have run")
	}
}

// Each pass collects all of its errors before the pipeline stops.
func TestErrorsOfOnePassAllReported(t *testing.T) {
	_, log, _ := compile(t, "void f() { x = 1\ny = 2 }")
	expectEntry(t, log.Errors(), "x is not defined")
	expectEntry(t, log.Errors(), "y is not defined")
}

func TestDiagnosticFormat(t *testing.T) {
	_, log, _ := compile(t, "void f() {\n  z = 1\n}")
	errs := log.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs[0] != "test.lum:2:3: error: z is not defined" {
		t.Errorf("unexpected format: %q", errs[0])
	}
}

func TestWarningsDoNotFailCompilation(t *testing.T) {
	_, log, ok := compile(t, "int f() { return 1 int x = 2 }")
	if !ok {
		t.Fatalf("warnings alone must not fail compilation: %v", log.Errors())
	}
	if log.WarningCount() != 1 {
		t.Errorf("expected the dead code warning, got %v", log.Warnings())
	}
}

func TestParseErrorsSkipSemantics(t *testing.T) {
	_, log, ok := compile(t, "void f( { }")
	if ok {
		t.Fatal("expected failure")
	}
	if !log.HasErrors() {
		t.Fatal("expected parse errors")
	}
}
