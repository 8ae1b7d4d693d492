package renamer_test

import (
	"testing"

	"lumen/internal/compiler"
	"lumen/internal/diagnostics"
	"lumen/internal/frontend/ast"
	"lumen/internal/semantics/renamer"
	"lumen/internal/semantics/table"
)

func compile(t *testing.T, src string) *ast.Module {
	t.Helper()
	log := diagnostics.NewLog()
	module, ok := compiler.CompileSource(log, "test.lum", src)
	if !ok {
		t.Fatalf("compile failed: %v", log.Errors())
	}
	return module
}

func TestReservedWordPrefixed(t *testing.T) {
	module := compile(t, "int delete")
	renamer.Rename(module, []string{"delete"}, false)
	root := module.Body.Scope
	if root.Local("delete") != nil {
		t.Error("the reserved name should be gone from the scope map")
	}
	sym := root.Local("_delete")
	if sym == nil || sym.FinalName != "_delete" {
		t.Fatal("the symbol should now live under _delete")
	}
	if sym.Name != "delete" {
		t.Error("the original name is kept on the symbol")
	}
}

func TestPrefixRepeatsUntilFree(t *testing.T) {
	module := compile(t, "int delete\nint _delete")
	renamer.Rename(module, []string{"delete"}, false)
	root := module.Body.Scope
	if root.Local("__delete") == nil {
		t.Errorf("colliding with _delete should prefix again, names: %v", root.Names())
	}
	if root.Local("_delete").Name != "_delete" {
		t.Error("the untouched _delete symbol should keep its slot")
	}
}

func TestUntouchedSymbolsKeepNames(t *testing.T) {
	module := compile(t, "int x\nvoid f() { }")
	renamer.Rename(module, []string{"delete"}, false)
	root := module.Body.Scope
	if root.Local("x").FinalName != "x" || root.Local("f").FinalName != "f" {
		t.Error("non-colliding symbols keep their names")
	}
}

func TestLocalsRenamed(t *testing.T) {
	module := compile(t, "void f() { int await }")
	renamer.Rename(module, []string{"await"}, false)
	fn := module.Body.Stmts[0].(*ast.FuncDef)
	if fn.Body.Scope.Local("_await") == nil {
		t.Error("locals collide with reserved words too")
	}
}

func TestOverloadMangling(t *testing.T) {
	module := compile(t, `external { void print(int x) void print(float x) }
void main() { print(1) }`)
	renamer.Rename(module, nil, true)
	set := module.Body.Scope.Local("print")
	if set == nil || !set.IsOverloaded() {
		t.Fatal("expected the overload set")
	}
	if set.Overloads[0].FinalName != "print_Int" {
		t.Errorf("first overload final name = %q, want print_Int", set.Overloads[0].FinalName)
	}
	if set.Overloads[1].FinalName != "print_Float" {
		t.Errorf("second overload final name = %q, want print_Float", set.Overloads[1].FinalName)
	}
}

func TestOverloadManglingMultiWordTypes(t *testing.T) {
	module := compile(t, `external { void draw(list<float> xs, bool fill) void draw(int x) }`)
	renamer.Rename(module, nil, true)
	set := module.Body.Scope.Local("draw")
	if set.Overloads[0].FinalName != "draw_ListFloatBool" {
		t.Errorf("final name = %q, want draw_ListFloatBool", set.Overloads[0].FinalName)
	}
	if set.Overloads[1].FinalName != "draw_Int" {
		t.Errorf("final name = %q, want draw_Int", set.Overloads[1].FinalName)
	}
}

func TestOverloadsUntouchedWithoutFlag(t *testing.T) {
	module := compile(t, `external { void print(int x) void print(float x) }`)
	renamer.Rename(module, nil, false)
	set := module.Body.Scope.Local("print")
	for _, member := range set.Overloads {
		if member.FinalName != "print" {
			t.Errorf("member final name = %q, want print", member.FinalName)
		}
	}
}

func TestExternalArgsRenamed(t *testing.T) {
	module := compile(t, "external { void f(int new) }")
	renamer.Rename(module, []string{"new"}, false)
	ext := module.Body.Stmts[0].(*ast.ExternalStmt)
	fn := ext.Body.Stmts[0].(*ast.FuncDef)
	if fn.Args[0].Symbol.FinalName != "_new" {
		t.Errorf("external argument final name = %q, want _new", fn.Args[0].Symbol.FinalName)
	}
}

func TestLookupsStayConsistentAfterRename(t *testing.T) {
	module := compile(t, "int case\nint other")
	renamer.Rename(module, []string{"case"}, false)
	root := module.Body.Scope
	sym := root.Lookup("_case", table.LookupNormal)
	if sym == nil || sym.Name != "case" {
		t.Error("renamed symbols resolve under their final name")
	}
	if root.Lookup("case", table.LookupNormal) != nil {
		t.Error("the old key must not resolve any more")
	}
}
