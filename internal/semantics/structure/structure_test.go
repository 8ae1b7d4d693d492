package structure

import (
	"strings"
	"testing"

	"lumen/internal/diagnostics"
	"lumen/internal/frontend/lexer"
	"lumen/internal/frontend/parser"
)

func check(t *testing.T, src string) *diagnostics.Log {
	t.Helper()
	log := diagnostics.NewLog()
	toks := lexer.New("test.lum", src, log).Tokenize()
	module := parser.Parse(toks, "test.lum", log)
	if log.HasErrors() {
		t.Fatalf("parse errors: %v", log.Errors())
	}
	Check(log, module)
	return log
}

func expectError(t *testing.T, log *diagnostics.Log, fragment string) {
	t.Helper()
	for _, err := range log.Errors() {
		if strings.Contains(err, fragment) {
			return
		}
	}
	t.Errorf("no error containing %q, got %v", fragment, log.Errors())
}

func TestValidProgram(t *testing.T) {
	log := check(t, `
external { void print(int x) }
class A { int x
void m() { print(1) } }
int g
void main() { int y = 2 if y > 1 { print(y) } while y > 0 { y = y - 1 } return }
`)
	if log.HasErrors() {
		t.Errorf("valid program reported errors: %v", log.Errors())
	}
}

func TestModuleLevelExpression(t *testing.T) {
	log := check(t, "print(1)")
	expectError(t, log, "expression statement is not allowed here")
}

func TestModuleLevelVarInit(t *testing.T) {
	log := check(t, "int x = 1")
	expectError(t, log, "variables at this level cannot be initialised")
}

func TestExternalVarInit(t *testing.T) {
	log := check(t, "external { int x = 1 }")
	expectError(t, log, "variables at this level cannot be initialised")
}

func TestClassVarInitAllowed(t *testing.T) {
	log := check(t, "class A { int x = 1 }")
	if log.HasErrors() {
		t.Errorf("class member initialisers are allowed, got %v", log.Errors())
	}
}

func TestExternalFuncWithBody(t *testing.T) {
	log := check(t, "external { void f() { } }")
	expectError(t, log, "functions inside an external block cannot have a body")
}

func TestFuncWithoutBody(t *testing.T) {
	log := check(t, "void f()")
	expectError(t, log, "functions outside an external block must have a body")
}

func TestArgDefaultValue(t *testing.T) {
	log := check(t, "void f(int x = 3) { }")
	expectError(t, log, "arguments cannot have default values")
}

func TestClassInsideFunction(t *testing.T) {
	log := check(t, "void f() { class A { } }")
	expectError(t, log, "class definition is not allowed here")
}

func TestNestedExternal(t *testing.T) {
	log := check(t, "external { external { } }")
	expectError(t, log, "external block is not allowed here")
}

func TestReturnAtModuleLevel(t *testing.T) {
	log := check(t, "return")
	expectError(t, log, "return statement is not allowed here")
}

func TestIfInsideClass(t *testing.T) {
	log := check(t, "class A { if x { } }")
	expectError(t, log, "if statement is not allowed here")
}

// inExternal persists into nested constructs even though inClass resets
func TestExternalPersistsIntoClass(t *testing.T) {
	log := check(t, "external { class A { int x = 1 } }")
	expectError(t, log, "variables at this level cannot be initialised")
}

func TestExternalClassMethodHasNoBody(t *testing.T) {
	log := check(t, "external { class A { void m() { } } }")
	expectError(t, log, "functions inside an external block cannot have a body")
}

// all structural violations are collected, none aborts the pass
func TestAllViolationsCollected(t *testing.T) {
	log := check(t, "int x = 1\nvoid f()\nreturn")
	if got := log.ErrorCount(); got != 3 {
		t.Errorf("expected 3 errors, got %d: %v", got, log.Errors())
	}
}
