package compiler

import (
	"lumen/internal/diagnostics"
	"lumen/internal/frontend/ast"
	"lumen/internal/frontend/lexer"
	"lumen/internal/frontend/parser"
	"lumen/internal/phase"
	"lumen/internal/semantics/collector"
	"lumen/internal/semantics/controlflow"
	"lumen/internal/semantics/defaults"
	"lumen/internal/semantics/resolver"
	"lumen/internal/semantics/structure"
	"lumen/internal/semantics/typechecker"
)

// The pipeline runs the semantic passes in fixed order over one module.
// Every pass runs to completion so the user sees all errors of that stage
// together; a pass that left errors behind stops the pipeline, because the
// next pass relies on the decorations a clean run deposits.

type pass struct {
	phase phase.Phase
	run   func(*diagnostics.Log, *ast.Module)
}

var passes = []pass{
	{phase.PhaseStructureChecked, structure.Check},
	{phase.PhaseCollected, collector.Collect},
	{phase.PhaseResolved, resolver.Resolve},
	{phase.PhaseTypeChecked, typechecker.Check},
	{phase.PhaseFlowValidated, controlflow.Validate},
	{phase.PhaseInitialised, func(log *diagnostics.Log, m *ast.Module) { defaults.Run(m) }},
}

// Compile runs the semantic pipeline over a parsed module. It returns true
// when the module checked clean; warnings alone do not fail compilation.
func Compile(log *diagnostics.Log, module *ast.Module) bool {
	current := phase.PhaseNotStarted
	for _, p := range passes {
		if phase.Prerequisites[p.phase] != current {
			return false
		}
		p.run(log, module)
		if log.HasErrors() {
			return false
		}
		current = p.phase
	}
	return true
}

// CompileSource lexes, parses and compiles one source text. The module is
// returned even when compilation fails, as far as it got.
func CompileSource(log *diagnostics.Log, path, src string) (*ast.Module, bool) {
	toks := lexer.New(path, src, log).Tokenize()
	module := parser.Parse(toks, path, log)
	if log.HasErrors() {
		return module, false
	}
	return module, Compile(log, module)
}
