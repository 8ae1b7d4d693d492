package renamer

import (
	"strings"

	"lumen/internal/frontend/ast"
	"lumen/internal/semantics/symbols"
	"lumen/internal/semantics/table"
	"lumen/internal/types"
)

// The rename pass runs after checking, before code generation. It moves
// symbols off a caller-provided reserved-word set (typically the target
// language's keywords) by prefixing underscores until the name is free, and
// optionally gives each member of an overload set a distinct final name
// derived from its argument types. Scope maps are updated in place so
// lookups stay consistent. The pass never reports diagnostics.

type renamer struct {
	reserved        map[string]bool
	renameOverloads bool
	seen            map[*table.Scope]bool
}

// Rename mangles the module's symbol names. reserved lists names the target
// language claims; renameOverloads also disambiguates overload members.
func Rename(module *ast.Module, reserved []string, renameOverloads bool) {
	r := &renamer{
		reserved:        make(map[string]bool, len(reserved)),
		renameOverloads: renameOverloads,
		seen:            make(map[*table.Scope]bool),
	}
	for _, word := range reserved {
		r.reserved[word] = true
	}
	ast.Inspect(module, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.Block:
			if v.Scope != nil && !r.seen[v.Scope] {
				r.seen[v.Scope] = true
				r.renameScope(v.Scope)
			}
		case *ast.FuncDef:
			if v.Body == nil {
				// bodyless functions keep their arguments in a scope
				// the tree no longer reaches
				r.renameArgs(v.Args)
			}
		}
		return true
	})
}

func (r *renamer) renameScope(scope *table.Scope) {
	for _, name := range scope.Names() {
		sym := scope.Local(name)
		if sym == nil {
			continue
		}
		final := name
		for r.reserved[final] || (scope.Local(final) != nil && scope.Local(final) != sym) {
			final = "_" + final
		}
		if final != name {
			scope.Rename(name, final)
		}
		sym.FinalName = final

		if sym.IsOverloaded() && r.renameOverloads {
			for _, member := range sym.Overloads {
				mangled := final + "_" + mangleArgTypes(member)
				for r.reserved[mangled] || scope.Local(mangled) != nil {
					mangled = "_" + mangled
				}
				member.FinalName = mangled
			}
		}
	}
}

func (r *renamer) renameArgs(args []*ast.VarDef) {
	taken := make(map[string]bool, len(args))
	for _, arg := range args {
		if arg.Symbol == nil {
			continue
		}
		final := arg.Symbol.Name
		for r.reserved[final] || taken[final] {
			final = "_" + final
		}
		taken[final] = true
		arg.Symbol.FinalName = final
	}
}

// mangleArgTypes builds the overload suffix: every word of every argument
// type's spelling, title-cased and concatenated. print(int) becomes
// print_Int; draw(list<float>, bool) becomes draw_ListFloatBool.
func mangleArgTypes(member *symbols.Symbol) string {
	fnType, ok := member.Type.(*types.FuncType)
	if !ok {
		return ""
	}
	var sb strings.Builder
	for _, arg := range fnType.Args {
		for _, word := range splitWords(arg.String()) {
			sb.WriteString(strings.ToUpper(word[:1]))
			sb.WriteString(word[1:])
		}
	}
	return sb.String()
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i := 0; i < len(s); i++ {
		ch := s[i]
		isWord := ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
		if isWord && start < 0 {
			start = i
		}
		if !isWord && start >= 0 {
			words = append(words, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}
