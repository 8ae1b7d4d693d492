package symbols

import (
	"lumen/internal/source"
	"lumen/internal/types"
)

// SymbolKind distinguishes what a name is bound to.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolClass
	SymbolOverloadedFunction
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolClass:
		return "class"
	case SymbolOverloadedFunction:
		return "overloaded function"
	default:
		return "unknown"
	}
}

// Node is the defining AST node of a symbol. The symbols package sits below
// the ast package, so the node is held behind this interface; passes assert
// it back to the concrete definition when they need more than a location.
type Node interface {
	Loc() *source.Location
}

// Symbol is the resolved identity of a declaration: it binds a name to a type
// and a defining node. Overloaded symbols have no defining node of their own;
// they carry their members instead. FinalName starts equal to Name and is
// rewritten by the rename pass.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	IsStatic  bool
	Def       Node // nil for generated and overloaded symbols
	Type      types.Type
	FinalName string
	Overloads []*Symbol // members, only for SymbolOverloadedFunction
}

// NewSymbol creates a symbol with the error type. The resolver fills in the
// real type once signatures are evaluated.
func NewSymbol(name string, kind SymbolKind, def Node) *Symbol {
	return &Symbol{
		Name:      name,
		Kind:      kind,
		Def:       def,
		Type:      types.TypeError,
		FinalName: name,
	}
}

// NewOverloadSet folds two same-named function symbols into one overloaded
// symbol. Its type is the overloaded marker and stays that way.
func NewOverloadSet(first, second *Symbol) *Symbol {
	return &Symbol{
		Name:      first.Name,
		Kind:      SymbolOverloadedFunction,
		Type:      types.TypeOverloaded,
		FinalName: first.Name,
		Overloads: []*Symbol{first, second},
	}
}

// IsFunction reports whether the symbol is a single (non-overloaded) function.
func (s *Symbol) IsFunction() bool {
	return s.Kind == SymbolFunction
}

// IsOverloaded reports whether the symbol is an overload set.
func (s *Symbol) IsOverloaded() bool {
	return s.Kind == SymbolOverloadedFunction
}
