package ast

import (
	"lumen/internal/semantics/symbols"
	"lumen/internal/source"
)

// ExternalStmt declares a region whose functions, variables and classes exist
// in the runtime but have no bodies or initialisers in source. The block does
// not open a scope of its own.
type ExternalStmt struct {
	Body *Block
	source.Location
}

func (e *ExternalStmt) INode()                {}
func (e *ExternalStmt) Stmt()                 {}
func (e *ExternalStmt) Loc() *source.Location { return &e.Location }

// ClassDef defines a class. Its body block gets a class scope.
type ClassDef struct {
	Name     string
	Body     *Block
	IsStatic bool
	Symbol   *symbols.Symbol // populated by the define-symbols pass
	source.Location
}

func (c *ClassDef) INode()                {}
func (c *ClassDef) Stmt()                 {}
func (c *ClassDef) Loc() *source.Location { return &c.Location }

// DefSymbol returns the symbol created for this definition.
func (c *ClassDef) DefSymbol() *symbols.Symbol { return c.Symbol }

// VarDef defines a variable. DeclaredType is nil for `var x = e` inference
// definitions. Value is nil for uninitialised variables until the default
// initialise pass fills it in. IsArg marks function arguments.
type VarDef struct {
	DeclaredType Expression // nil when inferred
	Name         string
	Value        Expression // nil when uninitialised
	IsStatic     bool
	IsArg        bool
	Symbol       *symbols.Symbol // populated by the define-symbols pass
	source.Location
}

func (v *VarDef) INode()                {}
func (v *VarDef) Stmt()                 {}
func (v *VarDef) Loc() *source.Location { return &v.Location }

// DefSymbol returns the symbol created for this definition.
func (v *VarDef) DefSymbol() *symbols.Symbol { return v.Symbol }

// FuncDef defines a function. A nil Body is only legal inside an external
// block. Arguments are defined inside the body's function scope.
type FuncDef struct {
	ReturnType Expression
	Name       string
	Args       []*VarDef
	Body       *Block // nil for external functions
	IsStatic   bool
	Symbol     *symbols.Symbol // populated by the define-symbols pass
	source.Location
}

func (f *FuncDef) INode()                {}
func (f *FuncDef) Stmt()                 {}
func (f *FuncDef) Loc() *source.Location { return &f.Location }

// DefSymbol returns the symbol created for this definition.
func (f *FuncDef) DefSymbol() *symbols.Symbol { return f.Symbol }

// IfStmt is a conditional. Else is nil, a *Block, or a nested *IfStmt.
type IfStmt struct {
	Test Expression
	Then *Block
	Else Statement
	source.Location
}

func (i *IfStmt) INode()                {}
func (i *IfStmt) Stmt()                 {}
func (i *IfStmt) Loc() *source.Location { return &i.Location }

// WhileStmt is a loop.
type WhileStmt struct {
	Test Expression
	Body *Block
	source.Location
}

func (w *WhileStmt) INode()                {}
func (w *WhileStmt) Stmt()                 {}
func (w *WhileStmt) Loc() *source.Location { return &w.Location }

// ReturnStmt returns from the enclosing function, with or without a value.
type ReturnStmt struct {
	Value Expression // nil for bare return
	source.Location
}

func (r *ReturnStmt) INode()                {}
func (r *ReturnStmt) Stmt()                 {}
func (r *ReturnStmt) Loc() *source.Location { return &r.Location }

// ExprStmt is an expression in statement position.
type ExprStmt struct {
	Value Expression
	source.Location
}

func (e *ExprStmt) INode()                {}
func (e *ExprStmt) Stmt()                 {}
func (e *ExprStmt) Loc() *source.Location { return &e.Location }
