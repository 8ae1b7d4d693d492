package ast

import (
	"lumen/internal/semantics/table"
	"lumen/internal/source"
	"lumen/internal/types"
)

// Node is implemented by every AST node.
type Node interface {
	INode()
	Loc() *source.Location
}

// Statement is a marker interface for all statements.
type Statement interface {
	Node
	Stmt()
}

// Expression is implemented by all expressions. Every expression carries the
// type the compute-types pass assigned to it.
type Expression interface {
	Node
	Expr()
	ComputedType() types.Type
	SetComputedType(types.Type)
}

// Module is one translation unit: the root of one AST.
type Module struct {
	Path string
	Body *Block
	source.Location
}

func (m *Module) INode()                {}
func (m *Module) Loc() *source.Location { return &m.Location }

// Block is a statement list. The define-symbols pass assigns its scope;
// external blocks share the enclosing scope instead of opening a new one.
type Block struct {
	Stmts []Statement
	Scope *table.Scope
	source.Location
}

func (b *Block) INode()                {}
func (b *Block) Stmt()                 {}
func (b *Block) Loc() *source.Location { return &b.Location }
