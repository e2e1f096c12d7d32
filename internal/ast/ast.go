// Package ast defines the recursive sum-of-products abstract syntax tree
// produced by the parser and consumed by every later pass: the type
// checker attaches inferred types, the unreachable-code and
// definite-assignment analyzers read it without mutation, and the
// interpreter walks it.
package ast

import (
	"github.com/zoltan-nz/whilelang/internal/token"
	"github.com/zoltan-nz/whilelang/internal/types"
)

// Node is the base interface every AST node implements: a source span for
// diagnostics, and a String() that dumps the subtree for --dump-ast.
type Node interface {
	Span() token.Span
	String() string
}

// Expression is any node that produces a value. After type checking every
// Expression has exactly one attached type; before
// that, GetType returns nil.
type Expression interface {
	Node
	exprNode()
	GetType() *types.Type
	SetType(*types.Type)
}

// LVal is the subset of expressions permitted as an assignment target:
// variable, index-of, record-access.
type LVal interface {
	Expression
	lvalNode()
}

// Statement is a node that performs an action but produces no value.
type Statement interface {
	Node
	stmtNode()
}

// Declaration is a top-level type-alias or method declaration.
type Declaration interface {
	Node
	declNode()
}

// Program is the root of the AST: an ordered sequence of declarations.
type Program struct {
	Declarations []Declaration
}

func (p *Program) Span() token.Span {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].Span()
	}
	return token.Span{}
}

func (p *Program) String() string {
	out := ""
	for i, d := range p.Declarations {
		if i > 0 {
			out += "\n\n"
		}
		out += d.String()
	}
	return out
}

// base carries the fields common to every expression node: its source span
// and, once the type checker has run, its inferred type. There are exactly
// two attribute kinds (span, type), so both are plain fields rather than an
// extensible attribute map.
type base struct {
	span token.Span
	typ  *types.Type
}

func (b *base) Span() token.Span      { return b.span }
func (b *base) GetType() *types.Type  { return b.typ }
func (b *base) SetType(t *types.Type) { b.typ = t }
