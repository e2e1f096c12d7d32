package ast

import (
	"strings"

	"github.com/zoltan-nz/whilelang/internal/token"
)

// TypeAliasDecl is `type Name is Type`.
type TypeAliasDecl struct {
	sp   token.Span
	Name string
	Body TypeExpression
}

func NewTypeAliasDecl(name string, body TypeExpression, sp token.Span) *TypeAliasDecl {
	return &TypeAliasDecl{sp: sp, Name: name, Body: body}
}

func (d *TypeAliasDecl) declNode()        {}
func (d *TypeAliasDecl) Span() token.Span { return d.sp }
func (d *TypeAliasDecl) String() string   { return "type " + d.Name + " is " + d.Body.String() }

// Param is one method parameter: a (type, name) pair, unique within the
// method, enforced by the parser.
type Param struct {
	Type TypeExpression
	Name string
}

// MethodDecl is `Type Ident ( Params? ) Block`. A distinguished `main`
// with no parameters is the interpreter's entry point.
type MethodDecl struct {
	sp         token.Span
	Name       string
	ReturnType TypeExpression
	Params     []Param
	Body       *BlockStmt
}

func NewMethodDecl(name string, returnType TypeExpression, params []Param, body *BlockStmt, sp token.Span) *MethodDecl {
	return &MethodDecl{sp: sp, Name: name, ReturnType: returnType, Params: params, Body: body}
}

func (d *MethodDecl) declNode()        {}
func (d *MethodDecl) Span() token.Span { return d.sp }
func (d *MethodDecl) String() string {
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = p.Type.String() + " " + p.Name
	}
	return d.ReturnType.String() + " " + d.Name + "(" + strings.Join(parts, ", ") + ") " + d.Body.String()
}

// IsMain reports whether this method is literally named "main". It checks
// the name only: the interpreter runs main automatically only when it also
// takes no parameters (see interp.Interpreter.HasMain).
func (d *MethodDecl) IsMain() bool { return d.Name == "main" }
