package ast

import (
	"strings"

	"github.com/zoltan-nz/whilelang/internal/token"
)

// TypeExpression is the user-facing syntactic type as written by the
// programmer: the type
// as spelled in the source, before named types are resolved.
type TypeExpression interface {
	Node
	typeExprNode()
}

// PrimitiveTypeExpr is one of void, bool, int, char, string.
type PrimitiveTypeExpr struct {
	Name string // "void", "bool", "int", "char", "string"
	sp   token.Span
}

func NewPrimitiveTypeExpr(name string, sp token.Span) *PrimitiveTypeExpr {
	return &PrimitiveTypeExpr{Name: name, sp: sp}
}

func (t *PrimitiveTypeExpr) typeExprNode()    {}
func (t *PrimitiveTypeExpr) Span() token.Span { return t.sp }
func (t *PrimitiveTypeExpr) String() string   { return t.Name }

// ArrayTypeExpr is `T[]`, possibly nested.
type ArrayTypeExpr struct {
	Elem TypeExpression
	sp   token.Span
}

func NewArrayTypeExpr(elem TypeExpression, sp token.Span) *ArrayTypeExpr {
	return &ArrayTypeExpr{Elem: elem, sp: sp}
}

func (t *ArrayTypeExpr) typeExprNode()    {}
func (t *ArrayTypeExpr) Span() token.Span { return t.sp }
func (t *ArrayTypeExpr) String() string   { return t.Elem.String() + "[]" }

// RecordFieldExpr is one (field-type, field-name) pair in a record type.
type RecordFieldExpr struct {
	Type TypeExpression
	Name string
}

// RecordTypeExpr is an ordered, non-empty sequence of fields with no
// duplicate names, enforced by the parser.
type RecordTypeExpr struct {
	Fields []RecordFieldExpr
	sp     token.Span
}

func NewRecordTypeExpr(fields []RecordFieldExpr, sp token.Span) *RecordTypeExpr {
	return &RecordTypeExpr{Fields: fields, sp: sp}
}

func (t *RecordTypeExpr) typeExprNode()    {}
func (t *RecordTypeExpr) Span() token.Span { return t.sp }
func (t *RecordTypeExpr) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range t.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Type.String())
		sb.WriteByte(' ')
		sb.WriteString(f.Name)
	}
	sb.WriteByte('}')
	return sb.String()
}

// NamedTypeExpr refers to an earlier `type` declaration by identifier.
type NamedTypeExpr struct {
	Name string
	sp   token.Span
}

func NewNamedTypeExpr(name string, sp token.Span) *NamedTypeExpr {
	return &NamedTypeExpr{Name: name, sp: sp}
}

func (t *NamedTypeExpr) typeExprNode()    {}
func (t *NamedTypeExpr) Span() token.Span { return t.sp }
func (t *NamedTypeExpr) String() string   { return t.Name }
