package ast

import (
	"testing"

	"github.com/zoltan-nz/whilelang/internal/token"
)

func sp() token.Span { return token.Span{} }

func TestExpressionStringForms(t *testing.T) {
	bin := NewBinaryExpr(ADD, NewIntLiteral(1, sp()), NewIntLiteral(2, sp()), sp())
	if got, want := bin.String(), "(1 + 2)"; got != want {
		t.Errorf("BinaryExpr.String() = %q, want %q", got, want)
	}

	neg := NewUnaryExpr(NEG, NewIntLiteral(3, sp()), sp())
	if got, want := neg.String(), "-3"; got != want {
		t.Errorf("UnaryExpr(NEG).String() = %q, want %q", got, want)
	}

	length := NewUnaryExpr(LENGTHOF, NewIdentifier("xs", sp()), sp())
	if got, want := length.String(), "|xs|"; got != want {
		t.Errorf("UnaryExpr(LENGTHOF).String() = %q, want %q", got, want)
	}

	idx := NewIndexExpr(NewIdentifier("xs", sp()), NewIntLiteral(0, sp()), sp())
	if got, want := idx.String(), "xs[0]"; got != want {
		t.Errorf("IndexExpr.String() = %q, want %q", got, want)
	}

	rec := NewRecordConstructorExpr([]RecordFieldInit{
		{Name: "y", Value: NewIntLiteral(2, sp())},
		{Name: "x", Value: NewIntLiteral(1, sp())},
	}, sp())
	if got, want := rec.String(), "{y: 2, x: 1}"; got != want {
		t.Errorf("RecordConstructorExpr.String() = %q, want %q", got, want)
	}
}

func TestExpressionAttributeDefaultsNil(t *testing.T) {
	id := NewIdentifier("x", sp())
	if id.GetType() != nil {
		t.Errorf("expected a fresh expression node to have no attached type before checking")
	}
}

func TestLValKinds(t *testing.T) {
	var _ LVal = NewIdentifier("x", sp())
	var _ LVal = NewIndexExpr(NewIdentifier("xs", sp()), NewIntLiteral(0, sp()), sp())
	var _ LVal = NewRecordAccessExpr(NewIdentifier("r", sp()), "f", sp())
}
