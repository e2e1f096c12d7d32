package ast

import (
	"strconv"
	"strings"

	"github.com/zoltan-nz/whilelang/internal/token"
)

// BinOp is the kind of a BinaryExpr.
type BinOp int

const (
	ADD BinOp = iota
	SUB
	MUL
	DIV
	REM
	EQ
	NEQ
	LT
	LTEQ
	GT
	GTEQ
	AND
	OR
)

var binOpSymbols = map[BinOp]string{
	ADD: "+", SUB: "-", MUL: "*", DIV: "/", REM: "%",
	EQ: "==", NEQ: "!=", LT: "<", LTEQ: "<=", GT: ">", GTEQ: ">=",
	AND: "&&", OR: "||",
}

func (op BinOp) String() string { return binOpSymbols[op] }

// UnOp is the kind of a UnaryExpr.
type UnOp int

const (
	NEG UnOp = iota
	NOT
	LENGTHOF
)

func (op UnOp) String() string {
	switch op {
	case NEG:
		return "-"
	case NOT:
		return "!"
	case LENGTHOF:
		return "|"
	default:
		return "?"
	}
}

// Identifier is a variable reference.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(name string, sp token.Span) *Identifier {
	return &Identifier{base: base{span: sp}, Name: name}
}

func (e *Identifier) exprNode()    {}
func (e *Identifier) lvalNode()    {}
func (e *Identifier) String() string { return e.Name }

// IntLiteral is a 32-bit signed integer constant.
type IntLiteral struct {
	base
	Value int32
}

func NewIntLiteral(v int32, sp token.Span) *IntLiteral {
	return &IntLiteral{base: base{span: sp}, Value: v}
}

func (e *IntLiteral) exprNode()      {}
func (e *IntLiteral) String() string { return strconv.FormatInt(int64(e.Value), 10) }

// CharLiteral is a single 7-bit ASCII character constant.
type CharLiteral struct {
	base
	Value byte
}

func NewCharLiteral(v byte, sp token.Span) *CharLiteral {
	return &CharLiteral{base: base{span: sp}, Value: v}
}

func (e *CharLiteral) exprNode()      {}
func (e *CharLiteral) String() string { return "'" + string(e.Value) + "'" }

// StringLiteral is a string constant.
type StringLiteral struct {
	base
	Value string
}

func NewStringLiteral(v string, sp token.Span) *StringLiteral {
	return &StringLiteral{base: base{span: sp}, Value: v}
}

func (e *StringLiteral) exprNode()      {}
func (e *StringLiteral) String() string { return strconv.Quote(e.Value) }

// BoolLiteral is the constant `true` or `false`.
type BoolLiteral struct {
	base
	Value bool
}

func NewBoolLiteral(v bool, sp token.Span) *BoolLiteral {
	return &BoolLiteral{base: base{span: sp}, Value: v}
}

func (e *BoolLiteral) exprNode() {}
func (e *BoolLiteral) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// NullLiteral is the constant `null`.
type NullLiteral struct{ base }

func NewNullLiteral(sp token.Span) *NullLiteral { return &NullLiteral{base{span: sp}} }

func (e *NullLiteral) exprNode()      {}
func (e *NullLiteral) String() string { return "null" }

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	base
	Op          BinOp
	Left, Right Expression
}

func NewBinaryExpr(op BinOp, left, right Expression, sp token.Span) *BinaryExpr {
	return &BinaryExpr{base: base{span: sp}, Op: op, Left: left, Right: right}
}

func (e *BinaryExpr) exprNode() {}
func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// UnaryExpr is a unary operation: -e (NEG), !e (NOT), |e| (LENGTHOF).
type UnaryExpr struct {
	base
	Op      UnOp
	Operand Expression
}

func NewUnaryExpr(op UnOp, operand Expression, sp token.Span) *UnaryExpr {
	return &UnaryExpr{base: base{span: sp}, Op: op, Operand: operand}
}

func (e *UnaryExpr) exprNode() {}
func (e *UnaryExpr) String() string {
	if e.Op == LENGTHOF {
		return "|" + e.Operand.String() + "|"
	}
	return e.Op.String() + e.Operand.String()
}

// IndexExpr is `source[index]`; an LVal.
type IndexExpr struct {
	base
	Source Expression
	Index  Expression
}

func NewIndexExpr(source, index Expression, sp token.Span) *IndexExpr {
	return &IndexExpr{base: base{span: sp}, Source: source, Index: index}
}

func (e *IndexExpr) exprNode()      {}
func (e *IndexExpr) lvalNode()      {}
func (e *IndexExpr) String() string { return e.Source.String() + "[" + e.Index.String() + "]" }

// RecordAccessExpr is `source.field`; an LVal.
type RecordAccessExpr struct {
	base
	Source Expression
	Field  string
}

func NewRecordAccessExpr(source Expression, field string, sp token.Span) *RecordAccessExpr {
	return &RecordAccessExpr{base: base{span: sp}, Source: source, Field: field}
}

func (e *RecordAccessExpr) exprNode()      {}
func (e *RecordAccessExpr) lvalNode()      {}
func (e *RecordAccessExpr) String() string { return e.Source.String() + "." + e.Field }

// RecordFieldInit is one (field-name, expr) pair of a record constructor.
type RecordFieldInit struct {
	Name  string
	Value Expression
}

// RecordConstructorExpr is `{f1: e1, f2: e2, ...}`; an ordered, non-empty
// list with no duplicate field names.
type RecordConstructorExpr struct {
	base
	Fields []RecordFieldInit
}

func NewRecordConstructorExpr(fields []RecordFieldInit, sp token.Span) *RecordConstructorExpr {
	return &RecordConstructorExpr{base: base{span: sp}, Fields: fields}
}

func (e *RecordConstructorExpr) exprNode() {}
func (e *RecordConstructorExpr) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range e.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(f.Value.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// ArrayInitExpr is `[e1, e2, ...]`, possibly empty.
type ArrayInitExpr struct {
	base
	Elements []Expression
}

func NewArrayInitExpr(elements []Expression, sp token.Span) *ArrayInitExpr {
	return &ArrayInitExpr{base: base{span: sp}, Elements: elements}
}

func (e *ArrayInitExpr) exprNode() {}
func (e *ArrayInitExpr) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ArrayGeneratorExpr is `[value ; size]`.
type ArrayGeneratorExpr struct {
	base
	Value Expression
	Size  Expression
}

func NewArrayGeneratorExpr(value, size Expression, sp token.Span) *ArrayGeneratorExpr {
	return &ArrayGeneratorExpr{base: base{span: sp}, Value: value, Size: size}
}

func (e *ArrayGeneratorExpr) exprNode() {}
func (e *ArrayGeneratorExpr) String() string {
	return "[" + e.Value.String() + " ; " + e.Size.String() + "]"
}

// InvokeExpr is a method call used in expression position; it is also
// reused, wrapped in an InvokeStmt, for the bare `Ident '(' Args? ')' ';'`
// statement form.
type InvokeExpr struct {
	base
	Method string
	Args   []Expression
}

func NewInvokeExpr(method string, args []Expression, sp token.Span) *InvokeExpr {
	return &InvokeExpr{base: base{span: sp}, Method: method, Args: args}
}

func (e *InvokeExpr) exprNode() {}
func (e *InvokeExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Method + "(" + strings.Join(parts, ", ") + ")"
}
