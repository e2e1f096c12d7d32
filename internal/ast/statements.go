package ast

import (
	"strings"

	"github.com/zoltan-nz/whilelang/internal/token"
)

// BlockStmt is `{ stmt* }`.
type BlockStmt struct {
	sp    token.Span
	Stmts []Statement
}

func NewBlockStmt(stmts []Statement, sp token.Span) *BlockStmt {
	return &BlockStmt{sp: sp, Stmts: stmts}
}

func (s *BlockStmt) stmtNode()       {}
func (s *BlockStmt) Span() token.Span { return s.sp }
func (s *BlockStmt) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, st := range s.Stmts {
		sb.WriteString("  ")
		sb.WriteString(strings.ReplaceAll(st.String(), "\n", "\n  "))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// AssertStmt is `assert expr;`.
type AssertStmt struct {
	sp   token.Span
	Expr Expression
}

func NewAssertStmt(expr Expression, sp token.Span) *AssertStmt {
	return &AssertStmt{sp: sp, Expr: expr}
}

func (s *AssertStmt) stmtNode()        {}
func (s *AssertStmt) Span() token.Span { return s.sp }
func (s *AssertStmt) String() string   { return "assert " + s.Expr.String() + ";" }

// AssignStmt is `lval = expr;`.
type AssignStmt struct {
	sp     token.Span
	Target LVal
	Value  Expression
}

func NewAssignStmt(target LVal, value Expression, sp token.Span) *AssignStmt {
	return &AssignStmt{sp: sp, Target: target, Value: value}
}

func (s *AssignStmt) stmtNode()        {}
func (s *AssignStmt) Span() token.Span { return s.sp }
func (s *AssignStmt) String() string {
	return s.Target.String() + " = " + s.Value.String() + ";"
}

// VarDeclStmt is `Type name (= expr)? ;`.
type VarDeclStmt struct {
	sp   token.Span
	Type TypeExpression
	Name string
	Init Expression // nil if no initialiser
}

func NewVarDeclStmt(typ TypeExpression, name string, init Expression, sp token.Span) *VarDeclStmt {
	return &VarDeclStmt{sp: sp, Type: typ, Name: name, Init: init}
}

func (s *VarDeclStmt) stmtNode()        {}
func (s *VarDeclStmt) Span() token.Span { return s.sp }
func (s *VarDeclStmt) String() string {
	out := s.Type.String() + " " + s.Name
	if s.Init != nil {
		out += " = " + s.Init.String()
	}
	return out + ";"
}

// PrintStmt is `print expr;`.
type PrintStmt struct {
	sp   token.Span
	Expr Expression
}

func NewPrintStmt(expr Expression, sp token.Span) *PrintStmt {
	return &PrintStmt{sp: sp, Expr: expr}
}

func (s *PrintStmt) stmtNode()        {}
func (s *PrintStmt) Span() token.Span { return s.sp }
func (s *PrintStmt) String() string   { return "print " + s.Expr.String() + ";" }

// ReturnStmt is `return expr? ;`.
type ReturnStmt struct {
	sp    token.Span
	Value Expression // nil for a bare `return;`
}

func NewReturnStmt(value Expression, sp token.Span) *ReturnStmt {
	return &ReturnStmt{sp: sp, Value: value}
}

func (s *ReturnStmt) stmtNode()        {}
func (s *ReturnStmt) Span() token.Span { return s.sp }
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// BreakStmt is `break;`.
type BreakStmt struct{ sp token.Span }

func NewBreakStmt(sp token.Span) *BreakStmt { return &BreakStmt{sp: sp} }

func (s *BreakStmt) stmtNode()        {}
func (s *BreakStmt) Span() token.Span { return s.sp }
func (s *BreakStmt) String() string   { return "break;" }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ sp token.Span }

func NewContinueStmt(sp token.Span) *ContinueStmt { return &ContinueStmt{sp: sp} }

func (s *ContinueStmt) stmtNode()        {}
func (s *ContinueStmt) Span() token.Span { return s.sp }
func (s *ContinueStmt) String() string   { return "continue;" }

// IfStmt is `if (cond) then (else (IfStmt | BlockStmt))?`. Else may be nil,
// a *BlockStmt, or another *IfStmt (for `else if`).
type IfStmt struct {
	sp     token.Span
	Cond   Expression
	Then   *BlockStmt
	Else   Statement
}

func NewIfStmt(cond Expression, then *BlockStmt, els Statement, sp token.Span) *IfStmt {
	return &IfStmt{sp: sp, Cond: cond, Then: then, Else: els}
}

func (s *IfStmt) stmtNode()        {}
func (s *IfStmt) Span() token.Span { return s.sp }
func (s *IfStmt) String() string {
	out := "if (" + s.Cond.String() + ") " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	sp   token.Span
	Cond Expression
	Body *BlockStmt
}

func NewWhileStmt(cond Expression, body *BlockStmt, sp token.Span) *WhileStmt {
	return &WhileStmt{sp: sp, Cond: cond, Body: body}
}

func (s *WhileStmt) stmtNode()        {}
func (s *WhileStmt) Span() token.Span { return s.sp }
func (s *WhileStmt) String() string {
	return "while (" + s.Cond.String() + ") " + s.Body.String()
}

// ForStmt is `for (decl; cond; step) body`. The declaration's scope does
// not leak past the loop.
type ForStmt struct {
	sp   token.Span
	Decl *VarDeclStmt
	Cond Expression
	Step Statement
	Body *BlockStmt
}

func NewForStmt(decl *VarDeclStmt, cond Expression, step Statement, body *BlockStmt, sp token.Span) *ForStmt {
	return &ForStmt{sp: sp, Decl: decl, Cond: cond, Step: step, Body: body}
}

func (s *ForStmt) stmtNode()        {}
func (s *ForStmt) Span() token.Span { return s.sp }
func (s *ForStmt) String() string {
	step := ""
	if s.Step != nil {
		step = strings.TrimSuffix(s.Step.String(), ";")
	}
	return "for (" + s.Decl.String() + " " + s.Cond.String() + "; " + step + ") " + s.Body.String()
}

// InvokeStmt is a method call used as a statement: `Ident(args);`.
type InvokeStmt struct {
	sp   token.Span
	Call *InvokeExpr
}

func NewInvokeStmt(call *InvokeExpr, sp token.Span) *InvokeStmt {
	return &InvokeStmt{sp: sp, Call: call}
}

func (s *InvokeStmt) stmtNode()        {}
func (s *InvokeStmt) Span() token.Span { return s.sp }
func (s *InvokeStmt) String() string   { return s.Call.String() + ";" }
