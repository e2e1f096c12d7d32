package passes

import (
	"github.com/zoltan-nz/whilelang/internal/ast"
	"github.com/zoltan-nz/whilelang/internal/errors"
	"github.com/zoltan-nz/whilelang/internal/token"
)

// Defs is the immutable set of variable names definitely assigned along
// every path reaching a program point. A nil Defs is ⊥: no path reaches
// here, the identity element of meet.
type Defs map[string]bool

func (d Defs) has(name string) bool {
	return d != nil && d[name]
}

// with returns a new Defs containing d's names plus name.
func (d Defs) with(name string) Defs {
	out := make(Defs, len(d)+1)
	for n := range d {
		out[n] = true
	}
	out[name] = true
	return out
}

// meet is ⊓: the intersection of two Defs, with ⊓(⊥, x) = x.
func meet(a, b Defs) Defs {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	out := make(Defs)
	for n := range a {
		if b[n] {
			out[n] = true
		}
	}
	return out
}

// DefiniteAssignment runs a forward dataflow: every variable read must be
// definitely assigned on every path reaching it.
type DefiniteAssignment struct {
	file   string
	source string
}

func NewDefiniteAssignment(file, source string) *DefiniteAssignment {
	return &DefiniteAssignment{file: file, source: source}
}

func (d *DefiniteAssignment) Check(prog *ast.Program) error {
	for _, decl := range prog.Declarations {
		method, ok := decl.(*ast.MethodDecl)
		if !ok {
			continue
		}
		if err := d.checkMethod(method); err != nil {
			return err
		}
	}
	return nil
}

func (d *DefiniteAssignment) checkMethod(method *ast.MethodDecl) error {
	initial := make(Defs, len(method.Params))
	for _, p := range method.Params {
		initial[p.Name] = true
	}
	_, _, err := d.checkBlock(initial, method.Body)
	return err
}

// checkBlock composes a block's statements in sequence: each statement's
// "next" set feeds the following statement, and the block's own "break"
// outcome is the meet of every statement's break outcome (more than one
// statement in the sequence may break out of the loop).
func (d *DefiniteAssignment) checkBlock(incoming Defs, block *ast.BlockStmt) (next, brk Defs, err error) {
	next = incoming
	for _, stmt := range block.Stmts {
		var stmtBrk Defs
		next, stmtBrk, err = d.checkStmt(next, stmt)
		if err != nil {
			return nil, nil, err
		}
		brk = meet(brk, stmtBrk)
	}
	return next, brk, nil
}

// checkStmtOrBlock dispatches an else-branch, which is either a *BlockStmt
// or another *IfStmt (the desugared form of `else if`).
func (d *DefiniteAssignment) checkStmtOrBlock(incoming Defs, stmt ast.Statement) (next, brk Defs, err error) {
	if block, ok := stmt.(*ast.BlockStmt); ok {
		return d.checkBlock(incoming, block)
	}
	return d.checkStmt(incoming, stmt)
}

func (d *DefiniteAssignment) checkStmt(incoming Defs, stmt ast.Statement) (next, brk Defs, err error) {
	switch s := stmt.(type) {
	case *ast.AssertStmt:
		if err := d.checkUses(incoming, s.Expr); err != nil {
			return nil, nil, err
		}
		return incoming, nil, nil

	case *ast.PrintStmt:
		if err := d.checkUses(incoming, s.Expr); err != nil {
			return nil, nil, err
		}
		return incoming, nil, nil

	case *ast.AssignStmt:
		return d.checkAssignStmt(incoming, s)

	case *ast.VarDeclStmt:
		return d.checkVarDeclStmt(incoming, s)

	case *ast.ReturnStmt:
		if s.Value != nil {
			if err := d.checkUses(incoming, s.Value); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil

	case *ast.ContinueStmt:
		return nil, nil, nil

	case *ast.BreakStmt:
		return nil, incoming, nil

	case *ast.IfStmt:
		return d.checkIfStmt(incoming, s)

	case *ast.WhileStmt:
		if err := d.checkUses(incoming, s.Cond); err != nil {
			return nil, nil, err
		}
		// The body is analysed with the incoming Defs, but nothing it
		// assigns survives to the statement after the loop: the loop may
		// not iterate at all. Its break outcome is likewise discarded,
		// since a break only ever exits the loop it is lexically inside.
		if _, _, err := d.checkBlock(incoming, s.Body); err != nil {
			return nil, nil, err
		}
		return incoming, nil, nil

	case *ast.ForStmt:
		return d.checkForStmt(incoming, s)

	case *ast.InvokeStmt:
		for _, arg := range s.Call.Args {
			if err := d.checkUses(incoming, arg); err != nil {
				return nil, nil, err
			}
		}
		return incoming, nil, nil

	case *ast.BlockStmt:
		return d.checkBlock(incoming, s)

	default:
		return nil, nil, d.errorf(stmt.Span(), "unsupported statement %T", stmt)
	}
}

// checkAssignStmt: a simple variable target adds its name to next; a
// compound target (lval[i] or lval.f) requires its base already be
// assigned, which checkUses enforces by walking into the target's Source.
func (d *DefiniteAssignment) checkAssignStmt(incoming Defs, s *ast.AssignStmt) (next, brk Defs, err error) {
	if err := d.checkUses(incoming, s.Value); err != nil {
		return nil, nil, err
	}
	switch target := s.Target.(type) {
	case *ast.Identifier:
		return incoming.with(target.Name), nil, nil
	default:
		if err := d.checkUses(incoming, s.Target); err != nil {
			return nil, nil, err
		}
		return incoming, nil, nil
	}
}

func (d *DefiniteAssignment) checkVarDeclStmt(incoming Defs, s *ast.VarDeclStmt) (next, brk Defs, err error) {
	if s.Init == nil {
		return incoming, nil, nil
	}
	if err := d.checkUses(incoming, s.Init); err != nil {
		return nil, nil, err
	}
	return incoming.with(s.Name), nil, nil
}

func (d *DefiniteAssignment) checkIfStmt(incoming Defs, s *ast.IfStmt) (next, brk Defs, err error) {
	if err := d.checkUses(incoming, s.Cond); err != nil {
		return nil, nil, err
	}
	tNext, tBrk, err := d.checkBlock(incoming, s.Then)
	if err != nil {
		return nil, nil, err
	}
	fNext, fBrk := incoming, Defs(nil)
	if s.Else != nil {
		fNext, fBrk, err = d.checkStmtOrBlock(incoming, s.Else)
		if err != nil {
			return nil, nil, err
		}
	}
	return meet(tNext, fNext), meet(tBrk, fBrk), nil
}

// checkForStmt: decl is analysed into a scope that cond, step and body are
// each checked against, but none of that survives past the loop: the
// external next is simply the incoming Defs.
func (d *DefiniteAssignment) checkForStmt(incoming Defs, s *ast.ForStmt) (next, brk Defs, err error) {
	scoped, _, err := d.checkVarDeclStmt(incoming, s.Decl)
	if err != nil {
		return nil, nil, err
	}
	if err := d.checkUses(scoped, s.Cond); err != nil {
		return nil, nil, err
	}
	if s.Step != nil {
		if _, _, err := d.checkStmt(scoped, s.Step); err != nil {
			return nil, nil, err
		}
	}
	if _, _, err := d.checkBlock(scoped, s.Body); err != nil {
		return nil, nil, err
	}
	return incoming, nil, nil
}

// checkUses requires every variable read while evaluating expr to be
// definitely assigned in defs.
func (d *DefiniteAssignment) checkUses(defs Defs, expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.Identifier:
		if !defs.has(e.Name) {
			return d.errorf(e.Span(), "variable %q is not definitely assigned", e.Name)
		}
		return nil
	case *ast.IntLiteral, *ast.CharLiteral, *ast.StringLiteral, *ast.BoolLiteral, *ast.NullLiteral:
		return nil
	case *ast.BinaryExpr:
		if err := d.checkUses(defs, e.Left); err != nil {
			return err
		}
		return d.checkUses(defs, e.Right)
	case *ast.UnaryExpr:
		return d.checkUses(defs, e.Operand)
	case *ast.IndexExpr:
		if err := d.checkUses(defs, e.Source); err != nil {
			return err
		}
		return d.checkUses(defs, e.Index)
	case *ast.RecordAccessExpr:
		return d.checkUses(defs, e.Source)
	case *ast.RecordConstructorExpr:
		for _, f := range e.Fields {
			if err := d.checkUses(defs, f.Value); err != nil {
				return err
			}
		}
		return nil
	case *ast.ArrayInitExpr:
		for _, el := range e.Elements {
			if err := d.checkUses(defs, el); err != nil {
				return err
			}
		}
		return nil
	case *ast.ArrayGeneratorExpr:
		if err := d.checkUses(defs, e.Value); err != nil {
			return err
		}
		return d.checkUses(defs, e.Size)
	case *ast.InvokeExpr:
		for _, arg := range e.Args {
			if err := d.checkUses(defs, arg); err != nil {
				return err
			}
		}
		return nil
	default:
		return d.errorf(expr.Span(), "unsupported expression %T", expr)
	}
}

func (d *DefiniteAssignment) errorf(span token.Span, format string, args ...any) error {
	e := errors.New(errors.DefiniteAssignmentError, span, format, args...)
	e.WithFile(d.file, d.source)
	return e
}
