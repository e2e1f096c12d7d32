// Package passes implements the two control-flow analyses that run after
// type checking: unreachable-code detection and definite assignment.
// Neither pass modifies the AST; each takes a *ast.Program (already
// accepted by the type checker) and returns the first error it finds.
package passes

import (
	"github.com/zoltan-nz/whilelang/internal/ast"
	"github.com/zoltan-nz/whilelang/internal/errors"
	"github.com/zoltan-nz/whilelang/internal/token"
	"github.com/zoltan-nz/whilelang/internal/types"
)

// Outcome classifies a statement's local control flow.
type Outcome int

const (
	Next Outcome = iota
	Return
	Break
	BreakNext
)

// join combines the outcomes of two sibling branches (an if/else pair).
func join(a, b Outcome) Outcome {
	if a == b {
		return a
	}
	switch {
	case (a == Next && b == Return) || (a == Return && b == Next):
		return Next
	case (a == Break && b == Return) || (a == Return && b == Break):
		return Break
	default:
		return BreakNext
	}
}

// Unreachable walks every method body, classifying each statement's
// outcome and rejecting any statement that follows one whose outcome is
// not Next or BreakNext. It also rejects a non-void method whose body can
// fall through without returning.
type Unreachable struct {
	resolver types.Resolver
	file     string
	source   string
}

func NewUnreachable(resolver types.Resolver, file, source string) *Unreachable {
	return &Unreachable{resolver: resolver, file: file, source: source}
}

func (u *Unreachable) Check(prog *ast.Program) error {
	for _, d := range prog.Declarations {
		method, ok := d.(*ast.MethodDecl)
		if !ok {
			continue
		}
		if err := u.checkMethod(method); err != nil {
			return err
		}
	}
	return nil
}

func (u *Unreachable) checkMethod(method *ast.MethodDecl) error {
	outcome, err := u.checkBlock(method.Body)
	if err != nil {
		return err
	}
	if outcome == Next && !isVoidReturn(method.ReturnType, u.resolver) {
		return u.errorf(errors.MissingReturnError, method.Span(), "method %q is missing a return statement", method.Name)
	}
	return nil
}

// checkBlock applies the sequencing rule across block's statements and
// returns the block's own outcome (the last statement's outcome, or Next
// for an empty block).
func (u *Unreachable) checkBlock(block *ast.BlockStmt) (Outcome, error) {
	prior := Next
	for i, stmt := range block.Stmts {
		if i > 0 && prior != Next && prior != BreakNext {
			return 0, u.errorf(errors.UnreachableCodeError, stmt.Span(), "unreachable statement")
		}
		out, err := u.stmtOutcome(stmt)
		if err != nil {
			return 0, err
		}
		prior = out
	}
	return prior, nil
}

// stmtOutcome returns a single statement's local outcome, recursing into
// any nested block to apply the sequencing rule there too.
func (u *Unreachable) stmtOutcome(stmt ast.Statement) (Outcome, error) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return u.checkBlock(s)
	case *ast.ReturnStmt:
		return Return, nil
	case *ast.ContinueStmt:
		return Return, nil
	case *ast.BreakStmt:
		return Break, nil
	case *ast.IfStmt:
		thenOut, err := u.checkBlock(s.Then)
		if err != nil {
			return 0, err
		}
		elseOut := Next
		if s.Else != nil {
			elseOut, err = u.stmtOutcome(s.Else)
			if err != nil {
				return 0, err
			}
		}
		return join(thenOut, elseOut), nil
	case *ast.WhileStmt:
		// A loop always returns NEXT to the enclosing block: the loop
		// itself is reachable, and so is whatever follows it, regardless
		// of how its body terminates.
		if _, err := u.checkBlock(s.Body); err != nil {
			return 0, err
		}
		return Next, nil
	case *ast.ForStmt:
		if _, err := u.checkBlock(s.Body); err != nil {
			return 0, err
		}
		return Next, nil
	default:
		return Next, nil
	}
}

func (u *Unreachable) errorf(kind errors.Kind, span token.Span, format string, args ...any) error {
	e := errors.New(kind, span, format, args...)
	e.WithFile(u.file, u.source)
	return e
}

// isVoidReturn reports whether a method's declared return type is void,
// seeing through a chain of named-type aliases.
func isVoidReturn(te ast.TypeExpression, r types.Resolver) bool {
	switch t := te.(type) {
	case *ast.PrimitiveTypeExpr:
		return t.Name == "void"
	case *ast.NamedTypeExpr:
		resolved, ok := r.Resolve(t.Name)
		if !ok {
			return false
		}
		for resolved.IsNamed() {
			resolved, ok = r.Resolve(resolved.Name)
			if !ok {
				return false
			}
		}
		return resolved.IsVoid()
	default:
		return false
	}
}
