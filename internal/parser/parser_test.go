package parser

import (
	"strings"
	"testing"

	"github.com/zoltan-nz/whilelang/internal/ast"
	"github.com/zoltan-nz/whilelang/internal/errors"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	p, err := New(source, "test.while")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	return prog
}

func mustFail(t *testing.T, source string) *errors.CompilerError {
	t.Helper()
	p, err := New(source, "test.while")
	if err == nil {
		_, err = p.ParseProgram()
	}
	if err == nil {
		t.Fatalf("expected a parse error, got none")
	}
	ce, ok := err.(*errors.CompilerError)
	if !ok {
		t.Fatalf("expected *errors.CompilerError, got %T", err)
	}
	return ce
}

func TestParseMinimalMain(t *testing.T) {
	prog := mustParse(t, `void main() { print 1; }`)
	if len(prog.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(prog.Declarations))
	}
	m, ok := prog.Declarations[0].(*ast.MethodDecl)
	if !ok {
		t.Fatalf("expected *ast.MethodDecl, got %T", prog.Declarations[0])
	}
	if !m.IsMain() {
		t.Errorf("expected main method")
	}
}

func TestParseNullLiteral(t *testing.T) {
	prog := mustParse(t, `void main() { print null; }`)
	m := prog.Declarations[0].(*ast.MethodDecl)
	stmt := m.Body.Stmts[0].(*ast.PrintStmt)
	if _, ok := stmt.Expr.(*ast.NullLiteral); !ok {
		t.Fatalf("expected *ast.NullLiteral, got %T", stmt.Expr)
	}
}

func TestParseTypeAliasAndUsage(t *testing.T) {
	prog := mustParse(t, `
		type Pair is {int x, int y};
		void main() {
			Pair p = {x: 1, y: 2};
			print p.x;
		}
	`)
	if len(prog.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(prog.Declarations))
	}
}

func TestParseForLoop(t *testing.T) {
	prog := mustParse(t, `
		void main() {
			int sum = 0;
			for (int i = 0; i < 10; i = i + 1;) {
				sum = sum + i;
			}
			print sum;
		}
	`)
	m := prog.Declarations[0].(*ast.MethodDecl)
	forStmt, ok := m.Body.Stmts[1].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected *ast.ForStmt, got %T", m.Body.Stmts[1])
	}
	if forStmt.Decl.Name != "i" {
		t.Errorf("for decl name = %q, want %q", forStmt.Decl.Name, "i")
	}
}

func TestArrayGeneratorVsInitialiser(t *testing.T) {
	prog := mustParse(t, `
		void main() {
			int[] xs = [0 ; 5];
			int[] ys = [1, 2, 3];
			int[] zs = [];
		}
	`)
	m := prog.Declarations[0].(*ast.MethodDecl)
	if _, ok := m.Body.Stmts[0].(*ast.VarDeclStmt).Init.(*ast.ArrayGeneratorExpr); !ok {
		t.Errorf("expected an array generator for xs")
	}
	if _, ok := m.Body.Stmts[1].(*ast.VarDeclStmt).Init.(*ast.ArrayInitExpr); !ok {
		t.Errorf("expected an array initialiser for ys")
	}
	zs := m.Body.Stmts[2].(*ast.VarDeclStmt).Init.(*ast.ArrayInitExpr)
	if len(zs.Elements) != 0 {
		t.Errorf("expected an empty initialiser for zs")
	}
}

func TestUnaryMinusConstantFolding(t *testing.T) {
	prog := mustParse(t, `void main() { int x = -5; }`)
	m := prog.Declarations[0].(*ast.MethodDecl)
	lit, ok := m.Body.Stmts[0].(*ast.VarDeclStmt).Init.(*ast.IntLiteral)
	if !ok {
		t.Fatalf("expected constant folding to produce *ast.IntLiteral, got %T", m.Body.Stmts[0].(*ast.VarDeclStmt).Init)
	}
	if lit.Value != -5 {
		t.Errorf("folded value = %d, want -5", lit.Value)
	}
}

func TestRightAssociativity(t *testing.T) {
	prog := mustParse(t, `void main() { int x = 1 + 2 + 3; }`)
	m := prog.Declarations[0].(*ast.MethodDecl)
	add := m.Body.Stmts[0].(*ast.VarDeclStmt).Init.(*ast.BinaryExpr)
	if _, ok := add.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected right-associative tree, got Right=%T", add.Right)
	}
	if _, ok := add.Left.(*ast.IntLiteral); !ok {
		t.Errorf("expected Left to be the leaf 1, got %T", add.Left)
	}
}

func TestDuplicateTypeNameRejected(t *testing.T) {
	ce := mustFail(t, `
		type Pair is {int x, int y};
		type Pair is {int a, int b};
		void main() {}
	`)
	if ce.Kind != errors.SyntaxError {
		t.Errorf("Kind = %v, want SyntaxError", ce.Kind)
	}
}

func TestDuplicateParamNameRejected(t *testing.T) {
	mustFail(t, `void f(int x, int x) {}`)
}

func TestBreakOutsideLoopRejected(t *testing.T) {
	ce := mustFail(t, `void main() { break; }`)
	if !strings.Contains(ce.Message, "loop") {
		t.Errorf("message = %q, want mention of loop", ce.Message)
	}
}

func TestUndeclaredIdentifierRejected(t *testing.T) {
	mustFail(t, `void main() { print y; }`)
}

func TestUndeclaredTypeNameRejected(t *testing.T) {
	mustFail(t, `void main() { Foo x; }`)
}

func TestSelfReferencingTypeAliasRejected(t *testing.T) {
	mustFail(t, `type X is X;`)
}

func TestBlockScopesDoNotLeakBetweenBranches(t *testing.T) {
	mustFail(t, `
		void main() {
			if (true) {
				int x = 1;
			} else {
				print x;
			}
		}
	`)
}

func TestLoopScopeDoesNotLeak(t *testing.T) {
	mustFail(t, `
		void main() {
			for (int i = 0; i < 1; i = i + 1;) {}
			print i;
		}
	`)
}

func TestDuplicateRecordFieldRejected(t *testing.T) {
	mustFail(t, `type R is {int x, int x};`)
}

func TestDuplicateRecordConstructorFieldRejected(t *testing.T) {
	mustFail(t, `
		type Pair is {int x, int y};
		void main() { Pair p = {x: 1, x: 2}; }
	`)
}

func TestInvokeStatementAndExpression(t *testing.T) {
	prog := mustParse(t, `
		int f() { return 1; }
		void main() {
			f();
			int y = f() + 1;
		}
	`)
	m := prog.Declarations[1].(*ast.MethodDecl)
	if _, ok := m.Body.Stmts[0].(*ast.InvokeStmt); !ok {
		t.Fatalf("expected *ast.InvokeStmt, got %T", m.Body.Stmts[0])
	}
}
