package passes

import (
	"testing"

	"github.com/zoltan-nz/whilelang/internal/errors"
	"github.com/zoltan-nz/whilelang/internal/parser"
	"github.com/zoltan-nz/whilelang/internal/semantic"
)

// analyze parses and type-checks source, returning the elaborated program
// and the Analyzer used (which satisfies types.Resolver for the passes).
func analyze(t *testing.T, source string) (*parser.Parser, *semantic.Analyzer) {
	t.Helper()
	p, err := parser.New(source, "test.while")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p, semantic.New("test.while", source)
}

func mustPassUnreachable(t *testing.T, source string) {
	t.Helper()
	p, a := analyze(t, source)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	if err := a.Analyze(prog); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if err := NewUnreachable(a, "test.while", source).Check(prog); err != nil {
		t.Fatalf("Unreachable.Check() error = %v", err)
	}
}

func mustFailUnreachable(t *testing.T, source string) *errors.CompilerError {
	t.Helper()
	p, a := analyze(t, source)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	if err := a.Analyze(prog); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	err = NewUnreachable(a, "test.while", source).Check(prog)
	if err == nil {
		t.Fatalf("expected an Unreachable error, got none")
	}
	ce, ok := err.(*errors.CompilerError)
	if !ok {
		t.Fatalf("expected *errors.CompilerError, got %T", err)
	}
	return ce
}

func TestStatementAfterReturnIsUnreachable(t *testing.T) {
	ce := mustFailUnreachable(t, `
		int f() {
			return 1;
			print 2;
		}
		void main() {}
	`)
	if ce.Kind != errors.UnreachableCodeError {
		t.Errorf("Kind = %v, want UnreachableCodeError", ce.Kind)
	}
}

func TestStatementAfterIfElseBothReturningIsUnreachable(t *testing.T) {
	mustFailUnreachable(t, `
		int f() {
			if (true) { return 1; } else { return 2; }
			print 3;
		}
		void main() {}
	`)
}

func TestStatementAfterIfWithoutElseIsReachable(t *testing.T) {
	mustPassUnreachable(t, `
		int f() {
			if (true) { return 1; }
			return 2;
		}
		void main() {}
	`)
}

func TestStatementAfterLoopIsAlwaysReachable(t *testing.T) {
	mustPassUnreachable(t, `
		void main() {
			while (true) {
				break;
			}
			print 1;
		}
	`)
}

func TestMissingReturnOnFallThroughRejected(t *testing.T) {
	ce := mustFailUnreachable(t, `
		int f() {
			print 1;
		}
		void main() {}
	`)
	if ce.Kind != errors.MissingReturnError {
		t.Errorf("Kind = %v, want MissingReturnError", ce.Kind)
	}
}

func TestMissingReturnNotRequiredForVoidMethod(t *testing.T) {
	mustPassUnreachable(t, `void main() { print 1; }`)
}

func TestStatementAfterBreakInLoopIsUnreachable(t *testing.T) {
	mustFailUnreachable(t, `
		void main() {
			while (true) {
				break;
				print 1;
			}
		}
	`)
}

func mustPassDefiniteAssignment(t *testing.T, source string) {
	t.Helper()
	p, a := analyze(t, source)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	if err := a.Analyze(prog); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if err := NewDefiniteAssignment("test.while", source).Check(prog); err != nil {
		t.Fatalf("DefiniteAssignment.Check() error = %v", err)
	}
}

func mustFailDefiniteAssignment(t *testing.T, source string) *errors.CompilerError {
	t.Helper()
	p, a := analyze(t, source)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	if err := a.Analyze(prog); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	err = NewDefiniteAssignment("test.while", source).Check(prog)
	if err == nil {
		t.Fatalf("expected a DefiniteAssignment error, got none")
	}
	ce, ok := err.(*errors.CompilerError)
	if !ok {
		t.Fatalf("expected *errors.CompilerError, got %T", err)
	}
	return ce
}

func TestUseBeforeAssignmentRejected(t *testing.T) {
	ce := mustFailDefiniteAssignment(t, `
		void main() {
			int x;
			print x;
		}
	`)
	if ce.Kind != errors.DefiniteAssignmentError {
		t.Errorf("Kind = %v, want DefiniteAssignmentError", ce.Kind)
	}
}

func TestVarDeclWithInitialiserIsDefinitelyAssigned(t *testing.T) {
	mustPassDefiniteAssignment(t, `
		void main() {
			int x = 1;
			print x;
		}
	`)
}

func TestBothIfElseBranchesMustAssignForUseAfter(t *testing.T) {
	mustPassDefiniteAssignment(t, `
		void main() {
			int x;
			if (true) { x = 1; } else { x = 2; }
			print x;
		}
	`)
}

func TestOneBranchAssigningIsNotEnough(t *testing.T) {
	mustFailDefiniteAssignment(t, `
		void main() {
			int x;
			if (true) { x = 1; }
			print x;
		}
	`)
}

func TestWhileBodyAssignmentDoesNotSurviveTheLoop(t *testing.T) {
	mustFailDefiniteAssignment(t, `
		void main() {
			int x;
			while (true) {
				x = 1;
				break;
			}
			print x;
		}
	`)
}

func TestForLoopDeclScopeDoesNotLeakButOuterAssignmentSurvives(t *testing.T) {
	mustPassDefiniteAssignment(t, `
		void main() {
			int total = 0;
			for (int i = 0; i < 10; i = i + 1;) {
				total = total + i;
			}
			print total;
		}
	`)
}

func TestCompoundAssignmentRequiresBaseAlreadyAssigned(t *testing.T) {
	mustFailDefiniteAssignment(t, `
		void main() {
			int[] xs;
			xs[0] = 1;
		}
	`)
}

func TestAssigningThroughAnIndexAfterDeclarationIsFine(t *testing.T) {
	mustPassDefiniteAssignment(t, `
		void main() {
			int[] xs = [0, 0];
			xs[0] = 1;
			print xs[0];
		}
	`)
}
