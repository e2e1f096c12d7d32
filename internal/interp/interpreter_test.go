package interp

import (
	"bytes"
	"testing"

	"github.com/zoltan-nz/whilelang/internal/parser"
	"github.com/zoltan-nz/whilelang/internal/semantic"
)

// run parses, type-checks and interprets source, returning everything
// printed to standard output.
func run(t *testing.T, source string) string {
	t.Helper()
	p, err := parser.New(source, "test.while")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	if err := semantic.New("test.while", source).Analyze(prog); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	var buf bytes.Buffer
	i := New(prog, &buf, "test.while", source)
	if !i.HasMain() {
		t.Fatalf("expected a zero-arg main")
	}
	if _, err := i.RunMain(); err != nil {
		t.Fatalf("RunMain() error = %v", err)
	}
	return buf.String()
}

func TestPrintLiterals(t *testing.T) {
	out := run(t, `
		void main() {
			print 1;
			print true;
			print "hi";
			print 'x';
			print null;
		}
	`)
	want := "1\ntrue\nhi\nx\nnull\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestArithmeticAndShortCircuit(t *testing.T) {
	out := run(t, `
		int sideEffect() { print "called"; return 1; }
		void main() {
			print 1 + 2 * 3;
			print false && (sideEffect() == 1);
			print true || (sideEffect() == 1);
		}
	`)
	want := "7\nfalse\ntrue\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestWhileLoopWithBreakAndContinue(t *testing.T) {
	out := run(t, `
		void main() {
			int i = 0;
			int sum = 0;
			while (true) {
				i = i + 1;
				if (i > 5) { break; }
				if (i == 3) { continue; }
				sum = sum + i;
			}
			print sum;
		}
	`)
	if out != "12\n" {
		t.Errorf("output = %q, want %q", out, "12\n")
	}
}

func TestForLoopSum(t *testing.T) {
	out := run(t, `
		void main() {
			int sum = 0;
			for (int i = 0; i < 5; i = i + 1;) {
				sum = sum + i;
			}
			print sum;
		}
	`)
	if out != "10\n" {
		t.Errorf("output = %q, want %q", out, "10\n")
	}
}

func TestRecursiveInvoke(t *testing.T) {
	out := run(t, `
		int fact(int n) {
			if (n <= 1) { return 1; }
			return n * fact(n - 1);
		}
		void main() { print fact(5); }
	`)
	if out != "120\n" {
		t.Errorf("output = %q, want %q", out, "120\n")
	}
}

func TestArrayIndexAndAssignment(t *testing.T) {
	out := run(t, `
		void main() {
			int[] xs = [10, 20, 30];
			xs[1] = 99;
			print xs[1];
			print |xs|;
			print xs;
		}
	`)
	want := "99\n3\n[10, 99, 30]\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestArrayGenerator(t *testing.T) {
	out := run(t, `void main() { int[] zeros = [0 ; 3]; print zeros; }`)
	if out != "[0, 0, 0]\n" {
		t.Errorf("output = %q, want %q", out, "[0, 0, 0]\n")
	}
}

func TestRecordConstructorAndFieldAssignment(t *testing.T) {
	out := run(t, `
		type Point is {int x, int y};
		void main() {
			Point p = {x: 1, y: 2};
			p.x = 99;
			print p;
			print p.y;
		}
	`)
	want := "{x:99,y:2}\n2\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestValueSemanticsArrayAssignmentDoesNotAlias(t *testing.T) {
	out := run(t, `
		void main() {
			int[] a = [1, 2, 3];
			int[] b = a;
			b[0] = 999;
			print a[0];
			print b[0];
		}
	`)
	want := "1\n999\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestValueSemanticsRecordArgumentDoesNotAlias(t *testing.T) {
	out := run(t, `
		type Point is {int x};
		void mutate(Point p) { p.x = 999; }
		void main() {
			Point p = {x: 1};
			mutate(p);
			print p.x;
		}
	`)
	if out != "1\n" {
		t.Errorf("output = %q, want %q", out, "1\n")
	}
}

func TestStructuralEqualityOfArrays(t *testing.T) {
	out := run(t, `
		void main() {
			int[] a = [1, 2, 3];
			int[] b = [1, 2, 3];
			print a == b;
			b[0] = 9;
			print a == b;
		}
	`)
	want := "true\nfalse\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestAssertionFailureAborts(t *testing.T) {
	p, err := parser.New(`void main() { assert 1 == 2; }`, "test.while")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	source := `void main() { assert 1 == 2; }`
	if err := semantic.New("test.while", source).Analyze(prog); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	var buf bytes.Buffer
	i := New(prog, &buf, "test.while", source)
	if _, err := i.RunMain(); err == nil {
		t.Fatalf("expected an assertion failure error")
	}
}

func TestOutOfBoundsIndexIsRuntimeError(t *testing.T) {
	source := `void main() { int[] xs = [1]; print xs[5]; }`
	p, err := parser.New(source, "test.while")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	if err := semantic.New("test.while", source).Analyze(prog); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	var buf bytes.Buffer
	i := New(prog, &buf, "test.while", source)
	if _, err := i.RunMain(); err == nil {
		t.Fatalf("expected an out-of-bounds runtime error")
	}
}
