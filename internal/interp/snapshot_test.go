package interp_test

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/zoltan-nz/whilelang/internal/interp"
	"github.com/zoltan-nz/whilelang/internal/parser"
	"github.com/zoltan-nz/whilelang/internal/semantic"
	"github.com/zoltan-nz/whilelang/internal/semantic/passes"
)

// runProgram parses, analyzes and interprets source, returning everything
// it printed.
func runProgram(t *testing.T, name, source string) string {
	t.Helper()

	p, err := parser.New(source, name)
	if err != nil {
		t.Fatalf("%s: parser.New: %v", name, err)
	}
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("%s: ParseProgram: %v", name, err)
	}

	analyzer := semantic.New(name, source)
	if err := analyzer.Analyze(prog); err != nil {
		t.Fatalf("%s: Analyze: %v", name, err)
	}
	if err := passes.NewUnreachable(analyzer, name, source).Check(prog); err != nil {
		t.Fatalf("%s: unreachable check: %v", name, err)
	}
	if err := passes.NewDefiniteAssignment(name, source).Check(prog); err != nil {
		t.Fatalf("%s: definite-assignment check: %v", name, err)
	}

	var out bytes.Buffer
	ip := interp.New(prog, &out, name, source)
	if ip.HasMain() {
		if _, err := ip.RunMain(); err != nil {
			t.Fatalf("%s: RunMain: %v", name, err)
		}
	}
	return out.String()
}

func TestInterpreterOutputSnapshots(t *testing.T) {
	programs := []struct {
		name   string
		source string
	}{
		{
			name: "fizzbuzz",
			source: `void main() {
  int i;
  i = 1;
  while (i <= 15) {
    if (i % 15 == 0) { print "fizzbuzz"; }
    else if (i % 3 == 0) { print "fizz"; }
    else if (i % 5 == 0) { print "buzz"; }
    else { print i; }
    i = i + 1;
  }
}`,
		},
		{
			name: "records-and-arrays",
			source: `type point is {int x, int y};

point translate(point p, int dx, int dy) {
  return {x: p.x + dx, y: p.y + dy};
}

void main() {
  point[] pts;
  pts = [{x: 0, y: 0}, {x: 1, y: 1}];
  int i;
  i = 0;
  while (i < |pts|) {
    print translate(pts[i], 10, 20);
    i = i + 1;
  }
}`,
		},
		{
			name: "fibonacci-recursive",
			source: `int fib(int n) {
  if (n < 2) { return n; }
  return fib(n - 1) + fib(n - 2);
}

void main() {
  int i;
  i = 0;
  for (int j = 0; j < 10; j = j + 1;) {
    print fib(j);
  }
}`,
		},
	}

	for _, tc := range programs {
		t.Run(tc.name, func(t *testing.T) {
			output := runProgram(t, tc.name, tc.source)
			snaps.MatchSnapshot(t, output)
		})
	}
}
