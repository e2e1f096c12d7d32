package wlang_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zoltan-nz/whilelang/pkg/wlang"
)

func TestRunImplicitPrintForNonVoidMain(t *testing.T) {
	var out bytes.Buffer
	engine := wlang.New(wlang.WithOutput(&out))

	err := engine.Run(`int main() { return 1 + 2; }`, "<test>")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := out.String(); got != "3\n" {
		t.Fatalf("output = %q, want %q", got, "3\n")
	}
}

func TestRunDoesNotDoublePrintForVoidMain(t *testing.T) {
	var out bytes.Buffer
	engine := wlang.New(wlang.WithOutput(&out))

	err := engine.Run(`void main() { print 42; }`, "<test>")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := out.String(); got != "42\n" {
		t.Fatalf("output = %q, want %q", got, "42\n")
	}
}

func TestRunWithNoMainIsNotAnError(t *testing.T) {
	var out bytes.Buffer
	engine := wlang.New(wlang.WithOutput(&out))

	err := engine.Run(`int square(int n) { return n * n; }`, "<test>")
	if err != nil {
		t.Fatalf("Run returned error for a program with no main: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestCompileReportsTypeErrorsByDefault(t *testing.T) {
	engine := wlang.New(wlang.WithOutput(&bytes.Buffer{}))

	_, err := engine.Compile(`void main() { int x; x = "oops"; }`, "<test>")
	if err == nil {
		t.Fatal("expected a type error, got none")
	}
}

func TestCompileSkipsTypeCheckWhenDisabled(t *testing.T) {
	engine := wlang.New(wlang.WithOutput(&bytes.Buffer{}), wlang.WithTypeCheck(false))

	// Mismatched types, but type checking is off: parsing alone should succeed.
	prog, err := engine.Compile(`void main() { int x; x = "oops"; }`, "<test>")
	if err != nil {
		t.Fatalf("Compile with type checking disabled returned error: %v", err)
	}
	if prog == nil {
		t.Fatal("expected a parsed program")
	}
}

func TestRunWithTypeCheckDisabledStillExecutes(t *testing.T) {
	var out bytes.Buffer
	engine := wlang.New(wlang.WithOutput(&out), wlang.WithTypeCheck(false))

	err := engine.Run(`int main() { return 10; }`, "<test>")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := out.String(); got != "10\n" {
		t.Fatalf("output = %q, want %q", got, "10\n")
	}
}

func TestRunPropagatesRuntimeErrors(t *testing.T) {
	engine := wlang.New(wlang.WithOutput(&bytes.Buffer{}))

	err := engine.Run(`int main() { return 1 / 0; }`, "<test>")
	if err == nil {
		t.Fatal("expected a runtime error for division by zero")
	}
}

func TestCompileReportsSyntaxErrors(t *testing.T) {
	engine := wlang.New(wlang.WithOutput(&bytes.Buffer{}))

	_, err := engine.Compile(`void main() { print }`, "<test>")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if !strings.Contains(err.Error(), "<test>") {
		t.Fatalf("expected error to reference the given filename, got: %v", err)
	}
}
