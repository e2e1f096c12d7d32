package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/zoltan-nz/whilelang/internal/token"
)

func span(line, col int) token.Span {
	pos := token.Position{Line: line, Column: col}
	return token.Span{Start: pos, End: pos}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{LexicalError, "LexicalError"},
		{SyntaxError, "SyntaxError"},
		{TypeError, "TypeError"},
		{UnreachableCodeError, "UnreachableCodeError"},
		{MissingReturnError, "MissingReturnError"},
		{DefiniteAssignmentError, "DefiniteAssignmentError"},
		{RuntimeError, "RuntimeError"},
		{InternalError, "InternalError"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestNewFormatsMessageWithArgs(t *testing.T) {
	err := New(TypeError, span(3, 7), "expected %s, got %s", "int", "bool")
	if err.Message != "expected int, got bool" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Kind != TypeError {
		t.Errorf("Kind = %v, want TypeError", err.Kind)
	}
}

func TestErrorUsesInputWhenNoFileAttached(t *testing.T) {
	err := New(SyntaxError, span(1, 1), "unexpected token")
	if got, want := err.Error(), "<input>:1:1: unexpected token"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWithFileAttachesFileAndSource(t *testing.T) {
	err := New(SyntaxError, span(2, 3), "bad token")
	err.WithFile("prog.while", "line one\nline two")
	if got, want := err.Error(), "prog.while:2:3: bad token"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFormatIncludesSourceLineAndCaret(t *testing.T) {
	source := "void main() {\n  int x;\n  x = ;\n}"
	err := New(SyntaxError, span(3, 7), "expected an expression")
	err.WithFile("prog.while", source)

	out := err.Format(false)
	if !strings.Contains(out, "prog.while:3:7: expected an expression") {
		t.Errorf("Format output missing diagnostic line: %q", out)
	}
	if !strings.Contains(out, "  x = ;") {
		t.Errorf("Format output missing source line: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("Format output missing caret: %q", out)
	}
}

func TestFormatOmitsCauseUnlessVerbose(t *testing.T) {
	cause := errors.New("underlying failure")
	err := &CompilerError{Kind: InternalError, Message: "wrapped", Span: span(1, 1), Cause: cause}

	quiet := err.Format(false)
	if strings.Contains(quiet, "underlying failure") {
		t.Errorf("non-verbose Format leaked the cause: %q", quiet)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "underlying failure") {
		t.Errorf("verbose Format did not include the cause: %q", verbose)
	}
}

func TestUnwrapReturnsCause(t *testing.T) {
	cause := errors.New("boom")
	err := &CompilerError{Kind: RuntimeError, Message: "failed", Span: span(1, 1), Cause: cause}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap did not return the wrapped cause")
	}
}

func TestFormatErrorsSingle(t *testing.T) {
	err := New(TypeError, span(1, 1), "bad type")
	out := FormatErrors([]*CompilerError{err}, false)
	if !strings.Contains(out, "bad type") {
		t.Errorf("FormatErrors = %q", out)
	}
	if strings.Contains(out, "compilation failed with") {
		t.Errorf("single-error FormatErrors should not number the error: %q", out)
	}
}

func TestFormatErrorsNumbersMultiple(t *testing.T) {
	errs := []*CompilerError{
		New(TypeError, span(1, 1), "first"),
		New(TypeError, span(2, 1), "second"),
	}
	out := FormatErrors(errs, false)
	if !strings.Contains(out, "compilation failed with 2 error(s)") {
		t.Errorf("FormatErrors missing count header: %q", out)
	}
	if !strings.Contains(out, "[1/2]") || !strings.Contains(out, "[2/2]") {
		t.Errorf("FormatErrors missing numbering: %q", out)
	}
}

func TestFormatErrorsEmpty(t *testing.T) {
	if out := FormatErrors(nil, false); out != "" {
		t.Errorf("FormatErrors(nil) = %q, want empty string", out)
	}
}
