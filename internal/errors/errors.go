// Package errors provides the diagnostic type shared by every compiler pass:
// a single error kind, a source span, and a message, with source-context
// formatting for terminal output.
package errors

import (
	"fmt"
	"strings"

	"github.com/zoltan-nz/whilelang/internal/token"
)

// Kind classifies a CompilerError by which pass raised it.
type Kind int

const (
	LexicalError Kind = iota
	SyntaxError
	TypeError
	UnreachableCodeError
	MissingReturnError
	DefiniteAssignmentError
	RuntimeError
	InternalError
)

var kindNames = map[Kind]string{
	LexicalError:            "LexicalError",
	SyntaxError:             "SyntaxError",
	TypeError:               "TypeError",
	UnreachableCodeError:    "UnreachableCodeError",
	MissingReturnError:      "MissingReturnError",
	DefiniteAssignmentError: "DefiniteAssignmentError",
	RuntimeError:            "RuntimeError",
	InternalError:           "InternalError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UnknownError"
}

// CompilerError is the single diagnostic type raised by every pass. Each
// pass aborts on the first error it raises; there is no local recovery.
type CompilerError struct {
	Kind    Kind
	Message string
	Span    token.Span
	File    string
	Source  string // full source text, for pretty-printing; may be empty
	Cause   error  // wrapped internal cause, surfaced only with -verbose
}

func New(kind Kind, span token.Span, format string, args ...any) *CompilerError {
	return &CompilerError{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

func (e *CompilerError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.fileOrStdin(), e.Span.Start.Line, e.Span.Start.Column, e.Message)
}

func (e *CompilerError) Unwrap() error { return e.Cause }

func (e *CompilerError) fileOrStdin() string {
	if e.File == "" {
		return "<input>"
	}
	return e.File
}

// WithFile attaches the source file name used when formatting diagnostics.
func (e *CompilerError) WithFile(file, source string) *CompilerError {
	e.File = file
	e.Source = source
	return e
}

// Format renders the diagnostic as `filename:line:col: message`, followed
// by the offending source line and a caret pointing at the column, plus,
// when verbose is true, the wrapped internal failure trail.
func (e *CompilerError) Format(verbose bool) string {
	var sb strings.Builder

	sb.WriteString(e.Error())
	sb.WriteByte('\n')

	if line := sourceLine(e.Source, e.Span.Start.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Span.Start.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Span.Start.Column-1))
		sb.WriteString("^\n")
	}

	if verbose {
		for cause := e.Cause; cause != nil; cause = unwrap(cause) {
			sb.WriteString("  caused by: ")
			sb.WriteString(cause.Error())
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func unwrap(err error) error {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return u.Unwrap()
	}
	return nil
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatErrors renders one or more diagnostics, numbering them when there is
// more than one.
func FormatErrors(errs []*CompilerError, verbose bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(verbose)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(errs))
		sb.WriteString(e.Format(verbose))
		if i < len(errs)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
