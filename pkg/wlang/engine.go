// Package wlang is the embeddable facade over the While language's
// compiler pipeline and interpreter: Compile runs the scanner, parser,
// and (unless disabled) the three semantic passes; Run additionally
// interprets the result, driving a zero-argument `main` the way the
// command line does. The lexer -> parser -> semantic -> interp wiring is
// factored into a reusable, functional-options Engine so both the CLI and
// library callers share one code path.
package wlang

import (
	"fmt"
	"io"
	"os"

	"github.com/zoltan-nz/whilelang/internal/ast"
	"github.com/zoltan-nz/whilelang/internal/interp"
	"github.com/zoltan-nz/whilelang/internal/parser"
	"github.com/zoltan-nz/whilelang/internal/semantic"
	"github.com/zoltan-nz/whilelang/internal/semantic/passes"
)

// Engine holds the configuration shared across Compile and Run calls.
type Engine struct {
	output    io.Writer
	typeCheck bool
	verbose   bool
}

// Option configures an Engine built by New.
type Option func(*Engine)

// WithOutput redirects `print` output; the default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.output = w }
}

// WithTypeCheck toggles the three semantic passes (type checking,
// unreachable-code, definite assignment). Default true; disabling it is
// for debugging malformed programs, e.g. to dump the raw parsed AST.
func WithTypeCheck(enabled bool) Option {
	return func(e *Engine) { e.typeCheck = enabled }
}

// WithVerbose enables diagnostic messages on stderr (missing main, etc).
func WithVerbose(v bool) Option {
	return func(e *Engine) { e.verbose = v }
}

// New builds an Engine with sensible defaults (type checking on, output
// to stdout), then applies opts.
func New(opts ...Option) *Engine {
	e := &Engine{output: os.Stdout, typeCheck: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compile scans and parses source, then runs the semantic passes unless
// WithTypeCheck(false) was given. It returns the parsed *ast.Program.
func (e *Engine) Compile(source, filename string) (*ast.Program, error) {
	p, err := parser.New(source, filename)
	if err != nil {
		return nil, err
	}
	prog, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	if !e.typeCheck {
		return prog, nil
	}

	analyzer := semantic.New(filename, source)
	if err := analyzer.Analyze(prog); err != nil {
		return nil, err
	}
	if err := passes.NewUnreachable(analyzer, filename, source).Check(prog); err != nil {
		return nil, err
	}
	if err := passes.NewDefiniteAssignment(filename, source).Check(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// Run compiles source and, if it declares a zero-argument `main`, invokes
// it the way the CLI does: an implicit `print main();` driver for a
// non-void main, or a plain invocation for a void one. A program with no
// such main is reported on stderr when verbose, never as an error.
func (e *Engine) Run(source, filename string) error {
	prog, err := e.Compile(source, filename)
	if err != nil {
		return err
	}

	interpreter := interp.New(prog, e.output, filename, source)
	if !interpreter.HasMain() {
		if e.verbose {
			fmt.Fprintln(os.Stderr, "no zero-argument main method found; nothing to run")
		}
		return nil
	}

	result, err := interpreter.RunMain()
	if err != nil {
		return err
	}
	if !mainReturnsVoid(prog) {
		fmt.Fprintln(e.output, result.String())
	}
	return nil
}

// mainReturnsVoid reports whether the program's zero-argument `main` is
// declared to return void. Named-type aliases of void are not unfolded
// here: a program that spells main's return type as an alias of void
// instead of the literal keyword is vanishingly unlikely and, should it
// occur, only costs an extra blank-looking print of "null".
func mainReturnsVoid(prog *ast.Program) bool {
	for _, d := range prog.Declarations {
		m, ok := d.(*ast.MethodDecl)
		if !ok || m.Name != "main" || len(m.Params) != 0 {
			continue
		}
		prim, ok := m.ReturnType.(*ast.PrimitiveTypeExpr)
		return ok && prim.Name == "void"
	}
	return true
}
