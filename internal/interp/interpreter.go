package interp

import (
	"fmt"
	"io"

	"github.com/zoltan-nz/whilelang/internal/ast"
	"github.com/zoltan-nz/whilelang/internal/errors"
	"github.com/zoltan-nz/whilelang/internal/token"
)

// signalKind is how a block or statement's execution ends: by falling off
// the end (sigNone), by break/continue, or by return.
type signalKind int

const (
	sigNone signalKind = iota
	sigBreak
	sigContinue
	sigReturn
)

type signal struct {
	kind  signalKind
	value Value
}

// Interpreter is a tree-walking evaluator over a type-checked *ast.Program:
// a flat method registry plus an output writer. There are no classes,
// units or exceptions, so control flow is threaded through return values
// rather than signal flags on the interpreter itself.
type Interpreter struct {
	methods map[string]*ast.MethodDecl
	output  io.Writer
	file    string
	source  string
}

// New builds an Interpreter over prog's method declarations.
func New(prog *ast.Program, output io.Writer, file, source string) *Interpreter {
	methods := map[string]*ast.MethodDecl{}
	for _, d := range prog.Declarations {
		if m, ok := d.(*ast.MethodDecl); ok {
			methods[m.Name] = m
		}
	}
	return &Interpreter{methods: methods, output: output, file: file, source: source}
}

// HasMain reports whether a zero-parameter `main` method exists: the
// interpreter's automatically-invoked entry point.
func (i *Interpreter) HasMain() bool {
	m, ok := i.methods["main"]
	return ok && len(m.Params) == 0
}

// RunMain invokes `main` with no arguments and returns its result value.
// Callers must check HasMain first; its absence is reported non-fatally
// by the caller, not as an interpreter error.
func (i *Interpreter) RunMain() (Value, error) {
	return i.call("main", nil, token.Span{})
}

// call invokes method name with already-evaluated, already-cloned
// arguments, running its body in a fresh per-invocation frame.
func (i *Interpreter) call(name string, args []Value, callSpan token.Span) (Value, error) {
	method, ok := i.methods[name]
	if !ok {
		return nil, i.runtimeErrorf(callSpan, "call to undeclared method %q", name)
	}
	frame := NewEnvironment()
	for idx, p := range method.Params {
		frame.Define(p.Name, args[idx])
	}
	sig, err := i.execBlock(NewEnclosedEnvironment(frame), method.Body)
	if err != nil {
		return nil, err
	}
	if sig.kind == sigReturn {
		return sig.value, nil
	}
	return NullValue{}, nil
}

// execBlock runs block's statements in a freshly enclosed scope of env,
// stopping as soon as a statement's signal is anything but sigNone.
func (i *Interpreter) execBlock(env *Environment, block *ast.BlockStmt) (signal, error) {
	inner := NewEnclosedEnvironment(env)
	for _, stmt := range block.Stmts {
		sig, err := i.execStmt(inner, stmt)
		if err != nil {
			return signal{}, err
		}
		if sig.kind != sigNone {
			return sig, nil
		}
	}
	return signal{kind: sigNone}, nil
}

func (i *Interpreter) execStmt(env *Environment, stmt ast.Statement) (signal, error) {
	switch s := stmt.(type) {
	case *ast.AssertStmt:
		return i.execAssertStmt(env, s)
	case *ast.PrintStmt:
		return i.execPrintStmt(env, s)
	case *ast.VarDeclStmt:
		return i.execVarDeclStmt(env, s)
	case *ast.AssignStmt:
		return i.execAssignStmt(env, s)
	case *ast.ReturnStmt:
		return i.execReturnStmt(env, s)
	case *ast.BreakStmt:
		return signal{kind: sigBreak}, nil
	case *ast.ContinueStmt:
		return signal{kind: sigContinue}, nil
	case *ast.IfStmt:
		return i.execIfStmt(env, s)
	case *ast.WhileStmt:
		return i.execWhileStmt(env, s)
	case *ast.ForStmt:
		return i.execForStmt(env, s)
	case *ast.InvokeStmt:
		_, err := i.evalInvoke(env, s.Call)
		return signal{kind: sigNone}, err
	case *ast.BlockStmt:
		return i.execBlock(env, s)
	default:
		return signal{}, i.runtimeErrorf(stmt.Span(), "unsupported statement %T", stmt)
	}
}

func (i *Interpreter) execAssertStmt(env *Environment, s *ast.AssertStmt) (signal, error) {
	v, err := i.evalExpr(env, s.Expr)
	if err != nil {
		return signal{}, err
	}
	if !bool(v.(BoolValue)) {
		return signal{}, i.runtimeErrorf(s.Span(), "assertion failed: %s", s.Expr.String())
	}
	return signal{kind: sigNone}, nil
}

func (i *Interpreter) execPrintStmt(env *Environment, s *ast.PrintStmt) (signal, error) {
	v, err := i.evalExpr(env, s.Expr)
	if err != nil {
		return signal{}, err
	}
	fmt.Fprintln(i.output, v.String())
	return signal{kind: sigNone}, nil
}

func (i *Interpreter) execVarDeclStmt(env *Environment, s *ast.VarDeclStmt) (signal, error) {
	if s.Init == nil {
		env.Define(s.Name, uninitialized{})
		return signal{kind: sigNone}, nil
	}
	v, err := i.evalExpr(env, s.Init)
	if err != nil {
		return signal{}, err
	}
	env.Define(s.Name, v.Clone())
	return signal{kind: sigNone}, nil
}

func (i *Interpreter) execAssignStmt(env *Environment, s *ast.AssignStmt) (signal, error) {
	v, err := i.evalExpr(env, s.Value)
	if err != nil {
		return signal{}, err
	}
	cloned := v.Clone()

	switch target := s.Target.(type) {
	case *ast.Identifier:
		env.Set(target.Name, cloned)

	case *ast.IndexExpr:
		base, err := i.evalExpr(env, target.Source)
		if err != nil {
			return signal{}, err
		}
		idxVal, err := i.evalExpr(env, target.Index)
		if err != nil {
			return signal{}, err
		}
		arr, ok := base.(*ArrayValue)
		if !ok {
			return signal{}, i.runtimeErrorf(target.Span(), "cannot index a non-array value")
		}
		idx := int(idxVal.(IntValue))
		if idx < 0 || idx >= len(arr.Elements) {
			return signal{}, i.runtimeErrorf(target.Span(), "index %d out of bounds for array of length %d", idx, len(arr.Elements))
		}
		arr.Elements[idx] = cloned

	case *ast.RecordAccessExpr:
		base, err := i.evalExpr(env, target.Source)
		if err != nil {
			return signal{}, err
		}
		rec, ok := base.(*RecordValue)
		if !ok {
			return signal{}, i.runtimeErrorf(target.Span(), "cannot access a field of a non-record value")
		}
		rec.SetField(target.Field, cloned)

	default:
		return signal{}, i.runtimeErrorf(s.Span(), "unsupported assignment target %T", target)
	}
	return signal{kind: sigNone}, nil
}

func (i *Interpreter) execReturnStmt(env *Environment, s *ast.ReturnStmt) (signal, error) {
	if s.Value == nil {
		return signal{kind: sigReturn, value: NullValue{}}, nil
	}
	v, err := i.evalExpr(env, s.Value)
	if err != nil {
		return signal{}, err
	}
	return signal{kind: sigReturn, value: v}, nil
}

func (i *Interpreter) execIfStmt(env *Environment, s *ast.IfStmt) (signal, error) {
	cond, err := i.evalExpr(env, s.Cond)
	if err != nil {
		return signal{}, err
	}
	if bool(cond.(BoolValue)) {
		return i.execBlock(env, s.Then)
	}
	if s.Else == nil {
		return signal{kind: sigNone}, nil
	}
	return i.execStmt(env, s.Else)
}

func (i *Interpreter) execWhileStmt(env *Environment, s *ast.WhileStmt) (signal, error) {
	for {
		cond, err := i.evalExpr(env, s.Cond)
		if err != nil {
			return signal{}, err
		}
		if !bool(cond.(BoolValue)) {
			return signal{kind: sigNone}, nil
		}
		sig, err := i.execBlock(env, s.Body)
		if err != nil {
			return signal{}, err
		}
		switch sig.kind {
		case sigBreak:
			return signal{kind: sigNone}, nil
		case sigReturn:
			return sig, nil
		case sigContinue, sigNone:
			// fall through to the next iteration
		}
	}
}

func (i *Interpreter) execForStmt(env *Environment, s *ast.ForStmt) (signal, error) {
	scope := NewEnclosedEnvironment(env)
	if _, err := i.execVarDeclStmt(scope, s.Decl); err != nil {
		return signal{}, err
	}
	for {
		cond, err := i.evalExpr(scope, s.Cond)
		if err != nil {
			return signal{}, err
		}
		if !bool(cond.(BoolValue)) {
			return signal{kind: sigNone}, nil
		}
		sig, err := i.execBlock(scope, s.Body)
		if err != nil {
			return signal{}, err
		}
		switch sig.kind {
		case sigBreak:
			return signal{kind: sigNone}, nil
		case sigReturn:
			return sig, nil
		}
		if s.Step != nil {
			if _, err := i.execStmt(scope, s.Step); err != nil {
				return signal{}, err
			}
		}
	}
}

func (i *Interpreter) runtimeErrorf(span token.Span, format string, args ...any) error {
	e := errors.New(errors.RuntimeError, span, format, args...)
	e.WithFile(i.file, i.source)
	return e
}

// uninitialized is the sentinel installed for a variable declared without
// an initialiser. The definite-assignment pass guarantees it is never
// read; String/Clone exist only so it satisfies Value.
type uninitialized struct{}

func (uninitialized) Kind() string   { return "uninitialized" }
func (uninitialized) String() string { return "<uninitialized>" }
func (uninitialized) Clone() Value   { return uninitialized{} }
