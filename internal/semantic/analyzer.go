// Package semantic implements the multi-pass semantic analyzer: a type
// checker that elaborates the parsed AST with a computed type on every
// expression, plus the unreachable-code and definite-assignment passes in
// the passes subpackage.
package semantic

import (
	"github.com/zoltan-nz/whilelang/internal/ast"
	"github.com/zoltan-nz/whilelang/internal/errors"
	"github.com/zoltan-nz/whilelang/internal/token"
	"github.com/zoltan-nz/whilelang/internal/types"
)

// methodSig is a method's elaborated signature, registered up front so
// forward calls between methods resolve.
type methodSig struct {
	decl       *ast.MethodDecl
	returnType *types.Type
	paramTypes []*types.Type
}

// Analyzer elaborates an *ast.Program in place: every ast.Expression gets
// its computed *types.Type attached via Expression.SetType.
type Analyzer struct {
	typeAliases map[string]ast.TypeExpression
	methods     map[string]*methodSig

	file   string
	source string
}

// New creates an Analyzer for diagnostics attributed to filename's source.
func New(file, source string) *Analyzer {
	return &Analyzer{
		typeAliases: map[string]ast.TypeExpression{},
		methods:     map[string]*methodSig{},
		file:        file,
		source:      source,
	}
}

// Analyze runs both phases: register every type
// alias and method signature, then re-visit each type alias body and each
// method body. It aborts and returns the first error raised, attributing
// TypeError to it.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	for _, d := range prog.Declarations {
		if alias, ok := d.(*ast.TypeAliasDecl); ok {
			a.typeAliases[alias.Name] = alias.Body
		}
	}
	for _, d := range prog.Declarations {
		if alias, ok := d.(*ast.TypeAliasDecl); ok {
			if _, err := a.elaborateType(alias.Body); err != nil {
				return err
			}
		}
	}
	for _, d := range prog.Declarations {
		method, ok := d.(*ast.MethodDecl)
		if !ok {
			continue
		}
		sig, err := a.registerMethodSig(method)
		if err != nil {
			return err
		}
		a.methods[method.Name] = sig
	}
	for _, d := range prog.Declarations {
		method, ok := d.(*ast.MethodDecl)
		if !ok {
			continue
		}
		if err := a.checkMethodBody(method, a.methods[method.Name]); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) registerMethodSig(method *ast.MethodDecl) (*methodSig, error) {
	retType, err := a.elaborateType(method.ReturnType)
	if err != nil {
		return nil, err
	}
	paramTypes := make([]*types.Type, len(method.Params))
	for i, param := range method.Params {
		pt, err := a.elaborateType(param.Type)
		if err != nil {
			return nil, err
		}
		if a.isEffectivelyVoid(pt) {
			return nil, a.typeErrorf(param.Type.Span(), "parameter %q may not have type void", param.Name)
		}
		paramTypes[i] = pt
	}
	return &methodSig{decl: method, returnType: retType, paramTypes: paramTypes}, nil
}

// Resolve implements types.Resolver: a named type's body is looked up in
// the alias table and elaborated, once, on demand.
func (a *Analyzer) Resolve(name string) (*types.Type, bool) {
	body, ok := a.typeAliases[name]
	if !ok {
		return nil, false
	}
	t, err := a.elaborateType(body)
	if err != nil {
		return nil, false
	}
	return t, true
}

// elaborateType converts a syntactic TypeExpression into a types.Type.
// Named references are never expanded here, only wrapped, because the
// parser's declare-before-use rule for type aliases already guarantees the
// alias table is acyclic and finite; expansion happens lazily through
// Resolve, one level at a time, exactly where SubtypeOf/Unfold need it.
func (a *Analyzer) elaborateType(te ast.TypeExpression) (*types.Type, error) {
	switch t := te.(type) {
	case *ast.PrimitiveTypeExpr:
		return elaboratePrimitive(t.Name), nil
	case *ast.ArrayTypeExpr:
		elem, err := a.elaborateType(t.Elem)
		if err != nil {
			return nil, err
		}
		if a.isEffectivelyVoid(elem) {
			return nil, a.typeErrorf(t.Span(), "array element type may not be void")
		}
		return types.NewArray(elem), nil
	case *ast.RecordTypeExpr:
		fields := make([]types.RecordField, len(t.Fields))
		for i, f := range t.Fields {
			ft, err := a.elaborateType(f.Type)
			if err != nil {
				return nil, err
			}
			if a.isEffectivelyVoid(ft) {
				return nil, a.typeErrorf(f.Type.Span(), "record field %q may not have type void", f.Name)
			}
			fields[i] = types.RecordField{Type: ft, Name: f.Name}
		}
		return types.NewRecord(fields), nil
	case *ast.NamedTypeExpr:
		if _, ok := a.typeAliases[t.Name]; !ok {
			return nil, a.typeErrorf(t.Span(), "undeclared type %q", t.Name)
		}
		return types.NewNamed(t.Name), nil
	default:
		return nil, a.typeErrorf(te.Span(), "unsupported type expression %T", te)
	}
}

func elaboratePrimitive(name string) *types.Type {
	switch name {
	case "void":
		return types.VoidType
	case "bool":
		return types.BoolType
	case "int":
		return types.IntType
	case "char":
		return types.CharType
	case "string":
		return types.StringType
	default:
		return types.VoidType
	}
}

// isEffectivelyVoid unfolds named types (finitely, by construction) to
// decide whether t ultimately denotes void.
func (a *Analyzer) isEffectivelyVoid(t *types.Type) bool {
	t, ok := a.fullyResolve(t)
	return ok && t.IsVoid()
}

// fullyResolve unfolds a chain of Named types until a non-Named body is
// reached. This always terminates because the parser's declare-before-use
// rule for type aliases makes the alias table acyclic and finite.
func (a *Analyzer) fullyResolve(t *types.Type) (*types.Type, bool) {
	for t.IsNamed() {
		resolved, ok := a.Resolve(t.Name)
		if !ok {
			return nil, false
		}
		t = resolved
	}
	return t, true
}

func (a *Analyzer) typeErrorf(span token.Span, format string, args ...any) error {
	return a.newError(errors.TypeError, span, format, args...)
}

func (a *Analyzer) newError(kind errors.Kind, span token.Span, format string, args ...any) error {
	e := errors.New(kind, span, format, args...)
	e.WithFile(a.file, a.source)
	return e
}

