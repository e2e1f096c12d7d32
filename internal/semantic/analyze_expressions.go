package semantic

import (
	"github.com/zoltan-nz/whilelang/internal/ast"
	"github.com/zoltan-nz/whilelang/internal/token"
	"github.com/zoltan-nz/whilelang/internal/types"
)

// checkExpr elaborates expr within env, attaches the computed type to the
// node, and returns it.
func (a *Analyzer) checkExpr(env *symbolTable, expr ast.Expression) (*types.Type, error) {
	var t *types.Type
	var err error

	switch e := expr.(type) {
	case *ast.IntLiteral:
		t = types.IntType
	case *ast.CharLiteral:
		t = types.CharType
	case *ast.StringLiteral:
		t = types.StringType
	case *ast.BoolLiteral:
		t = types.BoolType
	case *ast.NullLiteral:
		t = types.VoidType // bottom: assignable anywhere, per the void-is-bottom rule
	case *ast.Identifier:
		t, err = a.checkIdentifier(env, e)
	case *ast.BinaryExpr:
		t, err = a.checkBinary(env, e)
	case *ast.UnaryExpr:
		t, err = a.checkUnary(env, e)
	case *ast.IndexExpr:
		t, err = a.checkIndex(env, e)
	case *ast.RecordAccessExpr:
		t, err = a.checkRecordAccess(env, e)
	case *ast.RecordConstructorExpr:
		t, err = a.checkRecordConstructor(env, e)
	case *ast.ArrayInitExpr:
		t, err = a.checkArrayInit(env, e)
	case *ast.ArrayGeneratorExpr:
		t, err = a.checkArrayGenerator(env, e)
	case *ast.InvokeExpr:
		t, err = a.checkInvoke(env, e, false)
	default:
		err = a.typeErrorf(expr.Span(), "unsupported expression %T", expr)
	}
	if err != nil {
		return nil, err
	}
	expr.SetType(t)
	return t, nil
}

func (a *Analyzer) checkIdentifier(env *symbolTable, id *ast.Identifier) (*types.Type, error) {
	declared, ok := env.resolve(id.Name)
	if !ok {
		return nil, a.typeErrorf(id.Span(), "undeclared variable %q", id.Name)
	}
	return a.elaborateType(declared)
}

func (a *Analyzer) checkBinary(env *symbolTable, e *ast.BinaryExpr) (*types.Type, error) {
	left, err := a.checkExpr(env, e.Left)
	if err != nil {
		return nil, err
	}
	right, err := a.checkExpr(env, e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.ADD, ast.SUB, ast.MUL, ast.DIV, ast.REM:
		if !left.IsInt() || !right.IsInt() {
			return nil, a.typeErrorf(e.Span(), "operator %s requires int operands, got %s and %s", e.Op, left, right)
		}
		return types.IntType, nil
	case ast.LT, ast.LTEQ, ast.GT, ast.GTEQ:
		if !left.IsInt() || !right.IsInt() {
			return nil, a.typeErrorf(e.Span(), "operator %s requires int operands, got %s and %s", e.Op, left, right)
		}
		return types.BoolType, nil
	case ast.EQ, ast.NEQ:
		return types.BoolType, nil
	case ast.AND, ast.OR:
		if !left.IsBool() || !right.IsBool() {
			return nil, a.typeErrorf(e.Span(), "operator %s requires bool operands, got %s and %s", e.Op, left, right)
		}
		return types.BoolType, nil
	default:
		return nil, a.typeErrorf(e.Span(), "unknown binary operator %v", e.Op)
	}
}

func (a *Analyzer) checkUnary(env *symbolTable, e *ast.UnaryExpr) (*types.Type, error) {
	operand, err := a.checkExpr(env, e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.NOT:
		if !operand.IsBool() {
			return nil, a.typeErrorf(e.Span(), "! requires a bool operand, got %s", operand)
		}
		return types.BoolType, nil
	case ast.NEG:
		if !operand.IsInt() {
			return nil, a.typeErrorf(e.Span(), "- requires an int operand, got %s", operand)
		}
		return types.IntType, nil
	case ast.LENGTHOF:
		resolved, ok := a.fullyResolve(operand)
		if !ok || (!resolved.IsArray() && resolved != types.StringType) {
			return nil, a.typeErrorf(e.Span(), "|...| requires an array or string operand, got %s", operand)
		}
		return types.IntType, nil
	default:
		return nil, a.typeErrorf(e.Span(), "unknown unary operator %v", e.Op)
	}
}

// checkIndex implements IndexOf(s,i): s is array-like (array or string), i
// is int, result is the element type (char for a string).
func (a *Analyzer) checkIndex(env *symbolTable, e *ast.IndexExpr) (*types.Type, error) {
	source, err := a.checkExpr(env, e.Source)
	if err != nil {
		return nil, err
	}
	index, err := a.checkExpr(env, e.Index)
	if err != nil {
		return nil, err
	}
	if !index.IsInt() {
		return nil, a.typeErrorf(e.Index.Span(), "index must be int, got %s", index)
	}
	resolved, ok := a.fullyResolve(source)
	if !ok {
		return nil, a.typeErrorf(e.Source.Span(), "cannot index into %s", source)
	}
	if resolved == types.StringType {
		return types.CharType, nil
	}
	if !resolved.IsArray() {
		return nil, a.typeErrorf(e.Source.Span(), "cannot index into %s", source)
	}
	return resolved.Elem, nil
}

// checkRecordAccess implements RecordAccess(s,f): s is a record containing
// f; missing field is an error.
func (a *Analyzer) checkRecordAccess(env *symbolTable, e *ast.RecordAccessExpr) (*types.Type, error) {
	source, err := a.checkExpr(env, e.Source)
	if err != nil {
		return nil, err
	}
	resolved, ok := a.fullyResolve(source)
	if !ok {
		return nil, a.typeErrorf(e.Source.Span(), "cannot access field %q on undeclared type %s", e.Field, source)
	}
	if resolved.Tag != types.RecordTag {
		return nil, a.typeErrorf(e.Source.Span(), "cannot access field %q on non-record type %s", e.Field, source)
	}
	field, ok := resolved.Field(e.Field)
	if !ok {
		return nil, a.typeErrorf(e.Span(), "record type %s has no field %q", source, e.Field)
	}
	return field.Type, nil
}

// checkRecordConstructor implements RecordConstructor: result is the
// record type built from the evaluated field types, in written order
// Duplicate field names were already rejected by the parser.
func (a *Analyzer) checkRecordConstructor(env *symbolTable, e *ast.RecordConstructorExpr) (*types.Type, error) {
	fields := make([]types.RecordField, len(e.Fields))
	for i, f := range e.Fields {
		ft, err := a.checkExpr(env, f.Value)
		if err != nil {
			return nil, err
		}
		fields[i] = types.RecordField{Type: ft, Name: f.Name}
	}
	return types.NewRecord(fields), nil
}

// checkArrayInit implements ArrayInitialiser: result LUB(type(e_i))[]; an
// empty initialiser has result void[].
func (a *Analyzer) checkArrayInit(env *symbolTable, e *ast.ArrayInitExpr) (*types.Type, error) {
	if len(e.Elements) == 0 {
		return types.NewArray(types.VoidType), nil
	}
	elemTypes := make([]*types.Type, len(e.Elements))
	for i, el := range e.Elements {
		t, err := a.checkExpr(env, el)
		if err != nil {
			return nil, err
		}
		elemTypes[i] = t
	}
	lub, err := types.LUB(elemTypes, a)
	if err != nil {
		return nil, a.typeErrorf(e.Span(), "%s", err)
	}
	return types.NewArray(lub), nil
}

// checkArrayGenerator implements ArrayGenerator(v, n): result type(v)[]; n
// must be int.
func (a *Analyzer) checkArrayGenerator(env *symbolTable, e *ast.ArrayGeneratorExpr) (*types.Type, error) {
	value, err := a.checkExpr(env, e.Value)
	if err != nil {
		return nil, err
	}
	size, err := a.checkExpr(env, e.Size)
	if err != nil {
		return nil, err
	}
	if !size.IsInt() {
		return nil, a.typeErrorf(e.Size.Span(), "array generator size must be int, got %s", size)
	}
	return types.NewArray(value), nil
}

// checkInvoke implements Invoke(m, args): m must be declared, arity and
// each argument's subtype relation against the parameter are checked; a
// void return is only permitted when allowVoid is set, i.e. the call is
// used as a statement rather than nested in an expression.
func (a *Analyzer) checkInvoke(env *symbolTable, e *ast.InvokeExpr, allowVoid bool) (*types.Type, error) {
	sig, ok := a.methods[e.Method]
	if !ok {
		return nil, a.typeErrorf(e.Span(), "call to undeclared method %q", e.Method)
	}
	if len(e.Args) != len(sig.paramTypes) {
		return nil, a.typeErrorf(e.Span(), "method %q expects %d argument(s), got %d", e.Method, len(sig.paramTypes), len(e.Args))
	}
	for i, arg := range e.Args {
		argType, err := a.checkExpr(env, arg)
		if err != nil {
			return nil, err
		}
		ok, err := types.SubtypeOf(argType, sig.paramTypes[i], a)
		if err != nil {
			return nil, a.wrapUnfoldErr(arg.Span(), err)
		}
		if !ok {
			return nil, a.typeErrorf(arg.Span(), "argument %d to %q: %s is not assignable to %s", i+1, e.Method, argType, sig.paramTypes[i])
		}
	}
	if !allowVoid && sig.returnType.IsVoid() {
		return nil, a.typeErrorf(e.Span(), "method %q returns void and cannot be used in an expression", e.Method)
	}
	return sig.returnType, nil
}

// wrapUnfoldErr turns an internal types package error (raised only on an
// unknown type name, which the parser's declare-before-use rule already
// rules out) into a TypeError with source context.
func (a *Analyzer) wrapUnfoldErr(span token.Span, err error) error {
	return a.typeErrorf(span, "%s", err)
}
