package interp

import (
	"github.com/zoltan-nz/whilelang/internal/ast"
)

// evalExpr evaluates expr in env to a Value. It never clones
// its result: cloning happens at the storage boundaries that consume it
// (assignment, declaration, call argument), per the value-semantics rule.
func (i *Interpreter) evalExpr(env *Environment, expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return IntValue(e.Value), nil
	case *ast.CharLiteral:
		return CharValue(e.Value), nil
	case *ast.StringLiteral:
		return StringValue(e.Value), nil
	case *ast.BoolLiteral:
		return BoolValue(e.Value), nil
	case *ast.NullLiteral:
		return NullValue{}, nil
	case *ast.Identifier:
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, i.runtimeErrorf(e.Span(), "undefined variable %q", e.Name)
		}
		return v, nil
	case *ast.BinaryExpr:
		return i.evalBinary(env, e)
	case *ast.UnaryExpr:
		return i.evalUnary(env, e)
	case *ast.IndexExpr:
		return i.evalIndex(env, e)
	case *ast.RecordAccessExpr:
		return i.evalRecordAccess(env, e)
	case *ast.RecordConstructorExpr:
		return i.evalRecordConstructor(env, e)
	case *ast.ArrayInitExpr:
		return i.evalArrayInit(env, e)
	case *ast.ArrayGeneratorExpr:
		return i.evalArrayGenerator(env, e)
	case *ast.InvokeExpr:
		return i.evalInvoke(env, e)
	default:
		return nil, i.runtimeErrorf(expr.Span(), "unsupported expression %T", expr)
	}
}

// evalBinary short-circuits && and ||, evaluating the right operand only
// when its value can change the result.
func (i *Interpreter) evalBinary(env *Environment, e *ast.BinaryExpr) (Value, error) {
	if e.Op == ast.AND || e.Op == ast.OR {
		left, err := i.evalExpr(env, e.Left)
		if err != nil {
			return nil, err
		}
		l := bool(left.(BoolValue))
		if e.Op == ast.AND && !l {
			return BoolValue(false), nil
		}
		if e.Op == ast.OR && l {
			return BoolValue(true), nil
		}
		right, err := i.evalExpr(env, e.Right)
		if err != nil {
			return nil, err
		}
		return BoolValue(bool(right.(BoolValue))), nil
	}

	left, err := i.evalExpr(env, e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(env, e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.EQ:
		return BoolValue(structuralEqual(left, right)), nil
	case ast.NEQ:
		return BoolValue(!structuralEqual(left, right)), nil
	}

	l, r := int32(left.(IntValue)), int32(right.(IntValue))
	switch e.Op {
	case ast.ADD:
		return IntValue(l + r), nil
	case ast.SUB:
		return IntValue(l - r), nil
	case ast.MUL:
		return IntValue(l * r), nil
	case ast.DIV:
		if r == 0 {
			return nil, i.runtimeErrorf(e.Span(), "division by zero")
		}
		return IntValue(l / r), nil
	case ast.REM:
		if r == 0 {
			return nil, i.runtimeErrorf(e.Span(), "division by zero")
		}
		return IntValue(l % r), nil
	case ast.LT:
		return BoolValue(l < r), nil
	case ast.LTEQ:
		return BoolValue(l <= r), nil
	case ast.GT:
		return BoolValue(l > r), nil
	case ast.GTEQ:
		return BoolValue(l >= r), nil
	default:
		return nil, i.runtimeErrorf(e.Span(), "unsupported binary operator %v", e.Op)
	}
}

func (i *Interpreter) evalUnary(env *Environment, e *ast.UnaryExpr) (Value, error) {
	v, err := i.evalExpr(env, e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.NOT:
		return BoolValue(!bool(v.(BoolValue))), nil
	case ast.NEG:
		return IntValue(-int32(v.(IntValue))), nil
	case ast.LENGTHOF:
		switch vv := v.(type) {
		case StringValue:
			return IntValue(len(vv)), nil
		case *ArrayValue:
			return IntValue(len(vv.Elements)), nil
		default:
			return nil, i.runtimeErrorf(e.Span(), "|...| requires an array or string operand")
		}
	default:
		return nil, i.runtimeErrorf(e.Span(), "unsupported unary operator %v", e.Op)
	}
}

func (i *Interpreter) evalIndex(env *Environment, e *ast.IndexExpr) (Value, error) {
	source, err := i.evalExpr(env, e.Source)
	if err != nil {
		return nil, err
	}
	idxVal, err := i.evalExpr(env, e.Index)
	if err != nil {
		return nil, err
	}
	idx := int(idxVal.(IntValue))

	switch s := source.(type) {
	case StringValue:
		if idx < 0 || idx >= len(s) {
			return nil, i.runtimeErrorf(e.Span(), "index %d out of bounds for string of length %d", idx, len(s))
		}
		return CharValue(s[idx]), nil
	case *ArrayValue:
		if idx < 0 || idx >= len(s.Elements) {
			return nil, i.runtimeErrorf(e.Span(), "index %d out of bounds for array of length %d", idx, len(s.Elements))
		}
		return s.Elements[idx], nil
	default:
		return nil, i.runtimeErrorf(e.Span(), "cannot index a %s value", source.Kind())
	}
}

func (i *Interpreter) evalRecordAccess(env *Environment, e *ast.RecordAccessExpr) (Value, error) {
	source, err := i.evalExpr(env, e.Source)
	if err != nil {
		return nil, err
	}
	rec, ok := source.(*RecordValue)
	if !ok {
		return nil, i.runtimeErrorf(e.Span(), "cannot access a field of a %s value", source.Kind())
	}
	v, ok := rec.Field(e.Field)
	if !ok {
		return nil, i.runtimeErrorf(e.Span(), "record has no field %q", e.Field)
	}
	return v, nil
}

func (i *Interpreter) evalRecordConstructor(env *Environment, e *ast.RecordConstructorExpr) (Value, error) {
	fields := make([]RecordField, len(e.Fields))
	for idx, f := range e.Fields {
		v, err := i.evalExpr(env, f.Value)
		if err != nil {
			return nil, err
		}
		fields[idx] = RecordField{Name: f.Name, Value: v.Clone()}
	}
	return NewRecordValue(fields), nil
}

func (i *Interpreter) evalArrayInit(env *Environment, e *ast.ArrayInitExpr) (Value, error) {
	elems := make([]Value, len(e.Elements))
	for idx, el := range e.Elements {
		v, err := i.evalExpr(env, el)
		if err != nil {
			return nil, err
		}
		elems[idx] = v.Clone()
	}
	return NewArrayValue(elems), nil
}

func (i *Interpreter) evalArrayGenerator(env *Environment, e *ast.ArrayGeneratorExpr) (Value, error) {
	value, err := i.evalExpr(env, e.Value)
	if err != nil {
		return nil, err
	}
	sizeVal, err := i.evalExpr(env, e.Size)
	if err != nil {
		return nil, err
	}
	size := int(sizeVal.(IntValue))
	if size < 0 {
		return nil, i.runtimeErrorf(e.Span(), "array generator size must not be negative, got %d", size)
	}
	elems := make([]Value, size)
	for idx := range elems {
		elems[idx] = value.Clone()
	}
	return NewArrayValue(elems), nil
}

// evalInvoke evaluates arguments left-to-right, deep-clones each into the
// callee's frame, and runs the method body.
func (i *Interpreter) evalInvoke(env *Environment, e *ast.InvokeExpr) (Value, error) {
	args := make([]Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.evalExpr(env, a)
		if err != nil {
			return nil, err
		}
		args[idx] = v.Clone()
	}
	return i.call(e.Method, args, e.Span())
}
