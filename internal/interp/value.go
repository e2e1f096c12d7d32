// Package interp implements the tree-walking interpreter: a per-invocation
// frame environment, a small Value sum type with value semantics (every
// assignment, declaration and argument transfer deep-clones its source),
// and the Eval dispatch that runs a type-checked *ast.Program to
// completion.
package interp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is any runtime value the interpreter produces or stores. It
// exposes Clone alongside Kind/String because this language has pure
// value semantics: every storage boundary (assignment, declaration, call
// argument) clones its source explicitly instead of sharing it.
type Value interface {
	Kind() string
	String() string
	Clone() Value
}

// NullValue is the distinct constant `null`.
type NullValue struct{}

func (NullValue) Kind() string   { return "null" }
func (NullValue) String() string { return "null" }
func (NullValue) Clone() Value   { return NullValue{} }

// BoolValue is `true` or `false`.
type BoolValue bool

func (b BoolValue) Kind() string { return "bool" }
func (b BoolValue) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b BoolValue) Clone() Value { return b }

// IntValue is a 32-bit signed integer.
type IntValue int32

func (i IntValue) Kind() string   { return "int" }
func (i IntValue) String() string { return strconv.FormatInt(int64(i), 10) }
func (i IntValue) Clone() Value   { return i }

// CharValue is a single 7-bit ASCII character.
type CharValue byte

func (c CharValue) Kind() string   { return "char" }
func (c CharValue) String() string { return string(byte(c)) }
func (c CharValue) Clone() Value   { return c }

// StringValue is an immutable sequence of characters; immutability makes
// cloning it a no-op even though Clone is still called at every boundary
// for uniformity with the compound kinds.
type StringValue string

func (s StringValue) Kind() string   { return "string" }
func (s StringValue) String() string { return string(s) }
func (s StringValue) Clone() Value   { return s }

// ArrayValue is a fixed-size, homogeneous (by static type) sequence of
// values. Elements is never shared across two ArrayValues: Clone always
// allocates a fresh backing slice and clones every element.
type ArrayValue struct {
	Elements []Value
}

func NewArrayValue(elems []Value) *ArrayValue {
	return &ArrayValue{Elements: elems}
}

func (a *ArrayValue) Kind() string { return "array" }
func (a *ArrayValue) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (a *ArrayValue) Clone() Value {
	cloned := make([]Value, len(a.Elements))
	for i, e := range a.Elements {
		cloned[i] = e.Clone()
	}
	return &ArrayValue{Elements: cloned}
}

// RecordField is one (name, value) pair of a RecordValue, kept in the
// order the record constructor wrote them.
type RecordField struct {
	Name  string
	Value Value
}

// RecordValue is a fixed set of named fields. Field order here mirrors
// declaration order (significant for the static type system); printing
// re-sorts a copy into ascending field-name order.
type RecordValue struct {
	Fields []RecordField
}

func NewRecordValue(fields []RecordField) *RecordValue {
	return &RecordValue{Fields: fields}
}

func (r *RecordValue) Kind() string { return "record" }
func (r *RecordValue) String() string {
	sorted := make([]RecordField, len(r.Fields))
	copy(sorted, r.Fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	parts := make([]string, len(sorted))
	for i, f := range sorted {
		parts[i] = f.Name + ":" + f.Value.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}
func (r *RecordValue) Clone() Value {
	cloned := make([]RecordField, len(r.Fields))
	for i, f := range r.Fields {
		cloned[i] = RecordField{Name: f.Name, Value: f.Value.Clone()}
	}
	return &RecordValue{Fields: cloned}
}

// Field looks up a field by name.
func (r *RecordValue) Field(name string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// SetField overwrites an existing field's value in place. The caller
// supplies an already-cloned value, per the deep-clone-at-every-boundary
// rule.
func (r *RecordValue) SetField(name string, v Value) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			r.Fields[i].Value = v
			return
		}
	}
	panic(fmt.Sprintf("interp: SetField on unknown field %q", name))
}

// structuralEqual implements EQ/NEQ over the value tree: two values are
// equal if their shapes and contents match exactly. Values of
// different Go types are never equal (the static type checker already
// enforces compatible operand types for ==/!=).
func structuralEqual(a, b Value) bool {
	switch av := a.(type) {
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av == bv
	case IntValue:
		bv, ok := b.(IntValue)
		return ok && av == bv
	case CharValue:
		bv, ok := b.(CharValue)
		return ok && av == bv
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av == bv
	case *ArrayValue:
		bv, ok := b.(*ArrayValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !structuralEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *RecordValue:
		bv, ok := b.(*RecordValue)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name {
				return false
			}
			if !structuralEqual(av.Fields[i].Value, bv.Fields[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
