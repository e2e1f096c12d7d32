// Package types implements the While language's type algebra: primitive,
// array, record, and named types, plus the structural subtype relation and
// the least-upper-bound rule used to type array initialisers.
//
// The While language has no nominal class hierarchy, so subtyping here is
// purely structural over a recursive sum type, and named types resolve
// through a simple alias table (name -> body, resolved on demand) rather
// than a class/interface registry.
package types

import (
	"fmt"
	"strings"
)

// Kind tags the primitive cases of Type.
type Kind int

const (
	Void Kind = iota
	Bool
	Int
	Char
	String
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Char:
		return "char"
	case String:
		return "string"
	default:
		return "?"
	}
}

// Type is the tagged variant of §3's "Syntactic Type" / inferred type.
// Exactly one of the embedded fields is meaningful, selected by Tag.
type Type struct {
	Tag    TypeTag
	Prim   Kind
	Elem   *Type        // valid when Tag == ArrayTag
	Fields []RecordField // valid when Tag == RecordTag
	Name   string       // valid when Tag == NamedTag
}

// TypeTag discriminates the cases of Type.
type TypeTag int

const (
	PrimitiveTag TypeTag = iota
	ArrayTag
	RecordTag
	NamedTag
)

// RecordField is one (type, name) pair of a record type. Order is
// significant for both display and structural subtyping.
type RecordField struct {
	Type *Type
	Name string
}

// Constructors.

func NewPrimitive(k Kind) *Type { return &Type{Tag: PrimitiveTag, Prim: k} }

var (
	VoidType   = NewPrimitive(Void)
	BoolType   = NewPrimitive(Bool)
	IntType    = NewPrimitive(Int)
	CharType   = NewPrimitive(Char)
	StringType = NewPrimitive(String)
)

func NewArray(elem *Type) *Type { return &Type{Tag: ArrayTag, Elem: elem} }

func NewRecord(fields []RecordField) *Type { return &Type{Tag: RecordTag, Fields: fields} }

func NewNamed(name string) *Type { return &Type{Tag: NamedTag, Name: name} }

// IsArray, IsRecord, IsNamed, IsPrimitive report the node's tag.
func (t *Type) IsArray() bool     { return t.Tag == ArrayTag }
func (t *Type) IsRecord() bool    { return t.Tag == RecordTag }
func (t *Type) IsNamed() bool     { return t.Tag == NamedTag }
func (t *Type) IsPrimitive() bool { return t.Tag == PrimitiveTag }
func (t *Type) IsVoid() bool      { return t.Tag == PrimitiveTag && t.Prim == Void }
func (t *Type) IsInt() bool       { return t.Tag == PrimitiveTag && t.Prim == Int }
func (t *Type) IsBool() bool      { return t.Tag == PrimitiveTag && t.Prim == Bool }

// Field looks up a record field by name. ok is false if t is not a record
// or has no such field.
func (t *Type) Field(name string) (RecordField, bool) {
	if t.Tag != RecordTag {
		return RecordField{}, false
	}
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return RecordField{}, false
}

// String renders a type the way the source spells it: `int`, `int[]`,
// `{int x,bool y}`, or a named type's identifier.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Tag {
	case PrimitiveTag:
		return t.Prim.String()
	case ArrayTag:
		return t.Elem.String() + "[]"
	case RecordTag:
		var sb strings.Builder
		sb.WriteByte('{')
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(f.Type.String())
			sb.WriteByte(' ')
			sb.WriteString(f.Name)
		}
		sb.WriteByte('}')
		return sb.String()
	case NamedTag:
		return t.Name
	default:
		return fmt.Sprintf("<bad type tag %d>", t.Tag)
	}
}

// Resolver resolves a named type to its declared body. The checker's alias
// table implements this; named-type resolution is eager on-demand: unfold
// once, then recurse into the result.
type Resolver interface {
	Resolve(name string) (*Type, bool)
}

// Unfold replaces a single leading Named(n) with its declared body, once.
// Callers that need to see through a chain of aliases call Unfold in a loop
// (see SubtypeOf / Equal below), which always terminates because a named
// type's body was already fully parsed before it could be referenced, so
// no alias can directly reference itself.
func Unfold(t *Type, r Resolver) (*Type, error) {
	if t.Tag != NamedTag {
		return t, nil
	}
	body, ok := r.Resolve(t.Name)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", t.Name)
	}
	return body, nil
}

// SubtypeOf reports whether sub <= sup: void is bottom, primitives are
// subtypes only of themselves, arrays are covariant, and records are
// width+depth subtypes by field-name prefix (field order is significant).
func SubtypeOf(sub, sup *Type, r Resolver) (bool, error) {
	sub, err := resolveChain(sub, r)
	if err != nil {
		return false, err
	}
	sup, err = resolveChain(sup, r)
	if err != nil {
		return false, err
	}

	if sub.Tag == PrimitiveTag && sub.Prim == Void {
		return true, nil
	}

	switch {
	case sub.Tag == PrimitiveTag && sup.Tag == PrimitiveTag:
		return sub.Prim == sup.Prim, nil

	case sub.Tag == ArrayTag && sup.Tag == ArrayTag:
		return SubtypeOf(sub.Elem, sup.Elem, r)

	case sub.Tag == RecordTag && sup.Tag == RecordTag:
		if len(sub.Fields) < len(sup.Fields) {
			return false, nil
		}
		for i, supField := range sup.Fields {
			subField := sub.Fields[i]
			if subField.Name != supField.Name {
				return false, nil
			}
			ok, err := SubtypeOf(subField.Type, supField.Type, r)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil

	default:
		return false, nil
	}
}

// resolveChain unfolds a Named type repeatedly until a non-Named body is
// reached, returning an error on an unknown name.
func resolveChain(t *Type, r Resolver) (*Type, error) {
	for t.Tag == NamedTag {
		next, err := Unfold(t, r)
		if err != nil {
			return nil, err
		}
		t = next
	}
	return t, nil
}

// Equal reports structural equality of two resolved types. The
// interpreter's EQ/NEQ over non-scalar values is a runtime matter handled
// separately; this Equal is purely type-level: subtyping in both
// directions.
func Equal(a, b *Type, r Resolver) bool {
	aSub, err1 := SubtypeOf(a, b, r)
	bSub, err2 := SubtypeOf(b, a, r)
	return err1 == nil && err2 == nil && aSub && bSub
}

// LUB folds a sequence of expression types into the least upper bound used
// to type an array initialiser: start from void (bottom), then for each
// subsequent type t, if the running accumulator acc <= t, acc becomes t;
// otherwise t must be <= acc, else it is a type error. This is not a true
// least-upper-bound (it has no notion of joining two unrelated record
// shapes into a common supertype) but is sufficient for the surface
// language.
func LUB(elems []*Type, r Resolver) (*Type, error) {
	acc := VoidType
	for _, t := range elems {
		accSub, err := SubtypeOf(acc, t, r)
		if err != nil {
			return nil, err
		}
		if accSub {
			acc = t
			continue
		}
		tSub, err := SubtypeOf(t, acc, r)
		if err != nil {
			return nil, err
		}
		if !tSub {
			return nil, fmt.Errorf("incompatible array element types %s and %s", acc, t)
		}
	}
	return acc, nil
}
