// Package types holds the closed set of type variants the inferencer works
// over, the interning/fresh-variable context (C1), trait-implementation
// records, type schemes, and the ordered substitution representation (C4/C5
// share this).
package types

import (
	"fmt"
	"strings"
)

// PrimTag enumerates the primitive scalar types.
type PrimTag int

const (
	I8 PrimTag = iota
	I16
	I32
	I64
	Isz
	U8
	U16
	U32
	U64
	Usz
	C8
	C32
	F16
	F32
	F64
	Bool
	Unit
)

func (t PrimTag) String() string {
	switch t {
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case Isz:
		return "isz"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case Usz:
		return "usz"
	case C8:
		return "c8"
	case C32:
		return "c32"
	case F16:
		return "f16"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Bool:
		return "bool"
	case Unit:
		return "unit"
	default:
		return "<unknown-prim>"
	}
}

// ModifierFlag enumerates orthogonal type modifiers.
type ModifierFlag int

const (
	Mut ModifierFlag = iota
	Ante
)

func (f ModifierFlag) String() string {
	switch f {
	case Mut:
		return "mut"
	case Ante:
		return "ante"
	default:
		return "<unknown-modifier>"
	}
}

// Type is the closed variant set from which every type in the engine is
// built. Each variant reports whether it is generic (transitively contains
// a TypeVar) so non-generic types can short-circuit substitution. The answer
// is not memoized: Generic() walks the type's components on every call.
type Type interface {
	fmt.Stringer
	isType()
	// Generic reports whether this type transitively contains a TypeVar.
	Generic() bool
}

func (*Primitive) isType()    {}
func (*Ptr) isType()          {}
func (*Array) isType()        {}
func (*Tuple) isType()        {}
func (*Data) isType()         {}
func (*Function) isType()     {}
func (*TypeVar) isType()      {}
func (*Modifier) isType()     {}
func (*TaggedUnion) isType()  {}
func (*MetaFunction) isType() {}
func (*FunctionList) isType() {}
func (*KindType) isType()     {}
func (*VoidType) isType()     {}

// Primitive is a scalar built-in type. Always non-generic.
type Primitive struct {
	Tag PrimTag
}

func (p *Primitive) String() string { return p.Tag.String() }
func (p *Primitive) Generic() bool  { return false }

// Ptr is a single-indirection pointer to Inner.
type Ptr struct {
	Inner Type
}

func (p *Ptr) String() string { return "Ptr " + parenIfComplex(p.Inner) }
func (p *Ptr) Generic() bool  { return p.Inner.Generic() }

// Array is fixed-length (Length != nil) or length-polymorphic (Length == nil).
type Array struct {
	Inner  Type
	Length *int
}

func (a *Array) String() string {
	if a.Length != nil {
		return fmt.Sprintf("Array %s %d", parenIfComplex(a.Inner), *a.Length)
	}
	return "Array " + parenIfComplex(a.Inner)
}
func (a *Array) Generic() bool { return a.Inner.Generic() }

// Tuple is a positional tuple, or an anonymous record when FieldNames is
// non-nil. RowVar, if present, must be the trailing field (enforced by the
// constructors in context.go, never by callers mutating Fields directly).
type Tuple struct {
	Fields     []Type
	FieldNames []string // nil for a plain positional tuple
	RowVar     *TypeVar // nil if the row is fully known
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		if t.FieldNames != nil && i < len(t.FieldNames) {
			parts[i] = fmt.Sprintf("%s: %s", t.FieldNames[i], f)
		} else {
			parts[i] = f.String()
		}
	}
	if t.RowVar != nil {
		parts = append(parts, "..."+t.RowVar.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (t *Tuple) Generic() bool {
	if t.RowVar != nil {
		return true
	}
	for _, f := range t.Fields {
		if f.Generic() {
			return true
		}
	}
	return false
}

// Data is a nominal type constructor applied to zero or more arguments.
// DeclRef points to an immutable declaration owned by the caller; the
// inferencer never mutates it.
type Data struct {
	Name     string
	TypeArgs []Type
	DeclRef  *Decl
}

// Decl is an opaque handle to a type declaration (a data/union/alias
// definition). The inferencer treats it as immutable and compares it by
// pointer identity, breaking the Data <-> Decl ownership cycle noted in
// spec Design Notes via a stable out-of-band handle rather than embedding.
type Decl struct {
	Name string
}

func (d *Data) String() string {
	if len(d.TypeArgs) == 0 {
		return d.Name
	}
	parts := make([]string, len(d.TypeArgs))
	for i, a := range d.TypeArgs {
		parts[i] = a.String()
	}
	return d.Name + " " + strings.Join(parts, " ")
}
func (d *Data) Generic() bool {
	for _, a := range d.TypeArgs {
		if a.Generic() {
			return true
		}
	}
	return false
}

// Function is a typed function: an ordered parameter list, a return type,
// and a deduplicated set of trait-implementation constraints it carries.
type Function struct {
	Params           []Type
	Ret              Type
	TraitConstraints []*TraitImpl
}

func (f *Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	s := fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.Ret)
	if len(f.TraitConstraints) > 0 {
		cs := make([]string, len(f.TraitConstraints))
		for i, c := range f.TraitConstraints {
			cs[i] = c.String()
		}
		s += " given " + strings.Join(cs, ", ")
	}
	return s
}
func (f *Function) Generic() bool {
	if f.Ret.Generic() {
		return true
	}
	for _, p := range f.Params {
		if p.Generic() {
			return true
		}
	}
	for _, c := range f.TraitConstraints {
		if c.Generic() {
			return true
		}
	}
	return false
}

// TypeVar is a metavariable produced by the fresh supply. IsRow distinguishes
// ordinary type variables from row variables (spec 3: a row variable may
// appear only as a Tuple's trailing field; that invariant is enforced by the
// constructors, not by this struct).
type TypeVar struct {
	Name  string
	ID    int
	IsRow bool
}

func (v *TypeVar) String() string { return "'" + v.Name }
func (v *TypeVar) Generic() bool  { return true }

// Modifier wraps Inner with a flag without changing its shape. Modifier
// never nests a modifier of the same flag (enforced by context.go's
// WithModifier) and substitution preserves the wrapper (see substitution.go).
type Modifier struct {
	Flag  ModifierFlag
	Inner Type
}

func (m *Modifier) String() string { return m.Flag.String() + " " + parenIfComplex(m.Inner) }
func (m *Modifier) Generic() bool  { return m.Inner.Generic() }

// TaggedUnionVariant is one constructor of a tagged union.
type TaggedUnionVariant struct {
	Name   string
	Fields []Type
}

// TaggedUnion is a terminal variant used by algebraic-data-type declarations.
type TaggedUnion struct {
	Name     string
	TypeArgs []Type
	Variants []TaggedUnionVariant
}

func (u *TaggedUnion) String() string {
	if len(u.TypeArgs) == 0 {
		return u.Name
	}
	parts := make([]string, len(u.TypeArgs))
	for i, a := range u.TypeArgs {
		parts[i] = a.String()
	}
	return u.Name + " " + strings.Join(parts, " ")
}
func (u *TaggedUnion) Generic() bool {
	for _, a := range u.TypeArgs {
		if a.Generic() {
			return true
		}
	}
	for _, v := range u.Variants {
		for _, f := range v.Fields {
			if f.Generic() {
				return true
			}
		}
	}
	return false
}

// MetaFunction is a compile-time-only function (its parameters and result
// exist only during JIT compile-time evaluation, out of scope per spec 1,
// but its type still needs a slot in the closed variant set per spec 3).
type MetaFunction struct {
	Params []Type
	Ret    Type
}

func (m *MetaFunction) String() string {
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("meta(%s) -> %s", strings.Join(parts, ", "), m.Ret)
}
func (m *MetaFunction) Generic() bool {
	if m.Ret.Generic() {
		return true
	}
	for _, p := range m.Params {
		if p.Generic() {
			return true
		}
	}
	return false
}

// FunctionList is an overload set: a declaration name resolves to more than
// one Function until overload resolution (outside this core) picks one.
type FunctionList struct {
	Overloads []*Function
}

func (l *FunctionList) String() string {
	parts := make([]string, len(l.Overloads))
	for i, f := range l.Overloads {
		parts[i] = f.String()
	}
	return "{" + strings.Join(parts, " | ") + "}"
}
func (l *FunctionList) Generic() bool {
	for _, f := range l.Overloads {
		if f.Generic() {
			return true
		}
	}
	return false
}

// KindType is the "kind of types" terminal variant (the type of a
// compile-time type argument).
type KindType struct{}

func (*KindType) String() string { return "Type" }
func (*KindType) Generic() bool  { return false }

// VoidType is the terminal variant used by declarations with no value.
type VoidType struct{}

func (*VoidType) String() string { return "Void" }
func (*VoidType) Generic() bool  { return false }

func parenIfComplex(t Type) string {
	switch t.(type) {
	case *Function, *Tuple, *TaggedUnion:
		return "(" + t.String() + ")"
	default:
		return t.String()
	}
}
