package types

import "fmt"

// Context is the Type Context (C1): an interned-type table plus a monotone
// fresh-variable counter. It is process-wide mutable state per spec 5 ("init
// on first use; its fresh counter must be reset between independent
// compilations") — callers own an instance per compilation and call Reset
// between them rather than relying on package-level globals, so concurrent
// compilations can each hold their own Context (spec 9 Design Notes: "Model
// as an explicitly threaded context object").
type Context struct {
	counter int
	interned map[string]Type
}

// NewContext returns a fresh, empty Type Context with its counter at 0 (the
// first FreshVar call returns '1, matching spec 4.1's "starting at 1").
func NewContext() *Context {
	return &Context{interned: make(map[string]Type)}
}

// Reset zeroes the fresh-variable counter and interning table, as required
// between independent compilations sharing a process (spec 5).
func (c *Context) Reset() {
	c.counter = 0
	c.interned = make(map[string]Type)
}

// FreshVar returns a new ordinary type variable 'N where N is strictly
// greater than any counter value previously returned by this Context (spec
// 3 invariant: "Fresh variables are strictly monotone").
func (c *Context) FreshVar() *TypeVar {
	c.counter++
	return &TypeVar{Name: fmt.Sprint(c.counter), ID: c.counter}
}

// FreshRowVar is FreshVar with IsRow set.
func (c *Context) FreshRowVar() *TypeVar {
	v := c.FreshVar()
	v.IsRow = true
	return v
}

// intern hash-conses t under key, returning the previously interned value
// if one with the same key already exists. Per spec 3, interning only
// collapses structurally-equal *non-generic* types to a single handle;
// generic types (anything containing a TypeVar) are never interned, since
// distinct occurrences of the "same" generic shape may still need to
// diverge independently once unified.
func (c *Context) intern(key string, t Type) Type {
	if t.Generic() {
		return t
	}
	if existing, ok := c.interned[key]; ok {
		return existing
	}
	c.interned[key] = t
	return t
}

// PtrOf returns (and hash-conses, if non-generic) Ptr(inner).
func (c *Context) PtrOf(inner Type) *Ptr {
	t := &Ptr{Inner: inner}
	return c.intern("ptr:"+inner.String(), t).(*Ptr)
}

// ArrayOf returns (and hash-conses, if non-generic) Array(inner, length).
func (c *Context) ArrayOf(inner Type, length *int) *Array {
	key := "array:" + inner.String()
	if length != nil {
		key += fmt.Sprintf(":%d", *length)
	}
	t := &Array{Inner: inner, Length: length}
	return c.intern(key, t).(*Array)
}

// TupleOf returns (and hash-conses, if non-generic) a positional or
// anonymous-record tuple. rowVar must either be nil or the caller's own
// fresh row variable; TupleOf does not allocate one.
func (c *Context) TupleOf(fields []Type, fieldNames []string, rowVar *TypeVar) *Tuple {
	t := &Tuple{Fields: fields, FieldNames: fieldNames, RowVar: rowVar}
	if rowVar != nil {
		// A type carrying a row variable is generic by definition (Tuple.Generic
		// returns true whenever RowVar != nil), so intern is a no-op here; the
		// explicit skip just avoids building a throwaway key.
		return t
	}
	return c.intern("tuple:"+t.String(), t).(*Tuple)
}

// FuncOf returns (and hash-conses, if non-generic) Function(params, ret, constraints).
func (c *Context) FuncOf(params []Type, ret Type, constraints []*TraitImpl) *Function {
	t := &Function{Params: params, Ret: ret, TraitConstraints: constraints}
	return c.intern("func:"+t.String(), t).(*Function)
}

// DataOf returns (and hash-conses, if non-generic) Data(name, args, decl).
func (c *Context) DataOf(name string, args []Type, decl *Decl) *Data {
	t := &Data{Name: name, TypeArgs: args, DeclRef: decl}
	return c.intern("data:"+t.String(), t).(*Data)
}

// WithModifier wraps inner in Modifier{flag}. If inner is already a Modifier
// with the same flag, it is returned unchanged rather than double-wrapped
// (spec 3 invariant: "Modifier never nests modifiers of the same flag").
func (c *Context) WithModifier(flag ModifierFlag, inner Type) Type {
	if m, ok := inner.(*Modifier); ok && m.Flag == flag {
		return inner
	}
	return &Modifier{Flag: flag, Inner: inner}
}

// CopyWithFreshVars deep-copies t, replacing each distinct TypeVar by a
// fresh one, consistently: the same input variable always maps to the same
// output variable within one call (spec 4.1). Non-generic subterms are
// returned unchanged (no copy is made at all, matching the original's
// `if(!t->isGeneric) return t;` short-circuit).
func (c *Context) CopyWithFreshVars(t Type) Type {
	mapping := make(map[int]*TypeVar)
	return c.copyWithFreshVars(t, mapping)
}

func (c *Context) copyWithFreshVars(t Type, mapping map[int]*TypeVar) Type {
	if !t.Generic() {
		return t
	}
	switch t := t.(type) {
	case *Modifier:
		return &Modifier{Flag: t.Flag, Inner: c.copyWithFreshVars(t.Inner, mapping)}
	case *Ptr:
		return &Ptr{Inner: c.copyWithFreshVars(t.Inner, mapping)}
	case *Array:
		return &Array{Inner: c.copyWithFreshVars(t.Inner, mapping), Length: t.Length}
	case *TypeVar:
		if nv, ok := mapping[t.ID]; ok {
			return nv
		}
		nv := c.FreshVar()
		nv.IsRow = t.IsRow
		mapping[t.ID] = nv
		return nv
	case *Data:
		args := make([]Type, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = c.copyWithFreshVars(a, mapping)
		}
		return &Data{Name: t.Name, TypeArgs: args, DeclRef: t.DeclRef}
	case *Function:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.copyWithFreshVars(p, mapping)
		}
		ret := c.copyWithFreshVars(t.Ret, mapping)
		cs := make([]*TraitImpl, len(t.TraitConstraints))
		for i, tc := range t.TraitConstraints {
			cs[i] = c.copyTraitImplWithFreshVars(tc, mapping)
		}
		return &Function{Params: params, Ret: ret, TraitConstraints: cs}
	case *Tuple:
		fields := make([]Type, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = c.copyWithFreshVars(f, mapping)
		}
		var rv *TypeVar
		if t.RowVar != nil {
			rv = c.copyWithFreshVars(t.RowVar, mapping).(*TypeVar)
		}
		return &Tuple{Fields: fields, FieldNames: t.FieldNames, RowVar: rv}
	case *TaggedUnion:
		args := make([]Type, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = c.copyWithFreshVars(a, mapping)
		}
		variants := make([]TaggedUnionVariant, len(t.Variants))
		for i, v := range t.Variants {
			fs := make([]Type, len(v.Fields))
			for j, f := range v.Fields {
				fs[j] = c.copyWithFreshVars(f, mapping)
			}
			variants[i] = TaggedUnionVariant{Name: v.Name, Fields: fs}
		}
		return &TaggedUnion{Name: t.Name, TypeArgs: args, Variants: variants}
	case *MetaFunction:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.copyWithFreshVars(p, mapping)
		}
		return &MetaFunction{Params: params, Ret: c.copyWithFreshVars(t.Ret, mapping)}
	case *FunctionList:
		overloads := make([]*Function, len(t.Overloads))
		for i, f := range t.Overloads {
			overloads[i] = c.copyWithFreshVars(f, mapping).(*Function)
		}
		return &FunctionList{Overloads: overloads}
	default:
		// Primitive, KindType, VoidType are always non-generic and handled by
		// the short-circuit above; unreachable in practice.
		return t
	}
}

// CopyTraitImplWithFreshVars is CopyWithFreshVars for a TraitImpl: one
// consistent variable mapping covers its TypeArgs and Fundeps together.
func (c *Context) CopyTraitImplWithFreshVars(impl *TraitImpl) *TraitImpl {
	return c.copyTraitImplWithFreshVars(impl, make(map[int]*TypeVar))
}

func (c *Context) copyTraitImplWithFreshVars(impl *TraitImpl, mapping map[int]*TypeVar) *TraitImpl {
	args := make([]Type, len(impl.TypeArgs))
	for i, a := range impl.TypeArgs {
		args[i] = c.copyWithFreshVars(a, mapping)
	}
	fundeps := make([]Type, len(impl.Fundeps))
	for i, f := range impl.Fundeps {
		fundeps[i] = c.copyWithFreshVars(f, mapping)
	}
	return &TraitImpl{DeclRef: impl.DeclRef, TypeArgs: args, Fundeps: fundeps}
}
