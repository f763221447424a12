package types

import "fmt"

// Binding is one (TypeVar -> Type) pair of an ordered Substitution.
type Binding struct {
	Var  *TypeVar
	Type Type
}

// Substitution is an ordered list of (TypeVar -> Type) pairs. Order is
// significant: Apply processes entries in reverse insertion order, so later
// bindings are applied first — this preserves the semantics that a binding
// may reference variables bound in earlier (outer) entries (spec 3).
type Substitution []Binding

// Compose returns head followed by tail. This is how C4 composes a head
// substitution with an already-solved tail: the head is inserted before the
// tail so Apply (reverse order) applies the tail first and the head last,
// matching `ret.insert(ret.end(), t2.begin(), t2.end())` in
// original_source/src/unification.cpp's outer unify — the just-solved
// constraint's bindings are pushed to the front of the result there; here
// Compose puts them first in insertion order and Apply walks from the end
// backward, yielding the identical "most recently solved applied outermost"
// behavior.
func Compose(head, tail Substitution) Substitution {
	out := make(Substitution, 0, len(head)+len(tail))
	out = append(out, head...)
	out = append(out, tail...)
	return out
}

const maxSubstituteDepth = 10000

// ErrInternalRecursion is raised (as a panic, recovered by unify.Unify when
// it happens during a solve) when substitution recurses past the hard cap (spec 5:
// "implementations must bound recursion depth (hard cap 10,000) ... and
// raise a well-labeled internal error above the cap").
type ErrInternalRecursion struct {
	Replacement Type
	Target      Type
	In          Type
}

func (e *ErrInternalRecursion) Error() string {
	return fmt.Sprintf("internal recursion limit (10,000) reached substituting %s for %s in %s",
		e.Replacement, e.Target, e.In)
}

// Apply applies sub to t, per spec 3's reverse-insertion-order rule. A
// non-generic t is returned unchanged without walking sub at all (spec 8:
// "Non-generic short-circuit: for a non-generic type t, apply(S, t) = t for
// any S").
func Apply(sub Substitution, t Type) Type {
	if !t.Generic() {
		return t
	}
	for i := len(sub) - 1; i >= 0; i-- {
		t = substituteOne(sub[i].Type, sub[i].Var, t, maxSubstituteDepth)
	}
	return t
}

// ApplyToTraitImpl applies sub to every type argument and functional
// dependency witness of impl, per the same reverse-order rule.
func ApplyToTraitImpl(sub Substitution, impl *TraitImpl) *TraitImpl {
	args := make([]Type, len(impl.TypeArgs))
	for i, a := range impl.TypeArgs {
		args[i] = Apply(sub, a)
	}
	fundeps := make([]Type, len(impl.Fundeps))
	for i, f := range impl.Fundeps {
		fundeps[i] = Apply(sub, f)
	}
	return &TraitImpl{DeclRef: impl.DeclRef, TypeArgs: args, Fundeps: fundeps}
}

// substituteOne replaces every occurrence of the type variable `target`
// inside t with `replacement`, recursing through every variant except
// TypeVar itself (which is the base case: either it is the variable being
// replaced, or it is returned unchanged). Modifier wrappers are preserved
// around the substituted inner type (spec Design Notes: "Modifier types
// must be treated as carrier-only wrappers ... the modifier is preserved on
// the result").
func substituteOne(replacement Type, target *TypeVar, t Type, depthLeft int) Type {
	if !t.Generic() {
		return t
	}
	if depthLeft < 0 {
		panic(&ErrInternalRecursion{Replacement: replacement, Target: target, In: t})
	}
	switch t := t.(type) {
	case *Modifier:
		return &Modifier{Flag: t.Flag, Inner: substituteOne(replacement, target, t.Inner, depthLeft-1)}
	case *Ptr:
		return &Ptr{Inner: substituteOne(replacement, target, t.Inner, depthLeft-1)}
	case *Array:
		return &Array{Inner: substituteOne(replacement, target, t.Inner, depthLeft-1), Length: t.Length}
	case *TypeVar:
		if t.ID == target.ID {
			return replacement
		}
		return t
	case *Data:
		args := make([]Type, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = substituteOne(replacement, target, a, depthLeft-1)
		}
		return &Data{Name: t.Name, TypeArgs: args, DeclRef: t.DeclRef}
	case *Function:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = substituteOne(replacement, target, p, depthLeft-1)
		}
		ret := substituteOne(replacement, target, t.Ret, depthLeft-1)
		cs := make([]*TraitImpl, len(t.TraitConstraints))
		for i, c := range t.TraitConstraints {
			args := make([]Type, len(c.TypeArgs))
			for j, a := range c.TypeArgs {
				args[j] = substituteOne(replacement, target, a, depthLeft-1)
			}
			fundeps := make([]Type, len(c.Fundeps))
			for j, f := range c.Fundeps {
				fundeps[j] = substituteOne(replacement, target, f, depthLeft-1)
			}
			cs[i] = &TraitImpl{DeclRef: c.DeclRef, TypeArgs: args, Fundeps: fundeps}
		}
		return &Function{Params: params, Ret: ret, TraitConstraints: cs}
	case *Tuple:
		fields := make([]Type, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = substituteOne(replacement, target, f, depthLeft-1)
		}
		rowVar := t.RowVar
		if rowVar != nil && rowVar.ID == target.ID {
			// Binding a row variable to a concrete tuple widens the field list
			// (and drops the row, unless the replacement is itself a row-carrying
			// tuple) rather than nesting a row var inside a row var slot.
			if repl, ok := replacement.(*Tuple); ok {
				fields = append(fields, repl.Fields...)
				if t.FieldNames != nil || repl.FieldNames != nil {
					names := append([]string(nil), t.FieldNames...)
					for len(names) < len(t.Fields) {
						names = append(names, "")
					}
					names = append(names, repl.FieldNames...)
					return &Tuple{Fields: fields, FieldNames: names, RowVar: repl.RowVar}
				}
				return &Tuple{Fields: fields, RowVar: repl.RowVar}
			}
			return &Tuple{Fields: fields, FieldNames: t.FieldNames, RowVar: nil}
		}
		return &Tuple{Fields: fields, FieldNames: t.FieldNames, RowVar: rowVar}
	case *TaggedUnion:
		args := make([]Type, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = substituteOne(replacement, target, a, depthLeft-1)
		}
		variants := make([]TaggedUnionVariant, len(t.Variants))
		for i, v := range t.Variants {
			fs := make([]Type, len(v.Fields))
			for j, f := range v.Fields {
				fs[j] = substituteOne(replacement, target, f, depthLeft-1)
			}
			variants[i] = TaggedUnionVariant{Name: v.Name, Fields: fs}
		}
		return &TaggedUnion{Name: t.Name, TypeArgs: args, Variants: variants}
	case *MetaFunction:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = substituteOne(replacement, target, p, depthLeft-1)
		}
		return &MetaFunction{Params: params, Ret: substituteOne(replacement, target, t.Ret, depthLeft-1)}
	case *FunctionList:
		overloads := make([]*Function, len(t.Overloads))
		for i, f := range t.Overloads {
			overloads[i] = substituteOne(replacement, target, f, depthLeft-1).(*Function)
		}
		return &FunctionList{Overloads: overloads}
	default:
		return t
	}
}
