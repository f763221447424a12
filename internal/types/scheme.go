package types

import "strings"

// TraitDeclRef is an opaque handle to a trait declaration, mirroring Decl for
// data types (spec 3: TraitImpl references a trait declaration).
type TraitDeclRef struct {
	Name string
}

// TraitImpl is a reference to a trait declaration plus the argument types
// and functional-dependency witnesses applied to it. Structural equality
// compares all three component-wise (spec 3).
type TraitImpl struct {
	DeclRef  *TraitDeclRef
	TypeArgs []Type
	Fundeps  []Type
}

func (t *TraitImpl) String() string {
	parts := make([]string, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		parts[i] = a.String()
	}
	s := t.DeclRef.Name + " " + strings.Join(parts, " ")
	if len(t.Fundeps) > 0 {
		fd := make([]string, len(t.Fundeps))
		for i, f := range t.Fundeps {
			fd[i] = f.String()
		}
		s += " -> " + strings.Join(fd, " ")
	}
	return s
}

func (t *TraitImpl) Generic() bool {
	for _, a := range t.TypeArgs {
		if a.Generic() {
			return true
		}
	}
	for _, f := range t.Fundeps {
		if f.Generic() {
			return true
		}
	}
	return false
}

// Copy returns a shallow copy of t: fresh TypeArgs/Fundeps slices holding
// the same element types.
func (t *TraitImpl) Copy() *TraitImpl {
	return &TraitImpl{
		DeclRef:  t.DeclRef,
		TypeArgs: append([]Type(nil), t.TypeArgs...),
		Fundeps:  append([]Type(nil), t.Fundeps...),
	}
}

// Equals is the structural equality spec 3 requires for TraitImpl: same
// trait declaration name, and pairwise structurally equal TypeArgs/Fundeps.
func (t *TraitImpl) Equals(o *TraitImpl) bool {
	if t.DeclRef.Name != o.DeclRef.Name {
		return false
	}
	if len(t.TypeArgs) != len(o.TypeArgs) || len(t.Fundeps) != len(o.Fundeps) {
		return false
	}
	for i := range t.TypeArgs {
		if !structuralEquals(t.TypeArgs[i], o.TypeArgs[i]) {
			return false
		}
	}
	for i := range t.Fundeps {
		if !structuralEquals(t.Fundeps[i], o.Fundeps[i]) {
			return false
		}
	}
	return true
}

// Scheme is a generalized binding: the variables quantified over, the trait
// constraints that travel with it, and the underlying (possibly still
// generic) body type. This is the "scheme per generalizable binding" output
// named in spec 6.
type Scheme struct {
	QuantifiedVars   []*TypeVar
	TraitConstraints []*TraitImpl
	BodyType         Type
}

func (s *Scheme) String() string {
	if len(s.QuantifiedVars) == 0 {
		return s.BodyType.String()
	}
	vars := make([]string, len(s.QuantifiedVars))
	for i, v := range s.QuantifiedVars {
		vars[i] = v.String()
	}
	return "forall " + strings.Join(vars, " ") + ". " + s.BodyType.String()
}

// DedupeConstraintsPairwise removes an exact duplicate found later in the
// list, mirroring cleanTypeClassConstraints in original_source/src/
// unification.cpp: it is deliberately not a full transitive dedup (spec 9
// Open Questions notes the original leaves some logically-redundant
// constraints in place depending on ordering, and this module reproduces
// that behavior rather than silently fixing it; see SPEC_FULL.md E4.2).
func DedupeConstraintsPairwise(cs []*TraitImpl) []*TraitImpl {
	out := make([]*TraitImpl, 0, len(cs))
	for i, c := range cs {
		dup := false
		for j := i + 1; j < len(cs); j++ {
			if c.Equals(cs[j]) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}
