package apply

import "github.com/ante-lang/infercore/internal/types"

// FreeVars walks t (only its generic subterms, per spec 4.4's occurs-check
// discipline) and returns every distinct TypeVar it contains, in first-seen
// (left-to-right, outside-in) order. Used by Generalize to build a Scheme's
// QuantifiedVars, and by the pipeline's ambiguous-type check to decide
// whether a leftover variable belongs to an enclosing declaration's own
// signature.
func FreeVars(t types.Type) []*types.TypeVar {
	seen := make(map[int]bool)
	var out []*types.TypeVar
	collectFreeVars(t, seen, &out)
	return out
}

func collectFreeVars(t types.Type, seen map[int]bool, out *[]*types.TypeVar) {
	if !t.Generic() {
		return
	}
	switch t := t.(type) {
	case *types.TypeVar:
		if !seen[t.ID] {
			seen[t.ID] = true
			*out = append(*out, t)
		}
	case *types.Modifier:
		collectFreeVars(t.Inner, seen, out)
	case *types.Ptr:
		collectFreeVars(t.Inner, seen, out)
	case *types.Array:
		collectFreeVars(t.Inner, seen, out)
	case *types.Data:
		for _, a := range t.TypeArgs {
			collectFreeVars(a, seen, out)
		}
	case *types.Function:
		for _, p := range t.Params {
			collectFreeVars(p, seen, out)
		}
		collectFreeVars(t.Ret, seen, out)
		for _, c := range t.TraitConstraints {
			for _, a := range c.TypeArgs {
				collectFreeVars(a, seen, out)
			}
			for _, f := range c.Fundeps {
				collectFreeVars(f, seen, out)
			}
		}
	case *types.Tuple:
		for _, f := range t.Fields {
			collectFreeVars(f, seen, out)
		}
		if t.RowVar != nil {
			collectFreeVars(t.RowVar, seen, out)
		}
	case *types.TaggedUnion:
		for _, a := range t.TypeArgs {
			collectFreeVars(a, seen, out)
		}
		for _, v := range t.Variants {
			for _, f := range v.Fields {
				collectFreeVars(f, seen, out)
			}
		}
	case *types.MetaFunction:
		for _, p := range t.Params {
			collectFreeVars(p, seen, out)
		}
		collectFreeVars(t.Ret, seen, out)
	case *types.FunctionList:
		for _, f := range t.Overloads {
			collectFreeVars(f, seen, out)
		}
	}
}

// Generalize quantifies every free variable remaining in t (after
// substitution has been applied) into a Scheme, carrying along the
// (pairwise-deduped per SPEC_FULL.md E4.2) trait constraints collected
// while solving this declaration — the "scheme per generalizable binding:
// (quantified_vars, trait_constraints, body_type)" spec 6 names as this
// core's output to code generation.
func Generalize(t types.Type, traitConstraints []*types.TraitImpl) *types.Scheme {
	return &types.Scheme{
		QuantifiedVars:   FreeVars(t),
		TraitConstraints: types.DedupeConstraintsPairwise(traitConstraints),
		BodyType:         t,
	}
}
