package unify

import "github.com/ante-lang/infercore/internal/types"

// TryUnify is the non-raising unification probe used by trait resolution
// (SPEC_FULL.md E4.1, grounded on original_source/src/unification.cpp's
// tryUnify): it reports whether t1 and t2 *can* unify and, if so, the
// substitution that does it, without ever touching the diagnostics sink.
// internal/traits uses this to test candidate implementations and to narrow
// functional dependencies, where a failed attempt is routine control flow
// rather than a user-facing type error.
func TryUnify(ctx *types.Context, t1, t2 types.Type) (types.Substitution, bool) {
	sub, err := UnifyOne(ctx, t1, t2, ErrorContext{}, 0)
	if err != nil {
		return nil, false
	}
	return sub, true
}

// TryUnifyAll probes a list of (t1, t2) pairs against each other in
// sequence, threading the accumulated substitution through each probe. Used
// to match a TraitImpl's TypeArgs against a candidate's before checking
// functional dependencies.
func TryUnifyAll(ctx *types.Context, lhs, rhs []types.Type) (types.Substitution, bool) {
	if len(lhs) != len(rhs) {
		return nil, false
	}
	var sub types.Substitution
	for i := range lhs {
		l := types.Apply(sub, lhs[i])
		r := types.Apply(sub, rhs[i])
		step, ok := TryUnify(ctx, l, r)
		if !ok {
			return nil, false
		}
		sub = types.Compose(step, sub)
	}
	return sub, true
}
