// Package unify is C4, the constraint solver. It consumes the ordered
// UnificationList C3 produces and resolves it to a single Substitution,
// following original_source/src/unification.cpp's unify/unifyOne structure:
// recursion descends toward the latest-emitted constraint first and unwinds
// back toward the earliest, so each constraint is unified under the combined
// substitution of every constraint that was emitted after it.
package unify

import "github.com/ante-lang/infercore/internal/types"

// Resolver satisfies trait constraints against a pre-registered
// implementation table. internal/traits.Table implements this; kept as an
// interface here so unify does not import traits (traits imports unify's
// error/constraint vocabulary instead, avoiding an import cycle).
type Resolver interface {
	Resolve(impl *types.TraitImpl) (types.Substitution, []*types.TraitImpl, bool)
}

// Unify solves list to a single Substitution. Constraint failures at this,
// the top level, do not abort the solve: spec 4.4/7 describe continuing
// under the partial substitution accumulated so far so independent
// downstream constraints can still be checked, rather than a single
// confusing cascade triggered by one early mistake. Each such failure is
// appended to the returned diagnostics slice.
//
// This deliberately diverges from a literal reading of the original C++
// driver, whose top-level catch returns an entirely empty substitution on
// failure (discarding every substitution accumulated by constraints
// processed earlier in the list). The spec's prose is explicit that
// downstream constraints solve "under the partial substitution", so that is
// what's implemented.
//
// An InternalRecursion failure is never added to diagnostics: it is a
// genuine fatal condition (stack/recursion exhaustion), not a type error in
// the user's program, and is returned directly as the third result. That
// includes a types.ErrInternalRecursion panic raised while applying a
// substitution during the solve, which is recovered here.
func Unify(ctx *types.Context, list UnificationList, resolver Resolver) (sub types.Substitution, diags []*TypeError, fatal *TypeError) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*types.ErrInternalRecursion)
			if !ok {
				panic(r)
			}
			sub, fatal = nil, &TypeError{Kind: InternalRecursion, T1: e.Replacement, T2: e.In}
		}
	}()
	sub, fatal = solve(ctx, list, 0, true, resolver, &diags)
	if fatal != nil {
		return nil, diags, fatal
	}
	return sub, diags, nil
}

func solve(ctx *types.Context, list UnificationList, idx int, topLevel bool, resolver Resolver, diags *[]*TypeError) (types.Substitution, *TypeError) {
	if idx >= len(list) {
		return nil, nil
	}

	tail, fatal := solve(ctx, list, idx+1, topLevel, resolver, diags)
	if fatal != nil {
		return nil, fatal
	}

	switch c := list[idx].(type) {
	case EqConstraint:
		l := types.Apply(tail, c.LHS)
		r := types.Apply(tail, c.RHS)
		head, err := UnifyOne(ctx, l, r, c.Err, 0)
		if err != nil {
			if err.Kind == InternalRecursion {
				return nil, err
			}
			if !topLevel {
				return nil, err
			}
			*diags = append(*diags, err)
			return tail, nil
		}
		return types.Compose(head, tail), nil

	case TraitConstraint:
		impl := types.ApplyToTraitImpl(tail, c.Impl)
		sub, candidates, ok := resolver.Resolve(impl)
		if !ok {
			kind := TraitUnsatisfied
			if len(candidates) > 1 {
				kind = Overlapping
			}
			err := &TypeError{Kind: kind, Impl: impl, Loc: c.Err.Loc, Template: c.Err.Template, Candidates: candidates}
			if !topLevel {
				return nil, err
			}
			*diags = append(*diags, err)
			return tail, nil
		}
		return types.Compose(sub, tail), nil

	default:
		panic("unreachable: unknown Constraint variant")
	}
}
