// Package traits holds the pre-registered trait-implementation table and
// functional-dependency narrowing referenced by spec 4.4's trait-constraint
// case, split out of the teacher's combined dictionaries.go/instances.go
// (SPEC_FULL.md E1) so internal/unify stays free of instance-table storage
// concerns and only depends on the narrow Resolver interface it declares.
package traits

import (
	"fmt"

	"github.com/ante-lang/infercore/internal/types"
	"github.com/ante-lang/infercore/internal/unify"
)

// Table is a coherent set of trait implementations: at most one registered
// impl may match any given (trait, concrete type args) pair.
type Table struct {
	ctx   *types.Context
	impls map[string][]*types.TraitImpl
}

// NewTable returns an empty Table. ctx supplies the fresh type variables
// Resolve needs to instantiate a candidate impl's own pattern before
// matching it against a query (spec 4.1's CopyWithFreshVars, applied here to
// TraitImpl patterns rather than a binding's Scheme).
func NewTable(ctx *types.Context) *Table {
	return &Table{ctx: ctx, impls: make(map[string][]*types.TraitImpl)}
}

// Register adds impl to the table, rejecting it if its pattern overlaps an
// already-registered impl for the same trait declaration (Open Question
// decision, SPEC_FULL.md E5: overlap is forbidden, checked at registration
// rather than at resolution, matching the teacher's InstanceEnv.Add
// coherence check).
func (t *Table) Register(impl *types.TraitImpl) error {
	key := impl.DeclRef.Name
	for _, existing := range t.impls[key] {
		fresh := t.ctx.CopyTraitImplWithFreshVars(existing)
		if _, ok := unify.TryUnifyAll(t.ctx, fresh.TypeArgs, impl.TypeArgs); ok {
			return fmt.Errorf("traits: overlapping implementations for %s: %s and %s", key, existing, impl)
		}
	}
	t.impls[key] = append(t.impls[key], impl)
	return nil
}

// Resolve implements unify.Resolver: it looks for exactly one registered
// impl whose TypeArgs pattern matches query's TypeArgs, then narrows
// functional dependencies by unifying the matched impl's Fundeps pattern
// against query's Fundeps (SPEC_FULL.md E4.4's two-phase match-then-narrow).
// The third result is false, and the second holds every impl that matched
// on TypeArgs alone, when zero or more than one impl matches (Register's
// coherence check means more than one should never actually happen, but
// Resolve does not trust that invariant blindly).
func (t *Table) Resolve(query *types.TraitImpl) (types.Substitution, []*types.TraitImpl, bool) {
	var matches []*types.TraitImpl
	var matchSubs []types.Substitution

	for _, candidate := range t.impls[query.DeclRef.Name] {
		fresh := t.ctx.CopyTraitImplWithFreshVars(candidate)
		sub, ok := unify.TryUnifyAll(t.ctx, fresh.TypeArgs, query.TypeArgs)
		if !ok {
			continue
		}
		matches = append(matches, fresh)
		matchSubs = append(matchSubs, sub)
	}

	if len(matches) != 1 {
		return nil, matches, false
	}

	sub := matchSubs[0]
	fundepPattern := make([]types.Type, len(matches[0].Fundeps))
	for i, f := range matches[0].Fundeps {
		fundepPattern[i] = types.Apply(sub, f)
	}
	fundepSub, ok := unify.TryUnifyAll(t.ctx, fundepPattern, query.Fundeps)
	if !ok {
		return nil, matches, false
	}
	return types.Compose(fundepSub, sub), nil, true
}
