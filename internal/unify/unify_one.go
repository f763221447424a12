package unify

import (
	"fmt"

	"github.com/ante-lang/infercore/internal/types"
)

// stripModifiers unwraps every Modifier layer around t. Unification
// descends through modifiers transparently (spec Design Notes: "Modifier
// types must be treated as carrier-only wrappers: unification descends
// through them") — the modifier itself is preserved only when a
// substitution is later *applied* to a type (internal/types.substituteOne),
// not here, since UnifyOne only ever produces bindings, never a rewritten
// type.
func stripModifiers(t Type) Type {
	for {
		m, ok := t.(*types.Modifier)
		if !ok {
			return t
		}
		t = m.Inner
	}
}

// UnifyOne implements spec 4.4's unify_one(t1, t2, err), in the specified
// case order. depth guards the recursion cap (spec 5); callers at the list
// level pass 0 and UnifyOne threads depth+1 into every recursive call it
// makes for structural descent.
func UnifyOne(ctx *types.Context, t1, t2 Type, errCtx ErrorContext, depth int) (types.Substitution, *TypeError) {
	if depth > maxRecursionDepth {
		return nil, depthExceeded(depth, t1, t2, errCtx)
	}

	t1 = stripModifiers(t1)
	t2 = stripModifiers(t2)

	// Case 1: either side is a type variable.
	if v1, ok := t1.(*types.TypeVar); ok {
		if types.Occurs(v1, t2) {
			return nil, &TypeError{Kind: InfRecursion1, T1: t1, T2: t2, Loc: errCtx.Loc, Template: errCtx.Template}
		}
		return types.Substitution{{Var: v1, Type: t2}}, nil
	}
	if v2, ok := t2.(*types.TypeVar); ok {
		if types.Occurs(v2, t1) {
			return nil, &TypeError{Kind: InfRecursion2, T1: t1, T2: t2, Loc: errCtx.Loc, Template: errCtx.Template}
		}
		return types.Substitution{{Var: v2, Type: t1}}, nil
	}

	// Case 2: differing head constructors.
	if types.TypeTag(t1) != types.TypeTag(t2) {
		return nil, &TypeError{Kind: Mismatch, T1: t1, T2: t2, Loc: errCtx.Loc, Template: errCtx.Template}
	}

	// Case 3: both non-generic.
	if !t1.Generic() && !t2.Generic() {
		if types.ApproxEq(t1, t2) {
			return nil, nil
		}
		// Same head, different shape: name a parameter-count or tuple-size
		// difference by its own kind, anything else is a plain Mismatch.
		kind := Mismatch
		switch a := t1.(type) {
		case *types.Function:
			if len(a.Params) != len(t2.(*types.Function).Params) {
				kind = ArityMismatch
			}
		case *types.Data:
			if b := t2.(*types.Data); a.Name == b.Name && len(a.TypeArgs) != len(b.TypeArgs) {
				kind = ArityMismatch
			}
		case *types.Tuple:
			if len(a.Fields) != len(t2.(*types.Tuple).Fields) {
				kind = TupleWidth
			}
		}
		return nil, &TypeError{Kind: kind, T1: t1, T2: t2, Loc: errCtx.Loc, Template: errCtx.Template}
	}

	// Case 4: structural descent.
	switch a := t1.(type) {
	case *types.Ptr:
		b := t2.(*types.Ptr)
		return solveEqOnly(ctx, []eqPair{{a.Inner, b.Inner, errCtx}}, depth+1)

	case *types.Array:
		b := t2.(*types.Array)
		// Length is not unified (spec 4.4 note, spec 9 Open Questions).
		return solveEqOnly(ctx, []eqPair{{a.Inner, b.Inner, errCtx}}, depth+1)

	case *types.Data:
		b := t2.(*types.Data)
		if a.Name != b.Name {
			return nil, &TypeError{Kind: Mismatch, T1: t1, T2: t2, Loc: errCtx.Loc, Template: errCtx.Template}
		}
		if len(a.TypeArgs) != len(b.TypeArgs) {
			return nil, &TypeError{Kind: ArityMismatch, T1: t1, T2: t2, Loc: errCtx.Loc, Template: errCtx.Template}
		}
		pairs := make([]eqPair, len(a.TypeArgs))
		for i := range a.TypeArgs {
			pairs[i] = eqPair{a.TypeArgs[i], b.TypeArgs[i], errCtx}
		}
		return solveEqOnly(ctx, pairs, depth+1)

	case *types.Function:
		b := t2.(*types.Function)
		if len(a.Params) != len(b.Params) {
			return nil, &TypeError{Kind: ArityMismatch, T1: t1, T2: t2, Loc: errCtx.Loc, Template: errCtx.Template}
		}
		pairs := make([]eqPair, 0, len(a.Params)+1)
		for i := range a.Params {
			pairs = append(pairs, eqPair{a.Params[i], b.Params[i], errCtx})
		}
		pairs = append(pairs, eqPair{a.Ret, b.Ret, errCtx})
		// Trait constraints are propagated by C3/C5, never unified here
		// (spec 4.4: "Trait constraints are propagated, not unified").
		return solveEqOnly(ctx, pairs, depth+1)

	case *types.MetaFunction:
		b := t2.(*types.MetaFunction)
		if len(a.Params) != len(b.Params) {
			return nil, &TypeError{Kind: ArityMismatch, T1: t1, T2: t2, Loc: errCtx.Loc, Template: errCtx.Template}
		}
		pairs := make([]eqPair, 0, len(a.Params)+1)
		for i := range a.Params {
			pairs = append(pairs, eqPair{a.Params[i], b.Params[i], errCtx})
		}
		pairs = append(pairs, eqPair{a.Ret, b.Ret, errCtx})
		return solveEqOnly(ctx, pairs, depth+1)

	case *types.Tuple:
		b := t2.(*types.Tuple)
		return unifyTuple(ctx, a, b, errCtx, depth+1)

	case *types.TaggedUnion:
		b := t2.(*types.TaggedUnion)
		if a.Name != b.Name {
			return nil, &TypeError{Kind: Mismatch, T1: t1, T2: t2, Loc: errCtx.Loc, Template: errCtx.Template}
		}
		if len(a.TypeArgs) != len(b.TypeArgs) {
			return nil, &TypeError{Kind: ArityMismatch, T1: t1, T2: t2, Loc: errCtx.Loc, Template: errCtx.Template}
		}
		pairs := make([]eqPair, len(a.TypeArgs))
		for i := range a.TypeArgs {
			pairs[i] = eqPair{a.TypeArgs[i], b.TypeArgs[i], errCtx}
		}
		return solveEqOnly(ctx, pairs, depth+1)

	default:
		// FunctionList, KindType, VoidType carry no generic substructure the
		// spec gives a unify rule for; reaching here means both sides are
		// generic FunctionLists, which this core does not resolve (overload
		// sets are only ever compared after resolution, outside this core).
		return nil, &TypeError{Kind: Mismatch, T1: t1, T2: t2, Loc: errCtx.Loc, Template: errCtx.Template}
	}
}

// eqPair is one equality sub-constraint produced by structural descent.
type eqPair struct {
	LHS, RHS Type
	Err      ErrorContext
}

// solveEqOnly solves a list of equality-only constraints with the same
// right-to-left recursive algorithm as the top-level driver, but with
// isTopLevel effectively false: any failure propagates immediately instead
// of being caught and reported (spec 4.4: "Non-top-level recursive calls
// re-raise to propagate"). This is the Go counterpart of the original's
// unifyRecursive/unifyExts/unifyTuple helpers.
func solveEqOnly(ctx *types.Context, pairs []eqPair, depth int) (types.Substitution, *TypeError) {
	if len(pairs) == 0 {
		return nil, nil
	}
	tail, err := solveEqOnly(ctx, pairs[1:], depth+1)
	if err != nil {
		return nil, err
	}
	p := pairs[0]
	l := types.Apply(tail, p.LHS)
	r := types.Apply(tail, p.RHS)
	head, err := UnifyOne(ctx, l, r, p.Err, depth+1)
	if err != nil {
		return nil, err
	}
	return types.Compose(head, tail), nil
}

// unifyTuple implements spec 4.4's row-variable-aware Tuple case. Fields are
// matched by name whenever either side carries FieldNames: spec 4.3's field
// access rule emits `ty(e) ≡ Tuple([..pre, f: ty(access), ..post], row_var)`,
// and the only way to place `f` among an unknown `pre`/`post` is to find it
// by name, not by position. A plain positional tuple (FieldNames nil on both
// sides) falls out of the same matching as the degenerate case where every
// field's key is just its index, which reproduces the purely positional
// pairing original_source/src/unification.cpp's unifyTuple does.
func unifyTuple(ctx *types.Context, t1, t2 *types.Tuple, errCtx ErrorContext, depth int) (types.Substitution, *TypeError) {
	idx2 := make(map[string]int, len(t2.Fields))
	for j := range t2.Fields {
		idx2[fieldKey(t2.FieldNames, j)] = j
	}

	matched2 := make([]bool, len(t2.Fields))
	pairs := make([]eqPair, 0, len(t1.Fields))
	var onlyInT1 []int // indices into t1.Fields with no same-named field in t2
	for i := range t1.Fields {
		if j, ok := idx2[fieldKey(t1.FieldNames, i)]; ok {
			pairs = append(pairs, eqPair{t1.Fields[i], t2.Fields[j], errCtx})
			matched2[j] = true
		} else {
			onlyInT1 = append(onlyInT1, i)
		}
	}
	var onlyInT2 []int // indices into t2.Fields with no same-named field in t1
	for j := range t2.Fields {
		if !matched2[j] {
			onlyInT2 = append(onlyInT2, j)
		}
	}

	widthErr := func() (types.Substitution, *TypeError) {
		return nil, &TypeError{Kind: TupleWidth, T1: t1, T2: t2, Loc: errCtx.Loc, Template: errCtx.Template}
	}

	switch {
	case len(onlyInT1) > 0 && len(onlyInT2) > 0:
		// Fields on each side the other lacks: not the strict-subset shape
		// spec 4.4's asymmetric rule covers.
		return widthErr()
	case len(onlyInT1) > 0 && t2.RowVar == nil:
		return widthErr()
	case len(onlyInT2) > 0 && t1.RowVar == nil:
		return widthErr()
	}

	sub, err := solveEqOnly(ctx, pairs, depth+1)
	if err != nil {
		return nil, err
	}

	switch {
	case len(onlyInT1) > 0:
		// t1 has fields t2 lacks: t2's row var absorbs them, forwarding t1's
		// own row var so the remainder is still as extensible as t1 was.
		remainder := extractFields(t1, onlyInT1, t1.RowVar)
		return types.Compose(types.Substitution{{Var: t2.RowVar, Type: remainder}}, sub), nil
	case len(onlyInT2) > 0:
		remainder := extractFields(t2, onlyInT2, t2.RowVar)
		return types.Compose(types.Substitution{{Var: t1.RowVar, Type: remainder}}, sub), nil
	case t1.RowVar != nil && t2.RowVar != nil && t1.RowVar.ID == t2.RowVar.ID:
		// Already the same row variable; nothing to bind.
		return sub, nil
	case t1.RowVar != nil && t2.RowVar != nil:
		// Same known fields on both sides and both still open: the two row
		// variables stand for the same unknown remainder. original
		// unification.cpp's unifyTuple never forces an open row closed; this
		// is the sound generalization of that to two row vars instead of
		// one, preserving both sides' shared extensibility rather than
		// closing them off.
		remainder := &types.Tuple{RowVar: t2.RowVar}
		return types.Compose(types.Substitution{{Var: t1.RowVar, Type: remainder}}, sub), nil
	case t1.RowVar != nil:
		return types.Compose(types.Substitution{{Var: t1.RowVar, Type: &types.Tuple{}}}, sub), nil
	case t2.RowVar != nil:
		return types.Compose(types.Substitution{{Var: t2.RowVar, Type: &types.Tuple{}}}, sub), nil
	default:
		return sub, nil
	}
}

// fieldKey is the identity a tuple field is matched by: its name when the
// tuple carries FieldNames, otherwise its position.
func fieldKey(names []string, i int) string {
	if names != nil && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("#%d", i)
}

// extractFields builds the row-var binding for t's fields at the given
// indices, forwarding rowVar as the remainder's own row so it stays exactly
// as extensible as t was before these fields were matched away.
func extractFields(t *types.Tuple, indices []int, rowVar *types.TypeVar) *types.Tuple {
	fields := make([]types.Type, len(indices))
	var names []string
	if t.FieldNames != nil {
		names = make([]string, len(indices))
	}
	for k, i := range indices {
		fields[k] = t.Fields[i]
		if names != nil {
			names[k] = t.FieldNames[i]
		}
	}
	return &types.Tuple{Fields: fields, FieldNames: names, RowVar: rowVar}
}
