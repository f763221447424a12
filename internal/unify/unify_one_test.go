package unify

import (
	"testing"

	"github.com/ante-lang/infercore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolT() *types.Primitive { return &types.Primitive{Tag: types.Bool} }
func i64T() *types.Primitive  { return &types.Primitive{Tag: types.I64} }

func TestUnifyOneVarBindsToConcreteType(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.FreshVar()
	sub, err := UnifyOne(ctx, v, boolT(), ErrorContext{}, 0)
	require.Nil(t, err)
	require.Len(t, sub, 1)
	assert.Same(t, v, sub[0].Var)
	assert.Equal(t, boolT(), sub[0].Type)
}

func TestUnifyOneVarSelfBindingIsNotACycle(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.FreshVar()
	sub, err := UnifyOne(ctx, v, v, ErrorContext{}, 0)
	require.Nil(t, err)
	require.Len(t, sub, 1)
}

func TestUnifyOneOccursCheckFails(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.FreshVar()
	ptr := ctx.PtrOf(v)
	_, err := UnifyOne(ctx, v, ptr, ErrorContext{}, 0)
	require.NotNil(t, err)
	assert.Equal(t, InfRecursion1, err.Kind)

	_, err = UnifyOne(ctx, ptr, v, ErrorContext{}, 0)
	require.NotNil(t, err)
	assert.Equal(t, InfRecursion2, err.Kind)
}

func TestUnifyOneTagMismatch(t *testing.T) {
	ctx := types.NewContext()
	_, err := UnifyOne(ctx, boolT(), ctx.PtrOf(boolT()), ErrorContext{}, 0)
	require.NotNil(t, err)
	assert.Equal(t, Mismatch, err.Kind)
}

func TestUnifyOneNonGenericApproxEq(t *testing.T) {
	ctx := types.NewContext()
	sub, err := UnifyOne(ctx, boolT(), boolT(), ErrorContext{}, 0)
	require.Nil(t, err)
	assert.Nil(t, sub)
}

func TestUnifyOneNonGenericMismatchingPrimitives(t *testing.T) {
	ctx := types.NewContext()
	_, err := UnifyOne(ctx, boolT(), i64T(), ErrorContext{}, 0)
	require.NotNil(t, err)
	assert.Equal(t, Mismatch, err.Kind)
}

func TestUnifyOneModifierIsTransparent(t *testing.T) {
	ctx := types.NewContext()
	mut := ctx.WithModifier(types.Mut, boolT())
	sub, err := UnifyOne(ctx, mut, boolT(), ErrorContext{}, 0)
	require.Nil(t, err)
	assert.Nil(t, sub)
}

func TestUnifyOneFunctionArityMismatch(t *testing.T) {
	ctx := types.NewContext()
	f1 := ctx.FuncOf([]types.Type{boolT()}, boolT(), nil)
	f2 := ctx.FuncOf([]types.Type{boolT(), boolT()}, boolT(), nil)
	_, err := UnifyOne(ctx, f1, f2, ErrorContext{}, 0)
	require.NotNil(t, err)
	assert.Equal(t, ArityMismatch, err.Kind)
}

func TestUnifyOneFunctionUnifiesParamsAndReturn(t *testing.T) {
	ctx := types.NewContext()
	v1, v2 := ctx.FreshVar(), ctx.FreshVar()
	f1 := ctx.FuncOf([]types.Type{v1}, v2, nil)
	f2 := ctx.FuncOf([]types.Type{boolT()}, i64T(), nil)
	sub, err := UnifyOne(ctx, f1, f2, ErrorContext{}, 0)
	require.Nil(t, err)
	assert.Equal(t, boolT(), types.Apply(sub, v1))
	assert.Equal(t, i64T(), types.Apply(sub, v2))
}

func TestUnifyOneDataArityMismatch(t *testing.T) {
	ctx := types.NewContext()
	decl := &types.Decl{Name: "Pair"}
	d1 := ctx.DataOf("Pair", []types.Type{boolT()}, decl)
	d2 := ctx.DataOf("Pair", []types.Type{boolT(), boolT()}, decl)
	_, err := UnifyOne(ctx, d1, d2, ErrorContext{}, 0)
	require.NotNil(t, err)
	assert.Equal(t, ArityMismatch, err.Kind)
}

func TestUnifyOneDataNameMismatchIsMismatch(t *testing.T) {
	ctx := types.NewContext()
	d1 := ctx.DataOf("Pair", []types.Type{boolT()}, &types.Decl{Name: "Pair"})
	d2 := ctx.DataOf("Either", []types.Type{boolT()}, &types.Decl{Name: "Either"})
	_, err := UnifyOne(ctx, d1, d2, ErrorContext{}, 0)
	require.NotNil(t, err)
	assert.Equal(t, Mismatch, err.Kind)
}

func TestUnifyTupleSameWidthNoRow(t *testing.T) {
	ctx := types.NewContext()
	v1 := ctx.FreshVar()
	t1 := ctx.TupleOf([]types.Type{v1, boolT()}, nil, nil)
	t2 := ctx.TupleOf([]types.Type{i64T(), boolT()}, nil, nil)
	sub, err := UnifyOne(ctx, t1, t2, ErrorContext{}, 0)
	require.Nil(t, err)
	assert.Equal(t, i64T(), types.Apply(sub, v1))
}

func TestUnifyTupleWidthMismatchWithoutRowVarFails(t *testing.T) {
	ctx := types.NewContext()
	t1 := ctx.TupleOf([]types.Type{boolT()}, nil, nil)
	t2 := ctx.TupleOf([]types.Type{boolT(), boolT()}, nil, nil)
	_, err := UnifyOne(ctx, t1, t2, ErrorContext{}, 0)
	require.NotNil(t, err)
	assert.Equal(t, TupleWidth, err.Kind)
}

func TestUnifyTupleRowVarAbsorbsExtraFields(t *testing.T) {
	ctx := types.NewContext()
	row := ctx.FreshRowVar()
	short := &types.Tuple{Fields: []types.Type{boolT()}, RowVar: row}
	long := ctx.TupleOf([]types.Type{boolT(), i64T()}, nil, nil)

	sub, err := UnifyOne(ctx, short, long, ErrorContext{}, 0)
	require.Nil(t, err)

	widened := types.Apply(sub, short)
	tup, ok := widened.(*types.Tuple)
	require.True(t, ok)
	require.Len(t, tup.Fields, 2)
	assert.Equal(t, boolT(), tup.Fields[0])
	assert.Equal(t, i64T(), tup.Fields[1])
}

func TestUnifyTupleBothRowVarsSameWidthUnifyRowsTogether(t *testing.T) {
	// Two still-open tuples with the same known fields must keep sharing a
	// remainder, not both get closed off to empty (that would make it
	// impossible to later widen either one with the same new field).
	ctx := types.NewContext()
	r1, r2 := ctx.FreshRowVar(), ctx.FreshRowVar()
	t1 := &types.Tuple{Fields: []types.Type{boolT()}, RowVar: r1}
	t2 := &types.Tuple{Fields: []types.Type{boolT()}, RowVar: r2}
	sub, err := UnifyOne(ctx, t1, t2, ErrorContext{}, 0)
	require.Nil(t, err)

	// r1 is aliased to r2 (or, symmetrically, vice versa): applying the
	// substitution to either one yields a still-open row, not Tuple{}.
	widened := types.Apply(sub, r1)
	tup, ok := widened.(*types.Tuple)
	require.True(t, ok)
	assert.Empty(t, tup.Fields)
	assert.NotNil(t, tup.RowVar)

	// A further field on whichever row var survives still widens both t1
	// and t2's view, confirming they share one remainder rather than two
	// independent closed-empty rows.
	extra := ctx.TupleOf([]types.Type{i64T()}, []string{"c"}, nil)
	sub2, err := UnifyOne(ctx, tup.RowVar, extra, ErrorContext{}, 0)
	require.Nil(t, err)
	full := types.Compose(sub2, sub)
	widened1 := types.Apply(full, t1).(*types.Tuple)
	widened2 := types.Apply(full, t2).(*types.Tuple)
	assert.Len(t, widened1.Fields, 2)
	assert.Len(t, widened2.Fields, 2)
}

func TestUnifyTupleOnlyOneSideHasRowVarSameWidthBindsToEmpty(t *testing.T) {
	// A closed tuple unified against an equal-width open one still forces
	// the open side's row var to empty — there is nothing left to absorb.
	ctx := types.NewContext()
	row := ctx.FreshRowVar()
	open := &types.Tuple{Fields: []types.Type{boolT()}, RowVar: row}
	closed := ctx.TupleOf([]types.Type{boolT()}, nil, nil)
	sub, err := UnifyOne(ctx, open, closed, ErrorContext{}, 0)
	require.Nil(t, err)
	assert.Equal(t, &types.Tuple{}, types.Apply(sub, row))
}

func TestUnifyTupleFieldAccessMatchesByNameNotPosition(t *testing.T) {
	// spec 8 scenario 6: r = {a = 1, b = True}; r.b must resolve to Bool,
	// not to whatever type sits at field position 0.
	ctx := types.NewContext()
	row := ctx.FreshRowVar()
	access := &types.Tuple{Fields: []types.Type{ctx.FreshVar()}, FieldNames: []string{"b"}, RowVar: row}
	record := ctx.TupleOf([]types.Type{i64T(), boolT()}, []string{"a", "b"}, nil)

	sub, err := UnifyOne(ctx, access, record, ErrorContext{}, 0)
	require.Nil(t, err)
	assert.Equal(t, boolT(), types.Apply(sub, access.Fields[0]))
}

func TestUnifyTupleFieldAccessOfAbsentFieldIsTupleWidth(t *testing.T) {
	// spec 8 scenario 6: r.c against {a, b} must raise TupleWidth, not
	// silently succeed against whatever occupies position 0.
	ctx := types.NewContext()
	row := ctx.FreshRowVar()
	access := &types.Tuple{Fields: []types.Type{ctx.FreshVar()}, FieldNames: []string{"c"}, RowVar: row}
	record := ctx.TupleOf([]types.Type{i64T(), boolT()}, []string{"a", "b"}, nil)

	_, err := UnifyOne(ctx, access, record, ErrorContext{}, 0)
	require.NotNil(t, err)
	assert.Equal(t, TupleWidth, err.Kind)
}

func TestUnifyOneDepthCapIsFatal(t *testing.T) {
	ctx := types.NewContext()
	_, err := UnifyOne(ctx, boolT(), boolT(), ErrorContext{}, maxRecursionDepth+1)
	require.NotNil(t, err)
	assert.Equal(t, InternalRecursion, err.Kind)
}
