package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreshVarMonotone(t *testing.T) {
	ctx := NewContext()
	v1 := ctx.FreshVar()
	v2 := ctx.FreshVar()
	v3 := ctx.FreshRowVar()
	assert.Less(t, v1.ID, v2.ID)
	assert.Less(t, v2.ID, v3.ID)
	assert.False(t, v1.IsRow)
	assert.True(t, v3.IsRow)
}

func TestResetRestartsCounter(t *testing.T) {
	ctx := NewContext()
	ctx.FreshVar()
	ctx.FreshVar()
	ctx.Reset()
	v := ctx.FreshVar()
	assert.Equal(t, 1, v.ID)
}

func TestCopyWithFreshVarsConsistency(t *testing.T) {
	ctx := NewContext()
	a := ctx.FreshVar()
	b := ctx.FreshVar()

	// (a, a, b) -- equal inputs must map to equal outputs, distinct inputs
	// to distinct outputs, within one call.
	tup := &Tuple{Fields: []Type{a, a, b}}
	copied := ctx.CopyWithFreshVars(tup).(*Tuple)

	require.Len(t, copied.Fields, 3)
	f0 := copied.Fields[0].(*TypeVar)
	f1 := copied.Fields[1].(*TypeVar)
	f2 := copied.Fields[2].(*TypeVar)

	assert.Equal(t, f0.ID, f1.ID, "equal inputs must map to equal outputs")
	assert.NotEqual(t, f0.ID, f2.ID, "distinct inputs must map to distinct outputs")
	assert.NotEqual(t, f0.ID, a.ID, "copy must allocate new variables")
}

func TestCopyWithFreshVarsNonGenericUnchanged(t *testing.T) {
	ctx := NewContext()
	prim := &Primitive{Tag: I32}
	copied := ctx.CopyWithFreshVars(prim)
	assert.Same(t, Type(prim), copied)
}

func TestCopyWithFreshVarsPreservesRowFlag(t *testing.T) {
	ctx := NewContext()
	row := ctx.FreshRowVar()
	tup := &Tuple{Fields: []Type{&Primitive{Tag: I32}}, RowVar: row}
	copied := ctx.CopyWithFreshVars(tup).(*Tuple)
	require.NotNil(t, copied.RowVar)
	assert.True(t, copied.RowVar.IsRow)
	assert.NotEqual(t, row.ID, copied.RowVar.ID)
}

func TestModifierNeverDoubleWraps(t *testing.T) {
	ctx := NewContext()
	inner := &Primitive{Tag: Bool}
	once := ctx.WithModifier(Mut, inner)
	twice := ctx.WithModifier(Mut, once)
	m, ok := twice.(*Modifier)
	require.True(t, ok)
	_, nested := m.Inner.(*Modifier)
	assert.False(t, nested, "modifier must not nest the same flag")
}
