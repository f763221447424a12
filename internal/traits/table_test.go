package traits

import (
	"testing"

	"github.com/ante-lang/infercore/internal/types"
	"github.com/ante-lang/infercore/internal/unify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolT() types.Type { return &types.Primitive{Tag: types.Bool} }
func i64T() types.Type  { return &types.Primitive{Tag: types.I64} }

func TestLoadBuiltinsRegistersWithoutError(t *testing.T) {
	ctx := types.NewContext()
	table := NewTable(ctx)
	require.NoError(t, LoadBuiltins(table))
}

func TestResolveMatchesRegisteredPrimitiveImpl(t *testing.T) {
	ctx := types.NewContext()
	table := NewTable(ctx)
	require.NoError(t, LoadBuiltins(table))

	query := &types.TraitImpl{DeclRef: &types.TraitDeclRef{Name: "Show"}, TypeArgs: []types.Type{boolT()}}
	_, _, ok := table.Resolve(query)
	assert.True(t, ok)
}

func TestResolveFailsForUnregisteredTrait(t *testing.T) {
	ctx := types.NewContext()
	table := NewTable(ctx)
	require.NoError(t, LoadBuiltins(table))

	query := &types.TraitImpl{DeclRef: &types.TraitDeclRef{Name: "Show"}, TypeArgs: []types.Type{&types.Ptr{Inner: boolT()}}}
	_, _, ok := table.Resolve(query)
	assert.False(t, ok)
}

func TestRegisterRejectsOverlap(t *testing.T) {
	ctx := types.NewContext()
	table := NewTable(ctx)
	impl := &types.TraitImpl{DeclRef: &types.TraitDeclRef{Name: "Show"}, TypeArgs: []types.Type{boolT()}}
	require.NoError(t, table.Register(impl))
	err := table.Register(&types.TraitImpl{DeclRef: &types.TraitDeclRef{Name: "Show"}, TypeArgs: []types.Type{boolT()}})
	require.Error(t, err)
}

func TestResolveNarrowsFunctionalDependency(t *testing.T) {
	ctx := types.NewContext()
	table := NewTable(ctx)
	require.NoError(t, LoadBuiltins(table))

	fundepVar := ctx.FreshVar()
	query := &types.TraitImpl{
		DeclRef:  &types.TraitDeclRef{Name: "Deref"},
		TypeArgs: []types.Type{&types.Ptr{Inner: i64T()}},
		Fundeps:  []types.Type{fundepVar},
	}
	sub, _, ok := table.Resolve(query)
	require.True(t, ok)
	assert.Equal(t, i64T(), types.Apply(sub, fundepVar))
}

func TestTableSatisfiesUnifyResolver(t *testing.T) {
	var _ unify.Resolver = (*Table)(nil)
}
