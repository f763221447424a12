package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ante-lang/infercore/internal/ast"
	"github.com/ante-lang/infercore/internal/types"
)

// A determined integer literal (e.g. "42i64") keeps its own concrete type
// rather than getting a fresh variable (spec 4.2).
func TestAnnotateDeterminedIntLitKeepsItsType(t *testing.T) {
	ctx := types.NewContext()
	a := NewAnnotator(ctx)
	i64 := &types.Primitive{Tag: types.I64}
	lit := &ast.IntLit{Value: 42, Determined: true, DeterminedType: i64}

	a.annotateExpr(lit)

	assert.Same(t, types.Type(i64), lit.GetType())
}

// An undetermined integer literal still gets a fresh variable from C2;
// pinning it to DefaultInt is C3's job, not C2's.
func TestAnnotateUndeterminedIntLitGetsFreshVar(t *testing.T) {
	ctx := types.NewContext()
	a := NewAnnotator(ctx)
	lit := &ast.IntLit{Value: 1}

	a.annotateExpr(lit)

	require.NotNil(t, lit.GetType())
	_, isVar := lit.GetType().(*types.TypeVar)
	assert.True(t, isVar)
}

// A parameter with an explicit ascription keeps it; one without gets a
// fresh variable (spec 4.2 "explicit type ascriptions receive the
// determined type directly").
func TestAnnotateParamAscriptionVsFreshVar(t *testing.T) {
	ctx := types.NewContext()
	a := NewAnnotator(ctx)
	boolT := &types.Primitive{Tag: types.Bool}

	ascribed := &ast.Param{Name: "x", Ascription: boolT}
	a.annotateParam(ascribed)
	assert.Same(t, types.Type(boolT), ascribed.GetType())

	bare := &ast.Param{Name: "y"}
	a.annotateParam(bare)
	_, isVar := bare.GetType().(*types.TypeVar)
	assert.True(t, isVar)
}

// Children are annotated before their parent's own fresh variable is
// allocated, so a parent's counter value is always strictly greater than
// every child's (spec 4.1 monotonicity, applied to C2's own allocation
// order).
func TestAnnotateChildrenBeforeParent(t *testing.T) {
	ctx := types.NewContext()
	a := NewAnnotator(ctx)
	left := &ast.IntLit{Value: 1}
	right := &ast.IntLit{Value: 2}
	binop := &ast.BinOp{Op: "+", Left: left, Right: right}

	a.annotateExpr(binop)

	leftVar := left.GetType().(*types.TypeVar)
	rightVar := right.GetType().(*types.TypeVar)
	parentVar := binop.GetType().(*types.TypeVar)
	assert.Less(t, leftVar.ID, parentVar.ID)
	assert.Less(t, rightVar.ID, parentVar.ID)
}

// A Let node's own type slot and its BindingType are two distinct
// placeholders, both non-nil after C2 — the split that fixes the
// bound-name-vs-whole-expression conflation (see DESIGN.md).
func TestAnnotateLetGivesDistinctBindingAndResultSlots(t *testing.T) {
	ctx := types.NewContext()
	a := NewAnnotator(ctx)
	let := &ast.Let{
		Name:  "x",
		Value: &ast.IntLit{Value: 1},
		Body:  &ast.Var{Name: "x"},
	}

	a.annotateExpr(let)

	require.NotNil(t, let.BindingType)
	require.NotNil(t, let.GetType())
	assert.NotSame(t, let.BindingType, let.GetType())
}

// A mutable local let wraps BindingType in a Mut modifier (spec 4.3).
func TestAnnotateMutableLetWrapsBindingTypeInMut(t *testing.T) {
	ctx := types.NewContext()
	a := NewAnnotator(ctx)
	let := &ast.Let{
		Name:    "x",
		Mutable: true,
		Value:   &ast.IntLit{Value: 1},
		Body:    &ast.Var{Name: "x"},
	}

	a.annotateExpr(let)

	mod, ok := let.BindingType.(*types.Modifier)
	require.True(t, ok)
	assert.Equal(t, types.Mut, mod.Flag)
}

// StringLit literals all share the same interned handle (spec 3's
// non-generic interning invariant, satisfied here without a Context).
func TestAnnotateStringLitSharesHandle(t *testing.T) {
	ctx := types.NewContext()
	a := NewAnnotator(ctx)
	s1 := &ast.StringLit{Value: "a"}
	s2 := &ast.StringLit{Value: "b"}

	a.annotateExpr(s1)
	a.annotateExpr(s2)

	assert.Same(t, s1.GetType(), s2.GetType())
}
