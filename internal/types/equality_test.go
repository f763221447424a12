package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOccursSelfReferenceIsNotACycle(t *testing.T) {
	v := &TypeVar{ID: 1}
	assert.False(t, Occurs(v, v), "a variable does not occur inside itself for binding purposes")
}

func TestOccursInsideFunction(t *testing.T) {
	v := &TypeVar{ID: 1}
	fn := &Function{Params: []Type{v}, Ret: &Primitive{Tag: Unit}}
	assert.True(t, Occurs(v, fn))
}

func TestOccursInsideTraitConstraint(t *testing.T) {
	v := &TypeVar{ID: 1}
	impl := &TraitImpl{DeclRef: &TraitDeclRef{Name: "Num"}, TypeArgs: []Type{v}}
	fn := &Function{Ret: &Primitive{Tag: Unit}, TraitConstraints: []*TraitImpl{impl}}
	assert.True(t, Occurs(v, fn))
}

func TestOccursNotFound(t *testing.T) {
	v1 := &TypeVar{ID: 1}
	v2 := &TypeVar{ID: 2}
	assert.False(t, Occurs(v1, v2))
}

func TestApproxEqIgnoresModifiers(t *testing.T) {
	bare := &Primitive{Tag: I32}
	wrapped := &Modifier{Flag: Mut, Inner: &Primitive{Tag: I32}}
	assert.True(t, ApproxEq(bare, wrapped))
	assert.True(t, ApproxEq(wrapped, bare))
}

func TestApproxEqMismatch(t *testing.T) {
	assert.False(t, ApproxEq(&Primitive{Tag: I32}, &Primitive{Tag: Bool}))
}

func TestEqualsNonGenericHandleEquality(t *testing.T) {
	ctx := NewContext()
	a := ctx.PtrOf(&Primitive{Tag: I32})
	b := ctx.PtrOf(&Primitive{Tag: I32})
	assert.Same(t, Type(a), Type(b), "structurally-equal non-generic types must intern to one handle")
	assert.True(t, Equals(a, b))
}

func TestEqualsGenericIsStructural(t *testing.T) {
	v1 := &TypeVar{ID: 7}
	v2 := &TypeVar{ID: 7}
	assert.NotSame(t, Type(v1), Type(v2))
	assert.True(t, Equals(v1, v2))
}
