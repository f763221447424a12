package unify

import "github.com/ante-lang/infercore/internal/types"

// Constraint is either an equality constraint or a trait-implementation
// constraint (spec 3).
type Constraint interface {
	isConstraint()
}

// EqConstraint is `t1 ≡ t2` tagged with the location/message of the AST
// construct that produced it.
type EqConstraint struct {
	LHS, RHS Type
	Err      ErrorContext
}

func (EqConstraint) isConstraint() {}

// TraitConstraint requires that Impl be satisfiable against the
// pre-registered trait-implementation table (spec 3).
type TraitConstraint struct {
	Impl *types.TraitImpl
	Err  ErrorContext
}

func (TraitConstraint) isConstraint() {}

// UnificationList is the ordered constraint list C3 produces (spec 2/3):
// insertion order is source order of emission.
type UnificationList []Constraint
