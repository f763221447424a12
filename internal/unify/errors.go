package unify

import (
	"fmt"

	"github.com/ante-lang/infercore/internal/ast"
	"github.com/ante-lang/infercore/internal/types"
)

// ErrorKind enumerates the unifier's error kinds (spec 7).
type ErrorKind string

const (
	Mismatch          ErrorKind = "mismatch"
	InfRecursion1     ErrorKind = "inf_recursion_1"
	InfRecursion2     ErrorKind = "inf_recursion_2"
	ArityMismatch     ErrorKind = "arity_mismatch"
	TupleWidth        ErrorKind = "tuple_width"
	TraitUnsatisfied  ErrorKind = "trait_unsatisfied"
	Overlapping       ErrorKind = "overlapping"
	InternalRecursion ErrorKind = "internal_recursion"
)

// ErrorContext tags a constraint with the source location and message
// template used for its diagnostic (spec 3: "All constraints carry a
// TypeError{loc, message_template} used by C6").
type ErrorContext struct {
	Loc      ast.Pos
	Template string
}

// TypeError is what UnifyOne raises (as a Go error) carrying (t1, t2, kind)
// per spec 4.4's "Error collection" paragraph.
type TypeError struct {
	Kind       ErrorKind
	T1, T2     Type               // populated for every kind except TraitUnsatisfied/Overlapping
	Impl       *types.TraitImpl   // populated for TraitUnsatisfied/Overlapping
	Loc        ast.Pos
	Template   string
	Candidates []*types.TraitImpl // populated only for Overlapping
}

// Type is an alias kept local so this file reads close to the spec's own
// "t1, t2" vocabulary without repeating the types. prefix everywhere.
type Type = types.Type

func (e *TypeError) Error() string {
	switch e.Kind {
	case InfRecursion1:
		return fmt.Sprintf("%s occurs inside %s", e.T1, e.T2)
	case InfRecursion2:
		return fmt.Sprintf("%s occurs inside %s", e.T2, e.T1)
	case ArityMismatch:
		return fmt.Sprintf("arity mismatch between %s and %s", e.T1, e.T2)
	case TupleWidth:
		return fmt.Sprintf("incompatible record widths: %s vs %s", e.T1, e.T2)
	case TraitUnsatisfied:
		return fmt.Sprintf("no implementation satisfies %s", e.Impl)
	case Overlapping:
		return fmt.Sprintf("multiple implementations satisfy %s", e.Impl)
	case InternalRecursion:
		return fmt.Sprintf("internal recursion limit exceeded unifying %s and %s", e.T1, e.T2)
	default:
		return fmt.Sprintf("expected %s, found %s", e.T1, e.T2)
	}
}
