// Package infer is C2 (Annotator) and C3 (Constraint Generator): the two AST
// traversals that run before internal/unify solves the resulting constraint
// set. Grounded on the teacher's typechecker_core.go/typechecker_functions.go
// /typechecker_literals.go/typechecker_patterns.go/typechecker_data.go split
// (SPEC_FULL.md E1).
package infer

import "github.com/ante-lang/infercore/internal/types"

// Env is the global symbol table spec 6 requires ("A global symbol table
// mapping declared names to declarations"), plus the local scoping a
// traversal needs for lambda/let-bound parameters.
//
// Two kinds of binding:
//   - mono: a local, non-generalized binding (function/lambda parameters,
//     pattern variables, local let/letrec names). Resolving a Var against a
//     mono binding yields the bound Type directly, unchanged — the same
//     metavariable is shared at every use site, which is what gives
//     `let rec loop x = loop x` its unconstrained-return scheme (scenario 3):
//     every occurrence of `loop` and `x` inside the body refers to the exact
//     same type variables the declaration itself was annotated with.
//   - poly: a previously generalized scheme (only ever a *top-level*
//     FuncDecl/LetDecl, generalized by internal/apply once its own
//     declaration has been fully solved). Resolving a Var against a poly
//     binding instantiates a fresh copy of the scheme's body via
//     Context.CopyWithFreshVars, so two uses of the same polymorphic
//     top-level binding get independent variables (spec 4.1 "Rationale").
//
// Local lets are deliberately not generalized (SPEC_FULL.md/DESIGN.md Open
// Question supplement): this module solves one top-level declaration's
// constraints in a single batch (spec 2/4.4's one UnificationList per
// solve), so there is no point during constraint generation at which a
// local let's right-hand side has already been solved and could safely be
// generalized. Only top-level declarations get that treatment, processed in
// program order so each one's scheme is available to every later one.
type Env struct {
	parent *Env
	mono   map[string]types.Type
	poly   map[string]*types.Scheme
}

// NewEnv returns a new scope chained to parent (nil for the outermost,
// top-level scope).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, mono: make(map[string]types.Type), poly: make(map[string]*types.Scheme)}
}

// BindMono introduces (or shadows) a local, non-generalized binding in this
// scope.
func (e *Env) BindMono(name string, t types.Type) {
	e.mono[name] = t
}

// BindPoly registers a generalized top-level scheme, visible to every scope
// chained under e (in practice only ever called on the outermost Env).
func (e *Env) BindPoly(name string, s *types.Scheme) {
	e.poly[name] = s
}

// Lookup walks outward from e, returning either a mono Type or a poly
// Scheme (never both) for name. ok is false if name is bound nowhere.
func (e *Env) Lookup(name string) (mono types.Type, poly *types.Scheme, ok bool) {
	for s := e; s != nil; s = s.parent {
		if t, found := s.mono[name]; found {
			return t, nil, true
		}
		if sch, found := s.poly[name]; found {
			return nil, sch, true
		}
	}
	return nil, nil, false
}
