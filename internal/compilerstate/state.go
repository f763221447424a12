// Package compilerstate holds the ambient, process-wide compiler state
// object spec 5 (Concurrency & Resource Model) references: a Type Context
// with init-on-first-use/reset-between-compilations lifecycle, plus the
// cancellation flag C3/C4 honor per-declaration.
package compilerstate

import "github.com/ante-lang/infercore/internal/types"

// State is the ambient object threaded through one compilation. It is not
// safe for concurrent use (spec 5: "single-threaded, non-suspending").
type State struct {
	Ctx *types.Context

	failed     bool
	cancelled  map[string]bool
}

// New returns a State with a fresh Type Context.
func New() *State {
	return &State{Ctx: types.NewContext(), cancelled: make(map[string]bool)}
}

// Reset reinitializes the Type Context for a new, independent compilation
// sharing this process (spec 5), clearing cancellation and failure state.
func (s *State) Reset() {
	s.Ctx.Reset()
	s.failed = false
	s.cancelled = make(map[string]bool)
}

// MarkFailed records that an Error diagnostic was emitted. Per spec 6,
// emitting an Error marks the compilation failed but never short-circuits
// inference.
func (s *State) MarkFailed() { s.failed = true }

// Failed reports whether any Error diagnostic has been emitted this
// compilation.
func (s *State) Failed() bool { return s.failed }

// CancelDecl sets the cancellation flag for a single top-level declaration
// (spec 5: "a compile-time error during inference sets a flag on an ambient
// compiler-state object; C3/C4 honor the flag by skipping further emissions
// on the same declaration but continuing with sibling declarations").
func (s *State) CancelDecl(name string) { s.cancelled[name] = true }

// DeclCancelled reports whether name's declaration has been cancelled.
func (s *State) DeclCancelled(name string) bool { return s.cancelled[name] }
