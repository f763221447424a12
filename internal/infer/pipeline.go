package infer

import (
	"github.com/ante-lang/infercore/internal/apply"
	"github.com/ante-lang/infercore/internal/ast"
	"github.com/ante-lang/infercore/internal/compilerstate"
	"github.com/ante-lang/infercore/internal/diagnostics"
	"github.com/ante-lang/infercore/internal/traits"
	"github.com/ante-lang/infercore/internal/types"
	"github.com/ante-lang/infercore/internal/unify"
)

// Pipeline wires C1–C6 together over one Program (spec 2's control-flow
// table: "AST → C2 → C3 → C4 → C5 → AST (typed)"). Each top-level
// declaration is annotated once up front, then constrained, solved,
// applied, and generalized in program order, so a later declaration's Var
// references can resolve against an earlier one's finished Scheme (spec 6:
// "A global symbol table mapping declared names to declarations"). This is
// this module's answer to the Open Question of how let-polymorphism
// interacts with a single-shot constraint solve — see DESIGN.md and env.go.
type Pipeline struct {
	State   *compilerstate.State
	Traits  *traits.Table
	Sink    diagnostics.Sink
	Env     *Env
	Schemes map[string]*types.Scheme
}

// NewPipeline returns a Pipeline sharing state's Type Context, resolving
// trait constraints against traitTable, and emitting diagnostics to sink.
func NewPipeline(state *compilerstate.State, traitTable *traits.Table, sink diagnostics.Sink) *Pipeline {
	return &Pipeline{
		State:   state,
		Traits:  traitTable,
		Sink:    sink,
		Env:     NewEnv(nil),
		Schemes: make(map[string]*types.Scheme),
	}
}

// Run executes C2 over the whole program, then C3/C4/C5 one declaration at
// a time. The only thing that stops the whole run is a fatal
// InternalRecursion (spec 5's depth cap) — an ordinary type error on one
// declaration is reported and cancels that declaration: no further
// (ambiguous-type) diagnostics are emitted for it, its partial result is
// still applied and bound, and its siblings still run (spec 5 Cancellation).
func (p *Pipeline) Run(prog *ast.Program) *unify.TypeError {
	annot := NewAnnotator(p.State.Ctx)
	annot.AnnotateProgram(prog)

	for _, d := range prog.Decls {
		if fatal := p.runDecl(d); fatal != nil {
			return fatal
		}
	}
	return nil
}

func declName(d ast.Decl) string {
	switch d := d.(type) {
	case *ast.FuncDecl:
		return d.Name
	case *ast.LetDecl:
		return d.Name
	default:
		return ""
	}
}

func (p *Pipeline) runDecl(d ast.Decl) *unify.TypeError {
	name := declName(d)

	gen := NewGenerator(p.State.Ctx, p.State)
	var list unify.UnificationList
	gen.GenDecl(p.Env, d, &list)

	sub, diags, fatal := unify.Unify(p.State.Ctx, list, p.Traits)
	if fatal != nil {
		return fatal
	}
	for _, diag := range diags {
		p.Sink.Emit(diagnostics.FromTypeError(diag))
	}
	if len(diags) > 0 {
		p.State.MarkFailed()
		p.State.CancelDecl(name)
	}

	apply.Apply(sub, d)

	resolvedConstraints := make([]*types.TraitImpl, 0, len(list))
	for _, c := range list {
		if tc, ok := c.(unify.TraitConstraint); ok {
			resolvedConstraints = append(resolvedConstraints, types.ApplyToTraitImpl(sub, tc.Impl))
		}
	}
	scheme := apply.Generalize(d.GetType(), resolvedConstraints)

	declaredFree := make(map[int]bool, len(scheme.QuantifiedVars))
	for _, v := range scheme.QuantifiedVars {
		declaredFree[v.ID] = true
	}
	if !p.State.DeclCancelled(name) {
		for _, rec := range apply.CheckAmbiguous(d, declaredFree) {
			p.Sink.Emit(rec)
			p.State.MarkFailed()
		}
	}

	p.Env.BindPoly(name, scheme)
	p.Schemes[name] = scheme
	return nil
}
