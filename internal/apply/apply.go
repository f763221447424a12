// Package apply is C5: it walks the AST substituting the solved
// Substitution back over every node's type annotation, and determines which
// declarations generalize their remaining free variables into a Scheme.
// Grounded on the teacher's typechecker_substitution.go
// (ApplySubstEverywhere/applySubstitutionToTyped node-kind-dispatch shape),
// adapted from the teacher's composed-map substitution to this module's
// ordered, reverse-applied Substitution (spec 3; see internal/types).
//
// Resolving one top-level declaration is a two-pass affair, because
// generalization needs the *whole* declaration already substituted before
// it can know which leftover variables are legitimately polymorphic:
//
//  1. Apply walks the declaration's subtree once, replacing every node's
//     type slot with types.Apply(sub, ...) (spec 4.5).
//  2. The caller (internal/infer's pipeline) calls Generalize on the
//     declaration's own now-resolved type to get its Scheme.
//  3. CheckAmbiguous walks the subtree a second time, flagging any node
//     whose resolved type still carries a free variable that is not one of
//     the scheme's quantified variables — spec 4.5's "reported as an
//     ambiguous-type error unless the node is a generalizable binding": only
//     the top-level declaration itself is generalizable here (see
//     DESIGN.md's local-let Open Question supplement), so any other node's
//     stray free variable can never be resolved and is always ambiguous.
package apply

import (
	"fmt"

	"github.com/ante-lang/infercore/internal/ast"
	"github.com/ante-lang/infercore/internal/diagnostics"
	"github.com/ante-lang/infercore/internal/types"
)

// Apply walks one top-level declaration's full subtree, replacing every
// node's type slot (and Let/LetRec's separate BindingType slot) with
// types.Apply(sub, ...).
func Apply(sub types.Substitution, d ast.Decl) {
	w := &walker{sub: sub}
	w.decl(d)
}

type walker struct {
	sub types.Substitution
}

func (w *walker) node(n ast.Node) {
	n.SetType(types.Apply(w.sub, n.GetType()))
}

func (w *walker) decl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.FuncDecl:
		for _, p := range d.Params {
			w.node(p)
		}
		w.expr(d.Body)
		w.node(d)
	case *ast.LetDecl:
		w.expr(d.Value)
		w.node(d)
	}
}

func (w *walker) expr(e ast.Expr) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.IntLit, *ast.BoolLit, *ast.StringLit, *ast.Var:
		w.node(e)
	case *ast.Lambda:
		for _, p := range n.Params {
			w.node(p)
		}
		w.expr(n.Body)
		w.node(n)
	case *ast.App:
		w.expr(n.Func)
		for _, arg := range n.Args {
			w.expr(arg)
		}
		w.node(n)
	case *ast.BinOp:
		w.expr(n.Left)
		w.expr(n.Right)
		w.node(n)
	case *ast.If:
		w.expr(n.Cond)
		w.expr(n.Then)
		w.expr(n.Else)
		w.node(n)
	case *ast.Match:
		w.expr(n.Scrutinee)
		for i := range n.Cases {
			w.pattern(n.Cases[i].Pattern)
			w.expr(n.Cases[i].Body)
		}
		w.node(n)
	case *ast.Let:
		w.expr(n.Value)
		n.BindingType = types.Apply(w.sub, n.BindingType)
		w.expr(n.Body)
		w.node(n)
	case *ast.LetRec:
		n.BindingType = types.Apply(w.sub, n.BindingType)
		w.expr(n.Value)
		w.expr(n.Body)
		w.node(n)
	case *ast.Block:
		for _, sub := range n.Exprs {
			w.expr(sub)
		}
		w.node(n)
	case *ast.RecordLit:
		for _, f := range n.Fields {
			w.expr(f.Value)
		}
		w.node(n)
	case *ast.FieldAccess:
		w.expr(n.Expr)
		w.node(n)
	case *ast.TraitCall:
		for _, arg := range n.Args {
			w.expr(arg)
		}
		w.node(n)
	default:
		panic("apply: unresolved expression node kind")
	}
}

func (w *walker) pattern(p ast.Pattern) {
	switch p := p.(type) {
	case *ast.PatVar, *ast.PatWildcard:
		w.node(p)
	case *ast.PatLit:
		w.expr(p.Lit)
		w.node(p)
	}
}

// CheckAmbiguous walks d (already Apply-ed) a second time, reporting one
// diagnostic per node whose resolved type carries a free variable outside
// declaredFree (typically the quantified set of d's own Generalize-d
// Scheme). Mirrors the first pass's node catalogue exactly, but only reads
// types, never mutates them.
func CheckAmbiguous(d ast.Decl, declaredFree map[int]bool) []diagnostics.Record {
	c := &ambiguityChecker{declaredFree: declaredFree}
	switch d := d.(type) {
	case *ast.FuncDecl:
		for _, p := range d.Params {
			c.node(p)
		}
		c.expr(d.Body)
		// The declaration's own slot is checked by the pipeline against its
		// own Scheme directly, not here (that slot's free variables are
		// exactly declaredFree by construction of Generalize).
	case *ast.LetDecl:
		c.expr(d.Value)
	}
	return c.records
}

type ambiguityChecker struct {
	declaredFree map[int]bool
	records      []diagnostics.Record
}

func (c *ambiguityChecker) node(n ast.Node) {
	for _, v := range FreeVars(n.GetType()) {
		if !c.declaredFree[v.ID] {
			c.records = append(c.records, diagnostics.Record{
				Loc:      n.Pos(),
				Severity: diagnostics.Error,
				Message:  fmt.Sprintf("ambiguous type: %s could not be resolved", v),
			})
			break
		}
	}
}

func (c *ambiguityChecker) expr(e ast.Expr) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.IntLit, *ast.BoolLit, *ast.StringLit, *ast.Var:
		c.node(e)
	case *ast.Lambda:
		for _, p := range n.Params {
			c.node(p)
		}
		c.expr(n.Body)
		c.node(n)
	case *ast.App:
		c.expr(n.Func)
		for _, arg := range n.Args {
			c.expr(arg)
		}
		c.node(n)
	case *ast.BinOp:
		c.expr(n.Left)
		c.expr(n.Right)
		c.node(n)
	case *ast.If:
		c.expr(n.Cond)
		c.expr(n.Then)
		c.expr(n.Else)
		c.node(n)
	case *ast.Match:
		c.expr(n.Scrutinee)
		for i := range n.Cases {
			c.pattern(n.Cases[i].Pattern)
			c.expr(n.Cases[i].Body)
		}
		c.node(n)
	case *ast.Let:
		c.expr(n.Value)
		c.checkType(n.Pos(), n.BindingType)
		c.expr(n.Body)
		c.node(n)
	case *ast.LetRec:
		c.checkType(n.Pos(), n.BindingType)
		c.expr(n.Value)
		c.expr(n.Body)
		c.node(n)
	case *ast.Block:
		for _, sub := range n.Exprs {
			c.expr(sub)
		}
		c.node(n)
	case *ast.RecordLit:
		for _, f := range n.Fields {
			c.expr(f.Value)
		}
		c.node(n)
	case *ast.FieldAccess:
		c.expr(n.Expr)
		c.node(n)
	case *ast.TraitCall:
		for _, arg := range n.Args {
			c.expr(arg)
		}
		c.node(n)
	}
}

func (c *ambiguityChecker) checkType(pos ast.Pos, t types.Type) {
	for _, v := range FreeVars(t) {
		if !c.declaredFree[v.ID] {
			c.records = append(c.records, diagnostics.Record{
				Loc:      pos,
				Severity: diagnostics.Error,
				Message:  fmt.Sprintf("ambiguous type: %s could not be resolved", v),
			})
			return
		}
	}
}

func (c *ambiguityChecker) pattern(p ast.Pattern) {
	switch p := p.(type) {
	case *ast.PatVar, *ast.PatWildcard:
		c.node(p)
	case *ast.PatLit:
		c.expr(p.Lit)
		c.node(p)
	}
}
