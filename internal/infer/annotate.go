package infer

import "github.com/ante-lang/infercore/internal/types"
import "github.com/ante-lang/infercore/internal/ast"

// Annotator is C2: a single top-down AST pass that gives every node without
// an existing annotation a fresh type variable, and gives nodes whose type
// is already syntactically determined (literals with a concrete suffix,
// explicit ascriptions) that determined type directly (spec 4.2). Contract:
// after Annotate runs over a node, that node's GetType() is non-nil; no
// constraints are emitted here (that is C3's job).
type Annotator struct {
	ctx *types.Context
}

// NewAnnotator returns an Annotator drawing fresh variables from ctx.
func NewAnnotator(ctx *types.Context) *Annotator {
	return &Annotator{ctx: ctx}
}

// AnnotateProgram runs C2 over every top-level declaration, in source order.
func (a *Annotator) AnnotateProgram(p *ast.Program) {
	for _, d := range p.Decls {
		a.AnnotateDecl(d)
	}
}

// AnnotateDecl annotates one top-level declaration and its body.
func (a *Annotator) AnnotateDecl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.FuncDecl:
		for _, p := range d.Params {
			a.annotateParam(p)
		}
		a.annotateExpr(d.Body)
		d.SetType(a.ctx.FreshVar())
	case *ast.LetDecl:
		a.annotateExpr(d.Value)
		if d.Mutable {
			d.SetType(a.ctx.WithModifier(types.Mut, a.ctx.FreshVar()))
		} else {
			d.SetType(a.ctx.FreshVar())
		}
	}
}

func (a *Annotator) annotateParam(p *ast.Param) {
	if p.Ascription != nil {
		p.SetType(p.Ascription)
		return
	}
	p.SetType(a.ctx.FreshVar())
}

// annotateExpr dispatches over every expression form spec 4.3 gives a
// constraint rule for, recursing into children before assigning the node's
// own placeholder so a parent's fresh variable is always allocated after
// its children's (matching the teacher's post-order annotation walk in
// typechecker_core.go).
func (a *Annotator) annotateExpr(e ast.Expr) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.IntLit:
		if n.Determined {
			n.SetType(n.DeterminedType)
		} else {
			n.SetType(a.ctx.FreshVar())
		}
	case *ast.BoolLit:
		n.SetType(&types.Primitive{Tag: types.Bool})
	case *ast.StringLit:
		n.SetType(stringType())
	case *ast.Var:
		n.SetType(a.ctx.FreshVar())
	case *ast.Lambda:
		for _, p := range n.Params {
			a.annotateParam(p)
		}
		a.annotateExpr(n.Body)
		n.SetType(a.ctx.FreshVar())
	case *ast.App:
		a.annotateExpr(n.Func)
		for _, arg := range n.Args {
			a.annotateExpr(arg)
		}
		n.SetType(a.ctx.FreshVar())
	case *ast.BinOp:
		a.annotateExpr(n.Left)
		a.annotateExpr(n.Right)
		n.SetType(a.ctx.FreshVar())
	case *ast.If:
		a.annotateExpr(n.Cond)
		a.annotateExpr(n.Then)
		a.annotateExpr(n.Else)
		n.SetType(a.ctx.FreshVar())
	case *ast.Match:
		a.annotateExpr(n.Scrutinee)
		for i := range n.Cases {
			a.annotatePattern(n.Cases[i].Pattern)
			a.annotateExpr(n.Cases[i].Body)
		}
		n.SetType(a.ctx.FreshVar())
	case *ast.Let:
		a.annotateExpr(n.Value)
		if n.Mutable {
			n.BindingType = a.ctx.WithModifier(types.Mut, a.ctx.FreshVar())
		} else {
			n.BindingType = a.ctx.FreshVar()
		}
		a.annotateExpr(n.Body)
		n.SetType(a.ctx.FreshVar())
	case *ast.LetRec:
		n.BindingType = a.ctx.FreshVar()
		a.annotateExpr(n.Value)
		a.annotateExpr(n.Body)
		n.SetType(a.ctx.FreshVar())
	case *ast.Block:
		for _, sub := range n.Exprs {
			a.annotateExpr(sub)
		}
		n.SetType(a.ctx.FreshVar())
	case *ast.RecordLit:
		for _, f := range n.Fields {
			a.annotateExpr(f.Value)
		}
		n.SetType(a.ctx.FreshVar())
	case *ast.FieldAccess:
		a.annotateExpr(n.Expr)
		n.SetType(a.ctx.FreshVar())
	case *ast.TraitCall:
		for _, arg := range n.Args {
			a.annotateExpr(arg)
		}
		n.SetType(a.ctx.FreshVar())
	default:
		panic("infer: unannotated expression node kind")
	}
}

func (a *Annotator) annotatePattern(p ast.Pattern) {
	switch p := p.(type) {
	case *ast.PatVar:
		p.SetType(a.ctx.FreshVar())
	case *ast.PatWildcard:
		p.SetType(a.ctx.FreshVar())
	case *ast.PatLit:
		a.annotateExpr(p.Lit)
		p.SetType(p.Lit.GetType())
	default:
		panic("infer: unannotated pattern node kind")
	}
}

// stringType is the nominal type string literals carry. Strings have no
// dedicated Primitive tag in the closed variant set (spec 3 only gives
// scalar Primitive tags); following the teacher's own treatment of its
// builtin `string` as a zero-argument nominal Data constructor rather than
// inventing a new Primitive tag the spec doesn't list, every StringLit
// shares the single handle this returns (non-generic, so Equals reduces to
// this pointer per spec 3's interning rule even without going through a
// Context).
func stringType() types.Type {
	return stringTypeHandle
}

var stringTypeHandle = &types.Data{Name: "Str"}
