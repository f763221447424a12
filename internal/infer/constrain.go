package infer

import (
	"fmt"

	"github.com/ante-lang/infercore/internal/ast"
	"github.com/ante-lang/infercore/internal/compilerstate"
	"github.com/ante-lang/infercore/internal/types"
	"github.com/ante-lang/infercore/internal/unify"
)

// DefaultInt is the concrete type an undetermined integer literal defaults
// to (spec 4.3: "Literal n: IntType ... emits ty(n) ≡ DefaultInt"). Scenario
// 4 in spec 8 ("f x = x + 1; f True ⇒ error: expected I32, found Bool")
// pins this to I32.
var DefaultInt types.Type = &types.Primitive{Tag: types.I32}

var boolType types.Type = &types.Primitive{Tag: types.Bool}

// Generator is C3: a second AST traversal that reads C2's annotations and
// emits an ordered UnificationList (spec 2/4.3). Grounded on the teacher's
// per-syntactic-form file split (typechecker_functions.go,
// typechecker_patterns.go, typechecker_data.go, typechecker_operators.go —
// folded here into the application/BinOp rules per spec 4.3, which gives no
// operator-specific constraint rule beyond ordinary application).
type Generator struct {
	ctx   *types.Context
	state *compilerstate.State
}

// NewGenerator returns a Generator allocating fresh variables (for operator
// schemes and trait-constraint instantiation) from ctx.
func NewGenerator(ctx *types.Context, state *compilerstate.State) *Generator {
	return &Generator{ctx: ctx, state: state}
}

func errCtx(pos ast.Pos, template string) unify.ErrorContext {
	return unify.ErrorContext{Loc: pos, Template: template}
}

// GenDecl emits the constraints for one top-level declaration, with env
// already carrying every earlier top-level declaration's generalized
// scheme (spec 6: symbol table of declared names). Self-reference for a
// recursive FuncDecl resolves monomorphically against env, per
// this module's Open Question supplement (see DESIGN.md / env.go).
func (g *Generator) GenDecl(env *Env, d ast.Decl, out *unify.UnificationList) {
	switch d := d.(type) {
	case *ast.FuncDecl:
		g.genFuncDecl(env, d, out)
	case *ast.LetDecl:
		g.genLetDecl(env, d, out)
	}
}

func (g *Generator) genFuncDecl(env *Env, d *ast.FuncDecl, out *unify.UnificationList) {
	inner := NewEnv(env)
	paramTypes := make([]types.Type, len(d.Params))
	for i, p := range d.Params {
		paramTypes[i] = p.GetType()
		if !p.IsCompileTimeOnly {
			inner.BindMono(p.Name, p.GetType())
		}
	}
	retVar := g.ctx.FreshVar()
	if d.Recursive {
		// The declaration's own placeholder stands for its whole callable
		// type; binding it monomorphically lets every recursive use inside
		// Body share the exact same metavariables as the declaration site
		// (spec 8 scenario 3).
		inner.BindMono(d.Name, d.GetType())
	}
	*out = append(*out, unify.EqConstraint{
		LHS: d.GetType(),
		RHS: g.ctx.FuncOf(paramTypes, retVar, nil),
		Err: errCtx(d.Pos(), fmt.Sprintf("declaration of %s", d.Name)),
	})
	g.genExpr(inner, d.Body, out)
	*out = append(*out, unify.EqConstraint{
		LHS: d.Body.GetType(),
		RHS: retVar,
		Err: errCtx(d.Body.Pos(), "function body"),
	})
}

func (g *Generator) genLetDecl(env *Env, d *ast.LetDecl, out *unify.UnificationList) {
	g.genExpr(env, d.Value, out)
	*out = append(*out, unify.EqConstraint{
		LHS: d.GetType(),
		RHS: d.Value.GetType(),
		Err: errCtx(d.Pos(), fmt.Sprintf("let binding %s", d.Name)),
	})
}

// genExpr implements spec 4.3's per-syntactic-form rules, dispatching on the
// same node catalogue annotateExpr covers.
func (g *Generator) genExpr(env *Env, e ast.Expr, out *unify.UnificationList) {
	switch n := e.(type) {
	case *ast.IntLit:
		g.genIntLit(n, out)
	case *ast.BoolLit, *ast.StringLit:
		// Already concrete from C2; spec 4.3 emits nothing for a literal
		// with a determined type.
	case *ast.Var:
		g.genVar(env, n, out)
	case *ast.Lambda:
		g.genLambda(env, n, out)
	case *ast.App:
		g.genApp(env, n, out)
	case *ast.BinOp:
		g.genBinOp(env, n, out)
	case *ast.If:
		g.genIf(env, n, out)
	case *ast.Match:
		g.genMatch(env, n, out)
	case *ast.Let:
		g.genLet(env, n, out)
	case *ast.LetRec:
		g.genLetRec(env, n, out)
	case *ast.Block:
		g.genBlock(env, n, out)
	case *ast.RecordLit:
		g.genRecordLit(env, n, out)
	case *ast.FieldAccess:
		g.genFieldAccess(env, n, out)
	case *ast.TraitCall:
		g.genTraitCall(env, n, out)
	default:
		panic("infer: unconstrained expression node kind")
	}
}

func (g *Generator) genIntLit(n *ast.IntLit, out *unify.UnificationList) {
	if n.Determined {
		return
	}
	*out = append(*out, unify.EqConstraint{
		LHS: n.GetType(),
		RHS: DefaultInt,
		Err: errCtx(n.Pos(), "integer literal"),
	})
}

// genVar instantiates the bound scheme via CopyWithFreshVars (spec 4.3
// "Variable reference"). A mono binding is used identically at every site
// (no fresh copy — see env.go); a poly binding gets independent variables
// per use, and any trait constraints its instantiated Function type carries
// are added to out directly as trait constraints (spec 4.3 "Trait
// constraints attached to ty(f) are added to the output list").
func (g *Generator) genVar(env *Env, n *ast.Var, out *unify.UnificationList) {
	mono, poly, ok := env.Lookup(n.Name)
	if !ok {
		// An unresolved name is a scope error outside this core's remit
		// (spec 1: the symbol table is an input produced upstream); treat it
		// as an unconstrained fresh type rather than panicking, so the rest
		// of the declaration can still be checked.
		return
	}
	var instantiated types.Type
	if poly != nil {
		instantiated = g.instantiateScheme(poly)
	} else {
		instantiated = mono
	}
	*out = append(*out, unify.EqConstraint{
		LHS: n.GetType(),
		RHS: instantiated,
		Err: errCtx(n.Pos(), fmt.Sprintf("use of %s", n.Name)),
	})
	if fn, isFunc := instantiated.(*types.Function); isFunc {
		g.emitTraitConstraints(fn.TraitConstraints, n.Pos(), out)
	}
}

// instantiateScheme replaces exactly the scheme's quantified variables with
// fresh ones, consistently, leaving every other free variable in BodyType
// untouched (spec 4.1's CopyWithFreshVars, applied through the quantified
// set rather than blanket over every TypeVar in BodyType — see DESIGN.md for
// why a generalized scheme's free variables are always exactly its
// quantified set in this architecture).
func (g *Generator) instantiateScheme(s *types.Scheme) types.Type {
	if len(s.QuantifiedVars) == 0 {
		return s.BodyType
	}
	return g.ctx.CopyWithFreshVars(s.BodyType)
}

func (g *Generator) emitTraitConstraints(cs []*types.TraitImpl, pos ast.Pos, out *unify.UnificationList) {
	for _, c := range cs {
		*out = append(*out, unify.TraitConstraint{Impl: c, Err: errCtx(pos, "trait constraint")})
	}
}

func (g *Generator) genLambda(env *Env, n *ast.Lambda, out *unify.UnificationList) {
	inner := NewEnv(env)
	paramTypes := make([]types.Type, len(n.Params))
	for i, p := range n.Params {
		paramTypes[i] = p.GetType()
		if !p.IsCompileTimeOnly {
			inner.BindMono(p.Name, p.GetType())
		}
	}
	g.genExpr(inner, n.Body, out)
	*out = append(*out, unify.EqConstraint{
		LHS: n.GetType(),
		RHS: g.ctx.FuncOf(paramTypes, n.Body.GetType(), nil),
		Err: errCtx(n.Pos(), "lambda"),
	})
}

// genApp implements spec 4.3's Application rule: "emit ty(f) ≡
// Function([ty(x1),…,ty(xn)], ty(app))".
func (g *Generator) genApp(env *Env, n *ast.App, out *unify.UnificationList) {
	g.genExpr(env, n.Func, out)
	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		g.genExpr(env, a, out)
		argTypes[i] = a.GetType()
	}
	*out = append(*out, unify.EqConstraint{
		LHS: n.Func.GetType(),
		RHS: g.ctx.FuncOf(argTypes, n.GetType(), nil),
		Err: errCtx(n.Pos(), "function application"),
	})
}

// opTrait maps a BinOp's operator token to the trait its use requires, per
// the builtin table internal/traits/builtins.yaml registers implementations
// for.
func opTrait(op string) string {
	switch op {
	case "==", "!=":
		return "Eq"
	case "<", "<=", ">", ">=":
		return "Ord"
	default:
		return "Num"
	}
}

// genBinOp treats `x op y` as sugar over a trait-bounded function value
// `∀α. Trait(α) => α -> α -> α` (spec 4.3 "Trait use"), instantiated fresh
// per use exactly like genVar's poly case, then constrained via the same
// Application rule as an ordinary call.
func (g *Generator) genBinOp(env *Env, n *ast.BinOp, out *unify.UnificationList) {
	g.genExpr(env, n.Left, out)
	g.genExpr(env, n.Right, out)
	a := g.ctx.FreshVar()
	scheme := &types.Scheme{
		QuantifiedVars: []*types.TypeVar{a},
		BodyType: g.ctx.FuncOf([]types.Type{a, a}, a, []*types.TraitImpl{{
			DeclRef:  &types.TraitDeclRef{Name: opTrait(n.Op)},
			TypeArgs: []types.Type{a},
		}}),
	}
	instantiated := g.instantiateScheme(scheme).(*types.Function)
	*out = append(*out, unify.EqConstraint{
		LHS: instantiated,
		RHS: g.ctx.FuncOf([]types.Type{n.Left.GetType(), n.Right.GetType()}, n.GetType(), nil),
		Err: errCtx(n.Pos(), fmt.Sprintf("use of operator %s", n.Op)),
	})
	g.emitTraitConstraints(instantiated.TraitConstraints, n.Pos(), out)
}

// genIf implements spec 4.3's If rule: both arms equal the expression type,
// the condition equal to Bool.
func (g *Generator) genIf(env *Env, n *ast.If, out *unify.UnificationList) {
	g.genExpr(env, n.Cond, out)
	g.genExpr(env, n.Then, out)
	g.genExpr(env, n.Else, out)
	*out = append(*out,
		unify.EqConstraint{LHS: n.Cond.GetType(), RHS: boolType, Err: errCtx(n.Cond.Pos(), "if condition")},
		unify.EqConstraint{LHS: n.Then.GetType(), RHS: n.GetType(), Err: errCtx(n.Then.Pos(), "if branch")},
		unify.EqConstraint{LHS: n.Else.GetType(), RHS: n.GetType(), Err: errCtx(n.Else.Pos(), "else branch")},
	)
}

// genMatch implements spec 4.3's Match rule: every arm's body type equals
// the match's own type, and the scrutinee equals every pattern's type.
func (g *Generator) genMatch(env *Env, n *ast.Match, out *unify.UnificationList) {
	g.genExpr(env, n.Scrutinee, out)
	for _, c := range n.Cases {
		inner := NewEnv(env)
		g.genPattern(inner, c.Pattern, out)
		g.genExpr(inner, c.Body, out)
		*out = append(*out,
			unify.EqConstraint{LHS: n.Scrutinee.GetType(), RHS: c.Pattern.GetType(), Err: errCtx(c.Pattern.Pos(), "match pattern")},
			unify.EqConstraint{LHS: c.Body.GetType(), RHS: n.GetType(), Err: errCtx(c.Body.Pos(), "match arm")},
		)
	}
}

func (g *Generator) genPattern(env *Env, p ast.Pattern, out *unify.UnificationList) {
	switch p := p.(type) {
	case *ast.PatVar:
		env.BindMono(p.Name, p.GetType())
	case *ast.PatWildcard:
		// Binds nothing; its fresh variable from C2 stays unconstrained and
		// unifies with whatever the scrutinee turns out to be.
	case *ast.PatLit:
		g.genExpr(env, p.Lit, out)
		*out = append(*out, unify.EqConstraint{LHS: p.GetType(), RHS: p.Lit.GetType(), Err: errCtx(p.Pos(), "literal pattern")})
	}
}

// genLet implements spec 4.3's "Mutable binding" rule (the mut modifier
// itself is applied by C2 to BindingType, see annotate.go); C3 ties
// BindingType to Value's type, binds Name monomorphically for Body (this
// module's local-let Open Question supplement, see env.go), and makes the
// Let expression's own type equal to Body's, since that is the value a
// let-expression produces.
func (g *Generator) genLet(env *Env, n *ast.Let, out *unify.UnificationList) {
	g.genExpr(env, n.Value, out)
	*out = append(*out, unify.EqConstraint{
		LHS: n.BindingType,
		RHS: n.Value.GetType(),
		Err: errCtx(n.Pos(), fmt.Sprintf("let binding %s", n.Name)),
	})
	inner := NewEnv(env)
	inner.BindMono(n.Name, n.BindingType)
	g.genExpr(inner, n.Body, out)
	*out = append(*out, unify.EqConstraint{LHS: n.GetType(), RHS: n.Body.GetType(), Err: errCtx(n.Pos(), "let result")})
}

func (g *Generator) genLetRec(env *Env, n *ast.LetRec, out *unify.UnificationList) {
	inner := NewEnv(env)
	inner.BindMono(n.Name, n.BindingType)
	g.genExpr(inner, n.Value, out)
	*out = append(*out, unify.EqConstraint{
		LHS: n.BindingType,
		RHS: n.Value.GetType(),
		Err: errCtx(n.Pos(), fmt.Sprintf("recursive let binding %s", n.Name)),
	})
	g.genExpr(inner, n.Body, out)
	*out = append(*out, unify.EqConstraint{LHS: n.GetType(), RHS: n.Body.GetType(), Err: errCtx(n.Pos(), "let result")})
}

func (g *Generator) genBlock(env *Env, n *ast.Block, out *unify.UnificationList) {
	inner := NewEnv(env)
	for i, sub := range n.Exprs {
		g.genExpr(inner, sub, out)
		if i == len(n.Exprs)-1 {
			*out = append(*out, unify.EqConstraint{LHS: n.GetType(), RHS: sub.GetType(), Err: errCtx(n.Pos(), "block result")})
		}
	}
	if len(n.Exprs) == 0 {
		*out = append(*out, unify.EqConstraint{LHS: n.GetType(), RHS: &types.Primitive{Tag: types.Unit}, Err: errCtx(n.Pos(), "empty block")})
	}
}

func (g *Generator) genRecordLit(env *Env, n *ast.RecordLit, out *unify.UnificationList) {
	fields := make([]types.Type, len(n.Fields))
	names := make([]string, len(n.Fields))
	anyNamed := false
	for i, f := range n.Fields {
		g.genExpr(env, f.Value, out)
		fields[i] = f.Value.GetType()
		names[i] = f.Name
		if f.Name != "" {
			anyNamed = true
		}
	}
	var fieldNames []string
	if anyNamed {
		fieldNames = names
	}
	*out = append(*out, unify.EqConstraint{
		LHS: n.GetType(),
		RHS: g.ctx.TupleOf(fields, fieldNames, nil),
		Err: errCtx(n.Pos(), "record literal"),
	})
}

// genFieldAccess implements spec 4.3's Field access rule: "emit ty(e) ≡
// Tuple([..pre, f: ty(access), ..post], row_var) where row_var is a fresh
// row variable subsuming other fields."
func (g *Generator) genFieldAccess(env *Env, n *ast.FieldAccess, out *unify.UnificationList) {
	g.genExpr(env, n.Expr, out)
	row := g.ctx.FreshRowVar()
	*out = append(*out, unify.EqConstraint{
		LHS: n.Expr.GetType(),
		RHS: g.ctx.TupleOf([]types.Type{n.GetType()}, []string{n.Field}, row),
		Err: errCtx(n.Pos(), fmt.Sprintf("field .%s", n.Field)),
	})
}

// genTraitCall implements spec 4.3's "Trait use" rule directly: it adds a
// TraitImpl constraint for the call, with the argument types as the trait's
// type arguments, whenever the call's resolution depends on as-yet-unknown
// argument types (which, before solving, is always — C4 applies the
// accumulated substitution before attempting resolution, so a call whose
// arguments turn out fully concrete by the time this constraint is reached
// still resolves correctly).
func (g *Generator) genTraitCall(env *Env, n *ast.TraitCall, out *unify.UnificationList) {
	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		g.genExpr(env, a, out)
		argTypes[i] = a.GetType()
	}
	impl := &types.TraitImpl{DeclRef: &types.TraitDeclRef{Name: n.Trait}, TypeArgs: argTypes}
	*out = append(*out, unify.TraitConstraint{Impl: impl, Err: errCtx(n.Pos(), fmt.Sprintf("%s.%s", n.Trait, n.Method))})
}
