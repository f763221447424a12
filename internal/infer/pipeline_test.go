package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ante-lang/infercore/internal/ast"
	"github.com/ante-lang/infercore/internal/compilerstate"
	"github.com/ante-lang/infercore/internal/diagnostics"
	"github.com/ante-lang/infercore/internal/traits"
	"github.com/ante-lang/infercore/internal/types"
)

func newPipeline(t *testing.T) (*Pipeline, *diagnostics.CollectingSink) {
	t.Helper()
	state := compilerstate.New()
	table := traits.NewTable(state.Ctx)
	require.NoError(t, traits.LoadBuiltins(table))
	sink := &diagnostics.CollectingSink{}
	return NewPipeline(state, table, sink), sink
}

// spec 8 scenario 1: `let id x = x` generalizes to ∀α. α → α.
func TestPipelineIdentityFunctionGeneralizes(t *testing.T) {
	p, sink := newPipeline(t)
	x := &ast.Param{Name: "x"}
	id := &ast.FuncDecl{Name: "id", Params: []*ast.Param{x}, Body: &ast.Var{Name: "x"}}
	prog := &ast.Program{Decls: []ast.Decl{id}}

	fatal := p.Run(prog)

	require.Nil(t, fatal)
	assert.Empty(t, sink.Records)
	scheme := p.Schemes["id"]
	require.NotNil(t, scheme)
	require.Len(t, scheme.QuantifiedVars, 1)
	fn := scheme.BodyType.(*types.Function)
	assert.Same(t, scheme.QuantifiedVars[0], fn.Params[0])
	assert.Same(t, scheme.QuantifiedVars[0], fn.Ret)
}

// spec 8 scenario 3: `let rec loop x = loop x` generalizes to ∀α β. α → β,
// the return type left wholly unconstrained.
func TestPipelineRecursiveLoopLeavesReturnUnconstrained(t *testing.T) {
	p, sink := newPipeline(t)
	x := &ast.Param{Name: "x"}
	call := &ast.App{Func: &ast.Var{Name: "loop"}, Args: []ast.Expr{&ast.Var{Name: "x"}}}
	loop := &ast.FuncDecl{Name: "loop", Recursive: true, Params: []*ast.Param{x}, Body: call}
	prog := &ast.Program{Decls: []ast.Decl{loop}}

	fatal := p.Run(prog)

	require.Nil(t, fatal)
	assert.Empty(t, sink.Records)
	scheme := p.Schemes["loop"]
	require.NotNil(t, scheme)
	require.Len(t, scheme.QuantifiedVars, 2)
	fn := scheme.BodyType.(*types.Function)
	assert.Same(t, scheme.QuantifiedVars[0], fn.Params[0])
	assert.Same(t, scheme.QuantifiedVars[1], fn.Ret)
	assert.NotSame(t, fn.Params[0], fn.Ret)
}

// spec 8 scenario 4: `let f x = x + 1; f True` reports a Bool/I32 mismatch
// located at the call argument, without aborting the whole run.
func TestPipelineArithmeticCallWithWrongArgTypeReportsMismatch(t *testing.T) {
	p, sink := newPipeline(t)
	fParam := &ast.Param{Name: "x"}
	fBody := &ast.BinOp{Op: "+", Left: &ast.Var{Name: "x"}, Right: &ast.IntLit{Value: 1}}
	f := &ast.FuncDecl{Name: "f", Params: []*ast.Param{fParam}, Body: fBody}

	callBody := &ast.App{Func: &ast.Var{Name: "f"}, Args: []ast.Expr{&ast.BoolLit{Value: true}}}
	useF := &ast.LetDecl{Name: "result", Value: callBody}

	prog := &ast.Program{Decls: []ast.Decl{f, useF}}

	fatal := p.Run(prog)

	require.Nil(t, fatal)
	require.NotEmpty(t, sink.Records)
	assert.True(t, sink.HasError())
}

// spec 8 scenario 6: `let r = {a = 1, b = True}; r.a` resolves to I32 with
// no ambiguous-type diagnostics.
func TestPipelineRecordFieldAccessResolvesToFieldType(t *testing.T) {
	p, sink := newPipeline(t)
	record := &ast.RecordLit{Fields: []ast.FieldInit{
		{Name: "a", Value: &ast.IntLit{Value: 1}},
		{Name: "b", Value: &ast.BoolLit{Value: true}},
	}}
	access := &ast.FieldAccess{Expr: &ast.Var{Name: "r"}, Field: "a"}
	body := &ast.Let{Name: "r", Value: record, Body: access}
	wrapper := &ast.LetDecl{Name: "result", Value: body}
	prog := &ast.Program{Decls: []ast.Decl{wrapper}}

	fatal := p.Run(prog)

	require.Nil(t, fatal)
	assert.Empty(t, sink.Records)
	resolved := wrapper.GetType()
	assert.Equal(t, &types.Primitive{Tag: types.I32}, resolved)
}

// spec 8 scenario 6: accessing the *second* named field must resolve to
// that field's own type, not to whatever sits at tuple position 0 — a
// regression guard for unifyTuple's field-by-name matching.
func TestPipelineRecordFieldAccessOfNonFirstFieldResolvesByName(t *testing.T) {
	p, sink := newPipeline(t)
	record := &ast.RecordLit{Fields: []ast.FieldInit{
		{Name: "a", Value: &ast.IntLit{Value: 1}},
		{Name: "b", Value: &ast.BoolLit{Value: true}},
	}}
	access := &ast.FieldAccess{Expr: &ast.Var{Name: "r"}, Field: "b"}
	body := &ast.Let{Name: "r", Value: record, Body: access}
	wrapper := &ast.LetDecl{Name: "result", Value: body}
	prog := &ast.Program{Decls: []ast.Decl{wrapper}}

	fatal := p.Run(prog)

	require.Nil(t, fatal)
	assert.Empty(t, sink.Records)
	assert.Equal(t, &types.Primitive{Tag: types.Bool}, wrapper.GetType())
}

// spec 8 scenario 6: `r.c` against `{a, b}` raises a TupleWidth/row-mismatch
// diagnostic rather than silently resolving against an unrelated field.
func TestPipelineRecordFieldAccessOfAbsentFieldReportsDiagnostic(t *testing.T) {
	p, sink := newPipeline(t)
	record := &ast.RecordLit{Fields: []ast.FieldInit{
		{Name: "a", Value: &ast.IntLit{Value: 1}},
		{Name: "b", Value: &ast.BoolLit{Value: true}},
	}}
	access := &ast.FieldAccess{Expr: &ast.Var{Name: "r"}, Field: "c"}
	body := &ast.Let{Name: "r", Value: record, Body: access}
	wrapper := &ast.LetDecl{Name: "result", Value: body}
	prog := &ast.Program{Decls: []ast.Decl{wrapper}}

	fatal := p.Run(prog)

	require.Nil(t, fatal)
	require.Len(t, sink.Records, 1)
	assert.Equal(t, diagnostics.Error, sink.Records[0].Severity)
}

// A later top-level declaration sees an earlier one's generalized scheme,
// instantiated fresh (spec 6's global symbol table; spec 4.1 "Rationale").
func TestPipelineLaterDeclSeesEarlierDeclsScheme(t *testing.T) {
	p, sink := newPipeline(t)
	idParam := &ast.Param{Name: "x"}
	id := &ast.FuncDecl{Name: "id", Params: []*ast.Param{idParam}, Body: &ast.Var{Name: "x"}}

	useInt := &ast.LetDecl{Name: "a", Value: &ast.App{Func: &ast.Var{Name: "id"}, Args: []ast.Expr{&ast.IntLit{Value: 1}}}}
	useBool := &ast.LetDecl{Name: "b", Value: &ast.App{Func: &ast.Var{Name: "id"}, Args: []ast.Expr{&ast.BoolLit{Value: true}}}}

	prog := &ast.Program{Decls: []ast.Decl{id, useInt, useBool}}

	fatal := p.Run(prog)

	require.Nil(t, fatal)
	assert.Empty(t, sink.Records)
	assert.Equal(t, &types.Primitive{Tag: types.I32}, useInt.GetType())
	assert.Equal(t, &types.Primitive{Tag: types.Bool}, useBool.GetType())
}
