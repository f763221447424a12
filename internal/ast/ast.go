// Package ast is a deliberately thin stand-in for "the parser's AST" (the
// lexer and parser that would produce it are out of scope per spec 1). It
// gives every expression, declaration, and parameter node the mutable type
// slot spec 6 describes ("a source-location, a visit method for each
// variant, and a mutable `type` slot"), owned by the parser and mutated only
// by the inferencer's C2 (Annotator) and C5 (Applier) passes.
package ast

import "github.com/ante-lang/infercore/internal/types"

// Pos is a source location, carried through to diagnostics (C6).
type Pos struct {
	File   string
	Line   int
	Column int
}

// Node is the base interface every AST node satisfies.
type Node interface {
	Pos() Pos
	// GetType returns the node's current type slot, nil before C2 runs.
	GetType() types.Type
	// SetType overwrites the node's type slot; used by C2 (placeholder
	// assignment) and C5 (substitution application).
	SetType(types.Type)
}

type typeSlot struct {
	pos Pos
	typ types.Type
}

func (s *typeSlot) Pos() Pos             { return s.pos }
func (s *typeSlot) GetType() types.Type  { return s.typ }
func (s *typeSlot) SetType(t types.Type) { s.typ = t }

// Expr is any expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is the top-level sequence node spec 6 requires ("An AST rooted at
// a top-level sequence node").
type Program struct {
	typeSlot
	Decls []Decl
}

// Decl is a top-level declaration: a function or a let binding.
type Decl interface {
	Node
	declNode()
}

// FuncDecl is a (possibly recursive) function declaration.
type FuncDecl struct {
	typeSlot
	Name      string
	Params    []*Param
	Body      Expr
	Recursive bool
}

func (f *FuncDecl) declNode() {}

// Param is a function parameter; its type slot is filled by C2 with a fresh
// variable (or with an explicit ascription's determined type, if present).
type Param struct {
	typeSlot
	Name        string
	Ascription  types.Type // non-nil if the source gave an explicit type
	IsCompileTimeOnly bool // compile-time-only parameter (spec 1), excluded
	                       // from ordinary value-level unification by C3.
}

// LetDecl is a top-level binding. The inference passes handle it only as a
// declaration; a local binding inside a Block is a Let.
type LetDecl struct {
	typeSlot
	Name    string
	Mutable bool
	Value   Expr
}

func (l *LetDecl) declNode() {}
func (l *LetDecl) exprNode() {} // satisfies Expr; the expression passes panic on a LetDecl

// IntLit, BoolLit, StringLit are literal expressions. Determined is true
// when the literal already has a concrete type from its syntax (spec 4.2:
// "literal integers, string literals, explicit type ascriptions receive the
// determined type directly"); an undetermined integer literal (Determined
// == false) still gets a type slot from C2, but C3 constrains it against
// DefaultInt rather than leaving it free (spec 4.3).
type IntLit struct {
	typeSlot
	Value      int64
	Determined bool
	// DeterminedType is set when Determined is true: the concrete primitive
	// type an integer suffix (e.g. "42i32") gave the literal in source. Nil
	// when Determined is false, in which case C3 constrains the literal
	// against DefaultInt instead (spec 4.3).
	DeterminedType types.Type
}

func (*IntLit) exprNode() {}

type BoolLit struct {
	typeSlot
	Value bool
}

func (*BoolLit) exprNode() {}

type StringLit struct {
	typeSlot
	Value string
}

func (*StringLit) exprNode() {}

// Var is a reference to a declared name, resolved against the global symbol
// table (spec 6). C3 instantiates the bound scheme via CopyWithFreshVars.
type Var struct {
	typeSlot
	Name string
}

func (*Var) exprNode() {}

// Lambda is an anonymous function literal.
type Lambda struct {
	typeSlot
	Params []*Param
	Body   Expr
}

func (*Lambda) exprNode() {}

// App is a function application `f x1 ... xn`.
type App struct {
	typeSlot
	Func Expr
	Args []Expr
}

func (*App) exprNode() {}

// BinOp is a binary operator use, modeled as sugar over a trait method
// (spec 4.3 "Trait use"): `x + y` constrains Num(ty(x)) and requires an
// `add` implementation, rather than being a special primitive form.
type BinOp struct {
	typeSlot
	Op    string
	Left  Expr
	Right Expr
}

func (*BinOp) exprNode() {}

// If is a conditional expression; both arms must unify with If's own type,
// and Cond must unify with Bool (spec 4.3 "If/match").
type If struct {
	typeSlot
	Cond Expr
	Then Expr
	Else Expr
}

func (*If) exprNode() {}

// Case is one arm of a Match.
type Case struct {
	Pattern Pattern
	Body    Expr
}

// Match is a pattern match; every arm's body type unifies with Match's own
// type, and the scrutinee unifies with every pattern's type.
type Match struct {
	typeSlot
	Scrutinee Expr
	Cases     []Case
}

func (*Match) exprNode() {}

// Pattern is a pattern in a match arm or a let/lambda binding position.
type Pattern interface {
	Node
	patternNode()
}

// PatVar binds Name to the scrutinee's type.
type PatVar struct {
	typeSlot
	Name string
}

func (*PatVar) patternNode() {}

// PatWildcard matches anything without binding.
type PatWildcard struct {
	typeSlot
}

func (*PatWildcard) patternNode() {}

// PatLit matches a literal value.
type PatLit struct {
	typeSlot
	Lit Expr // *IntLit, *BoolLit, or *StringLit
}

func (*PatLit) patternNode() {}

// Let is a (possibly mutable) local binding inside a Block: `let [mut] x =
// value; body`. A mutable binding wraps the declared type in a `mut`
// modifier (spec 4.3). The Let expression's own type slot (GetType/SetType)
// is the type of the whole let-expression, i.e. Body's type; BindingType is
// the separate slot for the bound name x itself, the one stored under x in
// the local environment while Body is being processed.
type Let struct {
	typeSlot
	Name        string
	Mutable     bool
	Value       Expr
	Body        Expr
	BindingType types.Type
}

func (*Let) exprNode() {}

// LetRec is a recursive local binding: Name is in scope inside Value itself.
// As with Let, the node's own type slot is the whole expression's type
// (Body's type); BindingType is x's own slot, visible inside both Value and
// Body.
type LetRec struct {
	typeSlot
	Name        string
	Value       Expr
	Body        Expr
	BindingType types.Type
}

func (*LetRec) exprNode() {}

// Block sequences expressions, the last of which is the Block's value.
type Block struct {
	typeSlot
	Exprs []Expr
}

func (*Block) exprNode() {}

// FieldInit is one `name = value` pair of a record literal.
type FieldInit struct {
	Name  string
	Value Expr
}

// RecordLit is an anonymous record/tuple literal `{a = 1, b = true}` or a
// plain positional tuple when every FieldInit's Name is empty.
type RecordLit struct {
	typeSlot
	Fields []FieldInit
}

func (*RecordLit) exprNode() {}

// FieldAccess is `e.f`; C3 emits a row-polymorphic constraint on ty(e)
// (spec 4.3 "Field access").
type FieldAccess struct {
	typeSlot
	Expr  Expr
	Field string
}

func (*FieldAccess) exprNode() {}

// TraitCall is an explicit trait-method invocation whose resolution may
// depend on as-yet-unknown argument types (spec 4.3 "Trait use"), distinct
// from BinOp only in that it names the trait explicitly rather than being
// inferred from an operator token.
type TraitCall struct {
	typeSlot
	Trait  string
	Method string
	Args   []Expr
}

func (*TraitCall) exprNode() {}
