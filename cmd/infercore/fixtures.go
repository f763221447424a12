// Fixture loading: a deliberately small YAML schema for the handful of
// expression forms the demo fixtures exercise, in the same declarative
// style as internal/traits/builtins.yaml (gopkg.in/yaml.v3). The lexer and
// parser that would produce a real AST are out of scope (spec 1); this is
// just enough surface for cmd/infercore to have something to feed C2.
package main

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ante-lang/infercore/internal/ast"
)

type fixtureFile struct {
	Decls []fixtureDecl `yaml:"decls"`
}

type fixtureDecl struct {
	Kind      string       `yaml:"kind"` // "func" or "let"
	Name      string       `yaml:"name"`
	Recursive bool         `yaml:"recursive"`
	Params    []string     `yaml:"params"`
	Mutable   bool         `yaml:"mutable"`
	Body      *fixtureExpr `yaml:"body"`
}

// fixtureExpr is a one-of node: exactly one field should be set, matching
// the shape of the small expression language the demo fixtures use.
type fixtureExpr struct {
	Int    *int64            `yaml:"int"`
	Bool   *bool             `yaml:"bool"`
	String *string           `yaml:"string"`
	Var    string            `yaml:"var"`
	Lambda *fixtureLambda    `yaml:"lambda"`
	App    *fixtureApp       `yaml:"app"`
	BinOp  *fixtureBinOp     `yaml:"binop"`
	If     *fixtureIf        `yaml:"if"`
	Let    *fixtureLet       `yaml:"let"`
	Block  []*fixtureExpr    `yaml:"block"`
	Record map[string]*fixtureExpr `yaml:"record"`
	Field  *fixtureField     `yaml:"field"`
}

type fixtureLambda struct {
	Params []string     `yaml:"params"`
	Body   *fixtureExpr `yaml:"body"`
}

type fixtureApp struct {
	Func *fixtureExpr   `yaml:"func"`
	Args []*fixtureExpr `yaml:"args"`
}

type fixtureBinOp struct {
	Op    string       `yaml:"op"`
	Left  *fixtureExpr `yaml:"left"`
	Right *fixtureExpr `yaml:"right"`
}

type fixtureIf struct {
	Cond *fixtureExpr `yaml:"cond"`
	Then *fixtureExpr `yaml:"then"`
	Else *fixtureExpr `yaml:"else"`
}

type fixtureLet struct {
	Name    string       `yaml:"name"`
	Mutable bool         `yaml:"mutable"`
	Value   *fixtureExpr `yaml:"value"`
	Body    *fixtureExpr `yaml:"body"`
}

type fixtureField struct {
	Expr  *fixtureExpr `yaml:"expr"`
	Field string       `yaml:"field"`
}

// parseFixture unmarshals raw YAML bytes into an ast.Program.
func parseFixture(raw []byte) (*ast.Program, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("infercore: parsing fixture: %w", err)
	}
	prog := &ast.Program{}
	for _, d := range f.Decls {
		decl, err := toDecl(d)
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, decl)
	}
	return prog, nil
}

func toDecl(d fixtureDecl) (ast.Decl, error) {
	switch d.Kind {
	case "func":
		body, err := toExpr(d.Body)
		if err != nil {
			return nil, err
		}
		params := make([]*ast.Param, len(d.Params))
		for i, name := range d.Params {
			params[i] = &ast.Param{Name: name}
		}
		return &ast.FuncDecl{Name: d.Name, Recursive: d.Recursive, Params: params, Body: body}, nil
	case "let":
		body, err := toExpr(d.Body)
		if err != nil {
			return nil, err
		}
		return &ast.LetDecl{Name: d.Name, Mutable: d.Mutable, Value: body}, nil
	default:
		return nil, fmt.Errorf("infercore: unknown decl kind %q", d.Kind)
	}
}

func toExpr(e *fixtureExpr) (ast.Expr, error) {
	if e == nil {
		return nil, fmt.Errorf("infercore: missing expression")
	}
	switch {
	case e.Int != nil:
		return &ast.IntLit{Value: *e.Int}, nil
	case e.Bool != nil:
		return &ast.BoolLit{Value: *e.Bool}, nil
	case e.String != nil:
		return &ast.StringLit{Value: *e.String}, nil
	case e.Var != "":
		return &ast.Var{Name: e.Var}, nil
	case e.Lambda != nil:
		body, err := toExpr(e.Lambda.Body)
		if err != nil {
			return nil, err
		}
		params := make([]*ast.Param, len(e.Lambda.Params))
		for i, name := range e.Lambda.Params {
			params[i] = &ast.Param{Name: name}
		}
		return &ast.Lambda{Params: params, Body: body}, nil
	case e.App != nil:
		fn, err := toExpr(e.App.Func)
		if err != nil {
			return nil, err
		}
		args := make([]ast.Expr, len(e.App.Args))
		for i, a := range e.App.Args {
			args[i], err = toExpr(a)
			if err != nil {
				return nil, err
			}
		}
		return &ast.App{Func: fn, Args: args}, nil
	case e.BinOp != nil:
		left, err := toExpr(e.BinOp.Left)
		if err != nil {
			return nil, err
		}
		right, err := toExpr(e.BinOp.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Op: e.BinOp.Op, Left: left, Right: right}, nil
	case e.If != nil:
		cond, err := toExpr(e.If.Cond)
		if err != nil {
			return nil, err
		}
		then, err := toExpr(e.If.Then)
		if err != nil {
			return nil, err
		}
		els, err := toExpr(e.If.Else)
		if err != nil {
			return nil, err
		}
		return &ast.If{Cond: cond, Then: then, Else: els}, nil
	case e.Let != nil:
		value, err := toExpr(e.Let.Value)
		if err != nil {
			return nil, err
		}
		body, err := toExpr(e.Let.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Let{Name: e.Let.Name, Mutable: e.Let.Mutable, Value: value, Body: body}, nil
	case len(e.Block) > 0:
		exprs := make([]ast.Expr, len(e.Block))
		for i, sub := range e.Block {
			var err error
			exprs[i], err = toExpr(sub)
			if err != nil {
				return nil, err
			}
		}
		return &ast.Block{Exprs: exprs}, nil
	case e.Record != nil:
		fields := make([]ast.FieldInit, 0, len(e.Record))
		for name, v := range e.Record {
			value, err := toExpr(v)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.FieldInit{Name: name, Value: value})
		}
		return &ast.RecordLit{Fields: fields}, nil
	case e.Field != nil:
		inner, err := toExpr(e.Field.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.FieldAccess{Expr: inner, Field: e.Field.Field}, nil
	default:
		return nil, fmt.Errorf("infercore: empty expression node")
	}
}
