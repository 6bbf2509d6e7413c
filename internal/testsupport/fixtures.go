// Package testsupport builds ast.Module values directly, standing in for
// the parser this compiler treats as a fixed external collaborator (spec
// §6). The small expression builders construct the named Fixture registry,
// which cmd/babelc and internal/repl use so there is something runnable
// without a real front end; the compiler passes' own tests build their
// ast.Module values inline.
package testsupport

import (
	"fmt"
	"sort"

	"github.com/babelc/babelc/internal/ast"
)

// Pos is the position every builder attaches to the nodes it creates.
var Pos = ast.Pos{File: "<fixture>", Line: 1, Column: 1}

func I32() ast.Type  { return ast.TyCon{Name: ast.TyConI32, Kind: ast.KindStar{}} }
func Bool() ast.Type { return ast.TyCon{Name: ast.TyConBool, Kind: ast.KindStar{}} }
func Unit() ast.Type { return ast.TyCon{Name: ast.TyConUnit, Kind: ast.KindStar{}} }

func Extern(name string, params []ast.Type, ret ast.Type) *ast.Extern {
	return &ast.Extern{Name: name, Pos: Pos, Type: ast.FuncSurfaceType(params, ret)}
}

func Func(name string, expr ast.Expr) *ast.Func {
	return &ast.Func{Pos: Pos, Bind: ast.Bind{Name: name, Expr: expr}}
}

func Var(name string) *ast.Var { return ast.NewVar(Pos, name) }

func I32Lit(v int32) *ast.I32Lit { return ast.NewI32Lit(Pos, v) }

func BoolLit(v bool) *ast.BoolLit { return ast.NewBoolLit(Pos, v) }

func Lam(params []string, body ast.Expr) *ast.Lam { return ast.NewLam(Pos, params, body) }

func App(callee ast.Expr, args ...ast.Expr) *ast.App { return ast.NewApp(Pos, callee, args) }

func If(cond, then, els ast.Expr) *ast.If { return ast.NewIf(Pos, cond, then, els) }

func Let(bound ast.Bind, body ast.Expr) *ast.Let { return ast.NewLet(Pos, bound, body) }

// Fixture is a named, runnable program built entirely from the helpers
// above, exercised both by package tests and by cmd/babelc's demo mode.
type Fixture struct {
	Name        string
	Description string
	Module      func() *ast.Module
}

var registry = map[string]Fixture{
	"identity": {
		Name:        "identity",
		Description: "instantiates the polymorphic identity function once, at I32",
		Module: func() *ast.Module {
			return &ast.Module{
				Name: "main",
				Decls: []ast.Decl{
					Extern("i32_add", []ast.Type{I32(), I32()}, I32()),
					Func("id", Lam([]string{"x"}, Var("x"))),
					Func("main", App(Var("id"), App(Var("i32_add"), I32Lit(1), I32Lit(2)))),
				},
			}
		},
	},
	"poly-twice": {
		Name:        "poly-twice",
		Description: "instantiates identity at both Bool and I32 from the same call site family",
		Module: func() *ast.Module {
			return &ast.Module{
				Name: "main",
				Decls: []ast.Decl{
					Extern("i32_add", []ast.Type{I32(), I32()}, I32()),
					Func("id", Lam([]string{"x"}, Var("x"))),
					Func("main", If(
						App(Var("id"), BoolLit(true)),
						App(Var("id"), App(Var("i32_add"), I32Lit(1), I32Lit(2))),
						I32Lit(0),
					)),
				},
			}
		},
	},
	"closure-capture": {
		Name:        "closure-capture",
		Description: "a let-bound lambda that captures an outer parameter, which lambda lifting rejects as an unexpected free variable (LFT001)",
		Module: func() *ast.Module {
			return &ast.Module{
				Name: "main",
				Decls: []ast.Decl{
					Extern("i32_add", []ast.Type{I32(), I32()}, I32()),
					Func("adder", Lam([]string{"n"}, Let(
						ast.Bind{Name: "bump", Expr: Lam([]string{"x"}, App(Var("i32_add"), Var("x"), Var("n")))},
						App(Var("bump"), I32Lit(1)),
					))),
					Func("main", App(Var("adder"), I32Lit(41))),
				},
			}
		},
	},
}

// List returns every registered fixture, sorted by name.
func List() []Fixture {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Fixture, 0, len(names))
	for _, name := range names {
		out = append(out, registry[name])
	}
	return out
}

// Get looks up a fixture by name.
func Get(name string) (Fixture, error) {
	f, ok := registry[name]
	if !ok {
		return Fixture{}, fmt.Errorf("testsupport: no such fixture %q", name)
	}
	return f, nil
}
