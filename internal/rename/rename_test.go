package rename

import (
	"testing"

	"github.com/babelc/babelc/internal/ast"
)

var nopos = ast.Pos{File: "t.src", Line: 1, Column: 1}

func i32Con() ast.Type { return ast.TyCon{Name: ast.TyConI32, Kind: ast.KindStar{}} }

func TestRenameSimpleFunc(t *testing.T) {
	mod := &ast.Module{
		Name: "main",
		Decls: []ast.Decl{
			&ast.Func{Pos: nopos, Bind: ast.Bind{
				Name: "id",
				Expr: ast.NewLam(nopos, []string{"x"}, ast.NewVar(nopos, "x")),
			}},
		},
	}

	out, _, err := New().Run([]*ast.Module{mod})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 1 || len(out[0].Decls) != 1 {
		t.Fatalf("expected one module with one decl, got %+v", out)
	}
}

func TestRenameUnknownVariableErrors(t *testing.T) {
	mod := &ast.Module{
		Name: "main",
		Decls: []ast.Decl{
			&ast.Func{Pos: nopos, Bind: ast.Bind{
				Name: "bad",
				Expr: ast.NewVar(nopos, "nonexistent"),
			}},
		},
	}

	_, _, err := New().Run([]*ast.Module{mod})
	if err == nil {
		t.Fatalf("expected an error for unbound variable")
	}
}

func TestRenameDuplicateTopLevelErrors(t *testing.T) {
	mod := &ast.Module{
		Name: "main",
		Decls: []ast.Decl{
			&ast.Func{Pos: nopos, Bind: ast.Bind{Name: "f", Expr: ast.NewI32Lit(nopos, 1)}},
			&ast.Func{Pos: nopos, Bind: ast.Bind{Name: "f", Expr: ast.NewI32Lit(nopos, 2)}},
		},
	}

	_, _, err := New().Run([]*ast.Module{mod})
	if err == nil {
		t.Fatalf("expected an error for duplicate top-level name")
	}
}

func TestRenameShadowingInNestedScopeIsAllowed(t *testing.T) {
	// let x = 1 in (\x -> x) applied conceptually: x rebound inside a lambda
	// parameter must not collide with the outer let-bound x.
	body := ast.NewLam(nopos, []string{"x"}, ast.NewVar(nopos, "x"))
	letExpr := ast.NewLet(nopos, ast.Bind{Name: "x", Expr: ast.NewI32Lit(nopos, 1)}, body)
	mod := &ast.Module{
		Name: "main",
		Decls: []ast.Decl{
			&ast.Func{Pos: nopos, Bind: ast.Bind{Name: "f", Expr: letExpr}},
		},
	}

	_, _, err := New().Run([]*ast.Module{mod})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestRenameExternDeclaresTopLevelSymbol(t *testing.T) {
	mod := &ast.Module{
		Name: "main",
		Decls: []ast.Decl{
			&ast.Extern{Name: "print_i32", Type: ast.FuncSurfaceType([]ast.Type{i32Con()}, ast.TyCon{Name: ast.TyConUnit, Kind: ast.KindStar{}}), Pos: nopos},
			&ast.Func{Pos: nopos, Bind: ast.Bind{
				Name: "main",
				Expr: ast.NewApp(nopos, ast.NewVar(nopos, "print_i32"), []ast.Expr{ast.NewI32Lit(nopos, 1)}),
			}},
		},
	}

	out, graph, err := New().Run([]*ast.Module{mod})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if graph.NumVertices() != 2 {
		t.Fatalf("expected 2 top-level vertices (extern + func), got %d", graph.NumVertices())
	}
	_ = out
}
