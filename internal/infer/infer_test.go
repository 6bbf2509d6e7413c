package infer

import (
	"testing"

	"github.com/babelc/babelc/internal/ast"
	"github.com/babelc/babelc/internal/rename"
	"github.com/babelc/babelc/internal/types"
	"github.com/babelc/babelc/internal/xir"
)

var nopos = ast.Pos{File: "t.src", Line: 1, Column: 1}

func TestInferIdentityIsPolymorphic(t *testing.T) {
	// fn id(x) { x }
	mod := &ast.Module{
		Name: "main",
		Decls: []ast.Decl{
			&ast.Func{Pos: nopos, Bind: ast.Bind{
				Name: "id",
				Expr: ast.NewLam(nopos, []string{"x"}, ast.NewVar(nopos, "x")),
			}},
		},
	}
	renamed, _, err := rename.New().Run([]*ast.Module{mod})
	if err != nil {
		t.Fatalf("rename error = %v", err)
	}
	out, err := New().Run(renamed)
	if err != nil {
		t.Fatalf("infer error = %v", err)
	}
	let := out[0].Decls[0].(*xir.Let)
	tylam, ok := let.Binds[0].Expr.(*xir.TyLam)
	if !ok {
		t.Fatalf("expected id to be generalized into a TyLam, got %T", let.Binds[0].Expr)
	}
	if len(tylam.Vars) != 1 {
		t.Fatalf("expected exactly one bound type variable, got %d", len(tylam.Vars))
	}
}

func TestInferIfUnifiesBranches(t *testing.T) {
	// fn pick(b, x, y) { if b then x else y }
	mod := &ast.Module{
		Name: "main",
		Decls: []ast.Decl{
			&ast.Func{Pos: nopos, Bind: ast.Bind{
				Name: "pick",
				Expr: ast.NewLam(nopos, []string{"b", "x", "y"},
					ast.NewIf(nopos, ast.NewVar(nopos, "b"), ast.NewVar(nopos, "x"), ast.NewVar(nopos, "y"))),
			}},
		},
	}
	renamed, _, err := rename.New().Run([]*ast.Module{mod})
	if err != nil {
		t.Fatalf("rename error = %v", err)
	}
	out, err := New().Run(renamed)
	if err != nil {
		t.Fatalf("infer error = %v", err)
	}
	let := out[0].Decls[0].(*xir.Let)
	tylam, ok := let.Binds[0].Expr.(*xir.TyLam)
	if !ok {
		t.Fatalf("expected pick to be generalized, got %T", let.Binds[0].Expr)
	}
	if len(tylam.Vars) != 1 {
		t.Fatalf("expected one bound type variable shared by x, y and the result, got %d", len(tylam.Vars))
	}
}

func TestInferOccursCheckRejectsSelfApplication(t *testing.T) {
	// fn loop(x) { x(x) }
	mod := &ast.Module{
		Name: "main",
		Decls: []ast.Decl{
			&ast.Func{Pos: nopos, Bind: ast.Bind{
				Name: "loop",
				Expr: ast.NewLam(nopos, []string{"x"},
					ast.NewApp(nopos, ast.NewVar(nopos, "x"), []ast.Expr{ast.NewVar(nopos, "x")})),
			}},
		},
	}
	renamed, _, err := rename.New().Run([]*ast.Module{mod})
	if err != nil {
		t.Fatalf("rename error = %v", err)
	}
	if _, err := New().Run(renamed); err == nil {
		t.Fatalf("expected an occurs-check error for x(x)")
	}
}

func TestInferShadowingResolvesInnerBinding(t *testing.T) {
	// fn main() { let x = 1 in let x = true in x }
	inner := ast.NewLet(nopos, ast.Bind{Name: "x", Expr: ast.NewBoolLit(nopos, true)}, ast.NewVar(nopos, "x"))
	outer := ast.NewLet(nopos, ast.Bind{Name: "x", Expr: ast.NewI32Lit(nopos, 1)}, inner)
	mod := &ast.Module{
		Name: "main",
		Decls: []ast.Decl{
			&ast.Func{Pos: nopos, Bind: ast.Bind{Name: "main", Expr: outer}},
		},
	}
	renamed, _, err := rename.New().Run([]*ast.Module{mod})
	if err != nil {
		t.Fatalf("rename error = %v", err)
	}
	out, err := New().Run(renamed)
	if err != nil {
		t.Fatalf("infer error = %v", err)
	}
	let := out[0].Decls[0].(*xir.Let)
	// main has no parameters and a Bool body, so its scheme is monomorphic;
	// the bind's expr is the LetExpr chain directly (no TyLam wrapper).
	if _, ok := let.Binds[0].Expr.(*xir.LetExpr); !ok {
		t.Fatalf("expected main's body to be a LetExpr chain, got %T", let.Binds[0].Expr)
	}
	if !types.Equals(let.Binds[0].Sym.Ty, types.BoolType) {
		t.Fatalf("expected main to take the inner x's type Bool, got %s", let.Binds[0].Sym.Ty)
	}
}

func TestInferExternBindsGroundType(t *testing.T) {
	mod := &ast.Module{
		Name: "main",
		Decls: []ast.Decl{
			&ast.Extern{Name: "print_i32", Pos: nopos, Type: ast.FuncSurfaceType(
				[]ast.Type{ast.TyCon{Name: ast.TyConI32, Kind: ast.KindStar{}}},
				ast.TyCon{Name: ast.TyConUnit, Kind: ast.KindStar{}},
			)},
			&ast.Func{Pos: nopos, Bind: ast.Bind{
				Name: "main",
				Expr: ast.NewApp(nopos, ast.NewVar(nopos, "print_i32"), []ast.Expr{ast.NewI32Lit(nopos, 1)}),
			}},
		},
	}
	renamed, _, err := rename.New().Run([]*ast.Module{mod})
	if err != nil {
		t.Fatalf("rename error = %v", err)
	}
	out, err := New().Run(renamed)
	if err != nil {
		t.Fatalf("infer error = %v", err)
	}
	ext := out[0].Decls[0].(*xir.Extern)
	if fv := types.FreeVars(ext.Sym.Ty); len(fv) != 0 {
		t.Fatalf("expected print_i32 to have a ground type, got %s", ext.Sym.Ty)
	}
}
