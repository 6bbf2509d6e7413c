package simplify

import (
	"testing"

	"github.com/babelc/babelc/internal/ast"
	"github.com/babelc/babelc/internal/infer"
	"github.com/babelc/babelc/internal/lift"
	"github.com/babelc/babelc/internal/monoir"
	"github.com/babelc/babelc/internal/rename"
	"github.com/babelc/babelc/internal/specialize"
	"github.com/babelc/babelc/internal/types"
)

var nopos = ast.Pos{File: "t.src", Line: 1, Column: 1}

func i32Ty() ast.Type { return ast.TyCon{Name: ast.TyConI32, Kind: ast.KindStar{}} }

func pipeline(t *testing.T, mod *ast.Module) []*monoir.Module {
	t.Helper()
	renamed, _, err := rename.New().Run([]*ast.Module{mod})
	if err != nil {
		t.Fatalf("rename error = %v", err)
	}
	xm, err := infer.New().Run(renamed)
	if err != nil {
		t.Fatalf("infer error = %v", err)
	}
	mono, err := specialize.Run(xm)
	if err != nil {
		t.Fatalf("specialize error = %v", err)
	}
	lifted, err := lift.New().Run(mono)
	if err != nil {
		t.Fatalf("lift error = %v", err)
	}
	out, err := Run(lifted)
	if err != nil {
		t.Fatalf("simplify error = %v", err)
	}
	return out
}

// Scenario 1, carried end to end: after C5, main applies the specialized
// id<[i32]> to the result of i32_add(1, 2), and every symbol carries a
// concrete IR3 type.
func TestSimplifyLowersIdentityScenario(t *testing.T) {
	mod := &ast.Module{
		Name: "main",
		Decls: []ast.Decl{
			&ast.Extern{Name: "i32_add", Pos: nopos, Type: ast.FuncSurfaceType([]ast.Type{i32Ty(), i32Ty()}, i32Ty())},
			&ast.Func{Pos: nopos, Bind: ast.Bind{
				Name: "id",
				Expr: ast.NewLam(nopos, []string{"x"}, ast.NewVar(nopos, "x")),
			}},
			&ast.Func{Pos: nopos, Bind: ast.Bind{
				Name: "main",
				Expr: ast.NewApp(nopos, ast.NewVar(nopos, "id"), []ast.Expr{
					ast.NewApp(nopos, ast.NewVar(nopos, "i32_add"), []ast.Expr{ast.NewI32Lit(nopos, 1), ast.NewI32Lit(nopos, 2)}),
				}),
			}},
		},
	}
	out := pipeline(t, mod)
	m := out[0]

	if len(m.Externs()) != 1 || m.Externs()[0].Name != "i32_add" {
		t.Fatalf("expected i32_add to survive as the sole extern, got %v", m.Externs())
	}
	if _, ok := m.Externs()[0].Ty.(monoir.FunctionTy); !ok {
		t.Fatalf("expected i32_add's type to lower to a FunctionTy, got %T", m.Externs()[0].Ty)
	}

	names := make(map[string]monoir.Func)
	for _, f := range m.Funcs() {
		names[f.Name.Name] = f
	}
	if _, ok := names["main"]; !ok {
		t.Fatalf("expected a main function, got %v", m.Funcs())
	}
	foundSpecializedID := false
	for name, f := range names {
		if name == "main" {
			continue
		}
		if _, ok := f.Body.(monoir.LamExpr); !ok {
			t.Fatalf("expected %s's body to be a Lam, got %T", name, f.Body)
		}
		foundSpecializedID = true
	}
	if !foundSpecializedID {
		t.Fatalf("expected a specialized id function besides main, got %v", m.Funcs())
	}
}

// Type lowering: I32/Bool/Unit/Func all map to their IR3 counterparts; a
// residual type variable (impossible post-C3, but checked defensively) is
// a hard UnsupportedType error.
func TestGetTypeLowersBaseTypesAndRejectsTyvar(t *testing.T) {
	cases := []struct {
		in   types.Type
		want monoir.Type
	}{
		{types.I32Type, monoir.I32Ty{}},
		{types.BoolType, monoir.BoolTy{}},
		{types.UnitType, monoir.UnitTy{}},
	}
	for _, c := range cases {
		got, err := getType(c.in)
		if err != nil {
			t.Fatalf("getType(%s) error = %v", c.in, err)
		}
		if got.String() != c.want.String() {
			t.Fatalf("getType(%s) = %s, want %s", c.in, got, c.want)
		}
	}

	fresh := types.Var{V: types.FreshTyVar(0)}
	if _, err := getType(fresh); err == nil {
		t.Fatalf("expected an error lowering a residual type variable")
	}
}

func TestGetTypeLowersFunctionType(t *testing.T) {
	fn := types.FuncType([]types.Type{types.I32Type, types.BoolType}, types.UnitType)
	got, err := getType(fn)
	if err != nil {
		t.Fatalf("getType(%s) error = %v", fn, err)
	}
	ft, ok := got.(monoir.FunctionTy)
	if !ok {
		t.Fatalf("expected FunctionTy, got %T", got)
	}
	if len(ft.ParamsTy) != 2 {
		t.Fatalf("expected 2 params, got %d", len(ft.ParamsTy))
	}
}
