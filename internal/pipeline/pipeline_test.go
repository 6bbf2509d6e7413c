package pipeline

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/babelc/babelc/internal/ast"
	"github.com/babelc/babelc/internal/backend"
	"github.com/babelc/babelc/internal/config"
)

var nopos = ast.Pos{File: "t.src", Line: 1, Column: 1}

func i32Ty() ast.Type { return ast.TyCon{Name: ast.TyConI32, Kind: ast.KindStar{}} }

func identityModule() *ast.Module {
	return &ast.Module{
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
}

func TestRunEmitsObjectsWithoutLinking(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Backend:   backend.NewObjWriter(),
		OutputDir: dir,
		SkipLink:  true,
	}

	result, err := Run(cfg, Source{Modules: []*ast.Module{identityModule()}})
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if len(result.ObjectPaths) != 1 {
		t.Fatalf("expected one object file, got %v", result.ObjectPaths)
	}
	if result.Link != nil {
		t.Fatalf("expected no link result when SkipLink is set, got %v", result.Link)
	}
	for _, phase := range []string{"rename", "infer", "specialize", "lift", "simplify", "backend"} {
		if _, ok := result.PhaseTimings[phase]; !ok {
			t.Fatalf("expected a phase timing for %q, got %v", phase, result.PhaseTimings)
		}
	}
	if len(result.Artifacts.MonoIR) != 1 {
		t.Fatalf("expected one monoir module in the artifacts, got %d", len(result.Artifacts.MonoIR))
	}
}

func TestRunLinksWhenConfigured(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test script assumes a POSIX shell")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "fake-ld")
	body := "#!/bin/sh\nfor a in \"$@\"; do last=\"$a\"; done\ntouch \"$last\"\n"
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatalf("write fake linker: %v", err)
	}

	out := filepath.Join(dir, "a.out")
	cfg := Config{
		Backend:   backend.NewObjWriter(),
		OutputDir: dir,
		LinkerCfg: config.LinkerConfig{Command: script, Output: out},
	}

	result, err := Run(cfg, Source{Modules: []*ast.Module{identityModule()}})
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if result.Link == nil || result.Link.Output != out {
		t.Fatalf("expected a link result for %s, got %v", out, result.Link)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected the linked executable to exist: %v", err)
	}
}

func TestConfigFromProjectUsesObjectBackend(t *testing.T) {
	cfg := ConfigFromProject(config.Default())
	if cfg.Backend == nil {
		t.Fatal("expected ConfigFromProject to set a default backend")
	}
	if cfg.OutputDir != "build" {
		t.Fatalf("expected output dir %q, got %q", "build", cfg.OutputDir)
	}
}
