package repl

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/babelc/babelc/internal/ast"
	"github.com/babelc/babelc/internal/infer"
	"github.com/babelc/babelc/internal/lift"
	"github.com/babelc/babelc/internal/pipeline"
	"github.com/babelc/babelc/internal/rename"
	"github.com/babelc/babelc/internal/simplify"
	"github.com/babelc/babelc/internal/specialize"
	"github.com/babelc/babelc/internal/testsupport"
	"github.com/babelc/babelc/internal/xir"
)

func (r *REPL) runFixture(args []string, out io.Writer) {
	name, ok := r.fixtureModule(args, out)
	if !ok {
		return
	}
	f, err := testsupport.Get(name)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}

	dir, err := os.MkdirTemp("", "babelc-repl-*")
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	defer os.RemoveAll(dir)

	cfg := defaultPipelineConfig(dir)
	cfg.Verbose = r.config.Verbose
	cfg.DumpXIR = r.config.Verbose
	cfg.DumpMonoIR = r.config.Verbose
	result, err := pipeline.Run(cfg, pipeline.Source{Modules: []*ast.Module{f.Module()}})
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	r.lastRun = &result
	fmt.Fprintf(out, "%s compiled %q: %d object file(s) emitted\n", green("ok"), name, len(result.ObjectPaths))
	r.showTimings(out)
}

func (r *REPL) dumpXIR(args []string, out io.Writer) {
	name, ok := r.fixtureModule(args, out)
	if !ok {
		return
	}
	f, err := testsupport.Get(name)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	modules, err := compileToXIR(f.Module())
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	for _, m := range modules {
		fmt.Fprintf(out, "=== %s ===\n", bold(m.Name))
		for _, d := range m.Decls {
			printXIRDecl(out, d)
		}
	}
}

func (r *REPL) dumpMonoIR(args []string, out io.Writer) {
	name, ok := r.fixtureModule(args, out)
	if !ok {
		return
	}
	f, err := testsupport.Get(name)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	xirModules, err := compileToXIR(f.Module())
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	monoModules, err := simplify.Run(xirModules)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	for _, m := range monoModules {
		fmt.Fprintf(out, "=== %s ===\n", bold(m.Name()))
		for _, e := range m.Externs() {
			fmt.Fprintf(out, "extern %s : %s\n", e.Name, e.Ty)
		}
		for _, fn := range m.Funcs() {
			fmt.Fprintf(out, "%s = %s\n", fn.Name.Name, fn.Body)
		}
	}
}

func (r *REPL) showTimings(out io.Writer) {
	if r.lastRun == nil {
		fmt.Fprintln(out, dim("no run yet — try :run <fixture>"))
		return
	}
	phases := make([]string, 0, len(r.lastRun.PhaseTimings))
	for phase := range r.lastRun.PhaseTimings {
		phases = append(phases, phase)
	}
	sort.Strings(phases)
	for _, phase := range phases {
		fmt.Fprintf(out, "  %-12s %dms\n", phase, r.lastRun.PhaseTimings[phase])
	}
}

func printXIRDecl(out io.Writer, d xir.Decl) {
	switch decl := d.(type) {
	case *xir.Extern:
		fmt.Fprintf(out, "extern %s\n", decl.Sym)
	case *xir.Let:
		for _, b := range decl.Binds {
			fmt.Fprintf(out, "%s = %s\n", b.Sym, b.Expr)
		}
	}
}

func compileToXIR(m *ast.Module) ([]*xir.Module, error) {
	idModules, _, err := rename.New().Run([]*ast.Module{m})
	if err != nil {
		return nil, err
	}
	xirModules, err := infer.New().Run(idModules)
	if err != nil {
		return nil, err
	}
	xirModules, err = specialize.Run(xirModules)
	if err != nil {
		return nil, err
	}
	return lift.New().Run(xirModules)
}
