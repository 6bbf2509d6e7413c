// Package pipeline sequences the compiler's passes end to end: renaming,
// type inference, monomorphization, lambda lifting, simplification, object
// emission, and linking. Grounded on the teacher's internal/pipeline.Run —
// a Config/Source/Result shape with a per-phase PhaseTimings map — stripped
// of everything downstream of AILANG's evaluator (there is no Eval mode,
// no REPL environment seeding, no module loader) since this pipeline's job
// ends at a linked executable, not a value.
package pipeline

import (
	"fmt"
	"time"

	"github.com/babelc/babelc/internal/ast"
	"github.com/babelc/babelc/internal/backend"
	"github.com/babelc/babelc/internal/config"
	"github.com/babelc/babelc/internal/diag"
	"github.com/babelc/babelc/internal/infer"
	"github.com/babelc/babelc/internal/lift"
	"github.com/babelc/babelc/internal/link"
	"github.com/babelc/babelc/internal/monoir"
	"github.com/babelc/babelc/internal/rename"
	"github.com/babelc/babelc/internal/simplify"
	"github.com/babelc/babelc/internal/specialize"
	"github.com/babelc/babelc/internal/xir"
)

// Config carries everything a Run needs beyond the program itself: which
// codegen to use, where to write objects, whether (and how) to invoke the
// linker, and a few dump flags mirroring the teacher's DumpCore/DumpTyped
// debugging toggles.
type Config struct {
	Backend     backend.CodeGenerator
	LinkerCfg   config.LinkerConfig
	OutputDir   string
	SkipLink    bool // object emission only, no link step (used by `babelc check`/`babelc build --no-link`)
	Verbose     bool
	DumpXIR     bool
	DumpMonoIR  bool
}

// ConfigFromProject builds a Config from a loaded PipelineConfig.
func ConfigFromProject(cfg *config.PipelineConfig) Config {
	return Config{
		Backend:   backend.NewObjWriter(),
		LinkerCfg: cfg.Linker,
		OutputDir: cfg.OutputDir,
	}
}

// Source is the already-parsed program this pipeline compiles. Producing
// it is the parser's job (spec §6's upstream collaborator) and out of
// scope here.
type Source struct {
	Modules []*ast.Module
}

// Artifacts holds the intermediate representations each phase produced,
// kept around for dumps and tests rather than discarded between phases.
type Artifacts struct {
	XIR    []*xir.Module
	MonoIR []*monoir.Module
}

// Result is what a Run produced.
type Result struct {
	Artifacts    Artifacts
	ObjectPaths  []string
	Link         *link.Result
	PhaseTimings map[string]int64 // milliseconds
}

// Run executes the full pipeline: rename, infer, specialize, lift,
// simplify, emit, and (unless cfg.SkipLink) link.
func Run(cfg Config, src Source) (Result, error) {
	result := Result{PhaseTimings: make(map[string]int64)}

	start := time.Now()
	idModules, _, err := rename.New().Run(src.Modules)
	result.PhaseTimings[diag.PhaseRename] = time.Since(start).Milliseconds()
	if err != nil {
		return result, err
	}

	start = time.Now()
	xirModules, err := infer.New().Run(idModules)
	result.PhaseTimings[diag.PhaseInfer] = time.Since(start).Milliseconds()
	if err != nil {
		return result, err
	}

	start = time.Now()
	xirModules, err = specialize.Run(xirModules)
	result.PhaseTimings[diag.PhaseSpecialize] = time.Since(start).Milliseconds()
	if err != nil {
		return result, err
	}

	start = time.Now()
	xirModules, err = lift.New().Run(xirModules)
	result.PhaseTimings[diag.PhaseLift] = time.Since(start).Milliseconds()
	if err != nil {
		return result, err
	}
	result.Artifacts.XIR = xirModules
	if cfg.Verbose && cfg.DumpXIR {
		for _, m := range xirModules {
			fmt.Printf("=== xir: %s ===\n", m.Name)
			for _, d := range m.Decls {
				if let, ok := d.(*xir.Let); ok {
					for _, b := range let.Binds {
						fmt.Printf("%s = %s\n", b.Sym, b.Expr)
					}
				}
			}
		}
	}

	start = time.Now()
	monoModules, err := simplify.Run(xirModules)
	result.PhaseTimings[diag.PhaseSimplify] = time.Since(start).Milliseconds()
	if err != nil {
		return result, err
	}
	result.Artifacts.MonoIR = monoModules
	if cfg.Verbose && cfg.DumpMonoIR {
		for _, m := range monoModules {
			fmt.Printf("=== monoir: %s ===\n", m.Name())
			for _, e := range m.Externs() {
				fmt.Printf("extern %s : %s\n", e.Name, e.Ty)
			}
			for _, fn := range m.Funcs() {
				fmt.Printf("%s = %s\n", fn.Name.Name, fn.Body)
			}
		}
	}

	gen := cfg.Backend
	if gen == nil {
		gen = backend.NewObjWriter()
	}
	start = time.Now()
	paths, err := gen.Emit(monoModules, cfg.OutputDir)
	result.PhaseTimings[diag.PhaseBackend] = time.Since(start).Milliseconds()
	if err != nil {
		return result, err
	}
	result.ObjectPaths = paths

	if cfg.SkipLink {
		return result, nil
	}

	start = time.Now()
	linkResult, err := link.New(cfg.LinkerCfg).Link(paths, link.Options{Verbose: cfg.Verbose})
	result.PhaseTimings[diag.PhaseLink] = time.Since(start).Milliseconds()
	if err != nil {
		return result, err
	}
	result.Link = linkResult

	return result, nil
}
