// Command babelc is the CLI entry point sequencing the compiler over a
// named internal/testsupport fixture in place of a real source file, since
// this repository's parser is an external collaborator it does not
// implement (spec §6). Grounded on the teacher's cmd/ailang/main.go: flag
// parsing via the standard library's flag package, colored output via
// fatih/color, subcommand dispatch off flag.Arg(0).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/babelc/babelc/internal/ast"
	"github.com/babelc/babelc/internal/config"
	"github.com/babelc/babelc/internal/pipeline"
	"github.com/babelc/babelc/internal/repl"
	"github.com/babelc/babelc/internal/testsupport"
)

var (
	// Version and BuildTime are set by ldflags during release builds.
	Version   = "dev"
	BuildTime = "unknown"

	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "print version information")
		helpFlag    = flag.Bool("help", false, "show help")
		configPath  = flag.String("config", "", "path to babelc.yaml (defaults built in if unset)")
		noLink      = flag.Bool("no-link", false, "stop after object emission, skip the linker")
		verbose     = flag.Bool("verbose", false, "print phase timings and IR dumps")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	switch flag.Arg(0) {
	case "build":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing fixture name\nUsage: babelc build <fixture>\n", red("Error"))
			os.Exit(1)
		}
		build(flag.Arg(1), *configPath, *noLink, *verbose)

	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing fixture name\nUsage: babelc check <fixture>\n", red("Error"))
			os.Exit(1)
		}
		build(flag.Arg(1), *configPath, true, *verbose)

	case "list":
		for _, f := range testsupport.List() {
			fmt.Printf("  %-16s %s\n", bold(f.Name), f.Description)
		}

	case "repl":
		r := repl.NewWithVersion(Version, BuildTime)
		if *verbose {
			r.EnableTrace()
		}
		r.Start(os.Stdin, os.Stdout)

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func loadConfig(path string) *config.PipelineConfig {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	return cfg
}

func build(fixtureName, configPath string, skipLink, verbose bool) {
	f, err := testsupport.Get(fixtureName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	projectCfg := loadConfig(configPath)
	cfg := pipeline.ConfigFromProject(projectCfg)
	cfg.SkipLink = skipLink
	cfg.Verbose = verbose
	cfg.DumpXIR = verbose
	cfg.DumpMonoIR = verbose

	result, err := pipeline.Run(cfg, pipeline.Source{Modules: []*ast.Module{f.Module()}})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	fmt.Printf("%s %d object file(s) written to %s\n", green("ok"), len(result.ObjectPaths), cfg.OutputDir)
	if result.Link != nil {
		fmt.Printf("%s linked executable at %s\n", green("ok"), result.Link.Output)
	}
	if verbose {
		for phase, ms := range result.PhaseTimings {
			fmt.Printf("  %-12s %dms\n", phase, ms)
		}
	}
}

func printVersion() {
	fmt.Printf("babelc %s\n", bold(Version))
	if BuildTime != "unknown" {
		fmt.Printf("Built: %s\n", BuildTime)
	}
}

func printHelp() {
	fmt.Println(bold("babelc - typed higher-order functional compiler middle-end"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  babelc <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <fixture>   Compile a fixture through rename/infer/specialize/lift/simplify/backend/link\n", cyan("build"))
	fmt.Printf("  %s <fixture>   Compile a fixture without linking (object emission only)\n", cyan("check"))
	fmt.Printf("  %s              List the named fixtures build/check/repl accept\n", cyan("list"))
	fmt.Printf("  %s              Start the interactive shell\n", cyan("repl"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --version        Print version information")
	fmt.Println("  --help           Show this help message")
	fmt.Println("  --config <path>  Load a babelc.yaml project file")
	fmt.Println("  --no-link        With build: stop after object emission")
	fmt.Println("  --verbose        Print phase timings and IR dumps")
}
