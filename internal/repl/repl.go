// Package repl is an interactive shell over internal/testsupport's named
// fixtures and internal/pipeline: since this compiler has no parser and no
// evaluator, there is no source text to read a line at a time. Instead the
// REPL's job is to run a named fixture through the compiler and print what
// each phase produced. Grounded on the teacher's internal/repl.REPL for the
// outer shell — liner-backed history, a colored prompt, a Start loop
// dispatching `:`-commands versus plain input.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/babelc/babelc/internal/backend"
	"github.com/babelc/babelc/internal/config"
	"github.com/babelc/babelc/internal/pipeline"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Config holds REPL configuration.
type Config struct {
	Verbose bool
}

// REPL drives one fixture at a time through internal/pipeline.
type REPL struct {
	config    Config
	version   string
	buildTime string
	lastRun   *pipeline.Result
}

// New returns a REPL with no version information.
func New() *REPL { return NewWithVersion("", "") }

// NewWithVersion returns a REPL reporting the given version/build time in
// its welcome banner.
func NewWithVersion(version, buildTime string) *REPL {
	if version == "" {
		version = "dev"
	}
	if buildTime == "" {
		buildTime = "unknown"
	}
	return &REPL{version: version, buildTime: buildTime}
}

// EnableTrace turns on verbose phase output.
func (r *REPL) EnableTrace() { r.config.Verbose = true }

func (r *REPL) prompt() string { return "babelc> " }

// Start begins the REPL session, reading commands from in and writing
// output to out until EOF or a :quit command.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".babelc_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s %s\n", bold("babelc"), bold(r.version))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(input string) (c []string) {
		if !strings.HasPrefix(input, ":") {
			return nil
		}
		for _, cmd := range commandNames() {
			if strings.HasPrefix(cmd, input) {
				c = append(c, cmd)
			}
		}
		return c
	})

	for {
		input, err := line.Prompt(r.prompt())
		if err == io.EOF {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if input == ":quit" || input == ":q" || input == ":exit" {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}

		if strings.HasPrefix(input, ":") {
			r.handleCommand(input, out)
			continue
		}

		fmt.Fprintf(out, "%s: unrecognized input %q (expected a :command — try :list or :help)\n", yellow("note"), input)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func defaultPipelineConfig(outputDir string) pipeline.Config {
	return pipeline.Config{
		Backend:   backend.NewObjWriter(),
		LinkerCfg: config.Default().Linker,
		OutputDir: outputDir,
		SkipLink:  true,
	}
}
