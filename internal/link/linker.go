// Package link invokes the external system linker spec.md §6 treats as a
// fixed downstream collaborator: it takes the object files internal/backend
// wrote and shells out to a linker binary (cc, ld, ...) to produce the final
// executable. The linking algorithm itself (symbol resolution across object
// files) is the linker binary's job, not this repository's; this package's
// job is only to invoke it correctly and report what it said.
package link

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/babelc/babelc/internal/config"
	"github.com/babelc/babelc/internal/diag"
)

// Options configures one link invocation, layered on top of the project's
// LinkerConfig so a caller can override the output path per build.
type Options struct {
	Verbose bool
	Output  string // overrides cfg.Output when non-empty
}

// Result reports what the linker process produced.
type Result struct {
	Output   string // path to the linked executable
	Warnings []string
	Stderr   string
}

// Linker runs a system linker process over a set of object files.
type Linker struct {
	cfg config.LinkerConfig
}

// New returns a Linker configured from the project's LinkerConfig.
func New(cfg config.LinkerConfig) *Linker {
	return &Linker{cfg: cfg}
}

// Link invokes the configured linker command over objectPaths and returns
// the path to the linked executable.
func (l *Linker) Link(objectPaths []string, opts Options) (*Result, error) {
	if l.cfg.Command == "" {
		return nil, diag.Newf(diag.LNK001, diag.PhaseLink, "no linker command configured")
	}
	if len(objectPaths) == 0 {
		return nil, diag.Newf(diag.LNK001, diag.PhaseLink, "no object files to link")
	}

	output := l.cfg.Output
	if opts.Output != "" {
		output = opts.Output
	}
	if output == "" {
		output = "a.out"
	}

	args := append([]string{}, l.cfg.Args...)
	args = append(args, objectPaths...)
	args = append(args, "-o", output)

	cmd := exec.Command(l.cfg.Command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if opts.Verbose {
		fmt.Printf("link: %s %v\n", l.cfg.Command, args)
	}

	if err := cmd.Run(); err != nil {
		return nil, diag.Newf(diag.LNK001, diag.PhaseLink, "%s failed: %v: %s",
			l.cfg.Command, err, stderr.String())
	}

	result := &Result{Output: output, Stderr: stderr.String()}
	if stderr.Len() > 0 {
		result.Warnings = append(result.Warnings, stderr.String())
	}
	return result, nil
}
