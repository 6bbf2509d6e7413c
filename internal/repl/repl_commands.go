package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/babelc/babelc/internal/testsupport"
)

type command struct {
	names []string
	usage string
	run   func(r *REPL, args []string, out io.Writer)
}

var commands = []command{
	{[]string{":help", ":h"}, ":help", func(r *REPL, _ []string, out io.Writer) { r.printHelp(out) }},
	{[]string{":list", ":l"}, ":list", func(r *REPL, _ []string, out io.Writer) { r.listFixtures(out) }},
	{[]string{":run", ":r"}, ":run <fixture>", func(r *REPL, args []string, out io.Writer) { r.runFixture(args, out) }},
	{[]string{":dump-xir"}, ":dump-xir <fixture>", func(r *REPL, args []string, out io.Writer) { r.dumpXIR(args, out) }},
	{[]string{":dump-mono"}, ":dump-mono <fixture>", func(r *REPL, args []string, out io.Writer) { r.dumpMonoIR(args, out) }},
	{[]string{":timings"}, ":timings", func(r *REPL, _ []string, out io.Writer) { r.showTimings(out) }},
}

func commandNames() []string {
	var names []string
	for _, c := range commands {
		names = append(names, c.names...)
	}
	return names
}

// handleCommand dispatches a `:`-prefixed line to its command.
func (r *REPL) handleCommand(line string, out io.Writer) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	for _, c := range commands {
		for _, name := range c.names {
			if name == parts[0] {
				c.run(r, parts[1:], out)
				return
			}
		}
	}
	fmt.Fprintf(out, "%s: unknown command %q (try :help)\n", red("Error"), parts[0])
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, bold("Commands:"))
	for _, c := range commands {
		fmt.Fprintf(out, "  %-24s\n", c.usage)
	}
	fmt.Fprintln(out, dim("\nRun `:list` to see the fixtures :run/:dump-xir/:dump-mono accept."))
}

func (r *REPL) listFixtures(out io.Writer) {
	for _, f := range testsupport.List() {
		fmt.Fprintf(out, "  %-16s %s\n", bold(f.Name), f.Description)
	}
}

func (r *REPL) fixtureModule(args []string, out io.Writer) (string, bool) {
	if len(args) != 1 {
		fmt.Fprintln(out, yellow("usage: expects exactly one fixture name; try :list"))
		return "", false
	}
	return args[0], true
}
