package link

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/babelc/babelc/internal/config"
)

func TestLinkInvokesConfiguredCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test script assumes a POSIX shell")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "fake-ld")
	objPath := filepath.Join(dir, "main.obj.yaml")
	if err := os.WriteFile(objPath, []byte("name: main\n"), 0644); err != nil {
		t.Fatalf("write object file: %v", err)
	}

	// fake-ld writes its args to argsOut and touches whatever -o names.
	argsOut := filepath.Join(dir, "args.txt")
	scriptBody := "#!/bin/sh\necho \"$@\" > " + argsOut + "\nfor a in \"$@\"; do last=\"$a\"; done\ntouch \"$last\"\n"
	if err := os.WriteFile(script, []byte(scriptBody), 0755); err != nil {
		t.Fatalf("write fake linker: %v", err)
	}

	out := filepath.Join(dir, "a.out")
	l := New(config.LinkerConfig{Command: script, Output: out})

	result, err := l.Link([]string{objPath}, Options{})
	if err != nil {
		t.Fatalf("Link error = %v", err)
	}
	if result.Output != out {
		t.Fatalf("expected output %s, got %s", out, result.Output)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected linker to produce %s: %v", out, err)
	}
}

func TestLinkRejectsMissingCommand(t *testing.T) {
	l := New(config.LinkerConfig{})
	if _, err := l.Link([]string{"a.obj.yaml"}, Options{}); err == nil {
		t.Fatal("expected an error for an empty linker command")
	}
}

func TestLinkRejectsNoObjectFiles(t *testing.T) {
	l := New(config.LinkerConfig{Command: "cc"})
	if _, err := l.Link(nil, Options{}); err == nil {
		t.Fatal("expected an error when no object files are given")
	}
}

func TestLinkReportsProcessFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test script assumes a POSIX shell")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "failing-ld")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho boom >&2\nexit 1\n"), 0755); err != nil {
		t.Fatalf("write failing linker: %v", err)
	}

	l := New(config.LinkerConfig{Command: script})
	if _, err := l.Link([]string{"a.obj.yaml"}, Options{}); err == nil {
		t.Fatal("expected an error when the linker process exits non-zero")
	}
}
