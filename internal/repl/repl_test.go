package repl

import (
	"bytes"
	"strings"
	"testing"
)

func TestHandleCommandListsFixtures(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.handleCommand(":list", &out)
	if !strings.Contains(out.String(), "identity") {
		t.Fatalf("expected :list to mention the identity fixture, got %q", out.String())
	}
}

func TestHandleCommandRunCompilesAFixture(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.handleCommand(":run identity", &out)
	if !strings.Contains(out.String(), "ok") {
		t.Fatalf("expected :run to report success, got %q", out.String())
	}
	if r.lastRun == nil {
		t.Fatal("expected :run to populate lastRun")
	}
}

func TestHandleCommandRunRejectsUnknownFixture(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.handleCommand(":run nope", &out)
	if !strings.Contains(out.String(), "Error") {
		t.Fatalf("expected an error for an unknown fixture, got %q", out.String())
	}
}

func TestHandleCommandDumpXIRPrintsDecls(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.handleCommand(":dump-xir identity", &out)
	if !strings.Contains(out.String(), "main") {
		t.Fatalf("expected dump-xir to mention the main function, got %q", out.String())
	}
}

func TestHandleCommandUnknownReportsError(t *testing.T) {
	r := New()
	var out bytes.Buffer
	r.handleCommand(":nonsense", &out)
	if !strings.Contains(out.String(), "unknown command") {
		t.Fatalf("expected an unknown-command message, got %q", out.String())
	}
}
