package backend

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ObjectFile is this backend's serialized object format: a flat record of
// a module's external declarations and function bodies, grounded on the
// teacher's yaml.v3-tagged BenchmarkSpec shape rather than any real
// platform object-file layout (ELF/Mach-O emission is out of scope per
// spec.md §6 — the backend is a fixed downstream contract, not something
// this repository implements for real).
type ObjectFile struct {
	Name    string   `yaml:"name"`
	Externs []Extern `yaml:"externs,omitempty"`
	Funcs   []Func   `yaml:"funcs"`
}

// Extern is one external function declaration's object-format record.
type Extern struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Func is one function's object-format record: its mangled name, lowered
// function type, and a printable rendering of its body (a real emitter
// would instead hold machine code here).
type Func struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Body string `yaml:"body"`
}

func writeObjectFile(outputDir string, obj *ObjectFile) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("backend: failed to create output dir %s: %w", outputDir, err)
	}
	data, err := yaml.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("backend: failed to marshal object file for %s: %w", obj.Name, err)
	}
	path := filepath.Join(outputDir, obj.Name+".obj.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("backend: failed to write %s: %w", path, err)
	}
	return path, nil
}

// ReadObjectFile loads a previously written object file back into an
// ObjectFile. The linker does not call it; it hands the written paths
// straight to the system linker.
func ReadObjectFile(path string) (*ObjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("backend: failed to read %s: %w", path, err)
	}
	var obj ObjectFile
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("backend: failed to parse %s: %w", path, err)
	}
	return &obj, nil
}
