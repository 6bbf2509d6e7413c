// Package backend defines the contract spec.md §6 fixes for the
// downstream collaborator: something that consumes IR3 (monoir) modules
// and emits one object file per module, ready for the system linker.
// CodeGenerator is the seam a real machine-code emitter would implement;
// ObjWriter is the one concrete implementation this repository ships, an
// intermediate object format serialized with the teacher's YAML stack
// rather than a real object-file format.
package backend

import (
	"fmt"

	"github.com/babelc/babelc/internal/diag"
	"github.com/babelc/babelc/internal/monoir"
)

// CodeGenerator emits one object file per module and returns the paths it
// wrote, in module order.
type CodeGenerator interface {
	Emit(modules []*monoir.Module, outputDir string) ([]string, error)
}

// ensure ObjWriter satisfies CodeGenerator at compile time.
var _ CodeGenerator = (*ObjWriter)(nil)

// ObjWriter emits each module as a flat YAML object record (ObjectFile):
// this repository's stand-in machine-code emitter, named per spec.md §6's
// "emits one object file per module" contract.
type ObjWriter struct{}

// NewObjWriter returns the default ObjWriter.
func NewObjWriter() *ObjWriter { return &ObjWriter{} }

func (w *ObjWriter) Emit(modules []*monoir.Module, outputDir string) ([]string, error) {
	paths := make([]string, 0, len(modules))
	for _, m := range modules {
		obj, err := toObjectFile(m)
		if err != nil {
			return nil, err
		}
		path, err := writeObjectFile(outputDir, obj)
		if err != nil {
			return nil, diag.Newf(diag.BKD001, diag.PhaseBackend, "%v", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func toObjectFile(m *monoir.Module) (*ObjectFile, error) {
	obj := &ObjectFile{Name: m.Name()}
	for _, e := range m.Externs() {
		ty, err := typeName(e.Ty)
		if err != nil {
			return nil, err
		}
		obj.Externs = append(obj.Externs, Extern{Name: e.Name, Type: ty})
	}
	for _, f := range m.Funcs() {
		ty, err := typeName(funcType(f))
		if err != nil {
			return nil, err
		}
		obj.Funcs = append(obj.Funcs, Func{Name: f.Name.Name, Type: ty, Body: f.Body.String()})
	}
	return obj, nil
}

func funcType(f monoir.Func) monoir.Type { return f.Name.Ty }

func typeName(t monoir.Type) (string, error) {
	if t == nil {
		return "", fmt.Errorf("backend: nil type")
	}
	return t.String(), nil
}
