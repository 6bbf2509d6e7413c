// Package config loads the pipeline's YAML configuration file, grounded on
// the teacher's eval_harness.BenchmarkSpec: a plain YAML-tagged struct plus
// a LoadXxx(path) function reading and unmarshaling it with gopkg.in/yaml.v3.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BackendKind names which CodeGenerator implementation internal/backend
// should construct.
type BackendKind string

const (
	BackendObject BackendKind = "object"
)

// PipelineConfig is babelc.yaml's shape: which backend to emit, where to
// write object files, and what system linker invocation produces the final
// executable (spec.md §6's "Backend (downstream collaborator)" and
// "CLI/orchestration" contracts).
type PipelineConfig struct {
	Backend   BackendKind `yaml:"backend"`
	OutputDir string      `yaml:"output_dir"`
	Linker    LinkerConfig `yaml:"linker"`
}

// LinkerConfig configures the external system linker process.
type LinkerConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Output  string   `yaml:"output"`
}

// Default returns the configuration used when no babelc.yaml is present.
func Default() *PipelineConfig {
	return &PipelineConfig{
		Backend:   BackendObject,
		OutputDir: "build",
		Linker: LinkerConfig{
			Command: "cc",
			Output:  "a.out",
		},
	}
}

// Load reads and parses a babelc.yaml configuration file, filling in
// defaults for any field the file leaves unset.
func Load(path string) (*PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects a configuration with an unrecognized backend kind or
// empty linker command.
func (c *PipelineConfig) Validate() error {
	switch c.Backend {
	case BackendObject:
	default:
		return fmt.Errorf("unsupported backend %q", c.Backend)
	}
	if c.Linker.Command == "" {
		return fmt.Errorf("linker.command must not be empty")
	}
	return nil
}
