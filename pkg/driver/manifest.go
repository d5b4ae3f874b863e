// Package driver loads Loom build manifests and decorated module files and
// feeds them through the semantic analysis pass.
package driver

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the manifest file the driver looks for in a project
// root.
const ManifestFileName = "loom.yaml"

// Manifest describes one Loom project: its identity and the decorated
// module files to analyze.
type Manifest struct {
	Name    string           `yaml:"name"`
	Version string           `yaml:"version,omitempty"`
	Modules []ManifestModule `yaml:"modules"`
	Options AnalysisOptions  `yaml:"analysis,omitempty"`
}

// ManifestModule names one module and the decorated AST file holding it,
// relative to the manifest.
type ManifestModule struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// AnalysisOptions tunes how diagnostics are treated.
type AnalysisOptions struct {
	WarningsAsErrors bool `yaml:"warnings_as_errors,omitempty"`
}

// LoadManifest reads and validates a manifest file. Unknown keys are
// rejected so typos fail loudly instead of being ignored.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("driver: read manifest: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var manifest Manifest
	if err := decoder.Decode(&manifest); err != nil {
		return nil, fmt.Errorf("driver: parse manifest %s: %w", path, err)
	}
	if err := manifest.validate(); err != nil {
		return nil, fmt.Errorf("driver: manifest %s: %w", path, err)
	}
	return &manifest, nil
}

func (m *Manifest) validate() error {
	if m.Name == "" {
		return fmt.Errorf("missing project name")
	}
	if len(m.Modules) == 0 {
		return fmt.Errorf("no modules declared")
	}
	seen := make(map[string]bool, len(m.Modules))
	for _, entry := range m.Modules {
		if entry.Name == "" {
			return fmt.Errorf("module entry without a name")
		}
		if entry.File == "" {
			return fmt.Errorf("module %q has no file", entry.Name)
		}
		if seen[entry.Name] {
			return fmt.Errorf("module %q declared twice", entry.Name)
		}
		seen[entry.Name] = true
	}
	return nil
}
