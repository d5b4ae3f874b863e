package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"loom/compiler-go/pkg/ast"
	"loom/compiler-go/pkg/semantics"
)

// Module is one loaded, decorated Loom module.
type Module struct {
	Name string
	Path string
	AST  *ast.Module
}

// Program is the full set of modules named by a manifest, in manifest
// order.
type Program struct {
	Manifest *Manifest
	Modules  []*Module
}

// Loader resolves manifest entries to decorated module files on disk.
type Loader struct {
	baseDir string
}

// NewLoader constructs a loader resolving module files relative to baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{baseDir: baseDir}
}

// Load reads the manifest in the loader's base directory and every module
// it names.
func (l *Loader) Load() (*Program, error) {
	manifest, err := LoadManifest(filepath.Join(l.baseDir, ManifestFileName))
	if err != nil {
		return nil, err
	}
	program := &Program{Manifest: manifest}
	for _, entry := range manifest.Modules {
		module, err := l.loadModule(entry)
		if err != nil {
			return nil, err
		}
		program.Modules = append(program.Modules, module)
	}
	return program, nil
}

func (l *Loader) loadModule(entry ManifestModule) (*Module, error) {
	path := entry.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("driver: read module %q: %w", entry.Name, err)
	}
	mod, err := ast.DecodeModule(data)
	if err != nil {
		return nil, fmt.Errorf("driver: module %q: %w", entry.Name, err)
	}
	if mod.Name != entry.Name {
		return nil, fmt.Errorf("driver: module file %s declares %q, manifest expects %q",
			path, mod.Name, entry.Name)
	}
	return &Module{Name: entry.Name, Path: path, AST: mod}, nil
}

// Result pairs a module with the diagnostics the analysis pass produced
// for it.
type Result struct {
	Module      *Module
	Diagnostics []semantics.Diagnostic
}

// Failed reports whether the result should fail the build under the given
// options.
func (r *Result) Failed(opts AnalysisOptions) bool {
	for _, d := range r.Diagnostics {
		if d.Severity == semantics.SeverityError {
			return true
		}
		if opts.WarningsAsErrors && d.Severity == semantics.SeverityWarning {
			return true
		}
	}
	return false
}

// AnalyzeModule runs the semantic pass over one loaded module.
func AnalyzeModule(module *Module) (*Result, error) {
	diags, err := semantics.New().AnalyzeModule(module.AST)
	if err != nil {
		return nil, fmt.Errorf("driver: analyze module %q: %w", module.Name, err)
	}
	return &Result{Module: module, Diagnostics: diags}, nil
}
