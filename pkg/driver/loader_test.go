package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"loom/compiler-go/pkg/ast"
	"loom/compiler-go/pkg/semantics"
	"loom/compiler-go/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeModuleFile(t *testing.T, dir, name string, mod *ast.Module) {
	t.Helper()
	data, err := ast.EncodeModule(mod)
	if err != nil {
		t.Fatalf("encode module: %v", err)
	}
	writeFile(t, dir, name, string(data))
}

func sampleModule(name string) *ast.Module {
	fn := ast.Fn("main", nil, nil,
		ast.Ret(nil),
		ast.ExprStmt(ast.Call("dead")),
	)
	return ast.Mod(name, fn)
}

func TestLoadProgramAndAnalyze(t *testing.T) {
	dir := t.TempDir()
	writeModuleFile(t, dir, "main.ast.json", sampleModule("app"))
	writeFile(t, dir, ManifestFileName, strings.Join([]string{
		"name: demo",
		"version: 0.1.0",
		"modules:",
		"  - name: app",
		"    file: main.ast.json",
	}, "\n"))

	program, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(program.Modules) != 1 || program.Modules[0].Name != "app" {
		t.Fatalf("expected one module app, got %v", program.Modules)
	}

	result, err := AnalyzeModule(program.Modules[0])
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != semantics.CodeUnreachableCode {
		t.Fatalf("expected one unreachable-code diagnostic, got %v", result.Diagnostics)
	}
	if !result.Failed(AnalysisOptions{}) {
		t.Fatalf("expected result to fail the build")
	}
}

func TestManifestRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFileName, strings.Join([]string{
		"name: demo",
		"modules:",
		"  - name: app",
		"    file: main.ast.json",
		"color: blue",
	}, "\n"))

	_, err := LoadManifest(filepath.Join(dir, ManifestFileName))
	if err == nil || !strings.Contains(err.Error(), "color") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestManifestRejectsDuplicateModules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFileName, strings.Join([]string{
		"name: demo",
		"modules:",
		"  - name: app",
		"    file: a.ast.json",
		"  - name: app",
		"    file: b.ast.json",
	}, "\n"))

	_, err := LoadManifest(filepath.Join(dir, ManifestFileName))
	if err == nil || !strings.Contains(err.Error(), "declared twice") {
		t.Fatalf("expected duplicate module error, got %v", err)
	}
}

func TestLoadRejectsModuleNameMismatch(t *testing.T) {
	dir := t.TempDir()
	writeModuleFile(t, dir, "main.ast.json", sampleModule("other"))
	writeFile(t, dir, ManifestFileName, strings.Join([]string{
		"name: demo",
		"modules:",
		"  - name: app",
		"    file: main.ast.json",
	}, "\n"))

	_, err := NewLoader(dir).Load()
	if err == nil || !strings.Contains(err.Error(), "declares") {
		t.Fatalf("expected name mismatch error, got %v", err)
	}
}

func TestWarningsAsErrorsFailTheBuild(t *testing.T) {
	fn := ast.Fn("main", nil, nil,
		ast.Match(ast.Typed(ast.ID("x"), types.Int),
			ast.Clause(ast.ID("anything"), ast.ExprStmt(ast.Call("all"))),
		),
	)
	module := &Module{Name: "app", AST: ast.Mod("app", fn)}
	result, err := AnalyzeModule(module)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Failed(AnalysisOptions{}) {
		t.Fatalf("warnings alone should not fail the build by default")
	}
	if !result.Failed(AnalysisOptions{WarningsAsErrors: true}) {
		t.Fatalf("expected warnings-as-errors to fail the build")
	}
}

func TestDescribeIncludesPositionAndCode(t *testing.T) {
	stmt := ast.Ret(nil)
	ast.At(stmt, 7, 3)
	d := semantics.Diagnostic{
		Code:     semantics.CodeUnreachableCode,
		Severity: semantics.SeverityError,
		Message:  "semantics: unreachable code",
		Node:     stmt,
	}
	got := Describe("src/app.ast.json", d)
	want := "src/app.ast.json:7:3: error: semantics: unreachable code [UNREACHABLE_CODE]"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
