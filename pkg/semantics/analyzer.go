// Package semantics implements the post-type-checking validation pass: it
// walks decorated syntax trees and reports reachability violations, illegal
// control-flow exits across transactions, invalid worker message protocols,
// and unreachable or non-exhaustive match patterns. The pass never mutates
// the meaning of a program; it only appends diagnostics and writes derived
// annotations (worker channels, message result types, match clause flags)
// back onto the tree.
package semantics

import (
	"errors"

	"loom/compiler-go/pkg/ast"
	"loom/compiler-go/pkg/types"
)

// SymbolQuery resolves named types to their declaration symbols. The
// analyzer only consults it for visibility checks; a nil query disables
// them.
type SymbolQuery interface {
	TypeSymbol(name string) *types.Symbol
}

// Analyzer runs the semantic validation pass over decorated modules. The
// zero value is not usable; construct with New. An Analyzer may be reused
// across modules but not concurrently.
type Analyzer struct {
	sink    Sink
	symbols SymbolQuery
	module  string
}

func New() *Analyzer {
	return &Analyzer{}
}

// SetSymbolQuery installs the symbol resolver used for visibility checks.
func (a *Analyzer) SetSymbolQuery(q SymbolQuery) { a.symbols = q }

// AnalyzeModule validates every declaration of the module and returns the
// diagnostics in deterministic source order. Analysis is idempotent:
// repeated runs over the same tree yield the same diagnostics.
func (a *Analyzer) AnalyzeModule(mod *ast.Module) ([]Diagnostic, error) {
	if mod == nil {
		return nil, errors.New("semantics: module must not be nil")
	}
	sink := &ListSink{}
	a.sink = sink
	a.module = mod.Name
	for _, v := range mod.Variables {
		a.analyzeModuleVariable(v)
	}
	for _, fn := range mod.Functions {
		a.analyzeFunction(fn)
	}
	a.sink = nil
	return sink.Diagnostics, nil
}

func (a *Analyzer) analyzeModuleVariable(v *ast.VariableDeclaration) {
	if v == nil {
		return
	}
	if v.Initializer == nil && !v.Symbol.IsListener() {
		a.errorf(CodeUninitializedVariable, v,
			"semantics: module-level variable %q must be initialized", v.Name.Name)
		return
	}
	if v.Initializer != nil {
		c := newAnalysisContext()
		a.analyzeExpr(c, v.Initializer, false)
	}
}

func (a *Analyzer) analyzeFunction(fn *ast.FunctionDeclaration) {
	if fn == nil || fn.Body == nil {
		return
	}
	a.checkExposure(fn)

	c := newAnalysisContext()
	if declaresWorkers(fn.Body) {
		c.system = newWorkerActionSystem(fn)
		c.machine = c.system.defaultMachine()
		a.declareWorkers(c.system, fn.Body)
	}

	returns := a.analyzeBlock(c, fn.Body, true)

	if c.system != nil {
		a.validateWorkerSystem(c.system)
		fn.Channels = c.system.channels
	}
	if mustReturn(fn.ReturnType) && !returns {
		a.errorf(CodeMustReturn, fn,
			"semantics: function %q must return a value on every path", fn.Name.Name)
	}
}

func (a *Analyzer) analyzeLambda(lam *ast.LambdaExpression) {
	if lam.Body == nil {
		return
	}
	c := newAnalysisContext()
	if declaresWorkers(lam.Body) {
		c.system = newWorkerActionSystem(lam)
		c.machine = c.system.defaultMachine()
		a.declareWorkers(c.system, lam.Body)
	}

	returns := a.analyzeBlock(c, lam.Body, true)

	if c.system != nil {
		a.validateWorkerSystem(c.system)
		lam.Channels = c.system.channels
	}
	if mustReturn(lam.ReturnType) && !returns {
		a.errorf(CodeMustReturn, lam,
			"semantics: anonymous function must return a value on every path")
	}
}

func (a *Analyzer) analyzeWorker(parent *analysisContext, w *ast.WorkerDeclaration) {
	if w.Body == nil {
		return
	}
	c := newAnalysisContext()
	c.system = parent.system
	if c.system != nil {
		c.machine = c.system.machine(w.Name.Name)
	}

	returns := a.analyzeBlock(c, w.Body, true)

	if mustReturn(w.ReturnType) && !returns {
		a.errorf(CodeMustReturn, w,
			"semantics: worker %q must return a value on every path", w.Name.Name)
	}
}

// mustReturn reports whether a declared return type obliges every path
// through the body to return a value. A nil-admitting return type does
// not: falling off the end implicitly produces nil.
func mustReturn(t types.Type) bool {
	return t != nil && !types.IsInvalid(t) && !types.ContainsNil(t)
}

// declaresWorkers reports whether the top-level statement list declares any
// worker, directly or through a fork.
func declaresWorkers(body *ast.Block) bool {
	for _, stmt := range body.Statements {
		switch stmt.(type) {
		case *ast.WorkerDeclaration, *ast.ForkStatement:
			return true
		}
	}
	return false
}

// declareWorkers registers a machine for every worker declared in the
// top-level statement list, in declaration order, before any action is
// recorded. Sends may therefore reference workers declared later in the
// body.
func (a *Analyzer) declareWorkers(sys *workerActionSystem, body *ast.Block) {
	for _, stmt := range body.Statements {
		switch s := stmt.(type) {
		case *ast.WorkerDeclaration:
			sys.declare(s.Name.Name, s)
		case *ast.ForkStatement:
			for _, w := range s.Workers {
				sys.declare(w.Name.Name, w)
			}
		}
	}
}

// checkExposure reports public declarations whose signature mentions
// module-local types that are not themselves public.
func (a *Analyzer) checkExposure(fn *ast.FunctionDeclaration) {
	if a.symbols == nil || !fn.Symbol.IsPublic() {
		return
	}
	for _, p := range fn.Params {
		a.checkExposedType(fn, p.Typ)
	}
	a.checkExposedType(fn, fn.ReturnType)
}

func (a *Analyzer) checkExposedType(fn *ast.FunctionDeclaration, t types.Type) {
	name := namedTypeName(t)
	if name == "" {
		return
	}
	sym := a.symbols.TypeSymbol(name)
	if sym != nil && !sym.IsPublic() {
		a.errorf(CodeAttemptExposeNonPublicSymbol, fn,
			"semantics: public function %q exposes non-public type %q", fn.Name.Name, name)
	}
}

func namedTypeName(t types.Type) string {
	switch n := t.(type) {
	case types.RecordType:
		return n.RecordName
	case types.ObjectType:
		return n.ObjectName
	}
	return ""
}
