package semantics

import (
	"loom/compiler-go/pkg/ast"
	"loom/compiler-go/pkg/types"
)

type scopeKind int

const (
	scopeFunction scopeKind = iota
	scopeLoop
	scopeTransaction
)

// analysisContext carries the per-invokable state of one traversal. Each
// function body, worker body, and lambda body gets a fresh context so that
// loop and transaction nesting never bleeds across invokable boundaries.
type analysisContext struct {
	loopDepth        int
	transactionDepth int
	inTxnHandler     bool

	// exitStack mirrors the lexical nesting of loops and transactions,
	// bottommost entry always scopeFunction.
	exitStack []scopeKind

	// returnedErrors accumulates the error-shaped types observed at
	// return sites and check expressions, in source order. Worker message
	// result types fold these in.
	returnedErrors []types.Type

	// sawReturn is set once a return statement has been visited anywhere
	// in the body; later worker interactions report after-return errors.
	sawReturn bool

	// uninitialized tracks locally declared names that have no value yet.
	uninitialized map[string]bool

	// machine is the worker machine collecting send/receive actions for
	// this body, nil when the enclosing invokable declares no workers.
	machine *workerMachine

	// system is the action system owning all machines of the enclosing
	// invokable, shared between the default context and worker contexts.
	system *workerActionSystem
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		exitStack:     []scopeKind{scopeFunction},
		uninitialized: make(map[string]bool),
	}
}

func (c *analysisContext) pushScope(k scopeKind) {
	c.exitStack = append(c.exitStack, k)
	switch k {
	case scopeLoop:
		c.loopDepth++
	case scopeTransaction:
		c.transactionDepth++
	}
}

func (c *analysisContext) popScope() {
	if len(c.exitStack) <= 1 {
		panic("semantics: exit scope stack underflow")
	}
	switch c.exitStack[len(c.exitStack)-1] {
	case scopeLoop:
		c.loopDepth--
	case scopeTransaction:
		c.transactionDepth--
	}
	c.exitStack = c.exitStack[:len(c.exitStack)-1]
}

// checkBreakOrContinue walks the scope stack from the innermost entry out.
// Hitting a loop before any transaction makes the exit legal; hitting a
// transaction first means the exit would tear the transaction open, and
// hitting the function bottom means there is no loop at all.
func (a *Analyzer) checkBreakOrContinue(c *analysisContext, node ast.Node, keyword string) {
	for i := len(c.exitStack) - 1; i >= 0; i-- {
		switch c.exitStack[i] {
		case scopeLoop:
			return
		case scopeTransaction:
			a.errorf(CodeBreakContinueCrossesTransaction, node,
				"semantics: %s statement cannot transfer control out of a transaction", keyword)
			return
		case scopeFunction:
			a.errorf(CodeLoopExitOutsideLoop, node,
				"semantics: %s statement is only allowed inside a loop", keyword)
			return
		}
	}
}

// checkReturn walks the scope stack outward past any loops. A transaction
// anywhere between the return and the function boundary makes the return
// illegal; reaching the function bottom makes it legal.
func (a *Analyzer) checkReturn(c *analysisContext, node ast.Node) {
	for i := len(c.exitStack) - 1; i >= 0; i-- {
		switch c.exitStack[i] {
		case scopeTransaction:
			a.errorf(CodeReturnCrossesTransaction, node,
				"semantics: return statement cannot transfer control out of a transaction")
			return
		case scopeFunction:
			return
		}
	}
}

func (a *Analyzer) checkAbortOrRetry(c *analysisContext, node ast.Node, keyword string) {
	if c.transactionDepth == 0 {
		a.errorf(CodeAbortRetryOutsideTransaction, node,
			"semantics: %s statement is only allowed inside a transaction", keyword)
	}
}
