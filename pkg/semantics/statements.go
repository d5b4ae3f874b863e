package semantics

import (
	"loom/compiler-go/pkg/ast"
)

// analyzeBlock walks a statement list and reports unreachable statements.
// After the first unreachable statement is reported the tracker resets, so
// a run of dead statements produces exactly one diagnostic. The return
// value reports whether execution definitely cannot fall off the end of
// the block.
func (a *Analyzer) analyzeBlock(c *analysisContext, block *ast.Block, topLevel bool) bool {
	if block == nil {
		return false
	}
	terminated := false
	returns := false
	for _, stmt := range block.Statements {
		if terminated {
			a.errorf(CodeUnreachableCode, stmt, "semantics: unreachable code")
			terminated = false
		}
		if a.analyzeStatement(c, stmt, topLevel) {
			terminated = true
			returns = true
		}
	}
	return returns
}

// analyzeStatement validates one statement and reports whether control
// cannot flow past it to the next statement in sequence.
func (a *Analyzer) analyzeStatement(c *analysisContext, stmt ast.Statement, topLevel bool) bool {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		if s.Initializer != nil {
			a.analyzeExpr(c, s.Initializer, topLevel)
		} else if s.Name != nil {
			c.uninitialized[s.Name.Name] = true
		}
		return false

	case *ast.Assignment:
		a.analyzeExpr(c, s.Value, topLevel)
		if id, ok := s.Target.(*ast.Identifier); ok {
			delete(c.uninitialized, id.Name)
		} else {
			a.analyzeExpr(c, s.Target, false)
		}
		return false

	case *ast.ExpressionStatement:
		if !validExpressionStatement(s.Expr) {
			a.errorf(CodeInvalidExpressionStatement, s,
				"semantics: expression cannot be used as a statement")
		}
		a.analyzeExpr(c, s.Expr, topLevel)
		return false

	case *ast.IfStatement:
		a.analyzeExpr(c, s.Condition, false)
		thenReturns := a.analyzeBlock(c, s.Then, false)
		elseReturns := false
		if s.Else != nil {
			if blk, ok := s.Else.(*ast.Block); ok {
				elseReturns = a.analyzeBlock(c, blk, false)
			} else {
				elseReturns = a.analyzeStatement(c, s.Else, false)
			}
		}
		return s.Else != nil && thenReturns && elseReturns

	case *ast.WhileStatement:
		a.analyzeExpr(c, s.Condition, false)
		c.pushScope(scopeLoop)
		a.analyzeBlock(c, s.Body, false)
		c.popScope()
		return false

	case *ast.ForeachStatement:
		a.analyzeExpr(c, s.Iterable, false)
		c.pushScope(scopeLoop)
		a.analyzeBlock(c, s.Body, false)
		c.popScope()
		return false

	case *ast.MatchStatement:
		return a.analyzeMatchStatement(c, s)

	case *ast.TransactionStatement:
		a.analyzeTransaction(c, s)
		return false

	case *ast.ReturnStatement:
		a.checkReturn(c, s)
		if s.Value != nil {
			a.analyzeExpr(c, s.Value, false)
			a.foldReturnedErrors(c, s.Value)
		}
		if topLevel {
			// Only a return in the machine's own statement list makes
			// later sends and receives definitively dead; a branch
			// return merely folds its error types into later messages.
			c.sawReturn = true
		}
		return true

	case *ast.BreakStatement:
		a.checkBreakOrContinue(c, s, "break")
		return true

	case *ast.ContinueStatement:
		a.checkBreakOrContinue(c, s, "continue")
		return true

	case *ast.AbortStatement:
		a.checkAbortOrRetry(c, s, "abort")
		return true

	case *ast.RetryStatement:
		a.checkAbortOrRetry(c, s, "retry")
		return true

	case *ast.PanicStatement:
		a.analyzeExpr(c, s.Value, false)
		return true

	case *ast.SendStatement:
		a.analyzeExpr(c, s.Value, false)
		a.recordSend(c, actionSend, s.Target.Name, exprType(s.Value), s, topLevel)
		return false

	case *ast.WorkerDeclaration:
		a.analyzeWorker(c, s)
		return false

	case *ast.ForkStatement:
		for _, w := range s.Workers {
			a.analyzeWorker(c, w)
		}
		return false
	}
	return false
}

// analyzeTransaction validates nesting and handler placement, then walks the
// body and handlers inside the transaction scope.
func (a *Analyzer) analyzeTransaction(c *analysisContext, txn *ast.TransactionStatement) {
	if c.inTxnHandler {
		a.errorf(CodeTransactionInsideHandler, txn,
			"semantics: transaction cannot start inside a transaction handler")
	} else if c.transactionDepth > 0 {
		a.errorf(CodeNestedTransactionsInvalid, txn,
			"semantics: transactions cannot be nested")
	}

	c.pushScope(scopeTransaction)
	a.analyzeBlock(c, txn.Body, false)
	a.analyzeHandler(c, txn.OnRetry)
	a.analyzeHandler(c, txn.OnAbort)
	a.analyzeHandler(c, txn.OnCommit)
	c.popScope()
}

func (a *Analyzer) analyzeHandler(c *analysisContext, handler *ast.Block) {
	if handler == nil {
		return
	}
	wasHandler := c.inTxnHandler
	c.inTxnHandler = true
	a.analyzeBlock(c, handler, false)
	c.inTxnHandler = wasHandler
}

// validExpressionStatement reports whether an expression may stand alone as
// a statement: calls, checked calls, and worker interactions qualify.
func validExpressionStatement(e ast.Expression) bool {
	switch inner := e.(type) {
	case *ast.FunctionCall, *ast.SyncSendExpression, *ast.ReceiveExpression, *ast.FlushExpression:
		return true
	case *ast.CheckExpression:
		return validExpressionStatement(inner.Operand)
	}
	return false
}
