package semantics

import (
	"testing"

	"loom/compiler-go/pkg/ast"
)

func TestBreakInsideLoopIsLegal(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Wloop(ast.Bool(true), ast.Brk()),
	)
	expectNone(t, analyzeFn(t, fn))
}

func TestBreakOutsideLoop(t *testing.T) {
	fn := ast.Fn("f", nil, nil, ast.Brk())
	expectCodes(t, analyzeFn(t, fn), CodeLoopExitOutsideLoop)
}

func TestContinueOutsideLoop(t *testing.T) {
	fn := ast.Fn("f", nil, nil, ast.Cont())
	expectCodes(t, analyzeFn(t, fn), CodeLoopExitOutsideLoop)
}

func TestBreakInsideLoopInsideTransactionIsLegal(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Txn(
			ast.Wloop(ast.Bool(true), ast.Brk()),
		),
	)
	expectNone(t, analyzeFn(t, fn))
}

func TestBreakInsideTransactionInsideLoopCrossesTransaction(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Wloop(ast.Bool(true),
			ast.Txn(ast.Brk()),
		),
	)
	expectCodes(t, analyzeFn(t, fn), CodeBreakContinueCrossesTransaction)
}

func TestBreakDirectlyInsideTransactionCrossesTransaction(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Txn(ast.Brk()),
	)
	expectCodes(t, analyzeFn(t, fn), CodeBreakContinueCrossesTransaction)
}

func TestReturnInsideTransactionCrossesTransaction(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Txn(ast.Ret(nil)),
	)
	expectCodes(t, analyzeFn(t, fn), CodeReturnCrossesTransaction)
}

func TestReturnSkipsLoopsButNotTransactions(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Txn(
			ast.Wloop(ast.Bool(true), ast.Ret(nil)),
		),
	)
	expectCodes(t, analyzeFn(t, fn), CodeReturnCrossesTransaction)
}

func TestReturnInsideLoopIsLegal(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Wloop(ast.Bool(true), ast.Ret(nil)),
	)
	expectNone(t, analyzeFn(t, fn))
}

func TestAbortOutsideTransaction(t *testing.T) {
	fn := ast.Fn("f", nil, nil, ast.Abort())
	expectCodes(t, analyzeFn(t, fn), CodeAbortRetryOutsideTransaction)
}

func TestRetryOutsideTransaction(t *testing.T) {
	fn := ast.Fn("f", nil, nil, ast.Retry())
	expectCodes(t, analyzeFn(t, fn), CodeAbortRetryOutsideTransaction)
}

func TestAbortInsideTransactionIsLegal(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Txn(ast.Abort()),
	)
	expectNone(t, analyzeFn(t, fn))
}

func TestNestedTransactionsAreInvalid(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Txn(ast.Txn()),
	)
	expectCodes(t, analyzeFn(t, fn), CodeNestedTransactionsInvalid)
}

func TestTransactionInsideRetryHandler(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.TxnFull(
			ast.Blk(ast.ExprStmt(ast.Call("work"))),
			ast.Blk(ast.Txn()),
			nil,
			nil,
		),
	)
	expectCodes(t, analyzeFn(t, fn), CodeTransactionInsideHandler)
}

func TestAbortInsideRetryHandlerIsLegal(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.TxnFull(
			ast.Blk(ast.ExprStmt(ast.Call("work"))),
			ast.Blk(ast.Abort()),
			nil,
			nil,
		),
	)
	expectNone(t, analyzeFn(t, fn))
}

func TestLambdaGetsItsOwnExitScopes(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Wloop(ast.Bool(true),
			ast.Decl("g", nil, ast.Lam(nil, nil, ast.Brk())),
		),
	)
	expectCodes(t, analyzeFn(t, fn), CodeLoopExitOutsideLoop)
}
