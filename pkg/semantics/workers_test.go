package semantics

import (
	"strings"
	"testing"

	"loom/compiler-go/pkg/ast"
	"loom/compiler-go/pkg/types"
)

func TestSendAndReceivePairAcrossWorkers(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil,
			ast.Send(ast.Int(1), "function"),
		),
		ast.Decl("x", types.Int, ast.Recv("w")),
	)
	expectNone(t, analyzeFn(t, fn))
}

func TestPairedWorkersRecordChannelEdges(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil,
			ast.Send(ast.Int(1), "function"),
		),
		ast.Decl("x", types.Int, ast.Recv("w")),
	)
	expectNone(t, analyzeFn(t, fn))
	if len(fn.Channels) != 1 || fn.Channels[0] != "w->function" {
		t.Fatalf("expected channel edge w->function, got %v", fn.Channels)
	}
}

func TestWorkerToWorkerPairing(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w1", nil,
			ast.Send(ast.Int(1), "w2"),
		),
		ast.Worker("w2", nil,
			ast.Decl("x", types.Int, ast.Recv("w1")),
		),
	)
	expectNone(t, analyzeFn(t, fn))
}

func TestUnmatchedSendIsInvalidInteraction(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil,
			ast.Send(ast.Int(1), "function"),
		),
	)
	diags := analyzeFn(t, fn)
	expectCodes(t, diags, CodeInvalidWorkerInteraction)
}

func TestMutualReceivesDeadlock(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w1", nil,
			ast.Decl("a", nil, ast.Recv("w2")),
		),
		ast.Worker("w2", nil,
			ast.Decl("b", nil, ast.Recv("w1")),
		),
	)
	diags := analyzeFn(t, fn)
	expectCodes(t, diags, CodeInvalidWorkerInteraction)
	if !strings.Contains(diags[0].Message, "w1") || !strings.Contains(diags[0].Message, "w2") {
		t.Fatalf("expected pending sequences of both workers, got %q", diags[0].Message)
	}
}

func TestSendToUndefinedWorker(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil),
		ast.Send(ast.Int(1), "nope"),
	)
	diags := analyzeFn(t, fn)
	if !hasCode(diags, CodeUndefinedWorker) {
		t.Fatalf("expected undefined worker diagnostic, got %v", diags)
	}
}

func TestSendBelowTopLevelIsRejected(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil,
			ast.Decl("x", nil, ast.Recv("function")),
		),
		ast.Iff(ast.Bool(true),
			ast.Send(ast.Int(1), "w"),
		),
	)
	diags := analyzeFn(t, fn)
	if !hasCode(diags, CodeInvalidWorkerSendPosition) {
		t.Fatalf("expected send position diagnostic, got %v", diags)
	}
}

func TestReceiveBelowTopLevelIsRejected(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil,
			ast.Send(ast.Int(1), "function"),
		),
		ast.Iff(ast.Bool(true),
			ast.Decl("x", nil, ast.Recv("w")),
		),
	)
	diags := analyzeFn(t, fn)
	if !hasCode(diags, CodeInvalidWorkerReceivePosition) {
		t.Fatalf("expected receive position diagnostic, got %v", diags)
	}
}

func TestSendAfterReturnIsRejected(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil,
			ast.Ret(nil),
			ast.Send(ast.Int(1), "function"),
		),
	)
	diags := analyzeFn(t, fn)
	if !hasCode(diags, CodeWorkerSendAfterReturn) {
		t.Fatalf("expected send-after-return diagnostic, got %v", diags)
	}
}

func TestFlushWithoutPrecedingSend(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil),
		ast.ExprStmt(ast.FlushAll()),
	)
	diags := analyzeFn(t, fn)
	if !hasCode(diags, CodeInvalidWorkerFlush) {
		t.Fatalf("expected flush diagnostic, got %v", diags)
	}
}

func TestFlushAfterSendIsLegal(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil,
			ast.Decl("x", types.Int, ast.Recv("function")),
		),
		ast.Send(ast.Int(1), "w"),
		ast.ExprStmt(ast.Flush("w")),
	)
	expectNone(t, analyzeFn(t, fn))
}

func TestSyncSendResolvesToNilOnSuccess(t *testing.T) {
	syncSend := ast.SyncSend(ast.Int(1), "w")
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil,
			ast.Decl("x", types.Int, ast.Recv("function")),
		),
		ast.ExprStmt(syncSend),
	)
	expectNone(t, analyzeFn(t, fn))
	if syncSend.ResultType == nil || syncSend.ResultType.Name() != "nil" {
		t.Fatalf("expected sync send result type nil, got %v", syncSend.ResultType)
	}
}

func TestSendFoldsAccumulatedErrorsIntoReceiveType(t *testing.T) {
	recv := ast.Recv("w")
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil,
			ast.Iff(ast.Bool(true),
				ast.Ret(ast.Typed(ast.Call("fail"), types.ErrorType{})),
			),
			ast.Send(ast.Int(1), "function"),
		),
		ast.Decl("x", nil, recv),
	)
	expectNone(t, analyzeFn(t, fn))
	if recv.ResultType == nil || recv.ResultType.Name() != "int|error" {
		t.Fatalf("expected receive type int|error, got %v", recv.ResultType)
	}
}

func TestIncompatibleMessageTypes(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil,
			ast.Send(ast.Str("oops"), "function"),
		),
		ast.Decl("x", types.Int, ast.RecvTyped("w", types.Int)),
	)
	diags := analyzeFn(t, fn)
	expectCodes(t, diags, CodeWorkerMessageTypeMismatch)
}

func TestForkWorkersJoinTheSystem(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Fork(
			ast.Worker("w1", nil,
				ast.Send(ast.Int(1), "function"),
			),
		),
		ast.Decl("x", types.Int, ast.Recv("w1")),
	)
	expectNone(t, analyzeFn(t, fn))
}

func TestLambdaWorkersAreIsolatedFromEnclosingFunction(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil,
			ast.Send(ast.Int(1), "function"),
		),
		ast.Decl("x", types.Int, ast.Recv("w")),
		ast.Decl("g", nil, ast.Lam(nil, nil,
			ast.Send(ast.Int(2), "w"),
		)),
	)
	diags := analyzeFn(t, fn)
	if !hasCode(diags, CodeUndefinedWorker) {
		t.Fatalf("expected undefined worker inside lambda, got %v", diags)
	}
}
