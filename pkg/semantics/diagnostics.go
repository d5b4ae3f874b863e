package semantics

import (
	"fmt"

	"loom/compiler-go/pkg/ast"
)

// Severity conveys the diagnostic level.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Reachability
	CodeUnreachableCode            Code = "UNREACHABLE_CODE"
	CodeMustReturn                 Code = "MUST_RETURN"
	CodeInvalidExpressionStatement Code = "INVALID_EXPRESSION_STATEMENT"

	// Exit legality
	CodeLoopExitOutsideLoop             Code = "LOOP_EXIT_OUTSIDE_LOOP"
	CodeBreakContinueCrossesTransaction Code = "BREAK_CONTINUE_CROSSES_TRANSACTION"
	CodeReturnCrossesTransaction        Code = "RETURN_CROSSES_TRANSACTION"
	CodeAbortRetryOutsideTransaction    Code = "ABORT_RETRY_OUTSIDE_TRANSACTION"
	CodeNestedTransactionsInvalid       Code = "NESTED_TRANSACTIONS_INVALID"
	CodeTransactionInsideHandler        Code = "TRANSACTION_INSIDE_HANDLER"

	// Worker interaction
	CodeUndefinedWorker               Code = "UNDEFINED_WORKER"
	CodeInvalidWorkerSendPosition     Code = "INVALID_WORKER_SEND_POSITION"
	CodeInvalidWorkerReceivePosition  Code = "INVALID_WORKER_RECEIVE_POSITION"
	CodeInvalidWorkerFlush            Code = "INVALID_WORKER_FLUSH"
	CodeInvalidWorkerInteraction      Code = "INVALID_WORKER_INTERACTION"
	CodeWorkerMessageTypeMismatch     Code = "WORKER_MESSAGE_TYPE_MISMATCH"
	CodeWorkerSendAfterReturn         Code = "WORKER_SEND_AFTER_RETURN"
	CodeWorkerReceiveAfterReturn      Code = "WORKER_RECEIVE_AFTER_RETURN"

	// Match analysis
	CodeNoMatchingPattern       Code = "NO_MATCHING_PATTERN"
	CodeDuplicateDefaultPattern Code = "DUPLICATE_DEFAULT_PATTERN"
	CodeUnreachableMatchPattern Code = "UNREACHABLE_MATCH_PATTERN"
	CodePatternAlwaysMatches    Code = "PATTERN_ALWAYS_MATCHES"

	// Visibility / misc, co-located in the same pass
	CodeAttemptExposeNonPublicSymbol    Code = "ATTEMPT_EXPOSE_NON_PUBLIC_SYMBOL"
	CodeAttemptReferNonAccessibleSymbol Code = "ATTEMPT_REFER_NON_ACCESSIBLE_SYMBOL"
	CodeUninitializedVariable           Code = "UNINITIALIZED_VARIABLE"
	CodeDuplicateKeyInRecordLiteral     Code = "DUPLICATE_KEY_IN_RECORD_LITERAL"
	CodeDuplicateNamedArgs              Code = "DUPLICATE_NAMED_ARGS"
	CodeArrayIndexOutOfRange            Code = "ARRAY_INDEX_OUT_OF_RANGE"
)

// Diagnostic represents one semantic error or warning, anchored at a node.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Node     ast.Node
}

// Pos returns the start position of the anchoring node.
func (d Diagnostic) Pos() ast.Position {
	if d.Node == nil {
		return ast.Position{}
	}
	return d.Node.Span().Start
}

func (d Diagnostic) String() string {
	pos := d.Pos()
	return fmt.Sprintf("%d:%d: %s: %s [%s]", pos.Line, pos.Column, d.Severity, d.Message, d.Code)
}

// Sink receives diagnostics in the order the analyzer produces them.
type Sink interface {
	Report(d Diagnostic)
}

// ListSink is the default sink: an ordered, append-only list.
type ListSink struct {
	Diagnostics []Diagnostic
}

func (s *ListSink) Report(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// HasErrors reports whether any collected diagnostic has error severity.
func (s *ListSink) HasErrors() bool {
	for _, d := range s.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (a *Analyzer) errorf(code Code, node ast.Node, format string, args ...any) {
	a.sink.Report(Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Node:     node,
	})
}

func (a *Analyzer) warnf(code Code, node ast.Node, format string, args ...any) {
	a.sink.Report(Diagnostic{
		Code:     code,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Node:     node,
	})
}
