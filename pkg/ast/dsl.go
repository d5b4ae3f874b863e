package ast

import "loom/compiler-go/pkg/types"

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

// IDSym builds an identifier decorated with its resolved symbol and type.
func IDSym(name string, symbol *types.Symbol) *Identifier {
	id := NewIdentifier(name)
	id.Symbol = symbol
	if symbol != nil {
		id.ResolvedType = symbol.Type
	}
	return id
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

func List(elements ...Expression) *ListLiteral {
	return NewListLiteral(elements)
}

func Field(key string, value Expression) *RecordField {
	return NewRecordField(key, value)
}

func Rec(fields ...*RecordField) *RecordLiteral {
	return NewRecordLiteral(fields)
}

// Typed stamps the resolved type onto an expression, the way the upstream
// type checker decorates nodes before this pass runs.
func Typed(expr Expression, t types.Type) Expression {
	if setter, ok := expr.(interface{ setResolvedType(types.Type) }); ok {
		setter.setResolvedType(t)
	}
	return expr
}

// Calls and access expressions.

func NArg(name string, value Expression) *NamedArgument {
	return NewNamedArgument(ID(name), value)
}

func CallExpr(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args)
}

func Call(name string, args ...Expression) *FunctionCall {
	return CallExpr(ID(name), args...)
}

func Idx(target, index Expression) *IndexExpression {
	return NewIndexExpression(target, index)
}

func Fld(target Expression, field string) *FieldAccess {
	return NewFieldAccess(target, ID(field))
}

func Lam(params []*Parameter, returnType types.Type, statements ...Statement) *LambdaExpression {
	return NewLambdaExpression(params, returnType, Blk(statements...))
}

func Check(operand Expression) *CheckExpression {
	return NewCheckExpression(operand)
}

// Worker messaging.

func Send(value Expression, target string) *SendStatement {
	return NewSendStatement(value, ID(target))
}

func SyncSend(value Expression, target string) *SyncSendExpression {
	return NewSyncSendExpression(value, ID(target))
}

func Recv(source string) *ReceiveExpression {
	return NewReceiveExpression(ID(source))
}

func RecvTyped(source string, expected types.Type) *ReceiveExpression {
	recv := NewReceiveExpression(ID(source))
	recv.ResolvedType = expected
	return recv
}

func Flush(target string) *FlushExpression {
	return NewFlushExpression(ID(target))
}

func FlushAll() *FlushExpression {
	return NewFlushExpression(nil)
}

func Worker(name string, returnType types.Type, statements ...Statement) *WorkerDeclaration {
	return NewWorkerDeclaration(ID(name), returnType, Blk(statements...))
}

func Fork(workers ...*WorkerDeclaration) *ForkStatement {
	return NewForkStatement(workers)
}

// Statements.

func Blk(statements ...Statement) *Block {
	return NewBlock(statements)
}

func Decl(name string, declaredType types.Type, initializer Expression) *VariableDeclaration {
	return NewVariableDeclaration(ID(name), declaredType, initializer)
}

func Set(target, value Expression) *Assignment {
	return NewAssignment(target, value)
}

func ExprStmt(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Iff(condition Expression, statements ...Statement) *IfStatement {
	return NewIfStatement(condition, Blk(statements...), nil)
}

func IfElse(condition Expression, then *Block, elseBranch Statement) *IfStatement {
	return NewIfStatement(condition, then, elseBranch)
}

func Wloop(condition Expression, statements ...Statement) *WhileStatement {
	return NewWhileStatement(condition, Blk(statements...))
}

func Foreach(binding string, iterable Expression, statements ...Statement) *ForeachStatement {
	return NewForeachStatement(ID(binding), iterable, Blk(statements...))
}

func Clause(pattern Expression, statements ...Statement) *MatchClause {
	return NewMatchClause(pattern, nil, nil, Blk(statements...))
}

func ClauseBind(binding BindingPattern, guard Expression, statements ...Statement) *MatchClause {
	return NewMatchClause(nil, binding, guard, Blk(statements...))
}

func Match(subject Expression, clauses ...*MatchClause) *MatchStatement {
	return NewMatchStatement(subject, clauses)
}

func Txn(statements ...Statement) *TransactionStatement {
	return NewTransactionStatement(Blk(statements...), nil, nil, nil)
}

func TxnFull(body, onRetry, onAbort, onCommit *Block) *TransactionStatement {
	return NewTransactionStatement(body, onRetry, onAbort, onCommit)
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(value)
}

func Brk() *BreakStatement {
	return NewBreakStatement()
}

func Cont() *ContinueStatement {
	return NewContinueStatement()
}

func Abort() *AbortStatement {
	return NewAbortStatement()
}

func Retry() *RetryStatement {
	return NewRetryStatement()
}

func Panics(value Expression) *PanicStatement {
	return NewPanicStatement(value)
}

// Binding patterns.

func VarP(name string, declaredType types.Type) *VarBindingPattern {
	return NewVarBindingPattern(ID(name), declaredType)
}

func ListP(elements ...BindingPattern) *ListBindingPattern {
	return NewListBindingPattern(elements)
}

func FieldP(fieldName string, pattern BindingPattern) *RecordFieldBindingPattern {
	return NewRecordFieldBindingPattern(fieldName, pattern)
}

func RecP(fields ...*RecordFieldBindingPattern) *RecordBindingPattern {
	return NewRecordBindingPattern(fields, false)
}

func RecPOpen(fields ...*RecordFieldBindingPattern) *RecordBindingPattern {
	return NewRecordBindingPattern(fields, true)
}

// Declarations.

func Param(name string, typ types.Type) *Parameter {
	return NewParameter(ID(name), typ)
}

func Fn(name string, params []*Parameter, returnType types.Type, statements ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), params, returnType, Blk(statements...))
}

func Mod(name string, functions ...*FunctionDeclaration) *Module {
	return NewModule(name, functions, nil)
}
