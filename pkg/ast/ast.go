package ast

import "loom/compiler-go/pkg/types"

type NodeKind string

const (
	NodeIdentifier        NodeKind = "Identifier"
	NodeIntegerLiteral    NodeKind = "IntegerLiteral"
	NodeFloatLiteral      NodeKind = "FloatLiteral"
	NodeBooleanLiteral    NodeKind = "BooleanLiteral"
	NodeStringLiteral     NodeKind = "StringLiteral"
	NodeNilLiteral        NodeKind = "NilLiteral"
	NodeListLiteral       NodeKind = "ListLiteral"
	NodeRecordField       NodeKind = "RecordField"
	NodeRecordLiteral     NodeKind = "RecordLiteral"
	NodeNamedArgument     NodeKind = "NamedArgument"
	NodeFunctionCall      NodeKind = "FunctionCall"
	NodeIndexExpression   NodeKind = "IndexExpression"
	NodeFieldAccess       NodeKind = "FieldAccess"
	NodeLambdaExpression  NodeKind = "LambdaExpression"
	NodeCheckExpression   NodeKind = "CheckExpression"
	NodeSyncSend          NodeKind = "SyncSendExpression"
	NodeReceive           NodeKind = "ReceiveExpression"
	NodeFlush             NodeKind = "FlushExpression"
	NodeBlock             NodeKind = "Block"
	NodeVariableDecl      NodeKind = "VariableDeclaration"
	NodeAssignment        NodeKind = "Assignment"
	NodeExpressionStmt    NodeKind = "ExpressionStatement"
	NodeIfStatement       NodeKind = "IfStatement"
	NodeWhileStatement    NodeKind = "WhileStatement"
	NodeForeachStatement  NodeKind = "ForeachStatement"
	NodeMatchClause       NodeKind = "MatchClause"
	NodeMatchStatement    NodeKind = "MatchStatement"
	NodeTransaction       NodeKind = "TransactionStatement"
	NodeReturnStatement   NodeKind = "ReturnStatement"
	NodeBreakStatement    NodeKind = "BreakStatement"
	NodeContinueStatement NodeKind = "ContinueStatement"
	NodeAbortStatement    NodeKind = "AbortStatement"
	NodeRetryStatement    NodeKind = "RetryStatement"
	NodePanicStatement    NodeKind = "PanicStatement"
	NodeSendStatement     NodeKind = "SendStatement"
	NodeWorkerDecl        NodeKind = "WorkerDeclaration"
	NodeForkStatement     NodeKind = "ForkStatement"
	NodeVarBinding        NodeKind = "VarBindingPattern"
	NodeListBinding       NodeKind = "ListBindingPattern"
	NodeRecordBinding     NodeKind = "RecordBindingPattern"
	NodeRecordFieldBind   NodeKind = "RecordFieldBindingPattern"
	NodeParameter         NodeKind = "Parameter"
	NodeFunctionDecl      NodeKind = "FunctionDeclaration"
	NodeModule            NodeKind = "Module"
)

// Node is implemented by every Loom AST node. Trees arriving at the semantic
// analyzer are fully type-resolved; expression nodes answer Type() with the
// checker's verdict (types.Invalid when resolution failed upstream).
type Node interface {
	Kind() NodeKind
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	kind NodeKind
	span Span
}

func newNodeImpl(kind NodeKind) nodeImpl {
	return nodeImpl{kind: kind}
}

func (n nodeImpl) Kind() NodeKind     { return n.kind }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// Marker interfaces.

type Expression interface {
	Node
	Type() types.Type
	expressionNode()
}

// exprImpl carries the resolved type written onto every expression by the
// upstream type checker.
type exprImpl struct {
	ResolvedType types.Type
}

func (e exprImpl) Type() types.Type { return e.ResolvedType }
func (exprImpl) expressionNode()    {}

func (e *exprImpl) setResolvedType(t types.Type) { e.ResolvedType = t }

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type BindingPattern interface {
	Node
	bindingPatternNode()
}

type bindingPatternMarker struct{}

func (bindingPatternMarker) bindingPatternNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	exprImpl

	Name   string        `json:"name"`
	Symbol *types.Symbol `json:"-"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type IntegerLiteral struct {
	nodeImpl
	exprImpl

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	lit := &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
	lit.ResolvedType = types.Int
	return lit
}

type FloatLiteral struct {
	nodeImpl
	exprImpl

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	lit := &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
	lit.ResolvedType = types.Float
	return lit
}

type BooleanLiteral struct {
	nodeImpl
	exprImpl

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	lit := &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
	lit.ResolvedType = types.Bool
	return lit
}

type StringLiteral struct {
	nodeImpl
	exprImpl

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	lit := &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
	lit.ResolvedType = types.String
	return lit
}

type NilLiteral struct {
	nodeImpl
	exprImpl
}

func NewNilLiteral() *NilLiteral {
	lit := &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
	lit.ResolvedType = types.Nil
	return lit
}

type ListLiteral struct {
	nodeImpl
	exprImpl

	Elements []Expression `json:"elements"`
}

func NewListLiteral(elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}

type RecordField struct {
	nodeImpl

	Key   string     `json:"key"`
	Value Expression `json:"value"`
}

func NewRecordField(key string, value Expression) *RecordField {
	return &RecordField{nodeImpl: newNodeImpl(NodeRecordField), Key: key, Value: value}
}

type RecordLiteral struct {
	nodeImpl
	exprImpl

	Fields []*RecordField `json:"fields"`
}

func NewRecordLiteral(fields []*RecordField) *RecordLiteral {
	return &RecordLiteral{nodeImpl: newNodeImpl(NodeRecordLiteral), Fields: fields}
}

// Calls and access expressions

type NamedArgument struct {
	nodeImpl
	exprImpl

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewNamedArgument(name *Identifier, value Expression) *NamedArgument {
	return &NamedArgument{nodeImpl: newNodeImpl(NodeNamedArgument), Name: name, Value: value}
}

type FunctionCall struct {
	nodeImpl
	exprImpl

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee Expression, args []Expression) *FunctionCall {
	if args == nil {
		args = make([]Expression, 0)
	}
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

type IndexExpression struct {
	nodeImpl
	exprImpl

	Target Expression `json:"target"`
	Index  Expression `json:"index"`
}

func NewIndexExpression(target, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Target: target, Index: index}
}

type FieldAccess struct {
	nodeImpl
	exprImpl

	Target Expression  `json:"target"`
	Field  *Identifier `json:"field"`
}

func NewFieldAccess(target Expression, field *Identifier) *FieldAccess {
	return &FieldAccess{nodeImpl: newNodeImpl(NodeFieldAccess), Target: target, Field: field}
}

type LambdaExpression struct {
	nodeImpl
	exprImpl

	Params     []*Parameter `json:"params"`
	ReturnType types.Type   `json:"-"`
	Body       *Block       `json:"body"`

	// Channels is written back by the analyzer: the data-channel names this
	// invokable participates in, consumed by code generation.
	Channels []string `json:"-"`
}

func NewLambdaExpression(params []*Parameter, returnType types.Type, body *Block) *LambdaExpression {
	return &LambdaExpression{nodeImpl: newNodeImpl(NodeLambdaExpression), Params: params, ReturnType: returnType, Body: body}
}

// CheckExpression unwraps an error union: the error members of the operand
// propagate to the enclosing invokable's return path.
type CheckExpression struct {
	nodeImpl
	exprImpl

	Operand Expression `json:"operand"`
}

func NewCheckExpression(operand Expression) *CheckExpression {
	return &CheckExpression{nodeImpl: newNodeImpl(NodeCheckExpression), Operand: operand}
}

// Worker messaging expressions

// SyncSendExpression is `value ->> worker`: blocks until the paired receive
// accepts and can observe error results.
type SyncSendExpression struct {
	nodeImpl
	exprImpl

	Value  Expression  `json:"value"`
	Target *Identifier `json:"target"`

	// ResultType is written back once the fixpoint pairs this send: the
	// accumulated error/result union observable at the send site.
	ResultType types.Type `json:"-"`
}

func NewSyncSendExpression(value Expression, target *Identifier) *SyncSendExpression {
	return &SyncSendExpression{nodeImpl: newNodeImpl(NodeSyncSend), Value: value, Target: target}
}

// ReceiveExpression is `<- worker`.
type ReceiveExpression struct {
	nodeImpl
	exprImpl

	Source *Identifier `json:"source"`

	// ResultType is written back once the fixpoint pairs this receive.
	ResultType types.Type `json:"-"`
}

func NewReceiveExpression(source *Identifier) *ReceiveExpression {
	return &ReceiveExpression{nodeImpl: newNodeImpl(NodeReceive), Source: source}
}

// FlushExpression waits for pending sends to the named worker, or to every
// worker when Target is nil.
type FlushExpression struct {
	nodeImpl
	exprImpl

	Target *Identifier `json:"target,omitempty"`
}

func NewFlushExpression(target *Identifier) *FlushExpression {
	return &FlushExpression{nodeImpl: newNodeImpl(NodeFlush), Target: target}
}

// Statements

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Name         *Identifier   `json:"name"`
	DeclaredType types.Type    `json:"-"`
	Initializer  Expression    `json:"initializer,omitempty"`
	Symbol       *types.Symbol `json:"-"`
}

func NewVariableDeclaration(name *Identifier, declaredType types.Type, initializer Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDecl), Name: name, DeclaredType: declaredType, Initializer: initializer}
}

type Assignment struct {
	nodeImpl
	statementMarker

	Target Expression `json:"target"`
	Value  Expression `json:"value"`
}

func NewAssignment(target, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Target: target, Value: value}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expr Expression `json:"expr"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStmt), Expr: expr}
}

// IfStatement; Else is nil, a *Block, or another *IfStatement (else-if chain).
type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      *Block     `json:"then"`
	Else      Statement  `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, then *Block, elseBranch Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: elseBranch}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      *Block     `json:"body"`
}

func NewWhileStatement(condition Expression, body *Block) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

type ForeachStatement struct {
	nodeImpl
	statementMarker

	Binding  *Identifier `json:"binding"`
	Iterable Expression  `json:"iterable"`
	Body     *Block      `json:"body"`
}

func NewForeachStatement(binding *Identifier, iterable Expression, body *Block) *ForeachStatement {
	return &ForeachStatement{nodeImpl: newNodeImpl(NodeForeachStatement), Binding: binding, Iterable: iterable, Body: body}
}

// MatchClause is one `pattern => body` arm. Static clauses carry Pattern (a
// literal, list, record, or bare-identifier expression); structured clauses
// carry Binding with an optional boolean Guard.
type MatchClause struct {
	nodeImpl

	Pattern Expression     `json:"pattern,omitempty"`
	Binding BindingPattern `json:"bindingPattern,omitempty"`
	Guard   Expression     `json:"guard,omitempty"`
	Body    *Block         `json:"body"`

	// Written back by the analyzer.
	IsLastPattern bool `json:"-"`
	Reachable     bool `json:"-"`
}

func NewMatchClause(pattern Expression, binding BindingPattern, guard Expression, body *Block) *MatchClause {
	return &MatchClause{nodeImpl: newNodeImpl(NodeMatchClause), Pattern: pattern, Binding: binding, Guard: guard, Body: body}
}

type MatchStatement struct {
	nodeImpl
	statementMarker

	Subject Expression     `json:"subject"`
	Clauses []*MatchClause `json:"clauses"`
}

func NewMatchStatement(subject Expression, clauses []*MatchClause) *MatchStatement {
	return &MatchStatement{nodeImpl: newNodeImpl(NodeMatchStatement), Subject: subject, Clauses: clauses}
}

// TransactionStatement; the handler blocks run on retry, abort, and commit.
type TransactionStatement struct {
	nodeImpl
	statementMarker

	Body     *Block `json:"body"`
	OnRetry  *Block `json:"onRetry,omitempty"`
	OnAbort  *Block `json:"onAbort,omitempty"`
	OnCommit *Block `json:"onCommit,omitempty"`
}

func NewTransactionStatement(body, onRetry, onAbort, onCommit *Block) *TransactionStatement {
	return &TransactionStatement{nodeImpl: newNodeImpl(NodeTransaction), Body: body, OnRetry: onRetry, OnAbort: onAbort, OnCommit: onCommit}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value,omitempty"`
}

func NewReturnStatement(value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Value: value}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement() *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement)}
}

type AbortStatement struct {
	nodeImpl
	statementMarker
}

func NewAbortStatement() *AbortStatement {
	return &AbortStatement{nodeImpl: newNodeImpl(NodeAbortStatement)}
}

type RetryStatement struct {
	nodeImpl
	statementMarker
}

func NewRetryStatement() *RetryStatement {
	return &RetryStatement{nodeImpl: newNodeImpl(NodeRetryStatement)}
}

type PanicStatement struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewPanicStatement(value Expression) *PanicStatement {
	return &PanicStatement{nodeImpl: newNodeImpl(NodePanicStatement), Value: value}
}

// SendStatement is the asynchronous send `value -> worker`.
type SendStatement struct {
	nodeImpl
	statementMarker

	Value  Expression  `json:"value"`
	Target *Identifier `json:"target"`

	// ResultType is written back once the fixpoint pairs this send.
	ResultType types.Type `json:"-"`
}

func NewSendStatement(value Expression, target *Identifier) *SendStatement {
	return &SendStatement{nodeImpl: newNodeImpl(NodeSendStatement), Value: value, Target: target}
}

// WorkerDeclaration introduces a named worker inside an invokable body. A
// non-nil ReturnType lets the worker's result surface through receives.
type WorkerDeclaration struct {
	nodeImpl
	statementMarker

	Name       *Identifier `json:"name"`
	ReturnType types.Type  `json:"-"`
	Body       *Block      `json:"body"`
}

func NewWorkerDeclaration(name *Identifier, returnType types.Type, body *Block) *WorkerDeclaration {
	return &WorkerDeclaration{nodeImpl: newNodeImpl(NodeWorkerDecl), Name: name, ReturnType: returnType, Body: body}
}

// ForkStatement groups worker declarations that start together (fork-join).
type ForkStatement struct {
	nodeImpl
	statementMarker

	Workers []*WorkerDeclaration `json:"workers"`
}

func NewForkStatement(workers []*WorkerDeclaration) *ForkStatement {
	return &ForkStatement{nodeImpl: newNodeImpl(NodeForkStatement), Workers: workers}
}

// Binding patterns (structured match clauses)

type VarBindingPattern struct {
	nodeImpl
	bindingPatternMarker

	Name         *Identifier `json:"name"`
	DeclaredType types.Type  `json:"-"`
}

func NewVarBindingPattern(name *Identifier, declaredType types.Type) *VarBindingPattern {
	return &VarBindingPattern{nodeImpl: newNodeImpl(NodeVarBinding), Name: name, DeclaredType: declaredType}
}

type ListBindingPattern struct {
	nodeImpl
	bindingPatternMarker

	Elements []BindingPattern `json:"elements"`
}

func NewListBindingPattern(elements []BindingPattern) *ListBindingPattern {
	return &ListBindingPattern{nodeImpl: newNodeImpl(NodeListBinding), Elements: elements}
}

type RecordFieldBindingPattern struct {
	nodeImpl

	FieldName string         `json:"fieldName"`
	Pattern   BindingPattern `json:"pattern"`
}

func NewRecordFieldBindingPattern(fieldName string, pattern BindingPattern) *RecordFieldBindingPattern {
	return &RecordFieldBindingPattern{nodeImpl: newNodeImpl(NodeRecordFieldBind), FieldName: fieldName, Pattern: pattern}
}

type RecordBindingPattern struct {
	nodeImpl
	bindingPatternMarker

	Fields []*RecordFieldBindingPattern `json:"fields"`
	Rest   bool                         `json:"rest,omitempty"`
}

func NewRecordBindingPattern(fields []*RecordFieldBindingPattern, rest bool) *RecordBindingPattern {
	return &RecordBindingPattern{nodeImpl: newNodeImpl(NodeRecordBinding), Fields: fields, Rest: rest}
}

// Declarations

type Parameter struct {
	nodeImpl

	Name *Identifier `json:"name"`
	Typ  types.Type  `json:"-"`
}

func NewParameter(name *Identifier, typ types.Type) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name, Typ: typ}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	Name       *Identifier   `json:"name"`
	Params     []*Parameter  `json:"params"`
	ReturnType types.Type    `json:"-"`
	Body       *Block        `json:"body"`
	Symbol     *types.Symbol `json:"-"`

	// Channels is written back by the analyzer: the data-channel names this
	// invokable participates in, consumed by code generation.
	Channels []string `json:"-"`
}

func NewFunctionDeclaration(name *Identifier, params []*Parameter, returnType types.Type, body *Block) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDecl), Name: name, Params: params, ReturnType: returnType, Body: body}
}

type Module struct {
	nodeImpl

	Name      string                 `json:"name"`
	Functions []*FunctionDeclaration `json:"functions"`
	Variables []*VariableDeclaration `json:"variables,omitempty"`
}

func NewModule(name string, functions []*FunctionDeclaration, variables []*VariableDeclaration) *Module {
	return &Module{nodeImpl: newNodeImpl(NodeModule), Name: name, Functions: functions, Variables: variables}
}
