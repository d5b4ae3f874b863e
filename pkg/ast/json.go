package ast

import (
	"bytes"
	"encoding/json"
	"fmt"

	"loom/compiler-go/pkg/types"
)

// The JSON codec moves decorated modules between the front end and this
// pass. Nodes are encoded as kind-tagged objects; resolved types travel in
// a parallel kind-tagged form. Identifier-valued fields (declaration names,
// send targets) flatten to plain strings.

type nodeJSON struct {
	Kind   NodeKind    `json:"kind"`
	Span   *Span       `json:"span,omitempty"`
	Type   *typeJSON   `json:"type,omitempty"`
	Symbol *symbolJSON `json:"symbol,omitempty"`

	Name        string `json:"name,omitempty"`
	Key         string `json:"key,omitempty"`
	FieldName   string `json:"fieldName,omitempty"`
	TargetName  string `json:"target,omitempty"`
	SourceName  string `json:"source,omitempty"`
	BindingName string `json:"binding,omitempty"`
	Rest        bool   `json:"rest,omitempty"`

	IntValue    *int64   `json:"intValue,omitempty"`
	FloatValue  *float64 `json:"floatValue,omitempty"`
	BoolValue   *bool    `json:"boolValue,omitempty"`
	StringValue *string  `json:"stringValue,omitempty"`

	Elements   []*nodeJSON `json:"elements,omitempty"`
	Fields     []*nodeJSON `json:"fields,omitempty"`
	Arguments  []*nodeJSON `json:"arguments,omitempty"`
	Statements []*nodeJSON `json:"statements,omitempty"`
	Params     []*nodeJSON `json:"params,omitempty"`
	Clauses    []*nodeJSON `json:"clauses,omitempty"`
	Workers    []*nodeJSON `json:"workers,omitempty"`
	Functions  []*nodeJSON `json:"functions,omitempty"`
	Variables  []*nodeJSON `json:"variables,omitempty"`

	Callee      *nodeJSON `json:"callee,omitempty"`
	Target      *nodeJSON `json:"targetNode,omitempty"`
	Index       *nodeJSON `json:"index,omitempty"`
	Value       *nodeJSON `json:"value,omitempty"`
	Operand     *nodeJSON `json:"operand,omitempty"`
	Condition   *nodeJSON `json:"condition,omitempty"`
	Then        *nodeJSON `json:"then,omitempty"`
	Else        *nodeJSON `json:"else,omitempty"`
	Body        *nodeJSON `json:"body,omitempty"`
	Subject     *nodeJSON `json:"subject,omitempty"`
	Pattern     *nodeJSON `json:"pattern,omitempty"`
	BindingNode *nodeJSON `json:"bindingPattern,omitempty"`
	Guard       *nodeJSON `json:"guard,omitempty"`
	Iterable    *nodeJSON `json:"iterable,omitempty"`
	Initializer *nodeJSON `json:"initializer,omitempty"`
	OnRetry     *nodeJSON `json:"onRetry,omitempty"`
	OnAbort     *nodeJSON `json:"onAbort,omitempty"`
	OnCommit    *nodeJSON `json:"onCommit,omitempty"`

	DeclaredType *typeJSON `json:"declaredType,omitempty"`
	ReturnType   *typeJSON `json:"returnType,omitempty"`
}

type typeJSON struct {
	Kind    string               `json:"kind"`
	Name    string               `json:"name,omitempty"`
	Members []*typeJSON          `json:"members,omitempty"`
	Element *typeJSON            `json:"element,omitempty"`
	Length  *int                 `json:"length,omitempty"`
	Value   *typeJSON            `json:"value,omitempty"`
	Fields  map[string]*typeJSON `json:"fields,omitempty"`
	Rest    *typeJSON            `json:"rest,omitempty"`
	Sealed  bool                 `json:"sealed,omitempty"`
	Detail  *typeJSON            `json:"detail,omitempty"`
	Result  *typeJSON            `json:"result,omitempty"`
	Params  []*typeJSON          `json:"params,omitempty"`
	Return  *typeJSON            `json:"return,omitempty"`
}

type symbolJSON struct {
	Name   string `json:"name"`
	Module string `json:"module,omitempty"`
	Flags  uint8  `json:"flags,omitempty"`
}

type moduleJSON struct {
	Name      string      `json:"name"`
	Functions []*nodeJSON `json:"functions,omitempty"`
	Variables []*nodeJSON `json:"variables,omitempty"`
}

// EncodeModule renders a decorated module as indented JSON.
func EncodeModule(mod *Module) ([]byte, error) {
	if mod == nil {
		return nil, fmt.Errorf("ast: module must not be nil")
	}
	out := moduleJSON{Name: mod.Name}
	for _, fn := range mod.Functions {
		out.Functions = append(out.Functions, encodeNode(fn))
	}
	for _, v := range mod.Variables {
		out.Variables = append(out.Variables, encodeNode(v))
	}
	return json.MarshalIndent(out, "", "  ")
}

// DecodeModule parses a module from its JSON form. Unknown fields are
// rejected so format drift surfaces as an error instead of silent data
// loss.
func DecodeModule(data []byte) (*Module, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var raw moduleJSON
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("ast: decode module: %w", err)
	}
	mod := NewModule(raw.Name, nil, nil)
	for _, fj := range raw.Functions {
		node, err := decodeNode(fj)
		if err != nil {
			return nil, err
		}
		fn, ok := node.(*FunctionDeclaration)
		if !ok {
			return nil, fmt.Errorf("ast: expected function declaration, got %s", node.Kind())
		}
		mod.Functions = append(mod.Functions, fn)
	}
	for _, vj := range raw.Variables {
		node, err := decodeNode(vj)
		if err != nil {
			return nil, err
		}
		v, ok := node.(*VariableDeclaration)
		if !ok {
			return nil, fmt.Errorf("ast: expected variable declaration, got %s", node.Kind())
		}
		mod.Variables = append(mod.Variables, v)
	}
	return mod, nil
}

func encodeNode(n Node) *nodeJSON {
	if n == nil {
		return nil
	}
	out := &nodeJSON{Kind: n.Kind()}
	if span := n.Span(); span != (Span{}) {
		s := span
		out.Span = &s
	}
	if expr, ok := n.(Expression); ok {
		out.Type = encodeType(expr.Type())
	}

	switch node := n.(type) {
	case *Identifier:
		out.Name = node.Name
		out.Symbol = encodeSymbol(node.Symbol)
	case *IntegerLiteral:
		out.IntValue = &node.Value
	case *FloatLiteral:
		out.FloatValue = &node.Value
	case *BooleanLiteral:
		out.BoolValue = &node.Value
	case *StringLiteral:
		out.StringValue = &node.Value
	case *NilLiteral:
	case *ListLiteral:
		out.Elements = encodeExprs(node.Elements)
	case *RecordField:
		out.Key = node.Key
		out.Value = encodeNode(node.Value)
	case *RecordLiteral:
		for _, f := range node.Fields {
			out.Fields = append(out.Fields, encodeNode(f))
		}
	case *NamedArgument:
		out.Name = node.Name.Name
		out.Value = encodeNode(node.Value)
	case *FunctionCall:
		out.Callee = encodeNode(node.Callee)
		out.Arguments = encodeExprs(node.Arguments)
	case *IndexExpression:
		out.Target = encodeNode(node.Target)
		out.Index = encodeNode(node.Index)
	case *FieldAccess:
		out.Target = encodeNode(node.Target)
		out.FieldName = node.Field.Name
	case *LambdaExpression:
		for _, p := range node.Params {
			out.Params = append(out.Params, encodeNode(p))
		}
		out.ReturnType = encodeType(node.ReturnType)
		out.Body = encodeBlock(node.Body)
	case *CheckExpression:
		out.Operand = encodeNode(node.Operand)
	case *SyncSendExpression:
		out.Value = encodeNode(node.Value)
		out.TargetName = node.Target.Name
	case *ReceiveExpression:
		out.SourceName = node.Source.Name
	case *FlushExpression:
		if node.Target != nil {
			out.TargetName = node.Target.Name
		}
	case *Block:
		out.Statements = encodeStmts(node.Statements)
	case *VariableDeclaration:
		out.Name = node.Name.Name
		out.DeclaredType = encodeType(node.DeclaredType)
		out.Initializer = encodeNode(node.Initializer)
		out.Symbol = encodeSymbol(node.Symbol)
	case *Assignment:
		out.Target = encodeNode(node.Target)
		out.Value = encodeNode(node.Value)
	case *ExpressionStatement:
		out.Value = encodeNode(node.Expr)
	case *IfStatement:
		out.Condition = encodeNode(node.Condition)
		out.Then = encodeBlock(node.Then)
		out.Else = encodeNode(node.Else)
	case *WhileStatement:
		out.Condition = encodeNode(node.Condition)
		out.Body = encodeBlock(node.Body)
	case *ForeachStatement:
		out.BindingName = node.Binding.Name
		out.Iterable = encodeNode(node.Iterable)
		out.Body = encodeBlock(node.Body)
	case *MatchClause:
		out.Pattern = encodeNode(node.Pattern)
		out.BindingNode = encodeNode(node.Binding)
		out.Guard = encodeNode(node.Guard)
		out.Body = encodeBlock(node.Body)
	case *MatchStatement:
		out.Subject = encodeNode(node.Subject)
		for _, cl := range node.Clauses {
			out.Clauses = append(out.Clauses, encodeNode(cl))
		}
	case *TransactionStatement:
		out.Body = encodeBlock(node.Body)
		out.OnRetry = encodeBlock(node.OnRetry)
		out.OnAbort = encodeBlock(node.OnAbort)
		out.OnCommit = encodeBlock(node.OnCommit)
	case *ReturnStatement:
		out.Value = encodeNode(node.Value)
	case *BreakStatement, *ContinueStatement, *AbortStatement, *RetryStatement:
	case *PanicStatement:
		out.Value = encodeNode(node.Value)
	case *SendStatement:
		out.Value = encodeNode(node.Value)
		out.TargetName = node.Target.Name
	case *WorkerDeclaration:
		out.Name = node.Name.Name
		out.ReturnType = encodeType(node.ReturnType)
		out.Body = encodeBlock(node.Body)
	case *ForkStatement:
		for _, w := range node.Workers {
			out.Workers = append(out.Workers, encodeNode(w))
		}
	case *VarBindingPattern:
		out.Name = node.Name.Name
		out.DeclaredType = encodeType(node.DeclaredType)
	case *ListBindingPattern:
		for _, el := range node.Elements {
			out.Elements = append(out.Elements, encodeNode(el))
		}
	case *RecordFieldBindingPattern:
		out.FieldName = node.FieldName
		out.Pattern = encodeNode(node.Pattern)
	case *RecordBindingPattern:
		for _, f := range node.Fields {
			out.Fields = append(out.Fields, encodeNode(f))
		}
		out.Rest = node.Rest
	case *Parameter:
		out.Name = node.Name.Name
		out.DeclaredType = encodeType(node.Typ)
	case *FunctionDeclaration:
		out.Name = node.Name.Name
		for _, p := range node.Params {
			out.Params = append(out.Params, encodeNode(p))
		}
		out.ReturnType = encodeType(node.ReturnType)
		out.Body = encodeBlock(node.Body)
		out.Symbol = encodeSymbol(node.Symbol)
	}
	return out
}

func encodeBlock(b *Block) *nodeJSON {
	if b == nil {
		return nil
	}
	return encodeNode(b)
}

func encodeExprs(exprs []Expression) []*nodeJSON {
	var out []*nodeJSON
	for _, e := range exprs {
		out = append(out, encodeNode(e))
	}
	return out
}

func encodeStmts(stmts []Statement) []*nodeJSON {
	var out []*nodeJSON
	for _, s := range stmts {
		out = append(out, encodeNode(s))
	}
	return out
}

func decodeNode(raw *nodeJSON) (Node, error) {
	if raw == nil {
		return nil, nil
	}
	node, err := decodeNodeKind(raw)
	if err != nil {
		return nil, err
	}
	if raw.Span != nil {
		SetSpan(node, *raw.Span)
	}
	if raw.Type != nil {
		if setter, ok := node.(interface{ setResolvedType(types.Type) }); ok {
			setter.setResolvedType(decodeType(raw.Type))
		}
	}
	return node, nil
}

func decodeNodeKind(raw *nodeJSON) (Node, error) {
	switch raw.Kind {
	case NodeIdentifier:
		id := NewIdentifier(raw.Name)
		id.Symbol = decodeSymbol(raw.Symbol)
		return id, nil
	case NodeIntegerLiteral:
		if raw.IntValue == nil {
			return nil, fmt.Errorf("ast: integer literal without value")
		}
		return NewIntegerLiteral(*raw.IntValue), nil
	case NodeFloatLiteral:
		if raw.FloatValue == nil {
			return nil, fmt.Errorf("ast: float literal without value")
		}
		return NewFloatLiteral(*raw.FloatValue), nil
	case NodeBooleanLiteral:
		if raw.BoolValue == nil {
			return nil, fmt.Errorf("ast: boolean literal without value")
		}
		return NewBooleanLiteral(*raw.BoolValue), nil
	case NodeStringLiteral:
		if raw.StringValue == nil {
			return nil, fmt.Errorf("ast: string literal without value")
		}
		return NewStringLiteral(*raw.StringValue), nil
	case NodeNilLiteral:
		return NewNilLiteral(), nil
	case NodeListLiteral:
		elements, err := decodeExprs(raw.Elements)
		if err != nil {
			return nil, err
		}
		return NewListLiteral(elements), nil
	case NodeRecordField:
		value, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, err
		}
		return NewRecordField(raw.Key, value), nil
	case NodeRecordLiteral:
		var fields []*RecordField
		for _, fj := range raw.Fields {
			node, err := decodeNode(fj)
			if err != nil {
				return nil, err
			}
			field, ok := node.(*RecordField)
			if !ok {
				return nil, fmt.Errorf("ast: expected record field, got %s", node.Kind())
			}
			fields = append(fields, field)
		}
		return NewRecordLiteral(fields), nil
	case NodeNamedArgument:
		value, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, err
		}
		return NewNamedArgument(NewIdentifier(raw.Name), value), nil
	case NodeFunctionCall:
		callee, err := decodeExpr(raw.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(raw.Arguments)
		if err != nil {
			return nil, err
		}
		return NewFunctionCall(callee, args), nil
	case NodeIndexExpression:
		target, err := decodeExpr(raw.Target)
		if err != nil {
			return nil, err
		}
		index, err := decodeExpr(raw.Index)
		if err != nil {
			return nil, err
		}
		return NewIndexExpression(target, index), nil
	case NodeFieldAccess:
		target, err := decodeExpr(raw.Target)
		if err != nil {
			return nil, err
		}
		return NewFieldAccess(target, NewIdentifier(raw.FieldName)), nil
	case NodeLambdaExpression:
		params, err := decodeParams(raw.Params)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(raw.Body)
		if err != nil {
			return nil, err
		}
		return NewLambdaExpression(params, decodeType(raw.ReturnType), body), nil
	case NodeCheckExpression:
		operand, err := decodeExpr(raw.Operand)
		if err != nil {
			return nil, err
		}
		return NewCheckExpression(operand), nil
	case NodeSyncSend:
		value, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, err
		}
		return NewSyncSendExpression(value, NewIdentifier(raw.TargetName)), nil
	case NodeReceive:
		return NewReceiveExpression(NewIdentifier(raw.SourceName)), nil
	case NodeFlush:
		var target *Identifier
		if raw.TargetName != "" {
			target = NewIdentifier(raw.TargetName)
		}
		return NewFlushExpression(target), nil
	case NodeBlock:
		return decodeBlockNode(raw)
	case NodeVariableDecl:
		init, err := decodeExpr(raw.Initializer)
		if err != nil {
			return nil, err
		}
		decl := NewVariableDeclaration(NewIdentifier(raw.Name), decodeType(raw.DeclaredType), init)
		decl.Symbol = decodeSymbol(raw.Symbol)
		return decl, nil
	case NodeAssignment:
		target, err := decodeExpr(raw.Target)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, err
		}
		return NewAssignment(target, value), nil
	case NodeExpressionStmt:
		expr, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, err
		}
		return NewExpressionStatement(expr), nil
	case NodeIfStatement:
		cond, err := decodeExpr(raw.Condition)
		if err != nil {
			return nil, err
		}
		then, err := decodeBlock(raw.Then)
		if err != nil {
			return nil, err
		}
		var elseBranch Statement
		if raw.Else != nil {
			node, err := decodeNode(raw.Else)
			if err != nil {
				return nil, err
			}
			stmt, ok := node.(Statement)
			if !ok {
				return nil, fmt.Errorf("ast: expected statement in else branch, got %s", node.Kind())
			}
			elseBranch = stmt
		}
		return NewIfStatement(cond, then, elseBranch), nil
	case NodeWhileStatement:
		cond, err := decodeExpr(raw.Condition)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(raw.Body)
		if err != nil {
			return nil, err
		}
		return NewWhileStatement(cond, body), nil
	case NodeForeachStatement:
		iterable, err := decodeExpr(raw.Iterable)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(raw.Body)
		if err != nil {
			return nil, err
		}
		return NewForeachStatement(NewIdentifier(raw.BindingName), iterable, body), nil
	case NodeMatchClause:
		pattern, err := decodeExpr(raw.Pattern)
		if err != nil {
			return nil, err
		}
		binding, err := decodeBinding(raw.BindingNode)
		if err != nil {
			return nil, err
		}
		guard, err := decodeExpr(raw.Guard)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(raw.Body)
		if err != nil {
			return nil, err
		}
		return NewMatchClause(pattern, binding, guard, body), nil
	case NodeMatchStatement:
		subject, err := decodeExpr(raw.Subject)
		if err != nil {
			return nil, err
		}
		var clauses []*MatchClause
		for _, cj := range raw.Clauses {
			node, err := decodeNode(cj)
			if err != nil {
				return nil, err
			}
			clause, ok := node.(*MatchClause)
			if !ok {
				return nil, fmt.Errorf("ast: expected match clause, got %s", node.Kind())
			}
			clauses = append(clauses, clause)
		}
		return NewMatchStatement(subject, clauses), nil
	case NodeTransaction:
		body, err := decodeBlock(raw.Body)
		if err != nil {
			return nil, err
		}
		onRetry, err := decodeBlock(raw.OnRetry)
		if err != nil {
			return nil, err
		}
		onAbort, err := decodeBlock(raw.OnAbort)
		if err != nil {
			return nil, err
		}
		onCommit, err := decodeBlock(raw.OnCommit)
		if err != nil {
			return nil, err
		}
		return NewTransactionStatement(body, onRetry, onAbort, onCommit), nil
	case NodeReturnStatement:
		value, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, err
		}
		return NewReturnStatement(value), nil
	case NodeBreakStatement:
		return NewBreakStatement(), nil
	case NodeContinueStatement:
		return NewContinueStatement(), nil
	case NodeAbortStatement:
		return NewAbortStatement(), nil
	case NodeRetryStatement:
		return NewRetryStatement(), nil
	case NodePanicStatement:
		value, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, err
		}
		return NewPanicStatement(value), nil
	case NodeSendStatement:
		value, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, err
		}
		return NewSendStatement(value, NewIdentifier(raw.TargetName)), nil
	case NodeWorkerDecl:
		body, err := decodeBlock(raw.Body)
		if err != nil {
			return nil, err
		}
		return NewWorkerDeclaration(NewIdentifier(raw.Name), decodeType(raw.ReturnType), body), nil
	case NodeForkStatement:
		var workers []*WorkerDeclaration
		for _, wj := range raw.Workers {
			node, err := decodeNode(wj)
			if err != nil {
				return nil, err
			}
			worker, ok := node.(*WorkerDeclaration)
			if !ok {
				return nil, fmt.Errorf("ast: expected worker declaration, got %s", node.Kind())
			}
			workers = append(workers, worker)
		}
		return NewForkStatement(workers), nil
	case NodeVarBinding:
		return NewVarBindingPattern(NewIdentifier(raw.Name), decodeType(raw.DeclaredType)), nil
	case NodeListBinding:
		var elements []BindingPattern
		for _, ej := range raw.Elements {
			binding, err := decodeBinding(ej)
			if err != nil {
				return nil, err
			}
			elements = append(elements, binding)
		}
		return NewListBindingPattern(elements), nil
	case NodeRecordFieldBind:
		pattern, err := decodeBinding(raw.Pattern)
		if err != nil {
			return nil, err
		}
		return NewRecordFieldBindingPattern(raw.FieldName, pattern), nil
	case NodeRecordBinding:
		var fields []*RecordFieldBindingPattern
		for _, fj := range raw.Fields {
			node, err := decodeNode(fj)
			if err != nil {
				return nil, err
			}
			field, ok := node.(*RecordFieldBindingPattern)
			if !ok {
				return nil, fmt.Errorf("ast: expected record field binding, got %s", node.Kind())
			}
			fields = append(fields, field)
		}
		return NewRecordBindingPattern(fields, raw.Rest), nil
	case NodeParameter:
		return NewParameter(NewIdentifier(raw.Name), decodeType(raw.DeclaredType)), nil
	case NodeFunctionDecl:
		params, err := decodeParams(raw.Params)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(raw.Body)
		if err != nil {
			return nil, err
		}
		fn := NewFunctionDeclaration(NewIdentifier(raw.Name), params, decodeType(raw.ReturnType), body)
		fn.Symbol = decodeSymbol(raw.Symbol)
		return fn, nil
	}
	return nil, fmt.Errorf("ast: unknown node kind %q", raw.Kind)
}

func decodeExpr(raw *nodeJSON) (Expression, error) {
	if raw == nil {
		return nil, nil
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(Expression)
	if !ok {
		return nil, fmt.Errorf("ast: expected expression, got %s", node.Kind())
	}
	return expr, nil
}

func decodeExprs(raws []*nodeJSON) ([]Expression, error) {
	var out []Expression
	for _, raw := range raws {
		expr, err := decodeExpr(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodeBlock(raw *nodeJSON) (*Block, error) {
	if raw == nil {
		return nil, nil
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	block, ok := node.(*Block)
	if !ok {
		return nil, fmt.Errorf("ast: expected block, got %s", node.Kind())
	}
	return block, nil
}

func decodeBlockNode(raw *nodeJSON) (Node, error) {
	var statements []Statement
	for _, sj := range raw.Statements {
		node, err := decodeNode(sj)
		if err != nil {
			return nil, err
		}
		stmt, ok := node.(Statement)
		if !ok {
			return nil, fmt.Errorf("ast: expected statement, got %s", node.Kind())
		}
		statements = append(statements, stmt)
	}
	return NewBlock(statements), nil
}

func decodeBinding(raw *nodeJSON) (BindingPattern, error) {
	if raw == nil {
		return nil, nil
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	binding, ok := node.(BindingPattern)
	if !ok {
		return nil, fmt.Errorf("ast: expected binding pattern, got %s", node.Kind())
	}
	return binding, nil
}

func decodeParams(raws []*nodeJSON) ([]*Parameter, error) {
	var out []*Parameter
	for _, raw := range raws {
		node, err := decodeNode(raw)
		if err != nil {
			return nil, err
		}
		param, ok := node.(*Parameter)
		if !ok {
			return nil, fmt.Errorf("ast: expected parameter, got %s", node.Kind())
		}
		out = append(out, param)
	}
	return out, nil
}

func encodeSymbol(s *types.Symbol) *symbolJSON {
	if s == nil {
		return nil
	}
	return &symbolJSON{Name: s.Name, Module: s.Module, Flags: uint8(s.Flags)}
}

func decodeSymbol(raw *symbolJSON) *types.Symbol {
	if raw == nil {
		return nil
	}
	return &types.Symbol{Name: raw.Name, Module: raw.Module, Flags: types.SymbolFlags(raw.Flags)}
}

func encodeType(t types.Type) *typeJSON {
	if t == nil {
		return nil
	}
	switch typ := t.(type) {
	case types.PrimitiveType:
		return &typeJSON{Kind: "primitive", Name: string(typ.Kind)}
	case types.AnyType:
		return &typeJSON{Kind: "any"}
	case types.AnyDataType:
		return &typeJSON{Kind: "anydata"}
	case types.JSONType:
		return &typeJSON{Kind: "json"}
	case types.InvalidType:
		return &typeJSON{Kind: "invalid"}
	case types.ErrorType:
		return &typeJSON{Kind: "error", Detail: encodeType(typ.Detail)}
	case types.UnionType:
		out := &typeJSON{Kind: "union"}
		for _, m := range typ.Members {
			out.Members = append(out.Members, encodeType(m))
		}
		return out
	case types.TupleType:
		out := &typeJSON{Kind: "tuple"}
		for _, e := range typ.Elements {
			out.Members = append(out.Members, encodeType(e))
		}
		return out
	case types.ListType:
		length := typ.Length
		return &typeJSON{Kind: "list", Element: encodeType(typ.Element), Length: &length}
	case types.MapType:
		return &typeJSON{Kind: "map", Value: encodeType(typ.Value)}
	case types.RecordType:
		out := &typeJSON{Kind: "record", Name: typ.RecordName, Rest: encodeType(typ.Rest), Sealed: typ.Sealed}
		if len(typ.Fields) > 0 {
			out.Fields = make(map[string]*typeJSON, len(typ.Fields))
			for name, ft := range typ.Fields {
				out.Fields[name] = encodeType(ft)
			}
		}
		return out
	case types.ObjectType:
		return &typeJSON{Kind: "object", Name: typ.ObjectName}
	case types.FunctionType:
		out := &typeJSON{Kind: "function", Return: encodeType(typ.Return)}
		for _, p := range typ.Params {
			out.Params = append(out.Params, encodeType(p))
		}
		return out
	case types.FutureType:
		return &typeJSON{Kind: "future", Result: encodeType(typ.Result)}
	}
	return &typeJSON{Kind: "invalid"}
}

func decodeType(raw *typeJSON) types.Type {
	if raw == nil {
		return nil
	}
	switch raw.Kind {
	case "primitive":
		return types.PrimitiveType{Kind: types.PrimitiveKind(raw.Name)}
	case "any":
		return types.AnyType{}
	case "anydata":
		return types.AnyDataType{}
	case "json":
		return types.JSONType{}
	case "invalid":
		return types.Invalid
	case "error":
		return types.ErrorType{Detail: decodeType(raw.Detail)}
	case "union":
		out := types.UnionType{}
		for _, m := range raw.Members {
			out.Members = append(out.Members, decodeType(m))
		}
		return out
	case "tuple":
		out := types.TupleType{}
		for _, m := range raw.Members {
			out.Elements = append(out.Elements, decodeType(m))
		}
		return out
	case "list":
		length := -1
		if raw.Length != nil {
			length = *raw.Length
		}
		return types.ListType{Element: decodeType(raw.Element), Length: length}
	case "map":
		return types.MapType{Value: decodeType(raw.Value)}
	case "record":
		out := types.RecordType{RecordName: raw.Name, Rest: decodeType(raw.Rest), Sealed: raw.Sealed}
		if len(raw.Fields) > 0 {
			out.Fields = make(map[string]types.Type, len(raw.Fields))
			for name, ft := range raw.Fields {
				out.Fields[name] = decodeType(ft)
			}
		}
		return out
	case "object":
		return types.ObjectType{ObjectName: raw.Name}
	case "function":
		out := types.FunctionType{Return: decodeType(raw.Return)}
		for _, p := range raw.Params {
			out.Params = append(out.Params, decodeType(p))
		}
		return out
	case "future":
		return types.FutureType{Result: decodeType(raw.Result)}
	}
	return types.Invalid
}
