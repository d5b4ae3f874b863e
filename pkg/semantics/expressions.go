package semantics

import (
	"loom/compiler-go/pkg/ast"
	"loom/compiler-go/pkg/types"
)

// analyzeExpr validates an expression tree. topLevel is true only when the
// expression sits directly in the top-level statement list of an invokable
// body, which is the only position where worker interactions are legal.
func (a *Analyzer) analyzeExpr(c *analysisContext, e ast.Expression, topLevel bool) {
	switch x := e.(type) {
	case nil:

	case *ast.Identifier:
		a.checkIdentifier(c, x)

	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.BooleanLiteral,
		*ast.StringLiteral, *ast.NilLiteral:

	case *ast.ListLiteral:
		for _, el := range x.Elements {
			a.analyzeExpr(c, el, false)
		}

	case *ast.RecordLiteral:
		a.checkRecordLiteral(c, x)

	case *ast.FunctionCall:
		a.analyzeExpr(c, x.Callee, false)
		a.checkCallArguments(c, x)

	case *ast.IndexExpression:
		a.analyzeExpr(c, x.Target, false)
		a.analyzeExpr(c, x.Index, false)
		a.checkIndexBounds(x)

	case *ast.FieldAccess:
		a.analyzeExpr(c, x.Target, false)

	case *ast.LambdaExpression:
		a.analyzeLambda(x)

	case *ast.CheckExpression:
		a.analyzeExpr(c, x.Operand, topLevel)
		a.foldReturnedErrors(c, x.Operand)

	case *ast.SyncSendExpression:
		a.analyzeExpr(c, x.Value, false)
		a.recordSend(c, actionSyncSend, x.Target.Name, exprType(x.Value), x, topLevel)

	case *ast.ReceiveExpression:
		a.recordReceive(c, x.Source.Name, exprType(x), x, topLevel)

	case *ast.FlushExpression:
		a.checkFlush(c, x)
	}
}

func (a *Analyzer) checkIdentifier(c *analysisContext, id *ast.Identifier) {
	if c.uninitialized[id.Name] {
		a.errorf(CodeUninitializedVariable, id,
			"semantics: variable %q is used before being initialized", id.Name)
		delete(c.uninitialized, id.Name)
	}
	sym := id.Symbol
	if sym == nil {
		return
	}
	if sym.Module != "" && sym.Module != a.module && !sym.IsPublic() {
		a.errorf(CodeAttemptReferNonAccessibleSymbol, id,
			"semantics: symbol %q of module %q is not accessible here", id.Name, sym.Module)
	}
}

func (a *Analyzer) checkRecordLiteral(c *analysisContext, rec *ast.RecordLiteral) {
	seen := make(map[string]bool, len(rec.Fields))
	for _, f := range rec.Fields {
		if seen[f.Key] {
			a.errorf(CodeDuplicateKeyInRecordLiteral, f,
				"semantics: duplicate key %q in record literal", f.Key)
		}
		seen[f.Key] = true
		a.analyzeExpr(c, f.Value, false)
	}
}

func (a *Analyzer) checkCallArguments(c *analysisContext, call *ast.FunctionCall) {
	seen := make(map[string]bool)
	for _, arg := range call.Arguments {
		if named, ok := arg.(*ast.NamedArgument); ok {
			if seen[named.Name.Name] {
				a.errorf(CodeDuplicateNamedArgs, named,
					"semantics: duplicate named argument %q", named.Name.Name)
			}
			seen[named.Name.Name] = true
			a.analyzeExpr(c, named.Value, false)
			continue
		}
		a.analyzeExpr(c, arg, false)
	}
}

// checkIndexBounds flags constant indexes that fall outside a fixed-length
// list type.
func (a *Analyzer) checkIndexBounds(idx *ast.IndexExpression) {
	list, ok := exprType(idx.Target).(types.ListType)
	if !ok || list.Length < 0 {
		return
	}
	lit, ok := idx.Index.(*ast.IntegerLiteral)
	if !ok {
		return
	}
	if lit.Value < 0 || lit.Value >= int64(list.Length) {
		a.errorf(CodeArrayIndexOutOfRange, idx,
			"semantics: index %d is out of range for a list of length %d", lit.Value, list.Length)
	}
}

// foldReturnedErrors collects the error-shaped members of an expression's
// type into the context. Worker message types deliver these errors to the
// receiving side.
func (a *Analyzer) foldReturnedErrors(c *analysisContext, e ast.Expression) {
	for _, member := range types.Members(exprType(e)) {
		if err, ok := member.(types.ErrorType); ok {
			c.returnedErrors = append(c.returnedErrors, err)
		}
	}
}

func exprType(e ast.Expression) types.Type {
	if e == nil {
		return types.Invalid
	}
	if t := e.Type(); t != nil {
		return t
	}
	return types.Invalid
}
