package semantics

import (
	"testing"

	"loom/compiler-go/pkg/ast"
	"loom/compiler-go/pkg/types"
)

func TestDuplicateRecordLiteralKeys(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.Decl("r", nil, ast.Rec(
			ast.Field("name", ast.Str("a")),
			ast.Field("name", ast.Str("b")),
		)),
	)
	diags := analyzeFn(t, fn)
	expectCodes(t, diags, CodeDuplicateKeyInRecordLiteral)
}

func TestDuplicateNamedArguments(t *testing.T) {
	fn := ast.Fn("f", nil, nil,
		ast.ExprStmt(ast.Call("configure",
			ast.NArg("host", ast.Str("a")),
			ast.NArg("host", ast.Str("b")),
		)),
	)
	diags := analyzeFn(t, fn)
	expectCodes(t, diags, CodeDuplicateNamedArgs)
}

func TestConstantIndexOutOfRange(t *testing.T) {
	fixed := types.ListType{Element: types.Int, Length: 3}
	fn := ast.Fn("f", nil, nil,
		ast.Decl("x", types.Int, ast.Idx(ast.Typed(ast.ID("xs"), fixed), ast.Int(5))),
	)
	diags := analyzeFn(t, fn)
	expectCodes(t, diags, CodeArrayIndexOutOfRange)
}

func TestConstantIndexInRange(t *testing.T) {
	fixed := types.ListType{Element: types.Int, Length: 3}
	fn := ast.Fn("f", nil, nil,
		ast.Decl("x", types.Int, ast.Idx(ast.Typed(ast.ID("xs"), fixed), ast.Int(2))),
	)
	expectNone(t, analyzeFn(t, fn))
}

func TestOpenListIndexIsNotBoundsChecked(t *testing.T) {
	open := types.ListType{Element: types.Int, Length: -1}
	fn := ast.Fn("f", nil, nil,
		ast.Decl("x", types.Int, ast.Idx(ast.Typed(ast.ID("xs"), open), ast.Int(99))),
	)
	expectNone(t, analyzeFn(t, fn))
}

func TestReferenceToNonAccessibleSymbol(t *testing.T) {
	secret := &types.Symbol{Name: "secret", Module: "vault", Type: types.Int}
	fn := ast.Fn("f", nil, nil,
		ast.ExprStmt(ast.Call("use", ast.IDSym("secret", secret))),
	)
	diags := analyzeFn(t, fn)
	expectCodes(t, diags, CodeAttemptReferNonAccessibleSymbol)
}

func TestReferenceToPublicSymbolOfOtherModule(t *testing.T) {
	exported := &types.Symbol{Name: "shared", Module: "vault", Flags: types.FlagPublic, Type: types.Int}
	fn := ast.Fn("f", nil, nil,
		ast.ExprStmt(ast.Call("use", ast.IDSym("shared", exported))),
	)
	expectNone(t, analyzeFn(t, fn))
}

type typeSymbolMap map[string]*types.Symbol

func (m typeSymbolMap) TypeSymbol(name string) *types.Symbol { return m[name] }

func TestPublicFunctionExposingPrivateType(t *testing.T) {
	hidden := types.RecordType{RecordName: "Config", Fields: map[string]types.Type{"n": types.Int}}
	fn := ast.Fn("f", []*ast.Parameter{ast.Param("cfg", hidden)}, nil,
		ast.Ret(nil),
	)
	fn.Symbol = &types.Symbol{Name: "f", Module: "main", Flags: types.FlagPublic}

	a := New()
	a.SetSymbolQuery(typeSymbolMap{"Config": {Name: "Config", Module: "main"}})
	diags, err := a.AnalyzeModule(ast.Mod("main", fn))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectCodes(t, diags, CodeAttemptExposeNonPublicSymbol)
}

func TestPublicFunctionExposingPublicType(t *testing.T) {
	shared := types.RecordType{RecordName: "Config", Fields: map[string]types.Type{"n": types.Int}}
	fn := ast.Fn("f", []*ast.Parameter{ast.Param("cfg", shared)}, nil,
		ast.Ret(nil),
	)
	fn.Symbol = &types.Symbol{Name: "f", Module: "main", Flags: types.FlagPublic}

	a := New()
	a.SetSymbolQuery(typeSymbolMap{"Config": {Name: "Config", Module: "main", Flags: types.FlagPublic}})
	diags, err := a.AnalyzeModule(ast.Mod("main", fn))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectNone(t, diags)
}

func TestCheckExpressionAccumulatesErrorTypes(t *testing.T) {
	recv := ast.Recv("w")
	call := ast.Typed(ast.Call("risky"), types.MakeUnion(types.Int, types.ErrorType{}))
	fn := ast.Fn("f", nil, nil,
		ast.Worker("w", nil,
			ast.Decl("v", nil, ast.Check(call)),
			ast.Send(ast.Int(1), "function"),
		),
		ast.Decl("x", nil, recv),
	)
	expectNone(t, analyzeFn(t, fn))
	if recv.ResultType == nil || recv.ResultType.Name() != "int|error" {
		t.Fatalf("expected receive type int|error, got %v", recv.ResultType)
	}
}
