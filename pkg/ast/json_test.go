package ast

import (
	"strings"
	"testing"

	"loom/compiler-go/pkg/types"
)

func TestModuleRoundTripsThroughJSON(t *testing.T) {
	fn := Fn("pipeline", []*Parameter{Param("input", types.String)}, types.Int,
		Decl("length", types.Int, Call("measure", ID("input"))),
		Worker("producer", nil,
			Send(Int(1), "function"),
		),
		Decl("first", types.Int, Recv("producer")),
		Match(Typed(ID("length"), types.MakeUnion(types.Int, types.String)),
			Clause(Int(0), Ret(Int(0))),
			ClauseBind(VarP("n", nil), nil, Ret(ID("n"))),
		),
	)
	mod := Mod("main", fn)

	data, err := EncodeModule(mod)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeModule(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Name != "main" {
		t.Fatalf("expected module name main, got %q", decoded.Name)
	}
	if len(decoded.Functions) != 1 {
		t.Fatalf("expected one function, got %d", len(decoded.Functions))
	}
	got := decoded.Functions[0]
	if got.Name.Name != "pipeline" {
		t.Fatalf("expected function pipeline, got %q", got.Name.Name)
	}
	if got.ReturnType == nil || got.ReturnType.Name() != "int" {
		t.Fatalf("expected int return type, got %v", got.ReturnType)
	}
	if len(got.Body.Statements) != len(fn.Body.Statements) {
		t.Fatalf("expected %d statements, got %d", len(fn.Body.Statements), len(got.Body.Statements))
	}
	worker, ok := got.Body.Statements[1].(*WorkerDeclaration)
	if !ok {
		t.Fatalf("expected worker declaration, got %T", got.Body.Statements[1])
	}
	if worker.Name.Name != "producer" {
		t.Fatalf("expected worker producer, got %q", worker.Name.Name)
	}
	match, ok := got.Body.Statements[3].(*MatchStatement)
	if !ok {
		t.Fatalf("expected match statement, got %T", got.Body.Statements[3])
	}
	if match.Subject.Type() == nil || match.Subject.Type().Name() != "int|string" {
		t.Fatalf("expected subject type int|string, got %v", match.Subject.Type())
	}
	if len(match.Clauses) != 2 || match.Clauses[1].Binding == nil {
		t.Fatalf("expected literal and binding clauses, got %v", match.Clauses)
	}
}

func TestDecodeModuleRejectsUnknownFields(t *testing.T) {
	_, err := DecodeModule([]byte(`{"name": "m", "surprise": true}`))
	if err == nil || !strings.Contains(err.Error(), "surprise") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestDecodeModuleRejectsUnknownKind(t *testing.T) {
	_, err := DecodeModule([]byte(`{"name": "m", "functions": [{"kind": "Mystery"}]}`))
	if err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestSpansSurviveRoundTrip(t *testing.T) {
	ret := Ret(nil)
	At(ret, 4, 9)
	fn := Fn("f", nil, nil, ret)
	data, err := EncodeModule(Mod("main", fn))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeModule(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := decoded.Functions[0].Body.Statements[0].Span()
	if got.Start.Line != 4 || got.Start.Column != 9 {
		t.Fatalf("expected span 4:9, got %v", got.Start)
	}
}
