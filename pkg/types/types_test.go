package types

import "testing"

func TestMakeUnionFlattensAndDeduplicates(t *testing.T) {
	inner := MakeUnion(Int, String)
	got := MakeUnion(inner, Int, ErrorType{})
	union, ok := got.(UnionType)
	if !ok {
		t.Fatalf("expected a union, got %T", got)
	}
	if len(union.Members) != 3 {
		t.Fatalf("expected 3 members, got %v", union.Name())
	}
	if union.Name() != "int|string|error" {
		t.Fatalf("unexpected member order: %s", union.Name())
	}
}

func TestMakeUnionCollapsesSingletons(t *testing.T) {
	if got := MakeUnion(Int, Int); !Same(got, Int) {
		t.Fatalf("expected int, got %v", got)
	}
	if got := MakeUnion(); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	if got := MakeUnion(Invalid, Int); !Same(got, Int) {
		t.Fatalf("invalid members must be dropped, got %v", got)
	}
}

func TestMembersDecomposesNestedUnions(t *testing.T) {
	u := UnionType{Members: []Type{Int, UnionType{Members: []Type{String, Nil}}}}
	members := Members(u)
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}
	if !ContainsNil(u) {
		t.Fatal("union with nil member must admit nil")
	}
	if ContainsNil(Int) {
		t.Fatal("int must not admit nil")
	}
}

func TestAssignablePrimitives(t *testing.T) {
	if !Assignable(Byte, Int) {
		t.Fatal("byte must narrow into int")
	}
	if Assignable(Int, Byte) {
		t.Fatal("int must not narrow into byte")
	}
	if !Assignable(Int, MakeUnion(Int, String)) {
		t.Fatal("member must be assignable to its union")
	}
	if Assignable(MakeUnion(Int, String), Int) {
		t.Fatal("union must not be assignable to one member")
	}
	if !Assignable(MakeUnion(Int, Byte), Int) {
		t.Fatal("every member assignable implies the union is assignable")
	}
}

func TestAssignableInvalidSentinelNeverCascades(t *testing.T) {
	if !Assignable(Invalid, Int) {
		t.Fatal("invalid source must be assignable everywhere")
	}
	if !Assignable(Int, Invalid) {
		t.Fatal("invalid target must accept everything")
	}
	if !IsInvalid(nil) {
		t.Fatal("absent types count as invalid")
	}
}

func TestAssignableStructuredTypes(t *testing.T) {
	pair := TupleType{Elements: []Type{Int, String}}
	if !Assignable(pair, TupleType{Elements: []Type{Int, String}}) {
		t.Fatal("identical tuples must be assignable")
	}
	if Assignable(pair, TupleType{Elements: []Type{Int}}) {
		t.Fatal("tuple arity must match")
	}
	open := ListType{Element: Int, Length: -1}
	fixed := ListType{Element: Int, Length: 3}
	if !Assignable(fixed, open) {
		t.Fatal("fixed list must flow into an open list")
	}
	if Assignable(open, fixed) {
		t.Fatal("open list must not flow into a fixed list")
	}
}

func TestRecordAssignability(t *testing.T) {
	point := RecordType{Fields: map[string]Type{"x": Int, "y": Int}, Sealed: true}
	wide := RecordType{Fields: map[string]Type{"x": Int, "y": Int, "z": Int}, Sealed: true}
	if !Assignable(point, point) {
		t.Fatal("record must be assignable to itself")
	}
	if Assignable(wide, point) {
		t.Fatal("sealed record must reject excess fields")
	}
	openInts := RecordType{Fields: map[string]Type{"x": Int}, Rest: Int}
	if !Assignable(wide, openInts) {
		t.Fatal("open record must accept excess int fields")
	}
	named := RecordType{RecordName: "Point", Fields: map[string]Type{"x": Int}}
	if !Assignable(named, RecordType{RecordName: "Point"}) {
		t.Fatal("named records match by name")
	}
}

func TestAnyDataAndJSONShapes(t *testing.T) {
	if !Assignable(Int, AnyDataType{}) {
		t.Fatal("primitives are anydata")
	}
	if Assignable(ObjectType{ObjectName: "Conn"}, AnyDataType{}) {
		t.Fatal("objects are not anydata")
	}
	if !Assignable(MapType{Value: String}, JSONType{}) {
		t.Fatal("string maps are json shaped")
	}
	if Assignable(Byte, JSONType{}) {
		t.Fatal("byte is not json shaped")
	}
	if !Assignable(ObjectType{ObjectName: "Conn"}, AnyType{}) {
		t.Fatal("any accepts everything")
	}
}

func TestSameIgnoresUnionMemberOrder(t *testing.T) {
	a := UnionType{Members: []Type{Int, String}}
	b := UnionType{Members: []Type{String, Int}}
	if !Same(a, b) {
		t.Fatal("unions with the same members must be identical")
	}
	if Same(a, UnionType{Members: []Type{Int, Nil}}) {
		t.Fatal("unions with different members must differ")
	}
}

func TestSymbolFlagAccessors(t *testing.T) {
	s := &Symbol{Name: "log", Flags: FlagPublic | FlagListener}
	if !s.IsPublic() || !s.IsListener() {
		t.Fatal("flag accessors must reflect set flags")
	}
	if s.IsNative() {
		t.Fatal("unset flag must read false")
	}
	var absent *Symbol
	if absent.IsPublic() {
		t.Fatal("nil symbol must answer false")
	}
}
