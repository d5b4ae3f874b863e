package types

import (
	"sort"
	"strings"
)

// Type represents a Loom type as resolved by the upstream type checker.
// The semantic analysis pass consumes types read-only.
type Type interface {
	Name() string
}

type PrimitiveKind string

const (
	PrimitiveNil     PrimitiveKind = "nil"
	PrimitiveBool    PrimitiveKind = "bool"
	PrimitiveInt     PrimitiveKind = "int"
	PrimitiveByte    PrimitiveKind = "byte"
	PrimitiveFloat   PrimitiveKind = "float"
	PrimitiveDecimal PrimitiveKind = "decimal"
	PrimitiveString  PrimitiveKind = "string"
)

type PrimitiveType struct {
	Kind PrimitiveKind
}

func (p PrimitiveType) Name() string { return string(p.Kind) }

// Convenience values for the common primitives.
var (
	Nil     = PrimitiveType{Kind: PrimitiveNil}
	Bool    = PrimitiveType{Kind: PrimitiveBool}
	Int     = PrimitiveType{Kind: PrimitiveInt}
	Byte    = PrimitiveType{Kind: PrimitiveByte}
	Float   = PrimitiveType{Kind: PrimitiveFloat}
	Decimal = PrimitiveType{Kind: PrimitiveDecimal}
	String  = PrimitiveType{Kind: PrimitiveString}
)

// AnyType accepts every Loom value.
type AnyType struct{}

func (AnyType) Name() string { return "any" }

// AnyDataType accepts every plain-data value (no objects, no functions).
type AnyDataType struct{}

func (AnyDataType) Name() string { return "anydata" }

// JSONType accepts nil, bool, int, float, decimal, string, and json-shaped
// maps and lists.
type JSONType struct{}

func (JSONType) Name() string { return "json" }

// InvalidType is the error sentinel attached to nodes whose types could not
// be resolved. Upstream stages have already reported it; the analyzer skips
// every check that touches one.
type InvalidType struct{}

func (InvalidType) Name() string { return "$invalid" }

var Invalid = InvalidType{}

// ErrorType is the type of Loom error values. Detail may be nil.
type ErrorType struct {
	Detail Type
}

func (e ErrorType) Name() string {
	if e.Detail == nil {
		return "error"
	}
	return "error<" + e.Detail.Name() + ">"
}

type UnionType struct {
	Members []Type
}

func (u UnionType) Name() string {
	parts := make([]string, 0, len(u.Members))
	for _, m := range u.Members {
		if m == nil {
			continue
		}
		parts = append(parts, m.Name())
	}
	return strings.Join(parts, "|")
}

type TupleType struct {
	Elements []Type
}

func (t TupleType) Name() string {
	parts := make([]string, 0, len(t.Elements))
	for _, e := range t.Elements {
		if e == nil {
			continue
		}
		parts = append(parts, e.Name())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ListType is a Loom list. Length is -1 for open lists and the declared
// length for fixed-length lists.
type ListType struct {
	Element Type
	Length  int
}

func (l ListType) Name() string {
	if l.Element == nil {
		return "list"
	}
	return l.Element.Name() + "[]"
}

type MapType struct {
	Value Type
}

func (m MapType) Name() string {
	if m.Value == nil {
		return "map"
	}
	return "map<" + m.Value.Name() + ">"
}

// RecordType describes a record. Rest is the type excess fields must carry
// for open records; Sealed records admit no excess fields.
type RecordType struct {
	RecordName string
	Fields     map[string]Type
	Rest       Type
	Sealed     bool
}

func (r RecordType) Name() string {
	if r.RecordName != "" {
		return "record:" + r.RecordName
	}
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "record{" + strings.Join(names, ",") + "}"
}

// ObjectType is a behavioural type; only its identity matters to this pass.
type ObjectType struct {
	ObjectName string
}

func (o ObjectType) Name() string { return "object:" + o.ObjectName }

type FunctionType struct {
	Params []Type
	Return Type
}

func (FunctionType) Name() string { return "function" }

// FutureType is the result type of an asynchronous worker start.
type FutureType struct {
	Result Type
}

func (f FutureType) Name() string {
	if f.Result == nil {
		return "future"
	}
	return "future<" + f.Result.Name() + ">"
}

// IsInvalid reports whether t is the error sentinel (or absent entirely).
func IsInvalid(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(InvalidType)
	return ok
}

// IsNil reports whether t is exactly the nil type.
func IsNil(t Type) bool {
	p, ok := t.(PrimitiveType)
	return ok && p.Kind == PrimitiveNil
}

// IsValueType reports whether t is a simple value type a literal can match.
func IsValueType(t Type) bool {
	_, ok := t.(PrimitiveType)
	return ok
}

// Members decomposes t into its member types: a union decomposes to its
// flattened members, any other type is a singleton set.
func Members(t Type) []Type {
	if t == nil {
		return nil
	}
	union, ok := t.(UnionType)
	if !ok {
		return []Type{t}
	}
	var members []Type
	for _, m := range union.Members {
		members = append(members, Members(m)...)
	}
	return members
}

// MakeUnion flattens and deduplicates members into the smallest equivalent
// type: nil for empty input, the sole member for singletons, a union
// otherwise. Member order follows first appearance.
func MakeUnion(members ...Type) Type {
	var flat []Type
	for _, m := range members {
		if m == nil || IsInvalid(m) {
			continue
		}
		for _, piece := range Members(m) {
			duplicate := false
			for _, seen := range flat {
				if Same(seen, piece) {
					duplicate = true
					break
				}
			}
			if !duplicate {
				flat = append(flat, piece)
			}
		}
	}
	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	}
	return UnionType{Members: flat}
}

// ContainsNil reports whether t admits the nil value.
func ContainsNil(t Type) bool {
	for _, m := range Members(t) {
		if IsNil(m) {
			return true
		}
	}
	return false
}
