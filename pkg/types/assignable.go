package types

// Assignable performs the structural compatibility check the analyzer
// delegates to the type-checking stage. It intentionally answers true when
// either side is the invalid sentinel so that already-reported nodes do not
// cascade into fresh diagnostics.
func Assignable(from, to Type) bool {
	if to == nil || IsInvalid(to) {
		return true
	}
	if from == nil {
		return false
	}
	if IsInvalid(from) {
		return true
	}
	if Same(from, to) {
		return true
	}

	// A union source flows into any target all of its members flow into,
	// whatever shape the target has.
	if union, ok := from.(UnionType); ok {
		for _, member := range Members(union) {
			if !Assignable(member, to) {
				return false
			}
		}
		return true
	}

	switch target := to.(type) {
	case AnyType:
		return true
	case AnyDataType:
		return isAnyData(from)
	case JSONType:
		return isJSONShaped(from)
	case PrimitiveType:
		if source, ok := from.(PrimitiveType); ok {
			// byte narrows into int.
			return source.Kind == PrimitiveByte && target.Kind == PrimitiveInt
		}
		return false
	case ErrorType:
		source, ok := from.(ErrorType)
		if !ok {
			return false
		}
		if target.Detail == nil {
			return true
		}
		return Assignable(source.Detail, target.Detail)
	case UnionType:
		for _, member := range Members(from) {
			if !assignableToAny(member, target.Members) {
				return false
			}
		}
		return true
	case TupleType:
		source, ok := from.(TupleType)
		if !ok || len(source.Elements) != len(target.Elements) {
			return false
		}
		for i, elem := range source.Elements {
			if !Assignable(elem, target.Elements[i]) {
				return false
			}
		}
		return true
	case ListType:
		source, ok := from.(ListType)
		if !ok {
			return false
		}
		if target.Length >= 0 && source.Length != target.Length {
			return false
		}
		return Assignable(source.Element, target.Element)
	case MapType:
		source, ok := from.(MapType)
		if !ok {
			return false
		}
		return Assignable(source.Value, target.Value)
	case RecordType:
		return recordAssignable(from, target)
	case ObjectType:
		source, ok := from.(ObjectType)
		return ok && source.ObjectName == target.ObjectName
	case FunctionType:
		source, ok := from.(FunctionType)
		if !ok || len(source.Params) != len(target.Params) {
			return false
		}
		for i, param := range target.Params {
			if !Assignable(param, source.Params[i]) {
				return false
			}
		}
		return Assignable(source.Return, target.Return)
	case FutureType:
		source, ok := from.(FutureType)
		return ok && Assignable(source.Result, target.Result)
	}
	return false
}

// Same reports structural type identity.
func Same(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch left := a.(type) {
	case PrimitiveType:
		right, ok := b.(PrimitiveType)
		return ok && left.Kind == right.Kind
	case AnyType:
		_, ok := b.(AnyType)
		return ok
	case AnyDataType:
		_, ok := b.(AnyDataType)
		return ok
	case JSONType:
		_, ok := b.(JSONType)
		return ok
	case InvalidType:
		_, ok := b.(InvalidType)
		return ok
	case ErrorType:
		right, ok := b.(ErrorType)
		return ok && Same(left.Detail, right.Detail)
	case UnionType:
		right, ok := b.(UnionType)
		if !ok {
			return false
		}
		leftMembers := Members(left)
		rightMembers := Members(right)
		if len(leftMembers) != len(rightMembers) {
			return false
		}
		for _, m := range leftMembers {
			if !containsSame(rightMembers, m) {
				return false
			}
		}
		return true
	case TupleType:
		right, ok := b.(TupleType)
		if !ok || len(left.Elements) != len(right.Elements) {
			return false
		}
		for i, elem := range left.Elements {
			if !Same(elem, right.Elements[i]) {
				return false
			}
		}
		return true
	case ListType:
		right, ok := b.(ListType)
		return ok && left.Length == right.Length && Same(left.Element, right.Element)
	case MapType:
		right, ok := b.(MapType)
		return ok && Same(left.Value, right.Value)
	case RecordType:
		right, ok := b.(RecordType)
		if !ok {
			return false
		}
		if left.RecordName != "" || right.RecordName != "" {
			return left.RecordName == right.RecordName
		}
		if left.Sealed != right.Sealed || len(left.Fields) != len(right.Fields) {
			return false
		}
		for name, fieldType := range left.Fields {
			other, ok := right.Fields[name]
			if !ok || !Same(fieldType, other) {
				return false
			}
		}
		return Same(left.Rest, right.Rest)
	case ObjectType:
		right, ok := b.(ObjectType)
		return ok && left.ObjectName == right.ObjectName
	case FunctionType:
		right, ok := b.(FunctionType)
		if !ok || len(left.Params) != len(right.Params) {
			return false
		}
		for i, param := range left.Params {
			if !Same(param, right.Params[i]) {
				return false
			}
		}
		return Same(left.Return, right.Return)
	case FutureType:
		right, ok := b.(FutureType)
		return ok && Same(left.Result, right.Result)
	}
	return false
}

func assignableToAny(from Type, targets []Type) bool {
	for _, target := range targets {
		if Assignable(from, target) {
			return true
		}
	}
	return false
}

func containsSame(haystack []Type, needle Type) bool {
	for _, t := range haystack {
		if Same(t, needle) {
			return true
		}
	}
	return false
}

func recordAssignable(from Type, target RecordType) bool {
	source, ok := from.(RecordType)
	if !ok {
		return false
	}
	if target.RecordName != "" && source.RecordName == target.RecordName {
		return true
	}
	for name, fieldType := range target.Fields {
		sourceField, ok := source.Fields[name]
		if !ok || !Assignable(sourceField, fieldType) {
			return false
		}
	}
	if target.Sealed {
		for name := range source.Fields {
			if _, ok := target.Fields[name]; !ok {
				return false
			}
		}
		return true
	}
	if target.Rest == nil {
		return true
	}
	for name, sourceField := range source.Fields {
		if _, ok := target.Fields[name]; ok {
			continue
		}
		if !Assignable(sourceField, target.Rest) {
			return false
		}
	}
	return true
}

func isAnyData(t Type) bool {
	switch v := t.(type) {
	case PrimitiveType, AnyDataType, JSONType:
		return true
	case UnionType:
		for _, m := range v.Members {
			if !isAnyData(m) {
				return false
			}
		}
		return true
	case TupleType:
		for _, e := range v.Elements {
			if !isAnyData(e) {
				return false
			}
		}
		return true
	case ListType:
		return isAnyData(v.Element)
	case MapType:
		return isAnyData(v.Value)
	case RecordType:
		for _, f := range v.Fields {
			if !isAnyData(f) {
				return false
			}
		}
		return v.Rest == nil || isAnyData(v.Rest)
	}
	return false
}

func isJSONShaped(t Type) bool {
	switch v := t.(type) {
	case JSONType:
		return true
	case PrimitiveType:
		return v.Kind != PrimitiveByte
	case UnionType:
		for _, m := range v.Members {
			if !isJSONShaped(m) {
				return false
			}
		}
		return true
	case ListType:
		return isJSONShaped(v.Element)
	case MapType:
		return isJSONShaped(v.Value)
	}
	return false
}
