package types

// IsAssignableFrom reports whether a value of type source may be used where
// target is declared. The relation is structural: every member of a union
// source must be assignable to some member of a union target, containers are
// covariant in their element types, and records are width-subtyped (the
// source must cover every required target field).
//
// Unknown and any accept everything, and unknown/never sources are accepted
// everywhere; the relation is reflexive by construction.
func IsAssignableFrom(target, source Type) bool {
	if target == nil || source == nil {
		return false
	}
	if IsUnknown(target) || IsAny(target) || IsUnknown(source) || IsNever(source) {
		return true
	}

	// Every possible source member must land somewhere in the target.
	if su, ok := source.(*UnionType); ok {
		for _, m := range su.Members {
			if !IsAssignableFrom(target, m) {
				return false
			}
		}
		return true
	}
	if tu, ok := target.(*UnionType); ok {
		for _, m := range tu.Members {
			if IsAssignableFrom(m, source) {
				return true
			}
		}
		return false
	}

	switch t := target.(type) {
	case *PrimitiveType:
		return t.Equals(source)
	case *ListType:
		if s, ok := source.(*ListType); ok {
			return IsAssignableFrom(t.Element, s.Element)
		}
	case *MapType:
		if s, ok := source.(*MapType); ok {
			return IsAssignableFrom(t.Key, s.Key) && IsAssignableFrom(t.Value, s.Value)
		}
	case *LegacyMapType:
		if s, ok := source.(*LegacyMapType); ok {
			return IsAssignableFrom(t.Key, s.Key) && IsAssignableFrom(t.Value, s.Value)
		}
	case *RecordType:
		if s, ok := source.(*RecordType); ok {
			return recordAssignable(t, s)
		}
	case *NamedType:
		return t.Equals(source)
	case *VeType:
		if s, ok := source.(*VeType); ok {
			return IsAssignableFrom(t.Data, s.Data)
		}
	case *FunctionType:
		if s, ok := source.(*FunctionType); ok {
			return functionAssignable(t, s)
		}
	}
	return false
}

func recordAssignable(target, source *RecordType) bool {
	for _, tf := range target.Fields {
		sf, ok := source.Field(tf.Name)
		if !ok {
			if tf.Optional {
				continue
			}
			return false
		}
		if !IsAssignableFrom(tf.Type, sf.Type) {
			return false
		}
		// A maybe-absent source field cannot satisfy a required target field.
		if sf.Optional && !tf.Optional {
			return false
		}
	}
	return true
}

func functionAssignable(target, source *FunctionType) bool {
	if len(target.Params) != len(source.Params) {
		return false
	}
	for i := range target.Params {
		// Parameters are contravariant.
		if !IsAssignableFrom(source.Params[i].Type, target.Params[i].Type) {
			return false
		}
	}
	return IsAssignableFrom(target.Return, source.Return)
}

// IsNullable reports whether t admits the null value.
func IsNullable(t Type) bool {
	return ContainsMember(t, func(m Type) bool { return IsPrimitiveName(m, TYPE_NULL) })
}

// IsUndefinable reports whether t admits the undefined value.
func IsUndefinable(t Type) bool {
	return ContainsMember(t, func(m Type) bool { return IsPrimitiveName(m, TYPE_UNDEFINED) })
}

// IsNullish reports whether t admits null or undefined.
func IsNullish(t Type) bool {
	return IsNullable(t) || IsUndefinable(t)
}

// RemoveNull strips the null member from t. Stripping everything yields never.
func RemoveNull(t Type) Type {
	if IsUnknown(t) || IsAny(t) {
		return t
	}
	return FilterMembers(t, func(m Type) bool { return !IsPrimitiveName(m, TYPE_NULL) })
}

// RemoveUndefined strips the undefined member from t.
func RemoveUndefined(t Type) Type {
	if IsUnknown(t) || IsAny(t) {
		return t
	}
	return FilterMembers(t, func(m Type) bool { return !IsPrimitiveName(m, TYPE_UNDEFINED) })
}

// RemoveNullish strips both null and undefined members from t.
func RemoveNullish(t Type) Type {
	return RemoveUndefined(RemoveNull(t))
}

// KeepNullish isolates the nullish members of t. When t has none (the value
// is being compared against null anyway), the conservative answer is the full
// nullish union rather than never.
func KeepNullish(t Type) Type {
	if IsNullish(t) {
		return FilterMembers(t, IsNullOrUndefined)
	}
	return NullOrUndefined
}

// RemoveFalsy strips the members a truthiness test rules out: null,
// undefined, and... nothing else provable (false is a value, not a type
// member, in this algebra), so this is RemoveNullish.
func RemoveFalsy(t Type) Type {
	return RemoveNullish(t)
}

// LeastUpperBound yields the type of an expression that may produce either t1
// or t2 (a ternary's branches, an if/else join). When one side already covers
// the other it wins; otherwise the result is the union.
func LeastUpperBound(t1, t2 Type) Type {
	if t1 == nil {
		return t2
	}
	if t2 == nil {
		return t1
	}
	if IsAssignableFrom(t1, t2) {
		return t1
	}
	if IsAssignableFrom(t2, t1) {
		return t2
	}
	return Union(t1, t2)
}

// StricterType returns whichever of the two is assignable to the other, i.e.
// the narrower constraint, or nil when the types are unrelated.
func StricterType(t1, t2 Type) Type {
	if IsAssignableFrom(t1, t2) {
		return t2
	}
	if IsAssignableFrom(t2, t1) {
		return t1
	}
	return nil
}

func isNumericOrUnknown(t Type) bool {
	return IsUnknown(t) || IsNumeric(t)
}

// ArithmeticType resolves the result of -, *, % and the numeric side of +.
// Unknown operands absorb; int op int is int; anything involving float is
// float. A nil result means the operands are not arithmetic.
func ArithmeticType(left, right Type) Type {
	l := RemoveNull(left)
	r := RemoveNull(right)
	if !isNumericOrUnknown(l) || !isNumericOrUnknown(r) {
		return nil
	}
	if IsUnknown(l) || IsUnknown(r) {
		return Unknown
	}
	if l.Equals(r) {
		return l
	}
	hasFloat := ContainsMember(l, isFloatType) || ContainsMember(r, isFloatType)
	hasInt := ContainsMember(l, isIntType) && ContainsMember(r, isIntType)
	members := make([]Type, 0, 2)
	if hasFloat {
		members = append(members, Float)
	}
	if hasInt {
		members = append(members, Int)
	}
	return Union(members...)
}

// DivisionType resolves '/'. Division never yields int, even for int
// operands; unknown still absorbs.
func DivisionType(left, right Type) Type {
	l := RemoveNull(left)
	r := RemoveNull(right)
	if !isNumericOrUnknown(l) || !isNumericOrUnknown(r) {
		return nil
	}
	if IsUnknown(l) || IsUnknown(r) {
		return Unknown
	}
	return Float
}

// PlusType resolves '+', which is arithmetic when both sides are numeric and
// string concatenation when either side is stringish. nil means neither
// interpretation applies and the operation is a type error.
func PlusType(left, right Type) Type {
	if result := ArithmeticType(left, right); result != nil {
		return result
	}
	if illegalPlusOperand(left) || illegalPlusOperand(right) {
		return nil
	}
	if IsStringish(left) || IsStringish(right) {
		return String
	}
	if IsUnknown(left) || IsUnknown(right) {
		return Unknown
	}
	return nil
}

// Containers never take part in + even when the other side is a string.
func illegalPlusOperand(t Type) bool {
	return ContainsMember(t, func(m Type) bool {
		switch m.(type) {
		case *ListType, *MapType, *LegacyMapType, *RecordType:
			return true
		}
		return false
	})
}

func isFloatType(t Type) bool { return IsPrimitiveName(t, TYPE_FLOAT) }
func isIntType(t Type) bool   { return IsPrimitiveName(t, TYPE_INT) }
