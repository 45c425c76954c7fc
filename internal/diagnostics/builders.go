package diagnostics

import (
	"fmt"

	"github.com/google/closure-templates-sub001/internal/source"
)

// Builders for the diagnostics the semantic passes emit. Keeping the exact
// message text here gives the passes one place to agree with the tests on
// wording.

// UndefinedVariable reports a variable reference that resolves to nothing in
// scope. didYouMean may be empty.
func UndefinedVariable(loc source.Location, name, didYouMean string) *Diagnostic {
	d := NewError(fmt.Sprintf("Unknown variable '$%s'.", name)).
		WithCode(ErrUndefinedVariable).
		WithPrimaryLabel(loc, "not found in this scope")
	if didYouMean != "" {
		d = d.WithHelp(fmt.Sprintf("did you mean '$%s'?", didYouMean))
	}
	return d
}

// VariableRedefined reports a second declaration of a name already visible in
// the same frame.
func VariableRedefined(loc, prevLoc source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("Variable '$%s' already defined.", name)).
		WithCode(ErrVariableRedefined).
		WithPrimaryLabel(loc, "redefined here").
		WithSecondaryLabel(prevLoc, "previously defined here")
}

// UnknownFunction reports a call to a function missing from the registry.
func UnknownFunction(loc source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("Unknown function '%s'.", name)).
		WithCode(ErrUnknownFunction).
		WithPrimaryLabel(loc, "not a registered function")
}

// IncompatibleOperand reports an operator applied to types it cannot handle.
func IncompatibleOperand(loc source.Location, op, leftType, rightType string) *Diagnostic {
	return NewError(fmt.Sprintf("Using arithmetic operator '%s' on types '%s' and '%s'.", op, leftType, rightType)).
		WithCode(ErrIncompatibleOperand).
		WithPrimaryLabel(loc, "operand types are not numeric")
}

// FieldNotFound reports dot access to a field the record does not declare.
// didYouMean may be empty.
func FieldNotFound(loc source.Location, fieldName, typeName, didYouMean string) *Diagnostic {
	d := NewError(fmt.Sprintf("Undefined field '%s' for record type %s.", fieldName, typeName)).
		WithCode(ErrFieldNotFound).
		WithPrimaryLabel(loc, "no such field")
	if didYouMean != "" {
		d = d.WithHelp(fmt.Sprintf("did you mean '%s'?", didYouMean))
	}
	return d
}

// DotAccessNotSupported reports dot access on a type with no fields.
func DotAccessNotSupported(loc source.Location, typeName string) *Diagnostic {
	return NewError(fmt.Sprintf("Type %s does not support dot access.", typeName)).
		WithCode(ErrDotAccessNotAllowed).
		WithPrimaryLabel(loc, "dot access here")
}

// BadIndexType reports list indexing with a non-int key.
func BadIndexType(loc source.Location, keyType, baseType string) *Diagnostic {
	return NewError(fmt.Sprintf("Bad index type %s for %s.", keyType, baseType)).
		WithCode(ErrBadIndexType).
		WithPrimaryLabel(loc, "list indices must be int")
}

// BadKeyType reports map access with a key not assignable to the key type.
func BadKeyType(loc source.Location, keyType, baseType string) *Diagnostic {
	return NewError(fmt.Sprintf("Bad key type %s for %s.", keyType, baseType)).
		WithCode(ErrBadKeyType).
		WithPrimaryLabel(loc, "key type is not assignable")
}

// BracketAccessNotSupported reports bracket access on a non-indexable type.
func BracketAccessNotSupported(loc source.Location, typeName string) *Diagnostic {
	return NewError(fmt.Sprintf("Type %s does not support bracket access.", typeName)).
		WithCode(ErrBracketNotAllowed).
		WithPrimaryLabel(loc, "bracket access here")
}

// WrongArgumentCount reports a call with an arity the signature rejects.
func WrongArgumentCount(loc source.Location, callee string, expected string, found int) *Diagnostic {
	return NewError(fmt.Sprintf("Function '%s' called with %d arguments (expected %s).", callee, found, expected)).
		WithCode(ErrWrongArgumentCount).
		WithPrimaryLabel(loc, "wrong number of arguments")
}

// BadArgumentType reports an argument whose type a signature position rejects.
func BadArgumentType(loc source.Location, callee string, position int, expected, found string) *Diagnostic {
	return NewError(fmt.Sprintf("Function '%s' called with argument %d of type %s (expected %s).", callee, position, found, expected)).
		WithCode(ErrBadArgumentType).
		WithPrimaryLabel(loc, "argument type is not assignable")
}

// CannotIterate reports a for/foreach over a non-list expression.
func CannotIterate(loc source.Location, exprText, typeName string) *Diagnostic {
	return NewError(fmt.Sprintf("Cannot iterate over %s of type %s.", exprText, typeName)).
		WithCode(ErrCannotIterate).
		WithPrimaryLabel(loc, "expression must be a list")
}

// DuplicateKey reports a repeated key in a map or record literal.
func DuplicateKey(loc source.Location, key string) *Diagnostic {
	return NewError(fmt.Sprintf("Duplicate key '%s' in literal.", key)).
		WithCode(ErrDuplicateKey).
		WithPrimaryLabel(loc, "key repeated here")
}

// NullishAccess reports a plain field or item access on a possibly null or
// undefined base. Recoverable: checking continues as if the base were
// non-nullish.
func NullishAccess(loc source.Location, typeName string) *Diagnostic {
	return NewError(fmt.Sprintf("Accessing a value of nullable type %s without a null-safe operator.", typeName)).
		WithCode(ErrNullishAccess).
		WithPrimaryLabel(loc, "base may be null here").
		WithHelp("use '?.' or '?[' to make the access null-safe")
}

// CannotNarrow reports a narrowing that would leave no possible runtime value.
func CannotNarrow(loc source.Location, fromType, toType string) *Diagnostic {
	return NewError(fmt.Sprintf("Cannot narrow expression of type '%s' to '%s'.", fromType, toType)).
		WithCode(ErrCannotNarrow).
		WithPrimaryLabel(loc, "condition can never hold")
}

// NotComparable reports an equality comparison between unrelated types.
// Kept as a warning: comparisons always yield bool.
func NotComparable(loc source.Location, leftType, rightType string) *Diagnostic {
	return NewWarning(fmt.Sprintf("Types '%s' and '%s' are not comparable.", leftType, rightType)).
		WithCode(ErrNotComparable).
		WithPrimaryLabel(loc, "comparison is always false")
}

// ExternalCallAdvisory signals that a template's computed indirect
// parameters are a lower bound: a data="all" call targets a template
// outside the compiled set.
func ExternalCallAdvisory(templateName string) *Diagnostic {
	return NewInfo(fmt.Sprintf("Indirect parameters of template '%s' may be incomplete: it forwards data to a template outside this compilation.", templateName)).
		WithCode(InfoExternalCall)
}

// ExternalDelCallAdvisory is the delegate-call variant: dispatch happens at
// render time, so the callee's parameters are unknowable here.
func ExternalDelCallAdvisory(templateName string) *Diagnostic {
	return NewInfo(fmt.Sprintf("Indirect parameters of template '%s' may be incomplete: it forwards data through a delegate call resolved at render time.", templateName)).
		WithCode(InfoExternalDelCall)
}

// PluralNotNumeric reports a plural block whose scrutinee is not an integer.
func PluralNotNumeric(loc source.Location, typeName string) *Diagnostic {
	return NewError(fmt.Sprintf("Plural expression must be an integer type, found '%s'.", typeName)).
		WithCode(ErrTypeMismatch).
		WithPrimaryLabel(loc, "expression must be an integer")
}

// SelectNotString reports a select block whose scrutinee is not a string.
func SelectNotString(loc source.Location, typeName string) *Diagnostic {
	return NewError(fmt.Sprintf("Select expression must be of string type, found '%s'.", typeName)).
		WithCode(ErrTypeMismatch).
		WithPrimaryLabel(loc, "expression must be a string")
}

// DefaultTypeMismatch reports a parameter default not assignable to the
// declared type.
func DefaultTypeMismatch(loc source.Location, declared, found string) *Diagnostic {
	return NewError(fmt.Sprintf("Default value of type %s is not assignable to declared type %s.", found, declared)).
		WithCode(ErrDefaultTypeMismatch).
		WithPrimaryLabel(loc, "default value here")
}
