// Package types implements the template language's type algebra: primitive
// and sanitized-content types, containers (list, map, legacy object map,
// record), unions with normalization, and the assignability and narrowing
// helpers the semantic passes are built on.
//
// Design principles:
// - Types are immutable after creation
// - Type equality is structural (deep comparison)
// - All types render to the canonical textual form used in diagnostics
package types

import (
	"fmt"
	"strings"
)

// Type is the semantic representation of a template type.
type Type interface {
	// String returns the canonical source rendering of the type.
	String() string

	// Equals checks structural equality with another type.
	Equals(other Type) bool

	// isType is a marker method to prevent external implementation.
	isType()
}

type TYPE_NAME string

const (
	TYPE_ANY                  TYPE_NAME = "any"
	TYPE_UNKNOWN              TYPE_NAME = "?"
	TYPE_NEVER                TYPE_NAME = "never"
	TYPE_NULL                 TYPE_NAME = "null"
	TYPE_UNDEFINED            TYPE_NAME = "undefined"
	TYPE_BOOL                 TYPE_NAME = "bool"
	TYPE_INT                  TYPE_NAME = "int"
	TYPE_FLOAT                TYPE_NAME = "float"
	TYPE_STRING               TYPE_NAME = "string"
	TYPE_URI                  TYPE_NAME = "uri"
	TYPE_TRUSTED_RESOURCE_URI TYPE_NAME = "trusted_resource_uri"
	TYPE_HTML                 TYPE_NAME = "html"
	TYPE_JS                   TYPE_NAME = "js"
	TYPE_CSS                  TYPE_NAME = "css"
	TYPE_ATTRIBUTES           TYPE_NAME = "attributes"
	TYPE_VE_DATA              TYPE_NAME = "ve_data"
)

// PrimitiveType represents the built-in scalar and sanitized-content types.
type PrimitiveType struct {
	name TYPE_NAME
}

func NewPrimitive(name TYPE_NAME) *PrimitiveType {
	return &PrimitiveType{name: name}
}

func (p *PrimitiveType) String() string { return string(p.name) }
func (p *PrimitiveType) isType()        {}
func (p *PrimitiveType) Equals(other Type) bool {
	if o, ok := other.(*PrimitiveType); ok {
		return p.name == o.name
	}
	return false
}

// GetName returns the primitive type name.
func (p *PrimitiveType) GetName() TYPE_NAME {
	return p.name
}

// ListType represents list<T>.
type ListType struct {
	Element Type
}

func NewList(element Type) *ListType {
	return &ListType{Element: element}
}

func (l *ListType) String() string {
	return fmt.Sprintf("list<%s>", l.Element.String())
}

func (l *ListType) isType() {}

func (l *ListType) Equals(other Type) bool {
	if o, ok := other.(*ListType); ok {
		return l.Element.Equals(o.Element)
	}
	return false
}

// MapType represents map<K, V>.
type MapType struct {
	Key   Type
	Value Type
}

func NewMap(key, value Type) *MapType {
	return &MapType{Key: key, Value: value}
}

func (m *MapType) String() string {
	return fmt.Sprintf("map<%s,%s>", m.Key.String(), m.Value.String())
}

func (m *MapType) isType() {}

func (m *MapType) Equals(other Type) bool {
	if o, ok := other.(*MapType); ok {
		return m.Key.Equals(o.Key) && m.Value.Equals(o.Value)
	}
	return false
}

// LegacyMapType represents legacy_object_map<K, V>, the pre-map era map type.
// Kept distinct from MapType because the two are not interchangeable at
// runtime and must not be assignable to each other.
type LegacyMapType struct {
	Key   Type
	Value Type
}

func NewLegacyMap(key, value Type) *LegacyMapType {
	return &LegacyMapType{Key: key, Value: value}
}

func (m *LegacyMapType) String() string {
	return fmt.Sprintf("legacy_object_map<%s,%s>", m.Key.String(), m.Value.String())
}

func (m *LegacyMapType) isType() {}

func (m *LegacyMapType) Equals(other Type) bool {
	if o, ok := other.(*LegacyMapType); ok {
		return m.Key.Equals(o.Key) && m.Value.Equals(o.Value)
	}
	return false
}

// RecordField is one named field of a record type, in declaration order.
type RecordField struct {
	Name     string
	Type     Type
	Optional bool
}

func (f RecordField) String() string {
	if f.Optional {
		return fmt.Sprintf("%s?: %s", f.Name, f.Type.String())
	}
	return fmt.Sprintf("%s: %s", f.Name, f.Type.String())
}

// RecordType represents [a: int, b?: string], an ordered set of named,
// optionally-present fields.
type RecordType struct {
	Fields []RecordField
}

func NewRecord(fields ...RecordField) *RecordType {
	return &RecordType{Fields: fields}
}

func (r *RecordType) String() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

func (r *RecordType) isType() {}

func (r *RecordType) Equals(other Type) bool {
	o, ok := other.(*RecordType)
	if !ok || len(r.Fields) != len(o.Fields) {
		return false
	}
	for i := range r.Fields {
		if r.Fields[i].Name != o.Fields[i].Name ||
			r.Fields[i].Optional != o.Fields[i].Optional ||
			!r.Fields[i].Type.Equals(o.Fields[i].Type) {
			return false
		}
	}
	return true
}

// Field returns the field with the given name, if declared.
func (r *RecordType) Field(name string) (RecordField, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return RecordField{}, false
}

// FieldNames returns the declared field names in order.
func (r *RecordType) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// NamedType is a reference to an externally-described nominal type (a proto
// message descriptor, for instance). The core treats it opaquely: equality
// and assignability are by fully-qualified name.
type NamedType struct {
	Name string
}

func NewNamed(name string) *NamedType {
	return &NamedType{Name: name}
}

func (n *NamedType) String() string { return n.Name }
func (n *NamedType) isType()        {}
func (n *NamedType) Equals(other Type) bool {
	if o, ok := other.(*NamedType); ok {
		return n.Name == o.Name
	}
	return false
}

// ParamType is one parameter of a function type.
type ParamType struct {
	Name string
	Type Type
}

// FunctionType represents a function signature. Parameter names are for
// diagnostics only; equality is structural over types.
type FunctionType struct {
	Params []ParamType
	Return Type
}

func NewFunction(params []ParamType, ret Type) *FunctionType {
	return &FunctionType{Params: params, Return: ret}
}

func (f *FunctionType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Type.String()
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(parts, ", "), f.Return.String())
}

func (f *FunctionType) isType() {}

func (f *FunctionType) Equals(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok || len(f.Params) != len(o.Params) || !f.Return.Equals(o.Return) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Type.Equals(o.Params[i].Type) {
			return false
		}
	}
	return true
}

// VeType represents ve<T>, a visual element carrying data of type T.
type VeType struct {
	Data Type
}

func NewVe(data Type) *VeType {
	return &VeType{Data: data}
}

func (v *VeType) String() string {
	return fmt.Sprintf("ve<%s>", v.Data.String())
}

func (v *VeType) isType() {}

func (v *VeType) Equals(other Type) bool {
	if o, ok := other.(*VeType); ok {
		return v.Data.Equals(o.Data)
	}
	return false
}

// Commonly used types (initialized in init()).
var (
	Any                Type
	Unknown            Type
	Never              Type
	Null               Type
	Undefined          Type
	Bool               Type
	Int                Type
	Float              Type
	String             Type
	Uri                Type
	TrustedResourceUri Type
	Html               Type
	Js                 Type
	Css                Type
	Attributes         Type
	VeData             Type

	// NullOrUndefined is the nullish union used by the narrowing helpers.
	NullOrUndefined Type
)

func init() {
	Any = NewPrimitive(TYPE_ANY)
	Unknown = NewPrimitive(TYPE_UNKNOWN)
	Never = NewPrimitive(TYPE_NEVER)
	Null = NewPrimitive(TYPE_NULL)
	Undefined = NewPrimitive(TYPE_UNDEFINED)
	Bool = NewPrimitive(TYPE_BOOL)
	Int = NewPrimitive(TYPE_INT)
	Float = NewPrimitive(TYPE_FLOAT)
	String = NewPrimitive(TYPE_STRING)
	Uri = NewPrimitive(TYPE_URI)
	TrustedResourceUri = NewPrimitive(TYPE_TRUSTED_RESOURCE_URI)
	Html = NewPrimitive(TYPE_HTML)
	Js = NewPrimitive(TYPE_JS)
	Css = NewPrimitive(TYPE_CSS)
	Attributes = NewPrimitive(TYPE_ATTRIBUTES)
	VeData = NewPrimitive(TYPE_VE_DATA)

	NullOrUndefined = Union(Null, Undefined)
}

// IsPrimitiveName reports whether t is the primitive with the given name.
func IsPrimitiveName(t Type, name TYPE_NAME) bool {
	if p, ok := t.(*PrimitiveType); ok {
		return p.name == name
	}
	return false
}

// IsUnknown reports whether t is the unknown type. Unknown is absorbing:
// nearly every operation on it yields unknown instead of erroring.
func IsUnknown(t Type) bool { return IsPrimitiveName(t, TYPE_UNKNOWN) }

// IsAny reports whether t is the any type.
func IsAny(t Type) bool { return IsPrimitiveName(t, TYPE_ANY) }

// IsNever reports whether t is the never type (the empty union).
func IsNever(t Type) bool { return IsPrimitiveName(t, TYPE_NEVER) }

// IsNullOrUndefined reports whether t is exactly null, undefined, or a union
// of only those two.
func IsNullOrUndefined(t Type) bool {
	switch tt := t.(type) {
	case *PrimitiveType:
		return tt.name == TYPE_NULL || tt.name == TYPE_UNDEFINED
	case *UnionType:
		for _, m := range tt.Members {
			if !IsNullOrUndefined(m) {
				return false
			}
		}
		return true
	}
	return false
}

// IsNumeric reports whether t is int, float, or a union of numeric types.
func IsNumeric(t Type) bool {
	switch tt := t.(type) {
	case *PrimitiveType:
		return tt.name == TYPE_INT || tt.name == TYPE_FLOAT
	case *UnionType:
		for _, m := range tt.Members {
			if !IsNumeric(m) {
				return false
			}
		}
		return true
	}
	return false
}

// IsStringish reports whether t coerces to string for concatenation: string
// itself or any sanitized-content type.
func IsStringish(t Type) bool {
	switch tt := t.(type) {
	case *PrimitiveType:
		switch tt.name {
		case TYPE_STRING, TYPE_URI, TYPE_TRUSTED_RESOURCE_URI, TYPE_HTML, TYPE_JS, TYPE_CSS, TYPE_ATTRIBUTES:
			return true
		}
	case *UnionType:
		for _, m := range tt.Members {
			if !IsStringish(m) {
				return false
			}
		}
		return true
	}
	return false
}
