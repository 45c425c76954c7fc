// Package registry holds the external signature tables the semantic passes
// resolve against: built-in function signatures and named types. Both are
// plain values passed explicitly to the passes that need them, never ambient
// state.
package registry

import (
	"github.com/google/closure-templates-sub001/internal/types"
)

// Signature describes one built-in function: the argument counts it accepts
// and, optionally, what each argument position expects. A nil entry in
// ArgTypes means that position accepts anything.
type Signature struct {
	Name     string
	Arities  []int
	ArgTypes []types.Type // indexed by position; may be shorter than max arity
	// ReturnType computes the result type from the (already checked) argument
	// types. nil-returning or absent resolvers fall back to Unknown.
	ReturnType func(args []types.Type) types.Type
}

// AcceptsArity reports whether the function may be called with n arguments.
func (s *Signature) AcceptsArity(n int) bool {
	for _, a := range s.Arities {
		if a == n {
			return true
		}
	}
	return false
}

// ArgType returns the expected type at position i, or nil when unconstrained.
func (s *Signature) ArgType(i int) types.Type {
	if i < len(s.ArgTypes) {
		return s.ArgTypes[i]
	}
	return nil
}

// Functions is the function-signature registry. The zero value is empty;
// NewFunctions pre-populates the built-ins.
type Functions struct {
	byName map[string]*Signature
	// TolerateUnknown marks unknown function names as legacy extensions to be
	// typed Unknown instead of reported.
	TolerateUnknown bool
}

// NewFunctions builds a registry holding the built-in functions.
func NewFunctions() *Functions {
	f := &Functions{byName: make(map[string]*Signature)}
	for i := range builtins {
		f.Register(&builtins[i])
	}
	return f
}

// Register adds or replaces a signature.
func (f *Functions) Register(sig *Signature) {
	if f.byName == nil {
		f.byName = make(map[string]*Signature)
	}
	f.byName[sig.Name] = sig
}

// Lookup finds a signature by name.
func (f *Functions) Lookup(name string) (*Signature, bool) {
	sig, ok := f.byName[name]
	return sig, ok
}

func fixed(t types.Type) func([]types.Type) types.Type {
	return func([]types.Type) types.Type { return t }
}

// builtins covers the functions the passes special-case plus the common
// library functions tests exercise. Hosts register the rest.
var builtins = []Signature{
	{
		Name:    "checkNotNull",
		Arities: []int{1},
		ReturnType: func(args []types.Type) types.Type {
			return types.RemoveNullish(args[0])
		},
	},
	{
		Name:       "isNonnull",
		Arities:    []int{1},
		ReturnType: fixed(types.Bool),
	},
	{
		Name:       "isNull",
		Arities:    []int{1},
		ReturnType: fixed(types.Bool),
	},
	{
		Name:    "undefinedToNull",
		Arities: []int{1},
		ReturnType: func(args []types.Type) types.Type {
			return types.Union(types.RemoveNullish(args[0]), types.Null)
		},
	},
	{
		Name:       "Boolean",
		Arities:    []int{1},
		ReturnType: fixed(types.Bool),
	},
	{
		Name:       "isFalseyOrEmpty",
		Arities:    []int{1},
		ReturnType: fixed(types.Bool),
	},
	{
		Name:       "length",
		Arities:    []int{1},
		ReturnType: fixed(types.Int),
	},
	{
		Name:     "round",
		Arities:  []int{1, 2},
		ArgTypes: []types.Type{nil, types.Int},
		ReturnType: func(args []types.Type) types.Type {
			if len(args) == 1 {
				return types.Int
			}
			return types.Union(types.Int, types.Float)
		},
	},
	{
		Name:       "floor",
		Arities:    []int{1},
		ReturnType: fixed(types.Int),
	},
	{
		Name:       "ceiling",
		Arities:    []int{1},
		ReturnType: fixed(types.Int),
	},
	{
		Name:       "min",
		Arities:    []int{2},
		ReturnType: func(args []types.Type) types.Type { return types.ArithmeticType(args[0], args[1]) },
	},
	{
		Name:       "max",
		Arities:    []int{2},
		ReturnType: func(args []types.Type) types.Type { return types.ArithmeticType(args[0], args[1]) },
	},
	{
		Name:    "keys",
		Arities: []int{1},
		ReturnType: func(args []types.Type) types.Type {
			if m, ok := args[0].(*types.MapType); ok {
				return types.NewList(m.Key)
			}
			if m, ok := args[0].(*types.LegacyMapType); ok {
				return types.NewList(m.Key)
			}
			return types.NewList(types.Unknown)
		},
	},
	{
		Name:    "mapValues",
		Arities: []int{1},
		ReturnType: func(args []types.Type) types.Type {
			if m, ok := args[0].(*types.MapType); ok {
				return types.NewList(m.Value)
			}
			return types.NewList(types.Unknown)
		},
	},
	{
		Name:       "strContains",
		Arities:    []int{2},
		ArgTypes:   []types.Type{types.String, types.String},
		ReturnType: fixed(types.Bool),
	},
	{
		Name:       "strLen",
		Arities:    []int{1},
		ArgTypes:   []types.Type{types.String},
		ReturnType: fixed(types.Int),
	},
	{
		Name:       "randomInt",
		Arities:    []int{1},
		ArgTypes:   []types.Type{types.Int},
		ReturnType: fixed(types.Int),
	},
	{
		Name:       "css",
		Arities:    []int{1, 2},
		ReturnType: fixed(types.String),
	},
	{
		Name:       "xid",
		Arities:    []int{1},
		ReturnType: fixed(types.String),
	},
}
