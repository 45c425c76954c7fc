package registry

import (
	"github.com/google/closure-templates-sub001/internal/types"
)

// TypeNames resolves non-builtin type names in annotations, typically proto
// message descriptors registered by the host. It satisfies types.Resolver.
type TypeNames struct {
	byName map[string]types.Type
}

// NewTypeNames builds an empty type-name registry.
func NewTypeNames() *TypeNames {
	return &TypeNames{byName: make(map[string]types.Type)}
}

// RegisterNamed records a named (proto) type under its fully-qualified name.
func (r *TypeNames) RegisterNamed(name string) *types.NamedType {
	t := types.NewNamed(name)
	r.byName[name] = t
	return t
}

// RegisterAlias binds an arbitrary type to a name.
func (r *TypeNames) RegisterAlias(name string, t types.Type) {
	r.byName[name] = t
}

// LookupType implements types.Resolver.
func (r *TypeNames) LookupType(name string) (types.Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}
