package resolver

import (
	"github.com/google/closure-templates-sub001/internal/ast"
)

// Scope is one frame of the lexical scope chain. Lookups walk toward the
// root; declarations land in the innermost frame.
type Scope struct {
	parent   *Scope
	bindings map[string]*ast.VarDefn
	order    []string
}

// NewScope creates a frame with an optional parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:   parent,
		bindings: make(map[string]*ast.VarDefn),
	}
}

// Declare adds a binding to this frame. It returns the existing definition
// when the name is already declared here (the caller reports the conflict).
func (s *Scope) Declare(defn *ast.VarDefn) (prev *ast.VarDefn, ok bool) {
	if existing, exists := s.bindings[defn.Name]; exists {
		return existing, false
	}
	s.bindings[defn.Name] = defn
	s.order = append(s.order, defn.Name)
	return nil, true
}

// Lookup finds a binding in this frame or any enclosing one.
func (s *Scope) Lookup(name string) (*ast.VarDefn, bool) {
	for frame := s; frame != nil; frame = frame.parent {
		if defn, ok := frame.bindings[name]; ok {
			return defn, true
		}
	}
	return nil, false
}

// VisibleNames lists every name reachable from this frame, innermost first,
// in declaration order within each frame. Used for typo suggestions.
func (s *Scope) VisibleNames() []string {
	var names []string
	seen := make(map[string]bool)
	for frame := s; frame != nil; frame = frame.parent {
		for _, name := range frame.order {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
