// Package ast defines the template file-set tree consumed by the semantic
// passes: files, templates, statements and expressions. The tree is produced
// by a frontend (or built directly in tests) and annotated in place by the
// resolver and the typechecker.
package ast

import (
	"github.com/google/closure-templates-sub001/internal/source"
	"github.com/google/closure-templates-sub001/internal/types"
)

// Node is the base interface for all AST nodes
type Node interface {
	INode()
	Loc() *source.Location
}

// Expression represents any node that produces a value
type Expression interface {
	Node
	Expr()
	// TypeInfo returns the type assigned by the typechecker, nil before it runs.
	TypeInfo() types.Type
	// SetTypeInfo records the checked type in place.
	SetTypeInfo(types.Type)
}

// Statement represents any node that performs an action
type Statement interface {
	Node
	Stmt()
}

// typeSlot carries the checked type on every expression node.
type typeSlot struct {
	typ types.Type
}

func (s *typeSlot) TypeInfo() types.Type     { return s.typ }
func (s *typeSlot) SetTypeInfo(t types.Type) { s.typ = t }
