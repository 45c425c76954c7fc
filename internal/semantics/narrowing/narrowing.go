// Package narrowing refines expression types along control-flow branches.
// Conditions are decomposed into positive and negative constraint sets keyed
// by canonical expression strings, so `$pa != null and $pa.length > 0`
// narrows `$pa` inside the guarded branch and composes correctly under
// and/or/not.
package narrowing

import (
	"github.com/google/closure-templates-sub001/internal/ast"
	"github.com/google/closure-templates-sub001/internal/types"
)

// Context tracks narrowed types for expressions within one branch. Lookups
// walk the parent chain, so nested branches stack their refinements.
type Context struct {
	narrowed map[string]types.Type
	exprs    map[string]ast.Expression
	order    []string
	parent   *Context
}

// NewContext creates a narrowing context with an optional parent.
func NewContext(parent *Context) *Context {
	return &Context{
		narrowed: make(map[string]types.Type),
		exprs:    make(map[string]ast.Expression),
		parent:   parent,
	}
}

// Narrow records a refined type for an expression. Expressions with no
// stable identity are ignored.
func (c *Context) Narrow(e ast.Expression, t types.Type) {
	key := ast.ExprKey(e)
	if key == "" {
		return
	}
	c.put(key, e, t)
}

func (c *Context) put(key string, e ast.Expression, t types.Type) {
	if _, exists := c.narrowed[key]; !exists {
		c.order = append(c.order, key)
	}
	c.narrowed[key] = t
	c.exprs[key] = e
}

// NarrowedType returns the innermost refinement for an expression, if any.
func (c *Context) NarrowedType(e ast.Expression) (types.Type, bool) {
	key := ast.ExprKey(e)
	if key == "" {
		return nil, false
	}
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if t, ok := ctx.narrowed[key]; ok {
			return t, true
		}
	}
	return nil, false
}

// Each visits this context's own constraints in insertion order, without the
// parent chain.
func (c *Context) Each(fn func(e ast.Expression, t types.Type)) {
	for _, key := range c.order {
		fn(c.exprs[key], c.narrowed[key])
	}
}

// Len reports how many constraints this context itself holds.
func (c *Context) Len() int { return len(c.order) }
