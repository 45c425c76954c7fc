package narrowing

import (
	"github.com/google/closure-templates-sub001/internal/ast"
	"github.com/google/closure-templates-sub001/internal/types"
)

// CaseTest narrows the switch scrutinee inside one {case} arm to the union
// of the case expressions' types, intersected with what the scrutinee could
// be at all. A null or undefined case proves the scrutinee exactly that.
func CaseTest(scrutinee ast.Expression, caseExprs []ast.Expression, parent *Context) *Context {
	ctx := NewContext(parent)
	original := scrutinee.TypeInfo()
	if original == nil {
		return ctx
	}
	members := make([]types.Type, 0, len(caseExprs))
	for _, e := range caseExprs {
		t := e.TypeInfo()
		if t == nil {
			return ctx
		}
		members = append(members, t)
	}
	matched := types.Union(members...)
	if narrowed := types.StricterType(original, matched); narrowed != nil {
		ctx.Narrow(scrutinee, narrowed)
	}
	return ctx
}

// DefaultTest narrows the scrutinee in the {default} arm: members provably
// matched by earlier cases (the nullish literals, whose case types are
// exact) are removed; other case types stay, since a value of that type may
// still differ from the specific case values.
func DefaultTest(scrutinee ast.Expression, cases []*ast.SwitchCase, parent *Context) *Context {
	ctx := NewContext(parent)
	t := scrutinee.TypeInfo()
	if t == nil {
		return ctx
	}
	narrowed := t
	for _, c := range cases {
		for _, e := range c.Exprs {
			switch e.(type) {
			case *ast.NullLit:
				narrowed = types.RemoveNull(narrowed)
			case *ast.UndefinedLit:
				narrowed = types.RemoveUndefined(narrowed)
			}
		}
	}
	if !narrowed.Equals(t) {
		ctx.Narrow(scrutinee, narrowed)
	}
	return ctx
}
