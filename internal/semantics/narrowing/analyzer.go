package narrowing

import (
	"github.com/google/closure-templates-sub001/internal/ast"
	"github.com/google/closure-templates-sub001/internal/types"
)

// AnalyzeCondition decomposes a (typed) condition expression into narrowing
// contexts for the branch where it holds and the branch where it fails. Both
// returned contexts are children of parent. The condition's sub-expressions
// must already carry types.
func AnalyzeCondition(cond ast.Expression, parent *Context) (whenTrue, whenFalse *Context) {
	pos, neg := visit(cond)
	return pos.toContext(parent), neg.toContext(parent)
}

// constraintSet is one side (positive or negative) of a decomposed condition.
type constraintSet struct {
	entries map[string]constraint
	order   []string
}

type constraint struct {
	expr ast.Expression
	typ  types.Type
}

func newSet() *constraintSet {
	return &constraintSet{entries: make(map[string]constraint)}
}

func (s *constraintSet) add(e ast.Expression, t types.Type) {
	key := ast.ExprKey(e)
	if key == "" || t == nil {
		return
	}
	if _, exists := s.entries[key]; !exists {
		s.order = append(s.order, key)
	}
	s.entries[key] = constraint{expr: e, typ: t}
}

func (s *constraintSet) toContext(parent *Context) *Context {
	ctx := NewContext(parent)
	for _, key := range s.order {
		c := s.entries[key]
		ctx.put(key, c.expr, c.typ)
	}
	return ctx
}

// merge builds the union of two sets; where both constrain the same
// expression the stricter type wins. Used for the branch where both
// conjuncts hold.
func merge(a, b *constraintSet) *constraintSet {
	out := newSet()
	for _, key := range a.order {
		c := a.entries[key]
		out.add(c.expr, c.typ)
	}
	for _, key := range b.order {
		c := b.entries[key]
		if prev, ok := out.entries[key]; ok {
			if stricter := types.StricterType(prev.typ, c.typ); stricter != nil {
				out.entries[key] = constraint{expr: c.expr, typ: stricter}
			}
			continue
		}
		out.add(c.expr, c.typ)
	}
	return out
}

// intersect keeps only expressions both sets constrain, joined by least
// upper bound. Used where only one of two disjuncts is known to hold, so a
// member a single side would forbid cannot be removed.
func intersect(a, b *constraintSet) *constraintSet {
	out := newSet()
	for _, key := range a.order {
		cb, ok := b.entries[key]
		if !ok {
			continue
		}
		ca := a.entries[key]
		out.add(ca.expr, types.LeastUpperBound(ca.typ, cb.typ))
	}
	return out
}

func visit(e ast.Expression) (pos, neg *constraintSet) {
	switch ex := e.(type) {
	case *ast.GroupExpr:
		return visit(ex.X)

	case *ast.NotExpr:
		p, n := visit(ex.X)
		return n, p

	case *ast.BinaryExpr:
		return visitBinary(ex)

	case *ast.FunctionCallExpr:
		return visitCall(ex)

	case *ast.VarRef, *ast.FieldAccessExpr, *ast.ItemAccessExpr:
		return truthyTest(e), newSet()
	}
	return newSet(), newSet()
}

func visitBinary(b *ast.BinaryExpr) (pos, neg *constraintSet) {
	switch b.Op {
	case ast.OpAnd:
		lp, ln := visit(b.X)
		rp, rn := visit(b.Y)
		return merge(lp, rp), intersect(ln, rn)

	case ast.OpOr:
		lp, ln := visit(b.X)
		rp, rn := visit(b.Y)
		return intersect(lp, rp), merge(ln, rn)

	case ast.OpEq, ast.OpNe:
		return visitEquality(b)

	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		// An ordered comparison only holds when neither side is nullish.
		pos = newSet()
		addNonNullish(pos, b.X)
		addNonNullish(pos, b.Y)
		return pos, newSet()
	}
	return newSet(), newSet()
}

// visitEquality handles == and != against literals. Comparing to null uses
// loose equality, so null and undefined narrow together.
func visitEquality(b *ast.BinaryExpr) (pos, neg *constraintSet) {
	pos, neg = newSet(), newSet()
	operand, other := b.X, b.Y
	if isNullishLit(operand) || isLiteral(operand) {
		operand, other = other, operand
	}
	t := unwrapTransparent(operand).TypeInfo()
	if t == nil {
		return pos, neg
	}

	switch {
	case isNullishLit(other):
		if b.Op == ast.OpEq {
			addConstraint(pos, operand, types.KeepNullish(t))
			addConstraint(neg, operand, types.RemoveNullish(t))
		} else {
			addConstraint(pos, operand, types.RemoveNullish(t))
			addConstraint(neg, operand, types.KeepNullish(t))
		}
	case isLiteral(other):
		// Equality with a non-nullish literal proves the operand non-nullish
		// in the branch where it holds; inequality proves nothing.
		if b.Op == ast.OpEq {
			addConstraint(pos, operand, types.RemoveNullish(t))
		} else {
			addConstraint(neg, operand, types.RemoveNullish(t))
		}
	}
	return pos, neg
}

func visitCall(call *ast.FunctionCallExpr) (pos, neg *constraintSet) {
	pos, neg = newSet(), newSet()
	if len(call.Args) != 1 {
		return pos, neg
	}
	arg := call.Args[0]
	switch call.Name {
	case "checkNotNull", "undefinedToNull", "Boolean":
		// Transparent wrappers: the condition behaves like the argument.
		return visit(arg)

	case "isNonnull":
		if t := arg.TypeInfo(); t != nil {
			addConstraint(pos, arg, types.RemoveNullish(t))
			addConstraint(neg, arg, types.KeepNullish(t))
		}

	case "isNull":
		if t := arg.TypeInfo(); t != nil {
			addConstraint(pos, arg, types.KeepNullish(t))
			addConstraint(neg, arg, types.RemoveNullish(t))
		}

	case "isFalseyOrEmpty":
		// The branch where it fails has a truthy, non-empty argument.
		neg = truthyTest(arg)
	}
	// Any other call is opaque and narrows nothing.
	return pos, neg
}

// truthyTest builds the positive constraints of using e directly as a
// condition: e itself loses its falsy members, and every base link of a
// (null-safe) access chain is proven non-nullish, since a nullish link would
// have short-circuited the whole chain to a nullish value.
func truthyTest(e ast.Expression) *constraintSet {
	set := newSet()
	if t := e.TypeInfo(); t != nil {
		set.add(e, types.RemoveFalsy(t))
	}
	for base := chainBase(e); base != nil; base = chainBase(base) {
		addNonNullish(set, base)
	}
	return set
}

func chainBase(e ast.Expression) ast.Expression {
	switch ex := e.(type) {
	case *ast.FieldAccessExpr:
		return ex.X
	case *ast.ItemAccessExpr:
		return ex.X
	case *ast.GroupExpr:
		return ex.X
	}
	return nil
}

func addNonNullish(set *constraintSet, e ast.Expression) {
	e = unwrapTransparent(e)
	if t := e.TypeInfo(); t != nil {
		set.add(e, types.RemoveNullish(t))
	}
}

func addConstraint(set *constraintSet, e ast.Expression, t types.Type) {
	set.add(unwrapTransparent(e), t)
}

// unwrapTransparent strips grouping parentheses and the identity-like
// builtin wrappers so `checkNotNull($x) != null` constrains $x.
func unwrapTransparent(e ast.Expression) ast.Expression {
	for {
		switch ex := e.(type) {
		case *ast.GroupExpr:
			e = ex.X
		case *ast.FunctionCallExpr:
			if len(ex.Args) == 1 {
				switch ex.Name {
				case "checkNotNull", "undefinedToNull", "Boolean":
					e = ex.Args[0]
					continue
				}
			}
			return e
		default:
			return e
		}
	}
}

func isNullishLit(e ast.Expression) bool {
	switch e.(type) {
	case *ast.NullLit, *ast.UndefinedLit:
		return true
	}
	return false
}

func isLiteral(e ast.Expression) bool {
	switch e.(type) {
	case *ast.BoolLit, *ast.IntLit, *ast.FloatLit, *ast.StringLit:
		return true
	}
	return false
}
