package typechecker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/closure-templates-sub001/internal/ast"
	"github.com/google/closure-templates-sub001/internal/diagnostics"
	"github.com/google/closure-templates-sub001/internal/semantics/narrowing"
	"github.com/google/closure-templates-sub001/internal/source"
	"github.com/google/closure-templates-sub001/internal/types"
	utilstrings "github.com/google/closure-templates-sub001/internal/utils/strings"
)

// checkExpr computes and records the type of an expression, consulting the
// narrowing context for data accesses the current branch has refined.
func (c *Checker) checkExpr(e ast.Expression, ctx *narrowing.Context) types.Type {
	t := c.computeType(e, ctx)
	if t == nil {
		t = types.Unknown
	}
	switch e.(type) {
	case *ast.VarRef, *ast.FieldAccessExpr, *ast.ItemAccessExpr:
		if narrowed, ok := ctx.NarrowedType(e); ok {
			t = narrowed
		}
	}
	e.SetTypeInfo(t)
	return t
}

func (c *Checker) computeType(e ast.Expression, ctx *narrowing.Context) types.Type {
	switch ex := e.(type) {
	case *ast.NullLit:
		return types.Null
	case *ast.UndefinedLit:
		return types.Undefined
	case *ast.BoolLit:
		return types.Bool
	case *ast.IntLit:
		return types.Int
	case *ast.FloatLit:
		return types.Float
	case *ast.StringLit:
		return types.String

	case *ast.VarRef:
		if ex.Defn == nil || ex.Defn.Type == nil {
			return types.Unknown
		}
		return ex.Defn.Type

	case *ast.GroupExpr:
		return c.checkExpr(ex.X, ctx)

	case *ast.NotExpr:
		c.checkExpr(ex.X, ctx)
		return types.Bool

	case *ast.NegExpr:
		t := c.checkExpr(ex.X, ctx)
		if result := types.ArithmeticType(t, t); result != nil {
			return result
		}
		c.reporter.Report(diagnostics.IncompatibleOperand(*e.Loc(), "-", t.String(), t.String()))
		return types.Unknown

	case *ast.BinaryExpr:
		return c.checkBinary(ex, ctx)

	case *ast.CondExpr:
		c.checkExpr(ex.Cond, ctx)
		whenTrue, whenFalse := narrowing.AnalyzeCondition(ex.Cond, ctx)
		thenType := c.checkExpr(ex.Then, whenTrue)
		elseType := c.checkExpr(ex.Else, whenFalse)
		return types.LeastUpperBound(thenType, elseType)

	case *ast.FieldAccessExpr:
		return c.checkFieldAccess(ex, ctx)

	case *ast.ItemAccessExpr:
		return c.checkItemAccess(ex, ctx)

	case *ast.FunctionCallExpr:
		return c.checkCall(ex, ctx)

	case *ast.ListLit:
		items := make([]types.Type, len(ex.Items))
		for i, item := range ex.Items {
			items[i] = c.checkExpr(item, ctx)
		}
		return types.NewList(types.Union(items...))

	case *ast.MapLit:
		return c.checkMapLit(ex, ctx)

	case *ast.RecordLit:
		return c.checkRecordLit(ex, ctx)
	}
	panic(fmt.Sprintf("typechecker: unhandled expression %T", e))
}

func (c *Checker) checkBinary(b *ast.BinaryExpr, ctx *narrowing.Context) types.Type {
	switch b.Op {
	case ast.OpAnd:
		c.checkExpr(b.X, ctx)
		whenTrue, _ := narrowing.AnalyzeCondition(b.X, ctx)
		c.checkExpr(b.Y, whenTrue)
		return types.Bool

	case ast.OpOr:
		c.checkExpr(b.X, ctx)
		_, whenFalse := narrowing.AnalyzeCondition(b.X, ctx)
		c.checkExpr(b.Y, whenFalse)
		return types.Bool

	case ast.OpElvis, ast.OpNullCo:
		left := c.checkExpr(b.X, ctx)
		right := c.checkExpr(b.Y, ctx)
		return types.Union(types.RemoveNullish(left), right)
	}

	left := c.checkExpr(b.X, ctx)
	right := c.checkExpr(b.Y, ctx)

	switch b.Op {
	case ast.OpPlus:
		if result := types.PlusType(left, right); result != nil {
			return result
		}

	case ast.OpMinus, ast.OpTimes, ast.OpMod:
		if result := types.ArithmeticType(left, right); result != nil {
			return result
		}

	case ast.OpDiv:
		if result := types.DivisionType(left, right); result != nil {
			return result
		}

	case ast.OpEq, ast.OpNe:
		if !c.comparable(left, right) {
			c.reporter.Report(diagnostics.NotComparable(*b.Loc(), left.String(), right.String()))
		}
		return types.Bool

	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		if types.ArithmeticType(left, right) == nil &&
			!(types.IsStringish(left) && types.IsStringish(right)) {
			c.reporter.Report(diagnostics.IncompatibleOperand(*b.Loc(), string(b.Op), left.String(), right.String()))
		}
		return types.Bool
	}

	c.reporter.Report(diagnostics.IncompatibleOperand(*b.Loc(), string(b.Op), left.String(), right.String()))
	return types.Unknown
}

// comparable reports whether an equality test between the two types can ever
// be true. Nullish members compare against anything; numerics cross-compare.
func (c *Checker) comparable(left, right types.Type) bool {
	l, r := types.RemoveNullish(left), types.RemoveNullish(right)
	if types.IsUnknown(l) || types.IsUnknown(r) || types.IsAny(l) || types.IsAny(r) {
		return true
	}
	if types.IsNever(l) || types.IsNever(r) {
		return true
	}
	if types.IsNumeric(l) && types.IsNumeric(r) {
		return true
	}
	if types.IsStringish(l) && types.IsStringish(r) {
		return true
	}
	return types.StricterType(l, r) != nil
}

func (c *Checker) checkFieldAccess(f *ast.FieldAccessExpr, ctx *narrowing.Context) types.Type {
	baseType := c.checkExpr(f.X, ctx)
	base, nullish := c.unwrapAccessBase(*f.Loc(), baseType, f.NullSafe)

	result := c.fieldType(f, base)
	if f.NullSafe && nullish {
		// A short-circuited chain produces undefined.
		result = types.Union(result, types.Undefined)
	}
	return result
}

func (c *Checker) fieldType(f *ast.FieldAccessExpr, base types.Type) types.Type {
	switch t := base.(type) {
	case *types.PrimitiveType:
		if types.IsUnknown(base) || types.IsAny(base) || types.IsNever(base) {
			return types.Unknown
		}

	case *types.RecordType:
		if field, ok := t.Field(f.Field); ok {
			result := field.Type
			if field.Optional {
				result = types.Union(result, types.Undefined)
			}
			return result
		}
		suggestion := utilstrings.Closest(f.Field, t.FieldNames())
		c.reporter.Report(diagnostics.FieldNotFound(*f.Loc(), f.Field, t.String(), suggestion))
		return types.Unknown

	case *types.NamedType:
		// Message descriptors are opaque here; the host validates fields.
		return types.Unknown

	case *types.UnionType:
		members := make([]types.Type, 0, len(t.Members))
		for _, m := range t.Members {
			members = append(members, c.fieldType(f, m))
		}
		return types.Union(members...)
	}
	c.reporter.Report(diagnostics.DotAccessNotSupported(*f.Loc(), base.String()))
	return types.Unknown
}

func (c *Checker) checkItemAccess(i *ast.ItemAccessExpr, ctx *narrowing.Context) types.Type {
	baseType := c.checkExpr(i.X, ctx)
	indexType := c.checkExpr(i.Index, ctx)
	base, nullish := c.unwrapAccessBase(*i.Loc(), baseType, i.NullSafe)

	result := c.itemType(i, base, indexType)
	if i.NullSafe && nullish {
		result = types.Union(result, types.Undefined)
	}
	return result
}

func (c *Checker) itemType(i *ast.ItemAccessExpr, base, indexType types.Type) types.Type {
	switch t := base.(type) {
	case *types.PrimitiveType:
		if types.IsUnknown(base) || types.IsAny(base) || types.IsNever(base) {
			return types.Unknown
		}

	case *types.ListType:
		if !types.IsUnknown(indexType) && !indexType.Equals(types.Int) {
			c.reporter.Report(diagnostics.BadIndexType(*i.Loc(), indexType.String(), base.String()))
		}
		return t.Element

	case *types.MapType:
		if !types.IsUnknown(indexType) && !types.IsAssignableFrom(t.Key, indexType) {
			c.reporter.Report(diagnostics.BadKeyType(*i.Loc(), indexType.String(), base.String()))
		}
		return t.Value

	case *types.LegacyMapType:
		if !types.IsUnknown(indexType) && !types.IsAssignableFrom(t.Key, indexType) {
			c.reporter.Report(diagnostics.BadKeyType(*i.Loc(), indexType.String(), base.String()))
		}
		return t.Value

	case *types.UnionType:
		members := make([]types.Type, 0, len(t.Members))
		for _, m := range t.Members {
			members = append(members, c.itemType(i, m, indexType))
		}
		return types.Union(members...)
	}
	c.reporter.Report(diagnostics.BracketAccessNotSupported(*i.Loc(), base.String()))
	return types.Unknown
}

// unwrapAccessBase strips nullish members from an access base. A plain
// access on a nullable base is an error (null-safe access is fine); either
// way checking proceeds on the non-nullish remainder.
func (c *Checker) unwrapAccessBase(loc source.Location, t types.Type, nullSafe bool) (base types.Type, nullish bool) {
	if !types.IsNullish(t) {
		return t, false
	}
	if !nullSafe {
		c.reporter.Report(diagnostics.NullishAccess(loc, t.String()))
	}
	return types.RemoveNullish(t), true
}

func (c *Checker) checkCall(call *ast.FunctionCallExpr, ctx *narrowing.Context) types.Type {
	args := make([]types.Type, len(call.Args))
	for i, arg := range call.Args {
		args[i] = c.checkExpr(arg, ctx)
	}

	sig, ok := c.funcs.Lookup(call.Name)
	if !ok {
		if !c.funcs.TolerateUnknown {
			c.reporter.Report(diagnostics.UnknownFunction(*call.Loc(), call.Name))
		}
		return types.Unknown
	}
	if !sig.AcceptsArity(len(args)) {
		c.reporter.Report(diagnostics.WrongArgumentCount(*call.Loc(), call.Name, arityList(sig.Arities), len(args)))
		return types.Unknown
	}
	for i, arg := range args {
		expected := sig.ArgType(i)
		if expected != nil && !types.IsAssignableFrom(expected, arg) {
			c.reporter.Report(diagnostics.BadArgumentType(*call.Args[i].Loc(), call.Name, i+1, expected.String(), arg.String()))
		}
	}
	if sig.ReturnType != nil {
		if result := sig.ReturnType(args); result != nil {
			return result
		}
	}
	return types.Unknown
}

func arityList(arities []int) string {
	parts := make([]string, len(arities))
	for i, a := range arities {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, " or ")
}

func (c *Checker) checkMapLit(m *ast.MapLit, ctx *narrowing.Context) types.Type {
	keys := make([]types.Type, len(m.Entries))
	values := make([]types.Type, len(m.Entries))
	seen := make(map[string]bool)
	for i, entry := range m.Entries {
		keys[i] = c.checkExpr(entry.Key, ctx)
		values[i] = c.checkExpr(entry.Value, ctx)
		if key := ast.Text(entry.Key); key != "" && isConstantKey(entry.Key) {
			if seen[key] {
				c.reporter.Report(diagnostics.DuplicateKey(*entry.Key.Loc(), key))
			}
			seen[key] = true
		}
	}
	return types.NewMap(types.Union(keys...), types.Union(values...))
}

func isConstantKey(e ast.Expression) bool {
	switch e.(type) {
	case *ast.StringLit, *ast.IntLit, *ast.BoolLit:
		return true
	}
	return false
}

func (c *Checker) checkRecordLit(r *ast.RecordLit, ctx *narrowing.Context) types.Type {
	fields := make([]types.RecordField, 0, len(r.Fields))
	seen := make(map[string]bool)
	for _, f := range r.Fields {
		t := c.checkExpr(f.Value, ctx)
		if seen[f.Name] {
			c.reporter.Report(diagnostics.DuplicateKey(*f.Value.Loc(), f.Name))
			continue
		}
		seen[f.Name] = true
		fields = append(fields, types.RecordField{Name: f.Name, Type: t})
	}
	return types.NewRecord(fields...)
}
