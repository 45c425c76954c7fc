// Package typechecker assigns a type to every expression and enforces the
// operator, access and call rules. It walks statements carrying a narrowing
// context, so types refined by conditions hold inside the guarded branches.
// All reported problems are recoverable: the offending node falls back to
// unknown (or never) and checking continues.
package typechecker

import (
	"fmt"

	"github.com/google/closure-templates-sub001/internal/ast"
	"github.com/google/closure-templates-sub001/internal/diagnostics"
	"github.com/google/closure-templates-sub001/internal/registry"
	"github.com/google/closure-templates-sub001/internal/semantics/narrowing"
	"github.com/google/closure-templates-sub001/internal/source"
	"github.com/google/closure-templates-sub001/internal/types"
)

// Checker runs the type-assignment pass over a resolved file set.
type Checker struct {
	reporter  diagnostics.Reporter
	funcs     *registry.Functions
	typeNames types.Resolver
}

// New creates a checker. typeNames resolves non-builtin names in parameter
// annotations and may be nil when only builtin types occur.
func New(reporter diagnostics.Reporter, funcs *registry.Functions, typeNames types.Resolver) *Checker {
	return &Checker{reporter: reporter, funcs: funcs, typeNames: typeNames}
}

// CheckFileSet types every template in the set. The resolver must have run
// first so variable references carry their bindings.
func (c *Checker) CheckFileSet(fs *ast.FileSet) {
	for _, file := range fs.Files {
		c.CheckFile(file)
	}
}

// CheckFile types every template in one file.
func (c *Checker) CheckFile(file *ast.File) {
	for _, tmpl := range file.Templates {
		c.checkTemplate(tmpl)
	}
}

func (c *Checker) checkTemplate(tmpl *ast.Template) {
	for _, p := range tmpl.Params {
		c.checkParam(p)
	}
	for _, s := range tmpl.States {
		c.checkState(s)
	}
	c.checkStmts(tmpl.Body, nil)
}

func (c *Checker) checkParam(p *ast.Param) {
	declared := c.parseAnnotation(p.Annotation, p.Location)
	if p.Default != nil {
		found := c.checkExpr(p.Default, nil)
		if declared == nil {
			declared = found
		} else if !types.IsAssignableFrom(declared, found) {
			c.reporter.Report(diagnostics.DefaultTypeMismatch(*p.Default.Loc(), declared.String(), found.String()))
		}
	}
	if declared == nil {
		declared = types.Unknown
	}
	// An optional parameter may be omitted entirely, so its references also
	// see undefined.
	if !p.Required && !types.IsUndefinable(declared) && !types.IsUnknown(declared) {
		declared = types.Union(declared, types.Undefined)
	}
	p.Defn.Type = declared
}

func (c *Checker) checkState(s *ast.StateVar) {
	declared := c.parseAnnotation(s.Annotation, s.Location)
	if s.Init != nil {
		found := c.checkExpr(s.Init, nil)
		if declared == nil {
			declared = found
		} else if !types.IsAssignableFrom(declared, found) {
			c.reporter.Report(diagnostics.DefaultTypeMismatch(*s.Init.Loc(), declared.String(), found.String()))
		}
	}
	if declared == nil {
		declared = types.Unknown
	}
	s.Defn.Type = declared
}

// parseAnnotation turns declared type text into a type, nil when absent.
func (c *Checker) parseAnnotation(annotation string, loc source.Location) types.Type {
	if annotation == "" {
		return nil
	}
	t, err := types.Parse(annotation, c.typeNames)
	if err != nil {
		c.reporter.Report(diagnostics.NewError(fmt.Sprintf("Invalid type annotation '%s': %v.", annotation, err)).
			WithCode(diagnostics.ErrTypeMismatch).
			WithPrimaryLabel(loc, "cannot parse this type"))
		return types.Unknown
	}
	return t
}

func (c *Checker) checkStmts(body []ast.Statement, ctx *narrowing.Context) {
	for _, stmt := range body {
		c.checkStmt(stmt, ctx)
	}
}

func (c *Checker) checkStmt(stmt ast.Statement, ctx *narrowing.Context) {
	switch s := stmt.(type) {
	case *ast.RawTextStmt:
		// nothing to type

	case *ast.PrintStmt:
		c.checkExpr(s.Value, ctx)

	case *ast.IfStmt:
		c.checkIf(s, ctx)

	case *ast.SwitchStmt:
		c.checkSwitch(s, ctx)

	case *ast.ForStmt:
		c.checkFor(s, ctx)

	case *ast.LetStmt:
		c.checkLet(s, ctx)

	case *ast.CallStmt:
		if s.DataExpr != nil {
			c.checkExpr(s.DataExpr, ctx)
		}
		for _, p := range s.Params {
			if p.Value != nil {
				c.checkExpr(p.Value, ctx)
			}
			c.checkStmts(p.Body, ctx)
		}

	case *ast.MsgStmt:
		c.checkStmts(s.Body, ctx)

	case *ast.PluralStmt:
		c.checkPlural(s, ctx)

	case *ast.SelectStmt:
		c.checkSelect(s, ctx)

	default:
		panic(fmt.Sprintf("typechecker: unhandled statement %T", stmt))
	}
}

// checkIf types an if/elseif/else chain. Each arm's condition is typed under
// the accumulated negations of the arms before it, its body under its own
// positive narrowing.
func (c *Checker) checkIf(s *ast.IfStmt, ctx *narrowing.Context) {
	current := ctx
	for _, arm := range s.Conds {
		c.checkExpr(arm.Cond, current)
		whenTrue, whenFalse := narrowing.AnalyzeCondition(arm.Cond, current)
		c.reportImpossible(whenTrue)
		c.checkStmts(arm.Body, whenTrue)
		current = whenFalse
	}
	c.checkStmts(s.Else, current)
}

func (c *Checker) checkSwitch(s *ast.SwitchStmt, ctx *narrowing.Context) {
	c.checkExpr(s.Value, ctx)
	for _, arm := range s.Cases {
		for _, e := range arm.Exprs {
			c.checkExpr(e, ctx)
		}
		c.checkStmts(arm.Body, narrowing.CaseTest(s.Value, arm.Exprs, ctx))
	}
	if s.Default != nil {
		c.checkStmts(s.Default, narrowing.DefaultTest(s.Value, s.Cases, ctx))
	}
}

func (c *Checker) checkPlural(s *ast.PluralStmt, ctx *narrowing.Context) {
	found := c.checkExpr(s.Value, ctx)
	stripped := types.RemoveNullish(found)
	if !stripped.Equals(types.Int) && !types.IsUnknown(stripped) && !types.IsAny(stripped) {
		c.reporter.Report(diagnostics.PluralNotNumeric(*s.Value.Loc(), found.String()))
	}
	for _, arm := range s.Cases {
		c.checkStmts(arm.Body, ctx)
	}
	c.checkStmts(s.Default, ctx)
}

func (c *Checker) checkSelect(s *ast.SelectStmt, ctx *narrowing.Context) {
	found := c.checkExpr(s.Value, ctx)
	stripped := types.RemoveNullish(found)
	if !stripped.Equals(types.String) && !types.IsUnknown(stripped) && !types.IsAny(stripped) {
		c.reporter.Report(diagnostics.SelectNotString(*s.Value.Loc(), found.String()))
	}
	for _, arm := range s.Cases {
		c.checkStmts(arm.Body, ctx)
	}
	c.checkStmts(s.Default, ctx)
}

func (c *Checker) checkFor(s *ast.ForStmt, ctx *narrowing.Context) {
	rangeType := c.checkExpr(s.Range, ctx)
	s.Var.Type = c.elementType(s.Range, rangeType)
	c.checkStmts(s.Body, ctx)
	c.checkStmts(s.IfEmpty, ctx)
}

// elementType extracts the iteration item type. Only lists (or unknown) can
// be iterated; anything else is an error and the loop variable is unknown.
func (c *Checker) elementType(rangeExpr ast.Expression, t types.Type) types.Type {
	if types.IsUnknown(t) || types.IsAny(t) {
		return types.Unknown
	}
	if list, ok := t.(*types.ListType); ok {
		return list.Element
	}
	if union, ok := t.(*types.UnionType); ok {
		elems := make([]types.Type, 0, len(union.Members))
		for _, m := range union.Members {
			list, ok := m.(*types.ListType)
			if !ok {
				elems = nil
				break
			}
			elems = append(elems, list.Element)
		}
		if elems != nil {
			return types.Union(elems...)
		}
	}
	c.reporter.Report(diagnostics.CannotIterate(*rangeExpr.Loc(), exprText(rangeExpr), t.String()))
	return types.Unknown
}

func (c *Checker) checkLet(s *ast.LetStmt, ctx *narrowing.Context) {
	if s.Value != nil {
		s.Var.Type = c.checkExpr(s.Value, ctx)
		return
	}
	c.checkStmts(s.Body, ctx)
	s.Var.Type = contentType(s.ContentKind)
}

// contentType maps a {let} block's kind attribute to a sanitized type.
func contentType(kind string) types.Type {
	switch kind {
	case "html":
		return types.Html
	case "js":
		return types.Js
	case "css":
		return types.Css
	case "uri":
		return types.Uri
	case "trusted_resource_uri":
		return types.TrustedResourceUri
	case "attributes":
		return types.Attributes
	}
	return types.String
}

// reportImpossible flags constraints that narrow a live expression down to
// never: the condition can never hold at runtime.
func (c *Checker) reportImpossible(ctx *narrowing.Context) {
	ctx.Each(func(e ast.Expression, narrowed types.Type) {
		original := e.TypeInfo()
		if original == nil || types.IsNever(original) {
			return
		}
		if types.IsNever(narrowed) {
			c.reporter.Report(diagnostics.CannotNarrow(*e.Loc(), original.String(), narrowed.String()))
		}
	})
}

// exprText renders an expression for messages, falling back when it has no
// source-like form.
func exprText(e ast.Expression) string {
	if text := ast.Text(e); text != "" {
		return text
	}
	return "expression"
}
