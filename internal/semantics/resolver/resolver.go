// Package resolver binds variable references to their definitions. It walks
// the template body with a lexical scope chain, reports unknown and
// conflicting names, and leaves every reachable VarRef either bound or
// explicitly unresolved for the typechecker to default to unknown.
package resolver

import (
	"fmt"

	"github.com/google/closure-templates-sub001/internal/ast"
	"github.com/google/closure-templates-sub001/internal/diagnostics"
	"github.com/google/closure-templates-sub001/internal/utils/strings"
)

// Resolver runs the name-resolution pass. Re-running it over an already
// resolved tree is a no-op; rebinding a reference to a different definition
// is an invariant violation and panics.
type Resolver struct {
	reporter diagnostics.Reporter

	// current template while walking, for $ij.name references
	template *ast.Template
}

// New creates a resolver reporting through the given sink.
func New(reporter diagnostics.Reporter) *Resolver {
	return &Resolver{reporter: reporter}
}

// ResolveFileSet binds names in every template of the set.
func (r *Resolver) ResolveFileSet(fs *ast.FileSet) {
	for _, file := range fs.Files {
		r.ResolveFile(file)
	}
}

// ResolveFile binds names in every template of one file.
func (r *Resolver) ResolveFile(file *ast.File) {
	for _, tmpl := range file.Templates {
		r.resolveTemplate(tmpl)
	}
}

func (r *Resolver) resolveTemplate(tmpl *ast.Template) {
	r.template = tmpl
	defer func() { r.template = nil }()

	root := NewScope(nil)
	for _, p := range tmpl.Params {
		r.declare(root, p.Defn)
	}
	for _, s := range tmpl.States {
		r.declare(root, s.Defn)
	}
	// Defaults and state initializers may reference other params, so they
	// resolve after every declaration is in scope.
	for _, p := range tmpl.Params {
		r.resolveExpr(root, p.Default)
	}
	for _, s := range tmpl.States {
		r.resolveExpr(root, s.Init)
	}
	r.resolveBlock(root, tmpl.Body)
}

// declare adds a definition, reporting a conflict with any visible binding.
// The new definition still wins so downstream references resolve somewhere.
func (r *Resolver) declare(scope *Scope, defn *ast.VarDefn) {
	if prev, ok := scope.Lookup(defn.Name); ok {
		r.reporter.Report(diagnostics.VariableRedefined(defn.Location, prev.Location, defn.Name))
	}
	scope.Declare(defn)
}

func (r *Resolver) resolveBlock(parent *Scope, body []ast.Statement) {
	// Lets bind for the remainder of the enclosing block, so the block shares
	// one frame and each let extends it in statement order.
	scope := NewScope(parent)
	for _, stmt := range body {
		r.resolveStmt(scope, stmt)
	}
}

func (r *Resolver) resolveStmt(scope *Scope, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.RawTextStmt:
		// no names

	case *ast.PrintStmt:
		r.resolveExpr(scope, s.Value)

	case *ast.IfStmt:
		for _, cond := range s.Conds {
			r.resolveExpr(scope, cond.Cond)
			r.resolveBlock(scope, cond.Body)
		}
		r.resolveBlock(scope, s.Else)

	case *ast.SwitchStmt:
		r.resolveExpr(scope, s.Value)
		for _, c := range s.Cases {
			for _, e := range c.Exprs {
				r.resolveExpr(scope, e)
			}
			r.resolveBlock(scope, c.Body)
		}
		r.resolveBlock(scope, s.Default)

	case *ast.ForStmt:
		r.resolveExpr(scope, s.Range)
		body := NewScope(scope)
		r.declare(body, s.Var)
		for _, st := range s.Body {
			r.resolveStmt(body, st)
		}
		// The ifempty branch runs when there is no iteration, so the loop
		// variable is not visible there.
		r.resolveBlock(scope, s.IfEmpty)

	case *ast.LetStmt:
		// The binding is not visible inside its own initializer or body.
		r.resolveExpr(scope, s.Value)
		r.resolveBlock(scope, s.Body)
		r.declare(scope, s.Var)

	case *ast.CallStmt:
		r.resolveExpr(scope, s.DataExpr)
		for _, p := range s.Params {
			// Param values are caller-side expressions; the name binds in the
			// callee, not here.
			r.resolveExpr(scope, p.Value)
			r.resolveBlock(scope, p.Body)
		}

	case *ast.MsgStmt:
		r.resolveBlock(scope, s.Body)

	case *ast.PluralStmt:
		r.resolveExpr(scope, s.Value)
		for _, c := range s.Cases {
			r.resolveBlock(scope, c.Body)
		}
		r.resolveBlock(scope, s.Default)

	case *ast.SelectStmt:
		r.resolveExpr(scope, s.Value)
		for _, c := range s.Cases {
			r.resolveBlock(scope, c.Body)
		}
		r.resolveBlock(scope, s.Default)

	default:
		panic(fmt.Sprintf("resolver: unhandled statement %T", stmt))
	}
}

func (r *Resolver) resolveExpr(scope *Scope, expr ast.Expression) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.NullLit, *ast.UndefinedLit, *ast.BoolLit, *ast.IntLit, *ast.FloatLit, *ast.StringLit:
		// no names

	case *ast.VarRef:
		r.bind(scope, e)

	case *ast.BinaryExpr:
		r.resolveExpr(scope, e.X)
		r.resolveExpr(scope, e.Y)

	case *ast.NotExpr:
		r.resolveExpr(scope, e.X)

	case *ast.NegExpr:
		r.resolveExpr(scope, e.X)

	case *ast.CondExpr:
		r.resolveExpr(scope, e.Cond)
		r.resolveExpr(scope, e.Then)
		r.resolveExpr(scope, e.Else)

	case *ast.FieldAccessExpr:
		r.resolveExpr(scope, e.X)

	case *ast.ItemAccessExpr:
		r.resolveExpr(scope, e.X)
		r.resolveExpr(scope, e.Index)

	case *ast.FunctionCallExpr:
		for _, arg := range e.Args {
			r.resolveExpr(scope, arg)
		}

	case *ast.ListLit:
		for _, item := range e.Items {
			r.resolveExpr(scope, item)
		}

	case *ast.MapLit:
		for _, entry := range e.Entries {
			r.resolveExpr(scope, entry.Key)
			r.resolveExpr(scope, entry.Value)
		}

	case *ast.RecordLit:
		for _, field := range e.Fields {
			r.resolveExpr(scope, field.Value)
		}

	case *ast.GroupExpr:
		r.resolveExpr(scope, e.X)

	default:
		panic(fmt.Sprintf("resolver: unhandled expression %T", expr))
	}
}

func (r *Resolver) bind(scope *Scope, ref *ast.VarRef) {
	if ref.Injected {
		r.bindInjected(ref)
		return
	}
	defn, found := scope.Lookup(ref.Name)
	if !found {
		if ref.Defn == nil {
			suggestion := strings.Closest(ref.Name, scope.VisibleNames())
			r.reporter.Report(diagnostics.UndefinedVariable(ref.Location, ref.Name, suggestion))
		}
		return
	}
	if ref.Defn != nil {
		if ref.Defn != defn {
			panic(fmt.Sprintf("resolver: '$%s' already bound to a different definition", ref.Name))
		}
		return
	}
	ref.Defn = defn
}

// bindInjected handles $ij.name references. They bind to a matching
// {@inject} declaration when one exists; otherwise they stay unbound and
// type as unknown, since legacy injected data needs no declaration.
func (r *Resolver) bindInjected(ref *ast.VarRef) {
	if r.template == nil {
		return
	}
	p := r.template.Param(ref.Name)
	if p == nil || !p.Injected() {
		return
	}
	if ref.Defn != nil {
		if ref.Defn != p.Defn {
			panic(fmt.Sprintf("resolver: '$ij.%s' already bound to a different definition", ref.Name))
		}
		return
	}
	ref.Defn = p.Defn
}
