package ast

import (
	"github.com/google/closure-templates-sub001/internal/source"
	"github.com/google/closure-templates-sub001/internal/types"
)

// FileSet is the unit of analysis: every file that takes part in one
// compilation, so cross-file calls resolve within the set.
type FileSet struct {
	Files []*File
}

// Template looks up a template by its fully-qualified name.
func (fs *FileSet) Template(name string) *Template {
	for _, f := range fs.Files {
		for _, t := range f.Templates {
			if t.Name == name {
				return t
			}
		}
	}
	return nil
}

// File is one template source file with its namespace declaration.
type File struct {
	Path      string
	Namespace string
	Templates []*Template
	source.Location
}

func (f *File) INode()                {} // Implements Node interface
func (f *File) Loc() *source.Location { return &f.Location }

// Visibility controls whether a template may be called from other files.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate
)

func (v Visibility) String() string {
	if v == VisibilityPrivate {
		return "private"
	}
	return "public"
}

// Template is one {template} (or {deltemplate}) block: its declared
// parameters, state variables and body.
type Template struct {
	Name        string // fully qualified: namespace + local name
	Visibility  Visibility
	DelTemplate bool // declared with {deltemplate}
	Params      []*Param
	States      []*StateVar
	Body        []Statement
	source.Location
}

func (t *Template) INode()                {} // Implements Node interface
func (t *Template) Loc() *source.Location { return &t.Location }

// Param finds a declared parameter (including injected ones) by name.
func (t *Template) Param(name string) *Param {
	for _, p := range t.Params {
		if p.Defn.Name == name {
			return p
		}
	}
	return nil
}

// VarKind says where a variable binding comes from.
type VarKind int

const (
	VarParam VarKind = iota
	VarInject
	VarState
	VarLet
	VarLoop
)

func (k VarKind) String() string {
	switch k {
	case VarParam:
		return "param"
	case VarInject:
		return "inject"
	case VarState:
		return "state"
	case VarLet:
		return "let"
	case VarLoop:
		return "loop variable"
	}
	return "var"
}

// VarDefn is the single definition record a VarRef binds to. The resolver
// creates or reuses these; the typechecker fills Type for inferred bindings
// (let, loop variables).
type VarDefn struct {
	Name string
	Kind VarKind
	Type types.Type // declared or inferred; nil until known
	source.Location
}

func (v *VarDefn) INode()                {} // Implements Node interface
func (v *VarDefn) Loc() *source.Location { return &v.Location }

// Param is a {@param} or {@inject} declaration.
type Param struct {
	Defn       *VarDefn
	Annotation string     // the declared type text, e.g. "list<int|null>"
	Required   bool       // {@param name: T} vs {@param? name: T}
	Default    Expression // optional default value expression
	source.Location
}

func (p *Param) INode()                {} // Implements Node interface
func (p *Param) Loc() *source.Location { return &p.Location }

// Injected reports whether the parameter was declared with {@inject}.
func (p *Param) Injected() bool { return p.Defn.Kind == VarInject }

// StateVar is a {@state} declaration. The annotation may be empty, in which
// case the type is inferred from the initializer.
type StateVar struct {
	Defn       *VarDefn
	Annotation string
	Init       Expression
	source.Location
}

func (s *StateVar) INode()                {} // Implements Node interface
func (s *StateVar) Loc() *source.Location { return &s.Location }
