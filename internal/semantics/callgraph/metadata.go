// Package callgraph computes, for each template, the indirect parameters it
// transitively requires: parameters declared by templates reached through
// data="all" calls that no call site along the chain passes explicitly.
package callgraph

import (
	"sort"
	"strings"

	"github.com/google/closure-templates-sub001/internal/ast"
)

// CallSituation is one call site that forwards ambient data. Explicit holds
// the {param} names provided at the site; those are satisfied by the caller
// and never count as indirect for this chain.
type CallSituation struct {
	Callee   string
	DelCall  bool
	Explicit map[string]bool
}

// TemplateMetadata is one call-graph node: a template's declared parameters
// and its ambient-forwarding call sites in body order. Immutable once built.
type TemplateMetadata struct {
	Name        string
	DelTemplate bool
	Params      []*ast.Param
	Calls       []CallSituation
}

// Registry holds the metadata for every template in a file set.
type Registry struct {
	byName map[string]*TemplateMetadata
	order  []string
}

// BuildRegistry extracts call-graph metadata from a file set. Only
// data="all" calls create edges: a call with purely explicit params fully
// determines its callee's inputs.
func BuildRegistry(fs *ast.FileSet) *Registry {
	reg := &Registry{byName: make(map[string]*TemplateMetadata)}
	for _, file := range fs.Files {
		for _, tmpl := range file.Templates {
			meta := &TemplateMetadata{
				Name:        tmpl.Name,
				DelTemplate: tmpl.DelTemplate,
				Params:      tmpl.Params,
			}
			collectCalls(tmpl.Body, &meta.Calls)
			reg.byName[meta.Name] = meta
			reg.order = append(reg.order, meta.Name)
		}
	}
	return reg
}

// Template looks up a call-graph node by template name.
func (r *Registry) Template(name string) (*TemplateMetadata, bool) {
	meta, ok := r.byName[name]
	return meta, ok
}

// TemplateNames returns every registered name in declaration order.
func (r *Registry) TemplateNames() []string {
	return append([]string(nil), r.order...)
}

func collectCalls(body []ast.Statement, out *[]CallSituation) {
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ast.CallStmt:
			if s.DataAll {
				explicit := make(map[string]bool, len(s.Params))
				for _, p := range s.Params {
					explicit[p.Name] = true
				}
				*out = append(*out, CallSituation{
					Callee:   s.Callee,
					DelCall:  s.DelCall,
					Explicit: explicit,
				})
			}
			for _, p := range s.Params {
				collectCalls(p.Body, out)
			}
		case *ast.IfStmt:
			for _, arm := range s.Conds {
				collectCalls(arm.Body, out)
			}
			collectCalls(s.Else, out)
		case *ast.SwitchStmt:
			for _, arm := range s.Cases {
				collectCalls(arm.Body, out)
			}
			collectCalls(s.Default, out)
		case *ast.ForStmt:
			collectCalls(s.Body, out)
			collectCalls(s.IfEmpty, out)
		case *ast.LetStmt:
			collectCalls(s.Body, out)
		case *ast.MsgStmt:
			collectCalls(s.Body, out)
		case *ast.PluralStmt:
			for _, arm := range s.Cases {
				collectCalls(arm.Body, out)
			}
			collectCalls(s.Default, out)
		case *ast.SelectStmt:
			for _, arm := range s.Cases {
				collectCalls(arm.Body, out)
			}
			collectCalls(s.Default, out)
		}
	}
}

// situationKey identifies a (callee, accumulated explicit params) pair so a
// traversal visits each distinct situation once, which both memoizes diamond
// patterns and terminates cycles.
func situationKey(callee string, paramKeys map[string]bool) string {
	if len(paramKeys) == 0 {
		return callee
	}
	keys := make([]string, 0, len(paramKeys))
	for k := range paramKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return callee + "|" + strings.Join(keys, ",")
}
