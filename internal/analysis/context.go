// Package analysis drives the semantic passes over a parsed file set: name
// resolution, type checking with flow-sensitive narrowing, and call-graph
// extraction, in that order. Each file tracks its own phase so a pass never
// runs against input a prerequisite pass has not produced.
package analysis

import (
	"sort"
	"sync"

	"github.com/google/closure-templates-sub001/internal/ast"
	"github.com/google/closure-templates-sub001/internal/diagnostics"
	"github.com/google/closure-templates-sub001/internal/phase"
	"github.com/google/closure-templates-sub001/internal/registry"
)

// Context is the shared state of one analysis run: the file set under
// analysis, the diagnostic sink, the function and type-name registries, and
// per-file phase tracking.
type Context struct {
	FileSet   *ast.FileSet
	Bag       *diagnostics.Bag
	Functions *registry.Functions
	TypeNames *registry.TypeNames

	// Debug enables per-phase progress output.
	Debug bool

	mu     sync.Mutex
	phases map[string]phase.FilePhase
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithDebug turns on per-phase progress output.
func WithDebug() Option {
	return func(ctx *Context) { ctx.Debug = true }
}

// WithFunctions replaces the builtin function registry.
func WithFunctions(funcs *registry.Functions) Option {
	return func(ctx *Context) { ctx.Functions = funcs }
}

// WithTypeNames replaces the named-type registry.
func WithTypeNames(names *registry.TypeNames) Option {
	return func(ctx *Context) { ctx.TypeNames = names }
}

// NewContext creates an analysis context for a parsed file set. Every file
// starts at PhaseParsed since parsing happens upstream.
func NewContext(fs *ast.FileSet, opts ...Option) *Context {
	ctx := &Context{
		FileSet:   fs,
		Bag:       diagnostics.NewBag(),
		Functions: registry.NewFunctions(),
		TypeNames: registry.NewTypeNames(),
		phases:    make(map[string]phase.FilePhase, len(fs.Files)),
	}
	for _, file := range fs.Files {
		ctx.phases[file.Path] = phase.PhaseParsed
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// FilePhase returns the current phase of a file, PhaseNotStarted when the
// path is unknown.
func (ctx *Context) FilePhase(path string) phase.FilePhase {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	return ctx.phases[path]
}

// SetFilePhase forces a file's phase without prerequisite validation.
func (ctx *Context) SetFilePhase(path string, p phase.FilePhase) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.phases[path] = p
}

// AdvanceFilePhase moves a file to targetPhase if its current phase is the
// required predecessor. Returns false when the transition would skip a phase.
func (ctx *Context) AdvanceFilePhase(path string, targetPhase phase.FilePhase) bool {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	prereq, ok := phase.PhasePrerequisites[targetPhase]
	if !ok || ctx.phases[path] < prereq {
		return false
	}
	ctx.phases[path] = targetPhase
	return true
}

// CanProcessPhase reports whether a file has reached the given phase.
func (ctx *Context) CanProcessPhase(path string, required phase.FilePhase) bool {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	return ctx.phases[path] >= required
}

// FilePaths returns the tracked file paths in deterministic order.
func (ctx *Context) FilePaths() []string {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	paths := make([]string, 0, len(ctx.phases))
	for p := range ctx.phases {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// HasErrors reports whether any pass emitted an error-severity diagnostic.
func (ctx *Context) HasErrors() bool {
	return ctx.Bag.HasErrors()
}
