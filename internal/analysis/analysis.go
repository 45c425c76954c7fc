package analysis

import (
	"fmt"

	"github.com/google/closure-templates-sub001/colors"
	"github.com/google/closure-templates-sub001/internal/ast"
	"github.com/google/closure-templates-sub001/internal/diagnostics"
	"github.com/google/closure-templates-sub001/internal/phase"
	"github.com/google/closure-templates-sub001/internal/semantics/callgraph"
	"github.com/google/closure-templates-sub001/internal/semantics/resolver"
	"github.com/google/closure-templates-sub001/internal/semantics/typechecker"
)

// Runner coordinates the semantic passes over one file set.
type Runner struct {
	ctx        *Context
	calculator *callgraph.Calculator
}

// New creates a runner over the given context.
func New(ctx *Context) *Runner {
	return &Runner{ctx: ctx}
}

// Run executes resolution, type checking, and call-graph extraction. It
// returns an error when any pass reports error diagnostics; the diagnostics
// themselves stay in the context's bag.
func (r *Runner) Run() error {
	if r.ctx.Debug {
		colors.CYAN.Printf("\n[Phase 1] Name Resolution\n")
	}
	r.runResolverPhase()

	if r.ctx.Debug {
		colors.CYAN.Printf("\n[Phase 2] Type Checking\n")
	}
	r.runTypeCheckerPhase()

	if r.ctx.Debug {
		colors.CYAN.Printf("\n[Phase 3] Call Graph\n")
	}
	r.runCallGraphPhase()

	if r.ctx.HasErrors() {
		return fmt.Errorf("analysis failed with %d errors", r.ctx.Bag.ErrorCount())
	}

	if r.ctx.Debug {
		colors.GREEN.Printf("\n✓ Analysis successful! (%d files)\n", len(r.ctx.FileSet.Files))
	}
	return nil
}

func (r *Runner) runResolverPhase() {
	res := resolver.New(r.ctx.Bag)
	for _, file := range r.ctx.FileSet.Files {
		if !r.ctx.CanProcessPhase(file.Path, phase.PhaseParsed) {
			continue
		}
		res.ResolveFile(file)
		if !r.ctx.AdvanceFilePhase(file.Path, phase.PhaseResolved) {
			r.ctx.SetFilePhase(file.Path, phase.PhaseResolved)
		}
		if r.ctx.Debug {
			colors.PURPLE.Printf("  ✓ %s\n", file.Path)
		}
	}
}

func (r *Runner) runTypeCheckerPhase() {
	checker := typechecker.New(r.ctx.Bag, r.ctx.Functions, r.ctx.TypeNames)
	for _, file := range r.ctx.FileSet.Files {
		if !r.ctx.CanProcessPhase(file.Path, phase.PhaseResolved) {
			continue
		}
		checker.CheckFile(file)
		if !r.ctx.AdvanceFilePhase(file.Path, phase.PhaseTypeChecked) {
			r.ctx.SetFilePhase(file.Path, phase.PhaseTypeChecked)
		}
		if r.ctx.Debug {
			colors.PURPLE.Printf("  ✓ %s\n", file.Path)
		}
	}
}

// runCallGraphPhase builds the template registry even when earlier phases
// reported errors; call-graph metadata depends only on template and call
// shapes, not on types. Templates whose indirect-parameter set is only a
// lower bound get an advisory diagnostic.
func (r *Runner) runCallGraphPhase() {
	reg := callgraph.BuildRegistry(r.ctx.FileSet)
	r.calculator = callgraph.NewCalculator(reg)
	for _, name := range reg.TemplateNames() {
		meta, ok := reg.Template(name)
		if !ok {
			continue
		}
		info := r.calculator.Calculate(meta)
		if info.MayHaveIndirectParamsInExternalCalls {
			r.ctx.Bag.Report(diagnostics.ExternalCallAdvisory(name))
		}
		if info.MayHaveIndirectParamsInExternalDelCalls {
			r.ctx.Bag.Report(diagnostics.ExternalDelCallAdvisory(name))
		}
	}
	for _, file := range r.ctx.FileSet.Files {
		if !r.ctx.AdvanceFilePhase(file.Path, phase.PhaseAnalyzed) {
			r.ctx.SetFilePhase(file.Path, phase.PhaseAnalyzed)
		}
	}
}

// CallGraph returns the calculator built by Run, or nil before Run.
func (r *Runner) CallGraph() *callgraph.Calculator {
	return r.calculator
}

// IndirectParams computes the indirect-parameter info for a template by
// name. Run must have completed first.
func (r *Runner) IndirectParams(templateName string) (*callgraph.IndirectParamsInfo, error) {
	if r.calculator == nil {
		return nil, fmt.Errorf("analysis has not run")
	}
	meta, ok := r.calculator.Registry().Template(templateName)
	if !ok {
		return nil, fmt.Errorf("unknown template %q", templateName)
	}
	return r.calculator.Calculate(meta), nil
}

// Analyze is the convenience entry point: it builds a context, runs every
// pass, and returns the runner for post-run queries alongside the context
// holding the diagnostics.
func Analyze(fs *ast.FileSet, opts ...Option) (*Runner, *Context, error) {
	ctx := NewContext(fs, opts...)
	runner := New(ctx)
	err := runner.Run()
	return runner, ctx, err
}
