package callgraph

import "github.com/google/closure-templates-sub001/internal/ast"

// IndirectParamsInfo summarizes what a template's transitive callees expect
// to receive through forwarded ambient data.
type IndirectParamsInfo struct {
	params     map[string]*ast.Param
	paramOrder []string
	provenance *Provenance

	// MayHaveIndirectParamsInExternalCalls is set when a data="all" call
	// targets a template outside the registry, so the true indirect set is
	// unknowable here.
	MayHaveIndirectParamsInExternalCalls bool
	// MayHaveIndirectParamsInExternalDelCalls is the same signal for
	// delegate calls, which dispatch dynamically.
	MayHaveIndirectParamsInExternalDelCalls bool
}

func newIndirectParamsInfo() *IndirectParamsInfo {
	return &IndirectParamsInfo{
		params:     make(map[string]*ast.Param),
		provenance: newProvenance(),
	}
}

// ParamNames returns the indirect parameter names in discovery order, the
// nearest caller's declarations first.
func (info *IndirectParamsInfo) ParamNames() []string {
	return append([]string(nil), info.paramOrder...)
}

// Param returns the first-discovered declaration for an indirect parameter.
func (info *IndirectParamsInfo) Param(name string) (*ast.Param, bool) {
	p, ok := info.params[name]
	return p, ok
}

// Provenance returns the templates that declare each indirect parameter.
func (info *IndirectParamsInfo) Provenance() *Provenance {
	return info.provenance
}

func (info *IndirectParamsInfo) record(param *ast.Param, declaredBy string) {
	name := param.Defn.Name
	if _, seen := info.params[name]; !seen {
		info.params[name] = param
		info.paramOrder = append(info.paramOrder, name)
	}
	info.provenance.add(name, declaredBy)
}

// Provenance maps each indirect parameter to the templates declaring it,
// both in discovery order.
type Provenance struct {
	byParam map[string][]string
	order   []string
}

func newProvenance() *Provenance {
	return &Provenance{byParam: make(map[string][]string)}
}

// Params returns the parameter names in discovery order.
func (p *Provenance) Params() []string {
	return append([]string(nil), p.order...)
}

// Templates returns the declaring templates for a parameter, nearest caller
// first.
func (p *Provenance) Templates(param string) []string {
	return append([]string(nil), p.byParam[param]...)
}

func (p *Provenance) add(param, tmpl string) {
	existing, seen := p.byParam[param]
	if !seen {
		p.order = append(p.order, param)
	}
	for _, t := range existing {
		if t == tmpl {
			return
		}
	}
	p.byParam[param] = append(existing, tmpl)
}

// Calculator computes indirect-parameter info over a registry. Results are
// memoized per root, so repeated queries are cheap and order independent.
type Calculator struct {
	registry *Registry
	memo     map[string]*IndirectParamsInfo
}

// NewCalculator returns a calculator over the given registry.
func NewCalculator(reg *Registry) *Calculator {
	return &Calculator{
		registry: reg,
		memo:     make(map[string]*IndirectParamsInfo),
	}
}

// Registry returns the template registry the calculator walks.
func (c *Calculator) Registry() *Registry {
	return c.registry
}

type traversalFrame struct {
	situation CallSituation
	paramKeys map[string]bool
}

// Calculate walks the data="all" call graph from root and gathers every
// callee parameter that no call site along the chain passed explicitly.
// Cycles terminate because each distinct (callee, explicit keys) situation
// is visited at most once; every member of a cycle therefore ends with the
// same parameter set no matter which member the walk enters through.
func (c *Calculator) Calculate(root *TemplateMetadata) *IndirectParamsInfo {
	if info, ok := c.memo[root.Name]; ok {
		return info
	}
	info := newIndirectParamsInfo()
	visited := make(map[string]bool)

	var stack []traversalFrame
	push := func(calls []CallSituation, paramKeys map[string]bool) {
		for i := len(calls) - 1; i >= 0; i-- {
			stack = append(stack, traversalFrame{calls[i], paramKeys})
		}
	}
	push(root.Calls, nil)

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		keys := unionKeys(frame.paramKeys, frame.situation.Explicit)
		if frame.situation.DelCall {
			// Delegate dispatch is dynamic; the compile-time registry cannot
			// enumerate the variants that may answer this call.
			info.MayHaveIndirectParamsInExternalDelCalls = true
			continue
		}
		callee, ok := c.registry.Template(frame.situation.Callee)
		if !ok {
			info.MayHaveIndirectParamsInExternalCalls = true
			continue
		}
		key := situationKey(callee.Name, keys)
		if visited[key] {
			continue
		}
		visited[key] = true

		for _, param := range callee.Params {
			if keys[param.Defn.Name] {
				continue
			}
			info.record(param, callee.Name)
		}
		push(callee.Calls, keys)
	}

	c.memo[root.Name] = info
	return info
}

func unionKeys(base, extra map[string]bool) map[string]bool {
	if len(extra) == 0 {
		return base
	}
	merged := make(map[string]bool, len(base)+len(extra))
	for k := range base {
		merged[k] = true
	}
	for k := range extra {
		merged[k] = true
	}
	return merged
}
