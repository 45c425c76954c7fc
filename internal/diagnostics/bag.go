package diagnostics

import (
	"fmt"
	"sync"
)

// Reporter is the sink the analysis passes report through. The passes never
// abort on a report; policy (collect vs. explode) lives in the sink.
type Reporter interface {
	Report(diag *Diagnostic)
}

// Bag collects diagnostics during a compilation.
type Bag struct {
	mu          sync.Mutex
	diagnostics []*Diagnostic
	errorCount  int
	warnCount   int
}

// NewBag creates an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{}
}

// Report adds a diagnostic to the bag.
func (b *Bag) Report(diag *Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.diagnostics = append(b.diagnostics, diag)
	switch diag.Severity {
	case Error:
		b.errorCount++
	case Warning:
		b.warnCount++
	}
}

// HasErrors returns true if there are any error-severity diagnostics.
// A compilation is considered failed iff this is true.
func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount > 0
}

// ErrorCount returns the number of errors.
func (b *Bag) ErrorCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount
}

// WarningCount returns the number of warnings.
func (b *Bag) WarningCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.warnCount
}

// Diagnostics returns a copy of all collected diagnostics in report order.
func (b *Bag) Diagnostics() []*Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := make([]*Diagnostic, len(b.diagnostics))
	copy(result, b.diagnostics)
	return result
}

// Messages returns the rendered one-line form of every diagnostic, in report
// order. Handy for tests asserting on exact output.
func (b *Bag) Messages() []string {
	diags := b.Diagnostics()
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return msgs
}

// Clear removes all diagnostics.
func (b *Bag) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.diagnostics = nil
	b.errorCount = 0
	b.warnCount = 0
}

// Exploding wraps a Reporter and panics on the first error-severity report.
// Tests use it to assert a pass is clean; it also backs invariant checks.
type Exploding struct {
	Wrapped Reporter
}

// NewExploding creates an exploding sink over a fresh bag.
func NewExploding() *Exploding {
	return &Exploding{Wrapped: NewBag()}
}

// Report forwards to the wrapped sink, then panics for errors.
func (e *Exploding) Report(diag *Diagnostic) {
	if e.Wrapped != nil {
		e.Wrapped.Report(diag)
	}
	if diag.Severity == Error {
		panic(fmt.Sprintf("unexpected error diagnostic: %s: %s", diag.Location(), diag.Message))
	}
}
