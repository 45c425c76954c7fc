package diagnostics

import (
	"strings"
	"testing"

	"github.com/google/closure-templates-sub001/internal/source"
)

func TestBagCounts(t *testing.T) {
	bag := NewBag()
	if bag.HasErrors() {
		t.Fatal("fresh bag should have no errors")
	}

	bag.Report(NewError("first"))
	bag.Report(NewWarning("second"))
	bag.Report(NewError("third"))

	if !bag.HasErrors() {
		t.Error("expected HasErrors() after error report")
	}
	if got := bag.ErrorCount(); got != 2 {
		t.Errorf("ErrorCount() = %d, want 2", got)
	}
	if got := bag.WarningCount(); got != 1 {
		t.Errorf("WarningCount() = %d, want 1", got)
	}
	if got := bag.Messages(); len(got) != 3 || got[0] != "first" || got[2] != "third" {
		t.Errorf("Messages() = %v", got)
	}

	bag.Clear()
	if bag.HasErrors() || len(bag.Diagnostics()) != 0 {
		t.Error("Clear() did not empty the bag")
	}
}

func TestPrimaryLabelIsFirstAndUnique(t *testing.T) {
	locA := source.Point("a.soy", 1, 1)
	locB := source.Point("a.soy", 2, 2)

	d := NewError("boom").
		WithSecondaryLabel(locB, "context").
		WithPrimaryLabel(locA, "here").
		WithPrimaryLabel(locB, "ignored")

	if len(d.Labels) != 2 {
		t.Fatalf("len(Labels) = %d, want 2", len(d.Labels))
	}
	if d.Labels[0].Style != Primary || d.Labels[0].Location != locA {
		t.Errorf("first label = %+v, want primary at %v", d.Labels[0], locA)
	}
	if d.Location() != locA {
		t.Errorf("Location() = %v, want %v", d.Location(), locA)
	}
}

func TestExplodingPanicsOnError(t *testing.T) {
	e := NewExploding()

	// Warnings pass through quietly.
	e.Report(NewWarning("fine"))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on error report")
		}
	}()
	e.Report(NewError("boom").WithPrimaryLabel(source.Point("a.soy", 3, 4), ""))
}

func TestEmitterRendering(t *testing.T) {
	var buf strings.Builder
	bag := NewBag()
	bag.Report(
		NewError("Unknown variable '$boo'.").
			WithCode(ErrUndefinedVariable).
			WithPrimaryLabel(source.Point("a.soy", 3, 9), "not found in this scope").
			WithHelp("did you mean '$foo'?"))

	NewEmitter(&buf).EmitAll(bag)

	out := buf.String()
	for _, want := range []string{
		"error[N0001]: Unknown variable '$boo'.",
		"a.soy:3:9",
		"help: did you mean '$foo'?",
		"analysis failed with 1 error",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "1 errors") {
		t.Errorf("summary not pluralized correctly:\n%s", out)
	}

	bag.Report(NewError("second").WithCode(ErrTypeMismatch))
	bag.Report(NewWarning("careful").WithCode(ErrNotComparable))
	buf.Reset()
	NewEmitter(&buf).EmitAll(bag)
	if out := buf.String(); !strings.Contains(out, "analysis failed with 2 errors and 1 warning") {
		t.Errorf("missing pluralized summary:\n%s", out)
	}
}
