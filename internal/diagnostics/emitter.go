package diagnostics

import (
	"fmt"
	"io"

	"github.com/google/closure-templates-sub001/colors"
	"github.com/google/closure-templates-sub001/internal/utils/strings"
)

// Emitter renders diagnostics as compact text. The core has no terminal UI
// beyond this; callers that want fancier rendering wrap the structured
// Diagnostic values themselves.
type Emitter struct {
	writer io.Writer
	color  bool
}

// NewEmitter creates an emitter writing plain text to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{writer: w}
}

// NewColorEmitter creates an emitter that colors severity headers.
func NewColorEmitter(w io.Writer) *Emitter {
	return &Emitter{writer: w, color: true}
}

func (e *Emitter) header(d *Diagnostic) string {
	var h string
	if d.Code != "" {
		h = fmt.Sprintf("%s[%s]", d.Severity, d.Code)
	} else {
		h = d.Severity.String()
	}
	if !e.color {
		return h
	}
	switch d.Severity {
	case Warning:
		return colors.BOLD_YELLOW.Sprint(h)
	case Info:
		return colors.BOLD_CYAN.Sprint(h)
	default:
		return colors.BOLD_RED.Sprint(h)
	}
}

// Emit writes one diagnostic.
func (e *Emitter) Emit(d *Diagnostic) {
	fmt.Fprintf(e.writer, "%s: %s\n", e.header(d), d.Message)
	for _, label := range d.Labels {
		marker := "-->"
		if label.Style == Secondary {
			marker = "   "
		}
		if label.Message != "" {
			fmt.Fprintf(e.writer, "  %s %s: %s\n", marker, label.Location, label.Message)
		} else {
			fmt.Fprintf(e.writer, "  %s %s\n", marker, label.Location)
		}
	}
	for _, note := range d.Notes {
		fmt.Fprintf(e.writer, "  note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(e.writer, "  help: %s\n", d.Help)
	}
}

// EmitAll writes every diagnostic in the bag followed by a summary line when
// errors are present.
func (e *Emitter) EmitAll(bag *Bag) {
	for _, d := range bag.Diagnostics() {
		e.Emit(d)
	}
	if n := bag.ErrorCount(); n > 0 {
		fmt.Fprintf(e.writer, "\nanalysis failed with %d %s", n, strings.Pluralize("error", "errors", n))
		if w := bag.WarningCount(); w > 0 {
			fmt.Fprintf(e.writer, " and %d %s", w, strings.Pluralize("warning", "warnings", w))
		}
		fmt.Fprintln(e.writer)
	}
}
