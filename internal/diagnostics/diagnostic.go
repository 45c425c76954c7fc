package diagnostics

import (
	"github.com/google/closure-templates-sub001/internal/source"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// LabelStyle distinguishes the main error location from supporting context.
type LabelStyle int

const (
	Primary LabelStyle = iota
	Secondary
)

// Label is a located annotation attached to a diagnostic.
type Label struct {
	Location source.Location
	Message  string
	Style    LabelStyle
}

// Diagnostic is one analysis finding: an error, warning, or informational note.
type Diagnostic struct {
	Severity Severity
	Message  string
	Code     string // error code like "T0004"
	Labels   []Label
	Notes    []string
	Help     string // suggestion for fixing the problem
}

// Location returns the primary label's location, or source.Unknown if the
// diagnostic has no labels.
func (d *Diagnostic) Location() source.Location {
	for _, label := range d.Labels {
		if label.Style == Primary {
			return label.Location
		}
	}
	return source.Unknown
}

// NewError creates a new error diagnostic.
func NewError(message string) *Diagnostic {
	return &Diagnostic{Severity: Error, Message: message}
}

// NewWarning creates a new warning diagnostic.
func NewWarning(message string) *Diagnostic {
	return &Diagnostic{Severity: Warning, Message: message}
}

// NewInfo creates a new info diagnostic.
func NewInfo(message string) *Diagnostic {
	return &Diagnostic{Severity: Info, Message: message}
}

// WithCode sets the error code.
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithPrimaryLabel sets the main location. Only the first primary label is
// kept; secondary labels added before it are shifted after it.
func (d *Diagnostic) WithPrimaryLabel(loc source.Location, message string) *Diagnostic {
	for _, label := range d.Labels {
		if label.Style == Primary {
			return d
		}
	}
	d.Labels = append([]Label{{Location: loc, Message: message, Style: Primary}}, d.Labels...)
	return d
}

// WithSecondaryLabel adds a supporting context location.
func (d *Diagnostic) WithSecondaryLabel(loc source.Location, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{Location: loc, Message: message, Style: Secondary})
	return d
}

// WithNote adds a note to the diagnostic.
func (d *Diagnostic) WithNote(message string) *Diagnostic {
	d.Notes = append(d.Notes, message)
	return d
}

// WithHelp sets a suggestion for fixing the problem.
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}
