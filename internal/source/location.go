package source

import "fmt"

// Location is a span of template source with start and end positions.
// The parser attaches one to every AST node; all diagnostics carry one.
type Location struct {
	FilePath string
	Start    Position
	End      Position
}

// NewLocation creates a Location covering [start, end] in the given file.
func NewLocation(filePath string, start, end Position) Location {
	return Location{FilePath: filePath, Start: start, End: end}
}

// Point creates a zero-width Location at a single position.
func Point(filePath string, line, column int) Location {
	pos := Position{Line: line, Column: column}
	return Location{FilePath: filePath, Start: pos, End: pos}
}

// Unknown is the location used for synthesized nodes.
var Unknown = Location{}

// IsKnown reports whether the location points at real source.
func (l Location) IsKnown() bool {
	return l.Start.Line > 0
}

// Contains checks if the given position is within this location.
func (l Location) Contains(pos Position) bool {
	if pos.Before(l.Start) {
		return false
	}
	return !l.End.Before(pos)
}

// Extend returns a Location spanning from l's start to other's end.
func (l Location) Extend(other Location) Location {
	return Location{FilePath: l.FilePath, Start: l.Start, End: other.End}
}

func (l Location) String() string {
	if !l.IsKnown() {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d:%d", l.FilePath, l.Start.Line, l.Start.Column)
}
