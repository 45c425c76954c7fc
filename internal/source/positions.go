package source

// Position is a point in a template source file.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
}

// Before reports whether p comes before other in source order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}
