package phase

// FilePhase tracks how far an individual source file has progressed through
// semantic analysis.
//
// Phase progression must be sequential and respect prerequisites:
// - NotStarted -> Parsed -> Resolved -> TypeChecked -> Analyzed
//
// Phase transitions are validated using AdvanceFilePhase() which checks
// that prerequisites are satisfied via the PhasePrerequisites map.
type FilePhase int

const (
	PhaseNotStarted  FilePhase = iota // File discovered but not processed
	PhaseParsed                       // AST built
	PhaseResolved                     // Variable references bound to definitions
	PhaseTypeChecked                  // Every expression carries a type
	PhaseAnalyzed                     // Call-graph metadata extracted
)

// PhasePrerequisites maps each phase to its required predecessor phase
// This explicit mapping is safer than arithmetic and allows for non-linear phase progressions
var PhasePrerequisites = map[FilePhase]FilePhase{
	PhaseParsed:      PhaseNotStarted,
	PhaseResolved:    PhaseParsed,
	PhaseTypeChecked: PhaseResolved,
	PhaseAnalyzed:    PhaseTypeChecked,
}

func (p FilePhase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseParsed:
		return "Parsed"
	case PhaseResolved:
		return "Resolved"
	case PhaseTypeChecked:
		return "TypeChecked"
	case PhaseAnalyzed:
		return "Analyzed"
	default:
		return "Unknown"
	}
}
