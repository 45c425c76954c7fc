package diagnostics

// Error codes for the semantic analyzer.
const (
	// Name resolution errors (N prefix)
	ErrUndefinedVariable = "N0001"
	ErrVariableRedefined = "N0002"
	ErrUnknownFunction   = "N0003"

	// Type errors (T prefix)
	ErrTypeMismatch        = "T0001"
	ErrIncompatibleOperand = "T0002"
	ErrFieldNotFound       = "T0003"
	ErrDotAccessNotAllowed = "T0004"
	ErrBadIndexType        = "T0005"
	ErrBadKeyType          = "T0006"
	ErrBracketNotAllowed   = "T0007"
	ErrWrongArgumentCount  = "T0008"
	ErrBadArgumentType     = "T0009"
	ErrCannotIterate       = "T0010"
	ErrDuplicateKey        = "T0011"
	ErrCannotNarrow        = "T0012"
	ErrNullishAccess       = "T0013"
	ErrNotComparable       = "T0014"
	ErrDefaultTypeMismatch = "T0015"

	// Advisory codes for call-graph analysis (C prefix)
	InfoExternalCall    = "C0001"
	InfoExternalDelCall = "C0002"
)
