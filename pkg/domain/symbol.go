package domain

// Symbol is the dense index of an alphabet symbol.
type Symbol int

// State is the dense index of a machine state.
type State int

const (
	// Blank is the index of the first declared symbol. Cells never written hold it.
	Blank Symbol = 0

	// Start is the index of the first state mentioned as a rule source.
	Start State = 0
)

// Wildcard stands for "any symbol" in the read field of a rule.
// Explicit rules of the same state take precedence over it.
const Wildcard = "*"
