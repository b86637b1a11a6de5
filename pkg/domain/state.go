package domain

// Status is the execution status of a run.
type Status string

const (
	StatusRunning          Status = "running"
	StatusHaltedAccept     Status = "halted_accept"
	StatusHaltedReject     Status = "halted_reject"
	StatusAbortedStepLimit Status = "aborted_step_limit"
)

// Terminal reports whether no further steps may be taken.
func (s Status) Terminal() bool {
	return s != StatusRunning
}

// Accepted reports whether the run halted in the accepting classification.
func (s Status) Accepted() bool {
	return s == StatusHaltedAccept
}

// RunState is the mutable part of a run.
type RunState struct {
	State State `json:"state"`
	Head  int   `json:"head"`
	Steps int   `json:"steps"`
}

// NewRunState returns the initial run state: start state, head at origin, no steps.
func NewRunState() RunState {
	return RunState{State: Start}
}

// Reason explains why a step ended where it did.
type Reason string

const (
	ReasonMoved        Reason = "moved"
	ReasonHalted       Reason = "halted"
	ReasonNoTransition Reason = "no_transition"
	ReasonStepLimit    Reason = "step_limit"
	ReasonTerminal     Reason = "already_terminal"
)

// StepOutcome describes a single call to the engine's Step.
type StepOutcome struct {
	Status Status `json:"status"`
	Reason Reason `json:"reason"`

	// Read is the symbol found under the head before the step.
	Read Symbol `json:"read"`

	// Outcome is the transition applied. Zero when Defined is false.
	Outcome Outcome `json:"outcome"`
	Defined bool    `json:"defined"`

	Before RunState `json:"before"`
	After  RunState `json:"after"`
}

// Snapshot is the written region of a tape.
// Symbols[i] is the cell at position Start+i.
type Snapshot struct {
	Start   int      `json:"start"`
	Symbols []Symbol `json:"symbols"`
}

// End returns the last position of the region, Start-1 when it is empty.
func (s Snapshot) End() int {
	return s.Start + len(s.Symbols) - 1
}

// Len returns the number of cells in the region.
func (s Snapshot) Len() int {
	return len(s.Symbols)
}

// At returns the symbol at an absolute position, Blank outside the region.
func (s Snapshot) At(pos int) Symbol {
	i := pos - s.Start
	if i < 0 || i >= len(s.Symbols) {
		return Blank
	}
	return s.Symbols[i]
}

// RunResult is the terminal report of a run.
type RunResult struct {
	Status Status   `json:"status"`
	Steps  int      `json:"steps"`
	State  State    `json:"state"`
	Head   int      `json:"head"`
	Tape   Snapshot `json:"tape"`
}
