package domain

import "time"

// RunRecord is a finished run as persisted by a store, with every index
// resolved back to its name so the record outlives the compiled machine.
type RunRecord struct {
	ID        string    `json:"id"`
	Machine   string    `json:"machine"`
	Input     []string  `json:"input"`
	Status    Status    `json:"status"`
	Steps     int       `json:"steps"`
	State     string    `json:"state"`
	Head      int       `json:"head"`
	TapeStart int       `json:"tape_start"`
	Tape      []string  `json:"tape"`
	Blank     string    `json:"blank,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
