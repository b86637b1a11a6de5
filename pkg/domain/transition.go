package domain

import "fmt"

// Move is the head movement of a transition.
type Move int

const (
	MoveStay Move = iota
	MoveLeft
	MoveRight
)

// Delta returns the head offset applied by the move.
func (m Move) Delta() int {
	switch m {
	case MoveLeft:
		return -1
	case MoveRight:
		return 1
	default:
		return 0
	}
}

func (m Move) String() string {
	switch m {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	default:
		return "stay"
	}
}

// Halt classifies whether a transition ends the run.
type Halt int

const (
	HaltNone Halt = iota
	HaltAccept
	HaltReject
)

func (h Halt) String() string {
	switch h {
	case HaltAccept:
		return "accept"
	case HaltReject:
		return "reject"
	default:
		return "none"
	}
}

// Direction is the token written in the fifth field of a rule.
type Direction string

const (
	DirectionLeft       Direction = "left"
	DirectionRight      Direction = "right"
	DirectionStay       Direction = "stay"
	DirectionNoop       Direction = "noop" // alias of stay
	DirectionHaltAccept Direction = "halt_accept"
	DirectionHaltReject Direction = "halt_reject"
)

// ParseDirection maps a direction token to its movement and halt classification.
// The halting tokens never move the head.
func ParseDirection(token string) (Move, Halt, error) {
	switch Direction(token) {
	case DirectionLeft:
		return MoveLeft, HaltNone, nil
	case DirectionRight:
		return MoveRight, HaltNone, nil
	case DirectionStay, DirectionNoop:
		return MoveStay, HaltNone, nil
	case DirectionHaltAccept:
		return MoveStay, HaltAccept, nil
	case DirectionHaltReject:
		return MoveStay, HaltReject, nil
	}
	return MoveStay, HaltNone, fmt.Errorf("%w: %q", ErrInvalidDirection, token)
}

// DirectionOf returns the canonical token for an outcome.
func DirectionOf(m Move, h Halt) Direction {
	switch h {
	case HaltAccept:
		return DirectionHaltAccept
	case HaltReject:
		return DirectionHaltReject
	}
	switch m {
	case MoveLeft:
		return DirectionLeft
	case MoveRight:
		return DirectionRight
	}
	return DirectionStay
}

// Outcome is the effect of a transition: the symbol written under the head,
// the next state, and either a head movement or a halt.
type Outcome struct {
	Next  State  `json:"next"`
	Write Symbol `json:"write"`
	Move  Move   `json:"move"`
	Halt  Halt   `json:"halt"`
}

// Halts reports whether the outcome terminates the run.
func (o Outcome) Halts() bool {
	return o.Halt != HaltNone
}

// Key addresses one cell of the transition table.
type Key struct {
	State  State  `json:"state"`
	Symbol Symbol `json:"symbol"`
}

// Rule is a compiled five-tuple.
// When AnyRead is set, Read is ignored and the rule covers every symbol of
// From that no explicit rule defines.
type Rule struct {
	From    State
	Read    Symbol
	AnyRead bool
	Outcome Outcome

	// Position is the index of the rule in its source list.
	Position int
}

// Key returns the table cell the rule occupies.
func (r Rule) Key() Key {
	return Key{State: r.From, Symbol: r.Read}
}
