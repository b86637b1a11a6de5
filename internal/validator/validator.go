package validator

import (
	"errors"
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// ErrUnreachableState is reported for states no run from the start state can enter.
var ErrUnreachableState = errors.New("state is unreachable from the start state")

// Cell is an undefined (state, symbol) pair, by name.
type Cell struct {
	State  string `json:"state"`
	Symbol string `json:"symbol"`
}

// Report lists the structural problems of a machine. None of them prevents
// running it: a missing cell halts rejecting, an unreachable state is dead code.
type Report struct {
	Missing     []Cell   `json:"missing,omitempty"`
	Unreachable []string `json:"unreachable,omitempty"`
}

// OK reports whether the machine is complete and every state is reachable.
func (r Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Unreachable) == 0
}

// Err collects the problems into an AggregateError, nil when OK.
func (r Report) Err() error {
	var errs []error
	for _, c := range r.Missing {
		errs = append(errs, fmt.Errorf("%w: state %q reading %q", domain.ErrIncompleteMachine, c.State, c.Symbol))
	}
	for _, s := range r.Unreachable {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnreachableState, s))
	}
	if len(errs) == 0 {
		return nil
	}
	return &domain.AggregateError{Errors: errs}
}

// Check crawls the machine from its start state.
// Only moving transitions lead anywhere: a halting transition ends the run
// in the state it was taken from.
func Check(m *machine.Machine) Report {
	var rep Report
	for _, k := range m.Table.Missing() {
		rep.Missing = append(rep.Missing, Cell{
			State:  m.States.Name(k.State),
			Symbol: m.Symbols.Name(k.Symbol),
		})
	}

	visited := make([]bool, m.Table.States())
	queue := []domain.State{m.Start()}
	visited[m.Start()] = true
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for sym := range m.Table.Symbols() {
			out, ok := m.Table.Lookup(current, domain.Symbol(sym))
			if !ok || out.Halts() || visited[out.Next] {
				continue
			}
			visited[out.Next] = true
			queue = append(queue, out.Next)
		}
	}
	for s, seen := range visited {
		if !seen {
			rep.Unreachable = append(rep.Unreachable, m.States.Name(domain.State(s)))
		}
	}
	return rep
}

// Validate runs Check. With strict set every problem becomes an error.
func Validate(m *machine.Machine, strict bool) (Report, error) {
	rep := Check(m)
	if strict {
		return rep, rep.Err()
	}
	return rep, nil
}
