// Package machine holds a compiled Turing machine: the interned alphabet and
// states plus the transition table built from them.
package machine

import (
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/registry"
	"github.com/aretw0/turing/pkg/table"
)

// Machine is immutable after compilation. It can be shared by any number of
// concurrent runs, each owning its own tape and run state.
type Machine struct {
	Name    string
	Symbols *registry.Registry[domain.Symbol]
	States  *registry.Registry[domain.State]
	Table   *table.Table
	Rules   []domain.Rule

	// Source is the definition the machine was compiled from.
	Source domain.Definition
}

// Start returns the start state.
func (m *Machine) Start() domain.State {
	return domain.Start
}

// Blank returns the default symbol.
func (m *Machine) Blank() domain.Symbol {
	return domain.Blank
}

// BlankName returns the text of the default symbol.
func (m *Machine) BlankName() string {
	return m.Symbols.Name(domain.Blank)
}

// StartName returns the name of the start state.
func (m *Machine) StartName() string {
	return m.States.Name(domain.Start)
}

// EncodeInput maps raw tape symbols to indices.
// Unlike rule compilation it never interns: input must use the alphabet.
func (m *Machine) EncodeInput(raw []string) ([]domain.Symbol, error) {
	out := make([]domain.Symbol, len(raw))
	for i, s := range raw {
		idx, ok := m.Symbols.Lookup(s)
		if !ok {
			return nil, &domain.UnknownSymbolError{Symbol: s, Rule: -1}
		}
		out[i] = idx
	}
	return out, nil
}

// DecodeSymbols maps indices back to symbol text.
func (m *Machine) DecodeSymbols(syms []domain.Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = m.Symbols.Name(s)
	}
	return out
}

// Record resolves a run result into a persistable record.
func (m *Machine) Record(id string, input []string, res domain.RunResult, at time.Time) domain.RunRecord {
	in := make([]string, len(input))
	copy(in, input)
	return domain.RunRecord{
		ID:        id,
		Machine:   m.Name,
		Input:     in,
		Status:    res.Status,
		Steps:     res.Steps,
		State:     m.States.Name(res.State),
		Head:      res.Head,
		TapeStart: res.Tape.Start,
		Tape:      m.DecodeSymbols(res.Tape.Symbols),
		Blank:     m.BlankName(),
		CreatedAt: at,
	}
}

// Transition is a table entry with names resolved, for presentation.
type Transition struct {
	From      string `json:"from"`
	Read      string `json:"read"`
	To        string `json:"to"`
	Write     string `json:"write"`
	Direction string `json:"direction"`
	Wildcard  bool   `json:"wildcard,omitempty"`
}

// Transitions lists every defined table cell, rows in state order.
func (m *Machine) Transitions() []Transition {
	entries := m.Table.Entries()
	out := make([]Transition, 0, len(entries))
	for _, e := range entries {
		out = append(out, Transition{
			From:      m.States.Name(e.Key.State),
			Read:      m.Symbols.Name(e.Key.Symbol),
			To:        m.States.Name(e.Outcome.Next),
			Write:     m.Symbols.Name(e.Outcome.Write),
			Direction: string(domain.DirectionOf(e.Outcome.Move, e.Outcome.Halt)),
			Wildcard:  e.Wildcard,
		})
	}
	return out
}

// Frame resolves a tape snapshot against the machine. The window always
// includes the head.
func (m *Machine) Frame(snap domain.Snapshot, head int, state domain.State) domain.Frame {
	lo, hi := head, head
	if snap.Len() > 0 {
		lo, hi = min(lo, snap.Start), max(hi, snap.End())
	}
	f := domain.Frame{
		Start: lo,
		Blank: m.BlankName(),
		Head:  head,
		State: m.States.Name(state),
	}
	for pos := lo; pos <= hi; pos++ {
		f.Cells = append(f.Cells, m.Symbols.Name(snap.At(pos)))
	}
	return f
}

// FinalFrame is Frame for a finished run.
func (m *Machine) FinalFrame(res domain.RunResult) domain.Frame {
	return m.Frame(res.Tape, res.Head, res.State)
}
