// Package table compiles rules into a dense transition table.
package table

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/registry"
)

type cell struct {
	outcome  domain.Outcome
	defined  bool
	wildcard bool
	rule     int
}

// Table maps (state, symbol) to an outcome in O(1).
// It is immutable once built and safe for concurrent reads.
type Table struct {
	states  int
	symbols int
	cells   []cell
}

// Build records every rule at its (from, read) cell.
// Wildcard rules only fill cells of their state left undefined by explicit rules.
// Two explicit rules on one cell, or two wildcards on one state, are a
// *domain.DuplicateRuleError regardless of their order.
func Build(rules []domain.Rule, states *registry.Registry[domain.State], symbols *registry.Registry[domain.Symbol]) (*Table, error) {
	t := &Table{
		states:  states.Len(),
		symbols: symbols.Len(),
	}
	t.cells = make([]cell, t.states*t.symbols)

	var wildcards []domain.Rule
	wildcardOf := make(map[domain.State]int)

	for _, r := range rules {
		if err := t.check(r, states, symbols); err != nil {
			return nil, err
		}
		if r.AnyRead {
			if prev, ok := wildcardOf[r.From]; ok {
				return nil, &domain.DuplicateRuleError{
					State:  states.Name(r.From),
					Symbol: domain.Wildcard,
					First:  prev,
					Second: r.Position,
				}
			}
			wildcardOf[r.From] = r.Position
			wildcards = append(wildcards, r)
			continue
		}

		c := &t.cells[t.index(r.From, r.Read)]
		if c.defined {
			return nil, &domain.DuplicateRuleError{
				State:  states.Name(r.From),
				Symbol: symbols.Name(r.Read),
				First:  c.rule,
				Second: r.Position,
			}
		}
		*c = cell{outcome: r.Outcome, defined: true, rule: r.Position}
	}

	for _, r := range wildcards {
		for s := 0; s < t.symbols; s++ {
			c := &t.cells[t.index(r.From, domain.Symbol(s))]
			if c.defined {
				continue
			}
			*c = cell{outcome: r.Outcome, defined: true, wildcard: true, rule: r.Position}
		}
	}

	return t, nil
}

func (t *Table) check(r domain.Rule, states *registry.Registry[domain.State], symbols *registry.Registry[domain.Symbol]) error {
	if !t.validState(r.From) {
		return &domain.UnknownStateError{State: states.Name(r.From), Rule: r.Position}
	}
	if !t.validState(r.Outcome.Next) {
		return &domain.UnknownStateError{State: states.Name(r.Outcome.Next), Rule: r.Position}
	}
	if !r.AnyRead && !t.validSymbol(r.Read) {
		return &domain.UnknownSymbolError{Symbol: symbols.Name(r.Read), Rule: r.Position}
	}
	if !t.validSymbol(r.Outcome.Write) {
		return &domain.UnknownSymbolError{Symbol: symbols.Name(r.Outcome.Write), Rule: r.Position}
	}
	switch r.Outcome.Move {
	case domain.MoveLeft, domain.MoveRight, domain.MoveStay:
	default:
		return fmt.Errorf("rule %d: %w: move %d", r.Position, domain.ErrInvalidDirection, r.Outcome.Move)
	}
	switch r.Outcome.Halt {
	case domain.HaltNone, domain.HaltAccept, domain.HaltReject:
	default:
		return fmt.Errorf("rule %d: %w: halt %d", r.Position, domain.ErrInvalidDirection, r.Outcome.Halt)
	}
	return nil
}

func (t *Table) validState(s domain.State) bool {
	return s >= 0 && int(s) < t.states
}

func (t *Table) validSymbol(s domain.Symbol) bool {
	return s >= 0 && int(s) < t.symbols
}

func (t *Table) index(state domain.State, symbol domain.Symbol) int {
	return int(state)*t.symbols + int(symbol)
}

// Lookup returns the outcome for (state, symbol).
// false means no transition is defined; out-of-range indices are treated the same way.
func (t *Table) Lookup(state domain.State, symbol domain.Symbol) (domain.Outcome, bool) {
	if !t.validState(state) || !t.validSymbol(symbol) {
		return domain.Outcome{}, false
	}
	c := t.cells[t.index(state, symbol)]
	return c.outcome, c.defined
}

// RuleAt returns the position of the rule that defined a cell.
func (t *Table) RuleAt(state domain.State, symbol domain.Symbol) (int, bool) {
	if !t.validState(state) || !t.validSymbol(symbol) {
		return 0, false
	}
	c := t.cells[t.index(state, symbol)]
	return c.rule, c.defined
}

// States returns the number of rows.
func (t *Table) States() int { return t.states }

// Symbols returns the number of columns.
func (t *Table) Symbols() int { return t.symbols }

// Defined returns the number of cells holding a transition.
func (t *Table) Defined() int {
	n := 0
	for _, c := range t.cells {
		if c.defined {
			n++
		}
	}
	return n
}

// Complete reports whether every (state, symbol) pair has a transition.
func (t *Table) Complete() bool {
	return t.Defined() == len(t.cells)
}

// Missing lists the undefined cells in row-major order.
func (t *Table) Missing() []domain.Key {
	var out []domain.Key
	for i, c := range t.cells {
		if !c.defined {
			out = append(out, domain.Key{
				State:  domain.State(i / t.symbols),
				Symbol: domain.Symbol(i % t.symbols),
			})
		}
	}
	return out
}

// Entry is one defined cell, as enumerated by Entries.
type Entry struct {
	Key      domain.Key
	Outcome  domain.Outcome
	Wildcard bool
	Rule     int
}

// Entries lists the defined cells in row-major order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.cells))
	for i, c := range t.cells {
		if !c.defined {
			continue
		}
		out = append(out, Entry{
			Key: domain.Key{
				State:  domain.State(i / t.symbols),
				Symbol: domain.Symbol(i % t.symbols),
			},
			Outcome:  c.outcome,
			Wildcard: c.wildcard,
			Rule:     c.rule,
		})
	}
	return out
}
