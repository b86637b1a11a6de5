package compiler

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/registry"
	"github.com/aretw0/turing/pkg/table"
)

// Compile interns a definition and builds its transition table.
//
// Alphabet symbols are interned in declaration order, so the first one is the
// blank. States are interned in rule order (source, then target), so the first
// rule's source is the start state. Rule symbols must come from the alphabet.
func Compile(def domain.Definition) (*machine.Machine, error) {
	if len(def.Alphabet) == 0 {
		return nil, domain.ErrEmptyAlphabet
	}
	if len(def.Rules) == 0 {
		return nil, domain.ErrNoRules
	}

	symbols := registry.New[domain.Symbol]()
	for _, s := range def.Alphabet {
		if s == domain.Wildcard {
			return nil, fmt.Errorf("alphabet: %q is reserved", domain.Wildcard)
		}
		symbols.Intern(s)
	}

	states := registry.New[domain.State]()
	rules := make([]domain.Rule, 0, len(def.Rules))
	for i, raw := range def.Rules {
		r, err := compileRule(i, raw, states, symbols)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}

	tbl, err := table.Build(rules, states, symbols)
	if err != nil {
		return nil, err
	}

	return &machine.Machine{
		Name:    def.Name,
		Symbols: symbols,
		States:  states,
		Table:   tbl,
		Rules:   rules,
		Source:  def,
	}, nil
}

func compileRule(pos int, raw domain.RawRule, states *registry.Registry[domain.State], symbols *registry.Registry[domain.Symbol]) (domain.Rule, error) {
	if raw.From == "" {
		return domain.Rule{}, &domain.UnknownStateError{State: raw.From, Rule: pos}
	}
	if raw.To == "" {
		return domain.Rule{}, &domain.UnknownStateError{State: raw.To, Rule: pos}
	}

	move, halt, err := domain.ParseDirection(raw.Move)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("rule %d: %w", pos, err)
	}

	r := domain.Rule{
		From:     states.Intern(raw.From),
		Position: pos,
	}

	if raw.Read == domain.Wildcard {
		r.AnyRead = true
	} else {
		read, ok := symbols.Lookup(raw.Read)
		if !ok {
			return domain.Rule{}, &domain.UnknownSymbolError{Symbol: raw.Read, Rule: pos}
		}
		r.Read = read
	}

	write, ok := symbols.Lookup(raw.Write)
	if !ok {
		return domain.Rule{}, &domain.UnknownSymbolError{Symbol: raw.Write, Rule: pos}
	}

	r.Outcome = domain.Outcome{
		Next:  states.Intern(raw.To),
		Write: write,
		Move:  move,
		Halt:  halt,
	}
	return r, nil
}
