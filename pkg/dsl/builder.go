package dsl

import (
	"fmt"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
)

// Builder accumulates a machine definition.
type Builder struct {
	name     string
	alphabet []string
	rules    []*domain.RawRule
}

// New starts a machine called name.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Alphabet appends symbols to the alphabet. The first symbol ever given is the blank.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	b.alphabet = append(b.alphabet, symbols...)
	return b
}

// State returns a builder for the rules leaving state name.
func (b *Builder) State(name string) *StateBuilder {
	return &StateBuilder{builder: b, name: name}
}

// Definition returns the rules collected so far, in the order they were added.
func (b *Builder) Definition() domain.Definition {
	def := domain.Definition{
		Name:     b.name,
		Alphabet: append([]string(nil), b.alphabet...),
		Rules:    make([]domain.RawRule, 0, len(b.rules)),
	}
	for i, r := range b.rules {
		rule := *r
		rule.Line = i + 1
		def.Rules = append(def.Rules, rule)
	}
	return def
}

// Build compiles the definition into an engine.
func (b *Builder) Build(opts ...turing.Option) (*turing.Engine, error) {
	eng, err := turing.New(b.Definition(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build machine %q: %w", b.name, err)
	}
	return eng, nil
}
