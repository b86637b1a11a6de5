package dsl

import "github.com/aretw0/turing/pkg/domain"

// StateBuilder adds rules leaving one state.
type StateBuilder struct {
	builder *Builder
	name    string
}

// On adds a rule for reading symbol. Until told otherwise the rule writes the
// symbol back, stays, and keeps the state.
func (s *StateBuilder) On(symbol string) *RuleBuilder {
	r := &domain.RawRule{
		From:  s.name,
		Read:  symbol,
		To:    s.name,
		Write: symbol,
		Move:  string(domain.DirectionStay),
	}
	s.builder.rules = append(s.builder.rules, r)
	return &RuleBuilder{state: s, rule: r}
}

// Otherwise adds the wildcard rule, used for every symbol without its own rule.
// A wildcard rule must say what it writes.
func (s *StateBuilder) Otherwise() *RuleBuilder {
	rb := s.On(domain.Wildcard)
	rb.rule.Write = ""
	return rb
}

// RuleBuilder configures one rule.
type RuleBuilder struct {
	state *StateBuilder
	rule  *domain.RawRule
}

// Write sets the symbol written under the head.
func (r *RuleBuilder) Write(symbol string) *RuleBuilder {
	r.rule.Write = symbol
	return r
}

// Left moves the head one cell left.
func (r *RuleBuilder) Left() *RuleBuilder {
	r.rule.Move = string(domain.DirectionLeft)
	return r
}

// Right moves the head one cell right.
func (r *RuleBuilder) Right() *RuleBuilder {
	r.rule.Move = string(domain.DirectionRight)
	return r
}

// Stay keeps the head in place.
func (r *RuleBuilder) Stay() *RuleBuilder {
	r.rule.Move = string(domain.DirectionStay)
	return r
}

// Go sets the next state and returns to the source state for more rules.
func (r *RuleBuilder) Go(state string) *StateBuilder {
	r.rule.To = state
	return r.state
}

// Accept makes the rule halt accepting after its write.
func (r *RuleBuilder) Accept() *StateBuilder {
	r.rule.Move = string(domain.DirectionHaltAccept)
	return r.state
}

// Reject makes the rule halt rejecting after its write.
func (r *RuleBuilder) Reject() *StateBuilder {
	r.rule.Move = string(domain.DirectionHaltReject)
	return r.state
}
