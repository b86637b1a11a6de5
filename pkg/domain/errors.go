package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyAlphabet is returned when a definition declares no symbols.
	ErrEmptyAlphabet = errors.New("alphabet is empty")

	// ErrNoRules is returned when a definition has no rules, so no start state exists.
	ErrNoRules = errors.New("machine has no rules")

	// ErrInvalidDirection is returned for an unknown direction token.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrIncompleteMachine is returned when an operation needs a rule for every (state, symbol) pair.
	ErrIncompleteMachine = errors.New("machine does not define every state/symbol pair")

	// ErrRunNotFound is returned when a run ID cannot be found in the store.
	ErrRunNotFound = errors.New("run not found")
)

// DuplicateRuleError reports two rules sharing a (state, symbol) key.
type DuplicateRuleError struct {
	State  string
	Symbol string
	First  int // position of the earlier rule
	Second int // position of the conflicting rule
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("duplicate rule for state %q reading %q (rules %d and %d)", e.State, e.Symbol, e.First, e.Second)
}

// UnknownSymbolError reports a symbol that is not part of the alphabet.
type UnknownSymbolError struct {
	Symbol string
	// Rule is the position of the offending rule, -1 for tape input.
	Rule int
}

func (e *UnknownSymbolError) Error() string {
	if e.Rule < 0 {
		return fmt.Sprintf("input symbol %q is not in the alphabet", e.Symbol)
	}
	return fmt.Sprintf("rule %d: symbol %q is not in the alphabet", e.Rule, e.Symbol)
}

// UnknownStateError reports a state that was never interned.
type UnknownStateError struct {
	State string
	Rule  int
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("rule %d: unknown state %q", e.Rule, e.State)
}

// ParseError reports a malformed line of a machine or input file.
type ParseError struct {
	Line   int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AggregateError represents multiple failures reported together.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap lets errors.Is and errors.As look through every collected error.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Errors returns the collected errors if err is an AggregateError,
// a single-element slice for any other non-nil error.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return []error{err}
}
