/*
Package turing interprets single-tape deterministic Turing machines.

A machine is an alphabet, whose first symbol is the blank, and a list of
five-field rules (state, read, next state, write, direction). The first rule's
source state is the start state. Rules may read the wildcard "*" to cover every
symbol of a state that no explicit rule handles.

# Usage

	eng, err := turing.Load("busy_beaver.tm", turing.WithStepLimit(1000))
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Run(ctx, []string{"1", "0", "1"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Status, res.Steps)

A run ends in one of three terminal statuses: halted_accept, halted_reject
(a halt_reject rule, or no rule for the current state and symbol) and
aborted_step_limit. They are results, not errors.

# Packages

  - pkg/format: the text and YAML machine formats.
  - pkg/encoding: a machine written over its own first two symbols.
  - pkg/runner: trace printing, persistence and parallel batches.
  - pkg/adapters: run stores, the HTTP API and the MCP server.
*/
package turing
