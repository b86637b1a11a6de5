/*
Package domain contains the core domain models of the Turing engine.

It defines the vocabulary shared by every other package: dense symbol and state
indices, rules and their outcomes, the run state and the terminal statuses.
The package is pure and free of I/O, following the same hexagonal layout as the
rest of the module.

# Key Entities

  - Symbol / State: dense integer indices handed out by a registry.
  - Rule: a compiled five-tuple (from, read) -> (next, write, move, halt).
  - Outcome: what a transition does. Halting is a classification orthogonal to
    head movement.
  - RunState: the mutable (state, head, steps) triple of one run.
  - RunResult: the terminal status, step count and written tape region.
*/
package domain
