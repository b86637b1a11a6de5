package runtime

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/tape"
)

// DefaultStepLimit bounds runs when the caller does not configure a limit.
const DefaultStepLimit = 500

// Engine drives one run of a compiled machine.
// It exclusively owns its tape and run state; the machine is shared read-only.
type Engine struct {
	machine *machine.Machine
	tape    *tape.Tape
	run     domain.RunState
	status  domain.Status
	started bool

	limit  int
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithStepLimit sets the maximum number of moving transitions.
// Non-positive values select DefaultStepLimit.
func WithStepLimit(limit int) EngineOption {
	return func(e *Engine) {
		if limit > 0 {
			e.limit = limit
		}
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine prepares a run of m over input, with the head on input[0].
func NewEngine(m *machine.Machine, input []domain.Symbol, opts ...EngineOption) *Engine {
	e := &Engine{
		machine: m,
		tape:    tape.New(m.Blank(), input...),
		run:     domain.NewRunState(),
		status:  domain.StatusRunning,
		limit:   DefaultStepLimit,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	e.run.State = m.Start()

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Status returns the current execution status.
func (e *Engine) Status() domain.Status {
	return e.status
}

// State returns a copy of the run state.
func (e *Engine) State() domain.RunState {
	return e.run
}

// Limit returns the configured step limit.
func (e *Engine) Limit() int {
	return e.limit
}

// Machine returns the machine being run.
func (e *Engine) Machine() *machine.Machine {
	return e.machine
}

// Snapshot copies the written region of the tape.
func (e *Engine) Snapshot() domain.Snapshot {
	return e.tape.Snapshot()
}

// Result reports the run as it stands.
func (e *Engine) Result() domain.RunResult {
	return domain.RunResult{
		Status: e.status,
		Steps:  e.run.Steps,
		State:  e.run.State,
		Head:   e.run.Head,
		Tape:   e.tape.Snapshot(),
	}
}

// Run steps the machine until it reaches a terminal status.
// ctx is checked once per step; on cancellation Run returns the partial
// result, still StatusRunning, together with ctx.Err().
func (e *Engine) Run(ctx context.Context) (domain.RunResult, error) {
	e.begin(ctx)
	for !e.status.Terminal() {
		if err := ctx.Err(); err != nil {
			e.logger.Info("run canceled", "steps", e.run.Steps, "err", err)
			return e.Result(), err
		}
		e.StepContext(ctx)
	}
	return e.Result(), nil
}
