package turing

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/encoding"
	"github.com/aretw0/turing/pkg/format"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the turing library.
// It holds one compiled machine and starts any number of independent runs.
type Engine struct {
	machine *machine.Machine
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	limit   int
	now     func() time.Time
	Name    string
}

// Run is a single execution of a machine, stepped one transition at a time
// or driven to the end with Run.
type Run = runtime.Engine

// Report lists undefined cells and unreachable states of a machine.
type Report = validator.Report

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks on every run.
// Repeated options compose; callbacks fire in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = domain.ComposeHooks(e.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger for the engine and its runs.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStepLimit bounds the number of moving transitions of each run.
// Non-positive values keep the default of 500.
func WithStepLimit(limit int) Option {
	return func(e *Engine) {
		e.limit = limit
	}
}

// WithName overrides the machine name used in events, logs and records.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// WithClock sets the time source for run records.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New compiles def into an engine.
func New(def domain.Definition, opts ...Option) (*Engine, error) {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		limit:  runtime.DefaultStepLimit,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.Name != "" {
		def.Name = e.Name
	}

	m, err := compiler.Compile(def)
	if err != nil {
		return nil, err
	}
	e.machine = m
	e.Name = m.Name

	e.logger.Debug("machine compiled",
		"machine", m.Name,
		"states", m.States.Len(),
		"symbols", m.Symbols.Len(),
		"rules", len(m.Rules),
	)
	return e, nil
}

// Load reads a machine file (text, or YAML for .yaml/.yml) and compiles it.
func Load(path string, opts ...Option) (*Engine, error) {
	def, err := format.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(def, opts...)
}

// Parse compiles a machine held in memory, in either format.
func Parse(src string, opts ...Option) (*Engine, error) {
	def, err := format.ParseString(src)
	if err != nil {
		return nil, err
	}
	return New(def, opts...)
}

// With derives an engine sharing the compiled machine, with opts applied on
// top of the receiver's settings. Hooks compose with the existing ones. The
// machine keeps its name, so WithName has no effect here.
func (e *Engine) With(opts ...Option) *Engine {
	derived := *e
	for _, opt := range opts {
		opt(&derived)
	}
	if derived.logger == nil {
		derived.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	derived.Name = e.machine.Name
	return &derived
}

// Machine returns the compiled machine.
func (e *Engine) Machine() *machine.Machine {
	return e.machine
}

// StepLimit returns the limit applied to runs.
func (e *Engine) StepLimit() int {
	if e.limit <= 0 {
		return runtime.DefaultStepLimit
	}
	return e.limit
}

// NewRun prepares a run over input symbols, the head on the first one.
// Extra hooks are called after the engine's own.
func (e *Engine) NewRun(input []string, hooks ...domain.LifecycleHooks) (*Run, error) {
	syms, err := e.machine.EncodeInput(input)
	if err != nil {
		return nil, err
	}
	return runtime.NewEngine(e.machine, syms,
		runtime.WithStepLimit(e.limit),
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(domain.ComposeHooks(append([]domain.LifecycleHooks{e.hooks}, hooks...)...)),
	), nil
}

// Run executes the machine on input until it halts or hits the step limit.
// On cancellation the partial result is returned with ctx.Err().
func (e *Engine) Run(ctx context.Context, input []string) (domain.RunResult, error) {
	run, err := e.NewRun(input)
	if err != nil {
		return domain.RunResult{}, err
	}
	return run.Run(ctx)
}

// Record turns a result into a persistable record with a fresh ID.
func (e *Engine) Record(input []string, res domain.RunResult) domain.RunRecord {
	return e.machine.Record(uuid.NewString(), input, res, e.now().UTC())
}

// Validate reports completeness and reachability problems.
// With strict set they are returned as an error.
func (e *Engine) Validate(strict bool) (Report, error) {
	return validator.Validate(e.machine, strict)
}

// Encode writes the machine over its first two symbols.
func (e *Engine) Encode() ([]string, error) {
	return encoding.Encode(e.machine)
}

// Definition returns the source the machine was compiled from.
func (e *Engine) Definition() domain.Definition {
	return e.machine.Source
}
