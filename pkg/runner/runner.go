package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelism bounds RunBatch when no limit is given.
const DefaultParallelism = 8

// Runner drives runs of an engine: it traces, reports and persists them.
type Runner struct {
	// Handler presents frames and results. If nil, runs are silent.
	Handler Handler

	// Store persists finished runs. If nil, runs are not saved.
	Store ports.RunStore

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Trace reports a frame before every step.
	Trace bool

	// Parallelism bounds concurrent runs in RunBatch.
	Parallelism int
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithHandler configures how runs are presented.
func WithHandler(h Handler) Option {
	return func(r *Runner) {
		r.Handler = h
	}
}

// WithStore configures the RunStore for persistence.
func WithStore(store ports.RunStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithTrace enables a frame before every step.
func WithTrace(trace bool) Option {
	return func(r *Runner) {
		r.Trace = trace
	}
}

// WithParallelism bounds RunBatch concurrency.
func WithParallelism(n int) Option {
	return func(r *Runner) {
		r.Parallelism = n
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Parallelism: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run executes eng on input, reporting and saving the record.
// A canceled run is reported but not saved; its record comes back with ctx.Err().
func (r *Runner) Run(ctx context.Context, eng *turing.Engine, input []string) (domain.RunRecord, error) {
	run, err := eng.NewRun(input)
	if err != nil {
		return domain.RunRecord{}, err
	}

	res, runErr := r.drive(ctx, eng, run)
	rec := eng.Record(input, res)

	if r.Handler != nil {
		if err := r.Handler.Result(ctx, rec, eng.Machine().BlankName()); err != nil {
			return rec, fmt.Errorf("failed to report run: %w", err)
		}
	}
	if runErr != nil {
		return rec, runErr
	}
	if err := r.save(ctx, rec); err != nil {
		return rec, err
	}
	return rec, nil
}

func (r *Runner) drive(ctx context.Context, eng *turing.Engine, run *turing.Run) (domain.RunResult, error) {
	if !r.Trace || r.Handler == nil {
		return run.Run(ctx)
	}

	m := eng.Machine()
	for !run.Status().Terminal() {
		if err := ctx.Err(); err != nil {
			return run.Result(), err
		}
		st := run.State()
		frame := m.Frame(run.Snapshot(), st.Head, st.State)
		if err := r.Handler.Frame(ctx, frame, st.Steps); err != nil {
			return run.Result(), fmt.Errorf("failed to report frame: %w", err)
		}
		run.StepContext(ctx)
	}
	return run.Result(), nil
}

func (r *Runner) save(ctx context.Context, rec domain.RunRecord) error {
	if r.Store == nil {
		return nil
	}
	if err := r.Store.Save(ctx, rec); err != nil {
		return fmt.Errorf("failed to save run %s: %w", rec.ID, err)
	}
	r.Logger.Debug("run saved", "id", rec.ID, "status", rec.Status)
	return nil
}

// RunBatch executes eng on every input concurrently, each run on its own
// tape. Records come back in input order and are reported in that order once
// all runs are done. The first error cancels the remaining runs.
func (r *Runner) RunBatch(ctx context.Context, eng *turing.Engine, inputs [][]string) ([]domain.RunRecord, error) {
	records := make([]domain.RunRecord, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	limit := r.Parallelism
	if limit <= 0 {
		limit = DefaultParallelism
	}
	g.SetLimit(limit)

	for i, input := range inputs {
		g.Go(func() error {
			res, err := eng.Run(gctx, input)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			rec := eng.Record(input, res)
			if err := r.save(gctx, rec); err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.Logger.Info("batch finished", "machine", eng.Name, "runs", len(records))
	if r.Handler != nil {
		for _, rec := range records {
			if err := r.Handler.Result(ctx, rec, eng.Machine().BlankName()); err != nil {
				return records, fmt.Errorf("failed to report run: %w", err)
			}
		}
	}
	return records, nil
}
