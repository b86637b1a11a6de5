package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, alphabet []string, rules ...domain.RawRule) *machine.Machine {
	t.Helper()
	m, err := compiler.Compile(domain.Definition{Name: t.Name(), Alphabet: alphabet, Rules: rules})
	require.NoError(t, err)
	return m
}

func r(from, read, to, write, move string) domain.RawRule {
	return domain.RawRule{From: from, Read: read, To: to, Write: write, Move: move}
}

func input(t *testing.T, m *machine.Machine, raw ...string) []domain.Symbol {
	t.Helper()
	syms, err := m.EncodeInput(raw)
	require.NoError(t, err)
	return syms
}

func busyBeaver(t *testing.T) *machine.Machine {
	return compile(t, []string{"0", "1"},
		r("A", "0", "B", "1", "right"),
		r("A", "1", "A", "1", "left"),
		r("B", "0", "A", "1", "left"),
		r("B", "1", "B", "1", "halt_accept"),
	)
}

func TestEngine_HaltOnFirstStep(t *testing.T) {
	m := compile(t, []string{"0", "1"}, r("q0", "1", "q0", "1", "halt_accept"))

	eng := runtime.NewEngine(m, input(t, m, "1"))
	res, err := eng.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusHaltedAccept, res.Status)
	assert.Equal(t, 0, res.Steps, "halting transitions are not counted")
	assert.Equal(t, 0, res.Head)
	assert.Equal(t, domain.Snapshot{Start: 0, Symbols: input(t, m, "1")}, res.Tape)
}

func TestEngine_BusyBeaverFixture(t *testing.T) {
	m := busyBeaver(t)

	res, err := runtime.NewEngine(m, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusHaltedAccept, res.Status)
	assert.Equal(t, 4, res.Steps)
	assert.Equal(t, 0, res.Head)
	assert.Equal(t, "B", m.States.Name(res.State))
	assert.Equal(t, -1, res.Tape.Start)
	assert.Equal(t, 1, res.Tape.End())
	assert.Equal(t, []string{"1", "1", "1"}, m.DecodeSymbols(res.Tape.Symbols))
}

func TestEngine_Deterministic(t *testing.T) {
	m := busyBeaver(t)
	ctx := context.Background()

	first, err := runtime.NewEngine(m, nil).Run(ctx)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := runtime.NewEngine(m, nil).Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// Running a finished engine again is a no-op.
	eng := runtime.NewEngine(m, nil)
	a, _ := eng.Run(ctx)
	b, _ := eng.Run(ctx)
	assert.Equal(t, a, b)
}

func TestEngine_NoTransitionRejects(t *testing.T) {
	m := compile(t, []string{"_", "a", "b"}, r("s", "a", "s", "a", "right"))

	res, err := runtime.NewEngine(m, input(t, m, "a", "a", "b")).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusHaltedReject, res.Status)
	assert.Equal(t, 2, res.Steps)
	assert.Equal(t, 2, res.Head)
}

func TestEngine_NoTransitionFromTargetOnlyState(t *testing.T) {
	// "done" only appears as a target, so it has no row content at all.
	m := compile(t, []string{"0"}, r("s", "0", "done", "0", "right"))

	eng := runtime.NewEngine(m, nil)
	first := eng.Step()
	assert.Equal(t, domain.ReasonMoved, first.Reason)

	second := eng.Step()
	assert.Equal(t, domain.StatusHaltedReject, second.Status)
	assert.Equal(t, domain.ReasonNoTransition, second.Reason)
	assert.False(t, second.Defined)
}

func TestEngine_HaltReject(t *testing.T) {
	m := compile(t, []string{"0", "1"},
		r("s", "0", "s", "1", "halt_reject"),
	)

	res, err := runtime.NewEngine(m, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusHaltedReject, res.Status)
	assert.Equal(t, []string{"1"}, m.DecodeSymbols(res.Tape.Symbols), "the halting write still happens")
}

func TestEngine_StepLimit(t *testing.T) {
	m := compile(t, []string{"0", "1"}, r("loop", "*", "loop", "1", "right"))

	for _, limit := range []int{1, 7, 500} {
		eng := runtime.NewEngine(m, nil, runtime.WithStepLimit(limit))
		res, err := eng.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, domain.StatusAbortedStepLimit, res.Status)
		assert.Equal(t, limit, res.Steps)
		assert.Equal(t, limit, res.Head)
		assert.Equal(t, limit, res.Tape.Len())
	}
}

func TestEngine_DefaultStepLimit(t *testing.T) {
	m := compile(t, []string{"0"}, r("loop", "0", "loop", "0", "stay"))

	eng := runtime.NewEngine(m, nil, runtime.WithStepLimit(0))
	assert.Equal(t, runtime.DefaultStepLimit, eng.Limit())

	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAbortedStepLimit, res.Status)
	assert.Equal(t, runtime.DefaultStepLimit, res.Steps)
}

func TestEngine_HaltAtLimitIsNotAborted(t *testing.T) {
	m := compile(t, []string{"0"},
		r("a", "0", "b", "0", "right"),
		r("b", "0", "b", "0", "halt_accept"),
	)

	res, err := runtime.NewEngine(m, nil, runtime.WithStepLimit(1)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusHaltedAccept, res.Status)
	assert.Equal(t, 1, res.Steps)
}

func TestEngine_StepIsStickyOnceTerminal(t *testing.T) {
	m := compile(t, []string{"0"}, r("s", "0", "s", "0", "halt_accept"))
	eng := runtime.NewEngine(m, nil)

	first := eng.Step()
	assert.Equal(t, domain.StatusHaltedAccept, first.Status)
	assert.Equal(t, domain.ReasonHalted, first.Reason)

	for i := 0; i < 3; i++ {
		again := eng.Step()
		assert.Equal(t, domain.StatusHaltedAccept, again.Status)
		assert.Equal(t, domain.ReasonTerminal, again.Reason)
		assert.Equal(t, again.Before, again.After)
	}
}

func TestEngine_SingleStepping(t *testing.T) {
	m := busyBeaver(t)
	eng := runtime.NewEngine(m, nil)

	step := eng.Step()
	assert.Equal(t, domain.StatusRunning, step.Status)
	assert.Equal(t, domain.RunState{State: 0, Head: 0, Steps: 0}, step.Before)
	assert.Equal(t, domain.RunState{State: 1, Head: 1, Steps: 1}, step.After)
	assert.Equal(t, domain.MoveRight, step.Outcome.Move)
	assert.Equal(t, step.After, eng.State())

	var last domain.StepOutcome
	for !eng.Status().Terminal() {
		last = eng.Step()
	}
	assert.Equal(t, domain.ReasonHalted, last.Reason)
	assert.Equal(t, 4, eng.Result().Steps)
}

func TestEngine_Cancellation(t *testing.T) {
	m := compile(t, []string{"0"}, r("loop", "0", "loop", "0", "right"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := runtime.NewEngine(m, nil, runtime.WithStepLimit(1_000_000)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.StatusRunning, res.Status)
	assert.Equal(t, 0, res.Steps)
}

func TestEngine_CancelFromHook(t *testing.T) {
	m := compile(t, []string{"0"}, r("loop", "0", "loop", "0", "right"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hooks := domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			if e.Step.After.Steps == 3 {
				cancel()
			}
		},
	}

	res, err := runtime.NewEngine(m, nil,
		runtime.WithStepLimit(1_000_000),
		runtime.WithLifecycleHooks(hooks),
	).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, res.Steps, "the abort signal is checked once per step")
}
