package runtime

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// Step applies a single transition. See StepContext.
func (e *Engine) Step() domain.StepOutcome {
	return e.StepContext(context.Background())
}

// StepContext applies a single transition:
//
//  1. read the symbol under the head and look up (state, symbol);
//  2. no transition: halt rejecting;
//  3. halting transition: write, then halt accepting or rejecting. The step
//     counter, head and state stay as they are;
//  4. moving transition with the step counter at the limit: abort;
//  5. otherwise write, move, change state and count the step.
//
// Once terminal, the engine no longer changes and every call reports the
// same status with ReasonTerminal.
func (e *Engine) StepContext(ctx context.Context) domain.StepOutcome {
	e.begin(ctx)

	before := e.run
	read := e.tape.Read(e.run.Head)

	if e.status.Terminal() {
		return domain.StepOutcome{
			Status: e.status,
			Reason: domain.ReasonTerminal,
			Read:   read,
			Before: before,
			After:  before,
		}
	}

	out, ok := e.machine.Table.Lookup(e.run.State, read)
	step := domain.StepOutcome{
		Read:    read,
		Outcome: out,
		Defined: ok,
		Before:  before,
	}

	switch {
	case !ok:
		e.status = domain.StatusHaltedReject
		step.Reason = domain.ReasonNoTransition

	case out.Halts():
		e.tape.Write(e.run.Head, out.Write)
		if out.Halt == domain.HaltAccept {
			e.status = domain.StatusHaltedAccept
		} else {
			e.status = domain.StatusHaltedReject
		}
		step.Reason = domain.ReasonHalted

	case e.run.Steps >= e.limit:
		e.status = domain.StatusAbortedStepLimit
		step.Reason = domain.ReasonStepLimit

	default:
		e.tape.Write(e.run.Head, out.Write)
		e.run.Head = e.tape.Move(out.Move)
		e.run.State = out.Next
		e.run.Steps++
		step.Reason = domain.ReasonMoved
	}

	step.Status = e.status
	step.After = e.run

	e.logger.Debug("step",
		"state", e.machine.States.Name(before.State),
		"read", e.machine.Symbols.Name(read),
		"reason", step.Reason,
		"head", e.run.Head,
		"steps", e.run.Steps,
	)
	e.emitStep(ctx, step)

	if e.status.Terminal() {
		e.logger.Info("run halted",
			"status", e.status,
			"steps", e.run.Steps,
			"state", e.machine.States.Name(e.run.State),
		)
		e.emitHalt(ctx)
	}

	return step
}
