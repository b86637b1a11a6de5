package runtime

import (
	"context"
	"time"

	"github.com/aretw0/turing/pkg/domain"
)

// begin emits the run start event exactly once.
func (e *Engine) begin(ctx context.Context) {
	if e.started {
		return
	}
	e.started = true

	e.logger.Info("run started",
		"machine", e.machine.Name,
		"start", e.machine.StartName(),
		"limit", e.limit,
	)

	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase: e.base(domain.EventRunStart),
			Status:    e.status,
			Steps:     e.run.Steps,
		})
	}
}

func (e *Engine) emitStep(ctx context.Context, step domain.StepOutcome) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: e.base(domain.EventStep),
		Step:      step,
	})
}

func (e *Engine) emitHalt(ctx context.Context) {
	if e.hooks.OnHalt == nil {
		return
	}
	e.hooks.OnHalt(ctx, &domain.RunEvent{
		EventBase: e.base(domain.EventHalt),
		Status:    e.status,
		Steps:     e.run.Steps,
	})
}

func (e *Engine) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Machine:   e.machine.Name,
	}
}
