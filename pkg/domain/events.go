package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventStep     EventType = "step"
	EventHalt     EventType = "halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine,omitempty"`
}

// RunEvent marks the start or the end of a run.
type RunEvent struct {
	EventBase
	Status Status `json:"status"`
	Steps  int    `json:"steps"`
}

// StepEvent is emitted after every transition the engine applies.
type StepEvent struct {
	EventBase
	Step StepOutcome `json:"step"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRunStart func(context.Context, *RunEvent)
	OnStep     func(context.Context, *StepEvent)
	OnHalt     func(context.Context, *RunEvent)
}

// ComposeHooks returns hooks that call every non-nil callback of each set in order.
func ComposeHooks(sets ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range sets {
		if h.OnRunStart != nil {
			prev := out.OnRunStart
			out.OnRunStart = func(ctx context.Context, e *RunEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnRunStart(ctx, e)
			}
		}
		if h.OnStep != nil {
			prev := out.OnStep
			out.OnStep = func(ctx context.Context, e *StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnStep(ctx, e)
			}
		}
		if h.OnHalt != nil {
			prev := out.OnHalt
			out.OnHalt = func(ctx context.Context, e *RunEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnHalt(ctx, e)
			}
		}
	}
	return out
}
