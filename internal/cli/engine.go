package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
)

// NewLogger returns the command logger: debug records on Stderr with --debug,
// warnings and errors otherwise.
func NewLogger(cfg Config) *slog.Logger {
	if cfg.Debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelWarn)
}

// LoadEngine compiles the machine file at path with the configured step limit.
// With --debug every transition is logged.
func LoadEngine(path string, cfg Config, logger *slog.Logger, opts ...turing.Option) (*turing.Engine, error) {
	base := []turing.Option{
		turing.WithStepLimit(cfg.StepLimit),
		turing.WithLogger(logger),
	}
	if cfg.Debug {
		base = append(base, turing.WithLifecycleHooks(debugHooks(logger)))
	}
	return turing.Load(path, append(base, opts...)...)
}

func debugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("run start", "machine", e.Machine)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("step",
				"reason", e.Step.Reason,
				"read", e.Step.Read,
				"head", e.Step.After.Head,
				"steps", e.Step.After.Steps,
			)
		},
		OnHalt: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("run halt", "machine", e.Machine, "status", e.Status, "steps", e.Steps)
		},
	}
}
