package observability

import (
	"context"
	"errors"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the run collectors.
type Metrics struct {
	RunsStarted  prometheus.Counter
	RunsFinished *prometheus.CounterVec
	Steps        *prometheus.CounterVec
	RunSteps     prometheus.Histogram
	Active       prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// Collectors already registered by an earlier call are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RunsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turing_runs_started_total",
			Help: "Total number of runs started",
		}),
		RunsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "turing_runs_finished_total",
			Help: "Total number of runs that reached a terminal status",
		}, []string{"status"}),
		Steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "turing_steps_total",
			Help: "Total number of engine steps, by how they ended",
		}, []string{"reason"}),
		RunSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "turing_run_steps",
			Help:    "Moving transitions taken by finished runs",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "turing_runs_active",
			Help: "Runs started but not yet terminal",
		}),
	}

	if err := register(reg, &m.RunsStarted); err != nil {
		return nil, err
	}
	if err := register(reg, &m.RunsFinished); err != nil {
		return nil, err
	}
	if err := register(reg, &m.Steps); err != nil {
		return nil, err
	}
	if err := register(reg, &m.RunSteps); err != nil {
		return nil, err
	}
	if err := register(reg, &m.Active); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c *C) error {
	err := reg.Register(*c)
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		existing, ok := are.ExistingCollector.(C)
		if !ok {
			return err
		}
		*c = existing
		return nil
	}
	return err
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			m.RunsStarted.Inc()
			m.Active.Inc()
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(string(e.Step.Reason)).Inc()
		},
		OnHalt: func(ctx context.Context, e *domain.RunEvent) {
			m.Active.Dec()
			m.RunsFinished.WithLabelValues(string(e.Status)).Inc()
			m.RunSteps.Observe(float64(e.Steps))
		},
	}
}
