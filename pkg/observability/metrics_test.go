package observability_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busyBeaver(t *testing.T) domain.Definition {
	t.Helper()
	return domain.Definition{
		Name:     "bb",
		Alphabet: []string{"0", "1"},
		Rules: []domain.RawRule{
			{From: "A", Read: "0", To: "B", Write: "1", Move: "right"},
			{From: "A", Read: "1", To: "A", Write: "1", Move: "left"},
			{From: "B", Read: "0", To: "A", Write: "1", Move: "left"},
			{From: "B", Read: "1", To: "B", Write: "1", Move: "halt_accept"},
		},
	}
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	m, err := compiler.Compile(busyBeaver(t))
	require.NoError(t, err)

	for range 2 {
		_, err := runtime.NewEngine(m, nil, runtime.WithLifecycleHooks(metrics.Hooks())).Run(context.Background())
		require.NoError(t, err)
	}
	_, err = runtime.NewEngine(m, nil,
		runtime.WithStepLimit(2),
		runtime.WithLifecycleHooks(metrics.Hooks()),
	).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.RunsStarted))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Active))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RunsFinished.WithLabelValues("halted_accept")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsFinished.WithLabelValues("aborted_step_limit")))
	// 4 moves per full run, 2 before the abort
	assert.Equal(t, 10.0, testutil.ToFloat64(metrics.Steps.WithLabelValues("moved")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Steps.WithLabelValues("halted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Steps.WithLabelValues("step_limit")))

	expected := `
# HELP turing_runs_started_total Total number of runs started
# TYPE turing_runs_started_total counter
turing_runs_started_total 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "turing_runs_started_total"))
}

func TestNewMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	second, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	second.RunsStarted.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(first.RunsStarted))
}
