package cli

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StepLimit = 3

	eng, err := LoadEngine("../../testdata/busy_beaver.tm", cfg, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "busy_beaver", eng.Name)
	assert.Equal(t, 3, eng.StepLimit())

	res, err := eng.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAbortedStepLimit, res.Status)
}

func TestLoadEngine_DebugLogsSteps(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Debug = true

	eng, err := LoadEngine("../../testdata/busy_beaver.tm", cfg, logging.NewText(&buf, slog.LevelDebug))
	require.NoError(t, err)
	_, err = eng.Run(context.Background(), nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "run start")
	assert.Contains(t, out, "reason=moved")
	assert.Contains(t, out, "status=halted_accept")
}

func TestLoadEngine_MissingFile(t *testing.T) {
	_, err := LoadEngine("../../testdata/nope.tm", DefaultConfig(), logging.NewNop())
	assert.Error(t, err)
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, UseColor(Config{}, &buf), "buffers are not terminals")
	assert.False(t, IsTerminal(&buf))
}
