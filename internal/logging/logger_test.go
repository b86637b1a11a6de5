package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/turing/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewText(&buf, slog.LevelInfo)

	logger.Info("save failed", "error", errors.New("disk full"))
	assert.Contains(t, buf.String(), `err="disk full"`)
	assert.NotContains(t, buf.String(), "error=")
}

func TestNewText_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewText(&buf, logging.Level(false))

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger = logging.NewText(&buf, logging.Level(true))
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logging.NewJSON(&buf, slog.LevelInfo).Warn("slow run", "steps", 500)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "slow run", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
	assert.EqualValues(t, 500, rec["steps"])
}
