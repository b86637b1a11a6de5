package tapeview_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/presentation/tapeview"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/format"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busyBeaver(t *testing.T) *machine.Machine {
	t.Helper()
	def, err := format.LoadFile("../../../testdata/busy_beaver.tm")
	require.NoError(t, err)
	m, err := compiler.Compile(def)
	require.NoError(t, err)
	return m
}

func TestFrame_FinalBusyBeaver(t *testing.T) {
	m := busyBeaver(t)
	res, err := runtime.NewEngine(m, nil).Run(context.Background())
	require.NoError(t, err)

	f := m.FinalFrame(res)
	assert.Equal(t, -1, f.Start)
	assert.Equal(t, []string{"1", "1", "1"}, f.Cells)

	tape, marks := tapeview.Lines(f)
	assert.Equal(t, "... 0   1   1   1   0   ...", tape)
	assert.Equal(t, "    -2  -1  0^B 1   2", marks)
}

func TestFrame_EmptyTapeShowsHead(t *testing.T) {
	m := busyBeaver(t)
	f := m.Frame(domain.Snapshot{}, 0, m.Start())

	assert.Equal(t, []string{"0"}, f.Cells)
	assert.Equal(t, "... 0   0   0   ...\n    -1  0^A 1", tapeview.Render(f))
}

func TestFrame_HeadOutsideWrittenRegion(t *testing.T) {
	m := busyBeaver(t)
	snap := domain.Snapshot{Start: 0, Symbols: []domain.Symbol{1}}
	f := m.Frame(snap, 2, 1)

	assert.Equal(t, 0, f.Start)
	assert.Equal(t, []string{"1", "0", "0"}, f.Cells)
}

func TestPrinter_Plain(t *testing.T) {
	m := busyBeaver(t)
	var buf bytes.Buffer
	require.NoError(t, tapeview.NewPrinter(&buf, false).Print(m.Frame(domain.Snapshot{}, 0, 0)))
	assert.Equal(t, "... 0   0   0   ...\n    -1  0^A 1\n", buf.String())
}

func TestPrinter_ColorHighlightsHead(t *testing.T) {
	m := busyBeaver(t)
	var buf bytes.Buffer
	require.NoError(t, tapeview.NewPrinter(&buf, true).Print(m.Frame(domain.Snapshot{}, 0, 0)))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "    -1  0^A 1\n")
}

func TestRender_PersistedRecord(t *testing.T) {
	rec := domain.RunRecord{State: "B", Head: 0, TapeStart: -1, Tape: []string{"1", "1", "1"}}
	assert.Equal(t, "... 0   1   1   1   0   ...\n    -2  -1  0^B 1   2", tapeview.Render(domain.FrameOf(rec, "0")))
}
