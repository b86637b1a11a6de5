package format_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseText_BusyBeaver(t *testing.T) {
	def, err := format.LoadFile("../../testdata/busy_beaver.tm")
	require.NoError(t, err)

	assert.Equal(t, "busy_beaver", def.Name)
	assert.Equal(t, []string{"0", "1"}, def.Alphabet)
	require.Len(t, def.Rules, 4)
	assert.Equal(t, domain.RawRule{From: "A", Read: "0", To: "B", Write: "1", Move: "right", Line: 4}, def.Rules[0])
	assert.Equal(t, "halt_accept", def.Rules[3].Move)
}

func TestParseText_CommentsAndBlankLines(t *testing.T) {
	src := `
# leading comment

a b
   # indented comment
s a s b right

s b s a left
`
	def, err := format.ParseText(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, def.Alphabet)
	require.Len(t, def.Rules, 2)
	assert.Equal(t, 6, def.Rules[0].Line)
	assert.Equal(t, 8, def.Rules[1].Line)
}

func TestParseText_Wildcard(t *testing.T) {
	def, err := format.ParseText(strings.NewReader("a b\ns * s a stay\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.Wildcard, def.Rules[0].Read)
}

func TestParseText_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"too few fields", "a b\ns a s b\n", 2},
		{"too many fields", "a b\ns a s b left extra\n", 2},
		{"bad direction", "a b\ns a s b up\n", 2},
		{"wildcard write", "a b\ns a s * left\n", 2},
		{"wildcard state", "a b\n* a s b left\n", 2},
		{"bad symbol", "a b-c\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := format.ParseText(strings.NewReader(tt.src))
			var perr *domain.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestParseText_BadDirectionUnwraps(t *testing.T) {
	_, err := format.ParseText(strings.NewReader("a\ns a s a sideways\n"))
	assert.True(t, errors.Is(err, domain.ErrInvalidDirection))
}

func TestParseText_Empty(t *testing.T) {
	_, err := format.ParseText(strings.NewReader("# nothing\n"))
	assert.ErrorIs(t, err, domain.ErrEmptyAlphabet)

	_, err = format.ParseText(strings.NewReader("a b\n"))
	assert.ErrorIs(t, err, domain.ErrNoRules)
}

func TestParseInput(t *testing.T) {
	syms, err := format.ParseInput("  one zero   one ", []string{"zero", "one"})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "zero", "one"}, syms)

	syms, err = format.ParseInput("", nil)
	require.NoError(t, err)
	assert.Empty(t, syms)

	_, err = format.ParseInput("one two", []string{"zero", "one"})
	var uerr *domain.UnknownSymbolError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "two", uerr.Symbol)
	assert.Equal(t, -1, uerr.Rule)
}

func TestLoadInput(t *testing.T) {
	syms, err := format.LoadInput("../../testdata/three_ones.in", []string{"zero", "one"})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "zero", "one"}, syms)
}

func TestWriteText_RoundTrip(t *testing.T) {
	def, err := format.LoadFile("../../testdata/three_ones.tm")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, format.WriteText(&buf, def))
	assert.True(t, strings.HasPrefix(buf.String(), "# three_ones\nzero one\n"))
	assert.Contains(t, buf.String(), "s0 zero s0 zero halt_accept\n")

	again, err := format.ParseText(&buf)
	require.NoError(t, err)
	assert.Equal(t, def.Alphabet, again.Alphabet)
	require.Len(t, again.Rules, len(def.Rules))
	for i := range def.Rules {
		a, b := def.Rules[i], again.Rules[i]
		a.Line, b.Line = 0, 0
		assert.Equal(t, a, b)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, format.KindYAML, format.KindOf("m.yaml"))
	assert.Equal(t, format.KindYAML, format.KindOf("M.YML"))
	assert.Equal(t, format.KindText, format.KindOf("m.tm"))
	assert.Equal(t, format.KindText, format.KindOf("machine"))
}

func TestParseString_Sniffs(t *testing.T) {
	def, err := format.ParseString("# c\nalphabet: [a]\nrules:\n  - [s, a, s, a, halt_accept]\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, def.Alphabet)

	def, err = format.ParseString("a\ns a s a halt_accept\n")
	require.NoError(t, err)
	assert.Len(t, def.Rules, 1)
}
