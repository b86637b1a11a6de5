package statetable_test

import (
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/presentation/statetable"
	"github.com/aretw0/turing/pkg/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	def, err := format.LoadFile("../../../testdata/three_ones.tm")
	require.NoError(t, err)
	m, err := compiler.Compile(def)
	require.NoError(t, err)

	md := statetable.Markdown(m)
	assert.Contains(t, md, "# three_ones\n")
	assert.Contains(t, md, "- **Blank symbol:** `zero`\n")
	assert.Contains(t, md, "- **Start state:** `s0`\n")
	assert.Contains(t, md, "- **Alphabet:** `zero` `one`\n")
	assert.Contains(t, md, "- **States:** `s0` `s1` `s2`\n")
	assert.Contains(t, md, "- **Defined cells:** 6 of 6\n")
	assert.Contains(t, md, "| s0 | zero | zero | halt_accept | s0 |\n")
	assert.Contains(t, md, "| s2 | zero * | one | halt_accept | s2 |\n")
	assert.Contains(t, md, "| s2 | one * | one | halt_accept | s2 |\n")
}
