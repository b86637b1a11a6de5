package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	m, err := compiler.Compile(domain.Definition{
		Alphabet: []string{"zero", "one"},
		Rules: []domain.RawRule{
			{From: "s0", Read: "zero", To: "s0", Write: "zero", Move: "halt_accept"},
			{From: "s0", Read: "one", To: "s1", Write: "one", Move: "right"},
			{From: "s1", Read: "*", To: "s-2", Write: "one", Move: "left"},
			{From: "s-2", Read: "*", To: "s-2", Write: "one", Move: "halt_reject"},
		},
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		overlay  *graph.Overlay
		contains []string
		missing  []string
	}{
		{
			name: "Structure",
			contains: []string{
				"stateDiagram-v2\n",
				"    [*] --> s0\n",
				"    state \"s-2\" as s_2\n",
				"    s0 --> [*] : zero/zero halt_accept\n",
				"    s0 --> s1 : one/one right\n",
				"    s1 --> s_2 : */one left\n",
				"    s_2 --> [*] : */one halt_reject\n",
			},
			missing: []string{"classDef"},
		},
		{
			name:    "Overlay",
			overlay: &graph.Overlay{Visited: []string{"s0", "s1", "s0", "s-2"}, Current: "s-2"},
			contains: []string{
				"classDef visited",
				"    class s0 visited\n",
				"    class s1 visited\n",
				"    class s_2 current\n",
			},
			missing: []string{"class s_2 visited"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(m, tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, bad := range tt.missing {
				assert.NotContains(t, got, bad)
			}
			if tt.overlay != nil {
				assert.Equal(t, 1, strings.Count(got, "class s0 visited"))
			}
		})
	}
}
