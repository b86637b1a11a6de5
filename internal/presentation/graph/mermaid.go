package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Overlay marks the states a run went through.
type Overlay struct {
	Visited []string
	Current string
}

// GenerateMermaid produces a Mermaid state diagram with one edge per rule.
// Edges are labelled "read/write direction"; halting rules point at the end
// marker, since a halting transition never enters its target state.
func GenerateMermaid(m *machine.Machine, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	for _, name := range m.States.Names() {
		fmt.Fprintf(&sb, "    state \"%s\" as %s\n", escape(name), sanitizeMermaidID(name))
	}
	fmt.Fprintf(&sb, "    [*] --> %s\n", sanitizeMermaidID(m.StartName()))

	for _, r := range m.Rules {
		from := sanitizeMermaidID(m.States.Name(r.From))
		read := domain.Wildcard
		if !r.AnyRead {
			read = m.Symbols.Name(r.Read)
		}
		label := fmt.Sprintf("%s/%s %s", read, m.Symbols.Name(r.Outcome.Write), domain.DirectionOf(r.Outcome.Move, r.Outcome.Halt))

		to := sanitizeMermaidID(m.States.Name(r.Outcome.Next))
		if r.Outcome.Halts() {
			to = "[*]"
		}
		fmt.Fprintf(&sb, "    %s --> %s : %s\n", from, to, escape(label))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Visited {
			id := sanitizeMermaidID(name)
			if id != "" && !seen[id] && name != overlay.Current {
				seen[id] = true
				fmt.Fprintf(&sb, "    class %s visited\n", id)
			}
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", ":", "_").Replace(id)
}
