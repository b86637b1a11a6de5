// Package statetable describes a machine as markdown: its alphabet, states,
// blank symbol, start state and rules.
package statetable

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/machine"
)

// Markdown renders m. Rules are listed per state, wildcard cells marked with *.
func Markdown(m *machine.Machine) string {
	var sb strings.Builder

	title := m.Name
	if title == "" {
		title = "Turing machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	fmt.Fprintf(&sb, "- **Blank symbol:** `%s`\n", m.BlankName())
	fmt.Fprintf(&sb, "- **Start state:** `%s`\n", m.StartName())
	fmt.Fprintf(&sb, "- **Alphabet:** %s\n", codeList(m.Symbols.Names()))
	fmt.Fprintf(&sb, "- **States:** %s\n", codeList(m.States.Names()))
	fmt.Fprintf(&sb, "- **Defined cells:** %d of %d\n\n",
		m.Table.Defined(), m.Table.States()*m.Table.Symbols())

	sb.WriteString("| State | Read | Write | Move | Next |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, t := range m.Transitions() {
		read := t.Read
		if t.Wildcard {
			read += " *"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n", t.From, read, t.Write, t.Direction, t.To)
	}
	return sb.String()
}

func codeList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, " ")
}
