// Package tapeview draws a tape window the way a person would on paper:
//
//	... 0   1   1   1   0   ...
//	    -2  -1  0^B 1   2
//
// The first line is the written region with one blank cell on each side, the
// second the position of every cell and the machine state under the head.
package tapeview

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
)

const (
	prefix = "... "
	suffix = " ..."
)

// Lines lays out f as two plain lines.
func Lines(f domain.Frame) (tape, marks string) {
	cells, width := padded(f)
	tape = prefix + strings.Join(cells, " ") + suffix
	return tape, marksLine(f, len(tape), width)
}

// Render joins the two lines of f.
func Render(f domain.Frame) string {
	tape, marks := Lines(f)
	return tape + "\n" + marks
}

func headMark(f domain.Frame) string {
	return "^" + f.State
}

// padded returns the cells, blanks included, padded to a common width.
func padded(f domain.Frame) ([]string, int) {
	width := len(headMark(f)) + 1
	width = max(width, len(f.Blank))
	for _, c := range f.Cells {
		width = max(width, len(c))
	}
	all := make([]string, 0, len(f.Cells)+2)
	all = append(all, f.Blank)
	all = append(all, f.Cells...)
	all = append(all, f.Blank)
	for i, c := range all {
		all[i] = c + strings.Repeat(" ", width-len(c))
	}
	return all, width
}

// column returns where the cell at pos begins on the tape line.
func column(f domain.Frame, pos, width int) int {
	return len(prefix) + (pos-f.Start+1)*(width+1)
}

func marksLine(f domain.Frame, length, width int) string {
	line := []byte(strings.Repeat(" ", length))
	put := func(at int, s string, limit int) {
		for i := 0; i < len(s) && i < limit; i++ {
			if at+i > 0 && at+i < length {
				line[at+i] = s[i]
			}
		}
	}
	for pos := f.Start - 1; pos <= f.Start+len(f.Cells); pos++ {
		label := strconv.Itoa(pos)
		put(column(f, pos, width), label, width)
	}
	mark := headMark(f)
	put(column(f, f.Head, width)+1, mark, len(mark))
	return strings.TrimRight(string(line), " ")
}

// Printer writes frames, highlighting the head cell when colour is on.
type Printer struct {
	out   *termenv.Output
	color bool
}

// NewPrinter writes to w. With color false the output is plain ASCII.
func NewPrinter(w io.Writer, color bool) *Printer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI256
	}
	return &Printer{out: termenv.NewOutput(w, termenv.WithProfile(profile)), color: color}
}

// Print writes the two lines of f.
func (p *Printer) Print(f domain.Frame) error {
	tape, marks := Lines(f)
	if p.color {
		tape = p.highlight(f)
	}
	_, err := fmt.Fprintf(p.out, "%s\n%s\n", tape, marks)
	return err
}

func (p *Printer) highlight(f domain.Frame) string {
	cells, _ := padded(f)
	idx := f.Head - f.Start + 1
	cell := cells[idx]
	trimmed := strings.TrimRight(cell, " ")
	cells[idx] = p.out.String(trimmed).Reverse().Bold().String() + cell[len(trimmed):]
	return prefix + strings.Join(cells, " ") + suffix
}
