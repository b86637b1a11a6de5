// Package tape implements the unbounded single tape of a Turing machine.
package tape

import "github.com/aretw0/turing/pkg/domain"

// Tape is a two-way unbounded sequence of symbols with a movable head.
//
// Positions >= 0 live in right[pos], positions < 0 in left[-pos-1], so both
// directions grow by appending and head excursions never shift existing cells.
// Cells never written read as the blank symbol.
type Tape struct {
	blank domain.Symbol
	right []domain.Symbol
	left  []domain.Symbol
	head  int

	written bool
	lo, hi  int
}

// New creates a tape whose input starts at position 0, with the head on it.
func New(blank domain.Symbol, input ...domain.Symbol) *Tape {
	t := &Tape{blank: blank}
	if len(input) > 0 {
		t.right = make([]domain.Symbol, len(input))
		copy(t.right, input)
		t.written = true
		t.lo, t.hi = 0, len(input)-1
	}
	return t
}

// Blank returns the default symbol.
func (t *Tape) Blank() domain.Symbol {
	return t.blank
}

// Read returns the symbol at pos.
func (t *Tape) Read(pos int) domain.Symbol {
	if pos >= 0 {
		if pos < len(t.right) {
			return t.right[pos]
		}
		return t.blank
	}
	i := -pos - 1
	if i < len(t.left) {
		return t.left[i]
	}
	return t.blank
}

// Write stores sym at pos, growing the tape as needed.
func (t *Tape) Write(pos int, sym domain.Symbol) {
	if pos >= 0 {
		t.right = grow(t.right, pos, t.blank)
		t.right[pos] = sym
	} else {
		i := -pos - 1
		t.left = grow(t.left, i, t.blank)
		t.left[i] = sym
	}

	if !t.written {
		t.written = true
		t.lo, t.hi = pos, pos
		return
	}
	t.lo = min(t.lo, pos)
	t.hi = max(t.hi, pos)
}

// grow extends s with blanks until index i is addressable.
// append's geometric growth keeps sequential extension amortized O(1).
func grow(s []domain.Symbol, i int, blank domain.Symbol) []domain.Symbol {
	for len(s) <= i {
		s = append(s, blank)
	}
	return s
}

// Head returns the head position.
func (t *Tape) Head() int {
	return t.head
}

// Move shifts the head and returns the new position.
func (t *Tape) Move(m domain.Move) int {
	t.head += m.Delta()
	return t.head
}

// ReadHead returns the symbol under the head.
func (t *Tape) ReadHead() domain.Symbol {
	return t.Read(t.head)
}

// WriteHead stores sym under the head.
func (t *Tape) WriteHead(sym domain.Symbol) {
	t.Write(t.head, sym)
}

// Bounds returns the lowest and highest written positions.
// ok is false when nothing has been written.
func (t *Tape) Bounds() (lo, hi int, ok bool) {
	return t.lo, t.hi, t.written
}

// Snapshot copies the written region.
func (t *Tape) Snapshot() domain.Snapshot {
	if !t.written {
		return domain.Snapshot{Start: 0, Symbols: []domain.Symbol{}}
	}
	out := make([]domain.Symbol, 0, t.hi-t.lo+1)
	for p := t.lo; p <= t.hi; p++ {
		out = append(out, t.Read(p))
	}
	return domain.Snapshot{Start: t.lo, Symbols: out}
}
