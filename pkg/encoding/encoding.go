// Package encoding writes a complete machine as a word over its own first two
// symbols, and reads such words back.
//
// Layout, with b0 and b1 the first two alphabet symbols:
//
//	word size   one pair per binary digit, MSB first: b0 b0 for 0, b0 b1 for 1
//	            terminated by b1 b1
//	states      the state count in word-size bits (all b0 means 2^word size)
//	rules       per table cell: from, read, to, write in word-size bits,
//	            then a three bit direction code
//
// The word size is the number of bits needed to index both the states and the
// alphabet. Direction codes are 000 left, 001 right, 010 halt_accept,
// 011 halt_reject and 100 stay.
package encoding

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// ErrTooFewSymbols is returned when the alphabet has no second symbol to use as a one bit.
var ErrTooFewSymbols = errors.New("encoding needs at least two symbols")

// ErrMalformed is returned when a word does not follow the encoding layout.
var ErrMalformed = errors.New("malformed machine encoding")

var directionCodes = map[domain.Direction][3]int{
	domain.DirectionLeft:       {0, 0, 0},
	domain.DirectionRight:      {0, 0, 1},
	domain.DirectionHaltAccept: {0, 1, 0},
	domain.DirectionHaltReject: {0, 1, 1},
	domain.DirectionStay:       {1, 0, 0},
}

// WordSize returns the bits needed to index states and symbols.
func WordSize(states, symbols int) int {
	return bits.Len(uint(max(states, symbols) - 1))
}

// Encode writes m as a list of symbol names. The machine must define every
// (state, symbol) pair.
func Encode(m *machine.Machine) ([]string, error) {
	if m.Symbols.Len() < 2 {
		return nil, ErrTooFewSymbols
	}
	if !m.Table.Complete() {
		return nil, fmt.Errorf("encode: %w (%d cells missing)", domain.ErrIncompleteMachine, len(m.Table.Missing()))
	}

	e := encoder{b0: m.Symbols.Name(0), b1: m.Symbols.Name(1)}
	ws := WordSize(m.States.Len(), m.Symbols.Len())

	for _, d := range strconv.FormatInt(int64(ws), 2) {
		e.bit(0)
		e.bit(int(d - '0'))
	}
	e.bit(1)
	e.bit(1)

	e.word(m.States.Len(), ws)
	for _, entry := range m.Table.Entries() {
		e.word(int(entry.Key.State), ws)
		e.word(int(entry.Key.Symbol), ws)
		e.word(int(entry.Outcome.Next), ws)
		e.word(int(entry.Outcome.Write), ws)
		for _, b := range directionCodes[domain.DirectionOf(entry.Outcome.Move, entry.Outcome.Halt)] {
			e.bit(b)
		}
	}
	return e.out, nil
}

type encoder struct {
	b0, b1 string
	out    []string
}

func (e *encoder) bit(b int) {
	if b == 0 {
		e.out = append(e.out, e.b0)
	} else {
		e.out = append(e.out, e.b1)
	}
}

// word writes the low n bits of v, MSB first.
func (e *encoder) word(v, n int) {
	for i := n - 1; i >= 0; i-- {
		e.bit((v >> i) & 1)
	}
}

// Decode reads a word produced by Encode back into a definition over
// alphabet. States are named q0, q1, ... by index, q0 being the start state.
func Decode(word []string, alphabet []string) (domain.Definition, error) {
	if len(alphabet) < 2 {
		return domain.Definition{}, ErrTooFewSymbols
	}
	d := decoder{b0: alphabet[0], b1: alphabet[1], in: word}

	ws := 0
	for {
		hi, err := d.bit()
		if err != nil {
			return domain.Definition{}, err
		}
		lo, err := d.bit()
		if err != nil {
			return domain.Definition{}, err
		}
		if hi == 1 && lo == 1 {
			break
		}
		if hi == 1 {
			return domain.Definition{}, fmt.Errorf("%w: unused word size pair at %d", ErrMalformed, d.pos-2)
		}
		ws = ws<<1 | lo
	}
	if ws < 1 || ws > 16 {
		return domain.Definition{}, fmt.Errorf("%w: word size %d", ErrMalformed, ws)
	}

	states, err := d.word(ws)
	if err != nil {
		return domain.Definition{}, err
	}
	if states == 0 {
		states = 1 << ws
	}

	ruleBits := 4*ws + 3
	rest := len(word) - d.pos
	if rest%ruleBits != 0 {
		return domain.Definition{}, fmt.Errorf("%w: %d trailing symbols", ErrMalformed, rest%ruleBits)
	}

	def := domain.Definition{Alphabet: append([]string(nil), alphabet...)}
	for d.pos < len(word) {
		var f [4]int
		for i := range f {
			if f[i], err = d.word(ws); err != nil {
				return domain.Definition{}, err
			}
		}
		dir, err := d.direction()
		if err != nil {
			return domain.Definition{}, err
		}
		if f[0] >= states || f[2] >= states {
			return domain.Definition{}, fmt.Errorf("%w: state index out of range at rule %d", ErrMalformed, len(def.Rules))
		}
		if f[1] >= len(alphabet) || f[3] >= len(alphabet) {
			return domain.Definition{}, fmt.Errorf("%w: symbol index out of range at rule %d", ErrMalformed, len(def.Rules))
		}
		def.Rules = append(def.Rules, domain.RawRule{
			From:  stateName(f[0]),
			Read:  alphabet[f[1]],
			To:    stateName(f[2]),
			Write: alphabet[f[3]],
			Move:  string(dir),
		})
	}
	if len(def.Rules) != states*len(alphabet) {
		return domain.Definition{}, fmt.Errorf("%w: %d rules for %d states over %d symbols",
			ErrMalformed, len(def.Rules), states, len(alphabet))
	}
	return def, nil
}

func stateName(i int) string {
	return "q" + strconv.Itoa(i)
}

type decoder struct {
	b0, b1 string
	in     []string
	pos    int
}

func (d *decoder) bit() (int, error) {
	if d.pos >= len(d.in) {
		return 0, fmt.Errorf("%w: unexpected end at %d", ErrMalformed, d.pos)
	}
	s := d.in[d.pos]
	d.pos++
	switch s {
	case d.b0:
		return 0, nil
	case d.b1:
		return 1, nil
	}
	return 0, fmt.Errorf("%w: symbol %q at %d is not a bit", ErrMalformed, s, d.pos-1)
}

func (d *decoder) word(n int) (int, error) {
	v := 0
	for range n {
		b, err := d.bit()
		if err != nil {
			return 0, err
		}
		v = v<<1 | b
	}
	return v, nil
}

func (d *decoder) direction() (domain.Direction, error) {
	code, err := d.word(3)
	if err != nil {
		return "", err
	}
	for dir, c := range directionCodes {
		if c[0]<<2|c[1]<<1|c[2] == code {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w: direction code %03b", ErrMalformed, code)
}
