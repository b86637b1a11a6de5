/*
Package format reads and writes machine definitions.

Two formats are supported.

The text format puts the alphabet on the first line and one rule per line
after it. The first symbol is the blank; the first rule's source state is the
start state. Blank lines and lines starting with '#' are ignored.

	zero one
	s0 zero s0 zero halt_accept
	s0 one  s1 one  right
	s1 zero s2 one  right
	s1 one  s2 one  right
	s2 *    s2 one  halt_accept

Names match [A-Za-z0-9_]+. A '*' in the read field matches every symbol not
covered by an explicit rule of the same state. Directions are left, right,
stay (or noop), halt_accept and halt_reject.

The YAML format carries the same data, with rules either as five-element
lists or as maps with from/read/to/write/move keys:

	name: flip
	alphabet: [_, a, b]
	rules:
	  - [s, a, s, b, right]
	  - {from: s, read: b, to: s, write: a, move: right}
	  - {from: s, read: _, to: s, write: _, move: halt_accept}
*/
package format
