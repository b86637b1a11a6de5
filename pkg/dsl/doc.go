/*
Package dsl provides a fluent Go builder for turing machines.

It is an alternative to the text and YAML formats when machines are generated
by code or written inline in tests:

	b := dsl.New("busy_beaver").Alphabet("0", "1")

	b.State("A").
		On("0").Write("1").Right().Go("B").
		On("1").Write("1").Left().Go("A")

	b.State("B").
		On("0").Write("1").Left().Go("A").
		On("1").Write("1").Accept()

	eng, err := b.Build()

The first state given a rule is the start state and the first alphabet symbol
is the blank, as in the file formats.
*/
package dsl
