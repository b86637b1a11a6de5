package compiler_test

import (
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func r(from, read, to, write, move string) domain.RawRule {
	return domain.RawRule{From: from, Read: read, To: to, Write: write, Move: move}
}

func TestCompile_IndexAssignment(t *testing.T) {
	m, err := compiler.Compile(domain.Definition{
		Name:     "demo",
		Alphabet: []string{"zero", "one"},
		Rules: []domain.RawRule{
			r("s0", "zero", "s0", "zero", "halt_accept"),
			r("s0", "one", "s1", "one", "right"),
			r("s1", "zero", "s2", "one", "right"),
			r("s1", "one", "s2", "one", "right"),
			r("s2", "*", "s2", "one", "halt_accept"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, []string{"zero", "one"}, m.Symbols.Names())
	assert.Equal(t, []string{"s0", "s1", "s2"}, m.States.Names())
	assert.Equal(t, "zero", m.BlankName())
	assert.Equal(t, "s0", m.StartName())
	assert.True(t, m.Table.Complete(), "the wildcard fills the s2 row")
	assert.Len(t, m.Rules, 5)
}

func TestCompile_StartIsFirstSource(t *testing.T) {
	// The first rule's target appears before any other source.
	m, err := compiler.Compile(domain.Definition{
		Alphabet: []string{"0"},
		Rules: []domain.RawRule{
			r("init", "0", "work", "0", "right"),
			r("work", "0", "init", "0", "left"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "init", m.StartName())
	idx, ok := m.States.Lookup("work")
	require.True(t, ok)
	assert.Equal(t, domain.State(1), idx)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		def   domain.Definition
		check func(t *testing.T, err error)
	}{
		{
			name: "empty alphabet",
			def:  domain.Definition{Rules: []domain.RawRule{r("a", "0", "a", "0", "left")}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrEmptyAlphabet)
			},
		},
		{
			name: "no rules",
			def:  domain.Definition{Alphabet: []string{"0"}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrNoRules)
			},
		},
		{
			name: "unknown read symbol",
			def: domain.Definition{
				Alphabet: []string{"0"},
				Rules:    []domain.RawRule{r("a", "0", "a", "0", "left"), r("a", "x", "a", "0", "left")},
			},
			check: func(t *testing.T, err error) {
				var e *domain.UnknownSymbolError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "x", e.Symbol)
				assert.Equal(t, 1, e.Rule)
			},
		},
		{
			name: "unknown write symbol",
			def: domain.Definition{
				Alphabet: []string{"0"},
				Rules:    []domain.RawRule{r("a", "0", "a", "y", "left")},
			},
			check: func(t *testing.T, err error) {
				var e *domain.UnknownSymbolError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "y", e.Symbol)
			},
		},
		{
			name: "empty state name",
			def: domain.Definition{
				Alphabet: []string{"0"},
				Rules:    []domain.RawRule{r("", "0", "a", "0", "left")},
			},
			check: func(t *testing.T, err error) {
				var e *domain.UnknownStateError
				assert.ErrorAs(t, err, &e)
			},
		},
		{
			name: "bad direction",
			def: domain.Definition{
				Alphabet: []string{"0"},
				Rules:    []domain.RawRule{r("a", "0", "a", "0", "up")},
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidDirection)
			},
		},
		{
			name: "wildcard in alphabet",
			def: domain.Definition{
				Alphabet: []string{"0", "*"},
				Rules:    []domain.RawRule{r("a", "0", "a", "0", "left")},
			},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "reserved")
			},
		},
		{
			name: "duplicate rule",
			def: domain.Definition{
				Alphabet: []string{"0", "1"},
				Rules: []domain.RawRule{
					r("a", "1", "a", "0", "left"),
					r("a", "0", "a", "0", "left"),
					r("a", "1", "a", "1", "right"),
				},
			},
			check: func(t *testing.T, err error) {
				var e *domain.DuplicateRuleError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "a", e.State)
				assert.Equal(t, "1", e.Symbol)
				assert.Equal(t, 0, e.First)
				assert.Equal(t, 2, e.Second)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := compiler.Compile(tt.def)
			require.Error(t, err)
			assert.Nil(t, m)
			tt.check(t, err)
		})
	}
}

func TestCompile_DuplicateAlphabetEntryIsIdempotent(t *testing.T) {
	m, err := compiler.Compile(domain.Definition{
		Alphabet: []string{"0", "1", "0"},
		Rules:    []domain.RawRule{r("a", "0", "a", "0", "left")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Symbols.Len())
}
