package domain_test

import (
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		token string
		move  domain.Move
		halt  domain.Halt
	}{
		{"left", domain.MoveLeft, domain.HaltNone},
		{"right", domain.MoveRight, domain.HaltNone},
		{"stay", domain.MoveStay, domain.HaltNone},
		{"noop", domain.MoveStay, domain.HaltNone},
		{"halt_accept", domain.MoveStay, domain.HaltAccept},
		{"halt_reject", domain.MoveStay, domain.HaltReject},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			move, halt, err := domain.ParseDirection(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.move, move)
			assert.Equal(t, tt.halt, halt)
		})
	}

	_, _, err := domain.ParseDirection("Left")
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)
}

func TestDirectionOf(t *testing.T) {
	assert.Equal(t, domain.DirectionHaltAccept, domain.DirectionOf(domain.MoveLeft, domain.HaltAccept), "halt wins over movement")
	assert.Equal(t, domain.DirectionHaltReject, domain.DirectionOf(domain.MoveStay, domain.HaltReject))
	assert.Equal(t, domain.DirectionRight, domain.DirectionOf(domain.MoveRight, domain.HaltNone))
	assert.Equal(t, domain.DirectionStay, domain.DirectionOf(domain.MoveStay, domain.HaltNone))
}

func TestMoveDelta(t *testing.T) {
	assert.Equal(t, -1, domain.MoveLeft.Delta())
	assert.Equal(t, 1, domain.MoveRight.Delta())
	assert.Equal(t, 0, domain.MoveStay.Delta())
	assert.Equal(t, 0, domain.Move(99).Delta())
}

func TestStatus(t *testing.T) {
	assert.False(t, domain.StatusRunning.Terminal())
	for _, s := range []domain.Status{domain.StatusHaltedAccept, domain.StatusHaltedReject, domain.StatusAbortedStepLimit} {
		assert.True(t, s.Terminal(), s)
	}
	assert.True(t, domain.StatusHaltedAccept.Accepted())
	assert.False(t, domain.StatusAbortedStepLimit.Accepted())
}
