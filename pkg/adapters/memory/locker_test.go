package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker_Contention(t *testing.T) {
	locker := memory.NewLocker()
	ctx := context.Background()

	unlock1, err := locker.Lock(ctx, "run-1", time.Minute)
	require.NoError(t, err)

	// Other keys are independent
	unlockOther, err := locker.Lock(ctx, "run-2", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlockOther(ctx))

	ctxTimeout, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctxTimeout, "run-1", time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock1(ctx))
	require.NoError(t, unlock1(ctx), "unlocking twice is a no-op")

	unlock2, err := locker.Lock(ctx, "run-1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestMemoryLocker_Expires(t *testing.T) {
	locker := memory.NewLocker()
	ctx := context.Background()

	_, err := locker.Lock(ctx, "run-1", 20*time.Millisecond)
	require.NoError(t, err)

	ctxTimeout, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	unlock, err := locker.Lock(ctxTimeout, "run-1", time.Minute)
	require.NoError(t, err, "expired lock should be released")
	require.NoError(t, unlock(ctx))
}
