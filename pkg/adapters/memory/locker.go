package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/turing/pkg/ports"
)

// Locker implements ports.DistributedLocker within a single process.
// Locks are not shared across replicas; use the redis locker for that.
type Locker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewLocker creates an in-process locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]chan struct{})}
}

func (l *Locker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	return ch
}

// Lock acquires the lock for key. A lock still held after ttl is released
// automatically; a later unlock of that expired lock is a no-op.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	ch := l.slot(key)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ch <- struct{}{}:
	}

	var once sync.Once
	release := func() {
		once.Do(func() { <-ch })
	}
	var timer *time.Timer
	if ttl > 0 {
		timer = time.AfterFunc(ttl, release)
	}
	return func(ctx context.Context) error {
		if timer != nil {
			timer.Stop()
		}
		release()
		return nil
	}, nil
}
