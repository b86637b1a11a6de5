package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/ports"
)

// Backend bundles a run store with the locker that guards it.
type Backend struct {
	Store  ports.RunStore
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases connections held by the backend.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend creates the store selected by cfg. Redis is pinged so that a
// wrong URL fails here rather than on the first save.
func OpenBackend(ctx context.Context, cfg Config) (*Backend, error) {
	switch cfg.Store {
	case StoreMemory:
		return &Backend{Store: memory.NewStore(), Locker: memory.NewLocker()}, nil
	case StoreFile:
		return &Backend{Store: file.New(cfg.RunsDir), Locker: memory.NewLocker()}, nil
	case StoreRedis:
		store, err := redis.New(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis store: %w", err)
		}
		return &Backend{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), store.Prefix()),
			close:  store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
