package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// RunStore defines the interface for persisting finished runs.
// Implementations must be safe for concurrent use.
type RunStore interface {
	// Save persists the record under rec.ID, replacing any previous one.
	Save(ctx context.Context, rec domain.RunRecord) error

	// Load retrieves a record.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, id string) (domain.RunRecord, error)

	// Delete removes a record. Deleting a missing run is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of every stored run.
	List(ctx context.Context) ([]string, error)
}
