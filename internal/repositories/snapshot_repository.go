package repositories

import (
	"context"
	"errors"

	"github.com/EduPort-F-2025/portfolio-service/internal/models"
)

// ErrSnapshotCorrupt marks a stored payload that could not be
// deserialized into a SystemState.
var ErrSnapshotCorrupt = errors.New("stored snapshot is not a valid system state")

// SnapshotStore is the durable-storage contract: one well-known key
// holds the entire serialized SystemState as a single blob. Every Save
// overwrites the prior value in full; there is no versioning and no
// incremental persistence.
type SnapshotStore interface {
	// Load reads the stored snapshot. The second return value is false
	// when no snapshot has ever been written.
	Load(ctx context.Context) (*models.SystemState, bool, error)

	// Save overwrites the stored snapshot with the given state.
	Save(ctx context.Context, state *models.SystemState) error

	// Ping reports backend reachability.
	Ping(ctx context.Context) error

	// Close releases backend connections.
	Close() error
}
