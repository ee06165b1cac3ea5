package repositories

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/EduPort-F-2025/portfolio-service/internal/models"
)

// MemorySnapshotStore keeps the snapshot in process memory. It backs
// deployments with no storage configured and most tests. The blob is
// still serialized on every Save so the round-trip contract is
// exercised identically to the durable backends.
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	blob []byte
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

func (m *MemorySnapshotStore) Load(ctx context.Context) (*models.SystemState, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.blob == nil {
		return nil, false, nil
	}

	var state models.SystemState
	if err := json.Unmarshal(m.blob, &state); err != nil {
		return nil, false, ErrSnapshotCorrupt
	}
	return &state, true, nil
}

func (m *MemorySnapshotStore) Save(ctx context.Context, state *models.SystemState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.blob = data
	m.mu.Unlock()
	return nil
}

func (m *MemorySnapshotStore) Ping(ctx context.Context) error { return nil }

func (m *MemorySnapshotStore) Close() error { return nil }
