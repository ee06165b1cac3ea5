package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/EduPort-F-2025/portfolio-service/internal/models"
	"github.com/EduPort-F-2025/portfolio-service/internal/repositories"
)

// SnapshotRedis persists the system state as one JSON blob under a
// single well-known key, the server-side analog of the browser
// rendition's localStorage entry. Writes replace the whole value, so a
// reader never observes a half-written snapshot.
type SnapshotRedis struct {
	client *redis.Client
	key    string
}

func NewSnapshotRedis(client *redis.Client, key string) repositories.SnapshotStore {
	return &SnapshotRedis{
		client: client,
		key:    key,
	}
}

// NewClient builds a redis client from a URL, shared by main and tests.
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (s *SnapshotRedis) Load(ctx context.Context) (*models.SystemState, bool, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var state models.SystemState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, false, repositories.ErrSnapshotCorrupt
	}
	return &state, true, nil
}

func (s *SnapshotRedis) Save(ctx context.Context, state *models.SystemState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	// No TTL: the snapshot is durable state, not a cache entry
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotRedis) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SnapshotRedis) Close() error {
	return s.client.Close()
}
