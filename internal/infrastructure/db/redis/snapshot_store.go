package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/marketplace-system/internal/core/ports"
)

// SnapshotStore keeps one store's snapshot as a JSON string under a single key.
// Key format: <prefix><store>
type SnapshotStore struct {
	client *redis.Client
	key    string
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a SnapshotStore for store using the given client.
func NewSnapshotStore(client *redis.Client, prefix, store string) *SnapshotStore {
	return &SnapshotStore{client: client, key: prefix + store}
}

// Load decodes the stored snapshot into v. A missing key reports found=false.
func (s *SnapshotStore) Load(ctx context.Context, v any) (bool, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", s.key, err)
	}
	return true, nil
}

// Save overwrites the snapshot. SET replaces the value atomically.
func (s *SnapshotStore) Save(ctx context.Context, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
