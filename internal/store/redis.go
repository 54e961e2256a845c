package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisSnapshotter keeps the whole store as one JSON document under a single key
type RedisSnapshotter struct {
	client *redis.Client
	key    string
}

var _ Snapshotter = (*RedisSnapshotter)(nil)

// NewRedisSnapshotter creates a snapshotter writing to key
func NewRedisSnapshotter(client *redis.Client, key string) *RedisSnapshotter {
	return &RedisSnapshotter{client: client, key: key}
}

// Load reads the saved snapshot. A missing key is not an error.
func (s *RedisSnapshotter) Load(ctx context.Context) (Snapshot, bool, error) {
	var snap Snapshot

	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, fmt.Errorf("failed to read snapshot %s: %w", s.key, err)
	}

	if err := json.Unmarshal(raw, &snap); err != nil {
		return snap, false, fmt.Errorf("failed to decode snapshot %s: %w", s.key, err)
	}
	return snap, true, nil
}

// Save overwrites the snapshot
func (s *RedisSnapshotter) Save(ctx context.Context, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", s.key, err)
	}
	return nil
}
