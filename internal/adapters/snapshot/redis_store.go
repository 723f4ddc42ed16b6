// Package snapshot provides SnapshotStore implementations. Both treat the
// persisted record as a disposable cache: a missing or unreadable record
// loads as an empty snapshot.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"dispatch-route-planner/internal/ports"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the snapshot as one JSON string under a fixed key.
type RedisStore struct {
	rdb *redis.Client
	key string
}

func NewRedisStore(rdb *redis.Client, key string) (*RedisStore, error) {
	if rdb == nil {
		return nil, errors.New("redis snapshot store: client is nil")
	}
	if key == "" {
		return nil, errors.New("redis snapshot store: key is empty")
	}
	return &RedisStore{rdb: rdb, key: key}, nil
}

// Load fetches the snapshot. A missing key or corrupt payload yields an
// empty snapshot, not an error.
func (s *RedisStore) Load(ctx context.Context) (ports.Snapshot, error) {
	raw, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return ports.Snapshot{}, nil
	}
	if err != nil {
		return ports.Snapshot{}, fmt.Errorf("snapshot load: %w", err)
	}

	var snap ports.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		log.Printf("snapshot payload unreadable, starting empty: %v", err)
		return ports.Snapshot{}, nil
	}

	return snap, nil
}

// Save overwrites the record with the current state.
func (s *RedisStore) Save(ctx context.Context, snap ports.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot save: marshal: %w", err)
	}

	if err := s.rdb.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("snapshot save: %w", err)
	}
	return nil
}

// Clear deletes the record.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("snapshot clear: %w", err)
	}
	return nil
}
