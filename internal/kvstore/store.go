package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/wb-go/wbf/retry"
)

// ErrNotFound is returned when a key is absent or its TTL has expired.
// The two cases are indistinguishable.
var ErrNotFound = errors.New("key not found")

// Store is a Redis-backed key-value store with per-key TTLs.
//
// It is the uniform contract shared by the status ledger, the idempotency
// index and the enrichment cache: get, set with TTL, atomic set-if-absent,
// delete. No multi-key operations.
type Store struct {
	client   redis.Cmdable
	strategy retry.Strategy
}

// New creates a Store on top of a Redis client.
func New(client redis.Cmdable, strategy retry.Strategy) *Store {
	return &Store{client: client, strategy: strategy}
}

// Get returns the value stored under key, or ErrNotFound if the key is
// absent or expired.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}

	return val, nil
}

// Set stores value under key with the given TTL, retrying transient
// failures per the store strategy.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	err := retry.Do(func() error {
		return s.client.Set(ctx, key, value, ttl).Err()
	}, s.strategy)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

// SetNX stores value under key only if the key does not exist. It reports
// whether this call was the one that created the key.
func (s *Store) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("setnx %s: %w", key, err)
	}

	return ok, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}

	return nil
}
