package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DannylSyph3r/notification-system/internal/kvstore"
)

const idempotencyKeyPrefix = "idempotency:"

type store interface {
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

// Index maps caller-supplied idempotency keys to the notification id the
// first admission produced. Records are written once and expire after the
// index TTL.
type Index struct {
	store store
	ttl   time.Duration
}

// New creates an Index with the given record TTL.
func New(s store, ttl time.Duration) *Index {
	return &Index{store: s, ttl: ttl}
}

// Lookup returns the notification id previously stored for the key, or
// an empty string if the key is unknown.
func (i *Index) Lookup(ctx context.Context, key string) (string, error) {
	id, err := i.store.Get(ctx, idempotencyKeyPrefix+key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup idempotency key: %w", err)
	}

	return id, nil
}

// Store records key -> notificationID with first-writer-wins semantics.
// When a concurrent admission already claimed the key, Store returns the
// winner's notification id and created=false; the caller must fall back
// to the duplicate path.
func (i *Index) Store(ctx context.Context, key, notificationID string) (created bool, existingID string, err error) {
	created, err = i.store.SetNX(ctx, idempotencyKeyPrefix+key, notificationID, i.ttl)
	if err != nil {
		return false, "", fmt.Errorf("store idempotency key: %w", err)
	}

	if !created {
		existingID, err = i.Lookup(ctx, key)
		if err != nil {
			return false, "", err
		}

		return false, existingID, nil
	}

	return true, "", nil
}
