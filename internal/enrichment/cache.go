// Package enrichment resolves user contact and preference snapshots for
// admission, caching collaborator responses with a short TTL.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/DannylSyph3r/notification-system/internal/model"
)

const (
	preferencesKeyPrefix = "user:preferences:"
	contactKeyPrefix     = "user:contact:"
)

type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type profileFetcher interface {
	GetPreferences(ctx context.Context, userID string) (model.UserPreferences, error)
	GetContact(ctx context.Context, userID string) (model.UserContact, error)
}

// Cache is a read-through cache over the user-profile collaborator.
//
// A miss falls back to the collaborator fetch; a failed cache write is
// logged and never fails the lookup. The TTL is a safety net against
// missed invalidations.
type Cache struct {
	store   store
	fetcher profileFetcher
	ttl     time.Duration
}

// New creates a Cache with the given entry TTL.
func New(s store, f profileFetcher, ttl time.Duration) *Cache {
	return &Cache{store: s, fetcher: f, ttl: ttl}
}

// Preferences returns the user's notification preferences, cache first.
func (c *Cache) Preferences(ctx context.Context, userID, correlationID string) (model.UserPreferences, error) {
	key := preferencesKeyPrefix + userID

	var prefs model.UserPreferences
	if c.getCached(ctx, key, &prefs) {
		zlog.Logger.Debug().
			Str("correlation_id", correlationID).
			Str("user_id", userID).
			Msg("preferences cache hit")
		return prefs, nil
	}

	prefs, err := c.fetcher.GetPreferences(ctx, userID)
	if err != nil {
		return model.UserPreferences{}, fmt.Errorf("fetch preferences: %w", err)
	}

	c.setCached(ctx, key, prefs)
	return prefs, nil
}

// Contact returns the user's delivery addresses, cache first.
func (c *Cache) Contact(ctx context.Context, userID, correlationID string) (model.UserContact, error) {
	key := contactKeyPrefix + userID

	var contact model.UserContact
	if c.getCached(ctx, key, &contact) {
		zlog.Logger.Debug().
			Str("correlation_id", correlationID).
			Str("user_id", userID).
			Msg("contact cache hit")
		return contact, nil
	}

	contact, err := c.fetcher.GetContact(ctx, userID)
	if err != nil {
		return model.UserContact{}, fmt.Errorf("fetch contact: %w", err)
	}

	c.setCached(ctx, key, contact)
	return contact, nil
}

// Invalidate deletes both cache entries for a user. Called when a
// profile-updated event arrives.
func (c *Cache) Invalidate(ctx context.Context, userID string) {
	for _, key := range []string{preferencesKeyPrefix + userID, contactKeyPrefix + userID} {
		if err := c.store.Delete(ctx, key); err != nil {
			zlog.Logger.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate cache entry")
		}
	}

	zlog.Logger.Info().Str("user_id", userID).Msg("enrichment cache invalidated")
}

func (c *Cache) getCached(ctx context.Context, key string, out interface{}) bool {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		zlog.Logger.Warn().Err(err).Str("key", key).Msg("failed to decode cache entry")
		return false
	}

	return true
}

func (c *Cache) setCached(ctx context.Context, key string, value interface{}) {
	body, err := json.Marshal(value)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("key", key).Msg("failed to encode cache entry")
		return
	}

	if err := c.store.Set(ctx, key, string(body), c.ttl); err != nil {
		zlog.Logger.Warn().Err(err).Str("key", key).Msg("failed to write cache entry")
	}
}
