package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/DannylSyph3r/notification-system/internal/kvstore"
	"github.com/DannylSyph3r/notification-system/internal/model"
)

// ErrStatusNotFound is returned when no status record exists for an id,
// either because it never existed or because its TTL expired.
var ErrStatusNotFound = errors.New("notification status not found")

const statusKeyPrefix = "notification:status:"

type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Ledger is the TTL-bounded status ledger of notification delivery state.
//
// Admission writes the initial pending record; delivery workers write
// intermediate and terminal updates. Last write wins.
type Ledger struct {
	store store
	ttl   time.Duration
}

// New creates a Ledger with the given record TTL.
func New(s store, ttl time.Duration) *Ledger {
	return &Ledger{store: s, ttl: ttl}
}

// Get returns the status record for a notification id.
func (l *Ledger) Get(ctx context.Context, notificationID string) (model.StatusRecord, error) {
	raw, err := l.store.Get(ctx, statusKeyPrefix+notificationID)
	if errors.Is(err, kvstore.ErrNotFound) {
		return model.StatusRecord{}, ErrStatusNotFound
	}
	if err != nil {
		return model.StatusRecord{}, fmt.Errorf("get status: %w", err)
	}

	var record model.StatusRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return model.StatusRecord{}, fmt.Errorf("unmarshal status record: %w", err)
	}

	return record, nil
}

// Set writes a status record for a notification id, resetting its TTL.
func (l *Ledger) Set(ctx context.Context, notificationID, status, errDetail string) error {
	record := model.NewStatusRecord(notificationID, status, errDetail)

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal status record: %w", err)
	}

	if err := l.store.Set(ctx, statusKeyPrefix+notificationID, string(body), l.ttl); err != nil {
		return fmt.Errorf("set status: %w", err)
	}

	zlog.Logger.Info().
		Str("notification_id", notificationID).
		Str("status", status).
		Msg("status updated")

	return nil
}

// SetBestEffort writes a status record and only logs on failure. Worker
// paths use it where a ledger outage must not change the acknowledgment
// decision.
func (l *Ledger) SetBestEffort(ctx context.Context, notificationID, status, errDetail string) {
	if err := l.Set(ctx, notificationID, status, errDetail); err != nil {
		zlog.Logger.Error().Err(err).
			Str("notification_id", notificationID).
			Str("status", status).
			Msg("failed to update status")
	}
}
