// Package admission implements the synchronous intake step: validate,
// deduplicate, enrich and durably hand off a notification request.
package admission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/DannylSyph3r/notification-system/internal/model"
)

// ErrChannelDisabled is returned when the requested channel is disabled in
// the user's preferences. No task is enqueued and no idempotency record is
// written, so the caller may retry with the same key after the user
// re-enables the channel.
var ErrChannelDisabled = errors.New("user has disabled this notification channel")

//go:generate mockgen -source=service.go -destination=../../mocks/service/admission/mock.go -package=mocks

type idempotencyIndex interface {
	Lookup(ctx context.Context, key string) (string, error)
	Store(ctx context.Context, key, notificationID string) (created bool, existingID string, err error)
}

type statusLedger interface {
	Get(ctx context.Context, notificationID string) (model.StatusRecord, error)
	Set(ctx context.Context, notificationID, status, errDetail string) error
}

type enricher interface {
	Preferences(ctx context.Context, userID, correlationID string) (model.UserPreferences, error)
	Contact(ctx context.Context, userID, correlationID string) (model.UserContact, error)
}

type taskPublisher interface {
	PublishTask(ctx context.Context, task model.NotificationTask) error
}

// Result is the outcome of an admission: the notification id, its current
// status, and whether the request was a detected duplicate.
type Result struct {
	NotificationID string
	Status         string
	Duplicate      bool
}

// Service coordinates idempotency resolution, enrichment and the durable
// hand-off of a notification task. It keeps no mutable in-process state;
// all coordination happens through the external stores.
type Service struct {
	index     idempotencyIndex
	ledger    statusLedger
	enricher  enricher
	publisher taskPublisher
}

// NewService creates an admission Service.
func NewService(index idempotencyIndex, ledger statusLedger, enricher enricher, publisher taskPublisher) *Service {
	return &Service{index: index, ledger: ledger, enricher: enricher, publisher: publisher}
}

// Admit runs the admission flow for a request. A detected duplicate is not
// an error: the result carries the prior notification id, its current
// status and the duplicate flag.
func (s *Service) Admit(ctx context.Context, req model.NotificationRequest, correlationID string) (Result, error) {
	zlog.Logger.Info().
		Str("correlation_id", correlationID).
		Str("type", req.NotificationType).
		Str("user_id", req.UserID).
		Msg("notification request received")

	// Resolve the idempotency key, synthesizing one when the caller did
	// not provide it.
	requestKey := strings.TrimSpace(req.RequestID)
	if requestKey == "" {
		requestKey = synthesizeRequestKey()
		zlog.Logger.Warn().
			Str("correlation_id", correlationID).
			Str("request_id", requestKey).
			Msg("no request_id provided by client, generated one; idempotency is not guaranteed")
	}

	existingID, err := s.index.Lookup(ctx, requestKey)
	if err != nil {
		return Result{}, fmt.Errorf("idempotency lookup: %w", err)
	}
	if existingID != "" {
		return s.duplicateResult(ctx, existingID, requestKey, correlationID)
	}

	notificationID := uuid.New().String()

	prefs, err := s.enricher.Preferences(ctx, req.UserID, correlationID)
	if err != nil {
		return Result{}, fmt.Errorf("resolve preferences: %w", err)
	}

	if !prefs.ChannelEnabled(req.NotificationType) {
		zlog.Logger.Warn().
			Str("correlation_id", correlationID).
			Str("user_id", req.UserID).
			Str("type", req.NotificationType).
			Msg("channel disabled in user preferences")
		return Result{}, ErrChannelDisabled
	}

	contact, err := s.enricher.Contact(ctx, req.UserID, correlationID)
	if err != nil {
		return Result{}, fmt.Errorf("resolve contact: %w", err)
	}

	task := model.NotificationTask{
		NotificationID:   notificationID,
		RequestID:        requestKey,
		UserID:           req.UserID,
		NotificationType: req.NotificationType,
		TemplateCode:     req.TemplateCode,
		Variables:        req.Variables,
		Priority:         req.Priority,
		Metadata:         req.Metadata,
		UserPreferences:  prefs,
		UserContact:      contact,
		CorrelationID:    correlationID,
	}

	// Publish before any record is written: a failed publish leaves no
	// trace, so the client's retry with the same key is safe.
	if err := s.publisher.PublishTask(ctx, task); err != nil {
		return Result{}, fmt.Errorf("publish task: %w", err)
	}

	if err := s.ledger.Set(ctx, notificationID, model.StatusPending, ""); err != nil {
		// The task is already durable; the retry this error provokes
		// produces at worst a duplicate publish, never a client-visible
		// record with no matching task.
		return Result{}, fmt.Errorf("write initial status: %w", err)
	}

	// The idempotency record is written last. Losing the set-if-absent
	// race means a concurrent admission won; fall back to its result.
	created, winnerID, err := s.index.Store(ctx, requestKey, notificationID)
	if err != nil {
		zlog.Logger.Error().Err(err).
			Str("correlation_id", correlationID).
			Str("request_id", requestKey).
			Msg("failed to store idempotency key")
	} else if !created && winnerID != "" && winnerID != notificationID {
		return s.duplicateResult(ctx, winnerID, requestKey, correlationID)
	}

	zlog.Logger.Info().
		Str("correlation_id", correlationID).
		Str("notification_id", notificationID).
		Msg("notification queued successfully")

	return Result{NotificationID: notificationID, Status: model.StatusPending}, nil
}

// GetStatus returns the current status record for a notification id.
func (s *Service) GetStatus(ctx context.Context, notificationID string) (model.StatusRecord, error) {
	return s.ledger.Get(ctx, notificationID)
}

func (s *Service) duplicateResult(ctx context.Context, notificationID, requestKey, correlationID string) (Result, error) {
	zlog.Logger.Warn().
		Str("correlation_id", correlationID).
		Str("request_id", requestKey).
		Str("notification_id", notificationID).
		Msg("duplicate request detected, returning cached response")

	// A mapped id whose status expired is surfaced as a lookup failure,
	// not silently treated as a fresh request.
	record, err := s.ledger.Get(ctx, notificationID)
	if err != nil {
		return Result{}, fmt.Errorf("status lookup for duplicate %s: %w", notificationID, err)
	}

	return Result{NotificationID: notificationID, Status: record.Status, Duplicate: true}, nil
}

func synthesizeRequestKey() string {
	return fmt.Sprintf("gen-%d-%s", time.Now().UnixNano(), uuid.New().String()[:8])
}
