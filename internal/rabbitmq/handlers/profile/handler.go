// Package profile consumes profile-updated events and invalidates the
// enrichment cache entries of the affected user.
package profile

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wb-go/wbf/zlog"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/profile/mock.go -package=mocks

type cacheInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

type deliverySource interface {
	Deliveries() (<-chan amqp.Delivery, error)
}

// event is the profile-updated message published by the user-profile
// service whenever a profile is mutated.
type event struct {
	UserID string `json:"user_id"`
}

// Handler drains profile-updated events. Events are acked even when
// malformed; invalidation is best-effort on top of the cache TTL.
type Handler struct {
	consumer deliverySource
	cache    cacheInvalidator
}

// NewHandler creates a profile event Handler.
func NewHandler(consumer deliverySource, cache cacheInvalidator) *Handler {
	return &Handler{consumer: consumer, cache: cache}
}

// Run consumes events until the context is cancelled.
func (h *Handler) Run(ctx context.Context) error {
	deliveries, err := h.consumer.Deliveries()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Print("profile event handler stopped")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			h.HandleDelivery(ctx, d)
		}
	}
}

// HandleDelivery processes a single profile-updated event.
func (h *Handler) HandleDelivery(ctx context.Context, d amqp.Delivery) {
	var ev event
	if err := json.Unmarshal(d.Body, &ev); err != nil || ev.UserID == "" {
		zlog.Logger.Warn().Err(err).Msg("discarding malformed profile event")
		h.ack(d)
		return
	}

	h.cache.Invalidate(ctx, ev.UserID)
	h.ack(d)
}

func (h *Handler) ack(d amqp.Delivery) {
	if err := d.Ack(false); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to ack profile event")
	}
}
