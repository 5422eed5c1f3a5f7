// Package queue owns the broker topology and the typed codec boundary for
// notification tasks.
//
// One durable work queue per notification type is bound to a shared direct
// exchange under its own routing key. Each work queue dead-letters rejected
// messages to a terminal failed queue and expires stale tasks via a queue
// message TTL. A separate delay exchange feeds a holding queue whose
// dead-letter target is the main exchange: a retried task published there
// with a per-message expiration re-enters its original work queue once the
// backoff elapses, keeping its routing key.
//
// RabbitMQ only expires messages at the queue head, so a long backoff
// ahead of a short one postpones it: retry delays can stretch beyond the
// computed backoff, never below it, and the extra wait is bounded by the
// longest backoff in flight.
package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wb-go/wbf/rabbitmq"

	"github.com/DannylSyph3r/notification-system/internal/config"
)

const delayExchangeSuffix = ".delay"

// Topology holds the declared broker resources.
type Topology struct {
	Exchange      string
	DelayExchange string
	EmailQueue    string
	PushQueue     string
	FailedQueue   string
	DelayQueue    string
	ProfileQueue  string
}

// Declare sets up exchanges, queues and bindings from the configuration.
// Declarations are idempotent; every service instance runs them at startup.
func Declare(ch *rabbitmq.Channel, cfg config.RabbitMQ) (*Topology, error) {
	exchange := rabbitmq.NewExchange(cfg.Exchange, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	delayExchange := rabbitmq.NewExchange(cfg.Exchange+delayExchangeSuffix, "direct")
	if err := delayExchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("declare delay exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	// Terminal sink for rejected and exhausted tasks.
	_, err := qm.DeclareQueue(cfg.FailedQueue, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("declare failed queue: %w", err)
	}

	if err := ch.QueueBind(cfg.FailedQueue, cfg.FailedRoutingKey, exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("bind failed queue: %w", err)
	}

	// Holding queue for delayed retries. No routing-key override on the
	// dead-letter args: an expired message returns to the main exchange
	// with its original routing key and re-enters its work queue.
	delayArgs := map[string]interface{}{
		"x-dead-letter-exchange": exchange.Name(),
	}

	_, err = qm.DeclareQueue(cfg.DelayQueue, rabbitmq.QueueConfig{
		Durable: true,
		Args:    delayArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("declare delay queue: %w", err)
	}

	for _, key := range []string{cfg.EmailRoutingKey, cfg.PushRoutingKey} {
		if err := ch.QueueBind(cfg.DelayQueue, key, delayExchange.Name(), false, nil); err != nil {
			return nil, fmt.Errorf("bind delay queue: %w", err)
		}
	}

	workArgs := map[string]interface{}{
		"x-dead-letter-exchange":    exchange.Name(),
		"x-dead-letter-routing-key": cfg.FailedRoutingKey,
		"x-message-ttl":             int32(cfg.MessageTTL.Milliseconds()),
	}

	workQueues := []struct {
		name string
		key  string
	}{
		{cfg.EmailQueue, cfg.EmailRoutingKey},
		{cfg.PushQueue, cfg.PushRoutingKey},
	}

	for _, q := range workQueues {
		_, err := qm.DeclareQueue(q.name, rabbitmq.QueueConfig{
			Durable: true,
			Args:    workArgs,
		})
		if err != nil {
			return nil, fmt.Errorf("declare queue %s: %w", q.name, err)
		}

		if err := ch.QueueBind(q.name, q.key, exchange.Name(), false, nil); err != nil {
			return nil, fmt.Errorf("bind queue %s: %w", q.name, err)
		}
	}

	// Profile-updated events drive enrichment cache invalidation.
	_, err = qm.DeclareQueue(cfg.ProfileQueue, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("declare profile queue: %w", err)
	}

	if err := ch.QueueBind(cfg.ProfileQueue, cfg.ProfileRoutingKey, exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("bind profile queue: %w", err)
	}

	return &Topology{
		Exchange:      exchange.Name(),
		DelayExchange: delayExchange.Name(),
		EmailQueue:    cfg.EmailQueue,
		PushQueue:     cfg.PushQueue,
		FailedQueue:   cfg.FailedQueue,
		DelayQueue:    cfg.DelayQueue,
		ProfileQueue:  cfg.ProfileQueue,
	}, nil
}

// RetryCount reads the x-retry-count header from a delivery, defaulting
// to 0 when absent or of an unexpected type.
func RetryCount(d amqp.Delivery) int {
	v, ok := d.Headers[retryCountHeader]
	if !ok {
		return 0
	}

	switch n := v.(type) {
	case int32:
		return int(n)
	case int64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}
