package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/DannylSyph3r/notification-system/internal/config"
	"github.com/DannylSyph3r/notification-system/internal/model"
)

const retryCountHeader = "x-retry-count"

// amqpChannel is the slice of the AMQP channel the publisher needs.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher publishes notification tasks durably.
//
// Fresh tasks go to the main exchange under the routing key of their
// notification type; retried tasks go to the delay exchange with a
// per-message expiration so they re-enter the work queue after the
// backoff elapses.
type Publisher struct {
	ch            amqpChannel
	exchange      string
	delayExchange string
	emailKey      string
	pushKey       string
	strategy      retry.Strategy
}

// NewPublisher creates a Publisher over an open channel.
func NewPublisher(ch amqpChannel, top *Topology, cfg config.RabbitMQ, strategy retry.Strategy) *Publisher {
	return &Publisher{
		ch:            ch,
		exchange:      top.Exchange,
		delayExchange: top.DelayExchange,
		emailKey:      cfg.EmailRoutingKey,
		pushKey:       cfg.PushRoutingKey,
		strategy:      strategy,
	}
}

// RoutingKey resolves the routing key for a notification type.
func (p *Publisher) RoutingKey(notificationType string) (string, error) {
	switch notificationType {
	case model.TypeEmail:
		return p.emailKey, nil
	case model.TypePush:
		return p.pushKey, nil
	default:
		return "", fmt.Errorf("unknown notification type %q", notificationType)
	}
}

// PublishTask publishes a fresh task to its work queue. The message is
// persistent and carries the correlation id and a zero retry count.
func (p *Publisher) PublishTask(ctx context.Context, task model.NotificationTask) error {
	key, err := p.RoutingKey(task.NotificationType)
	if err != nil {
		return err
	}

	return p.publish(ctx, p.exchange, key, task, 0, 0)
}

// PublishRetry re-publishes a task to the delay exchange with the given
// backoff delay and retry count.
func (p *Publisher) PublishRetry(ctx context.Context, task model.NotificationTask, retryCount int, delay time.Duration) error {
	key, err := p.RoutingKey(task.NotificationType)
	if err != nil {
		return err
	}

	return p.publish(ctx, p.delayExchange, key, task, retryCount, delay)
}

func (p *Publisher) publish(ctx context.Context, exchange, key string, task model.NotificationTask, retryCount int, delay time.Duration) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		CorrelationId: task.CorrelationID,
		Headers: amqp.Table{
			retryCountHeader: int32(retryCount),
			"request_id":     task.RequestID,
		},
		Body: body,
	}

	if delay > 0 {
		msg.Expiration = strconv.FormatInt(delay.Milliseconds(), 10)
	}

	err = retry.Do(func() error {
		return p.ch.PublishWithContext(ctx, exchange, key, false, false, msg)
	}, p.strategy)
	if err != nil {
		return fmt.Errorf("publish to %s/%s: %w", exchange, key, err)
	}

	zlog.Logger.Info().
		Str("correlation_id", task.CorrelationID).
		Str("notification_id", task.NotificationID).
		Str("routing_key", key).
		Int("retry_count", retryCount).
		Msg("task published")

	return nil
}

// DecodeTask unmarshals a queued message body into a task.
func DecodeTask(body []byte) (model.NotificationTask, error) {
	var task model.NotificationTask
	if err := json.Unmarshal(body, &task); err != nil {
		return model.NotificationTask{}, fmt.Errorf("unmarshal task: %w", err)
	}

	return task, nil
}
