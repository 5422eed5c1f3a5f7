// Package worker implements the delivery worker pool that consumes
// notification tasks, invokes providers and resolves every task to an
// acknowledgment decision plus a status write.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wb-go/wbf/zlog"

	"github.com/DannylSyph3r/notification-system/internal/config"
	"github.com/DannylSyph3r/notification-system/internal/model"
	"github.com/DannylSyph3r/notification-system/internal/provider"
	"github.com/DannylSyph3r/notification-system/internal/rabbitmq/queue"
)

//go:generate mockgen -source=delivery.go -destination=../mocks/worker/mock.go -package=mocks

type taskConsumer interface {
	Deliveries() (<-chan amqp.Delivery, error)
}

type statusLedger interface {
	SetBestEffort(ctx context.Context, notificationID, status, errDetail string)
}

type retryPublisher interface {
	PublishRetry(ctx context.Context, task model.NotificationTask, retryCount int, delay time.Duration) error
}

// Worker consumes one work queue with a pool of goroutines. The broker
// load-balances deliveries across consumers; the prefetch window bounds
// each consumer's in-flight tasks.
type Worker struct {
	consumer  taskConsumer
	ledger    statusLedger
	publisher retryPublisher
	providers map[string]provider.Sender
	delivery  config.Delivery
}

// New creates a Worker over a consumer and the providers keyed by
// notification type.
func New(
	consumer taskConsumer,
	ledger statusLedger,
	publisher retryPublisher,
	providers map[string]provider.Sender,
	delivery config.Delivery,
) *Worker {
	return &Worker{
		consumer:  consumer,
		ledger:    ledger,
		publisher: publisher,
		providers: providers,
		delivery:  delivery,
	}
}

// Run starts workerCount goroutines draining the consume stream and blocks
// until the context is cancelled and all workers have drained.
func (w *Worker) Run(ctx context.Context, workerCount int) error {
	deliveries, err := w.consumer.Deliveries()
	if err != nil {
		return fmt.Errorf("open consume stream: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)

	for i := 0; i < workerCount; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Printf("worker-%d started", id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("worker-%d shutting down", id)
					return
				case d, ok := <-deliveries:
					if !ok {
						zlog.Logger.Printf("worker-%d channel closed, shutting down", id)
						return
					}

					w.Handle(ctx, d)
				}
			}
		}(i)
	}

	wg.Wait()
	zlog.Logger.Print("delivery worker stopped")

	return nil
}

// Handle resolves one delivery: decode, run the state machine, ack or nack.
// It never lets a failure escape the consumer boundary; a panic is treated
// as a transient failure and routed through the retry path.
func (w *Worker) Handle(ctx context.Context, d amqp.Delivery) {
	task, err := queue.DecodeTask(d.Body)
	if err != nil {
		// An undecodable message can never succeed; reject it straight
		// to the failed queue.
		zlog.Logger.Error().Err(err).Msg("failed to decode task, rejecting")
		w.nack(d)
		return
	}

	retryCount := queue.RetryCount(d)

	zlog.Logger.Info().
		Str("correlation_id", task.CorrelationID).
		Str("notification_id", task.NotificationID).
		Int("attempt", retryCount+1).
		Int("max_attempts", w.delivery.MaxAttempts).
		Msg("received notification task")

	err = w.attempt(ctx, task)
	if err == nil {
		w.ack(d)
		return
	}

	switch classify(err) {
	case outcomeSkipped:
		// Already recorded as skipped; the task is handled.
		w.ack(d)

	case outcomePermanent:
		w.ledger.SetBestEffort(ctx, task.NotificationID, model.StatusFailed, reason(err))
		zlog.Logger.Warn().
			Str("correlation_id", task.CorrelationID).
			Str("notification_id", task.NotificationID).
			Str("reason", reason(err)).
			Msg("permanent failure, not retrying")
		w.ack(d)

	default: // transient
		w.retryOrFail(ctx, d, task, retryCount, reason(err))
	}
}

// attempt runs one delivery attempt and maps every exit onto the outcome
// taxonomy. Panics become transient failures.
func (w *Worker) attempt(ctx context.Context, task model.NotificationTask) (err error) {
	defer func() {
		if r := recover(); r != nil {
			zlog.Logger.Error().
				Str("notification_id", task.NotificationID).
				Interface("panic", r).
				Msg("panic during delivery attempt")
			err = transientf("panic: %v", r)
		}
	}()

	// Consent snapshot captured at admission time decides the skip, even
	// if live preferences changed since.
	if !task.UserPreferences.ChannelEnabled(task.NotificationType) {
		w.ledger.SetBestEffort(ctx, task.NotificationID, model.StatusSkipped,
			fmt.Sprintf("user has disabled %s notifications", task.NotificationType))
		return errSkipped
	}

	if err := validateContact(task); err != nil {
		return err
	}

	sender, ok := w.providers[task.NotificationType]
	if !ok {
		return permanentf("no provider for type %q", task.NotificationType)
	}

	w.ledger.SetBestEffort(ctx, task.NotificationID, model.StatusPending, "")

	messageID, err := sender.Send(ctx, task)
	if err != nil {
		return err
	}

	zlog.Logger.Info().
		Str("correlation_id", task.CorrelationID).
		Str("notification_id", task.NotificationID).
		Str("provider_message_id", messageID).
		Msg("notification delivered")

	w.ledger.SetBestEffort(ctx, task.NotificationID, model.StatusDelivered, "")

	return nil
}

func (w *Worker) retryOrFail(ctx context.Context, d amqp.Delivery, task model.NotificationTask, retryCount int, cause string) {
	if retryCount < w.delivery.MaxAttempts-1 {
		next := retryCount + 1
		delay := backoff(retryCount, w.delivery.BaseDelay, w.delivery.MaxDelay)

		w.ledger.SetBestEffort(ctx, task.NotificationID, model.StatusPending,
			fmt.Sprintf("retry %d: %s", next, cause))

		if err := w.publisher.PublishRetry(ctx, task, next, delay); err != nil {
			// The delayed copy could not be written; let the broker
			// redeliver the original instead of losing the task.
			zlog.Logger.Error().Err(err).
				Str("notification_id", task.NotificationID).
				Msg("failed to publish retry, requeueing")
			w.requeue(d)
			return
		}

		zlog.Logger.Warn().
			Str("correlation_id", task.CorrelationID).
			Str("notification_id", task.NotificationID).
			Int("retry", next).
			Dur("delay", delay).
			Str("reason", cause).
			Msg("transient failure, retry scheduled")
		w.ack(d)
		return
	}

	w.ledger.SetBestEffort(ctx, task.NotificationID, model.StatusFailed,
		fmt.Sprintf("max retries reached: %s", cause))

	zlog.Logger.Error().
		Str("correlation_id", task.CorrelationID).
		Str("notification_id", task.NotificationID).
		Int("max_attempts", w.delivery.MaxAttempts).
		Msg("max retries reached, moving to failed queue")
	w.nack(d)
}

// backoff returns min(base * 2^retryCount, maxDelay).
func backoff(retryCount int, base, maxDelay time.Duration) time.Duration {
	delay := base
	for i := 0; i < retryCount; i++ {
		delay *= 2
		if delay >= maxDelay {
			return maxDelay
		}
	}

	if delay > maxDelay {
		return maxDelay
	}

	return delay
}

func validateContact(task model.NotificationTask) error {
	switch task.NotificationType {
	case model.TypeEmail:
		if task.UserContact.Email == "" {
			return permanentf("recipient email address is missing")
		}
	case model.TypePush:
		if task.UserContact.PushToken == "" {
			return permanentf("device token is null or empty")
		}
	}

	return nil
}

func (w *Worker) ack(d amqp.Delivery) {
	if err := d.Ack(false); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to ack delivery")
	}
}

func (w *Worker) nack(d amqp.Delivery) {
	if err := d.Nack(false, false); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to nack delivery")
	}
}

func (w *Worker) requeue(d amqp.Delivery) {
	if err := d.Nack(false, true); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to requeue delivery")
	}
}
