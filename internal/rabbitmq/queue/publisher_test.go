package queue

import (
	"context"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	"github.com/DannylSyph3r/notification-system/internal/config"
	"github.com/DannylSyph3r/notification-system/internal/model"
)

type capturingChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	calls    int
}

func (c *capturingChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	c.calls++
	c.exchange = exchange
	c.key = key
	c.msg = msg
	return c.err
}

func testPublisher(ch amqpChannel) *Publisher {
	top := &Topology{Exchange: "notification-exchange", DelayExchange: "notification-exchange.delay"}
	cfg := config.RabbitMQ{
		EmailRoutingKey: "notification.email",
		PushRoutingKey:  "notification.push",
	}
	return NewPublisher(ch, top, cfg, retry.Strategy{Attempts: 1})
}

func testTask() model.NotificationTask {
	return model.NotificationTask{
		NotificationID:   "n-1",
		RequestID:        "req-1",
		UserID:           "u-1",
		NotificationType: model.TypePush,
		TemplateCode:     "welcome",
		CorrelationID:    "corr-1",
	}
}

func TestPublisher_PublishTask(t *testing.T) {
	ch := &capturingChannel{}
	p := testPublisher(ch)

	err := p.PublishTask(context.Background(), testTask())
	require.NoError(t, err)

	assert.Equal(t, "notification-exchange", ch.exchange)
	assert.Equal(t, "notification.push", ch.key)
	assert.Equal(t, uint8(amqp.Persistent), ch.msg.DeliveryMode)
	assert.Equal(t, "corr-1", ch.msg.CorrelationId)
	assert.Equal(t, int32(0), ch.msg.Headers["x-retry-count"])
	assert.Equal(t, "req-1", ch.msg.Headers["request_id"])
	assert.Empty(t, ch.msg.Expiration)

	task, err := DecodeTask(ch.msg.Body)
	require.NoError(t, err)
	assert.Equal(t, "n-1", task.NotificationID)
	assert.Equal(t, model.TypePush, task.NotificationType)
}

func TestPublisher_PublishRetry(t *testing.T) {
	ch := &capturingChannel{}
	p := testPublisher(ch)

	err := p.PublishRetry(context.Background(), testTask(), 2, 8*time.Second)
	require.NoError(t, err)

	// Retries go through the delay exchange under the original routing
	// key so the expired message re-enters its own work queue.
	assert.Equal(t, "notification-exchange.delay", ch.exchange)
	assert.Equal(t, "notification.push", ch.key)
	assert.Equal(t, int32(2), ch.msg.Headers["x-retry-count"])
	assert.Equal(t, "8000", ch.msg.Expiration)
}

func TestPublisher_RoutingKey(t *testing.T) {
	p := testPublisher(&capturingChannel{})

	key, err := p.RoutingKey(model.TypeEmail)
	require.NoError(t, err)
	assert.Equal(t, "notification.email", key)

	key, err = p.RoutingKey(model.TypePush)
	require.NoError(t, err)
	assert.Equal(t, "notification.push", key)

	_, err = p.RoutingKey("SMS")
	assert.Error(t, err)
}

func TestPublisher_UnknownTypeNotPublished(t *testing.T) {
	ch := &capturingChannel{}
	p := testPublisher(ch)

	task := testTask()
	task.NotificationType = "SMS"

	err := p.PublishTask(context.Background(), task)
	assert.Error(t, err)
	assert.Equal(t, 0, ch.calls)
}

func TestRetryCount(t *testing.T) {
	tests := []struct {
		name    string
		headers amqp.Table
		want    int
	}{
		{"absent", nil, 0},
		{"int32", amqp.Table{"x-retry-count": int32(2)}, 2},
		{"int64", amqp.Table{"x-retry-count": int64(3)}, 3},
		{"int", amqp.Table{"x-retry-count": 1}, 1},
		{"unexpected type", amqp.Table{"x-retry-count": "2"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := amqp.Delivery{Headers: tt.headers}
			assert.Equal(t, tt.want, RetryCount(d))
		})
	}
}

func TestDecodeTask_Malformed(t *testing.T) {
	_, err := DecodeTask([]byte("not json"))
	assert.Error(t, err)
}
