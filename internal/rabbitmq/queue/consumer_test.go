package queue

import (
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConsumeChannel struct {
	qosPrefetch int
	queue       string
	autoAck     bool
	qosErr      error
	consumeErr  error
}

func (f *fakeConsumeChannel) Qos(prefetchCount, prefetchSize int, global bool) error {
	f.qosPrefetch = prefetchCount
	return f.qosErr
}

func (f *fakeConsumeChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	f.queue = queue
	f.autoAck = autoAck
	if f.consumeErr != nil {
		return nil, f.consumeErr
	}
	ch := make(chan amqp.Delivery)
	close(ch)
	return ch, nil
}

func TestConsumer_Deliveries(t *testing.T) {
	ch := &fakeConsumeChannel{}
	c := NewConsumer(ch, "notifications.email", 10)

	deliveries, err := c.Deliveries()
	require.NoError(t, err)
	assert.NotNil(t, deliveries)

	assert.Equal(t, 10, ch.qosPrefetch)
	assert.Equal(t, "notifications.email", ch.queue)
	// Manual acknowledgment is the whole point.
	assert.False(t, ch.autoAck)
}

func TestConsumer_QosError(t *testing.T) {
	ch := &fakeConsumeChannel{qosErr: errors.New("channel closed")}
	c := NewConsumer(ch, "notifications.email", 10)

	_, err := c.Deliveries()
	assert.Error(t, err)
}

func TestConsumer_ConsumeError(t *testing.T) {
	ch := &fakeConsumeChannel{consumeErr: errors.New("channel closed")}
	c := NewConsumer(ch, "notifications.email", 10)

	_, err := c.Deliveries()
	assert.Error(t, err)
}
