package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// consumeChannel is the slice of the AMQP channel the consumer needs.
type consumeChannel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Consumer delivers messages from one queue with manual acknowledgment.
//
// The prefetch window bounds unacknowledged in-flight deliveries per
// consumer; a stalled worker stops receiving new tasks instead of
// buffering them.
type Consumer struct {
	ch       consumeChannel
	queue    string
	prefetch int
}

// NewConsumer creates a Consumer for the given queue.
func NewConsumer(ch consumeChannel, queueName string, prefetch int) *Consumer {
	return &Consumer{ch: ch, queue: queueName, prefetch: prefetch}
}

// Deliveries opens the consume stream. Messages must be acked or nacked
// explicitly; unacknowledged deliveries are redelivered if the consumer
// disconnects.
func (c *Consumer) Deliveries() (<-chan amqp.Delivery, error) {
	if err := c.ch.Qos(c.prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("set qos on %s: %w", c.queue, err)
	}

	deliveries, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", c.queue, err)
	}

	return deliveries, nil
}
