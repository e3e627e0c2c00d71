package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	amqp "github.com/streadway/amqp"
)

// publisher is the part of *amqp.Channel the notifier needs.
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPNotifier publishes every notification as a persistent JSON message on a
// durable queue through the default exchange.
type AMQPNotifier struct {
	conn    *amqp.Connection
	channel publisher
	queue   string
	now     func() time.Time

	mu sync.Mutex
}

func NewAMQPNotifier(url, queue string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	n := newAMQPNotifier(ch, queue)
	n.conn = conn
	return n, nil
}

func newAMQPNotifier(ch publisher, queue string) *AMQPNotifier {
	return &AMQPNotifier{
		channel: ch,
		queue:   queue,
		now:     time.Now,
	}
}

func (n *AMQPNotifier) Notify(_ context.Context, note ports.Notification) (kernel.UUID, error) {
	id := kernel.NewUUID()
	sentAt := n.now()
	body, err := newMessage(id, note, sentAt).encode()
	if err != nil {
		return kernel.UUID{}, err
	}

	// amqp channels are not safe for concurrent publishing.
	n.mu.Lock()
	defer n.mu.Unlock()

	err = n.channel.Publish("", n.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    id.String(),
		Timestamp:    sentAt,
		Body:         body,
	})
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("failed to publish notification: %w", err)
	}
	return id, nil
}

func (n *AMQPNotifier) Close() error {
	var errList []error
	if n.channel != nil {
		if err := n.channel.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if n.conn != nil {
		if err := n.conn.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errList...)
}
