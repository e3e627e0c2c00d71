package notify

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/IBM/sarama"
)

// KafkaNotifier sends notifications through a synchronous producer, keyed by user
// id so one user's notifications stay ordered on one partition.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

func NewKafkaNotifier(brokers []string, topic string) (*KafkaNotifier, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return newKafkaNotifier(producer, topic), nil
}

func newKafkaNotifier(producer sarama.SyncProducer, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		topic:    topic,
		now:      time.Now,
	}
}

func (n *KafkaNotifier) Notify(_ context.Context, note ports.Notification) (kernel.UUID, error) {
	id := kernel.NewUUID()
	sentAt := n.now()
	body, err := newMessage(id, note, sentAt).encode()
	if err != nil {
		return kernel.UUID{}, err
	}

	_, _, err = n.producer.SendMessage(&sarama.ProducerMessage{
		Topic:     n.topic,
		Key:       sarama.StringEncoder(note.UserID.String()),
		Value:     sarama.ByteEncoder(body),
		Timestamp: sentAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("notification-id"), Value: []byte(id.String())},
		},
	})
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("failed to send notification: %w", err)
	}
	return id, nil
}

func (n *KafkaNotifier) Close() error {
	if err := n.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}
