// Package kafka publishes order notification intents to a Kafka topic.
// Delivery to people (email, chat) is done by consumers of that topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/pkg/clock"

	"github.com/segmentio/kafka-go"
)

const (
	envelopeVersion = 1
	producerName    = "eventrent-core"
)

// Envelope is the message value written for every notification.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id"`
	Payload       json.RawMessage `json:"payload"`
}

// NotificationPayload is the payload of every notification event.
type NotificationPayload struct {
	OrderID string `json:"order_id"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NotificationDispatcher writes one message per notification, keyed by order
// id so every event of an order lands on the same partition.
type NotificationDispatcher struct {
	writer messageWriter
	clock  clock.Clock
}

// NewNotificationDispatcher creates a dispatcher writing to topic.
//
// Parameters:
//   - brokers: bootstrap addresses, such as "localhost:9092"
//   - topic: the notification topic, created on first write when missing
//   - clk: stamps OccurredAt on each envelope
//
// Writes wait for every in-sync replica and time out after five seconds.
func NewNotificationDispatcher(brokers []string, topic string, clk clock.Clock) *NotificationDispatcher {
	return newNotificationDispatcher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}, clk)
}

func newNotificationDispatcher(writer messageWriter, clk clock.Clock) *NotificationDispatcher {
	return &NotificationDispatcher{writer: writer, clock: clk}
}

// Dispatch writes one envelope for n. The order id is both the message key and
// the correlation id.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, n order.Notification) error {
	if err := n.OrderID.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(NotificationPayload{OrderID: n.OrderID.String()})
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", n.Type, err)
	}
	occurredAt := d.clock.Now()
	value, err := json.Marshal(Envelope{
		EventID:       kernel.NewUUID().String(),
		EventType:     string(n.Type),
		EventVersion:  envelopeVersion,
		OccurredAt:    occurredAt,
		Producer:      producerName,
		CorrelationID: n.OrderID.String(),
		Payload:       payload,
	})
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", n.Type, err)
	}

	err = d.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.OrderID.String()),
		Value: value,
		Time:  occurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(n.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s for order %s: %w", n.Type, n.OrderID, err)
	}
	return nil
}

// Close flushes pending writes.
func (d *NotificationDispatcher) Close() error {
	return d.writer.Close()
}
