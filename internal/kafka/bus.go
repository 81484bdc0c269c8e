package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event is the wire shape published for order lifecycle changes.
type Event struct {
	Type              string    `json:"type"`
	OrderID           string    `json:"order_id,omitempty"`
	ProviderOrderID   string    `json:"provider_order_id,omitempty"`
	ProviderPaymentID string    `json:"provider_payment_id,omitempty"`
	Reason            string    `json:"reason,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
}

const (
	EventOrderCreated    = "order_created"
	EventPaymentVerified = "payment_verified"
	EventPaymentRejected = "payment_rejected"
)

// EventBus publishes order lifecycle events to a Kafka topic, keyed by the
// order id so events for one order stay in partition order.
type EventBus struct {
	writer  *kafka.Writer
	metrics *Metrics
}

// NewEventBus constructs an EventBus writing to the given brokers and topic.
func NewEventBus(brokers []string, topic string, metrics *Metrics) *EventBus {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &EventBus{writer: writer, metrics: metrics}
}

// Close flushes and closes the underlying writer.
func (b *EventBus) Close() error {
	return b.writer.Close()
}

func (b *EventBus) PublishOrderCreated(ctx context.Context, orderID string) error {
	return b.publish(ctx, orderID, Event{
		Type:       EventOrderCreated,
		OrderID:    orderID,
		OccurredAt: time.Now().UTC(),
	})
}

func (b *EventBus) PublishPaymentVerified(ctx context.Context, orderID, providerPaymentID string) error {
	return b.publish(ctx, orderID, Event{
		Type:              EventPaymentVerified,
		OrderID:           orderID,
		ProviderPaymentID: providerPaymentID,
		OccurredAt:        time.Now().UTC(),
	})
}

func (b *EventBus) PublishPaymentRejected(ctx context.Context, providerOrderID, reason string) error {
	return b.publish(ctx, providerOrderID, Event{
		Type:            EventPaymentRejected,
		ProviderOrderID: providerOrderID,
		Reason:          reason,
		OccurredAt:      time.Now().UTC(),
	})
}

func (b *EventBus) publish(ctx context.Context, key string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	start := time.Now()
	err = b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	})

	if b.metrics != nil {
		b.metrics.RecordPublish(ctx, b.writer.Topic, time.Since(start).Seconds(), err == nil)
	}

	if err != nil {
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}
	return nil
}
