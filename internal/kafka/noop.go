package kafka

import (
	"context"
	"log/slog"
)

// NoopEventBus logs events without sending them to Kafka. Used when no
// brokers are configured.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishOrderCreated(_ context.Context, orderID string) error {
	slog.Debug("event::order_created", "order_id", orderID)
	return nil
}

func (n *NoopEventBus) PublishPaymentVerified(_ context.Context, orderID, providerPaymentID string) error {
	slog.Debug("event::payment_verified", "order_id", orderID, "provider_payment_id", providerPaymentID)
	return nil
}

func (n *NoopEventBus) PublishPaymentRejected(_ context.Context, providerOrderID, reason string) error {
	slog.Debug("event::payment_rejected", "provider_order_id", providerOrderID, "reason", reason)
	return nil
}
