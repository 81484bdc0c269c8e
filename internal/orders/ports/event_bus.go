package ports

import "context"

// EventBus defines the contract for publishing order lifecycle events.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, orderID string) error
	PublishPaymentVerified(ctx context.Context, orderID, providerPaymentID string) error
	PublishPaymentRejected(ctx context.Context, providerOrderID, reason string) error
}
