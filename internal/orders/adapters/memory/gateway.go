package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mveljko/paybridge/internal/orders/ports"
)

// Gateway is an in-memory payment gateway that hands out sequential provider
// order ids. Useful for local development without provider credentials.
type Gateway struct {
	mu   sync.Mutex
	next int
}

// NewGateway constructs a new in-memory gateway.
func NewGateway() *Gateway {
	return &Gateway{}
}

// OpenOrder returns a fake provider order for the amount.
func (g *Gateway) OpenOrder(_ context.Context, amount int64, currency, receipt string) (*ports.ProviderOrder, error) {
	if amount <= 0 {
		return nil, &ports.GatewayError{Err: fmt.Errorf("amount must be positive, got %d", amount)}
	}
	if currency == "" {
		return nil, &ports.GatewayError{Err: fmt.Errorf("currency is required")}
	}

	g.mu.Lock()
	g.next++
	id := fmt.Sprintf("order_local_%06d", g.next)
	g.mu.Unlock()

	return &ports.ProviderOrder{ID: id, Status: "created"}, nil
}
