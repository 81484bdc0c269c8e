package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mveljko/paybridge/internal/orders/domain"
	"github.com/mveljko/paybridge/internal/orders/ports"
	"github.com/mveljko/paybridge/internal/orders/pricing"
)

type CreateOrderCommand struct {
	UserID          string
	Items           []pricing.CartItem
	ShippingAddress json.RawMessage
	Currency        string
}

func (c CreateOrderCommand) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user_id is required")
	}
	if len(c.Items) == 0 {
		return errors.New("items must not be empty")
	}
	if strings.TrimSpace(c.Currency) == "" {
		return errors.New("currency is required")
	}
	return nil
}

// CreateOrderResult reports the identifiers a client needs to complete and
// later verify the payment.
type CreateOrderResult struct {
	Order           *domain.Order
	ProviderOrderID string
	Amount          int64
	Currency        string
}

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (*CreateOrderResult, error)
}

// OrphanedProviderOrderError is returned when the provider order was opened
// but the store write failed. It names the provider order id and amount so
// an operator can reconcile the gateway side manually.
type OrphanedProviderOrderError struct {
	ProviderOrderID string
	Amount          int64
	Err             error
}

func (e *OrphanedProviderOrderError) Error() string {
	return fmt.Sprintf("order persist failed after provider order %s (amount %d) was created: %v",
		e.ProviderOrderID, e.Amount, e.Err)
}

func (e *OrphanedProviderOrderError) Unwrap() error {
	return e.Err
}

type CreateOrderCommandHandler struct {
	resolver *pricing.Resolver
	gateway  ports.PaymentGateway
	repo     ports.OrderRepository
	events   ports.EventBus
}

func NewCreateOrderCommandHandler(
	resolver *pricing.Resolver,
	gateway ports.PaymentGateway,
	repo ports.OrderRepository,
	events ports.EventBus,
) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		resolver: resolver,
		gateway:  gateway,
		repo:     repo,
		events:   events,
	}
}

// Handle prices the cart from the catalog, opens a provider order for the
// computed total, and persists the order record. Each step only runs after
// the previous one succeeded, so a pricing failure never reaches the gateway
// and a gateway failure never reaches the store.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	cart, err := h.resolver.Resolve(ctx, cmd.Items)
	if err != nil {
		return nil, err
	}

	providerOrder, err := h.gateway.OpenOrder(ctx, cart.Total, cmd.Currency, newReceipt())
	if err != nil {
		return nil, err
	}

	orderID, err := generateOrderID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:              orderID,
		UserID:          cmd.UserID,
		LineItems:       cart.LineItems,
		Subtotal:        cart.Total,
		TotalAmount:     cart.Total,
		Currency:        cmd.Currency,
		ShippingAddress: cmd.ShippingAddress,
		PaymentStatus:   domain.StatusCreated,
		PaymentProvider: domain.ProviderRazorpay,
		ProviderOrderID: providerOrder.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := h.repo.Create(ctx, order); err != nil {
		return nil, &OrphanedProviderOrderError{
			ProviderOrderID: providerOrder.ID,
			Amount:          cart.Total,
			Err:             err,
		}
	}

	result := &CreateOrderResult{
		Order:           &order,
		ProviderOrderID: providerOrder.ID,
		Amount:          cart.Total,
		Currency:        cmd.Currency,
	}

	if err := h.events.PublishOrderCreated(ctx, order.ID); err != nil {
		return result, fmt.Errorf("order saved but failed to publish event: %w", err)
	}

	return result, nil
}

// newReceipt returns a provider-side idempotency token unique per attempt.
func newReceipt() string {
	return "rcpt_" + uuid.NewString()
}

func generateOrderID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate order id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
