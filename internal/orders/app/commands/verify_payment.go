package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/mveljko/paybridge/internal/orders/domain"
	"github.com/mveljko/paybridge/internal/orders/ports"
)

var (
	// ErrInvalidSignature is returned when the supplied confirmation does
	// not carry a valid HMAC for its identifiers.
	ErrInvalidSignature = errors.New("invalid signature")
)

type VerifyPaymentCommand struct {
	OrderID           string
	ProviderOrderID   string
	ProviderPaymentID string
	ProviderSignature string
}

func (c VerifyPaymentCommand) Validate() error {
	if strings.TrimSpace(c.ProviderOrderID) == "" {
		return errors.New("provider_order_id is required")
	}
	if strings.TrimSpace(c.ProviderPaymentID) == "" {
		return errors.New("provider_payment_id is required")
	}
	if strings.TrimSpace(c.ProviderSignature) == "" {
		return errors.New("provider_signature is required")
	}
	return nil
}

type VerifyPaymentHandler interface {
	Handle(ctx context.Context, cmd VerifyPaymentCommand) (*domain.Order, error)
}

type VerifyPaymentCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
	secret string
}

func NewVerifyPaymentCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
	secret string,
) *VerifyPaymentCommandHandler {
	return &VerifyPaymentCommandHandler{
		repo:   repo,
		events: events,
		secret: secret,
	}
}

// Handle authenticates a payment confirmation and marks the order paid.
// The signature check runs before any order lookup or mutation; a forged
// confirmation never touches the store. Re-delivery of a confirmation for
// an already paid order is a success no-op.
func (h *VerifyPaymentCommandHandler) Handle(ctx context.Context, cmd VerifyPaymentCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !domain.VerifyPaymentSignature(h.secret, cmd.ProviderOrderID, cmd.ProviderPaymentID, cmd.ProviderSignature) {
		_ = h.events.PublishPaymentRejected(ctx, cmd.ProviderOrderID, "invalid signature")
		return nil, ErrInvalidSignature
	}

	order, err := h.resolveOrder(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if order.IsPaid() {
		if order.ProviderPaymentID == cmd.ProviderPaymentID {
			return order, nil
		}
		return nil, ports.ErrPaymentConflict
	}

	updated, err := h.repo.MarkPaid(ctx, order.ID, cmd.ProviderPaymentID, cmd.ProviderSignature)
	if err != nil {
		return nil, err
	}

	// The payment is confirmed at this point; event delivery is best effort.
	_ = h.events.PublishPaymentVerified(ctx, updated.ID, cmd.ProviderPaymentID)

	return updated, nil
}

func (h *VerifyPaymentCommandHandler) resolveOrder(ctx context.Context, cmd VerifyPaymentCommand) (*domain.Order, error) {
	if strings.TrimSpace(cmd.OrderID) != "" {
		return h.repo.GetByID(ctx, cmd.OrderID)
	}
	return h.repo.GetByProviderOrderID(ctx, cmd.ProviderOrderID)
}
