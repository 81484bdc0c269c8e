package ports

import (
	"context"
	"errors"

	"github.com/mveljko/paybridge/internal/orders/domain"
)

// OrderRepository exposes persistence operations required by the application layer.
type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByProviderOrderID(ctx context.Context, providerOrderID string) (*domain.Order, error)
	// MarkPaid transitions an order to paid and records the payment
	// identifiers in a single update.
	MarkPaid(ctx context.Context, id, providerPaymentID, providerSignature string) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Order, error)
}

// ListFilter narrows list queries by payment status and pagination.
type ListFilter struct {
	Status   *domain.PaymentStatus
	UserID   string
	Page     int
	PageSize int
}

var (
	// ErrNotFound is returned when the requested order does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrPaymentConflict is returned when an order that is already paid is
	// asked to record a different payment.
	ErrPaymentConflict = errors.New("order already paid with a different payment")
)

// StoreError marks a storage failure so callers can distinguish it
// from validation problems. The wrapped error keeps the underlying cause.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "store: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
