package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mveljko/paybridge/internal/orders/app/queries"
	"github.com/mveljko/paybridge/internal/orders/domain"
	"github.com/mveljko/paybridge/internal/orders/ports"
)

type mockRepository struct {
	getByIDFn func(ctx context.Context, id string) (*domain.Order, error)
	listFn    func(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error)
}

func (m *mockRepository) Create(ctx context.Context, order domain.Order) error {
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}

func (m *mockRepository) GetByProviderOrderID(ctx context.Context, providerOrderID string) (*domain.Order, error) {
	return nil, ports.ErrNotFound
}

func (m *mockRepository) MarkPaid(ctx context.Context, id, providerPaymentID, providerSignature string) (*domain.Order, error) {
	return nil, ports.ErrNotFound
}

func (m *mockRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func TestGetOrder(t *testing.T) {
	t.Run("returns order when found", func(t *testing.T) {
		want := &domain.Order{ID: "ord-1", UserID: "user-1"}
		repo := &mockRepository{
			getByIDFn: func(_ context.Context, id string) (*domain.Order, error) {
				if id != "ord-1" {
					return nil, ports.ErrNotFound
				}
				return want, nil
			},
		}
		handler := queries.NewGetOrderQueryHandler(repo)

		got, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: "ord-1"})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if got.ID != want.ID {
			t.Errorf("expected order %s, got %s", want.ID, got.ID)
		}
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		handler := queries.NewGetOrderQueryHandler(&mockRepository{})

		if _, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: "nope"}); !errors.Is(err, ports.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got: %v", err)
		}
	})

	t.Run("rejects empty order id", func(t *testing.T) {
		handler := queries.NewGetOrderQueryHandler(&mockRepository{})

		if _, err := handler.Handle(context.Background(), queries.GetOrderQuery{}); err == nil {
			t.Fatal("expected validation error, got nil")
		}
	})
}
