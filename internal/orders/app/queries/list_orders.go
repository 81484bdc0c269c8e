package queries

import (
	"context"
	"fmt"

	"github.com/mveljko/paybridge/internal/orders/domain"
	"github.com/mveljko/paybridge/internal/orders/ports"
)

// ListOrdersQuery narrows a listing by payment status, user, and pagination.
type ListOrdersQuery struct {
	Status   *domain.PaymentStatus
	UserID   string
	Page     int
	PageSize int
}

// ListOrdersQueryHandler executes ListOrdersQuery.
type ListOrdersQueryHandler struct {
	repo ports.OrderRepository
}

// NewListOrdersQueryHandler constructs a ListOrdersQueryHandler.
func NewListOrdersQueryHandler(repo ports.OrderRepository) *ListOrdersQueryHandler {
	return &ListOrdersQueryHandler{repo: repo}
}

// Handle executes the query.
func (h *ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]domain.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.repo.List(ctx, ports.ListFilter{
		Status:   query.Status,
		UserID:   query.UserID,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
}

// Validate ensures the query has valid parameters.
func (q ListOrdersQuery) Validate() error {
	if q.Status != nil {
		switch *q.Status {
		case domain.StatusCreated, domain.StatusPaid:
		default:
			return fmt.Errorf("unknown payment status %q", *q.Status)
		}
	}
	if q.Page < 0 || q.PageSize < 0 {
		return fmt.Errorf("page and page_size must not be negative")
	}
	return nil
}
