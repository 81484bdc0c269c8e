package domain_test

import (
	"testing"
	"time"

	"github.com/mveljko/paybridge/internal/orders/domain"
)

func validOrder() domain.Order {
	return domain.Order{
		ID:     "ord_test",
		UserID: "user-1",
		LineItems: []domain.LineItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: 500, LineTotal: 1000, ProductName: "Widget"},
		},
		Subtotal:        1000,
		TotalAmount:     1000,
		Currency:        "INR",
		PaymentStatus:   domain.StatusCreated,
		PaymentProvider: domain.ProviderRazorpay,
		ProviderOrderID: "order_abc123",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func TestOrderValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Order)
		wantErr bool
	}{
		{
			name:    "valid order",
			mutate:  func(o *domain.Order) {},
			wantErr: false,
		},
		{
			name:    "missing user id",
			mutate:  func(o *domain.Order) { o.UserID = "" },
			wantErr: true,
		},
		{
			name:    "whitespace only user id",
			mutate:  func(o *domain.Order) { o.UserID = "   " },
			wantErr: true,
		},
		{
			name:    "no line items",
			mutate:  func(o *domain.Order) { o.LineItems = nil },
			wantErr: true,
		},
		{
			name:    "missing currency",
			mutate:  func(o *domain.Order) { o.Currency = "" },
			wantErr: true,
		},
		{
			name:    "missing provider order id",
			mutate:  func(o *domain.Order) { o.ProviderOrderID = "" },
			wantErr: true,
		},
		{
			name:    "line item missing product id",
			mutate:  func(o *domain.Order) { o.LineItems[0].ProductID = "" },
			wantErr: true,
		},
		{
			name:    "zero quantity",
			mutate:  func(o *domain.Order) { o.LineItems[0].Quantity = 0 },
			wantErr: true,
		},
		{
			name:    "negative quantity",
			mutate:  func(o *domain.Order) { o.LineItems[0].Quantity = -1 },
			wantErr: true,
		},
		{
			name: "line total does not match unit price times quantity",
			mutate: func(o *domain.Order) {
				o.LineItems[0].LineTotal = 999
				o.TotalAmount = 999
			},
			wantErr: true,
		},
		{
			name: "zero total amount",
			mutate: func(o *domain.Order) {
				o.LineItems[0].UnitPrice = 0
				o.LineItems[0].LineTotal = 0
				o.TotalAmount = 0
			},
			wantErr: true,
		},
		{
			name:    "total amount does not match sum of line totals",
			mutate:  func(o *domain.Order) { o.TotalAmount = 2000 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(&order)
			err := order.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Order.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOrderIsPaid(t *testing.T) {
	tests := []struct {
		name   string
		status domain.PaymentStatus
		want   bool
	}{
		{"paid order", domain.StatusPaid, true},
		{"created order", domain.StatusCreated, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := domain.Order{PaymentStatus: tt.status}
			if got := order.IsPaid(); got != tt.want {
				t.Errorf("Order.IsPaid() = %v, want %v", got, tt.want)
			}
		})
	}
}
