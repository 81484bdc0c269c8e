package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PaymentStatus captures the payment lifecycle of an order.
type PaymentStatus string

const (
	StatusCreated PaymentStatus = "created"
	StatusPaid    PaymentStatus = "paid"
)

// ProviderRazorpay identifies the payment gateway backing provider orders.
const ProviderRazorpay = "razorpay"

// LineItem is a single priced cart line. Unit price and line total come from
// the catalog at order time; the name/category snapshot preserves what was
// sold even if the catalog entry changes later.
type LineItem struct {
	ProductID   string `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	LineTotal   int64  `json:"line_total"`
	ProductName string `json:"product_name"`
	Category    string `json:"category,omitempty"`
}

// Order represents a purchase backed by a provider-side order.
// Monetary amounts are integers in the currency's minor unit.
type Order struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	LineItems         []LineItem      `json:"line_items"`
	Subtotal          int64           `json:"subtotal"`
	TotalAmount       int64           `json:"total_amount"`
	Currency          string          `json:"currency"`
	ShippingAddress   json.RawMessage `json:"shipping_address,omitempty"`
	PaymentStatus     PaymentStatus   `json:"payment_status"`
	PaymentProvider   string          `json:"payment_provider"`
	ProviderOrderID   string          `json:"provider_order_id"`
	ProviderPaymentID string          `json:"provider_payment_id,omitempty"`
	ProviderSignature string          `json:"provider_signature,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Validate ensures the order adheres to business constraints.
func (o Order) Validate() error {
	if strings.TrimSpace(o.UserID) == "" {
		return errors.New("user_id is required")
	}
	if len(o.LineItems) == 0 {
		return errors.New("line_items must not be empty")
	}
	if strings.TrimSpace(o.Currency) == "" {
		return errors.New("currency is required")
	}
	if strings.TrimSpace(o.ProviderOrderID) == "" {
		return errors.New("provider_order_id is required")
	}

	var sum int64
	for _, item := range o.LineItems {
		if strings.TrimSpace(item.ProductID) == "" {
			return errors.New("line item product_id is required")
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("line item %s: quantity must be positive", item.ProductID)
		}
		if item.LineTotal != item.UnitPrice*item.Quantity {
			return fmt.Errorf("line item %s: line_total does not match unit_price * quantity", item.ProductID)
		}
		sum += item.LineTotal
	}

	if o.TotalAmount <= 0 {
		return errors.New("total_amount must be positive")
	}
	if o.TotalAmount != sum {
		return errors.New("total_amount does not match sum of line totals")
	}

	return nil
}

// IsPaid reports whether payment has been confirmed for the order.
func (o Order) IsPaid() bool {
	return o.PaymentStatus == StatusPaid
}
