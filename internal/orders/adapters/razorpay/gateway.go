package razorpay

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/mveljko/paybridge/internal/orders/ports"
)

// Gateway opens provider orders through the Razorpay Orders API.
type Gateway struct {
	client *razorpay.Client
}

// NewGateway constructs a Gateway with API credentials.
func NewGateway(keyID, keySecret string) *Gateway {
	return &Gateway{client: razorpay.NewClient(keyID, keySecret)}
}

// OpenOrder creates a provider-side order for the amount. Amount is already
// in the currency's minor unit; no conversion happens here. The receipt is
// forwarded so the provider can collapse duplicate creation attempts.
func (g *Gateway) OpenOrder(ctx context.Context, amount int64, currency, receipt string) (*ports.ProviderOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, &ports.GatewayError{Err: err}
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, &ports.GatewayError{Err: fmt.Errorf("order response missing id")}
	}

	status, _ := body["status"].(string)

	return &ports.ProviderOrder{ID: id, Status: status}, nil
}
