package ports

import "context"

// ProviderOrder is the gateway-side order opened for a computed amount.
type ProviderOrder struct {
	ID     string
	Status string
}

// PaymentGateway opens provider orders. Amount is in the currency's minor
// unit; receipt is an idempotency token unique per creation attempt so that
// provider-side duplicate detection can collapse retries.
type PaymentGateway interface {
	OpenOrder(ctx context.Context, amount int64, currency, receipt string) (*ProviderOrder, error)
}

// GatewayError marks a payment-provider failure. The creation flow treats it
// as terminal: no store write happens without a provider order.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return "payment gateway: " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
