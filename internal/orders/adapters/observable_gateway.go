package adapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mveljko/paybridge/internal/orders/ports"
	"github.com/mveljko/paybridge/internal/telemetry"
)

type ObservableGateway struct {
	gateway ports.PaymentGateway
}

func NewObservableGateway(gateway ports.PaymentGateway) *ObservableGateway {
	return &ObservableGateway{gateway: gateway}
}

func (g *ObservableGateway) OpenOrder(ctx context.Context, amount int64, currency, receipt string) (*ports.ProviderOrder, error) {
	ctx, span := telemetry.StartSpan(ctx, "PaymentGateway.OpenOrder")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("gateway.amount", amount),
		attribute.String("gateway.currency", currency),
	)

	start := time.Now()
	order, err := g.gateway.OpenOrder(ctx, amount, currency, receipt)
	telemetry.AddSpanAttributes(span,
		attribute.Float64("gateway.duration_seconds", time.Since(start).Seconds()),
	)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.String("gateway.provider_order_id", order.ID))
	telemetry.SetSpanSuccess(span)
	return order, nil
}
