package commands

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mveljko/paybridge/internal/orders/domain"
	"github.com/mveljko/paybridge/internal/orders/metrics"
	"github.com/mveljko/paybridge/internal/telemetry"
)

type ObservableVerifyPaymentHandler struct {
	handler VerifyPaymentHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableVerifyPaymentHandler(handler VerifyPaymentHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableVerifyPaymentHandler {
	return &ObservableVerifyPaymentHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableVerifyPaymentHandler) Handle(ctx context.Context, cmd VerifyPaymentCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "VerifyPaymentCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordPaymentVerificationDuration(ctx, duration)
		o.metrics.RecordPaymentVerified(ctx, success)
	}()

	o.logger.InfoContext(ctx, "verifying payment",
		"provider_order_id", cmd.ProviderOrderID,
		"provider_payment_id", cmd.ProviderPaymentID,
	)

	order, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.WarnContext(ctx, "payment verification failed",
			"error", err,
			"provider_order_id", cmd.ProviderOrderID,
		)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.String("order.provider_payment_id", order.ProviderPaymentID),
		attribute.String("order.payment_status", string(order.PaymentStatus)),
	)

	o.logger.InfoContext(ctx, "payment verified",
		"order_id", order.ID,
		"provider_payment_id", order.ProviderPaymentID,
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return order, nil
}
