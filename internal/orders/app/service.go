package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/mveljko/paybridge/internal/orders/app/commands"
	"github.com/mveljko/paybridge/internal/orders/app/queries"
	"github.com/mveljko/paybridge/internal/orders/domain"
	"github.com/mveljko/paybridge/internal/orders/metrics"
	"github.com/mveljko/paybridge/internal/orders/ports"
	"github.com/mveljko/paybridge/internal/orders/pricing"
)

// Config carries the order-service settings fixed at construction time.
type Config struct {
	// SharedSecret keys the HMAC over payment confirmations.
	SharedSecret string
	// DefaultCurrency applies when a create request omits one.
	DefaultCurrency string
}

// Service bundles use cases for handling payment orders via the API.
type Service struct {
	repo                 ports.OrderRepository
	idemStore            ports.IdempotencyStore
	defaultCurrency      string
	createOrderHandler   commands.CreateOrderHandler
	verifyPaymentHandler commands.VerifyPaymentHandler
	getOrderHandler      *queries.GetOrderQueryHandler
	listOrdersHandler    *queries.ListOrdersQueryHandler
}

// NewService wires required dependencies.
func NewService(
	cfg Config,
	catalog ports.Catalog,
	gateway ports.PaymentGateway,
	repo ports.OrderRepository,
	events ports.EventBus,
	idem ports.IdempotencyStore,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	resolver := pricing.NewResolver(catalog)

	createHandler := commands.NewCreateOrderCommandHandler(resolver, gateway, repo, events)
	verifyHandler := commands.NewVerifyPaymentCommandHandler(repo, events, cfg.SharedSecret)

	return &Service{
		repo:                 repo,
		idemStore:            idem,
		defaultCurrency:      cfg.DefaultCurrency,
		createOrderHandler:   commands.NewObservableCreateOrderHandler(createHandler, logger, metrics),
		verifyPaymentHandler: commands.NewObservableVerifyPaymentHandler(verifyHandler, logger, metrics),
		getOrderHandler:      queries.NewGetOrderQueryHandler(repo),
		listOrdersHandler:    queries.NewListOrdersQueryHandler(repo),
	}
}

// CreateOrderInput captures payload for creating an order. Any monetary
// fields a client attaches are absent here on purpose: totals are always
// recomputed from the catalog.
type CreateOrderInput struct {
	UserID          string             `json:"userId"`
	Items           []pricing.CartItem `json:"items"`
	ShippingAddress json.RawMessage    `json:"shippingAddress,omitempty"`
	Currency        string             `json:"currency,omitempty"`
}

// VerifyPaymentInput captures a payment confirmation callback.
type VerifyPaymentInput struct {
	OrderID           string `json:"orderId,omitempty"`
	ProviderOrderID   string `json:"providerOrderId"`
	ProviderPaymentID string `json:"providerPaymentId"`
	ProviderSignature string `json:"providerSignature"`
}

// CreateOrder orchestrates pricing, gateway-order creation, and persistence.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (*commands.CreateOrderResult, error) {
	currency := strings.TrimSpace(input.Currency)
	if currency == "" {
		currency = s.defaultCurrency
	}

	cmd := commands.CreateOrderCommand{
		UserID:          input.UserID,
		Items:           input.Items,
		ShippingAddress: input.ShippingAddress,
		Currency:        currency,
	}
	return s.createOrderHandler.Handle(ctx, cmd)
}

// VerifyPayment authenticates a payment confirmation and marks the order paid.
func (s *Service) VerifyPayment(ctx context.Context, input VerifyPaymentInput) (*domain.Order, error) {
	cmd := commands.VerifyPaymentCommand{
		OrderID:           input.OrderID,
		ProviderOrderID:   input.ProviderOrderID,
		ProviderPaymentID: input.ProviderPaymentID,
		ProviderSignature: input.ProviderSignature,
	}
	return s.verifyPaymentHandler.Handle(ctx, cmd)
}

// GetOrder retrieves an order by ID.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.getOrderHandler.Handle(ctx, queries.GetOrderQuery{OrderID: id})
}

// ListOrders returns orders using a filter.
func (s *Service) ListOrders(ctx context.Context, query queries.ListOrdersQuery) ([]domain.Order, error) {
	return s.listOrdersHandler.Handle(ctx, query)
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}
