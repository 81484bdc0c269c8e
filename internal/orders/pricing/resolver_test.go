package pricing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mveljko/paybridge/internal/orders/ports"
	"github.com/mveljko/paybridge/internal/orders/pricing"
)

type mockCatalog struct {
	products map[string]*ports.Product
	lookups  []string
}

func (m *mockCatalog) GetProduct(_ context.Context, id string) (*ports.Product, error) {
	m.lookups = append(m.lookups, id)
	product, ok := m.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	return product, nil
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		products: map[string]*ports.Product{
			"p1": {ID: "p1", Name: "Widget", Category: "tools", UnitPrice: 500},
			"p2": {ID: "p2", Name: "Gadget", Category: "tools", UnitPrice: 250},
		},
	}
}

func TestResolverResolve(t *testing.T) {
	t.Run("prices cart from catalog", func(t *testing.T) {
		catalog := newMockCatalog()
		resolver := pricing.NewResolver(catalog)

		cart, err := resolver.Resolve(context.Background(), []pricing.CartItem{
			{ProductID: "p1", Quantity: 2},
		})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}

		if cart.Total != 1000 {
			t.Errorf("Resolve() total = %d, want 1000", cart.Total)
		}
		if len(cart.LineItems) != 1 {
			t.Fatalf("Resolve() line items = %d, want 1", len(cart.LineItems))
		}
		item := cart.LineItems[0]
		if item.UnitPrice != 500 || item.LineTotal != 1000 {
			t.Errorf("line item priced %d/%d, want 500/1000", item.UnitPrice, item.LineTotal)
		}
		if item.ProductName != "Widget" || item.Category != "tools" {
			t.Errorf("line item snapshot = %q/%q, want Widget/tools", item.ProductName, item.Category)
		}
	})

	t.Run("sums multiple items", func(t *testing.T) {
		resolver := pricing.NewResolver(newMockCatalog())

		cart, err := resolver.Resolve(context.Background(), []pricing.CartItem{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p2", Quantity: 4},
		})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if cart.Total != 1500 {
			t.Errorf("Resolve() total = %d, want 1500", cart.Total)
		}
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		resolver := pricing.NewResolver(newMockCatalog())

		if _, err := resolver.Resolve(context.Background(), nil); err == nil {
			t.Error("Resolve() expected error for empty cart")
		}
	})

	t.Run("unknown product names the id", func(t *testing.T) {
		resolver := pricing.NewResolver(newMockCatalog())

		_, err := resolver.Resolve(context.Background(), []pricing.CartItem{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "missing", Quantity: 1},
		})

		var notFound *ports.ProductNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("Resolve() error = %v, want ProductNotFoundError", err)
		}
		if notFound.ProductID != "missing" {
			t.Errorf("ProductNotFoundError.ProductID = %q, want %q", notFound.ProductID, "missing")
		}
		if !errors.Is(err, ports.ErrProductNotFound) {
			t.Error("Resolve() error does not unwrap to ErrProductNotFound")
		}
	})

	t.Run("bad quantity aborts before any lookup", func(t *testing.T) {
		catalog := newMockCatalog()
		resolver := pricing.NewResolver(catalog)

		_, err := resolver.Resolve(context.Background(), []pricing.CartItem{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p2", Quantity: 0},
		})
		if err == nil {
			t.Fatal("Resolve() expected error for zero quantity")
		}
		if len(catalog.lookups) != 0 {
			t.Errorf("catalog consulted %d times before validation finished, want 0", len(catalog.lookups))
		}
	})

	t.Run("blank product id rejected", func(t *testing.T) {
		catalog := newMockCatalog()
		resolver := pricing.NewResolver(catalog)

		_, err := resolver.Resolve(context.Background(), []pricing.CartItem{
			{ProductID: "  ", Quantity: 1},
		})
		if err == nil {
			t.Fatal("Resolve() expected error for blank product id")
		}
		if len(catalog.lookups) != 0 {
			t.Errorf("catalog consulted %d times, want 0", len(catalog.lookups))
		}
	})

	t.Run("client supplied prices are ignored", func(t *testing.T) {
		// CartItem carries no price field; this pins the catalog as the only
		// source of unit prices even when the catalog entry changes.
		catalog := newMockCatalog()
		resolver := pricing.NewResolver(catalog)

		catalog.products["p1"].UnitPrice = 700
		cart, err := resolver.Resolve(context.Background(), []pricing.CartItem{
			{ProductID: "p1", Quantity: 1},
		})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if cart.Total != 700 {
			t.Errorf("Resolve() total = %d, want catalog price 700", cart.Total)
		}
	})
}
