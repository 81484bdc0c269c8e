package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mveljko/paybridge/internal/orders/domain"
	"github.com/mveljko/paybridge/internal/orders/ports"
)

// CartItem is what the caller may supply: a product reference and a count.
// Any price the client attaches never reaches this package; unit prices are
// always re-read from the catalog.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// PricedCart is the authoritative pricing result for a cart.
type PricedCart struct {
	LineItems []domain.LineItem
	Total     int64
}

// ErrInvalidComputedTotal is returned when catalog prices sum to a
// non-positive total, which indicates a broken catalog mapping.
var ErrInvalidComputedTotal = errors.New("computed total must be positive")

// Resolver recomputes cart totals from the catalog.
type Resolver struct {
	catalog ports.Catalog
}

// NewResolver constructs a Resolver over the given catalog.
func NewResolver(catalog ports.Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve validates every item, then prices the cart from catalog lookups.
// Validation of all items happens before the first lookup, so a bad quantity
// anywhere in the cart aborts without touching the catalog.
func (r *Resolver) Resolve(ctx context.Context, items []CartItem) (*PricedCart, error) {
	if len(items) == 0 {
		return nil, errors.New("items must not be empty")
	}

	for _, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return nil, errors.New("item product_id is required")
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %s: quantity must be a positive integer", item.ProductID)
		}
	}

	lineItems := make([]domain.LineItem, 0, len(items))
	var total int64

	for _, item := range items {
		product, err := r.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, ports.ErrProductNotFound) {
				return nil, &ports.ProductNotFoundError{ProductID: item.ProductID}
			}
			return nil, fmt.Errorf("catalog lookup %s: %w", item.ProductID, err)
		}

		lineTotal := product.UnitPrice * item.Quantity
		lineItems = append(lineItems, domain.LineItem{
			ProductID:   product.ID,
			Quantity:    item.Quantity,
			UnitPrice:   product.UnitPrice,
			LineTotal:   lineTotal,
			ProductName: product.Name,
			Category:    product.Category,
		})
		total += lineTotal
	}

	if total <= 0 {
		return nil, ErrInvalidComputedTotal
	}

	return &PricedCart{LineItems: lineItems, Total: total}, nil
}
