package ports

import (
	"context"
	"errors"
	"fmt"
)

// Product is a catalog entry. UnitPrice is in the currency's minor unit.
type Product struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	UnitPrice int64  `json:"unit_price"`
}

// Catalog resolves authoritative product data at order time.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
}

// ErrProductNotFound is returned when a catalog lookup misses.
var ErrProductNotFound = errors.New("product not found")

// ProductNotFoundError names the product id that failed to resolve.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error {
	return ErrProductNotFound
}
