package memory

import (
	"context"
	"sync"

	"github.com/mveljko/paybridge/internal/orders/ports"
)

// Catalog is an in-memory product catalog for local development and tests.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]ports.Product
}

// NewCatalog constructs a catalog seeded with the given products.
func NewCatalog(products ...ports.Product) *Catalog {
	c := &Catalog{products: make(map[string]ports.Product, len(products))}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

// Put adds or replaces a catalog entry.
func (c *Catalog) Put(product ports.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.ID] = product
}

// GetProduct looks up a product by id.
func (c *Catalog) GetProduct(_ context.Context, id string) (*ports.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	product, ok := c.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	copy := product
	return &copy, nil
}
