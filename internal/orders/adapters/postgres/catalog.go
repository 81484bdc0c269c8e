package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mveljko/paybridge/internal/orders/ports"
)

// Catalog reads product data from the products table. Prices are stored in
// the currency's minor unit and are the only price source for order totals.
type Catalog struct {
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) *Catalog {
	return &Catalog{pool: pool}
}

func (c *Catalog) GetProduct(ctx context.Context, id string) (*ports.Product, error) {
	query := `
		SELECT id, name, category, unit_price
		FROM products
		WHERE id = $1
	`

	var product ports.Product
	err := c.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.UnitPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrProductNotFound
		}
		return nil, &ports.StoreError{Op: "select product", Err: err}
	}

	return &product, nil
}
