package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mveljko/paybridge/internal/orders/ports"
)

// Store persists idempotency responses in the idempotency_keys table.
// Writes are first-write-wins so concurrent retries of the same request
// cannot clobber each other's stored response.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Get(ctx context.Context, key string) (*ports.StoredResponse, error) {
	const query = `SELECT status_code, body, order_id FROM idempotency_keys WHERE key = $1`

	var stored ports.StoredResponse
	err := s.pool.QueryRow(ctx, query, key).Scan(&stored.StatusCode, &stored.Body, &stored.OrderID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("select idempotency key: %w", err)
	}

	return &stored, nil
}

func (s *Store) Save(ctx context.Context, key string, response ports.StoredResponse) error {
	const query = `
		INSERT INTO idempotency_keys (key, status_code, body, order_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO NOTHING
	`

	if _, err := s.pool.Exec(ctx, query, key, response.StatusCode, response.Body, response.OrderID); err != nil {
		return fmt.Errorf("insert idempotency key: %w", err)
	}

	return nil
}
