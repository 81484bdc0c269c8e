package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mveljko/paybridge/internal/orders/domain"
	"github.com/mveljko/paybridge/internal/orders/ports"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const orderColumns = `
	id, user_id, line_items, subtotal, total_amount, currency,
	shipping_address, payment_status, payment_provider,
	provider_order_id, provider_payment_id, provider_signature,
	created_at, updated_at
`

func (r *Repository) Create(ctx context.Context, order domain.Order) error {
	lineItems, err := json.Marshal(order.LineItems)
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}

	query := `
		INSERT INTO orders (
			id, user_id, line_items, subtotal, total_amount, currency,
			shipping_address, payment_status, payment_provider,
			provider_order_id, provider_payment_id, provider_signature,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.pool.Exec(ctx, query,
		order.ID,
		order.UserID,
		lineItems,
		order.Subtotal,
		order.TotalAmount,
		order.Currency,
		[]byte(order.ShippingAddress),
		order.PaymentStatus,
		order.PaymentProvider,
		order.ProviderOrderID,
		nullable(order.ProviderPaymentID),
		nullable(order.ProviderSignature),
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return &ports.StoreError{Op: "insert order", Err: err}
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *Repository) GetByProviderOrderID(ctx context.Context, providerOrderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE provider_order_id = $1`
	return r.getOne(ctx, query, providerOrderID)
}

func (r *Repository) getOne(ctx context.Context, query string, arg any) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, &ports.StoreError{Op: "select order", Err: err}
	}
	return order, nil
}

// MarkPaid records the payment in a single conditional update. The status
// guard rejects a second, conflicting payment racing against the first; a
// replay carrying the same payment id resolves to the stored row.
func (r *Repository) MarkPaid(ctx context.Context, id, providerPaymentID, providerSignature string) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET payment_status = $1, provider_payment_id = $2, provider_signature = $3, updated_at = $4
		WHERE id = $5 AND payment_status = $6
		RETURNING ` + orderColumns

	row := r.pool.QueryRow(ctx, query,
		domain.StatusPaid,
		providerPaymentID,
		providerSignature,
		time.Now().UTC(),
		id,
		domain.StatusCreated,
	)

	order, err := scanOrder(row)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, &ports.StoreError{Op: "mark order paid", Err: err}
	}

	// No row transitioned: either the order is missing or it is already paid.
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsPaid() && existing.ProviderPaymentID == providerPaymentID {
		return existing, nil
	}
	return nil, ports.ErrPaymentConflict
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1::text IS NULL OR payment_status = $1)
		  AND ($2::text IS NULL OR user_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	var statusFilter *string
	if filter.Status != nil {
		s := string(*filter.Status)
		statusFilter = &s
	}

	var userFilter *string
	if filter.UserID != "" {
		u := filter.UserID
		userFilter = &u
	}

	offset := (page - 1) * pageSize

	rows, err := r.pool.Query(ctx, query, statusFilter, userFilter, pageSize, offset)
	if err != nil {
		return nil, &ports.StoreError{Op: "query orders", Err: err}
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, &ports.StoreError{Op: "scan order", Err: err}
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, &ports.StoreError{Op: "iterate orders", Err: err}
	}

	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order             domain.Order
		lineItems         []byte
		shippingAddress   []byte
		providerPaymentID *string
		providerSignature *string
	)

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&lineItems,
		&order.Subtotal,
		&order.TotalAmount,
		&order.Currency,
		&shippingAddress,
		&order.PaymentStatus,
		&order.PaymentProvider,
		&order.ProviderOrderID,
		&providerPaymentID,
		&providerSignature,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(lineItems, &order.LineItems); err != nil {
		return nil, fmt.Errorf("unmarshal line items: %w", err)
	}
	order.ShippingAddress = shippingAddress
	if providerPaymentID != nil {
		order.ProviderPaymentID = *providerPaymentID
	}
	if providerSignature != nil {
		order.ProviderSignature = *providerSignature
	}

	return &order, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
