//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	testpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mveljko/paybridge/internal/database"
	"github.com/mveljko/paybridge/internal/orders/adapters/postgres"
	"github.com/mveljko/paybridge/internal/orders/domain"
	"github.com/mveljko/paybridge/internal/orders/ports"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := testpostgres.Run(ctx,
		"postgres:16-alpine",
		testpostgres.WithDatabase("test"),
		testpostgres.WithUsername("test"),
		testpostgres.WithPassword("test"),
		testpostgres.BasicWaitStrategies(),
		testpostgres.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").WithOccurrence(2)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	migrationsPath := filepath.Join(findProjectRoot(t), "migrations")
	if err := database.RunMigrations(connStr, migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}

	t.Cleanup(pool.Close)

	return pool
}

func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func testOrder(id, providerOrderID string) domain.Order {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return domain.Order{
		ID:     id,
		UserID: "user-1",
		LineItems: []domain.LineItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: 500, LineTotal: 1000, ProductName: "Widget", Category: "tools"},
		},
		Subtotal:        1000,
		TotalAmount:     1000,
		Currency:        "INR",
		ShippingAddress: json.RawMessage(`{"city":"Pune"}`),
		PaymentStatus:   domain.StatusCreated,
		PaymentProvider: domain.ProviderRazorpay,
		ProviderOrderID: providerOrderID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestRepositoryCreateAndGet(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	order := testOrder("ord-1", "order_abc")
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("failed to retrieve order: %v", err)
	}

	if retrieved.ID != order.ID {
		t.Errorf("expected ID %s, got %s", order.ID, retrieved.ID)
	}
	if retrieved.TotalAmount != order.TotalAmount {
		t.Errorf("expected total %d, got %d", order.TotalAmount, retrieved.TotalAmount)
	}
	if len(retrieved.LineItems) != 1 || retrieved.LineItems[0].LineTotal != 1000 {
		t.Errorf("expected line items to round-trip, got %+v", retrieved.LineItems)
	}
	if retrieved.PaymentStatus != domain.StatusCreated {
		t.Errorf("expected status %s, got %s", domain.StatusCreated, retrieved.PaymentStatus)
	}
	if retrieved.ProviderPaymentID != "" {
		t.Errorf("expected empty provider payment id, got %s", retrieved.ProviderPaymentID)
	}

	byProvider, err := repo.GetByProviderOrderID(ctx, "order_abc")
	if err != nil {
		t.Fatalf("failed to retrieve by provider order id: %v", err)
	}
	if byProvider.ID != order.ID {
		t.Errorf("expected ID %s, got %s", order.ID, byProvider.ID)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepositoryMarkPaid(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	order := testOrder("ord-1", "order_abc")
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	updated, err := repo.MarkPaid(ctx, order.ID, "pay_1", "sig_1")
	if err != nil {
		t.Fatalf("failed to mark order paid: %v", err)
	}

	if updated.PaymentStatus != domain.StatusPaid {
		t.Errorf("expected status %s, got %s", domain.StatusPaid, updated.PaymentStatus)
	}
	if updated.ProviderPaymentID != "pay_1" || updated.ProviderSignature != "sig_1" {
		t.Errorf("expected payment fields recorded, got %s/%s", updated.ProviderPaymentID, updated.ProviderSignature)
	}
	if !updated.UpdatedAt.After(order.UpdatedAt) {
		t.Error("expected updated_at to advance")
	}

	t.Run("redelivery with same payment id", func(t *testing.T) {
		again, err := repo.MarkPaid(ctx, order.ID, "pay_1", "sig_1")
		if err != nil {
			t.Fatalf("redelivery failed: %v", err)
		}
		if again.ProviderPaymentID != "pay_1" {
			t.Errorf("expected payment id unchanged, got %s", again.ProviderPaymentID)
		}
	})

	t.Run("conflicting payment id", func(t *testing.T) {
		if _, err := repo.MarkPaid(ctx, order.ID, "pay_2", "sig_2"); !errors.Is(err, ports.ErrPaymentConflict) {
			t.Errorf("expected ErrPaymentConflict, got %v", err)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		if _, err := repo.MarkPaid(ctx, "missing", "pay_1", "sig_1"); !errors.Is(err, ports.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRepositoryList(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	orders := []domain.Order{
		testOrder("ord-1", "order_1"),
		testOrder("ord-2", "order_2"),
		testOrder("ord-3", "order_3"),
	}
	orders[2].UserID = "user-2"

	for _, order := range orders {
		if err := repo.Create(ctx, order); err != nil {
			t.Fatalf("failed to create order %s: %v", order.ID, err)
		}
	}
	if _, err := repo.MarkPaid(ctx, "ord-1", "pay_1", "sig_1"); err != nil {
		t.Fatalf("failed to mark order paid: %v", err)
	}

	t.Run("filter by status", func(t *testing.T) {
		paid := domain.StatusPaid
		result, err := repo.List(ctx, ports.ListFilter{Status: &paid})
		if err != nil {
			t.Fatalf("failed to list orders: %v", err)
		}
		if len(result) != 1 || result[0].ID != "ord-1" {
			t.Errorf("expected just ord-1, got %+v", result)
		}
	})

	t.Run("filter by user", func(t *testing.T) {
		result, err := repo.List(ctx, ports.ListFilter{UserID: "user-1"})
		if err != nil {
			t.Fatalf("failed to list orders: %v", err)
		}
		if len(result) != 2 {
			t.Errorf("expected 2 orders for user-1, got %d", len(result))
		}
	})

	t.Run("pagination", func(t *testing.T) {
		result, err := repo.List(ctx, ports.ListFilter{Page: 2, PageSize: 2})
		if err != nil {
			t.Fatalf("failed to list orders: %v", err)
		}
		if len(result) != 1 {
			t.Errorf("expected 1 order on page 2, got %d", len(result))
		}
	})
}

func TestCatalogGetProduct(t *testing.T) {
	pool := setupTestDB(t)
	catalog := postgres.NewCatalog(pool)
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO products (id, name, category, unit_price) VALUES ($1, $2, $3, $4)`,
		"p1", "Widget", "tools", int64(500),
	)
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	product, err := catalog.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("failed to get product: %v", err)
	}
	if product.Name != "Widget" || product.UnitPrice != 500 {
		t.Errorf("unexpected product: %+v", product)
	}

	if _, err := catalog.GetProduct(ctx, "missing"); !errors.Is(err, ports.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}
