package repository

import (
	"context"
	"testing"
	"time"

	"mattress-shop/internal/database"
	"mattress-shop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the application schema applied.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	t.Cleanup(func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	})

	return pool
}

// seedProduct inserts a product with two sizes and returns it.
func seedProduct(t *testing.T, repo ProductRepository, id, name string) *model.Product {
	t.Helper()

	oldPrice := int64(1_200_000)
	p := &model.Product{
		ID:        id,
		Name:      name,
		ImageURL:  "https://cdn.example.com/" + id + ".jpg",
		Firmness:  "medium",
		HeightCm:  22,
		Category:  "spring",
		IsActive:  true,
		CreatedAt: time.Now(),
		Sizes: []model.ProductSize{
			{ID: uuid.New(), Label: "90x200", Price: 650_000},
			{ID: uuid.New(), Label: "160x200", Price: 1_000_000, OldPrice: &oldPrice},
		},
	}

	require.NoError(t, repo.Create(context.Background(), p))

	return p
}

func newTestOrder(number string, total int64) *model.Order {
	now := time.Now()
	return &model.Order{
		ID:             uuid.New(),
		OrderNumber:    number,
		FirstName:      "Olena",
		LastName:       "Shevchenko",
		Phone:          "+380501112233",
		Email:          "olena@example.com",
		DeliveryMethod: "nova_poshta",
		DeliveryCity:   "Kyiv",
		Subtotal:       total,
		Total:          total,
		Status:         model.OrderStatusPending,
		PaymentStatus:  model.PaymentStatusPending,
		PaymentMethod:  model.PaymentMethodCardOnline,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
