package repository

import (
	"context"

	"mattress-shop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue data access operations.
type ProductRepository interface {
	// GetAll retrieves active products with their sizes, with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product with its sizes. Returns nil if absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products with their sizes.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Create inserts a product and its sizes in one transaction.
	Create(ctx context.Context, product *model.Product) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the item snapshots within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// GetByOrderNumber retrieves an order by its human-readable number along with its items.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, []model.OrderItem, error)

	// List retrieves orders newest first.
	List(ctx context.Context, limit, offset int) ([]model.Order, error)

	// UpdateStatus sets the fulfilment status. Reports false if the order does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (bool, error)

	// MarkPaid flips payment_status to paid from pending or failed.
	// Reports true only for the call that performed the transition.
	MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (bool, error)

	// MarkPaymentFailed records a declined or expired payment for an unpaid order.
	MarkPaymentFailed(ctx context.Context, id uuid.UUID, transactionID string) (bool, error)
}

// PromoCodeRepository defines the interface for promo code data access operations.
// Soft-deleted codes are never returned.
type PromoCodeRepository interface {
	// GetByCode looks a code up case-insensitively. Returns nil if absent.
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)

	// GetByID retrieves a promo code by ID. Returns nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.PromoCode, error)

	// List retrieves promo codes ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]model.PromoCode, error)

	// Create inserts a promo code. Returns model.ErrDuplicatePromoCode on a live duplicate.
	Create(ctx context.Context, promo *model.PromoCode) error

	// Upsert inserts a promo code or refreshes the discount terms of the live code with
	// the same name, keeping its usage, activation flag and window.
	Upsert(ctx context.Context, promo *model.PromoCode) error

	// Update overwrites the mutable fields of a promo code. Reports false if absent.
	Update(ctx context.Context, promo *model.PromoCode) (bool, error)

	// SoftDelete hides a promo code while keeping it for historical orders.
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)

	// IncrementUsage atomically bumps current_uses unless the usage cap is reached.
	// Reports false when the cap was hit or the code no longer exists.
	IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error)
}
