package service

import (
	"context"

	"mattress-shop/internal/model"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProductService defines operations for the mattress catalogue.
type ProductService interface {
	// GetAll retrieves active products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create adds a product with its size variants.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)
}

// OrderService defines operations for checkout and order management.
type OrderService interface {
	// CreateOrder prices the requested items, applies an optional promo code and
	// persists the order with item snapshots.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByOrderNumber retrieves an order with its items.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*model.OrderResponse, error)

	// List retrieves orders newest first.
	List(ctx context.Context, limit, offset int) ([]model.Order, error)

	// UpdateStatus moves an order through its fulfilment lifecycle.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
}

// PromoService defines storefront and admin operations on promo codes.
type PromoService interface {
	// Check reports whether a code applies to an order amount and the discount it gives.
	Check(ctx context.Context, req *model.PromoCheckRequest) (*model.PromoCheckResponse, error)

	Create(ctx context.Context, req *model.PromoCodeRequest) (*model.PromoCode, error)
	List(ctx context.Context, limit, offset int) ([]model.PromoCode, error)
	Update(ctx context.Context, id uuid.UUID, req *model.PromoCodeRequest) (*model.PromoCode, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func normalisePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
