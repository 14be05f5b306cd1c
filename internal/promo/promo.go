// Package promo validates promo codes against an order amount, computes
// discounts and imports promo code batches from gzipped CSV files.
package promo

import (
	"context"

	"mattress-shop/internal/model"

	"github.com/google/uuid"
)

// Validator defines the interface for promo code validation.
type Validator interface {
	// Validate checks that a promo code can be applied to an order of orderAmount
	// minor units. Checks run in a fixed order and the first failure is returned
	// as a *ValidationError. An orderAmount of zero skips the minimum order check.
	Validate(ctx context.Context, code string, orderAmount int64) (*model.PromoCode, error)

	// IncrementUsage records one redemption. It reports false when the usage cap
	// was already reached.
	IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error)
}

// Loader defines the interface for loading promo code import files.
type Loader interface {
	// Load reads a gzipped CSV file and returns the promo codes it describes.
	Load(ctx context.Context, filePath string) ([]model.PromoCode, error)
}
