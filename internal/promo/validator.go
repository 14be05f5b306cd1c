package promo

import (
	"context"
	"fmt"
	"time"

	"mattress-shop/internal/model"
	"mattress-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// validator implements Validator on top of the promo code repository.
type validator struct {
	repo   repository.PromoCodeRepository
	now    func() time.Time
	logger zerolog.Logger
}

// NewValidator creates a new promo code validator.
func NewValidator(repo repository.PromoCodeRepository, logger zerolog.Logger) Validator {
	return &validator{
		repo:   repo,
		now:    time.Now,
		logger: logger.With().Str("component", "promo-validator").Logger(),
	}
}

// Validate checks that a promo code can be applied to an order of orderAmount minor units.
// Activation window boundaries are strict: a code starting exactly now is valid, and
// so is a code expiring exactly now.
func (v *validator) Validate(ctx context.Context, code string, orderAmount int64) (*model.PromoCode, error) {
	promo, err := v.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up promo code: %w", err)
	}

	if err := v.check(promo, orderAmount); err != nil {
		v.logger.Debug().
			Str("promo_code", code).
			Int64("order_amount", orderAmount).
			Str("reason", string(err.Reason)).
			Msg("promo code rejected")
		return nil, err
	}

	v.logger.Debug().
		Str("promo_code", promo.Code).
		Int64("order_amount", orderAmount).
		Msg("promo code validated successfully")

	return promo, nil
}

func (v *validator) check(promo *model.PromoCode, orderAmount int64) *ValidationError {
	if promo == nil {
		return ErrNotFound
	}

	if !promo.IsActive {
		return ErrInactive
	}

	now := v.now()

	if promo.StartsAt != nil && promo.StartsAt.After(now) {
		return ErrNotYetActive
	}

	if promo.ExpiresAt != nil && promo.ExpiresAt.Before(now) {
		return ErrExpired
	}

	if promo.MaxUses > 0 && promo.CurrentUses >= promo.MaxUses {
		return ErrUsageLimit
	}

	if promo.MinOrderAmount > 0 && orderAmount > 0 && orderAmount < promo.MinOrderAmount {
		return &ValidationError{Reason: ReasonBelowMinimum, MinOrderAmount: promo.MinOrderAmount}
	}

	return nil
}

// IncrementUsage records one redemption of the promo code.
func (v *validator) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := v.repo.IncrementUsage(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to increment promo usage: %w", err)
	}

	v.logger.Info().
		Str("promo_id", id.String()).
		Bool("incremented", ok).
		Msg("promo usage recorded")

	return ok, nil
}
