package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mattress-shop/internal/model"
	"mattress-shop/internal/promo"
	"mattress-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// promoService implements PromoService.
type promoService struct {
	promoRepo repository.PromoCodeRepository
	validator promo.Validator
	logger    zerolog.Logger
}

// NewPromoService creates a new promo code service.
func NewPromoService(promoRepo repository.PromoCodeRepository, validator promo.Validator, logger zerolog.Logger) PromoService {
	return &promoService{
		promoRepo: promoRepo,
		validator: validator,
		logger:    logger.With().Str("service", "promo").Logger(),
	}
}

// Check reports whether a code applies to an order amount. Rejections are part
// of the response, not errors.
func (s *promoService) Check(ctx context.Context, req *model.PromoCheckRequest) (*model.PromoCheckResponse, error) {
	if req == nil || strings.TrimSpace(req.Code) == "" {
		return &model.PromoCheckResponse{Valid: false, Message: "Promo code is required"}, nil
	}
	if req.OrderAmount < 0 {
		return nil, model.NewDomainError(model.ErrCodeInvalidRequest, "order_amount cannot be negative")
	}

	p, err := s.validator.Validate(ctx, req.Code, req.OrderAmount)
	if err != nil {
		var vErr *promo.ValidationError
		if errors.As(err, &vErr) {
			return &model.PromoCheckResponse{Valid: false, Message: vErr.Error()}, nil
		}
		return nil, err
	}

	return &model.PromoCheckResponse{
		Valid:         true,
		Discount:      promo.CalculateDiscount(p, req.OrderAmount),
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
		Code:          p.Code,
		Message:       "Promo code applied",
	}, nil
}

// Create adds a promo code. Codes are stored upper-case.
func (s *promoService) Create(ctx context.Context, req *model.PromoCodeRequest) (*model.PromoCode, error) {
	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeInvalidRequest, "promo code request is empty")
	}

	now := time.Now()
	p := &model.PromoCode{
		ID:        uuid.New(),
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyPromoRequest(p, req)

	if err := p.ValidateTerms(); err != nil {
		return nil, model.NewDomainError(model.ErrCodeInvalidRequest, err.Error())
	}

	if err := s.promoRepo.Create(ctx, p); err != nil {
		if errors.Is(err, model.ErrDuplicatePromoCode) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("code", p.Code).Msg("failed to create promo code")
		return nil, fmt.Errorf("failed to create promo code: %w", err)
	}

	s.logger.Info().Str("code", p.Code).Msg("promo code created")

	return p, nil
}

// List retrieves promo codes newest first.
func (s *promoService) List(ctx context.Context, limit, offset int) ([]model.PromoCode, error) {
	limit, offset = normalisePage(limit, offset)

	promos, err := s.promoRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list promo codes")
		return nil, fmt.Errorf("failed to list promo codes: %w", err)
	}

	return promos, nil
}

// Update replaces the terms of a promo code. The code itself and its usage
// counter cannot be changed.
func (s *promoService) Update(ctx context.Context, id uuid.UUID, req *model.PromoCodeRequest) (*model.PromoCode, error) {
	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeInvalidRequest, "promo code request is empty")
	}

	p, err := s.promoRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("promo_id", id.String()).Msg("failed to get promo code")
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}
	if p == nil {
		return nil, model.ErrPromoCodeNotFound
	}

	applyPromoRequest(p, req)
	p.UpdatedAt = time.Now()

	if err := p.ValidateTerms(); err != nil {
		return nil, model.NewDomainError(model.ErrCodeInvalidRequest, err.Error())
	}

	updated, err := s.promoRepo.Update(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Str("promo_id", id.String()).Msg("failed to update promo code")
		return nil, fmt.Errorf("failed to update promo code: %w", err)
	}
	if !updated {
		return nil, model.ErrPromoCodeNotFound
	}

	s.logger.Info().Str("code", p.Code).Msg("promo code updated")

	return p, nil
}

// Delete soft-deletes a promo code.
func (s *promoService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.promoRepo.SoftDelete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("promo_id", id.String()).Msg("failed to delete promo code")
		return fmt.Errorf("failed to delete promo code: %w", err)
	}
	if !deleted {
		return model.ErrPromoCodeNotFound
	}

	s.logger.Info().Str("promo_id", id.String()).Msg("promo code deleted")

	return nil
}

func applyPromoRequest(p *model.PromoCode, req *model.PromoCodeRequest) {
	p.DiscountType = model.DiscountType(strings.ToLower(string(req.DiscountType)))
	p.DiscountValue = req.DiscountValue
	p.MinOrderAmount = req.MinOrderAmount
	p.MaxUses = req.MaxUses
	p.StartsAt = req.StartsAt
	p.ExpiresAt = req.ExpiresAt
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
}
