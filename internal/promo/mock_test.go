package promo

import (
	"context"

	"mattress-shop/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPromoCodeRepository is a mock implementation of PromoCodeRepository.
type MockPromoCodeRepository struct {
	mock.Mock
}

func (m *MockPromoCodeRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) List(ctx context.Context, limit, offset int) ([]model.PromoCode, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]model.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) Create(ctx context.Context, p *model.PromoCode) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPromoCodeRepository) Upsert(ctx context.Context, p *model.PromoCode) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPromoCodeRepository) Update(ctx context.Context, p *model.PromoCode) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockPromoCodeRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPromoCodeRepository) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
