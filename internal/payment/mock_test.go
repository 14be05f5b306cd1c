package payment

import (
	"context"

	"mattress-shop/internal/model"
	"mattress-shop/internal/notify"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderStore is a mock implementation of OrderStore and OrderFinder.
type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Get(1).([]model.OrderItem), args.Error(2)
}

func (m *MockOrderStore) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, []model.OrderItem, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Get(1).([]model.OrderItem), args.Error(2)
}

func (m *MockOrderStore) MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (bool, error) {
	args := m.Called(ctx, id, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderStore) MarkPaymentFailed(ctx context.Context, id uuid.UUID, transactionID string) (bool, error) {
	args := m.Called(ctx, id, transactionID)
	return args.Bool(0), args.Error(1)
}

// MockValidator is a mock implementation of promo.Validator.
type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Validate(ctx context.Context, code string, orderAmount int64) (*model.PromoCode, error) {
	args := m.Called(ctx, code, orderAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *MockValidator) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockSender is a mock implementation of notify.Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg notify.Message) error {
	return m.Called(ctx, msg).Error(0)
}
