package handler

import (
	"context"
	"net/http"

	"mattress-shop/internal/carrier"
	"mattress-shop/internal/model"
	"mattress-shop/internal/payment"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.OrderResponse, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, limit, offset int) ([]model.Order, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockPromoService is a mock implementation of PromoService.
type MockPromoService struct {
	mock.Mock
}

func (m *MockPromoService) Check(ctx context.Context, req *model.PromoCheckRequest) (*model.PromoCheckResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCheckResponse), args.Error(1)
}

func (m *MockPromoService) Create(ctx context.Context, req *model.PromoCodeRequest) (*model.PromoCode, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *MockPromoService) List(ctx context.Context, limit, offset int) ([]model.PromoCode, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PromoCode), args.Error(1)
}

func (m *MockPromoService) Update(ctx context.Context, id uuid.UUID, req *model.PromoCodeRequest) (*model.PromoCode, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *MockPromoService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReconciler is a mock implementation of WebhookReconciler.
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) HandleWebhook(ctx context.Context, body []byte) (*payment.Acknowledgement, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Acknowledgement), args.Error(1)
}

// MockInitiator is a mock implementation of PaymentInitiator.
type MockInitiator struct {
	mock.Mock
}

func (m *MockInitiator) Initiate(ctx context.Context, orderID uuid.UUID) (*payment.WidgetParams, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.WidgetParams), args.Error(1)
}

// MockCarrier is a mock implementation of CarrierDirectory.
type MockCarrier struct {
	mock.Mock
}

func (m *MockCarrier) SearchCities(ctx context.Context, query string) ([]carrier.City, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]carrier.City), args.Error(1)
}

func (m *MockCarrier) Warehouses(ctx context.Context, cityRef, query string) ([]carrier.Warehouse, error) {
	args := m.Called(ctx, cityRef, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]carrier.Warehouse), args.Error(1)
}

// withURLParams attaches chi route parameters to a request.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
