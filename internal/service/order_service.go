package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mattress-shop/internal/model"
	"mattress-shop/internal/promo"
	"mattress-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultDeliveryMethod = "nova_poshta"

// maxItemQuantity bounds a single line so price*quantity stays well inside int64.
const maxItemQuantity = 1000

// orderService implements OrderService.
type orderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	validator     promo.Validator
	deliveryPrice int64
	now           func() time.Time
	logger        zerolog.Logger
}

// NewOrderService creates a new order service. deliveryPrice is added to every
// order total, in minor units.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	validator promo.Validator,
	deliveryPrice int64,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		validator:     validator,
		deliveryPrice: deliveryPrice,
		now:           time.Now,
		logger:        logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder prices the requested items, applies an optional promo code and
// persists the order with item snapshots in one transaction.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	order := &model.Order{
		ID:                uuid.New(),
		OrderNumber:       newOrderNumber(now),
		CustomerID:        req.CustomerID,
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Phone:             strings.TrimSpace(req.Phone),
		Email:             strings.TrimSpace(req.Email),
		DeliveryMethod:    req.DeliveryMethod,
		DeliveryCity:      req.DeliveryCity,
		DeliveryWarehouse: req.DeliveryWarehouse,
		Comment:           req.Comment,
		Status:            model.OrderStatusPending,
		PaymentStatus:     model.PaymentStatusPending,
		PaymentMethod:     req.PaymentMethod,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if order.DeliveryMethod == "" {
		order.DeliveryMethod = defaultDeliveryMethod
	}

	items, err := s.snapshotItems(ctx, order.ID, req.Items)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		order.Subtotal += item.Total
	}

	var applied *model.PromoCode
	if req.PromoCode != nil && strings.TrimSpace(*req.PromoCode) != "" {
		applied, err = s.validator.Validate(ctx, *req.PromoCode, order.Subtotal)
		if err != nil {
			s.logger.Warn().
				Str("promo_code", *req.PromoCode).
				Err(err).
				Msg("promo code rejected at checkout")
			return nil, err
		}
		order.PromoCode = &applied.Code
		order.DiscountAmount = promo.CalculateDiscount(applied, order.Subtotal)
	}

	order.DeliveryPrice = s.deliveryPrice
	order.Total = max(order.Subtotal-order.DiscountAmount+order.DeliveryPrice, 0)

	if err := s.persist(ctx, order, items); err != nil {
		return nil, err
	}

	// Offline orders get no payment callback, so the promo is redeemed now.
	if applied != nil && !order.PaymentMethod.Online() {
		if _, err := s.validator.IncrementUsage(ctx, applied.ID); err != nil {
			s.logger.Error().Err(err).
				Str("order_number", order.OrderNumber).
				Str("promo_code", applied.Code).
				Msg("failed to redeem promo code")
		}
	}

	s.logger.Info().
		Str("order_number", order.OrderNumber).
		Int("item_count", len(items)).
		Int64("total", order.Total).
		Str("payment_method", string(order.PaymentMethod)).
		Msg("order created successfully")

	return &model.OrderResponse{Order: *order, Items: items}, nil
}

func (s *orderService) snapshotItems(ctx context.Context, orderID uuid.UUID, reqItems []model.OrderItemRequest) ([]model.OrderItem, error) {
	productIDs := make([]string, 0, len(reqItems))
	seen := make(map[string]struct{}, len(reqItems))
	for _, item := range reqItems {
		if _, ok := seen[item.ProductID]; !ok {
			seen[item.ProductID] = struct{}{}
			productIDs = append(productIDs, item.ProductID)
		}
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Int("product_count", len(productIDs)).Msg("failed to load products")
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]model.OrderItem, len(reqItems))
	for i, req := range reqItems {
		product, ok := byID[req.ProductID]
		if !ok || !product.IsActive {
			s.logger.Warn().Str("product_id", req.ProductID).Msg("product not available")
			return nil, model.ErrProductNotFound
		}

		size, ok := product.Size(req.SizeID)
		if !ok {
			s.logger.Warn().
				Str("product_id", req.ProductID).
				Str("size_id", req.SizeID.String()).
				Msg("size not available")
			return nil, model.ErrSizeNotFound
		}

		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			Position:  i,
			ProductID: product.ID,
			Title:     product.Name,
			Image:     product.ImageURL,
			Size:      size.Label,
			Firmness:  product.Firmness,
			UnitPrice: size.Price,
			Quantity:  req.Quantity,
			Total:     size.Price * int64(req.Quantity),
		}
	}

	return items, nil
}

func (s *orderService) persist(ctx context.Context, order *model.Order, items []model.OrderItem) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_number", order.OrderNumber).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByOrderNumber retrieves an order with its items.
func (s *orderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByOrderNumber(ctx, strings.ToUpper(strings.TrimSpace(orderNumber)))
	if err != nil {
		s.logger.Error().Err(err).Str("order_number", orderNumber).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_number", orderNumber).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	return &model.OrderResponse{Order: *order, Items: items}, nil
}

// List retrieves orders newest first.
func (s *orderService) List(ctx context.Context, limit, offset int) ([]model.Order, error) {
	limit, offset = normalisePage(limit, offset)

	orders, err := s.orderRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Int("limit", limit).Int("offset", offset).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus moves an order through its fulfilment lifecycle.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	if !status.Valid() {
		return model.ErrInvalidStatus
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if !updated {
		return model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return nil
}

// validateOrderRequest validates the checkout payload.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeInvalidRequest, "order request is empty")
	}

	required := []struct {
		name  string
		value string
	}{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"phone", req.Phone},
		{"email", req.Email},
		{"deliveryCity", req.DeliveryCity},
		{"deliveryWarehouse", req.DeliveryWarehouse},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("%s is required", f.name))
		}
	}

	if !req.PaymentMethod.Valid() {
		return model.ErrInvalidPaymentMethod
	}

	if len(req.Items) == 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "order must contain at least one item")
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			return model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("item %d: productId is required", i))
		}

		if item.Quantity <= 0 || item.Quantity > maxItemQuantity {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}

// newOrderNumber returns a human-readable order number such as ORD-20250601-3F9A1C.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), suffix)
}
