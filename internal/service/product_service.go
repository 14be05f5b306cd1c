package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mattress-shop/internal/model"
	"mattress-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves active products with pagination.
func (s *productService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	limit, offset = normalisePage(limit, offset)

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID. Inactive products are hidden.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil || !product.IsActive {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create adds a product with its size variants.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          strings.ToLower(strings.TrimSpace(req.ID)),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Firmness:    req.Firmness,
		HeightCm:    req.HeightCm,
		Category:    req.Category,
		IsActive:    true,
		Sizes:       make([]model.ProductSize, len(req.Sizes)),
		CreatedAt:   time.Now(),
	}
	for i, size := range req.Sizes {
		product.Sizes[i] = model.ProductSize{
			ID:        uuid.New(),
			ProductID: product.ID,
			Label:     strings.TrimSpace(size.Label),
			Price:     size.Price,
			OldPrice:  size.OldPrice,
		}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Int("sizes", len(product.Sizes)).
		Msg("product created")

	return product, nil
}

func validateProductRequest(req *model.ProductRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeInvalidRequest, "product request is empty")
	}
	if strings.TrimSpace(req.ID) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "id is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "name is required")
	}
	if len(req.Sizes) == 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "at least one size is required")
	}

	labels := make(map[string]struct{}, len(req.Sizes))
	for i, size := range req.Sizes {
		label := strings.TrimSpace(size.Label)
		if label == "" {
			return model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("size %d: label is required", i))
		}
		if _, dup := labels[label]; dup {
			return model.NewDomainError(model.ErrCodeInvalidRequest, fmt.Sprintf("size %q is listed twice", label))
		}
		labels[label] = struct{}{}
		if size.Price <= 0 {
			return model.NewDomainError(model.ErrCodeInvalidRequest, fmt.Sprintf("size %q: price must be greater than zero", label))
		}
	}

	return nil
}
