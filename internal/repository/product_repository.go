package repository

import (
	"context"
	"errors"
	"fmt"

	"mattress-shop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, name, description, image_url, firmness, height_cm, category, is_active, created_at`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.ImageURL,
		&p.Firmness,
		&p.HeightCm,
		&p.Category,
		&p.IsActive,
		&p.CreatedAt,
	)
}

// GetAll retrieves active products with their sizes, with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products, err := r.collect(rows)
	if err != nil {
		return nil, err
	}

	return products, r.attachSizes(ctx, products)
}

// GetByID retrieves a single product with its sizes.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	products := []model.Product{p}
	if err := r.attachSizes(ctx, products); err != nil {
		return nil, err
	}

	return &products[0], nil
}

// GetByIDs retrieves multiple products with their sizes.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1)
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}

	products, err := r.collect(rows)
	if err != nil {
		return nil, err
	}

	return products, r.attachSizes(ctx, products)
}

// Create inserts a product and its sizes in one transaction.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx, `
		INSERT INTO products (id, name, description, image_url, firmness, height_cm, category, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		product.ID,
		product.Name,
		product.Description,
		product.ImageURL,
		product.Firmness,
		product.HeightCm,
		product.Category,
		product.IsActive,
		product.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	batch := &pgx.Batch{}
	for _, s := range product.Sizes {
		batch.Queue(`
			INSERT INTO product_sizes (id, product_id, label, price, old_price)
			VALUES ($1, $2, $3, $4, $5)
		`, s.ID, product.ID, s.Label, s.Price, s.OldPrice)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to create product sizes")
		return fmt.Errorf("failed to create product sizes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().
		Str("product_id", product.ID).
		Int("sizes", len(product.Sizes)).
		Msg("product created successfully")

	return nil
}

func (r *productRepository) collect(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// attachSizes loads size variants for the given products in a single query.
func (r *productRepository) attachSizes(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	index := make(map[string]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
		products[i].Sizes = []model.ProductSize{}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, label, price, old_price
		FROM product_sizes
		WHERE product_id = ANY($1)
		ORDER BY price, label
	`, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query product sizes")
		return fmt.Errorf("failed to query product sizes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s model.ProductSize
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Label, &s.Price, &s.OldPrice); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product size row")
			return fmt.Errorf("failed to scan product size: %w", err)
		}
		i := index[s.ProductID]
		products[i].Sizes = append(products[i].Sizes, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product size rows")
		return fmt.Errorf("error iterating product sizes: %w", err)
	}

	return nil
}
