package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mattress-shop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const uniqueViolation = "23505"

// promoCodeRepository implements the PromoCodeRepository interface using PostgreSQL.
type promoCodeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromoCodeRepository creates a new PostgreSQL-backed promo code repository.
func NewPromoCodeRepository(pool *pgxpool.Pool, logger zerolog.Logger) PromoCodeRepository {
	return &promoCodeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "promo_code").Logger(),
	}
}

const promoColumns = `
	id, code, discount_type, discount_value, min_order_amount, max_uses, current_uses,
	starts_at, expires_at, is_active, created_at, updated_at`

func scanPromoCode(row pgx.Row, p *model.PromoCode) error {
	return row.Scan(
		&p.ID,
		&p.Code,
		&p.DiscountType,
		&p.DiscountValue,
		&p.MinOrderAmount,
		&p.MaxUses,
		&p.CurrentUses,
		&p.StartsAt,
		&p.ExpiresAt,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// GetByCode looks a code up case-insensitively.
func (r *promoCodeRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	return r.getOne(ctx, "code = $1", code)
}

// GetByID retrieves a promo code by ID.
func (r *promoCodeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PromoCode, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *promoCodeRepository) getOne(ctx context.Context, where string, key any) (*model.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE deleted_at IS NULL AND ` + where

	var p model.PromoCode
	if err := scanPromoCode(r.pool.QueryRow(ctx, query, key), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Interface("key", key).Msg("promo code not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Interface("key", key).Msg("failed to query promo code")
		return nil, fmt.Errorf("failed to query promo code: %w", err)
	}

	return &p, nil
}

// List retrieves promo codes ordered by creation time, newest first.
func (r *promoCodeRepository) List(ctx context.Context, limit, offset int) ([]model.PromoCode, error) {
	query := `
		SELECT ` + promoColumns + `
		FROM promo_codes
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query promo codes")
		return nil, fmt.Errorf("failed to query promo codes: %w", err)
	}
	defer rows.Close()

	promos := []model.PromoCode{}
	for rows.Next() {
		var p model.PromoCode
		if err := scanPromoCode(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan promo code row")
			return nil, fmt.Errorf("failed to scan promo code: %w", err)
		}
		promos = append(promos, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating promo code rows")
		return nil, fmt.Errorf("error iterating promo codes: %w", err)
	}

	return promos, nil
}

// Create inserts a promo code.
func (r *promoCodeRepository) Create(ctx context.Context, p *model.PromoCode) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO promo_codes (`+promoColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		p.ID,
		p.Code,
		string(p.DiscountType),
		p.DiscountValue,
		p.MinOrderAmount,
		p.MaxUses,
		p.CurrentUses,
		p.StartsAt,
		p.ExpiresAt,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Warn().Str("code", p.Code).Msg("duplicate promo code")
			return model.ErrDuplicatePromoCode
		}
		r.logger.Error().Err(err).Str("code", p.Code).Msg("failed to create promo code")
		return fmt.Errorf("failed to create promo code: %w", err)
	}

	r.logger.Debug().Str("code", p.Code).Msg("promo code created successfully")

	return nil
}

// Upsert inserts a promo code or refreshes the discount terms of the live code
// with the same name. Usage, activation flag and window of an existing code are
// left untouched; they are managed through Update.
func (r *promoCodeRepository) Upsert(ctx context.Context, p *model.PromoCode) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO promo_codes (`+promoColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (code) WHERE deleted_at IS NULL DO UPDATE SET
			discount_type = EXCLUDED.discount_type,
			discount_value = EXCLUDED.discount_value,
			min_order_amount = EXCLUDED.min_order_amount,
			max_uses = EXCLUDED.max_uses,
			updated_at = EXCLUDED.updated_at
	`,
		p.ID,
		p.Code,
		string(p.DiscountType),
		p.DiscountValue,
		p.MinOrderAmount,
		p.MaxUses,
		p.CurrentUses,
		p.StartsAt,
		p.ExpiresAt,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("code", p.Code).Msg("failed to upsert promo code")
		return fmt.Errorf("failed to upsert promo code: %w", err)
	}

	return nil
}

// Update overwrites the mutable fields of a promo code.
func (r *promoCodeRepository) Update(ctx context.Context, p *model.PromoCode) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE promo_codes SET
			discount_type = $2,
			discount_value = $3,
			min_order_amount = $4,
			max_uses = $5,
			starts_at = $6,
			expires_at = $7,
			is_active = $8,
			updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL
	`,
		p.ID,
		string(p.DiscountType),
		p.DiscountValue,
		p.MinOrderAmount,
		p.MaxUses,
		p.StartsAt,
		p.ExpiresAt,
		p.IsActive,
		p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("promo_id", p.ID.String()).Msg("failed to update promo code")
		return false, fmt.Errorf("failed to update promo code: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// SoftDelete hides a promo code while keeping it for historical orders.
func (r *promoCodeRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE promo_codes SET deleted_at = NOW(), is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("promo_id", id.String()).Msg("failed to delete promo code")
		return false, fmt.Errorf("failed to delete promo code: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// IncrementUsage atomically bumps current_uses unless the usage cap is reached.
func (r *promoCodeRepository) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE promo_codes
		SET current_uses = current_uses + 1, updated_at = NOW()
		WHERE id = $1
			AND deleted_at IS NULL
			AND (max_uses = 0 OR current_uses < max_uses)
	`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("promo_id", id.String()).Msg("failed to increment promo usage")
		return false, fmt.Errorf("failed to increment promo usage: %w", err)
	}

	incremented := tag.RowsAffected() == 1
	if !incremented {
		r.logger.Warn().Str("promo_id", id.String()).Msg("promo usage not incremented, cap reached or code removed")
	}

	return incremented, nil
}
