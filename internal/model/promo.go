package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DiscountType describes how a promo code discount is computed.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Valid reports whether t is a known discount type.
func (t DiscountType) Valid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}

// PromoCode is a discount code. Code is stored upper-case; amounts are in minor units.
// MaxUses of zero means unlimited.
type PromoCode struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	Code           string       `json:"code" db:"code"`
	DiscountType   DiscountType `json:"discountType" db:"discount_type"`
	DiscountValue  int64        `json:"discountValue" db:"discount_value"`
	MinOrderAmount int64        `json:"minOrderAmount" db:"min_order_amount"`
	MaxUses        int          `json:"maxUses" db:"max_uses"`
	CurrentUses    int          `json:"currentUses" db:"current_uses"`
	StartsAt       *time.Time   `json:"startsAt,omitempty" db:"starts_at"`
	ExpiresAt      *time.Time   `json:"expiresAt,omitempty" db:"expires_at"`
	IsActive       bool         `json:"isActive" db:"is_active"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time    `json:"updatedAt" db:"updated_at"`
}

// ValidateTerms checks the discount terms of a promo code.
func (p *PromoCode) ValidateTerms() error {
	if p.Code == "" {
		return errors.New("code is required")
	}
	switch p.DiscountType {
	case DiscountTypePercentage:
		if p.DiscountValue < 1 || p.DiscountValue > 100 {
			return errors.New("percentage discount must be between 1 and 100")
		}
	case DiscountTypeFixed:
		if p.DiscountValue <= 0 {
			return errors.New("fixed discount must be greater than zero")
		}
	default:
		return errors.New("discount type must be percentage or fixed")
	}
	if p.MinOrderAmount < 0 {
		return errors.New("minimum order amount cannot be negative")
	}
	if p.MaxUses < 0 {
		return errors.New("max uses cannot be negative")
	}
	if p.StartsAt != nil && p.ExpiresAt != nil && !p.StartsAt.Before(*p.ExpiresAt) {
		return errors.New("starts_at must be before expires_at")
	}
	return nil
}

// PromoCodeRequest is the admin payload for creating or updating a promo code.
type PromoCodeRequest struct {
	Code           string       `json:"code"`
	DiscountType   DiscountType `json:"discountType"`
	DiscountValue  int64        `json:"discountValue"`
	MinOrderAmount int64        `json:"minOrderAmount"`
	MaxUses        int          `json:"maxUses"`
	StartsAt       *time.Time   `json:"startsAt,omitempty"`
	ExpiresAt      *time.Time   `json:"expiresAt,omitempty"`
	IsActive       *bool        `json:"isActive,omitempty"`
}

// PromoCheckRequest is the storefront payload for checking a promo code.
type PromoCheckRequest struct {
	Code        string `json:"code"`
	OrderAmount int64  `json:"order_amount"`
}

// PromoCheckResponse is returned by the storefront promo code check. A rejected
// code is encoded as {valid, message} only; an applied code always carries the
// discount, even when it is zero.
type PromoCheckResponse struct {
	Valid         bool         `json:"valid"`
	Discount      int64        `json:"discount"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue int64        `json:"discount_value"`
	Code          string       `json:"code"`
	Message       string       `json:"message"`
}

// MarshalJSON encodes the applied or the rejected shape depending on Valid.
func (r PromoCheckResponse) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return json.Marshal(struct {
			Valid   bool   `json:"valid"`
			Message string `json:"message"`
		}{Valid: false, Message: r.Message})
	}
	type applied PromoCheckResponse
	return json.Marshal(applied(r))
}
