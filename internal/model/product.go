package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a mattress in the catalogue.
type Product struct {
	ID          string        `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	ImageURL    string        `json:"imageUrl" db:"image_url"`
	Firmness    string        `json:"firmness" db:"firmness"`
	HeightCm    int           `json:"heightCm" db:"height_cm"`
	Category    string        `json:"category" db:"category"`
	IsActive    bool          `json:"isActive" db:"is_active"`
	Sizes       []ProductSize `json:"sizes"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
}

// ProductSize is a purchasable size variant of a product. Prices are in minor units.
type ProductSize struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID string    `json:"-" db:"product_id"`
	Label     string    `json:"label" db:"label"`
	Price     int64     `json:"price" db:"price"`
	OldPrice  *int64    `json:"oldPrice,omitempty" db:"old_price"`
}

// Size returns the size variant with the given ID.
func (p *Product) Size(id uuid.UUID) (ProductSize, bool) {
	for _, s := range p.Sizes {
		if s.ID == id {
			return s, true
		}
	}
	return ProductSize{}, false
}

// ProductRequest represents the admin payload for creating a product.
type ProductRequest struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	ImageURL    string               `json:"imageUrl"`
	Firmness    string               `json:"firmness"`
	HeightCm    int                  `json:"heightCm"`
	Category    string               `json:"category"`
	Sizes       []ProductSizeRequest `json:"sizes"`
}

// ProductSizeRequest represents one size variant in a product request.
type ProductSizeRequest struct {
	Label    string `json:"label"`
	Price    int64  `json:"price"`
	OldPrice *int64 `json:"oldPrice,omitempty"`
}
