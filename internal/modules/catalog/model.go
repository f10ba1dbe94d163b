package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product is a tenant-owned listing. MinPriceCents and MaxPriceCents are
// denormalized over the product's active variants and are written only by
// SyncProductPriceRange — callers never set them directly.
type Product struct {
	ID            uuid.UUID  `json:"id"`
	ShopID        uuid.UUID  `json:"shop_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	IsActive      bool       `json:"is_active"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	MinPriceCents int64      `json:"min_price_cents"`
	MaxPriceCents int64      `json:"max_price_cents"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Variant is the buyable unit of a product. Prices are integer minor
// currency units.
type Variant struct {
	ID         uuid.UUID         `json:"id"`
	ProductID  uuid.UUID         `json:"product_id"`
	Options    map[string]string `json:"options,omitempty"`
	PriceCents int64             `json:"price_cents"`
	Stock      int               `json:"stock"`
	IsActive   bool              `json:"is_active"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Category is a node in the self-referential category tree. ParentID is nil
// for top-level categories; in practice the tree is two levels deep.
type Category struct {
	ID       uuid.UUID  `json:"id"`
	Slug     string     `json:"slug"`
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
	IsActive bool       `json:"is_active"`
}

// ProductImage is a display image attached to a product.
type ProductImage struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	URL       string    `json:"url"`
	Position  int       `json:"position"`
}

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CreateProductRequest holds the data for creating a product.
type CreateProductRequest struct {
	ShopID      string `json:"shop_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id,omitempty"`
}

// VariantInput holds the data for creating or updating a variant.
type VariantInput struct {
	Options    map[string]string `json:"options"`
	PriceCents int64             `json:"price_cents"`
	Stock      int               `json:"stock"`
	IsActive   *bool             `json:"is_active,omitempty"`
}
