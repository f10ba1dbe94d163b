package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a catalog entity does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Repository defines the interface for catalog data storage.
type Repository interface {
	// Products
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id string) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	SetProductActive(ctx context.Context, id string, active bool) error
	// ProductBelongsToShop reports whether the product exists and is owned by
	// the given shop. Every mutating cross-module operation runs this check.
	ProductBelongsToShop(ctx context.Context, productID, shopID string) (bool, error)

	// Variants
	CreateVariant(ctx context.Context, v *Variant) error
	CreateVariants(ctx context.Context, vs []*Variant) error
	GetVariant(ctx context.Context, id string) (*Variant, error)
	UpdateVariant(ctx context.Context, v *Variant) error
	DeleteVariant(ctx context.Context, id string) error
	ListVariants(ctx context.Context, productID string) ([]*Variant, error)

	// SyncPriceRange recomputes the product's denormalized min/max price from
	// its active variants in a single statement, resetting to 0/0 when no
	// active variant exists.
	SyncPriceRange(ctx context.Context, productID string) error

	// Categories
	CreateCategory(ctx context.Context, c *Category) error
	ListCategories(ctx context.Context) ([]*Category, error)

	// Images
	AddImage(ctx context.Context, img *ProductImage) error
	ListImages(ctx context.Context, productID string) ([]*ProductImage, error)
}
