package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines catalog business logic. Every variant mutation — create,
// price-affecting update, delete, batch create — ends with a price-range
// sync on the parent product. The sync is idempotent and self-healing: a
// missed sync is corrected by the next mutation on the same product.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error)
	SetProductActive(ctx context.Context, id string, active bool) error

	CreateVariant(ctx context.Context, productID string, in VariantInput) (*Variant, error)
	CreateVariantsBatch(ctx context.Context, productID string, ins []VariantInput) ([]*Variant, error)
	UpdateVariant(ctx context.Context, id string, in VariantInput) (*Variant, error)
	DeleteVariant(ctx context.Context, id string) error
	ListVariants(ctx context.Context, productID string) ([]*Variant, error)

	// SyncProductPriceRange recomputes the denormalized min/max price of a
	// product from its active variants. 0/0 when no active variant exists.
	SyncProductPriceRange(ctx context.Context, productID string) error

	CreateCategory(ctx context.Context, slug, name string, parentID *string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)

	AddProductImage(ctx context.Context, productID, url string, position int) (*ProductImage, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

// ── Products ──────────────────────────────────────────────────────────────────

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("invalid shop_id: %w", err)
	}

	p := &Product{
		ID:          uuid.New(),
		ShopID:      shopID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.CategoryID != "" {
		catID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id: %w", err)
		}
		p.CategoryID = &catID
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.Description = req.Description
	if req.CategoryID != "" {
		catID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id: %w", err)
		}
		p.CategoryID = &catID
	}
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) SetProductActive(ctx context.Context, id string, active bool) error {
	return s.repo.SetProductActive(ctx, id, active)
}

// ── Variants ──────────────────────────────────────────────────────────────────

func (s *service) CreateVariant(ctx context.Context, productID string, in VariantInput) (*Variant, error) {
	v, err := s.buildVariant(productID, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateVariant(ctx, v); err != nil {
		return nil, err
	}
	if err := s.repo.SyncPriceRange(ctx, productID); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) CreateVariantsBatch(ctx context.Context, productID string, ins []VariantInput) ([]*Variant, error) {
	if len(ins) == 0 {
		return nil, fmt.Errorf("batch must contain at least one variant")
	}
	variants := make([]*Variant, 0, len(ins))
	for _, in := range ins {
		v, err := s.buildVariant(productID, in)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	if err := s.repo.CreateVariants(ctx, variants); err != nil {
		return nil, err
	}
	if err := s.repo.SyncPriceRange(ctx, productID); err != nil {
		return nil, err
	}
	return variants, nil
}

func (s *service) UpdateVariant(ctx context.Context, id string, in VariantInput) (*Variant, error) {
	v, err := s.repo.GetVariant(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.PriceCents <= 0 {
		return nil, fmt.Errorf("price_cents must be > 0")
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("stock must be >= 0")
	}
	if in.Options != nil {
		v.Options = in.Options
	}
	v.PriceCents = in.PriceCents
	v.Stock = in.Stock
	if in.IsActive != nil {
		v.IsActive = *in.IsActive
	}
	if err := s.repo.UpdateVariant(ctx, v); err != nil {
		return nil, err
	}
	if err := s.repo.SyncPriceRange(ctx, v.ProductID.String()); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) DeleteVariant(ctx context.Context, id string) error {
	v, err := s.repo.GetVariant(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteVariant(ctx, id); err != nil {
		return err
	}
	return s.repo.SyncPriceRange(ctx, v.ProductID.String())
}

func (s *service) ListVariants(ctx context.Context, productID string) ([]*Variant, error) {
	return s.repo.ListVariants(ctx, productID)
}

func (s *service) SyncProductPriceRange(ctx context.Context, productID string) error {
	return s.repo.SyncPriceRange(ctx, productID)
}

func (s *service) buildVariant(productID string, in VariantInput) (*Variant, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	if in.PriceCents <= 0 {
		return nil, fmt.Errorf("price_cents must be > 0")
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("stock must be >= 0")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return &Variant{
		ID:         uuid.New(),
		ProductID:  pid,
		Options:    in.Options,
		PriceCents: in.PriceCents,
		Stock:      in.Stock,
		IsActive:   active,
	}, nil
}

// ── Categories ────────────────────────────────────────────────────────────────

func (s *service) CreateCategory(ctx context.Context, slug, name string, parentID *string) (*Category, error) {
	if slug == "" || name == "" {
		return nil, fmt.Errorf("slug and name are required")
	}
	c := &Category{
		ID:       uuid.New(),
		Slug:     slug,
		Name:     name,
		IsActive: true,
	}
	if parentID != nil && *parentID != "" {
		pid, err := uuid.Parse(*parentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent_id: %w", err)
		}
		c.ParentID = &pid
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

// ── Images ────────────────────────────────────────────────────────────────────

func (s *service) AddProductImage(ctx context.Context, productID, url string, position int) (*ProductImage, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}
	img := &ProductImage{
		ID:        uuid.New(),
		ProductID: pid,
		URL:       url,
		Position:  position,
	}
	if err := s.repo.AddImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}
