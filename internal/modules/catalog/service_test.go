package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository is a map-backed test double implementing Repository. Its
// SyncPriceRange mirrors the single-statement recompute the Postgres
// implementation performs, so price-range properties can be asserted after
// each mutation flow.
type mockRepository struct {
	products map[uuid.UUID]*Product
	variants map[uuid.UUID]*Variant
	syncs    int
}

var _ Repository = (*mockRepository)(nil)

func newMockRepository() *mockRepository {
	return &mockRepository{
		products: make(map[uuid.UUID]*Product),
		variants: make(map[uuid.UUID]*Variant),
	}
}

func (m *mockRepository) CreateProduct(_ context.Context, p *Product) error {
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockRepository) GetProduct(_ context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p, ok := m.products[uid]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepository) UpdateProduct(_ context.Context, p *Product) error {
	stored, ok := m.products[p.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Name = p.Name
	stored.Description = p.Description
	stored.CategoryID = p.CategoryID
	return nil
}

func (m *mockRepository) SetProductActive(_ context.Context, id string, active bool) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	p, ok := m.products[uid]
	if !ok {
		return ErrNotFound
	}
	p.IsActive = active
	return nil
}

func (m *mockRepository) ProductBelongsToShop(_ context.Context, productID, shopID string) (bool, error) {
	uid, err := uuid.Parse(productID)
	if err != nil {
		return false, err
	}
	p, ok := m.products[uid]
	return ok && p.ShopID.String() == shopID, nil
}

func (m *mockRepository) CreateVariant(_ context.Context, v *Variant) error {
	cv := *v
	m.variants[v.ID] = &cv
	return nil
}

func (m *mockRepository) CreateVariants(_ context.Context, vs []*Variant) error {
	for _, v := range vs {
		cv := *v
		m.variants[v.ID] = &cv
	}
	return nil
}

func (m *mockRepository) GetVariant(_ context.Context, id string) (*Variant, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	v, ok := m.variants[uid]
	if !ok {
		return nil, ErrNotFound
	}
	cv := *v
	return &cv, nil
}

func (m *mockRepository) UpdateVariant(_ context.Context, v *Variant) error {
	stored, ok := m.variants[v.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *v
	return nil
}

func (m *mockRepository) DeleteVariant(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(m.variants, uid)
	return nil
}

func (m *mockRepository) ListVariants(_ context.Context, productID string) ([]*Variant, error) {
	var out []*Variant
	for _, v := range m.variants {
		if v.ProductID.String() == productID {
			cv := *v
			out = append(out, &cv)
		}
	}
	return out, nil
}

func (m *mockRepository) SyncPriceRange(_ context.Context, productID string) error {
	m.syncs++
	uid, err := uuid.Parse(productID)
	if err != nil {
		return err
	}
	p, ok := m.products[uid]
	if !ok {
		return nil
	}
	var min, max int64
	for _, v := range m.variants {
		if v.ProductID != uid || !v.IsActive {
			continue
		}
		if min == 0 || v.PriceCents < min {
			min = v.PriceCents
		}
		if v.PriceCents > max {
			max = v.PriceCents
		}
	}
	p.MinPriceCents, p.MaxPriceCents = min, max
	return nil
}

func (m *mockRepository) CreateCategory(_ context.Context, c *Category) error { return nil }
func (m *mockRepository) ListCategories(_ context.Context) ([]*Category, error) {
	return nil, nil
}
func (m *mockRepository) AddImage(_ context.Context, img *ProductImage) error { return nil }
func (m *mockRepository) ListImages(_ context.Context, productID string) ([]*ProductImage, error) {
	return nil, nil
}

func seedProduct(t *testing.T, svc Service) *Product {
	t.Helper()
	p, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		ShopID:      uuid.New().String(),
		Name:        "Chitenge Tote",
		Description: "A sturdy handmade chitenge tote bag.",
	})
	require.NoError(t, err)
	return p
}

func boolPtr(b bool) *bool { return &b }

func TestPriceRange_BatchWithInactiveVariant(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	p := seedProduct(t, svc)

	// Three active variants at 1000/1500/2000 plus one inactive at 9999.
	_, err := svc.CreateVariantsBatch(context.Background(), p.ID.String(), []VariantInput{
		{PriceCents: 1000, Stock: 5},
		{PriceCents: 1500, Stock: 5},
		{PriceCents: 2000, Stock: 5},
		{PriceCents: 9999, Stock: 1, IsActive: boolPtr(false)},
	})
	require.NoError(t, err)

	got, err := svc.GetProduct(context.Background(), p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.MinPriceCents)
	assert.Equal(t, int64(2000), got.MaxPriceCents)
}

func TestPriceRange_SyncAfterEveryMutation(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	p := seedProduct(t, svc)

	v1, err := svc.CreateVariant(context.Background(), p.ID.String(), VariantInput{PriceCents: 500, Stock: 1})
	require.NoError(t, err)
	v2, err := svc.CreateVariant(context.Background(), p.ID.String(), VariantInput{PriceCents: 800, Stock: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.syncs)

	got, _ := svc.GetProduct(context.Background(), p.ID.String())
	assert.Equal(t, int64(500), got.MinPriceCents)
	assert.Equal(t, int64(800), got.MaxPriceCents)

	// A price update moves the range.
	_, err = svc.UpdateVariant(context.Background(), v1.ID.String(), VariantInput{PriceCents: 900, Stock: 1})
	require.NoError(t, err)
	got, _ = svc.GetProduct(context.Background(), p.ID.String())
	assert.Equal(t, int64(800), got.MinPriceCents)
	assert.Equal(t, int64(900), got.MaxPriceCents)

	// Deleting one collapses the range to the survivor.
	require.NoError(t, svc.DeleteVariant(context.Background(), v2.ID.String()))
	got, _ = svc.GetProduct(context.Background(), p.ID.String())
	assert.Equal(t, int64(900), got.MinPriceCents)
	assert.Equal(t, int64(900), got.MaxPriceCents)
	assert.Equal(t, 4, repo.syncs)
}

func TestPriceRange_ZeroWhenNoActiveVariant(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	p := seedProduct(t, svc)

	v, err := svc.CreateVariant(context.Background(), p.ID.String(), VariantInput{PriceCents: 1200, Stock: 2})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteVariant(context.Background(), v.ID.String()))

	got, err := svc.GetProduct(context.Background(), p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.MinPriceCents)
	assert.Equal(t, int64(0), got.MaxPriceCents)
}

func TestPriceRange_DeactivatedVariantLeavesRange(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	p := seedProduct(t, svc)

	v1, err := svc.CreateVariant(context.Background(), p.ID.String(), VariantInput{PriceCents: 1000, Stock: 1})
	require.NoError(t, err)
	_, err = svc.CreateVariant(context.Background(), p.ID.String(), VariantInput{PriceCents: 3000, Stock: 1})
	require.NoError(t, err)

	_, err = svc.UpdateVariant(context.Background(), v1.ID.String(), VariantInput{PriceCents: 1000, Stock: 1, IsActive: boolPtr(false)})
	require.NoError(t, err)

	got, _ := svc.GetProduct(context.Background(), p.ID.String())
	assert.Equal(t, int64(3000), got.MinPriceCents)
	assert.Equal(t, int64(3000), got.MaxPriceCents)
}

func TestCreateVariant_Validation(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	p := seedProduct(t, svc)

	_, err := svc.CreateVariant(context.Background(), p.ID.String(), VariantInput{PriceCents: 0, Stock: 1})
	assert.Error(t, err)

	_, err = svc.CreateVariant(context.Background(), p.ID.String(), VariantInput{PriceCents: 100, Stock: -1})
	assert.Error(t, err)

	_, err = svc.CreateVariantsBatch(context.Background(), p.ID.String(), nil)
	assert.Error(t, err)
}
