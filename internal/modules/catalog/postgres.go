package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// ── Products ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, shop_id, name, description, is_active, category_id, min_price_cents, max_price_cents)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.ShopID, p.Name, p.Description, p.IsActive, p.CategoryID,
		p.MinPriceCents, p.MaxPriceCents)
	return err
}

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	err := scan(&p.ID, &p.ShopID, &p.Name, &p.Description, &p.IsActive,
		&p.CategoryID, &p.MinPriceCents, &p.MaxPriceCents, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetProduct(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id,shop_id,name,description,is_active,category_id,min_price_cents,max_price_cents,created_at,updated_at
		FROM products WHERE id=$1`, uid)
	return scanProduct(row.Scan)
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, description=$2, category_id=$3, updated_at=NOW()
		WHERE id=$4`,
		p.Name, p.Description, p.CategoryID, p.ID)
	return err
}

func (r *postgresRepo) SetProductActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET is_active=$1, updated_at=NOW() WHERE id=$2`, active, id)
	return err
}

func (r *postgresRepo) ProductBelongsToShop(ctx context.Context, productID, shopID string) (bool, error) {
	var owned bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM products WHERE id=$1 AND shop_id=$2)`,
		productID, shopID).Scan(&owned)
	return owned, err
}

// ── Variants ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) CreateVariant(ctx context.Context, v *Variant) error {
	opts, err := json.Marshal(v.Options)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO variants (id, product_id, options, price_cents, stock, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		v.ID, v.ProductID, opts, v.PriceCents, v.Stock, v.IsActive)
	return err
}

// CreateVariants inserts a batch inside one transaction so a partial batch is
// impossible.
func (r *postgresRepo) CreateVariants(ctx context.Context, vs []*Variant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, v := range vs {
		opts, err := json.Marshal(v.Options)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO variants (id, product_id, options, price_cents, stock, is_active)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			v.ID, v.ProductID, opts, v.PriceCents, v.Stock, v.IsActive)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func scanVariant(scan func(...interface{}) error) (*Variant, error) {
	v := &Variant{}
	var opts []byte
	err := scan(&v.ID, &v.ProductID, &opts, &v.PriceCents, &v.Stock,
		&v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(opts) > 0 {
		if err := json.Unmarshal(opts, &v.Options); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (r *postgresRepo) GetVariant(ctx context.Context, id string) (*Variant, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id,product_id,options,price_cents,stock,is_active,created_at,updated_at
		FROM variants WHERE id=$1`, uid)
	return scanVariant(row.Scan)
}

func (r *postgresRepo) UpdateVariant(ctx context.Context, v *Variant) error {
	opts, err := json.Marshal(v.Options)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE variants
		SET options=$1, price_cents=$2, stock=$3, is_active=$4, updated_at=NOW()
		WHERE id=$5`,
		opts, v.PriceCents, v.Stock, v.IsActive, v.ID)
	return err
}

func (r *postgresRepo) DeleteVariant(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM variants WHERE id=$1`, id)
	return err
}

func (r *postgresRepo) ListVariants(ctx context.Context, productID string) ([]*Variant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,product_id,options,price_cents,stock,is_active,created_at,updated_at
		FROM variants WHERE product_id=$1 ORDER BY created_at`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var variants []*Variant
	for rows.Next() {
		v, err := scanVariant(rows.Scan)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, nil
}

// SyncPriceRange recomputes the aggregate and writes it in the same statement
// that reads the authoritative variant rows, so two concurrent syncs cannot
// overwrite each other with stale values.
func (r *postgresRepo) SyncPriceRange(ctx context.Context, productID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET
		  min_price_cents = COALESCE((SELECT MIN(price_cents) FROM variants WHERE product_id=$1 AND is_active), 0),
		  max_price_cents = COALESCE((SELECT MAX(price_cents) FROM variants WHERE product_id=$1 AND is_active), 0),
		  updated_at = NOW()
		WHERE id=$1`, productID)
	return err
}

// ── Categories ────────────────────────────────────────────────────────────────

func (r *postgresRepo) CreateCategory(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, slug, name, parent_id, is_active)
		VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.Slug, c.Name, c.ParentID, c.IsActive)
	return err
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,slug,name,parent_id,is_active
		FROM categories WHERE is_active=true ORDER BY parent_id NULLS FIRST, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cats []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.ParentID, &c.IsActive); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, nil
}

// ── Images ────────────────────────────────────────────────────────────────────

func (r *postgresRepo) AddImage(ctx context.Context, img *ProductImage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO product_images (id, product_id, url, position)
		VALUES ($1,$2,$3,$4)`,
		img.ID, img.ProductID, img.URL, img.Position)
	return err
}

func (r *postgresRepo) ListImages(ctx context.Context, productID string) ([]*ProductImage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,product_id,url,position
		FROM product_images WHERE product_id=$1 ORDER BY position`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var images []*ProductImage
	for rows.Next() {
		img := &ProductImage{}
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Position); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}
