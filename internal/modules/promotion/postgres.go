package promotion

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *PromotedListing) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO promoted_listings
		  (id, shop_id, product_id, tier, status, starts_at, expires_at,
		   impressions, clicks, amount_paid_cents, payment_ref)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.ShopID, p.ProductID, p.Tier, p.Status, p.StartsAt, p.ExpiresAt,
		p.Impressions, p.Clicks, p.AmountPaidCents, p.PaymentRef)
	return err
}

func scanListing(scan func(...interface{}) error) (*PromotedListing, error) {
	p := &PromotedListing{}
	err := scan(&p.ID, &p.ShopID, &p.ProductID, &p.Tier, &p.Status,
		&p.StartsAt, &p.ExpiresAt, &p.Impressions, &p.Clicks,
		&p.AmountPaidCents, &p.PaymentRef, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*PromotedListing, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id,shop_id,product_id,tier,status,starts_at,expires_at,
		       impressions,clicks,amount_paid_cents,payment_ref,created_at,updated_at
		FROM promoted_listings WHERE id=$1`, uid)
	return scanListing(row.Scan)
}

func (r *postgresRepo) ExpireDue(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE promoted_listings
		SET status=$1, updated_at=NOW()
		WHERE status=$2 AND expires_at <= NOW()`,
		StatusExpired, StatusActive)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *postgresRepo) CancelOwned(ctx context.Context, promotionID, shopID string) (bool, error) {
	// Malformed ids get the same silent false as any other mismatch.
	if _, err := uuid.Parse(promotionID); err != nil {
		return false, nil
	}
	if _, err := uuid.Parse(shopID); err != nil {
		return false, nil
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE promoted_listings
		SET status=$1, updated_at=NOW()
		WHERE id=$2 AND shop_id=$3 AND status=$4`,
		StatusCancelled, promotionID, shopID, StatusActive)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *postgresRepo) HasActive(ctx context.Context, productID string) (bool, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return false, nil
	}
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM promoted_listings
			WHERE product_id=$1 AND status=$2 AND expires_at > NOW())`,
		productID, StatusActive).Scan(&exists)
	return exists, err
}

func (r *postgresRepo) ListByShop(ctx context.Context, shopID string) ([]*PromotedListing, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,shop_id,product_id,tier,status,starts_at,expires_at,
		       impressions,clicks,amount_paid_cents,payment_ref,created_at,updated_at
		FROM promoted_listings WHERE shop_id=$1
		ORDER BY created_at DESC`, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var listings []*PromotedListing
	for rows.Next() {
		p, err := scanListing(rows.Scan)
		if err != nil {
			return nil, err
		}
		listings = append(listings, p)
	}
	return listings, nil
}

func (r *postgresRepo) ListActivePromoted(ctx context.Context, limit int) ([]*PromotedProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pl.id, pl.shop_id, pl.product_id, pl.tier, pl.status,
		       pl.starts_at, pl.expires_at, pl.impressions, pl.clicks,
		       pl.amount_paid_cents, pl.payment_ref, pl.created_at, pl.updated_at,
		       p.name, p.description, p.min_price_cents, p.max_price_cents,
		       s.slug, s.name, s.is_verified
		FROM promoted_listings pl
		JOIN products p ON p.id = pl.product_id AND p.is_active
		JOIN shops s ON s.id = pl.shop_id AND s.is_active
		WHERE pl.status = $1
		  AND pl.expires_at > NOW()
		  AND EXISTS (SELECT 1 FROM variants v WHERE v.product_id = p.id AND v.is_active)
		ORDER BY CASE pl.tier
		           WHEN 'SPOTLIGHT' THEN 3
		           WHEN 'FEATURED' THEN 2
		           ELSE 1
		         END DESC,
		         pl.created_at DESC, pl.id ASC
		LIMIT $2`,
		StatusActive, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var promoted []*PromotedProduct
	for rows.Next() {
		pp := &PromotedProduct{}
		p := &pp.Promotion
		err := rows.Scan(&p.ID, &p.ShopID, &p.ProductID, &p.Tier, &p.Status,
			&p.StartsAt, &p.ExpiresAt, &p.Impressions, &p.Clicks,
			&p.AmountPaidCents, &p.PaymentRef, &p.CreatedAt, &p.UpdatedAt,
			&pp.Name, &pp.Description, &pp.MinPriceCents, &pp.MaxPriceCents,
			&pp.ShopSlug, &pp.ShopName, &pp.ShopVerified)
		if err != nil {
			return nil, err
		}
		pp.ProductID = p.ProductID
		promoted = append(promoted, pp)
	}
	return promoted, nil
}

func (r *postgresRepo) AuditRows(ctx context.Context) ([]*AuditRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pl.id, pl.tier, pl.shop_id, p.id, p.name, COALESCE(p.description,''),
		       (SELECT COUNT(*) FROM product_images i WHERE i.product_id = p.id),
		       (SELECT COUNT(*) FROM variants v WHERE v.product_id = p.id AND v.is_active),
		       (SELECT COALESCE(SUM(v.stock),0) FROM variants v WHERE v.product_id = p.id AND v.is_active)
		FROM promoted_listings pl
		JOIN products p ON p.id = pl.product_id
		WHERE pl.status = $1 AND pl.expires_at > NOW()`,
		StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var audit []*AuditRow
	for rows.Next() {
		a := &AuditRow{}
		err := rows.Scan(&a.PromotionID, &a.Tier, &a.ShopID, &a.ProductID,
			&a.ProductName, &a.Description, &a.ImageCount, &a.ActiveVariants, &a.TotalStock)
		if err != nil {
			return nil, err
		}
		audit = append(audit, a)
	}
	return audit, nil
}
