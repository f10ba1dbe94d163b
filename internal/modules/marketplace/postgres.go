package marketplace

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const listingColumns = `
	p.id, p.shop_id, p.name, p.description, p.min_price_cents, p.max_price_cents,
	COALESCE(c.slug,''), s.slug, s.name, s.is_verified,
	COALESCE(s.province,''), COALESCE(s.city,''), p.created_at`

// visibleFrom is the join+inclusion core shared by every marketplace read:
// active product, active shop, at least one active variant.
const visibleFrom = `
	FROM products p
	JOIN shops s ON s.id = p.shop_id AND s.is_active
	LEFT JOIN categories c ON c.id = p.category_id
	WHERE p.is_active
	  AND EXISTS (SELECT 1 FROM variants v WHERE v.product_id = p.id AND v.is_active)`

func (r *postgresRepo) Search(ctx context.Context, f Filters) ([]*Listing, int64, error) {
	where, args := buildFilterClause(f)

	var total int64
	countQuery := `SELECT COUNT(*)` + visibleFrom + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + listingColumns + visibleFrom + where +
		orderClause(f.SortBy) +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	listings, err := scanListings(rows)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// buildFilterClause turns the optional filters into AND conditions with
// positional args, continuing the arg numbering from 1.
func buildFilterClause(f Filters) (string, []interface{}) {
	var sb strings.Builder
	args := []interface{}{}
	n := 1

	if f.Category != "" {
		sb.WriteString(fmt.Sprintf(` AND c.slug = $%d`, n))
		args = append(args, f.Category)
		n++
	}
	if f.ParentCategory != "" {
		// The parent category matches itself or any of its children.
		sb.WriteString(fmt.Sprintf(` AND (c.slug = $%d OR c.parent_id = (SELECT id FROM categories WHERE slug = $%d))`, n, n))
		args = append(args, f.ParentCategory)
		n++
	}
	if f.MinPriceCents > 0 || f.MaxPriceCents > 0 {
		min, max := f.MinPriceCents, f.MaxPriceCents
		if max == 0 {
			max = 1<<62 - 1
		}
		sb.WriteString(fmt.Sprintf(
			` AND EXISTS (SELECT 1 FROM variants v WHERE v.product_id = p.id AND v.is_active AND v.price_cents BETWEEN $%d AND $%d)`,
			n, n+1))
		args = append(args, min, max)
		n += 2
	}
	if f.Province != "" {
		sb.WriteString(fmt.Sprintf(` AND s.province = $%d`, n))
		args = append(args, f.Province)
		n++
	}
	if f.City != "" {
		sb.WriteString(fmt.Sprintf(` AND s.city = $%d`, n))
		args = append(args, f.City)
		n++
	}
	if f.VerifiedOnly {
		sb.WriteString(` AND s.is_verified`)
	}
	if f.Search != "" {
		// Plain substring match, not a ranked search index.
		sb.WriteString(fmt.Sprintf(` AND (p.name ILIKE $%d OR p.description ILIKE $%d)`, n, n))
		args = append(args, "%"+f.Search+"%")
		n++
	}
	return sb.String(), args
}

func orderClause(sortBy string) string {
	switch sortBy {
	case SortPriceAsc:
		return ` ORDER BY p.min_price_cents ASC, p.id ASC`
	case SortPriceDesc:
		return ` ORDER BY p.max_price_cents DESC, p.id ASC`
	default:
		// newest, and the trending/popular fallback
		return ` ORDER BY p.created_at DESC, p.id ASC`
	}
}

func (r *postgresRepo) ListVisibleByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Listing, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*Listing{}, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+listingColumns+visibleFrom+` AND p.id = ANY($1)`, pq.Array(raw))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings, err := scanListings(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	return byID, nil
}

func scanListings(rows *sql.Rows) ([]*Listing, error) {
	var listings []*Listing
	for rows.Next() {
		l := &Listing{}
		err := rows.Scan(&l.ID, &l.ShopID, &l.Name, &l.Description,
			&l.MinPriceCents, &l.MaxPriceCents, &l.CategorySlug,
			&l.ShopSlug, &l.ShopName, &l.ShopVerified,
			&l.Province, &l.City, &l.CreatedAt)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
