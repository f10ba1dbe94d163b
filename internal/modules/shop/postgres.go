package shop

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, s *Shop) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shops
		  (id, slug, name, is_active, is_verified, province, city)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		s.ID, s.Slug, s.Name, s.IsActive, s.IsVerified, s.Province, s.City)
	return err
}

func scanShop(scan func(...interface{}) error) (*Shop, error) {
	s := &Shop{}
	err := scan(&s.ID, &s.Slug, &s.Name, &s.IsActive, &s.IsVerified,
		&s.Province, &s.City, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Shop, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id,slug,name,is_active,is_verified,province,city,created_at,updated_at
		FROM shops WHERE id=$1`, uid)
	return scanShop(row.Scan)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*Shop, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id,slug,name,is_active,is_verified,province,city,created_at,updated_at
		FROM shops WHERE slug=$1`, slug)
	return scanShop(row.Scan)
}

func (r *postgresRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE shops SET is_active=$1, updated_at=NOW() WHERE id=$2`, active, id)
	return err
}
