package engagement

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Append(ctx context.Context, e *Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO engagement_events (event_type, shop_id, product_id)
		VALUES ($1,$2,$3)`,
		e.Type, e.ShopID, e.ProductID)
	return err
}

func (r *postgresRepo) TrendingCounts(ctx context.Context, window time.Duration, limit int) ([]ProductCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, COUNT(*) AS n
		FROM engagement_events
		WHERE event_type IN ($1,$2,$3)
		  AND product_id IS NOT NULL
		  AND created_at >= NOW() - make_interval(secs => $4)
		GROUP BY product_id
		ORDER BY n DESC, product_id ASC
		LIMIT $5`,
		EventView, EventClick, EventMarketplaceClick,
		window.Seconds(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var counts []ProductCount
	for rows.Next() {
		var c ProductCount
		if err := rows.Scan(&c.ProductID, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, nil
}

func (r *postgresRepo) IncrementImpressions(ctx context.Context, promotionIDs []uuid.UUID) error {
	if len(promotionIDs) == 0 {
		return nil
	}
	ids := make([]string, len(promotionIDs))
	for i, id := range promotionIDs {
		ids[i] = id.String()
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE promoted_listings SET impressions = impressions + 1
		WHERE id = ANY($1)`, pq.Array(ids))
	return err
}

func (r *postgresRepo) IncrementClicks(ctx context.Context, promotionID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE promoted_listings SET clicks = clicks + 1
		WHERE id = $1`, promotionID)
	return err
}
