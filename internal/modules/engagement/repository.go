package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for engagement event storage and the
// promotion counters it feeds.
type Repository interface {
	// Append writes one event to the log.
	Append(ctx context.Context, e *Event) error

	// TrendingCounts tallies view/click style events per product over a
	// trailing window, ordered by count descending then product id ascending
	// for a deterministic ranking.
	TrendingCounts(ctx context.Context, window time.Duration, limit int) ([]ProductCount, error)

	// IncrementImpressions adds one impression to every named promotion in a
	// single batched statement. The increment is relative so concurrent
	// requests never lose updates.
	IncrementImpressions(ctx context.Context, promotionIDs []uuid.UUID) error

	// IncrementClicks adds one click to a promotion.
	IncrementClicks(ctx context.Context, promotionID uuid.UUID) error
}
