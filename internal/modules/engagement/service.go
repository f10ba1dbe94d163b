package engagement

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// TrendingWindow is the trailing period over which events count toward the
// trending ranking.
const TrendingWindow = 7 * 24 * time.Hour

// Service defines engagement tracking and aggregation logic.
//
// The tracking operations are best-effort: a broken tracking write must never
// prevent a page from rendering, so failures are logged here and swallowed.
type Service interface {
	// RecordEvent appends one instrumentation event (product page view,
	// outbound contact click, marketplace click) to the log.
	RecordEvent(ctx context.Context, t EventType, shopID uuid.UUID, productID *uuid.UUID) error

	// TrackPromotedImpressions bumps the impression counter of every served
	// promotion in one batched write. Never returns an error.
	TrackPromotedImpressions(ctx context.Context, promotionIDs []uuid.UUID)

	// TrackPromotedClick bumps a promotion's click counter and appends one
	// promoted_click event. Never returns an error.
	TrackPromotedClick(ctx context.Context, promotionID, shopID, productID uuid.UUID)

	// TrendingCounts exposes the windowed per-product tally for the
	// marketplace trending ranking.
	TrendingCounts(ctx context.Context, limit int) ([]ProductCount, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) RecordEvent(ctx context.Context, t EventType, shopID uuid.UUID, productID *uuid.UUID) error {
	return s.repo.Append(ctx, &Event{Type: t, ShopID: shopID, ProductID: productID})
}

func (s *service) TrackPromotedImpressions(ctx context.Context, promotionIDs []uuid.UUID) {
	if len(promotionIDs) == 0 {
		return
	}
	if err := s.repo.IncrementImpressions(ctx, promotionIDs); err != nil {
		log.Printf("engagement: impression tracking failed for %d promotions: %v", len(promotionIDs), err)
	}
}

func (s *service) TrackPromotedClick(ctx context.Context, promotionID, shopID, productID uuid.UUID) {
	if err := s.repo.IncrementClicks(ctx, promotionID); err != nil {
		log.Printf("engagement: click tracking failed for promotion %s: %v", promotionID, err)
	}
	e := &Event{Type: EventPromotedClick, ShopID: shopID, ProductID: &productID}
	if err := s.repo.Append(ctx, e); err != nil {
		log.Printf("engagement: promoted_click event append failed for product %s: %v", productID, err)
	}
}

func (s *service) TrendingCounts(ctx context.Context, limit int) ([]ProductCount, error) {
	return s.repo.TrendingCounts(ctx, TrendingWindow, limit)
}
