package marketplace

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/sokomarket/soko-backend/internal/modules/engagement"
	"github.com/sokomarket/soko-backend/internal/modules/promotion"
)

// trendingCacheKey is the cache slot for the trending candidate id list.
const trendingCacheKey = "trending:candidates"

// Cache is the small cache-aside surface the engine uses for trending
// candidates. A nil Cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// Service is the cross-tenant discovery surface: filter/sort/paginate the
// organic feed, rank trending products, and compose the blended feed.
type Service interface {
	// GetMarketplaceProducts runs the filtered, sorted, paginated organic
	// query. Out-of-range pages return an empty product list, not an error.
	GetMarketplaceProducts(ctx context.Context, f Filters) (*Page, error)

	// GetTrendingProducts ranks recently popular products by engagement
	// volume over the trailing window. The result may be shorter than limit:
	// products that fell out of discovery are dropped, not replaced.
	GetTrendingProducts(ctx context.Context, limit int) ([]*Listing, error)

	// GetFeed composes one marketplace page: expiry sweep, organic query,
	// promoted placements, interleave, and fire-and-forget impression
	// tracking for the served promotions.
	GetFeed(ctx context.Context, f Filters, promotedLimit int) (*Page, []*FeedItem, error)
}

type service struct {
	repo       Repository
	promotions promotion.Service
	engagement engagement.Service
	cache      Cache
}

func NewService(repo Repository, promotions promotion.Service, eng engagement.Service, cache Cache) Service {
	return &service{repo: repo, promotions: promotions, engagement: eng, cache: cache}
}

func (s *service) GetMarketplaceProducts(ctx context.Context, f Filters) (*Page, error) {
	normalizeFilters(&f)

	listings, total, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("marketplace search failed: %w", err)
	}
	if listings == nil {
		listings = []*Listing{}
	}

	totalPages := int((total + int64(f.PageSize) - 1) / int64(f.PageSize))
	return &Page{
		Products:   listings,
		Total:      total,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalPages: totalPages,
	}, nil
}

func normalizeFilters(f *Filters) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	switch f.SortBy {
	case SortNewest, SortPriceAsc, SortPriceDesc:
	case SortTrending, SortPopular:
		// Not sort modes of this engine; the organic query falls back to
		// newest and true trending ordering goes through GetTrendingProducts.
		f.SortBy = SortNewest
	default:
		f.SortBy = SortNewest
	}
}

func (s *service) GetTrendingProducts(ctx context.Context, limit int) ([]*Listing, error) {
	if limit <= 0 {
		limit = 12
	}

	candidates, err := s.trendingCandidates(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ProductID
	}
	visible, err := s.repo.ListVisibleByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("trending join failed: %w", err)
	}

	// Walk the candidates in count order, dropping products that have since
	// left discovery, and stop at limit.
	trending := make([]*Listing, 0, limit)
	for _, c := range candidates {
		if l, ok := visible[c.ProductID]; ok {
			trending = append(trending, l)
			if len(trending) == limit {
				break
			}
		}
	}
	return trending, nil
}

// trendingCandidates over-fetches twice the requested size so deactivated or
// deleted products can be absorbed without leaving the ranking short more
// than necessary. The raw candidate list is cached; a cache fault falls back
// to the store.
func (s *service) trendingCandidates(ctx context.Context, limit int) ([]engagement.ProductCount, error) {
	overfetch := limit * 2

	if s.cache != nil {
		var cached []engagement.ProductCount
		hit, err := s.cache.Get(ctx, trendingCacheKey, &cached)
		if err != nil {
			log.Printf("marketplace: trending cache read failed: %v", err)
		}
		if hit && len(cached) >= overfetch {
			return cached[:overfetch], nil
		}
	}

	counts, err := s.engagement.TrendingCounts(ctx, overfetch)
	if err != nil {
		return nil, fmt.Errorf("trending counts failed: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, trendingCacheKey, counts); err != nil {
			log.Printf("marketplace: trending cache write failed: %v", err)
		}
	}
	return counts, nil
}

func (s *service) GetFeed(ctx context.Context, f Filters, promotedLimit int) (*Page, []*FeedItem, error) {
	// The sweep runs before any promotion is read so the feed never serves a
	// placement that is overdue for expiry.
	if _, err := s.promotions.ExpirePromotedListings(ctx); err != nil {
		return nil, nil, fmt.Errorf("expiry sweep failed: %w", err)
	}

	page, err := s.GetMarketplaceProducts(ctx, f)
	if err != nil {
		return nil, nil, err
	}

	if promotedLimit <= 0 {
		promotedLimit = 5
	}
	promoted, err := s.promotions.GetPromotedProducts(ctx, promotedLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("promoted fetch failed: %w", err)
	}

	organicItems := make([]*FeedItem, len(page.Products))
	for i, l := range page.Products {
		organicItems[i] = &FeedItem{Listing: l}
	}
	promotedItems := make([]*FeedItem, len(promoted))
	servedPromotions := make([]uuid.UUID, len(promoted))
	for i, pp := range promoted {
		promotedItems[i] = &FeedItem{
			Listing:     promotedListing(pp),
			Promoted:    true,
			PromotionID: &promoted[i].Promotion.ID,
			Tier:        string(pp.Promotion.Tier),
		}
		servedPromotions[i] = pp.Promotion.ID
	}

	feed := Interleave(organicItems, promotedItems)

	// Impression tracking is fire-and-forget: the render must not wait on it
	// and must not see its failures.
	if len(servedPromotions) > 0 {
		go s.engagement.TrackPromotedImpressions(context.Background(), servedPromotions)
	}
	return page, feed, nil
}

func promotedListing(pp *promotion.PromotedProduct) *Listing {
	return &Listing{
		ID:            pp.ProductID,
		ShopID:        pp.Promotion.ShopID,
		Name:          pp.Name,
		Description:   pp.Description,
		MinPriceCents: pp.MinPriceCents,
		MaxPriceCents: pp.MaxPriceCents,
		ShopSlug:      pp.ShopSlug,
		ShopName:      pp.ShopName,
		ShopVerified:  pp.ShopVerified,
		CreatedAt:     pp.Promotion.CreatedAt,
	}
}
