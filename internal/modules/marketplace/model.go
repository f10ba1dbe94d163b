package marketplace

import (
	"time"

	"github.com/google/uuid"
)

// Sort modes for the marketplace feed. Trending and popular are accepted but
// fall back to newest here — true trending ordering is a separate call into
// the trending aggregator, not a sort mode of this query engine.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTrending  = "trending"
	SortPopular   = "popular"
)

const (
	DefaultPageSize = 24
	MaxPageSize     = 100
)

// Filters narrows the cross-tenant product feed. All fields are optional;
// the inclusion rule (active product, active shop, at least one active
// variant) applies regardless.
type Filters struct {
	Category       string // exact category slug
	ParentCategory string // matches the category itself or any of its children
	MinPriceCents  int64  // 0 = unset
	MaxPriceCents  int64  // 0 = unset
	Province       string
	City           string
	VerifiedOnly   bool
	Search         string // case-insensitive substring over name+description
	SortBy         string
	Page           int
	PageSize       int
}

// Listing is one marketplace result row: a product joined to the shop and
// category detail needed to render a card.
type Listing struct {
	ID            uuid.UUID `json:"id"`
	ShopID        uuid.UUID `json:"shop_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	MinPriceCents int64     `json:"min_price_cents"`
	MaxPriceCents int64     `json:"max_price_cents"`
	CategorySlug  string    `json:"category_slug,omitempty"`
	ShopSlug      string    `json:"shop_slug"`
	ShopName      string    `json:"shop_name"`
	ShopVerified  bool      `json:"shop_verified"`
	Province      string    `json:"province,omitempty"`
	City          string    `json:"city,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Page is a paginated marketplace response. Total and TotalPages reflect the
// filtered set before pagination; an out-of-range page yields an empty
// Products list, never an error.
type Page struct {
	Products   []*Listing `json:"products"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// FeedItem is one slot of the composed marketplace feed: either an organic
// listing or a promoted placement.
type FeedItem struct {
	Listing     *Listing   `json:"listing"`
	Promoted    bool       `json:"promoted"`
	PromotionID *uuid.UUID `json:"promotion_id,omitempty"`
	Tier        string     `json:"tier,omitempty"`
}
