package promotion

import (
	"time"

	"github.com/google/uuid"
)

// Tier is the ordered rank of a paid placement: BOOST < FEATURED < SPOTLIGHT.
type Tier string

const (
	TierBoost     Tier = "BOOST"
	TierFeatured  Tier = "FEATURED"
	TierSpotlight Tier = "SPOTLIGHT"
)

// Rank returns the tier's position in the ordering, higher is better.
func (t Tier) Rank() int {
	switch t {
	case TierSpotlight:
		return 3
	case TierFeatured:
		return 2
	case TierBoost:
		return 1
	}
	return 0
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool { return t.Rank() > 0 }

// Status is the lifecycle state of a promotion. EXPIRED and CANCELLED are
// terminal; no state is ever re-activated.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

// PromotedListing is a paid, time-boxed placement of one product.
// Invariant: StartsAt < ExpiresAt. A listing past its ExpiresAt still reports
// ACTIVE until the next expiry sweep runs; that staleness window is bounded
// by read traffic and is documented behavior, not a defect.
type PromotedListing struct {
	ID              uuid.UUID `json:"id"`
	ShopID          uuid.UUID `json:"shop_id"`
	ProductID       uuid.UUID `json:"product_id"`
	Tier            Tier      `json:"tier"`
	Status          Status    `json:"status"`
	StartsAt        time.Time `json:"starts_at"`
	ExpiresAt       time.Time `json:"expires_at"`
	Impressions     int64     `json:"impressions"`
	Clicks          int64     `json:"clicks"`
	AmountPaidCents int64     `json:"amount_paid_cents"`
	PaymentRef      string    `json:"payment_ref,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PromotedProduct is a promoted listing joined to the product and shop detail
// needed to render it in the feed.
type PromotedProduct struct {
	Promotion     PromotedListing `json:"promotion"`
	ProductID     uuid.UUID       `json:"product_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	MinPriceCents int64           `json:"min_price_cents"`
	MaxPriceCents int64           `json:"max_price_cents"`
	ShopSlug      string          `json:"shop_slug"`
	ShopName      string          `json:"shop_name"`
	ShopVerified  bool            `json:"shop_verified"`
}

// CreatePromotionRequest is the payload carried by a payment-confirmed event.
type CreatePromotionRequest struct {
	ShopID          string `json:"shop_id"`
	ProductID       string `json:"product_id"`
	Tier            string `json:"tier"`
	DurationWeeks   int    `json:"duration_weeks"`
	AmountPaidCents int64  `json:"amount_paid_cents"`
	PaymentRef      string `json:"payment_ref,omitempty"`
}

// ContentViolation flags an active promotion whose product fails the minimum
// listing-quality bar. Issues lists every unmet condition.
type ContentViolation struct {
	PromotionID uuid.UUID `json:"promotion_id"`
	Tier        Tier      `json:"tier"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ShopID      uuid.UUID `json:"shop_id"`
	Issues      []string  `json:"issues"`
}

// AuditRow is the raw quality data the auditor evaluates per active promotion.
type AuditRow struct {
	PromotionID    uuid.UUID
	Tier           Tier
	ProductID      uuid.UUID
	ProductName    string
	Description    string
	ShopID         uuid.UUID
	ImageCount     int
	ActiveVariants int
	TotalStock     int
}
