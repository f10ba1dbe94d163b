package engagement

import (
	"time"

	"github.com/google/uuid"
)

// EventType classifies an engagement event.
type EventType string

const (
	EventView               EventType = "view"
	EventClick              EventType = "click"
	EventMarketplaceClick   EventType = "marketplace_click"
	EventPromotedImpression EventType = "promoted_impression"
	EventPromotedClick      EventType = "promoted_click"
)

// Event is one row in the append-only engagement log. Rows are never updated
// or deleted; they are only read back in aggregate queries.
type Event struct {
	ID        int64      `json:"id"`
	Type      EventType  `json:"type"`
	ShopID    uuid.UUID  `json:"shop_id"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ProductCount is a per-product engagement tally used for trending ranking.
type ProductCount struct {
	ProductID uuid.UUID `json:"product_id"`
	Count     int64     `json:"count"`
}
