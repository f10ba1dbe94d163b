package promotion

import "context"

// Repository defines the interface for promotion data storage.
type Repository interface {
	Create(ctx context.Context, p *PromotedListing) error
	GetByID(ctx context.Context, id string) (*PromotedListing, error)

	// ExpireDue transitions every ACTIVE row whose expires_at has passed to
	// EXPIRED in one atomic statement and returns how many rows changed.
	ExpireDue(ctx context.Context) (int64, error)

	// CancelOwned transitions a row to CANCELLED only when it is ACTIVE and
	// owned by the given shop, reporting whether anything changed. Not-found,
	// already-terminal and not-yours all come back false, indistinguishably.
	CancelOwned(ctx context.Context, promotionID, shopID string) (bool, error)

	HasActive(ctx context.Context, productID string) (bool, error)
	ListByShop(ctx context.Context, shopID string) ([]*PromotedListing, error)

	// ListActivePromoted returns active, unexpired promotions whose product
	// passes the marketplace inclusion rule, ordered tier descending, then
	// created_at descending, then id ascending.
	ListActivePromoted(ctx context.Context, limit int) ([]*PromotedProduct, error)

	// AuditRows returns the quality data for every ACTIVE, unexpired
	// promotion.
	AuditRows(ctx context.Context) ([]*AuditRow, error)
}

// OwnershipVerifier answers whether a product belongs to a shop. The catalog
// module provides the real implementation; promotions only need this one
// capability, not the whole catalog surface.
type OwnershipVerifier interface {
	ProductBelongsToShop(ctx context.Context, productID, shopID string) (bool, error)
}
