package promotion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotShopProduct is returned when a shop tries to promote a product it
// does not own. This is a security boundary and always surfaces, unlike the
// silent denials on cancel.
var ErrNotShopProduct = errors.New("promotion: product does not belong to shop")

// minDescriptionLength is the quality bar for a promoted product's
// description.
const minDescriptionLength = 20

// Service defines the promotion lifecycle and content audit logic.
//
// The state machine is ACTIVE → {EXPIRED, CANCELLED}, both terminal. Expiry
// is detected lazily: there is no background timer, only ExpireDue sweeps run
// at the start of every read path that serves promotions.
type Service interface {
	// Create writes a new ACTIVE promotion after a confirmed payment. The
	// product must belong to the paying shop or ErrNotShopProduct is
	// returned. Duplicate active promotions per product are possible by
	// design; callers are expected to consult HasActivePromotion first.
	Create(ctx context.Context, req CreatePromotionRequest) (*PromotedListing, error)

	HasActivePromotion(ctx context.Context, productID string) (bool, error)

	// ExpirePromotedListings sweeps every overdue ACTIVE row to EXPIRED and
	// returns how many changed. Idempotent: a second immediate call returns 0.
	ExpirePromotedListings(ctx context.Context) (int64, error)

	// Cancel transitions a promotion to CANCELLED only when it is ACTIVE and
	// owned by shopID. Every mismatch — unknown id, terminal state, foreign
	// owner — comes back false with no state change, deliberately
	// indistinguishable so cross-tenant existence never leaks.
	Cancel(ctx context.Context, promotionID, shopID string) (bool, error)

	// ListShopPromotions serves the seller dashboard; it runs the expiry
	// sweep first so the dashboard never shows an overdue ACTIVE row.
	ListShopPromotions(ctx context.Context, shopID string) ([]*PromotedListing, error)

	// GetPromotedProducts returns renderable active promotions ordered by
	// tier then recency, sweeping expired rows first.
	GetPromotedProducts(ctx context.Context, limit int) ([]*PromotedProduct, error)

	// GetContentViolations scans active promotions against the listing
	// quality bar. Read-only; a human operator decides whether to cancel.
	GetContentViolations(ctx context.Context) ([]*ContentViolation, error)
}

type service struct {
	repo      Repository
	ownership OwnershipVerifier
}

func NewService(repo Repository, ownership OwnershipVerifier) Service {
	return &service{repo: repo, ownership: ownership}
}

func (s *service) Create(ctx context.Context, req CreatePromotionRequest) (*PromotedListing, error) {
	tier := Tier(strings.ToUpper(req.Tier))
	if !tier.Valid() {
		return nil, fmt.Errorf("unknown tier: %s", req.Tier)
	}
	if req.DurationWeeks <= 0 {
		return nil, fmt.Errorf("duration_weeks must be > 0")
	}
	if req.AmountPaidCents <= 0 {
		return nil, fmt.Errorf("amount_paid_cents must be > 0")
	}
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("invalid shop_id: %w", err)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}

	owned, err := s.ownership.ProductBelongsToShop(ctx, req.ProductID, req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("ownership check failed: %w", err)
	}
	if !owned {
		return nil, ErrNotShopProduct
	}

	now := time.Now()
	p := &PromotedListing{
		ID:              uuid.New(),
		ShopID:          shopID,
		ProductID:       productID,
		Tier:            tier,
		Status:          StatusActive,
		StartsAt:        now,
		ExpiresAt:       now.Add(time.Duration(req.DurationWeeks) * 7 * 24 * time.Hour),
		AmountPaidCents: req.AmountPaidCents,
		PaymentRef:      req.PaymentRef,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) HasActivePromotion(ctx context.Context, productID string) (bool, error) {
	return s.repo.HasActive(ctx, productID)
}

func (s *service) ExpirePromotedListings(ctx context.Context) (int64, error) {
	return s.repo.ExpireDue(ctx)
}

func (s *service) Cancel(ctx context.Context, promotionID, shopID string) (bool, error) {
	return s.repo.CancelOwned(ctx, promotionID, shopID)
}

func (s *service) ListShopPromotions(ctx context.Context, shopID string) ([]*PromotedListing, error) {
	if _, err := s.repo.ExpireDue(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListByShop(ctx, shopID)
}

func (s *service) GetPromotedProducts(ctx context.Context, limit int) ([]*PromotedProduct, error) {
	if _, err := s.repo.ExpireDue(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListActivePromoted(ctx, limit)
}

func (s *service) GetContentViolations(ctx context.Context) ([]*ContentViolation, error) {
	if _, err := s.repo.ExpireDue(ctx); err != nil {
		return nil, err
	}
	rows, err := s.repo.AuditRows(ctx)
	if err != nil {
		return nil, err
	}
	var violations []*ContentViolation
	for _, row := range rows {
		if issues := evaluateQualityBar(row); len(issues) > 0 {
			violations = append(violations, &ContentViolation{
				PromotionID: row.PromotionID,
				Tier:        row.Tier,
				ProductID:   row.ProductID,
				ProductName: row.ProductName,
				ShopID:      row.ShopID,
				Issues:      issues,
			})
		}
	}
	return violations, nil
}

// evaluateQualityBar returns every unmet condition of the listing quality
// bar. The stock check only applies when there are active variants to stock.
func evaluateQualityBar(row *AuditRow) []string {
	var issues []string
	if row.ImageCount == 0 {
		issues = append(issues, "No product images")
	}
	if len(strings.TrimSpace(row.Description)) < minDescriptionLength {
		issues = append(issues, "Description missing or too short")
	}
	if row.ActiveVariants == 0 {
		issues = append(issues, "No active variants")
	} else if row.TotalStock == 0 {
		issues = append(issues, "All variants out of stock")
	}
	return issues
}
