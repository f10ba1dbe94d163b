package shop

import (
	"time"

	"github.com/google/uuid"
)

// Shop is the tenant root: an independent seller with isolated catalog data.
// Deactivating a shop hides every one of its products from discovery without
// deleting anything.
type Shop struct {
	ID         uuid.UUID `json:"id"`
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	Province   string    `json:"province,omitempty"`
	City       string    `json:"city,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OnboardShopRequest holds the data for registering a new shop.
type OnboardShopRequest struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Province string `json:"province"`
	City     string `json:"city"`
}
