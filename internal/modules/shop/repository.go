package shop

import "context"

// Repository defines the interface for shop data storage.
type Repository interface {
	Create(ctx context.Context, s *Shop) error
	GetByID(ctx context.Context, id string) (*Shop, error)
	GetBySlug(ctx context.Context, slug string) (*Shop, error)
	SetActive(ctx context.Context, id string, active bool) error
}
