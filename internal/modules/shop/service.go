package shop

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines shop business logic.
type Service interface {
	OnboardShop(ctx context.Context, req OnboardShopRequest) (*Shop, error)
	GetShop(ctx context.Context, id string) (*Shop, error)
	GetShopBySlug(ctx context.Context, slug string) (*Shop, error)
	DeactivateShop(ctx context.Context, id string) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) OnboardShop(ctx context.Context, req OnboardShopRequest) (*Shop, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	shop := &Shop{
		ID:       uuid.New(),
		Slug:     slug,
		Name:     req.Name,
		IsActive: true,
		Province: req.Province,
		City:     req.City,
	}
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *service) GetShop(ctx context.Context, id string) (*Shop, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetShopBySlug(ctx context.Context, slug string) (*Shop, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) DeactivateShop(ctx context.Context, id string) error {
	return s.repo.SetActive(ctx, id, false)
}
