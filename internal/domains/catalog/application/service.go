package application

import (
	"context"
	"strings"

	"github.com/everestcart/storefront-api/internal/domains/catalog/domain"
	"github.com/everestcart/storefront-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog read use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts(ctx context.Context, searchTerm string) ([]*domain.Product, error) {
	return s.repo.List(ctx, strings.TrimSpace(searchTerm))
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

var _ ports.Service = (*Service)(nil)
